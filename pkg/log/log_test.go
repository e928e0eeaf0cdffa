package log

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"
)

func u16(v uint16) *uint16 { return &v }

func TestEventRoundTrip(t *testing.T) {
	ts := time.Date(2026, 10, 14, 12, 30, 0, 123456789, time.UTC)
	in := Event{
		Timestamp: ts,
		ContextID: "ctx-1",
		Direction: DirectionOut,
		Layer:     LayerAPDU,
		Category:  CategoryMessage,
		LocalRole: RoleManager,
		SystemID:  "0102030405060708",
		APDU: &APDUEvent{
			Choice:        0xE700,
			Size:          18,
			Data:          []byte{0xE7, 0x00},
			InvokeID:      u16(1),
			MessageChoice: u16(0x0103),
			Handle:        u16(0),
		},
	}

	data, err := EncodeEvent(in)
	if err != nil {
		t.Fatalf("EncodeEvent failed: %v", err)
	}
	out, err := DecodeEvent(data)
	if err != nil {
		t.Fatalf("DecodeEvent failed: %v", err)
	}

	if !out.Timestamp.Equal(ts) {
		t.Errorf("timestamp: got %v, want %v", out.Timestamp, ts)
	}
	if out.ContextID != in.ContextID || out.SystemID != in.SystemID || out.LocalRole != RoleManager {
		t.Errorf("identifiers not preserved: %+v", out)
	}
	if out.APDU == nil || out.APDU.Choice != 0xE700 || *out.APDU.MessageChoice != 0x0103 {
		t.Fatalf("APDU not preserved: %+v", out.APDU)
	}
	if !bytes.Equal(out.APDU.Data, in.APDU.Data) {
		t.Errorf("data: got %x, want %x", out.APDU.Data, in.APDU.Data)
	}
	if out.StateChange != nil || out.Error != nil {
		t.Error("unset payloads should decode as nil")
	}
}

func TestNewAPDUEventTruncates(t *testing.T) {
	raw := make([]byte, MaxAPDUData+10)
	ev := NewAPDUEvent(0xE700, raw)
	if ev.Size != len(raw) || len(ev.Data) != MaxAPDUData || !ev.Truncated {
		t.Errorf("unexpected event: size=%d data=%d truncated=%v", ev.Size, len(ev.Data), ev.Truncated)
	}

	ev = NewAPDUEvent(0xE200, []byte{1, 2})
	if ev.Truncated || len(ev.Data) != 2 {
		t.Errorf("short APDU should be kept whole")
	}
}

func writeLog(t *testing.T, events []Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.plog")
	l, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	for _, e := range events {
		l.Log(e)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	// Logging after close is ignored.
	l.Log(Event{ContextID: "late"})
	return path
}

func readAll(t *testing.T, r *Reader) []Event {
	t.Helper()
	defer r.Close()
	var out []Event
	for {
		ev, err := r.Next()
		if err == io.EOF {
			return out
		}
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		out = append(out, ev)
	}
}

func TestFileLoggerAndReader(t *testing.T) {
	now := time.Now()
	path := writeLog(t, []Event{
		{Timestamp: now, ContextID: "a", Direction: DirectionIn, Category: CategoryMessage},
		{Timestamp: now.Add(time.Second), ContextID: "b", Direction: DirectionOut, Category: CategoryState,
			StateChange: &StateChangeEvent{OldState: "unassociated", NewState: "associating"}},
		{Timestamp: now.Add(2 * time.Second), ContextID: "a", Direction: DirectionOut, Category: CategoryError,
			Error: &ErrorEventData{Layer: LayerService, Message: "boom"}},
	})

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	if got := readAll(t, r); len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}

	r, _ = NewFilteredReader(path, Filter{ContextID: "a"})
	if got := readAll(t, r); len(got) != 2 {
		t.Errorf("context filter: got %d events, want 2", len(got))
	}

	out := DirectionOut
	r, _ = NewFilteredReader(path, Filter{Direction: &out})
	got := readAll(t, r)
	if len(got) != 2 || got[0].StateChange == nil || got[0].StateChange.NewState != "associating" {
		t.Errorf("direction filter: unexpected %+v", got)
	}

	end := now.Add(time.Second)
	r, _ = NewFilteredReader(path, Filter{TimeEnd: &end})
	if got := readAll(t, r); len(got) != 1 {
		t.Errorf("time filter: got %d events, want 1", len(got))
	}
}

func TestFileLoggerCapsAPDUData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cap.plog")
	l, err := NewFileLogger(path)
	if err != nil {
		t.Fatalf("NewFileLogger failed: %v", err)
	}
	raw := make([]byte, MaxAPDUData+100)
	l.Log(Event{ContextID: "big", APDU: &APDUEvent{Choice: 0xE700, Size: len(raw), Data: raw}})
	l.Log(Event{ContextID: "small", APDU: NewAPDUEvent(0xE200, []byte{1, 2, 3})})
	if written, failed := l.Written(); written != 2 || failed != 0 {
		t.Errorf("Written() = %d, %d; want 2, 0", written, failed)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Errorf("second Close failed: %v", err)
	}
	if len(raw) != MaxAPDUData+100 {
		t.Errorf("caller's data was modified")
	}

	r, err := NewReader(path)
	if err != nil {
		t.Fatalf("NewReader failed: %v", err)
	}
	got := readAll(t, r)
	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	big := got[0].APDU
	if big == nil || len(big.Data) != MaxAPDUData || !big.Truncated || big.Size != len(raw) {
		t.Errorf("big APDU not capped: %+v", big)
	}
	if small := got[1].APDU; small == nil || small.Truncated || len(small.Data) != 3 {
		t.Errorf("small APDU changed: %+v", small)
	}
}

func TestDecodeEventRejectsOversized(t *testing.T) {
	if _, err := DecodeEvent(make([]byte, MaxEventSize+1)); !errors.Is(err, ErrEventTooLarge) {
		t.Errorf("got %v, want ErrEventTooLarge", err)
	}

	// Nesting beyond what an event can contain.
	deep := bytes.Repeat([]byte{0x81}, 20)
	deep = append(deep, 0x00)
	if _, err := DecodeEvent(deep); err == nil {
		t.Errorf("deeply nested input decoded without error")
	}
}

type countingLogger struct{ n int }

func (c *countingLogger) Log(Event) { c.n++ }

func TestMultiLogger(t *testing.T) {
	a, b := &countingLogger{}, &countingLogger{}
	m := NewMultiLogger(a, nil, b, NoopLogger{})
	m.Log(Event{})
	m.Log(Event{})
	if a.n != 2 || b.n != 2 {
		t.Errorf("got %d and %d events, want 2 each", a.n, b.n)
	}
}

func TestSlogAdapter(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	NewSlogAdapter(logger).Log(Event{
		ContextID: "ctx-9",
		Direction: DirectionIn,
		Layer:     LayerAPDU,
		Category:  CategoryMessage,
		APDU:      &APDUEvent{Choice: 0xE700, Size: 20, InvokeID: u16(7), EventType: u16(3357)},
	})

	var entry map[string]any
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log output: %v", err)
	}
	checks := map[string]any{
		"contextID": "ctx-9",
		"direction": "RX",
		"layer":     "APDU",
		"invokeID":  float64(7),
		"eventType": float64(3357),
		"size":      float64(20),
	}
	for k, want := range checks {
		if entry[k] != want {
			t.Errorf("%s: got %v, want %v", k, entry[k], want)
		}
	}
}
