package persistence

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/phd-protocol/phd-go/pkg/wire"
)

var sysID = []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77}

func sampleConfig() wire.ConfigObjectList {
	return wire.ConfigObjectList{
		{
			Class:  6,
			Handle: 1,
			Attributes: wire.AttributeList{
				{AttributeID: 2351, Value: wire.Any{0x00, 0x02, 0x4B, 0x5C}},
				{AttributeID: 2454, Value: wire.Any{0x17, 0xA0}},
			},
		},
	}
}

func TestMemoryStore(t *testing.T) {
	s := NewMemoryStore()

	t.Run("missing", func(t *testing.T) {
		_, ok, err := s.Lookup(sysID, 0x4000)
		if err != nil || ok {
			t.Fatalf("Lookup() = %v, %v; want false, nil", ok, err)
		}
	})

	t.Run("extended is per system", func(t *testing.T) {
		if err := s.Save(sysID, 0x4000, sampleConfig()); err != nil {
			t.Fatalf("Save() error = %v", err)
		}
		got, ok, _ := s.Lookup(sysID, 0x4000)
		if !ok {
			t.Fatal("Lookup() did not find saved config")
		}
		if diff := cmp.Diff(sampleConfig(), got); diff != "" {
			t.Errorf("config mismatch (-want +got):\n%s", diff)
		}
		if _, ok, _ := s.Lookup([]byte{1}, 0x4000); ok {
			t.Error("extended config leaked to another system id")
		}
	})

	t.Run("standard is shared", func(t *testing.T) {
		if err := s.RegisterStandard(0x0320, sampleConfig()); err != nil {
			t.Fatalf("RegisterStandard() error = %v", err)
		}
		if _, ok, _ := s.Lookup([]byte{9, 9}, 0x0320); !ok {
			t.Error("standard config not found for arbitrary agent")
		}
	})

	t.Run("register rejects extended id", func(t *testing.T) {
		if err := s.RegisterStandard(0x4001, sampleConfig()); err == nil {
			t.Error("RegisterStandard(0x4001) should fail")
		}
	})

	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestFileStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "configs")
	s := NewFileStore(dir)

	if _, ok, err := s.Lookup(sysID, 0x4000); err != nil || ok {
		t.Fatalf("Lookup() on empty dir = %v, %v", ok, err)
	}

	if err := s.Save(sysID, 0x4000, sampleConfig()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "0011223344556677-4000.cfg")); err != nil {
		t.Fatalf("record file missing: %v", err)
	}

	// A fresh store over the same directory sees the record.
	s2 := NewFileStore(dir)
	got, ok, err := s2.Lookup(sysID, 0x4000)
	if err != nil || !ok {
		t.Fatalf("Lookup() = %v, %v", ok, err)
	}
	if diff := cmp.Diff(sampleConfig(), got); diff != "" {
		t.Errorf("config mismatch (-want +got):\n%s", diff)
	}

	if err := s2.Remove(sysID, 0x4000); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := s2.Remove(sysID, 0x4000); err != nil {
		t.Errorf("second Remove() error = %v", err)
	}
	if _, ok, _ := s2.Lookup(sysID, 0x4000); ok {
		t.Error("config still present after Remove")
	}
}

func TestFileStoreStandardStaysInMemory(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)
	if err := s.RegisterStandard(0x0320, sampleConfig()); err != nil {
		t.Fatalf("RegisterStandard() error = %v", err)
	}
	if _, ok, _ := s.Lookup(nil, 0x0320); !ok {
		t.Error("standard config not found")
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("standard config written to disk: %d files", len(entries))
	}
}

func TestFileStoreCorruptRecord(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(dir)
	if err := os.WriteFile(filepath.Join(dir, "0011223344556677-4000.cfg"), []byte{0xFF, 0x00}, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, err := s.Lookup(sysID, 0x4000); err == nil {
		t.Error("Lookup() of corrupt record should fail")
	}
}
