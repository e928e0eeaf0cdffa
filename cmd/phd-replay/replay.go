package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kr/pretty"

	"github.com/phd-protocol/phd-go/pkg/data"
	"github.com/phd-protocol/phd-go/pkg/model"
	"github.com/phd-protocol/phd-go/pkg/service"
)

// Options controls the output of Run.
type Options struct {
	// Format is json, xml or text.
	Format string

	// Dump prints the DIM tree when the trace is done.
	Dump bool
}

// ReadTrace parses a hex trace.
func ReadTrace(r io.Reader) ([][]byte, error) {
	var out [][]byte
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	line := 0
	for sc.Scan() {
		line++
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		s = strings.NewReplacer(" ", "", ":", "", "\t", "").Replace(s)
		b, err := hex.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, b)
	}
	return out, sc.Err()
}

func render(format string, l data.List) ([]byte, error) {
	switch format {
	case "json":
		return data.EncodeJSON(l)
	case "xml":
		return data.EncodeXML(l)
	case "text":
		return []byte(data.EncodeText(l)), nil
	}
	return nil, fmt.Errorf("unknown format %q", format)
}

// Run replays the trace at path through a manager built from cfg. Decoded
// data is written to out; APDUs that fail are reported on errOut and the
// replay continues.
func Run(path string, cfg service.Config, opts Options, out, errOut io.Writer) error {
	if _, err := render(opts.Format, nil); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	apdus, err := ReadTrace(f)
	if err != nil {
		return err
	}

	// Replies to the agent go nowhere.
	tx := service.TransmitterFunc(func([]byte) error { return nil })
	ctx, err := service.NewContext(cfg, tx)
	if err != nil {
		return err
	}

	emit := func(kind string, handle uint16, l data.List) {
		b, err := render(opts.Format, l)
		if err != nil {
			fmt.Fprintf(errOut, "render %s: %v\n", kind, err)
			return
		}
		fmt.Fprintf(out, "# %s handle=%d\n%s\n", kind, handle, strings.TrimRight(string(b), "\n"))
	}
	ctx.OnEvent(func(ev service.Event) {
		switch ev.Type {
		case service.EventMeasurement, service.EventSegmentData, service.EventSegmentInfo, service.EventAttributes:
			emit(strings.ToLower(ev.Type.String()), ev.Handle, ev.Data)
		case service.EventAssociated, service.EventConfigured, service.EventDisassociated:
			line := "# " + strings.ToLower(ev.Type.String())
			if ev.Reason != "" {
				line += " " + ev.Reason
			}
			fmt.Fprintln(out, line)
		}
	})

	if err := ctx.TransportConnected(); err != nil {
		return err
	}
	for i, b := range apdus {
		if err := ctx.ProcessAPDU(b); err != nil {
			fmt.Fprintf(errOut, "apdu %d: %v\n", i+1, err)
		}
	}

	if opts.Dump {
		fmt.Fprintf(out, "# state %s\n", ctx.State())
		dumpMDS(out, ctx.MDS())
	}
	return nil
}

// dumpMDS prints the object tree followed by a per-segment summary of
// every PM-store.
func dumpMDS(out io.Writer, m *model.MDS) {
	pretty.Fprintf(out, "%# v\n", m.Objects())
	for _, p := range m.PMStores() {
		fmt.Fprintf(out, "# pm-store handle=%d segments=%d/%d\n", p.Handle(), p.SegmentCount(), p.NumberOfSegments)
		for _, seg := range p.Segments() {
			fmt.Fprintf(out, "#   segment %d usage=%d received=%d bytes=%d\n",
				seg.InstNo(), seg.UsageCount, seg.EmpiricUsageCount, len(seg.FixedData))
		}
	}
}
