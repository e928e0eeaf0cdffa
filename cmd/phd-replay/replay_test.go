package main

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phd-protocol/phd-go/pkg/model"
	"github.com/phd-protocol/phd-go/pkg/service"
	"github.com/phd-protocol/phd-go/pkg/specialization"
	"github.com/phd-protocol/phd-go/pkg/wire"
)

func thermometerTrace(t *testing.T) string {
	t.Helper()
	info, err := wire.AnyOf(wire.PhdAssociationInformation{
		ProtocolVersion:     wire.ProtocolVersion1,
		EncodingRules:       wire.EncodingMDER,
		NomenclatureVersion: wire.NomenclatureVersion1,
		SystemType:          wire.SysTypeAgent,
		SystemID:            []byte{1, 2, 3, 4, 5, 6, 7, 8},
		DevConfigID:         specialization.ThermometerConfigID,
	})
	require.NoError(t, err)
	aarq, err := wire.EncodeAPDU(&wire.APDU{Choice: wire.AARQChosen, Body: &wire.AARQ{
		AssocVersion: wire.AssocVersion1,
		Protocols:    []wire.DataProto{{ID: wire.DataProtoID20601, Info: info}},
	}})
	require.NoError(t, err)

	ev, err := specialization.ThermometerMeasurement(1, 36.5, time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	report, err := wire.EncodeAPDU(wire.NewPRST(wire.DataAPDU{
		InvokeID: 7,
		Choice:   wire.RoivEventReport,
		Body:     ev,
	}))
	require.NoError(t, err)

	// Mix in the accepted separators.
	var sb strings.Builder
	sb.WriteString("# thermometer\n\n")
	sb.WriteString(hex.EncodeToString(aarq) + "\n")
	for i, b := range report {
		if i > 0 {
			sb.WriteString(":")
		}
		sb.WriteString(hex.EncodeToString([]byte{b}))
	}
	sb.WriteString("\n")
	return sb.String()
}

func writeTrace(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "trace.hex")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadTrace(t *testing.T) {
	apdus, err := ReadTrace(strings.NewReader("# comment\nE2 00\n\n  e3:00:00:02 \n"))
	require.NoError(t, err)
	assert.Equal(t, [][]byte{{0xe2, 0x00}, {0xe3, 0x00, 0x00, 0x02}}, apdus)

	_, err = ReadTrace(strings.NewReader("e2 00\nzz\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestRunJSON(t *testing.T) {
	path := writeTrace(t, thermometerTrace(t))

	var out, errOut bytes.Buffer
	err := Run(path, service.DefaultManagerConfig(), Options{Format: "json"}, &out, &errOut)
	require.NoError(t, err)
	assert.Empty(t, errOut.String())

	s := out.String()
	assert.Contains(t, s, "# associated")
	assert.Contains(t, s, "# configured")
	assert.Contains(t, s, "# measurement handle=0")

	// The JSON body follows the measurement header.
	body := s[strings.Index(s, "# measurement"):]
	body = body[strings.Index(body, "\n")+1:]
	assert.True(t, json.Valid([]byte(strings.TrimSpace(body))), body)
	assert.Contains(t, body, "36.5")
}

func TestRunTextAndDump(t *testing.T) {
	path := writeTrace(t, thermometerTrace(t))

	var out, errOut bytes.Buffer
	err := Run(path, service.DefaultManagerConfig(), Options{Format: "text", Dump: true}, &out, &errOut)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "36.5")
	assert.Contains(t, out.String(), "# state OPERATING")
}

func TestDumpPMStores(t *testing.T) {
	m := model.NewMDS(nil)
	store := model.NewPMStore(5)
	store.NumberOfSegments = 3
	seg := model.NewPMSegment(2)
	seg.UsageCount = 4
	seg.EmpiricUsageCount = 1
	seg.FixedData = make([]byte, 6)
	store.AddSegment(seg)
	require.NoError(t, m.AddObject(store))

	var out bytes.Buffer
	dumpMDS(&out, m)
	assert.Contains(t, out.String(), "# pm-store handle=5 segments=1/3\n")
	assert.Contains(t, out.String(), "#   segment 2 usage=4 received=1 bytes=6\n")
}

func TestRunReportsBadAPDU(t *testing.T) {
	path := writeTrace(t, "e2 00 00 01 ff\n")

	var out, errOut bytes.Buffer
	err := Run(path, service.DefaultManagerConfig(), Options{Format: "xml"}, &out, &errOut)
	require.NoError(t, err)
	assert.Contains(t, errOut.String(), "apdu 1:")
}

func TestRunErrors(t *testing.T) {
	var out, errOut bytes.Buffer
	err := Run("missing.hex", service.DefaultManagerConfig(), Options{Format: "yaml"}, &out, &errOut)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown format")

	err = Run(filepath.Join(t.TempDir(), "missing.hex"), service.DefaultManagerConfig(), Options{Format: "json"}, &out, &errOut)
	require.Error(t, err)
}
