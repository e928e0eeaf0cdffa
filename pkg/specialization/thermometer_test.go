package specialization

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phd-protocol/phd-go/pkg/data"
	"github.com/phd-protocol/phd-go/pkg/mder"
	"github.com/phd-protocol/phd-go/pkg/nomenclature"
	"github.com/phd-protocol/phd-go/pkg/persistence"
	"github.com/phd-protocol/phd-go/pkg/wire"
)

func TestThermometerMeasurementDecodes(t *testing.T) {
	m, err := ThermometerMDS([]byte{1, 2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, err)
	require.Equal(t, 1, m.ObjectCount())

	at := time.Date(2024, 3, 14, 9, 26, 53, 0, time.UTC)
	ev, err := ThermometerMeasurement(7, 37.5, at)
	require.NoError(t, err)
	assert.Equal(t, nomenclature.MDC_NOTI_SCAN_REPORT_FIXED, ev.EventType)

	rep, err := wire.DecodeScanReportInfoFixed(mder.NewReader(ev.EventInfo))
	require.NoError(t, err)
	assert.Equal(t, uint16(7), rep.ScanReportNo)

	list, err := m.UpdateFixed(rep.Observations)
	require.NoError(t, err)
	require.Len(t, list, 1)

	e := list[0]
	require.Len(t, e.Children, 2)
	id, _ := e.MetaValue(data.MetaMetricID)
	assert.Equal(t, "19292", id)
	assert.Equal(t, "Simple-Nu-Observed-Value", e.Children[0].Name)
	assert.Equal(t, "Absolute-Time-Stamp", e.Children[1].Name)
}

func TestRegister(t *testing.T) {
	s := persistence.NewMemoryStore()
	require.NoError(t, Register(s))

	objs, ok, err := s.Lookup(nil, ThermometerConfigID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, ThermometerConfig(), objs)
}
