package service

import (
	"slices"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phd-protocol/phd-go/pkg/data"
	"github.com/phd-protocol/phd-go/pkg/interaction"
	"github.com/phd-protocol/phd-go/pkg/mder"
	"github.com/phd-protocol/phd-go/pkg/model"
	"github.com/phd-protocol/phd-go/pkg/nomenclature"
	"github.com/phd-protocol/phd-go/pkg/specialization"
	"github.com/phd-protocol/phd-go/pkg/wire"
)

// withStore adds a PM-store with handle 5 and segments 0 and 1.
func withStore(t *testing.T, c *Context, capabilities uint16) *model.PMStore {
	t.Helper()
	store := model.NewPMStore(5)
	store.Capabilities = capabilities
	for _, inst := range []uint16{0, 1} {
		seg := model.NewPMSegment(inst)
		seg.UsageCount = 4
		store.AddSegment(seg)
	}
	require.NoError(t, c.MDS().AddObject(store))
	return store
}

// actionResult answers the single request sent on l with a confirmed
// action result carrying info.
func actionResult(t *testing.T, l *link, info wire.Encoder) *wire.APDU {
	t.Helper()
	d := singleData(t, l)
	require.Equal(t, wire.RoivConfirmedAction, d.Choice)
	arg := d.Body.(*wire.ActionArgument)
	b, err := wire.AnyOf(info)
	require.NoError(t, err)
	return wire.NewPRST(wire.DataAPDU{
		InvokeID: d.InvokeID,
		Choice:   wire.RorsConfirmedAction,
		Body:     &wire.ActionResult{Handle: arg.Handle, ActionType: arg.ActionType, Info: b},
	})
}

func usageCount(v uint32) wire.AttributeList {
	w := mder.NewWriter()
	w.PutUint32(v)
	return wire.AttributeList{{AttributeID: nomenclature.MDC_ATTR_SEG_USAGE_CNT, Value: wire.Any(w.Bytes())}}
}

func TestActionResults(t *testing.T) {
	all := wire.SegmSelection{Choice: wire.AllSegmentsChosen}
	infos := wire.SegmentInfoList{
		{InstNo: 0, Attributes: usageCount(9)},
		{InstNo: 2, Attributes: usageCount(3)},
	}
	xfer := wire.TrigSegmDataXferRsp{InstNo: 1, Response: wire.TrigXferSegmEmpty}

	tests := []struct {
		name         string
		capabilities uint16
		send         func(c *Context, done RequestCallback) (*interaction.Request, error)
		reply        wire.Encoder
		want         any
		segments     int
		segmentInfo  bool
		check        func(t *testing.T, store *model.PMStore)
	}{
		{
			name: "segment info",
			send: func(c *Context, done RequestCallback) (*interaction.Request, error) {
				return c.GetSegmentInfo(5, all, done)
			},
			reply:       infos,
			want:        infos,
			segments:    3,
			segmentInfo: true,
			check: func(t *testing.T, store *model.PMStore) {
				seg, ok := store.Segment(0)
				require.True(t, ok)
				assert.Equal(t, uint32(9), seg.UsageCount)
			},
		},
		{
			name:         "clear with remove",
			capabilities: wire.PMSCClearSegmRemove,
			send: func(c *Context, done RequestCallback) (*interaction.Request, error) {
				return c.ClearSegments(5, all, done)
			},
			reply:    all,
			want:     all,
			segments: 0,
		},
		{
			name: "clear in place",
			send: func(c *Context, done RequestCallback) (*interaction.Request, error) {
				return c.ClearSegments(5, wire.SegmSelection{Choice: wire.SegmIDListChosen, IDs: []uint16{1}}, done)
			},
			reply:    wire.SegmSelection{Choice: wire.SegmIDListChosen, IDs: []uint16{1}},
			want:     wire.SegmSelection{Choice: wire.SegmIDListChosen, IDs: []uint16{1}},
			segments: 2,
			check: func(t *testing.T, store *model.PMStore) {
				s0, _ := store.Segment(0)
				s1, _ := store.Segment(1)
				assert.Equal(t, uint32(4), s0.UsageCount)
				assert.Zero(t, s1.UsageCount)
			},
		},
		{
			name: "trigger transfer",
			send: func(c *Context, done RequestCallback) (*interaction.Request, error) {
				return c.TriggerSegmentDataTransfer(5, 1, done)
			},
			reply:    xfer,
			want:     xfer,
			segments: 2,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, l := operatingManager(t, DefaultManagerConfig())
			store := withStore(t, c, tc.capabilities)

			var events []EventType
			c.OnEvent(func(ev Event) { events = append(events, ev.Type) })

			var done *interaction.Request
			_, err := tc.send(c, func(r *interaction.Request) { done = r })
			require.NoError(t, err)
			require.NoError(t, c.Process(actionResult(t, l, tc.reply)))

			require.NotNil(t, done)
			require.NoError(t, done.Err)
			assert.Equal(t, tc.want, done.ReturnData)
			assert.Equal(t, tc.segments, store.SegmentCount())
			assert.Zero(t, c.PendingRequests())
			assert.Equal(t, tc.segmentInfo, slices.Contains(events, EventSegmentInfo))
			if tc.check != nil {
				tc.check(t, store)
			}
		})
	}
}

func TestSegmentActionsNeedPMStore(t *testing.T) {
	c, l := operatingManager(t, DefaultManagerConfig())
	_, err := c.GetSegmentInfo(specialization.ThermometerHandle, wire.SegmSelection{Choice: wire.AllSegmentsChosen}, nil)
	assert.ErrorIs(t, err, ErrNotPMStore)
	assert.Empty(t, l.drain())
}

func TestDataRequestResponseForwardsEvent(t *testing.T) {
	c, l := operatingManager(t, DefaultManagerConfig())

	var got data.List
	c.OnMeasurement(func(handle uint16, list data.List) {
		assert.Equal(t, model.MDSHandle, handle)
		got = append(got, list...)
	})

	var done *interaction.Request
	_, err := c.DataRequest(wire.DataRequest{ID: 1}, func(r *interaction.Request) { done = r })
	require.NoError(t, err)

	ev, err := specialization.ThermometerMeasurement(1, 36.5, time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	rsp := wire.DataResponse{EventType: ev.EventType, EventInfo: ev.EventInfo}
	require.NoError(t, c.Process(actionResult(t, l, rsp)))

	require.NotNil(t, done)
	require.NoError(t, done.Err)
	assert.Equal(t, rsp, done.ReturnData)
	require.Len(t, got, 1)
	n, _ := c.MDS().ObjectByHandle(specialization.ThermometerHandle)
	assert.Equal(t, wire.Float(mder.EncodeFloat(36.5)), n.(*model.Numeric).SimpleNuObservedValue)
}

func basicValue(v uint16) []byte {
	w := mder.NewWriter()
	w.PutUint16(v)
	return w.Bytes()
}

func TestScannerEvents(t *testing.T) {
	const (
		peri = 10
		epi  = 11
	)
	thermo := specialization.ThermometerHandle
	obs := []wire.ObservationScan{{Handle: thermo, Attributes: wire.AttributeList{
		{AttributeID: nomenclature.MDC_ATTR_NU_VAL_OBS_BASIC, Value: basicValue(0x0172)},
	}}}

	tests := []struct {
		name      string
		handle    uint16
		eventType uint16
		info      wire.Encoder
		want      int
		dropped   float64
	}{
		{"periodic grouped", peri, nomenclature.MDC_NOTI_BUF_SCAN_REPORT_GROUPED,
			wire.ScanReportInfoGrouped{Observations: []wire.ObservationScanGrouped{basicValue(0x0172)}}, 1, 0},
		{"periodic multi-person var", peri, nomenclature.MDC_NOTI_BUF_SCAN_REPORT_MP_VAR,
			wire.ScanReportInfoMPVar{Persons: []wire.ScanReportPerVar{{PersonID: 2, Observations: obs}}}, 1, 0},
		{"episodic var", epi, nomenclature.MDC_NOTI_UNBUF_SCAN_REPORT_VAR,
			wire.ScanReportInfoVar{Observations: obs}, 1, 0},
		{"episodic report to periodic scanner", peri, nomenclature.MDC_NOTI_UNBUF_SCAN_REPORT_GROUPED,
			wire.ScanReportInfoGrouped{Observations: []wire.ObservationScanGrouped{basicValue(0x0172)}}, 0, 1},
		{"periodic report to episodic scanner", epi, nomenclature.MDC_NOTI_BUF_SCAN_REPORT_VAR,
			wire.ScanReportInfoVar{Observations: obs}, 0, 1},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reg := prometheus.NewRegistry()
			cfg := DefaultManagerConfig()
			cfg.Registerer = reg
			c, l := operatingManager(t, cfg)

			ps := model.NewPeriCfgScanner(peri)
			ps.ScanHandleAttrValMap = wire.HandleAttrValMap{{
				Handle:     thermo,
				AttrValMap: wire.AttrValMap{{AttributeID: nomenclature.MDC_ATTR_NU_VAL_OBS_BASIC, Length: 2}},
			}}
			require.NoError(t, c.MDS().AddObject(ps))
			require.NoError(t, c.MDS().AddObject(model.NewEpiCfgScanner(epi)))

			var got data.List
			c.OnMeasurement(func(handle uint16, list data.List) {
				assert.Equal(t, tc.handle, handle)
				got = append(got, list...)
			})

			apdu, err := confirmedReport(9, tc.handle, tc.eventType, tc.info)
			require.NoError(t, err)
			require.NoError(t, c.Process(apdu))

			d := singleData(t, l)
			assert.Equal(t, wire.RorsConfirmedEventReport, d.Choice)
			assert.Equal(t, uint16(9), d.InvokeID)
			assert.Len(t, got, tc.want)
			assert.Equal(t, tc.dropped, counterValue(t, reg, "phd_dropped_events_total"))
			if tc.want > 0 {
				n, _ := c.MDS().ObjectByHandle(thermo)
				assert.Equal(t, wire.SFloat(0x0172), n.(*model.Numeric).BasicNuObservedValue)
			}
		})
	}
}
