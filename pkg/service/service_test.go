package service

import (
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/phd-protocol/phd-go/pkg/data"
	"github.com/phd-protocol/phd-go/pkg/interaction"
	"github.com/phd-protocol/phd-go/pkg/log"
	"github.com/phd-protocol/phd-go/pkg/mder"
	"github.com/phd-protocol/phd-go/pkg/model"
	"github.com/phd-protocol/phd-go/pkg/nomenclature"
	"github.com/phd-protocol/phd-go/pkg/persistence"
	"github.com/phd-protocol/phd-go/pkg/service/mocks"
	"github.com/phd-protocol/phd-go/pkg/specialization"
	"github.com/phd-protocol/phd-go/pkg/wire"
)

var agentSystemID = []byte{0x00, 0x11, 0x22, 0x33, 0x44, 0x55, 0x66, 0x77}

// link queues APDUs sent by one side until the test delivers them.
type link struct {
	mu  sync.Mutex
	out [][]byte
}

func (l *link) Send(b []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.out = append(l.out, append([]byte(nil), b...))
	return nil
}

func (l *link) drain() [][]byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := l.out
	l.out = nil
	return out
}

// decoded drains l and decodes every APDU.
func (l *link) decoded(t *testing.T) []*wire.APDU {
	t.Helper()
	var out []*wire.APDU
	for _, b := range l.drain() {
		a, err := wire.DecodeAPDU(b)
		require.NoError(t, err)
		out = append(out, a)
	}
	return out
}

type recordLogger struct {
	mu     sync.Mutex
	events []log.Event
}

func (r *recordLogger) Log(ev log.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, ev)
}

// pair is a manager and a thermometer agent connected by two links.
type pair struct {
	t         *testing.T
	mgr, agt  *Context
	toAgent   *link
	toManager *link
}

func newPair(t *testing.T, mcfg Config) *pair {
	t.Helper()
	p := &pair{t: t, toAgent: &link{}, toManager: &link{}}

	var err error
	p.mgr, err = NewContext(mcfg, p.toAgent)
	require.NoError(t, err)

	mds, err := specialization.ThermometerMDS(agentSystemID)
	require.NoError(t, err)
	acfg := DefaultAgentConfig()
	acfg.Agent = AgentConfig{MDS: mds, Config: specialization.ThermometerConfig()}
	p.agt, err = NewContext(acfg, p.toManager)
	require.NoError(t, err)

	require.NoError(t, p.mgr.TransportConnected())
	require.NoError(t, p.agt.TransportConnected())
	return p
}

// pump delivers queued APDUs in both directions until the links are quiet.
func (p *pair) pump() {
	p.t.Helper()
	for i := 0; i < 50; i++ {
		toAgent, toManager := p.toAgent.drain(), p.toManager.drain()
		if len(toAgent) == 0 && len(toManager) == 0 {
			return
		}
		for _, b := range toAgent {
			require.NoError(p.t, p.agt.ProcessAPDU(b))
		}
		for _, b := range toManager {
			require.NoError(p.t, p.mgr.ProcessAPDU(b))
		}
	}
	p.t.Fatal("links did not settle")
}

func (p *pair) associate() {
	p.t.Helper()
	require.NoError(p.t, p.agt.Associate())
	p.pump()
	require.Equal(p.t, StateOperating, p.mgr.State())
	require.Equal(p.t, StateOperating, p.agt.State())
}

func thermometerAARQ(t *testing.T, devConfigID uint16) *wire.APDU {
	t.Helper()
	info, err := wire.AnyOf(wire.PhdAssociationInformation{
		ProtocolVersion:     wire.ProtocolVersion1,
		EncodingRules:       wire.EncodingMDER,
		NomenclatureVersion: wire.NomenclatureVersion1,
		SystemType:          wire.SysTypeAgent,
		SystemID:            agentSystemID,
		DevConfigID:         devConfigID,
	})
	require.NoError(t, err)
	return &wire.APDU{Choice: wire.AARQChosen, Body: &wire.AARQ{
		AssocVersion: wire.AssocVersion1,
		Protocols:    []wire.DataProto{{ID: wire.DataProtoID20601, Info: info}},
	}}
}

// operatingManager returns a manager associated with a thermometer that
// uses the standard configuration.
func operatingManager(t *testing.T, cfg Config) (*Context, *link) {
	t.Helper()
	l := &link{}
	c, err := NewContext(cfg, l)
	require.NoError(t, err)
	require.NoError(t, c.TransportConnected())
	require.NoError(t, c.Process(thermometerAARQ(t, specialization.ThermometerConfigID)))
	require.Equal(t, StateOperating, c.State())

	sent := l.decoded(t)
	require.Len(t, sent, 1)
	aare, ok := sent[0].Body.(*wire.AARE)
	require.True(t, ok)
	require.Equal(t, wire.AcceptedAssoc, aare.Result)
	return c, l
}

func singleData(t *testing.T, l *link) *wire.DataAPDU {
	t.Helper()
	sent := l.decoded(t)
	require.Len(t, sent, 1)
	d := sent[0].DataAPDU()
	require.NotNil(t, d)
	return d
}

func TestAssociateKnownConfig(t *testing.T) {
	plog := &recordLogger{}
	mcfg := DefaultManagerConfig()
	mcfg.ProtocolLogger = plog
	p := newPair(t, mcfg)

	var events []EventType
	p.mgr.OnEvent(func(ev Event) { events = append(events, ev.Type) })

	p.associate()
	assert.Equal(t, []EventType{EventAssociated, EventConfigured}, events)
	assert.Equal(t, agentSystemID, p.mgr.PeerSystemID())
	assert.Equal(t, 1, p.mgr.MDS().ObjectCount())
	assert.Equal(t, specialization.ThermometerConfigID, p.mgr.MDS().DevConfigID)

	var states []string
	for _, ev := range plog.events {
		assert.Equal(t, p.mgr.ID(), ev.ContextID)
		if ev.StateChange != nil {
			states = append(states, ev.StateChange.NewState)
		}
	}
	assert.Equal(t, []string{"UNASSOCIATED", "OPERATING"}, states)
}

func TestAssociateUnknownConfig(t *testing.T) {
	store := persistence.NewMemoryStore()
	mcfg := DefaultManagerConfig()
	mcfg.ConfigStore = store
	p := newPair(t, mcfg)

	var configured int
	p.mgr.OnConfigured(func() { configured++ })
	p.agt.OnConfigured(func() { configured++ })

	p.associate()
	assert.Equal(t, 2, configured)
	assert.Equal(t, 1, p.mgr.MDS().ObjectCount())
	assert.Zero(t, p.agt.PendingRequests())

	objs, ok, err := store.Lookup(agentSystemID, specialization.ThermometerConfigID)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, specialization.ThermometerConfig(), objs)
}

func TestConfigurationRejected(t *testing.T) {
	mcfg := DefaultManagerConfig()
	mcfg.ConfigStore = persistence.NewMemoryStore()
	mcfg.AcceptUnknownConfig = false
	p := newPair(t, mcfg)

	require.NoError(t, p.agt.Associate())
	p.pump()
	assert.Equal(t, StateWaitingForConfig, p.mgr.State())
	assert.Equal(t, StateConfigSending, p.agt.State())

	require.NoError(t, p.agt.RequestAbort())
	p.pump()
	assert.Equal(t, StateUnassociated, p.mgr.State())
	assert.Equal(t, StateUnassociated, p.agt.State())
}

func TestAssociationRejected(t *testing.T) {
	l := &link{}
	c, err := NewContext(DefaultManagerConfig(), l)
	require.NoError(t, err)
	require.NoError(t, c.TransportConnected())

	aarq := thermometerAARQ(t, specialization.ThermometerConfigID)
	aarq.Body.(*wire.AARQ).Protocols[0].ID = 1234
	require.NoError(t, c.Process(aarq))

	sent := l.decoded(t)
	require.Len(t, sent, 1)
	aare := sent[0].Body.(*wire.AARE)
	assert.Equal(t, wire.RejectedNoCommonProtocol, aare.Result)
	assert.Equal(t, StateUnassociated, c.State())
}

func TestMeasurement(t *testing.T) {
	p := newPair(t, DefaultManagerConfig())
	p.associate()

	var got data.List
	p.mgr.OnMeasurement(func(handle uint16, l data.List) {
		assert.Equal(t, model.MDSHandle, handle)
		got = append(got, l...)
	})

	ev, err := specialization.ThermometerMeasurement(1, 37.2, time.Date(2026, 10, 14, 8, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	var done *interaction.Request
	_, err = p.agt.SendEvent(ev, true, func(r *interaction.Request) { done = r })
	require.NoError(t, err)
	assert.Equal(t, 1, p.agt.PendingRequests())
	p.pump()

	require.Len(t, got, 1)
	id, _ := got[0].MetaValue(data.MetaMetricID)
	assert.Equal(t, "19292", id)
	require.Len(t, got[0].Children, 2)

	require.NotNil(t, done)
	assert.NoError(t, done.Err)
	res, ok := done.ReturnData.(*wire.EventReportResult)
	require.True(t, ok)
	assert.Equal(t, nomenclature.MDC_NOTI_SCAN_REPORT_FIXED, res.EventType)
	assert.Zero(t, p.agt.PendingRequests())
}

func TestServiceGetMDSEncoding(t *testing.T) {
	tx := mocks.NewMockTransmitter(t)
	var sent [][]byte
	tx.EXPECT().Send(mock.Anything).Run(func(apdu []byte) { sent = append(sent, apdu) }).Return(nil)

	c, err := NewContext(DefaultManagerConfig(), tx)
	require.NoError(t, err)
	require.NoError(t, c.TransportConnected())
	require.NoError(t, c.Process(thermometerAARQ(t, specialization.ThermometerConfigID)))

	req, err := c.ServiceGet(model.MDSHandle, nil, nil)
	require.NoError(t, err)
	require.Len(t, sent, 2)

	a, err := wire.DecodeAPDU(sent[1])
	require.NoError(t, err)
	assert.Equal(t, wire.PRSTChosen, a.Choice)
	d := a.DataAPDU()
	require.NotNil(t, d)
	assert.Equal(t, wire.RoivGet, d.Choice)
	assert.Equal(t, req.InvokeID, d.InvokeID)
	get, ok := d.Body.(*wire.GetArgument)
	require.True(t, ok)
	assert.Equal(t, uint16(0), get.Handle)
	assert.Empty(t, get.AttributeIDs)
	assert.Equal(t, 1, c.PendingRequests())
}

func TestServiceGetOverLink(t *testing.T) {
	p := newPair(t, DefaultManagerConfig())
	p.associate()

	var done *interaction.Request
	_, err := p.mgr.ServiceGet(model.MDSHandle, nil, func(r *interaction.Request) { done = r })
	require.NoError(t, err)
	p.pump()

	require.NotNil(t, done)
	require.NoError(t, done.Err)
	e, ok := done.ReturnData.(*data.Entry)
	require.True(t, ok)
	assert.Equal(t, "MDS", e.Name)
	assert.Equal(t, "phd-go", string(p.mgr.MDS().SystemModel.Manufacturer))
	assert.Zero(t, p.mgr.PendingRequests())
}

func TestServiceGetUnknownObjectRejected(t *testing.T) {
	p := newPair(t, DefaultManagerConfig())
	p.associate()

	var done *interaction.Request
	_, err := p.mgr.ServiceGet(specialization.ThermometerHandle, nil, func(r *interaction.Request) { done = r })
	require.NoError(t, err)
	p.pump()

	require.NotNil(t, done)
	assert.ErrorIs(t, done.Err, ErrRejected)
	assert.Equal(t, StateOperating, p.mgr.State())
}

func TestSetTime(t *testing.T) {
	p := newPair(t, DefaultManagerConfig())
	p.associate()

	var done *interaction.Request
	at := time.Date(2026, 10, 14, 12, 30, 0, 0, time.UTC)
	_, err := p.mgr.SetTime(at, func(r *interaction.Request) { done = r })
	require.NoError(t, err)
	p.pump()

	require.NotNil(t, done)
	assert.NoError(t, done.Err)
	require.True(t, p.agt.MDS().DateAndTime.Present())
	assert.Equal(t, wire.NewAbsoluteTime(at), p.agt.MDS().DateAndTime.Get())
}

func TestRequestsNeedOperating(t *testing.T) {
	c, err := NewContext(DefaultManagerConfig(), &link{})
	require.NoError(t, err)
	require.NoError(t, c.TransportConnected())

	_, err = c.ServiceGet(model.MDSHandle, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidState)

	c, _ = operatingManager(t, DefaultManagerConfig())
	_, err = c.ClearSegments(specialization.ThermometerHandle, wire.SegmSelection{Choice: wire.AllSegmentsChosen}, nil)
	assert.ErrorIs(t, err, ErrNotPMStore)
	_, err = c.SetScannerOperationalState(specialization.ThermometerHandle, wire.OperationalEnabled, nil)
	assert.ErrorIs(t, err, ErrNotScanner)
	_, err = c.SendEvent(&wire.EventReportArgument{}, false, nil)
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestUnknownInvokeIDDropped(t *testing.T) {
	reg := prometheus.NewRegistry()
	cfg := DefaultManagerConfig()
	cfg.Registerer = reg
	c, l := operatingManager(t, cfg)

	err := c.Process(wire.NewPRST(wire.DataAPDU{
		InvokeID: 99,
		Choice:   wire.RorsGet,
		Body:     &wire.GetResult{Handle: 0},
	}))
	require.NoError(t, err)
	assert.Empty(t, l.drain())
	assert.Equal(t, StateOperating, c.State())
	assert.Equal(t, 1.0, counterValue(t, reg, "phd_dropped_responses_total"))
}

func counterValue(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	mfs, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range mfs {
		if mf.GetName() != name {
			continue
		}
		var sum float64
		for _, m := range mf.GetMetric() {
			sum += m.GetCounter().GetValue()
		}
		return sum
	}
	return 0
}

func confirmedReport(invokeID, handle, eventType uint16, info wire.Encoder) (*wire.APDU, error) {
	b, err := wire.AnyOf(info)
	if err != nil {
		return nil, err
	}
	return wire.NewPRST(wire.DataAPDU{
		InvokeID: invokeID,
		Choice:   wire.RoivConfirmedEventReport,
		Body:     &wire.EventReportArgument{Handle: handle, EventType: eventType, EventInfo: b},
	}), nil
}

func segmentEntry(rel uint32, v uint16) []byte {
	w := mder.NewWriter()
	w.PutUint32(rel)
	w.PutUint16(v)
	return w.Bytes()
}

func TestSegmentDataAcknowledgement(t *testing.T) {
	tests := []struct {
		name   string
		handle uint16
		index  uint32
		status uint16
		want   uint16
	}{
		{"accepted", 5, 0, wire.SegmEvtStatusFirstEntry | wire.SegmEvtStatusLastEntry,
			wire.SegmEvtStatusManagerConfirm | wire.SegmEvtStatusFirstEntry | wire.SegmEvtStatusLastEntry},
		{"agent abort", 5, 0, wire.SegmEvtStatusAgentAbort, wire.SegmEvtStatusManagerAbort},
		{"gap", 5, 3, 0, wire.SegmEvtStatusManagerAbort},
		{"not a PM-store", specialization.ThermometerHandle, 0, 0, wire.SegmEvtStatusManagerAbort},
		{"unknown handle", 42, 0, 0, wire.SegmEvtStatusManagerAbort},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c, l := operatingManager(t, DefaultManagerConfig())

			store := model.NewPMStore(5)
			seg := model.NewPMSegment(0)
			seg.EntryMap = wire.PmSegmentEntryMap{
				Header: wire.SegmElemHdrRelTime,
				Elements: []wire.SegmEntryElem{{
					ClassID:    nomenclature.MDC_MOC_VMO_METRIC_NU,
					MetricType: wire.Type{Partition: nomenclature.MDC_PART_SCADA, Code: nomenclature.MDC_TEMP_BODY},
					Handle:     specialization.ThermometerHandle,
					AttrValMap: wire.AttrValMap{{AttributeID: nomenclature.MDC_ATTR_NU_VAL_OBS_BASIC, Length: 2}},
				}},
			}
			store.AddSegment(seg)
			require.NoError(t, c.MDS().AddObject(store))

			var segments int
			c.OnSegmentData(func(uint16, data.List) { segments++ })

			ev := wire.SegmentDataEvent{
				Descr:   wire.SegmDataEventDescr{SegmInstance: 0, EntryIndex: tc.index, EntryCount: 1, Status: tc.status},
				Entries: segmentEntry(100, 0x0172),
			}
			apdu, err := confirmedReport(7, tc.handle, nomenclature.MDC_NOTI_SEGMENT_DATA, ev)
			require.NoError(t, err)
			require.NoError(t, c.Process(apdu))

			d := singleData(t, l)
			assert.Equal(t, wire.RorsConfirmedEventReport, d.Choice)
			assert.Equal(t, uint16(7), d.InvokeID)
			res := d.Body.(*wire.EventReportResult)
			assert.Equal(t, nomenclature.MDC_NOTI_SEGMENT_DATA, res.EventType)
			require.NotEmpty(t, res.ReplyInfo)

			sdr, err := wire.Unmarshal(res.ReplyInfo, wire.DecodeSegmentDataResult)
			require.NoError(t, err)
			assert.Equal(t, tc.want, sdr.Descr.Status)
			assert.Equal(t, tc.want&wire.SegmEvtStatusManagerConfirm != 0, segments == 1)
			if tc.want&wire.SegmEvtStatusManagerAbort != 0 {
				assert.Empty(t, seg.FixedData)
			}
		})
	}
}

func TestEventReportFromUnknownObject(t *testing.T) {
	c, l := operatingManager(t, DefaultManagerConfig())

	var measurements int
	c.OnMeasurement(func(uint16, data.List) { measurements++ })

	apdu, err := confirmedReport(3, 42, nomenclature.MDC_NOTI_UNBUF_SCAN_REPORT_VAR, wire.ScanReportInfoVar{})
	require.NoError(t, err)
	require.NoError(t, c.Process(apdu))

	d := singleData(t, l)
	assert.Equal(t, wire.RorsConfirmedEventReport, d.Choice)
	assert.Empty(t, d.Body.(*wire.EventReportResult).ReplyInfo)
	assert.Zero(t, measurements)
}

func TestWaitingForConfigRejectsOtherReports(t *testing.T) {
	l := &link{}
	c, err := NewContext(DefaultManagerConfig(), l)
	require.NoError(t, err)
	require.NoError(t, c.TransportConnected())
	require.NoError(t, c.Process(thermometerAARQ(t, 0x4000)))
	require.Equal(t, StateWaitingForConfig, c.State())

	sent := l.decoded(t)
	require.Len(t, sent, 1)
	assert.Equal(t, wire.AcceptedUnknownConfig, sent[0].Body.(*wire.AARE).Result)

	apdu, err := confirmedReport(1, 0, nomenclature.MDC_NOTI_SCAN_REPORT_FIXED, wire.ScanReportInfoFixed{})
	require.NoError(t, err)
	require.NoError(t, c.Process(apdu))

	d := singleData(t, l)
	assert.Equal(t, wire.Roer, d.Choice)
	assert.Equal(t, StateWaitingForConfig, c.State())

	require.NoError(t, c.RequestAbort())
	assert.Equal(t, StateUnassociated, c.State())
}

func TestRelease(t *testing.T) {
	p := newPair(t, DefaultManagerConfig())
	p.associate()

	var mgrReason, agtReason string
	p.mgr.OnDisassociated(func(r string) { mgrReason = r })
	p.agt.OnDisassociated(func(r string) { agtReason = r })

	require.NoError(t, p.mgr.RequestRelease())
	assert.Equal(t, StateDisassociating, p.mgr.State())
	p.pump()

	assert.Equal(t, StateUnassociated, p.mgr.State())
	assert.Equal(t, StateUnassociated, p.agt.State())
	assert.Equal(t, "released", mgrReason)
	assert.Equal(t, "released by peer", agtReason)
	assert.Zero(t, p.mgr.MDS().ObjectCount())
}

func TestAbort(t *testing.T) {
	p := newPair(t, DefaultManagerConfig())
	p.associate()

	var reason string
	p.mgr.OnDisassociated(func(r string) { reason = r })

	require.NoError(t, p.agt.RequestAbort())
	p.pump()
	assert.Equal(t, StateUnassociated, p.mgr.State())
	assert.Equal(t, StateUnassociated, p.agt.State())
	assert.Equal(t, wire.AbortUndefined.String(), reason)

	// A fresh association works after the abort.
	p.associate()
}

func TestRequestTimeoutAborts(t *testing.T) {
	cfg := DefaultManagerConfig()
	cfg.RequestTimeout = 20 * time.Millisecond
	c, l := operatingManager(t, cfg)

	done := make(chan *interaction.Request, 1)
	_, err := c.ServiceGet(model.MDSHandle, nil, func(r *interaction.Request) { done <- r })
	require.NoError(t, err)

	select {
	case r := <-done:
		assert.ErrorIs(t, r.Err, ErrTimeout)
	case <-time.After(2 * time.Second):
		t.Fatal("request did not time out")
	}
	require.Eventually(t, func() bool { return c.State() == StateUnassociated }, time.Second, 5*time.Millisecond)

	sent := l.decoded(t)
	require.Len(t, sent, 2)
	abrt, ok := sent[1].Body.(*wire.ABRT)
	require.True(t, ok)
	assert.Equal(t, wire.AbortResponseTimeout, abrt.Reason)
}

func TestTransportDisconnected(t *testing.T) {
	p := newPair(t, DefaultManagerConfig())
	p.associate()

	var reason string
	p.mgr.OnDisassociated(func(r string) { reason = r })
	require.NoError(t, p.mgr.TransportDisconnected())
	assert.Equal(t, StateDisconnected, p.mgr.State())
	assert.Equal(t, "transport disconnected", reason)
	assert.Empty(t, p.toAgent.drain())

	err := p.mgr.Process(&wire.APDU{Choice: wire.RLRQChosen, Body: &wire.RLRQ{}})
	assert.ErrorIs(t, err, ErrInvalidState)
}

func TestNewContextValidates(t *testing.T) {
	_, err := NewContext(DefaultAgentConfig(), &link{})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = NewContext(DefaultManagerConfig(), nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg := DefaultManagerConfig()
	cfg.RequestTimeout = 0
	_, err = NewContext(cfg, &link{})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
