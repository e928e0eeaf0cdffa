package wire

import (
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phd-protocol/phd-go/pkg/mder"
)

func roundTrip[T Encoder](t *testing.T, in T, dec func(*mder.Reader) (T, error)) {
	t.Helper()
	b, err := Marshal(in)
	require.NoError(t, err)
	out, err := Unmarshal(b, dec)
	require.NoError(t, err)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("round trip mismatch (-in +out):\n%s", diff)
	}
}

func TestGetPRSTBytes(t *testing.T) {
	a := NewPRST(DataAPDU{
		InvokeID: 1,
		Choice:   RoivGet,
		Body:     &GetArgument{Handle: 0},
	})
	b, err := EncodeAPDU(a)
	require.NoError(t, err)

	want := []byte{
		0xE7, 0x00, 0x00, 0x0E,
		0x00, 0x0C,
		0x00, 0x01,
		0x01, 0x03, 0x00, 0x06,
		0x00, 0x00,
		0x00, 0x00, 0x00, 0x00,
	}
	assert.Equal(t, want, b)

	got, err := DecodeAPDU(b)
	require.NoError(t, err)
	assert.Equal(t, PRSTChosen, got.Choice)
	d := got.DataAPDU()
	require.NotNil(t, d)
	assert.Equal(t, RoivGet, d.Choice)
	arg, ok := d.Body.(*GetArgument)
	require.True(t, ok)
	assert.Equal(t, uint16(0), arg.Handle)
	assert.Empty(t, arg.AttributeIDs)
}

func TestAPDURoundTrip(t *testing.T) {
	info, err := AnyOf(PhdAssociationInformation{
		ProtocolVersion:     ProtocolVersion1,
		EncodingRules:       EncodingMDER,
		NomenclatureVersion: NomenclatureVersion1,
		SystemType:          SysTypeAgent,
		SystemID:            []byte{1, 2, 3, 4, 5, 6, 7, 8},
		DevConfigID:         0x0190,
		DataReqModeCapab:    DataReqModeCapab{Flags: DataReqSuppInitAgent, InitAgentCount: 1},
	})
	require.NoError(t, err)

	tests := []struct {
		name string
		apdu *APDU
	}{
		{"aarq", &APDU{Choice: AARQChosen, Body: &AARQ{
			AssocVersion: AssocVersion1,
			Protocols:    []DataProto{{ID: DataProtoID20601, Info: info}},
		}}},
		{"aare", &APDU{Choice: AAREChosen, Body: &AARE{
			Result:   AcceptedUnknownConfig,
			Selected: DataProto{ID: DataProtoID20601, Info: info},
		}}},
		{"rlrq", &APDU{Choice: RLRQChosen, Body: &RLRQ{Reason: ReleaseRequestNormal}}},
		{"rlre", &APDU{Choice: RLREChosen, Body: &RLRE{Reason: ReleaseResponseNormal}}},
		{"abrt", &APDU{Choice: ABRTChosen, Body: &ABRT{Reason: AbortConfigurationTimeout}}},
		{"event report", NewPRST(DataAPDU{InvokeID: 0x1234, Choice: RoivConfirmedEventReport, Body: &EventReportArgument{
			Handle: 0, EventTime: 0xFFFFFFFF, EventType: 3356, EventInfo: Any{0x40, 0x00, 0x00, 0x00, 0x00, 0x00},
		}})},
		{"set", NewPRST(DataAPDU{InvokeID: 2, Choice: RoivConfirmedSet, Body: &SetArgument{
			Handle:        5,
			Modifications: []AttributeModEntry{{Operator: ModifyReplace, Attribute: AVAType{AttributeID: 2387, Value: Any{0, 1}}}},
		}})},
		{"action result", NewPRST(DataAPDU{InvokeID: 3, Choice: RorsConfirmedAction, Body: &ActionResult{
			Handle: 11, ActionType: 3100, Info: Any{0, 1, 0, 0},
		}})},
		{"get result", NewPRST(DataAPDU{InvokeID: 4, Choice: RorsGet, Body: &GetResult{
			Handle: 0, Attributes: AttributeList{{AttributeID: 2628, Value: Any{0x40, 0x00}}},
		}})},
		{"roer", NewPRST(DataAPDU{InvokeID: 5, Choice: Roer, Body: &ErrorResult{Error: RoerNoSuchAction}})},
		{"rorj", NewPRST(DataAPDU{InvokeID: 6, Choice: Rorj, Body: &RejectResult{Problem: RejectUnrecognizedOperation}})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := EncodeAPDU(tt.apdu)
			require.NoError(t, err)
			got, err := DecodeAPDU(b)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.apdu, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeAPDUUnknownChoice(t *testing.T) {
	a, err := DecodeAPDU([]byte{0xE8, 0x00, 0x00, 0x02, 0xAA, 0xBB})
	require.NoError(t, err)
	assert.Equal(t, RawBody{0xAA, 0xBB}, a.Body)
	assert.Nil(t, a.DataAPDU())
}

func TestDecodeAPDUTruncated(t *testing.T) {
	_, err := DecodeAPDU([]byte{0xE7, 0x00, 0x00, 0x10, 0x00})
	assert.True(t, errors.Is(err, mder.ErrUnderrun))
}

func TestStructureRoundTrip(t *testing.T) {
	t.Run("attr val map", func(t *testing.T) {
		roundTrip(t, AttrValMap{{AttributeID: 2636, Length: 2}, {AttributeID: 2448, Length: 8}}, DecodeAttrValMap)
	})
	t.Run("handle attr val map", func(t *testing.T) {
		roundTrip(t, HandleAttrValMap{
			{Handle: 1, AttrValMap: AttrValMap{{AttributeID: 2646, Length: 4}}},
			{Handle: 2, AttrValMap: AttrValMap{{AttributeID: 2636, Length: 2}}},
		}, DecodeHandleAttrValMap)
	})
	t.Run("config report", func(t *testing.T) {
		roundTrip(t, ConfigReport{ConfigReportID: 0x4000, Objects: ConfigObjectList{
			{Class: 6, Handle: 1, Attributes: AttributeList{{AttributeID: 2351, Value: Any{0, 2, 0x4B, 0x5C}}}},
		}}, DecodeConfigReport)
	})
	t.Run("enum obs value", func(t *testing.T) {
		roundTrip(t, EnumObsValue{MetricID: 1, State: 0, Value: EnumVal{Choice: EnumValText, Text: []byte("ok")}}, DecodeEnumObsValue)
		roundTrip(t, EnumObsValue{MetricID: 2, Value: EnumVal{Choice: EnumValBitStr, BitStr: 0x80000001}}, DecodeEnumObsValue)
	})
	t.Run("nu obs value cmp", func(t *testing.T) {
		roundTrip(t, NuObsValueCmp{{MetricID: 18949, UnitCode: 3872, Value: NewFloat(120)}}, DecodeNuObsValueCmp)
	})
	t.Run("basic cmp", func(t *testing.T) {
		roundTrip(t, BasicNuObsValueCmp{NewSFloat(120), NewSFloat(80), NewSFloat(93.5)}, DecodeBasicNuObsValueCmp)
	})
	t.Run("scan fixed", func(t *testing.T) {
		roundTrip(t, ScanReportInfoFixed{DataReqID: 0xF000, ScanReportNo: 3, Observations: []ObservationScanFixed{
			{Handle: 1, ObsData: []byte{0xF4, 0xB5, 0x20, 0x24, 0x01, 0x02, 0x03, 0x04, 0x05, 0x00}},
		}}, DecodeScanReportInfoFixed)
	})
	t.Run("scan mp var", func(t *testing.T) {
		roundTrip(t, ScanReportInfoMPVar{ScanReportNo: 1, Persons: []ScanReportPerVar{
			{PersonID: 7, Observations: []ObservationScan{{Handle: 2, Attributes: AttributeList{{AttributeID: 2646, Value: Any{0, 0, 0, 1}}}}}},
		}}, DecodeScanReportInfoMPVar)
	})
	t.Run("scan mp grouped", func(t *testing.T) {
		roundTrip(t, ScanReportInfoMPGrouped{Persons: []ScanReportPerGrouped{{PersonID: 1, Observation: ObservationScanGrouped{1, 2}}}}, DecodeScanReportInfoMPGrouped)
	})
	t.Run("segment entry map", func(t *testing.T) {
		roundTrip(t, PmSegmentEntryMap{Header: SegmElemHdrAbsTime, Elements: []SegmEntryElem{
			{ClassID: 6, MetricType: Type{Partition: 2, Code: 29112}, Handle: 1, AttrValMap: AttrValMap{{AttributeID: 2646, Length: 4}}},
		}}, DecodePmSegmentEntryMap)
	})
	t.Run("segment selection", func(t *testing.T) {
		roundTrip(t, SegmSelection{Choice: AllSegmentsChosen}, DecodeSegmSelection)
		roundTrip(t, SegmSelection{Choice: SegmIDListChosen, IDs: []uint16{1, 3}}, DecodeSegmSelection)
		roundTrip(t, SegmSelection{Choice: AbsTimeRangeChosen, TimeRange: AbsTimeRange{
			From: AbsoluteTime{Century: 0x20, Year: 0x24, Month: 0x01, Day: 0x01},
			To:   AbsoluteTime{Century: 0x20, Year: 0x24, Month: 0x12, Day: 0x31},
		}}, DecodeSegmSelection)
	})
	t.Run("segment data event", func(t *testing.T) {
		roundTrip(t, SegmentDataEvent{
			Descr:   SegmDataEventDescr{SegmInstance: 0, EntryIndex: 0, EntryCount: 2, Status: SegmEvtStatusFirstEntry | SegmEvtStatusLastEntry},
			Entries: []byte{1, 2, 3, 4},
		}, DecodeSegmentDataEvent)
	})
	t.Run("data request", func(t *testing.T) {
		roundTrip(t, DataRequest{ID: 0x0100, Mode: DataReqStartStop | DataReqScopeAll | DataReqModeTimeNoLimit}, DecodeDataRequest)
	})
	t.Run("set time", func(t *testing.T) {
		roundTrip(t, SetTimeInvoke{DateTime: NewAbsoluteTime(time.Date(2024, 3, 5, 10, 20, 30, 0, time.UTC)), Accuracy: NewFloat(0)}, DecodeSetTimeInvoke)
	})
	t.Run("system model", func(t *testing.T) {
		roundTrip(t, SystemModel{Manufacturer: []byte("Acme"), ModelNumber: []byte("T-1")}, DecodeSystemModel)
	})
	t.Run("mds time info", func(t *testing.T) {
		roundTrip(t, MdsTimeInfo{CapState: 0x8000, SyncProtocol: 0x1234, SyncAccuracy: 0xFFFFFFFF, ResolutionAbsTime: 100}, DecodeMdsTimeInfo)
	})
	t.Run("scale range 16", func(t *testing.T) {
		in := ScaleRangeSpec{Width: 16, LowerAbsolute: NewFloat(-5), UpperAbsolute: NewFloat(5), LowerScaled: 0, UpperScaled: 0xFFFF}
		b, err := Marshal(in)
		require.NoError(t, err)
		assert.Len(t, b, 12)
		out, err := DecodeScaleRangeSpec(mder.NewReader(b), 16)
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})
}

func TestEnumValUnknownChoice(t *testing.T) {
	_, err := Unmarshal([]byte{0x00, 0x09, 0x00, 0x00}, DecodeEnumVal)
	assert.True(t, errors.Is(err, ErrUnknownChoice))
}

func TestBCD(t *testing.T) {
	assert.Equal(t, uint8(0x00), NumberToBCD(0))
	assert.Equal(t, uint8(0x99), NumberToBCD(99))
	assert.Equal(t, uint8(0x42), NumberToBCD(42))
	for n := uint8(0); n <= 99; n++ {
		if got := BCDToNumber(NumberToBCD(n)); got != n {
			t.Fatalf("BCDToNumber(NumberToBCD(%d)) = %d", n, got)
		}
	}
}

func TestCompareAbsoluteTime(t *testing.T) {
	base := AbsoluteTime{0x20, 0x24, 0x06, 0x15, 0x12, 0x30, 0x45, 0x50}
	assert.Equal(t, 0, CompareAbsoluteTime(base, base))

	fields := []func(*AbsoluteTime){
		func(a *AbsoluteTime) { a.Century = 0x21 },
		func(a *AbsoluteTime) { a.Year = 0x25 },
		func(a *AbsoluteTime) { a.Month = 0x07 },
		func(a *AbsoluteTime) { a.Day = 0x16 },
		func(a *AbsoluteTime) { a.Hour = 0x13 },
		func(a *AbsoluteTime) { a.Minute = 0x31 },
		func(a *AbsoluteTime) { a.Second = 0x46 },
		func(a *AbsoluteTime) { a.SecFraction = 0x51 },
	}
	for i, bump := range fields {
		later := base
		bump(&later)
		assert.Equal(t, -1, CompareAbsoluteTime(base, later), "field %d", i)
		assert.Equal(t, 1, CompareAbsoluteTime(later, base), "field %d", i)
	}

	// A higher-order field wins over every lower-order one.
	a := AbsoluteTime{0x20, 0x24, 0x01, 0x01, 0x23, 0x59, 0x59, 0x99}
	b := AbsoluteTime{0x20, 0x24, 0x01, 0x02, 0x00, 0x00, 0x00, 0x00}
	assert.Equal(t, -1, CompareAbsoluteTime(a, b))
}

func TestAbsoluteTimeConversion(t *testing.T) {
	tm := time.Date(2023, 11, 9, 8, 7, 6, 120*int(time.Millisecond), time.UTC)
	at := NewAbsoluteTime(tm)
	assert.Equal(t, AbsoluteTime{0x20, 0x23, 0x11, 0x09, 0x08, 0x07, 0x06, 0x12}, at)
	assert.True(t, at.Time(time.UTC).Equal(tm))
}

func TestMessageChoiceFamilies(t *testing.T) {
	assert.True(t, RoivConfirmedAction.IsInvoke())
	assert.False(t, RoivGet.IsResponse())
	assert.True(t, RorsGet.IsResponse())
	assert.True(t, Roer.IsResponse())
	assert.True(t, Rorj.IsResponse())
	assert.Equal(t, "RORS-GET", RorsGet.String())
}
