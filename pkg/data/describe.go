package data

import (
	"encoding/hex"
	"strconv"

	"github.com/phd-protocol/phd-go/pkg/nomenclature"
	"github.com/phd-protocol/phd-go/pkg/wire"
)

// Uint8 describes an INT-U8 value.
func Uint8(name string, v uint8) *Entry {
	return NewSimple(name, TypeUint8, strconv.FormatUint(uint64(v), 10))
}

// Uint16 describes an INT-U16 value.
func Uint16(name string, v uint16) *Entry {
	return NewSimple(name, TypeUint16, strconv.FormatUint(uint64(v), 10))
}

// Uint32 describes an INT-U32 value.
func Uint32(name string, v uint32) *Entry {
	return NewSimple(name, TypeUint32, strconv.FormatUint(uint64(v), 10))
}

// Float describes a FLOAT-Type value.
func Float(name string, v wire.Float) *Entry {
	return NewSimple(name, TypeFloat, FormatFloat(v.Value()))
}

// SFloat describes an SFLOAT-Type value.
func SFloat(name string, v wire.SFloat) *Entry {
	return NewSimple(name, TypeFloat, FormatFloat(v.Value()))
}

// FormatFloat renders v with the shortest representation that round
// trips, e.g. "120.5", "NaN", "+Inf".
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// String describes a printable octet string.
func String(name string, v []byte) *Entry {
	return NewSimple(name, TypeString, string(v))
}

// Octets describes an opaque octet string in hex.
func Octets(name string, v []byte) *Entry {
	return NewSimple(name, TypeOctets, hex.EncodeToString(v))
}

// Type describes a TYPE as a compound of its code and partition.
func Type(name string, t wire.Type) *Entry {
	return NewCompound(name,
		Uint16("code", t.Code),
		Uint16("partition", t.Partition),
	)
}

// AbsoluteTime describes an AbsoluteTime with each BCD field converted to
// its decimal value.
func AbsoluteTime(name string, t wire.AbsoluteTime) *Entry {
	return NewCompound(name,
		Uint8("century", wire.BCDToNumber(t.Century)),
		Uint8("year", wire.BCDToNumber(t.Year)),
		Uint8("month", wire.BCDToNumber(t.Month)),
		Uint8("day", wire.BCDToNumber(t.Day)),
		Uint8("hour", wire.BCDToNumber(t.Hour)),
		Uint8("minute", wire.BCDToNumber(t.Minute)),
		Uint8("second", wire.BCDToNumber(t.Second)),
		Uint8("sec-fractions", wire.BCDToNumber(t.SecFraction)),
	)
}

// HighResRelativeTime describes a high-resolution relative time.
func HighResRelativeTime(name string, t wire.HighResRelativeTime) *Entry {
	return Octets(name, t[:])
}

// AbsoluteTimeAdjust describes a time adjustment.
func AbsoluteTimeAdjust(name string, t wire.AbsoluteTimeAdjust) *Entry {
	return Octets(name, t[:])
}

// NuObsValue describes a full numeric observation.
func NuObsValue(name string, v wire.NuObsValue) *Entry {
	return NewCompound(name,
		Uint16("metric-id", v.MetricID),
		Uint16("state", v.State),
		Uint16("unit-code", v.UnitCode),
		Float("value", v.Value),
	)
}

// NuObsValueCmp describes a compound of numeric observations.
func NuObsValueCmp(name string, c wire.NuObsValueCmp) *Entry {
	e := NewCompound(name)
	for _, v := range c {
		e.Add(NuObsValue(nomenclature.AttributeName(nomenclature.MDC_ATTR_NU_VAL_OBS), v))
	}
	return e
}

// SimpleNuObsValueCmp describes a compound of FLOAT values.
func SimpleNuObsValueCmp(name string, c wire.SimpleNuObsValueCmp) *Entry {
	e := NewCompound(name)
	for i, v := range c {
		e.Add(Float(strconv.Itoa(i), v))
	}
	return e
}

// BasicNuObsValueCmp describes a compound of SFLOAT values.
func BasicNuObsValueCmp(name string, c wire.BasicNuObsValueCmp) *Entry {
	e := NewCompound(name)
	for i, v := range c {
		e.Add(SFloat(strconv.Itoa(i), v))
	}
	return e
}

// EnumVal describes an enumeration value according to its choice.
func EnumVal(name string, v wire.EnumVal) *Entry {
	switch v.Choice {
	case wire.EnumValOID:
		return Uint16(name, v.OID)
	case wire.EnumValText:
		return String(name, v.Text)
	case wire.EnumValBitStr:
		return Uint32(name, v.BitStr)
	}
	return Octets(name, nil)
}

// EnumObsValue describes a structured enumeration observation.
func EnumObsValue(name string, v wire.EnumObsValue) *Entry {
	return NewCompound(name,
		Uint16("metric-id", v.MetricID),
		Uint16("state", v.State),
		EnumVal("value", v.Value),
	)
}

// SystemModel describes the manufacturer and model number.
func SystemModel(name string, m wire.SystemModel) *Entry {
	return NewCompound(name,
		String("manufacturer", m.Manufacturer),
		String("model-number", m.ModelNumber),
	)
}

// ProductionSpec describes the production specification list.
func ProductionSpec(name string, p wire.ProductionSpec) *Entry {
	e := NewCompound(name)
	for _, s := range p {
		e.Add(NewCompound("prod-spec-entry",
			Uint16("spec-type", s.SpecType),
			Uint16("component-id", s.ComponentID),
			String("prod-spec", s.ProdSpec),
		))
	}
	return e
}

// MdsTimeInfo describes the clock capabilities of the agent.
func MdsTimeInfo(name string, t wire.MdsTimeInfo) *Entry {
	return NewCompound(name,
		Uint16("mds-time-cap-state", t.CapState),
		Uint16("time-sync-protocol", t.SyncProtocol),
		Uint32("time-sync-accuracy", t.SyncAccuracy),
		Uint16("time-resolution-abs-time", t.ResolutionAbsTime),
		Uint16("time-resolution-rel-time", t.ResolutionRelTime),
		Uint32("time-resolution-high-res-time", t.ResolutionHiResTime),
	)
}

// BatMeasure describes a battery measurement.
func BatMeasure(name string, b wire.BatMeasure) *Entry {
	return NewCompound(name,
		Float("value", b.Value),
		Uint16("unit", b.Unit),
	)
}

// RegCertDataList describes the regulatory certification list.
func RegCertDataList(name string, l wire.RegCertDataList) *Entry {
	e := NewCompound(name)
	for _, d := range l {
		e.Add(NewCompound("reg-cert-data",
			Uint8("auth-body", d.AuthBody),
			Uint8("auth-body-struc-type", d.AuthBodyType),
			Octets("auth-body-data", d.Data),
		))
	}
	return e
}

// TypeVerList describes the supported specializations.
func TypeVerList(name string, l wire.TypeVerList) *Entry {
	e := NewCompound(name)
	for _, t := range l {
		e.Add(NewCompound("type-ver",
			Uint16("type", t.Type),
			Uint16("version", t.Version),
		))
	}
	return e
}

// SaSpec describes the sample array layout of an RT-SA object.
func SaSpec(name string, s wire.SaSpec) *Entry {
	return NewCompound(name,
		Uint16("array-size", s.ArraySize),
		Uint8("sample-size", s.SampleSize),
		Uint8("significant-bits", s.SignificantBits),
		Uint16("flags", s.Flags),
	)
}

// ScaleRangeSpec describes the scaling of an RT-SA object.
func ScaleRangeSpec(name string, s wire.ScaleRangeSpec) *Entry {
	return NewCompound(name,
		Float("lower-absolute-value", s.LowerAbsolute),
		Float("upper-absolute-value", s.UpperAbsolute),
		Uint32("lower-scaled-value", s.LowerScaled),
		Uint32("upper-scaled-value", s.UpperScaled),
	)
}

// AttrValMap describes an attribute-value map.
func AttrValMap(name string, m wire.AttrValMap) *Entry {
	e := NewCompound(name)
	for _, a := range m {
		e.Add(NewCompound("attr-val-map-entry",
			Uint16("attribute-id", a.AttributeID),
			Uint16("attribute-len", a.Length),
		))
	}
	return e
}

// HandleList describes a list of handles.
func HandleList(name string, l []uint16) *Entry {
	e := NewCompound(name)
	for i, h := range l {
		e.Add(Uint16(strconv.Itoa(i), h))
	}
	return e
}

// SupplementalTypeList describes a list of TYPE.
func SupplementalTypeList(name string, l wire.SupplementalTypeList) *Entry {
	e := NewCompound(name)
	for _, t := range l {
		e.Add(Type("type", t))
	}
	return e
}

// MetricStructureSmall describes a compound metric structure.
func MetricStructureSmall(name string, m wire.MetricStructureSmall) *Entry {
	return NewCompound(name,
		Uint8("ms-struct", m.Structure),
		Uint8("ms-comp-no", m.ComponentNum),
	)
}

// PmSegmentEntryMap describes the entry layout of a PM-segment.
func PmSegmentEntryMap(name string, m wire.PmSegmentEntryMap) *Entry {
	elems := NewCompound("segm-entry-elem-list")
	for _, el := range m.Elements {
		elems.Add(NewCompound("segm-entry-elem",
			Uint16("class-id", el.ClassID),
			Type("metric-type", el.MetricType),
			Uint16("handle", el.Handle),
			AttrValMap("attr-val-map", el.AttrValMap),
		))
	}
	return NewCompound(name, Uint16("segm-entry-header", m.Header), elems)
}

// SegmentInfoList describes the result of a segment info request as one
// compound per segment holding its raw attributes.
func SegmentInfoList(name string, l wire.SegmentInfoList) *Entry {
	e := NewCompound(name)
	for _, s := range l {
		c := NewCompound("segment-info", Uint16("seg-inst-no", s.InstNo))
		for _, a := range s.Attributes {
			c.Add(Octets(nomenclature.AttributeName(a.AttributeID), a.Value))
		}
		e.Add(c)
	}
	return e
}

// TrigSegmDataXferRsp describes the reply to a segment transfer request.
func TrigSegmDataXferRsp(name string, r wire.TrigSegmDataXferRsp) *Entry {
	return NewCompound(name,
		Uint16("seg-inst-no", r.InstNo),
		Uint16("trig-segm-xfer-rsp", r.Response),
	)
}

// SegmDataEventDescr describes the location of a segment data chunk.
func SegmDataEventDescr(name string, d wire.SegmDataEventDescr) *Entry {
	return NewCompound(name,
		Uint16("segm-instance", d.SegmInstance),
		Uint32("segm-evt-entry-index", d.EntryIndex),
		Uint32("segm-evt-entry-count", d.EntryCount),
		Uint16("segm-evt-status", d.Status),
	)
}
