package model

import (
	"strconv"

	"github.com/creachadair/mds/value"

	"github.com/phd-protocol/phd-go/pkg/data"
	"github.com/phd-protocol/phd-go/pkg/mder"
	"github.com/phd-protocol/phd-go/pkg/nomenclature"
	"github.com/phd-protocol/phd-go/pkg/wire"
)

// MetricObject is implemented by the metric classes.
type MetricObject interface {
	AttrValMapper
	metric() *Metric
}

// Metric holds the attributes common to every metric class.
type Metric struct {
	handle uint16

	Type                 wire.Type
	MetricSpecSmall      uint16
	MetricStructureSmall value.Maybe[wire.MetricStructureSmall]
	MeasurementStatus    uint16
	MetricIDList         wire.MetricIDList
	UnitCode             uint16
	SupplementalTypes    wire.SupplementalTypeList
	SourceHandleRef      uint16
	LabelString          []byte
	UnitLabelString      []byte
	AbsoluteTimeStamp    wire.AbsoluteTime
	RelativeTimeStamp    uint32
	HiResTimeStamp       wire.HighResRelativeTime
	MeasureActivePeriod  wire.Float

	// MetricID, when present, overrides Type.Code as the identifier of
	// the measured value.
	MetricID value.Maybe[uint16]

	// MetricIDPartition, when present, overrides Type.Partition.
	MetricIDPartition value.Maybe[uint16]

	// AttrValMap is the layout used for fixed-format observations.
	AttrValMap value.Maybe[wire.AttrValMap]
}

// Handle returns the object handle.
func (m *Metric) Handle() uint16 { return m.handle }

// AttributeValueMap returns the fixed-format layout, if configured.
func (m *Metric) AttributeValueMap() (wire.AttrValMap, bool) {
	return m.AttrValMap.GetOK()
}

func (m *Metric) metric() *Metric { return m }

// EffectiveMetricID returns MetricID when present, otherwise Type.Code.
func (m *Metric) EffectiveMetricID() uint16 {
	if id, ok := m.MetricID.GetOK(); ok {
		return id
	}
	return m.Type.Code
}

// EffectivePartition returns MetricIDPartition when present, otherwise
// Type.Partition.
func (m *Metric) EffectivePartition() uint16 {
	if p, ok := m.MetricIDPartition.GetOK(); ok {
		return p
	}
	return m.Type.Partition
}

// valueMeta annotates an observed value. A zero metricID or unit means
// "use the metric's own".
func (m *Metric) valueMeta(e *data.Entry, partition, metricID, unit uint16) *data.Entry {
	if metricID == 0 {
		metricID = m.EffectiveMetricID()
	}
	if unit == 0 {
		unit = m.UnitCode
	}
	e.SetMeta(data.MetaPartition, strconv.Itoa(int(partition)))
	e.SetMeta(data.MetaMetricID, strconv.Itoa(int(metricID)))
	if unit != 0 {
		e.SetMeta(data.MetaUnitCode, strconv.Itoa(int(unit)))
		e.SetMeta(data.MetaUnit, nomenclature.UnitName(unit))
	}
	return e
}

func readHandle(r *mder.Reader, id uint16) (*data.Entry, error) {
	var h uint16
	return set(r, &h, id, readUint16, data.Uint16)
}

// setAttribute decodes the attributes shared by all metrics.
func (m *Metric) setAttribute(id uint16, r *mder.Reader) (*data.Entry, error) {
	switch id {
	case nomenclature.MDC_ATTR_ID_HANDLE:
		return readHandle(r, id)
	case nomenclature.MDC_ATTR_ID_TYPE:
		return set(r, &m.Type, id, wire.DecodeType, data.Type)
	case nomenclature.MDC_ATTR_METRIC_SPEC_SMALL:
		return set(r, &m.MetricSpecSmall, id, readUint16, data.Uint16)
	case nomenclature.MDC_ATTR_METRIC_STRUCT_SMALL:
		return setMaybe(r, &m.MetricStructureSmall, id, wire.DecodeMetricStructureSmall, data.MetricStructureSmall)
	case nomenclature.MDC_ATTR_MSMT_STAT:
		return set(r, &m.MeasurementStatus, id, readUint16, data.Uint16)
	case nomenclature.MDC_ATTR_ID_PHYSIO:
		return setMaybe(r, &m.MetricID, id, readUint16, data.Uint16)
	case nomenclature.MDC_ATTR_ID_PHYSIO_LIST:
		return set(r, &m.MetricIDList, id, wire.DecodeMetricIDList, describeMetricIDList)
	case nomenclature.MDC_ATTR_METRIC_ID_PART:
		return setMaybe(r, &m.MetricIDPartition, id, readUint16, data.Uint16)
	case nomenclature.MDC_ATTR_UNIT_CODE:
		return set(r, &m.UnitCode, id, readUint16, data.Uint16)
	case nomenclature.MDC_ATTR_ATTRIBUTE_VAL_MAP:
		return setMaybe(r, &m.AttrValMap, id, wire.DecodeAttrValMap, data.AttrValMap)
	case nomenclature.MDC_ATTR_SOURCE_HANDLE_REF:
		return set(r, &m.SourceHandleRef, id, readUint16, data.Uint16)
	case nomenclature.MDC_ATTR_ID_LABEL_STRING:
		return set(r, &m.LabelString, id, readOctets, data.String)
	case nomenclature.MDC_ATTR_UNIT_LABEL_STRING:
		return set(r, &m.UnitLabelString, id, readOctets, data.String)
	case nomenclature.MDC_ATTR_TIME_STAMP_ABS:
		return set(r, &m.AbsoluteTimeStamp, id, wire.DecodeAbsoluteTime, data.AbsoluteTime)
	case nomenclature.MDC_ATTR_TIME_STAMP_REL:
		return set(r, &m.RelativeTimeStamp, id, readUint32, data.Uint32)
	case nomenclature.MDC_ATTR_TIME_STAMP_REL_HI_RES:
		return set(r, &m.HiResTimeStamp, id, wire.DecodeHighResRelativeTime, data.HighResRelativeTime)
	case nomenclature.MDC_ATTR_TIME_PD_MSMT_ACTIVE:
		return set(r, &m.MeasureActivePeriod, id, wire.DecodeFloat, data.Float)
	case nomenclature.MDC_ATTR_SUPPLEMENTAL_TYPES:
		return set(r, &m.SupplementalTypes, id, wire.DecodeSupplementalTypeList, data.SupplementalTypeList)
	}
	return nil, unknownAttribute(id)
}

func describeMetricIDList(name string, l wire.MetricIDList) *data.Entry {
	return data.HandleList(name, l)
}
