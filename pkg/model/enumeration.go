package model

import (
	"strconv"

	"github.com/creachadair/mds/value"

	"github.com/phd-protocol/phd-go/pkg/data"
	"github.com/phd-protocol/phd-go/pkg/mder"
	"github.com/phd-protocol/phd-go/pkg/nomenclature"
	"github.com/phd-protocol/phd-go/pkg/wire"
)

// Enumeration is a metric reporting discrete states or codes.
type Enumeration struct {
	Metric

	SimpleOID     uint16
	SimpleBitStr  uint32
	BasicBitStr   uint16
	SimpleStr     []byte
	ObservedValue wire.EnumObsValue

	// ObservedValuePartition, when present, is the partition of
	// SimpleOID codes.
	ObservedValuePartition value.Maybe[uint16]
}

// NewEnumeration creates an Enumeration with the given handle.
func NewEnumeration(handle uint16) *Enumeration {
	return &Enumeration{Metric: Metric{handle: handle}}
}

// Class returns MDC_MOC_VMO_METRIC_ENUM.
func (n *Enumeration) Class() uint16 { return nomenclature.MDC_MOC_VMO_METRIC_ENUM }

// Partition returns the partition of enumeration codes: the
// Enum-Observed-Value-Partition, then Metric-Id-Partition, then the
// partition of Type.
func (n *Enumeration) Partition() uint16 {
	if p, ok := n.ObservedValuePartition.GetOK(); ok {
		return p
	}
	return n.EffectivePartition()
}

// SetAttribute decodes an Enumeration attribute, falling back to the
// metric attributes.
func (n *Enumeration) SetAttribute(id uint16, r *mder.Reader) (*data.Entry, error) {
	var (
		e        *data.Entry
		err      error
		metricID uint16
	)
	switch id {
	case nomenclature.MDC_ATTR_ENUM_OBS_VAL_SIMP_OID:
		e, err = set(r, &n.SimpleOID, id, readUint16, data.Uint16)
	case nomenclature.MDC_ATTR_ENUM_OBS_VAL_SIMP_BIT_STR:
		e, err = set(r, &n.SimpleBitStr, id, readUint32, data.Uint32)
	case nomenclature.MDC_ATTR_ENUM_OBS_VAL_BASIC_BIT_STR:
		e, err = set(r, &n.BasicBitStr, id, readUint16, data.Uint16)
	case nomenclature.MDC_ATTR_ENUM_OBS_VAL_SIMP_STR:
		e, err = set(r, &n.SimpleStr, id, readOctets, data.String)
	case nomenclature.MDC_ATTR_VAL_ENUM_OBS:
		e, err = set(r, &n.ObservedValue, id, wire.DecodeEnumObsValue, data.EnumObsValue)
		metricID = n.ObservedValue.MetricID
	case nomenclature.MDC_ATTR_ENUM_OBS_VAL_PART:
		return setMaybe(r, &n.ObservedValuePartition, id, readUint16, data.Uint16)
	default:
		return n.setAttribute(id, r)
	}
	if err != nil {
		return nil, err
	}
	if metricID == 0 {
		metricID = n.EffectiveMetricID()
	}
	e.SetMeta(data.MetaPartition, strconv.Itoa(int(n.Partition())))
	e.SetMeta(data.MetaMetricID, strconv.Itoa(int(metricID)))
	return e, nil
}
