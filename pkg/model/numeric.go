package model

import (
	"github.com/phd-protocol/phd-go/pkg/data"
	"github.com/phd-protocol/phd-go/pkg/mder"
	"github.com/phd-protocol/phd-go/pkg/nomenclature"
	"github.com/phd-protocol/phd-go/pkg/wire"
)

// Numeric is a metric reporting numeric observations. Only one of the
// observed value forms is normally configured for a given object.
type Numeric struct {
	Metric

	SimpleNuObservedValue         wire.Float
	CompoundSimpleNuObservedValue wire.SimpleNuObsValueCmp
	BasicNuObservedValue          wire.SFloat
	CompoundBasicNuObservedValue  wire.BasicNuObsValueCmp
	NuObservedValue               wire.NuObsValue
	CompoundNuObservedValue       wire.NuObsValueCmp
	AccuracyOfMeasurement         wire.Float
}

// NewNumeric creates a Numeric with the given handle.
func NewNumeric(handle uint16) *Numeric {
	return &Numeric{Metric: Metric{handle: handle}}
}

// Class returns MDC_MOC_VMO_METRIC_NU.
func (n *Numeric) Class() uint16 { return nomenclature.MDC_MOC_VMO_METRIC_NU }

// SetAttribute decodes a Numeric attribute, falling back to the metric
// attributes.
func (n *Numeric) SetAttribute(id uint16, r *mder.Reader) (*data.Entry, error) {
	p := n.EffectivePartition()
	switch id {
	case nomenclature.MDC_ATTR_NU_VAL_OBS_SIMP:
		e, err := set(r, &n.SimpleNuObservedValue, id, wire.DecodeFloat, data.Float)
		return n.meta(e, err, p, 0, 0)
	case nomenclature.MDC_ATTR_NU_CMPD_VAL_OBS_SIMP:
		e, err := set(r, &n.CompoundSimpleNuObservedValue, id, wire.DecodeSimpleNuObsValueCmp, data.SimpleNuObsValueCmp)
		return n.meta(e, err, p, 0, 0)
	case nomenclature.MDC_ATTR_NU_VAL_OBS_BASIC:
		e, err := set(r, &n.BasicNuObservedValue, id, wire.DecodeSFloat, data.SFloat)
		return n.meta(e, err, p, 0, 0)
	case nomenclature.MDC_ATTR_NU_CMPD_VAL_OBS_BASIC:
		e, err := set(r, &n.CompoundBasicNuObservedValue, id, wire.DecodeBasicNuObsValueCmp, data.BasicNuObsValueCmp)
		return n.meta(e, err, p, 0, 0)
	case nomenclature.MDC_ATTR_NU_VAL_OBS:
		e, err := set(r, &n.NuObservedValue, id, wire.DecodeNuObsValue, data.NuObsValue)
		return n.meta(e, err, p, n.NuObservedValue.MetricID, n.NuObservedValue.UnitCode)
	case nomenclature.MDC_ATTR_NU_CMPD_VAL_OBS:
		e, err := set(r, &n.CompoundNuObservedValue, id, wire.DecodeNuObsValueCmp, data.NuObsValueCmp)
		if err != nil {
			return nil, err
		}
		for i, v := range n.CompoundNuObservedValue {
			n.valueMeta(e.Children[i], p, v.MetricID, v.UnitCode)
		}
		return n.meta(e, nil, p, 0, 0)
	case nomenclature.MDC_ATTR_NU_ACCUR_MSMT:
		return set(r, &n.AccuracyOfMeasurement, id, wire.DecodeFloat, data.Float)
	}
	return n.setAttribute(id, r)
}

func (n *Numeric) meta(e *data.Entry, err error, partition, metricID, unit uint16) (*data.Entry, error) {
	if err != nil {
		return nil, err
	}
	return n.valueMeta(e, partition, metricID, unit), nil
}
