package model

import (
	"fmt"

	"github.com/phd-protocol/phd-go/pkg/data"
	"github.com/phd-protocol/phd-go/pkg/mder"
	"github.com/phd-protocol/phd-go/pkg/nomenclature"
	"github.com/phd-protocol/phd-go/pkg/wire"
)

// RTSA is a real-time sample array metric.
type RTSA struct {
	Metric

	SamplePeriod          uint32
	SimpleSaObservedValue []byte
	ScaleAndRange         wire.ScaleRangeSpec
	SaSpecification       wire.SaSpec
}

// NewRTSA creates an RTSA with the given handle.
func NewRTSA(handle uint16) *RTSA {
	return &RTSA{Metric: Metric{handle: handle}}
}

// Class returns MDC_MOC_VMO_METRIC_SA_RT.
func (s *RTSA) Class() uint16 { return nomenclature.MDC_MOC_VMO_METRIC_SA_RT }

// SetAttribute decodes an RTSA attribute, falling back to the metric
// attributes.
func (s *RTSA) SetAttribute(id uint16, r *mder.Reader) (*data.Entry, error) {
	switch id {
	case nomenclature.MDC_ATTR_TIME_PD_SAMP:
		return set(r, &s.SamplePeriod, id, readUint32, data.Uint32)
	case nomenclature.MDC_ATTR_SIMP_SA_OBS_VAL:
		e, err := set(r, &s.SimpleSaObservedValue, id, readOctets, data.Octets)
		if err != nil {
			return nil, err
		}
		return s.valueMeta(e, s.EffectivePartition(), 0, 0), nil
	case nomenclature.MDC_ATTR_SCALE_SPECN_I8:
		return s.setScale(id, r, 8)
	case nomenclature.MDC_ATTR_SCALE_SPECN_I16:
		return s.setScale(id, r, 16)
	case nomenclature.MDC_ATTR_SCALE_SPECN_I32:
		return s.setScale(id, r, 32)
	case nomenclature.MDC_ATTR_SA_SPECN:
		return set(r, &s.SaSpecification, id, wire.DecodeSaSpec, data.SaSpec)
	}
	return s.setAttribute(id, r)
}

func (s *RTSA) setScale(id uint16, r *mder.Reader, width int) (*data.Entry, error) {
	v, err := wire.DecodeScaleRangeSpec(r, width)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", nomenclature.AttributeName(id), err)
	}
	s.ScaleAndRange = v
	return data.ScaleRangeSpec(nomenclature.AttributeName(id), v), nil
}
