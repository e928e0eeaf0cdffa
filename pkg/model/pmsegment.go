package model

import (
	"github.com/phd-protocol/phd-go/pkg/data"
	"github.com/phd-protocol/phd-go/pkg/mder"
	"github.com/phd-protocol/phd-go/pkg/nomenclature"
	"github.com/phd-protocol/phd-go/pkg/wire"
)

// PMSegment is one stored episode of a PM-store.
type PMSegment struct {
	instNo uint16

	EntryMap         wire.PmSegmentEntryMap
	PersonID         uint16
	OperationalState wire.OperationalState
	SamplePeriod     uint32
	LabelString      []byte
	StartTime        wire.AbsoluteTime
	EndTime          wire.AbsoluteTime
	TimeAdjust       wire.AbsoluteTimeAdjust
	TransferTimeout  uint32
	Statistics       []byte

	// UsageCount is the agent-reported number of entries. It grows by the
	// entries new segment data adds and is reset by the next segment-info
	// fetch.
	UsageCount uint32

	// FixedData holds the raw entries received so far, without gaps.
	FixedData []byte

	// EmpiricUsageCount is the number of complete entries in FixedData.
	EmpiricUsageCount uint32
}

// NewPMSegment creates a segment with the given instance number.
func NewPMSegment(instNo uint16) *PMSegment {
	return &PMSegment{instNo: instNo}
}

// InstNo returns the segment instance number.
func (s *PMSegment) InstNo() uint16 { return s.instNo }

// Class returns MDC_MOC_PM_SEGMENT.
func (s *PMSegment) Class() uint16 { return nomenclature.MDC_MOC_PM_SEGMENT }

// clear drops the stored data and resets the counters.
func (s *PMSegment) clear() {
	s.FixedData = nil
	s.UsageCount = 0
	s.EmpiricUsageCount = 0
}

// SetAttribute decodes a PM-segment attribute.
func (s *PMSegment) SetAttribute(id uint16, r *mder.Reader) (*data.Entry, error) {
	switch id {
	case nomenclature.MDC_ATTR_ID_INSTNO:
		var n uint16
		return set(r, &n, id, readUint16, data.Uint16)
	case nomenclature.MDC_ATTR_PM_SEG_MAP:
		return set(r, &s.EntryMap, id, wire.DecodePmSegmentEntryMap, data.PmSegmentEntryMap)
	case nomenclature.MDC_ATTR_PM_SEG_PERSON_ID:
		return set(r, &s.PersonID, id, readUint16, data.Uint16)
	case nomenclature.MDC_ATTR_OP_STAT:
		return set(r, &s.OperationalState, id, readOpState, describeOpState)
	case nomenclature.MDC_ATTR_TIME_PD_SAMP:
		return set(r, &s.SamplePeriod, id, readUint32, data.Uint32)
	case nomenclature.MDC_ATTR_PM_SEG_LABEL_STRING:
		return set(r, &s.LabelString, id, readOctets, data.String)
	case nomenclature.MDC_ATTR_TIME_START_SEG:
		return set(r, &s.StartTime, id, wire.DecodeAbsoluteTime, data.AbsoluteTime)
	case nomenclature.MDC_ATTR_TIME_END_SEG:
		return set(r, &s.EndTime, id, wire.DecodeAbsoluteTime, data.AbsoluteTime)
	case nomenclature.MDC_ATTR_TIME_ABS_ADJUST:
		return set(r, &s.TimeAdjust, id, wire.DecodeAbsoluteTimeAdjust, data.AbsoluteTimeAdjust)
	case nomenclature.MDC_ATTR_SEG_USAGE_CNT:
		return set(r, &s.UsageCount, id, readUint32, data.Uint32)
	case nomenclature.MDC_ATTR_SEG_STATS:
		return set(r, &s.Statistics, id, readOctets, data.Octets)
	case nomenclature.MDC_ATTR_SEG_FIXED_DATA:
		return set(r, &s.FixedData, id, readOctets, data.Octets)
	case nomenclature.MDC_ATTR_TRANSFER_TIMEOUT:
		return set(r, &s.TransferTimeout, id, readUint32, data.Uint32)
	}
	return nil, unknownAttribute(id)
}
