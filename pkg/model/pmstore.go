package model

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/creachadair/mds/mapset"

	"github.com/phd-protocol/phd-go/pkg/data"
	"github.com/phd-protocol/phd-go/pkg/mder"
	"github.com/phd-protocol/phd-go/pkg/nomenclature"
	"github.com/phd-protocol/phd-go/pkg/wire"
)

// PMStore is a persistent store of measurement episodes (PM-segments).
type PMStore struct {
	handle uint16

	Capabilities     uint16
	SampleAlgorithm  uint16
	CapacityCount    uint32
	UsageCount       uint32
	OperationalState wire.OperationalState
	LabelString      []byte
	SamplePeriod     uint32
	ClearTimeout     uint32

	// NumberOfSegments is the count reported by the agent. The local
	// segment list may lag behind it until the segment info is fetched.
	NumberOfSegments uint16

	segments []*PMSegment
}

// NewPMStore creates a PM-store with the given handle.
func NewPMStore(handle uint16) *PMStore {
	return &PMStore{handle: handle}
}

// Handle returns the object handle.
func (p *PMStore) Handle() uint16 { return p.handle }

// Class returns MDC_MOC_VMO_PMSTORE.
func (p *PMStore) Class() uint16 { return nomenclature.MDC_MOC_VMO_PMSTORE }

// SetAttribute decodes a PM-store attribute.
func (p *PMStore) SetAttribute(id uint16, r *mder.Reader) (*data.Entry, error) {
	switch id {
	case nomenclature.MDC_ATTR_ID_HANDLE:
		return readHandle(r, id)
	case nomenclature.MDC_ATTR_PM_STORE_CAPAB:
		return set(r, &p.Capabilities, id, readUint16, data.Uint16)
	case nomenclature.MDC_ATTR_METRIC_STORE_SAMPLE_ALG:
		return set(r, &p.SampleAlgorithm, id, readUint16, data.Uint16)
	case nomenclature.MDC_ATTR_METRIC_STORE_CAPAC_CNT:
		return set(r, &p.CapacityCount, id, readUint32, data.Uint32)
	case nomenclature.MDC_ATTR_METRIC_STORE_USAGE_CNT:
		return set(r, &p.UsageCount, id, readUint32, data.Uint32)
	case nomenclature.MDC_ATTR_OP_STAT:
		return set(r, &p.OperationalState, id, readOpState, describeOpState)
	case nomenclature.MDC_ATTR_PM_STORE_LABEL_STRING:
		return set(r, &p.LabelString, id, readOctets, data.String)
	case nomenclature.MDC_ATTR_TIME_PD_SAMP:
		return set(r, &p.SamplePeriod, id, readUint32, data.Uint32)
	case nomenclature.MDC_ATTR_NUM_SEG:
		return set(r, &p.NumberOfSegments, id, readUint16, data.Uint16)
	case nomenclature.MDC_ATTR_CLEAR_TIMEOUT:
		return set(r, &p.ClearTimeout, id, readUint32, data.Uint32)
	}
	return nil, unknownAttribute(id)
}

// Segments returns the locally known segments in order.
func (p *PMStore) Segments() []*PMSegment {
	return append([]*PMSegment(nil), p.segments...)
}

// SegmentCount returns the number of locally known segments.
func (p *PMStore) SegmentCount() int { return len(p.segments) }

// Segment returns the segment with the given instance number.
func (p *PMStore) Segment(instNo uint16) (*PMSegment, bool) {
	for _, s := range p.segments {
		if s.instNo == instNo {
			return s, true
		}
	}
	return nil, false
}

// AddSegment appends a segment. A segment with the same instance number
// is replaced.
func (p *PMStore) AddSegment(s *PMSegment) {
	for i, old := range p.segments {
		if old.instNo == s.instNo {
			p.segments[i] = s
			return
		}
	}
	p.segments = append(p.segments, s)
}

// UpdateSegmentInfo applies the result of a segment info request, adding
// segments not seen before. It returns one compound per segment.
func (p *PMStore) UpdateSegmentInfo(list wire.SegmentInfoList) (data.List, error) {
	var (
		out  data.List
		errs []error
	)
	for _, info := range list {
		seg, ok := p.Segment(info.InstNo)
		if !ok {
			seg = NewPMSegment(info.InstNo)
			p.AddSegment(seg)
		}
		e := data.NewCompound(nomenclature.ClassName(seg.Class()))
		e.SetMeta(data.MetaHandle, strconv.Itoa(int(p.handle)))
		e.Add(data.Uint16(nomenclature.AttributeName(nomenclature.MDC_ATTR_ID_INSTNO), seg.instNo))
		failed := false
		for _, a := range info.Attributes {
			c, err := seg.SetAttribute(a.AttributeID, mder.NewReader(a.Value))
			if errors.Is(err, ErrUnknownAttribute) {
				continue
			}
			if err != nil {
				errs = append(errs, fmt.Errorf("segment %d: %w", info.InstNo, err))
				failed = true
				break
			}
			e.Add(c)
		}
		if !failed {
			out = append(out, e)
		}
	}
	return out, errors.Join(errs...)
}

// ClearSegments resets the stored data of every segment matched by sel.
// Matched segments are removed from the store only when the store has
// the clear-segment-remove capability. Emptying the store is not an
// error.
func (p *PMStore) ClearSegments(sel wire.SegmSelection) error {
	match, err := p.selector(sel)
	if err != nil {
		return err
	}
	remove := p.Capabilities&wire.PMSCClearSegmRemove != 0
	kept := make([]*PMSegment, 0, len(p.segments))
	for _, s := range p.segments {
		if !match(s) {
			kept = append(kept, s)
			continue
		}
		s.clear()
		if !remove {
			kept = append(kept, s)
		}
	}
	p.segments = kept
	return nil
}

func (p *PMStore) selector(sel wire.SegmSelection) (func(*PMSegment) bool, error) {
	switch sel.Choice {
	case wire.AllSegmentsChosen:
		return func(*PMSegment) bool { return true }, nil
	case wire.SegmIDListChosen:
		ids := mapset.New(sel.IDs...)
		return func(s *PMSegment) bool { return ids.Has(s.instNo) }, nil
	case wire.AbsTimeRangeChosen:
		from, to := sel.TimeRange.From, sel.TimeRange.To
		return func(s *PMSegment) bool {
			return wire.CompareAbsoluteTime(s.StartTime, from) > 0 &&
				wire.CompareAbsoluteTime(s.EndTime, to) < 0
		}, nil
	}
	return nil, fmt.Errorf("%w: segment selection %d", wire.ErrUnknownChoice, sel.Choice)
}

// SegmentData stores a chunk of segment entries at the position given by
// its entry index, then decodes the whole accumulated segment against the
// objects of m. A chunk may rewrite entries already received but must not
// leave a gap after them. The segment is only changed when the chunk
// decodes.
func (p *PMStore) SegmentData(m *MDS, ev wire.SegmentDataEvent) (data.List, error) {
	seg, ok := p.Segment(ev.Descr.SegmInstance)
	if !ok {
		return nil, fmt.Errorf("%w: store %d instance %d", ErrSegmentNotFound, p.handle, ev.Descr.SegmInstance)
	}
	size := seg.EntryMap.EntrySize()
	if size == 0 {
		return nil, fmt.Errorf("%w: store %d instance %d", ErrEmptyEntryMap, p.handle, seg.instNo)
	}
	if want := uint64(ev.Descr.EntryCount) * uint64(size); uint64(len(ev.Entries)) != want {
		return nil, fmt.Errorf("%w: %d bytes for %d entries of %d bytes", ErrSegmentLength, len(ev.Entries), ev.Descr.EntryCount, size)
	}
	have := len(seg.FixedData) / size
	if uint64(ev.Descr.EntryIndex) > uint64(have) {
		return nil, fmt.Errorf("%w: entry %d with %d received", ErrSegmentGap, ev.Descr.EntryIndex, have)
	}

	off := int(ev.Descr.EntryIndex) * size
	buf := make([]byte, max(len(seg.FixedData), off+len(ev.Entries)))
	copy(buf, seg.FixedData)
	copy(buf[off:], ev.Entries)

	e, n, err := p.decodeSegment(m, seg, buf)
	if err != nil {
		return nil, err
	}
	seg.FixedData = buf
	seg.UsageCount += uint32(n - have)
	seg.EmpiricUsageCount = uint32(n)
	return data.List{e}, nil
}

// DecodeSegment decodes the fixed data accumulated in seg, entry by entry,
// using the segment's entry map. It returns one compound for the segment
// and the number of complete entries decoded.
func (p *PMStore) DecodeSegment(m *MDS, seg *PMSegment) (*data.Entry, int, error) {
	return p.decodeSegment(m, seg, seg.FixedData)
}

func (p *PMStore) decodeSegment(m *MDS, seg *PMSegment, fixed []byte) (*data.Entry, int, error) {
	em := seg.EntryMap
	size := em.EntrySize()
	if size == 0 {
		return nil, 0, ErrEmptyEntryMap
	}
	out := data.NewCompound(nomenclature.ClassName(seg.Class()))
	out.SetMeta(data.MetaHandle, strconv.Itoa(int(p.handle)))
	out.Add(data.Uint16(nomenclature.AttributeName(nomenclature.MDC_ATTR_ID_INSTNO), seg.instNo))
	if seg.PersonID != 0 {
		out.SetMeta(data.MetaPersonID, strconv.Itoa(int(seg.PersonID)))
	}

	n := len(fixed) / size
	for i := 0; i < n; i++ {
		r := mder.NewReader(fixed[i*size : (i+1)*size])
		entry, err := decodeSegmentEntry(m, em, r)
		if err != nil {
			return nil, 0, fmt.Errorf("entry %d: %w", i, err)
		}
		out.Add(entry)
	}
	return out, n, nil
}

func decodeSegmentEntry(m *MDS, em wire.PmSegmentEntryMap, r *mder.Reader) (*data.Entry, error) {
	entry := data.NewCompound("Segment-Entry")
	if em.Header&wire.SegmElemHdrAbsTime != 0 {
		t, err := wire.DecodeAbsoluteTime(r)
		if err != nil {
			return nil, err
		}
		entry.Add(data.AbsoluteTime(nomenclature.AttributeName(nomenclature.MDC_ATTR_TIME_STAMP_ABS), t))
	}
	if em.Header&wire.SegmElemHdrRelTime != 0 {
		t, err := r.Uint32()
		if err != nil {
			return nil, err
		}
		entry.Add(data.Uint32(nomenclature.AttributeName(nomenclature.MDC_ATTR_TIME_STAMP_REL), t))
	}
	if em.Header&wire.SegmElemHdrHiResTime != 0 {
		t, err := wire.DecodeHighResRelativeTime(r)
		if err != nil {
			return nil, err
		}
		entry.Add(data.HighResRelativeTime(nomenclature.AttributeName(nomenclature.MDC_ATTR_TIME_STAMP_REL_HI_RES), t))
	}
	for _, el := range em.Elements {
		obj, ok := m.ObjectByHandle(el.Handle)
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownHandle, el.Handle)
		}
		c, err := m.decodePositional(obj, el.AttrValMap, r)
		if err != nil {
			return nil, err
		}
		entry.Add(c)
	}
	return entry, nil
}
