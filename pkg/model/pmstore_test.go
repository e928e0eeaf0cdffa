package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phd-protocol/phd-go/pkg/mder"
	"github.com/phd-protocol/phd-go/pkg/nomenclature"
	"github.com/phd-protocol/phd-go/pkg/wire"
)

func at(day, hour uint8) wire.AbsoluteTime {
	return wire.AbsoluteTime{
		Century: 0x20, Year: 0x26, Month: 0x10,
		Day: wire.NumberToBCD(day), Hour: wire.NumberToBCD(hour),
	}
}

func storeWithSegments(capab uint16, n int) *PMStore {
	p := NewPMStore(5)
	p.Capabilities = capab
	for i := 0; i < n; i++ {
		s := NewPMSegment(uint16(i))
		s.StartTime = at(uint8(i+1), 8)
		s.EndTime = at(uint8(i+1), 20)
		s.UsageCount = 10
		s.FixedData = []byte{1, 2, 3}
		p.AddSegment(s)
	}
	return p
}

func TestClearAllSegments(t *testing.T) {
	all := wire.SegmSelection{Choice: wire.AllSegmentsChosen}

	t.Run("keep", func(t *testing.T) {
		p := storeWithSegments(0, 3)
		require.NoError(t, p.ClearSegments(all))
		require.Equal(t, 3, p.SegmentCount())
		for _, s := range p.Segments() {
			assert.Zero(t, s.UsageCount)
			assert.Nil(t, s.FixedData)
		}
	})

	t.Run("remove", func(t *testing.T) {
		p := storeWithSegments(wire.PMSCClearSegmRemove, 3)
		require.NoError(t, p.ClearSegments(all))
		assert.Zero(t, p.SegmentCount())
	})
}

func TestClearSegmentsByID(t *testing.T) {
	p := storeWithSegments(wire.PMSCClearSegmRemove, 4)
	require.NoError(t, p.ClearSegments(wire.SegmSelection{Choice: wire.SegmIDListChosen, IDs: []uint16{1, 3, 42}}))

	var left []uint16
	for _, s := range p.Segments() {
		left = append(left, s.InstNo())
		assert.Equal(t, uint32(10), s.UsageCount)
	}
	assert.Equal(t, []uint16{0, 2}, left)
}

func TestClearSegmentsByTimeRange(t *testing.T) {
	tests := []struct {
		name    string
		from    wire.AbsoluteTime
		to      wire.AbsoluteTime
		cleared bool
	}{
		{"exact boundaries excluded", at(1, 8), at(1, 20), false},
		{"start on boundary", at(1, 8), at(1, 21), false},
		{"end on boundary", at(1, 7), at(1, 20), false},
		{"strictly inside", at(1, 7), at(1, 21), true},
		{"outside", at(2, 0), at(3, 0), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := storeWithSegments(0, 1)
			sel := wire.SegmSelection{Choice: wire.AbsTimeRangeChosen, TimeRange: wire.AbsTimeRange{From: tc.from, To: tc.to}}
			require.NoError(t, p.ClearSegments(sel))
			s, ok := p.Segment(0)
			require.True(t, ok)
			assert.Equal(t, tc.cleared, s.UsageCount == 0)
		})
	}
}

func TestClearSegmentsUnknownChoice(t *testing.T) {
	p := storeWithSegments(0, 1)
	err := p.ClearSegments(wire.SegmSelection{Choice: 9})
	assert.ErrorIs(t, err, wire.ErrUnknownChoice)
}

// segmentMDS returns an MDS with a Numeric (handle 1) and a PM-store
// (handle 5) whose segment 0 stores a relative time and a basic value per
// entry.
func segmentMDS(t *testing.T) (*MDS, *PMStore) {
	t.Helper()
	m := NewMDS(nil)
	require.NoError(t, m.AddObject(NewNumeric(1)))
	p := NewPMStore(5)
	require.NoError(t, m.AddObject(p))

	seg := NewPMSegment(0)
	seg.EntryMap = wire.PmSegmentEntryMap{
		Header: wire.SegmElemHdrRelTime,
		Elements: []wire.SegmEntryElem{{
			ClassID:    nomenclature.MDC_MOC_VMO_METRIC_NU,
			MetricType: tempType,
			Handle:     1,
			AttrValMap: wire.AttrValMap{{AttributeID: nomenclature.MDC_ATTR_NU_VAL_OBS_BASIC, Length: 2}},
		}},
	}
	p.AddSegment(seg)
	return m, p
}

func entry(rel uint32, v uint16) []byte {
	w := mder.NewWriter()
	w.PutUint32(rel)
	w.PutUint16(v)
	return w.Bytes()
}

func TestSegmentData(t *testing.T) {
	m, p := segmentMDS(t)

	list, err := p.SegmentData(m, wire.SegmentDataEvent{
		Descr:   wire.SegmDataEventDescr{SegmInstance: 0, EntryIndex: 0, EntryCount: 1},
		Entries: entry(100, 6),
	})
	require.NoError(t, err)
	require.Len(t, list, 1)

	seg, _ := p.Segment(0)
	assert.Len(t, seg.FixedData, 6)
	assert.Equal(t, uint32(1), seg.UsageCount)
	assert.Equal(t, uint32(1), seg.EmpiricUsageCount)

	list, err = p.SegmentData(m, wire.SegmentDataEvent{
		Descr:   wire.SegmDataEventDescr{SegmInstance: 0, EntryIndex: 1, EntryCount: 2},
		Entries: append(entry(200, 7), entry(300, 8)...),
	})
	require.NoError(t, err)
	assert.Len(t, seg.FixedData, 18)
	assert.Equal(t, uint32(3), seg.UsageCount)
	assert.Equal(t, uint32(3), seg.EmpiricUsageCount)

	e := list[0]
	assert.Equal(t, "PM-Segment", e.Name)
	// Instance number then one compound per entry.
	require.Len(t, e.Children, 4)
	first := e.Children[1]
	require.Len(t, first.Children, 2)
	assert.Equal(t, "Relative-Time-Stamp", first.Children[0].Name)
	assert.Equal(t, "100", first.Children[0].Value)
	assert.Equal(t, "Numeric", first.Children[1].Name)
	assert.Equal(t, "300", e.Children[3].Children[0].Value)
}

func TestSegmentDataRetransmit(t *testing.T) {
	m, p := segmentMDS(t)
	chunk := wire.SegmentDataEvent{
		Descr:   wire.SegmDataEventDescr{SegmInstance: 0, EntryIndex: 0, EntryCount: 1},
		Entries: entry(100, 6),
	}
	for i := 0; i < 2; i++ {
		_, err := p.SegmentData(m, chunk)
		require.NoError(t, err)
	}

	seg, _ := p.Segment(0)
	assert.Len(t, seg.FixedData, 6)
	assert.Equal(t, uint32(1), seg.UsageCount)
	assert.Equal(t, uint32(1), seg.EmpiricUsageCount)
}

func TestSegmentDataRejectedChunkLeavesSegment(t *testing.T) {
	tests := []struct {
		name  string
		descr wire.SegmDataEventDescr
		data  []byte
		want  error
	}{
		{"gap", wire.SegmDataEventDescr{EntryIndex: 2, EntryCount: 1}, entry(300, 8), ErrSegmentGap},
		{"far index", wire.SegmDataEventDescr{EntryIndex: 1000000, EntryCount: 1}, entry(1, 1), ErrSegmentGap},
		{"short", wire.SegmDataEventDescr{EntryIndex: 1, EntryCount: 2}, entry(200, 7), ErrSegmentLength},
		{"long", wire.SegmDataEventDescr{EntryIndex: 1, EntryCount: 1}, append(entry(200, 7), 0), ErrSegmentLength},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m, p := segmentMDS(t)
			_, err := p.SegmentData(m, wire.SegmentDataEvent{
				Descr:   wire.SegmDataEventDescr{EntryCount: 1},
				Entries: entry(100, 6),
			})
			require.NoError(t, err)

			list, err := p.SegmentData(m, wire.SegmentDataEvent{Descr: tc.descr, Entries: tc.data})
			assert.ErrorIs(t, err, tc.want)
			assert.Nil(t, list)

			seg, _ := p.Segment(0)
			assert.Equal(t, entry(100, 6), seg.FixedData)
			assert.Equal(t, uint32(1), seg.UsageCount)
			assert.Equal(t, uint32(1), seg.EmpiricUsageCount)
		})
	}
}

func TestSegmentDataErrors(t *testing.T) {
	m, p := segmentMDS(t)

	_, err := p.SegmentData(m, wire.SegmentDataEvent{Descr: wire.SegmDataEventDescr{SegmInstance: 4}})
	assert.ErrorIs(t, err, ErrSegmentNotFound)

	p.AddSegment(NewPMSegment(1))
	_, err = p.SegmentData(m, wire.SegmentDataEvent{Descr: wire.SegmDataEventDescr{SegmInstance: 1}, Entries: []byte{1}})
	assert.ErrorIs(t, err, ErrEmptyEntryMap)

	// A chunk that fails to decode is not stored.
	seg, _ := p.Segment(0)
	seg.EntryMap.Elements[0].Handle = 77
	_, err = p.SegmentData(m, wire.SegmentDataEvent{Descr: wire.SegmDataEventDescr{EntryCount: 1}, Entries: entry(1, 1)})
	assert.ErrorIs(t, err, ErrUnknownHandle)
	assert.Empty(t, seg.FixedData)
	assert.Zero(t, seg.UsageCount)
	assert.Zero(t, seg.EmpiricUsageCount)
}

func TestUpdateSegmentInfo(t *testing.T) {
	p := NewPMStore(5)
	w := mder.NewWriter()
	w.PutUint32(25)
	list, err := p.UpdateSegmentInfo(wire.SegmentInfoList{
		{InstNo: 3, Attributes: wire.AttributeList{
			{AttributeID: nomenclature.MDC_ATTR_SEG_USAGE_CNT, Value: wire.Any(w.Bytes())},
			{AttributeID: 0x7777, Value: wire.Any{0}},
		}},
	})
	require.NoError(t, err)
	require.Len(t, list, 1)

	s, ok := p.Segment(3)
	require.True(t, ok)
	assert.Equal(t, uint32(25), s.UsageCount)
	assert.Len(t, list[0].Children, 2)
}
