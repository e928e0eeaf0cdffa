package wire

import (
	"fmt"

	"github.com/phd-protocol/phd-go/pkg/mder"
)

// Segment entry header bits (SegmEntryHeader).
const (
	SegmElemHdrAbsTime   uint16 = 0x8000
	SegmElemHdrRelTime   uint16 = 0x4000
	SegmElemHdrHiResTime uint16 = 0x2000
)

// PM-store capabilities (PMStoreCapab).
const (
	PMSCVarNoOfSegm     uint16 = 0x8000
	PMSCEpiSegEntries   uint16 = 0x0800
	PMSCPeriSegEntries  uint16 = 0x0400
	PMSCAbsTimeSelect   uint16 = 0x0200
	PMSCClearSegmByList uint16 = 0x0100
	PMSCClearSegmByTime uint16 = 0x0080
	PMSCClearSegmRemove uint16 = 0x0040
	PMSCClearSegmAll    uint16 = 0x0020
	PMSCMultiPerson     uint16 = 0x0008
)

// Segment data event status bits (SegmEvtStatus).
const (
	SegmEvtStatusFirstEntry     uint16 = 0x8000
	SegmEvtStatusLastEntry      uint16 = 0x4000
	SegmEvtStatusAgentAbort     uint16 = 0x0800
	SegmEvtStatusManagerConfirm uint16 = 0x0080
	SegmEvtStatusManagerAbort   uint16 = 0x0008
)

// SegmEntryElem describes one element of every stored entry.
type SegmEntryElem struct {
	ClassID    uint16
	MetricType Type
	Handle     uint16
	AttrValMap AttrValMap
}

func decodeSegmEntryElem(r *mder.Reader) (SegmEntryElem, error) {
	var e SegmEntryElem
	var err error
	if e.ClassID, err = r.Uint16(); err != nil {
		return e, err
	}
	if e.MetricType, err = DecodeType(r); err != nil {
		return e, err
	}
	if e.Handle, err = r.Uint16(); err != nil {
		return e, err
	}
	if e.AttrValMap, err = DecodeAttrValMap(r); err != nil {
		return e, err
	}
	return e, nil
}

func (e SegmEntryElem) Encode(w *mder.Writer) error {
	w.PutUint16(e.ClassID)
	if err := e.MetricType.Encode(w); err != nil {
		return err
	}
	w.PutUint16(e.Handle)
	return e.AttrValMap.Encode(w)
}

// PmSegmentEntryMap is the layout of the entries stored in a PM-segment.
type PmSegmentEntryMap struct {
	Header   uint16
	Elements []SegmEntryElem
}

// DecodePmSegmentEntryMap reads a PmSegmentEntryMap.
func DecodePmSegmentEntryMap(r *mder.Reader) (PmSegmentEntryMap, error) {
	h, err := r.Uint16()
	if err != nil {
		return PmSegmentEntryMap{}, err
	}
	l, err := readList(r, decodeSegmEntryElem)
	if err != nil {
		return PmSegmentEntryMap{}, err
	}
	return PmSegmentEntryMap{Header: h, Elements: l}, nil
}

// Encode writes the map.
func (m PmSegmentEntryMap) Encode(w *mder.Writer) error {
	w.PutUint16(m.Header)
	return writeList(w, m.Elements, encodeItem[SegmEntryElem])
}

// HeaderSize returns the number of bytes of the per-entry header.
func (m PmSegmentEntryMap) HeaderSize() int {
	n := 0
	if m.Header&SegmElemHdrAbsTime != 0 {
		n += 8
	}
	if m.Header&SegmElemHdrRelTime != 0 {
		n += 4
	}
	if m.Header&SegmElemHdrHiResTime != 0 {
		n += 8
	}
	return n
}

// EntrySize returns the number of bytes of one stored entry.
func (m PmSegmentEntryMap) EntrySize() int {
	n := m.HeaderSize()
	for _, e := range m.Elements {
		n += e.AttrValMap.Size()
	}
	return n
}

// SegmSelectionChoice selects the form of a segment selection.
type SegmSelectionChoice uint16

const (
	AllSegmentsChosen  SegmSelectionChoice = 0x0001
	SegmIDListChosen   SegmSelectionChoice = 0x0002
	AbsTimeRangeChosen SegmSelectionChoice = 0x0003
)

// String returns the choice name.
func (c SegmSelectionChoice) String() string {
	switch c {
	case AllSegmentsChosen:
		return "ALL-SEGMENTS"
	case SegmIDListChosen:
		return "SEGM-ID-LIST"
	case AbsTimeRangeChosen:
		return "ABS-TIME-RANGE"
	default:
		return "UNKNOWN"
	}
}

// AbsTimeRange is an absolute time window.
type AbsTimeRange struct {
	From AbsoluteTime
	To   AbsoluteTime
}

// SegmSelection selects PM-segments: all of them, a list of instance
// numbers, or those inside a time window.
type SegmSelection struct {
	Choice    SegmSelectionChoice
	IDs       []uint16
	TimeRange AbsTimeRange
}

// DecodeSegmSelection reads a SegmSelection.
func DecodeSegmSelection(r *mder.Reader) (SegmSelection, error) {
	c, err := r.Uint16()
	if err != nil {
		return SegmSelection{}, err
	}
	sub, err := r.Sub()
	if err != nil {
		return SegmSelection{}, err
	}
	s := SegmSelection{Choice: SegmSelectionChoice(c)}
	switch s.Choice {
	case AllSegmentsChosen:
		_, err = sub.Uint16()
	case SegmIDListChosen:
		s.IDs, err = readList(sub, readUint16)
	case AbsTimeRangeChosen:
		if s.TimeRange.From, err = DecodeAbsoluteTime(sub); err == nil {
			s.TimeRange.To, err = DecodeAbsoluteTime(sub)
		}
	default:
		err = fmt.Errorf("%w: segment selection 0x%04x", ErrUnknownChoice, c)
	}
	return s, err
}

// Encode writes the selection.
func (s SegmSelection) Encode(w *mder.Writer) error {
	w.PutUint16(uint16(s.Choice))
	return w.Sized(func(w *mder.Writer) error {
		switch s.Choice {
		case AllSegmentsChosen:
			w.PutUint16(0)
		case SegmIDListChosen:
			return writeList(w, s.IDs, writeUint16)
		case AbsTimeRangeChosen:
			if err := s.TimeRange.From.Encode(w); err != nil {
				return err
			}
			return s.TimeRange.To.Encode(w)
		default:
			return fmt.Errorf("%w: segment selection 0x%04x", ErrUnknownChoice, uint16(s.Choice))
		}
		return nil
	})
}

// SegmentInfo carries the attributes of one segment.
type SegmentInfo struct {
	InstNo     uint16
	Attributes AttributeList
}

func decodeSegmentInfo(r *mder.Reader) (SegmentInfo, error) {
	n, err := r.Uint16()
	if err != nil {
		return SegmentInfo{}, err
	}
	l, err := DecodeAttributeList(r)
	if err != nil {
		return SegmentInfo{}, err
	}
	return SegmentInfo{InstNo: n, Attributes: l}, nil
}

func (s SegmentInfo) Encode(w *mder.Writer) error {
	w.PutUint16(s.InstNo)
	return s.Attributes.Encode(w)
}

// SegmentInfoList is the result of MDC_ACT_SEG_GET_INFO.
type SegmentInfoList []SegmentInfo

// DecodeSegmentInfoList reads a SegmentInfoList.
func DecodeSegmentInfoList(r *mder.Reader) (SegmentInfoList, error) {
	return readList(r, decodeSegmentInfo)
}

// Encode writes the list.
func (l SegmentInfoList) Encode(w *mder.Writer) error {
	return writeList(w, l, encodeItem[SegmentInfo])
}

// TrigSegmDataXferReq asks the agent to send a segment.
type TrigSegmDataXferReq struct {
	InstNo uint16
}

// DecodeTrigSegmDataXferReq reads a TrigSegmDataXferReq.
func DecodeTrigSegmDataXferReq(r *mder.Reader) (TrigSegmDataXferReq, error) {
	n, err := r.Uint16()
	return TrigSegmDataXferReq{InstNo: n}, err
}

// Encode writes the request.
func (t TrigSegmDataXferReq) Encode(w *mder.Writer) error {
	w.PutUint16(t.InstNo)
	return nil
}

// Segment transfer response codes.
const (
	TrigXferSuccessful    uint16 = 0
	TrigXferNoSuchSegment uint16 = 1
	TrigXferSegmTryLater  uint16 = 2
	TrigXferSegmEmpty     uint16 = 3
	TrigXferOther         uint16 = 512
)

// TrigSegmDataXferRsp is the agent's answer to a transfer request.
type TrigSegmDataXferRsp struct {
	InstNo   uint16
	Response uint16
}

// DecodeTrigSegmDataXferRsp reads a TrigSegmDataXferRsp.
func DecodeTrigSegmDataXferRsp(r *mder.Reader) (TrigSegmDataXferRsp, error) {
	n, err := r.Uint16()
	if err != nil {
		return TrigSegmDataXferRsp{}, err
	}
	rsp, err := r.Uint16()
	if err != nil {
		return TrigSegmDataXferRsp{}, err
	}
	return TrigSegmDataXferRsp{InstNo: n, Response: rsp}, nil
}

// Encode writes the response.
func (t TrigSegmDataXferRsp) Encode(w *mder.Writer) error {
	w.PutUint16(t.InstNo)
	w.PutUint16(t.Response)
	return nil
}

// SegmDataEventDescr locates a chunk of segment entries.
type SegmDataEventDescr struct {
	SegmInstance uint16
	EntryIndex   uint32
	EntryCount   uint32
	Status       uint16
}

func decodeSegmDataEventDescr(r *mder.Reader) (SegmDataEventDescr, error) {
	var d SegmDataEventDescr
	var err error
	if d.SegmInstance, err = r.Uint16(); err != nil {
		return d, err
	}
	if d.EntryIndex, err = r.Uint32(); err != nil {
		return d, err
	}
	if d.EntryCount, err = r.Uint32(); err != nil {
		return d, err
	}
	if d.Status, err = r.Uint16(); err != nil {
		return d, err
	}
	return d, nil
}

func (d SegmDataEventDescr) Encode(w *mder.Writer) error {
	w.PutUint16(d.SegmInstance)
	w.PutUint32(d.EntryIndex)
	w.PutUint32(d.EntryCount)
	w.PutUint16(d.Status)
	return nil
}

// SegmentDataEvent is the event info of MDC_NOTI_SEGMENT_DATA.
type SegmentDataEvent struct {
	Descr   SegmDataEventDescr
	Entries []byte
}

// DecodeSegmentDataEvent reads a SegmentDataEvent.
func DecodeSegmentDataEvent(r *mder.Reader) (SegmentDataEvent, error) {
	d, err := decodeSegmDataEventDescr(r)
	if err != nil {
		return SegmentDataEvent{}, err
	}
	b, err := r.OctetString()
	if err != nil {
		return SegmentDataEvent{}, err
	}
	return SegmentDataEvent{Descr: d, Entries: b}, nil
}

// Encode writes the event.
func (s SegmentDataEvent) Encode(w *mder.Writer) error {
	if err := s.Descr.Encode(w); err != nil {
		return err
	}
	return w.PutOctetString(s.Entries)
}

// SegmentDataResult acknowledges a segment data event.
type SegmentDataResult struct {
	Descr SegmDataEventDescr
}

// DecodeSegmentDataResult reads a SegmentDataResult.
func DecodeSegmentDataResult(r *mder.Reader) (SegmentDataResult, error) {
	d, err := decodeSegmDataEventDescr(r)
	return SegmentDataResult{Descr: d}, err
}

// Encode writes the result.
func (s SegmentDataResult) Encode(w *mder.Writer) error {
	return s.Descr.Encode(w)
}

// DataRequest starts or stops agent data transmission.
type DataRequest struct {
	ID            uint16
	Mode          uint16
	Time          uint32
	PersonID      uint16
	Class         uint16
	ObjectHandles HandleList
}

// DecodeDataRequest reads a DataRequest.
func DecodeDataRequest(r *mder.Reader) (DataRequest, error) {
	var d DataRequest
	var err error
	if d.ID, err = r.Uint16(); err != nil {
		return d, err
	}
	if d.Mode, err = r.Uint16(); err != nil {
		return d, err
	}
	if d.Time, err = r.Uint32(); err != nil {
		return d, err
	}
	if d.PersonID, err = r.Uint16(); err != nil {
		return d, err
	}
	if d.Class, err = r.Uint16(); err != nil {
		return d, err
	}
	if d.ObjectHandles, err = DecodeHandleList(r); err != nil {
		return d, err
	}
	return d, nil
}

// Encode writes the request.
func (d DataRequest) Encode(w *mder.Writer) error {
	w.PutUint16(d.ID)
	w.PutUint16(d.Mode)
	w.PutUint32(d.Time)
	w.PutUint16(d.PersonID)
	w.PutUint16(d.Class)
	return d.ObjectHandles.Encode(w)
}

// DataResponse answers a DataRequest and may carry event data.
type DataResponse struct {
	RelTimeStamp uint32
	Result       uint16
	EventType    uint16
	EventInfo    Any
}

// DecodeDataResponse reads a DataResponse.
func DecodeDataResponse(r *mder.Reader) (DataResponse, error) {
	var d DataResponse
	var err error
	if d.RelTimeStamp, err = r.Uint32(); err != nil {
		return d, err
	}
	if d.Result, err = r.Uint16(); err != nil {
		return d, err
	}
	if d.EventType, err = r.Uint16(); err != nil {
		return d, err
	}
	if d.EventInfo, err = DecodeAny(r); err != nil {
		return d, err
	}
	return d, nil
}

// Encode writes the response.
func (d DataResponse) Encode(w *mder.Writer) error {
	w.PutUint32(d.RelTimeStamp)
	w.PutUint16(d.Result)
	w.PutUint16(d.EventType)
	return d.EventInfo.Encode(w)
}

// SetTimeInvoke is the argument of MDC_ACT_SET_TIME.
type SetTimeInvoke struct {
	DateTime AbsoluteTime
	Accuracy Float
}

// DecodeSetTimeInvoke reads a SetTimeInvoke.
func DecodeSetTimeInvoke(r *mder.Reader) (SetTimeInvoke, error) {
	t, err := DecodeAbsoluteTime(r)
	if err != nil {
		return SetTimeInvoke{}, err
	}
	a, err := readFloat(r)
	if err != nil {
		return SetTimeInvoke{}, err
	}
	return SetTimeInvoke{DateTime: t, Accuracy: a}, nil
}

// Encode writes the argument.
func (s SetTimeInvoke) Encode(w *mder.Writer) error {
	if err := s.DateTime.Encode(w); err != nil {
		return err
	}
	w.PutUint32(uint32(s.Accuracy))
	return nil
}
