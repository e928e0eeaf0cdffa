package wire

import (
	"fmt"

	"github.com/phd-protocol/phd-go/pkg/mder"
)

// Type is a nomenclature code qualified by its partition (TYPE).
type Type struct {
	Partition uint16
	Code      uint16
}

// DecodeType reads a TYPE.
func DecodeType(r *mder.Reader) (Type, error) {
	p, err := r.Uint16()
	if err != nil {
		return Type{}, err
	}
	c, err := r.Uint16()
	if err != nil {
		return Type{}, err
	}
	return Type{Partition: p, Code: c}, nil
}

// Encode writes a TYPE.
func (t Type) Encode(w *mder.Writer) error {
	w.PutUint16(t.Partition)
	w.PutUint16(t.Code)
	return nil
}

// AVAType is one attribute id/value assertion.
type AVAType struct {
	AttributeID uint16
	Value       Any
}

// DecodeAVAType reads an AVA_Type.
func DecodeAVAType(r *mder.Reader) (AVAType, error) {
	id, err := r.Uint16()
	if err != nil {
		return AVAType{}, err
	}
	v, err := DecodeAny(r)
	if err != nil {
		return AVAType{}, fmt.Errorf("attribute %d: %w", id, err)
	}
	return AVAType{AttributeID: id, Value: v}, nil
}

// Encode writes an AVA_Type.
func (a AVAType) Encode(w *mder.Writer) error {
	w.PutUint16(a.AttributeID)
	return a.Value.Encode(w)
}

// AttributeList is a list of AVA_Type.
type AttributeList []AVAType

// DecodeAttributeList reads an AttributeList.
func DecodeAttributeList(r *mder.Reader) (AttributeList, error) {
	return readList(r, DecodeAVAType)
}

// Encode writes the list.
func (l AttributeList) Encode(w *mder.Writer) error {
	return writeList(w, l, encodeItem[AVAType])
}

// Find returns the value of the first attribute with the given id.
func (l AttributeList) Find(id uint16) (Any, bool) {
	for _, a := range l {
		if a.AttributeID == id {
			return a.Value, true
		}
	}
	return nil, false
}

// AttributeIDList is a list of attribute ids (OID-Type).
type AttributeIDList []uint16

// DecodeAttributeIDList reads an AttributeIdList.
func DecodeAttributeIDList(r *mder.Reader) (AttributeIDList, error) {
	return readList(r, readUint16)
}

// Encode writes the list.
func (l AttributeIDList) Encode(w *mder.Writer) error {
	return writeList(w, l, writeUint16)
}

// HandleList is a list of object handles.
type HandleList []uint16

// DecodeHandleList reads a HANDLEList.
func DecodeHandleList(r *mder.Reader) (HandleList, error) {
	return readList(r, readUint16)
}

// Encode writes the list.
func (l HandleList) Encode(w *mder.Writer) error {
	return writeList(w, l, writeUint16)
}

// MetricIDList is a list of metric codes.
type MetricIDList []uint16

// DecodeMetricIDList reads a MetricIdList.
func DecodeMetricIDList(r *mder.Reader) (MetricIDList, error) {
	return readList(r, readUint16)
}

// Encode writes the list.
func (l MetricIDList) Encode(w *mder.Writer) error {
	return writeList(w, l, writeUint16)
}

// SupplementalTypeList is a list of TYPE.
type SupplementalTypeList []Type

// DecodeSupplementalTypeList reads a SupplementalTypeList.
func DecodeSupplementalTypeList(r *mder.Reader) (SupplementalTypeList, error) {
	return readList(r, DecodeType)
}

// Encode writes the list.
func (l SupplementalTypeList) Encode(w *mder.Writer) error {
	return writeList(w, l, encodeItem[Type])
}

// AttrValMapEntry gives the id and encoded length of one field of a
// fixed-format observation.
type AttrValMapEntry struct {
	AttributeID uint16
	Length      uint16
}

func decodeAttrValMapEntry(r *mder.Reader) (AttrValMapEntry, error) {
	id, err := r.Uint16()
	if err != nil {
		return AttrValMapEntry{}, err
	}
	n, err := r.Uint16()
	if err != nil {
		return AttrValMapEntry{}, err
	}
	return AttrValMapEntry{AttributeID: id, Length: n}, nil
}

func (e AttrValMapEntry) Encode(w *mder.Writer) error {
	w.PutUint16(e.AttributeID)
	w.PutUint16(e.Length)
	return nil
}

// AttrValMap is the ordered field layout of a fixed-format observation.
type AttrValMap []AttrValMapEntry

// DecodeAttrValMap reads an AttrValMap.
func DecodeAttrValMap(r *mder.Reader) (AttrValMap, error) {
	return readList(r, decodeAttrValMapEntry)
}

// Encode writes the map.
func (m AttrValMap) Encode(w *mder.Writer) error {
	return writeList(w, m, encodeItem[AttrValMapEntry])
}

// Size returns the total number of bytes described by the map.
func (m AttrValMap) Size() int {
	n := 0
	for _, e := range m {
		n += int(e.Length)
	}
	return n
}

// HandleAttrValMapEntry associates an attribute-value map with an object.
type HandleAttrValMapEntry struct {
	Handle     uint16
	AttrValMap AttrValMap
}

func decodeHandleAttrValMapEntry(r *mder.Reader) (HandleAttrValMapEntry, error) {
	h, err := r.Uint16()
	if err != nil {
		return HandleAttrValMapEntry{}, err
	}
	m, err := DecodeAttrValMap(r)
	if err != nil {
		return HandleAttrValMapEntry{}, fmt.Errorf("handle %d: %w", h, err)
	}
	return HandleAttrValMapEntry{Handle: h, AttrValMap: m}, nil
}

func (e HandleAttrValMapEntry) Encode(w *mder.Writer) error {
	w.PutUint16(e.Handle)
	return e.AttrValMap.Encode(w)
}

// HandleAttrValMap lists the attribute layouts of the objects a scanner
// reports in grouped format, in report order.
type HandleAttrValMap []HandleAttrValMapEntry

// DecodeHandleAttrValMap reads a HandleAttrValMap.
func DecodeHandleAttrValMap(r *mder.Reader) (HandleAttrValMap, error) {
	return readList(r, decodeHandleAttrValMapEntry)
}

// Encode writes the map.
func (m HandleAttrValMap) Encode(w *mder.Writer) error {
	return writeList(w, m, encodeItem[HandleAttrValMapEntry])
}

// MetricStructureSmall describes a compound metric.
type MetricStructureSmall struct {
	Structure    uint8
	ComponentNum uint8
}

// DecodeMetricStructureSmall reads a MetricStructureSmall.
func DecodeMetricStructureSmall(r *mder.Reader) (MetricStructureSmall, error) {
	s, err := r.Uint8()
	if err != nil {
		return MetricStructureSmall{}, err
	}
	n, err := r.Uint8()
	if err != nil {
		return MetricStructureSmall{}, err
	}
	return MetricStructureSmall{Structure: s, ComponentNum: n}, nil
}

// Encode writes the structure.
func (m MetricStructureSmall) Encode(w *mder.Writer) error {
	w.PutUint8(m.Structure)
	w.PutUint8(m.ComponentNum)
	return nil
}

// SystemModel identifies the device manufacturer and model.
type SystemModel struct {
	Manufacturer []byte
	ModelNumber  []byte
}

// DecodeSystemModel reads a SystemModel.
func DecodeSystemModel(r *mder.Reader) (SystemModel, error) {
	m, err := r.OctetString()
	if err != nil {
		return SystemModel{}, err
	}
	n, err := r.OctetString()
	if err != nil {
		return SystemModel{}, err
	}
	return SystemModel{Manufacturer: m, ModelNumber: n}, nil
}

// Encode writes the model.
func (m SystemModel) Encode(w *mder.Writer) error {
	if err := w.PutOctetString(m.Manufacturer); err != nil {
		return err
	}
	return w.PutOctetString(m.ModelNumber)
}

// ProdSpecEntry is one component revision of a ProductionSpec.
type ProdSpecEntry struct {
	SpecType    uint16
	ComponentID uint16
	ProdSpec    []byte
}

func decodeProdSpecEntry(r *mder.Reader) (ProdSpecEntry, error) {
	var e ProdSpecEntry
	var err error
	if e.SpecType, err = r.Uint16(); err != nil {
		return e, err
	}
	if e.ComponentID, err = r.Uint16(); err != nil {
		return e, err
	}
	if e.ProdSpec, err = r.OctetString(); err != nil {
		return e, err
	}
	return e, nil
}

func (e ProdSpecEntry) Encode(w *mder.Writer) error {
	w.PutUint16(e.SpecType)
	w.PutUint16(e.ComponentID)
	return w.PutOctetString(e.ProdSpec)
}

// ProductionSpec lists serial numbers and revisions.
type ProductionSpec []ProdSpecEntry

// DecodeProductionSpec reads a ProductionSpec.
func DecodeProductionSpec(r *mder.Reader) (ProductionSpec, error) {
	return readList(r, decodeProdSpecEntry)
}

// Encode writes the list.
func (p ProductionSpec) Encode(w *mder.Writer) error {
	return writeList(w, p, encodeItem[ProdSpecEntry])
}

// MdsTimeInfo describes the clock capabilities of the agent.
type MdsTimeInfo struct {
	CapState            uint16
	SyncProtocol        uint16
	SyncAccuracy        uint32
	ResolutionAbsTime   uint16
	ResolutionRelTime   uint16
	ResolutionHiResTime uint32
}

// DecodeMdsTimeInfo reads an MdsTimeInfo.
func DecodeMdsTimeInfo(r *mder.Reader) (MdsTimeInfo, error) {
	var t MdsTimeInfo
	var err error
	if t.CapState, err = r.Uint16(); err != nil {
		return t, err
	}
	if t.SyncProtocol, err = r.Uint16(); err != nil {
		return t, err
	}
	if t.SyncAccuracy, err = r.Uint32(); err != nil {
		return t, err
	}
	if t.ResolutionAbsTime, err = r.Uint16(); err != nil {
		return t, err
	}
	if t.ResolutionRelTime, err = r.Uint16(); err != nil {
		return t, err
	}
	if t.ResolutionHiResTime, err = r.Uint32(); err != nil {
		return t, err
	}
	return t, nil
}

// Encode writes the time info.
func (t MdsTimeInfo) Encode(w *mder.Writer) error {
	w.PutUint16(t.CapState)
	w.PutUint16(t.SyncProtocol)
	w.PutUint32(t.SyncAccuracy)
	w.PutUint16(t.ResolutionAbsTime)
	w.PutUint16(t.ResolutionRelTime)
	w.PutUint32(t.ResolutionHiResTime)
	return nil
}

// BatMeasure is a battery measurement with its unit.
type BatMeasure struct {
	Value Float
	Unit  uint16
}

// DecodeBatMeasure reads a BatMeasure.
func DecodeBatMeasure(r *mder.Reader) (BatMeasure, error) {
	v, err := readFloat(r)
	if err != nil {
		return BatMeasure{}, err
	}
	u, err := r.Uint16()
	if err != nil {
		return BatMeasure{}, err
	}
	return BatMeasure{Value: v, Unit: u}, nil
}

// Encode writes the measurement.
func (b BatMeasure) Encode(w *mder.Writer) error {
	w.PutUint32(uint32(b.Value))
	w.PutUint16(b.Unit)
	return nil
}

// RegCertData is one regulatory or certification record.
type RegCertData struct {
	AuthBody     uint8
	AuthBodyType uint8
	Data         Any
}

func decodeRegCertData(r *mder.Reader) (RegCertData, error) {
	var d RegCertData
	var err error
	if d.AuthBody, err = r.Uint8(); err != nil {
		return d, err
	}
	if d.AuthBodyType, err = r.Uint8(); err != nil {
		return d, err
	}
	if d.Data, err = DecodeAny(r); err != nil {
		return d, err
	}
	return d, nil
}

func (d RegCertData) Encode(w *mder.Writer) error {
	w.PutUint8(d.AuthBody)
	w.PutUint8(d.AuthBodyType)
	return d.Data.Encode(w)
}

// RegCertDataList lists regulatory certifications.
type RegCertDataList []RegCertData

// DecodeRegCertDataList reads a RegCertDataList.
func DecodeRegCertDataList(r *mder.Reader) (RegCertDataList, error) {
	return readList(r, decodeRegCertData)
}

// Encode writes the list.
func (l RegCertDataList) Encode(w *mder.Writer) error {
	return writeList(w, l, encodeItem[RegCertData])
}

// TypeVer is a supported device specialization and its version.
type TypeVer struct {
	Type    uint16
	Version uint16
}

func decodeTypeVer(r *mder.Reader) (TypeVer, error) {
	t, err := r.Uint16()
	if err != nil {
		return TypeVer{}, err
	}
	v, err := r.Uint16()
	if err != nil {
		return TypeVer{}, err
	}
	return TypeVer{Type: t, Version: v}, nil
}

func (t TypeVer) Encode(w *mder.Writer) error {
	w.PutUint16(t.Type)
	w.PutUint16(t.Version)
	return nil
}

// TypeVerList is the System-Type-Spec-List attribute.
type TypeVerList []TypeVer

// DecodeTypeVerList reads a TypeVerList.
func DecodeTypeVerList(r *mder.Reader) (TypeVerList, error) {
	return readList(r, decodeTypeVer)
}

// Encode writes the list.
func (l TypeVerList) Encode(w *mder.Writer) error {
	return writeList(w, l, encodeItem[TypeVer])
}

// SaSpec describes the sample array of an RT-SA object.
type SaSpec struct {
	ArraySize       uint16
	SampleSize      uint8
	SignificantBits uint8
	Flags           uint16
}

// DecodeSaSpec reads an SaSpec.
func DecodeSaSpec(r *mder.Reader) (SaSpec, error) {
	var s SaSpec
	var err error
	if s.ArraySize, err = r.Uint16(); err != nil {
		return s, err
	}
	if s.SampleSize, err = r.Uint8(); err != nil {
		return s, err
	}
	if s.SignificantBits, err = r.Uint8(); err != nil {
		return s, err
	}
	if s.Flags, err = r.Uint16(); err != nil {
		return s, err
	}
	return s, nil
}

// Encode writes the spec.
func (s SaSpec) Encode(w *mder.Writer) error {
	w.PutUint16(s.ArraySize)
	w.PutUint8(s.SampleSize)
	w.PutUint8(s.SignificantBits)
	w.PutUint16(s.Flags)
	return nil
}

// ScaleRangeSpec maps the scaled integer samples of an RT-SA object to
// absolute values. Width is 8, 16 or 32 and selects the encoded size of
// the scaled bounds.
type ScaleRangeSpec struct {
	Width         int
	LowerAbsolute Float
	UpperAbsolute Float
	LowerScaled   uint32
	UpperScaled   uint32
}

// DecodeScaleRangeSpec reads a ScaleRangeSpec8/16/32 according to width.
func DecodeScaleRangeSpec(r *mder.Reader, width int) (ScaleRangeSpec, error) {
	s := ScaleRangeSpec{Width: width}
	var err error
	if s.LowerAbsolute, err = readFloat(r); err != nil {
		return s, err
	}
	if s.UpperAbsolute, err = readFloat(r); err != nil {
		return s, err
	}
	read := func() (uint32, error) {
		switch width {
		case 8:
			v, err := r.Uint8()
			return uint32(v), err
		case 16:
			v, err := r.Uint16()
			return uint32(v), err
		case 32:
			return r.Uint32()
		}
		return 0, fmt.Errorf("%w: scale width %d", ErrUnknownChoice, width)
	}
	if s.LowerScaled, err = read(); err != nil {
		return s, err
	}
	if s.UpperScaled, err = read(); err != nil {
		return s, err
	}
	return s, nil
}

// Encode writes the spec using its width.
func (s ScaleRangeSpec) Encode(w *mder.Writer) error {
	w.PutUint32(uint32(s.LowerAbsolute))
	w.PutUint32(uint32(s.UpperAbsolute))
	for _, v := range []uint32{s.LowerScaled, s.UpperScaled} {
		switch s.Width {
		case 8:
			w.PutUint8(uint8(v))
		case 16:
			w.PutUint16(uint16(v))
		case 32:
			w.PutUint32(v)
		default:
			return fmt.Errorf("%w: scale width %d", ErrUnknownChoice, s.Width)
		}
	}
	return nil
}
