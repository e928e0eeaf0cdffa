package wire

import (
	"fmt"

	"github.com/phd-protocol/phd-go/pkg/mder"
)

// Body is the payload of an APDU or of a DATA_apdu message.
type Body interface {
	Encoder
	body()
}

// RawBody carries the undecoded bytes of an unrecognised choice.
type RawBody []byte

func (RawBody) body() {}

// Encode writes the bytes unchanged.
func (b RawBody) Encode(w *mder.Writer) error {
	w.PutBytes(b)
	return nil
}

// APDU is the top-level protocol message.
type APDU struct {
	Choice APDUChoice
	Body   Body
}

// PRST carries a DATA_apdu.
type PRST struct {
	Data DataAPDU
}

func (*PRST) body() {}

// Encode writes the octet-string length and the DATA_apdu.
func (p *PRST) Encode(w *mder.Writer) error {
	return w.Sized(p.Data.Encode)
}

// DecodeAPDU decodes a complete APDU from data. An unknown choice yields a
// RawBody rather than an error.
func DecodeAPDU(data []byte) (*APDU, error) {
	r := mder.NewReader(data)
	c, err := r.Uint16()
	if err != nil {
		return nil, fmt.Errorf("apdu choice: %w", err)
	}
	sub, err := r.Sub()
	if err != nil {
		return nil, fmt.Errorf("apdu length: %w", err)
	}
	a := &APDU{Choice: APDUChoice(c)}
	switch a.Choice {
	case AARQChosen:
		a.Body, err = decodeAARQ(sub)
	case AAREChosen:
		a.Body, err = decodeAARE(sub)
	case RLRQChosen:
		var v uint16
		v, err = sub.Uint16()
		a.Body = &RLRQ{Reason: ReleaseRequestReason(v)}
	case RLREChosen:
		var v uint16
		v, err = sub.Uint16()
		a.Body = &RLRE{Reason: ReleaseResponseReason(v)}
	case ABRTChosen:
		var v uint16
		v, err = sub.Uint16()
		a.Body = &ABRT{Reason: AbortReason(v)}
	case PRSTChosen:
		var inner *mder.Reader
		if inner, err = sub.Sub(); err == nil {
			var d DataAPDU
			d, err = DecodeDataAPDU(inner)
			a.Body = &PRST{Data: d}
		}
	default:
		a.Body = RawBody(sub.Rest())
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", a.Choice, err)
	}
	return a, nil
}

// EncodeAPDU returns the MDER encoding of a.
func EncodeAPDU(a *APDU) ([]byte, error) {
	return Marshal(a)
}

// Encode writes the choice, the length and the body.
func (a *APDU) Encode(w *mder.Writer) error {
	w.PutUint16(uint16(a.Choice))
	return w.Sized(a.Body.Encode)
}

// NewPRST wraps a DATA_apdu in an APDU.
func NewPRST(d DataAPDU) *APDU {
	return &APDU{Choice: PRSTChosen, Body: &PRST{Data: d}}
}

// DataAPDU returns the DATA_apdu of a PRST, or nil for other choices.
func (a *APDU) DataAPDU() *DataAPDU {
	if p, ok := a.Body.(*PRST); ok {
		return &p.Data
	}
	return nil
}

// DataProto names a data protocol and carries its parameters.
type DataProto struct {
	ID   uint16
	Info Any
}

func decodeDataProto(r *mder.Reader) (DataProto, error) {
	id, err := r.Uint16()
	if err != nil {
		return DataProto{}, err
	}
	info, err := DecodeAny(r)
	if err != nil {
		return DataProto{}, err
	}
	return DataProto{ID: id, Info: info}, nil
}

func (p DataProto) Encode(w *mder.Writer) error {
	w.PutUint16(p.ID)
	return p.Info.Encode(w)
}

// AARQ is an association request.
type AARQ struct {
	AssocVersion uint32
	Protocols    []DataProto
}

func (*AARQ) body() {}

func decodeAARQ(r *mder.Reader) (*AARQ, error) {
	v, err := r.Uint32()
	if err != nil {
		return nil, err
	}
	l, err := readList(r, decodeDataProto)
	if err != nil {
		return nil, err
	}
	return &AARQ{AssocVersion: v, Protocols: l}, nil
}

// Encode writes the request.
func (a *AARQ) Encode(w *mder.Writer) error {
	w.PutUint32(a.AssocVersion)
	return writeList(w, a.Protocols, encodeItem[DataProto])
}

// AARE is an association response.
type AARE struct {
	Result   AssociateResult
	Selected DataProto
}

func (*AARE) body() {}

func decodeAARE(r *mder.Reader) (*AARE, error) {
	res, err := r.Uint16()
	if err != nil {
		return nil, err
	}
	p, err := decodeDataProto(r)
	if err != nil {
		return nil, err
	}
	return &AARE{Result: AssociateResult(res), Selected: p}, nil
}

// Encode writes the response.
func (a *AARE) Encode(w *mder.Writer) error {
	w.PutUint16(uint16(a.Result))
	return a.Selected.Encode(w)
}

// RLRQ requests release of the association.
type RLRQ struct {
	Reason ReleaseRequestReason
}

func (*RLRQ) body() {}

// Encode writes the reason.
func (r *RLRQ) Encode(w *mder.Writer) error {
	w.PutUint16(uint16(r.Reason))
	return nil
}

// RLRE confirms release of the association.
type RLRE struct {
	Reason ReleaseResponseReason
}

func (*RLRE) body() {}

// Encode writes the reason.
func (r *RLRE) Encode(w *mder.Writer) error {
	w.PutUint16(uint16(r.Reason))
	return nil
}

// ABRT aborts the association.
type ABRT struct {
	Reason AbortReason
}

func (*ABRT) body() {}

// Encode writes the reason.
func (a *ABRT) Encode(w *mder.Writer) error {
	w.PutUint16(uint16(a.Reason))
	return nil
}

// DataReqModeCapab advertises the data-request modes of an agent.
type DataReqModeCapab struct {
	Flags            uint16
	InitAgentCount   uint8
	InitManagerCount uint8
}

// PhdAssociationInformation is the data_proto_info of the 20601 protocol.
type PhdAssociationInformation struct {
	ProtocolVersion     uint32
	EncodingRules       uint16
	NomenclatureVersion uint32
	FunctionalUnits     uint32
	SystemType          uint32
	SystemID            []byte
	DevConfigID         uint16
	DataReqModeCapab    DataReqModeCapab
	OptionList          AttributeList
}

// DecodePhdAssociationInformation reads the association parameters.
func DecodePhdAssociationInformation(r *mder.Reader) (PhdAssociationInformation, error) {
	var p PhdAssociationInformation
	var err error
	if p.ProtocolVersion, err = r.Uint32(); err != nil {
		return p, err
	}
	if p.EncodingRules, err = r.Uint16(); err != nil {
		return p, err
	}
	if p.NomenclatureVersion, err = r.Uint32(); err != nil {
		return p, err
	}
	if p.FunctionalUnits, err = r.Uint32(); err != nil {
		return p, err
	}
	if p.SystemType, err = r.Uint32(); err != nil {
		return p, err
	}
	if p.SystemID, err = r.OctetString(); err != nil {
		return p, err
	}
	if p.DevConfigID, err = r.Uint16(); err != nil {
		return p, err
	}
	if p.DataReqModeCapab.Flags, err = r.Uint16(); err != nil {
		return p, err
	}
	if p.DataReqModeCapab.InitAgentCount, err = r.Uint8(); err != nil {
		return p, err
	}
	if p.DataReqModeCapab.InitManagerCount, err = r.Uint8(); err != nil {
		return p, err
	}
	if p.OptionList, err = DecodeAttributeList(r); err != nil {
		return p, err
	}
	return p, nil
}

// Encode writes the association parameters.
func (p PhdAssociationInformation) Encode(w *mder.Writer) error {
	w.PutUint32(p.ProtocolVersion)
	w.PutUint16(p.EncodingRules)
	w.PutUint32(p.NomenclatureVersion)
	w.PutUint32(p.FunctionalUnits)
	w.PutUint32(p.SystemType)
	if err := w.PutOctetString(p.SystemID); err != nil {
		return err
	}
	w.PutUint16(p.DevConfigID)
	w.PutUint16(p.DataReqModeCapab.Flags)
	w.PutUint8(p.DataReqModeCapab.InitAgentCount)
	w.PutUint8(p.DataReqModeCapab.InitManagerCount)
	return p.OptionList.Encode(w)
}
