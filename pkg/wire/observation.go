package wire

import (
	"fmt"

	"github.com/phd-protocol/phd-go/pkg/mder"
)

// NuObsValue is a full numeric observation.
type NuObsValue struct {
	MetricID uint16
	State    uint16
	UnitCode uint16
	Value    Float
}

// DecodeNuObsValue reads a NuObsValue.
func DecodeNuObsValue(r *mder.Reader) (NuObsValue, error) {
	var v NuObsValue
	var err error
	if v.MetricID, err = r.Uint16(); err != nil {
		return v, err
	}
	if v.State, err = r.Uint16(); err != nil {
		return v, err
	}
	if v.UnitCode, err = r.Uint16(); err != nil {
		return v, err
	}
	if v.Value, err = readFloat(r); err != nil {
		return v, err
	}
	return v, nil
}

// Encode writes the observation.
func (v NuObsValue) Encode(w *mder.Writer) error {
	w.PutUint16(v.MetricID)
	w.PutUint16(v.State)
	w.PutUint16(v.UnitCode)
	w.PutUint32(uint32(v.Value))
	return nil
}

// NuObsValueCmp is a compound NuObsValue.
type NuObsValueCmp []NuObsValue

// DecodeNuObsValueCmp reads a NuObsValueCmp.
func DecodeNuObsValueCmp(r *mder.Reader) (NuObsValueCmp, error) {
	return readList(r, DecodeNuObsValue)
}

// Encode writes the list.
func (c NuObsValueCmp) Encode(w *mder.Writer) error {
	return writeList(w, c, encodeItem[NuObsValue])
}

// SimpleNuObsValueCmp is a compound of FLOAT values.
type SimpleNuObsValueCmp []Float

// DecodeSimpleNuObsValueCmp reads a SimpleNuObsValueCmp.
func DecodeSimpleNuObsValueCmp(r *mder.Reader) (SimpleNuObsValueCmp, error) {
	return readList(r, readFloat)
}

// Encode writes the list.
func (c SimpleNuObsValueCmp) Encode(w *mder.Writer) error {
	return writeList(w, c, writeFloat)
}

// BasicNuObsValueCmp is a compound of SFLOAT values.
type BasicNuObsValueCmp []SFloat

// DecodeBasicNuObsValueCmp reads a BasicNuObsValueCmp.
func DecodeBasicNuObsValueCmp(r *mder.Reader) (BasicNuObsValueCmp, error) {
	return readList(r, readSFloat)
}

// Encode writes the list.
func (c BasicNuObsValueCmp) Encode(w *mder.Writer) error {
	return writeList(w, c, writeSFloat)
}

// EnumValChoice selects the representation of an EnumVal.
type EnumValChoice uint16

const (
	EnumValOID    EnumValChoice = 0x0001
	EnumValText   EnumValChoice = 0x0002
	EnumValBitStr EnumValChoice = 0x0010
)

// String returns the choice name.
func (c EnumValChoice) String() string {
	switch c {
	case EnumValOID:
		return "OID"
	case EnumValText:
		return "TEXT"
	case EnumValBitStr:
		return "BIT-STR"
	default:
		return "UNKNOWN"
	}
}

// EnumVal is the value of an enumeration observation. Exactly one of the
// fields is meaningful, selected by Choice.
type EnumVal struct {
	Choice EnumValChoice
	OID    uint16
	Text   []byte
	BitStr uint32
}

// DecodeEnumVal reads an EnumVal choice.
func DecodeEnumVal(r *mder.Reader) (EnumVal, error) {
	c, err := r.Uint16()
	if err != nil {
		return EnumVal{}, err
	}
	sub, err := r.Sub()
	if err != nil {
		return EnumVal{}, err
	}
	v := EnumVal{Choice: EnumValChoice(c)}
	switch v.Choice {
	case EnumValOID:
		v.OID, err = sub.Uint16()
	case EnumValText:
		v.Text, err = sub.OctetString()
	case EnumValBitStr:
		v.BitStr, err = sub.Uint32()
	default:
		err = fmt.Errorf("%w: enum value 0x%04x", ErrUnknownChoice, c)
	}
	return v, err
}

// Encode writes the choice, length and value.
func (v EnumVal) Encode(w *mder.Writer) error {
	w.PutUint16(uint16(v.Choice))
	return w.Sized(func(w *mder.Writer) error {
		switch v.Choice {
		case EnumValOID:
			w.PutUint16(v.OID)
		case EnumValText:
			return w.PutOctetString(v.Text)
		case EnumValBitStr:
			w.PutUint32(v.BitStr)
		default:
			return fmt.Errorf("%w: enum value 0x%04x", ErrUnknownChoice, uint16(v.Choice))
		}
		return nil
	})
}

// EnumObsValue is a structured enumeration observation.
type EnumObsValue struct {
	MetricID uint16
	State    uint16
	Value    EnumVal
}

// DecodeEnumObsValue reads an EnumObsValue.
func DecodeEnumObsValue(r *mder.Reader) (EnumObsValue, error) {
	var v EnumObsValue
	var err error
	if v.MetricID, err = r.Uint16(); err != nil {
		return v, err
	}
	if v.State, err = r.Uint16(); err != nil {
		return v, err
	}
	if v.Value, err = DecodeEnumVal(r); err != nil {
		return v, err
	}
	return v, nil
}

// Encode writes the observation.
func (v EnumObsValue) Encode(w *mder.Writer) error {
	w.PutUint16(v.MetricID)
	w.PutUint16(v.State)
	return v.Value.Encode(w)
}
