package wire

import (
	"errors"
	"fmt"
	"math"

	"github.com/phd-protocol/phd-go/pkg/mder"
)

var (
	// ErrUnknownChoice is returned for an unrecognised union tag inside a
	// structure.
	ErrUnknownChoice = errors.New("wire: unknown choice")

	// ErrTooLong is returned when a list or octet string does not fit its
	// 16-bit length prefix.
	ErrTooLong = errors.New("wire: value too long")
)

// Encoder is implemented by every structure with an MDER encoding.
type Encoder interface {
	Encode(w *mder.Writer) error
}

// Marshal returns the MDER encoding of v.
func Marshal(v Encoder) ([]byte, error) {
	w := mder.NewWriter()
	if err := v.Encode(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Unmarshal decodes data with dec. Trailing bytes are ignored, as agents
// may pad structures carried in an Any.
func Unmarshal[T any](data []byte, dec func(*mder.Reader) (T, error)) (T, error) {
	return dec(mder.NewReader(data))
}

// readList decodes a count/length prefixed list. An empty list decodes as
// nil.
func readList[T any](r *mder.Reader, item func(*mder.Reader) (T, error)) ([]T, error) {
	count, err := r.Uint16()
	if err != nil {
		return nil, err
	}
	sub, err := r.Sub()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, nil
	}
	out := make([]T, 0, count)
	for i := 0; i < int(count); i++ {
		v, err := item(sub)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, v)
	}
	return out, nil
}

func writeList[T any](w *mder.Writer, items []T, item func(*mder.Writer, T) error) error {
	if len(items) > math.MaxUint16 {
		return fmt.Errorf("%w: %d list elements", ErrTooLong, len(items))
	}
	w.PutUint16(uint16(len(items)))
	return w.Sized(func(w *mder.Writer) error {
		for _, it := range items {
			if err := item(w, it); err != nil {
				return err
			}
		}
		return nil
	})
}

func readUint16(r *mder.Reader) (uint16, error) { return r.Uint16() }

func writeUint16(w *mder.Writer, v uint16) error {
	w.PutUint16(v)
	return nil
}

func readFloat(r *mder.Reader) (Float, error) {
	v, err := r.Uint32()
	return Float(v), err
}

// DecodeFloat reads a FLOAT-Type.
func DecodeFloat(r *mder.Reader) (Float, error) { return readFloat(r) }

// DecodeSFloat reads an SFLOAT-Type.
func DecodeSFloat(r *mder.Reader) (SFloat, error) { return readSFloat(r) }

func writeFloat(w *mder.Writer, v Float) error {
	w.PutUint32(uint32(v))
	return nil
}

func readSFloat(r *mder.Reader) (SFloat, error) {
	v, err := r.Uint16()
	return SFloat(v), err
}

func writeSFloat(w *mder.Writer, v SFloat) error {
	w.PutUint16(uint16(v))
	return nil
}

func encodeItem[T Encoder](w *mder.Writer, v T) error { return v.Encode(w) }

// Float is a raw MDER FLOAT-Type.
type Float uint32

// NewFloat encodes v as the closest FLOAT.
func NewFloat(v float64) Float { return Float(mder.EncodeFloat(v)) }

// Value returns the numeric value.
func (f Float) Value() float64 { return mder.FloatValue(uint32(f)) }

// Encode writes the FLOAT.
func (f Float) Encode(w *mder.Writer) error { return writeFloat(w, f) }

// SFloat is a raw MDER SFLOAT-Type.
type SFloat uint16

// NewSFloat encodes v as the closest SFLOAT.
func NewSFloat(v float64) SFloat { return SFloat(mder.EncodeSFloat(v)) }

// Value returns the numeric value.
func (f SFloat) Value() float64 { return mder.SFloatValue(uint16(f)) }

// Encode writes the SFLOAT.
func (f SFloat) Encode(w *mder.Writer) error { return writeSFloat(w, f) }

// Any is an opaque length-prefixed value whose type is given by context
// (an attribute id, event type or action type).
type Any []byte

// DecodeAny reads a length-prefixed octet string.
func DecodeAny(r *mder.Reader) (Any, error) {
	b, err := r.OctetString()
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, nil
	}
	return Any(b), nil
}

// Encode writes the length and the bytes.
func (a Any) Encode(w *mder.Writer) error {
	if err := w.PutOctetString(a); err != nil {
		return fmt.Errorf("%w: %v", ErrTooLong, err)
	}
	return nil
}

// AnyOf marshals v into an Any.
func AnyOf(v Encoder) (Any, error) {
	b, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	if len(b) == 0 {
		return nil, nil
	}
	return Any(b), nil
}

// OctetString is a length-prefixed byte string such as a label or
// system id.
type OctetString = Any
