package mder

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Writer appends MDER-encoded values to an owned, growable buffer.
// The zero value is ready to use.
type Writer struct {
	buf []byte
}

// NewWriter creates an empty writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Bytes returns the encoded bytes. The slice aliases the writer's buffer.
func (w *Writer) Bytes() []byte {
	return w.buf
}

// Len returns the number of bytes written.
func (w *Writer) Len() int {
	return len(w.buf)
}

// PutUint8 appends one octet.
func (w *Writer) PutUint8(v uint8) {
	w.buf = append(w.buf, v)
}

// PutUint16 appends a big-endian 16-bit integer.
func (w *Writer) PutUint16(v uint16) {
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
}

// PutUint32 appends a big-endian 32-bit integer.
func (w *Writer) PutUint32(v uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

// PutFloat appends v encoded as a 32-bit MDER FLOAT.
func (w *Writer) PutFloat(v float64) {
	w.PutUint32(EncodeFloat(v))
}

// PutSFloat appends v encoded as a 16-bit MDER SFLOAT.
func (w *Writer) PutSFloat(v float64) {
	w.PutUint16(EncodeSFloat(v))
}

// PutBytes appends raw bytes.
func (w *Writer) PutBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

// PutOctetString appends a 16-bit length followed by b.
func (w *Writer) PutOctetString(b []byte) error {
	if len(b) > math.MaxUint16 {
		return fmt.Errorf("mder: octet string too long: %d bytes", len(b))
	}
	w.PutUint16(uint16(len(b)))
	w.PutBytes(b)
	return nil
}

// Sized writes a 16-bit length placeholder, runs fn, then back-fills the
// length with the number of bytes fn wrote.
func (w *Writer) Sized(fn func(w *Writer) error) error {
	start := len(w.buf)
	w.PutUint16(0)
	if err := fn(w); err != nil {
		return err
	}
	n := len(w.buf) - start - 2
	if n > math.MaxUint16 {
		return fmt.Errorf("mder: structure too long: %d bytes", n)
	}
	binary.BigEndian.PutUint16(w.buf[start:], uint16(n))
	return nil
}
