package mder

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// ErrUnderrun is returned when a read needs more bytes than remain.
var ErrUnderrun = errors.New("mder: buffer underrun")

// Reader is a sequential cursor over a fixed byte buffer.
// A Reader is not safe for concurrent use.
type Reader struct {
	buf []byte
	off int
}

// NewReader creates a reader positioned at the start of buf.
// The reader does not copy buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// Len returns the number of unread bytes.
func (r *Reader) Len() int {
	return len(r.buf) - r.off
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int {
	return r.off
}

// Size returns the total size of the underlying buffer.
func (r *Reader) Size() int {
	return len(r.buf)
}

func (r *Reader) need(n int) error {
	if n < 0 || r.Len() < n {
		return fmt.Errorf("%w: need %d bytes at offset %d, have %d", ErrUnderrun, n, r.off, r.Len())
	}
	return nil
}

// Uint8 reads one octet.
func (r *Reader) Uint8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.buf[r.off]
	r.off++
	return v, nil
}

// Uint16 reads a big-endian 16-bit integer.
func (r *Reader) Uint16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint16(r.buf[r.off:])
	r.off += 2
	return v, nil
}

// Uint32 reads a big-endian 32-bit integer.
func (r *Reader) Uint32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.BigEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v, nil
}

// Int8 reads a signed octet.
func (r *Reader) Int8() (int8, error) {
	v, err := r.Uint8()
	return int8(v), err
}

// Int16 reads a signed big-endian 16-bit integer.
func (r *Reader) Int16() (int16, error) {
	v, err := r.Uint16()
	return int16(v), err
}

// Int32 reads a signed big-endian 32-bit integer.
func (r *Reader) Int32() (int32, error) {
	v, err := r.Uint32()
	return int32(v), err
}

// Float reads a 32-bit MDER FLOAT and converts it to float64.
func (r *Reader) Float() (float64, error) {
	v, err := r.Uint32()
	if err != nil {
		return 0, err
	}
	return FloatValue(v), nil
}

// SFloat reads a 16-bit MDER SFLOAT and converts it to float64.
func (r *Reader) SFloat() (float64, error) {
	v, err := r.Uint16()
	if err != nil {
		return 0, err
	}
	return SFloatValue(v), nil
}

// Bytes reads exactly n bytes. The returned slice is a copy.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, r.buf[r.off:r.off+n])
	r.off += n
	return out, nil
}

// OctetString reads a 16-bit length followed by that many bytes.
func (r *Reader) OctetString() ([]byte, error) {
	n, err := r.Uint16()
	if err != nil {
		return nil, err
	}
	return r.Bytes(int(n))
}

// Sub reads a 16-bit length and returns a reader bounded to that many bytes.
// The parent reader is advanced past the sub-structure.
func (r *Reader) Sub() (*Reader, error) {
	n, err := r.Uint16()
	if err != nil {
		return nil, err
	}
	return r.Take(int(n))
}

// Take returns a reader over the next n bytes and advances past them.
func (r *Reader) Take(n int) (*Reader, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	sub := &Reader{buf: r.buf[r.off : r.off+n]}
	r.off += n
	return sub, nil
}

// Rest returns the unread bytes without advancing.
func (r *Reader) Rest() []byte {
	return r.buf[r.off:]
}
