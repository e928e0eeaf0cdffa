// Package mder implements the byte-level primitives of the IEEE 11073-20601
// Medical Device Encoding Rules (MDER).
//
// MDER is a fixed big-endian encoding: integers are 1, 2 or 4 octets, octet
// strings and SEQUENCE OF values carry a 16-bit length prefix, and numeric
// observations use the 32-bit FLOAT and 16-bit SFLOAT decimal formats.
//
// # Reading
//
// A Reader is an explicit cursor over a fixed buffer. Every read advances the
// cursor and returns an error wrapping ErrUnderrun when the buffer is
// exhausted. Length-prefixed sub-structures are decoded through Sub, which
// returns a bounded Reader and advances the parent past the whole structure:
//
//	r := mder.NewReader(data)
//	choice, err := r.Uint16()
//	body, err := r.Sub()
//
// # Writing
//
// A Writer grows an owned buffer. Nested length-prefixed structures are
// written with Sized:
//
//	w := mder.NewWriter()
//	w.PutUint16(choice)
//	err := w.Sized(func(w *mder.Writer) error { ... })
//	data := w.Bytes()
package mder
