// Package wire defines the ISO/IEEE 11073-20601 message structures and
// their MDER encoding.
//
// Every structure the protocol core consumes has a Decode function taking
// an [mder.Reader] and an Encode method writing to an [mder.Writer]. MDER
// is big-endian; compound lists are prefixed by a 16-bit element count and
// a 16-bit byte length.
//
// # APDU
//
// An [APDU] is the top-level envelope: a 16-bit choice and a 16-bit length
// followed by one of AARQ, AARE, RLRQ, RLRE, ABRT or PRST. A PRST carries a
// [DataAPDU], whose message choice selects a remote operation invoke (ROIV),
// result (RORS), error (ROER) or reject (RORJ) body.
//
// Unknown envelope or message choices are not errors: they decode to a
// [RawBody] so callers can log and ignore them. Unknown choices nested in
// a structure (for example an EnumVal) return [ErrUnknownChoice].
//
// # Values
//
// FLOAT-Type and SFLOAT-Type fields are kept in their raw 32/16-bit form
// ([Float], [SFloat]) so a decode followed by an encode reproduces the
// input bytes exactly.
package wire
