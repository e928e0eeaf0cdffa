package wire

import (
	"time"

	"github.com/phd-protocol/phd-go/pkg/mder"
)

// NumberToBCD packs a two-digit decimal 0..99 into one BCD octet.
func NumberToBCD(n uint8) uint8 {
	return (n/10)<<4 | n%10
}

// BCDToNumber unpacks a BCD octet.
func BCDToNumber(b uint8) uint8 {
	return (b>>4)*10 + b&0x0F
}

// AbsoluteTime is a calendar date and time. Every field is BCD coded on
// the wire; the struct holds the raw octets.
type AbsoluteTime struct {
	Century     uint8
	Year        uint8
	Month       uint8
	Day         uint8
	Hour        uint8
	Minute      uint8
	Second      uint8
	SecFraction uint8
}

// DecodeAbsoluteTime reads eight BCD octets.
func DecodeAbsoluteTime(r *mder.Reader) (AbsoluteTime, error) {
	b, err := r.Bytes(8)
	if err != nil {
		return AbsoluteTime{}, err
	}
	return AbsoluteTime{b[0], b[1], b[2], b[3], b[4], b[5], b[6], b[7]}, nil
}

// Encode writes the eight octets.
func (t AbsoluteTime) Encode(w *mder.Writer) error {
	w.PutBytes([]byte{t.Century, t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second, t.SecFraction})
	return nil
}

func (t AbsoluteTime) fields() [8]uint8 {
	return [8]uint8{t.Century, t.Year, t.Month, t.Day, t.Hour, t.Minute, t.Second, t.SecFraction}
}

// NewAbsoluteTime converts tm to BCD form with hundredths of a second.
func NewAbsoluteTime(tm time.Time) AbsoluteTime {
	y := tm.Year()
	return AbsoluteTime{
		Century:     NumberToBCD(uint8(y / 100)),
		Year:        NumberToBCD(uint8(y % 100)),
		Month:       NumberToBCD(uint8(tm.Month())),
		Day:         NumberToBCD(uint8(tm.Day())),
		Hour:        NumberToBCD(uint8(tm.Hour())),
		Minute:      NumberToBCD(uint8(tm.Minute())),
		Second:      NumberToBCD(uint8(tm.Second())),
		SecFraction: NumberToBCD(uint8(tm.Nanosecond() / int(10*time.Millisecond))),
	}
}

// Time converts t to a time.Time in loc.
func (t AbsoluteTime) Time(loc *time.Location) time.Time {
	f := t.fields()
	var n [8]int
	for i, b := range f {
		n[i] = int(BCDToNumber(b))
	}
	return time.Date(n[0]*100+n[1], time.Month(n[2]), n[3], n[4], n[5], n[6], n[7]*int(10*time.Millisecond), loc)
}

// CompareAbsoluteTime orders a and b field by field from century down to
// the fraction of a second. It returns -1, 0 or +1.
func CompareAbsoluteTime(a, b AbsoluteTime) int {
	fa, fb := a.fields(), b.fields()
	for i := range fa {
		x, y := BCDToNumber(fa[i]), BCDToNumber(fb[i])
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
	}
	return 0
}

// HighResRelativeTime is a 64-bit microsecond counter.
type HighResRelativeTime [8]byte

// DecodeHighResRelativeTime reads eight octets.
func DecodeHighResRelativeTime(r *mder.Reader) (HighResRelativeTime, error) {
	var t HighResRelativeTime
	b, err := r.Bytes(8)
	if err != nil {
		return t, err
	}
	copy(t[:], b)
	return t, nil
}

// Encode writes the eight octets.
func (t HighResRelativeTime) Encode(w *mder.Writer) error {
	w.PutBytes(t[:])
	return nil
}

// AbsoluteTimeAdjust is a signed 48-bit microsecond offset.
type AbsoluteTimeAdjust [6]byte

// DecodeAbsoluteTimeAdjust reads six octets.
func DecodeAbsoluteTimeAdjust(r *mder.Reader) (AbsoluteTimeAdjust, error) {
	var t AbsoluteTimeAdjust
	b, err := r.Bytes(6)
	if err != nil {
		return t, err
	}
	copy(t[:], b)
	return t, nil
}

// Encode writes the six octets.
func (t AbsoluteTimeAdjust) Encode(w *mder.Writer) error {
	w.PutBytes(t[:])
	return nil
}
