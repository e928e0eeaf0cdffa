package mder

import "math"

// Reserved FLOAT mantissa values (exponent 0).
const (
	FloatNaN     uint32 = 0x007FFFFF
	FloatNRes    uint32 = 0x00800000
	FloatPosInf  uint32 = 0x007FFFFE
	FloatNegInf  uint32 = 0x00800002
	FloatReserve uint32 = 0x00800001
)

// Reserved SFLOAT mantissa values (exponent 0).
const (
	SFloatNaN     uint16 = 0x07FF
	SFloatNRes    uint16 = 0x0800
	SFloatPosInf  uint16 = 0x07FE
	SFloatNegInf  uint16 = 0x0802
	SFloatReserve uint16 = 0x0801
)

const (
	floatMaxMantissa  = 0x7FFFFD
	sfloatMaxMantissa = 0x07FD
)

// FloatValue converts a 32-bit MDER FLOAT (8-bit exponent, 24-bit mantissa)
// to float64. NaN, NRes and the reserved value decode as NaN.
func FloatValue(v uint32) float64 {
	switch v {
	case FloatNaN, FloatNRes, FloatReserve:
		return math.NaN()
	case FloatPosInf:
		return math.Inf(1)
	case FloatNegInf:
		return math.Inf(-1)
	}
	exp := int(int8(v >> 24))
	mant := int32(v & 0x00FFFFFF)
	if mant >= 0x00800000 {
		mant -= 0x01000000
	}
	return scale(float64(mant), exp)
}

// SFloatValue converts a 16-bit MDER SFLOAT (4-bit exponent, 12-bit
// mantissa) to float64.
func SFloatValue(v uint16) float64 {
	switch v {
	case SFloatNaN, SFloatNRes, SFloatReserve:
		return math.NaN()
	case SFloatPosInf:
		return math.Inf(1)
	case SFloatNegInf:
		return math.Inf(-1)
	}
	exp := int((v >> 12) & 0x0F)
	if exp >= 0x08 {
		exp -= 0x10
	}
	mant := int32(v & 0x0FFF)
	if mant >= 0x0800 {
		mant -= 0x1000
	}
	return scale(float64(mant), exp)
}

// scale divides by an exact power of ten for negative exponents so that
// values such as 1205e-1 decode to the nearest float64 of 120.5.
func scale(mant float64, exp int) float64 {
	if exp < 0 {
		return mant / math.Pow10(-exp)
	}
	return mant * math.Pow10(exp)
}

// EncodeFloat converts v to the closest 32-bit MDER FLOAT.
func EncodeFloat(v float64) uint32 {
	switch {
	case math.IsNaN(v):
		return FloatNaN
	case math.IsInf(v, 1):
		return FloatPosInf
	case math.IsInf(v, -1):
		return FloatNegInf
	}
	mant, exp := decompose(v, floatMaxMantissa, -128, 127)
	return uint32(uint8(int8(exp)))<<24 | uint32(mant)&0x00FFFFFF
}

// EncodeSFloat converts v to the closest 16-bit MDER SFLOAT.
func EncodeSFloat(v float64) uint16 {
	switch {
	case math.IsNaN(v):
		return SFloatNaN
	case math.IsInf(v, 1):
		return SFloatPosInf
	case math.IsInf(v, -1):
		return SFloatNegInf
	}
	mant, exp := decompose(v, sfloatMaxMantissa, -8, 7)
	return uint16(exp&0x0F)<<12 | uint16(mant)&0x0FFF
}

// decompose finds mant and exp with mant*10^exp ~= v, |mant| <= maxMant,
// preferring the smallest magnitude exponent that represents v exactly.
func decompose(v float64, maxMant float64, minExp, maxExp int) (int32, int) {
	exp := 0
	m := v
	for exp > minExp && !isIntegral(m) && math.Abs(m*10) <= maxMant {
		m *= 10
		exp--
	}
	for exp < maxExp && math.Abs(m) > maxMant {
		m /= 10
		exp++
	}
	m = math.Round(m)
	if m > maxMant {
		m = maxMant
	} else if m < -maxMant {
		m = -maxMant
	}
	return int32(m), exp
}

func isIntegral(v float64) bool {
	return math.Abs(v-math.Round(v)) < 1e-9*math.Max(1, math.Abs(v))
}
