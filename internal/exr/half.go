package exr

import "math"

// halfToFloat expands an IEEE 754 binary16 value to float32.
func halfToFloat(h uint16) float32 {
	sign := uint32(h>>15) << 31
	exp := uint32(h>>10) & 0x1f
	mant := uint32(h) & 0x3ff

	switch {
	case exp == 0:
		if mant == 0 {
			// Signed zero.
			return math.Float32frombits(sign)
		}
		// Subnormal half: renormalize into the float32 exponent range.
		e := uint32(113)
		for mant&0x400 == 0 {
			mant <<= 1
			e--
		}
		mant &= 0x3ff
		return math.Float32frombits(sign | e<<23 | mant<<13)
	case exp == 31:
		if mant == 0 {
			return math.Float32frombits(sign | 0x7f800000) // infinity
		}
		return math.Float32frombits(sign | 0x7f800000 | mant<<13) // NaN
	}
	return math.Float32frombits(sign | (exp+112)<<23 | mant<<13)
}
