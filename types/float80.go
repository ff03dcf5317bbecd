package types

import (
	"math"
	"math/big"
)

// RoundMode is the x87/SSE rounding-control selector (spec.md §3): one of
// four rounding directions, shared between the x87 control word and the
// SIMD control/status word.
type RoundMode uint8

const (
	RoundNearestEven RoundMode = iota
	RoundDown
	RoundUp
	RoundTowardZero
)

// bigRounding maps a RoundMode onto the equivalent big.RoundingMode. The x87
// rounding-control field is a strict subset of math/big's six modes, so the
// mapping is exact rather than approximate.
func (m RoundMode) bigRounding() big.RoundingMode {
	switch m {
	case RoundDown:
		return big.ToNegativeInf
	case RoundUp:
		return big.ToPositiveInf
	case RoundTowardZero:
		return big.ToZero
	default:
		return big.ToNearestEven
	}
}

// extendedPrecisionBits is the size of the explicit significand in the x86
// 80-bit extended-precision format (spec.md §3).
const extendedPrecisionBits = 64

// Float80 is the 10-byte x86 extended-precision container: 64-bit explicit
// significand, 15-bit biased exponent, 1 sign bit, stored exactly as the x86
// memory format lays them out.
type Float80 struct {
	Mantissa uint64 // explicit significand, including the integer bit
	Exponent uint16 // bit 15 = sign, bits 14..0 = biased exponent
}

const extBias = 16383

// Sign reports the sign bit.
func (f Float80) Sign() bool { return f.Exponent&0x8000 != 0 }

// BiasedExponent returns the 15-bit biased exponent field.
func (f Float80) BiasedExponent() uint16 { return f.Exponent & 0x7FFF }

// IsZero reports whether f is +0 or -0.
func (f Float80) IsZero() bool { return f.BiasedExponent() == 0 && f.Mantissa == 0 }

// IsSpecial reports whether f's exponent field is all-ones (infinity or NaN
// territory in the extended format).
func (f Float80) IsSpecial() bool { return f.BiasedExponent() == 0x7FFF }

// IsNaN reports whether f encodes a NaN (all-ones exponent, non-zero
// mantissa with the integer bit pattern that marks a NaN rather than
// infinity).
func (f Float80) IsNaN() bool {
	return f.IsSpecial() && (f.Mantissa&0x7FFFFFFFFFFFFFFF) != 0
}

// IsInf reports whether f encodes an infinity.
func (f Float80) IsInf() bool {
	return f.IsSpecial() && (f.Mantissa&0x7FFFFFFFFFFFFFFF) == 0
}

// Bytes packs f into the 10-byte x86 memory representation.
func (f Float80) Bytes() [10]byte {
	var b [10]byte
	for i := 0; i < 8; i++ {
		b[i] = byte(f.Mantissa >> (8 * uint(i)))
	}
	b[8] = byte(f.Exponent)
	b[9] = byte(f.Exponent >> 8)
	return b
}

// Float80FromBytes unpacks the 10-byte x86 memory representation.
func Float80FromBytes(b [10]byte) Float80 {
	var mant uint64
	for i := 0; i < 8; i++ {
		mant |= uint64(b[i]) << (8 * uint(i))
	}
	exp := uint16(b[8]) | uint16(b[9])<<8
	return Float80{Mantissa: mant, Exponent: exp}
}

// ToBig converts f to an arbitrary-precision float at the extended
// significand's precision, the host-bridge's working representation for
// fadd/fsub/fmul/fdiv/frndint (spec.md §4.1.7).
func (f Float80) ToBig() *big.Float {
	bf := new(big.Float).SetPrec(extendedPrecisionBits)
	if f.IsZero() {
		if f.Sign() {
			bf.Neg(bf)
		}
		return bf
	}
	if f.IsInf() {
		if f.Sign() {
			return bf.SetInf(true)
		}
		return bf.SetInf(false)
	}
	mant := new(big.Float).SetPrec(extendedPrecisionBits).SetUint64(f.Mantissa)
	exp := int(f.BiasedExponent()) - extBias - (extendedPrecisionBits - 1)
	bf = new(big.Float).SetPrec(extendedPrecisionBits).SetMantExp(mant, exp)
	if f.Sign() {
		bf.Neg(bf)
	}
	return bf
}

// Float80FromBig rounds an arbitrary-precision value down to the extended
// format using mode.
func Float80FromBig(x *big.Float, mode RoundMode) Float80 {
	if x.IsInf() {
		var exp uint16 = 0x7FFF
		if x.Signbit() {
			exp |= 0x8000
		}
		return Float80{Mantissa: 0, Exponent: exp}
	}
	rounded := new(big.Float).SetPrec(extendedPrecisionBits)
	rounded.SetMode(mode.bigRounding())
	rounded.Set(x)
	if rounded.Sign() == 0 {
		var exp uint16
		if rounded.Signbit() {
			exp = 0x8000
		}
		return Float80{Exponent: exp}
	}
	mantBig := new(big.Float).SetPrec(extendedPrecisionBits)
	exp2 := rounded.MantExp(mantBig)
	mantBig.Abs(mantBig)
	// MantExp normalizes to [0.5, 1); scale up to get a 64-bit integer
	// mantissa with the explicit integer bit set.
	scaled := new(big.Float).SetPrec(extendedPrecisionBits).SetMantExp(mantBig, extendedPrecisionBits)
	mantU64, _ := scaled.Uint64()
	biased := exp2 - 1 + extBias
	var expField uint16
	if biased > 0 {
		expField = uint16(biased)
	}
	if x.Signbit() {
		expField |= 0x8000
	}
	return Float80{Mantissa: mantU64, Exponent: expField}
}

// ToFloat64 narrows f to IEEE double precision using round-to-nearest-even,
// the convention for plain (non rounding-mode-sensitive) narrowing.
func (f Float80) ToFloat64() float64 {
	v, _ := f.ToBig().Float64()
	return v
}

// Float80FromFloat64 widens an IEEE double into the extended format
// exactly (every double is exactly representable in 64-bit significand
// extended precision).
func Float80FromFloat64(v float64) Float80 {
	bf := new(big.Float).SetPrec(extendedPrecisionBits).SetFloat64(v)
	if math.Signbit(v) && v == 0 {
		return Float80{Exponent: 0x8000}
	}
	return Float80FromBig(bf, RoundNearestEven)
}

// ToFloat32 narrows f to IEEE single precision, rounding to nearest even.
func (f Float80) ToFloat32() float32 {
	v, _ := f.ToBig().Float32()
	return v
}

// Float80FromFloat32 widens an IEEE single into the extended format
// exactly.
func Float80FromFloat32(v float32) Float80 {
	return Float80FromFloat64(float64(v))
}

// ToInt64 rounds f to the nearest 64-bit signed integer using mode,
// truncating (RoundTowardZero) for the cvtt*/FISTTP-style conversions and
// honoring the other three modes otherwise. This backs frndint's
// integer-conversion siblings; frndint itself stays in extended-precision
// float form (see cpuimpl.Frndint).
func (f Float80) ToInt64(mode RoundMode) int64 {
	i, _ := f.RoundToInt(mode).ToBig().Int(nil)
	if i == nil {
		return 0
	}
	return i.Int64()
}

// Float80FromInt64 widens a 64-bit signed integer into the extended format
// exactly.
func Float80FromInt64(v int64) Float80 {
	bf := new(big.Float).SetPrec(extendedPrecisionBits).SetInt64(v)
	return Float80FromBig(bf, RoundNearestEven)
}

// RoundToInt rounds f to the nearest integer value while staying in the
// extended-precision float domain, the core of FRNDINT (spec.md §4.1.7 and
// §8 test 4: round-to-nearest-even rounds .5 to the nearest even integer).
func (f Float80) RoundToInt(mode RoundMode) Float80 {
	if f.IsSpecial() {
		return f
	}
	bf := f.ToBig()
	rounded := new(big.Float).SetPrec(extendedPrecisionBits)
	rounded.SetMode(mode.bigRounding())
	i, _ := bf.Int(nil)
	// bf.Int truncates; re-round through the big.Float rounding mode by
	// comparing against the truncated value and its neighbor so that
	// RoundNearestEven ties break to even, matching x87 FRNDINT exactly.
	truncated := new(big.Float).SetPrec(extendedPrecisionBits).SetInt(i)
	diff := new(big.Float).SetPrec(extendedPrecisionBits).Sub(bf, truncated)
	rounded.Set(truncatedPlusFrac(truncated, diff, mode, bf.Signbit()))
	return Float80FromBig(rounded, RoundNearestEven)
}

// truncatedPlusFrac applies the fractional remainder to the truncated
// integer according to mode, implementing the four x87 rounding directions
// over a value already split into integer part + signed fraction.
func truncatedPlusFrac(truncated, frac *big.Float, mode RoundMode, negative bool) *big.Float {
	if frac.Sign() == 0 {
		return truncated
	}
	one := big.NewFloat(1).SetPrec(extendedPrecisionBits)
	half := big.NewFloat(0.5).SetPrec(extendedPrecisionBits)
	absFrac := new(big.Float).SetPrec(extendedPrecisionBits).Abs(frac)

	step := func(towardInf bool) *big.Float {
		if towardInf {
			if negative {
				return new(big.Float).SetPrec(extendedPrecisionBits).Sub(truncated, one)
			}
			return new(big.Float).SetPrec(extendedPrecisionBits).Add(truncated, one)
		}
		return truncated
	}

	switch mode {
	case RoundTowardZero:
		return truncated
	case RoundDown:
		if negative {
			return step(true)
		}
		return truncated
	case RoundUp:
		if negative {
			return truncated
		}
		return step(true)
	default: // RoundNearestEven
		cmp := absFrac.Cmp(half)
		switch {
		case cmp < 0:
			return truncated
		case cmp > 0:
			return step(true)
		default:
			// exact .5: round to even
			i, _ := truncated.Int(nil)
			if i.Bit(0) == 0 {
				return truncated
			}
			return step(true)
		}
	}
}
