package host

import (
	"math/big"
	"math/bits"
)

// SDiv128 is the bridge stand-in for hostinstructions.cpp's idiv64: a
// signed 128/64→64,64 division of the raw RDX:RAX register pair, used by
// CheckedCpuImpl to cross-check cpuimpl.Idiv. divideError reports the
// real IDIV instruction's #DE condition (quotient doesn't fit in 64 bits,
// or divisor is zero).
func SDiv128(upper, lower uint64, divisor uint64) (quotient, remainder uint64, divideError bool) {
	if divisor == 0 {
		return 0, 0, true
	}
	dividend := new(big.Int).Lsh(new(big.Int).SetUint64(upper), 64)
	dividend.Or(dividend, new(big.Int).SetUint64(lower))
	// Reinterpret the 128-bit pattern as signed: subtract 2^128 if bit 127
	// is set.
	if upper&0x8000000000000000 != 0 {
		dividend.Sub(dividend, new(big.Int).Lsh(big.NewInt(1), 128))
	}
	div := new(big.Int).SetInt64(int64(divisor))

	q, r := new(big.Int).QuoRem(dividend, div, new(big.Int))
	if !q.IsInt64() {
		return 0, 0, true
	}
	return uint64(q.Int64()), uint64(r.Int64()), false
}

// UDiv128 is the unsigned counterpart (real x86 DIV instruction), backing
// CheckedCpuImpl's cross-check of cpuimpl.Div. Computed directly via
// math/bits.Div64, which implements the same 128/64→64,64 unsigned divide
// the hardware instruction does. The divide-error condition (zero divisor
// or quotient overflow, i.e. divisor <= upper) is checked before calling
// bits.Div64, so that call never panics.
func UDiv128(upper, lower uint64, divisor uint64) (quotient, remainder uint64, divideError bool) {
	if divisor == 0 || divisor <= upper {
		return 0, 0, true
	}
	quotient, remainder = bits.Div64(upper, lower, divisor)
	return quotient, remainder, false
}
