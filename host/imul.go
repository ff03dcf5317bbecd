package host

import "math/bits"

// Imul128 is the bridge stand-in for hostinstructions.cpp's imul64: the
// one-operand signed IMUL's 64x64→128 product plus the CF/OF pair it
// leaves behind (set unless the upper half is purely the sign extension of
// the lower half, i.e. the product doesn't fit in 64 signed bits).
func Imul128(a, b int64) (lower, upper uint64, carry, overflow bool) {
	ua, ub := uint64(a), uint64(b)
	hi, lo := bits.Mul64(ua, ub)
	if a < 0 {
		hi -= ub
	}
	if b < 0 {
		hi -= ua
	}
	signExtension := uint64(0)
	if int64(lo) < 0 {
		signExtension = ^uint64(0)
	}
	overflows := hi != signExtension
	return lo, hi, overflows, overflows
}

// UMul128 is the bridge stand-in for the unsigned MUL instruction's
// 64x64→128 product, backing CheckedCpuImpl's cross-check of
// cpuimpl.Mul. math/bits.Mul64 already computes exactly what the hardware
// instruction does.
func UMul128(a, b uint64) (hi, lo uint64) {
	return bits.Mul64(a, b)
}
