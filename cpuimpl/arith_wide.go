package cpuimpl

import "math/bits"

// mul64Bits is the 64x64->128 unsigned multiply backing Mul[uint64].
func mul64Bits(a, b uint64) (hi, lo uint64) {
	return bits.Mul64(a, b)
}

// imul64 is the 64x64->128 signed multiply backing Imul[uint64], computed
// via the unsigned multiply plus the standard sign-correction identity
// (two's-complement multiplication: treat operands as unsigned, then
// subtract b from the high word for each negative operand).
func imul64(a, b int64) (hi, lo uint64) {
	ua, ub := uint64(a), uint64(b)
	h, l := bits.Mul64(ua, ub)
	if a < 0 {
		h -= ub
	}
	if b < 0 {
		h -= ua
	}
	return h, l
}

// divWide is the 128/64->64,64 unsigned divide backing Div[uint64].
// Panics (an invariant violation per spec.md §7) if the quotient overflows
// 64 bits, matching real hardware's divide-error condition.
func divWide(upper, lower, divisor uint64) (quotient, remainder uint64) {
	if divisor <= upper {
		panic("cpuimpl: Div quotient overflow")
	}
	return bits.Div64(upper, lower, divisor)
}
