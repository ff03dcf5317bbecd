package cpuimpl

import "github.com/n-stott/x64emulator/flags"

// Add implements the integer-arithmetic family's add (spec.md §4.1.1):
// result = (dst+src) mod 2^W, writing all six arithmetic flags.
func Add[T Width](dst, src T, f *flags.Arith) T {
	w := widthBits[T]()
	result, cf, srcC := addCarryCompute(uint64(dst), uint64(src), 0, w)
	f.CF = cf
	f.OF = addOverflow(uint64(dst), srcC, result, w)
	setLogicalFlags(result, w, f)
	return T(result)
}

// Adc is add with the incoming carry bit folded in.
func Adc[T Width](dst, src T, carryIn bool, f *flags.Arith) T {
	w := widthBits[T]()
	var c uint64
	if carryIn {
		c = 1
	}
	result, cf, srcC := addCarryCompute(uint64(dst), uint64(src), c, w)
	f.CF = cf
	f.OF = addOverflow(uint64(dst), srcC, result, w)
	setLogicalFlags(result, w, f)
	return T(result)
}

// Sub implements subtraction: result = (dst-src) mod 2^W; CF set iff
// dst < src (an unsigned borrow occurred).
func Sub[T Width](dst, src T, f *flags.Arith) T {
	w := widthBits[T]()
	result, borrow, srcB := subBorrowCompute(uint64(dst), uint64(src), 0, w)
	f.CF = borrow
	f.OF = subOverflow(uint64(dst), srcB, result, w)
	setLogicalFlags(result, w, f)
	return T(result)
}

// Sbb is subtraction with the incoming borrow (carry) folded in.
func Sbb[T Width](dst, src T, borrowIn bool, f *flags.Arith) T {
	w := widthBits[T]()
	var b uint64
	if borrowIn {
		b = 1
	}
	result, borrow, srcB := subBorrowCompute(uint64(dst), uint64(src), b, w)
	f.CF = borrow
	f.OF = subOverflow(uint64(dst), srcB, result, w)
	setLogicalFlags(result, w, f)
	return T(result)
}

// Cmp is Sub with the result discarded: it exists to document the contract
// (callers just discard Sub's return value, but Cmp makes intent explicit).
func Cmp[T Width](dst, src T, f *flags.Arith) {
	Sub(dst, src, f)
}

// Neg is Sub(0, dst).
func Neg[T Width](dst T, f *flags.Arith) T {
	return Sub(T(0), dst, f)
}

// Inc adds 1 without affecting CF. OF is set iff dst equals the signed
// maximum for width W.
func Inc[T Width](dst T, f *flags.Arith) T {
	w := widthBits[T]()
	saved := f.CF
	result := Add(dst, T(1), f)
	f.CF = saved
	signMax := signBitOf(w) - 1
	f.OF = uint64(dst) == signMax
	return result
}

// Dec subtracts 1 without affecting CF. OF is set iff dst equals the signed
// minimum for width W.
func Dec[T Width](dst T, f *flags.Arith) T {
	w := widthBits[T]()
	saved := f.CF
	result := Sub(dst, T(1), f)
	f.CF = saved
	signMin := signBitOf(w)
	f.OF = uint64(dst) == signMin
	return result
}

// Mul is unsigned multiply: returns (upper, lower) of the double-width
// product. CF and OF are both set iff upper != 0; other arithmetic flags
// are left unchanged per spec.md's adopted "leave alone" convention for
// undefined outputs.
func Mul[T Width](dst, src T, f *flags.Arith) (upper, lower T) {
	w := widthBits[T]()
	if w == 64 {
		hi, lo := mul64(uint64(dst), uint64(src))
		f.CF = hi != 0
		f.OF = f.CF
		return T(hi), T(lo)
	}
	product := uint64(dst) * uint64(src)
	mask := maskWidth(w)
	lo := product & mask
	hi := product >> w
	f.CF = hi != 0
	f.OF = f.CF
	return T(hi), T(lo)
}

func mul64(a, b uint64) (hi, lo uint64) {
	return mul64Bits(a, b)
}

// Imul is signed multiply: returns (upper, lower) of the double-width
// signed product. CF and OF are both set iff the low-W result is not a
// faithful sign-extension of the true product (spec.md §4.1.1, §8 test 3).
func Imul[T Width](dst, src T, f *flags.Arith) (upper, lower T) {
	w := widthBits[T]()
	if w == 64 {
		hi, lo := imul64(int64(dst), int64(src))
		lower = T(lo)
		upper = T(hi)
		faithful := (hi == 0 && int64(lo) >= 0) || (hi == ^uint64(0) && int64(lo) < 0)
		f.CF = !faithful
		f.OF = f.CF
		return upper, lower
	}
	a := signExtend(uint64(dst), w)
	b := signExtend(uint64(src), w)
	product := a * b
	mask := maskWidth(w)
	lo := product & mask
	loSigned := signExtend(lo, w)
	faithful := loSigned == product
	f.CF = !faithful
	f.OF = f.CF
	return T((product >> w) & mask), T(lo)
}

func signExtend(v uint64, width uint) uint64 {
	if width >= 64 {
		return v
	}
	sb := signBitOf(width)
	if v&sb != 0 {
		return v | ^maskWidth(width)
	}
	return v
}

// Div is unsigned division: inputs (dividendUpper, dividendLower, divisor).
// The caller is expected to have checked divisor != 0 and that the quotient
// fits in T; Div asserts divisor != 0 per spec.md §4.1.1.
func Div[T Width](dividendUpper, dividendLower, divisor T) (quotient, remainder T) {
	if divisor == 0 {
		panic("cpuimpl: Div by zero")
	}
	w := widthBits[T]()
	dividend := (uint64(dividendUpper) << w) | uint64(dividendLower)
	if w == 64 {
		q, r := divWide(uint64(dividendUpper), uint64(dividendLower), uint64(divisor))
		return T(q), T(r)
	}
	return T(dividend / uint64(divisor)), T(dividend % uint64(divisor))
}
