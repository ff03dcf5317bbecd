package cpuimpl

import "github.com/n-stott/x64emulator/flags"

// maskCount masks the shift count per spec.md §4.1.3: 5 bits for 32-bit
// operands and narrower, 6 bits for 64-bit operands.
func maskCount[T Width](count uint) uint {
	if widthBits[T]() == 64 {
		return count & 63
	}
	return count & 31
}

// Shl is logical shift left. CF is the bit shifted out of the top; OF is
// defined only when the masked count is exactly 1.
func Shl[T Width](dst T, count uint, f *flags.Arith) T {
	w := widthBits[T]()
	masked := maskCount[T](count)
	if masked == 0 {
		return dst
	}
	v := uint64(dst)
	var result uint64
	if masked >= w {
		result = 0
		f.CF = false
	} else {
		result = (v << masked) & maskWidth(w)
		f.CF = (v>>(w-masked))&1 != 0
	}
	if masked == 1 {
		f.OF = (result&signBitOf(w) != 0) != f.CF
	}
	setLogicalFlags(result, w, f)
	return T(result)
}

// Shr is logical shift right. CF is the bit shifted out of the bottom; OF
// (count==1 only) is the original top bit of dst.
func Shr[T Width](dst T, count uint, f *flags.Arith) T {
	w := widthBits[T]()
	masked := maskCount[T](count)
	if masked == 0 {
		return dst
	}
	v := uint64(dst) & maskWidth(w)
	var result uint64
	if masked >= w {
		result = 0
		f.CF = false
	} else {
		result = v >> masked
		f.CF = (v>>(masked-1))&1 != 0
	}
	if masked == 1 {
		f.OF = v&signBitOf(w) != 0
	}
	setLogicalFlags(result, w, f)
	return T(result)
}

// Sar is arithmetic shift right, preserving sign. CF as for Shr; OF is
// always cleared when masked count is 1 (the sign cannot change).
func Sar[T Width](dst T, count uint, f *flags.Arith) T {
	w := widthBits[T]()
	masked := maskCount[T](count)
	if masked == 0 {
		return dst
	}
	v := uint64(dst) & maskWidth(w)
	negative := v&signBitOf(w) != 0
	var result uint64
	if masked >= w {
		if negative {
			result = maskWidth(w)
		} else {
			result = 0
		}
		f.CF = negative
	} else {
		signExt := signExtend(v, w)
		result = uint64(int64(signExt)>>masked) & maskWidth(w)
		f.CF = (v>>(masked-1))&1 != 0
	}
	if masked == 1 {
		f.OF = false
	}
	setLogicalFlags(result, w, f)
	return T(result)
}

// Shld concatenates dst:src (dst holds the bits that remain after the
// shift), shifts left by count mod W, and returns the W bits originating
// from dst. maskCount guarantees masked is in [0, w), so dst:src never
// needs to be materialized as a 2W-bit value (which would overflow
// uint64 at W=64) — the result and CF are both expressible as plain,
// same-width shifts on dst and src individually.
func Shld[T Width](dst, src T, count uint, f *flags.Arith) T {
	w := widthBits[T]()
	masked := maskCount[T](count)
	if masked == 0 {
		return dst
	}
	d, s := uint64(dst)&maskWidth(w), uint64(src)&maskWidth(w)
	result := ((d << masked) | (s >> (w - masked))) & maskWidth(w)
	f.CF = (d>>(w-masked))&1 != 0
	if masked == 1 {
		f.OF = (result&signBitOf(w) != 0) != (d&signBitOf(w) != 0)
	}
	setLogicalFlags(result, w, f)
	return T(result)
}

// Shrd is Shld's mirror: concatenates src:dst and shifts right. Same
// same-width-shift identity as Shld, so it needs no 2W-bit intermediate.
func Shrd[T Width](dst, src T, count uint, f *flags.Arith) T {
	w := widthBits[T]()
	masked := maskCount[T](count)
	if masked == 0 {
		return dst
	}
	d, s := uint64(dst)&maskWidth(w), uint64(src)&maskWidth(w)
	result := ((d >> masked) | (s << (w - masked))) & maskWidth(w)
	f.CF = (d>>(masked-1))&1 != 0
	if masked == 1 {
		f.OF = (result&signBitOf(w) != 0) != (d&signBitOf(w) != 0)
	}
	setLogicalFlags(result, w, f)
	return T(result)
}

// Rol is circular shift left. CF is the bit rotated into position 0; OF
// (masked count == 1 only) is top-bit-of-result XOR CF.
func Rol[T Width](dst T, count uint, f *flags.Arith) T {
	w := widthBits[T]()
	masked := maskCount[T](count) % w
	v := uint64(dst) & maskWidth(w)
	if masked == 0 {
		return dst
	}
	result := ((v << masked) | (v >> (w - masked))) & maskWidth(w)
	f.CF = result&1 != 0
	if maskCount[T](count) == 1 {
		f.OF = (result&signBitOf(w) != 0) != f.CF
	}
	return T(result)
}

// Ror is circular shift right. CF is the bit rotated into position W-1; OF
// (masked count == 1 only) is the XOR of the two top bits of the result.
func Ror[T Width](dst T, count uint, f *flags.Arith) T {
	w := widthBits[T]()
	masked := maskCount[T](count) % w
	v := uint64(dst) & maskWidth(w)
	if masked == 0 {
		return dst
	}
	result := ((v >> masked) | (v << (w - masked))) & maskWidth(w)
	f.CF = result&signBitOf(w) != 0
	if maskCount[T](count) == 1 {
		top1 := result & signBitOf(w) != 0
		top2 := result&(signBitOf(w)>>1) != 0
		f.OF = top1 != top2
	}
	return T(result)
}

// Rcl is rotate-left through the carry bit (a W+1 bit rotation). The
// carry:v pair is W+1 bits wide, which overflows uint64 at W=64 if packed
// into a single word (the prior "wide" accumulator silently dropped the
// carry there); instead each single-bit rotation is applied directly,
// carrying the extra bit in its own bool rather than at bit position W.
func Rcl[T Width](dst T, count uint, carryIn bool, f *flags.Arith) T {
	w := widthBits[T]()
	masked := maskCount[T](count) % (w + 1)
	v := uint64(dst) & maskWidth(w)
	carry := carryIn
	for i := uint(0); i < masked; i++ {
		newCarry := v&signBitOf(w) != 0
		var cIn uint64
		if carry {
			cIn = 1
		}
		v = ((v << 1) | cIn) & maskWidth(w)
		carry = newCarry
	}
	f.CF = carry
	if maskCount[T](count) == 1 {
		f.OF = (v&signBitOf(w) != 0) != f.CF
	}
	return T(v)
}

// Rcr is rotate-right through the carry bit, the mirror of Rcl: applied
// one bit at a time so the carry never needs to live at bit position W
// of a single word (which would vanish when W=64).
func Rcr[T Width](dst T, count uint, carryIn bool, f *flags.Arith) T {
	w := widthBits[T]()
	masked := maskCount[T](count) % (w + 1)
	v := uint64(dst) & maskWidth(w)
	if maskCount[T](count) == 1 {
		f.OF = (v&signBitOf(w) != 0) != carryIn
	}
	carry := carryIn
	for i := uint(0); i < masked; i++ {
		newCarry := v&1 != 0
		var cIn uint64
		if carry {
			cIn = 1
		}
		v = (v >> 1) | (cIn << (w - 1))
		carry = newCarry
	}
	f.CF = carry
	return T(v)
}
