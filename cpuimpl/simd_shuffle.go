package cpuimpl

import "github.com/n-stott/x64emulator/types"

// Shufps selects 4 single-precision lanes: the low two result lanes come
// from a (selected by the low 4 bits of imm, 2 bits per lane), the high two
// from b (selected by the high 4 bits).
func Shufps(a, b types.U128, imm uint8) types.U128 {
	var r types.U128
	for i := 0; i < 2; i++ {
		sel := int((imm >> (uint(i) * 2)) & 0x3)
		r = r.WithLane32(i, a.Lane32(sel))
	}
	for i := 2; i < 4; i++ {
		sel := int((imm >> (uint(i) * 2)) & 0x3)
		r = r.WithLane32(i, b.Lane32(sel))
	}
	return r
}

// Shufpd selects 2 double-precision lanes: bit 0 of imm selects a's lane for
// result lane 0, bit 1 selects b's lane for result lane 1.
func Shufpd(a, b types.U128, imm uint8) types.U128 {
	sel0 := int(imm & 0x1)
	sel1 := int((imm >> 1) & 0x1)
	var r types.U128
	r = r.WithLane64(0, a.Lane64(sel0))
	r = r.WithLane64(1, b.Lane64(sel1))
	return r
}

// Pshufd permutes the four 32-bit lanes of src per imm (2 bits per result
// lane, selecting from src).
func Pshufd(src types.U128, imm uint8) types.U128 {
	var r types.U128
	for i := 0; i < 4; i++ {
		sel := int((imm >> (uint(i) * 2)) & 0x3)
		r = r.WithLane32(i, src.Lane32(sel))
	}
	return r
}

// Pshuflw permutes the low four 16-bit lanes per imm; the high four lanes
// pass through unchanged.
func Pshuflw(src types.U128, imm uint8) types.U128 {
	r := src
	for i := 0; i < 4; i++ {
		sel := int((imm >> (uint(i) * 2)) & 0x3)
		r = r.WithLane16(i, src.Lane16(sel))
	}
	return r
}

// Pshufhw permutes the high four 16-bit lanes per imm; the low four lanes
// pass through unchanged.
func Pshufhw(src types.U128, imm uint8) types.U128 {
	r := src
	for i := 0; i < 4; i++ {
		sel := 4 + int((imm>>(uint(i)*2))&0x3)
		r = r.WithLane16(4+i, src.Lane16(sel))
	}
	return r
}

// Pshufb selects from dst by each byte of src unless the high bit of that
// byte is set, in which case it emits zero (spec.md §4.1.8, §8 test 5).
func Pshufb(dst, src types.U128) types.U128 {
	var r types.U128
	for i := 0; i < 16; i++ {
		sel := src.Lane8(i)
		if sel&0x80 != 0 {
			r = r.WithLane8(i, 0)
			continue
		}
		r = r.WithLane8(i, dst.Lane8(int(sel&0x0F)))
	}
	return r
}

func unpack(a, b types.U128, laneBits int, high bool) types.U128 {
	n := laneCount(laneBits)
	half := n / 2
	var r types.U128
	start := 0
	if high {
		start = half
	}
	for i := 0; i < half; i++ {
		r = writeLane(r, laneBits, 2*i, readLane(a, laneBits, start+i))
		r = writeLane(r, laneBits, 2*i+1, readLane(b, laneBits, start+i))
	}
	return r
}

func Punpcklbw(a, b types.U128) types.U128  { return unpack(a, b, 8, false) }
func Punpckhbw(a, b types.U128) types.U128  { return unpack(a, b, 8, true) }
func Punpcklwd(a, b types.U128) types.U128  { return unpack(a, b, 16, false) }
func Punpckhwd(a, b types.U128) types.U128  { return unpack(a, b, 16, true) }
func Punpckldq(a, b types.U128) types.U128  { return unpack(a, b, 32, false) }
func Punpckhdq(a, b types.U128) types.U128  { return unpack(a, b, 32, true) }
func Punpcklqdq(a, b types.U128) types.U128 { return unpack(a, b, 64, false) }
func Punpckhqdq(a, b types.U128) types.U128 { return unpack(a, b, 64, true) }

// Unpcklps/Unpckhps and Unpcklpd/Unpckhpd are float-typed aliases of the
// same permutation (spec.md §4.1.8 lists them alongside the integer
// unpacks; SSE draws no semantic distinction beyond the assembler mnemonic).
func Unpcklps(a, b types.U128) types.U128 { return unpack(a, b, 32, false) }
func Unpckhps(a, b types.U128) types.U128 { return unpack(a, b, 32, true) }
func Unpcklpd(a, b types.U128) types.U128 { return unpack(a, b, 64, false) }
func Unpckhpd(a, b types.U128) types.U128 { return unpack(a, b, 64, true) }

// Palignr concatenates src:dst (src forming the high bytes), shifts right
// by imm bytes, and returns the low 16 bytes.
func Palignr(dst, src types.U128, imm uint8) types.U128 {
	if imm >= 32 {
		return types.U128{}
	}
	var wide [32]byte
	sb := src.Bytes()
	db := dst.Bytes()
	copy(wide[0:16], db[:])
	copy(wide[16:32], sb[:])
	var out [16]byte
	for i := 0; i < 16; i++ {
		idx := int(imm) + i
		if idx < 32 {
			out[i] = wide[idx]
		}
	}
	return types.U128FromBytes(out)
}

// Pblendw selects each of the 8 16-bit lanes from src when the
// corresponding bit of imm is set, else from dst.
func Pblendw(dst, src types.U128, imm uint8) types.U128 {
	r := dst
	for i := 0; i < 8; i++ {
		if imm&(1<<uint(i)) != 0 {
			r = r.WithLane16(i, src.Lane16(i))
		}
	}
	return r
}

// Insertps inserts one single-precision lane of src (selected by the top 2
// bits of imm) into dst at the lane selected by bits 5:4, then zeroes any
// destination lanes whose corresponding bit in the low nibble of imm is set.
func Insertps(dst, src types.U128, imm uint8) types.U128 {
	srcSel := int((imm >> 6) & 0x3)
	dstSel := int((imm >> 4) & 0x3)
	zeroMask := imm & 0x0F
	r := dst.WithLane32(dstSel, src.Lane32(srcSel))
	for i := 0; i < 4; i++ {
		if zeroMask&(1<<uint(i)) != 0 {
			r = r.WithLane32(i, 0)
		}
	}
	return r
}

// Psignb/w/d negate each lane of dst when the corresponding lane of src is
// negative, zero it when src's lane is zero, and pass it through unchanged
// when src's lane is positive.
func psign(dst, src types.U128, laneBits int) types.U128 {
	n := laneCount(laneBits)
	w := uint(laneBits)
	var r types.U128
	for i := 0; i < n; i++ {
		s := asSigned(readLane(src, laneBits, i), w)
		d := asSigned(readLane(dst, laneBits, i), w)
		var v int64
		switch {
		case s > 0:
			v = d
		case s < 0:
			v = -d
		default:
			v = 0
		}
		r = writeLane(r, laneBits, i, uint64(v)&maskWidth(w))
	}
	return r
}

func Psignb(dst, src types.U128) types.U128 { return psign(dst, src, 8) }
func Psignw(dst, src types.U128) types.U128 { return psign(dst, src, 16) }
func Psignd(dst, src types.U128) types.U128 { return psign(dst, src, 32) }

// Pabsb/w/d compute the lane-wise absolute value.
func pabs(src types.U128, laneBits int) types.U128 {
	n := laneCount(laneBits)
	w := uint(laneBits)
	var r types.U128
	for i := 0; i < n; i++ {
		v := asSigned(readLane(src, laneBits, i), w)
		if v < 0 {
			v = -v
		}
		r = writeLane(r, laneBits, i, uint64(v)&maskWidth(w))
	}
	return r
}

func Pabsb(src types.U128) types.U128 { return pabs(src, 8) }
func Pabsw(src types.U128) types.U128 { return pabs(src, 16) }
func Pabsd(src types.U128) types.U128 { return pabs(src, 32) }
