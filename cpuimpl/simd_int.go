package cpuimpl

import "github.com/n-stott/x64emulator/types"

// Packed integer add/sub (spec.md §4.1.8): lane-wise modular arithmetic, no
// cross-lane carry.

func Paddb(a, b types.U128) types.U128 { return packedAdd(a, b, 8) }
func Paddw(a, b types.U128) types.U128 { return packedAdd(a, b, 16) }
func Paddd(a, b types.U128) types.U128 { return packedAdd(a, b, 32) }
func Paddq(a, b types.U128) types.U128 { return packedAdd(a, b, 64) }

func Psubb(a, b types.U128) types.U128 { return packedSub(a, b, 8) }
func Psubw(a, b types.U128) types.U128 { return packedSub(a, b, 16) }
func Psubd(a, b types.U128) types.U128 { return packedSub(a, b, 32) }
func Psubq(a, b types.U128) types.U128 { return packedSub(a, b, 64) }

func packedAdd(a, b types.U128, laneBits int) types.U128 {
	n := laneCount(laneBits)
	var r types.U128
	mask := maskWidth(uint(laneBits))
	for i := 0; i < n; i++ {
		sum := (readLane(a, laneBits, i) + readLane(b, laneBits, i)) & mask
		r = writeLane(r, laneBits, i, sum)
	}
	return r
}

func packedSub(a, b types.U128, laneBits int) types.U128 {
	n := laneCount(laneBits)
	var r types.U128
	mask := maskWidth(uint(laneBits))
	for i := 0; i < n; i++ {
		diff := (readLane(a, laneBits, i) - readLane(b, laneBits, i)) & mask
		r = writeLane(r, laneBits, i, diff)
	}
	return r
}

// Saturating add/sub (spec.md §4.1.8): lane-wise with saturation at the
// signed or unsigned limits of the lane width.

func Paddsb(a, b types.U128) types.U128  { return satSigned(a, b, 8, true) }
func Paddsw(a, b types.U128) types.U128  { return satSigned(a, b, 16, true) }
func Psubsb(a, b types.U128) types.U128  { return satSigned(a, b, 8, false) }
func Psubsw(a, b types.U128) types.U128  { return satSigned(a, b, 16, false) }
func Paddusb(a, b types.U128) types.U128 { return satUnsigned(a, b, 8, true) }
func Paddusw(a, b types.U128) types.U128 { return satUnsigned(a, b, 16, true) }
func Psubusb(a, b types.U128) types.U128 { return satUnsigned(a, b, 8, false) }
func Psubusw(a, b types.U128) types.U128 { return satUnsigned(a, b, 16, false) }

func satSigned(a, b types.U128, laneBits int, add bool) types.U128 {
	n := laneCount(laneBits)
	w := uint(laneBits)
	lo := -(int64(1) << (w - 1))
	hi := (int64(1) << (w - 1)) - 1
	var r types.U128
	for i := 0; i < n; i++ {
		x := asSigned(readLane(a, laneBits, i), w)
		y := asSigned(readLane(b, laneBits, i), w)
		var v int64
		if add {
			v = x + y
		} else {
			v = x - y
		}
		if v < lo {
			v = lo
		}
		if v > hi {
			v = hi
		}
		r = writeLane(r, laneBits, i, uint64(v)&maskWidth(w))
	}
	return r
}

func satUnsigned(a, b types.U128, laneBits int, add bool) types.U128 {
	n := laneCount(laneBits)
	w := uint(laneBits)
	maxV := maskWidth(w)
	var r types.U128
	for i := 0; i < n; i++ {
		x := readLane(a, laneBits, i)
		y := readLane(b, laneBits, i)
		var v uint64
		if add {
			v = x + y
			if v > maxV || v < x { // overflow past the lane's unsigned range
				v = maxV
			}
		} else {
			if y > x {
				v = 0
			} else {
				v = x - y
			}
		}
		r = writeLane(r, laneBits, i, v&maxV)
	}
	return r
}

// Packed integer multiply (spec.md §4.1.8).

// Pmullw returns the low 16 bits of each signed 16x16 product.
func Pmullw(a, b types.U128) types.U128 {
	return pmul16(a, b, func(x, y int32) uint64 { return uint64(uint32(x*y)) & 0xFFFF })
}

// Pmulhw returns the high 16 bits of each signed 16x16 product.
func Pmulhw(a, b types.U128) types.U128 {
	return pmul16(a, b, func(x, y int32) uint64 { return uint64(uint32(x*y)>>16) & 0xFFFF })
}

// Pmulhuw returns the high 16 bits of each unsigned 16x16 product.
func Pmulhuw(a, b types.U128) types.U128 {
	n := laneCount(16)
	var r types.U128
	for i := 0; i < n; i++ {
		x := uint32(readLane(a, 16, i))
		y := uint32(readLane(b, 16, i))
		r = writeLane(r, 16, i, uint64((x*y)>>16))
	}
	return r
}

func pmul16(a, b types.U128, op func(x, y int32) uint64) types.U128 {
	n := laneCount(16)
	var r types.U128
	for i := 0; i < n; i++ {
		x := int32(int16(readLane(a, 16, i)))
		y := int32(int16(readLane(b, 16, i)))
		r = writeLane(r, 16, i, op(x, y))
	}
	return r
}

// Pmuludq multiplies the unsigned 32-bit values in lanes 0 and 2 of each
// operand, producing two 64-bit products.
func Pmuludq(a, b types.U128) types.U128 {
	var r types.U128
	for i, lane := range []int{0, 2} {
		x := uint64(uint32(readLane(a, 32, lane)))
		y := uint64(uint32(readLane(b, 32, lane)))
		r = r.WithLane64(i, x*y)
	}
	return r
}

// Pmaddwd multiplies corresponding signed 16-bit lanes and sums adjacent
// pairs into signed 32-bit results.
func Pmaddwd(a, b types.U128) types.U128 {
	var r types.U128
	for i := 0; i < 4; i++ {
		x0 := int32(int16(readLane(a, 16, 2*i)))
		y0 := int32(int16(readLane(b, 16, 2*i)))
		x1 := int32(int16(readLane(a, 16, 2*i+1)))
		y1 := int32(int16(readLane(b, 16, 2*i+1)))
		sum := x0*y0 + x1*y1
		r = r.WithLane32(i, uint32(sum))
	}
	return r
}

// Pmaddubsw multiplies unsigned bytes from dst with signed bytes from src,
// sums adjacent pairs, and saturates the 32-bit-wide pairwise sums to a
// signed 16-bit result.
func Pmaddubsw(dst, src types.U128) types.U128 {
	var r types.U128
	for i := 0; i < 8; i++ {
		u0 := int32(uint32(dst.Lane8(2 * i)))
		s0 := int32(int8(src.Lane8(2 * i)))
		u1 := int32(uint32(dst.Lane8(2*i + 1)))
		s1 := int32(int8(src.Lane8(2*i + 1)))
		sum := u0*s0 + u1*s1
		if sum > 32767 {
			sum = 32767
		}
		if sum < -32768 {
			sum = -32768
		}
		r = r.WithLane16(i, uint16(int16(sum)))
	}
	return r
}

// Psadbw sums the absolute byte differences within each 8-byte half and
// places each sum in the low 16 bits of that half's 64-bit lane — the one
// SIMD instruction spec.md calls out as crossing lane boundaries
// intentionally (§4.1.8).
func Psadbw(a, b types.U128) types.U128 {
	var r types.U128
	for half := 0; half < 2; half++ {
		var sum uint64
		for i := 0; i < 8; i++ {
			idx := half*8 + i
			x := int32(uint32(a.Lane8(idx)))
			y := int32(uint32(b.Lane8(idx)))
			d := x - y
			if d < 0 {
				d = -d
			}
			sum += uint64(d)
		}
		r = r.WithLane64(half, sum)
	}
	return r
}
