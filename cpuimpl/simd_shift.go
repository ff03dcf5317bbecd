package cpuimpl

import "github.com/n-stott/x64emulator/types"

// Packed shift (spec.md §4.1.8): shift every lane by the same amount; a
// shift count >= lane width produces all-zero lanes (logical) or all
// sign-bit lanes (arithmetic, signed lanes).

func packedShiftLogicalLeft(v types.U128, laneBits int, count uint64) types.U128 {
	n := laneCount(laneBits)
	mask := maskWidth(uint(laneBits))
	var r types.U128
	for i := 0; i < n; i++ {
		x := readLane(v, laneBits, i)
		var shifted uint64
		if count < uint64(laneBits) {
			shifted = (x << count) & mask
		}
		r = writeLane(r, laneBits, i, shifted)
	}
	return r
}

func packedShiftLogicalRight(v types.U128, laneBits int, count uint64) types.U128 {
	n := laneCount(laneBits)
	var r types.U128
	for i := 0; i < n; i++ {
		x := readLane(v, laneBits, i)
		var shifted uint64
		if count < uint64(laneBits) {
			shifted = x >> count
		}
		r = writeLane(r, laneBits, i, shifted)
	}
	return r
}

func packedShiftArithRight(v types.U128, laneBits int, count uint64) types.U128 {
	n := laneCount(laneBits)
	w := uint(laneBits)
	var r types.U128
	for i := 0; i < n; i++ {
		x := readLane(v, laneBits, i)
		signed := asSigned(x, w)
		shiftAmt := count
		if shiftAmt > uint64(w-1) {
			shiftAmt = uint64(w - 1)
		}
		shifted := signed >> shiftAmt
		r = writeLane(r, laneBits, i, uint64(shifted)&maskWidth(w))
	}
	return r
}

func Psllw(v types.U128, count uint64) types.U128 { return packedShiftLogicalLeft(v, 16, count) }
func Pslld(v types.U128, count uint64) types.U128 { return packedShiftLogicalLeft(v, 32, count) }
func Psllq(v types.U128, count uint64) types.U128 { return packedShiftLogicalLeft(v, 64, count) }

func Psrlw(v types.U128, count uint64) types.U128 { return packedShiftLogicalRight(v, 16, count) }
func Psrld(v types.U128, count uint64) types.U128 { return packedShiftLogicalRight(v, 32, count) }
func Psrlq(v types.U128, count uint64) types.U128 { return packedShiftLogicalRight(v, 64, count) }

func Psraw(v types.U128, count uint64) types.U128 { return packedShiftArithRight(v, 16, count) }
func Psrad(v types.U128, count uint64) types.U128 { return packedShiftArithRight(v, 32, count) }

// Pslldq and Psrldq shift the entire 128-bit value by whole bytes.
func Pslldq(v types.U128, n int) types.U128 {
	if n >= 16 {
		return types.U128{}
	}
	b := v.Bytes()
	var out [16]byte
	for i := 15; i >= n; i-- {
		out[i] = b[i-n]
	}
	return types.U128FromBytes(out)
}

func Psrldq(v types.U128, n int) types.U128 {
	if n >= 16 {
		return types.U128{}
	}
	b := v.Bytes()
	var out [16]byte
	for i := 0; i < 16-n; i++ {
		out[i] = b[i+n]
	}
	return types.U128FromBytes(out)
}
