package cpuimpl

import "github.com/n-stott/x64emulator/types"

// Pack instructions (spec.md §4.1.8) narrow each lane of two operands into
// half-width lanes of the result, saturating at the destination range.

func packSigned(a, b types.U128, srcBits, dstBits int, lo, hi int64) types.U128 {
	srcN := laneCount(srcBits)
	var r types.U128
	idx := 0
	for _, src := range []types.U128{a, b} {
		for i := 0; i < srcN; i++ {
			v := asSigned(readLane(src, srcBits, i), uint(srcBits))
			if v < lo {
				v = lo
			}
			if v > hi {
				v = hi
			}
			r = writeLane(r, dstBits, idx, uint64(v)&maskWidth(uint(dstBits)))
			idx++
		}
	}
	return r
}

func packUnsignedFromSigned(a, b types.U128, srcBits, dstBits int, hi int64) types.U128 {
	srcN := laneCount(srcBits)
	var r types.U128
	idx := 0
	for _, src := range []types.U128{a, b} {
		for i := 0; i < srcN; i++ {
			v := asSigned(readLane(src, srcBits, i), uint(srcBits))
			if v < 0 {
				v = 0
			}
			if v > hi {
				v = hi
			}
			r = writeLane(r, dstBits, idx, uint64(v)&maskWidth(uint(dstBits)))
			idx++
		}
	}
	return r
}

// Packsswb packs eight signed 16-bit lanes from each of a and b into sixteen
// signed 8-bit lanes, saturating to [-128, 127].
func Packsswb(a, b types.U128) types.U128 { return packSigned(a, b, 16, 8, -128, 127) }

// Packssdw packs four signed 32-bit lanes from each of a and b into eight
// signed 16-bit lanes, saturating to [-32768, 32767].
func Packssdw(a, b types.U128) types.U128 { return packSigned(a, b, 32, 16, -32768, 32767) }

// Packuswb packs eight signed 16-bit lanes from each of a and b into sixteen
// unsigned 8-bit lanes, saturating to [0, 255].
func Packuswb(a, b types.U128) types.U128 { return packUnsignedFromSigned(a, b, 16, 8, 255) }

// Packusdw packs four signed 32-bit lanes from each of a and b into eight
// unsigned 16-bit lanes, saturating to [0, 65535].
func Packusdw(a, b types.U128) types.U128 { return packUnsignedFromSigned(a, b, 32, 16, 65535) }
