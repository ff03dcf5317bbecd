package cpuimpl

import (
	"math"

	"github.com/n-stott/x64emulator/flags"
	"github.com/n-stott/x64emulator/types"
)

// CmpPredicate enumerates the SSE compare predicates (spec.md §4.1.8).
type CmpPredicate uint8

const (
	CmpEQ CmpPredicate = iota
	CmpLT
	CmpLE
	CmpUNORD
	CmpNEQ
	CmpNLT
	CmpNLE
	CmpORD
)

func evalPredicate(p CmpPredicate, a, b float64) bool {
	unordered := math.IsNaN(a) || math.IsNaN(b)
	switch p {
	case CmpEQ:
		return !unordered && a == b
	case CmpLT:
		return !unordered && a < b
	case CmpLE:
		return !unordered && a <= b
	case CmpUNORD:
		return unordered
	case CmpNEQ:
		return unordered || a != b
	case CmpNLT:
		return unordered || !(a < b)
	case CmpNLE:
		return unordered || !(a <= b)
	case CmpORD:
		return !unordered
	}
	return false
}

// Cmppd evaluates predicate p lane-wise over two double-precision lanes,
// producing an all-ones mask per lane when the predicate holds, else zero.
func Cmppd(a, b types.U128, p CmpPredicate) types.U128 {
	var r types.U128
	for i := 0; i < 2; i++ {
		r = r.WithLane64(i, maskBits64(evalPredicate(p, a.LaneF64(i), b.LaneF64(i))))
	}
	return r
}

func Cmpps(a, b types.U128, p CmpPredicate) types.U128 {
	var r types.U128
	for i := 0; i < 4; i++ {
		r = r.WithLane32(i, maskBits32(evalPredicate(p, float64(a.LaneF32(i)), float64(b.LaneF32(i)))))
	}
	return r
}

func Cmpsd(a, b types.U128, p CmpPredicate) types.U128 {
	return a.WithLane64(0, maskBits64(evalPredicate(p, a.LaneF64(0), b.LaneF64(0))))
}

func Cmpss(a, b types.U128, p CmpPredicate) types.U128 {
	return a.WithLane32(0, maskBits32(evalPredicate(p, float64(a.LaneF32(0)), float64(b.LaneF32(0)))))
}

func maskBits64(set bool) uint64 {
	if set {
		return ^uint64(0)
	}
	return 0
}

func maskBits32(set bool) uint32 {
	if set {
		return ^uint32(0)
	}
	return 0
}

// comiResult mirrors x87 Fcomi's {ZF,PF,CF} mapping (spec.md §4.1.8:
// COMISS/COMISD/UCOMISS/UCOMISD use the same unordered/greater/less/equal
// mapping as x87 fcomi).
func comiResult(a, b float64) compareResult {
	if math.IsNaN(a) || math.IsNaN(b) {
		return cmpUnordered
	}
	switch {
	case a > b:
		return cmpGreater
	case a < b:
		return cmpLess
	default:
		return cmpEqual
	}
}

func Comiss(a, b types.U128, f *flags.Arith)  { applyCompare(comiResult(float64(a.LaneF32(0)), float64(b.LaneF32(0))), f) }
func Comisd(a, b types.U128, f *flags.Arith)  { applyCompare(comiResult(a.LaneF64(0), b.LaneF64(0)), f) }
func Ucomiss(a, b types.U128, f *flags.Arith) { Comiss(a, b, f) }
func Ucomisd(a, b types.U128, f *flags.Arith) { Comisd(a, b, f) }

// Packed integer compare (spec.md §4.1.8): lane-wise, result all-ones or
// zero.

func Pcmpeqb(a, b types.U128) types.U128 { return pcmpLane(a, b, 8, func(x, y uint64) bool { return x == y }) }
func Pcmpeqw(a, b types.U128) types.U128 { return pcmpLane(a, b, 16, func(x, y uint64) bool { return x == y }) }
func Pcmpeqd(a, b types.U128) types.U128 { return pcmpLane(a, b, 32, func(x, y uint64) bool { return x == y }) }
func Pcmpeqq(a, b types.U128) types.U128 { return pcmpLane(a, b, 64, func(x, y uint64) bool { return x == y }) }

func Pcmpgtb(a, b types.U128) types.U128 {
	return pcmpLaneSigned(a, b, 8, func(x, y int64) bool { return x > y })
}
func Pcmpgtw(a, b types.U128) types.U128 {
	return pcmpLaneSigned(a, b, 16, func(x, y int64) bool { return x > y })
}
func Pcmpgtd(a, b types.U128) types.U128 {
	return pcmpLaneSigned(a, b, 32, func(x, y int64) bool { return x > y })
}
func Pcmpgtq(a, b types.U128) types.U128 {
	return pcmpLaneSigned(a, b, 64, func(x, y int64) bool { return x > y })
}

func pcmpLane(a, b types.U128, laneBits int, pred func(x, y uint64) bool) types.U128 {
	n := 128 / laneBits
	var r types.U128
	for i := 0; i < n; i++ {
		x, y := readLane(a, laneBits, i), readLane(b, laneBits, i)
		r = writeLane(r, laneBits, i, maskBitsWidth(pred(x, y), uint(laneBits)))
	}
	return r
}

func pcmpLaneSigned(a, b types.U128, laneBits int, pred func(x, y int64) bool) types.U128 {
	n := 128 / laneBits
	var r types.U128
	for i := 0; i < n; i++ {
		x := asSigned(readLane(a, laneBits, i), uint(laneBits))
		y := asSigned(readLane(b, laneBits, i), uint(laneBits))
		r = writeLane(r, laneBits, i, maskBitsWidth(pred(x, y), uint(laneBits)))
	}
	return r
}

func maskBitsWidth(set bool, width uint) uint64 {
	if set {
		return maskWidth(width)
	}
	return 0
}

// Ptest computes ZF ← (dst&src)==0, CF ← (~dst&src)==0, other flags cleared
// (spec.md §4.1.8, §8: Ptest(x,x) ⇒ CF == ZF == (x==0)).
func Ptest(dst, src types.U128, f *flags.Arith) {
	and := dst.And(src)
	f.ZF = and.IsZero()
	andn := dst.AndNot(src)
	f.CF = andn.IsZero()
	f.SF, f.OF, f.PF = false, false, false
}

// Pcmpistri is a stub: it returns index 0 and all flags clear for every
// input and every imm8 control byte; no string comparison is performed.
func Pcmpistri(a, b types.U128, imm uint8) (index int, f flags.Arith) {
	return 0, flags.Arith{}
}
