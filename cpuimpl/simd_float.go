package cpuimpl

import (
	"math"

	"github.com/n-stott/x64emulator/types"
)

// Packed/scalar float arithmetic (spec.md §4.1.8). Each function uses Go's
// native float32/float64 arithmetic, which rounds to nearest-even (SSE's
// default MXCSR rounding mode); the MXCSR rounding-control field is not
// consulted, so no other rounding mode is applied. When ftz is set the
// packed forms flush subnormal results to zero; the scalar forms take no
// ftz argument and never flush, and subnormal inputs are never treated as
// zero (DAZ is not applied).

const minNormalFloat64 = 2.2250738585072014e-308

// flushIfNeeded implements the MXCSR flush-to-zero convention: subnormal
// results are flushed to a correctly-signed zero when ftz is set.
func flushIfNeeded(x float64, ftz bool) float64 {
	if ftz && x != 0 && math.Abs(x) < minNormalFloat64 {
		return math.Copysign(0, x)
	}
	return x
}

// Addpd adds two lanes of double-precision floats.
func Addpd(a, b types.U128, ftz bool) types.U128 {
	var r types.U128
	for i := 0; i < 2; i++ {
		r = r.WithLaneF64(i, flushIfNeeded(a.LaneF64(i)+b.LaneF64(i), ftz))
	}
	return r
}

func Subpd(a, b types.U128, ftz bool) types.U128 {
	var r types.U128
	for i := 0; i < 2; i++ {
		r = r.WithLaneF64(i, flushIfNeeded(a.LaneF64(i)-b.LaneF64(i), ftz))
	}
	return r
}

func Mulpd(a, b types.U128, ftz bool) types.U128 {
	var r types.U128
	for i := 0; i < 2; i++ {
		r = r.WithLaneF64(i, flushIfNeeded(a.LaneF64(i)*b.LaneF64(i), ftz))
	}
	return r
}

func Divpd(a, b types.U128, ftz bool) types.U128 {
	var r types.U128
	for i := 0; i < 2; i++ {
		r = r.WithLaneF64(i, flushIfNeeded(a.LaneF64(i)/b.LaneF64(i), ftz))
	}
	return r
}

// Addps/Subps/Mulps/Divps are the single-precision, 4-lane siblings.
func Addps(a, b types.U128, ftz bool) types.U128 { return packedF32(a, b, ftz, func(x, y float32) float32 { return x + y }) }
func Subps(a, b types.U128, ftz bool) types.U128 { return packedF32(a, b, ftz, func(x, y float32) float32 { return x - y }) }
func Mulps(a, b types.U128, ftz bool) types.U128 { return packedF32(a, b, ftz, func(x, y float32) float32 { return x * y }) }
func Divps(a, b types.U128, ftz bool) types.U128 { return packedF32(a, b, ftz, func(x, y float32) float32 { return x / y }) }

func packedF32(a, b types.U128, ftz bool, op func(x, y float32) float32) types.U128 {
	var r types.U128
	for i := 0; i < 4; i++ {
		v := op(a.LaneF32(i), b.LaneF32(i))
		if ftz {
			v = float32(flushIfNeeded(float64(v), true))
		}
		r = r.WithLaneF32(i, v)
	}
	return r
}

// Scalar forms (SS/SD): operate on lane 0 only, copying the upper lanes of
// dst (a) unchanged — the dispatcher is responsible for which operand is
// "dst" vs "src" per the instruction's operand order.
func Addss(a, b types.U128) types.U128 { return a.WithLaneF32(0, a.LaneF32(0)+b.LaneF32(0)) }
func Subss(a, b types.U128) types.U128 { return a.WithLaneF32(0, a.LaneF32(0)-b.LaneF32(0)) }
func Mulss(a, b types.U128) types.U128 { return a.WithLaneF32(0, a.LaneF32(0)*b.LaneF32(0)) }
func Divss(a, b types.U128) types.U128 { return a.WithLaneF32(0, a.LaneF32(0)/b.LaneF32(0)) }
func Sqrtss(a types.U128) types.U128   { return a.WithLaneF32(0, float32(math.Sqrt(float64(a.LaneF32(0))))) }

func Addsd(a, b types.U128) types.U128 { return a.WithLaneF64(0, a.LaneF64(0)+b.LaneF64(0)) }
func Subsd(a, b types.U128) types.U128 { return a.WithLaneF64(0, a.LaneF64(0)-b.LaneF64(0)) }
func Mulsd(a, b types.U128) types.U128 { return a.WithLaneF64(0, a.LaneF64(0)*b.LaneF64(0)) }
func Divsd(a, b types.U128) types.U128 { return a.WithLaneF64(0, a.LaneF64(0)/b.LaneF64(0)) }
func Sqrtsd(a types.U128) types.U128   { return a.WithLaneF64(0, math.Sqrt(a.LaneF64(0))) }

// minMaxF64 implements spec.md §4.1.8's Min/Max contract: if either lane is
// NaN, or both are ±0.0, return src (b); otherwise the arithmetic min/max.
// This ordering is intentionally asymmetric.
func minMaxF64(a, b float64, wantMax bool) float64 {
	if math.IsNaN(a) || math.IsNaN(b) {
		return b
	}
	if a == 0 && b == 0 {
		return b
	}
	if wantMax {
		if a > b {
			return a
		}
		return b
	}
	if a < b {
		return a
	}
	return b
}

func Minsd(a, b types.U128) types.U128 { return a.WithLaneF64(0, minMaxF64(a.LaneF64(0), b.LaneF64(0), false)) }
func Maxsd(a, b types.U128) types.U128 { return a.WithLaneF64(0, minMaxF64(a.LaneF64(0), b.LaneF64(0), true)) }

func Minpd(a, b types.U128) types.U128 {
	var r types.U128
	for i := 0; i < 2; i++ {
		r = r.WithLaneF64(i, minMaxF64(a.LaneF64(i), b.LaneF64(i), false))
	}
	return r
}

func Maxpd(a, b types.U128) types.U128 {
	var r types.U128
	for i := 0; i < 2; i++ {
		r = r.WithLaneF64(i, minMaxF64(a.LaneF64(i), b.LaneF64(i), true))
	}
	return r
}

func minMaxF32(a, b float32, wantMax bool) float32 {
	return float32(minMaxF64(float64(a), float64(b), wantMax))
}

func Minss(a, b types.U128) types.U128 { return a.WithLaneF32(0, minMaxF32(a.LaneF32(0), b.LaneF32(0), false)) }
func Maxss(a, b types.U128) types.U128 { return a.WithLaneF32(0, minMaxF32(a.LaneF32(0), b.LaneF32(0), true)) }

func Minps(a, b types.U128) types.U128 {
	var r types.U128
	for i := 0; i < 4; i++ {
		r = r.WithLaneF32(i, minMaxF32(a.LaneF32(i), b.LaneF32(i), false))
	}
	return r
}

func Maxps(a, b types.U128) types.U128 {
	var r types.U128
	for i := 0; i < 4; i++ {
		r = r.WithLaneF32(i, minMaxF32(a.LaneF32(i), b.LaneF32(i), true))
	}
	return r
}
