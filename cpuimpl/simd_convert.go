package cpuimpl

import (
	"math"

	"github.com/n-stott/x64emulator/types"
)

// roundFloat64 rounds x to the nearest integral float64 per mode, matching
// the four x87/SSE rounding directions (spec.md §3). Round-to-nearest breaks
// ties to even, mirroring math.RoundToEven rather than math.Round's
// away-from-zero tie-break.
func roundFloat64(x float64, mode types.RoundMode) float64 {
	switch mode {
	case types.RoundDown:
		return math.Floor(x)
	case types.RoundUp:
		return math.Ceil(x)
	case types.RoundTowardZero:
		return math.Trunc(x)
	default:
		return math.RoundToEven(x)
	}
}

// Cvtsi2sd/Cvtsi2ss convert a signed 64-bit integer into the low lane of an
// otherwise-unchanged XMM register (spec.md §4.1.8); the conversion is exact
// for the magnitudes involved, so no rounding mode applies until the value
// exceeds the target's mantissa width, at which point float64/float32's
// native conversion rounding (round-to-nearest-even) is used.
func Cvtsi2sd(dst types.U128, src int64) types.U128 {
	return dst.WithLaneF64(0, float64(src))
}

func Cvtsi2ss(dst types.U128, src int64) types.U128 {
	return dst.WithLaneF32(0, float32(src))
}

// Cvttsd2si/Cvttss2si truncate the low lane toward zero into a signed
// 64-bit integer.
func Cvttsd2si(src types.U128) int64 { return int64(math.Trunc(src.LaneF64(0))) }
func Cvttss2si(src types.U128) int64 { return int64(math.Trunc(float64(src.LaneF32(0)))) }

// Cvtsd2si/Cvtss2si convert the low lane to a signed 64-bit integer using
// the MXCSR rounding control.
func Cvtsd2si(src types.U128, mode types.RoundMode) int64 {
	return int64(roundFloat64(src.LaneF64(0), mode))
}

func Cvtss2si(src types.U128, mode types.RoundMode) int64 {
	return int64(roundFloat64(float64(src.LaneF32(0)), mode))
}

// Cvtsd2ss/Cvtss2sd convert the low lane between double and single
// precision, leaving the remaining lanes of dst untouched.
func Cvtsd2ss(dst, src types.U128) types.U128 {
	return dst.WithLaneF32(0, float32(src.LaneF64(0)))
}

// Roundsd/Roundss round the low lane of src to an integral value per mode
// (the caller has already resolved mode from the instruction's immediate
// or from MXCSR.RoundingControl — see checkedcpu.Roundsd/Roundss), leaving
// dst's upper lanes unchanged.
func Roundsd(dst, src types.U128, mode types.RoundMode) types.U128 {
	return dst.WithLaneF64(0, roundFloat64(src.LaneF64(0), mode))
}

func Roundss(dst, src types.U128, mode types.RoundMode) types.U128 {
	return dst.WithLaneF32(0, float32(roundFloat64(float64(src.LaneF32(0)), mode)))
}

func Cvtss2sd(dst, src types.U128) types.U128 {
	return dst.WithLaneF64(0, float64(src.LaneF32(0)))
}

// Cvtdq2pd widens the low two signed 32-bit lanes of src to double
// precision.
func Cvtdq2pd(src types.U128) types.U128 {
	var r types.U128
	for i := 0; i < 2; i++ {
		r = r.WithLaneF64(i, float64(int32(src.Lane32(i))))
	}
	return r
}

// Cvtdq2ps converts four signed 32-bit lanes to single precision.
func Cvtdq2ps(src types.U128) types.U128 {
	var r types.U128
	for i := 0; i < 4; i++ {
		r = r.WithLaneF32(i, float32(int32(src.Lane32(i))))
	}
	return r
}

// Cvtpd2dq rounds two double-precision lanes to signed 32-bit integers per
// mode, zeroing the upper two result lanes.
func Cvtpd2dq(src types.U128, mode types.RoundMode) types.U128 {
	var r types.U128
	for i := 0; i < 2; i++ {
		r = r.WithLane32(i, uint32(int32(roundFloat64(src.LaneF64(i), mode))))
	}
	return r
}

// Cvttpd2dq truncates two double-precision lanes to signed 32-bit integers,
// zeroing the upper two result lanes.
func Cvttpd2dq(src types.U128) types.U128 {
	var r types.U128
	for i := 0; i < 2; i++ {
		r = r.WithLane32(i, uint32(int32(math.Trunc(src.LaneF64(i)))))
	}
	return r
}

// Cvtps2dq rounds four single-precision lanes to signed 32-bit integers per
// mode.
func Cvtps2dq(src types.U128, mode types.RoundMode) types.U128 {
	var r types.U128
	for i := 0; i < 4; i++ {
		r = r.WithLane32(i, uint32(int32(roundFloat64(float64(src.LaneF32(i)), mode))))
	}
	return r
}

// Cvttps2dq truncates four single-precision lanes to signed 32-bit
// integers.
func Cvttps2dq(src types.U128) types.U128 {
	var r types.U128
	for i := 0; i < 4; i++ {
		r = r.WithLane32(i, uint32(int32(math.Trunc(float64(src.LaneF32(i))))))
	}
	return r
}

// Cvtpd2ps narrows two double-precision lanes to single precision, zeroing
// the upper two result lanes.
func Cvtpd2ps(src types.U128) types.U128 {
	var r types.U128
	for i := 0; i < 2; i++ {
		r = r.WithLaneF32(i, float32(src.LaneF64(i)))
	}
	return r
}

// Cvtps2pd widens the low two single-precision lanes to double precision.
func Cvtps2pd(src types.U128) types.U128 {
	var r types.U128
	for i := 0; i < 2; i++ {
		r = r.WithLaneF64(i, float64(src.LaneF32(i)))
	}
	return r
}
