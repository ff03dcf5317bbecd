package host

import (
	"math"

	"github.com/n-stott/x64emulator/types"
)

// RoundToInt80 is the host-bridge stand-in for hostinstructions.cpp's
// `round`: fnstcw/fldcw/fldt/frndint/fstpt/fldcw on real x87 hardware,
// reduced here to types.Float80's own arbitrary-precision rounding (which
// is exact for every RoundMode, so it can stand in for the host sequence
// without a per-arch assembly stub).
func RoundToInt80(f types.Float80) types.Float80 {
	return f.RoundToInt(currentRoundMode)
}

// RoundToInt64 is the bridge stand-in for hostinstructions.cpp's
// `roundWithoutTruncation64(f64)` — CVTSD2SI's non-truncating host
// conversion, which always honors the current rounding mode rather than
// truncating toward zero.
func RoundToInt64(x float64) int64 {
	return int64(roundFloat64(x, currentRoundMode))
}

// RoundToInt32 is the float32-operand counterpart (CVTSS2SI).
func RoundToInt32(x float32) int32 {
	return int32(roundFloat64(float64(x), currentRoundMode))
}

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
