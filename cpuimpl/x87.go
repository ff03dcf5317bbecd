package cpuimpl

import (
	"math/big"

	"github.com/n-stott/x64emulator/flags"
	"github.com/n-stott/x64emulator/types"
)

// Fadd, Fsub, Fmul, Fdiv operate on two 80-bit operands and return an
// 80-bit result computed in extended precision with the supplied rounding
// mode (spec.md §4.1.7). The pure model computes these directly in
// arbitrary precision rather than bridging to a host FPU instruction,
// since math/big's rounding modes are an exact superset of the x87
// rounding-control field (types.RoundMode.bigRounding); CheckedCpuImpl
// still cross-checks against the host where available as a regression
// guard (spec.md §4.2).
func Fadd(a, b types.Float80, mode types.RoundMode) types.Float80 {
	return types.Float80FromBig(new(big.Float).SetPrec(64).SetMode(bigMode(mode)).Add(a.ToBig(), b.ToBig()), mode)
}

func Fsub(a, b types.Float80, mode types.RoundMode) types.Float80 {
	return types.Float80FromBig(new(big.Float).SetPrec(64).SetMode(bigMode(mode)).Sub(a.ToBig(), b.ToBig()), mode)
}

func Fmul(a, b types.Float80, mode types.RoundMode) types.Float80 {
	return types.Float80FromBig(new(big.Float).SetPrec(64).SetMode(bigMode(mode)).Mul(a.ToBig(), b.ToBig()), mode)
}

func Fdiv(a, b types.Float80, mode types.RoundMode) types.Float80 {
	return types.Float80FromBig(new(big.Float).SetPrec(64).SetMode(bigMode(mode)).Quo(a.ToBig(), b.ToBig()), mode)
}

// bigMode mirrors types.RoundMode's internal mapping to big.RoundingMode;
// duplicated here (rather than exported from types) since only the
// intermediate Add/Sub/Mul/Quo calls need it before the final rounding
// pass in Float80FromBig.
func bigMode(mode types.RoundMode) big.RoundingMode {
	switch mode {
	case types.RoundDown:
		return big.ToNegativeInf
	case types.RoundUp:
		return big.ToPositiveInf
	case types.RoundTowardZero:
		return big.ToZero
	default:
		return big.ToNearestEven
	}
}

// compareResult is the three-flag {ZF,PF,CF} encoding spec.md §4.1.7 and
// §4.1.8 share between FCOMI/FUCOMI and COMISS/COMISD/UCOMISS/UCOMISD.
type compareResult struct {
	ZF, PF, CF bool
}

var (
	cmpUnordered = compareResult{true, true, true}
	cmpGreater   = compareResult{false, false, false}
	cmpLess      = compareResult{false, false, true}
	cmpEqual     = compareResult{true, false, false}
)

func applyCompare(r compareResult, f *flags.Arith) {
	f.ZF, f.PF, f.CF = r.ZF, r.PF, r.CF
}

// Fcomi and Fucomi compare two 80-bit operands (spec.md §4.1.7). The model
// does not distinguish quiet/signaling NaN trapping behavior between the
// two (both core operations observe the same unordered result); the
// distinction matters only for the exception-pending bits, which this core
// stores but never dispatches traps for (spec.md §7).
func Fcomi(a, b types.Float80, f *flags.Arith) {
	applyCompare(compareFloat80(a, b), f)
}

func Fucomi(a, b types.Float80, f *flags.Arith) {
	applyCompare(compareFloat80(a, b), f)
}

func compareFloat80(a, b types.Float80) compareResult {
	if a.IsNaN() || b.IsNaN() {
		return cmpUnordered
	}
	cmp := a.ToBig().Cmp(b.ToBig())
	switch {
	case cmp > 0:
		return cmpGreater
	case cmp < 0:
		return cmpLess
	default:
		return cmpEqual
	}
}

// Frndint rounds to integer using the current x87 rounding mode (spec.md
// §4.1.7, §8 test 4: round-to-nearest-even rounds .5 to the nearest even
// integer).
func Frndint(a types.Float80, mode types.RoundMode) types.Float80 {
	return a.RoundToInt(mode)
}
