package checkedcpu

import (
	"github.com/n-stott/x64emulator/cpuimpl"
	"github.com/n-stott/x64emulator/flags"
	"github.com/n-stott/x64emulator/types"
)

// Of the whole SIMD family (spec.md §4.1.8), only COMISS/COMISD/UCOMISS/
// UCOMISD, PTEST, and PCMPISTRI return a flag-bearing result — every other
// SIMD primitive (packed/scalar arithmetic, compares, shuffles, packs,
// conversions, mask extraction, logical ops) writes only a register value
// and so has nothing for CheckedCpuImpl to wrap under spec.md §4.2's own
// "returns a flag-bearing result" scope; the dispatcher in cpu/ calls those
// directly against cpuimpl. None of these six has a host bridge on this
// build (no SSE inline-assembly backend), so each falls back to the pure
// model, same as x87.go's Fcomi/Fucomi.
func Comiss(a, b types.U128, f *flags.Arith)  { cpuimpl.Comiss(a, b, f) }
func Comisd(a, b types.U128, f *flags.Arith)  { cpuimpl.Comisd(a, b, f) }
func Ucomiss(a, b types.U128, f *flags.Arith) { cpuimpl.Ucomiss(a, b, f) }
func Ucomisd(a, b types.U128, f *flags.Arith) { cpuimpl.Ucomisd(a, b, f) }
func Ptest(dst, src types.U128, f *flags.Arith) { cpuimpl.Ptest(dst, src, f) }
func Pcmpistri(a, b types.U128, imm uint8) (int, flags.Arith) {
	return cpuimpl.Pcmpistri(a, b, imm)
}

// Roundss/Roundsd are the one immediate-taking SIMD pair with a genuine
// runtime choice to expand at this boundary: imm8 bit 2 selects between
// the explicit rounding mode packed into imm8[1:0] and the ambient
// MXCSR.RoundingControl the caller passes in. The switch below mirrors
// the original checkedcpuimpl.cpp's dispatch on that same bit pattern;
// every other immediate-taking SIMD op (PSHUFD, SHUFPS/PD, PALIGNR,
// INSERTPS, ...) carries a pure shuffle-control immediate with nothing to
// resolve against ambient state, so cpuimpl consumes those directly.
func roundModeFromImm(imm uint8, mxcsrRC types.RoundMode) types.RoundMode {
	if imm&0x4 != 0 {
		return mxcsrRC
	}
	switch imm & 0x3 {
	case 0:
		return types.RoundNearestEven
	case 1:
		return types.RoundDown
	case 2:
		return types.RoundUp
	default:
		return types.RoundTowardZero
	}
}

func Roundsd(dst, src types.U128, imm uint8, mxcsrRC types.RoundMode) types.U128 {
	return cpuimpl.Roundsd(dst, src, roundModeFromImm(imm, mxcsrRC))
}

func Roundss(dst, src types.U128, imm uint8, mxcsrRC types.RoundMode) types.U128 {
	return cpuimpl.Roundss(dst, src, roundModeFromImm(imm, mxcsrRC))
}
