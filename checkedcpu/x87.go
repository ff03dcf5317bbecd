package checkedcpu

import (
	"github.com/n-stott/x64emulator/cpuimpl"
	"github.com/n-stott/x64emulator/flags"
	"github.com/n-stott/x64emulator/host"
	"github.com/n-stott/x64emulator/types"
)

// Fadd/Fsub/Fmul/Fdiv/Fcomi/Fucomi have no host bridge on this build — an
// 80-bit x87 cross-check needs real FPU instructions (fldt/fadd/fstpt or
// fcomi) behind an assembly backend this build doesn't carry, precisely
// the "80-bit x87 cross-check on non-x86 hosts" case spec.md §4.2 names as
// a sanctioned fallback. The checked forms are the pure model.
func Fadd(a, b types.Float80, mode types.RoundMode) types.Float80 { return cpuimpl.Fadd(a, b, mode) }
func Fsub(a, b types.Float80, mode types.RoundMode) types.Float80 { return cpuimpl.Fsub(a, b, mode) }
func Fmul(a, b types.Float80, mode types.RoundMode) types.Float80 { return cpuimpl.Fmul(a, b, mode) }
func Fdiv(a, b types.Float80, mode types.RoundMode) types.Float80 { return cpuimpl.Fdiv(a, b, mode) }
func Fcomi(a, b types.Float80, f *flags.Arith)                    { cpuimpl.Fcomi(a, b, f) }
func Fucomi(a, b types.Float80, f *flags.Arith)                   { cpuimpl.Fucomi(a, b, f) }

// Frndint cross-checks against host.RoundToInt80, which — unlike Fadd/…
// above — this project does implement independently (types.Float80's own
// arbitrary-precision rounding, grounded in the same math/big rounding
// modes hostinstructions.cpp's fldcw/frndint/fstpt sequence is equivalent
// to), so this one x87 primitive gets a real dual-dispatch check.
func Frndint(a types.Float80, mode types.RoundMode) types.Float80 {
	model := cpuimpl.Frndint(a, mode)
	var want types.Float80
	host.WithRoundingMode(mode, func() {
		want = host.RoundToInt80(a)
	})
	assertEqual("Frndint", want, model)
	return want
}
