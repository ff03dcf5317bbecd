// Package host bridges cpuimpl's pure model to host-CPU behavior: rounding
// reference checks, wide-division/multiplication references, and a masked
// CPUID/XGETBV passthrough (spec.md §4.2, §5). On real silicon this bridge
// is the one-instruction inline-assembly/intrinsic boundary described by
// original_source/emulator/src/host/hostinstructions.cpp; this package is
// the portable, pure-Go stand-in used everywhere the checked dispatch needs
// a second opinion, so that CheckedCpuImpl has something independent to
// compare the model against without requiring per-arch assembly.
package host

import "github.com/n-stott/x64emulator/types"

// currentRoundMode mirrors the x87/MXCSR rounding-control field that
// hostinstructions.cpp's `round` saves via fnstcw before temporarily
// forcing round-to-nearest and restores via fldcw afterward.
var currentRoundMode = types.RoundNearestEven

// WithRoundingMode runs fn with the host rounding mode temporarily set to
// mode, restoring the previous mode afterward — the save/set/restore
// discipline of hostinstructions.cpp's `round`, made an explicit scoped
// helper instead of an inline asm save/restore pair.
func WithRoundingMode(mode types.RoundMode, fn func()) {
	prev := currentRoundMode
	currentRoundMode = mode
	defer func() { currentRoundMode = prev }()
	fn()
}

// RoundingMode reports the rounding mode WithRoundingMode last installed.
func RoundingMode() types.RoundMode {
	return currentRoundMode
}
