package cpu

import (
	"github.com/n-stott/x64emulator/checkedcpu"
	"github.com/n-stott/x64emulator/cpuimpl"
	"github.com/n-stott/x64emulator/decode"
	"github.com/n-stott/x64emulator/types"
)

// Of the whole SIMD family, COMISS/COMISD/UCOMISS/UCOMISD, PTEST, and
// PCMPISTRI are flag-bearing, and ROUNDSS/ROUNDSD resolve a rounding mode
// from either the immediate or MXCSR (checkedcpu/simd.go); every other
// SIMD primitive dispatches straight to cpuimpl regardless of c.Mode (see
// simd_dispatch.go), mirroring that file's own comment about the
// dispatcher calling pure value ops directly.

func (c *Cpu) execComiss(a, b types.U128) {
	if c.Mode == ModeChecked {
		checkedcpu.Comiss(a, b, &c.Flags)
		return
	}
	cpuimpl.Comiss(a, b, &c.Flags)
}

func (c *Cpu) execComisd(a, b types.U128) {
	if c.Mode == ModeChecked {
		checkedcpu.Comisd(a, b, &c.Flags)
		return
	}
	cpuimpl.Comisd(a, b, &c.Flags)
}

func (c *Cpu) execUcomiss(a, b types.U128) {
	if c.Mode == ModeChecked {
		checkedcpu.Ucomiss(a, b, &c.Flags)
		return
	}
	cpuimpl.Ucomiss(a, b, &c.Flags)
}

func (c *Cpu) execUcomisd(a, b types.U128) {
	if c.Mode == ModeChecked {
		checkedcpu.Ucomisd(a, b, &c.Flags)
		return
	}
	cpuimpl.Ucomisd(a, b, &c.Flags)
}

func (c *Cpu) execPtest(dst, src types.U128) {
	if c.Mode == ModeChecked {
		checkedcpu.Ptest(dst, src, &c.Flags)
		return
	}
	cpuimpl.Ptest(dst, src, &c.Flags)
}

func (c *Cpu) execPcmpistri(a, b types.U128, imm uint8) int {
	var idx int
	if c.Mode == ModeChecked {
		idx, _ = checkedcpu.Pcmpistri(a, b, imm)
	} else {
		idx, _ = cpuimpl.Pcmpistri(a, b, imm)
	}
	return idx
}

func (c *Cpu) execRoundsd(dst, src types.U128, imm uint8) types.U128 {
	if c.Mode == ModeChecked {
		return checkedcpu.Roundsd(dst, src, imm, c.MXCSR.RoundingControl)
	}
	return cpuimpl.Roundsd(dst, src, roundModeFromDecodeImm(imm, c.MXCSR.RoundingControl))
}

func (c *Cpu) execRoundss(dst, src types.U128, imm uint8) types.U128 {
	if c.Mode == ModeChecked {
		return checkedcpu.Roundss(dst, src, imm, c.MXCSR.RoundingControl)
	}
	return cpuimpl.Roundss(dst, src, roundModeFromDecodeImm(imm, c.MXCSR.RoundingControl))
}

// roundModeFromDecodeImm mirrors checkedcpu.roundModeFromImm for the
// release-mode path, which bypasses checkedcpu entirely: imm bit 2
// selects MXCSR.RoundingControl over the explicit mode in imm[1:0].
func roundModeFromDecodeImm(imm uint8, mxcsrRC types.RoundMode) types.RoundMode {
	if imm&0x4 != 0 {
		return mxcsrRC
	}
	return types.RoundMode(imm & 0x3)
}

// predicateFromDecode maps the decoder's FPPredicate enum onto cpuimpl's
// CmpPredicate; the two are defined independently (decode has no
// dependency on cpuimpl) but share the same eight-way ordering from
// spec.md §4.1.8.
func predicateFromDecode(p decode.FPPredicate) cpuimpl.CmpPredicate {
	return cpuimpl.CmpPredicate(p)
}
