package cpu

import (
	"fmt"

	"github.com/n-stott/x64emulator/types"
)

// GPR names the sixteen general-purpose registers (spec.md §3). Index
// order matches the x86-64 REX-extended encoding: RAX..RDI are 0..7,
// R8..R15 are 8..15.
const (
	RAX = iota
	RCX
	RDX
	RBX
	RSP
	RBP
	RSI
	RDI
	R8
	R9
	R10
	R11
	R12
	R13
	R14
	R15
	numGPR
)

// Segment selects one of the eight segment-base slots spec.md §3 tracks
// (selectors themselves are not modeled, only the flat base).
const (
	SegES = iota
	SegCS
	SegSS
	SegDS
	SegFS
	SegGS
	segReserved1
	segReserved2
	numSegments
)

// Registers is the register file of spec.md §3: sixteen 64-bit GPRs with
// their sub-register views, sixteen 128-bit XMM registers, RIP, and eight
// segment bases. Grounded on vm/cpu.go's CPU struct, generalized from
// ARM's sixteen 32-bit R[] to x86-64's wider, more irregularly-addressed
// register namespace.
type Registers struct {
	gpr [numGPR]uint64
	xmm [16]types.U128
	rip uint64
	seg [numSegments]uint64
}

// ReadGPR returns the full 64-bit value of a general-purpose register.
func (r *Registers) ReadGPR(reg int) uint64 {
	return r.gpr[reg]
}

// WriteGPR64 writes the full 64-bit register.
func (r *Registers) WriteGPR64(reg int, v uint64) {
	r.gpr[reg] = v
}

// WriteGPR32 writes the low 32 bits and zero-extends into the full 64,
// per spec.md §3's "writes to a 32-bit sub-register zero-extend" rule.
func (r *Registers) WriteGPR32(reg int, v uint32) {
	r.gpr[reg] = uint64(v)
}

// WriteGPR16 writes the low 16 bits, leaving bits 16..63 unchanged.
func (r *Registers) WriteGPR16(reg int, v uint16) {
	r.gpr[reg] = (r.gpr[reg] &^ 0xFFFF) | uint64(v)
}

// WriteGPR8Low writes AL/CL/DL/BL/SPL/BPL/SIL/DIL/R8B..R15B (bits 0..7),
// leaving the rest of the register unchanged.
func (r *Registers) WriteGPR8Low(reg int, v uint8) {
	r.gpr[reg] = (r.gpr[reg] &^ 0xFF) | uint64(v)
}

// ReadGPR8High / WriteGPR8High address AH/BH/CH/DH: the second byte of
// RAX/RBX/RCX/RDX, a legacy encoding available only for these four
// registers (spec.md §3: "the high byte of the four legacy registers").
func (r *Registers) ReadGPR8High(reg int) uint8 {
	return uint8(r.gpr[reg] >> 8)
}

func (r *Registers) WriteGPR8High(reg int, v uint8) {
	r.gpr[reg] = (r.gpr[reg] &^ 0xFF00) | (uint64(v) << 8)
}

// RIP reads/writes the instruction pointer.
func (r *Registers) RIP() uint64      { return r.rip }
func (r *Registers) SetRIP(v uint64)  { r.rip = v }

// SegmentBase reads one of the eight segment-base slots.
func (r *Registers) SegmentBase(seg int) uint64 { return r.seg[seg] }
func (r *Registers) SetSegmentBase(seg int, v uint64) { r.seg[seg] = v }

// XMM reads/writes a full 128-bit SIMD register. Narrower scalar writes
// that must preserve or zero upper lanes (MOVSS/MOVSD's register-vs-memory
// source distinction) are implemented by the dispatcher, not here — this
// is the raw storage the dispatcher's operand-write path calls into.
func (r *Registers) XMM(reg int) types.U128       { return r.xmm[reg] }
func (r *Registers) SetXMM(reg int, v types.U128) { r.xmm[reg] = v }

func (r *Registers) String() string {
	return fmt.Sprintf("rip=%#x rax=%#x rsp=%#x", r.rip, r.gpr[RAX], r.gpr[RSP])
}
