package flags

import (
	"fmt"

	"github.com/n-stott/x64emulator/types"
)

// ExceptionMask bits, shared shape between the x87 control word and MXCSR
// (spec.md §3): invalid, denormal, zero-divide, overflow, underflow,
// precision.
type ExceptionMask struct {
	Invalid   bool
	Denormal  bool
	ZeroDiv   bool
	Overflow  bool
	Underflow bool
	Precision bool
}

// ControlWord is the x87 control word: precision control, rounding control,
// and the six exception masks. Reserved bits are not modeled.
type ControlWord struct {
	PrecisionControl uint8 // 0=single, 2=double, 3=extended (2-bit field, x86 encoding)
	RoundingControl  types.RoundMode
	Mask             ExceptionMask
}

// Tag describes the per-slot state of the x87 tag word.
type Tag uint8

const (
	TagValid Tag = iota
	TagZero
	TagSpecial
	TagEmpty
)

// StatusWord is the x87 status word: top-of-stack pointer, condition codes,
// exception-pending bits, and the busy bit.
type StatusWord struct {
	Top             uint8 // 3 bits, 0..7
	C0, C1, C2, C3  bool
	ExceptionStatus ExceptionMask
	StackFault      bool // set when a push targets a non-empty slot
	Busy            bool
}

// FPU is the complete x87 state: control/status/tag words plus the 8-entry
// 80-bit register stack (spec.md §3).
type FPU struct {
	CW   ControlWord
	SW   StatusWord
	Tags [8]Tag
	ST   [8]types.Float80
}

// NewFPU returns freshly reset x87 state: all slots empty, round-to-nearest,
// top at 0, matching the power-on state of a real FPU closely enough for
// this core's purposes (no traps, no reserved-bit modeling).
func NewFPU() *FPU {
	f := &FPU{}
	for i := range f.Tags {
		f.Tags[i] = TagEmpty
	}
	f.CW.Mask = ExceptionMask{Invalid: true, Denormal: true, ZeroDiv: true, Overflow: true, Underflow: true, Precision: true}
	f.CW.PrecisionControl = 3
	return f
}

// StackIndex maps a logical ST(i) index through the current top, per
// spec.md §3's "accesses by ST(i) index through top" rule.
func (f *FPU) StackIndex(i int) int {
	return (int(f.SW.Top) + i) % 8
}

// StackRead reads ST(i).
func (f *FPU) StackRead(i int) types.Float80 {
	return f.ST[f.StackIndex(i)]
}

// Push decrements top modulo 8 and writes the new ST(0). If the target
// slot's tag is non-empty, the modeled stack-fault bit and C1 are set
// whatever the Invalid mask says; the core stores this state but never
// dispatches a trap for it
// (spec.md §3 invariants).
func (f *FPU) Push(v types.Float80) {
	newTop := (int(f.SW.Top) + 7) % 8
	if f.Tags[newTop] != TagEmpty {
		f.SW.StackFault = true
		f.SW.C1 = true
		if !f.CW.Mask.Invalid {
			// Masked off by default; nothing further to do since the core
			// does not dispatch traps (spec.md §7).
			_ = struct{}{}
		}
	}
	f.SW.Top = uint8(newTop)
	f.ST[newTop] = v
	f.Tags[newTop] = tagFor(v)
}

// Pop marks the current ST(0) empty and post-increments top.
func (f *FPU) Pop() types.Float80 {
	idx := int(f.SW.Top)
	v := f.ST[idx]
	f.Tags[idx] = TagEmpty
	f.SW.Top = uint8((idx + 1) % 8)
	return v
}

// SetStack writes ST(i) in place without moving top, used by instructions
// that overwrite a stack slot (e.g. FST without pop).
func (f *FPU) SetStack(i int, v types.Float80) {
	idx := f.StackIndex(i)
	f.ST[idx] = v
	f.Tags[idx] = tagFor(v)
}

func tagFor(v types.Float80) Tag {
	switch {
	case v.IsZero():
		return TagZero
	case v.IsSpecial():
		return TagSpecial
	default:
		return TagValid
	}
}

// String renders the status word's top and condition codes for diagnostics.
func (f *FPU) String() string {
	return fmt.Sprintf("top=%d C0=%v C1=%v C2=%v C3=%v", f.SW.Top, f.SW.C0, f.SW.C1, f.SW.C2, f.SW.C3)
}
