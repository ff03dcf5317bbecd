// Package cpu is the dispatcher layer of spec.md §4.3 (the `Cpu` of the
// spec's component table): it owns the register file, flag word, x87
// state, and SIMD control word, and drives the semantic layer (cpuimpl or
// checkedcpu) against operands resolved from a decode.Instruction. Operand
// decoding itself is out of scope (spec.md §1 Non-goals); this package
// only consumes decode.Instruction values an external decoder produces.
//
// Grounded on vm/cpu.go (register-file shape) and vm/executor.go (the
// VM/Step structure, generalized from ARM's single fetch-decode-execute
// loop to this package's Exec(decoded) entry point, since fetch/decode
// live outside this core per spec.md §1).
package cpu

import (
	"fmt"

	"github.com/n-stott/x64emulator/decode"
	"github.com/n-stott/x64emulator/flags"
	"github.com/n-stott/x64emulator/mmu"
)

// Mode selects which semantic layer backs the dispatcher's arithmetic,
// bitwise, shift, bit-test, scan, and x87/SIMD flag-bearing calls: the
// pure cpuimpl model, or checkedcpu's host-cross-checking wrapper. Real
// C++ builds make this choice at compile time (spec.md §4.2: "a
// compile-time switch (debug ↔ release)"); Go has no equivalent
// preprocessor, so this core models the same choice as a field set once
// at construction, the same way the teacher's config.Config carries a
// boolean toggle rather than a build tag for comparable switches.
type Mode int

const (
	ModeRelease Mode = iota // dispatch straight to cpuimpl
	ModeChecked             // dispatch through checkedcpu's host cross-check
)

// Hooks are the VM callbacks of spec.md §6 ("The VM hooks"): opaque to the
// core, invoked on CALL/RET/JMP with the target address and on SYSCALL
// with none. A nil Hooks is valid; each method is only called if non-nil.
type Hooks interface {
	OnCall(target uint64)
	OnReturn(target uint64)
	OnJump(target uint64)
	OnSyscall()
}

// Fault is raised for every invariant violation spec.md §7.1 names as
// fatal: division by zero reaching a semantic primitive, UD2, HLT, an
// unrecognized decoded-instruction tag, or a misaligned access on an
// opcode that asserts alignment. Exec recovers a Fault at its own call
// boundary and returns it as an error, mirroring vm/executor.go's
// vm.State = StateError / vm.LastError pattern without a process-wide
// global — the caller decides whether "fatal" means abort the process.
type Fault struct {
	Mnemonic decode.Mnemonic
	Address  uint64
	Reason   string
}

func (f *Fault) Error() string {
	return fmt.Sprintf("cpu: fault executing %v at %#x: %s", f.Mnemonic, f.Address, f.Reason)
}

func fault(in *decode.Instruction, reason string, args ...interface{}) *Fault {
	return &Fault{Mnemonic: in.Mnemonic, Address: in.Address, Reason: fmt.Sprintf(reason, args...)}
}

// Cpu is the dispatcher: register file, flags, x87/MXCSR state, the MMU
// collaborator, and a back-reference to the owning VM's hooks (spec.md §9
// "Cyclic references → explicit back-reference": the VM outlives the
// dispatcher, which holds only a non-owning reference).
type Cpu struct {
	Regs  Registers
	Flags flags.Arith
	FPU   *flags.FPU
	MXCSR *flags.MXCSR
	MMU   mmu.MMU
	Hooks Hooks
	Mode  Mode

	// Cycles counts executed instructions, mirroring vm.CPU.Cycles.
	Cycles uint64
}

// New constructs a dispatcher over the given MMU. Hooks may be nil.
func New(m mmu.MMU, hooks Hooks, mode Mode) *Cpu {
	return &Cpu{
		FPU:   flags.NewFPU(),
		MXCSR: flags.NewMXCSR(),
		MMU:   m,
		Hooks: hooks,
		Mode:  mode,
	}
}

// Exec executes one decoded instruction (spec.md §4.3's single step
// function). It recovers a *Fault raised by any invariant violation and
// returns it as a plain error, so callers choose their own abort policy
// instead of this package calling os.Exit itself.
func (c *Cpu) Exec(in *decode.Instruction) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if f, ok := r.(*Fault); ok {
				err = f
				return
			}
			panic(r)
		}
	}()
	c.dispatch(in)
	c.Cycles++
	return nil
}
