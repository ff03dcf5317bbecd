package service

import "github.com/n-stott/x64emulator/debugger"

// RegisterState represents a snapshot of CPU registers
type RegisterState struct {
	Registers [16]uint64 // indexed by cpu.RAX..cpu.R15
	RIP       uint64
	Flags     FlagsState
	Cycles    uint64
}

// FlagsState represents the arithmetic status flags for serialization
type FlagsState struct {
	CF bool
	PF bool
	ZF bool
	SF bool
	OF bool
	DF bool
}

// BreakpointInfo represents a breakpoint for UI display
type BreakpointInfo struct {
	Address   uint64 `json:"address"`
	Enabled   bool   `json:"enabled"`
	Condition string `json:"condition"` // Expression that must evaluate to true
}

// WatchpointInfo represents a watchpoint for UI display
type WatchpointInfo struct {
	ID      int    `json:"id"`
	Address uint64 `json:"address"`
	Type    string `json:"type"` // "read", "write", "readwrite"
	Enabled bool   `json:"enabled"`
}

// MemoryRegion represents a contiguous memory region
type MemoryRegion struct {
	Address uint64
	Data    []byte
	Size    uint64
}

// ExecutionState represents the current state of execution
type ExecutionState string

const (
	StateRunning    ExecutionState = "running"
	StateHalted     ExecutionState = "halted"
	StateBreakpoint ExecutionState = "breakpoint"
	StateError      ExecutionState = "error"
)

// DebuggerStateToExecution derives the session's ExecutionState from a
// Debugger's Running/Halted/ExitErr fields, the x64 equivalent of the
// teacher's single vm.ExecutionState enum (cpu.Cpu carries no such field
// of its own, see DESIGN.md's debugger/ entry).
func DebuggerStateToExecution(dbg *debugger.Debugger) ExecutionState {
	switch {
	case dbg.ExitErr != nil:
		return StateError
	case dbg.Halted:
		return StateHalted
	case dbg.Running:
		return StateRunning
	default:
		return StateBreakpoint
	}
}

// DisassemblyLine represents a single decoded instruction for display.
// Unlike ARM's fixed 4-byte opcode word, x86-64 instructions are variable
// length and this core never decodes raw bytes itself (spec.md §1), so
// the line carries the mnemonic text a caller's decoder already produced
// rather than an opcode value.
type DisassemblyLine struct {
	Address  uint64 `json:"address"`
	Mnemonic string `json:"mnemonic"`
	Symbol   string `json:"symbol"` // Symbol at this address, if any
}

// StackEntry represents a single stack location
type StackEntry struct {
	Address uint64 `json:"address"`
	Value   uint64 `json:"value"`
	Symbol  string `json:"symbol"` // If value points to a symbol
}
