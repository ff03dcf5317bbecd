package api

import (
	"time"

	"github.com/n-stott/x64emulator/decode"
	"github.com/n-stott/x64emulator/service"
)

// SessionCreateRequest represents a request to create a new session
type SessionCreateRequest struct {
	StackSize uint64 `json:"stackSize,omitempty"` // Stack size in bytes (accepted but not read by the server; LoadProgramRequest.StackSize sizes the stack)
	FSRoot    string `json:"fsRoot,omitempty"`     // Filesystem root directory (accepted but not read by the server)
}

// SessionCreateResponse represents the response from creating a session
type SessionCreateResponse struct {
	SessionID string    `json:"sessionId"`
	CreatedAt time.Time `json:"createdAt"`
}

// SessionStatusResponse represents the current status of a session
type SessionStatusResponse struct {
	SessionID string `json:"sessionId"`
	State     string `json:"state"`
	RIP       uint64 `json:"rip"`
	Cycles    uint64 `json:"cycles"`
	Error     string `json:"error,omitempty"`
}

// LoadProgramRequest represents a request to load a program: a JSON array
// of already-decoded instructions (raw-byte decoding is out of scope for
// this core, see spec.md §1), an entry address, and a stack size.
type LoadProgramRequest struct {
	Instructions []decode.Instruction `json:"instructions"`
	EntryPoint   uint64               `json:"entryPoint"`
	StackSize    uint64               `json:"stackSize,omitempty"`
	Symbols      map[string]uint64    `json:"symbols,omitempty"`
}

// LoadProgramResponse represents the response from loading a program
type LoadProgramResponse struct {
	Success bool     `json:"success"`
	Errors  []string `json:"errors,omitempty"`
}

// RegistersResponse represents the current register state
type RegistersResponse struct {
	Registers [16]uint64 `json:"registers"`
	RIP       uint64     `json:"rip"`
	Flags     FlagsInfo  `json:"flags"`
	Cycles    uint64     `json:"cycles"`
}

// FlagsInfo represents the arithmetic status flags
type FlagsInfo struct {
	CF bool `json:"cf"`
	PF bool `json:"pf"`
	ZF bool `json:"zf"`
	SF bool `json:"sf"`
	OF bool `json:"of"`
	DF bool `json:"df"`
}

// MemoryRequest represents a request for memory data
type MemoryRequest struct {
	Address uint64 `json:"address"`
	Length  uint64 `json:"length"`
}

// MemoryResponse represents memory data
type MemoryResponse struct {
	Address uint64 `json:"address"`
	Data    []byte `json:"data"`
	Length  uint64 `json:"length"`
}

// DisassemblyRequest represents a request for disassembly
type DisassemblyRequest struct {
	Address uint64 `json:"address"`
	Count   int    `json:"count"`
}

// DisassemblyResponse represents disassembled instructions
type DisassemblyResponse struct {
	Instructions []InstructionInfo `json:"instructions"`
}

// InstructionInfo represents a decoded instruction for display
type InstructionInfo struct {
	Address  uint64 `json:"address"`
	Mnemonic string `json:"mnemonic"`
	Symbol   string `json:"symbol,omitempty"`
}

// BreakpointRequest represents a request to add/remove a breakpoint
type BreakpointRequest struct {
	Address uint64 `json:"address"`
}

// BreakpointsResponse represents a list of breakpoints
type BreakpointsResponse struct {
	Breakpoints []uint64 `json:"breakpoints"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// SuccessResponse represents a simple success response
type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// Event represents a WebSocket event
type Event struct {
	Type      string      `json:"type"`
	SessionID string      `json:"sessionId"`
	Timestamp time.Time   `json:"timestamp"`
	Data      interface{} `json:"data"`
}

// StateEvent represents a state change event
type StateEvent struct {
	State     string     `json:"state"`
	RIP       uint64     `json:"rip"`
	Registers [16]uint64 `json:"registers"`
	Flags     FlagsInfo  `json:"flags"`
	Cycles    uint64     `json:"cycles"`
}

// OutputEvent represents captured console output (debugger command output
// only; this core has no guest stdout/stderr, see DESIGN.md's debugger/
// entry on dropping OutputWriter wiring).
type OutputEvent struct {
	Stream  string `json:"stream"`
	Content string `json:"content"`
}

// ExecutionEvent represents execution events like breakpoints
type ExecutionEvent struct {
	Event   string `json:"event"` // "breakpoint_hit", "error", "halted"
	Address uint64 `json:"address,omitempty"`
	Symbol  string `json:"symbol,omitempty"`
	Message string `json:"message,omitempty"`
}

// ToRegisterResponse converts service.RegisterState to an API response
func ToRegisterResponse(regs *service.RegisterState) *RegistersResponse {
	return &RegistersResponse{
		Registers: regs.Registers,
		RIP:       regs.RIP,
		Flags: FlagsInfo{
			CF: regs.Flags.CF,
			PF: regs.Flags.PF,
			ZF: regs.Flags.ZF,
			SF: regs.Flags.SF,
			OF: regs.Flags.OF,
			DF: regs.Flags.DF,
		},
		Cycles: regs.Cycles,
	}
}

// ToInstructionInfo converts service.DisassemblyLine to an API response
func ToInstructionInfo(line *service.DisassemblyLine) InstructionInfo {
	return InstructionInfo{
		Address:  line.Address,
		Mnemonic: line.Mnemonic,
		Symbol:   line.Symbol,
	}
}

// StackRequest represents a request for stack contents
type StackRequest struct {
	Offset int `json:"offset"`
	Count  int `json:"count"`
}

// StackResponse represents stack contents
type StackResponse struct {
	Entries []service.StackEntry `json:"entries"`
}

// WatchpointRequest represents a request to add a watchpoint
type WatchpointRequest struct {
	Address uint64 `json:"address"`
	Type    string `json:"type,omitempty"` // "read", "write", "readwrite" (default)
}

// WatchpointResponse represents a newly created watchpoint
type WatchpointResponse struct {
	ID      int    `json:"id"`
	Address uint64 `json:"address"`
	Type    string `json:"type"`
}

// WatchpointsResponse represents a list of watchpoints
type WatchpointsResponse struct {
	Watchpoints []service.WatchpointInfo `json:"watchpoints"`
}

// EvaluateRequest represents a request to evaluate an expression
type EvaluateRequest struct {
	Expression string `json:"expression"`
}

// EvaluateResponse represents the result of evaluating an expression
type EvaluateResponse struct {
	Value uint64 `json:"value"`
}

// CommandRequest represents a debugger command to execute
type CommandRequest struct {
	Command string `json:"command"`
}

// CommandResponse represents the output of a debugger command
type CommandResponse struct {
	Output string `json:"output"`
}

// ConsoleResponse represents captured debugger output
type ConsoleResponse struct {
	Output string `json:"output"`
}

// TraceEntryInfo represents one recorded instruction in an execution trace
type TraceEntryInfo struct {
	Sequence        uint64            `json:"sequence"`
	Address         uint64            `json:"address"`
	Mnemonic        string            `json:"mnemonic"`
	RegisterChanges map[string]uint64 `json:"registerChanges,omitempty"`
	Flags           FlagsInfo         `json:"flags"`
	DurationNs      int64             `json:"durationNs"`
}

// TraceDataResponse represents a batch of execution trace entries
type TraceDataResponse struct {
	Entries []TraceEntryInfo `json:"entries"`
	Count   int              `json:"count"`
}

// StatisticsResponse represents collected performance statistics
type StatisticsResponse struct {
	TotalInstructions  uint64            `json:"totalInstructions"`
	TotalCycles        uint64            `json:"totalCycles"`
	ExecutionTimeMs    int64             `json:"executionTimeMs"`
	InstructionsPerSec float64           `json:"instructionsPerSec"`
	InstructionCounts  map[string]uint64 `json:"instructionCounts"`
	BranchCount        uint64            `json:"branchCount"`
	BranchTakenCount   uint64            `json:"branchTakenCount"`
	BranchMissedCount  uint64            `json:"branchMissedCount"`
	MemoryReads        uint64            `json:"memoryReads"`
	MemoryWrites       uint64            `json:"memoryWrites"`
	BytesRead          uint64            `json:"bytesRead"`
	BytesWritten       uint64            `json:"bytesWritten"`
}
