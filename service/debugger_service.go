package service

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/n-stott/x64emulator/cpu"
	"github.com/n-stott/x64emulator/debugger"
	"github.com/n-stott/x64emulator/decode"
	"github.com/n-stott/x64emulator/mmu"
	"github.com/n-stott/x64emulator/trace"
)

const (
	// Validator limits for API safety
	maxDisassemblyCount = 1000   // Maximum number of instructions to disassemble
	maxStackCount       = 1000   // Maximum number of stack entries to return
	maxStackOffset      = 100000 // Maximum stack offset to prevent wraparound attacks

	codeSegmentStart = 0x0
	codeSegmentSize  = 0x100000
	dataSegmentStart = codeSegmentStart + codeSegmentSize
)

var serviceLog *log.Logger

func init() {
	// Check if debug logging is enabled via environment variable
	if os.Getenv("X64EMULATOR_DEBUG") != "" {
		// Create debug log file.
		// Note: File handle intentionally not closed - kept open for process lifetime.
		// This is acceptable for debug logging; the OS cleans up on process exit.
		logPath := filepath.Join(os.TempDir(), "x64emulator-service-debug.log")
		f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600) // #nosec G304 -- fixed filename in temp dir
		if err != nil {
			serviceLog = log.New(os.Stderr, "SERVICE: ", log.Ltime|log.Lmicroseconds|log.Lshortfile)
		} else {
			serviceLog = log.New(f, "SERVICE: ", log.Ltime|log.Lmicroseconds|log.Lshortfile)
		}
	} else {
		// Disable logging by default
		serviceLog = log.New(io.Discard, "", 0)
	}
}

// instructionDecoder implements debugger.Decoder over a pre-decoded program:
// a JSON-encoded array of decode.Instruction values keyed by their own
// Address field, the same shape cmd/x64core's programDecoder consumes.
// Decoding raw bytes is out of scope for this core (spec.md §1), so a
// loaded "program" is always already-decoded instructions.
type instructionDecoder struct {
	byAddress map[uint64]*decode.Instruction
}

func newInstructionDecoder(instructions []decode.Instruction) *instructionDecoder {
	d := &instructionDecoder{byAddress: make(map[uint64]*decode.Instruction, len(instructions))}
	for i := range instructions {
		in := &instructions[i]
		d.byAddress[in.Address] = in
	}
	return d
}

func (d *instructionDecoder) Decode(c *cpu.Cpu) (*decode.Instruction, error) {
	rip := c.Regs.RIP()
	in, ok := d.byAddress[rip]
	if !ok {
		return nil, fmt.Errorf("no instruction at RIP=%#016x", rip)
	}
	return in, nil
}

// DebuggerService provides a thread-safe interface to debugger functionality.
// This service is shared by the TUI, GUI, and HTTP/WebSocket API front ends.
//
// Lock Ordering:
// The service uses its own sync.RWMutex (s.mu) to protect all field access,
// including access to the debugger. The service always acquires s.mu before
// calling any Debugger method; do not acquire locks in the reverse order.
type DebuggerService struct {
	mu        sync.RWMutex
	cpu       *cpu.Cpu
	decoder   *instructionDecoder
	debugger  *debugger.Debugger
	symbols   map[string]uint64
	sourceMap map[uint64]DisassemblyLine // address -> decoded line, built at LoadProgram time

	instructions []decode.Instruction
	entryPoint   uint64
	stackTop     uint64

	trace      *trace.ExecutionTrace
	statistics *trace.Statistics
	coverage   *trace.Coverage
}

// NewDebuggerService creates a new debugger service with no program loaded.
func NewDebuggerService() *DebuggerService {
	return &DebuggerService{
		symbols:   make(map[string]uint64),
		sourceMap: make(map[uint64]DisassemblyLine),
	}
}

// GetCpu returns the underlying dispatcher (for testing).
func (s *DebuggerService) GetCpu() *cpu.Cpu {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cpu
}

// LoadProgram loads a pre-decoded instruction stream and initializes a
// fresh dispatcher/MMU pair for it. stackSize sizes the single read-write
// data/stack segment placed directly after the read-execute code segment.
func (s *DebuggerService) LoadProgram(instructions []decode.Instruction, entryPoint uint64, symbols map[string]uint64, stackSize uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	dec := newInstructionDecoder(instructions)

	m := mmu.NewFlat()
	m.AddSegment("code", codeSegmentStart, codeSegmentSize, mmu.PermRead|mmu.PermExecute)
	m.AddSegment("data", dataSegmentStart, stackSize, mmu.PermRead|mmu.PermWrite)

	c := cpu.New(m, nil, cpu.ModeRelease)
	c.Regs.SetRIP(entryPoint)
	stackTop := dataSegmentStart + stackSize
	c.Regs.WriteGPR64(cpu.RSP, stackTop)

	s.cpu = c
	s.decoder = dec
	s.debugger = debugger.NewDebugger(c, dec)
	s.instructions = instructions
	s.entryPoint = entryPoint
	s.stackTop = stackTop

	s.symbols = symbols
	if s.symbols == nil {
		s.symbols = make(map[string]uint64)
	}

	s.sourceMap = make(map[uint64]DisassemblyLine, len(instructions))
	for i := range instructions {
		in := &instructions[i]
		s.sourceMap[in.Address] = DisassemblyLine{
			Address:  in.Address,
			Mnemonic: fmt.Sprintf("%d", in.Mnemonic), // caller's own decoder owns mnemonic text, see DisassemblyLine
			Symbol:   s.symbolForAddressUnsafe(in.Address),
		}
	}

	s.debugger.LoadSymbols(s.symbols)
	s.debugger.Running = false
	s.debugger.Halted = false
	s.debugger.ExitErr = nil

	return nil
}

// GetRegisterState returns current register state (thread-safe).
func (s *DebuggerService) GetRegisterState() RegisterState {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var regs [16]uint64
	for i := 0; i < 16; i++ {
		regs[i] = s.cpu.Regs.ReadGPR(i)
	}

	return RegisterState{
		Registers: regs,
		RIP:       s.cpu.Regs.RIP(),
		Flags: FlagsState{
			CF: s.cpu.Flags.CF,
			PF: s.cpu.Flags.PF,
			ZF: s.cpu.Flags.ZF,
			SF: s.cpu.Flags.SF,
			OF: s.cpu.Flags.OF,
			DF: s.cpu.Flags.DF,
		},
		Cycles: s.cpu.Cycles,
	}
}

// Step executes a single instruction.
func (s *DebuggerService) Step() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.debugger.Step()
}

// Continue marks the session as running; RunUntilHalt drives it forward.
func (s *DebuggerService) Continue() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debugger.Running = true
	s.debugger.StepMode = debugger.StepNone
}

// Pause pauses execution.
func (s *DebuggerService) Pause() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debugger.Running = false
}

// ResetToEntryPoint resets the dispatcher to the program's entry point and
// stack top without clearing the loaded instruction stream or breakpoints.
func (s *DebuggerService) ResetToEntryPoint() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cpu == nil {
		return fmt.Errorf("no program loaded")
	}

	s.cpu.Regs.SetRIP(s.entryPoint)
	s.cpu.Regs.WriteGPR64(cpu.RSP, s.stackTop)
	s.cpu.Cycles = 0
	s.debugger.Running = false
	s.debugger.Halted = false
	s.debugger.ExitErr = nil

	return nil
}

// GetExecutionState returns the current execution state.
func (s *DebuggerService) GetExecutionState() ExecutionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return DebuggerStateToExecution(s.debugger)
}

// AddBreakpoint adds a breakpoint at the specified address.
func (s *DebuggerService) AddBreakpoint(address uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate that the address corresponds to a decoded instruction
	if _, exists := s.sourceMap[address]; !exists {
		return fmt.Errorf("invalid breakpoint address: %#016x does not correspond to a decoded instruction", address)
	}

	s.debugger.Breakpoints.AddBreakpoint(address, false, "")
	return nil
}

// RemoveBreakpoint removes a breakpoint.
func (s *DebuggerService) RemoveBreakpoint(address uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.debugger.Breakpoints.DeleteBreakpointAt(address)
}

// GetBreakpoints returns all breakpoints.
func (s *DebuggerService) GetBreakpoints() []BreakpointInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bps := s.debugger.Breakpoints.GetAllBreakpoints()
	result := make([]BreakpointInfo, len(bps))
	for i, bp := range bps {
		result[i] = BreakpointInfo{
			Address:   bp.Address,
			Enabled:   bp.Enabled,
			Condition: bp.Condition,
		}
	}
	return result
}

// ClearAllBreakpoints removes all breakpoints.
func (s *DebuggerService) ClearAllBreakpoints() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debugger.Breakpoints.Clear()
}

// GetMemory returns memory contents for a region. Unreadable bytes (e.g.
// past a segment boundary) are returned as 0 rather than failing the whole
// request, so the memory view can still show partial results.
func (s *DebuggerService) GetMemory(address uint64, size uint64) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data := make([]byte, size)
	for i := uint64(0); i < size; i++ {
		b, err := s.cpu.MMU.Read8(address + i)
		if err != nil {
			data[i] = 0
			continue
		}
		data[i] = b
	}
	return data
}

// GetSymbols returns all symbols.
func (s *DebuggerService) GetSymbols() map[string]uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()

	symbols := make(map[string]uint64, len(s.symbols))
	for k, v := range s.symbols {
		symbols[k] = v
	}
	return symbols
}

// GetSymbolForAddress resolves an address to a symbol name.
func (s *DebuggerService) GetSymbolForAddress(addr uint64) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.symbolForAddressUnsafe(addr)
}

func (s *DebuggerService) symbolForAddressUnsafe(addr uint64) string {
	for name, symbolAddr := range s.symbols {
		if symbolAddr == addr {
			return name
		}
	}
	return ""
}

// RunUntilHalt runs the program until breakpoint, fault, or HLT.
// If Running is already false (e.g. Pause() raced ahead of the caller),
// returns immediately.
func (s *DebuggerService) RunUntilHalt() error {
	serviceLog.Println("RunUntilHalt() called")
	s.mu.Lock()
	if !s.debugger.Running {
		serviceLog.Println("RunUntilHalt() - already paused, exiting early")
		s.mu.Unlock()
		return nil
	}
	s.mu.Unlock()

	for {
		s.mu.Lock()
		if !s.debugger.Running {
			s.mu.Unlock()
			break
		}

		if shouldBreak, _ := s.debugger.ShouldBreak(); shouldBreak {
			serviceLog.Println("breakpoint hit")
			s.debugger.Running = false
			s.mu.Unlock()
			break
		}

		err := s.debugger.Step()
		if err != nil {
			serviceLog.Printf("step error: %v", err)
			s.debugger.Running = false
			s.debugger.ExitErr = err
			s.mu.Unlock()
			return err
		}

		if s.debugger.Halted {
			serviceLog.Println("halted")
			s.debugger.Running = false
			s.mu.Unlock()
			break
		}

		s.mu.Unlock()
	}

	serviceLog.Println("RunUntilHalt() completed")
	return nil
}

// IsRunning returns whether execution is in progress.
func (s *DebuggerService) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.debugger.Running
}

// SetRunning sets the running state synchronously, used by async execution
// methods to set state before launching goroutines.
func (s *DebuggerService) SetRunning(running bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.debugger.Running = running
}

// GetOutput returns and clears the debugger's output buffer (disassembly
// listings, command results — this core has no guest I/O concept, see
// DESIGN.md's debugger/ entry on dropping OutputWriter wiring).
func (s *DebuggerService) GetOutput() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.debugger == nil {
		return ""
	}
	return s.debugger.GetOutput()
}

// GetDisassembly returns decoded instruction lines starting at address.
// count must be positive and <= maxDisassemblyCount; addresses with no
// decoded instruction are skipped rather than failing the whole request.
func (s *DebuggerService) GetDisassembly(startAddr uint64, count int) []DisassemblyLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if count <= 0 || count > maxDisassemblyCount {
		return []DisassemblyLine{}
	}

	lines := make([]DisassemblyLine, 0, count)
	for i := range s.instructions {
		in := &s.instructions[i]
		if in.Address < startAddr {
			continue
		}
		if line, ok := s.sourceMap[in.Address]; ok {
			lines = append(lines, line)
		}
		if len(lines) >= count {
			break
		}
	}
	return lines
}

// GetStack returns stack contents from RSP+offset.
//
// Parameters:
//   - offset: stack offset in 64-bit words (multiplied by 8 for byte
//     offset). Must be in range [-maxStackOffset, maxStackOffset] to
//     prevent wraparound attacks.
//   - count: number of stack entries to read. Must be positive and
//     <= maxStackCount.
func (s *DebuggerService) GetStack(offset int, count int) []StackEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if count <= 0 || count > maxStackCount {
		return []StackEntry{}
	}
	if offset < -maxStackOffset || offset > maxStackOffset {
		return []StackEntry{}
	}
	if s.cpu == nil {
		return []StackEntry{}
	}

	entries := make([]StackEntry, 0, count)
	rsp := s.cpu.Regs.ReadGPR(cpu.RSP)
	startAddr := rsp + uint64(offset*8)

	for i := 0; i < count; i++ {
		addr := startAddr + uint64(i*8)

		value, err := s.cpu.MMU.Read64(addr)
		if err != nil {
			break
		}

		entries = append(entries, StackEntry{
			Address: addr,
			Value:   value,
			Symbol:  s.symbolForAddressUnsafe(value),
		})
	}

	return entries
}

// StepOver executes one instruction, stepping over CALL instructions.
func (s *DebuggerService) StepOver() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.debugger == nil {
		return fmt.Errorf("no program loaded")
	}

	s.debugger.SetStepOver()

	for s.debugger.Running {
		if s.debugger.StepMode != debugger.StepSingle {
			if shouldBreak, _ := s.debugger.ShouldBreak(); shouldBreak {
				s.debugger.Running = false
				break
			}
		}

		if err := s.debugger.Step(); err != nil {
			s.debugger.Running = false
			return err
		}

		if s.debugger.Halted {
			s.debugger.Running = false
			break
		}

		if s.debugger.StepMode == debugger.StepSingle {
			if shouldBreak, _ := s.debugger.ShouldBreak(); shouldBreak {
				s.debugger.Running = false
				break
			}
		}
	}

	return nil
}

// StepOut executes until the current function returns.
func (s *DebuggerService) StepOut() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.debugger == nil {
		return fmt.Errorf("no program loaded")
	}

	s.debugger.SetStepOut()
	return nil
}

// AddWatchpoint adds a watchpoint at the specified address.
func (s *DebuggerService) AddWatchpoint(address uint64, watchType string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.debugger == nil {
		return fmt.Errorf("no program loaded")
	}

	var wpType debugger.WatchType
	switch watchType {
	case "read":
		wpType = debugger.WatchRead
	case "write":
		wpType = debugger.WatchWrite
	case "readwrite":
		wpType = debugger.WatchReadWrite
	default:
		return fmt.Errorf("invalid watchpoint type: %s", watchType)
	}

	expression := fmt.Sprintf("[%#016x]", address)
	s.debugger.Watchpoints.AddWatchpoint(wpType, expression, address, false, 0)

	return nil
}

// RemoveWatchpoint removes a watchpoint by ID.
func (s *DebuggerService) RemoveWatchpoint(id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.debugger == nil {
		return fmt.Errorf("no program loaded")
	}
	return s.debugger.Watchpoints.DeleteWatchpoint(id)
}

// GetWatchpoints returns all watchpoints.
func (s *DebuggerService) GetWatchpoints() []WatchpointInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.debugger == nil {
		return []WatchpointInfo{}
	}

	wps := s.debugger.Watchpoints.GetAllWatchpoints()
	result := make([]WatchpointInfo, len(wps))
	for i, wp := range wps {
		var wpType string
		switch wp.Type {
		case debugger.WatchRead:
			wpType = "read"
		case debugger.WatchWrite:
			wpType = "write"
		case debugger.WatchReadWrite:
			wpType = "readwrite"
		}

		result[i] = WatchpointInfo{
			ID:      wp.ID,
			Address: wp.Address,
			Type:    wpType,
			Enabled: wp.Enabled,
		}
	}
	return result
}

// ExecuteCommand executes a debugger command and returns its output.
func (s *DebuggerService) ExecuteCommand(command string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.debugger == nil {
		return "", fmt.Errorf("no program loaded")
	}

	err := s.debugger.ExecuteCommand(command)
	output := s.debugger.GetOutput()
	return output, err
}

// EvaluateExpression evaluates an expression and returns the result.
func (s *DebuggerService) EvaluateExpression(expr string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.debugger == nil || s.debugger.Evaluator == nil {
		return 0, fmt.Errorf("no program loaded")
	}

	return s.debugger.Evaluator.EvaluateExpression(expr, s.cpu, s.symbols)
}

// EnableExecutionTrace enables execution tracing.
func (s *DebuggerService) EnableExecutionTrace(w io.Writer) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.trace == nil {
		s.trace = trace.NewExecutionTrace(w)
	}
	s.trace.Start()
}

// GetExecutionTraceData returns execution trace entries.
func (s *DebuggerService) GetExecutionTraceData() []trace.Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.trace == nil {
		return []trace.Entry{}
	}
	return s.trace.GetEntries()
}

// ClearExecutionTrace clears execution trace entries.
func (s *DebuggerService) ClearExecutionTrace() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.trace != nil {
		s.trace.Clear()
	}
}

// EnableStatistics enables performance statistics collection.
func (s *DebuggerService) EnableStatistics() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.statistics == nil {
		s.statistics = trace.NewStatistics()
	}
	s.statistics.Start()
}

// GetStatistics returns performance statistics, finalized.
func (s *DebuggerService) GetStatistics() (*trace.Statistics, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.statistics == nil {
		return nil, fmt.Errorf("statistics not enabled")
	}

	s.statistics.Finalize()
	return s.statistics, nil
}
