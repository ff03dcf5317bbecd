package debugger

import (
	"errors"
	"fmt"
	"strings"

	"github.com/n-stott/x64emulator/cpu"
	"github.com/n-stott/x64emulator/decode"
)

// Decoder fetches and decodes the instruction at the CPU's current RIP.
// Instruction decoding lives outside the core (decode.Instruction values
// are produced by something external to cpu/), so the debugger only ever
// consumes whatever Decoder implementation the host program wires in.
type Decoder interface {
	Decode(c *cpu.Cpu) (*decode.Instruction, error)
}

// Debugger represents the debugger state and functionality
type Debugger struct {
	Cpu     *cpu.Cpu
	Decoder Decoder

	// Breakpoint management
	Breakpoints *BreakpointManager

	// Watchpoint management
	Watchpoints *WatchpointManager

	// Command history
	History *CommandHistory

	// Expression evaluator
	Evaluator *ExpressionEvaluator

	// Execution control
	Running           bool
	Halted            bool
	ExitErr           error
	StepMode          StepMode
	StepOverCallDepth int // CALL/RET nesting depth since SetStepOver, via the Hooks below

	// Symbol table (for label/symbol resolution)
	Symbols map[string]uint64

	// Source code mapping (address -> source line)
	SourceMap map[uint64]string

	// Last command (for repeat on empty input)
	LastCommand string

	// Output buffer
	Output strings.Builder
}

// StepMode represents different stepping modes
type StepMode int

const (
	StepNone   StepMode = iota // Not stepping
	StepSingle                 // Step one instruction
	StepOver                   // Step over CALL instructions
	StepOut                    // Step out of current function
)

// NewDebugger creates a new debugger instance. It wires itself in as c's
// Hooks, since step-over/step-out need the CALL/RET notifications to track
// call depth; a debugger session owns the CPU it is attached to.
func NewDebugger(c *cpu.Cpu, decoder Decoder) *Debugger {
	d := &Debugger{
		Cpu:         c,
		Decoder:     decoder,
		Breakpoints: NewBreakpointManager(),
		Watchpoints: NewWatchpointManager(),
		History:     NewCommandHistory(),
		Evaluator:   NewExpressionEvaluator(),
		Running:     false,
		StepMode:    StepNone,
		Symbols:     make(map[string]uint64),
		SourceMap:   make(map[uint64]string),
	}
	c.Hooks = d
	return d
}

// OnCall implements cpu.Hooks, tracking nesting depth for step-over.
func (d *Debugger) OnCall(target uint64) {
	d.StepOverCallDepth++
}

// OnReturn implements cpu.Hooks, tracking nesting depth for step-over.
func (d *Debugger) OnReturn(target uint64) {
	if d.StepOverCallDepth > 0 {
		d.StepOverCallDepth--
	}
}

// OnJump implements cpu.Hooks. Unconditional/conditional jumps don't change
// call depth, so step-over has nothing to track here.
func (d *Debugger) OnJump(target uint64) {}

// OnSyscall implements cpu.Hooks. Syscalls don't change call depth either.
func (d *Debugger) OnSyscall() {}

// LoadSymbols loads the symbol table for label resolution
func (d *Debugger) LoadSymbols(symbols map[string]uint64) {
	d.Symbols = symbols
}

// LoadSourceMap loads the source code mapping
func (d *Debugger) LoadSourceMap(sourceMap map[uint64]string) {
	d.SourceMap = sourceMap
}

// ResolveAddress resolves a label to an address, or parses a numeric address
func (d *Debugger) ResolveAddress(addrStr string) (uint64, error) {
	// Try to resolve as symbol first
	if addr, exists := d.Symbols[addrStr]; exists {
		return addr, nil
	}

	// Try to parse as numeric address
	var addr uint64
	if strings.HasPrefix(addrStr, "0x") || strings.HasPrefix(addrStr, "0X") {
		_, err := fmt.Sscanf(addrStr, "0x%x", &addr)
		if err != nil {
			return 0, fmt.Errorf("invalid address: %s", addrStr)
		}
	} else {
		_, err := fmt.Sscanf(addrStr, "%d", &addr)
		if err != nil {
			return 0, fmt.Errorf("invalid address: %s", addrStr)
		}
	}

	return addr, nil
}

// ExecuteCommand processes and executes a debugger command
func (d *Debugger) ExecuteCommand(cmdLine string) error {
	// Trim whitespace
	cmdLine = strings.TrimSpace(cmdLine)

	// Empty command repeats last command (for step, next, etc.)
	if cmdLine == "" {
		cmdLine = d.LastCommand
	}

	// Don't store empty commands
	if cmdLine != "" {
		d.History.Add(cmdLine)
		d.LastCommand = cmdLine
	}

	// Parse command
	parts := strings.Fields(cmdLine)
	if len(parts) == 0 {
		return nil
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	// Execute command
	return d.handleCommand(cmd, args)
}

// handleCommand dispatches commands to appropriate handlers
func (d *Debugger) handleCommand(cmd string, args []string) error {
	switch cmd {
	// Execution control
	case "run", "r":
		return d.cmdRun(args)
	case "continue", "c":
		return d.cmdContinue(args)
	case "step", "s", "si":
		return d.cmdStep(args)
	case "next", "n":
		return d.cmdNext(args)
	case "finish", "fin":
		return d.cmdFinish(args)

	// Breakpoints
	case "break", "b":
		return d.cmdBreak(args)
	case "tbreak", "tb":
		return d.cmdTBreak(args)
	case "delete", "d":
		return d.cmdDelete(args)
	case "enable":
		return d.cmdEnable(args)
	case "disable":
		return d.cmdDisable(args)

	// Watchpoints
	case "watch", "w":
		return d.cmdWatch(args)
	case "rwatch":
		return d.cmdRWatch(args)
	case "awatch":
		return d.cmdAWatch(args)

	// Inspection
	case "print", "p":
		return d.cmdPrint(args)
	case "x":
		return d.cmdExamine(args)
	case "info", "i":
		return d.cmdInfo(args)
	case "backtrace", "bt", "where":
		return d.cmdBacktrace(args)
	case "list", "l":
		return d.cmdList(args)

	// State modification
	case "set":
		return d.cmdSet(args)

	// Program control
	case "load":
		return d.cmdLoad(args)
	case "reset":
		return d.cmdReset(args)

	// Help
	case "help", "h", "?":
		return d.cmdHelp(args)

	default:
		return fmt.Errorf("unknown command: %s (type 'help' for available commands)", cmd)
	}
}

// ShouldBreak checks if execution should pause at the current RIP
func (d *Debugger) ShouldBreak() (bool, string) {
	rip := d.Cpu.Regs.RIP()

	// Check step mode
	switch d.StepMode {
	case StepSingle:
		d.StepMode = StepNone
		return true, "single step"

	case StepOver:
		// Continue until CALL/RET nesting unwinds back to the starting depth
		if d.StepOverCallDepth == 0 {
			d.StepMode = StepNone
			return true, "step over complete"
		}

	case StepOut:
		// This would require call stack tracking
		// For now, simplified implementation
	}

	// Check breakpoints
	if bp := d.Breakpoints.GetBreakpoint(rip); bp != nil {
		if !bp.Enabled {
			return false, ""
		}

		// Evaluate condition if present
		if bp.Condition != "" {
			result, err := d.Evaluator.Evaluate(bp.Condition, d.Cpu, d.Symbols)
			if err != nil {
				return true, fmt.Sprintf("breakpoint %d (condition error: %v)", bp.ID, err)
			}
			if !result {
				return false, ""
			}
		}

		// Increment hit count
		bp.HitCount++

		// Check if temporary breakpoint
		if bp.Temporary {
			_ = d.Breakpoints.DeleteBreakpoint(bp.ID) // Ignore error on cleanup
		}

		return true, fmt.Sprintf("breakpoint %d", bp.ID)
	}

	// Check watchpoints
	if wp, changed := d.Watchpoints.CheckWatchpoints(d.Cpu); wp != nil && changed {
		return true, fmt.Sprintf("watchpoint %d: %s", wp.ID, wp.Expression)
	}

	return false, ""
}

// Step decodes and executes a single instruction at the CPU's current RIP.
// A HLT fault stops execution without being reported as an error, mirroring
// how a real process exits on HLT rather than faulting the debugger session.
func (d *Debugger) Step() error {
	in, err := d.Decoder.Decode(d.Cpu)
	if err != nil {
		return fmt.Errorf("decode at %#016x: %w", d.Cpu.Regs.RIP(), err)
	}

	if err := d.Cpu.Exec(in); err != nil {
		var f *cpu.Fault
		if errors.As(err, &f) && f.Mnemonic == decode.HLT {
			d.Halted = true
			return nil
		}
		return err
	}

	return nil
}

// GetOutput returns and clears the output buffer
func (d *Debugger) GetOutput() string {
	output := d.Output.String()
	d.Output.Reset()
	return output
}

// Printf writes formatted output to the output buffer
func (d *Debugger) Printf(format string, args ...interface{}) {
	d.Output.WriteString(fmt.Sprintf(format, args...))
}

// Println writes a line to the output buffer
func (d *Debugger) Println(args ...interface{}) {
	d.Output.WriteString(fmt.Sprintln(args...))
}

// SetStepOver configures the debugger to step over CALL instructions.
// Depth starts at 0; OnCall/OnReturn above track nesting as execution
// proceeds, and ShouldBreak stops once depth unwinds back to 0 — which
// also covers the common case of stepping over a non-CALL instruction,
// since depth never leaves 0 and the very next ShouldBreak check stops it.
func (d *Debugger) SetStepOver() {
	d.StepOverCallDepth = 0
	d.StepMode = StepOver
	d.Running = true
}

// SetStepOut configures the debugger to step out of the current function.
// This should be called while holding the appropriate locks in the calling code.
func (d *Debugger) SetStepOut() {
	d.StepMode = StepOut
	d.Running = true
}
