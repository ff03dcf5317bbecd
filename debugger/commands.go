package debugger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/n-stott/x64emulator/cpu"
	"github.com/n-stott/x64emulator/flags"
)

// Command handler implementations

// cmdRun starts or restarts program execution
func (d *Debugger) cmdRun(args []string) error {
	d.Running = true
	d.Halted = false
	d.ExitErr = nil
	d.StepMode = StepNone

	d.Println("Starting program execution...")
	return nil
}

// cmdContinue continues execution from current point
func (d *Debugger) cmdContinue(args []string) error {
	if d.Halted {
		return fmt.Errorf("program is not running")
	}

	d.Running = true
	d.StepMode = StepNone

	d.Println("Continuing...")
	return nil
}

// cmdStep executes a single instruction
func (d *Debugger) cmdStep(args []string) error {
	d.StepMode = StepSingle
	d.Running = true
	return nil
}

// cmdNext steps over CALL instructions (step to next instruction at same level)
func (d *Debugger) cmdNext(args []string) error {
	d.SetStepOver()
	return nil
}

// cmdFinish steps out of current function
func (d *Debugger) cmdFinish(args []string) error {
	d.SetStepOut()
	return nil
}

// cmdBreak sets a breakpoint
func (d *Debugger) cmdBreak(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: break <address|label> [if <condition>]")
	}

	// Parse address/label
	address, err := d.ResolveAddress(args[0])
	if err != nil {
		return err
	}

	// Parse condition if present
	var condition string
	if len(args) > 1 && strings.ToLower(args[1]) == "if" {
		condition = strings.Join(args[2:], " ")
	}

	// Add breakpoint
	bp := d.Breakpoints.AddBreakpoint(address, false, condition)

	if condition != "" {
		d.Printf("Breakpoint %d at 0x%016X (condition: %s)\n", bp.ID, address, condition)
	} else {
		d.Printf("Breakpoint %d at 0x%016X\n", bp.ID, address)
	}

	return nil
}

// cmdTBreak sets a temporary breakpoint (auto-delete after hit)
func (d *Debugger) cmdTBreak(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: tbreak <address|label>")
	}

	address, err := d.ResolveAddress(args[0])
	if err != nil {
		return err
	}

	bp := d.Breakpoints.AddBreakpoint(address, true, "")
	d.Printf("Temporary breakpoint %d at 0x%016X\n", bp.ID, address)

	return nil
}

// cmdDelete deletes breakpoint(s)
func (d *Debugger) cmdDelete(args []string) error {
	if len(args) == 0 {
		// Delete all breakpoints
		d.Breakpoints.Clear()
		d.Println("All breakpoints deleted")
		return nil
	}

	// Delete specific breakpoint
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid breakpoint ID: %s", args[0])
	}

	if err := d.Breakpoints.DeleteBreakpoint(id); err != nil {
		return err
	}

	d.Printf("Breakpoint %d deleted\n", id)
	return nil
}

// cmdEnable enables breakpoint(s)
func (d *Debugger) cmdEnable(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: enable <breakpoint-id>")
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid breakpoint ID: %s", args[0])
	}

	if err := d.Breakpoints.EnableBreakpoint(id); err != nil {
		return err
	}

	d.Printf("Breakpoint %d enabled\n", id)
	return nil
}

// cmdDisable disables breakpoint(s)
func (d *Debugger) cmdDisable(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: disable <breakpoint-id>")
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid breakpoint ID: %s", args[0])
	}

	if err := d.Breakpoints.DisableBreakpoint(id); err != nil {
		return err
	}

	d.Printf("Breakpoint %d disabled\n", id)
	return nil
}

// cmdWatch sets a write watchpoint
func (d *Debugger) cmdWatch(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: watch <expression>")
	}

	expression := strings.Join(args, " ")

	// Parse expression to determine if register or memory
	isRegister, register, address, err := d.parseWatchExpression(expression)
	if err != nil {
		return err
	}

	wp := d.Watchpoints.AddWatchpoint(WatchWrite, expression, address, isRegister, register)

	// Initialize current value
	if err := d.Watchpoints.InitializeWatchpoint(wp.ID, d.Cpu); err != nil {
		d.Watchpoints.DeleteWatchpoint(wp.ID)
		return err
	}

	d.Printf("Watchpoint %d: %s\n", wp.ID, expression)
	return nil
}

// cmdRWatch sets a read watchpoint
func (d *Debugger) cmdRWatch(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: rwatch <expression>")
	}

	expression := strings.Join(args, " ")
	isRegister, register, address, err := d.parseWatchExpression(expression)
	if err != nil {
		return err
	}

	wp := d.Watchpoints.AddWatchpoint(WatchRead, expression, address, isRegister, register)

	if err := d.Watchpoints.InitializeWatchpoint(wp.ID, d.Cpu); err != nil {
		d.Watchpoints.DeleteWatchpoint(wp.ID)
		return err
	}

	d.Printf("Read watchpoint %d: %s\n", wp.ID, expression)
	return nil
}

// cmdAWatch sets a read/write watchpoint
func (d *Debugger) cmdAWatch(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: awatch <expression>")
	}

	expression := strings.Join(args, " ")
	isRegister, register, address, err := d.parseWatchExpression(expression)
	if err != nil {
		return err
	}

	wp := d.Watchpoints.AddWatchpoint(WatchReadWrite, expression, address, isRegister, register)

	if err := d.Watchpoints.InitializeWatchpoint(wp.ID, d.Cpu); err != nil {
		d.Watchpoints.DeleteWatchpoint(wp.ID)
		return err
	}

	d.Printf("Access watchpoint %d: %s\n", wp.ID, expression)
	return nil
}

// parseWatchExpression parses a watch expression (register or memory address)
func (d *Debugger) parseWatchExpression(expr string) (isRegister bool, register int, address uint64, err error) {
	expr = strings.ToLower(strings.TrimSpace(expr))

	// Check if it's a GPR name (rax, rbx, r8..r15, ...)
	if idx, ok := gprByName[expr]; ok {
		return true, idx, 0, nil
	}

	// Check if it's a memory address in brackets [0x1000] or [label]
	if strings.HasPrefix(expr, "[") && strings.HasSuffix(expr, "]") {
		addrStr := strings.TrimSuffix(strings.TrimPrefix(expr, "["), "]")
		addr, err := d.ResolveAddress(addrStr)
		if err != nil {
			return false, 0, 0, err
		}
		return false, 0, addr, nil
	}

	// Try to resolve as address or symbol
	addr, err := d.ResolveAddress(expr)
	if err != nil {
		return false, 0, 0, fmt.Errorf("invalid watch expression: %s", expr)
	}

	return false, 0, addr, nil
}

// cmdPrint evaluates and prints an expression
func (d *Debugger) cmdPrint(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: print <expression>")
	}

	expression := strings.Join(args, " ")
	result, err := d.Evaluator.EvaluateExpression(expression, d.Cpu, d.Symbols)
	if err != nil {
		return err
	}

	d.Printf("$%d = 0x%016X (%d)\n", d.Evaluator.GetValueNumber(), result, int64(result))
	return nil
}

// cmdExamine examines memory at an address
func (d *Debugger) cmdExamine(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: x[/nfu] <address>\n  n: count, f: format (x/d/u/o/t), u: unit size (b/h/w/g)")
	}

	// Parse format specifier (e.g., "x/8xg")
	count := 1
	format := 'x'
	unit := 'g'
	addrArg := args[0]

	if strings.HasPrefix(args[0], "/") {
		// Parse format
		formatStr := args[0][1:]
		if len(args) < 2 {
			return fmt.Errorf("missing address")
		}
		addrArg = args[1]

		// Parse count
		i := 0
		for i < len(formatStr) && formatStr[i] >= '0' && formatStr[i] <= '9' {
			i++
		}
		if i > 0 {
			if n, err := strconv.Atoi(formatStr[:i]); err == nil {
				count = n
			}
			formatStr = formatStr[i:]
		}

		// Parse format character
		if len(formatStr) > 0 {
			format = rune(formatStr[0])
			formatStr = formatStr[1:]
		}

		// Parse unit size
		if len(formatStr) > 0 {
			unit = rune(formatStr[0])
		}
	}

	// Resolve address
	address, err := d.ResolveAddress(addrArg)
	if err != nil {
		return err
	}

	// Read and display memory
	d.Printf("0x%016X:", address)
	for i := 0; i < count; i++ {
		var value uint64
		var readErr error

		switch unit {
		case 'b': // byte
			val, e := d.Cpu.MMU.Read8(address)
			value = uint64(val)
			readErr = e
			address++
		case 'h': // halfword
			val, e := d.Cpu.MMU.Read16(address)
			value = uint64(val)
			readErr = e
			address += 2
		case 'w': // word (32-bit)
			val, e := d.Cpu.MMU.Read32(address)
			value = uint64(val)
			readErr = e
			address += 4
		default: // 'g' - giant (64-bit)
			value, readErr = d.Cpu.MMU.Read64(address)
			address += 8
		}

		if readErr != nil {
			return readErr
		}

		// Format output
		switch format {
		case 'x': // hex
			d.Printf(" 0x%016X", value)
		case 'd': // signed decimal
			d.Printf(" %d", int64(value))
		case 'u': // unsigned decimal
			d.Printf(" %d", value)
		case 'o': // octal
			d.Printf(" %o", value)
		case 't': // binary
			d.Printf(" %b", value)
		default:
			d.Printf(" 0x%016X", value)
		}
	}
	d.Println()

	return nil
}

// cmdInfo displays information about program state
func (d *Debugger) cmdInfo(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: info <registers|breakpoints|watchpoints|stack>")
	}

	switch strings.ToLower(args[0]) {
	case "registers", "reg", "r":
		return d.showRegisters()
	case "breakpoints", "break", "b":
		return d.showBreakpoints()
	case "watchpoints", "watch", "w":
		return d.showWatchpoints()
	case "stack", "s":
		return d.showStack()
	default:
		return fmt.Errorf("unknown info command: %s", args[0])
	}
}

// gprDisplayOrder lists the GPRs in the order showRegisters prints them.
var gprDisplayOrder = []struct {
	name string
	idx  int
}{
	{"RAX", cpu.RAX}, {"RBX", cpu.RBX}, {"RCX", cpu.RCX}, {"RDX", cpu.RDX},
	{"RSI", cpu.RSI}, {"RDI", cpu.RDI}, {"RBP", cpu.RBP}, {"RSP", cpu.RSP},
	{"R8", cpu.R8}, {"R9", cpu.R9}, {"R10", cpu.R10}, {"R11", cpu.R11},
	{"R12", cpu.R12}, {"R13", cpu.R13}, {"R14", cpu.R14}, {"R15", cpu.R15},
}

// showRegisters displays all register values
func (d *Debugger) showRegisters() error {
	d.Println("Registers:")
	for _, r := range gprDisplayOrder {
		v := d.Cpu.Regs.ReadGPR(r.idx)
		d.Printf("  %-3s = 0x%016X (%d)\n", r.name, v, int64(v))
	}
	rip := d.Cpu.Regs.RIP()
	d.Printf("  RIP = 0x%016X (%d)\n", rip, int64(rip))

	f := d.Cpu.Flags
	flagChar := func(set bool, c byte) byte {
		if set {
			return c
		}
		return '-'
	}
	flagStr := []byte{
		flagChar(f.CF, 'C'),
		flagChar(f.PF, 'P'),
		flagChar(f.ZF, 'Z'),
		flagChar(f.SF, 'S'),
		flagChar(f.OF, 'O'),
		flagChar(f.DF, 'D'),
	}
	d.Printf("  FLAGS = [%s]\n", flagStr)

	return nil
}

// showBreakpoints displays all breakpoints
func (d *Debugger) showBreakpoints() error {
	breakpoints := d.Breakpoints.GetAllBreakpoints()
	if len(breakpoints) == 0 {
		d.Println("No breakpoints")
		return nil
	}

	d.Println("Breakpoints:")
	for _, bp := range breakpoints {
		status := "enabled"
		if !bp.Enabled {
			status = "disabled"
		}

		temp := ""
		if bp.Temporary {
			temp = " (temporary)"
		}

		condition := ""
		if bp.Condition != "" {
			condition = fmt.Sprintf(" if %s", bp.Condition)
		}

		d.Printf("  %d: 0x%016X %s%s%s (hit %d times)\n",
			bp.ID, bp.Address, status, temp, condition, bp.HitCount)
	}

	return nil
}

// showWatchpoints displays all watchpoints
func (d *Debugger) showWatchpoints() error {
	watchpoints := d.Watchpoints.GetAllWatchpoints()
	if len(watchpoints) == 0 {
		d.Println("No watchpoints")
		return nil
	}

	d.Println("Watchpoints:")
	for _, wp := range watchpoints {
		status := "enabled"
		if !wp.Enabled {
			status = "disabled"
		}

		wpType := "write"
		if wp.Type == WatchRead {
			wpType = "read"
		} else if wp.Type == WatchReadWrite {
			wpType = "access"
		}

		d.Printf("  %d: %s %s %s (hit %d times, last value: 0x%016X)\n",
			wp.ID, wp.Expression, wpType, status, wp.HitCount, wp.LastValue)
	}

	return nil
}

// showStack displays stack contents
func (d *Debugger) showStack() error {
	sp := d.Cpu.Regs.ReadGPR(cpu.RSP)
	d.Printf("Stack (RSP = 0x%016X):\n", sp)

	for i := 0; i < StackDisplayWords; i++ {
		addr := sp + uint64(i*8)
		value, err := d.Cpu.MMU.Read64(addr)
		if err != nil {
			break
		}
		d.Printf("  0x%016X: 0x%016X (%d)\n", addr, value, int64(value))
	}

	return nil
}

// cmdBacktrace shows the call stack
func (d *Debugger) cmdBacktrace(args []string) error {
	d.Println("Call stack:")
	d.Printf("  #0  RIP=0x%016X\n", d.Cpu.Regs.RIP())

	// Simple backtrace - would need call stack tracking for full implementation
	return nil
}

// cmdList shows source code around current RIP
func (d *Debugger) cmdList(args []string) error {
	rip := d.Cpu.Regs.RIP()

	// Show current instruction
	if source, exists := d.SourceMap[rip]; exists {
		d.Printf("=> 0x%016X: %s\n", rip, source)
	} else {
		d.Printf("=> 0x%016X: <no source>\n", rip)
	}

	// Show nearby instructions (instructions are variable-length, so this
	// only shows entries that happen to have a SourceMap hit in range)
	for offset := uint64(1); offset <= 16; offset++ {
		addr := rip + offset
		if source, exists := d.SourceMap[addr]; exists {
			d.Printf("   0x%016X: %s\n", addr, source)
		}
	}

	return nil
}

// cmdSet modifies register or memory values
func (d *Debugger) cmdSet(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: set <register|*address> = <value>")
	}

	if args[1] != "=" {
		return fmt.Errorf("usage: set <register|*address> = <value>")
	}

	target := strings.ToLower(args[0])
	valueStr := args[2]

	// Parse value
	value, err := d.Evaluator.EvaluateExpression(valueStr, d.Cpu, d.Symbols)
	if err != nil {
		return err
	}

	// Check if memory dereference
	if strings.HasPrefix(target, "*") {
		addrStr := target[1:]
		address, err := d.ResolveAddress(addrStr)
		if err != nil {
			return err
		}

		if err := d.Cpu.MMU.Write64(address, value); err != nil {
			return err
		}

		d.Printf("Memory 0x%016X set to 0x%016X\n", address, value)
		return nil
	}

	// Parse register
	if target == "rip" {
		d.Cpu.Regs.SetRIP(value)
		d.Printf("Register rip set to 0x%016X\n", value)
		return nil
	}

	idx, ok := gprByName[target]
	if !ok {
		return fmt.Errorf("invalid target: %s", target)
	}

	d.Cpu.Regs.WriteGPR64(idx, value)
	d.Printf("Register %s set to 0x%016X\n", target, value)

	return nil
}

// cmdLoad loads a program (placeholder)
func (d *Debugger) cmdLoad(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: load <filename>")
	}

	d.Printf("Load command not yet implemented for file: %s\n", args[0])
	return nil
}

// cmdReset resets the CPU's registers, flags and cycle counter. Mapped
// memory is left untouched, matching "reset the core, reload the image
// separately" rather than re-running the loader.
func (d *Debugger) cmdReset(args []string) error {
	d.Cpu.Regs = cpu.Registers{}
	d.Cpu.Flags = flags.Arith{}
	d.Cpu.Cycles = 0
	d.Running = false
	d.Halted = false
	d.ExitErr = nil
	d.Println("CPU reset")
	return nil
}

// cmdHelp displays help information
func (d *Debugger) cmdHelp(args []string) error {
	if len(args) > 0 {
		// Show help for specific command
		return d.showCommandHelp(args[0])
	}

	// Show general help
	d.Println("x64emulator Debugger Commands:")
	d.Println()
	d.Println("Execution Control:")
	d.Println("  run (r)           - Start program execution")
	d.Println("  continue (c)      - Continue execution")
	d.Println("  step (s, si)      - Execute single instruction")
	d.Println("  next (n)          - Step over CALL instructions")
	d.Println("  finish (fin)      - Step out of current function")
	d.Println()
	d.Println("Breakpoints:")
	d.Println("  break (b) <addr>  - Set breakpoint")
	d.Println("  tbreak (tb) <addr>- Set temporary breakpoint")
	d.Println("  delete (d) [id]   - Delete breakpoint(s)")
	d.Println("  enable <id>       - Enable breakpoint")
	d.Println("  disable <id>      - Disable breakpoint")
	d.Println()
	d.Println("Watchpoints:")
	d.Println("  watch (w) <expr>  - Watch for writes")
	d.Println("  rwatch <expr>     - Watch for reads")
	d.Println("  awatch <expr>     - Watch for access")
	d.Println()
	d.Println("Inspection:")
	d.Println("  print (p) <expr>  - Evaluate expression")
	d.Println("  x[/nfu] <addr>    - Examine memory")
	d.Println("  info (i) <what>   - Show information")
	d.Println("  backtrace (bt)    - Show call stack")
	d.Println("  list (l)          - List source code")
	d.Println()
	d.Println("Modification:")
	d.Println("  set <var> = <val> - Modify register/memory")
	d.Println()
	d.Println("Control:")
	d.Println("  reset             - Reset CPU")
	d.Println("  help (h, ?)       - Show this help")
	d.Println()
	d.Println("Type 'help <command>' for detailed help on a specific command.")

	return nil
}

// showCommandHelp shows detailed help for a specific command
func (d *Debugger) showCommandHelp(cmd string) error {
	helpText := map[string]string{
		"break": "break <address|label> [if <condition>]\n  Set a breakpoint at the specified address or label.\n  Optional condition will be evaluated each time.",
		"step":  "step\n  Execute a single instruction.",
		"next":  "next\n  Step over CALL instructions (execute until the call returns).",
		"print": "print <expression>\n  Evaluate and print an expression.\n  Expressions can include registers, memory, symbols, and arithmetic.",
		"x":     "x[/nfu] <address>\n  Examine memory.\n  n: count, f: format (x/d/u/o/t), u: unit (b/h/w/g)",
		"info":  "info <registers|breakpoints|watchpoints|stack>\n  Display information about program state.",
	}

	if help, exists := helpText[cmd]; exists {
		d.Println(help)
		return nil
	}

	return fmt.Errorf("no help available for command: %s", cmd)
}
