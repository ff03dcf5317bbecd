package debugger

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// runLoop executes instructions while dbg.Running is set, stopping at the
// first breakpoint/watchpoint/step-mode condition ShouldBreak reports, or
// on HLT, or on a runtime fault. Stepping happens before the stop check so
// that step/next/finish always execute at least one instruction.
func runLoop(dbg *Debugger, onStop func(reason string), onHalt func(), onError func(error)) {
	for dbg.Running {
		if err := dbg.Step(); err != nil {
			dbg.Running = false
			onError(err)
			return
		}

		if dbg.Halted {
			dbg.Running = false
			onHalt()
			return
		}

		if shouldBreak, reason := dbg.ShouldBreak(); shouldBreak {
			dbg.Running = false
			onStop(reason)
			return
		}
	}
}

// RunCLI runs the command-line debugger interface
func RunCLI(dbg *Debugger) error {
	scanner := bufio.NewScanner(os.Stdin)

	for {
		// Print prompt
		fmt.Print("(x64dbg) ")

		// Read command
		if !scanner.Scan() {
			break
		}

		cmdLine := strings.TrimSpace(scanner.Text())

		// Exit commands
		if cmdLine == "quit" || cmdLine == "q" || cmdLine == "exit" {
			fmt.Println("Exiting debugger...")
			break
		}

		// Execute command
		if err := dbg.ExecuteCommand(cmdLine); err != nil {
			fmt.Printf("Error: %v\n", err)
		}

		// Print any output from the debugger
		output := dbg.GetOutput()
		if output != "" {
			fmt.Print(output)
		}

		// If running, execute until breakpoint or halt
		if dbg.Running {
			runLoop(dbg,
				func(reason string) {
					fmt.Printf("Stopped: %s at RIP=0x%016X\n", reason, dbg.Cpu.Regs.RIP())
				},
				func() {
					fmt.Println("Program halted")
				},
				func(err error) {
					fmt.Printf("Runtime error: %v\n", err)
				},
			)
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("input error: %w", err)
	}

	return nil
}

// RunTUI runs the TUI (Text User Interface) debugger
func RunTUI(dbg *Debugger) error {
	tui := NewTUI(dbg)
	return tui.Run()
}
