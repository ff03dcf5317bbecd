package debugger

import (
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/n-stott/x64emulator/cpu"
)

// GUI represents the graphical user interface for the debugger
type GUI struct {
	// Core components
	Debugger *Debugger
	App      fyne.App
	Window   fyne.Window

	// View panels
	SourceView      *widget.TextGrid
	RegisterView    *widget.TextGrid
	MemoryView      *widget.TextGrid
	StackView       *widget.TextGrid
	BreakpointsList *widget.List
	ConsoleOutput   *widget.TextGrid
	StatusLabel     *widget.Label

	// Controls
	Toolbar *widget.Toolbar

	// State
	CurrentAddress uint64
	MemoryAddress  uint64
	StackAddress   uint64
	Running        bool

	// Source code cache
	SourceLines []string
	SourceFile  string

	// Breakpoints data
	breakpoints []string

	// Console output buffer
	consoleBuffer strings.Builder
	consoleMutex  sync.Mutex
}

// writeConsole appends text to the console buffer and refreshes its view.
func (g *GUI) writeConsole(text string) {
	g.consoleMutex.Lock()
	defer g.consoleMutex.Unlock()

	g.consoleBuffer.WriteString(text)
	g.ConsoleOutput.SetText(g.consoleBuffer.String())
}

// RunGUI runs the GUI (Graphical User Interface) debugger
func RunGUI(dbg *Debugger) error {
	gui := newGUI(dbg)
	gui.Window.ShowAndRun()
	return nil
}

// newGUI creates a new graphical user interface
func newGUI(debugger *Debugger) *GUI {
	myApp := app.New()
	myWindow := myApp.NewWindow("x64emulator Debugger")

	gui := &GUI{
		Debugger:       debugger,
		App:            myApp,
		Window:         myWindow,
		CurrentAddress: 0,
		MemoryAddress:  0,
		StackAddress:   0,
		Running:        false,
		breakpoints:    []string{},
	}

	gui.initializeViews()
	gui.buildLayout()
	gui.setupToolbar()

	// Set window size
	myWindow.Resize(fyne.NewSize(1400, 900))

	return gui
}

// initializeViews creates all the view panels
func (g *GUI) initializeViews() {
	// Source view
	g.SourceView = widget.NewTextGrid()
	g.SourceView.SetText("No source file loaded")

	// Register view
	g.RegisterView = widget.NewTextGrid()
	g.updateRegisters()

	// Memory view
	g.MemoryView = widget.NewTextGrid()
	g.updateMemory()

	// Stack view
	g.StackView = widget.NewTextGrid()
	g.updateStack()

	// Breakpoints list
	g.breakpoints = []string{}
	g.BreakpointsList = widget.NewList(
		func() int {
			return len(g.breakpoints)
		},
		func() fyne.CanvasObject {
			return widget.NewLabel("template")
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(g.breakpoints[id])
		},
	)

	// Console output
	g.ConsoleOutput = widget.NewTextGrid()
	g.ConsoleOutput.SetText("")

	// Status label
	g.StatusLabel = widget.NewLabel("Ready")
}

// buildLayout creates the main layout
func (g *GUI) buildLayout() {
	// Create bordered panels for better visual separation
	sourcePanel := container.NewBorder(
		widget.NewLabel("Source"),
		nil, nil, nil,
		container.NewScroll(g.SourceView),
	)

	registerPanel := container.NewBorder(
		widget.NewLabel("Registers"),
		nil, nil, nil,
		container.NewScroll(g.RegisterView),
	)

	memoryPanel := container.NewBorder(
		widget.NewLabel("Memory"),
		nil, nil, nil,
		container.NewScroll(g.MemoryView),
	)

	stackPanel := container.NewBorder(
		widget.NewLabel("Stack"),
		nil, nil, nil,
		container.NewScroll(g.StackView),
	)

	breakpointsPanel := container.NewBorder(
		widget.NewLabel("Breakpoints"),
		nil, nil, nil,
		container.NewScroll(g.BreakpointsList),
	)

	consolePanel := container.NewBorder(
		widget.NewLabel("Console Output"),
		nil, nil, nil,
		container.NewScroll(g.ConsoleOutput),
	)

	// Left side: source code (larger)
	leftPanel := container.NewMax(sourcePanel)

	// Right side: registers and breakpoints
	rightTop := container.NewVSplit(registerPanel, breakpointsPanel)
	rightTop.SetOffset(0.6) // 60% registers, 40% breakpoints

	// Bottom right: memory, stack, console
	bottomTabs := container.NewAppTabs(
		container.NewTabItem("Memory", memoryPanel),
		container.NewTabItem("Stack", stackPanel),
		container.NewTabItem("Console", consolePanel),
	)

	rightPanel := container.NewVSplit(rightTop, bottomTabs)
	rightPanel.SetOffset(0.5)

	// Main split: left (source) and right (info panels)
	mainSplit := container.NewHSplit(leftPanel, rightPanel)
	mainSplit.SetOffset(0.55) // 55% source, 45% info

	// Add status bar at bottom
	statusBar := container.NewBorder(nil, nil, nil, nil, g.StatusLabel)

	// Complete layout with toolbar at top
	content := container.NewBorder(
		g.Toolbar, // top
		statusBar, // bottom
		nil,       // left
		nil,       // right
		mainSplit, // center
	)

	g.Window.SetContent(content)
}

// setupToolbar creates the debugger control toolbar
func (g *GUI) setupToolbar() {
	g.Toolbar = widget.NewToolbar(
		widget.NewToolbarAction(theme.MediaPlayIcon(), func() {
			g.runProgram()
		}),
		widget.NewToolbarAction(theme.MediaSkipNextIcon(), func() {
			g.stepProgram()
		}),
		widget.NewToolbarAction(theme.MediaFastForwardIcon(), func() {
			g.continueProgram()
		}),
		widget.NewToolbarAction(theme.MediaStopIcon(), func() {
			g.stopProgram()
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ContentAddIcon(), func() {
			g.addBreakpoint()
		}),
		widget.NewToolbarAction(theme.ContentClearIcon(), func() {
			g.clearBreakpoints()
		}),
		widget.NewToolbarSeparator(),
		widget.NewToolbarAction(theme.ViewRefreshIcon(), func() {
			g.refreshViews()
		}),
	)
}

// updateViews refreshes all view panels
func (g *GUI) updateViews() {
	g.updateSource()
	g.updateRegisters()
	g.updateMemory()
	g.updateStack()
	g.updateBreakpoints()
}

// updateSource updates the source code view
func (g *GUI) updateSource() {
	currentRIP := g.Debugger.Cpu.Regs.RIP()

	if len(g.SourceLines) > 0 {
		var sb strings.Builder

		currentSourceLine := ""
		if g.Debugger.SourceMap != nil {
			if line, ok := g.Debugger.SourceMap[currentRIP]; ok {
				currentSourceLine = line
			}
		}

		for i, line := range g.SourceLines {
			prefix := "  "
			if line == currentSourceLine {
				prefix = "> "
			}
			sb.WriteString(fmt.Sprintf("%s%4d: %s\n", prefix, i+1, line))
		}
		g.SourceView.SetText(sb.String())
		return
	}

	// Show simple placeholder view
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Current RIP: 0x%016X\n\n", currentRIP))
	if source, ok := g.Debugger.SourceMap[currentRIP]; ok {
		sb.WriteString(fmt.Sprintf("> %s\n", source))
	} else {
		sb.WriteString("No source mapping available\n")
	}
	g.SourceView.SetText(sb.String())
}

// updateRegisters updates the register view
func (g *GUI) updateRegisters() {
	var sb strings.Builder

	regs := &g.Debugger.Cpu.Regs

	sb.WriteString("General Purpose Registers:\n")
	sb.WriteString("---------------------------\n")
	for _, r := range gprDisplayOrder {
		v := regs.ReadGPR(r.idx)
		sb.WriteString(fmt.Sprintf("%-3s: 0x%016X  (%d)\n", r.name, v, int64(v)))
	}

	sb.WriteString("\nInstruction Pointer:\n")
	sb.WriteString("---------------------------\n")
	sb.WriteString(fmt.Sprintf("RIP: 0x%016X  (%d)\n", regs.RIP(), int64(regs.RIP())))

	sb.WriteString("\nStatus Flags:\n")
	sb.WriteString("---------------------------\n")
	f := g.Debugger.Cpu.Flags
	flagStr := ""
	for _, pair := range []struct {
		set bool
		ch  byte
	}{{f.CF, 'C'}, {f.PF, 'P'}, {f.ZF, 'Z'}, {f.SF, 'S'}, {f.OF, 'O'}, {f.DF, 'D'}} {
		if pair.set {
			flagStr += string(pair.ch)
		} else {
			flagStr += "-"
		}
	}
	sb.WriteString(fmt.Sprintf("Flags: %s\n", flagStr))

	g.RegisterView.SetText(sb.String())
}

// updateMemory updates the memory view
func (g *GUI) updateMemory() {
	var sb strings.Builder

	// Show memory around RIP or a specific address
	addr := g.MemoryAddress
	if addr == 0 {
		addr = g.Debugger.Cpu.Regs.RIP()
	}

	// Round down to 16-byte boundary
	addr &= ^uint64(0xF)

	sb.WriteString(fmt.Sprintf("Memory at 0x%016X:\n", addr))
	sb.WriteString("----------------------------------------------------\n")

	for i := uint64(0); i < MemoryDisplayRows; i++ {
		lineAddr := addr + (i * MemoryDisplayColumns)
		sb.WriteString(fmt.Sprintf("%016X: ", lineAddr))

		for j := uint64(0); j < MemoryDisplayColumns; j++ {
			b, err := g.Debugger.Cpu.MMU.Read8(lineAddr + j)
			if err == nil {
				sb.WriteString(fmt.Sprintf("%02X ", b))
			} else {
				sb.WriteString("?? ")
			}
		}

		sb.WriteString(" ")
		for j := uint64(0); j < MemoryDisplayColumns; j++ {
			b, err := g.Debugger.Cpu.MMU.Read8(lineAddr + j)
			if err == nil {
				if b >= 32 && b < 127 {
					sb.WriteString(string(b))
				} else {
					sb.WriteString(".")
				}
			} else {
				sb.WriteString("?")
			}
		}
		sb.WriteString("\n")
	}

	g.MemoryView.SetText(sb.String())
}

// updateStack updates the stack view
func (g *GUI) updateStack() {
	var sb strings.Builder

	sp := g.Debugger.Cpu.Regs.ReadGPR(cpu.RSP)

	sb.WriteString(fmt.Sprintf("Stack at RSP=0x%016X:\n", sp))
	sb.WriteString("-------------------------------\n")

	// Show 8 quadwords above and 24 below SP
	for i := int64(-8); i < 24; i++ {
		addr := uint64(int64(sp) + (i * 8))
		prefix := "  "
		if i == 0 {
			prefix = "> "
		}

		qword, err := g.Debugger.Cpu.MMU.Read64(addr)
		if err == nil {
			sb.WriteString(fmt.Sprintf("%s%016X: %016X  (%d)\n", prefix, addr, qword, int64(qword)))
		}
	}

	g.StackView.SetText(sb.String())
}

// updateBreakpoints updates the breakpoints list
func (g *GUI) updateBreakpoints() {
	breakpoints := g.Debugger.Breakpoints.GetAllBreakpoints()
	g.breakpoints = make([]string, 0, len(breakpoints))

	for _, bp := range breakpoints {
		// Try to resolve symbol name
		symbol := ""
		for name, addr := range g.Debugger.Symbols {
			if addr == bp.Address {
				symbol = fmt.Sprintf(" [%s]", name)
				break
			}
		}

		status := "enabled"
		if !bp.Enabled {
			status = "disabled"
		}

		g.breakpoints = append(g.breakpoints, fmt.Sprintf("0x%016X%s (%s)", bp.Address, symbol, status))
	}

	g.BreakpointsList.Refresh()
}

// runProgram starts/restarts program execution
func (g *GUI) runProgram() {
	g.StatusLabel.SetText("Running...")
	g.Debugger.Running = true

	// Execute program in goroutine to keep UI responsive
	go func() {
		runLoop(g.Debugger,
			func(reason string) {
				g.StatusLabel.SetText(fmt.Sprintf("Stopped: %s at RIP=0x%016X", reason, g.Debugger.Cpu.Regs.RIP()))
				g.updateViews()
			},
			func() {
				g.StatusLabel.SetText("Program halted")
				g.updateViews()
			},
			func(err error) {
				g.StatusLabel.SetText(fmt.Sprintf("Error: %v", err))
				g.writeConsole(fmt.Sprintf("Runtime error: %v\n", err))
			},
		)
	}()
}

// stepProgram executes one instruction
func (g *GUI) stepProgram() {
	if g.Debugger.Halted {
		g.StatusLabel.SetText("Program has halted")
		return
	}

	if err := g.Debugger.Step(); err != nil {
		g.StatusLabel.SetText(fmt.Sprintf("Error: %v", err))
		return
	}

	if g.Debugger.Halted {
		g.StatusLabel.SetText("Program halted")
	} else {
		g.StatusLabel.SetText(fmt.Sprintf("Stepped to RIP=0x%016X", g.Debugger.Cpu.Regs.RIP()))
	}

	g.updateViews()
}

// continueProgram continues execution until breakpoint
func (g *GUI) continueProgram() {
	g.runProgram()
}

// stopProgram stops execution
func (g *GUI) stopProgram() {
	g.Debugger.Running = false
	g.StatusLabel.SetText("Stopped")
	g.updateViews()
}

// addBreakpoint adds a breakpoint at current RIP
func (g *GUI) addBreakpoint() {
	rip := g.Debugger.Cpu.Regs.RIP()
	g.Debugger.Breakpoints.AddBreakpoint(rip, false, "")
	g.updateBreakpoints()
	g.StatusLabel.SetText(fmt.Sprintf("Breakpoint added at 0x%016X", rip))
}

// clearBreakpoints removes all breakpoints
func (g *GUI) clearBreakpoints() {
	g.Debugger.Breakpoints.Clear()
	g.updateBreakpoints()
	g.StatusLabel.SetText("All breakpoints cleared")
}

// refreshViews manually refreshes all views
func (g *GUI) refreshViews() {
	g.updateViews()
	g.StatusLabel.SetText("Views refreshed")
}
