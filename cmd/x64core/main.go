// Command x64core runs the instruction-semantics core directly, under the
// CLI/TUI/GUI debugger, or as an HTTP API server for remote front ends.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/n-stott/x64emulator/api"
	"github.com/n-stott/x64emulator/config"
	"github.com/n-stott/x64emulator/cpu"
	"github.com/n-stott/x64emulator/debugger"
	"github.com/n-stott/x64emulator/decode"
	"github.com/n-stott/x64emulator/mmu"
	"github.com/n-stott/x64emulator/trace"
)

// Version information - can be overridden at build time with:
// go build -ldflags "-X main.Version=v1.2.3"
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// programDecoder implements debugger.Decoder over a fixed, pre-decoded
// instruction stream. Decoding raw x86-64 bytes is out of scope for this
// core (spec.md §1); a "program" for this CLI is instead a JSON array of
// already-decoded decode.Instruction values, addressed by RIP.
type programDecoder struct {
	byAddress map[uint64]*decode.Instruction
}

func newProgramDecoder(instructions []decode.Instruction) *programDecoder {
	d := &programDecoder{byAddress: make(map[uint64]*decode.Instruction, len(instructions))}
	for i := range instructions {
		in := instructions[i]
		d.byAddress[in.Address] = &in
	}
	return d
}

func (d *programDecoder) Decode(c *cpu.Cpu) (*decode.Instruction, error) {
	rip := c.Regs.RIP()
	in, ok := d.byAddress[rip]
	if !ok {
		return nil, fmt.Errorf("no instruction at RIP=%#016x", rip)
	}
	return in, nil
}

// loadProgram reads a JSON-encoded instruction stream produced by a host
// tool (assembler, fuzzer, replay harness) external to this core.
func loadProgram(path string) ([]decode.Instruction, error) {
	f, err := os.Open(path) // #nosec G304 -- user-specified program path
	if err != nil {
		return nil, fmt.Errorf("opening program file: %w", err)
	}
	defer f.Close()

	var instructions []decode.Instruction
	if err := json.NewDecoder(f).Decode(&instructions); err != nil {
		return nil, fmt.Errorf("parsing program file: %w", err)
	}
	return instructions, nil
}

func main() {
	var (
		showVersion = flag.Bool("version", false, "Show version information")
		showHelp    = flag.Bool("help", false, "Show help information")
		debugMode   = flag.Bool("debug", false, "Start in debugger mode (CLI)")
		tuiMode     = flag.Bool("tui", false, "Use TUI (Text User Interface) debugger")
		guiMode     = flag.Bool("gui", false, "Use graphical debugger")
		apiServer   = flag.Bool("api-server", false, "Start HTTP API server mode")
		apiPort     = flag.Int("port", 8080, "API server port (used with -api-server)")
		configFile  = flag.String("config", "", "Config file path (default: platform config dir)")
		checked     = flag.Bool("checked", false, "Run in checked mode (cross-check every primitive against the host)")
		maxCycles   = flag.Uint64("max-cycles", 0, "Maximum CPU cycles before halt (0: use config default)")
		entryPoint  = flag.String("entry", "", "Entry point address, hex or decimal (default: config's default_entry)")
		verboseMode = flag.Bool("verbose", false, "Verbose output")
	)

	flag.Parse()

	if *showVersion {
		fmt.Printf("x64core %s\n", Version)
		if Commit != "unknown" {
			fmt.Printf("Commit: %s\n", Commit)
		}
		if Date != "unknown" {
			fmt.Printf("Built: %s\n", Date)
		}
		os.Exit(0)
	}

	if *showHelp {
		printHelp()
		os.Exit(0)
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	if *apiServer {
		runAPIServer(*apiPort)
		return
	}

	if flag.NArg() == 0 {
		printHelp()
		os.Exit(0)
	}

	programFile := flag.Arg(0)
	instructions, err := loadProgram(programFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading program: %v\n", err)
		os.Exit(1)
	}
	if *verboseMode {
		fmt.Printf("Loaded %d instructions from %s\n", len(instructions), programFile)
	}

	entryAddr, err := resolveEntry(*entryPoint, cfg, instructions)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error resolving entry point: %v\n", err)
		os.Exit(1)
	}

	m := mmu.NewFlat()
	m.AddSegment("code", 0, 0x100000, mmu.PermRead|mmu.PermExecute)
	m.AddSegment("data", 0x100000, uint64(cfg.Execution.StackSize), mmu.PermRead|mmu.PermWrite)
	stackTop := uint64(0x100000) + uint64(cfg.Execution.StackSize)

	mode := cpu.ModeRelease
	if *checked || cfg.Execution.Checked {
		mode = cpu.ModeChecked
	}

	c := cpu.New(m, nil, mode)
	c.Regs.SetRIP(entryAddr)
	c.Regs.WriteGPR64(cpu.RSP, stackTop)

	cycleLimit := *maxCycles
	if cycleLimit == 0 {
		cycleLimit = cfg.Execution.MaxCycles
	}

	dec := newProgramDecoder(instructions)

	if *debugMode || *tuiMode || *guiMode {
		dbg := debugger.NewDebugger(c, dec)

		symbols := make(map[string]uint64, len(instructions))
		for _, in := range instructions {
			symbols[fmt.Sprintf("0x%x", in.Address)] = in.Address
		}
		dbg.LoadSymbols(symbols)

		switch {
		case *guiMode:
			if err := debugger.RunGUI(dbg); err != nil {
				fmt.Fprintf(os.Stderr, "GUI error: %v\n", err)
				os.Exit(1)
			}
		case *tuiMode:
			if err := debugger.RunTUI(dbg); err != nil {
				fmt.Fprintf(os.Stderr, "TUI error: %v\n", err)
				os.Exit(1)
			}
		default:
			fmt.Println("x64core Debugger - Type 'help' for commands")
			fmt.Printf("Program loaded: %s\n", programFile)
			fmt.Println()
			if err := debugger.RunCLI(dbg); err != nil {
				fmt.Fprintf(os.Stderr, "Debugger error: %v\n", err)
				os.Exit(1)
			}
		}
		return
	}

	runDirect(c, dec, cfg, cycleLimit, *verboseMode)
}

// loadConfig loads the TOML config from path, or the platform default
// location when path is empty.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// resolveEntry picks the entry RIP: an explicit -entry flag, else the
// config's default_entry, else the lowest address present in the program.
func resolveEntry(entryFlag string, cfg *config.Config, instructions []decode.Instruction) (uint64, error) {
	spec := entryFlag
	if spec == "" {
		spec = cfg.Execution.DefaultEntry
	}

	var addr uint64
	if spec != "" {
		if _, err := fmt.Sscanf(spec, "0x%x", &addr); err == nil {
			return addr, nil
		}
		if _, err := fmt.Sscanf(spec, "%d", &addr); err == nil {
			return addr, nil
		}
		return 0, fmt.Errorf("invalid entry point: %s", spec)
	}

	if len(instructions) == 0 {
		return 0, fmt.Errorf("empty program and no entry point specified")
	}
	lowest := instructions[0].Address
	for _, in := range instructions[1:] {
		if in.Address < lowest {
			lowest = in.Address
		}
	}
	return lowest, nil
}

// runDirect executes the program straight through, with no debugger
// attached, honoring the configured trace/statistics/coverage toggles.
func runDirect(c *cpu.Cpu, dec *programDecoder, cfg *config.Config, cycleLimit uint64, verbose bool) {
	var execTrace *trace.ExecutionTrace
	var coverage *trace.Coverage
	var stats *trace.Statistics

	if cfg.Execution.EnableTrace {
		f, err := os.Create(cfg.Trace.OutputFile) // #nosec G304 -- user-specified trace output path
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating trace file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		execTrace = trace.NewExecutionTrace(f)
		if cfg.Trace.FilterRegs != "" {
			execTrace.SetFilterRegisters([]string{cfg.Trace.FilterRegs})
		}
		execTrace.Start()
	}

	if cfg.Execution.EnableCoverage {
		f, err := os.Create(cfg.Coverage.OutputFile) // #nosec G304 -- user-specified coverage output path
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating coverage file: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		coverage = trace.NewCoverage(f)
		coverage.Start()
	}

	if cfg.Execution.EnableStats {
		stats = trace.NewStatistics()
		stats.Start()
	}

	if verbose {
		fmt.Println("Starting execution...")
		fmt.Println("----------------------------------------")
	}

	var haltErr error
	for c.Cycles < cycleLimit || cycleLimit == 0 {
		in, err := dec.Decode(c)
		if err != nil {
			haltErr = err
			break
		}

		if execTrace != nil {
			execTrace.RecordInstruction(c, in)
		}

		execErr := c.Exec(in)
		if execErr != nil {
			var f *cpu.Fault
			if asFault(execErr, &f) && f.Mnemonic == decode.HLT {
				break
			}
			haltErr = execErr
			break
		}

		if coverage != nil {
			coverage.RecordExecution(in.Address, in.Mnemonic, c.Cycles)
		}
		if stats != nil {
			stats.RecordInstruction(fmt.Sprintf("%v", in.Mnemonic), in.Address, c.Cycles)
		}
	}

	if haltErr != nil {
		fmt.Fprintf(os.Stderr, "\nRuntime error at RIP=%#016x: %v\n", c.Regs.RIP(), haltErr)
		os.Exit(1)
	}

	if verbose {
		fmt.Println("----------------------------------------")
		fmt.Println("Execution complete")
		fmt.Printf("CPU cycles: %d\n", c.Cycles)
	}

	if execTrace != nil {
		if err := execTrace.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "Error flushing execution trace: %v\n", err)
		}
	}
	if coverage != nil {
		if err := coverage.Flush(); err != nil {
			fmt.Fprintf(os.Stderr, "Error flushing coverage: %v\n", err)
		}
		if verbose {
			fmt.Println(coverage.String())
		}
	}
	if stats != nil {
		stats.Finalize()
		if verbose {
			fmt.Println(stats.String())
		}
	}
}

// asFault reports whether err is a *cpu.Fault, by a direct type assertion
// (unlike errors.As, it does not unwrap wrapped errors).
func asFault(err error, target **cpu.Fault) bool {
	f, ok := err.(*cpu.Fault)
	if !ok {
		return false
	}
	*target = f
	return true
}

func runAPIServer(port int) {
	server := api.NewServer(port)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	var shutdownOnce sync.Once
	performShutdown := func() {
		shutdownOnce.Do(func() {
			log.Println("Shutting down API server...")

			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				log.Fatalf("Error during shutdown: %v", err)
			}

			log.Println("API server stopped")
			os.Exit(0)
		})
	}

	go func() {
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("API server error: %v", err)
		}
	}()

	<-sigChan
	performShutdown()
}

func printHelp() {
	fmt.Printf(`x64core %s

Usage: x64core [options] <program-file>
       x64core -api-server [-port N]

A <program-file> is a JSON array of decoded instructions (see
decode.Instruction); this core never decodes raw x86-64 bytes itself, so
program files are produced by a decoder external to this repository.

Options:
  -help              Show this help message
  -version           Show version information
  -api-server        Start HTTP API server mode (no program file required)
  -port N            API server port (default: 8080, used with -api-server)
  -debug             Start in debugger mode (CLI)
  -tui               Start in TUI debugger mode
  -gui               Start in graphical debugger mode
  -config FILE       Config file path (default: platform config dir)
  -checked           Run in checked mode (cross-check every primitive against the host)
  -max-cycles N      Set maximum CPU cycles (default: from config, 0 means unlimited)
  -entry ADDR        Set entry point address (default: config's default_entry, else lowest address)
  -verbose           Enable verbose output

Examples:
  x64core program.json
  x64core -checked -verbose program.json
  x64core -debug program.json
  x64core -tui program.json
  x64core -api-server -port 3000
`, Version)
}
