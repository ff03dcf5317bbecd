package service

import (
	"testing"

	"github.com/n-stott/x64emulator/cpu"
	"github.com/n-stott/x64emulator/decode"
)

func haltProgram() []decode.Instruction {
	return []decode.Instruction{
		{Address: 0, Mnemonic: decode.HLT},
	}
}

func TestDebuggerService_LoadProgram(t *testing.T) {
	s := NewDebuggerService()

	if err := s.LoadProgram(haltProgram(), 0, map[string]uint64{"_start": 0}, 4096); err != nil {
		t.Fatalf("LoadProgram failed: %v", err)
	}

	regs := s.GetRegisterState()
	if regs.RIP != 0 {
		t.Errorf("expected RIP 0, got %#x", regs.RIP)
	}
	if regs.Registers[cpu.RSP] == 0 {
		t.Error("expected RSP to be initialized to the stack top")
	}

	symbols := s.GetSymbols()
	if symbols["_start"] != 0 {
		t.Errorf("expected symbol _start at 0, got %#x", symbols["_start"])
	}
}

func TestDebuggerService_StepHalts(t *testing.T) {
	s := NewDebuggerService()
	if err := s.LoadProgram(haltProgram(), 0, nil, 4096); err != nil {
		t.Fatalf("LoadProgram failed: %v", err)
	}

	if err := s.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}

	state := s.GetExecutionState()
	if state != StateHalted {
		t.Errorf("expected StateHalted after executing HLT, got %v", state)
	}
}

func TestDebuggerService_StepMutatesRegister(t *testing.T) {
	program := []decode.Instruction{
		{
			Address:     0,
			Mnemonic:    decode.INC,
			NumOperands: 1,
			Operands: [3]decode.Operand{
				{Kind: decode.OperandGPR, Reg: cpu.RAX, Width: decode.W64},
			},
		},
	}

	s := NewDebuggerService()
	if err := s.LoadProgram(program, 0, nil, 4096); err != nil {
		t.Fatalf("LoadProgram failed: %v", err)
	}

	before := s.GetRegisterState().Registers[cpu.RAX]
	if err := s.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	after := s.GetRegisterState().Registers[cpu.RAX]

	if after != before+1 {
		t.Errorf("expected RAX to increment by 1, got %#x -> %#x", before, after)
	}
}

func TestDebuggerService_Breakpoints(t *testing.T) {
	s := NewDebuggerService()
	if err := s.LoadProgram(haltProgram(), 0, nil, 4096); err != nil {
		t.Fatalf("LoadProgram failed: %v", err)
	}

	if err := s.AddBreakpoint(0); err != nil {
		t.Fatalf("AddBreakpoint failed: %v", err)
	}

	if err := s.AddBreakpoint(0x1000); err == nil {
		t.Error("expected AddBreakpoint to reject an address with no decoded instruction")
	}

	bps := s.GetBreakpoints()
	if len(bps) != 1 || bps[0].Address != 0 {
		t.Fatalf("expected one breakpoint at 0, got %+v", bps)
	}

	if err := s.RemoveBreakpoint(0); err != nil {
		t.Fatalf("RemoveBreakpoint failed: %v", err)
	}
	if len(s.GetBreakpoints()) != 0 {
		t.Error("expected no breakpoints after removal")
	}
}

func TestDebuggerService_Watchpoints(t *testing.T) {
	s := NewDebuggerService()
	if err := s.LoadProgram(haltProgram(), 0, nil, 4096); err != nil {
		t.Fatalf("LoadProgram failed: %v", err)
	}

	if err := s.AddWatchpoint(0x2000, "write"); err != nil {
		t.Fatalf("AddWatchpoint failed: %v", err)
	}
	if err := s.AddWatchpoint(0x2008, "bogus"); err == nil {
		t.Error("expected AddWatchpoint to reject an unknown watch type")
	}

	wps := s.GetWatchpoints()
	if len(wps) != 1 || wps[0].Type != "write" {
		t.Fatalf("expected one write watchpoint, got %+v", wps)
	}

	if err := s.RemoveWatchpoint(wps[0].ID); err != nil {
		t.Fatalf("RemoveWatchpoint failed: %v", err)
	}
}

func TestDebuggerService_GetDisassembly(t *testing.T) {
	s := NewDebuggerService()
	if err := s.LoadProgram(haltProgram(), 0, map[string]uint64{"_start": 0}, 4096); err != nil {
		t.Fatalf("LoadProgram failed: %v", err)
	}

	lines := s.GetDisassembly(0, 10)
	if len(lines) != 1 {
		t.Fatalf("expected 1 disassembly line, got %d", len(lines))
	}
	if lines[0].Symbol != "_start" {
		t.Errorf("expected symbol _start at address 0, got %q", lines[0].Symbol)
	}
}

func TestDebuggerService_ResetToEntryPoint(t *testing.T) {
	s := NewDebuggerService()
	if err := s.LoadProgram(haltProgram(), 0, nil, 4096); err != nil {
		t.Fatalf("LoadProgram failed: %v", err)
	}

	if err := s.Step(); err != nil {
		t.Fatalf("Step failed: %v", err)
	}
	if s.GetExecutionState() != StateHalted {
		t.Fatal("expected halted state before reset")
	}

	if err := s.ResetToEntryPoint(); err != nil {
		t.Fatalf("ResetToEntryPoint failed: %v", err)
	}
	if s.GetExecutionState() == StateHalted {
		t.Error("expected halted flag to clear after reset")
	}
}

func TestDebuggerService_RunUntilHaltStopsOnHLT(t *testing.T) {
	s := NewDebuggerService()
	if err := s.LoadProgram(haltProgram(), 0, nil, 4096); err != nil {
		t.Fatalf("LoadProgram failed: %v", err)
	}

	s.SetRunning(true)
	if err := s.RunUntilHalt(); err != nil {
		t.Fatalf("RunUntilHalt failed: %v", err)
	}

	if s.GetExecutionState() != StateHalted {
		t.Error("expected RunUntilHalt to stop at HLT")
	}
	if s.IsRunning() {
		t.Error("expected Running to be false after halting")
	}
}

func TestDebuggerService_StatisticsRequiresEnable(t *testing.T) {
	s := NewDebuggerService()
	if err := s.LoadProgram(haltProgram(), 0, nil, 4096); err != nil {
		t.Fatalf("LoadProgram failed: %v", err)
	}

	if _, err := s.GetStatistics(); err == nil {
		t.Error("expected GetStatistics to fail before EnableStatistics")
	}

	s.EnableStatistics()
	stats, err := s.GetStatistics()
	if err != nil {
		t.Fatalf("GetStatistics failed: %v", err)
	}
	if !stats.Enabled {
		t.Error("expected statistics collector to be enabled")
	}
}
