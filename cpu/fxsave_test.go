package cpu

import (
	"testing"

	"github.com/n-stott/x64emulator/decode"
	"github.com/n-stott/x64emulator/mmu"
	"github.com/n-stott/x64emulator/types"
)

func TestFxsaveFxrstorRoundTrip(t *testing.T) {
	m := mmu.NewFlat()
	m.AddSegment("save", 0x3000, 0x200, mmu.PermRead|mmu.PermWrite)
	c := New(m, nil, ModeRelease)
	c.FPU.Push(types.Float80FromFloat64(3.0))
	c.FPU.SW.C1 = true
	c.MXCSR.FlushToZero = true

	memOp := decode.Operand{Kind: decode.OperandMem, Mem: decode.MemOperand{BaseReg: -1, IndexReg: -1, Displacement: 0x3000}}
	saveIn := &decode.Instruction{Mnemonic: decode.FXSAVE, NumOperands: 1, Operands: [3]decode.Operand{memOp}}
	if err := c.Exec(saveIn); err != nil {
		t.Fatalf("Exec(FXSAVE): %v", err)
	}

	fresh := New(m, nil, ModeRelease)
	restoreIn := &decode.Instruction{Mnemonic: decode.FXRSTOR, NumOperands: 1, Operands: [3]decode.Operand{memOp}}
	if err := fresh.Exec(restoreIn); err != nil {
		t.Fatalf("Exec(FXRSTOR): %v", err)
	}

	if got := fresh.FPU.StackRead(0).ToFloat64(); got != 3.0 {
		t.Errorf("ST(0) after round trip = %v, want 3.0", got)
	}
	if !fresh.FPU.SW.C1 {
		t.Error("C1 should survive the FXSAVE/FXRSTOR round trip")
	}
	if !fresh.MXCSR.FlushToZero {
		t.Error("MXCSR.FlushToZero should survive the round trip")
	}
}

func TestFxsaveRequiresAlignment(t *testing.T) {
	m := mmu.NewFlat()
	m.AddSegment("save", 0x3000, 0x200, mmu.PermRead|mmu.PermWrite)
	c := New(m, nil, ModeRelease)
	memOp := decode.Operand{Kind: decode.OperandMem, Mem: decode.MemOperand{BaseReg: -1, IndexReg: -1, Displacement: 0x3001}}
	in := &decode.Instruction{Mnemonic: decode.FXSAVE, NumOperands: 1, Operands: [3]decode.Operand{memOp}}
	if err := c.Exec(in); err == nil {
		t.Fatal("expected misaligned FXSAVE to fault")
	}
}
