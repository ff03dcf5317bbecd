package cpu

import (
	"testing"

	"github.com/n-stott/x64emulator/decode"
	"github.com/n-stott/x64emulator/types"
)

func xmmOp(reg int) decode.Operand { return decode.Operand{Kind: decode.OperandXMM, Reg: reg} }

func TestPaddbDispatch(t *testing.T) {
	c := newTestCpu(t, ModeRelease)
	c.Regs.SetXMM(0, types.U128{}.WithLane8(0, 1))
	c.Regs.SetXMM(1, types.U128{}.WithLane8(0, 2))
	in := &decode.Instruction{
		Mnemonic:    decode.PADDB,
		NumOperands: 2,
		Operands:    [3]decode.Operand{xmmOp(0), xmmOp(1)},
	}
	if err := c.Exec(in); err != nil {
		t.Fatalf("Exec(PADDB): %v", err)
	}
	if got := c.Regs.XMM(0).Lane8(0); got != 3 {
		t.Errorf("XMM0 lane 0 after PADDB = %d, want 3", got)
	}
}

func TestAddsdDispatch(t *testing.T) {
	c := newTestCpu(t, ModeRelease)
	c.Regs.SetXMM(0, types.U128{}.WithLaneF64(0, 1.5))
	c.Regs.SetXMM(1, types.U128{}.WithLaneF64(0, 2.5))
	in := &decode.Instruction{
		Mnemonic:    decode.ADDSD,
		NumOperands: 2,
		Operands:    [3]decode.Operand{xmmOp(0), xmmOp(1)},
	}
	if err := c.Exec(in); err != nil {
		t.Fatalf("Exec(ADDSD): %v", err)
	}
	if got := c.Regs.XMM(0).LaneF64(0); got != 4.0 {
		t.Errorf("XMM0 after ADDSD = %v, want 4.0", got)
	}
}

func TestPtestDispatchSelfInvariant(t *testing.T) {
	c := newTestCpu(t, ModeRelease)
	c.Regs.SetXMM(0, types.U128{Lo: 0x1})
	in := &decode.Instruction{
		Mnemonic:    decode.PTEST,
		NumOperands: 2,
		Operands:    [3]decode.Operand{xmmOp(0), xmmOp(0)},
	}
	if err := c.Exec(in); err != nil {
		t.Fatalf("Exec(PTEST): %v", err)
	}
	if c.Flags.ZF || c.Flags.CF {
		t.Errorf("PTEST(x,x) for nonzero x: ZF=%v CF=%v, want both false", c.Flags.ZF, c.Flags.CF)
	}
}

func TestRoundsdDispatchExplicitMode(t *testing.T) {
	c := newTestCpu(t, ModeRelease)
	c.Regs.SetXMM(0, types.U128{}.WithLaneF64(0, 99))
	c.Regs.SetXMM(1, types.U128{}.WithLaneF64(0, 2.5))
	in := &decode.Instruction{
		Mnemonic:    decode.ROUNDSD,
		NumOperands: 2,
		Operands:    [3]decode.Operand{xmmOp(0), xmmOp(1)},
		Imm8:        0x1, // explicit round-down, ignoring MXCSR
	}
	if err := c.Exec(in); err != nil {
		t.Fatalf("Exec(ROUNDSD): %v", err)
	}
	if got := c.Regs.XMM(0).LaneF64(0); got != 2.0 {
		t.Errorf("XMM0 after ROUNDSD(2.5, down) = %v, want 2.0", got)
	}
}

func TestRoundssDispatchUsesMxcsr(t *testing.T) {
	c := newTestCpu(t, ModeRelease)
	c.MXCSR.RoundingControl = types.RoundUp
	c.Regs.SetXMM(0, types.U128{}.WithLaneF32(0, 99))
	c.Regs.SetXMM(1, types.U128{}.WithLaneF32(0, 2.1))
	in := &decode.Instruction{
		Mnemonic:    decode.ROUNDSS,
		NumOperands: 2,
		Operands:    [3]decode.Operand{xmmOp(0), xmmOp(1)},
		Imm8:        0x4, // defer to MXCSR.RoundingControl
	}
	if err := c.Exec(in); err != nil {
		t.Fatalf("Exec(ROUNDSS): %v", err)
	}
	if got := c.Regs.XMM(0).LaneF32(0); got != 3.0 {
		t.Errorf("XMM0 after ROUNDSS(2.1, mxcsr=up) = %v, want 3.0", got)
	}
}

func TestPcmpgtbDispatch(t *testing.T) {
	c := newTestCpu(t, ModeRelease)
	c.Regs.SetXMM(0, types.U128{}.WithLane8(0, 5))
	c.Regs.SetXMM(1, types.U128{}.WithLane8(0, 1))
	in := &decode.Instruction{
		Mnemonic:    decode.PCMPGTB,
		NumOperands: 2,
		Operands:    [3]decode.Operand{xmmOp(0), xmmOp(1)},
	}
	if err := c.Exec(in); err != nil {
		t.Fatalf("Exec(PCMPGTB): %v", err)
	}
	if got := c.Regs.XMM(0).Lane8(0); got != 0xFF {
		t.Errorf("XMM0 lane 0 after PCMPGTB(5,1) = %#x, want 0xFF", got)
	}
}
