package cpu

import (
	"github.com/n-stott/x64emulator/checkedcpu"
	"github.com/n-stott/x64emulator/cpuimpl"
	"github.com/n-stott/x64emulator/decode"
	"github.com/n-stott/x64emulator/types"
)

// stOperand resolves operand 0/1 of an x87 instruction to a stack index
// (through the current top, per spec.md §4.3's x87-specific dispatching)
// or loads the 80-bit value directly out of memory.
func (c *Cpu) readST(in *decode.Instruction, op decode.Operand) types.Float80 {
	switch op.Kind {
	case decode.OperandST:
		return c.FPU.StackRead(op.Reg)
	case decode.OperandMem:
		addr := c.EffectiveAddress(op.Mem)
		v, err := c.MMU.Read80(addr)
		if err != nil {
			panic(fault(in, "x87 memory read at %#x: %s", addr, err))
		}
		return v
	default:
		panic(fault(in, "operand kind %v has no 80-bit value", op.Kind))
	}
}

func (c *Cpu) execFadd(in *decode.Instruction, a, b types.Float80) types.Float80 {
	mode := c.FPU.CW.RoundingControl
	if c.Mode == ModeChecked {
		return checkedcpu.Fadd(a, b, mode)
	}
	return cpuimpl.Fadd(a, b, mode)
}

func (c *Cpu) execFsub(in *decode.Instruction, a, b types.Float80) types.Float80 {
	mode := c.FPU.CW.RoundingControl
	if c.Mode == ModeChecked {
		return checkedcpu.Fsub(a, b, mode)
	}
	return cpuimpl.Fsub(a, b, mode)
}

func (c *Cpu) execFmul(in *decode.Instruction, a, b types.Float80) types.Float80 {
	mode := c.FPU.CW.RoundingControl
	if c.Mode == ModeChecked {
		return checkedcpu.Fmul(a, b, mode)
	}
	return cpuimpl.Fmul(a, b, mode)
}

func (c *Cpu) execFdiv(in *decode.Instruction, a, b types.Float80) types.Float80 {
	mode := c.FPU.CW.RoundingControl
	if c.Mode == ModeChecked {
		return checkedcpu.Fdiv(a, b, mode)
	}
	return cpuimpl.Fdiv(a, b, mode)
}

func (c *Cpu) execFcomi(a, b types.Float80) {
	if c.Mode == ModeChecked {
		checkedcpu.Fcomi(a, b, &c.Flags)
		return
	}
	cpuimpl.Fcomi(a, b, &c.Flags)
}

func (c *Cpu) execFucomi(a, b types.Float80) {
	if c.Mode == ModeChecked {
		checkedcpu.Fucomi(a, b, &c.Flags)
		return
	}
	cpuimpl.Fucomi(a, b, &c.Flags)
}

func (c *Cpu) execFrndint(a types.Float80) types.Float80 {
	mode := c.FPU.CW.RoundingControl
	if c.Mode == ModeChecked {
		return checkedcpu.Frndint(a, mode)
	}
	return cpuimpl.Frndint(a, mode)
}
