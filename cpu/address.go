package cpu

import (
	"github.com/n-stott/x64emulator/decode"
	"github.com/n-stott/x64emulator/types"
)

// High-byte GPR encodings (spec.md §3: "the high byte of the four legacy
// registers"). A decoder addresses AH/CH/DH/BH by adding highByteBase to
// the base register's normal index (RAX=0 → AH=16, RCX=1 → CH=17, and so
// on), the same offset trick real x86 opcode-byte decoding uses to
// disambiguate SPL/BPL/SIL/DIL (which always mean the low byte, given a
// REX prefix) from AH/CH/DH/BH (which never take one).
const highByteBase = 16

// EffectiveAddress computes spec.md's glossary "effective address":
// segment_base + base_reg + index_reg*scale + displacement.
func (c *Cpu) EffectiveAddress(m decode.MemOperand) uint64 {
	addr := c.Regs.SegmentBase(m.Segment)
	if m.BaseReg >= 0 {
		addr += c.Regs.ReadGPR(m.BaseReg)
	}
	if m.IndexReg >= 0 {
		addr += c.Regs.ReadGPR(m.IndexReg) * uint64(m.Scale)
	}
	addr += uint64(m.Displacement)
	return addr
}

// readGPROperand reads a GPR operand honoring the high-byte encoding
// above.
func (c *Cpu) readGPROperand(reg int, w decode.Width) uint64 {
	if reg >= highByteBase {
		return uint64(c.Regs.ReadGPR8High(reg - highByteBase))
	}
	v := c.Regs.ReadGPR(reg)
	switch w {
	case decode.W8:
		return v & 0xFF
	case decode.W16:
		return v & 0xFFFF
	case decode.W32:
		return v & 0xFFFFFFFF
	default:
		return v
	}
}

func (c *Cpu) writeGPROperand(reg int, w decode.Width, v uint64) {
	if reg >= highByteBase {
		c.Regs.WriteGPR8High(reg-highByteBase, uint8(v))
		return
	}
	switch w {
	case decode.W8:
		c.Regs.WriteGPR8Low(reg, uint8(v))
	case decode.W16:
		c.Regs.WriteGPR16(reg, uint16(v))
	case decode.W32:
		c.Regs.WriteGPR32(reg, uint32(v))
	default:
		c.Regs.WriteGPR64(reg, v)
	}
}

// readOperand resolves any non-SIMD, non-x87 operand to its current value
// (spec.md §4.3 step 1: "register reads return the current architectural
// value; memory operands are first resolved to a linear address ...then
// read through the MMU at the natural width").
func (c *Cpu) readOperand(in *decode.Instruction, op decode.Operand) uint64 {
	switch op.Kind {
	case decode.OperandGPR:
		return c.readGPROperand(op.Reg, op.Width)
	case decode.OperandImm:
		return uint64(op.Imm)
	case decode.OperandAddr:
		return op.Addr
	case decode.OperandMem:
		return c.readMem(in, op.Mem)
	default:
		panic(fault(in, "operand kind %v has no scalar value", op.Kind))
	}
}

// readOperandSigned resolves an operand the same way readOperand does, then
// sign-extends it from its declared width to int64. Used by the integer-to-
// float conversions (CVTSI2SS/CVTSI2SD), which take a signed GPR source.
func (c *Cpu) readOperandSigned(in *decode.Instruction, op decode.Operand) int64 {
	v := c.readOperand(in, op)
	switch op.Width {
	case decode.W8:
		return int64(int8(v))
	case decode.W16:
		return int64(int16(v))
	case decode.W32:
		return int64(int32(v))
	default:
		return int64(v)
	}
}

func (c *Cpu) readMem(in *decode.Instruction, m decode.MemOperand) uint64 {
	addr := c.EffectiveAddress(m)
	var (
		v   uint64
		err error
	)
	switch m.Width {
	case decode.W8:
		var b uint8
		b, err = c.MMU.Read8(addr)
		v = uint64(b)
	case decode.W16:
		var h uint16
		h, err = c.MMU.Read16(addr)
		v = uint64(h)
	case decode.W32:
		var w uint32
		w, err = c.MMU.Read32(addr)
		v = uint64(w)
	default:
		v, err = c.MMU.Read64(addr)
	}
	if err != nil {
		panic(fault(in, "memory read at %#x: %s", addr, err))
	}
	return v
}

func (c *Cpu) writeMem(in *decode.Instruction, m decode.MemOperand, v uint64) {
	addr := c.EffectiveAddress(m)
	var err error
	switch m.Width {
	case decode.W8:
		err = c.MMU.Write8(addr, uint8(v))
	case decode.W16:
		err = c.MMU.Write16(addr, uint16(v))
	case decode.W32:
		err = c.MMU.Write32(addr, uint32(v))
	default:
		err = c.MMU.Write64(addr, v)
	}
	if err != nil {
		panic(fault(in, "memory write at %#x: %s", addr, err))
	}
}

// writeOperand writes back to a register or memory destination (spec.md
// §4.3 step 3), observing GPR sub-register zero-extension rules.
func (c *Cpu) writeOperand(in *decode.Instruction, op decode.Operand, v uint64) {
	switch op.Kind {
	case decode.OperandGPR:
		c.writeGPROperand(op.Reg, op.Width, v)
	case decode.OperandMem:
		c.writeMem(in, op.Mem, v)
	default:
		panic(fault(in, "operand kind %v is not writable", op.Kind))
	}
}

// readXMM resolves an XMM or 128-bit memory operand.
func (c *Cpu) readXMM(in *decode.Instruction, op decode.Operand) types.U128 {
	switch op.Kind {
	case decode.OperandXMM:
		return c.Regs.XMM(op.Reg)
	case decode.OperandMem:
		return c.readMem128(in, op.Mem)
	default:
		panic(fault(in, "operand kind %v has no 128-bit value", op.Kind))
	}
}

func (c *Cpu) readMem128(in *decode.Instruction, m decode.MemOperand) types.U128 {
	addr := c.EffectiveAddress(m)
	var (
		v   types.U128
		err error
	)
	if m.Aligned {
		v, err = c.MMU.Read128(addr)
	} else {
		v, err = c.MMU.Read128Unaligned(addr)
	}
	if err != nil {
		panic(fault(in, "128-bit memory read at %#x: %s", addr, err))
	}
	return v
}

func (c *Cpu) writeXMM(in *decode.Instruction, op decode.Operand, v types.U128) {
	switch op.Kind {
	case decode.OperandXMM:
		c.Regs.SetXMM(op.Reg, v)
	case decode.OperandMem:
		addr := c.EffectiveAddress(op.Mem)
		var err error
		if op.Mem.Aligned {
			err = c.MMU.Write128(addr, v)
		} else {
			err = c.MMU.Write128Unaligned(addr, v)
		}
		if err != nil {
			panic(fault(in, "128-bit memory write at %#x: %s", addr, err))
		}
	default:
		panic(fault(in, "operand kind %v is not a 128-bit destination", op.Kind))
	}
}
