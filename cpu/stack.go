package cpu

import "github.com/n-stott/x64emulator/decode"

// Push implements spec.md §4.3's stack contract: RSP is always adjusted by
// 8 regardless of operand width (the stack is 64-bit wide in this core),
// and the value is written zero-extended.
func (c *Cpu) Push(in *decode.Instruction, v uint64) {
	sp := c.Regs.ReadGPR(RSP) - 8
	c.Regs.WriteGPR64(RSP, sp)
	if err := c.MMU.Write64(sp, v); err != nil {
		panic(fault(in, "push at %#x: %s", sp, err))
	}
}

// Pop reads through the MMU then post-increments RSP by 8.
func (c *Cpu) Pop(in *decode.Instruction) uint64 {
	sp := c.Regs.ReadGPR(RSP)
	v, err := c.MMU.Read64(sp)
	if err != nil {
		panic(fault(in, "pop at %#x: %s", sp, err))
	}
	c.Regs.WriteGPR64(RSP, sp+8)
	return v
}

// execCall pushes the return address (the instruction following the CALL,
// already computed by the decoder as in.Address + instruction length and
// carried in operand 1 for this core's contract — see decode.Instruction)
// then writes RIP to the target, notifying the VM hook (spec.md §4.3
// "Calls and returns", §6 "The VM hooks").
func (c *Cpu) execCall(in *decode.Instruction, returnAddr, target uint64) {
	c.Push(in, returnAddr)
	c.Regs.SetRIP(target)
	if c.Hooks != nil {
		c.Hooks.OnCall(target)
	}
}

// execRet pops into RIP; imm, when non-zero, is added to RSP afterward
// (RET imm16).
func (c *Cpu) execRet(in *decode.Instruction, imm uint64) {
	target := c.Pop(in)
	c.Regs.SetRIP(target)
	if imm != 0 {
		c.Regs.WriteGPR64(RSP, c.Regs.ReadGPR(RSP)+imm)
	}
	if c.Hooks != nil {
		c.Hooks.OnReturn(target)
	}
}
