package cpu

import (
	"github.com/n-stott/x64emulator/cpuimpl"
	"github.com/n-stott/x64emulator/decode"
)

// repKindFromDecode maps the decoder's prefix enum onto cpuimpl's RepKind.
func repKindFromDecode(p decode.RepPrefix) cpuimpl.RepKind {
	switch p {
	case decode.Rep:
		return cpuimpl.Rep
	case decode.RepNZ:
		return cpuimpl.RepNZ
	case decode.RepZ:
		return cpuimpl.RepZ
	default:
		return cpuimpl.RepNone
	}
}

func (c *Cpu) stringDirection() cpuimpl.Direction {
	if c.Flags.DF {
		return cpuimpl.Backward
	}
	return cpuimpl.Forward
}

// widthBytes converts a decode.Width (in bits) to its byte count.
func widthBytes(w decode.Width) int {
	return int(w) / 8
}

// execMovs implements MOVS: copy [RSI] to [RDI] at the given width,
// stepping both indices by ±width/8 (spec.md §4.1.9), looping under the
// REP prefix the decoder names.
func (c *Cpu) execMovs(in *decode.Instruction, w decode.Width, rep decode.RepPrefix) {
	wb := widthBytes(w)
	kind := repKindFromDecode(rep)
	dir := c.stringDirection()
	step := cpuimpl.StringStep(wb, dir)
	for cpuimpl.RepContinues(kind, c.Regs.ReadGPR(RCX), c.Flags.ZF) {
		si, di := c.Regs.ReadGPR(RSI), c.Regs.ReadGPR(RDI)
		v := c.readMemWidth(in, si, w)
		c.writeMemWidth(in, di, w, v)
		c.Regs.WriteGPR64(RSI, uint64(int64(si)+step))
		c.Regs.WriteGPR64(RDI, uint64(int64(di)+step))
		if kind == cpuimpl.RepNone {
			break
		}
		c.Regs.WriteGPR64(RCX, c.Regs.ReadGPR(RCX)-1)
	}
}

// execStos stores RAX (at width w) to [RDI], stepping RDI.
func (c *Cpu) execStos(in *decode.Instruction, w decode.Width, rep decode.RepPrefix) {
	wb := widthBytes(w)
	kind := repKindFromDecode(rep)
	dir := c.stringDirection()
	step := cpuimpl.StringStep(wb, dir)
	acc := c.readGPROperand(RAX, w)
	for cpuimpl.RepContinues(kind, c.Regs.ReadGPR(RCX), c.Flags.ZF) {
		di := c.Regs.ReadGPR(RDI)
		c.writeMemWidth(in, di, w, acc)
		c.Regs.WriteGPR64(RDI, uint64(int64(di)+step))
		if kind == cpuimpl.RepNone {
			break
		}
		c.Regs.WriteGPR64(RCX, c.Regs.ReadGPR(RCX)-1)
	}
}

// execLods loads [RSI] into RAX (at width w), stepping RSI. LODS has no
// REP-loop form worth repeating (real programs never prefix it), but the
// decoder's Rep field is honored anyway for uniformity.
func (c *Cpu) execLods(in *decode.Instruction, w decode.Width, rep decode.RepPrefix) {
	wb := widthBytes(w)
	kind := repKindFromDecode(rep)
	dir := c.stringDirection()
	step := cpuimpl.StringStep(wb, dir)
	for cpuimpl.RepContinues(kind, c.Regs.ReadGPR(RCX), c.Flags.ZF) {
		si := c.Regs.ReadGPR(RSI)
		v := c.readMemWidth(in, si, w)
		c.writeGPROperand(RAX, w, v)
		c.Regs.WriteGPR64(RSI, uint64(int64(si)+step))
		if kind == cpuimpl.RepNone {
			break
		}
		c.Regs.WriteGPR64(RCX, c.Regs.ReadGPR(RCX)-1)
	}
}

// execScas compares RAX against [RDI] (cmp, discarding the result except
// for flags), stepping RDI; REPZ/REPNZ read ZF from the just-computed
// comparison each iteration (spec.md §4.1.9).
func (c *Cpu) execScas(in *decode.Instruction, w decode.Width, rep decode.RepPrefix) {
	wb := widthBytes(w)
	kind := repKindFromDecode(rep)
	dir := c.stringDirection()
	step := cpuimpl.StringStep(wb, dir)
	for cpuimpl.RepContinues(kind, c.Regs.ReadGPR(RCX), c.Flags.ZF) {
		di := c.Regs.ReadGPR(RDI)
		acc := c.readGPROperand(RAX, w)
		mem := c.readMemWidth(in, di, w)
		c.execCmp(w, acc, mem)
		c.Regs.WriteGPR64(RDI, uint64(int64(di)+step))
		if kind == cpuimpl.RepNone {
			break
		}
		c.Regs.WriteGPR64(RCX, c.Regs.ReadGPR(RCX)-1)
	}
}

// execCmps compares [RSI] against [RDI], stepping both.
func (c *Cpu) execCmps(in *decode.Instruction, w decode.Width, rep decode.RepPrefix) {
	wb := widthBytes(w)
	kind := repKindFromDecode(rep)
	dir := c.stringDirection()
	step := cpuimpl.StringStep(wb, dir)
	for cpuimpl.RepContinues(kind, c.Regs.ReadGPR(RCX), c.Flags.ZF) {
		si, di := c.Regs.ReadGPR(RSI), c.Regs.ReadGPR(RDI)
		a := c.readMemWidth(in, si, w)
		b := c.readMemWidth(in, di, w)
		c.execCmp(w, a, b)
		c.Regs.WriteGPR64(RSI, uint64(int64(si)+step))
		c.Regs.WriteGPR64(RDI, uint64(int64(di)+step))
		if kind == cpuimpl.RepNone {
			break
		}
		c.Regs.WriteGPR64(RCX, c.Regs.ReadGPR(RCX)-1)
	}
}

func (c *Cpu) readMemWidth(in *decode.Instruction, addr uint64, w decode.Width) uint64 {
	return c.readMem(in, decode.MemOperand{BaseReg: -1, IndexReg: -1, Width: w, Displacement: int64(addr)})
}

func (c *Cpu) writeMemWidth(in *decode.Instruction, addr uint64, w decode.Width, v uint64) {
	c.writeMem(in, decode.MemOperand{BaseReg: -1, IndexReg: -1, Width: w, Displacement: int64(addr)}, v)
}
