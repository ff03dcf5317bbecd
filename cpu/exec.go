package cpu

import (
	"github.com/n-stott/x64emulator/cpuimpl"
	"github.com/n-stott/x64emulator/decode"
	"github.com/n-stott/x64emulator/host"
	"github.com/n-stott/x64emulator/types"
)

// dispatch is the single large tag-match spec.md §9 calls out by name: the
// decoder emits a tag drawn from a closed set (decode.Mnemonic) and this
// switch must handle each one. It is intentionally flat rather than
// decomposed into a table of function pointers, matching vm/executor.go's
// own instruction-type switch and preserving the exhaustiveness property
// spec.md asks implementers to keep even when splitting by family.
func (c *Cpu) dispatch(in *decode.Instruction) {
	switch in.Mnemonic {

	// ---- integer arithmetic -------------------------------------------------
	case decode.ADD:
		c.binaryArith(in, c.execAdd)
	case decode.ADC:
		c.binaryArith(in, c.execAdc)
	case decode.SUB:
		c.binaryArith(in, c.execSub)
	case decode.SBB:
		c.binaryArith(in, c.execSbb)
	case decode.CMP:
		dst := in.Operand(0)
		src := in.Operand(1)
		c.execCmp(dst.Width, c.readOperand(in, dst), c.readOperand(in, src))
	case decode.AND:
		c.binaryArith(in, c.execAnd)
	case decode.OR:
		c.binaryArith(in, c.execOr)
	case decode.XOR:
		c.binaryArith(in, c.execXor)
	case decode.TEST:
		dst := in.Operand(0)
		src := in.Operand(1)
		c.execTest(dst.Width, c.readOperand(in, dst), c.readOperand(in, src))
	case decode.NOT:
		c.unaryRMW(in, c.execNot)
	case decode.NEG:
		c.unaryRMW(in, c.execNeg)
	case decode.INC:
		c.unaryRMW(in, c.execInc)
	case decode.DEC:
		c.unaryRMW(in, c.execDec)

	case decode.MUL:
		c.execMulForm(in, false)
	case decode.IMUL:
		switch in.NumOperands {
		case 3:
			// three-operand form: dst = src * imm, no implicit RAX:RDX.
			dst, src, imm := in.Operand(0), in.Operand(1), in.Operand(2)
			_, lower := c.execImul(dst.Width, c.readOperand(in, src), c.readOperand(in, imm))
			c.writeOperand(in, dst, lower)
		case 2:
			// two-operand form: dst = dst * src, no implicit RAX:RDX.
			dst, src := in.Operand(0), in.Operand(1)
			_, lower := c.execImul(dst.Width, c.readOperand(in, dst), c.readOperand(in, src))
			c.writeOperand(in, dst, lower)
		default:
			// one-operand form: RDX:RAX = RAX * src.
			c.execMulForm(in, true)
		}
	case decode.DIV:
		c.execDivForm(in, false)
	case decode.IDIV:
		c.execDivForm(in, true)

	// ---- shift/rotate ---------------------------------------------------
	case decode.SHL:
		c.shiftOp(in, c.execShl)
	case decode.SHR:
		c.shiftOp(in, c.execShr)
	case decode.SAR:
		c.shiftOp(in, c.execSar)
	case decode.ROL:
		c.shiftOp(in, c.execRol)
	case decode.ROR:
		c.shiftOp(in, c.execRor)
	case decode.RCL:
		c.shiftOp(in, c.execRcl)
	case decode.RCR:
		c.shiftOp(in, c.execRcr)
	case decode.SHLD:
		dst, src, cnt := in.Operand(0), in.Operand(1), in.Operand(2)
		result := c.execShld(dst.Width, c.readOperand(in, dst), c.readOperand(in, src), uint(c.readOperand(in, cnt)))
		c.writeOperand(in, dst, result)
	case decode.SHRD:
		dst, src, cnt := in.Operand(0), in.Operand(1), in.Operand(2)
		result := c.execShrd(dst.Width, c.readOperand(in, dst), c.readOperand(in, src), uint(c.readOperand(in, cnt)))
		c.writeOperand(in, dst, result)

	// ---- bit-test ---------------------------------------------------------
	case decode.BT:
		base, idx := in.Operand(0), in.Operand(1)
		c.execBt(base.Width, c.readOperand(in, base), uint(c.readOperand(in, idx)))
	case decode.BTR:
		c.bitRMW(in, c.execBtr)
	case decode.BTS:
		c.bitRMW(in, c.execBts)
	case decode.BTC:
		c.bitRMW(in, c.execBtc)

	// ---- scan & count -------------------------------------------------------
	case decode.BSR:
		dst, src := in.Operand(0), in.Operand(1)
		c.writeOperand(in, dst, c.execBsr(src.Width, c.readOperand(in, src)))
	case decode.BSF:
		dst, src := in.Operand(0), in.Operand(1)
		c.writeOperand(in, dst, c.execBsf(src.Width, c.readOperand(in, src)))
	case decode.TZCNT:
		dst, src := in.Operand(0), in.Operand(1)
		c.writeOperand(in, dst, c.execTzcnt(src.Width, c.readOperand(in, src)))
	case decode.POPCNT:
		dst, src := in.Operand(0), in.Operand(1)
		c.writeOperand(in, dst, c.execPopcnt(src.Width, c.readOperand(in, src)))
	case decode.BSWAP:
		dst := in.Operand(0)
		if dst.Width == decode.W32 {
			c.writeOperand(in, dst, uint64(cpuimpl.Bswap32(uint32(c.readOperand(in, dst)))))
		} else {
			c.writeOperand(in, dst, cpuimpl.Bswap64(c.readOperand(in, dst)))
		}

	// ---- compare-and-exchange -----------------------------------------------
	case decode.CMPXCHG:
		c.execCmpxchgInstr(in)

	// ---- x87 ------------------------------------------------------------
	case decode.FADD, decode.FSUB, decode.FMUL, decode.FDIV:
		c.execX87Arith(in)
	case decode.FCOMI:
		a := c.FPU.StackRead(0)
		b := c.readST(in, in.Operand(0))
		c.execFcomi(a, b)
	case decode.FUCOMI:
		a := c.FPU.StackRead(0)
		b := c.readST(in, in.Operand(0))
		c.execFucomi(a, b)
	case decode.FRNDINT:
		c.FPU.SetStack(0, c.execFrndint(c.FPU.StackRead(0)))
	case decode.FLD:
		c.FPU.Push(c.readST(in, in.Operand(0)))
	case decode.FSTP:
		v := c.FPU.StackRead(0)
		if in.Operand(0).Kind == decode.OperandMem {
			addr := c.EffectiveAddress(in.Operand(0).Mem)
			if err := c.MMU.Write80(addr, v); err != nil {
				panic(fault(in, "FSTP write at %#x: %s", addr, err))
			}
		}
		c.FPU.Pop()
	case decode.FLD1:
		c.FPU.Push(types.Float80FromFloat64(1.0))
	case decode.FLDZ:
		c.FPU.Push(types.Float80FromFloat64(0.0))

	// ---- SIMD -------------------------------------------------------------
	case decode.MOVSS, decode.MOVSD, decode.MOVAPS, decode.MOVAPD, decode.MOVUPS, decode.MOVUPD, decode.MOVDQA, decode.MOVDQU:
		c.execSimdMove(in)
	case decode.ADDPS, decode.ADDPD, decode.ADDSS, decode.ADDSD,
		decode.SUBPS, decode.SUBPD, decode.SUBSS, decode.SUBSD,
		decode.MULPS, decode.MULPD, decode.MULSS, decode.MULSD,
		decode.DIVPS, decode.DIVPD, decode.DIVSS, decode.DIVSD,
		decode.MINPS, decode.MINPD, decode.MINSS, decode.MINSD,
		decode.MAXPS, decode.MAXPD, decode.MAXSS, decode.MAXSD:
		c.execSimdBinaryFloat(in)
	case decode.SQRTSS:
		dst := in.Operand(0)
		c.writeXMM(in, dst, cpuimpl.Sqrtss(c.readXMM(in, dst)))
	case decode.SQRTSD:
		dst := in.Operand(0)
		c.writeXMM(in, dst, cpuimpl.Sqrtsd(c.readXMM(in, dst)))
	case decode.CMPPS, decode.CMPPD, decode.CMPSS, decode.CMPSD:
		c.execSimdCompare(in)
	case decode.COMISS:
		a, b := in.Operand(0), in.Operand(1)
		c.execComiss(c.readXMM(in, a), c.readXMM(in, b))
	case decode.COMISD:
		a, b := in.Operand(0), in.Operand(1)
		c.execComisd(c.readXMM(in, a), c.readXMM(in, b))
	case decode.UCOMISS:
		a, b := in.Operand(0), in.Operand(1)
		c.execUcomiss(c.readXMM(in, a), c.readXMM(in, b))
	case decode.UCOMISD:
		a, b := in.Operand(0), in.Operand(1)
		c.execUcomisd(c.readXMM(in, a), c.readXMM(in, b))
	case decode.PADDB, decode.PADDW, decode.PADDD, decode.PADDQ,
		decode.PSUBB, decode.PSUBW, decode.PSUBD, decode.PSUBQ,
		decode.PCMPEQB, decode.PCMPEQW, decode.PCMPEQD, decode.PCMPEQQ,
		decode.PCMPGTB, decode.PCMPGTW, decode.PCMPGTD, decode.PCMPGTQ,
		decode.PAND, decode.PANDN, decode.POR, decode.PXOR,
		decode.ANDPD, decode.ANDNPD, decode.ORPD, decode.XORPD,
		decode.ANDPS, decode.ANDNPS, decode.ORPS, decode.XORPS,
		decode.PACKSSWB, decode.PACKSSDW, decode.PACKUSWB, decode.PACKUSDW,
		decode.PSIGNB, decode.PSIGNW, decode.PSIGND,
		decode.PBLENDW:
		c.execSimdBinaryInt(in)
	case decode.PABSB, decode.PABSW, decode.PABSD:
		c.execSimdUnaryInt(in)
	case decode.PSLLW, decode.PSLLD, decode.PSLLQ, decode.PSRLW, decode.PSRLD, decode.PSRLQ,
		decode.PSRAW, decode.PSRAD, decode.PSLLDQ, decode.PSRLDQ:
		c.execSimdShift(in)
	case decode.SHUFPS, decode.SHUFPD, decode.PSHUFD, decode.PSHUFLW, decode.PSHUFHW, decode.PSHUFB,
		decode.PALIGNR, decode.INSERTPS, decode.ROUNDSS, decode.ROUNDSD:
		c.execSimdShuffle(in)
	case decode.CVTSI2SS, decode.CVTSI2SD, decode.CVTTSS2SI, decode.CVTTSD2SI,
		decode.CVTSS2SI, decode.CVTSD2SI, decode.CVTSS2SD, decode.CVTSD2SS,
		decode.CVTDQ2PD, decode.CVTDQ2PS, decode.CVTPD2DQ, decode.CVTTPD2DQ,
		decode.CVTPS2DQ, decode.CVTTPS2DQ, decode.CVTPD2PS, decode.CVTPS2PD:
		c.execSimdConvert(in)
	case decode.PMOVMSKB:
		dst, src := in.Operand(0), in.Operand(1)
		c.writeOperand(in, dst, uint64(cpuimpl.Pmovmskb(c.readXMM(in, src))))
	case decode.MOVMSKPS:
		dst, src := in.Operand(0), in.Operand(1)
		c.writeOperand(in, dst, uint64(cpuimpl.Movmskps(c.readXMM(in, src))))
	case decode.MOVMSKPD:
		dst, src := in.Operand(0), in.Operand(1)
		c.writeOperand(in, dst, uint64(cpuimpl.Movmskpd(c.readXMM(in, src))))
	case decode.PTEST:
		a, b := in.Operand(0), in.Operand(1)
		c.execPtest(c.readXMM(in, a), c.readXMM(in, b))
	case decode.PCMPISTRI:
		a, b := in.Operand(0), in.Operand(1)
		idx := c.execPcmpistri(c.readXMM(in, a), c.readXMM(in, b), in.Imm8)
		c.Regs.WriteGPR32(RCX, uint32(idx))

	// ---- string -------------------------------------------------------------
	case decode.MOVS:
		c.execMovs(in, in.Operand(0).Width, in.Rep)
	case decode.STOS:
		c.execStos(in, in.Operand(0).Width, in.Rep)
	case decode.LODS:
		c.execLods(in, in.Operand(0).Width, in.Rep)
	case decode.SCAS:
		c.execScas(in, in.Operand(0).Width, in.Rep)
	case decode.CMPS:
		c.execCmps(in, in.Operand(0).Width, in.Rep)

	// ---- stack / control flow -----------------------------------------------
	case decode.PUSH:
		op := in.Operand(0)
		c.Push(in, c.readOperand(in, op))
	case decode.POP:
		op := in.Operand(0)
		c.writeOperand(in, op, c.Pop(in))
	case decode.CALL:
		target := in.Operand(0).Addr
		returnAddr := in.Operand(1).Addr
		c.execCall(in, returnAddr, target)
	case decode.RET:
		c.execRet(in, 0)
	case decode.RETIMM:
		c.execRet(in, uint64(in.Operand(0).Imm))
	case decode.JMP:
		target := in.Operand(0).Addr
		c.Regs.SetRIP(target)
		if c.Hooks != nil {
			c.Hooks.OnJump(target)
		}
	case decode.JCC:
		if c.evalCond(in.Operand(0).Cond) {
			target := in.Operand(1).Addr
			c.Regs.SetRIP(target)
			if c.Hooks != nil {
				c.Hooks.OnJump(target)
			}
		}
	case decode.PUSHFQ:
		c.Push(in, c.ToRFLAGS())
	case decode.POPFQ:
		c.FromRFLAGS(c.Pop(in))
	case decode.FXSAVE:
		c.FXSAVE(in, c.EffectiveAddress(in.Operand(0).Mem))
	case decode.FXRSTOR:
		c.FXRSTOR(in, c.EffectiveAddress(in.Operand(0).Mem))
	case decode.SYSCALL:
		if c.Hooks != nil {
			c.Hooks.OnSyscall()
		}
	case decode.CPUID:
		// CPUID takes its leaf/subleaf from RAX/RCX and returns
		// EAX:EBX:ECX:EDX in RAX:RBX:RCX:RDX, the real x86-64 calling
		// convention (spec.md §6's host feature-detection passthrough).
		leaf := uint32(c.Regs.ReadGPR(RAX))
		subleaf := uint32(c.Regs.ReadGPR(RCX))
		r := host.CPUID(leaf, subleaf)
		c.Regs.WriteGPR32(RAX, r.A)
		c.Regs.WriteGPR32(RBX, r.B)
		c.Regs.WriteGPR32(RCX, r.C)
		c.Regs.WriteGPR32(RDX, r.D)

	case decode.UD2, decode.HLT:
		// Both are deliberate abort points: they raise a Fault, which Exec
		// returns to the caller like any other invariant violation.
		panic(fault(in, "%v reached: guest requested abort", in.Mnemonic))

	default:
		panic(fault(in, "unrecognized decoded-instruction tag %v", in.Mnemonic))
	}
}

func (c *Cpu) evalCond(cc decode.ConditionCode) bool {
	f := &c.Flags
	switch cc {
	case decode.CondO:
		return f.OF
	case decode.CondNO:
		return !f.OF
	case decode.CondB:
		return f.CF
	case decode.CondAE:
		return !f.CF
	case decode.CondE:
		return f.ZF
	case decode.CondNE:
		return !f.ZF
	case decode.CondBE:
		return f.CF || f.ZF
	case decode.CondA:
		return !f.CF && !f.ZF
	case decode.CondS:
		return f.SF
	case decode.CondNS:
		return !f.SF
	case decode.CondP:
		return f.PF
	case decode.CondNP:
		return !f.PF
	case decode.CondL:
		return f.SF != f.OF
	case decode.CondGE:
		return f.SF == f.OF
	case decode.CondLE:
		return f.ZF || f.SF != f.OF
	case decode.CondG:
		return !f.ZF && f.SF == f.OF
	default:
		return false
	}
}
