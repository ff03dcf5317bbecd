package cpu

import (
	"github.com/n-stott/x64emulator/cpuimpl"
	"github.com/n-stott/x64emulator/decode"
	"github.com/n-stott/x64emulator/types"
)

// simd_dispatch.go wires the pure-value SIMD families (everything in
// cpuimpl's simd_*.go files except the six flag-bearing ops already in
// simd.go) into exec.go's mnemonic switch. None of these consult c.Mode:
// checkedcpu/simd.go only cross-checks the flag-bearing subset, so the
// dispatcher calls cpuimpl directly here regardless of mode.

// execSimdMove implements MOVSS/MOVSD/MOVAPS/MOVAPD/MOVUPS/MOVUPD/MOVDQA/
// MOVDQU. The packed forms are a plain 128-bit copy; the scalar forms
// replace only the low lane when the source is a register, and zero the
// upper lanes when the source is memory (spec.md §4.1.8's scalar-move
// note).
func (c *Cpu) execSimdMove(in *decode.Instruction) {
	dst := in.Operand(0)
	src := in.Operand(1)
	srcVal := c.readXMM(in, src)
	switch in.Mnemonic {
	case decode.MOVSS:
		if src.Kind == decode.OperandMem {
			c.writeXMM(in, dst, types.U128{}.WithLaneF32(0, srcVal.LaneF32(0)))
		} else {
			c.writeXMM(in, dst, c.readXMM(in, dst).WithLaneF32(0, srcVal.LaneF32(0)))
		}
	case decode.MOVSD:
		if src.Kind == decode.OperandMem {
			c.writeXMM(in, dst, types.U128{}.WithLaneF64(0, srcVal.LaneF64(0)))
		} else {
			c.writeXMM(in, dst, c.readXMM(in, dst).WithLaneF64(0, srcVal.LaneF64(0)))
		}
	default: // MOVAPS/MOVAPD/MOVUPS/MOVUPD/MOVDQA/MOVDQU
		c.writeXMM(in, dst, srcVal)
	}
}

// execSimdBinaryFloat implements the packed/scalar float arithmetic family:
// ADD/SUB/MUL/DIV/MIN/MAX over {PS,PD,SS,SD}.
func (c *Cpu) execSimdBinaryFloat(in *decode.Instruction) {
	dst, src := in.Operand(0), in.Operand(1)
	a, b := c.readXMM(in, dst), c.readXMM(in, src)
	ftz := c.MXCSR.FlushToZero
	var result types.U128
	switch in.Mnemonic {
	case decode.ADDPS:
		result = cpuimpl.Addps(a, b, ftz)
	case decode.ADDPD:
		result = cpuimpl.Addpd(a, b, ftz)
	case decode.ADDSS:
		result = cpuimpl.Addss(a, b)
	case decode.ADDSD:
		result = cpuimpl.Addsd(a, b)
	case decode.SUBPS:
		result = cpuimpl.Subps(a, b, ftz)
	case decode.SUBPD:
		result = cpuimpl.Subpd(a, b, ftz)
	case decode.SUBSS:
		result = cpuimpl.Subss(a, b)
	case decode.SUBSD:
		result = cpuimpl.Subsd(a, b)
	case decode.MULPS:
		result = cpuimpl.Mulps(a, b, ftz)
	case decode.MULPD:
		result = cpuimpl.Mulpd(a, b, ftz)
	case decode.MULSS:
		result = cpuimpl.Mulss(a, b)
	case decode.MULSD:
		result = cpuimpl.Mulsd(a, b)
	case decode.DIVPS:
		result = cpuimpl.Divps(a, b, ftz)
	case decode.DIVPD:
		result = cpuimpl.Divpd(a, b, ftz)
	case decode.DIVSS:
		result = cpuimpl.Divss(a, b)
	case decode.DIVSD:
		result = cpuimpl.Divsd(a, b)
	case decode.MINPS:
		result = cpuimpl.Minps(a, b)
	case decode.MINPD:
		result = cpuimpl.Minpd(a, b)
	case decode.MINSS:
		result = cpuimpl.Minss(a, b)
	case decode.MINSD:
		result = cpuimpl.Minsd(a, b)
	case decode.MAXPS:
		result = cpuimpl.Maxps(a, b)
	case decode.MAXPD:
		result = cpuimpl.Maxpd(a, b)
	case decode.MAXSS:
		result = cpuimpl.Maxss(a, b)
	case decode.MAXSD:
		result = cpuimpl.Maxsd(a, b)
	}
	c.writeXMM(in, dst, result)
}

// execSimdCompare implements CMPPS/CMPPD/CMPSS/CMPSD, all of which take a
// predicate immediate in in.Imm8 (spec.md §4.1.8).
func (c *Cpu) execSimdCompare(in *decode.Instruction) {
	dst, src := in.Operand(0), in.Operand(1)
	a, b := c.readXMM(in, dst), c.readXMM(in, src)
	p := predicateFromDecode(decode.FPPredicate(in.Imm8))
	var result types.U128
	switch in.Mnemonic {
	case decode.CMPPS:
		result = cpuimpl.Cmpps(a, b, p)
	case decode.CMPPD:
		result = cpuimpl.Cmppd(a, b, p)
	case decode.CMPSS:
		result = cpuimpl.Cmpss(a, b, p)
	case decode.CMPSD:
		result = cpuimpl.Cmpsd(a, b, p)
	}
	c.writeXMM(in, dst, result)
}

// execSimdBinaryInt implements the packed-integer binary family: PADD/
// PSUB/PCMPEQ/PCMPGT per lane width, the bitwise PAND/PANDN/POR/PXOR and
// their *PS/*PD aliases, the pack family, PSIGN, and PBLENDW.
func (c *Cpu) execSimdBinaryInt(in *decode.Instruction) {
	dst, src := in.Operand(0), in.Operand(1)
	a, b := c.readXMM(in, dst), c.readXMM(in, src)
	var result types.U128
	switch in.Mnemonic {
	case decode.PADDB:
		result = cpuimpl.Paddb(a, b)
	case decode.PADDW:
		result = cpuimpl.Paddw(a, b)
	case decode.PADDD:
		result = cpuimpl.Paddd(a, b)
	case decode.PADDQ:
		result = cpuimpl.Paddq(a, b)
	case decode.PSUBB:
		result = cpuimpl.Psubb(a, b)
	case decode.PSUBW:
		result = cpuimpl.Psubw(a, b)
	case decode.PSUBD:
		result = cpuimpl.Psubd(a, b)
	case decode.PSUBQ:
		result = cpuimpl.Psubq(a, b)
	case decode.PCMPEQB:
		result = cpuimpl.Pcmpeqb(a, b)
	case decode.PCMPEQW:
		result = cpuimpl.Pcmpeqw(a, b)
	case decode.PCMPEQD:
		result = cpuimpl.Pcmpeqd(a, b)
	case decode.PCMPEQQ:
		result = cpuimpl.Pcmpeqq(a, b)
	case decode.PCMPGTB:
		result = cpuimpl.Pcmpgtb(a, b)
	case decode.PCMPGTW:
		result = cpuimpl.Pcmpgtw(a, b)
	case decode.PCMPGTD:
		result = cpuimpl.Pcmpgtd(a, b)
	case decode.PCMPGTQ:
		result = cpuimpl.Pcmpgtq(a, b)
	case decode.PAND:
		result = cpuimpl.Pand(a, b)
	case decode.PANDN:
		result = cpuimpl.Pandn(a, b)
	case decode.POR:
		result = cpuimpl.Por(a, b)
	case decode.PXOR:
		result = cpuimpl.Pxor(a, b)
	case decode.ANDPD:
		result = cpuimpl.Andpd(a, b)
	case decode.ANDNPD:
		result = cpuimpl.Andnpd(a, b)
	case decode.ORPD:
		result = cpuimpl.Orpd(a, b)
	case decode.XORPD:
		result = cpuimpl.Xorpd(a, b)
	case decode.ANDPS:
		result = cpuimpl.Andps(a, b)
	case decode.ANDNPS:
		result = cpuimpl.Andnps(a, b)
	case decode.ORPS:
		result = cpuimpl.Orps(a, b)
	case decode.XORPS:
		result = cpuimpl.Xorps(a, b)
	case decode.PACKSSWB:
		result = cpuimpl.Packsswb(a, b)
	case decode.PACKSSDW:
		result = cpuimpl.Packssdw(a, b)
	case decode.PACKUSWB:
		result = cpuimpl.Packuswb(a, b)
	case decode.PACKUSDW:
		result = cpuimpl.Packusdw(a, b)
	case decode.PSIGNB:
		result = cpuimpl.Psignb(a, b)
	case decode.PSIGNW:
		result = cpuimpl.Psignw(a, b)
	case decode.PSIGND:
		result = cpuimpl.Psignd(a, b)
	case decode.PBLENDW:
		result = cpuimpl.Pblendw(a, b, in.Imm8)
	}
	c.writeXMM(in, dst, result)
}

// execSimdUnaryInt implements PABSB/PABSW/PABSD.
func (c *Cpu) execSimdUnaryInt(in *decode.Instruction) {
	dst, src := in.Operand(0), in.Operand(1)
	a := c.readXMM(in, src)
	var result types.U128
	switch in.Mnemonic {
	case decode.PABSB:
		result = cpuimpl.Pabsb(a)
	case decode.PABSW:
		result = cpuimpl.Pabsw(a)
	case decode.PABSD:
		result = cpuimpl.Pabsd(a)
	}
	c.writeXMM(in, dst, result)
}

// execSimdShift implements the packed shift family: PSLL/PSRL/PSRA per
// lane width, plus the byte-granularity PSLLDQ/PSRLDQ.
func (c *Cpu) execSimdShift(in *decode.Instruction) {
	dst, src := in.Operand(0), in.Operand(1)
	v := c.readXMM(in, dst)
	count := c.readXMM(in, src).Lane64(0)
	var result types.U128
	switch in.Mnemonic {
	case decode.PSLLW:
		result = cpuimpl.Psllw(v, count)
	case decode.PSLLD:
		result = cpuimpl.Pslld(v, count)
	case decode.PSLLQ:
		result = cpuimpl.Psllq(v, count)
	case decode.PSRLW:
		result = cpuimpl.Psrlw(v, count)
	case decode.PSRLD:
		result = cpuimpl.Psrld(v, count)
	case decode.PSRLQ:
		result = cpuimpl.Psrlq(v, count)
	case decode.PSRAW:
		result = cpuimpl.Psraw(v, count)
	case decode.PSRAD:
		result = cpuimpl.Psrad(v, count)
	case decode.PSLLDQ:
		result = cpuimpl.Pslldq(v, int(count))
	case decode.PSRLDQ:
		result = cpuimpl.Psrldq(v, int(count))
	}
	c.writeXMM(in, dst, result)
}

// execSimdShuffle implements SHUFPS/SHUFPD/PSHUFD/PSHUFLW/PSHUFHW/PSHUFB/
// PALIGNR/INSERTPS/ROUNDSS/ROUNDSD, all of which take an immediate control
// byte from in.Imm8. ROUNDSS/ROUNDSD alone route through the mode-dispatched
// execRoundss/execRoundsd (simd.go) rather than straight to cpuimpl, since
// their immediate can select MXCSR.RoundingControl instead of an explicit
// mode — the one case in this family checkedcpu has something to expand.
func (c *Cpu) execSimdShuffle(in *decode.Instruction) {
	dst, src := in.Operand(0), in.Operand(1)
	a := c.readXMM(in, dst)
	b := c.readXMM(in, src)
	imm := in.Imm8
	var result types.U128
	switch in.Mnemonic {
	case decode.SHUFPS:
		result = cpuimpl.Shufps(a, b, imm)
	case decode.SHUFPD:
		result = cpuimpl.Shufpd(a, b, imm)
	case decode.PSHUFD:
		result = cpuimpl.Pshufd(b, imm)
	case decode.PSHUFLW:
		result = cpuimpl.Pshuflw(b, imm)
	case decode.PSHUFHW:
		result = cpuimpl.Pshufhw(b, imm)
	case decode.PSHUFB:
		result = cpuimpl.Pshufb(a, b)
	case decode.PALIGNR:
		result = cpuimpl.Palignr(a, b, imm)
	case decode.INSERTPS:
		result = cpuimpl.Insertps(a, b, imm)
	case decode.ROUNDSD:
		result = c.execRoundsd(a, b, imm)
	case decode.ROUNDSS:
		result = c.execRoundss(a, b, imm)
	}
	c.writeXMM(in, dst, result)
}

// execSimdConvert implements the CVT*/CVTT* family between GPR, x87/SIMD
// scalar, and packed integer/float representations.
func (c *Cpu) execSimdConvert(in *decode.Instruction) {
	dst, src := in.Operand(0), in.Operand(1)
	mode := c.MXCSR.RoundingControl
	switch in.Mnemonic {
	case decode.CVTSI2SS:
		c.writeXMM(in, dst, cpuimpl.Cvtsi2ss(c.readXMM(in, dst), c.readOperandSigned(in, src)))
	case decode.CVTSI2SD:
		c.writeXMM(in, dst, cpuimpl.Cvtsi2sd(c.readXMM(in, dst), c.readOperandSigned(in, src)))
	case decode.CVTTSS2SI:
		c.writeOperand(in, dst, uint64(cpuimpl.Cvttss2si(c.readXMM(in, src))))
	case decode.CVTTSD2SI:
		c.writeOperand(in, dst, uint64(cpuimpl.Cvttsd2si(c.readXMM(in, src))))
	case decode.CVTSS2SI:
		c.writeOperand(in, dst, uint64(cpuimpl.Cvtss2si(c.readXMM(in, src), mode)))
	case decode.CVTSD2SI:
		c.writeOperand(in, dst, uint64(cpuimpl.Cvtsd2si(c.readXMM(in, src), mode)))
	case decode.CVTSS2SD:
		c.writeXMM(in, dst, cpuimpl.Cvtss2sd(c.readXMM(in, dst), c.readXMM(in, src)))
	case decode.CVTSD2SS:
		c.writeXMM(in, dst, cpuimpl.Cvtsd2ss(c.readXMM(in, dst), c.readXMM(in, src)))
	case decode.CVTDQ2PD:
		c.writeXMM(in, dst, cpuimpl.Cvtdq2pd(c.readXMM(in, src)))
	case decode.CVTDQ2PS:
		c.writeXMM(in, dst, cpuimpl.Cvtdq2ps(c.readXMM(in, src)))
	case decode.CVTPD2DQ:
		c.writeXMM(in, dst, cpuimpl.Cvtpd2dq(c.readXMM(in, src), mode))
	case decode.CVTTPD2DQ:
		c.writeXMM(in, dst, cpuimpl.Cvttpd2dq(c.readXMM(in, src)))
	case decode.CVTPS2DQ:
		c.writeXMM(in, dst, cpuimpl.Cvtps2dq(c.readXMM(in, src), mode))
	case decode.CVTTPS2DQ:
		c.writeXMM(in, dst, cpuimpl.Cvttps2dq(c.readXMM(in, src)))
	case decode.CVTPD2PS:
		c.writeXMM(in, dst, cpuimpl.Cvtpd2ps(c.readXMM(in, src)))
	case decode.CVTPS2PD:
		c.writeXMM(in, dst, cpuimpl.Cvtps2pd(c.readXMM(in, src)))
	}
}
