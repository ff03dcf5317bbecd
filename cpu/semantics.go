package cpu

// semantics.go bridges the dispatcher's runtime-known operand width
// (decode.Width, fixed by the decoded instruction) to cpuimpl/checkedcpu's
// compile-time Width type parameter. Each selDispatch-style helper below
// is generic over T and picks cpuimpl vs checkedcpu per c.Mode (spec.md
// §4.2's "selection between pure and checked implementations"); each
// execFamily function then switches on decode.Width once to instantiate
// the right T. This is the Go expression of spec.md §9's "huge exec
// dispatch table" design note: one exhaustive switch per family, kept
// flat rather than hidden behind reflection.

import (
	"github.com/n-stott/x64emulator/checkedcpu"
	"github.com/n-stott/x64emulator/cpuimpl"
	"github.com/n-stott/x64emulator/decode"
	"github.com/n-stott/x64emulator/flags"
)

func selAdd[T cpuimpl.Width](mode Mode, dst, src T, f *flags.Arith) T {
	if mode == ModeChecked {
		return checkedcpu.Add(dst, src, f)
	}
	return cpuimpl.Add(dst, src, f)
}

func selAdc[T cpuimpl.Width](mode Mode, dst, src T, cin bool, f *flags.Arith) T {
	if mode == ModeChecked {
		return checkedcpu.Adc(dst, src, cin, f)
	}
	return cpuimpl.Adc(dst, src, cin, f)
}

func selSub[T cpuimpl.Width](mode Mode, dst, src T, f *flags.Arith) T {
	if mode == ModeChecked {
		return checkedcpu.Sub(dst, src, f)
	}
	return cpuimpl.Sub(dst, src, f)
}

func selSbb[T cpuimpl.Width](mode Mode, dst, src T, bin bool, f *flags.Arith) T {
	if mode == ModeChecked {
		return checkedcpu.Sbb(dst, src, bin, f)
	}
	return cpuimpl.Sbb(dst, src, bin, f)
}

func selCmp[T cpuimpl.Width](mode Mode, dst, src T, f *flags.Arith) {
	if mode == ModeChecked {
		checkedcpu.Cmp(dst, src, f)
		return
	}
	cpuimpl.Cmp(dst, src, f)
}

func selNeg[T cpuimpl.Width](mode Mode, dst T, f *flags.Arith) T {
	if mode == ModeChecked {
		return checkedcpu.Neg(dst, f)
	}
	return cpuimpl.Neg(dst, f)
}

func selInc[T cpuimpl.Width](mode Mode, dst T, f *flags.Arith) T {
	if mode == ModeChecked {
		return checkedcpu.Inc(dst, f)
	}
	return cpuimpl.Inc(dst, f)
}

func selDec[T cpuimpl.Width](mode Mode, dst T, f *flags.Arith) T {
	if mode == ModeChecked {
		return checkedcpu.Dec(dst, f)
	}
	return cpuimpl.Dec(dst, f)
}

func selMul[T cpuimpl.Width](mode Mode, dst, src T, f *flags.Arith) (upper, lower T) {
	if mode == ModeChecked {
		return checkedcpu.Mul(dst, src, f)
	}
	return cpuimpl.Mul(dst, src, f)
}

func selImul[T cpuimpl.Width](mode Mode, dst, src T, f *flags.Arith) (upper, lower T) {
	if mode == ModeChecked {
		return checkedcpu.Imul(dst, src, f)
	}
	return cpuimpl.Imul(dst, src, f)
}

func selDiv[T cpuimpl.Width](mode Mode, upper, lower, divisor T) (q, r T) {
	if mode == ModeChecked {
		return checkedcpu.Div(upper, lower, divisor)
	}
	return cpuimpl.Div(upper, lower, divisor)
}

func selIdiv[T cpuimpl.Width](mode Mode, upper, lower, divisor T) (q, r T) {
	if mode == ModeChecked {
		return checkedcpu.Idiv(upper, lower, divisor)
	}
	return cpuimpl.Idiv(upper, lower, divisor)
}

func selAnd[T cpuimpl.Width](mode Mode, dst, src T, f *flags.Arith) T {
	if mode == ModeChecked {
		return checkedcpu.And(dst, src, f)
	}
	return cpuimpl.And(dst, src, f)
}

func selOr[T cpuimpl.Width](mode Mode, dst, src T, f *flags.Arith) T {
	if mode == ModeChecked {
		return checkedcpu.Or(dst, src, f)
	}
	return cpuimpl.Or(dst, src, f)
}

func selXor[T cpuimpl.Width](mode Mode, dst, src T, f *flags.Arith) T {
	if mode == ModeChecked {
		return checkedcpu.Xor(dst, src, f)
	}
	return cpuimpl.Xor(dst, src, f)
}

func selTest[T cpuimpl.Width](mode Mode, dst, src T, f *flags.Arith) {
	if mode == ModeChecked {
		checkedcpu.Test(dst, src, f)
		return
	}
	cpuimpl.Test(dst, src, f)
}

func selShl[T cpuimpl.Width](mode Mode, dst T, count uint, f *flags.Arith) T {
	if mode == ModeChecked {
		return checkedcpu.Shl(dst, count, f)
	}
	return cpuimpl.Shl(dst, count, f)
}

func selShr[T cpuimpl.Width](mode Mode, dst T, count uint, f *flags.Arith) T {
	if mode == ModeChecked {
		return checkedcpu.Shr(dst, count, f)
	}
	return cpuimpl.Shr(dst, count, f)
}

func selSar[T cpuimpl.Width](mode Mode, dst T, count uint, f *flags.Arith) T {
	if mode == ModeChecked {
		return checkedcpu.Sar(dst, count, f)
	}
	return cpuimpl.Sar(dst, count, f)
}

func selShld[T cpuimpl.Width](mode Mode, dst, src T, count uint, f *flags.Arith) T {
	if mode == ModeChecked {
		return checkedcpu.Shld(dst, src, count, f)
	}
	return cpuimpl.Shld(dst, src, count, f)
}

func selShrd[T cpuimpl.Width](mode Mode, dst, src T, count uint, f *flags.Arith) T {
	if mode == ModeChecked {
		return checkedcpu.Shrd(dst, src, count, f)
	}
	return cpuimpl.Shrd(dst, src, count, f)
}

func selRol[T cpuimpl.Width](mode Mode, dst T, count uint, f *flags.Arith) T {
	if mode == ModeChecked {
		return checkedcpu.Rol(dst, count, f)
	}
	return cpuimpl.Rol(dst, count, f)
}

func selRor[T cpuimpl.Width](mode Mode, dst T, count uint, f *flags.Arith) T {
	if mode == ModeChecked {
		return checkedcpu.Ror(dst, count, f)
	}
	return cpuimpl.Ror(dst, count, f)
}

func selRcl[T cpuimpl.Width](mode Mode, dst T, count uint, cin bool, f *flags.Arith) T {
	if mode == ModeChecked {
		return checkedcpu.Rcl(dst, count, cin, f)
	}
	return cpuimpl.Rcl(dst, count, cin, f)
}

func selRcr[T cpuimpl.Width](mode Mode, dst T, count uint, cin bool, f *flags.Arith) T {
	if mode == ModeChecked {
		return checkedcpu.Rcr(dst, count, cin, f)
	}
	return cpuimpl.Rcr(dst, count, cin, f)
}

func selBt[T cpuimpl.Width](mode Mode, base T, index uint, f *flags.Arith) {
	if mode == ModeChecked {
		checkedcpu.Bt(base, index, f)
		return
	}
	cpuimpl.Bt(base, index, f)
}

func selBtr[T cpuimpl.Width](mode Mode, base T, index uint, f *flags.Arith) T {
	if mode == ModeChecked {
		return checkedcpu.Btr(base, index, f)
	}
	return cpuimpl.Btr(base, index, f)
}

func selBts[T cpuimpl.Width](mode Mode, base T, index uint, f *flags.Arith) T {
	if mode == ModeChecked {
		return checkedcpu.Bts(base, index, f)
	}
	return cpuimpl.Bts(base, index, f)
}

func selBtc[T cpuimpl.Width](mode Mode, base T, index uint, f *flags.Arith) T {
	if mode == ModeChecked {
		return checkedcpu.Btc(base, index, f)
	}
	return cpuimpl.Btc(base, index, f)
}

func selCmpxchg[T cpuimpl.Width](mode Mode, acc, dest T, f *flags.Arith) {
	if mode == ModeChecked {
		checkedcpu.Cmpxchg(acc, dest, f)
		return
	}
	cpuimpl.Cmpxchg(acc, dest, f)
}

func selBsr[T cpuimpl.Width](mode Mode, src T, f *flags.Arith) T {
	if mode == ModeChecked {
		return checkedcpu.Bsr(src, f)
	}
	return cpuimpl.Bsr(src, f)
}

func selBsf[T cpuimpl.Width](mode Mode, src T, f *flags.Arith) T {
	if mode == ModeChecked {
		return checkedcpu.Bsf(src, f)
	}
	return cpuimpl.Bsf(src, f)
}

func selTzcnt[T cpuimpl.Width](mode Mode, src T, f *flags.Arith) T {
	if mode == ModeChecked {
		return checkedcpu.Tzcnt(src, f)
	}
	return cpuimpl.Tzcnt(src, f)
}

func selPopcnt[T cpuimpl.Width](mode Mode, src T, f *flags.Arith) T {
	if mode == ModeChecked {
		return checkedcpu.Popcnt(src, f)
	}
	return cpuimpl.Popcnt(src, f)
}

// The exec* functions below switch once on decode.Width to instantiate the
// generic sel* helper at the right type, then widen the result back to
// uint64 for the operand-write path in address.go.

func (c *Cpu) execAdd(w decode.Width, dst, src uint64) uint64 {
	switch w {
	case decode.W8:
		return uint64(selAdd(c.Mode, uint8(dst), uint8(src), &c.Flags))
	case decode.W16:
		return uint64(selAdd(c.Mode, uint16(dst), uint16(src), &c.Flags))
	case decode.W32:
		return uint64(selAdd(c.Mode, uint32(dst), uint32(src), &c.Flags))
	default:
		return selAdd(c.Mode, dst, src, &c.Flags)
	}
}

func (c *Cpu) execAdc(w decode.Width, dst, src uint64) uint64 {
	cin := c.Flags.CF
	switch w {
	case decode.W8:
		return uint64(selAdc(c.Mode, uint8(dst), uint8(src), cin, &c.Flags))
	case decode.W16:
		return uint64(selAdc(c.Mode, uint16(dst), uint16(src), cin, &c.Flags))
	case decode.W32:
		return uint64(selAdc(c.Mode, uint32(dst), uint32(src), cin, &c.Flags))
	default:
		return selAdc(c.Mode, dst, src, cin, &c.Flags)
	}
}

func (c *Cpu) execSub(w decode.Width, dst, src uint64) uint64 {
	switch w {
	case decode.W8:
		return uint64(selSub(c.Mode, uint8(dst), uint8(src), &c.Flags))
	case decode.W16:
		return uint64(selSub(c.Mode, uint16(dst), uint16(src), &c.Flags))
	case decode.W32:
		return uint64(selSub(c.Mode, uint32(dst), uint32(src), &c.Flags))
	default:
		return selSub(c.Mode, dst, src, &c.Flags)
	}
}

func (c *Cpu) execSbb(w decode.Width, dst, src uint64) uint64 {
	bin := c.Flags.CF
	switch w {
	case decode.W8:
		return uint64(selSbb(c.Mode, uint8(dst), uint8(src), bin, &c.Flags))
	case decode.W16:
		return uint64(selSbb(c.Mode, uint16(dst), uint16(src), bin, &c.Flags))
	case decode.W32:
		return uint64(selSbb(c.Mode, uint32(dst), uint32(src), bin, &c.Flags))
	default:
		return selSbb(c.Mode, dst, src, bin, &c.Flags)
	}
}

func (c *Cpu) execCmp(w decode.Width, dst, src uint64) {
	switch w {
	case decode.W8:
		selCmp(c.Mode, uint8(dst), uint8(src), &c.Flags)
	case decode.W16:
		selCmp(c.Mode, uint16(dst), uint16(src), &c.Flags)
	case decode.W32:
		selCmp(c.Mode, uint32(dst), uint32(src), &c.Flags)
	default:
		selCmp(c.Mode, dst, src, &c.Flags)
	}
}

func (c *Cpu) execNeg(w decode.Width, dst uint64) uint64 {
	switch w {
	case decode.W8:
		return uint64(selNeg(c.Mode, uint8(dst), &c.Flags))
	case decode.W16:
		return uint64(selNeg(c.Mode, uint16(dst), &c.Flags))
	case decode.W32:
		return uint64(selNeg(c.Mode, uint32(dst), &c.Flags))
	default:
		return selNeg(c.Mode, dst, &c.Flags)
	}
}

func (c *Cpu) execInc(w decode.Width, dst uint64) uint64 {
	switch w {
	case decode.W8:
		return uint64(selInc(c.Mode, uint8(dst), &c.Flags))
	case decode.W16:
		return uint64(selInc(c.Mode, uint16(dst), &c.Flags))
	case decode.W32:
		return uint64(selInc(c.Mode, uint32(dst), &c.Flags))
	default:
		return selInc(c.Mode, dst, &c.Flags)
	}
}

func (c *Cpu) execDec(w decode.Width, dst uint64) uint64 {
	switch w {
	case decode.W8:
		return uint64(selDec(c.Mode, uint8(dst), &c.Flags))
	case decode.W16:
		return uint64(selDec(c.Mode, uint16(dst), &c.Flags))
	case decode.W32:
		return uint64(selDec(c.Mode, uint32(dst), &c.Flags))
	default:
		return selDec(c.Mode, dst, &c.Flags)
	}
}

func (c *Cpu) execMul(w decode.Width, dst, src uint64) (upper, lower uint64) {
	switch w {
	case decode.W8:
		u, l := selMul(c.Mode, uint8(dst), uint8(src), &c.Flags)
		return uint64(u), uint64(l)
	case decode.W16:
		u, l := selMul(c.Mode, uint16(dst), uint16(src), &c.Flags)
		return uint64(u), uint64(l)
	case decode.W32:
		u, l := selMul(c.Mode, uint32(dst), uint32(src), &c.Flags)
		return uint64(u), uint64(l)
	default:
		return selMul(c.Mode, dst, src, &c.Flags)
	}
}

func (c *Cpu) execImul(w decode.Width, dst, src uint64) (upper, lower uint64) {
	switch w {
	case decode.W8:
		u, l := selImul(c.Mode, uint8(dst), uint8(src), &c.Flags)
		return uint64(u), uint64(l)
	case decode.W16:
		u, l := selImul(c.Mode, uint16(dst), uint16(src), &c.Flags)
		return uint64(u), uint64(l)
	case decode.W32:
		u, l := selImul(c.Mode, uint32(dst), uint32(src), &c.Flags)
		return uint64(u), uint64(l)
	default:
		return selImul(c.Mode, dst, src, &c.Flags)
	}
}

func (c *Cpu) execDiv(w decode.Width, upper, lower, divisor uint64) (q, r uint64) {
	switch w {
	case decode.W8:
		qq, rr := selDiv(c.Mode, uint8(upper), uint8(lower), uint8(divisor))
		return uint64(qq), uint64(rr)
	case decode.W16:
		qq, rr := selDiv(c.Mode, uint16(upper), uint16(lower), uint16(divisor))
		return uint64(qq), uint64(rr)
	case decode.W32:
		qq, rr := selDiv(c.Mode, uint32(upper), uint32(lower), uint32(divisor))
		return uint64(qq), uint64(rr)
	default:
		return selDiv(c.Mode, upper, lower, divisor)
	}
}

func (c *Cpu) execIdiv(w decode.Width, upper, lower, divisor uint64) (q, r uint64) {
	switch w {
	case decode.W8:
		qq, rr := selIdiv(c.Mode, uint8(upper), uint8(lower), uint8(divisor))
		return uint64(qq), uint64(rr)
	case decode.W16:
		qq, rr := selIdiv(c.Mode, uint16(upper), uint16(lower), uint16(divisor))
		return uint64(qq), uint64(rr)
	case decode.W32:
		qq, rr := selIdiv(c.Mode, uint32(upper), uint32(lower), uint32(divisor))
		return uint64(qq), uint64(rr)
	default:
		return selIdiv(c.Mode, upper, lower, divisor)
	}
}

func (c *Cpu) execAnd(w decode.Width, dst, src uint64) uint64 {
	switch w {
	case decode.W8:
		return uint64(selAnd(c.Mode, uint8(dst), uint8(src), &c.Flags))
	case decode.W16:
		return uint64(selAnd(c.Mode, uint16(dst), uint16(src), &c.Flags))
	case decode.W32:
		return uint64(selAnd(c.Mode, uint32(dst), uint32(src), &c.Flags))
	default:
		return selAnd(c.Mode, dst, src, &c.Flags)
	}
}

func (c *Cpu) execOr(w decode.Width, dst, src uint64) uint64 {
	switch w {
	case decode.W8:
		return uint64(selOr(c.Mode, uint8(dst), uint8(src), &c.Flags))
	case decode.W16:
		return uint64(selOr(c.Mode, uint16(dst), uint16(src), &c.Flags))
	case decode.W32:
		return uint64(selOr(c.Mode, uint32(dst), uint32(src), &c.Flags))
	default:
		return selOr(c.Mode, dst, src, &c.Flags)
	}
}

func (c *Cpu) execXor(w decode.Width, dst, src uint64) uint64 {
	switch w {
	case decode.W8:
		return uint64(selXor(c.Mode, uint8(dst), uint8(src), &c.Flags))
	case decode.W16:
		return uint64(selXor(c.Mode, uint16(dst), uint16(src), &c.Flags))
	case decode.W32:
		return uint64(selXor(c.Mode, uint32(dst), uint32(src), &c.Flags))
	default:
		return selXor(c.Mode, dst, src, &c.Flags)
	}
}

func (c *Cpu) execNot(w decode.Width, dst uint64) uint64 {
	switch w {
	case decode.W8:
		return uint64(cpuimpl.Not(uint8(dst)))
	case decode.W16:
		return uint64(cpuimpl.Not(uint16(dst)))
	case decode.W32:
		return uint64(cpuimpl.Not(uint32(dst)))
	default:
		return cpuimpl.Not(dst)
	}
}

func (c *Cpu) execTest(w decode.Width, dst, src uint64) {
	switch w {
	case decode.W8:
		selTest(c.Mode, uint8(dst), uint8(src), &c.Flags)
	case decode.W16:
		selTest(c.Mode, uint16(dst), uint16(src), &c.Flags)
	case decode.W32:
		selTest(c.Mode, uint32(dst), uint32(src), &c.Flags)
	default:
		selTest(c.Mode, dst, src, &c.Flags)
	}
}

func (c *Cpu) execShl(w decode.Width, dst uint64, count uint) uint64 {
	switch w {
	case decode.W8:
		return uint64(selShl(c.Mode, uint8(dst), count, &c.Flags))
	case decode.W16:
		return uint64(selShl(c.Mode, uint16(dst), count, &c.Flags))
	case decode.W32:
		return uint64(selShl(c.Mode, uint32(dst), count, &c.Flags))
	default:
		return selShl(c.Mode, dst, count, &c.Flags)
	}
}

func (c *Cpu) execShr(w decode.Width, dst uint64, count uint) uint64 {
	switch w {
	case decode.W8:
		return uint64(selShr(c.Mode, uint8(dst), count, &c.Flags))
	case decode.W16:
		return uint64(selShr(c.Mode, uint16(dst), count, &c.Flags))
	case decode.W32:
		return uint64(selShr(c.Mode, uint32(dst), count, &c.Flags))
	default:
		return selShr(c.Mode, dst, count, &c.Flags)
	}
}

func (c *Cpu) execSar(w decode.Width, dst uint64, count uint) uint64 {
	switch w {
	case decode.W8:
		return uint64(selSar(c.Mode, uint8(dst), count, &c.Flags))
	case decode.W16:
		return uint64(selSar(c.Mode, uint16(dst), count, &c.Flags))
	case decode.W32:
		return uint64(selSar(c.Mode, uint32(dst), count, &c.Flags))
	default:
		return selSar(c.Mode, dst, count, &c.Flags)
	}
}

func (c *Cpu) execShld(w decode.Width, dst, src uint64, count uint) uint64 {
	switch w {
	case decode.W16:
		return uint64(selShld(c.Mode, uint16(dst), uint16(src), count, &c.Flags))
	case decode.W32:
		return uint64(selShld(c.Mode, uint32(dst), uint32(src), count, &c.Flags))
	default:
		return selShld(c.Mode, dst, src, count, &c.Flags)
	}
}

func (c *Cpu) execShrd(w decode.Width, dst, src uint64, count uint) uint64 {
	switch w {
	case decode.W16:
		return uint64(selShrd(c.Mode, uint16(dst), uint16(src), count, &c.Flags))
	case decode.W32:
		return uint64(selShrd(c.Mode, uint32(dst), uint32(src), count, &c.Flags))
	default:
		return selShrd(c.Mode, dst, src, count, &c.Flags)
	}
}

func (c *Cpu) execRol(w decode.Width, dst uint64, count uint) uint64 {
	switch w {
	case decode.W8:
		return uint64(selRol(c.Mode, uint8(dst), count, &c.Flags))
	case decode.W16:
		return uint64(selRol(c.Mode, uint16(dst), count, &c.Flags))
	case decode.W32:
		return uint64(selRol(c.Mode, uint32(dst), count, &c.Flags))
	default:
		return selRol(c.Mode, dst, count, &c.Flags)
	}
}

func (c *Cpu) execRor(w decode.Width, dst uint64, count uint) uint64 {
	switch w {
	case decode.W8:
		return uint64(selRor(c.Mode, uint8(dst), count, &c.Flags))
	case decode.W16:
		return uint64(selRor(c.Mode, uint16(dst), count, &c.Flags))
	case decode.W32:
		return uint64(selRor(c.Mode, uint32(dst), count, &c.Flags))
	default:
		return selRor(c.Mode, dst, count, &c.Flags)
	}
}

func (c *Cpu) execRcl(w decode.Width, dst uint64, count uint) uint64 {
	cin := c.Flags.CF
	switch w {
	case decode.W8:
		return uint64(selRcl(c.Mode, uint8(dst), count, cin, &c.Flags))
	case decode.W16:
		return uint64(selRcl(c.Mode, uint16(dst), count, cin, &c.Flags))
	case decode.W32:
		return uint64(selRcl(c.Mode, uint32(dst), count, cin, &c.Flags))
	default:
		return selRcl(c.Mode, dst, count, cin, &c.Flags)
	}
}

func (c *Cpu) execRcr(w decode.Width, dst uint64, count uint) uint64 {
	cin := c.Flags.CF
	switch w {
	case decode.W8:
		return uint64(selRcr(c.Mode, uint8(dst), count, cin, &c.Flags))
	case decode.W16:
		return uint64(selRcr(c.Mode, uint16(dst), count, cin, &c.Flags))
	case decode.W32:
		return uint64(selRcr(c.Mode, uint32(dst), count, cin, &c.Flags))
	default:
		return selRcr(c.Mode, dst, count, cin, &c.Flags)
	}
}

func (c *Cpu) execBt(w decode.Width, base uint64, index uint) {
	switch w {
	case decode.W16:
		selBt(c.Mode, uint16(base), index, &c.Flags)
	case decode.W32:
		selBt(c.Mode, uint32(base), index, &c.Flags)
	case decode.W64:
		selBt(c.Mode, base, index, &c.Flags)
	default:
		selBt(c.Mode, uint16(base), index, &c.Flags)
	}
}

func (c *Cpu) execBtr(w decode.Width, base uint64, index uint) uint64 {
	switch w {
	case decode.W16:
		return uint64(selBtr(c.Mode, uint16(base), index, &c.Flags))
	case decode.W32:
		return uint64(selBtr(c.Mode, uint32(base), index, &c.Flags))
	default:
		return selBtr(c.Mode, base, index, &c.Flags)
	}
}

func (c *Cpu) execBts(w decode.Width, base uint64, index uint) uint64 {
	switch w {
	case decode.W16:
		return uint64(selBts(c.Mode, uint16(base), index, &c.Flags))
	case decode.W32:
		return uint64(selBts(c.Mode, uint32(base), index, &c.Flags))
	default:
		return selBts(c.Mode, base, index, &c.Flags)
	}
}

func (c *Cpu) execBtc(w decode.Width, base uint64, index uint) uint64 {
	switch w {
	case decode.W16:
		return uint64(selBtc(c.Mode, uint16(base), index, &c.Flags))
	case decode.W32:
		return uint64(selBtc(c.Mode, uint32(base), index, &c.Flags))
	default:
		return selBtc(c.Mode, base, index, &c.Flags)
	}
}

func (c *Cpu) execCmpxchg(w decode.Width, acc, dest uint64) {
	switch w {
	case decode.W8:
		selCmpxchg(c.Mode, uint8(acc), uint8(dest), &c.Flags)
	case decode.W16:
		selCmpxchg(c.Mode, uint16(acc), uint16(dest), &c.Flags)
	case decode.W32:
		selCmpxchg(c.Mode, uint32(acc), uint32(dest), &c.Flags)
	default:
		selCmpxchg(c.Mode, acc, dest, &c.Flags)
	}
}

func (c *Cpu) execBsr(w decode.Width, src uint64) uint64 {
	switch w {
	case decode.W16:
		return uint64(selBsr(c.Mode, uint16(src), &c.Flags))
	case decode.W32:
		return uint64(selBsr(c.Mode, uint32(src), &c.Flags))
	default:
		return selBsr(c.Mode, src, &c.Flags)
	}
}

func (c *Cpu) execBsf(w decode.Width, src uint64) uint64 {
	switch w {
	case decode.W16:
		return uint64(selBsf(c.Mode, uint16(src), &c.Flags))
	case decode.W32:
		return uint64(selBsf(c.Mode, uint32(src), &c.Flags))
	default:
		return selBsf(c.Mode, src, &c.Flags)
	}
}

func (c *Cpu) execTzcnt(w decode.Width, src uint64) uint64 {
	switch w {
	case decode.W16:
		return uint64(selTzcnt(c.Mode, uint16(src), &c.Flags))
	case decode.W32:
		return uint64(selTzcnt(c.Mode, uint32(src), &c.Flags))
	default:
		return selTzcnt(c.Mode, src, &c.Flags)
	}
}

func (c *Cpu) execPopcnt(w decode.Width, src uint64) uint64 {
	switch w {
	case decode.W16:
		return uint64(selPopcnt(c.Mode, uint16(src), &c.Flags))
	case decode.W32:
		return uint64(selPopcnt(c.Mode, uint32(src), &c.Flags))
	default:
		return selPopcnt(c.Mode, src, &c.Flags)
	}
}
