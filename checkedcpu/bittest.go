package checkedcpu

import (
	"github.com/n-stott/x64emulator/cpuimpl"
	"github.com/n-stott/x64emulator/flags"
)

func Bt[T cpuimpl.Width](base T, index uint, f *flags.Arith)  { cpuimpl.Bt(base, index, f) }
func Btr[T cpuimpl.Width](base T, index uint, f *flags.Arith) T {
	return cpuimpl.Btr(base, index, f)
}
func Bts[T cpuimpl.Width](base T, index uint, f *flags.Arith) T {
	return cpuimpl.Bts(base, index, f)
}
func Btc[T cpuimpl.Width](base T, index uint, f *flags.Arith) T {
	return cpuimpl.Btc(base, index, f)
}

func Cmpxchg[T cpuimpl.Width](acc, dest T, f *flags.Arith) { cpuimpl.Cmpxchg(acc, dest, f) }
