package checkedcpu

import (
	"github.com/n-stott/x64emulator/cpuimpl"
	"github.com/n-stott/x64emulator/flags"
)

func Shl[T cpuimpl.Width](dst T, count uint, f *flags.Arith) T { return cpuimpl.Shl(dst, count, f) }
func Shr[T cpuimpl.Width](dst T, count uint, f *flags.Arith) T { return cpuimpl.Shr(dst, count, f) }
func Sar[T cpuimpl.Width](dst T, count uint, f *flags.Arith) T { return cpuimpl.Sar(dst, count, f) }

func Shld[T cpuimpl.Width](dst, src T, count uint, f *flags.Arith) T {
	return cpuimpl.Shld(dst, src, count, f)
}
func Shrd[T cpuimpl.Width](dst, src T, count uint, f *flags.Arith) T {
	return cpuimpl.Shrd(dst, src, count, f)
}

func Rol[T cpuimpl.Width](dst T, count uint, f *flags.Arith) T { return cpuimpl.Rol(dst, count, f) }
func Ror[T cpuimpl.Width](dst T, count uint, f *flags.Arith) T { return cpuimpl.Ror(dst, count, f) }

func Rcl[T cpuimpl.Width](dst T, count uint, carryIn bool, f *flags.Arith) T {
	return cpuimpl.Rcl(dst, count, carryIn, f)
}
func Rcr[T cpuimpl.Width](dst T, count uint, carryIn bool, f *flags.Arith) T {
	return cpuimpl.Rcr(dst, count, carryIn, f)
}
