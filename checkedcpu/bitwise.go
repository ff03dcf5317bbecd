package checkedcpu

import (
	"github.com/n-stott/x64emulator/cpuimpl"
	"github.com/n-stott/x64emulator/flags"
)

// Bitwise, bit-test, bit-scan, shift/rotate, and CMPXCHG all fall back to
// the pure model for the same reason as arith.go's fallback family: no
// per-arch assembly backend is compiled into this build, so there is
// nothing to cross-check against beyond the functions host/ genuinely
// reimplements independently (the wide multiply/divide and rounding
// families wrapped in arith.go and x87.go).

func And[T cpuimpl.Width](dst, src T, f *flags.Arith) T { return cpuimpl.And(dst, src, f) }
func Or[T cpuimpl.Width](dst, src T, f *flags.Arith) T  { return cpuimpl.Or(dst, src, f) }
func Xor[T cpuimpl.Width](dst, src T, f *flags.Arith) T { return cpuimpl.Xor(dst, src, f) }
func Not[T cpuimpl.Width](dst T) T                      { return cpuimpl.Not(dst) }
func Test[T cpuimpl.Width](dst, src T, f *flags.Arith)  { cpuimpl.Test(dst, src, f) }
