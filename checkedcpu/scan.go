package checkedcpu

import (
	"github.com/n-stott/x64emulator/cpuimpl"
	"github.com/n-stott/x64emulator/flags"
)

// Bsr/Bsf/Tzcnt/Popcnt are already exact via math/bits in the pure model —
// there is no daylight between "model" and "host" for a bit-scan/popcount
// primitive math/bits implements directly, so cross-checking would just
// compare the same computation against itself. These stay pure-model
// pass-throughs.

func Bsr[T cpuimpl.Width](src T, f *flags.Arith) T    { return cpuimpl.Bsr(src, f) }
func Bsf[T cpuimpl.Width](src T, f *flags.Arith) T    { return cpuimpl.Bsf(src, f) }
func Tzcnt[T cpuimpl.Width](src T, f *flags.Arith) T  { return cpuimpl.Tzcnt(src, f) }
func Popcnt[T cpuimpl.Width](src T, f *flags.Arith) T { return cpuimpl.Popcnt(src, f) }
func Bswap32(v uint32) uint32                         { return cpuimpl.Bswap32(v) }
func Bswap64(v uint64) uint64                         { return cpuimpl.Bswap64(v) }
