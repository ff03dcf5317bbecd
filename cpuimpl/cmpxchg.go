package cpuimpl

import "github.com/n-stott/x64emulator/flags"

// Cmpxchg performs cmp(acc, dest), setting ZF accordingly (spec.md §4.1.6,
// §8: zero iff acc == dest). The dispatcher is responsible for the
// subsequent conditional store — this primitive only computes the flags.
func Cmpxchg[T Width](acc, dest T, f *flags.Arith) {
	Cmp(acc, dest, f)
}
