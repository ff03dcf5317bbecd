package cpuimpl

import "github.com/n-stott/x64emulator/flags"

// Bt sets CF to the selected bit of base (spec.md §4.1.4).
func Bt[T Width](base T, index uint, f *flags.Arith) {
	w := widthBits[T]()
	f.CF = (uint64(base)>>(index%w))&1 != 0
}

// Btr clears the selected bit and returns the updated base.
func Btr[T Width](base T, index uint, f *flags.Arith) T {
	w := widthBits[T]()
	Bt(base, index, f)
	return base &^ (T(1) << (index % w))
}

// Bts sets the selected bit and returns the updated base.
func Bts[T Width](base T, index uint, f *flags.Arith) T {
	w := widthBits[T]()
	Bt(base, index, f)
	return base | (T(1) << (index % w))
}

// Btc complements the selected bit and returns the updated base.
func Btc[T Width](base T, index uint, f *flags.Arith) T {
	w := widthBits[T]()
	Bt(base, index, f)
	return base ^ (T(1) << (index % w))
}
