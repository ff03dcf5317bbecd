package cpuimpl

import "github.com/n-stott/x64emulator/flags"

// And, Or, Xor implement the bitwise family (spec.md §4.1.2): CF and OF are
// always cleared; ZF, SF, PF come from the result.
func And[T Width](dst, src T, f *flags.Arith) T {
	return bitwise(dst, src, f, func(a, b T) T { return a & b })
}

func Or[T Width](dst, src T, f *flags.Arith) T {
	return bitwise(dst, src, f, func(a, b T) T { return a | b })
}

func Xor[T Width](dst, src T, f *flags.Arith) T {
	return bitwise(dst, src, f, func(a, b T) T { return a ^ b })
}

func bitwise[T Width](dst, src T, f *flags.Arith, op func(a, b T) T) T {
	w := widthBits[T]()
	result := op(dst, src)
	f.CF = false
	f.OF = false
	setLogicalFlags(uint64(result), w, f)
	return result
}

// Not is bitwise complement; it has no flag effect.
func Not[T Width](dst T) T {
	return ^dst
}

// Test is And without writing the result: flags as for bitwise And.
func Test[T Width](dst, src T, f *flags.Arith) {
	And(dst, src, f)
}
