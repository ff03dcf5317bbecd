// Package cpuimpl is the CpuImpl layer of spec.md §4.1: pure, host-independent
// value-and-flags semantics for every modeled instruction family. Every
// function here is a deterministic function of its inputs; none of them
// touch memory, registers, or any other dispatcher-owned state.
package cpuimpl

import (
	"math/bits"
	"unsafe"

	"github.com/n-stott/x64emulator/flags"
)

// Width is the set of unsigned integer types the integer-arithmetic,
// bitwise, and shift/rotate families are parameterized over (spec.md
// §4.1.1's W ∈ {8,16,32,64}).
type Width interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

func widthBits[T Width]() uint {
	var v T
	return uint(unsafe.Sizeof(v)) * 8
}

func maskWidth(width uint) uint64 {
	if width >= 64 {
		return ^uint64(0)
	}
	return (uint64(1) << width) - 1
}

func signBitOf(width uint) uint64 {
	return uint64(1) << (width - 1)
}

// addCarryCompute computes (dst + src + carryIn) mod 2^width in a uint64
// accumulator, returning the result, the unsigned carry-out of bit
// (width-1), and the width-masked (src+carryIn) term overflow needs to
// compare the result's sign against.
func addCarryCompute(dst, src, carryIn uint64, width uint) (result uint64, cf bool, srcC uint64) {
	mask := maskWidth(width)
	if width == 64 {
		s1, c1 := bits.Add64(src, 0, carryIn)
		sum, c2 := bits.Add64(dst, s1, 0)
		return sum, c1 != 0 || c2 != 0, s1
	}
	srcC = (src + carryIn) & mask
	srcWrapped := srcC < (src & mask)
	sum := (dst & mask) + srcC
	cf = srcWrapped || sum > mask
	return sum & mask, cf, srcC
}

// subBorrowCompute computes (dst - src - borrowIn) mod 2^width, returning the
// result and the borrow-out (spec.md: carry set iff a borrow occurred).
func subBorrowCompute(dst, src, borrowIn uint64, width uint) (result uint64, borrow bool, srcB uint64) {
	mask := maskWidth(width)
	srcB = (src + borrowIn) & mask
	// A borrow occurred in forming src+borrowIn if it wrapped past the mask.
	srcBWrapped := borrowIn != 0 && src&mask == mask
	d := dst & mask
	borrow = d < srcB || srcBWrapped
	result = (d - srcB) & mask
	return result, borrow, srcB
}

func addOverflow(dst, srcC, result uint64, width uint) bool {
	sb := signBitOf(width)
	return ((dst^result)&(srcC^result))&sb != 0
}

func subOverflow(dst, srcB, result uint64, width uint) bool {
	sb := signBitOf(width)
	return ((dst^srcB)&(dst^result))&sb != 0
}

func setLogicalFlags(result uint64, width uint, f *flags.Arith) {
	f.ZF = result == 0
	f.SF = result&signBitOf(width) != 0
	f.PF = flags.Parity8(result)
}
