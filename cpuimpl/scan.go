package cpuimpl

import (
	"math/bits"

	"github.com/n-stott/x64emulator/flags"
)

// Bsr finds the index of the most-significant set bit. ZF reflects whether
// src was zero; per spec.md's adopted convention the return value for a
// zero source is T(max) (all bits set).
func Bsr[T Width](src T, f *flags.Arith) T {
	w := widthBits[T]()
	f.ZF = src == 0
	if src == 0 {
		return T(maskWidth(w))
	}
	lz := bits.LeadingZeros64(uint64(src)) - int(64-w)
	return T(int(w) - 1 - lz)
}

// Bsf finds the index of the least-significant set bit; same zero
// convention as Bsr.
func Bsf[T Width](src T, f *flags.Arith) T {
	f.ZF = src == 0
	if src == 0 {
		return T(maskWidth(widthBits[T]()))
	}
	return T(bits.TrailingZeros64(uint64(src)))
}

// Tzcnt always returns the count of trailing zeros (W for a zero input).
// CF reflects whether the input was zero; ZF reflects whether the result is
// zero.
func Tzcnt[T Width](src T, f *flags.Arith) T {
	w := widthBits[T]()
	f.CF = src == 0
	var result uint64
	if src == 0 {
		result = uint64(w)
	} else {
		result = uint64(bits.TrailingZeros64(uint64(src)))
	}
	f.ZF = result == 0
	return T(result)
}

// Popcnt counts set bits, clearing OF/SF/CF and PF=false; ZF reflects
// whether the count is zero.
func Popcnt[T Width](src T, f *flags.Arith) T {
	count := bits.OnesCount64(uint64(src))
	f.OF = false
	f.SF = false
	f.CF = false
	f.PF = false
	f.ZF = count == 0
	return T(count)
}

// Bswap byte-reverses a 32- or 64-bit operand; no flag effect.
func Bswap32(v uint32) uint32 {
	return bits.ReverseBytes32(v)
}

func Bswap64(v uint64) uint64 {
	return bits.ReverseBytes64(v)
}
