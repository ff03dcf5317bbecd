package cpuimpl

import "github.com/n-stott/x64emulator/types"

// Pmovmskb extracts the sign bit of each of the sixteen bytes into a 16-bit
// mask (spec.md §4.1.8).
func Pmovmskb(v types.U128) uint32 {
	var mask uint32
	for i := 0; i < 16; i++ {
		if v.Lane8(i)&0x80 != 0 {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

// Movmskps extracts the sign bit of each of the four single-precision lanes.
func Movmskps(v types.U128) uint32 {
	var mask uint32
	for i := 0; i < 4; i++ {
		if v.Lane32(i)&0x80000000 != 0 {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

// Movmskpd extracts the sign bit of each of the two double-precision lanes.
func Movmskpd(v types.U128) uint32 {
	var mask uint32
	for i := 0; i < 2; i++ {
		if v.Lane64(i)&0x8000000000000000 != 0 {
			mask |= 1 << uint(i)
		}
	}
	return mask
}

// Pand/Pandn/Por/Pxor and their floating-point-typed aliases are thin
// wrappers around types.U128's bitwise methods; SSE draws no semantic
// distinction between the integer and floating-point forms beyond the
// assembler mnemonic (spec.md §4.1.8).
func Pand(a, b types.U128) types.U128  { return a.And(b) }
func Pandn(a, b types.U128) types.U128 { return a.AndNot(b) }
func Por(a, b types.U128) types.U128   { return a.Or(b) }
func Pxor(a, b types.U128) types.U128  { return a.Xor(b) }

func Andpd(a, b types.U128) types.U128  { return a.And(b) }
func Andnpd(a, b types.U128) types.U128 { return a.AndNot(b) }
func Orpd(a, b types.U128) types.U128   { return a.Or(b) }
func Xorpd(a, b types.U128) types.U128  { return a.Xor(b) }

func Andps(a, b types.U128) types.U128  { return a.And(b) }
func Andnps(a, b types.U128) types.U128 { return a.AndNot(b) }
func Orps(a, b types.U128) types.U128   { return a.Or(b) }
func Xorps(a, b types.U128) types.U128  { return a.Xor(b) }
