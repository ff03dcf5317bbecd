package flags

import "github.com/n-stott/x64emulator/types"

// MXCSR is the SIMD control/status word (spec.md §3): rounding control,
// flush-to-zero / denormals-are-zero bits, and six exception status/mask
// bit pairs. The core stores the exception status/mask bits but never
// causes them to trap, matching spec.md's stated scope.
type MXCSR struct {
	RoundingControl types.RoundMode
	FlushToZero     bool
	DenormalsAreZero bool
	Status          ExceptionMask
	Mask            ExceptionMask
}

// NewMXCSR returns the reset state: round-to-nearest, all exceptions
// masked, matching real hardware's power-on MXCSR value (0x1F80).
func NewMXCSR() *MXCSR {
	return &MXCSR{
		Mask: ExceptionMask{Invalid: true, Denormal: true, ZeroDiv: true, Overflow: true, Underflow: true, Precision: true},
	}
}

// ToUint32 packs MXCSR into its 32-bit register encoding.
func (m *MXCSR) ToUint32() uint32 {
	var v uint32
	setBit := func(bit uint, cond bool) {
		if cond {
			v |= 1 << bit
		}
	}
	setBit(0, m.Status.Invalid)
	setBit(1, m.Status.Denormal)
	setBit(2, m.Status.ZeroDiv)
	setBit(3, m.Status.Overflow)
	setBit(4, m.Status.Underflow)
	setBit(5, m.Status.Precision)
	setBit(6, m.DenormalsAreZero)
	setBit(7, m.Mask.Invalid)
	setBit(8, m.Mask.Denormal)
	setBit(9, m.Mask.ZeroDiv)
	setBit(10, m.Mask.Overflow)
	setBit(11, m.Mask.Underflow)
	setBit(12, m.Mask.Precision)
	v |= uint32(m.RoundingControl) << 13
	setBit(15, m.FlushToZero)
	return v
}

// FromUint32 unpacks MXCSR from its 32-bit register encoding.
func (m *MXCSR) FromUint32(v uint32) {
	bit := func(b uint) bool { return v&(1<<b) != 0 }
	m.Status = ExceptionMask{
		Invalid: bit(0), Denormal: bit(1), ZeroDiv: bit(2),
		Overflow: bit(3), Underflow: bit(4), Precision: bit(5),
	}
	m.DenormalsAreZero = bit(6)
	m.Mask = ExceptionMask{
		Invalid: bit(7), Denormal: bit(8), ZeroDiv: bit(9),
		Overflow: bit(10), Underflow: bit(11), Precision: bit(12),
	}
	m.RoundingControl = types.RoundMode((v >> 13) & 0x3)
	m.FlushToZero = bit(15)
}
