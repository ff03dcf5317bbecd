package cpu

// RFLAGS bit positions spec.md §6 names for PUSHFQ/POPFQ's 64-bit flags
// word: carry=0, parity=2, zero=6, sign=7, direction=10, overflow=11. Bits
// not modeled by this core are preserved as zeros on the way out (the
// caveat in spec.md §6 about the checked wrapper seeing the host's real
// RFLAGS does not apply here — ToRFLAGS/FromRFLAGS only ever see the pure
// six-bit model).
const (
	rflagsCF = 0
	rflagsPF = 2
	rflagsZF = 6
	rflagsSF = 7
	rflagsDF = 10
	rflagsOF = 11
)

// ToRFLAGS packs the six modeled flags into their architectural bit
// positions, for PUSHFQ.
func (c *Cpu) ToRFLAGS() uint64 {
	var v uint64
	set := func(bit uint, cond bool) {
		if cond {
			v |= 1 << bit
		}
	}
	set(rflagsCF, c.Flags.CF)
	set(rflagsPF, c.Flags.PF)
	set(rflagsZF, c.Flags.ZF)
	set(rflagsSF, c.Flags.SF)
	set(rflagsDF, c.Flags.DF)
	set(rflagsOF, c.Flags.OF)
	return v
}

// FromRFLAGS unpacks the six modeled flags from a 64-bit flags word, for
// POPFQ. Unmodeled bits are read and discarded.
func (c *Cpu) FromRFLAGS(v uint64) {
	bit := func(b uint) bool { return v&(1<<b) != 0 }
	c.Flags.CF = bit(rflagsCF)
	c.Flags.PF = bit(rflagsPF)
	c.Flags.ZF = bit(rflagsZF)
	c.Flags.SF = bit(rflagsSF)
	c.Flags.DF = bit(rflagsDF)
	c.Flags.OF = bit(rflagsOF)
}
