package cpu

import (
	"github.com/n-stott/x64emulator/decode"
	"github.com/n-stott/x64emulator/types"
)

// FXSAVE/FXRSTOR persist only the fields spec.md §3 models — control/
// status word, tag word, the eight ST slots, and MXCSR — zeroing
// everything else on save and ignoring it on restore (spec.md §9's open
// question on fxsave coverage, resolved here in the direction the
// question itself suggests: "fields not listed in §3's FPU-state
// description are zeroed on save and ignored on restore"). The real
// fxsave legacy area is 512 bytes; FXSAVE writes zeros over all of it
// before storing the subset below, and FXRSTOR reads only that subset.
const (
	fxoffCW    = 0
	fxoffSW    = 2
	fxoffTW    = 4
	fxoffMXCSR = 24
	fxoffST    = 32 // 8 slots * 16 bytes each (80-bit value + 6 reserved bytes)
)

func abridgedTagWord(f *Cpu) uint8 {
	var tw uint8
	for i := 0; i < 8; i++ {
		if f.FPU.Tags[i] != 3 { // anything but TagEmpty marks the physical slot non-empty
			tw |= 1 << i
		}
	}
	return tw
}

// FXSAVE asserts 16-byte alignment unconditionally (spec.md §4.3's memory
// alignment policy).
func (c *Cpu) FXSAVE(in *decode.Instruction, addr uint64) {
	if addr%16 != 0 {
		panic(fault(in, "FXSAVE requires 16-byte alignment, got %#x", addr))
	}
	write16 := func(off uint64, v uint16) {
		if err := c.MMU.Write16(addr+off, v); err != nil {
			panic(fault(in, "FXSAVE write at %#x: %s", addr+off, err))
		}
	}
	write32 := func(off uint64, v uint32) {
		if err := c.MMU.Write32(addr+off, v); err != nil {
			panic(fault(in, "FXSAVE write at %#x: %s", addr+off, err))
		}
	}
	for off := uint64(0); off < 512; off += 4 {
		write32(off, 0)
	}
	var cw uint16
	cw |= uint16(c.FPU.CW.PrecisionControl&0x3) << 8
	cw |= uint16(c.FPU.CW.RoundingControl&0x3) << 10
	write16(fxoffCW, cw)

	var sw uint16
	sw |= uint16(c.FPU.SW.Top&0x7) << 11
	if c.FPU.SW.C0 {
		sw |= 1 << 8
	}
	if c.FPU.SW.C1 {
		sw |= 1 << 9
	}
	if c.FPU.SW.C2 {
		sw |= 1 << 10
	}
	if c.FPU.SW.C3 {
		sw |= 1 << 14
	}
	write16(fxoffSW, sw)

	write16(fxoffTW, uint16(abridgedTagWord(c)))
	write32(fxoffMXCSR, c.MXCSR.ToUint32())

	for i := 0; i < 8; i++ {
		b := c.FPU.ST[i].Bytes()
		for j, by := range b {
			if err := c.MMU.Write8(addr+fxoffST+uint64(i)*16+uint64(j), by); err != nil {
				panic(fault(in, "FXSAVE ST(%d) write: %s", i, err))
			}
		}
	}
}

// FXRSTOR asserts 16-byte alignment unconditionally, the same as FXSAVE.
func (c *Cpu) FXRSTOR(in *decode.Instruction, addr uint64) {
	if addr%16 != 0 {
		panic(fault(in, "FXRSTOR requires 16-byte alignment, got %#x", addr))
	}
	read16 := func(off uint64) uint16 {
		v, err := c.MMU.Read16(addr + off)
		if err != nil {
			panic(fault(in, "FXRSTOR read at %#x: %s", addr+off, err))
		}
		return v
	}
	read32 := func(off uint64) uint32 {
		v, err := c.MMU.Read32(addr + off)
		if err != nil {
			panic(fault(in, "FXRSTOR read at %#x: %s", addr+off, err))
		}
		return v
	}
	cw := read16(fxoffCW)
	c.FPU.CW.PrecisionControl = uint8((cw >> 8) & 0x3)
	c.FPU.CW.RoundingControl = types.RoundMode((cw >> 10) & 0x3)

	sw := read16(fxoffSW)
	c.FPU.SW.Top = uint8((sw >> 11) & 0x7)
	c.FPU.SW.C0 = sw&(1<<8) != 0
	c.FPU.SW.C1 = sw&(1<<9) != 0
	c.FPU.SW.C2 = sw&(1<<10) != 0
	c.FPU.SW.C3 = sw&(1<<14) != 0

	tw := uint8(read16(fxoffTW))
	for i := 0; i < 8; i++ {
		if tw&(1<<i) != 0 {
			c.FPU.Tags[i] = 0 // valid; exact {zero,special} subtag is re-derived on next SetStack
		} else {
			c.FPU.Tags[i] = 3 // empty
		}
	}

	c.MXCSR.FromUint32(read32(fxoffMXCSR))

	for i := 0; i < 8; i++ {
		var b [10]byte
		for j := range b {
			v, err := c.MMU.Read8(addr + fxoffST + uint64(i)*16 + uint64(j))
			if err != nil {
				panic(fault(in, "FXRSTOR ST(%d) read: %s", i, err))
			}
			b[j] = v
		}
		c.FPU.ST[i] = types.Float80FromBytes(b)
	}
}
