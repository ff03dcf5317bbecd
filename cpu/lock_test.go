package cpu

import (
	"testing"

	"github.com/n-stott/x64emulator/decode"
	"github.com/n-stott/x64emulator/mmu"
)

// countingMMU wraps a real Flat to count WithExclusiveRegion32 invocations,
// so a LOCK ADD test can assert the atomic path is taken exactly once
// rather than falling back to a plain read-modify-write.
type countingMMU struct {
	*mmu.Flat
	exclusive32Calls int
}

func (m *countingMMU) WithExclusiveRegion32(addr uint64, f func(old uint32) uint32) error {
	m.exclusive32Calls++
	return m.Flat.WithExclusiveRegion32(addr, f)
}

func TestLockAddUsesExclusiveRegionExactlyOnce(t *testing.T) {
	flat := mmu.NewFlat()
	flat.AddSegment("data", 0x1000, 0x1000, mmu.PermRead|mmu.PermWrite)
	m := &countingMMU{Flat: flat}
	c := New(m, nil, ModeRelease)

	if err := m.Write32(0x1000, 10); err != nil {
		t.Fatalf("seed write: %v", err)
	}
	in := &decode.Instruction{
		Mnemonic:    decode.ADD,
		Lock:        true,
		NumOperands: 2,
		Operands: [3]decode.Operand{
			{Kind: decode.OperandMem, Width: decode.W32, Mem: decode.MemOperand{BaseReg: -1, IndexReg: -1, Displacement: 0x1000, Width: decode.W32}},
			{Kind: decode.OperandImm, Imm: 5, Width: decode.W32},
		},
	}
	if err := c.Exec(in); err != nil {
		t.Fatalf("Exec(LOCK ADD): %v", err)
	}
	if m.exclusive32Calls != 1 {
		t.Errorf("WithExclusiveRegion32 called %d times, want exactly 1", m.exclusive32Calls)
	}
	got, err := m.Read32(0x1000)
	if err != nil {
		t.Fatalf("Read32: %v", err)
	}
	if got != 15 {
		t.Errorf("memory after LOCK ADD = %d, want 15", got)
	}
}
