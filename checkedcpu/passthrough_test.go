package checkedcpu

import (
	"testing"

	"github.com/n-stott/x64emulator/flags"
	"github.com/n-stott/x64emulator/types"
)

func TestBitwisePassThrough(t *testing.T) {
	var f flags.Arith
	if got := And(uint8(0b1100), 0b1010, &f); got != 0b1000 {
		t.Errorf("And = %#b, want 0b1000", got)
	}
	if got := Or(uint8(0b1100), 0b1010, &f); got != 0b1110 {
		t.Errorf("Or = %#b, want 0b1110", got)
	}
	if got := Xor(uint8(0b1100), 0b1010, &f); got != 0b0110 {
		t.Errorf("Xor = %#b, want 0b0110", got)
	}
	if got := Not(uint8(0)); got != 0xFF {
		t.Errorf("Not(0) = %#x, want 0xFF", got)
	}
}

func TestShiftPassThrough(t *testing.T) {
	var f flags.Arith
	if got := Shl(uint8(1), 3, &f); got != 8 {
		t.Errorf("Shl(1,3) = %d, want 8", got)
	}
	if got := Rol(uint8(0x80), 1, &f); got != 1 {
		t.Errorf("Rol(0x80,1) = %#x, want 1", got)
	}
}

func TestBitTestPassThrough(t *testing.T) {
	var f flags.Arith
	Bt(uint32(0b10), 1, &f)
	if !f.CF {
		t.Error("Bt(0b10, index 1) should set CF")
	}
	if got := Bts(uint32(0), 0, &f); got != 1 {
		t.Errorf("Bts(0,0) = %d, want 1", got)
	}
}

func TestScanPassThrough(t *testing.T) {
	var f flags.Arith
	if got := Bsf(uint32(0b1000), &f); got != 3 {
		t.Errorf("Bsf(0b1000) = %d, want 3", got)
	}
	if got := Popcnt(uint32(0b1011), &f); got != 3 {
		t.Errorf("Popcnt(0b1011) = %d, want 3", got)
	}
	if got := Bswap32(0x01020304); got != 0x04030201 {
		t.Errorf("Bswap32 = %#x, want 0x04030201", got)
	}
}

func TestCmpxchgPassThrough(t *testing.T) {
	var f flags.Arith
	Cmpxchg(uint32(5), 5, &f)
	if !f.ZF {
		t.Error("Cmpxchg equal values should set ZF")
	}
}

func TestPtestPassThrough(t *testing.T) {
	var f flags.Arith
	Ptest(types.U128{}, types.U128{}, &f)
	if !f.ZF || !f.CF {
		t.Errorf("Ptest(0,0) ZF=%v CF=%v, want both true", f.ZF, f.CF)
	}
}

func TestFrndintAgreesWithHostBridge(t *testing.T) {
	a := types.Float80FromFloat64(2.5)
	got := Frndint(a, types.RoundNearestEven)
	if got.ToFloat64() != 2.0 {
		t.Errorf("Frndint(2.5) = %v, want 2.0", got.ToFloat64())
	}
}

func TestFcomiPassThrough(t *testing.T) {
	var f flags.Arith
	Fcomi(types.Float80FromFloat64(1), types.Float80FromFloat64(2), &f)
	if !f.CF {
		t.Error("Fcomi(1,2) should set CF")
	}
}
