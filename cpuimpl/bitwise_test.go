package cpuimpl

import (
	"testing"

	"github.com/n-stott/x64emulator/flags"
)

func TestAndOrXorCommutative(t *testing.T) {
	a, b := uint32(0xF0F0F0F0), uint32(0x0FF00FF0)
	var f1, f2 flags.Arith

	if And(a, b, &f1) != And(b, a, &f2) || f1 != f2 {
		t.Error("expected And to be commutative")
	}
	if Or(a, b, &f1) != Or(b, a, &f2) || f1 != f2 {
		t.Error("expected Or to be commutative")
	}
	if Xor(a, b, &f1) != Xor(b, a, &f2) || f1 != f2 {
		t.Error("expected Xor to be commutative")
	}
}

func TestBitwiseAlwaysClearsCarryAndOverflow(t *testing.T) {
	var f flags.Arith
	f.CF = true
	f.OF = true
	And(uint32(1), uint32(1), &f)
	if f.CF || f.OF {
		t.Error("expected And to clear CF and OF unconditionally")
	}
}

func TestNotInvolution(t *testing.T) {
	for _, v := range []uint16{0, 1, 0xFFFF, 0x8000, 0x1234} {
		if got := Not(Not(v)); got != v {
			t.Errorf("Not(Not(%#x)) = %#x, want %#x", v, got, v)
		}
	}
}

func TestTestIsAndWithoutWriting(t *testing.T) {
	var f1, f2 flags.Arith
	dst, src := uint32(0xAAAA), uint32(0x5555)
	Test(dst, src, &f1)
	And(dst, src, &f2)
	if f1 != f2 {
		t.Errorf("Test flags %+v != And flags %+v", f1, f2)
	}
}
