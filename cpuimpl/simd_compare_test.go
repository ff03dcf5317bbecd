package cpuimpl

import (
	"math"
	"testing"

	"github.com/n-stott/x64emulator/flags"
	"github.com/n-stott/x64emulator/types"
)

func TestPtestSelfInvariant(t *testing.T) {
	// spec.md §8: Ptest(x,x) => CF == ZF == (x==0).
	var zero types.U128
	var f flags.Arith
	Ptest(zero, zero, &f)
	if !f.ZF || !f.CF {
		t.Errorf("Ptest(0,0): ZF=%v CF=%v, want both true", f.ZF, f.CF)
	}

	nonzero := types.U128{Lo: 0x1}
	Ptest(nonzero, nonzero, &f)
	if f.ZF || f.CF {
		t.Errorf("Ptest(x,x) for nonzero x: ZF=%v CF=%v, want both false", f.ZF, f.CF)
	}
}

func TestPtestClearsOtherFlags(t *testing.T) {
	f := flags.Arith{SF: true, OF: true, PF: true}
	Ptest(types.U128{Lo: 1}, types.U128{Lo: 1}, &f)
	if f.SF || f.OF || f.PF {
		t.Errorf("Ptest should clear SF/OF/PF, got SF=%v OF=%v PF=%v", f.SF, f.OF, f.PF)
	}
}

func TestPcmpeqb(t *testing.T) {
	var a, b types.U128
	a = a.WithLane8(0, 5).WithLane8(1, 7)
	b = b.WithLane8(0, 5).WithLane8(1, 9)
	got := Pcmpeqb(a, b)
	if got.Lane8(0) != 0xFF {
		t.Errorf("Pcmpeqb equal lane = %#x, want 0xFF", got.Lane8(0))
	}
	if got.Lane8(1) != 0x00 {
		t.Errorf("Pcmpeqb unequal lane = %#x, want 0x00", got.Lane8(1))
	}
}

func TestPcmpgtbSigned(t *testing.T) {
	var a, b types.U128
	a = a.WithLane8(0, byte(int8(-1))) // -1
	b = b.WithLane8(0, 1)
	got := Pcmpgtb(a, b)
	if got.Lane8(0) != 0x00 {
		t.Errorf("Pcmpgtb(-1,1) = %#x, want 0x00 (signed -1 < 1)", got.Lane8(0))
	}

	a2 := types.U128{}
	a2 = a2.WithLane8(0, 5)
	b2 := types.U128{}
	b2 = b2.WithLane8(0, 1)
	got2 := Pcmpgtb(a2, b2)
	if got2.Lane8(0) != 0xFF {
		t.Errorf("Pcmpgtb(5,1) = %#x, want 0xFF", got2.Lane8(0))
	}
}

func TestCmppdEquality(t *testing.T) {
	a := types.U128{}.WithLaneF64(0, 1.5).WithLaneF64(1, 2.5)
	b := types.U128{}.WithLaneF64(0, 1.5).WithLaneF64(1, 9.9)
	got := Cmppd(a, b, CmpEQ)
	if got.Lane64(0) != ^uint64(0) {
		t.Errorf("Cmppd EQ matching lane = %#x, want all-ones", got.Lane64(0))
	}
	if got.Lane64(1) != 0 {
		t.Errorf("Cmppd EQ differing lane = %#x, want 0", got.Lane64(1))
	}
}

func TestCmppdUnorderedOnNaN(t *testing.T) {
	nan := math.NaN()
	a := types.U128{}.WithLaneF64(0, nan)
	b := types.U128{}.WithLaneF64(0, 1.0)
	got := Cmppd(a, b, CmpUNORD)
	if got.Lane64(0) != ^uint64(0) {
		t.Errorf("Cmppd UNORD with NaN = %#x, want all-ones", got.Lane64(0))
	}
}

func TestComisdOrdering(t *testing.T) {
	var f flags.Arith
	a := types.U128{}.WithLaneF64(0, 1.0)
	b := types.U128{}.WithLaneF64(0, 2.0)
	Comisd(a, b, &f)
	if !f.CF || f.ZF {
		t.Errorf("Comisd(1,2) CF=%v ZF=%v, want CF=true ZF=false", f.CF, f.ZF)
	}
}

func TestPcmpistriStubReturnsZeroValue(t *testing.T) {
	idx, f := Pcmpistri(types.U128{}, types.U128{}, 0)
	if idx != 0 || f != (flags.Arith{}) {
		t.Errorf("Pcmpistri stub = %d, %+v, want 0, zero flags", idx, f)
	}
}
