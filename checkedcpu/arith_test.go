package checkedcpu

import (
	"testing"

	"github.com/n-stott/x64emulator/flags"
)

func TestAddPassesThroughToModel(t *testing.T) {
	var f flags.Arith
	got := Add(uint32(1), 2, &f)
	if got != 3 || f.ZF {
		t.Errorf("Add(1,2) = %d, ZF=%v, want 3, ZF=false", got, f.ZF)
	}
}

func TestMulAgreesWithHostBridge(t *testing.T) {
	var f flags.Arith
	upper, lower := Mul(uint64(3), 4, &f)
	if upper != 0 || lower != 12 {
		t.Errorf("Mul(3,4) = %d,%d, want 0,12", upper, lower)
	}
	if f.CF || f.OF {
		t.Errorf("Mul(3,4) should not set CF/OF, got CF=%v OF=%v", f.CF, f.OF)
	}
}

func TestMulSetsCarryOnOverflow32(t *testing.T) {
	var f flags.Arith
	upper, _ := Mul(uint32(0xFFFFFFFF), 2, &f)
	if upper == 0 {
		t.Error("expected nonzero upper half for overflowing 32-bit multiply")
	}
	if !f.CF || !f.OF {
		t.Errorf("expected CF=OF=true on overflowing multiply, got CF=%v OF=%v", f.CF, f.OF)
	}
}

func TestImul64AgreesWithHostBridge(t *testing.T) {
	var f flags.Arith
	// spec.md §8 test 3: imul64(3, 0xAAAA_AAAA_AAAA_AAAB) saturates.
	_, lower := Imul(uint64(3), 0xAAAAAAAAAAAAAAAB, &f)
	if lower != 1 {
		t.Errorf("Imul64 lower = %#x, want 1", lower)
	}
	if !f.CF || !f.OF {
		t.Errorf("Imul64 expected CF=OF=true, got CF=%v OF=%v", f.CF, f.OF)
	}
}

func TestImulNarrowWidthFallsBackToModel(t *testing.T) {
	var f flags.Arith
	upper, lower := Imul(uint32(3), 4, &f)
	_ = upper
	if lower != 12 {
		t.Errorf("Imul(3,4) lower = %d, want 12", lower)
	}
}

func TestDivAgreesWithHostBridge(t *testing.T) {
	q, r := Div(uint32(0), uint32(100), 7)
	if q != 14 || r != 2 {
		t.Errorf("Div(100,7) = %d,%d, want 14,2", q, r)
	}
}

func TestIdivAgreesWithHostBridge(t *testing.T) {
	q, r := Idiv(uint32(0xFFFFFFFF), uint32(uint32(int32(-100))), 7)
	if int32(q) != -14 || int32(r) != -2 {
		t.Errorf("Idiv(-100,7) = %d,%d, want -14,-2", int32(q), int32(r))
	}
}
