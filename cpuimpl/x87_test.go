package cpuimpl

import (
	"testing"

	"github.com/n-stott/x64emulator/flags"
	"github.com/n-stott/x64emulator/types"
)

func f80(v float64) types.Float80 { return types.Float80FromFloat64(v) }

func TestFrndintBankersRounding(t *testing.T) {
	// spec.md §8 test 4.
	cases := []struct {
		in, want float64
	}{
		{2.5, 2.0},
		{3.5, 4.0},
		{-2.5, -2.0},
		{-3.5, -4.0},
	}
	for _, c := range cases {
		got := Frndint(f80(c.in), types.RoundNearestEven)
		if got.ToFloat64() != c.want {
			t.Errorf("Frndint(%v) = %v, want %v", c.in, got.ToFloat64(), c.want)
		}
	}
}

func TestFaddSubMulDiv(t *testing.T) {
	a, b := f80(3), f80(4)
	if got := Fadd(a, b, types.RoundNearestEven).ToFloat64(); got != 7 {
		t.Errorf("Fadd(3,4) = %v, want 7", got)
	}
	if got := Fsub(a, b, types.RoundNearestEven).ToFloat64(); got != -1 {
		t.Errorf("Fsub(3,4) = %v, want -1", got)
	}
	if got := Fmul(a, b, types.RoundNearestEven).ToFloat64(); got != 12 {
		t.Errorf("Fmul(3,4) = %v, want 12", got)
	}
	if got := Fdiv(b, a, types.RoundNearestEven).ToFloat64(); got < 1.333332 || got > 1.333334 {
		t.Errorf("Fdiv(4,3) = %v, want ~1.3333", got)
	}
}

func TestFcomiOrdering(t *testing.T) {
	var f flags.Arith
	Fcomi(f80(1), f80(2), &f)
	if f.CF != true || f.ZF != false {
		t.Errorf("Fcomi(1,2) CF=%v ZF=%v, want CF=true ZF=false", f.CF, f.ZF)
	}

	Fcomi(f80(2), f80(1), &f)
	if f.CF != false || f.ZF != false {
		t.Errorf("Fcomi(2,1) CF=%v ZF=%v, want CF=false ZF=false", f.CF, f.ZF)
	}

	Fcomi(f80(2), f80(2), &f)
	if f.CF != false || f.ZF != true {
		t.Errorf("Fcomi(2,2) CF=%v ZF=%v, want CF=false ZF=true", f.CF, f.ZF)
	}
}

func TestFcomiUnorderedOnNaN(t *testing.T) {
	nan := types.Float80{Mantissa: 0xC000000000000000, Exponent: 0x7FFF}
	var f flags.Arith
	Fcomi(nan, f80(1), &f)
	if !f.CF || !f.ZF || !f.PF {
		t.Errorf("expected unordered result (CF=ZF=PF=true) for NaN compare, got CF=%v ZF=%v PF=%v", f.CF, f.ZF, f.PF)
	}
}
