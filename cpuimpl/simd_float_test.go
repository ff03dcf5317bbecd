package cpuimpl

import (
	"math"
	"testing"

	"github.com/n-stott/x64emulator/types"
)

func TestAddpdPerLane(t *testing.T) {
	a := types.U128{}.WithLaneF64(0, 1.0).WithLaneF64(1, 2.0)
	b := types.U128{}.WithLaneF64(0, 0.5).WithLaneF64(1, 0.25)
	got := Addpd(a, b, false)
	if got.LaneF64(0) != 1.5 || got.LaneF64(1) != 2.25 {
		t.Errorf("Addpd = %v,%v, want 1.5,2.25", got.LaneF64(0), got.LaneF64(1))
	}
}

func TestAddpdFlushesSubnormalToZero(t *testing.T) {
	a := types.U128{}.WithLaneF64(0, minNormalFloat64/2)
	b := types.U128{}.WithLaneF64(0, 0)
	got := Addpd(a, b, true)
	if got.LaneF64(0) != 0 {
		t.Errorf("Addpd with ftz should flush subnormal to zero, got %v", got.LaneF64(0))
	}
}

func TestMulpsPerLane(t *testing.T) {
	a := types.U128{}.WithLaneF32(0, 2).WithLaneF32(1, 3).WithLaneF32(2, 4).WithLaneF32(3, 5)
	b := types.U128{}.WithLaneF32(0, 2).WithLaneF32(1, 2).WithLaneF32(2, 2).WithLaneF32(3, 2)
	got := Mulps(a, b, false)
	want := []float32{4, 6, 8, 10}
	for i, w := range want {
		if got.LaneF32(i) != w {
			t.Errorf("Mulps lane %d = %v, want %v", i, got.LaneF32(i), w)
		}
	}
}

func TestScalarArithLeavesOtherLaneUntouched(t *testing.T) {
	a := types.U128{}.WithLaneF64(0, 1).WithLaneF64(1, 99)
	b := types.U128{}.WithLaneF64(0, 1)
	got := Addsd(a, b)
	if got.LaneF64(0) != 2 {
		t.Errorf("Addsd low lane = %v, want 2", got.LaneF64(0))
	}
	if got.LaneF64(1) != 99 {
		t.Errorf("Addsd should leave upper lane untouched, got %v", got.LaneF64(1))
	}
}

func TestMinMaxNaNReturnsSrc(t *testing.T) {
	// spec.md §4.1.8: if either operand is NaN, Min/Max return src (b).
	a := types.U128{}.WithLaneF64(0, math.NaN())
	b := types.U128{}.WithLaneF64(0, 5)
	got := Minsd(a, b)
	if got.LaneF64(0) != 5 {
		t.Errorf("Minsd(NaN,5) = %v, want 5 (src)", got.LaneF64(0))
	}

	a2 := types.U128{}.WithLaneF64(0, 5)
	b2 := types.U128{}.WithLaneF64(0, math.NaN())
	got2 := Maxsd(a2, b2)
	if !math.IsNaN(got2.LaneF64(0)) {
		t.Errorf("Maxsd(5,NaN) = %v, want NaN (src)", got2.LaneF64(0))
	}
}

func TestMinMaxZeroReturnsSrc(t *testing.T) {
	a := types.U128{}.WithLaneF64(0, math.Copysign(0, -1))
	b := types.U128{}.WithLaneF64(0, 0)
	got := Minsd(a, b)
	if math.Signbit(got.LaneF64(0)) {
		t.Errorf("Minsd(-0,+0) should return src (+0), got signbit set")
	}
}

func TestMaxMinOrdinaryValues(t *testing.T) {
	a := types.U128{}.WithLaneF64(0, 1)
	b := types.U128{}.WithLaneF64(0, 2)
	if got := Maxsd(a, b).LaneF64(0); got != 2 {
		t.Errorf("Maxsd(1,2) = %v, want 2", got)
	}
	if got := Minsd(a, b).LaneF64(0); got != 1 {
		t.Errorf("Minsd(1,2) = %v, want 1", got)
	}
}

func TestSqrtss(t *testing.T) {
	a := types.U128{}.WithLaneF32(0, 9)
	got := Sqrtss(a)
	if got.LaneF32(0) != 3 {
		t.Errorf("Sqrtss(9) = %v, want 3", got.LaneF32(0))
	}
}
