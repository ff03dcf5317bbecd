package cpuimpl

import (
	"testing"

	"github.com/n-stott/x64emulator/types"
)

func TestRoundFloat64Modes(t *testing.T) {
	cases := []struct {
		mode types.RoundMode
		in   float64
		want float64
	}{
		{types.RoundNearestEven, 2.5, 2.0},
		{types.RoundNearestEven, 3.5, 4.0},
		{types.RoundDown, 2.9, 2.0},
		{types.RoundDown, -2.1, -3.0},
		{types.RoundUp, 2.1, 3.0},
		{types.RoundTowardZero, -2.9, -2.0},
	}
	for _, c := range cases {
		if got := roundFloat64(c.in, c.mode); got != c.want {
			t.Errorf("roundFloat64(%v, %v) = %v, want %v", c.in, c.mode, got, c.want)
		}
	}
}

func TestCvtsi2sdAndBack(t *testing.T) {
	var dst types.U128
	got := Cvtsi2sd(dst, 42)
	if got.LaneF64(0) != 42 {
		t.Errorf("Cvtsi2sd(42) = %v, want 42", got.LaneF64(0))
	}
	if Cvttsd2si(got) != 42 {
		t.Errorf("Cvttsd2si round trip = %v, want 42", Cvttsd2si(got))
	}
}

func TestCvttsd2siTruncatesTowardZero(t *testing.T) {
	src := types.U128{}.WithLaneF64(0, -2.9)
	if got := Cvttsd2si(src); got != -2 {
		t.Errorf("Cvttsd2si(-2.9) = %v, want -2", got)
	}
}

func TestCvtsd2siUsesRoundingMode(t *testing.T) {
	src := types.U128{}.WithLaneF64(0, 2.5)
	if got := Cvtsd2si(src, types.RoundNearestEven); got != 2 {
		t.Errorf("Cvtsd2si(2.5, nearest-even) = %v, want 2", got)
	}
}

func TestCvtsd2ssNarrows(t *testing.T) {
	var dst types.U128
	src := types.U128{}.WithLaneF64(0, 1.5)
	got := Cvtsd2ss(dst, src)
	if got.LaneF32(0) != 1.5 {
		t.Errorf("Cvtsd2ss(1.5) = %v, want 1.5", got.LaneF32(0))
	}
}

func TestCvtdq2pdWidensLowTwoLanes(t *testing.T) {
	src := types.U128{}.WithLane32(0, uint32(int32(-5))).WithLane32(1, 7)
	got := Cvtdq2pd(src)
	if got.LaneF64(0) != -5 || got.LaneF64(1) != 7 {
		t.Errorf("Cvtdq2pd = %v,%v, want -5,7", got.LaneF64(0), got.LaneF64(1))
	}
}

func TestCvtpd2dqRoundsPerMode(t *testing.T) {
	src := types.U128{}.WithLaneF64(0, 2.5).WithLaneF64(1, -2.5)
	got := Cvtpd2dq(src, types.RoundNearestEven)
	if int32(got.Lane32(0)) != 2 || int32(got.Lane32(1)) != -2 {
		t.Errorf("Cvtpd2dq(2.5,-2.5) = %v,%v, want 2,-2", int32(got.Lane32(0)), int32(got.Lane32(1)))
	}
}

func TestCvttps2dqTruncates(t *testing.T) {
	src := types.U128{}.WithLaneF32(0, 3.9)
	got := Cvttps2dq(src)
	if int32(got.Lane32(0)) != 3 {
		t.Errorf("Cvttps2dq(3.9) = %v, want 3", int32(got.Lane32(0)))
	}
}

func TestRoundsdPreservesUpperLane(t *testing.T) {
	dst := types.U128{}.WithLaneF64(0, 99).WithLaneF64(1, 7)
	src := types.U128{}.WithLaneF64(0, 2.5)
	got := Roundsd(dst, src, types.RoundNearestEven)
	if got.LaneF64(0) != 2 {
		t.Errorf("Roundsd(2.5, nearest-even) = %v, want 2", got.LaneF64(0))
	}
	if got.LaneF64(1) != 7 {
		t.Errorf("Roundsd left lane 1 = %v, want unchanged 7", got.LaneF64(1))
	}
}

func TestRoundssPreservesUpperLanes(t *testing.T) {
	dst := types.U128{}.WithLaneF32(0, 99).WithLaneF32(1, 11).WithLaneF32(2, 22).WithLaneF32(3, 33)
	src := types.U128{}.WithLaneF32(0, -2.1)
	got := Roundss(dst, src, types.RoundDown)
	if got.LaneF32(0) != -3 {
		t.Errorf("Roundss(-2.1, down) = %v, want -3", got.LaneF32(0))
	}
	if got.LaneF32(1) != 11 || got.LaneF32(2) != 22 || got.LaneF32(3) != 33 {
		t.Errorf("Roundss changed untouched lanes: %v,%v,%v, want 11,22,33",
			got.LaneF32(1), got.LaneF32(2), got.LaneF32(3))
	}
}
