package host

import (
	"testing"

	"github.com/n-stott/x64emulator/types"
)

func TestRoundToInt64Modes(t *testing.T) {
	if got := RoundToInt64(2.5); got != 2 {
		t.Errorf("RoundToInt64(2.5) default (nearest-even) = %d, want 2", got)
	}

	WithRoundingMode(types.RoundUp, func() {
		if got := RoundToInt64(2.1); got != 3 {
			t.Errorf("RoundToInt64(2.1) under RoundUp = %d, want 3", got)
		}
	})

	if got := RoundToInt64(2.1); got != 2 {
		t.Errorf("RoundToInt64(2.1) after WithRoundingMode restores = %d, want 2", got)
	}
}

func TestRoundToInt32(t *testing.T) {
	WithRoundingMode(types.RoundTowardZero, func() {
		if got := RoundToInt32(-2.9); got != -2 {
			t.Errorf("RoundToInt32(-2.9) under RoundTowardZero = %d, want -2", got)
		}
	})
}

func TestRoundToInt80(t *testing.T) {
	f := types.Float80FromFloat64(1.5)
	WithRoundingMode(types.RoundDown, func() {
		got := RoundToInt80(f)
		if got.ToFloat64() != 1 {
			t.Errorf("RoundToInt80(1.5) under RoundDown = %v, want 1", got.ToFloat64())
		}
	})
}

func TestWithRoundingModeRestoresOnPanic(t *testing.T) {
	defer func() {
		recover()
		if RoundingMode() != types.RoundNearestEven {
			t.Error("expected rounding mode to be restored even after a panic")
		}
	}()

	WithRoundingMode(types.RoundUp, func() {
		panic("boom")
	})
}
