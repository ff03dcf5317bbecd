package cpuimpl

import (
	"testing"

	"github.com/n-stott/x64emulator/types"
)

func TestPsllwShiftsEachLane(t *testing.T) {
	v := types.U128{}.WithLane16(0, 1).WithLane16(1, 2)
	got := Psllw(v, 4)
	if got.Lane16(0) != 1<<4 || got.Lane16(1) != 2<<4 {
		t.Errorf("Psllw = %d,%d, want %d,%d", got.Lane16(0), got.Lane16(1), 1<<4, 2<<4)
	}
}

func TestPsllwCountAtOrAboveWidthZeroesLane(t *testing.T) {
	v := types.U128{}.WithLane16(0, 0xFFFF)
	got := Psllw(v, 16)
	if got.Lane16(0) != 0 {
		t.Errorf("Psllw count>=width = %#x, want 0", got.Lane16(0))
	}
}

func TestPsradPreservesSignAtSaturatedCount(t *testing.T) {
	v := types.U128{}.WithLane32(0, uint32(int32(-1)))
	got := Psrad(v, 100)
	if int32(got.Lane32(0)) != -1 {
		t.Errorf("Psrad(-1, 100) = %d, want -1 (sign-filled)", int32(got.Lane32(0)))
	}
}

func TestPsradPositiveSaturatesToZero(t *testing.T) {
	v := types.U128{}.WithLane32(0, 5)
	got := Psrad(v, 100)
	if got.Lane32(0) != 0 {
		t.Errorf("Psrad(5, 100) = %d, want 0", got.Lane32(0))
	}
}

func TestPslldqShiftsWholeBytes(t *testing.T) {
	var v types.U128
	v = v.WithLane8(0, 0xAB)
	got := Pslldq(v, 1)
	if got.Lane8(1) != 0xAB {
		t.Errorf("Pslldq(1) moved byte to lane %d, want lane 1 = 0xAB", 1)
	}
	if got.Lane8(0) != 0 {
		t.Errorf("Pslldq(1) lane 0 = %#x, want 0", got.Lane8(0))
	}
}

func TestPsrldqShiftsWholeBytes(t *testing.T) {
	var v types.U128
	v = v.WithLane8(1, 0xCD)
	got := Psrldq(v, 1)
	if got.Lane8(0) != 0xCD {
		t.Errorf("Psrldq(1) lane 0 = %#x, want 0xCD", got.Lane8(0))
	}
}

func TestPslldqCountAtOrAbove16ZeroesAll(t *testing.T) {
	v := types.U128{Lo: 0xFFFFFFFFFFFFFFFF, Hi: 0xFFFFFFFFFFFFFFFF}
	got := Pslldq(v, 16)
	if !got.IsZero() {
		t.Errorf("Pslldq(16) should zero the whole value, got %+v", got)
	}
}
