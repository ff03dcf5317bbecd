package cpuimpl

import (
	"testing"

	"github.com/n-stott/x64emulator/types"
)

func TestPacksswbSaturates(t *testing.T) {
	a := types.U128{}.WithLane16(0, uint16(int16(200)))
	b := types.U128{}.WithLane16(0, uint16(int16(-200)))
	got := Packsswb(a, b)
	if int8(got.Lane8(0)) != 127 {
		t.Errorf("Packsswb(200,...) lane 0 = %d, want 127 (saturated)", int8(got.Lane8(0)))
	}
	if int8(got.Lane8(8)) != -128 {
		t.Errorf("Packsswb(...,-200) lane 8 = %d, want -128 (saturated)", int8(got.Lane8(8)))
	}
}

func TestPacksswbExactValues(t *testing.T) {
	a := types.U128{}.WithLane16(0, uint16(int16(10)))
	b := types.U128{}.WithLane16(0, uint16(int16(-10)))
	got := Packsswb(a, b)
	if int8(got.Lane8(0)) != 10 {
		t.Errorf("Packsswb exact lane 0 = %d, want 10", int8(got.Lane8(0)))
	}
	if int8(got.Lane8(8)) != -10 {
		t.Errorf("Packsswb exact lane 8 = %d, want -10", int8(got.Lane8(8)))
	}
}

func TestPackuswbClampsNegativeToZero(t *testing.T) {
	a := types.U128{}.WithLane16(0, uint16(int16(-1)))
	b := types.U128{}.WithLane16(0, uint16(int16(300)))
	got := Packuswb(a, b)
	if got.Lane8(0) != 0 {
		t.Errorf("Packuswb(-1) lane 0 = %d, want 0", got.Lane8(0))
	}
	if got.Lane8(8) != 255 {
		t.Errorf("Packuswb(300) lane 8 = %d, want 255", got.Lane8(8))
	}
}

func TestPackssdwSaturates(t *testing.T) {
	a := types.U128{}.WithLane32(0, uint32(int32(100000)))
	got := Packssdw(a, types.U128{})
	if int16(got.Lane16(0)) != 32767 {
		t.Errorf("Packssdw(100000) lane 0 = %d, want 32767", int16(got.Lane16(0)))
	}
}
