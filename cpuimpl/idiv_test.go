package cpuimpl

import "testing"

func TestIdivPositive(t *testing.T) {
	q, r := Idiv(uint32(0), uint32(100), 7)
	if q != 14 || r != 2 {
		t.Errorf("Idiv(100,7) = %d,%d, want 14,2", q, r)
	}
}

func TestIdivNegativeDividend(t *testing.T) {
	// -100 / 7 = -14 remainder -2 (truncating toward zero, matching IDIV).
	q, r := Idiv(uint32(0xFFFFFFFF), uint32(uint32(int32(-100))), 7)
	if int32(q) != -14 || int32(r) != -2 {
		t.Errorf("Idiv(-100,7) = %d,%d, want -14,-2", int32(q), int32(r))
	}
}

func TestIdivByZeroPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected Idiv by zero to panic")
		}
	}()
	Idiv(uint32(0), uint32(1), 0)
}

func TestIdivQuotientOverflowPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected Idiv quotient overflow to panic")
		}
	}()
	// Dividing a value requiring more than 31 signed bits of quotient by 1.
	Idiv(uint32(1), uint32(0), 1)
}
