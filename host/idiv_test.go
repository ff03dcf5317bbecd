package host

import "testing"

func TestUDiv128Basic(t *testing.T) {
	q, r, div := UDiv128(0, 100, 7)
	if div {
		t.Fatal("did not expect a divide error")
	}
	if q != 14 || r != 2 {
		t.Errorf("UDiv128(0,100,7) = %d,%d, want 14,2", q, r)
	}
}

func TestUDiv128ByZero(t *testing.T) {
	_, _, div := UDiv128(0, 100, 0)
	if !div {
		t.Error("expected divide error for zero divisor")
	}
}

func TestUDiv128QuotientOverflow(t *testing.T) {
	// upper >= divisor guarantees a quotient that doesn't fit in 64 bits.
	_, _, div := UDiv128(5, 0, 3)
	if !div {
		t.Error("expected divide error for quotient overflow")
	}
}

func TestSDiv128Basic(t *testing.T) {
	q, r, div := SDiv128(0, 100, 7)
	if div {
		t.Fatal("did not expect a divide error")
	}
	if q != 14 || r != 2 {
		t.Errorf("SDiv128(0,100,7) = %d,%d, want 14,2", q, r)
	}
}

func TestSDiv128Negative(t *testing.T) {
	// -100 / 7 = -14 remainder -2 (truncating division, matching IDIV)
	q, r, div := SDiv128(^uint64(0), uint64(int64(-100)), 7)
	if div {
		t.Fatal("did not expect a divide error")
	}
	if int64(q) != -14 || int64(r) != -2 {
		t.Errorf("SDiv128(-100,7) = %d,%d, want -14,-2", int64(q), int64(r))
	}
}

func TestSDiv128ByZero(t *testing.T) {
	_, _, div := SDiv128(0, 10, 0)
	if !div {
		t.Error("expected divide error for zero divisor")
	}
}
