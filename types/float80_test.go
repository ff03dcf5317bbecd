package types

import (
	"math"
	"testing"
)

func TestFloat80ZeroAndSign(t *testing.T) {
	posZero := Float80{}
	if !posZero.IsZero() || posZero.Sign() {
		t.Errorf("expected +0, got %+v", posZero)
	}

	negZero := Float80{Exponent: 0x8000}
	if !negZero.IsZero() || !negZero.Sign() {
		t.Errorf("expected -0, got %+v", negZero)
	}
}

func TestFloat80InfAndNaN(t *testing.T) {
	posInf := Float80{Exponent: 0x7FFF}
	if !posInf.IsInf() || posInf.IsNaN() {
		t.Errorf("expected +inf, got %+v", posInf)
	}

	nan := Float80{Mantissa: 0xC000000000000000, Exponent: 0x7FFF}
	if !nan.IsNaN() || nan.IsInf() {
		t.Errorf("expected NaN, got %+v", nan)
	}
}

func TestFloat80BytesRoundTrip(t *testing.T) {
	f := Float80FromFloat64(3.140625)
	b := f.Bytes()
	back := Float80FromBytes(b)
	if back != f {
		t.Errorf("round trip mismatch: got %+v, want %+v", back, f)
	}
}

func TestFloat80Float64RoundTrip(t *testing.T) {
	for _, v := range []float64{0, 1, -1, 3.140625, 1e10, -1e-10} {
		f := Float80FromFloat64(v)
		if got := f.ToFloat64(); got != v {
			t.Errorf("Float80FromFloat64(%v).ToFloat64() = %v", v, got)
		}
	}
}

func TestFloat80NegativeZeroFloat64(t *testing.T) {
	f := Float80FromFloat64(0)
	if f.Sign() {
		t.Error("expected +0 to widen with positive sign")
	}

	neg := Float80FromFloat64(math.Copysign(0, -1))
	if !neg.IsZero() || !neg.Sign() {
		t.Error("expected -0 to widen with negative sign")
	}
}

func TestFloat80FromInt64(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 1 << 40, -(1 << 40)} {
		f := Float80FromInt64(v)
		if got := f.ToInt64(RoundTowardZero); got != v {
			t.Errorf("Float80FromInt64(%d).ToInt64() = %d", v, got)
		}
	}
}

func TestFloat80RoundToIntNearestEvenTiesToEven(t *testing.T) {
	cases := []struct {
		in   float64
		want float64
	}{
		{0.5, 0},
		{1.5, 2},
		{2.5, 2},
		{-0.5, 0},
		{-1.5, -2},
	}
	for _, c := range cases {
		f := Float80FromFloat64(c.in)
		rounded := f.RoundToInt(RoundNearestEven)
		if got := rounded.ToFloat64(); got != c.want {
			t.Errorf("RoundToInt(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestFloat80RoundToIntTowardZero(t *testing.T) {
	f := Float80FromFloat64(2.9)
	rounded := f.RoundToInt(RoundTowardZero)
	if got := rounded.ToFloat64(); got != 2 {
		t.Errorf("RoundToInt(2.9, TowardZero) = %v, want 2", got)
	}

	neg := Float80FromFloat64(-2.9)
	roundedNeg := neg.RoundToInt(RoundTowardZero)
	if got := roundedNeg.ToFloat64(); got != -2 {
		t.Errorf("RoundToInt(-2.9, TowardZero) = %v, want -2", got)
	}
}

func TestFloat80ToFloat32(t *testing.T) {
	f := Float80FromFloat32(1.5)
	if got := f.ToFloat32(); got != 1.5 {
		t.Errorf("ToFloat32() = %v, want 1.5", got)
	}
}
