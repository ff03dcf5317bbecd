package types

import "testing"

func TestU128Logical(t *testing.T) {
	a := U128{Lo: 0xFF00FF00FF00FF00, Hi: 0x0F0F0F0F0F0F0F0F}
	b := U128{Lo: 0x00FF00FF00FF00FF, Hi: 0xF0F0F0F0F0F0F0F0}

	if got := a.And(b); !got.IsZero() {
		t.Errorf("And: expected zero, got %+v", got)
	}
	if got := a.Or(b); got.Lo != 0xFFFFFFFFFFFFFFFF || got.Hi != 0xFFFFFFFFFFFFFFFF {
		t.Errorf("Or: expected all-ones, got %+v", got)
	}
	if got := a.Xor(b); got.Lo != 0xFFFFFFFFFFFFFFFF || got.Hi != 0xFFFFFFFFFFFFFFFF {
		t.Errorf("Xor: expected all-ones, got %+v", got)
	}
	allOnes := U128{Lo: ^uint64(0), Hi: ^uint64(0)}
	if got := a.AndNot(allOnes); !got.Equal(b) {
		t.Errorf("AndNot(allOnes): expected ^a (== b) %+v, got %+v", b, got)
	}
}

func TestU128Equal(t *testing.T) {
	a := U128{Lo: 1, Hi: 2}
	b := U128{Lo: 1, Hi: 2}
	c := U128{Lo: 1, Hi: 3}
	if !a.Equal(b) {
		t.Error("expected a == b")
	}
	if a.Equal(c) {
		t.Error("expected a != c")
	}
	if !(U128{}).IsZero() {
		t.Error("expected zero value to report IsZero")
	}
}

func TestU128Lane64(t *testing.T) {
	v := U128{Lo: 0x1111111111111111, Hi: 0x2222222222222222}
	if v.Lane64(0) != 0x1111111111111111 {
		t.Errorf("Lane64(0) = %#x", v.Lane64(0))
	}
	if v.Lane64(1) != 0x2222222222222222 {
		t.Errorf("Lane64(1) = %#x", v.Lane64(1))
	}
	w := v.WithLane64(1, 0x3333333333333333)
	if w.Hi != 0x3333333333333333 || w.Lo != v.Lo {
		t.Errorf("WithLane64(1) = %+v", w)
	}
}

func TestU128Lane32RoundTrip(t *testing.T) {
	var v U128
	for i := 0; i < 4; i++ {
		v = v.WithLane32(i, uint32(i+1))
	}
	for i := 0; i < 4; i++ {
		if got := v.Lane32(i); got != uint32(i+1) {
			t.Errorf("Lane32(%d) = %d, want %d", i, got, i+1)
		}
	}
}

func TestU128Lane16RoundTrip(t *testing.T) {
	var v U128
	for i := 0; i < 8; i++ {
		v = v.WithLane16(i, uint16(i*10+1))
	}
	for i := 0; i < 8; i++ {
		if got := v.Lane16(i); got != uint16(i*10+1) {
			t.Errorf("Lane16(%d) = %d, want %d", i, got, i*10+1)
		}
	}
}

func TestU128Lane8RoundTrip(t *testing.T) {
	var v U128
	for i := 0; i < 16; i++ {
		v = v.WithLane8(i, byte(i))
	}
	for i := 0; i < 16; i++ {
		if got := v.Lane8(i); got != byte(i) {
			t.Errorf("Lane8(%d) = %d, want %d", i, got, i)
		}
	}
}

func TestU128LaneFloat(t *testing.T) {
	var v U128
	v = v.WithLaneF64(0, 3.5)
	v = v.WithLaneF64(1, -2.25)
	if v.LaneF64(0) != 3.5 || v.LaneF64(1) != -2.25 {
		t.Errorf("LaneF64 round trip failed: %+v", v)
	}

	var w U128
	for i := 0; i < 4; i++ {
		w = w.WithLaneF32(i, float32(i)+0.5)
	}
	for i := 0; i < 4; i++ {
		if got := w.LaneF32(i); got != float32(i)+0.5 {
			t.Errorf("LaneF32(%d) = %v, want %v", i, got, float32(i)+0.5)
		}
	}
}

func TestU128BytesRoundTrip(t *testing.T) {
	v := U128{Lo: 0x0102030405060708, Hi: 0x1112131415161718}
	b := v.Bytes()
	if b[0] != 0x08 || b[15] != 0x11 {
		t.Errorf("unexpected byte layout: %x", b)
	}
	back := U128FromBytes(b)
	if !back.Equal(v) {
		t.Errorf("round trip mismatch: got %+v, want %+v", back, v)
	}
}
