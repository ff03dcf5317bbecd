package cpuimpl

import (
	"testing"

	"github.com/n-stott/x64emulator/types"
)

func TestPaddbLaneIndependence(t *testing.T) {
	// spec.md §8 universal invariant: packed lane independence.
	var a1, b1, a2, b2 types.U128
	a1 = a1.WithLane8(0, 200).WithLane8(1, 10)
	b1 = b1.WithLane8(0, 100).WithLane8(1, 20)
	a2 = a2.WithLane8(0, 200).WithLane8(1, 99) // lane 0 agrees with a1/b1, lane 1 differs
	b2 = b2.WithLane8(0, 100).WithLane8(1, 88)

	r1 := Paddb(a1, b1)
	r2 := Paddb(a2, b2)

	if r1.Lane8(0) != r2.Lane8(0) {
		t.Errorf("lane 0 should agree: %d != %d", r1.Lane8(0), r2.Lane8(0))
	}
}

func TestPaddbWraps(t *testing.T) {
	var a, b types.U128
	a = a.WithLane8(0, 200)
	b = b.WithLane8(0, 100)
	got := Paddb(a, b)
	if got.Lane8(0) != byte(300%256) {
		t.Errorf("Paddb(200,100) lane 0 = %d, want %d (mod 256 wraparound)", got.Lane8(0), 300%256)
	}
}

func TestPsubbWraps(t *testing.T) {
	var a, b types.U128
	a = a.WithLane8(0, 5)
	b = b.WithLane8(0, 10)
	got := Psubb(a, b)
	if got.Lane8(0) != byte(5-10) {
		t.Errorf("Psubb(5,10) lane 0 = %d, want %d", got.Lane8(0), byte(5-10))
	}
}

func TestPaddsbSaturatesAtSignedMax(t *testing.T) {
	var a, b types.U128
	a = a.WithLane8(0, 100)
	b = b.WithLane8(0, 100)
	got := Paddsb(a, b)
	if int8(got.Lane8(0)) != 127 {
		t.Errorf("Paddsb(100,100) = %d, want saturated 127", int8(got.Lane8(0)))
	}
}

func TestPaddusbSaturatesAtUnsignedMax(t *testing.T) {
	var a, b types.U128
	a = a.WithLane8(0, 200)
	b = b.WithLane8(0, 200)
	got := Paddusb(a, b)
	if got.Lane8(0) != 255 {
		t.Errorf("Paddusb(200,200) = %d, want saturated 255", got.Lane8(0))
	}
}

func TestPsubusbSaturatesAtZero(t *testing.T) {
	var a, b types.U128
	a = a.WithLane8(0, 5)
	b = b.WithLane8(0, 10)
	got := Psubusb(a, b)
	if got.Lane8(0) != 0 {
		t.Errorf("Psubusb(5,10) = %d, want saturated 0", got.Lane8(0))
	}
}
