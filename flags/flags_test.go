package flags

import "testing"

func TestParity8(t *testing.T) {
	cases := []struct {
		v    uint64
		want bool
	}{
		{0x00, true},  // zero set bits, even
		{0x01, false}, // one set bit, odd
		{0x03, true},  // two set bits, even
		{0xFF, true},  // eight set bits, even
		{0xFE, false}, // seven set bits, odd
	}
	for _, c := range cases {
		if got := Parity8(c.v); got != c.want {
			t.Errorf("Parity8(%#x) = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestParity8IgnoresUpperBits(t *testing.T) {
	if Parity8(0xFF00) != Parity8(0x0000) {
		t.Error("expected Parity8 to only consider the low byte")
	}
}
