package flags

import (
	"testing"

	"github.com/n-stott/x64emulator/types"
)

func TestMXCSRResetValue(t *testing.T) {
	m := NewMXCSR()
	if got := m.ToUint32(); got != 0x1F80 {
		t.Errorf("expected reset MXCSR == 0x1F80, got %#x", got)
	}
}

func TestMXCSRRoundTrip(t *testing.T) {
	m := &MXCSR{
		RoundingControl:  types.RoundUp,
		FlushToZero:      true,
		DenormalsAreZero: true,
		Status:           ExceptionMask{Invalid: true, Overflow: true},
		Mask:             ExceptionMask{Denormal: true, Precision: true},
	}

	packed := m.ToUint32()

	var unpacked MXCSR
	unpacked.FromUint32(packed)

	if unpacked != *m {
		t.Errorf("round trip mismatch: got %+v, want %+v", unpacked, *m)
	}
}

func TestMXCSRFromUint32Bits(t *testing.T) {
	var m MXCSR
	m.FromUint32(1 << 0) // invalid status bit
	if !m.Status.Invalid {
		t.Error("expected bit 0 to set Status.Invalid")
	}

	var m2 MXCSR
	m2.FromUint32(1 << 15) // flush-to-zero
	if !m2.FlushToZero {
		t.Error("expected bit 15 to set FlushToZero")
	}
}
