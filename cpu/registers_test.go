package cpu

import (
	"testing"

	"github.com/n-stott/x64emulator/types"
)

func TestWriteGPR32ZeroExtends(t *testing.T) {
	var r Registers
	r.WriteGPR64(RAX, 0xFFFFFFFFFFFFFFFF)
	r.WriteGPR32(RAX, 0x12345678)
	if got := r.ReadGPR(RAX); got != 0x12345678 {
		t.Errorf("RAX after WriteGPR32 = %#x, want 0x12345678 (zero-extended)", got)
	}
}

func TestWriteGPR16PreservesUpperBits(t *testing.T) {
	var r Registers
	r.WriteGPR64(RAX, 0x1122334455667788)
	r.WriteGPR16(RAX, 0xBEEF)
	if got := r.ReadGPR(RAX); got != 0x112233445566BEEF {
		t.Errorf("RAX after WriteGPR16 = %#x, want 0x112233445566beef", got)
	}
}

func TestWriteGPR8LowPreservesUpperBits(t *testing.T) {
	var r Registers
	r.WriteGPR64(RAX, 0x1122334455667788)
	r.WriteGPR8Low(RAX, 0xFF)
	if got := r.ReadGPR(RAX); got != 0x11223344556677FF {
		t.Errorf("RAX after WriteGPR8Low = %#x, want 0x11223344556677ff", got)
	}
}

func TestHighByteRegisterAliasesRAX(t *testing.T) {
	var r Registers
	r.WriteGPR64(RAX, 0)
	r.WriteGPR8High(RAX, 0xAB)
	if got := r.ReadGPR(RAX); got != 0xAB00 {
		t.Errorf("RAX after WriteGPR8High(0xab) = %#x, want 0xab00", got)
	}
	if got := r.ReadGPR8High(RAX); got != 0xAB {
		t.Errorf("ReadGPR8High(RAX) = %#x, want 0xab", got)
	}
	r.WriteGPR8Low(RAX, 0xCD)
	if got := r.ReadGPR(RAX); got != 0xABCD {
		t.Errorf("RAX after also setting low byte = %#x, want 0xabcd (high byte untouched)", got)
	}
}

func TestXMMRoundTrip(t *testing.T) {
	var r Registers
	want := types.U128{Lo: 0xDEADBEEF, Hi: 0x1}
	r.SetXMM(3, want)
	if got := r.XMM(3); got != want {
		t.Errorf("XMM(3) = %+v, want %+v", got, want)
	}
}
