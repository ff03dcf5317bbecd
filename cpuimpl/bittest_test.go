package cpuimpl

import (
	"testing"

	"github.com/n-stott/x64emulator/flags"
)

func TestBt(t *testing.T) {
	var f flags.Arith
	Bt(uint32(0b1010), 1, &f)
	if !f.CF {
		t.Error("expected CF set for a set bit")
	}
	Bt(uint32(0b1010), 0, &f)
	if f.CF {
		t.Error("expected CF clear for a clear bit")
	}
}

func TestBtIndexWraps(t *testing.T) {
	var f1, f2 flags.Arith
	Bt(uint32(1), 32, &f1) // index % 32 == 0
	Bt(uint32(1), 0, &f2)
	if f1.CF != f2.CF {
		t.Error("expected bit index to wrap modulo width")
	}
}

func TestBtrClearsBit(t *testing.T) {
	var f flags.Arith
	got := Btr(uint32(0b1111), 1, &f)
	if got != 0b1101 || !f.CF {
		t.Errorf("Btr(0b1111,1) = %b CF=%v, want 0b1101 CF=true", got, f.CF)
	}
}

func TestBtsSetsBit(t *testing.T) {
	var f flags.Arith
	got := Bts(uint32(0b1000), 0, &f)
	if got != 0b1001 || f.CF {
		t.Errorf("Bts(0b1000,0) = %b CF=%v, want 0b1001 CF=false", got, f.CF)
	}
}

func TestBtcComplementsBit(t *testing.T) {
	var f flags.Arith
	got := Btc(uint32(0b1000), 3, &f)
	if got != 0 {
		t.Errorf("Btc(0b1000,3) = %b, want 0", got)
	}
	got2 := Btc(got, 3, &f)
	if got2 != 0b1000 {
		t.Errorf("Btc(Btc(...)) = %b, want 0b1000", got2)
	}
}
