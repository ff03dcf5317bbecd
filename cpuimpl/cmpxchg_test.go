package cpuimpl

import (
	"testing"

	"github.com/n-stott/x64emulator/flags"
)

func TestCmpxchgZeroFlagMatchesEquality(t *testing.T) {
	var f flags.Arith
	Cmpxchg(uint32(42), 42, &f)
	if !f.ZF {
		t.Error("expected ZF set when acc == dest")
	}

	Cmpxchg(uint32(1), 2, &f)
	if f.ZF {
		t.Error("expected ZF clear when acc != dest")
	}
}
