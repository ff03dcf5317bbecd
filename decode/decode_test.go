package decode

import "testing"

func TestInstructionOperandOutOfRangeReturnsNone(t *testing.T) {
	in := &Instruction{NumOperands: 1, Operands: [3]Operand{{Kind: OperandGPR, Reg: 0}}}
	if got := in.Operand(1); got.Kind != OperandNone {
		t.Errorf("Operand(1) with NumOperands=1 = %v, want OperandNone", got.Kind)
	}
	if got := in.Operand(-1); got.Kind != OperandNone {
		t.Errorf("Operand(-1) = %v, want OperandNone", got.Kind)
	}
}

func TestInstructionOperandReturnsWithinRange(t *testing.T) {
	in := &Instruction{
		NumOperands: 2,
		Operands: [3]Operand{
			{Kind: OperandGPR, Reg: 3},
			{Kind: OperandImm, Imm: 42},
		},
	}
	if got := in.Operand(0); got.Kind != OperandGPR || got.Reg != 3 {
		t.Errorf("Operand(0) = %+v, want GPR reg 3", got)
	}
	if got := in.Operand(1); got.Kind != OperandImm || got.Imm != 42 {
		t.Errorf("Operand(1) = %+v, want Imm 42", got)
	}
}

func TestMnemonicSetIsClosedAndNonOverlapping(t *testing.T) {
	if Unknown != 0 {
		t.Errorf("Unknown should be the zero value, got %d", Unknown)
	}
	if NumMnemonics <= HLT {
		t.Errorf("NumMnemonics (%d) should exceed the last named mnemonic HLT (%d)", NumMnemonics, HLT)
	}
}

func TestWidthConstantsMatchBitCounts(t *testing.T) {
	cases := []struct {
		w    Width
		bits int
	}{
		{W8, 8}, {W16, 16}, {W32, 32}, {W64, 64}, {W80, 80}, {W128, 128},
	}
	for _, c := range cases {
		if int(c.w) != c.bits {
			t.Errorf("Width %v = %d, want %d", c.w, c.w, c.bits)
		}
	}
}
