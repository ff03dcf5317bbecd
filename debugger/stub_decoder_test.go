package debugger

import (
	"github.com/n-stott/x64emulator/cpu"
	"github.com/n-stott/x64emulator/decode"
)

// stubDecoder satisfies the Decoder interface for tests that exercise
// stepping without a real instruction stream: every decode yields an
// immediate HLT at the CPU's current RIP.
type stubDecoder struct{}

func (stubDecoder) Decode(c *cpu.Cpu) (*decode.Instruction, error) {
	return &decode.Instruction{
		Address:  c.Regs.RIP(),
		Mnemonic: decode.HLT,
	}, nil
}
