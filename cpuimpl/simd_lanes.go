package cpuimpl

import "github.com/n-stott/x64emulator/types"

// readLane and writeLane give the SIMD families a single width-parametric
// entry point onto types.U128's fixed-width lane accessors, so that
// instructions parameterized over lane width (spec.md §4.1.8) don't need a
// hand-written switch at every call site.
func readLane(v types.U128, laneBits, i int) uint64 {
	switch laneBits {
	case 8:
		return uint64(v.Lane8(i))
	case 16:
		return uint64(v.Lane16(i))
	case 32:
		return uint64(v.Lane32(i))
	default:
		return v.Lane64(i)
	}
}

func writeLane(v types.U128, laneBits, i int, x uint64) types.U128 {
	switch laneBits {
	case 8:
		return v.WithLane8(i, uint8(x))
	case 16:
		return v.WithLane16(i, uint16(x))
	case 32:
		return v.WithLane32(i, uint32(x))
	default:
		return v.WithLane64(i, x)
	}
}

func laneCount(laneBits int) int {
	return 128 / laneBits
}
