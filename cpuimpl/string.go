package cpuimpl

// Direction is the string-operation step direction, taken directly from the
// DF flag (spec.md §4.1.9): Forward advances SI/DI/DI, Backward retreats
// them.
type Direction int

const (
	Forward  Direction = 1
	Backward Direction = -1
)

// StringStep returns the signed byte delta the dispatcher applies to SI
// and/or DI after one iteration of movs/stos/lods/scas/cmps at the given
// operand width, in the given direction.
func StringStep(widthBytes int, dir Direction) int64 {
	return int64(dir) * int64(widthBytes)
}

// RepKind selects which repeat condition, if any, governs a string
// instruction's REP-prefixed loop (spec.md §4.1.9).
type RepKind int

const (
	RepNone RepKind = iota
	Rep               // unconditional: loop while CX > 0
	RepNZ             // loop while CX > 0 and ZF == 0 (REPNZ/REPNE)
	RepZ              // loop while CX > 0 and ZF == 1 (REPZ/REPE)
)

// RepContinues reports whether a REP-prefixed string loop should execute
// another iteration, given the CX value and ZF left over from the previous
// iteration's CMPS/SCAS comparison (ignored by plain REP). The dispatcher
// calls this before each iteration, then decrements CX and steps SI/DI
// itself once the body runs. An unprefixed instruction (RepNone) always
// runs its single iteration, whatever CX holds.
func RepContinues(kind RepKind, cx uint64, zf bool) bool {
	if kind == RepNone {
		return true
	}
	if cx == 0 {
		return false
	}
	switch kind {
	case RepNZ:
		return !zf
	case RepZ:
		return zf
	default:
		return true
	}
}
