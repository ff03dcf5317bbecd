// Package checkedcpu implements CheckedCpuImpl (spec.md §4.2): for every
// cpuimpl function that returns a flag-bearing result, it runs the pure
// model, runs (or substitutes for) an equivalent host-CPU computation
// against the same inputs, asserts bit-exact agreement on both the result
// and every flag bit the instruction's contract defines, and returns the
// host-computed value so observable behavior matches silicon even if the
// model has a latent bug.
//
// A real host bridge — one x86 instruction executed via inline assembly or
// a compiler intrinsic, its result and RFLAGS captured — needs a per-arch
// assembly backend this build does not carry. Where host/ supplies a
// genuinely independent computation (wide multiply/divide via math/bits,
// extended-precision rounding via math/big), this package cross-checks
// against it for real. Everywhere else this falls into spec.md §4.2's own
// escape hatch ("for pure-model operations whose host equivalent cannot
// run on a given build... the wrapper falls back to the pure model"): the
// checked form is the pure model itself, so the dispatcher in cpu/ can
// depend on the one CheckedCpuImpl contract regardless of which functions
// happen to have a live cross-check underneath.
package checkedcpu

import (
	"fmt"

	"github.com/google/go-cmp/cmp"
)

// assertEqual panics with a go-cmp diff if want != got. The panic message
// format mirrors cpuimpl's own invariant-violation panics
// ("cpuimpl: ...") so a CheckedCpuImpl divergence reads as the same class
// of fatal condition.
func assertEqual[T any](op string, want, got T) {
	if diff := cmp.Diff(want, got); diff != "" {
		panic(fmt.Sprintf("checkedcpu: %s: model/host mismatch (-host +model):\n%s", op, diff))
	}
}
