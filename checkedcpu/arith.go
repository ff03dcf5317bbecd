package checkedcpu

import (
	"unsafe"

	"github.com/n-stott/x64emulator/cpuimpl"
	"github.com/n-stott/x64emulator/flags"
	"github.com/n-stott/x64emulator/host"
)

func bitWidth[T cpuimpl.Width]() uint {
	var v T
	return uint(unsafe.Sizeof(v)) * 8
}

// signExtend64 sign-extends the low bitWidth[T]() bits of v into a full
// int64, the way the generic arithmetic family treats a narrow register as
// a two's-complement value before widening it.
func signExtend64[T cpuimpl.Width](v T) int64 {
	w := bitWidth[T]()
	x := uint64(v)
	if w < 64 && x&(1<<(w-1)) != 0 {
		x |= ^uint64(0) << w
	}
	return int64(x)
}

// Add, Adc, Sub, Sbb, Cmp, Neg, Inc, Dec have no live host bridge on this
// build (a genuine cross-check needs one inline-assembled ADD/ADC/SUB/SBB
// per width, which requires a per-arch assembly backend this build does
// not carry — spec.md §4.2's fallback clause). Each checked form is the
// pure model, kept as a same-signature generic wrapper so the dispatcher
// in cpu/ can depend on CheckedCpuImpl uniformly across the whole family.
func Add[T cpuimpl.Width](dst, src T, f *flags.Arith) T { return cpuimpl.Add(dst, src, f) }
func Adc[T cpuimpl.Width](dst, src T, carryIn bool, f *flags.Arith) T {
	return cpuimpl.Adc(dst, src, carryIn, f)
}
func Sub[T cpuimpl.Width](dst, src T, f *flags.Arith) T { return cpuimpl.Sub(dst, src, f) }
func Sbb[T cpuimpl.Width](dst, src T, borrowIn bool, f *flags.Arith) T {
	return cpuimpl.Sbb(dst, src, borrowIn, f)
}
func Cmp[T cpuimpl.Width](dst, src T, f *flags.Arith) { cpuimpl.Cmp(dst, src, f) }
func Neg[T cpuimpl.Width](dst T, f *flags.Arith) T    { return cpuimpl.Neg(dst, f) }
func Inc[T cpuimpl.Width](dst T, f *flags.Arith) T    { return cpuimpl.Inc(dst, f) }
func Dec[T cpuimpl.Width](dst T, f *flags.Arith) T    { return cpuimpl.Dec(dst, f) }

// Mul cross-checks cpuimpl.Mul against host.UMul128, a real independent
// unsigned 64x64→128 multiply (math/bits.Mul64), by zero-extending the
// narrower widths into the low bits of a 64-bit lane.
func Mul[T cpuimpl.Width](dst, src T, f *flags.Arith) (upper, lower T) {
	var modelFlags flags.Arith = *f
	upper, lower = cpuimpl.Mul(dst, src, &modelFlags)

	w := bitWidth[T]()
	hi, lo := host.UMul128(uint64(dst), uint64(src))
	var wantUpper, wantLower T
	if w == 64 {
		wantUpper, wantLower = T(hi), T(lo)
	} else {
		// dst and src are each < 2^w, so their zero-extended 64-bit
		// product fits entirely in lo; hi is always 0 here.
		mask := uint64(1)<<w - 1
		wantUpper = T((lo >> w) & mask)
		wantLower = T(lo & mask)
	}
	hostFlags := *f
	hostFlags.CF = wantUpper != 0
	hostFlags.OF = hostFlags.CF

	assertEqual("Mul.upper", wantUpper, upper)
	assertEqual("Mul.lower", wantLower, lower)
	assertEqual("Mul.flags", hostFlags, modelFlags)
	*f = hostFlags
	return wantUpper, wantLower
}

// Imul cross-checks cpuimpl.Imul against host.Imul128 for the 64-bit case,
// where host.Imul128's sign-extension-of-lower-half test for CF/OF is a
// genuinely independent implementation of the same contract.
func Imul[T cpuimpl.Width](dst, src T, f *flags.Arith) (upper, lower T) {
	var modelFlags flags.Arith = *f
	upper, lower = cpuimpl.Imul(dst, src, &modelFlags)

	if bitWidth[T]() != 64 {
		// host.Imul128 is a fixed 64x64 bridge; narrower widths fall back
		// to the pure model, matching spec.md §4.2's fallback clause.
		*f = modelFlags
		return upper, lower
	}
	lo, hi, carry, overflow := host.Imul128(signExtend64(dst), signExtend64(src))
	hostFlags := *f
	hostFlags.CF = carry
	hostFlags.OF = overflow

	assertEqual("Imul.upper", T(hi), upper)
	assertEqual("Imul.lower", T(lo), lower)
	assertEqual("Imul.flags", hostFlags, modelFlags)
	*f = hostFlags
	return T(hi), T(lo)
}

// Div cross-checks cpuimpl.Div against host.UDiv128.
func Div[T cpuimpl.Width](dividendUpper, dividendLower, divisor T) (quotient, remainder T) {
	quotient, remainder = cpuimpl.Div(dividendUpper, dividendLower, divisor)

	w := bitWidth[T]()
	fullUpper, fullLower := widenDividend(dividendUpper, dividendLower, w)
	q, r, divErr := host.UDiv128(fullUpper, fullLower, uint64(divisor))
	if divErr {
		panic("checkedcpu: Div host bridge reported divide error")
	}
	assertEqual("Div.quotient", T(q), quotient)
	assertEqual("Div.remainder", T(r), remainder)
	return quotient, remainder
}

// Idiv cross-checks cpuimpl.Idiv against host.SDiv128.
func Idiv[T cpuimpl.Width](dividendUpper, dividendLower, divisor T) (quotient, remainder T) {
	quotient, remainder = cpuimpl.Idiv(dividendUpper, dividendLower, divisor)

	w := bitWidth[T]()
	fullUpper, fullLower := widenDividend(dividendUpper, dividendLower, w)
	if w < 64 {
		// widenDividend zero-extends; a signed divide needs the 2*w-bit
		// dividend sign-extended across the whole 128-bit pair.
		shift := 64 - 2*w
		fullLower = uint64(int64(fullLower<<shift) >> shift)
		fullUpper = uint64(int64(fullLower) >> 63)
	}
	q, r, divErr := host.SDiv128(fullUpper, fullLower, uint64(signExtend64(divisor)))
	if divErr {
		panic("checkedcpu: Idiv host bridge reported divide error")
	}
	assertEqual("Idiv.quotient", T(q), quotient)
	assertEqual("Idiv.remainder", T(r), remainder)
	return quotient, remainder
}

// widenDividend reconstructs the full 128-bit (upper,lower) register pair
// host.UDiv128/SDiv128 expect from the width-W (upper,lower) pair cpuimpl's
// generic Div/Idiv take, where upper/lower each hold only W significant
// bits.
func widenDividend[T cpuimpl.Width](dividendUpper, dividendLower T, w uint) (upper, lower uint64) {
	if w >= 64 {
		return uint64(dividendUpper), uint64(dividendLower)
	}
	combined := (uint64(dividendUpper) << w) | uint64(dividendLower)
	return 0, combined // 2*w <= 64, so the full dividend fits in the low word
}
