package cpuimpl

import "math/big"

// Idiv is signed division (spec.md §4.1.1): exact sign-aware double-width
// division. The pure model computes it directly via arbitrary-precision
// arithmetic rather than bridging to a host instruction — both are
// required to agree bit-for-bit by definition (there is no host-vs-model
// ambiguity for integer division the way there is for floating point), so
// CheckedCpuImpl (spec.md §4.2) cross-checks this against host.SDiv128 (an
// independent math/big division over the raw register pair) purely as a
// regression guard, not because the model's own answer is in doubt.
func Idiv[T Width](dividendUpper, dividendLower T, divisor T) (quotient, remainder T) {
	w := widthBits[T]()
	if divisor == 0 {
		panic("cpuimpl: Idiv by zero")
	}
	upperSigned := asSigned(uint64(dividendUpper), w)
	dividend := new(big.Int).Lsh(big.NewInt(upperSigned), w)
	dividend.Add(dividend, new(big.Int).SetUint64(uint64(dividendLower)))

	divSigned := asSigned(uint64(divisor), w)
	div := big.NewInt(divSigned)

	q, r := new(big.Int).QuoRem(dividend, div, new(big.Int))

	if !fitsSigned(q, w) {
		panic("cpuimpl: Idiv quotient overflow")
	}
	return T(q.Int64()), T(r.Int64())
}

// asSigned reinterprets the low `width` bits of v as a signed integer,
// promoted to int64.
func asSigned(v uint64, width uint) int64 {
	return int64(signExtend(v, width))
}

// fitsSigned reports whether q fits in a signed integer of the given width.
func fitsSigned(q *big.Int, width uint) bool {
	if width >= 64 {
		return q.IsInt64()
	}
	limit := int64(1) << (width - 1)
	i := q.Int64()
	return q.IsInt64() && i >= -limit && i <= limit-1
}
