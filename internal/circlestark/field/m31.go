// Package field implements the Mersenne-31 base field and its degree-2 and
// degree-4 extensions used throughout the circle-STARK proof engine.
package field

import "fmt"

// P is the Mersenne prime modulus 2^31 - 1.
const P uint32 = (1 << 31) - 1

// M31 is an element of the base field F_p, p = 2^31 - 1, stored in its
// canonical representative in [0, P).
type M31 uint32

// Zero is the additive identity.
func Zero() M31 { return M31(0) }

// One is the multiplicative identity.
func One() M31 { return M31(1) }

// New reduces x modulo P and returns the corresponding field element.
func New(x uint32) M31 {
	return reduce(uint64(x))
}

// FromInt64 reduces a signed value into the field, wrapping negatives.
func FromInt64(x int64) M31 {
	m := int64(P)
	x %= m
	if x < 0 {
		x += m
	}
	return M31(x)
}

// reduce folds a value < P^2 down to a canonical representative using the
// identity 2^31 ≡ 1 (mod P): split x into its low 31 bits and the rest, add
// them, and reduce at most once more.
func reduce(x uint64) M31 {
	lo := uint32(x) & P
	hi := uint32(x >> 31)
	sum := lo + hi
	if sum >= P {
		sum -= P
	}
	return M31(sum)
}

// Add returns a+b mod P.
func (a M31) Add(b M31) M31 {
	sum := uint32(a) + uint32(b)
	if sum >= P {
		sum -= P
	}
	return M31(sum)
}

// Sub returns a-b mod P.
func (a M31) Sub(b M31) M31 {
	if a >= b {
		return M31(uint32(a) - uint32(b))
	}
	return M31(P - uint32(b) + uint32(a))
}

// Neg returns -a mod P.
func (a M31) Neg() M31 {
	if a == 0 {
		return 0
	}
	return M31(P - uint32(a))
}

// Mul returns a*b mod P.
func (a M31) Mul(b M31) M31 {
	return reduce(uint64(a) * uint64(b))
}

// Double returns 2a mod P.
func (a M31) Double() M31 {
	return a.Add(a)
}

// Square returns a^2 mod P.
func (a M31) Square() M31 {
	return a.Mul(a)
}

// Pow returns a^n mod P via square-and-multiply.
func (a M31) Pow(n uint64) M31 {
	result := One()
	base := a
	for n > 0 {
		if n&1 == 1 {
			result = result.Mul(base)
		}
		base = base.Mul(base)
		n >>= 1
	}
	return result
}

// Inv returns the multiplicative inverse of a via Fermat's little theorem
// (a^(P-2)). Panics if a is zero; callers must filter zeros, matching the
// batch-inverse contract in §4.A.
func (a M31) Inv() M31 {
	if a == 0 {
		panic("field: division by zero")
	}
	return a.Pow(uint64(P - 2))
}

// IsZero reports whether a is the additive identity.
func (a M31) IsZero() bool { return a == 0 }

// Equal reports field-element equality (both operands are canonical).
func (a M31) Equal(b M31) bool { return a == b }

// Uint32 returns the canonical uint32 representative.
func (a M31) Uint32() uint32 { return uint32(a) }

// String implements fmt.Stringer.
func (a M31) String() string {
	return fmt.Sprintf("%d", uint32(a))
}

// Bytes serializes the element as 4 little-endian bytes, per §6's wire
// format (base-field element = 4 bytes little-endian, value < 2^31).
func (a M31) Bytes() [4]byte {
	v := uint32(a)
	return [4]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)}
}

// FromBytes deserializes 4 little-endian bytes into a field element. The
// caller is responsible for ensuring the encoded value is < P (canonical
// form is required by the wire format in §6).
func FromBytes(b [4]byte) M31 {
	v := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return M31(v)
}

// BatchInverse computes the inverse of every element of xs in 3n
// multiplications plus one inversion (Montgomery's trick), per §4.A. It
// fails with ErrDivisionByZero if any input is zero; filtering zeros is the
// caller's responsibility.
func BatchInverse(xs []M31) ([]M31, error) {
	n := len(xs)
	if n == 0 {
		return nil, nil
	}
	prefix := make([]M31, n)
	acc := One()
	for i, x := range xs {
		if x.IsZero() {
			return nil, ErrDivisionByZero
		}
		prefix[i] = acc
		acc = acc.Mul(x)
	}
	accInv := acc.Inv()
	out := make([]M31, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = prefix[i].Mul(accInv)
		accInv = accInv.Mul(xs[i])
	}
	return out, nil
}
