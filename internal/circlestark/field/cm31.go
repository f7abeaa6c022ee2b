package field

// CM31 is the degree-2 extension F_p[i] / (i^2 + 1), used as the
// intermediate "complex" field inside the secure field QM31 and as the
// coordinate field for the complex-conjugate line coefficients in the PCS
// quotient construction (§4.G).
type CM31 struct {
	A, B M31 // value = A + B*i
}

// NewCM31 builds a CM31 element from its two M31 coordinates.
func NewCM31(a, b M31) CM31 { return CM31{A: a, B: b} }

// CM31Zero is the additive identity.
func CM31Zero() CM31 { return CM31{} }

// CM31One is the multiplicative identity.
func CM31One() CM31 { return CM31{A: One()} }

// Add returns a+b.
func (a CM31) Add(b CM31) CM31 {
	return CM31{A: a.A.Add(b.A), B: a.B.Add(b.B)}
}

// Sub returns a-b.
func (a CM31) Sub(b CM31) CM31 {
	return CM31{A: a.A.Sub(b.A), B: a.B.Sub(b.B)}
}

// Neg returns -a.
func (a CM31) Neg() CM31 {
	return CM31{A: a.A.Neg(), B: a.B.Neg()}
}

// Mul returns a*b using (a0+a1 i)(b0+b1 i) = (a0 b0 - a1 b1) + (a0 b1 + a1 b0) i.
func (a CM31) Mul(b CM31) CM31 {
	return CM31{
		A: a.A.Mul(b.A).Sub(a.B.Mul(b.B)),
		B: a.A.Mul(b.B).Add(a.B.Mul(b.A)),
	}
}

// MulM31 multiplies by a base-field scalar.
func (a CM31) MulM31(b M31) CM31 {
	return CM31{A: a.A.Mul(b), B: a.B.Mul(b)}
}

// Square returns a^2.
func (a CM31) Square() CM31 { return a.Mul(a) }

// Conjugate returns a0 - a1*i, the Galois conjugate fixing M31.
func (a CM31) Conjugate() CM31 {
	return CM31{A: a.A, B: a.B.Neg()}
}

// Norm returns a * conjugate(a), which lies in M31.
func (a CM31) Norm() M31 {
	return a.A.Square().Add(a.B.Square())
}

// Inv returns a^-1 = conjugate(a) / norm(a).
func (a CM31) Inv() CM31 {
	normInv := a.Norm().Inv()
	c := a.Conjugate()
	return CM31{A: c.A.Mul(normInv), B: c.B.Mul(normInv)}
}

// IsZero reports whether a is the zero element.
func (a CM31) IsZero() bool { return a.A.IsZero() && a.B.IsZero() }

// Equal reports element equality.
func (a CM31) Equal(b CM31) bool { return a.A == b.A && a.B == b.B }

// CM31BatchInverse inverts every element of xs via a single shared
// inversion, the CM31 analogue of field.BatchInverse.
func CM31BatchInverse(xs []CM31) ([]CM31, error) {
	n := len(xs)
	if n == 0 {
		return nil, nil
	}
	prefix := make([]CM31, n)
	acc := CM31One()
	for i, x := range xs {
		if x.IsZero() {
			return nil, ErrDivisionByZero
		}
		prefix[i] = acc
		acc = acc.Mul(x)
	}
	accInv := acc.Inv()
	out := make([]CM31, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = prefix[i].Mul(accInv)
		accInv = accInv.Mul(xs[i])
	}
	return out, nil
}
