package field

// qm31R is the CM31 constant 2+i, the fixed non-residue such that u^2 = R
// inside the QM31 tower F_p4 = F_p[u, v] / (u^2 - 2 - v, v^2 + 1). With the
// identification v = i (CM31's imaginary unit), this is exactly R = 2+i.
var qm31R = CM31{A: New(2), B: One()}

// SecureExtensionDegree is the number of base-field coordinates making up a
// secure-field element (the four base columns of §3's trace model).
const SecureExtensionDegree = 4

// QM31 is an element of the degree-4 "secure" extension field F_p4, used
// for soundness amplification throughout the PCS and FRI layers. It is
// represented as a0 + a1*u with a0, a1 in CM31.
type QM31 struct {
	A0, A1 CM31
}

// QM31Zero is the additive identity.
func QM31Zero() QM31 { return QM31{} }

// QM31One is the multiplicative identity.
func QM31One() QM31 { return QM31{A0: CM31One()} }

// FromM31 embeds a base-field element into the secure field.
func FromM31(x M31) QM31 {
	return QM31{A0: CM31{A: x}}
}

// FromCM31 embeds a CM31 element into the secure field (the v=0 slice).
func FromCM31(x CM31) QM31 {
	return QM31{A0: x}
}

// FromPartialEvals performs the canonical embedding of four base-field
// values into one secure-field element, per §3's data model:
//
//	from_partial_evals([a,b,c,d]) = (a + b*u) + (c + d*u)*v
//
// with u^2 = 2+v and v^2 = -1. Identifying v with CM31's imaginary unit i,
// this is a0 = a+c*i, a1 = b+d*i, value = a0 + a1*u.
func FromPartialEvals(a, b, c, d M31) QM31 {
	return QM31{
		A0: CM31{A: a, B: c},
		A1: CM31{A: b, B: d},
	}
}

// ToPartialEvals is the inverse of FromPartialEvals: from_partial_evals(to_partial_evals(x)) = x.
func (x QM31) ToPartialEvals() [4]M31 {
	return [4]M31{x.A0.A, x.A1.A, x.A0.B, x.A1.B}
}

// CombineEF is the constraint framework's canonical embedding of four
// base-field mask values into one extension value (§4.H `combine_ef`).
func CombineEF(values [4]M31) QM31 {
	return FromPartialEvals(values[0], values[1], values[2], values[3])
}

// Add returns a+b.
func (a QM31) Add(b QM31) QM31 {
	return QM31{A0: a.A0.Add(b.A0), A1: a.A1.Add(b.A1)}
}

// Sub returns a-b.
func (a QM31) Sub(b QM31) QM31 {
	return QM31{A0: a.A0.Sub(b.A0), A1: a.A1.Sub(b.A1)}
}

// Neg returns -a.
func (a QM31) Neg() QM31 {
	return QM31{A0: a.A0.Neg(), A1: a.A1.Neg()}
}

// Mul returns a*b using (a0+a1 u)(b0+b1 u) = (a0 b0 + a1 b1 R) + (a0 b1 + a1 b0) u.
func (a QM31) Mul(b QM31) QM31 {
	return QM31{
		A0: a.A0.Mul(b.A0).Add(a.A1.Mul(b.A1).Mul(qm31R)),
		A1: a.A0.Mul(b.A1).Add(a.A1.Mul(b.A0)),
	}
}

// MulCM31 multiplies a secure-field element by a CM31 scalar, used when
// scaling DEEP-quotient numerators by a batch denominator inverse in §4.G.
func (a QM31) MulCM31(b CM31) QM31 {
	return QM31{A0: a.A0.Mul(b), A1: a.A1.Mul(b)}
}

// MulM31 multiplies by a base-field scalar.
func (a QM31) MulM31(b M31) QM31 {
	return QM31{A0: a.A0.MulM31(b), A1: a.A1.MulM31(b)}
}

// Square returns a^2.
func (a QM31) Square() QM31 { return a.Mul(a) }

// Double returns 2a.
func (a QM31) Double() QM31 { return a.Add(a) }

// Conjugate returns the Galois conjugate fixing the base field but
// negating CM31's imaginary unit (i.e. flips v, not u). This is the
// "complex-conjugate" used by the DEEP quotient's line construction in
// §4.G, distinct from the full tower conjugate used for inversion.
func (a QM31) Conjugate() QM31 {
	return QM31{A0: a.A0.Conjugate(), A1: a.A1.Conjugate()}
}

// towerConjugate returns a0 - a1*u, used internally for inversion.
func (a QM31) towerConjugate() QM31 {
	return QM31{A0: a.A0, A1: a.A1.Neg()}
}

// Norm returns a * towerConjugate(a), which lies in CM31.
func (a QM31) Norm() CM31 {
	return a.A0.Square().Sub(a.A1.Square().Mul(qm31R))
}

// Inv returns the multiplicative inverse of a.
func (a QM31) Inv() QM31 {
	normInv := a.Norm().Inv()
	c := a.towerConjugate()
	return QM31{A0: c.A0.Mul(normInv), A1: c.A1.Mul(normInv)}
}

// Pow returns a^n via square-and-multiply; n may be arbitrarily large.
func (a QM31) Pow(n uint64) QM31 {
	result := QM31One()
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

// IsZero reports whether a is the zero element.
func (a QM31) IsZero() bool { return a.A0.IsZero() && a.A1.IsZero() }

// Equal reports element equality.
func (a QM31) Equal(b QM31) bool { return a.A0.Equal(b.A0) && a.A1.Equal(b.A1) }

// Bytes encodes the element as four little-endian base-field words, per §6.
func (a QM31) Bytes() [16]byte {
	vals := a.ToPartialEvals()
	var out [16]byte
	for i, v := range vals {
		b := v.Bytes()
		copy(out[i*4:i*4+4], b[:])
	}
	return out
}

// QM31FromBytes is the inverse of Bytes: four little-endian base-field
// words back into one secure-field element.
func QM31FromBytes(b [16]byte) QM31 {
	var vals [4]M31
	for i := range vals {
		var word [4]byte
		copy(word[:], b[i*4:i*4+4])
		vals[i] = FromBytes(word)
	}
	return FromPartialEvals(vals[0], vals[1], vals[2], vals[3])
}
