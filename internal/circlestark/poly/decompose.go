package poly

import (
	"github.com/vybium/circle-stark/internal/circlestark/circle"
	"github.com/vybium/circle-stark/internal/circlestark/field"
)

// VanishingPoly evaluates the vanishing polynomial of the canonic coset of
// the given log-size at a secure-field point: the unique (up to scalar)
// polynomial of degree 2^logSize that is zero on every point of that
// coset. Repeatedly applying the x-doubling map to p.x and taking the
// final coordinate realizes this for the canonic (unshifted) coset (§4.C).
func VanishingPoly(logSize uint32, p circle.SecurePoint) field.QM31 {
	x := p.X
	for i := uint32(0); i+1 < logSize; i++ {
		x = doubleX(x)
	}
	return x
}

// Decompose splits a CirclePoly whose coefficient count implies degree one
// higher than it can faithfully carry into a CirclePoly of that lower
// degree plus a remainder lambda, such that original = g + lambda*V, where
// V vanishes on the canonic coset of the matching log-size (§4.C,
// "decomposition lemma"). lambda is the polynomial's top bit-reversed
// coefficient, the one an interpolation of a single-degree-too-high
// evaluation set pushes there.
func Decompose(p CirclePoly) (CirclePoly, field.M31) {
	coeffs := p.Coeffs()
	if len(coeffs) == 0 {
		return p, field.Zero()
	}
	lambda := coeffs[len(coeffs)-1]
	g := append([]field.M31(nil), coeffs...)
	g[len(g)-1] = field.Zero()
	return NewCirclePoly(g), lambda
}
