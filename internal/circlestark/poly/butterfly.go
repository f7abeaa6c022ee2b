// Package poly implements circle and line polynomials, their FFT/IFFT
// transforms, and the decomposition lemma, per §3 and §4.C.
package poly

import "github.com/vybium/circle-stark/internal/circlestark/field"

// butterfly is the forward-FFT step used by Evaluate: recovers the pair of
// values at (x, -x) from the even/odd coefficient halves f0, f1 at x.
func butterfly(f0, f1 field.M31, twid field.M31) (field.M31, field.M31) {
	t := f1.Mul(twid)
	return f0.Add(t), f0.Sub(t)
}

// ibutterfly is the inverse-FFT step used by Interpolate: given the values
// at (x, -x), produces f0 = v0+v1 and f1 = (v0-v1)*itwid where itwid is the
// inverse of the relevant domain twiddle (§4.C). Both outputs carry a
// factor of 2 that Interpolate normalizes away once at the end.
func ibutterfly(v0, v1 field.M31, itwid field.M31) (field.M31, field.M31) {
	return v0.Add(v1), v0.Sub(v1).Mul(itwid)
}

// secureButterfly/secureIbutterfly are the QM31-valued analogues, used by
// FRI folding which always operates in the secure field.
func secureButterfly(f0, f1 field.QM31, twid field.M31) (field.QM31, field.QM31) {
	t := f1.MulM31(twid)
	return f0.Add(t), f0.Sub(t)
}

func secureIbutterfly(v0, v1 field.QM31, itwid field.M31) (field.QM31, field.QM31) {
	return v0.Add(v1), v0.Sub(v1).MulM31(itwid)
}
