package poly

import (
	"fmt"

	"github.com/vybium/circle-stark/internal/circlestark/circle"
	"github.com/vybium/circle-stark/internal/circlestark/field"
)

// CirclePoly is a base-field polynomial over the circle group, represented
// in the f(p) = f0(p.x) + p.y*f1(p.x) decomposition (§3, §4.C): its
// coefficients are the bit-reversed concatenation of f0's and f1's
// coefficients, each a LinePoly of half the degree. Trace and quotient
// columns are committed as CirclePolys; only FRI's own folding operates
// directly in the secure field (LinePoly).
type CirclePoly struct {
	coeffs []field.M31
}

// NewCirclePoly wraps a bit-reversed coefficient array of power-of-two length.
func NewCirclePoly(coeffs []field.M31) CirclePoly {
	return CirclePoly{coeffs: append([]field.M31(nil), coeffs...)}
}

// Coeffs returns the polynomial's bit-reversed coefficients.
func (p CirclePoly) Coeffs() []field.M31 { return p.coeffs }

// LogSize returns log2 of the number of coefficients.
func (p CirclePoly) LogSize() uint32 {
	n := len(p.coeffs)
	log := uint32(0)
	for 1<<log < n {
		log++
	}
	return log
}

// EvalAtPoint evaluates the polynomial at a secure-field point, most
// commonly the out-of-domain sample point used by DEEP/PCS (§4.G): f(p) =
// f0(p.x) + p.y*f1(p.x), where f0, f1 are the even/odd LinePoly halves.
func (p CirclePoly) EvalAtPoint(point circle.SecurePoint) field.QM31 {
	half := len(p.coeffs) / 2
	f0 := NewLinePoly(toSecureCoeffs(p.coeffs[:half]))
	f1 := NewLinePoly(toSecureCoeffs(p.coeffs[half:]))
	return f0.EvalAtPoint(point.X).Add(point.Y.Mul(f1.EvalAtPoint(point.X)))
}

func toSecureCoeffs(m []field.M31) []field.QM31 {
	out := make([]field.QM31, len(m))
	for i, c := range m {
		out[i] = field.FromM31(c)
	}
	return out
}

// CircleEvaluation holds a circle polynomial's base-field values over a
// CircleDomain, stored bit-reversed so adjacent storage slots hold (p, -p)
// pairs (§4.B).
type CircleEvaluation struct {
	Values []field.M31
	Domain circle.CircleDomain
}

// NewCircleEvaluation wraps values already in bit-reversed domain order.
func NewCircleEvaluation(values []field.M31, domain circle.CircleDomain) (CircleEvaluation, error) {
	if len(values) != domain.Size() {
		return CircleEvaluation{}, fmt.Errorf("poly: circle evaluation length %d does not match domain size %d", len(values), domain.Size())
	}
	return CircleEvaluation{Values: values, Domain: domain}, nil
}

// Interpolate recovers the CirclePoly whose evaluations over e.Domain are
// e.Values. The first butterfly layer splits each (p, -p) pair into the
// even/odd halves f0(p.x), f1(p.x) using p.y as the twiddle (identical to
// FRI's circle-to-line fold, §4.F); the remaining layers are a plain line
// IFFT run independently on each half.
func (e CircleEvaluation) Interpolate() CirclePoly {
	n := len(e.Values)
	half := n / 2
	logN := e.Domain.LogSize()
	f0, f1 := make([]field.M31, half), make([]field.M31, half)
	for i := 0; i < half; i++ {
		p := e.Domain.At(circle.BitReverseIndex(i<<1, logN))
		v0, v1 := ibutterfly(e.Values[2*i], e.Values[2*i+1], p.Y.Inv())
		f0[i] = v0
		f1[i] = v1
	}
	lineDomain := circle.NewLineDomain(e.Domain.HalfCoset)
	c0 := baseLineIFFT(f0, lineDomain)
	c1 := baseLineIFFT(f1, lineDomain)
	invN := field.New(uint32(n)).Inv()
	coeffs := make([]field.M31, n)
	for i, v := range c0 {
		coeffs[i] = v.Mul(invN)
	}
	for i, v := range c1 {
		coeffs[half+i] = v.Mul(invN)
	}
	return CirclePoly{coeffs: coeffs}
}

// Evaluate reconstructs the domain's evaluation array from the polynomial's
// coefficients, the exact inverse of Interpolate.
func (p CirclePoly) Evaluate(domain circle.CircleDomain) CircleEvaluation {
	n := len(p.coeffs)
	half := n / 2
	lineDomain := circle.NewLineDomain(domain.HalfCoset)
	f0 := baseLineFFT(p.coeffs[:half], lineDomain)
	f1 := baseLineFFT(p.coeffs[half:], lineDomain)
	logN := domain.LogSize()
	values := make([]field.M31, n)
	for i := 0; i < half; i++ {
		pt := domain.At(circle.BitReverseIndex(i<<1, logN))
		v0, v1 := butterfly(f0[i], f1[i], pt.Y)
		values[2*i] = v0
		values[2*i+1] = v1
	}
	return CircleEvaluation{Values: values, Domain: domain}
}

// baseLineIFFT/baseLineFFT mirror lineIFFT/lineFFT but operate on the base
// field, for interpolating/evaluating the two M31-valued halves of a
// CirclePoly's trace column.
func baseLineIFFT(values []field.M31, domain circle.LineDomain) []field.M31 {
	n := len(values)
	if n == 1 {
		return values
	}
	half := n / 2
	logN := domain.LogSize()
	doubled := domain.Double()
	out := make([]field.M31, n)
	for i := 0; i < half; i++ {
		x := domain.At(circle.BitReverseIndex(i<<1, logN))
		f0, f1 := ibutterfly(values[2*i], values[2*i+1], x.Inv())
		out[i] = f0
		out[half+i] = f1
	}
	lo := baseLineIFFT(out[:half], doubled)
	hi := baseLineIFFT(out[half:], doubled)
	return append(append([]field.M31(nil), lo...), hi...)
}

func baseLineFFT(coeffs []field.M31, domain circle.LineDomain) []field.M31 {
	n := len(coeffs)
	if n == 1 {
		return coeffs
	}
	half := n / 2
	logN := domain.LogSize()
	doubled := domain.Double()
	lo := baseLineFFT(coeffs[:half], doubled)
	hi := baseLineFFT(coeffs[half:], doubled)
	out := make([]field.M31, n)
	for i := 0; i < half; i++ {
		x := domain.At(circle.BitReverseIndex(i<<1, logN))
		v0, v1 := butterfly(lo[i], hi[i], x)
		out[2*i] = v0
		out[2*i+1] = v1
	}
	return out
}
