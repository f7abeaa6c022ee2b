package poly

import (
	"fmt"

	"github.com/vybium/circle-stark/internal/circlestark/circle"
	"github.com/vybium/circle-stark/internal/circlestark/field"
)

// LinePoly is a secure-field univariate polynomial in the "doubling" basis
// used by line domains: evaluating it folds the coefficient array against
// successive applications of the x-doubling map x -> 2x^2-1 (§3, §4.F).
// Coefficients are stored bit-reversed, matching LineEvaluation's storage
// order. FRI folds entirely in the secure field, so unlike CirclePoly (the
// base-field trace representation), LinePoly never needs a base-field form.
type LinePoly struct {
	coeffs []field.QM31
}

// NewLinePoly wraps a bit-reversed coefficient array of power-of-two length.
func NewLinePoly(coeffs []field.QM31) LinePoly {
	return LinePoly{coeffs: append([]field.QM31(nil), coeffs...)}
}

// Coeffs returns the polynomial's bit-reversed coefficients.
func (p LinePoly) Coeffs() []field.QM31 { return p.coeffs }

// LogSize returns log2 of the number of coefficients.
func (p LinePoly) LogSize() uint32 {
	n := len(p.coeffs)
	log := uint32(0)
	for 1<<log < n {
		log++
	}
	return log
}

// doubleX applies the circle doubling map's x-coordinate-only projection,
// 2x^2-1, to a secure-field value.
func doubleX(x field.QM31) field.QM31 {
	return x.Square().Double().Sub(field.QM31One())
}

// EvalAtPoint evaluates the polynomial at a (possibly out-of-domain)
// secure-field point via the recursive fold used throughout FRI (§4.F).
func (p LinePoly) EvalAtPoint(x field.QM31) field.QM31 {
	doublings := make([]field.QM31, p.LogSize())
	cur := x
	for i := range doublings {
		doublings[i] = cur
		cur = doubleX(cur)
	}
	return lineFold(p.coeffs, doublings)
}

// lineFold implements fold(coeffs, mappings) = fold(lo, mappings[1:]) +
// mappings[0]*fold(hi, mappings[1:]) where (lo, hi) bisect coeffs. This is
// the polynomial evaluation dual of the ibutterfly network Interpolate runs
// to produce these same bit-reversed coefficients (§4.F).
func lineFold(coeffs []field.QM31, mappings []field.QM31) field.QM31 {
	if len(coeffs) == 1 {
		return coeffs[0]
	}
	half := len(coeffs) / 2
	lo := lineFold(coeffs[:half], mappings[1:])
	hi := lineFold(coeffs[half:], mappings[1:])
	return lo.Add(mappings[0].Mul(hi))
}

// LineEvaluation holds a line polynomial's values over a LineDomain, stored
// in bit-reversed order so that adjacent storage slots hold (x, -x) pairs.
type LineEvaluation struct {
	Values []field.QM31
	Domain circle.LineDomain
}

// NewLineEvaluation wraps values already in bit-reversed domain order.
func NewLineEvaluation(values []field.QM31, domain circle.LineDomain) (LineEvaluation, error) {
	if len(values) != domain.Size() {
		return LineEvaluation{}, fmt.Errorf("poly: line evaluation length %d does not match domain size %d", len(values), domain.Size())
	}
	return LineEvaluation{Values: values, Domain: domain}, nil
}

// Interpolate recovers the LinePoly whose evaluations over e.Domain are
// e.Values, via the ibutterfly network (§4.F). Every ibutterfly layer
// doubles its outputs, so the raw result is normalized by 1/n at the end.
func (e LineEvaluation) Interpolate() LinePoly {
	n := len(e.Values)
	raw := lineIFFT(e.Values, e.Domain)
	invN := field.New(uint32(n)).Inv()
	coeffs := make([]field.QM31, n)
	for i, v := range raw {
		coeffs[i] = v.MulM31(invN)
	}
	return LinePoly{coeffs: coeffs}
}

// lineIFFT recursively applies the ibutterfly network: it splits each
// adjacent storage pair into its even/odd halves over the doubled domain,
// then recurses on each half independently.
func lineIFFT(values []field.QM31, domain circle.LineDomain) []field.QM31 {
	n := len(values)
	if n == 1 {
		return values
	}
	half := n / 2
	logN := domain.LogSize()
	doubled := domain.Double()
	out := make([]field.QM31, n)
	for i := 0; i < half; i++ {
		x := domain.At(circle.BitReverseIndex(i<<1, logN))
		f0, f1 := secureIbutterfly(values[2*i], values[2*i+1], x.Inv())
		out[i] = f0
		out[half+i] = f1
	}
	lo := lineIFFT(out[:half], doubled)
	hi := lineIFFT(out[half:], doubled)
	return append(append([]field.QM31(nil), lo...), hi...)
}

// Evaluate reconstructs the domain's evaluation array from the polynomial's
// coefficients via the butterfly network, the exact inverse of Interpolate.
func (p LinePoly) Evaluate(domain circle.LineDomain) LineEvaluation {
	values := lineFFT(p.coeffs, domain)
	return LineEvaluation{Values: values, Domain: domain}
}

// lineFFT is the structural inverse of lineIFFT: recurse on each coefficient
// half first (over the doubled domain), then recombine with a forward
// butterfly to produce the pair of values at (x, -x).
func lineFFT(coeffs []field.QM31, domain circle.LineDomain) []field.QM31 {
	n := len(coeffs)
	if n == 1 {
		return coeffs
	}
	half := n / 2
	logN := domain.LogSize()
	doubled := domain.Double()
	lo := lineFFT(coeffs[:half], doubled)
	hi := lineFFT(coeffs[half:], doubled)
	out := make([]field.QM31, n)
	for i := 0; i < half; i++ {
		x := domain.At(circle.BitReverseIndex(i<<1, logN))
		v0, v1 := secureButterfly(lo[i], hi[i], x)
		out[2*i] = v0
		out[2*i+1] = v1
	}
	return out
}
