package fri

import (
	"github.com/vybium/circle-stark/internal/circlestark/circle"
	"github.com/vybium/circle-stark/internal/circlestark/field"
)

// FoldStep and CircleToLineFoldStep are the bit-reversal strides the fold
// helpers below consume, matching the real protocol's fixed fold arity
// of 2 at both the circle-to-line step and every subsequent line step.
const (
	FoldStep             = 1
	CircleToLineFoldStep = 1
)

func ibutterfly(v0, v1 field.QM31, itwid field.M31) (field.QM31, field.QM31) {
	return v0.Add(v1), v0.Sub(v1).MulM31(itwid)
}

// FoldLine folds a degree-d line evaluation into a degree-d/2 evaluation
// over the doubled domain, combining the even/odd decomposition with the
// verifier-drawn folding coefficient alpha (§4.F).
func FoldLine(values []field.QM31, domain circle.LineDomain, alpha field.QM31) (circle.LineDomain, []field.QM31) {
	n := len(values)
	logSize := domain.LogSize()
	folded := make([]field.QM31, n/2)
	for i := 0; i < n/2; i++ {
		x := domain.At(circle.BitReverseIndex(i<<FoldStep, logSize))
		f0, f1 := ibutterfly(values[2*i], values[2*i+1], x.Inv())
		folded[i] = f0.Add(alpha.Mul(f1))
	}
	return domain.Double(), folded
}

// FoldCircleIntoLine folds a circle-domain evaluation one degree-halving
// step into a line-domain evaluation, accumulating into dst scaled by
// alpha^2 so repeated calls average several circle columns together
// (§4.F).
func FoldCircleIntoLine(dst, src []field.QM31, srcDomain circle.CircleDomain, alpha field.QM31) {
	alphaSq := alpha.Mul(alpha)
	logSize := srcDomain.LogSize()
	for i := range dst {
		p := srcDomain.At(circle.BitReverseIndex(i<<CircleToLineFoldStep, logSize))
		f0, f1 := ibutterfly(src[2*i], src[2*i+1], p.Y.Inv())
		fPrime := alpha.Mul(f1).Add(f0)
		dst[i] = dst[i].Mul(alphaSq).Add(fPrime)
	}
}
