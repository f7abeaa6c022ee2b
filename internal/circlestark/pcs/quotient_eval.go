package pcs

import (
	"github.com/vybium/circle-stark/internal/circlestark/circle"
	"github.com/vybium/circle-stark/internal/circlestark/field"
)

// twoPointLine returns the (a, b, c) coefficients of the line through
// (x1, y1) and (x2, y2) satisfying a*x + b*y = c at both points.
func twoPointLine(x1, y1, x2, y2 field.QM31) (a, b, c field.QM31) {
	a = y2.Sub(y1)
	b = x1.Sub(x2)
	c = x1.Mul(y2).Sub(x2.Mul(y1))
	return
}

// denominatorLine returns the value-independent line through a sample
// point and its complex conjugate: since the conjugate automorphism fixes
// the base field, any real evaluation domain point can only coincide with
// at most one of the pair, so a*p.x+b*p.y-c vanishes exactly there (§4.G).
func denominatorLine(point circle.SecurePoint) (a, b, c field.QM31) {
	conj := point.Conjugate()
	return twoPointLine(point.X, point.Y, conj.X, conj.Y)
}

// numeratorSlope returns the degree-1-in-x interpolant through
// (point.x, value) and (point.x.conjugate(), value.conjugate()), used to
// subtract off the claimed value's contribution before dividing by the
// vanishing denominator (§4.G).
func numeratorSlope(point circle.SecurePoint, value field.QM31) (base, slope field.QM31) {
	conjX := point.X.Conjugate()
	conjV := value.Conjugate()
	denom := conjX.Sub(point.X)
	if denom.IsZero() {
		return value, field.QM31Zero()
	}
	slope = conjV.Sub(value).Mul(denom.Inv())
	return value, slope
}

// AccumulateBatchQuotient adds one ColumnSampleBatch's contribution to dst,
// a running quotient evaluation over domain. actualValues supplies each
// batch column's full evaluation (the column's actual CircleEvaluation
// values, in the same bit-reversed domain order dst is stored in — see
// QuotientAtPosition, which mirrors this per-index so FRI's fold, which
// assumes adjacent storage slots hold (p, -p) pairs, sees a consistent
// codeword). alpha is the random column-combination coefficient: the
// batch's k-th column is weighted by alpha^(k+1), starting again at alpha
// for every batch, and the result is added to dst unscaled (§4.G).
func AccumulateBatchQuotient(dst []field.QM31, batch ColumnSampleBatch, actualValues ColumnEvaluations, domain circle.CircleDomain, alpha field.QM31) {
	aD, bD, cD := denominatorLine(batch.Point)

	logSize := domain.LogSize()
	denoms := make([]field.QM31, domain.Size())
	for i := range denoms {
		p := domain.At(circle.BitReverseIndex(i, logSize))
		x, y := field.FromM31(p.X), field.FromM31(p.Y)
		denoms[i] = aD.Mul(x).Add(bD.Mul(y)).Sub(cD)
	}
	invDenoms := batchInvertQM31(denoms)

	coeff := field.QM31One()
	for k, col := range batch.Columns {
		coeff = coeff.Mul(alpha)
		base, slope := numeratorSlope(batch.Point, batch.Values[k])
		values := actualValues[col]
		for i := range dst {
			p := domain.At(circle.BitReverseIndex(i, logSize))
			x := field.FromM31(p.X)
			actual := field.FromM31(values[i])
			l := base.Add(slope.Mul(x.Sub(batch.Point.X)))
			num := actual.Sub(l)
			dst[i] = dst[i].Add(coeff.Mul(num).Mul(invDenoms[i]))
		}
	}
}

// QuotientAtPosition evaluates the same combined DEEP quotient as
// AccumulateBatchQuotient, but at a single bit-reversed storage index i,
// from already-decommitted column values rather than a full evaluation
// slice. The verifier uses this to recompute the quotient's value at each
// FRI query position from the Merkle-opened trace leaves, instead of
// trusting it from the prover (§4.G, §6 query phase).
func QuotientAtPosition(batches []ColumnSampleBatch, colValues map[int]field.M31, domain circle.CircleDomain, i int, alpha field.QM31) field.QM31 {
	logSize := domain.LogSize()
	p := domain.At(circle.BitReverseIndex(i, logSize))
	x, y := field.FromM31(p.X), field.FromM31(p.Y)

	acc := field.QM31Zero()
	for _, batch := range batches {
		aD, bD, cD := denominatorLine(batch.Point)
		denom := aD.Mul(x).Add(bD.Mul(y)).Sub(cD)
		invDenom := denom.Inv()

		coeff := field.QM31One()
		for k, col := range batch.Columns {
			coeff = coeff.Mul(alpha)
			base, slope := numeratorSlope(batch.Point, batch.Values[k])
			actual := field.FromM31(colValues[col])
			l := base.Add(slope.Mul(x.Sub(batch.Point.X)))
			num := actual.Sub(l)
			acc = acc.Add(coeff.Mul(num).Mul(invDenom))
		}
	}
	return acc
}

// batchInvertQM31 inverts every element of xs via Montgomery's trick: one
// field inversion amortized across the whole batch (§4.A, reused here for
// the secure field).
func batchInvertQM31(xs []field.QM31) []field.QM31 {
	n := len(xs)
	prefix := make([]field.QM31, n)
	acc := field.QM31One()
	for i, x := range xs {
		prefix[i] = acc
		acc = acc.Mul(x)
	}
	accInv := acc.Inv()
	out := make([]field.QM31, n)
	for i := n - 1; i >= 0; i-- {
		out[i] = prefix[i].Mul(accInv)
		accInv = accInv.Mul(xs[i])
	}
	return out
}
