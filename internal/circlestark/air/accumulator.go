package air

import "github.com/vybium/circle-stark/internal/circlestark/field"

// PointEvaluationAccumulator combines every constraint value a component
// evaluates at one out-of-domain point into a single secure-field number,
// Horner-style: accumulate(v) |-> acc <- acc*alpha + v. Accumulation order
// must match between prover and verifier, which holds automatically here
// since both drive the same component's Evaluate in the same order (§4.J).
type PointEvaluationAccumulator struct {
	alpha field.QM31
	acc   field.QM31
}

// NewPointEvaluationAccumulator starts an accumulator with the given
// random coefficient.
func NewPointEvaluationAccumulator(alpha field.QM31) *PointEvaluationAccumulator {
	return &PointEvaluationAccumulator{alpha: alpha}
}

// Accumulate folds one more constraint value in.
func (a *PointEvaluationAccumulator) Accumulate(v field.QM31) {
	a.acc = a.acc.Mul(a.alpha).Add(v)
}

// Finalize returns the combined value.
func (a *PointEvaluationAccumulator) Finalize() field.QM31 { return a.acc }

// DomainEvaluationAccumulator maintains one shared secure-field column
// over the blown-up evaluation domain. Each component writes
// col[row] += coeffPower * constraint(row) * denomInverse[row], where
// denomInverse already bakes in the division by the trace-domain
// vanishing polynomial (§4.C, §4.J).
type DomainEvaluationAccumulator struct {
	Column      []field.QM31
	CoeffPower  field.QM31
	DenomInv    []field.M31
	LogEvalSize uint32
	LogTraceLog uint32
}

// NewDomainEvaluationAccumulator allocates a zeroed column over a domain
// of size 2^logEvalSize.
func NewDomainEvaluationAccumulator(logEvalSize uint32, coeffPower field.QM31, denomInv []field.M31) *DomainEvaluationAccumulator {
	return &DomainEvaluationAccumulator{
		Column:      make([]field.QM31, 1<<logEvalSize),
		CoeffPower:  coeffPower,
		DenomInv:    denomInv,
		LogEvalSize: logEvalSize,
	}
}

// Accumulate adds one constraint's contribution at the given row.
func (a *DomainEvaluationAccumulator) Accumulate(row int, v field.QM31) {
	d := a.DenomInv[row]
	a.Column[row] = a.Column[row].Add(a.CoeffPower.Mul(v).MulM31(d))
}
