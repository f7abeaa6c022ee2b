package air

import "github.com/vybium/circle-stark/internal/circlestark/field"

// PointEvaluator drives a component's Evaluate at a single out-of-domain
// point, from a precomputed mask of trace and preprocessed values sampled
// there. It divides each constraint's value by the trace-domain vanishing
// polynomial before folding it into a PointEvaluationAccumulator, mirroring
// the prover's own composition-polynomial quotient at that same point
// (§4.H item 2).
type PointEvaluator struct {
	TraceMask        []field.QM31
	PreprocessedMask map[string]field.QM31
	VanishingInv     field.QM31

	traceIdx int
	acc      *PointEvaluationAccumulator
}

// NewPointEvaluator builds a PointEvaluator over a sampled mask, with
// 1/Z(point) precomputed once.
func NewPointEvaluator(traceMask []field.QM31, preprocessedMask map[string]field.QM31, vanishingInv field.QM31, alpha field.QM31) *PointEvaluator {
	return &PointEvaluator{
		TraceMask:        traceMask,
		PreprocessedMask: preprocessedMask,
		VanishingInv:     vanishingInv,
		acc:              NewPointEvaluationAccumulator(alpha),
	}
}

// Finalize returns the accumulated composition value at the point.
func (e *PointEvaluator) Finalize() field.QM31 { return e.acc.Finalize() }

func (e *PointEvaluator) NextTraceMask() field.QM31 {
	v := e.TraceMask[e.traceIdx]
	e.traceIdx++
	return v
}

func (e *PointEvaluator) NextInteractionMask(tree int, offsets []int) []field.QM31 {
	out := make([]field.QM31, len(offsets))
	for i := range offsets {
		out[i] = e.NextTraceMask()
	}
	return out
}

func (e *PointEvaluator) NextExtensionInteractionMask(tree int, offsets []int) field.QM31 {
	return e.NextTraceMask()
}

func (e *PointEvaluator) GetPreprocessedColumn(id string) field.QM31 {
	return e.PreprocessedMask[id]
}

func (e *PointEvaluator) AddConstraint(expr field.QM31) {
	e.acc.Accumulate(expr.Mul(e.VanishingInv))
}

func (e *PointEvaluator) AddToRelation(entry RelationEntry) {}

func (e *PointEvaluator) FinalizeLogup() {}

func (e *PointEvaluator) CombineEF(v [4]field.M31) field.QM31 { return combineEF(v) }

var _ EvalAtRow = (*PointEvaluator)(nil)
