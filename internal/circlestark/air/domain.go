package air

import (
	"github.com/vybium/circle-stark/internal/circlestark/field"
)

// DomainEvaluator drives a component's Evaluate once per row of the
// blown-up evaluation domain, reading real column values instead of an
// out-of-domain mask, and folding every constraint into a shared
// DomainEvaluationAccumulator (§4.H item 3, CPU backend).
type DomainEvaluator struct {
	Row              int
	TraceColumns     [][]field.M31
	PreprocessedCols map[string][]field.M31

	traceIdx int
	accum    *DomainEvaluationAccumulator
}

// NewDomainEvaluator builds a DomainEvaluator bound to one row, writing
// into the given shared accumulator.
func NewDomainEvaluator(row int, traceColumns [][]field.M31, preprocessedCols map[string][]field.M31, accum *DomainEvaluationAccumulator) *DomainEvaluator {
	return &DomainEvaluator{Row: row, TraceColumns: traceColumns, PreprocessedCols: preprocessedCols, accum: accum}
}

func (e *DomainEvaluator) NextTraceMask() field.QM31 {
	v := field.FromM31(e.TraceColumns[e.traceIdx][e.Row])
	e.traceIdx++
	return v
}

func (e *DomainEvaluator) NextInteractionMask(tree int, offsets []int) []field.QM31 {
	out := make([]field.QM31, len(offsets))
	for i := range offsets {
		out[i] = e.NextTraceMask()
	}
	return out
}

func (e *DomainEvaluator) NextExtensionInteractionMask(tree int, offsets []int) field.QM31 {
	return e.NextTraceMask()
}

func (e *DomainEvaluator) GetPreprocessedColumn(id string) field.QM31 {
	return field.FromM31(e.PreprocessedCols[id][e.Row])
}

func (e *DomainEvaluator) AddConstraint(expr field.QM31) {
	e.accum.Accumulate(e.Row, expr)
}

func (e *DomainEvaluator) AddToRelation(entry RelationEntry) {}

func (e *DomainEvaluator) FinalizeLogup() {}

func (e *DomainEvaluator) CombineEF(v [4]field.M31) field.QM31 { return combineEF(v) }

var _ EvalAtRow = (*DomainEvaluator)(nil)

// VanishingAtM31 evaluates the canonic coset vanishing polynomial of the
// given log-size at a base-field x-coordinate, mirroring
// poly.VanishingPoly's doubling-map construction but over F_p instead of
// F_{p^4}, for dividing the composition numerator pointwise across the
// blown-up domain (§4.C).
func VanishingAtM31(logSize uint32, x field.M31) field.M31 {
	for i := uint32(0); i+1 < logSize; i++ {
		x = x.Square().Double().Sub(field.One())
	}
	return x
}
