package air

import "github.com/vybium/circle-stark/internal/circlestark/field"

// InfoEvaluator drives a component's declaration without any real trace
// data, purely to count how many columns, preprocessed references,
// constraints and relation entries it needs (§4.H). Component uses these
// counts for TraceColumnCount and ConstraintCount.
type InfoEvaluator struct {
	TraceColumns       int
	PreprocessedIDs    []string
	Constraints        int
	RelationMultiplier map[string]int
}

// NewInfoEvaluator returns a zeroed InfoEvaluator ready to drive one
// component's Evaluate call.
func NewInfoEvaluator() *InfoEvaluator {
	return &InfoEvaluator{RelationMultiplier: make(map[string]int)}
}

func (e *InfoEvaluator) NextTraceMask() field.QM31 {
	e.TraceColumns++
	return field.QM31Zero()
}

func (e *InfoEvaluator) NextInteractionMask(tree int, offsets []int) []field.QM31 {
	e.TraceColumns++
	return make([]field.QM31, len(offsets))
}

func (e *InfoEvaluator) NextExtensionInteractionMask(tree int, offsets []int) field.QM31 {
	e.TraceColumns += 4
	return field.QM31Zero()
}

func (e *InfoEvaluator) GetPreprocessedColumn(id string) field.QM31 {
	e.PreprocessedIDs = append(e.PreprocessedIDs, id)
	return field.QM31Zero()
}

func (e *InfoEvaluator) AddConstraint(field.QM31) { e.Constraints++ }

func (e *InfoEvaluator) AddToRelation(entry RelationEntry) {
	e.RelationMultiplier[entry.Relation]++
}

func (e *InfoEvaluator) FinalizeLogup() {}

func (e *InfoEvaluator) CombineEF(v [4]field.M31) field.QM31 { return combineEF(v) }

var _ EvalAtRow = (*InfoEvaluator)(nil)
