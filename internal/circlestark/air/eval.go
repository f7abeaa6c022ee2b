package air

import "github.com/vybium/circle-stark/internal/circlestark/field"

// RelationEntry is one contribution a component makes to a named logup
// relation: `multiplicity / (z - sum(alpha^i * values[i]))` accumulates
// into that relation's running prefix-sum column (§4.H).
type RelationEntry struct {
	Relation     string
	Multiplicity field.QM31
	Values       []field.QM31
}

// EvalAtRow is the interface every component declares its constraints
// through. The same declaration, unchanged, drives InfoEvaluator (layout
// counting), PointEvaluator (the out-of-domain sanity check) and
// DomainEvaluator (the real per-row composition-polynomial evaluation),
// which is the entire point of the abstraction (§4.H).
//
// Every mask and constraint value here is carried in the secure field so
// one interface serves both the base-field domain sweep and the
// extension-field out-of-domain point, at the cost of the domain sweep
// promoting its base values with field.FromM31 before handing them in.
type EvalAtRow interface {
	NextTraceMask() field.QM31
	NextInteractionMask(tree int, offsets []int) []field.QM31
	NextExtensionInteractionMask(tree int, offsets []int) field.QM31
	GetPreprocessedColumn(id string) field.QM31
	AddConstraint(expr field.QM31)
	AddToRelation(entry RelationEntry)
	FinalizeLogup()
	CombineEF(v [4]field.M31) field.QM31
}

func combineEF(v [4]field.M31) field.QM31 {
	return field.CombineEF(v)
}
