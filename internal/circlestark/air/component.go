package air

import (
	"fmt"

	"github.com/vybium/circle-stark/internal/circlestark/field"
)

// preprocessed column ids the component declares, shared by the
// allocator's static-mode deduplication (§4.H "TraceLocationAllocator").
const (
	ColCoefficient     = "coefficient"
	ColExpectedProduct = "expected_product"
)

// Component wraps a ConstraintSystem's single ratio-consistency check:
// every row verifies `coefficient * witness == expected_product`, where
// expected_product is itself public (`coefficient * field_value`,
// precomputed once from two already-validated constants). An honest
// prover's witness column simply echoes field_value; the point of the
// exercise is the generic framework plumbing, not the specific circuit
// (this repo's constraint sources are explicitly out of scope, §1).
//
// This is a reduced, single-component instance of §4.H's framework: it
// implements exactly one component rather than a registry of many, since
// every scenario in §8 describes one. See DESIGN.md for the open-question
// decision this simplification records.
type Component struct {
	cs ConstraintSystem
}

// NewComponent wraps a validated ConstraintSystem.
func NewComponent(cs ConstraintSystem) (*Component, error) {
	if err := cs.Validate(); err != nil {
		return nil, err
	}
	return &Component{cs: cs}, nil
}

// LogSize returns the log2 of the padded row count the component's trace
// and preprocessed columns occupy. It is at least 1, since the smallest
// canonic circle domain has two points.
func (c *Component) LogSize() uint32 {
	n := len(c.cs.Constraints)
	log := uint32(1)
	for 1<<log < n {
		log++
	}
	return log
}

// Preprocessed returns the component's public, verifier-known columns
// (tree 0), padded with identity rows (coefficient=1, expected_product=0,
// satisfied trivially) up to the next power of two.
func (c *Component) Preprocessed() map[string][]field.M31 {
	size := 1 << c.LogSize()
	coeff := make([]field.M31, size)
	expected := make([]field.M31, size)
	for i := range coeff {
		coeff[i] = field.One()
	}
	for i, con := range c.cs.Constraints {
		coeff[i] = con.Coefficient
		expected[i] = con.expectedProduct()
	}
	return map[string][]field.M31{ColCoefficient: coeff, ColExpectedProduct: expected}
}

// Trace returns the component's honest main-trace witness column (tree
// 1): the prover's claimed field-value encoding for each row, padded with
// zeros (which satisfy the padded identity rows above).
func (c *Component) Trace() []field.M31 {
	size := 1 << c.LogSize()
	witness := make([]field.M31, size)
	for i, con := range c.cs.Constraints {
		witness[i] = con.FieldValue
	}
	return witness
}

// Evaluate is the single constraint declaration shared by every evaluator
// kind: `coefficient * witness - expected_product == 0` (§4.H). Whatever
// concrete EvalAtRow drives it — counting, an out-of-domain point, or a
// full domain sweep — sees the identical sequence of calls.
func (c *Component) Evaluate(ev EvalAtRow) {
	coeff := ev.GetPreprocessedColumn(ColCoefficient)
	expected := ev.GetPreprocessedColumn(ColExpectedProduct)
	witness := ev.NextTraceMask()
	constraint := coeff.Mul(witness).Sub(expected)
	ev.AddConstraint(constraint)
}

// TraceColumnCount reports how many trace columns Evaluate consumes, via
// InfoEvaluator, so callers never hardcode it.
func (c *Component) TraceColumnCount() int {
	info := NewInfoEvaluator()
	c.Evaluate(info)
	return info.TraceColumns
}

// ConstraintCount reports how many constraints Evaluate adds.
func (c *Component) ConstraintCount() int {
	info := NewInfoEvaluator()
	c.Evaluate(info)
	return info.Constraints
}

// ErrWitnessMismatch describes a trace witness that does not match the
// public constraint system. No function in this package returns it; an
// unsatisfying witness is caught by stark.Prove's sanity check instead,
// as stark.ErrConstraintsNotSatisfied.
var ErrWitnessMismatch = fmt.Errorf("air: trace witness does not satisfy constraint system")
