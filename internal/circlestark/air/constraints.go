// Package air implements the generic constraint-declaration framework the
// prover and verifier both drive: components declare trace columns,
// preprocessed columns and polynomial constraints through the EvalAtRow
// interface, exactly once, so the same declaration runs unchanged whether
// it is counting columns, checking a single out-of-domain point, or
// sweeping the blown-up evaluation domain (§4.H).
package air

import (
	"fmt"
	"math"

	"github.com/vybium/circle-stark/internal/circlestark/field"
)

// ratioScale is 2^20, the fixed-point scale every constraint's source
// ratio is rounded into so the field layer never needs to represent a
// real number (§3 "field_value = round(source_ratio * 2^20) mod p").
const ratioScale = 1 << 20

// Constraint is one row of a ConstraintSystem: a real-valued ratio and its
// two fixed-point field encodings, validated at entry so the framework
// never has to reject a malformed row mid-proof (§3, §6).
type Constraint struct {
	SourceRatio float64
	FieldValue  field.M31
	Coefficient field.M31
}

// NewConstraint rounds ratio into its two field encodings and validates
// it lies in the required range.
func NewConstraint(ratio float64) (Constraint, error) {
	if ratio <= 0 || ratio > 10 {
		return Constraint{}, fmt.Errorf("air: source_ratio %v out of range (0, 10]", ratio)
	}
	fv := math.Round(ratio * ratioScale)
	coeff := math.Round(ratioScale / ratio)
	return Constraint{
		SourceRatio: ratio,
		FieldValue:  field.FromInt64(int64(fv)),
		Coefficient: field.FromInt64(int64(coeff)),
	}, nil
}

// expectedProduct is the public constant the constraint checks the trace
// witness against: coefficient * field_value, precomputed once from two
// already-public values rather than re-derived from the real-valued ratio
// inside the circuit (§4.H's component evaluates purely in the field).
func (c Constraint) expectedProduct() field.M31 {
	return c.Coefficient.Mul(c.FieldValue)
}

// RelationKind names how a group of constraint indices are linked; the
// framework treats every kind identically (a named grouping for the
// constraint source's own bookkeeping) since no relation-specific
// constraint logic is implemented beyond logup group membership (§3).
type RelationKind string

const (
	RelationConjunction RelationKind = "conjunction"
	RelationDisjunction RelationKind = "disjunction"
	RelationExclusion   RelationKind = "exclusion"
)

// Relationship names a relation over a set of constraint indices.
type Relationship struct {
	Kind    RelationKind
	Indices []int
}

// ConstraintSystem is the constraint source's sole output: an ordered
// sequence of constraints plus named relationships between their indices
// (§3, §6 "Constraint source -> framework").
type ConstraintSystem struct {
	Constraints   []Constraint
	Relationships []Relationship
}

// NewConstraintSystem builds a ConstraintSystem from a list of source
// ratios, one constraint per ratio.
func NewConstraintSystem(ratios []float64) (ConstraintSystem, error) {
	cs := ConstraintSystem{Constraints: make([]Constraint, len(ratios))}
	for i, r := range ratios {
		c, err := NewConstraint(r)
		if err != nil {
			return ConstraintSystem{}, fmt.Errorf("air: constraint %d: %w", i, err)
		}
		cs.Constraints[i] = c
	}
	return cs, nil
}

// Validate checks every relationship references only in-range, distinct
// constraint indices, per §6's entry-validation contract.
func (cs ConstraintSystem) Validate() error {
	if len(cs.Constraints) == 0 {
		return fmt.Errorf("air: constraint system must declare at least one constraint")
	}
	for ri, rel := range cs.Relationships {
		seen := make(map[int]bool, len(rel.Indices))
		for _, idx := range rel.Indices {
			if idx < 0 || idx >= len(cs.Constraints) {
				return fmt.Errorf("air: relationship %d references out-of-range index %d", ri, idx)
			}
			if seen[idx] {
				return fmt.Errorf("air: relationship %d references index %d twice", ri, idx)
			}
			seen[idx] = true
		}
	}
	return nil
}
