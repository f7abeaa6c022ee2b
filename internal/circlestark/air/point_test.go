package air

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vybium/circle-stark/internal/circlestark/field"
)

func TestPointEvaluatorMatchesComponentIdentity(t *testing.T) {
	cs, err := NewConstraintSystem([]float64{1.5})
	require.NoError(t, err)
	comp, err := NewComponent(cs)
	require.NoError(t, err)

	pre := comp.Preprocessed()
	trace := comp.Trace()

	// Evaluate the identity directly at row 0, where the component is
	// satisfied, then confirm the PointEvaluator sees the same zero
	// constraint before the vanishing-inverse multiply.
	alpha := field.FromM31(field.New(7))
	mask := map[string]field.QM31{
		ColCoefficient:     field.FromM31(pre[ColCoefficient][0]),
		ColExpectedProduct: field.FromM31(pre[ColExpectedProduct][0]),
	}
	pe := NewPointEvaluator([]field.QM31{field.FromM31(trace[0])}, mask, field.FromM31(field.One()), alpha)
	comp.Evaluate(pe)
	require.True(t, pe.Finalize().IsZero())
}

func TestPointEvaluatorDetectsTamperedCoefficient(t *testing.T) {
	cs, err := NewConstraintSystem([]float64{1.5})
	require.NoError(t, err)
	comp, err := NewComponent(cs)
	require.NoError(t, err)

	pre := comp.Preprocessed()
	trace := comp.Trace()

	alpha := field.FromM31(field.New(7))
	tamperedCoeff := field.FromM31(pre[ColCoefficient][0]).Add(field.FromM31(field.One()))
	mask := map[string]field.QM31{
		ColCoefficient:     tamperedCoeff,
		ColExpectedProduct: field.FromM31(pre[ColExpectedProduct][0]),
	}
	pe := NewPointEvaluator([]field.QM31{field.FromM31(trace[0])}, mask, field.FromM31(field.One()), alpha)
	comp.Evaluate(pe)
	require.False(t, pe.Finalize().IsZero())
}
