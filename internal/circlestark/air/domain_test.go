package air

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vybium/circle-stark/internal/circlestark/circle"
	"github.com/vybium/circle-stark/internal/circlestark/field"
	"github.com/vybium/circle-stark/internal/circlestark/poly"
)

func TestVanishingAtM31MatchesSecureFieldVanishingPoly(t *testing.T) {
	domain := circle.NewCanonicCoset(4).CircleDomain()
	for i := 0; i < domain.Size(); i++ {
		p := domain.At(circle.BitReverseIndex(i, domain.LogSize()))
		got := VanishingAtM31(3, p.X)
		want := poly.VanishingPoly(3, p.IntoSecure())
		require.True(t, field.FromM31(got).Equal(want), "index %d", i)
	}
}

func TestDomainEvaluatorAccumulatesComponentConstraint(t *testing.T) {
	cs, err := NewConstraintSystem([]float64{1.5})
	require.NoError(t, err)
	comp, err := NewComponent(cs)
	require.NoError(t, err)

	pre := comp.Preprocessed()
	trace := comp.Trace()
	denomInv := make([]field.M31, len(trace))
	for i := range denomInv {
		denomInv[i] = field.One()
	}

	accum := NewDomainEvaluationAccumulator(comp.LogSize(), field.FromM31(field.One()), denomInv)
	for row := range trace {
		comp.Evaluate(NewDomainEvaluator(row, [][]field.M31{trace}, pre, accum))
	}

	for row := range trace {
		require.True(t, accum.Column[row].IsZero(), "row %d", row)
	}
}
