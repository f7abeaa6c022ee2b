package air

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vybium/circle-stark/internal/circlestark/field"
)

func TestPointEvaluationAccumulatorHornerOrder(t *testing.T) {
	alpha := field.FromM31(field.New(3))
	acc := NewPointEvaluationAccumulator(alpha)
	acc.Accumulate(field.FromM31(field.New(5)))
	acc.Accumulate(field.FromM31(field.New(7)))

	want := field.FromM31(field.New(5)).Mul(alpha).Add(field.FromM31(field.New(7)))
	require.True(t, want.Equal(acc.Finalize()))
}

func TestDomainEvaluationAccumulatorWritesPerRow(t *testing.T) {
	denomInv := []field.M31{field.One(), field.New(2)}
	acc := NewDomainEvaluationAccumulator(1, field.FromM31(field.One()), denomInv)
	acc.Accumulate(0, field.FromM31(field.New(10)))
	acc.Accumulate(1, field.FromM31(field.New(10)))

	require.True(t, acc.Column[0].Equal(field.FromM31(field.New(10))))
	require.True(t, acc.Column[1].Equal(field.FromM31(field.New(20))))
}
