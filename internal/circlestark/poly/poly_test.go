package poly

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vybium/circle-stark/internal/circlestark/circle"
	"github.com/vybium/circle-stark/internal/circlestark/field"
)

func TestLineInterpolateEvaluateRoundTrip(t *testing.T) {
	domain := circle.NewLineDomain(circle.HalfOdds(3))
	values := make([]field.QM31, domain.Size())
	for i := range values {
		values[i] = field.FromM31(field.New(uint32(i*7 + 3)))
	}
	ev, err := NewLineEvaluation(values, domain)
	require.NoError(t, err)

	poly := ev.Interpolate()
	back := poly.Evaluate(domain)
	for i := range values {
		require.True(t, values[i].Equal(back.Values[i]), "index %d", i)
	}
}

func TestLinePolyEvalAtPointMatchesDomainValue(t *testing.T) {
	domain := circle.NewLineDomain(circle.HalfOdds(2))
	values := make([]field.QM31, domain.Size())
	for i := range values {
		values[i] = field.FromM31(field.New(uint32(i*3 + 1)))
	}
	ev, _ := NewLineEvaluation(values, domain)
	poly := ev.Interpolate()

	for i := 0; i < domain.Size(); i++ {
		x := domain.At(circle.BitReverseIndex(i, domain.LogSize()))
		got := poly.EvalAtPoint(field.FromM31(x))
		require.True(t, got.Equal(values[i]), "index %d", i)
	}
}

func TestCircleInterpolateEvaluateRoundTrip(t *testing.T) {
	domain := circle.NewCircleDomain(circle.HalfOdds(3))
	values := make([]field.M31, domain.Size())
	for i := range values {
		values[i] = field.New(uint32(i*11 + 5))
	}
	ev, err := NewCircleEvaluation(values, domain)
	require.NoError(t, err)

	poly := ev.Interpolate()
	back := poly.Evaluate(domain)
	for i := range values {
		require.True(t, values[i].Equal(back.Values[i]), "index %d", i)
	}
}

func TestSecureColumnByCoordsRoundTrip(t *testing.T) {
	values := []field.QM31{
		field.FromPartialEvals(field.New(1), field.New(2), field.New(3), field.New(4)),
		field.FromPartialEvals(field.New(5), field.New(6), field.New(7), field.New(8)),
	}
	col := NewSecureColumnByCoords(values)
	require.Equal(t, values, col.Values())
}

func TestDecomposeRecombines(t *testing.T) {
	coeffs := make([]field.M31, 8)
	for i := range coeffs {
		coeffs[i] = field.New(uint32(i + 1))
	}
	p := NewCirclePoly(coeffs)
	g, lambda := Decompose(p)
	gc := append([]field.M31(nil), g.Coeffs()...)
	gc[len(gc)-1] = lambda
	require.Equal(t, coeffs, gc)
}
