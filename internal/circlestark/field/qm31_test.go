package field

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestQM31FieldLaws(t *testing.T) {
	a := FromPartialEvals(New(1), New(2), New(3), New(4))
	b := FromPartialEvals(New(5), New(6), New(7), New(8))
	c := FromPartialEvals(New(9), New(1), New(2), New(123))

	require.Equal(t, a.Add(b), b.Add(a))
	require.Equal(t, a.Mul(b), b.Mul(a))
	require.Equal(t, a.Mul(b.Add(c)), a.Mul(b).Add(a.Mul(c)))
	require.True(t, a.Mul(a.Inv()).Equal(QM31One()))
}

func TestQM31PartialEvalsRoundTrip(t *testing.T) {
	vals := [4]M31{New(11), New(22), New(33), New(44)}
	x := FromPartialEvals(vals[0], vals[1], vals[2], vals[3])
	require.Equal(t, vals, x.ToPartialEvals())
	require.Equal(t, x, CombineEF(vals))
}

func TestQM31EmbedsM31(t *testing.T) {
	m := New(777)
	x := FromM31(m)
	y := FromM31(New(3))
	require.Equal(t, FromM31(m.Mul(New(3))), x.Mul(y))
}
