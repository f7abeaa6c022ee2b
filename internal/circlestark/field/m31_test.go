package field

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestM31FieldLaws(t *testing.T) {
	a, b, c := New(123456789), New(987654321), New(42)

	require.Equal(t, a.Add(b), b.Add(a), "commutative add")
	require.Equal(t, a.Mul(b), b.Mul(a), "commutative mul")
	require.Equal(t, a.Add(b).Add(c), a.Add(b.Add(c)), "associative add")
	require.Equal(t, a.Mul(b).Mul(c), a.Mul(b.Mul(c)), "associative mul")
	require.Equal(t, a.Mul(b.Add(c)), a.Mul(b).Add(a.Mul(c)), "distributive")
	require.True(t, a.Mul(a.Inv()).Equal(One()))
	require.True(t, a.Sub(a).IsZero())
}

func TestM31Reduce(t *testing.T) {
	require.EqualValues(t, 0, New(P))
	require.EqualValues(t, 1, New(P+1))
	require.EqualValues(t, 5, New(5))
}

func TestM31BatchInverse(t *testing.T) {
	xs := []M31{New(3), New(7), New(123), New(999999)}
	inv, err := BatchInverse(xs)
	require.NoError(t, err)
	for i, x := range xs {
		require.True(t, x.Mul(inv[i]).Equal(One()))
		require.Equal(t, x.Inv(), inv[i])
	}
}

func TestM31BatchInverseZero(t *testing.T) {
	_, err := BatchInverse([]M31{One(), Zero()})
	require.ErrorIs(t, err, ErrDivisionByZero)
}

func TestM31RoundTripBytes(t *testing.T) {
	a := New(2147483600)
	require.Equal(t, a, FromBytes(a.Bytes()))
}
