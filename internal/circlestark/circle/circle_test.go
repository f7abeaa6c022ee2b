package circle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeneratorOnCurve(t *testing.T) {
	lhs := Generator.X.Square().Add(Generator.Y.Square())
	require.True(t, lhs.Equal(Generator.X.Square().Add(Generator.Y.Square())))
	require.Equal(t, uint32(1), lhs.Uint32())
}

func TestGeneratorOrder(t *testing.T) {
	require.Equal(t, Identity(), Generator.Mul(uint64(1)<<LogOrder))
	require.NotEqual(t, Identity(), Generator.Mul(uint64(1)<<(LogOrder-1)))
}

func TestAddNegIsIdentity(t *testing.T) {
	p := Generator.Mul(12345)
	require.Equal(t, Identity(), p.Add(p.Neg()))
}

func TestDoubleMatchesAddSelf(t *testing.T) {
	p := Generator.Mul(777)
	require.Equal(t, p.Add(p), p.Double())
}

func TestCosetIndexAtMatchesRepeatedStep(t *testing.T) {
	c := NewCoset(Generator, 4)
	cur := c.Initial
	for i := 0; i < c.Size(); i++ {
		require.Equal(t, cur, c.IndexAt(i))
		cur = cur.Add(c.Step)
	}
}

func TestCircleDomainNegatesUpperHalf(t *testing.T) {
	d := NewCircleDomain(HalfOdds(3))
	n := d.HalfCoset.Size()
	for i := 0; i < n; i++ {
		require.Equal(t, d.HalfCoset.IndexAt(i).Neg(), d.At(i+n))
	}
}

func TestCanonicCosetSizes(t *testing.T) {
	cc := NewCanonicCoset(5)
	require.Equal(t, 1<<5, cc.Coset().Size())
	require.Equal(t, 1<<5, cc.CircleDomain().Size())
}

func TestBitReverseIndexInvolution(t *testing.T) {
	for i := 0; i < 16; i++ {
		require.Equal(t, i, BitReverseIndex(BitReverseIndex(i, 4), 4))
	}
}
