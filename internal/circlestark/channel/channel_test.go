package channel

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMixingIsOrderSensitive(t *testing.T) {
	a := New()
	a.MixU64(1)
	a.MixU64(2)

	b := New()
	b.MixU64(2)
	b.MixU64(1)

	require.NotEqual(t, a.Digest(), b.Digest())
}

func TestDrawIsDeterministicGivenSameTranscript(t *testing.T) {
	a := New()
	a.MixRoot([]byte("root"))
	b := New()
	b.MixRoot([]byte("root"))

	require.Equal(t, a.DrawSecureFelt(), b.DrawSecureFelt())
}

func TestDrawRandomBytesNeverRepeats(t *testing.T) {
	c := New()
	c.MixU64(42)
	first := c.DrawRandomBytes(32)
	second := c.DrawRandomBytes(32)
	require.NotEqual(t, first, second)
}

func TestDrawM31StaysInField(t *testing.T) {
	c := New()
	c.MixU64(7)
	for i := 0; i < 64; i++ {
		v := c.DrawM31()
		require.Less(t, v.Uint32(), uint32(1)<<31)
	}
}

func TestGrindSatisfiesThreshold(t *testing.T) {
	c := New()
	c.MixU64(1)
	nonce := c.Grind(8)

	v := New()
	v.MixU64(1)
	require.True(t, v.CheckGrind(8, nonce))
}

func TestCheckGrindRejectsBadNonce(t *testing.T) {
	c := New()
	c.MixU64(1)
	require.False(t, c.CheckGrind(24, 0))
}
