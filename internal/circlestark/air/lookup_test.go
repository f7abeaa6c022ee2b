package air

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vybium/circle-stark/internal/circlestark/field"
)

// TestLookupPairLogupClosure is §8 scenario E5: two components, each
// declaring add_to_relation entries with equal-and-opposite
// multiplicities over the same key column, close to a zero combined
// claimed sum.
func TestLookupPairLogupClosure(t *testing.T) {
	values := []field.M31{field.New(5), field.New(9), field.New(5), field.New(9)}
	mult := []field.M31{field.New(2), field.New(3), field.New(2), field.New(3)}

	consumer, err := NewLookupPair("pitch_lookup", Consumer, values, mult)
	require.NoError(t, err)
	provider, err := NewLookupPair("pitch_lookup", Provider, values, mult)
	require.NoError(t, err)

	z := field.FromM31(field.New(4242))
	consumerCol, consumerSum := consumer.BuildInteractionTrace(z)
	providerCol, providerSum := provider.BuildInteractionTrace(z)

	require.Len(t, consumerCol, 4)
	require.Len(t, providerCol, 4)
	require.True(t, CheckLogupClosure([]field.QM31{consumerSum, providerSum}))
}

func TestLookupPairRejectsMismatchedMultiplicity(t *testing.T) {
	values := []field.M31{field.New(5), field.New(9)}
	consumerMult := []field.M31{field.New(2), field.New(3)}
	providerMult := []field.M31{field.New(2), field.New(4)} // tampered: does not match consumer

	consumer, err := NewLookupPair("pitch_lookup", Consumer, values, consumerMult)
	require.NoError(t, err)
	provider, err := NewLookupPair("pitch_lookup", Provider, values, providerMult)
	require.NoError(t, err)

	z := field.FromM31(field.New(4242))
	_, consumerSum := consumer.BuildInteractionTrace(z)
	_, providerSum := provider.BuildInteractionTrace(z)

	require.False(t, CheckLogupClosure([]field.QM31{consumerSum, providerSum}))
}

func TestNewLookupPairRejectsLengthMismatch(t *testing.T) {
	_, err := NewLookupPair("r", Consumer, []field.M31{field.New(1)}, nil)
	require.Error(t, err)
}
