package circlestark

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestProveVerifyRoundTrip(t *testing.T) {
	cs, err := NewConstraintSystem([]float64{1.5})
	require.NoError(t, err)
	cfg := DefaultConfig()

	proof, err := Prove(cs, cfg)
	require.NoError(t, err)
	require.NoError(t, Verify(cs, cfg, proof))
}

func TestVerifyRejectsCrossConstraintSystem(t *testing.T) {
	provedCS, err := NewConstraintSystem([]float64{1.5})
	require.NoError(t, err)
	otherCS, err := NewConstraintSystem([]float64{1.25})
	require.NoError(t, err)
	cfg := DefaultConfig()

	proof, err := Prove(provedCS, cfg)
	require.NoError(t, err)

	err = Verify(otherCS, cfg, proof)
	require.Error(t, err)
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, ErrInvalidProof, cerr.Code)
}

func TestNewConstraintSystemRejectsOutOfRangeRatio(t *testing.T) {
	_, err := NewConstraintSystem([]float64{0})
	require.Error(t, err)
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, ErrInvalidConstraintSystem, cerr.Code)
}

func TestEstimateProofSizeReportsNonZeroBreakdown(t *testing.T) {
	cs, err := NewConstraintSystem([]float64{1.5, 2.0})
	require.NoError(t, err)
	cfg := DefaultConfig()

	proof, err := Prove(cs, cfg)
	require.NoError(t, err)

	size := EstimateProofSize(proof, cfg)
	require.Positive(t, size.OODSSamples)
	require.Positive(t, size.FRIDecommitments)
	require.Positive(t, size.TraceDecommitments)
	require.Equal(t, size.OODSSamples+size.QueriesValues+size.FRISamples+size.FRIDecommitments+size.TraceDecommitments, size.Total())
}

func TestProveVerifyRoundTripAcrossHashFunctions(t *testing.T) {
	for _, h := range []HashFunction{HashSHA3, HashBlake2s, HashBlake3, HashSHA256, HashPoseidon} {
		cs, err := NewConstraintSystem([]float64{1.5})
		require.NoError(t, err)
		cfg := DefaultConfig()
		cfg.Hash = h

		proof, err := Prove(cs, cfg)
		require.NoError(t, err)
		require.NoError(t, Verify(cs, cfg, proof))
	}
}

func TestProveRejectsInvalidFRIConfig(t *testing.T) {
	cs, err := NewConstraintSystem([]float64{1.5})
	require.NoError(t, err)
	cfg := DefaultConfig()
	cfg.NQueries = 0

	_, err = Prove(cs, cfg)
	require.Error(t, err)
	var cerr *Error
	require.ErrorAs(t, err, &cerr)
	require.Equal(t, ErrInvalidConfig, cerr.Code)
}
