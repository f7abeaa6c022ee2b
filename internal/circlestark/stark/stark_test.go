package stark

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vybium/circle-stark/internal/circlestark/air"
	"github.com/vybium/circle-stark/internal/circlestark/field"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg, err := DefaultConfig()
	require.NoError(t, err)
	return cfg
}

func TestProveVerifyRoundTripSingleConstraint(t *testing.T) {
	cs, err := air.NewConstraintSystem([]float64{1.5})
	require.NoError(t, err)
	cfg := testConfig(t)

	proof, err := Prove(cs, cfg)
	require.NoError(t, err)
	require.NoError(t, Verify(cs, cfg, proof))
}

func TestProveVerifyRoundTripTwoConstraints(t *testing.T) {
	cs, err := air.NewConstraintSystem([]float64{2.0, 2.0})
	require.NoError(t, err)
	cfg := testConfig(t)

	proof, err := Prove(cs, cfg)
	require.NoError(t, err)
	require.NoError(t, Verify(cs, cfg, proof))
}

func TestVerifyRejectsTamperedCoefficient(t *testing.T) {
	cs, err := air.NewConstraintSystem([]float64{1.5})
	require.NoError(t, err)
	cfg := testConfig(t)

	proof, err := Prove(cs, cfg)
	require.NoError(t, err)

	tampered := cs
	tampered.Constraints = append([]air.Constraint(nil), cs.Constraints...)
	tampered.Constraints[0].Coefficient = tampered.Constraints[0].Coefficient.Add(field.One())

	require.ErrorIs(t, Verify(tampered, cfg, proof), ErrInvalidStructure)
}

func TestVerifyRejectsCrossConstraintSystem(t *testing.T) {
	provedCS, err := air.NewConstraintSystem([]float64{1.5})
	require.NoError(t, err)
	otherCS, err := air.NewConstraintSystem([]float64{1.25})
	require.NoError(t, err)
	cfg := testConfig(t)

	proof, err := Prove(provedCS, cfg)
	require.NoError(t, err)

	require.ErrorIs(t, Verify(otherCS, cfg, proof), ErrInvalidStructure)
}

func TestVerifyRejectsTamperedTraceRoot(t *testing.T) {
	cs, err := air.NewConstraintSystem([]float64{1.5})
	require.NoError(t, err)
	cfg := testConfig(t)

	proof, err := Prove(cs, cfg)
	require.NoError(t, err)

	proof.TraceRoot = append([]byte(nil), proof.TraceRoot...)
	proof.TraceRoot[0] ^= 0xff

	require.Error(t, Verify(cs, cfg, proof))
}

func TestEstimateSizeBreaksDownIntoPositiveCategories(t *testing.T) {
	cs, err := air.NewConstraintSystem([]float64{1.5, 2.0})
	require.NoError(t, err)
	cfg := testConfig(t)

	proof, err := Prove(cs, cfg)
	require.NoError(t, err)

	size := proof.EstimateSize(cfg.Hasher)
	require.Positive(t, size.OODSSamples)
	require.Positive(t, size.FRIDecommitments)
	require.Positive(t, size.TraceDecommitments)
	require.Equal(t, size.Total(), size.OODSSamples+size.QueriesValues+size.FRISamples+size.FRIDecommitments+size.TraceDecommitments)
}

func TestProveWithGrindingFloorSucceeds(t *testing.T) {
	cs, err := air.NewConstraintSystem([]float64{1.5})
	require.NoError(t, err)
	cfg := testConfig(t)
	cfg.PowBits = 8

	proof, err := Prove(cs, cfg)
	require.NoError(t, err)
	require.NoError(t, Verify(cs, cfg, proof))
}
