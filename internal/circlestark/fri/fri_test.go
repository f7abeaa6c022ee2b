package fri

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vybium/circle-stark/internal/circlestark/channel"
	"github.com/vybium/circle-stark/internal/circlestark/circle"
	"github.com/vybium/circle-stark/internal/circlestark/field"
	"github.com/vybium/circle-stark/internal/circlestark/merkle"
	"github.com/vybium/circle-stark/internal/circlestark/poly"
)

func lowDegreeLineEvaluation(t *testing.T, logSize uint32, degree int) ([]field.QM31, circle.LineDomain) {
	t.Helper()
	coeffs := make([]field.QM31, 1<<logSize)
	for i := 0; i < degree; i++ {
		coeffs[i] = field.FromM31(field.New(uint32(i*17 + 3)))
	}
	p := poly.NewLinePoly(coeffs)
	domain := circle.NewLineDomain(circle.HalfOdds(logSize))
	ev := p.Evaluate(domain)
	return ev.Values, domain
}

func TestFriProveVerifyRoundTrip(t *testing.T) {
	cfg, err := NewConfig(2, 2, 8)
	require.NoError(t, err)

	values, domain := lowDegreeLineEvaluation(t, 6, 1<<cfg.LogLastLayerDegreeBound)
	hasher := merkle.NewSHA3Hasher()

	proverChannel := channel.New()
	prover, err := Commit(cfg, hasher, values, domain, proverChannel)
	require.NoError(t, err)

	queries := proverChannel.DrawQueryIndices(cfg.NQueries, domain.LogSize())
	opening := prover.Decommit(queries)
	roots := prover.Roots()

	verifierChannel := channel.New()
	require.NoError(t, Verify(cfg, hasher, domain, roots, opening, queries, verifierChannel))
}

func TestFriVerifyRejectsTamperedRoot(t *testing.T) {
	cfg, err := NewConfig(2, 2, 4)
	require.NoError(t, err)
	values, domain := lowDegreeLineEvaluation(t, 5, 1<<cfg.LogLastLayerDegreeBound)
	hasher := merkle.NewSHA3Hasher()

	proverChannel := channel.New()
	prover, err := Commit(cfg, hasher, values, domain, proverChannel)
	require.NoError(t, err)
	queries := proverChannel.DrawQueryIndices(cfg.NQueries, domain.LogSize())
	opening := prover.Decommit(queries)
	roots := prover.Roots()
	roots[0] = append([]byte(nil), roots[0]...)
	roots[0][0] ^= 0xff

	verifierChannel := channel.New()
	require.Error(t, Verify(cfg, hasher, domain, roots, opening, queries, verifierChannel))
}

func TestFriVerifyRejectsBadLastLayerDegree(t *testing.T) {
	cfg, err := NewConfig(2, 1, 4)
	require.NoError(t, err)
	values, domain := lowDegreeLineEvaluation(t, 4, 1<<cfg.LogLastLayerDegreeBound)
	hasher := merkle.NewSHA3Hasher()

	proverChannel := channel.New()
	prover, err := Commit(cfg, hasher, values, domain, proverChannel)
	require.NoError(t, err)
	queries := proverChannel.DrawQueryIndices(cfg.NQueries, domain.LogSize())
	opening := prover.Decommit(queries)
	opening.LastLayerPoly = poly.NewLinePoly(append(opening.LastLayerPoly.Coeffs(), field.QM31Zero()))
	roots := prover.Roots()

	verifierChannel := channel.New()
	require.ErrorIs(t, Verify(cfg, hasher, domain, roots, opening, queries, verifierChannel), ErrLastLayerDegreeInvalid)
}

func TestFriVerifyRejectsWrongLayerCount(t *testing.T) {
	cfg, err := NewConfig(2, 2, 4)
	require.NoError(t, err)
	values, domain := lowDegreeLineEvaluation(t, 6, 1<<cfg.LogLastLayerDegreeBound)
	hasher := merkle.NewSHA3Hasher()

	proverChannel := channel.New()
	prover, err := Commit(cfg, hasher, values, domain, proverChannel)
	require.NoError(t, err)
	queries := proverChannel.DrawQueryIndices(cfg.NQueries, domain.LogSize())
	opening := prover.Decommit(queries)
	roots := prover.Roots()
	require.Equal(t, expectedNumLayers(cfg, domain), len(roots))

	fewerRoots := roots[:len(roots)-1]
	fewerOpening := &Opening{
		LayerDecommitments: opening.LayerDecommitments[:len(opening.LayerDecommitments)-1],
		LastLayerPoly:      opening.LastLayerPoly,
	}
	verifierChannel := channel.New()
	require.ErrorIs(t, Verify(cfg, hasher, domain, fewerRoots, fewerOpening, queries, verifierChannel), ErrInvalidNumLayers)

	extraRoots := append(append([][]byte(nil), roots...), roots[len(roots)-1])
	extraOpening := &Opening{
		LayerDecommitments: append(append([]*merkle.Decommitment(nil), opening.LayerDecommitments...), opening.LayerDecommitments[len(opening.LayerDecommitments)-1]),
		LastLayerPoly:      opening.LastLayerPoly,
	}
	verifierChannel = channel.New()
	require.ErrorIs(t, Verify(cfg, hasher, domain, extraRoots, extraOpening, queries, verifierChannel), ErrInvalidNumLayers)
}

func TestConfigRejectsOutOfRangeParams(t *testing.T) {
	_, err := NewConfig(0, 2, 4)
	require.Error(t, err)
	_, err = NewConfig(2, 20, 4)
	require.Error(t, err)
	_, err = NewConfig(2, 2, 0)
	require.Error(t, err)
}
