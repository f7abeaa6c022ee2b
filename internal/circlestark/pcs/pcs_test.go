package pcs

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vybium/circle-stark/internal/circlestark/channel"
	"github.com/vybium/circle-stark/internal/circlestark/circle"
	"github.com/vybium/circle-stark/internal/circlestark/field"
	"github.com/vybium/circle-stark/internal/circlestark/fri"
	"github.com/vybium/circle-stark/internal/circlestark/merkle"
)

func twoColumnFixture(t *testing.T) (map[int]Column, circle.CircleDomain) {
	t.Helper()
	domain := circle.NewCanonicCoset(5).CircleDomain()
	values0 := make([]field.M31, domain.Size())
	values1 := make([]field.M31, domain.Size())
	for i := range values0 {
		values0[i] = field.New(uint32(i + 1))
		values1[i] = field.New(uint32(2*i + 3))
	}
	c0, err := NewColumn(values0, domain)
	require.NoError(t, err)
	c1, err := NewColumn(values1, domain)
	require.NoError(t, err)
	return map[int]Column{0: c0, 1: c1}, domain
}

func TestProverVerifierRoundTrip(t *testing.T) {
	columns, domain := twoColumnFixture(t)
	friCfg, err := fri.NewConfig(1, 3, 16)
	require.NoError(t, err)
	hasher := merkle.NewSHA3Hasher()

	prover := NewProver(columns, domain, hasher, friCfg, 0)
	root, proof, err := prover.Prove(channel.New())
	require.NoError(t, err)

	require.NoError(t, Verify(len(columns), domain, hasher, friCfg, 0, root, proof, channel.New()))
}

func TestVerifierRejectsTamperedSample(t *testing.T) {
	columns, domain := twoColumnFixture(t)
	friCfg, err := fri.NewConfig(1, 3, 16)
	require.NoError(t, err)
	hasher := merkle.NewSHA3Hasher()

	prover := NewProver(columns, domain, hasher, friCfg, 0)
	root, proof, err := prover.Prove(channel.New())
	require.NoError(t, err)

	proof.Samples[0] = proof.Samples[0].Add(field.QM31One())

	require.Error(t, Verify(len(columns), domain, hasher, friCfg, 0, root, proof, channel.New()))
}

func TestVerifierRejectsTamperedTraceRoot(t *testing.T) {
	columns, domain := twoColumnFixture(t)
	friCfg, err := fri.NewConfig(1, 3, 16)
	require.NoError(t, err)
	hasher := merkle.NewSHA3Hasher()

	prover := NewProver(columns, domain, hasher, friCfg, 0)
	root, proof, err := prover.Prove(channel.New())
	require.NoError(t, err)

	tamperedRoot := append([]byte(nil), root...)
	tamperedRoot[0] ^= 0xff

	require.Error(t, Verify(len(columns), domain, hasher, friCfg, 0, tamperedRoot, proof, channel.New()))
}
