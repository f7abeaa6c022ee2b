package stark

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vybium/circle-stark/internal/circlestark/air"
	"github.com/vybium/circle-stark/internal/circlestark/fri"
	"github.com/vybium/circle-stark/internal/circlestark/merkle"
)

// minimalConfig keeps the proof this file's exhaustive byte-flip test
// iterates over as small as possible: the property under test ("every
// single byte flip is rejected") scales with proof size, not soundness,
// so there is no reason to pay a 32-query, blowup-2 proof's size here.
func minimalConfig(t *testing.T) Config {
	t.Helper()
	friCfg, err := fri.NewConfig(1, 0, 2)
	require.NoError(t, err)
	return Config{FRI: friCfg, PowBits: 0, Hasher: merkle.NewSHA3Hasher()}
}

func TestEncodeDecodeRoundTripIsIdentity(t *testing.T) {
	cs, err := air.NewConstraintSystem([]float64{1.5, 2.0})
	require.NoError(t, err)
	cfg := testConfig(t)

	proof, err := Prove(cs, cfg)
	require.NoError(t, err)

	encoded := proof.Encode()
	decoded, err := Decode(encoded)
	require.NoError(t, err)
	require.Equal(t, proof, decoded)
	require.NoError(t, Verify(cs, cfg, decoded))

	require.Equal(t, encoded, decoded.Encode())
}

func TestDecodeRejectsFlippedByte(t *testing.T) {
	cs, err := air.NewConstraintSystem([]float64{1.5})
	require.NoError(t, err)
	cfg := minimalConfig(t)

	proof, err := Prove(cs, cfg)
	require.NoError(t, err)
	encoded := proof.Encode()

	rejected := 0
	for i := 0; i < len(encoded); i++ {
		tampered := append([]byte(nil), encoded...)
		tampered[i] ^= 0xff

		decoded, err := Decode(tampered)
		if err != nil {
			rejected++
			continue
		}
		if Verify(cs, cfg, decoded) != nil {
			rejected++
		}
	}
	require.Equal(t, len(encoded), rejected, "every single-byte flip must fail to decode or fail to verify")
}

func TestDecodeRejectsTruncatedProof(t *testing.T) {
	cs, err := air.NewConstraintSystem([]float64{1.5})
	require.NoError(t, err)
	cfg := testConfig(t)

	proof, err := Prove(cs, cfg)
	require.NoError(t, err)
	encoded := proof.Encode()

	_, err = Decode(encoded[:len(encoded)/2])
	require.ErrorIs(t, err, ErrInvalidStructure)
}

func TestDecodeRejectsTrailingBytes(t *testing.T) {
	cs, err := air.NewConstraintSystem([]float64{1.5})
	require.NoError(t, err)
	cfg := testConfig(t)

	proof, err := Prove(cs, cfg)
	require.NoError(t, err)
	encoded := append(proof.Encode(), 0x00)

	_, err = Decode(encoded)
	require.ErrorIs(t, err, ErrInvalidStructure)
}
