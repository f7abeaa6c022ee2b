package circlestark

import (
	"github.com/vybium/circle-stark/internal/circlestark/air"
	"github.com/vybium/circle-stark/internal/circlestark/fri"
	"github.com/vybium/circle-stark/internal/circlestark/merkle"
	"github.com/vybium/circle-stark/internal/circlestark/stark"
)

// ConstraintSystem is the public input a constraint source hands to the
// proof engine: one constraint per declared ratio, per §3.
type ConstraintSystem = air.ConstraintSystem

// Constraint is one row of a ConstraintSystem.
type Constraint = air.Constraint

// StarkProof is the wire-level output of Prove, opaque to callers beyond
// what the error taxonomy exposes.
type StarkProof = stark.StarkProof

// HashFunction names which Merkle hasher a Config uses for its column
// commitments, per §6's "pluggable hasher" surface.
type HashFunction int

const (
	// HashSHA3 uses SHA3-256 (the default).
	HashSHA3 HashFunction = iota
	HashBlake2s
	HashBlake3
	HashSHA256
	HashPoseidon
)

// Config is the public prover/verifier configuration: the FRI soundness
// parameters, the grinding bits and the Merkle hasher, per §6.
type Config struct {
	// LogBlowupFactor is the log2 of the FRI low-degree-extension blowup.
	LogBlowupFactor uint32

	// LogLastLayerDegreeBound is the log2 of the FRI last-layer degree
	// bound.
	LogLastLayerDegreeBound uint32

	// NQueries is the number of FRI query rounds.
	NQueries int

	// PowBits is the number of leading zero bits the Fiat-Shamir grinding
	// nonce must produce.
	PowBits uint32

	// Hash selects the Merkle hasher.
	Hash HashFunction
}

// DefaultConfig returns the engine's default soundness parameters: blowup
// 2, last-layer degree bound 32, 32 FRI queries, no grinding, SHA3-256.
func DefaultConfig() Config {
	return Config{
		LogBlowupFactor:         1,
		LogLastLayerDegreeBound: 5,
		NQueries:                32,
		PowBits:                 0,
		Hash:                    HashSHA3,
	}
}

func (c Config) hasher() merkle.Hasher {
	switch c.Hash {
	case HashBlake2s:
		return merkle.NewBlake2sHasher()
	case HashBlake3:
		return merkle.NewBlake3Hasher()
	case HashSHA256:
		return merkle.NewSHA256Hasher()
	case HashPoseidon:
		return merkle.NewPoseidonHasher()
	default:
		return merkle.NewSHA3Hasher()
	}
}

func (c Config) toInternal() (stark.Config, error) {
	friCfg, err := fri.NewConfig(c.LogBlowupFactor, c.LogLastLayerDegreeBound, c.NQueries)
	if err != nil {
		return stark.Config{}, &Error{Code: ErrInvalidConfig, Message: "invalid FRI parameters", Cause: err}
	}
	return stark.Config{FRI: friCfg, PowBits: c.PowBits, Hasher: c.hasher()}, nil
}

// NewConstraintSystem builds a ConstraintSystem from a list of source
// ratios, one constraint per ratio, per §3's field_value/coefficient
// encoding.
func NewConstraintSystem(ratios []float64) (ConstraintSystem, error) {
	cs, err := air.NewConstraintSystem(ratios)
	if err != nil {
		return ConstraintSystem{}, &Error{Code: ErrInvalidConstraintSystem, Message: "building constraint system", Cause: err}
	}
	return cs, nil
}
