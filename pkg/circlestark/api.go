// Package circlestark is the public surface of the circle-STARK proof
// engine: build a ConstraintSystem from the ratios a constraint source
// declares, Prove it, and Verify the resulting StarkProof against the
// same (or a different) ConstraintSystem, per §6.
package circlestark

import (
	"errors"

	"github.com/vybium/circle-stark/internal/circlestark/stark"
)

// Prove builds a proof that cs's constraint system is satisfied by its
// own honest witness (§3's field_value encoding), under cfg's soundness
// parameters. The prover re-checks its own work before returning: if the
// witness does not satisfy the constraint system, Prove returns
// ErrProofGeneration wrapping stark.ErrConstraintsNotSatisfied rather
// than emitting a bad proof.
func Prove(cs ConstraintSystem, cfg Config) (StarkProof, error) {
	internalCfg, err := cfg.toInternal()
	if err != nil {
		return StarkProof{}, err
	}
	proof, err := stark.Prove(cs, internalCfg)
	if err != nil {
		return StarkProof{}, &Error{Code: ErrProofGeneration, Message: "generating proof", Cause: err}
	}
	return proof, nil
}

// Verify checks proof against cs: the caller's own constraint system, not
// anything the proof itself carries. A proof built against a different
// constraint system is rejected before any FRI work runs, since the
// preprocessed root is recomputed from cs independently (§8 "cross
// constraint rejection").
func Verify(cs ConstraintSystem, cfg Config, proof StarkProof) error {
	internalCfg, err := cfg.toInternal()
	if err != nil {
		return err
	}
	if err := stark.Verify(cs, internalCfg, proof); err != nil {
		code := ErrProofVerification
		if errors.Is(err, stark.ErrInvalidStructure) {
			code = ErrInvalidProof
		}
		return &Error{Code: code, Message: "verifying proof", Cause: err}
	}
	return nil
}

// SizeEstimate is proof's wire-size breakdown by category, per §6's
// size-estimate API.
type SizeEstimate = stark.SizeEstimate

// EstimateProofSize reports proof's estimated wire size under cfg's
// hasher, broken down into oods_samples, queries_values, fri_samples,
// fri_decommitments and trace_decommitments, per §6.
func EstimateProofSize(proof StarkProof, cfg Config) SizeEstimate {
	return proof.EstimateSize(cfg.hasher())
}

// MarshalProof encodes proof into its canonical binary wire form (§6
// "Proof wire format"). UnmarshalProof(MarshalProof(proof)) reconstructs
// an identical StarkProof.
func MarshalProof(proof StarkProof) []byte {
	return proof.Encode()
}

// UnmarshalProof decodes a proof written by MarshalProof. A truncated or
// corrupted buffer is reported through the same ErrInvalidProof code
// Verify uses for a structurally invalid proof, since a proof that does
// not even parse can never satisfy Verify either.
func UnmarshalProof(data []byte) (StarkProof, error) {
	proof, err := stark.Decode(data)
	if err != nil {
		return StarkProof{}, &Error{Code: ErrInvalidProof, Message: "decoding proof", Cause: err}
	}
	return proof, nil
}
