package stark

import "errors"

// Verifier-visible failures, matching §7's taxonomy at the orchestration
// layer; pcs.Verify's own sentinels (Merkle, FRI, proof-of-work) surface
// unwrapped through Verify's error chain alongside these.
var (
	// ErrInvalidStructure means the proof's shape does not match the
	// constraint system presented to Verify (an invalid constraint system,
	// a wrong preprocessed root), or Decode cannot parse the proof bytes.
	// A wrong column sample count is reported by pcs.ErrStructureInvalid.
	ErrInvalidStructure = errors.New("stark: invalid proof structure")

	// ErrOodsNotMatching means the composition value reconstructed from
	// the sampled trace mask does not equal the composition's own
	// out-of-domain sample — the verifier-side equivalent of "constraints
	// do not hold".
	ErrOodsNotMatching = errors.New("stark: out-of-domain values do not satisfy constraints")

	// ErrConstraintsNotSatisfied is a prover-side failure: the sanity
	// re-evaluation disagreed before any proof was emitted, meaning the
	// witness itself is wrong. The prover must not emit a proof when this
	// occurs (§7).
	ErrConstraintsNotSatisfied = errors.New("stark: prover's own sanity check failed, witness does not satisfy constraints")
)
