package pcs

import "errors"

// Sentinel errors returned by Verify, wrapped with context via fmt.Errorf's
// %w so callers can still errors.Is against these.
var (
	// ErrStructureInvalid means the proof's shape does not match what the
	// verifier expects (wrong sample count, malformed decommitment, an
	// out-of-domain point that does not match the channel's own draw).
	ErrStructureInvalid = errors.New("invalid proof structure")

	// ErrMerkleInvalid means a Merkle decommitment failed to reproduce the
	// committed root.
	ErrMerkleInvalid = errors.New("merkle decommitment invalid")

	// ErrOodsNotMatching means the quotient recomputed from decommitted
	// trace values at a query position disagrees with the value FRI's own
	// first layer discloses there.
	ErrOodsNotMatching = errors.New("quotient does not match committed trace")

	// ErrFRIInvalid means the FRI sub-proof over the combined quotient
	// failed its own internal checks.
	ErrFRIInvalid = errors.New("fri proof invalid")

	// ErrProofOfWork means the disclosed nonce does not satisfy the
	// configured grinding difficulty.
	ErrProofOfWork = errors.New("proof of work check failed")
)
