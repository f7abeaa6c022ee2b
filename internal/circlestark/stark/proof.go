package stark

import (
	"github.com/vybium/circle-stark/internal/circlestark/pcs"
)

// StarkProof is the top-level proof object: the preprocessed tree's
// commitment (recomputed independently by the verifier from the public
// constraint system, never opened) plus the PCS proof tying the trace
// witness and composition columns together through FRI (§3 "Proof
// object", §6 "Proof wire format").
//
// The full wire format's three-tree, per-column sampled_values/
// decommitments/queried_values layout is reduced here to pcs.Proof's
// single combined commitment, since this repo merges tree 1 (main trace)
// and tree 2 (composition) into one PCS commitment rather than running
// two separately-sequenced commit phases — see DESIGN.md.
type StarkProof struct {
	PreprocessedRoot []byte
	TraceRoot        []byte
	PCSProof         pcs.Proof
}
