// Package stark orchestrates the top-level prove/verify loop: committing
// the preprocessed, trace and composition trees, drawing the
// out-of-domain point, running the sanity check, and producing or
// checking the FRI-backed PCS proof that ties them together (§4.I).
package stark

import (
	"github.com/vybium/circle-stark/internal/circlestark/fri"
	"github.com/vybium/circle-stark/internal/circlestark/merkle"
)

// Config bundles the FRI parameters, proof-of-work difficulty and Merkle
// hasher a prove/verify call uses.
type Config struct {
	FRI     fri.Config
	PowBits uint32
	Hasher  merkle.Hasher
}

// DefaultConfig returns a Config with SHA3-256 hashing and the parameters
// used by the E2/E3 scenarios (§8): log blowup 1, log last-layer degree
// bound 5, 32 queries, 0 grinding bits (callers raise PowBits for a PoW floor).
func DefaultConfig() (Config, error) {
	friCfg, err := fri.NewConfig(1, 5, 32)
	if err != nil {
		return Config{}, err
	}
	return Config{FRI: friCfg, PowBits: 0, Hasher: merkle.NewSHA3Hasher()}, nil
}
