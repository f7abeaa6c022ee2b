package stark

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/vybium/circle-stark/internal/circlestark/air"
	"github.com/vybium/circle-stark/internal/circlestark/channel"
	"github.com/vybium/circle-stark/internal/circlestark/circle"
	"github.com/vybium/circle-stark/internal/circlestark/field"
	"github.com/vybium/circle-stark/internal/circlestark/merkle"
	"github.com/vybium/circle-stark/internal/circlestark/pcs"
)

// Verify checks a StarkProof against cs: the caller's own public
// constraint system, not anything carried in the proof, per §6's
// "constraint source -> framework" boundary. The preprocessed root is
// recomputed independently from cs (never opened, §9), so a proof built
// against a different constraint system is rejected here before FRI ever
// runs — this is what makes §8's E4 "cross-constraint rejection" scenario
// fail fast (§4.I "mirrors steps 1-10").
func Verify(cs air.ConstraintSystem, cfg Config, proof StarkProof) error {
	log.Info().Int("constraints", len(cs.Constraints)).Msg("stark: verify start")
	comp, err := air.NewComponent(cs)
	if err != nil {
		return fmt.Errorf("stark: %w: %v", ErrInvalidStructure, err)
	}
	logTrace := comp.LogSize()
	smallDomain := circle.NewCanonicCoset(logTrace).CircleDomain()

	pre := comp.Preprocessed()
	tree0, err := merkle.Commit(cfg.Hasher, map[uint32][][]field.M31{
		logTrace: {pre[air.ColCoefficient], pre[air.ColExpectedProduct]},
	})
	if err != nil {
		return fmt.Errorf("stark: recomputing preprocessed tree: %w", err)
	}
	root0 := tree0.Root()
	if !bytesEqual(root0, proof.PreprocessedRoot) {
		log.Warn().Msg("stark: preprocessed root mismatch, rejecting before fri")
		return fmt.Errorf("stark: %w: preprocessed root does not match constraint system", ErrInvalidStructure)
	}

	ch := channel.New()
	ch.MixRoot(root0)
	alpha := ch.DrawSecureFelt()

	blowLog := logTrace + cfg.FRI.LogBlowupFactor

	if err := pcs.Verify(5, circle.NewCanonicCoset(blowLog).CircleDomain(), cfg.Hasher, cfg.FRI, cfg.PowBits, proof.TraceRoot, proof.PCSProof, ch); err != nil {
		return err
	}

	witnessAtZ := proof.PCSProof.Samples[0]
	compAtZ := combineSecureSample(proof.PCSProof.Samples[1], proof.PCSProof.Samples[2], proof.PCSProof.Samples[3], proof.PCSProof.Samples[4])

	expectedCompAtZ, err := expectedCompositionAtPoint(comp, pre, smallDomain, logTrace, proof.PCSProof.OODPoint, witnessAtZ, alpha)
	if err != nil {
		return err
	}
	if !expectedCompAtZ.Equal(compAtZ) {
		log.Warn().Msg("stark: out-of-domain sample mismatch")
		return fmt.Errorf("stark: %w", ErrOodsNotMatching)
	}
	log.Info().Msg("stark: verify complete")
	return nil
}

func bytesEqual(a, b []byte) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
