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
	"github.com/vybium/circle-stark/internal/circlestark/poly"
)

// Prove runs the full commit/sample/quotient/FRI flow over one component
// built from cs, per §4.I:
//
//  1. commit the preprocessed tree and mix its root;
//  2. draw the composition random coefficient;
//  3. evaluate the component's constraint on the blown-up domain,
//     dividing by the trace-domain vanishing polynomial, to get the
//     composition column;
//  4. commit the trace witness and composition coordinate columns
//     together and run the PCS/FRI opening;
//  5. re-evaluate the composition at the out-of-domain point from the
//     sampled trace value and compare against the sampled composition —
//     refusing to emit a proof if they disagree.
func Prove(cs air.ConstraintSystem, cfg Config) (StarkProof, error) {
	log.Info().Int("constraints", len(cs.Constraints)).Msg("stark: prove start")
	comp, err := air.NewComponent(cs)
	if err != nil {
		return StarkProof{}, err
	}
	logTrace := comp.LogSize()
	smallDomain := circle.NewCanonicCoset(logTrace).CircleDomain()

	pre := comp.Preprocessed()
	tree0, err := merkle.Commit(cfg.Hasher, map[uint32][][]field.M31{
		logTrace: {pre[air.ColCoefficient], pre[air.ColExpectedProduct]},
	})
	if err != nil {
		return StarkProof{}, fmt.Errorf("stark: committing preprocessed tree: %w", err)
	}
	root0 := tree0.Root()
	log.Debug().Uint32("log_trace", logTrace).Msg("stark: committed preprocessed tree")

	ch := channel.New()
	ch.MixRoot(root0)

	alpha := ch.DrawSecureFelt()

	blowLog := logTrace + cfg.FRI.LogBlowupFactor
	blowDomain := circle.NewCanonicCoset(blowLog).CircleDomain()

	coeffLDE, err := lde(pre[air.ColCoefficient], smallDomain, blowDomain)
	if err != nil {
		return StarkProof{}, err
	}
	expectedLDE, err := lde(pre[air.ColExpectedProduct], smallDomain, blowDomain)
	if err != nil {
		return StarkProof{}, err
	}
	witnessLDE, err := lde(comp.Trace(), smallDomain, blowDomain)
	if err != nil {
		return StarkProof{}, err
	}

	denomInv, err := vanishingInvOverDomain(logTrace, blowDomain)
	if err != nil {
		return StarkProof{}, err
	}

	preCols := map[string][]field.M31{air.ColCoefficient: coeffLDE, air.ColExpectedProduct: expectedLDE}
	traceCols := [][]field.M31{witnessLDE}

	// The component adds one constraint, which PointEvaluationAccumulator's
	// Horner combination leaves unscaled (alpha^0); the domain sweep applies
	// the same weight so both sides compute the same composition.
	accum := air.NewDomainEvaluationAccumulator(blowLog, field.QM31One(), denomInv)
	for row := 0; row < blowDomain.Size(); row++ {
		comp.Evaluate(air.NewDomainEvaluator(row, traceCols, preCols, accum))
	}
	compositionEval := accum.Column
	coords := poly.NewSecureColumnByCoords(compositionEval)

	witnessCol, err := pcs.NewColumn(witnessLDE, blowDomain)
	if err != nil {
		return StarkProof{}, err
	}
	columns := map[int]pcs.Column{0: witnessCol}
	for i := 0; i < 4; i++ {
		c, err := pcs.NewColumn(coords.Coords[i], blowDomain)
		if err != nil {
			return StarkProof{}, err
		}
		columns[i+1] = c
	}

	prover := pcs.NewProver(columns, blowDomain, cfg.Hasher, cfg.FRI, cfg.PowBits)
	traceRoot, pcsProof, err := prover.Prove(ch)
	if err != nil {
		return StarkProof{}, fmt.Errorf("stark: pcs prove: %w", err)
	}
	log.Debug().Uint64("pow_nonce", pcsProof.PowNonce).Msg("stark: pcs commit and fri complete")

	witnessAtZ := pcsProof.Samples[0]
	compAtZ := combineSecureSample(pcsProof.Samples[1], pcsProof.Samples[2], pcsProof.Samples[3], pcsProof.Samples[4])

	expectedCompAtZ, err := expectedCompositionAtPoint(comp, pre, smallDomain, logTrace, pcsProof.OODPoint, witnessAtZ, alpha)
	if err != nil {
		return StarkProof{}, err
	}
	if !expectedCompAtZ.Equal(compAtZ) {
		log.Error().Msg("stark: prover sanity check failed, refusing to emit proof")
		return StarkProof{}, ErrConstraintsNotSatisfied
	}

	log.Info().Msg("stark: prove complete")
	return StarkProof{
		PreprocessedRoot: root0,
		TraceRoot:        traceRoot,
		PCSProof:         pcsProof,
	}, nil
}

// expectedCompositionAtPoint re-evaluates the component's constraint at
// the out-of-domain point z using a PointEvaluator fed the preprocessed
// polynomials' own values at z (interpolated from the small domain, since
// preprocessed columns are public and not committed through PCS) and the
// already-sampled trace witness value, multiplying by 1/Z(z) exactly as
// the domain sweep multiplied by 1/V(row) (§4.H item 2, §4.I step 8).
func expectedCompositionAtPoint(comp *air.Component, pre map[string][]field.M31, smallDomain circle.CircleDomain, logTrace uint32, z circle.SecurePoint, witnessAtZ field.QM31, alpha field.QM31) (field.QM31, error) {
	coeffEval, err := poly.NewCircleEvaluation(pre[air.ColCoefficient], smallDomain)
	if err != nil {
		return field.QM31Zero(), err
	}
	expectedEval, err := poly.NewCircleEvaluation(pre[air.ColExpectedProduct], smallDomain)
	if err != nil {
		return field.QM31Zero(), err
	}
	coeffAtZ := coeffEval.Interpolate().EvalAtPoint(z)
	expectedAtZ := expectedEval.Interpolate().EvalAtPoint(z)

	vanishingAtZ := poly.VanishingPoly(logTrace, z)
	vanishingInv := vanishingAtZ.Inv()

	pe := air.NewPointEvaluator([]field.QM31{witnessAtZ}, map[string]field.QM31{
		air.ColCoefficient:     coeffAtZ,
		air.ColExpectedProduct: expectedAtZ,
	}, vanishingInv, alpha)

	comp.Evaluate(pe)
	return pe.Finalize(), nil
}
