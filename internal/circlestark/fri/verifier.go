package fri

import (
	"fmt"

	"github.com/vybium/circle-stark/internal/circlestark/channel"
	"github.com/vybium/circle-stark/internal/circlestark/circle"
	"github.com/vybium/circle-stark/internal/circlestark/field"
	"github.com/vybium/circle-stark/internal/circlestark/merkle"
	"github.com/vybium/circle-stark/internal/circlestark/poly"
)

// Verify checks a FRI opening: every committed layer's Merkle decommitment
// is valid, every folded pair is consistent with the next layer's claimed
// value (or, for the last layer, with the disclosed polynomial), and the
// last layer polynomial respects the configured degree bound (§4.F, §6).
// The channel must be freshly positioned at the point the prover started
// its FRI commit phase, so the alphas it draws here match the prover's.
func Verify(cfg Config, hasher merkle.Hasher, initialDomain circle.LineDomain, roots [][]byte, opening *Opening, queries []int, ch *channel.Channel) error {
	if len(roots) != len(opening.LayerDecommitments) {
		return fmt.Errorf("%w: %d roots, %d layer decommitments", ErrInvalidNumLayers, len(roots), len(opening.LayerDecommitments))
	}
	if want := expectedNumLayers(cfg, initialDomain); len(roots) != want {
		return fmt.Errorf("%w: got %d layers, want %d", ErrInvalidNumLayers, len(roots), want)
	}
	if err := checkLastLayerDegree(cfg, opening.LastLayerPoly); err != nil {
		return err
	}

	alphas := DeriveAlphas(roots, ch)
	ch.MixFelts(opening.LastLayerPoly.Coeffs())
	return CheckFolds(cfg, hasher, initialDomain, roots, alphas, opening, queries)
}

// DeriveAlphas mixes every layer root into ch, in fold order, drawing the
// per-layer folding coefficient after each one. Callers that embed FRI
// inside a larger transcript (§4.G's commitment scheme) call this
// directly so they can interleave their own proof-of-work and query
// derivation at the exact point a standalone Verify would, instead of
// through Verify's all-in-one sequencing.
func DeriveAlphas(roots [][]byte, ch *channel.Channel) []field.QM31 {
	alphas := make([]field.QM31, len(roots))
	for i, root := range roots {
		ch.MixRoot(root)
		alphas[i] = ch.DrawSecureFelt()
	}
	return alphas
}

// CheckFolds verifies every committed layer's Merkle decommitment and
// fold consistency given pre-derived per-layer alphas, without touching
// the channel itself.
func CheckFolds(cfg Config, hasher merkle.Hasher, initialDomain circle.LineDomain, roots [][]byte, alphas []field.QM31, opening *Opening, queries []int) error {
	domain := initialDomain
	r := append([]int(nil), queries...)
	claimed := make(map[int]field.QM31)

	for layerIdx, root := range roots {
		d := opening.LayerDecommitments[layerIdx]
		maxLog := domain.LogSize()
		errTag := ErrInnerLayerCommitmentInvalid
		if layerIdx == 0 {
			errTag = ErrFirstLayerCommitmentInvalid
		}

		qs := make([]int, 0, len(r)*2)
		for _, idx := range r {
			qs = append(qs, idx, idx^1)
		}
		if err := merkle.Verify(root, hasher, maxLog, qs, d); err != nil {
			return fmt.Errorf("%w: %v", errTag, err)
		}

		next := make(map[int]field.QM31)
		for _, idx := range r {
			v0, err := leafValue(d, idx, maxLog)
			if err != nil {
				return fmt.Errorf("%w: %v", errTag, err)
			}
			v1, err := leafValue(d, idx^1, maxLog)
			if err != nil {
				return fmt.Errorf("%w: %v", errTag, err)
			}
			if prior, ok := claimed[idx]; ok && !prior.Equal(v0) {
				return fmt.Errorf("%w: layer %d index %d", ErrInnerLayerEvaluationsInvalid, layerIdx, idx)
			}
			if prior, ok := claimed[idx^1]; ok && !prior.Equal(v1) {
				return fmt.Errorf("%w: layer %d index %d", ErrInnerLayerEvaluationsInvalid, layerIdx, idx^1)
			}
			x := domain.At(circle.BitReverseIndex((idx/2)<<FoldStep, maxLog))
			f0, f1 := ibutterfly(v0, v1, x.Inv())
			next[idx/2] = f0.Add(alphas[layerIdx].Mul(f1))
		}
		claimed = next
		domain = domain.Double()
	}

	for idx, v := range claimed {
		x := domain.At(circle.BitReverseIndex(idx, domain.LogSize()))
		want := opening.LastLayerPoly.EvalAtPoint(field.FromM31(x))
		if !want.Equal(v) {
			return fmt.Errorf("%w: index %d", ErrLastLayerEvaluationsInvalid, idx)
		}
	}
	return nil
}

func leafValue(d *merkle.Decommitment, idx int, logSize uint32) (field.QM31, error) {
	return LeafValue(d, idx, logSize)
}

// LeafValue reconstructs the secure-field value committed at storage index
// idx of a decommitment's logSize layer. Exported so callers embedding FRI
// inside a larger commitment scheme (§4.G's PCS) can read the first layer's
// opened values directly, to check them against an independently
// recomputed quotient instead of trusting the FRI proof alone for that
// linkage.
func LeafValue(d *merkle.Decommitment, idx int, logSize uint32) (field.QM31, error) {
	leaves, ok := d.LeafValues[idx]
	if !ok {
		return field.QM31Zero(), fmt.Errorf("missing leaf values for index %d", idx)
	}
	vals, ok := leaves[logSize]
	if !ok || len(vals) != 4 {
		return field.QM31Zero(), fmt.Errorf("malformed leaf values for index %d", idx)
	}
	return field.CombineEF([4]field.M31{vals[0], vals[1], vals[2], vals[3]}), nil
}

// expectedNumLayers recomputes, from trusted inputs alone, the number of
// commit-phase folds Prover.Commit must have run: domain.LogSize() halves
// once per layer until it no longer exceeds cfg.LogLastLayerDegreeBound,
// the same terminating condition prover.go's commit loop uses. A proof
// whose roots/layer-decommitment count disagrees with this is rejected
// even when both fields were kept in lockstep by a dishonest prover.
func expectedNumLayers(cfg Config, initialDomain circle.LineDomain) int {
	logSize := int(initialDomain.LogSize())
	bound := int(cfg.LogLastLayerDegreeBound)
	if logSize <= bound {
		return 0
	}
	return logSize - bound
}

func checkLastLayerDegree(cfg Config, lastLayer poly.LinePoly) error {
	want := 1 << cfg.LogLastLayerDegreeBound
	if len(lastLayer.Coeffs()) != want {
		return fmt.Errorf("%w: got %d coefficients, want %d", ErrLastLayerDegreeInvalid, len(lastLayer.Coeffs()), want)
	}
	return nil
}
