package fri

import (
	"github.com/rs/zerolog/log"

	"github.com/vybium/circle-stark/internal/circlestark/channel"
	"github.com/vybium/circle-stark/internal/circlestark/circle"
	"github.com/vybium/circle-stark/internal/circlestark/field"
	"github.com/vybium/circle-stark/internal/circlestark/merkle"
	"github.com/vybium/circle-stark/internal/circlestark/poly"
)

// layer is one committed step of the fold chain: the evaluation that was
// committed, the domain it lives over, and the Merkle tree opened against
// it.
type layer struct {
	domain circle.LineDomain
	values []field.QM31
	tree   *merkle.Tree
}

// Prover runs the FRI commit phase: repeatedly folding a line evaluation in
// half, committing each intermediate layer, until reaching the configured
// last-layer degree bound (§4.F). Callers that start from a circle-domain
// evaluation fold it down to a line evaluation with FoldCircleIntoLine
// before calling Commit.
type Prover struct {
	cfg       Config
	hasher    merkle.Hasher
	layers    []layer
	lastLayer poly.LinePoly
}

// Commit runs the fold-and-commit phase and returns a Prover ready to
// answer queries.
func Commit(cfg Config, hasher merkle.Hasher, values []field.QM31, domain circle.LineDomain, ch *channel.Channel) (*Prover, error) {
	if len(values) == 0 {
		return nil, ErrNoColumns
	}
	if _, err := poly.NewLineEvaluation(values, domain); err != nil {
		return nil, err
	}

	p := &Prover{cfg: cfg, hasher: hasher}
	for domain.LogSize() > cfg.LogLastLayerDegreeBound {
		cols := poly.NewSecureColumnByCoords(values).Coords
		colSlices := make([][]field.M31, 4)
		for i := range cols {
			colSlices[i] = cols[i]
		}
		tree, err := merkle.Commit(hasher, map[uint32][][]field.M31{domain.LogSize(): colSlices})
		if err != nil {
			return nil, err
		}
		ch.MixRoot(tree.Root())
		p.layers = append(p.layers, layer{domain: domain, values: values, tree: tree})
		log.Debug().Uint32("log_size", domain.LogSize()).Int("layer", len(p.layers)-1).Msg("fri: committed layer")

		alpha := ch.DrawSecureFelt()
		domain, values = FoldLine(values, domain, alpha)
	}

	lastEval, err := poly.NewLineEvaluation(values, domain)
	if err != nil {
		return nil, err
	}
	p.lastLayer = lastEval.Interpolate()
	ch.MixFelts(p.lastLayer.Coeffs())
	log.Debug().Int("layers", len(p.layers)).Msg("fri: commit phase complete")
	return p, nil
}

// Roots returns every committed layer's Merkle root, in fold order.
func (p *Prover) Roots() [][]byte {
	roots := make([][]byte, len(p.layers))
	for i, l := range p.layers {
		roots[i] = l.tree.Root()
	}
	return roots
}

// LastLayerPoly returns the fully-disclosed final polynomial.
func (p *Prover) LastLayerPoly() poly.LinePoly {
	return p.lastLayer
}

// Opening is the query-phase proof: one Merkle decommitment per layer,
// each covering both indices of every folded pair the verifier needs to
// recompute, plus the disclosed last layer polynomial (§4.F, §6).
type Opening struct {
	LayerDecommitments []*merkle.Decommitment
	LastLayerPoly      poly.LinePoly
}

// Decommit opens every committed layer at the positions needed to verify
// the given first-layer query indices fold consistently all the way down.
func (p *Prover) Decommit(queries []int) *Opening {
	o := &Opening{LastLayerPoly: p.lastLayer}
	r := append([]int(nil), queries...)
	for _, l := range p.layers {
		qs := make([]int, 0, len(r)*2)
		for _, idx := range r {
			qs = append(qs, idx, idx^1)
		}
		o.LayerDecommitments = append(o.LayerDecommitments, l.tree.Decommit(qs))
		for i := range r {
			r[i] = r[i] >> 1
		}
	}
	return o
}
