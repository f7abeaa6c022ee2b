// Package pcs also ties the Merkle column commitment, the out-of-domain
// mask sample, the DEEP quotient combination and FRI together into one
// commit/open/verify flow, per §4.G and §6.
package pcs

import (
	"fmt"
	"sort"

	"github.com/vybium/circle-stark/internal/circlestark/channel"
	"github.com/vybium/circle-stark/internal/circlestark/circle"
	"github.com/vybium/circle-stark/internal/circlestark/field"
	"github.com/vybium/circle-stark/internal/circlestark/fri"
	"github.com/vybium/circle-stark/internal/circlestark/merkle"
	"github.com/vybium/circle-stark/internal/circlestark/poly"
)

// Column is one committed trace or composition column: its evaluation
// over a circle domain plus the interpolated polynomial used to answer
// out-of-domain samples.
type Column struct {
	Domain circle.CircleDomain
	Eval   poly.CircleEvaluation
	Poly   poly.CirclePoly
}

// NewColumn interpolates values over domain and keeps both forms, since
// the commitment phase needs the evaluation and the opening phase needs
// the polynomial (§4.C, §4.G).
func NewColumn(values []field.M31, domain circle.CircleDomain) (Column, error) {
	ev, err := poly.NewCircleEvaluation(values, domain)
	if err != nil {
		return Column{}, err
	}
	return Column{Domain: domain, Eval: ev, Poly: ev.Interpolate()}, nil
}

// Proof is the wire form of a commitment-scheme opening: the FRI proof
// over the combined quotient, a Merkle opening of the raw trace at every
// FRI query position (so the verifier can recompute the quotient itself
// instead of trusting it), every column's claimed out-of-domain value, and
// the proof-of-work nonce binding the query phase (§6).
type Proof struct {
	OODPoint          circle.SecurePoint
	Samples           []field.QM31
	FRIRoots          [][]byte
	FRIOpening        *fri.Opening
	TraceDecommitment *merkle.Decommitment
	PowNonce          uint64
}

// Prover commits to a fixed set of columns (all sharing one circle domain,
// for simplicity — §4.G's REDESIGN note) and can answer queries against a
// combined DEEP quotient.
type Prover struct {
	columns map[int]Column
	domain  circle.CircleDomain
	hasher  merkle.Hasher
	friCfg  fri.Config
	powBits uint32
}

// NewProver builds a prover over the given columns, all defined on the
// same circle domain.
func NewProver(columns map[int]Column, domain circle.CircleDomain, hasher merkle.Hasher, friCfg fri.Config, powBits uint32) *Prover {
	return &Prover{columns: columns, domain: domain, hasher: hasher, friCfg: friCfg, powBits: powBits}
}

// orderedColumns returns the prover's columns by dense index, never by map
// order, so the column order of the tree commitTrace builds from them —
// and everything the prover and verifier mix from it — is deterministic.
func (p *Prover) orderedColumns() ([]Column, error) {
	out := make([]Column, len(p.columns))
	for i := range out {
		c, ok := p.columns[i]
		if !ok {
			return nil, fmt.Errorf("pcs: column indices must be dense starting at 0, missing %d", i)
		}
		out[i] = c
	}
	return out, nil
}

// commitTrace commits every column's evaluation into one layered Merkle
// tree keyed by the shared domain log-size.
func (p *Prover) commitTrace(cols []Column) (*merkle.Tree, error) {
	values := make([][]field.M31, len(cols))
	for i, c := range cols {
		values[i] = c.Eval.Values
	}
	return merkle.Commit(p.hasher, map[uint32][][]field.M31{p.domain.LogSize(): values})
}

// fridQueryCirclePositions expands each FRI query index (over the
// half-size line domain) into the two circle-domain storage indices whose
// (p, -p) pair it folds, per the bit-reversed adjacency convention the
// whole codebase stores evaluations in (§4.B, §4.F).
func fridQueryCirclePositions(queries []int) []int {
	seen := make(map[int]bool, 2*len(queries))
	positions := make([]int, 0, 2*len(queries))
	for _, q := range queries {
		for _, x := range [2]int{2 * q, 2*q + 1} {
			if !seen[x] {
				seen[x] = true
				positions = append(positions, x)
			}
		}
	}
	sort.Ints(positions)
	return positions
}

// Prove runs the full commit/sample/quotient/FRI flow and returns the
// resulting proof together with the trace commitment root, which the
// caller mixes into the channel alongside any other public commitments.
func (p *Prover) Prove(ch *channel.Channel) (root []byte, proof Proof, err error) {
	cols, err := p.orderedColumns()
	if err != nil {
		return nil, Proof{}, err
	}
	tree, err := p.commitTrace(cols)
	if err != nil {
		return nil, Proof{}, err
	}
	root = tree.Root()
	ch.MixRoot(root)

	oodX := ch.DrawSecureFelt()
	oodY := ch.DrawSecureFelt()
	oodPoint := circle.SecurePoint{X: oodX, Y: oodY}

	n := len(cols)
	values := make([]field.QM31, n)
	perColumn := make(map[int][]PointSample, n)
	for i, c := range cols {
		v := c.Poly.EvalAtPoint(oodPoint)
		values[i] = v
		perColumn[i] = []PointSample{{Point: oodPoint, Value: v}}
		ch.MixFelts([]field.QM31{v})
	}

	batches := NewColumnSampleBatches(perColumn)
	alpha := ch.DrawSecureFelt()
	evalCols := make(ColumnEvaluations, n)
	for i, c := range cols {
		evalCols[i] = c.Eval.Values
	}
	quotient := QuotientEvaluation(batches, evalCols, p.domain, alpha)

	lineDomain := circle.NewLineDomain(p.domain.HalfCoset)
	folded := make([]field.QM31, lineDomain.Size())
	foldAlpha := ch.DrawSecureFelt()
	fri.FoldCircleIntoLine(folded, quotient, p.domain, foldAlpha)

	friProver, err := fri.Commit(p.friCfg, p.hasher, folded, lineDomain, ch)
	if err != nil {
		return nil, Proof{}, err
	}

	nonce := ch.Grind(p.powBits)

	queries := ch.DrawQueryIndices(p.friCfg.NQueries, lineDomain.LogSize())
	friOpening := friProver.Decommit(queries)

	traceDecommitment := tree.Decommit(fridQueryCirclePositions(queries))

	return root, Proof{
		OODPoint:          oodPoint,
		Samples:           values,
		FRIRoots:          friProver.Roots(),
		FRIOpening:        friOpening,
		TraceDecommitment: traceDecommitment,
		PowNonce:          nonce,
	}, nil
}

// Verify recomputes the same DEEP quotient structure from a disclosed
// trace root and the proof's claimed out-of-domain samples, checks the
// trace's own Merkle opening, recomputes the combined quotient at every
// FRI query position from those opened trace values, and cross-checks the
// result against FRI's own first-layer opening before finally checking FRI
// itself proves the quotient is low-degree (§6). Every challenge the
// prover drew is re-derived here from the same channel sequence rather
// than trusted from the proof, including the query positions themselves.
func Verify(columnCount int, domain circle.CircleDomain, hasher merkle.Hasher, friCfg fri.Config, powBits uint32, root []byte, proof Proof, ch *channel.Channel) error {
	ch.MixRoot(root)

	oodX := ch.DrawSecureFelt()
	oodY := ch.DrawSecureFelt()
	wantPoint := circle.SecurePoint{X: oodX, Y: oodY}
	if !wantPoint.X.Equal(proof.OODPoint.X) || !wantPoint.Y.Equal(proof.OODPoint.Y) {
		return fmt.Errorf("pcs: %w: out-of-domain point mismatch", ErrStructureInvalid)
	}

	if len(proof.Samples) != columnCount {
		return fmt.Errorf("pcs: %w: expected %d column samples, got %d", ErrStructureInvalid, columnCount, len(proof.Samples))
	}
	perColumn := make(map[int][]PointSample, columnCount)
	for i := 0; i < columnCount; i++ {
		ch.MixFelts([]field.QM31{proof.Samples[i]})
		perColumn[i] = []PointSample{{Point: proof.OODPoint, Value: proof.Samples[i]}}
	}
	batches := NewColumnSampleBatches(perColumn)

	alpha := ch.DrawSecureFelt()

	lineDomain := circle.NewLineDomain(domain.HalfCoset)
	foldAlpha := ch.DrawSecureFelt()

	// The prover ran its FRI commit phase (layer roots, then the last layer
	// polynomial) before grinding and drawing queries. fri.Verify replays
	// that phase from a copy of the channel taken here; the live channel
	// absorbs the same values now, so the nonce check and the query draw
	// see the digest the prover saw.
	if proof.FRIOpening == nil {
		return fmt.Errorf("pcs: %w: missing fri opening", ErrStructureInvalid)
	}
	friCh := *ch
	fri.DeriveAlphas(proof.FRIRoots, ch)
	ch.MixFelts(proof.FRIOpening.LastLayerPoly.Coeffs())

	if !ch.CheckGrind(powBits, proof.PowNonce) {
		return fmt.Errorf("pcs: %w", ErrProofOfWork)
	}

	queries := ch.DrawQueryIndices(friCfg.NQueries, lineDomain.LogSize())

	tracePositions := fridQueryCirclePositions(queries)
	if err := merkle.Verify(root, hasher, domain.LogSize(), tracePositions, proof.TraceDecommitment); err != nil {
		return fmt.Errorf("pcs: %w: trace commitment: %v", ErrMerkleInvalid, err)
	}

	if err := checkQuotientConsistency(batches, domain, alpha, foldAlpha, columnCount, proof.TraceDecommitment, proof.FRIOpening, queries, lineDomain.LogSize()); err != nil {
		return err
	}

	if err := fri.Verify(friCfg, hasher, lineDomain, proof.FRIRoots, proof.FRIOpening, queries, &friCh); err != nil {
		return fmt.Errorf("pcs: %w: %v", ErrFRIInvalid, err)
	}
	return nil
}

// checkQuotientConsistency recomputes, at every FRI query position, the
// same combined DEEP quotient the prover committed to, purely from the
// trace values the Merkle opening just proved genuine, and checks the
// result against FRI's own disclosed first-layer value at that position.
// This is what turns a tampered trace element into a rejection (§8,
// property 2): FRI alone only proves low-degreeness of whatever codeword
// it was handed, never that the codeword matches the claimed trace.
func checkQuotientConsistency(batches []ColumnSampleBatch, domain circle.CircleDomain, alpha, foldAlpha field.QM31, columnCount int, traceDecommitment *merkle.Decommitment, friOpening *fri.Opening, queries []int, lineLogSize uint32) error {
	if friOpening == nil || len(friOpening.LayerDecommitments) == 0 {
		return fmt.Errorf("pcs: %w: fri opening has no layers", ErrStructureInvalid)
	}
	logSize := domain.LogSize()
	for _, q := range queries {
		col0, err := traceColumnValues(traceDecommitment, 2*q, logSize, columnCount)
		if err != nil {
			return fmt.Errorf("pcs: %w: %v", ErrStructureInvalid, err)
		}
		col1, err := traceColumnValues(traceDecommitment, 2*q+1, logSize, columnCount)
		if err != nil {
			return fmt.Errorf("pcs: %w: %v", ErrStructureInvalid, err)
		}

		q0 := QuotientAtPosition(batches, col0, domain, 2*q, alpha)
		q1 := QuotientAtPosition(batches, col1, domain, 2*q+1, alpha)

		p := domain.At(circle.BitReverseIndex(2*q, logSize))
		f0, f1 := ibutterflyQM31(q0, q1, p.Y.Inv())
		folded := f0.Add(foldAlpha.Mul(f1))

		want, err := fri.LeafValue(friOpening.LayerDecommitments[0], q, lineLogSize)
		if err != nil {
			return fmt.Errorf("pcs: %w: %v", ErrStructureInvalid, err)
		}
		if !want.Equal(folded) {
			return fmt.Errorf("pcs: %w: quotient does not match trace at query %d", ErrOodsNotMatching, q)
		}
	}
	return nil
}

func traceColumnValues(d *merkle.Decommitment, idx int, logSize uint32, columnCount int) (map[int]field.M31, error) {
	leaves, ok := d.LeafValues[idx]
	if !ok {
		return nil, fmt.Errorf("missing trace leaf at index %d", idx)
	}
	vals, ok := leaves[logSize]
	if !ok || len(vals) != columnCount {
		return nil, fmt.Errorf("malformed trace leaf at index %d", idx)
	}
	out := make(map[int]field.M31, columnCount)
	for i, v := range vals {
		out[i] = v
	}
	return out, nil
}

func ibutterflyQM31(v0, v1 field.QM31, itwid field.M31) (field.QM31, field.QM31) {
	return v0.Add(v1), v0.Sub(v1).MulM31(itwid)
}
