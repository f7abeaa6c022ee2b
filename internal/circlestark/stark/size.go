package stark

import (
	"github.com/vybium/circle-stark/internal/circlestark/field"
	"github.com/vybium/circle-stark/internal/circlestark/merkle"
)

// SizeEstimate breaks a StarkProof's wire size down by category, per §6's
// "Size-estimate API exposes breakdowns" contract.
type SizeEstimate struct {
	OODSSamples        int
	QueriesValues      int
	FRISamples         int
	FRIDecommitments   int
	TraceDecommitments int
}

// Total sums every category into the proof's full estimated byte size.
func (s SizeEstimate) Total() int {
	return s.OODSSamples + s.QueriesValues + s.FRISamples + s.FRIDecommitments + s.TraceDecommitments
}

const qm31Bytes = 4 * 4 // field.QM31.Bytes() length
const m31Bytes = 4      // field.M31.Bytes() length
const digestBytes = 32  // every wired Hasher backend's Size()

// EstimateSize computes proof.EstimateSize(hasher)'s byte breakdown:
// hasher must be the same Hasher the proof was produced with, since the
// decommitment categories scale with its digest size (§6).
func (proof StarkProof) EstimateSize(hasher merkle.Hasher) SizeEstimate {
	digest := hasher.Size()
	if digest == 0 {
		digest = digestBytes
	}

	var est SizeEstimate
	est.OODSSamples = len(proof.PCSProof.Samples) * qm31Bytes

	if td := proof.PCSProof.TraceDecommitment; td != nil {
		est.QueriesValues += countM31(td.LeafValues) * m31Bytes
		est.TraceDecommitments += countSiblings(td.Siblings) * digest
	}

	if opening := proof.PCSProof.FRIOpening; opening != nil {
		for _, d := range opening.LayerDecommitments {
			est.FRISamples += countM31(d.LeafValues) * m31Bytes
			est.FRIDecommitments += countSiblings(d.Siblings) * digest
		}
		est.FRISamples += len(opening.LastLayerPoly.Coeffs()) * qm31Bytes
	}

	return est
}

func countM31(leafValues map[int]map[uint32][]field.M31) int {
	n := 0
	for _, byLog := range leafValues {
		for _, vals := range byLog {
			n += len(vals)
		}
	}
	return n
}

func countSiblings(siblings map[int][][]byte) int {
	n := 0
	for _, per := range siblings {
		n += len(per)
	}
	return n
}
