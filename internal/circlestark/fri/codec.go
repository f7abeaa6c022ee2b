package fri

import (
	"bytes"
	"fmt"
	"io"

	"github.com/vybium/circle-stark/internal/circlestark/field"
	"github.com/vybium/circle-stark/internal/circlestark/merkle"
	"github.com/vybium/circle-stark/internal/circlestark/poly"
)

// Encode appends o's canonical wire form to w: one Merkle decommitment per
// committed layer (largest domain first, matching Roots' fold order) and
// the fully-disclosed last layer polynomial, per §6's
// "fri_proof: { ..., inner_layers, last_layer_poly }".
func (o *Opening) Encode(w *bytes.Buffer) {
	merkle.WriteUint32(w, uint32(len(o.LayerDecommitments)))
	for _, d := range o.LayerDecommitments {
		d.Encode(w)
	}

	coeffs := o.LastLayerPoly.Coeffs()
	merkle.WriteUint32(w, uint32(len(coeffs)))
	for _, c := range coeffs {
		b := c.Bytes()
		w.Write(b[:])
	}
}

// DecodeOpening reads an Opening written by Encode.
func DecodeOpening(r *bytes.Reader) (*Opening, error) {
	numLayers, err := merkle.ReadUint32(r)
	if err != nil {
		return nil, err
	}
	layers := make([]*merkle.Decommitment, numLayers)
	for i := range layers {
		d, err := merkle.DecodeDecommitment(r)
		if err != nil {
			return nil, err
		}
		layers[i] = d
	}

	numCoeffs, err := merkle.ReadUint32(r)
	if err != nil {
		return nil, err
	}
	coeffs := make([]field.QM31, numCoeffs)
	for i := range coeffs {
		var word [16]byte
		if _, err := io.ReadFull(r, word[:]); err != nil {
			return nil, fmt.Errorf("fri: decoding last layer coefficient: %w", err)
		}
		coeffs[i] = field.QM31FromBytes(word)
	}

	return &Opening{LayerDecommitments: layers, LastLayerPoly: poly.NewLinePoly(coeffs)}, nil
}
