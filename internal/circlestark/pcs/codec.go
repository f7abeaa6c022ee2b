package pcs

import (
	"bytes"
	"fmt"
	"io"

	"github.com/vybium/circle-stark/internal/circlestark/circle"
	"github.com/vybium/circle-stark/internal/circlestark/field"
	"github.com/vybium/circle-stark/internal/circlestark/fri"
	"github.com/vybium/circle-stark/internal/circlestark/merkle"
)

// Encode appends p's canonical wire form to w, in §6's emission order
// reduced to this package's single combined commitment (see
// stark.StarkProof's doc comment): the out-of-domain point, the claimed
// column samples, the FRI layer roots, the trace's Merkle decommitment,
// the FRI opening, and finally the proof-of-work nonce.
func (p Proof) Encode(w *bytes.Buffer) {
	writeQM31(w, p.OODPoint.X)
	writeQM31(w, p.OODPoint.Y)

	merkle.WriteUint32(w, uint32(len(p.Samples)))
	for _, s := range p.Samples {
		writeQM31(w, s)
	}

	merkle.WriteUint32(w, uint32(len(p.FRIRoots)))
	for _, r := range p.FRIRoots {
		merkle.WriteBytes(w, r)
	}

	p.TraceDecommitment.Encode(w)
	p.FRIOpening.Encode(w)

	merkle.WriteUint64(w, p.PowNonce)
}

// DecodeProof reads a Proof written by Encode.
func DecodeProof(r *bytes.Reader) (Proof, error) {
	oodX, err := readQM31(r)
	if err != nil {
		return Proof{}, err
	}
	oodY, err := readQM31(r)
	if err != nil {
		return Proof{}, err
	}

	numSamples, err := merkle.ReadUint32(r)
	if err != nil {
		return Proof{}, err
	}
	samples := make([]field.QM31, numSamples)
	for i := range samples {
		v, err := readQM31(r)
		if err != nil {
			return Proof{}, err
		}
		samples[i] = v
	}

	numRoots, err := merkle.ReadUint32(r)
	if err != nil {
		return Proof{}, err
	}
	roots := make([][]byte, numRoots)
	for i := range roots {
		b, err := merkle.ReadBytes(r)
		if err != nil {
			return Proof{}, err
		}
		roots[i] = b
	}

	traceDecommitment, err := merkle.DecodeDecommitment(r)
	if err != nil {
		return Proof{}, err
	}
	friOpening, err := fri.DecodeOpening(r)
	if err != nil {
		return Proof{}, err
	}

	nonce, err := merkle.ReadUint64(r)
	if err != nil {
		return Proof{}, err
	}

	return Proof{
		OODPoint:          circle.SecurePoint{X: oodX, Y: oodY},
		Samples:           samples,
		FRIRoots:          roots,
		FRIOpening:        friOpening,
		TraceDecommitment: traceDecommitment,
		PowNonce:          nonce,
	}, nil
}

func writeQM31(w *bytes.Buffer, v field.QM31) {
	b := v.Bytes()
	w.Write(b[:])
}

func readQM31(r *bytes.Reader) (field.QM31, error) {
	var word [16]byte
	if _, err := io.ReadFull(r, word[:]); err != nil {
		return field.QM31{}, fmt.Errorf("pcs: decoding secure-field element: %w", err)
	}
	return field.QM31FromBytes(word), nil
}
