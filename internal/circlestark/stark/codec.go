package stark

import (
	"bytes"
	"fmt"

	"github.com/vybium/circle-stark/internal/circlestark/merkle"
	"github.com/vybium/circle-stark/internal/circlestark/pcs"
)

// Encode returns proof's canonical binary wire form: the preprocessed and
// trace commitments followed by the PCS proof tying everything else
// together, per §6's "Proof wire format". Decode(proof.Encode()) must
// equal proof exactly — this is §8's "serializing then deserializing a
// proof is the identity" and the byte-flip rejection property both rely
// on a stable, field-ordered encoding rather than Go's map iteration
// order or gob's type-reflection format.
func (proof StarkProof) Encode() []byte {
	var w bytes.Buffer
	merkle.WriteBytes(&w, proof.PreprocessedRoot)
	merkle.WriteBytes(&w, proof.TraceRoot)
	proof.PCSProof.Encode(&w)
	return w.Bytes()
}

// Decode reconstructs a StarkProof from the bytes Encode produced. Any
// truncation or corruption that breaks a length prefix or overruns the
// buffer is reported as ErrInvalidStructure rather than a raw decoding
// error, matching how Verify itself reports a malformed proof.
func Decode(data []byte) (StarkProof, error) {
	r := bytes.NewReader(data)

	preprocessedRoot, err := merkle.ReadBytes(r)
	if err != nil {
		return StarkProof{}, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}
	traceRoot, err := merkle.ReadBytes(r)
	if err != nil {
		return StarkProof{}, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}
	pcsProof, err := pcs.DecodeProof(r)
	if err != nil {
		return StarkProof{}, fmt.Errorf("%w: %v", ErrInvalidStructure, err)
	}
	if r.Len() != 0 {
		return StarkProof{}, fmt.Errorf("%w: %d trailing bytes after decoding", ErrInvalidStructure, r.Len())
	}

	return StarkProof{
		PreprocessedRoot: preprocessedRoot,
		TraceRoot:        traceRoot,
		PCSProof:         pcsProof,
	}, nil
}
