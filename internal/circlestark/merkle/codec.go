package merkle

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sort"

	"github.com/vybium/circle-stark/internal/circlestark/field"
)

// Encode appends d's canonical wire form to w: the queried indices in
// ascending order, each followed by its sibling hashes (finest layer
// first) and its per-log-size injected column values, per §6's
// "decommitments: Tree<MerkleDecommitment>". Encoding in sorted key order
// rather than map iteration order is what makes Encode/Decode a true
// identity — map order is not stable across runs.
func (d *Decommitment) Encode(w *bytes.Buffer) {
	queries := make([]int, 0, len(d.LeafValues))
	for q := range d.LeafValues {
		queries = append(queries, q)
	}
	sort.Ints(queries)

	WriteUint32(w, uint32(len(queries)))
	for _, q := range queries {
		WriteUint64(w, uint64(q))

		siblings := d.Siblings[q]
		WriteUint32(w, uint32(len(siblings)))
		for _, s := range siblings {
			WriteBytes(w, s)
		}

		logSizes := make([]uint32, 0, len(d.LeafValues[q]))
		for ls := range d.LeafValues[q] {
			logSizes = append(logSizes, ls)
		}
		sort.Slice(logSizes, func(i, j int) bool { return logSizes[i] < logSizes[j] })

		WriteUint32(w, uint32(len(logSizes)))
		for _, ls := range logSizes {
			WriteUint32(w, ls)
			vals := d.LeafValues[q][ls]
			WriteUint32(w, uint32(len(vals)))
			for _, v := range vals {
				b := v.Bytes()
				w.Write(b[:])
			}
		}
	}
}

// DecodeDecommitment reads a Decommitment written by Encode.
func DecodeDecommitment(r *bytes.Reader) (*Decommitment, error) {
	numQueries, err := ReadUint32(r)
	if err != nil {
		return nil, err
	}
	d := &Decommitment{
		Siblings:   make(map[int][][]byte, numQueries),
		LeafValues: make(map[int]map[uint32][]field.M31, numQueries),
	}
	for i := uint32(0); i < numQueries; i++ {
		q64, err := ReadUint64(r)
		if err != nil {
			return nil, err
		}
		q := int(q64)

		numSiblings, err := ReadUint32(r)
		if err != nil {
			return nil, err
		}
		siblings := make([][]byte, numSiblings)
		for s := range siblings {
			b, err := ReadBytes(r)
			if err != nil {
				return nil, err
			}
			siblings[s] = b
		}
		d.Siblings[q] = siblings

		numLayers, err := ReadUint32(r)
		if err != nil {
			return nil, err
		}
		d.LeafValues[q] = make(map[uint32][]field.M31, numLayers)
		for l := uint32(0); l < numLayers; l++ {
			logSize, err := ReadUint32(r)
			if err != nil {
				return nil, err
			}
			numVals, err := ReadUint32(r)
			if err != nil {
				return nil, err
			}
			vals := make([]field.M31, numVals)
			for v := range vals {
				var word [4]byte
				if _, err := io.ReadFull(r, word[:]); err != nil {
					return nil, fmt.Errorf("merkle: decoding leaf value: %w", err)
				}
				vals[v] = field.FromBytes(word)
			}
			d.LeafValues[q][logSize] = vals
		}
	}
	return d, nil
}

// WriteUint32 appends v to w as 4 little-endian bytes. Exported so the
// fri/pcs/stark wire codecs built on top of a Merkle decommitment's
// encoding share one little-endian convention instead of each rolling
// their own.
func WriteUint32(w *bytes.Buffer, v uint32) {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	w.Write(b[:])
}

// WriteUint64 appends v to w as 8 little-endian bytes.
func WriteUint64(w *bytes.Buffer, v uint64) {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	w.Write(b[:])
}

// WriteBytes appends b to w as a length prefix followed by its bytes.
func WriteBytes(w *bytes.Buffer, b []byte) {
	WriteUint32(w, uint32(len(b)))
	w.Write(b)
}

// ReadUint32 is the inverse of WriteUint32.
func ReadUint32(r *bytes.Reader) (uint32, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, fmt.Errorf("merkle: short read decoding uint32: %w", err)
	}
	return binary.LittleEndian.Uint32(b[:]), nil
}

// ReadUint64 is the inverse of WriteUint64.
func ReadUint64(r *bytes.Reader) (uint64, error) {
	var b [8]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return 0, fmt.Errorf("merkle: short read decoding uint64: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// ReadBytes is the inverse of WriteBytes.
func ReadBytes(r *bytes.Reader) ([]byte, error) {
	n, err := ReadUint32(r)
	if err != nil {
		return nil, err
	}
	b := make([]byte, n)
	if n > 0 {
		if _, err := io.ReadFull(r, b); err != nil {
			return nil, fmt.Errorf("merkle: short read decoding bytes: %w", err)
		}
	}
	return b, nil
}
