package merkle

import (
	"github.com/vybium/circle-stark/internal/circlestark/field"
)

// Tree is the prover side of a layered Merkle commitment: one layer per
// log-size from 0 up to the maximum column log-size, where a layer's nodes
// hash their two children (if any) together with every column injected at
// that exact log-size (§4.D).
type Tree struct {
	hasher     Hasher
	maxLog     uint32
	columns    map[uint32][][]field.M31 // logSize -> columns, each of length 2^logSize
	layers     map[uint32][][]byte      // logSize -> node hashes, length 2^logSize
}

// Commit builds a layered Merkle tree over columns grouped by log-size.
// Every column within a group must have length 2^logSize.
func Commit(hasher Hasher, columnsByLogSize map[uint32][][]field.M31) (*Tree, error) {
	if len(columnsByLogSize) == 0 {
		return nil, ErrNoColumns
	}
	var maxLog uint32
	for logSize := range columnsByLogSize {
		if logSize > maxLog {
			maxLog = logSize
		}
	}

	t := &Tree{hasher: hasher, maxLog: maxLog, columns: columnsByLogSize, layers: make(map[uint32][][]byte)}

	for logSize := int(maxLog); logSize >= 0; logSize-- {
		ls := uint32(logSize)
		n := 1 << ls
		layer := make([][]byte, n)
		cols := columnsByLogSize[ls]
		var children [][]byte
		if ls < maxLog {
			children = t.layers[ls+1]
		}
		for i := 0; i < n; i++ {
			vals := make([]field.M31, len(cols))
			for c, col := range cols {
				vals[c] = col[i]
			}
			var left, right []byte
			if children != nil {
				left, right = children[2*i], children[2*i+1]
			}
			layer[i] = hasher.HashNode(left, right, columnBytes(vals))
		}
		t.layers[ls] = layer
	}
	return t, nil
}

// Root returns the commitment's root hash.
func (t *Tree) Root() []byte {
	return t.layers[0][0]
}

// MaxLogSize returns the tree's largest column log-size, the depth of its
// authentication paths.
func (t *Tree) MaxLogSize() uint32 { return t.maxLog }

// Decommitment carries, for each queried leaf index (at the tree's maximum
// log-size), the sibling hash and injected column values needed to
// recompute the root at every layer along that leaf's path.
type Decommitment struct {
	// Siblings[q] holds one sibling hash per layer, ordered from the
	// finest (maxLog) layer up to layer 1.
	Siblings map[int][][]byte
	// LeafValues[q][logSize] holds the column values injected at that
	// layer, at the index q>>(maxLog-logSize).
	LeafValues map[int]map[uint32][]field.M31
}

// Decommit opens the tree at the given leaf indices (indices at the tree's
// maximum log-size).
func (t *Tree) Decommit(queries []int) *Decommitment {
	d := &Decommitment{
		Siblings:   make(map[int][][]byte),
		LeafValues: make(map[int]map[uint32][]field.M31),
	}
	for _, q := range queries {
		siblings := make([][]byte, 0, t.maxLog)
		idx := q
		for logSize := int(t.maxLog); logSize >= 0; logSize-- {
			ls := uint32(logSize)
			if d.LeafValues[q] == nil {
				d.LeafValues[q] = make(map[uint32][]field.M31)
			}
			cols := t.columns[ls]
			vals := make([]field.M31, len(cols))
			for c, col := range cols {
				vals[c] = col[idx]
			}
			d.LeafValues[q][ls] = vals
			if logSize > 0 {
				sibling := idx ^ 1
				siblings = append(siblings, t.layers[ls][sibling])
				idx /= 2
			}
		}
		d.Siblings[q] = siblings
	}
	return d
}
