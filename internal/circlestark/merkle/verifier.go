package merkle

import (
	"bytes"
	"fmt"
)

// Verify recomputes the root from a decommitment's queried leaf values and
// sibling hashes, returning an error if they fail to reproduce root, or if
// the witness is the wrong shape (§4.D, §6 error taxonomy).
func Verify(root []byte, hasher Hasher, maxLog uint32, queries []int, d *Decommitment) error {
	for _, q := range queries {
		leaves, ok := d.LeafValues[q]
		if !ok {
			return fmt.Errorf("%w: query %d", ErrMissingQueriedValues, q)
		}
		siblings, ok := d.Siblings[q]
		if !ok && maxLog > 0 {
			return fmt.Errorf("%w: query %d", ErrWitnessTooShort, q)
		}
		if len(siblings) < int(maxLog) {
			return fmt.Errorf("%w: query %d has %d siblings, want %d", ErrWitnessTooShort, q, len(siblings), maxLog)
		}
		if len(siblings) > int(maxLog) {
			return fmt.Errorf("%w: query %d has %d siblings, want %d", ErrWitnessTooLong, q, len(siblings), maxLog)
		}

		idx := q
		cur := hasher.HashNode(nil, nil, columnBytes(leaves[maxLog]))
		for logSize := int(maxLog); logSize > 0; logSize-- {
			sibling := siblings[int(maxLog)-logSize]
			var left, right []byte
			if idx%2 == 0 {
				left, right = cur, sibling
			} else {
				left, right = sibling, cur
			}
			idx /= 2
			ls := uint32(logSize - 1)
			vals, ok := leaves[ls]
			if !ok {
				return fmt.Errorf("%w: query %d missing values at log-size %d", ErrMissingQueriedValues, q, ls)
			}
			cur = hasher.HashNode(left, right, columnBytes(vals))
		}
		if !bytes.Equal(cur, root) {
			return fmt.Errorf("%w: query %d", ErrRootMismatch, q)
		}
	}
	return nil
}

