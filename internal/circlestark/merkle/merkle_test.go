package merkle

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vybium/circle-stark/internal/circlestark/field"
)

func columnOfSize(n int, seed uint32) []field.M31 {
	col := make([]field.M31, n)
	for i := range col {
		col[i] = field.New(uint32(i)*31 + seed)
	}
	return col
}

func TestCommitDecommitVerifyRoundTrip(t *testing.T) {
	for _, hasher := range []Hasher{NewSHA3Hasher(), NewBlake2sHasher(), NewBlake3Hasher(), NewSHA256Hasher(), NewPoseidonHasher()} {
		cols := map[uint32][][]field.M31{
			3: {columnOfSize(8, 1), columnOfSize(8, 2)},
			2: {columnOfSize(4, 3)},
			0: {columnOfSize(1, 9)},
		}
		tree, err := Commit(hasher, cols)
		require.NoError(t, err)

		queries := []int{0, 3, 7}
		d := tree.Decommit(queries)
		require.NoError(t, Verify(tree.Root(), hasher, tree.MaxLogSize(), queries, d))
	}
}

func TestVerifyRejectsTamperedRoot(t *testing.T) {
	hasher := NewSHA3Hasher()
	cols := map[uint32][][]field.M31{2: {columnOfSize(4, 5)}}
	tree, err := Commit(hasher, cols)
	require.NoError(t, err)

	queries := []int{1}
	d := tree.Decommit(queries)
	badRoot := append([]byte(nil), tree.Root()...)
	badRoot[0] ^= 0xff
	require.ErrorIs(t, Verify(badRoot, hasher, tree.MaxLogSize(), queries, d), ErrRootMismatch)
}

func TestVerifyRejectsMissingValues(t *testing.T) {
	hasher := NewSHA3Hasher()
	cols := map[uint32][][]field.M31{1: {columnOfSize(2, 5)}}
	tree, err := Commit(hasher, cols)
	require.NoError(t, err)

	d := tree.Decommit([]int{1})
	require.ErrorIs(t, Verify(tree.Root(), hasher, tree.MaxLogSize(), []int{0}, d), ErrMissingQueriedValues)
}

func TestCommitRejectsEmpty(t *testing.T) {
	_, err := Commit(NewSHA3Hasher(), nil)
	require.ErrorIs(t, err, ErrNoColumns)
}

func TestPoseidonHasherIsDeterministicAndPositionSensitive(t *testing.T) {
	h := NewPoseidonHasher()
	left := []byte("left-child-digest-000000000000")
	right := []byte("right-child-digest-00000000000")
	cols := [][]byte{{1, 2, 3, 4}, {5, 6, 7, 8}}

	a := h.HashNode(left, right, cols)
	b := h.HashNode(left, right, cols)
	require.Equal(t, a, b)
	require.Len(t, a, h.Size())

	swapped := h.HashNode(right, left, cols)
	require.NotEqual(t, a, swapped)

	leaf := h.HashNode(nil, nil, cols)
	require.NotEqual(t, a, leaf)
}
