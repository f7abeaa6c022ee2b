// Package merkle implements the vector-commitment layer: a layered Merkle
// tree over columns of possibly differing log-sizes, committed and opened
// through a pluggable MerkleHasher, per §4.D.
package merkle

import (
	"crypto/sha256"

	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"

	"github.com/vybium/circle-stark/internal/circlestark/field"
)

// Hasher is the pluggable hash function a Merkle tree is built over. A
// node's hash is a function of its two children's hashes (absent at leaf
// layers) and the raw bytes of every column value injected at that node's
// layer, matching stwo's "hash_node(children, column_values)" contract.
type Hasher interface {
	HashNode(left, right []byte, columnValues [][]byte) []byte
	// Size returns the digest length in bytes.
	Size() int
}

// columnBytes serializes a layer's worth of column values (one M31 value
// per column at a given node index) into the flat byte slices HashNode
// expects.
func columnBytes(values []field.M31) [][]byte {
	out := make([][]byte, len(values))
	for i, v := range values {
		b := v.Bytes()
		out[i] = b[:]
	}
	return out
}

// sha3Hasher uses SHA3-256, the default digest throughout the rest of the
// ambient stack (channel digesting, error-independent hashing).
type sha3Hasher struct{}

// NewSHA3Hasher returns the default Merkle hasher.
func NewSHA3Hasher() Hasher { return sha3Hasher{} }

func (sha3Hasher) Size() int { return 32 }

func (sha3Hasher) HashNode(left, right []byte, columnValues [][]byte) []byte {
	h := sha3.New256()
	if left != nil {
		h.Write(left)
		h.Write(right)
	}
	for _, v := range columnValues {
		h.Write(v)
	}
	return h.Sum(nil)
}

// blake2sHasher is a second pluggable backend, used where a smaller-state
// hash is preferred.
type blake2sHasher struct{}

// NewBlake2sHasher returns a Merkle hasher backed by BLAKE2s-256.
func NewBlake2sHasher() Hasher { return blake2sHasher{} }

func (blake2sHasher) Size() int { return 32 }

func (blake2sHasher) HashNode(left, right []byte, columnValues [][]byte) []byte {
	h, err := blake2s.New256(nil)
	if err != nil {
		panic(err) // New256 only errors on an oversized key, which we never pass
	}
	if left != nil {
		h.Write(left)
		h.Write(right)
	}
	for _, v := range columnValues {
		h.Write(v)
	}
	return h.Sum(nil)
}

// blake3Hasher is a third pluggable backend, favored for its wide SIMD
// throughput on long column batches.
type blake3Hasher struct{}

// NewBlake3Hasher returns a Merkle hasher backed by BLAKE3.
func NewBlake3Hasher() Hasher { return blake3Hasher{} }

func (blake3Hasher) Size() int { return 32 }

func (blake3Hasher) HashNode(left, right []byte, columnValues [][]byte) []byte {
	h := blake3.New()
	if left != nil {
		h.Write(left)
		h.Write(right)
	}
	for _, v := range columnValues {
		h.Write(v)
	}
	sum := h.Sum(nil)
	return sum[:32]
}

// sha256Hasher is a fourth, dependency-free fallback digest.
type sha256Hasher struct{}

// NewSHA256Hasher returns a Merkle hasher backed by SHA-256.
func NewSHA256Hasher() Hasher { return sha256Hasher{} }

func (sha256Hasher) Size() int { return 32 }

func (sha256Hasher) HashNode(left, right []byte, columnValues [][]byte) []byte {
	h := sha256.New()
	if left != nil {
		h.Write(left)
		h.Write(right)
	}
	for _, v := range columnValues {
		h.Write(v)
	}
	return h.Sum(nil)
}
