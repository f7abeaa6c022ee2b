// Package channel implements the Fiat-Shamir transcript: a ratcheting
// digest that the prover and verifier mix public data into and draw
// challenges from, per §4.E.
package channel

import (
	"encoding/binary"

	"golang.org/x/crypto/sha3"

	"github.com/vybium/circle-stark/internal/circlestark/field"
)

// DigestSize is the transcript digest length in bytes.
const DigestSize = 32

// Channel is a Fiat-Shamir transcript. Every public value the prover
// commits to (roots, OOD values, PoW nonces) is mixed into the digest
// before any verifier challenge derived from it is drawn, so the digest
// that produced a challenge can always be recomputed by re-running the
// same mixes (§4.E).
type Channel struct {
	digest  [DigestSize]byte
	counter uint64
}

// New returns a fresh channel with a zero initial digest.
func New() *Channel {
	return &Channel{}
}

// Digest returns a copy of the current transcript digest.
func (c *Channel) Digest() [DigestSize]byte {
	return c.digest
}

func hash(parts ...[]byte) [DigestSize]byte {
	h := sha3.New256()
	for _, p := range parts {
		h.Write(p)
	}
	var out [DigestSize]byte
	copy(out[:], h.Sum(nil))
	return out
}

// mix folds data into the digest: digest' = H(digest || data). This is the
// single operation every Mix* method reduces to.
func (c *Channel) mix(data []byte) {
	c.digest = hash(c.digest[:], data)
	c.counter = 0
}

// MixU64 mixes a 64-bit value (e.g. a trace length or log-size) into the
// transcript.
func (c *Channel) MixU64(v uint64) {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], v)
	c.mix(buf[:])
}

// MixNonce mixes a proof-of-work nonce into the transcript, the final step
// of a successful grind (§4.E).
func (c *Channel) MixNonce(nonce uint64) {
	c.MixU64(nonce)
}

// MixRoot mixes a Merkle commitment root into the transcript.
func (c *Channel) MixRoot(root []byte) {
	c.mix(root)
}

// MixFelts mixes a sequence of secure-field values (e.g. an OOD mask) into
// the transcript.
func (c *Channel) MixFelts(values []field.QM31) {
	buf := make([]byte, 0, len(values)*16)
	for _, v := range values {
		b := v.Bytes()
		buf = append(buf, b[:]...)
	}
	c.mix(buf)
}

// DrawRandomBytes returns n fresh pseudorandom bytes derived from the
// current digest via an internal counter, then ratchets the digest forward
// so the same bytes can never be drawn twice.
func (c *Channel) DrawRandomBytes(n int) []byte {
	out := make([]byte, 0, n)
	for len(out) < n {
		var ctr [8]byte
		binary.BigEndian.PutUint64(ctr[:], c.counter)
		c.counter++
		block := hash(c.digest[:], ctr[:])
		out = append(out, block[:]...)
	}
	out = out[:n]
	c.digest = hash(c.digest[:], out)
	return out
}

// DrawM31 draws a uniformly random base-field element via rejection
// sampling: a 4-byte candidate is accepted unless it is >= P (§4.E).
func (c *Channel) DrawM31() field.M31 {
	for {
		b := c.DrawRandomBytes(4)
		v := binary.BigEndian.Uint32(b) &^ (1 << 31)
		if v < field.P {
			return field.New(v)
		}
	}
}

// DrawSecureFelt draws a uniformly random secure-field (QM31) challenge,
// the form almost every FRI and DEEP/PCS random coefficient takes (§4.E).
func (c *Channel) DrawSecureFelt() field.QM31 {
	return field.FromPartialEvals(c.DrawM31(), c.DrawM31(), c.DrawM31(), c.DrawM31())
}

// DrawFelts draws n independent secure-field challenges.
func (c *Channel) DrawFelts(n int) []field.QM31 {
	out := make([]field.QM31, n)
	for i := range out {
		out[i] = c.DrawSecureFelt()
	}
	return out
}

// DrawQueryIndices draws n query positions in [0, 2^logSize), without
// rejecting duplicates: the verifier checks the same positions the prover
// committed against, so repeats are harmless, only wasteful (§4.F).
func (c *Channel) DrawQueryIndices(n int, logSize uint32) []int {
	out := make([]int, n)
	mask := uint64(1)<<logSize - 1
	for i := range out {
		b := c.DrawRandomBytes(8)
		v := binary.BigEndian.Uint64(b) & mask
		out[i] = int(v)
	}
	return out
}
