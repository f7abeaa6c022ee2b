package channel

import (
	"encoding/binary"
	"math/bits"
)

// Grind finds the smallest nonce such that hashing it against the current
// digest yields at least powBits leading zero bits, mixes that nonce into
// the transcript, and returns it. This is the channel's proof-of-work step
// (§4.E): it costs the prover 2^powBits work on average and the verifier a
// single recomputation.
func (c *Channel) Grind(powBits uint32) uint64 {
	if powBits == 0 {
		c.MixNonce(0)
		return 0
	}
	for nonce := uint64(0); ; nonce++ {
		if leadingZeroBits(c.powCandidate(nonce)) >= powBits {
			c.MixNonce(nonce)
			return nonce
		}
	}
}

// CheckGrind verifies that nonce satisfies the proof-of-work threshold
// against the digest as it stood before the nonce was mixed in, then mixes
// it, mirroring what Grind does on the prover side.
func (c *Channel) CheckGrind(powBits uint32, nonce uint64) bool {
	ok := powBits == 0 || leadingZeroBits(c.powCandidate(nonce)) >= powBits
	if ok {
		c.MixNonce(nonce)
	}
	return ok
}

func (c *Channel) powCandidate(nonce uint64) [DigestSize]byte {
	var buf [8]byte
	binary.BigEndian.PutUint64(buf[:], nonce)
	return hash(c.digest[:], buf[:])
}

// leadingZeroBits counts the leading zero bits of a digest, treating it as
// a big-endian bit string.
func leadingZeroBits(digest [DigestSize]byte) uint32 {
	var n uint32
	for _, b := range digest {
		if b == 0 {
			n += 8
			continue
		}
		n += uint32(bits.LeadingZeros8(b))
		break
	}
	return n
}
