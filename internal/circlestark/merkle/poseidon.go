package merkle

import (
	"golang.org/x/crypto/sha3"

	"github.com/vybium/circle-stark/internal/circlestark/field"
)

// poseidonWidth/poseidonRate/poseidonFullRounds/poseidonPartialRounds are
// the reduced, M31-native sponge parameters this backend uses in place of
// the teacher's 256-bit EnhancedPoseidonHash (core/poseidon_enhanced.go):
// width 8 (rate 4, capacity 4), x^5 S-box (gcd(5, P-1)=1 so it is a
// bijection over F_p), 8 full rounds and 22 partial rounds, the same
// full/partial split the teacher's GetDefaultPoseidonParameters picks for
// its smallest width-3 configuration.
const (
	poseidonWidth         = 8
	poseidonRate          = 4
	poseidonFullRounds    = 8
	poseidonPartialRounds = 22
)

// poseidonConstants holds the round constants and MDS matrix generated
// once at package init, mirroring the teacher's generateRoundConstants/
// generateMDSMatrix split (core/poseidon_enhanced.go) but replacing the
// Grain LFSR with a simpler deterministic SHAKE expansion, since this
// backend targets F_p (p=2^31-1) rather than a 256-bit curve field and
// does not need to match any external Poseidon instantiation.
var poseidonConstants = generatePoseidonConstants()

type poseidonParams struct {
	roundConstants [][poseidonWidth]field.M31
	mds            [poseidonWidth][poseidonWidth]field.M31
}

func generatePoseidonConstants() poseidonParams {
	totalRounds := poseidonFullRounds + poseidonPartialRounds

	shake := sha3.NewShake256()
	shake.Write([]byte("circle-stark/poseidon-m31/round-constants"))
	var p poseidonParams
	p.roundConstants = make([][poseidonWidth]field.M31, totalRounds)
	buf := make([]byte, 4)
	for r := 0; r < totalRounds; r++ {
		for i := 0; i < poseidonWidth; i++ {
			shake.Read(buf)
			v := uint32(buf[0]) | uint32(buf[1])<<8 | uint32(buf[2])<<16 | uint32(buf[3])<<24
			p.roundConstants[r][i] = field.New(v)
		}
	}

	// Cauchy MDS matrix: mds[i][j] = 1/(x_i + y_j), x_i = i, y_j = width+j,
	// which is always invertible and never divides by zero since
	// x_i + y_j = i + width + j > 0 for i, j in [0, width).
	for i := 0; i < poseidonWidth; i++ {
		for j := 0; j < poseidonWidth; j++ {
			xi := field.New(uint32(i))
			yj := field.New(uint32(poseidonWidth + j))
			p.mds[i][j] = xi.Add(yj).Inv()
		}
	}
	return p
}

func poseidonPermute(state [poseidonWidth]field.M31) [poseidonWidth]field.M31 {
	halfFull := poseidonFullRounds / 2
	round := 0

	applyFull := func() {
		rc := poseidonConstants.roundConstants[round]
		round++
		for i := range state {
			state[i] = state[i].Add(rc[i]).Pow(5)
		}
		state = applyMDS(state)
	}
	applyPartial := func() {
		rc := poseidonConstants.roundConstants[round]
		round++
		for i := range state {
			state[i] = state[i].Add(rc[i])
		}
		state[0] = state[0].Pow(5)
		state = applyMDS(state)
	}

	for r := 0; r < halfFull; r++ {
		applyFull()
	}
	for r := 0; r < poseidonPartialRounds; r++ {
		applyPartial()
	}
	for r := 0; r < halfFull; r++ {
		applyFull()
	}
	return state
}

func applyMDS(state [poseidonWidth]field.M31) [poseidonWidth]field.M31 {
	var out [poseidonWidth]field.M31
	for i := 0; i < poseidonWidth; i++ {
		acc := field.Zero()
		for j := 0; j < poseidonWidth; j++ {
			acc = acc.Add(poseidonConstants.mds[i][j].Mul(state[j]))
		}
		out[i] = acc
	}
	return out
}

// poseidonHasher is the fifth MerkleHasher backend: a from-scratch,
// M31-native sponge permutation standing in for the teacher's
// core/poseidon_enhanced.go and answering §9's open question about a
// "Poseidon-252-style" hasher variant with a reduced width/field instead
// (a faithful 252-bit/8-limb Poseidon has no honest home in an M31-sized
// field, see DESIGN.md).
type poseidonHasher struct{}

// NewPoseidonHasher returns a Merkle hasher backed by the native-field
// sponge permutation.
func NewPoseidonHasher() Hasher { return poseidonHasher{} }

func (poseidonHasher) Size() int { return poseidonRate * 4 }

func (poseidonHasher) HashNode(left, right []byte, columnValues [][]byte) []byte {
	var state [poseidonWidth]field.M31

	var inputs []field.M31
	if left != nil {
		inputs = append(inputs, bytesToM31Limbs(left)...)
		inputs = append(inputs, bytesToM31Limbs(right)...)
	}
	for _, v := range columnValues {
		inputs = append(inputs, bytesToM31Limbs(v)...)
	}

	for len(inputs) > 0 {
		n := poseidonRate
		if n > len(inputs) {
			n = len(inputs)
		}
		for i := 0; i < n; i++ {
			state[i] = state[i].Add(inputs[i])
		}
		state = poseidonPermute(state)
		inputs = inputs[n:]
	}

	out := make([]byte, 0, poseidonRate*4)
	for i := 0; i < poseidonRate; i++ {
		b := state[i].Bytes()
		out = append(out, b[:]...)
	}
	return out
}

// bytesToM31Limbs splits b into 4-byte little-endian chunks, each reduced
// into F_p, zero-padding a final partial chunk.
func bytesToM31Limbs(b []byte) []field.M31 {
	n := (len(b) + 3) / 4
	out := make([]field.M31, n)
	for i := 0; i < n; i++ {
		var chunk [4]byte
		copy(chunk[:], b[i*4:])
		v := uint32(chunk[0]) | uint32(chunk[1])<<8 | uint32(chunk[2])<<16 | uint32(chunk[3])<<24
		out[i] = field.New(v)
	}
	return out
}
