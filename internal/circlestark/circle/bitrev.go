package circle

// BitReverseIndex returns i with its low logN bits reversed. Every column
// evaluation is stored in bit-reversed circle-domain order so that
// pairs (p, -p) end up adjacent (§4.B), which is what lets the FFT/FRI
// folding steps operate on adjacent storage slots.
func BitReverseIndex(i int, logN uint32) int {
	r := 0
	for b := uint32(0); b < logN; b++ {
		r = (r << 1) | (i & 1)
		i >>= 1
	}
	return r
}
