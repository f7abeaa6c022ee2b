package circle

import "github.com/vybium/circle-stark/internal/circlestark/field"

// CircleDomain is a Coset of even size plus its negation: 2N points formed
// from N pairs (p, -p), per §3. HalfCoset is the size-N coset; the domain's
// other N points are its negation.
type CircleDomain struct {
	HalfCoset Coset
}

// NewCircleDomain builds a circle domain from its half-coset.
func NewCircleDomain(halfCoset Coset) CircleDomain {
	return CircleDomain{HalfCoset: halfCoset}
}

// LogSize returns log2 of the domain's total point count (2 * half-coset size).
func (d CircleDomain) LogSize() uint32 {
	return d.HalfCoset.LogSize + 1
}

// Size returns the domain's total point count.
func (d CircleDomain) Size() int {
	return 1 << d.LogSize()
}

// At returns the domain point at the given natural (non-bit-reversed)
// index: indices below the half-coset size come from the half-coset
// itself, the rest are its negation (§4.C).
func (d CircleDomain) At(naturalIndex int) Point {
	n := d.HalfCoset.Size()
	if naturalIndex < n {
		return d.HalfCoset.IndexAt(naturalIndex)
	}
	return d.HalfCoset.IndexAt(naturalIndex - n).Neg()
}

// IsCanonic reports whether d is the circle domain of a CanonicCoset of
// the matching log-size, which FRI requires of every committed domain
// (§4.B).
func (d CircleDomain) IsCanonic() bool {
	if d.HalfCoset.LogSize == 0 {
		return false
	}
	return d.HalfCoset.Equal(HalfOdds(d.HalfCoset.LogSize))
}

// LineDomain is the set of x-coordinates of a Coset, used as the
// univariate FFT domain for FRI's line polynomials (§3). Its size equals
// the underlying coset's size (the coset is typically a CircleDomain's
// half-coset).
type LineDomain struct {
	Coset Coset
}

// NewLineDomain builds a line domain from a coset. The coset's initial
// point must have strictly higher order than its step (or size <= 2 with a
// non-zero x), guaranteeing distinct x-coordinates (§3).
func NewLineDomain(coset Coset) LineDomain {
	return LineDomain{Coset: coset}
}

// LogSize returns log2 of the domain's point count.
func (d LineDomain) LogSize() uint32 {
	return d.Coset.LogSize
}

// Size returns the domain's point count.
func (d LineDomain) Size() int {
	return 1 << d.LogSize()
}

// At returns the x-coordinate at the given natural index.
func (d LineDomain) At(naturalIndex int) field.M31 {
	return d.Coset.IndexAt(naturalIndex).X
}

// Double halves the domain's size via the coset doubling map, used when
// moving from one FRI layer's domain to the next.
func (d LineDomain) Double() LineDomain {
	return LineDomain{Coset: d.Coset.Double()}
}

// CanonicCoset is the canonical size-2^LogSize coset shared by prover and
// verifier for a given trace log-size (§3). Its circle domain is built
// from the half-odds coset of one smaller log-size, per spec §4.B.
type CanonicCoset struct {
	logSize uint32
	full    Coset
	half    Coset
}

// NewCanonicCoset builds the canonical coset of the given log-size.
func NewCanonicCoset(logSize uint32) CanonicCoset {
	c := CanonicCoset{logSize: logSize, full: HalfOdds(logSize)}
	if logSize > 0 {
		c.half = HalfOdds(logSize - 1)
	}
	return c
}

// LogSize returns the coset's log-size.
func (c CanonicCoset) LogSize() uint32 { return c.logSize }

// Coset returns the full size-2^LogSize coset.
func (c CanonicCoset) Coset() Coset { return c.full }

// Step returns the generator of the order-2^LogSize subgroup.
func (c CanonicCoset) Step() Point { return c.full.Step }

// CircleDomain returns the size-2^LogSize circle domain built from the
// half-odds coset of log-size LogSize-1.
func (c CanonicCoset) CircleDomain() CircleDomain {
	return NewCircleDomain(c.half)
}
