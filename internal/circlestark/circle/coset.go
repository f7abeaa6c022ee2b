package circle

// Coset is an arithmetic progression { initial + i*step : i in [0, 2^LogSize) }
// on the circle group, per §3. Step is the generator of the order-2^LogSize
// subgroup ("the half-step generator"), so successive points are obtained by
// repeated group addition of Step.
type Coset struct {
	Initial Point
	Step    Point
	LogSize uint32
}

// NewCoset builds the coset generated by Step (the canonical subgroup
// generator of order 2^logSize) offset by initial.
func NewCoset(initial Point, logSize uint32) Coset {
	return Coset{Initial: initial, Step: GeneratorN(logSize), LogSize: logSize}
}

// HalfOdds returns the standard "half-odds" coset of size 2^logSize used
// throughout FRI and the canonic domain construction (§4.B). Its elements
// are never fixed by negation, which is what guarantees that a circle
// domain built from it has no repeated points.
func HalfOdds(logSize uint32) Coset {
	initial := Generator.Mul(uint64(1) << (LogOrder - logSize - 2))
	return NewCoset(initial, logSize)
}

// Size returns 2^LogSize, the number of points in the coset.
func (c Coset) Size() int {
	return 1 << c.LogSize
}

// IndexAt returns initial + i*step, computed in O(log i) via the
// double-and-add scalar multiplication on Step.
func (c Coset) IndexAt(i int) Point {
	return c.Initial.Add(c.Step.Mul(uint64(i)))
}

// Double returns the coset obtained by applying the doubling map to every
// point: this halves the coset's size and squares the x-coordinate
// structure (§4.B).
func (c Coset) Double() Coset {
	return Coset{
		Initial: c.Initial.Double(),
		Step:    c.Step.Double(),
		LogSize: c.LogSize - 1,
	}
}

// Equal reports whether two cosets describe the same point set (same
// generator parameters).
func (c Coset) Equal(o Coset) bool {
	return c.Initial == o.Initial && c.Step == o.Step && c.LogSize == o.LogSize
}
