package poly

import (
	"fmt"

	"github.com/vybium/circle-stark/internal/circlestark/circle"
	"github.com/vybium/circle-stark/internal/circlestark/field"
)

// SecureColumnByCoords stores a column of secure-field values as four
// parallel base-field columns, one per QM31 coordinate, matching how the
// composition polynomial is actually committed: each coordinate is Merkle
// hashed as its own base-field column so verification stays in F_p (§3,
// §4.B "4 coordinate columns").
type SecureColumnByCoords struct {
	Coords [4][]field.M31
}

// NewSecureColumnByCoords splits a QM31 value slice into its four
// coordinate columns.
func NewSecureColumnByCoords(values []field.QM31) SecureColumnByCoords {
	var c SecureColumnByCoords
	for i := range c.Coords {
		c.Coords[i] = make([]field.M31, len(values))
	}
	for i, v := range values {
		evals := v.ToPartialEvals()
		for j := 0; j < 4; j++ {
			c.Coords[j][i] = evals[j]
		}
	}
	return c
}

// Len returns the column length.
func (c SecureColumnByCoords) Len() int { return len(c.Coords[0]) }

// At reconstructs the QM31 value at index i from its four coordinates.
func (c SecureColumnByCoords) At(i int) field.QM31 {
	return field.CombineEF([4]field.M31{c.Coords[0][i], c.Coords[1][i], c.Coords[2][i], c.Coords[3][i]})
}

// Values reconstructs the full QM31 slice.
func (c SecureColumnByCoords) Values() []field.QM31 {
	out := make([]field.QM31, c.Len())
	for i := range out {
		out[i] = c.At(i)
	}
	return out
}

// SecureEvaluation holds a secure-field column's values over a
// CircleDomain, represented by coordinate in the same bit-reversed storage
// order as CircleEvaluation.
type SecureEvaluation struct {
	Columns SecureColumnByCoords
	Domain  circle.CircleDomain
}

// NewSecureEvaluation wraps four coordinate columns already in bit-reversed
// domain order.
func NewSecureEvaluation(values []field.QM31, domain circle.CircleDomain) (SecureEvaluation, error) {
	if len(values) != domain.Size() {
		return SecureEvaluation{}, fmt.Errorf("poly: secure evaluation length %d does not match domain size %d", len(values), domain.Size())
	}
	return SecureEvaluation{Columns: NewSecureColumnByCoords(values), Domain: domain}, nil
}

// SecureCirclePoly is the composition polynomial: four base-field
// CirclePolys, one per QM31 coordinate, matching the real interpolation
// and commitment path for the constraint composition (§4.H, §4.J).
type SecureCirclePoly struct {
	Polys [4]CirclePoly
}

// Interpolate interpolates each coordinate column independently.
func (e SecureEvaluation) Interpolate() SecureCirclePoly {
	var out SecureCirclePoly
	for i := 0; i < 4; i++ {
		ev, err := NewCircleEvaluation(e.Columns.Coords[i], e.Domain)
		if err != nil {
			panic(err) // length already validated by NewSecureEvaluation
		}
		out.Polys[i] = ev.Interpolate()
	}
	return out
}

// EvalAtPoint combines the four coordinate evaluations into the secure-field
// value f(p), used for the out-of-domain mask sample (§4.G). Each Polys[k]
// holds real (M31) coefficients, so evaluating it at a secure point already
// extends it into the secure field; the four results are recombined with
// the same basis CombineEF uses: a + b*u + c*i + d*i*u.
func (p SecureCirclePoly) EvalAtPoint(point circle.SecurePoint) field.QM31 {
	a := p.Polys[0].EvalAtPoint(point)
	b := p.Polys[1].EvalAtPoint(point)
	c := p.Polys[2].EvalAtPoint(point)
	d := p.Polys[3].EvalAtPoint(point)
	i := field.FromCM31(field.NewCM31(field.Zero(), field.One()))
	u := field.QM31{A0: field.CM31Zero(), A1: field.CM31One()}
	iu := i.Mul(u)
	return a.Add(b.Mul(u)).Add(c.Mul(i)).Add(d.Mul(iu))
}
