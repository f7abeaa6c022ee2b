// Package circle implements the circle group of points (x, y) satisfying
// x^2 + y^2 = 1 over F_p, and the Coset/CircleDomain/LineDomain structures
// built on top of it, per §3 and §4.B.
package circle

import "github.com/vybium/circle-stark/internal/circlestark/field"

// Point is a point on the circle curve over the base field F_p.
type Point struct {
	X, Y field.M31
}

// SecurePoint is a point on the circle curve over the secure field F_p4,
// used for the out-of-domain sample point and its mask evaluations.
type SecurePoint struct {
	X, Y field.QM31
}

// LogOrder is the order-2^31 generator's exponent: the circle group over
// F_p has order 2^31, matching the base field's size plus one, p+1
// (§3 "a distinguished generator of order 2^31 exists in F_p").
const LogOrder = 31

// Generator is the distinguished generator of the full order-2^31 circle
// group over F_p.
var Generator = Point{X: field.New(2), Y: field.New(1268011823)}

// Identity is the circle group's identity element (1, 0).
func Identity() Point {
	return Point{X: field.One()}
}

// Add implements the circle group operation (x1,y1)+(x2,y2) =
// (x1x2-y1y2, x1y2+x2y1).
func (p Point) Add(q Point) Point {
	return Point{
		X: p.X.Mul(q.X).Sub(p.Y.Mul(q.Y)),
		Y: p.X.Mul(q.Y).Add(q.X.Mul(p.Y)),
	}
}

// Neg returns the group inverse of p, which is (x, -y) since p lies on
// x^2+y^2=1.
func (p Point) Neg() Point {
	return Point{X: p.X, Y: p.Y.Neg()}
}

// Double returns p+p using the doubling formula (x,y) -> (2x^2-1, 2xy).
func (p Point) Double() Point {
	return Point{
		X: p.X.Square().Double().Sub(field.One()),
		Y: p.X.Mul(p.Y).Double(),
	}
}

// Mul returns n*p via double-and-add, computed in O(log n).
func (p Point) Mul(n uint64) Point {
	result := Identity()
	base := p
	for n > 0 {
		if n&1 == 1 {
			result = result.Add(base)
		}
		base = base.Double()
		n >>= 1
	}
	return result
}

// IntoSecure embeds a base-field point into the secure-field circle group.
func (p Point) IntoSecure() SecurePoint {
	return SecurePoint{X: field.FromM31(p.X), Y: field.FromM31(p.Y)}
}

// Add implements the circle group operation over the secure field.
func (p SecurePoint) Add(q SecurePoint) SecurePoint {
	return SecurePoint{
		X: p.X.Mul(q.X).Sub(p.Y.Mul(q.Y)),
		Y: p.X.Mul(q.Y).Add(q.X.Mul(p.Y)),
	}
}

// Neg returns the group inverse.
func (p SecurePoint) Neg() SecurePoint {
	return SecurePoint{X: p.X, Y: p.Y.Neg()}
}

// Conjugate returns the point obtained by applying the DEEP/PCS
// complex-conjugate automorphism (§4.G) coordinate-wise; this is distinct
// from Neg, which is the circle-group inverse.
func (p SecurePoint) Conjugate() SecurePoint {
	return SecurePoint{X: p.X.Conjugate(), Y: p.Y.Conjugate()}
}

// GeneratorN returns the generator of the order-2^logSize subgroup, i.e.
// Generator raised to the power 2^(LogOrder-logSize).
func GeneratorN(logSize uint32) Point {
	if logSize > LogOrder {
		panic("circle: requested subgroup order exceeds the group order")
	}
	return Generator.Mul(uint64(1) << (LogOrder - logSize))
}
