package stark

import "github.com/vybium/circle-stark/internal/circlestark/field"

// combineSecureSample recombines four independently-sampled coordinate
// polynomial evaluations back into one secure-field value, using the same
// u/i basis poly.SecureCirclePoly.EvalAtPoint combines coordinate
// evaluations with, since the composition's four coordinate columns are
// each sampled independently through the PCS layer as plain CirclePolys
// (§3 "SecureColumnByCoords", §4.G).
func combineSecureSample(a, b, c, d field.QM31) field.QM31 {
	i := field.FromCM31(field.NewCM31(field.Zero(), field.One()))
	u := field.QM31{A0: field.CM31Zero(), A1: field.CM31One()}
	iu := i.Mul(u)
	return a.Add(b.Mul(u)).Add(c.Mul(i)).Add(d.Mul(iu))
}
