package air

import "github.com/vybium/circle-stark/internal/circlestark/field"

// LogupFraction is one (multiplicity, denominator) pair a component
// contributes to a named relation at a single row, i.e. one summand of
// `multiplicity / (z - sum(alpha^i * values_i))` (§4.H "add_to_relation",
// GLOSSARY "Logup").
type LogupFraction struct {
	Multiplicity field.QM31
	Denom        field.QM31
}

// value evaluates the fraction. Denom is derived from a channel-drawn
// challenge and a row's witness values, so it is the caller's
// responsibility (as with field.BatchInverse) to never construct a
// fraction whose denominator actually vanishes.
func (f LogupFraction) value() field.QM31 {
	return f.Multiplicity.Mul(f.Denom.Inv())
}

// BuildLogupColumn builds one relation's prefix-sum interaction column
// over N = len(rows) rows, where rows[i] holds every fraction every
// component contributed to this relation at row i (§4.H
// "finalize_logup", §8 property 12).
//
// The column satisfies, for every row i taken mod N:
//
//	col[i] - col[i-1] + claimedSum/N == sum(rows[i])
//
// with col[-1] (i.e. col[N-1] wrapping around) read as -claimedSum. This
// is exactly the identity §4.H's "finalize_logup" and the GLOSSARY's
// "Prefix sum column" describe; CheckLogupColumn re-derives it as the
// verifier side of the same check.
func BuildLogupColumn(rows [][]LogupFraction) (col []field.QM31, claimedSum field.QM31) {
	n := len(rows)
	rowSums := make([]field.QM31, n)
	total := field.QM31Zero()
	for i, fracs := range rows {
		s := field.QM31Zero()
		for _, f := range fracs {
			s = s.Add(f.value())
		}
		rowSums[i] = s
		total = total.Add(s)
	}
	claimedSum = total
	perRow := claimedSum.MulM31(field.FromInt64(int64(n)).Inv())

	col = make([]field.QM31, n)
	prev := claimedSum.Neg()
	for i := 0; i < n; i++ {
		prev = prev.Add(rowSums[i]).Sub(perRow)
		col[i] = prev
	}
	return col, claimedSum
}

// CheckLogupColumn is the verifier-side reconstruction of the identity
// BuildLogupColumn establishes: it checks every row's prefix-sum step,
// including the wraparound boundary, against the claimed column and
// claimedSum. It does not recompute rowSums itself; callers pass the
// per-row fraction sums they already derived from public multiplicities,
// witness values and the shared channel challenge.
func CheckLogupColumn(col []field.QM31, rowSums []field.QM31, claimedSum field.QM31) bool {
	n := len(col)
	if len(rowSums) != n || n == 0 {
		return false
	}
	perRow := claimedSum.MulM31(field.FromInt64(int64(n)).Inv())
	prev := claimedSum.Neg()
	for i := 0; i < n; i++ {
		want := prev.Add(rowSums[i]).Sub(perRow)
		if !want.Equal(col[i]) {
			return false
		}
		prev = col[i]
	}
	return true
}

// CheckLogupClosure asserts that a set of components' claimed sums for a
// closed lookup system (every multiplicity matched by an equal and
// opposite one elsewhere) together sum to zero, per §9's open question
// ("assert sum(component.logup_counts) = 0 for closed systems").
func CheckLogupClosure(claimedSums []field.QM31) bool {
	total := field.QM31Zero()
	for _, s := range claimedSums {
		total = total.Add(s)
	}
	return total.IsZero()
}
