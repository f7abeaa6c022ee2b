package air

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vybium/circle-stark/internal/circlestark/field"
)

func TestBuildLogupColumnClosesWhenFractionsCancel(t *testing.T) {
	z := field.FromM31(field.New(7))
	rows := [][]LogupFraction{
		{{Multiplicity: field.FromM31(field.New(3)), Denom: z.Sub(field.FromM31(field.New(1)))}},
		{{Multiplicity: field.FromM31(field.New(3)).Neg(), Denom: z.Sub(field.FromM31(field.New(1)))}},
	}
	col, claimedSum := BuildLogupColumn(rows)
	require.True(t, claimedSum.IsZero())
	require.Len(t, col, 2)
}

func TestCheckLogupColumnAgreesWithBuild(t *testing.T) {
	z := field.FromM31(field.New(11))
	rows := [][]LogupFraction{
		{{Multiplicity: field.FromM31(field.New(2)), Denom: z.Sub(field.FromM31(field.New(3)))}},
		{{Multiplicity: field.FromM31(field.New(5)), Denom: z.Sub(field.FromM31(field.New(4)))}},
		{{Multiplicity: field.FromM31(field.New(5)).Neg(), Denom: z.Sub(field.FromM31(field.New(4)))}},
		{{Multiplicity: field.FromM31(field.New(2)).Neg(), Denom: z.Sub(field.FromM31(field.New(3)))}},
	}
	col, claimedSum := BuildLogupColumn(rows)

	rowSums := make([]field.QM31, len(rows))
	for i, fracs := range rows {
		s := field.QM31Zero()
		for _, f := range fracs {
			s = s.Add(f.value())
		}
		rowSums[i] = s
	}
	require.True(t, CheckLogupColumn(col, rowSums, claimedSum))
	require.True(t, claimedSum.IsZero())
}

func TestCheckLogupColumnRejectsTamperedCell(t *testing.T) {
	z := field.FromM31(field.New(11))
	rows := [][]LogupFraction{
		{{Multiplicity: field.FromM31(field.New(2)), Denom: z.Sub(field.FromM31(field.New(3)))}},
		{{Multiplicity: field.FromM31(field.New(2)).Neg(), Denom: z.Sub(field.FromM31(field.New(3)))}},
	}
	col, claimedSum := BuildLogupColumn(rows)
	col[0] = col[0].Add(field.QM31One())

	rowSums := make([]field.QM31, len(rows))
	for i, fracs := range rows {
		s := field.QM31Zero()
		for _, f := range fracs {
			s = s.Add(f.value())
		}
		rowSums[i] = s
	}
	require.False(t, CheckLogupColumn(col, rowSums, claimedSum))
}

func TestCheckLogupClosureAcceptsBalancedComponents(t *testing.T) {
	a := field.FromM31(field.New(9))
	b := a.Neg()
	require.True(t, CheckLogupClosure([]field.QM31{a, b}))
}

func TestCheckLogupClosureRejectsImbalancedComponents(t *testing.T) {
	a := field.FromM31(field.New(9))
	b := field.FromM31(field.New(1))
	require.False(t, CheckLogupClosure([]field.QM31{a, b}))
}
