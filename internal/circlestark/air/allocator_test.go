package air

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestAllocatorAssignsSequentialSpans(t *testing.T) {
	a := NewTraceLocationAllocator(nil)
	first := a.Allocate(1, 2)
	second := a.Allocate(1, 3)

	require.Equal(t, ColumnSpan{Tree: 1, ColStart: 0, ColEnd: 2}, first)
	require.Equal(t, ColumnSpan{Tree: 1, ColStart: 2, ColEnd: 5}, second)
}

func TestAllocatorStaticModeRejectsUnknownColumn(t *testing.T) {
	a := NewTraceLocationAllocator([]string{ColCoefficient})
	require.NoError(t, a.CheckPreprocessed(ColCoefficient))
	require.ErrorIs(t, a.CheckPreprocessed(ColExpectedProduct), ErrMissingPreprocessedColumn)
}

func TestAllocatorNonStaticModeAcceptsAnyColumn(t *testing.T) {
	a := NewTraceLocationAllocator(nil)
	require.NoError(t, a.CheckPreprocessed("anything"))
}
