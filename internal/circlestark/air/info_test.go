package air

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInfoEvaluatorCountsComponentShape(t *testing.T) {
	cs, err := NewConstraintSystem([]float64{1.5})
	require.NoError(t, err)
	comp, err := NewComponent(cs)
	require.NoError(t, err)

	info := NewInfoEvaluator()
	comp.Evaluate(info)

	require.Equal(t, 1, info.TraceColumns)
	require.Equal(t, 1, info.Constraints)
	require.ElementsMatch(t, []string{ColCoefficient, ColExpectedProduct}, info.PreprocessedIDs)
}
