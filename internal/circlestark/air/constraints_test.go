package air

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewConstraintEncodesRatio(t *testing.T) {
	c, err := NewConstraint(1.5)
	require.NoError(t, err)
	require.Equal(t, uint32(1572864), c.FieldValue.Uint32())
	require.Equal(t, uint32(699051), c.Coefficient.Uint32())
}

func TestNewConstraintRejectsOutOfRange(t *testing.T) {
	_, err := NewConstraint(0)
	require.Error(t, err)
	_, err = NewConstraint(-1)
	require.Error(t, err)
	_, err = NewConstraint(10.0001)
	require.Error(t, err)
}

func TestNewConstraintSystemBuildsOneConstraintPerRatio(t *testing.T) {
	cs, err := NewConstraintSystem([]float64{1.5, 2.0, 1.25})
	require.NoError(t, err)
	require.Len(t, cs.Constraints, 3)
}

func TestValidateRejectsDanglingRelationshipIndex(t *testing.T) {
	cs, err := NewConstraintSystem([]float64{1.5})
	require.NoError(t, err)
	cs.Relationships = []Relationship{{Kind: RelationConjunction, Indices: []int{0, 1}}}
	require.Error(t, cs.Validate())
}

func TestValidateRejectsRepeatedIndex(t *testing.T) {
	cs, err := NewConstraintSystem([]float64{1.5, 2.0})
	require.NoError(t, err)
	cs.Relationships = []Relationship{{Kind: RelationConjunction, Indices: []int{0, 0}}}
	require.Error(t, cs.Validate())
}

func TestValidateRejectsEmptyConstraintSystem(t *testing.T) {
	var cs ConstraintSystem
	require.Error(t, cs.Validate())
}
