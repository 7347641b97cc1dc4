package torsionGroups

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GottfriedHerold/Schoof/schoof/algebra"
	"github.com/GottfriedHerold/Schoof/schoof/ellipticCurves"
	"github.com/GottfriedHerold/Schoof/schoof/errorsWithData"
	"github.com/GottfriedHerold/Schoof/schoof/finiteFields"
)

func newTestFamily(t *testing.T, p int64, A, B any) *Family[finiteFields.Element] {
	curve, err := ellipticCurves.NewEllipticCurve[finiteFields.Element](finiteFields.MustFiniteField(p), A, B)
	require.NoError(t, err)
	return NewFamily(curve)
}

func TestInvalidTorsion(t *testing.T) {
	family := newTestFamily(t, 5, 1, 1)
	for _, torsion := range []int{-3, 0, 1, 2, 4, 6, 5, 15} {
		_, err := family.Group(torsion)
		assert.Truef(t, errors.Is(err, ErrInvalidTorsion), "torsion %v gave %v", torsion, err)
		assert.True(t, errors.Is(err, algebra.ErrValue))
		data, ok := errorsWithData.GetData_struct[TorsionErrorData](err)
		require.True(t, ok)
		assert.Equal(t, torsion, data.Torsion)
	}
}

func TestGroupsAreShared(t *testing.T) {
	family := newTestFamily(t, 7, 0, 2)
	group1, err := family.Group(3)
	require.NoError(t, err)
	group2, err := family.Group(3)
	require.NoError(t, err)
	assert.True(t, group1 == group2)
	assert.Equal(t, 3, group1.Torsion())
	assert.True(t, group1.Curve() == family.Curve())

	elements1, err := group1.Elements()
	require.NoError(t, err)
	elements2, err := group2.Elements()
	require.NoError(t, err)
	require.Len(t, elements1, 1)
	assert.True(t, elements1[0].IsEqual(elements2[0]))
	assert.GreaterOrEqual(t, family.DivisionPolynomials().Len(), 4)
}

// The generic point stands for all l-torsion points at once, so l times it is infinity, and no smaller multiple is.
func TestGenericPointHasOrderL(t *testing.T) {
	family := newTestFamily(t, 7, 1, 1)
	for _, torsion := range []int{3, 5} {
		group, err := family.Group(torsion)
		require.NoError(t, err)
		elements, err := group.Elements()
		require.NoError(t, err)
		require.Len(t, elements, 1)
		point := elements[0]
		require.False(t, point.IsInfinite())
		for n := 1; n < torsion; n++ {
			multiple, err := point.ScalarMul(n)
			require.NoError(t, err)
			assert.Falsef(t, multiple.IsInfinite(), "%v * P is infinite in E[%v]", n, torsion)
		}
		multiple, err := point.ScalarMul(torsion)
		require.NoError(t, err)
		assert.Truef(t, multiple.IsInfinite(), "%v * P is not infinite", torsion)
		minusOne, err := point.ScalarMul(torsion - 1)
		require.NoError(t, err)
		assert.True(t, minusOne.IsEqual(point.Neg()))
	}
}
