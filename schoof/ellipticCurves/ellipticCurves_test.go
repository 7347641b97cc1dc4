package ellipticCurves

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GottfriedHerold/Schoof/internal/testutils"
	"github.com/GottfriedHerold/Schoof/schoof/algebra"
	"github.com/GottfriedHerold/Schoof/schoof/errorsWithData"
	"github.com/GottfriedHerold/Schoof/schoof/finiteFields"
)

type point = Point[finiteFields.Element]

func curveOver(t *testing.T, p int64, A, B any) *EllipticCurve[finiteFields.Element] {
	curve, err := NewEllipticCurve[finiteFields.Element](finiteFields.MustFiniteField(p), A, B)
	require.NoError(t, err)
	return curve
}

// allPoints enumerates the points of a curve over a small prime field, starting with infinity.
func allPoints(curve *EllipticCurve[finiteFields.Element]) []point {
	field := curve.Field().(*finiteFields.FiniteField)
	ret := []point{curve.Infinity()}
	for _, x := range field.Elements() {
		for _, y := range field.Elements() {
			if curve.Contains(x, y) {
				ret = append(ret, curve.finite(x, y))
			}
		}
	}
	return ret
}

func mustAdd(t *testing.T, p, q point) point {
	t.Helper()
	sum, err := p.Add(q)
	require.NoError(t, err)
	return sum
}

// Example 2.2 of Washington, Elliptic Curves: Number Theory and Cryptography
func TestGroupLawGF23(t *testing.T) {
	curve := curveOver(t, 23, 1, 0)
	p1 := curve.MustPoint(9, 5)
	p2 := curve.MustPoint(13, 5)
	p3 := curve.MustPoint(11, 10)

	assert.True(t, mustAdd(t, p1, p2).IsEqual(curve.MustPoint(1, 18)))
	assert.True(t, mustAdd(t, p3, p3).IsEqual(curve.MustPoint(13, 18)))
	difference, err := p1.Sub(curve.MustPoint(13, -5))
	require.NoError(t, err)
	assert.True(t, difference.IsEqual(curve.MustPoint(1, 18)))
}

func TestGroupLaws(t *testing.T) {
	curve := curveOver(t, 5, 1, 1)
	points := allPoints(curve)
	require.Len(t, points, 9)
	for _, p := range points {
		testutils.FatalUnless(t, mustAdd(t, p, curve.Infinity()).IsEqual(p), "P + infinity != P for %v", p)
		testutils.FatalUnless(t, mustAdd(t, curve.Infinity(), p).IsEqual(p), "infinity + P != P for %v", p)
		testutils.FatalUnless(t, mustAdd(t, p, p.Neg()).IsInfinite(), "P + (-P) != infinity for %v", p)
		for _, q := range points {
			testutils.FatalUnless(t, mustAdd(t, p, q).IsEqual(mustAdd(t, q, p)), "%v + %v not commutative", p, q)
			for _, r := range points {
				left := mustAdd(t, p, mustAdd(t, q, r))
				right := mustAdd(t, mustAdd(t, p, q), r)
				testutils.FatalUnless(t, left.IsEqual(right), "addition not associative for %v, %v, %v", p, q, r)
			}
		}
	}
}

func TestScalarMultiplication(t *testing.T) {
	curve := curveOver(t, 5, 1, 1)
	for _, p := range allPoints(curve) {
		sum := curve.Infinity()
		for n := 0; n <= 10; n++ {
			product, err := p.ScalarMul(n)
			require.NoError(t, err)
			testutils.FatalUnless(t, product.IsEqual(sum), "%v * %v != %v", n, p, sum)
			left, err := MulPoint(n, p)
			require.NoError(t, err)
			testutils.FatalUnless(t, left.IsEqual(product), "left and right scalar multiplication differ")
			sum = mustAdd(t, sum, p)
		}
		// the group has order 9
		nine, err := p.ScalarMul(9)
		require.NoError(t, err)
		testutils.FatalUnless(t, nine.IsInfinite(), "9 * %v != infinity", p)
	}
	_, err := curve.Infinity().ScalarMul(-1)
	assert.True(t, errors.Is(err, ErrNegativeScalar))
	assert.True(t, errors.Is(err, algebra.ErrValue))
}

func TestPointNotOnCurve(t *testing.T) {
	curve := curveOver(t, 23, 1, 0)
	_, err := curve.Point(1, 1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotOnCurve))
	assert.True(t, errors.Is(err, algebra.ErrConstruction))
	data, ok := errorsWithData.GetData_struct[PointErrorData](err)
	require.True(t, ok)
	assert.Equal(t, "[1 mod 23]", data.X)
	assert.Equal(t, "[1 mod 23]", data.Y)
	_, err = curve.Point("x", 1)
	assert.True(t, errors.Is(err, algebra.ErrIncompatibleOperand))
}

func TestInfinity(t *testing.T) {
	curve := curveOver(t, 23, 1, 0)
	infinity := curve.Infinity()
	assert.True(t, infinity.IsInfinite())
	assert.True(t, infinity.Neg().IsEqual(infinity))
	assert.False(t, infinity.IsEqual(curve.MustPoint(0, 0)))
	assert.Equal(t, "(infinity)", infinity.String())
	assert.True(t, Point[finiteFields.Element]{}.IsInfinite())
	testutils.FatalUnlessPanicsWith(t, ErrInfinityCoordinates, func() { infinity.X() })
	testutils.FatalUnlessPanicsWith(t, ErrInfinityCoordinates, func() { infinity.Y() })
	// (0, 0) is a point of order 2
	assert.True(t, mustAdd(t, curve.MustPoint(0, 0), curve.MustPoint(0, 0)).IsInfinite())
}

func TestSingularity(t *testing.T) {
	assert.True(t, curveOver(t, 5, 0, 0).IsSingular())
	// 4 * (-3)^3 + 27 * 2^2 = 0
	assert.True(t, curveOver(t, 7, -3, 2).IsSingular())
	assert.False(t, curveOver(t, 5, 1, 1).IsSingular())
	assert.False(t, curveOver(t, 7, 0, 2).IsSingular())
}

func TestCurveCompatibility(t *testing.T) {
	curve1 := curveOver(t, 23, 1, 0)
	curve2 := curveOver(t, 23, 1, 0)
	other := curveOver(t, 23, 2, 0)
	sum, err := curve1.MustPoint(9, 5).Add(curve2.MustPoint(13, 5))
	require.NoError(t, err)
	assert.True(t, sum.IsEqual(curve1.MustPoint(1, 18)))
	assert.True(t, curve1.IsCompatible(curve2))
	assert.False(t, curve1.IsCompatible(other))
	testutils.FatalUnlessPanicsWith(t, ErrIncompatiblePoints, func() { curve1.MustPoint(9, 5).Add(other.MustPoint(0, 0)) })
	assert.Equal(t, "y^2 = x^3 + [1 mod 23]x + [0 mod 23] over GF<23>", curve1.String())
	A, B := curve1.Parameters()
	assert.True(t, A.IsEqual(curve1.A()))
	assert.True(t, B.IsEqual(curve1.B()))
}
