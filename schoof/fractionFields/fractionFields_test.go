package fractionFields

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GottfriedHerold/Schoof/internal/testutils"
	"github.com/GottfriedHerold/Schoof/schoof/algebra"
	"github.com/GottfriedHerold/Schoof/schoof/finiteFields"
	"github.com/GottfriedHerold/Schoof/schoof/integers"
	"github.com/GottfriedHerold/Schoof/schoof/quotients"
)

type rational = Fraction[integers.Integer]

var rationals = NewFractionField[integers.Integer](integers.Integers)

func randomRational(rng *rand.Rand) rational {
	numerator := rng.Int63n(41) - 20
	denominator := rng.Int63n(20) + 1
	if rng.Intn(2) == 0 {
		denominator = -denominator
	}
	ret, err := rationals.Fraction(numerator, denominator)
	if err != nil {
		panic(err)
	}
	return ret
}

var rationalSamples = testutils.NewSampleCache(randomRational)

func TestFieldLaws(t *testing.T) {
	a := rationalSamples.GetElements(1, 30)
	b := rationalSamples.GetElements(2, 30)
	c := rationalSamples.GetElements(3, 30)
	for i := range a {
		testutils.FatalUnless(t, a[i].Add(b[i].Add(c[i])).IsEqual(a[i].Add(b[i]).Add(c[i])), "addition not associative")
		testutils.FatalUnless(t, a[i].Add(a[i].Neg()).IsZero(), "a + (-a) != 0 for %v", a[i])
		testutils.FatalUnless(t, a[i].Mul(b[i].Add(c[i])).IsEqual(a[i].Mul(b[i]).Add(a[i].Mul(c[i]))), "not distributive")
		if !a[i].IsZero() {
			inverse, err := a[i].Inv()
			require.NoError(t, err)
			testutils.FatalUnless(t, a[i].Mul(inverse).IsEqual(rationals.One()), "a * a^-1 != 1 for %v", a[i])
		}
	}
}

func TestEmbedding(t *testing.T) {
	for n := int64(-5); n <= 5; n++ {
		for m := int64(-5); m <= 5; m++ {
			x, y := integers.NewInteger(n), integers.NewInteger(m)
			fx, fy := rationals.Embed(x), rationals.Embed(y)
			testutils.FatalUnless(t, fx.Add(fy).IsEqual(rationals.Embed(x.Add(y))), "embedding does not respect addition")
			testutils.FatalUnless(t, fx.Mul(fy).IsEqual(rationals.Embed(x.Mul(y))), "embedding does not respect multiplication")
			testutils.FatalUnless(t, algebra.Sub(fx, fy).IsEqual(rationals.Embed(algebra.Sub(x, y))), "embedding does not respect subtraction")
			if m != 0 {
				quotient, err := algebra.Div(fx, fy)
				require.NoError(t, err)
				expected, err := rationals.Fraction(x, y)
				require.NoError(t, err)
				testutils.FatalUnless(t, quotient.IsEqual(expected), "%v / %v gave %v", fx, fy, quotient)
			}
		}
	}
}

func TestReciprocal(t *testing.T) {
	for _, pair := range [][2]int64{{1, 2}, {-3, 7}, {6, 4}, {5, -5}} {
		x, err := rationals.Fraction(pair[0], pair[1])
		require.NoError(t, err)
		y, err := rationals.Fraction(pair[1], pair[0])
		require.NoError(t, err)
		assert.True(t, x.Mul(y).IsEqual(rationals.One()))
	}
}

func TestNoCancellation(t *testing.T) {
	x, err := rationals.Fraction(2, 4)
	require.NoError(t, err)
	half, err := rationals.Fraction(1, 2)
	require.NoError(t, err)
	assert.True(t, x.IsEqual(half))
	assert.True(t, x.Numerator().IsEqual(integers.NewInteger(2)))
	assert.True(t, x.Denominator().IsEqual(integers.NewInteger(4)))
	assert.Equal(t, "(2 / 4)", x.String())
	assert.Equal(t, "3", rationals.Embed(integers.NewInteger(3)).String())
}

func TestZeroDenominator(t *testing.T) {
	_, err := rationals.Fraction(1, 0)
	assert.True(t, errors.Is(err, ErrZeroDenominator))
	assert.True(t, errors.Is(err, algebra.ErrDivisionByZero))
	_, err = rationals.Zero().Inv()
	assert.True(t, errors.Is(err, algebra.ErrDivisionByZero))
}

// Over Z/(6), 2 and 3 are non-zero, but their product is zero.
func TestZeroDivisorDenominator(t *testing.T) {
	ring, err := quotients.NewQuotientRing[integers.Integer](integers.Integers, integers.NewInteger(6))
	require.NoError(t, err)
	field := NewFractionField[quotients.QuotientClass[integers.Integer]](ring)
	x, err := field.Fraction(1, 2)
	require.NoError(t, err)
	y, err := field.Fraction(1, 3)
	require.NoError(t, err)
	testutils.FatalUnlessPanicsWith(t, algebra.ErrDivisionByZero, func() { x.Mul(y) })
}

func TestElementConversion(t *testing.T) {
	gf7 := finiteFields.MustFiniteField(7)
	field := NewFractionField[finiteFields.Element](gf7)
	other := NewFractionField[finiteFields.Element](finiteFields.MustFiniteField(7))
	x, err := field.Element(3)
	require.NoError(t, err)
	assert.True(t, x.IsEqual(field.Embed(gf7.ElementFromInt64(3))))

	converted, err := field.Element(other.One())
	require.NoError(t, err)
	assert.True(t, converted.Field() == field)

	gf11 := NewFractionField[finiteFields.Element](finiteFields.MustFiniteField(11))
	_, err = field.Element(gf11.One())
	assert.True(t, errors.Is(err, ErrIncompatibleFractions))
	_, err = field.Element("x")
	assert.True(t, errors.Is(err, algebra.ErrIncompatibleOperand))
	assert.False(t, field.One().IsEqual(gf11.One()))
	testutils.FatalUnlessPanicsWith(t, algebra.ErrIncompatibleOperand, func() { field.One().Add(gf11.One()) })
	assert.Equal(t, "Q<GF<7>>", field.String())
}
