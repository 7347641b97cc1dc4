package finiteFields

import (
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GottfriedHerold/Schoof/internal/testutils"
	"github.com/GottfriedHerold/Schoof/schoof/algebra"
	"github.com/GottfriedHerold/Schoof/schoof/integers"
)

func TestFieldSizes(t *testing.T) {
	for _, p := range testutils.SmallPrimes {
		field, err := NewFiniteField(p)
		require.NoError(t, err)
		assert.True(t, field.Characteristic().IsEqual(integers.NewInteger(p)))
		assert.True(t, field.Size().IsEqual(integers.NewInteger(p)))
	}
	for _, size := range []int{4, 8, 9, 25, 27, 121} {
		_, err := NewFiniteField(size)
		assert.Truef(t, errors.Is(err, ErrExtensionFieldsUnsupported), "size %v gave %v", size, err)
		assert.True(t, errors.Is(err, algebra.ErrValue))
	}
	for _, size := range []any{0, 1, -7, 6, 12, 100, "x"} {
		_, err := NewFiniteField(size)
		assert.Truef(t, errors.Is(err, ErrInvalidFieldSize), "size %v gave %v", size, err)
	}
}

func TestFieldAxioms(t *testing.T) {
	for _, p := range testutils.SmallPrimes {
		field := MustFiniteField(p)
		rng := rand.New(rand.NewSource(p))
		for i := 0; i < 20; i++ {
			a := field.ElementFromInt64(rng.Int63n(3 * p))
			b := field.ElementFromInt64(rng.Int63n(3*p) - p)
			c := field.ElementFromInt64(rng.Int63())
			testutils.FatalUnless(t, a.Add(b.Add(c)).IsEqual(a.Add(b).Add(c)), "addition not associative in %v", field)
			testutils.FatalUnless(t, a.Add(a.Neg()).IsZero(), "a + (-a) != 0 in %v", field)
			testutils.FatalUnless(t, a.Mul(b.Add(c)).IsEqual(a.Mul(b).Add(a.Mul(c))), "not distributive in %v", field)
			if !a.IsZero() {
				inverse, err := a.Inv()
				require.NoError(t, err)
				testutils.FatalUnless(t, a.Mul(inverse).IsEqual(field.One()), "a * a^-1 != 1 for %v", a)
			}
		}
	}
}

func TestInverseOfZero(t *testing.T) {
	field := MustFiniteField(7)
	_, err := field.Zero().Inv()
	assert.True(t, errors.Is(err, algebra.ErrDivisionByZero))
}

func TestElements(t *testing.T) {
	field := MustFiniteField(5)
	elements := field.Elements()
	require.Len(t, elements, 5)
	for i, e := range elements {
		assert.True(t, e.Remainder().IsEqual(integers.NewInteger(int64(i))))
	}
	assert.Equal(t, "GF<5>", field.String())
}

func TestReduction(t *testing.T) {
	field := MustFiniteField(7)
	for n := int64(-20); n < 20; n++ {
		testutils.FatalUnless(t, field.ElementFromInt64(n).IsEqual(field.ElementFromInt64(n+7)), "%v and %v differ modulo 7", n, n+7)
		reduced := field.ElementFromInt64(n)
		again, err := field.Element(reduced)
		require.NoError(t, err)
		testutils.FatalUnless(t, again.Remainder().IsEqual(reduced.Remainder()), "re-reducing changed the class")
		testutils.FatalUnless(t, reduced.Remainder().Sign() >= 0, "negative remainder")
	}
}

func TestInteroperability(t *testing.T) {
	field1 := MustFiniteField(11)
	field2 := MustFiniteField(11)
	other := MustFiniteField(13)
	sum := field1.ElementFromInt64(5).Add(field2.ElementFromInt64(7))
	assert.True(t, sum.IsEqual(field1.ElementFromInt64(1)))

	converted, err := field2.Element(field1.ElementFromInt64(3))
	require.NoError(t, err)
	assert.True(t, converted.IsEqual(field2.ElementFromInt64(3)))

	_, err = other.Element(field1.ElementFromInt64(3))
	assert.True(t, errors.Is(err, algebra.ErrIncompatibleOperand))
	assert.False(t, field1.ElementFromInt64(3).IsEqual(other.ElementFromInt64(3)))
	testutils.FatalUnlessPanicsWith(t, algebra.ErrIncompatibleOperand, func() {
		field1.One().Add(other.One())
	})
}

func TestFieldCoercion(t *testing.T) {
	field := MustFiniteField(7)
	result, err := algebra.AddAny[Element](field, field.ElementFromInt64(3), 5)
	require.NoError(t, err)
	assert.True(t, result.IsEqual(field.One()))
	quotient, err := algebra.DivAny[Element](field, field.One(), 3)
	require.NoError(t, err)
	assert.True(t, quotient.IsEqual(field.ElementFromInt64(5)))
	_, err = algebra.MulAny[Element](field, field.One(), 2.5)
	assert.True(t, errors.Is(err, algebra.ErrIncompatibleOperand))
	assert.True(t, algebra.IsEqualAny[Element](field, field.ElementFromInt64(6), -1))
}
