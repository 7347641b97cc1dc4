package integers

import (
	"errors"
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GottfriedHerold/Schoof/internal/testutils"
	"github.com/GottfriedHerold/Schoof/schoof/algebra"
)

var integerSamples = testutils.NewSampleCache(func(rng *rand.Rand) Integer {
	return NewInteger(rng.Int63n(2001) - 1000)
})

func TestFloorDivision(t *testing.T) {
	cases := []struct{ dividend, divisor, quotient, remainder int64 }{
		{7, 3, 2, 1},
		{-7, 3, -3, 2},
		{7, -3, -3, -2},
		{-7, -3, 2, -1},
		{6, 3, 2, 0},
		{-6, 3, -2, 0},
		{0, 5, 0, 0},
	}
	for _, c := range cases {
		q, r, err := NewInteger(c.dividend).DivMod(NewInteger(c.divisor))
		require.NoError(t, err)
		assert.Truef(t, q.IsEqual(NewInteger(c.quotient)), "%v // %v gave %v", c.dividend, c.divisor, q)
		assert.Truef(t, r.IsEqual(NewInteger(c.remainder)), "%v %% %v gave %v", c.dividend, c.divisor, r)
	}
}

func TestDivisionByZero(t *testing.T) {
	_, _, err := NewInteger(5).DivMod(Integer{})
	assert.True(t, errors.Is(err, algebra.ErrDivisionByZero))
	testutils.FatalUnlessPanicsWith(t, algebra.ErrDivisionByZero, func() { NewInteger(5).Mod(NewInteger(0)) })
}

func TestDivisionLaw(t *testing.T) {
	dividends := integerSamples.GetElements(1, 50)
	divisors := integerSamples.GetElements(2, 50)
	for i := range dividends {
		if divisors[i].IsZero() {
			continue
		}
		q, r, err := dividends[i].DivMod(divisors[i])
		require.NoError(t, err)
		testutils.FatalUnless(t, q.Mul(divisors[i]).Add(r).IsEqual(dividends[i]), "division law violated for %v, %v", dividends[i], divisors[i])
		testutils.FatalUnless(t, r.Abs().Cmp(divisors[i].Abs()) < 0, "remainder too large")
		testutils.FatalUnless(t, r.IsZero() || r.Sign() == divisors[i].Sign(), "remainder has wrong sign")
	}
}

func TestRingLaws(t *testing.T) {
	a := integerSamples.GetElements(3, 30)
	b := integerSamples.GetElements(4, 30)
	c := integerSamples.GetElements(5, 30)
	for i := range a {
		testutils.FatalUnless(t, a[i].Add(b[i].Add(c[i])).IsEqual(a[i].Add(b[i]).Add(c[i])), "addition not associative")
		testutils.FatalUnless(t, a[i].Add(a[i].Neg()).IsZero(), "a + (-a) != 0")
		testutils.FatalUnless(t, a[i].Mul(b[i].Add(c[i])).IsEqual(a[i].Mul(b[i]).Add(a[i].Mul(c[i]))), "not distributive")
		testutils.FatalUnless(t, a[i].Mul(b[i]).IsEqual(b[i].Mul(a[i])), "not commutative")
	}
}

func TestZeroValue(t *testing.T) {
	var z Integer
	assert.True(t, z.IsZero())
	assert.True(t, z.IsEqual(Integers.Zero()))
	assert.Equal(t, "0", z.String())
	assert.True(t, z.Add(NewInteger(3)).IsEqual(NewInteger(3)))
}

func TestInverse(t *testing.T) {
	inv, err := NewInteger(-1).Inv()
	require.NoError(t, err)
	assert.True(t, inv.IsEqual(NewInteger(-1)))
	_, err = NewInteger(2).Inv()
	assert.True(t, errors.Is(err, algebra.ErrNotInvertible))
	assert.True(t, errors.Is(err, algebra.ErrDivisionByZero))
	_, err = Integers.Zero().Inv()
	assert.True(t, errors.Is(err, algebra.ErrDivisionByZero))
}

func TestElementConversion(t *testing.T) {
	for _, value := range []any{5, int8(5), int16(5), int32(5), int64(5), uint(5), uint8(5), uint16(5), uint32(5), uint64(5), big.NewInt(5), "5", NewInteger(5)} {
		converted, err := Integers.Element(value)
		require.NoErrorf(t, err, "converting %v of type %T", value, value)
		assert.True(t, converted.IsEqual(NewInteger(5)))
	}
	for _, value := range []any{"five", 5.0, nil, (*big.Int)(nil)} {
		_, err := Integers.Element(value)
		assert.Truef(t, errors.Is(err, algebra.ErrIncompatibleOperand), "converting %v gave %v", value, err)
	}
	huge, err := Parse("123456789012345678901234567890")
	require.NoError(t, err)
	_, err = huge.Int64()
	assert.True(t, errors.Is(err, algebra.ErrValue))
}

func TestFromBigIntCopies(t *testing.T) {
	x := big.NewInt(10)
	z := FromBigInt(x)
	x.SetInt64(11)
	assert.Equal(t, "10", z.String())
	z.BigInt().SetInt64(12)
	assert.Equal(t, "10", z.String())
}

func TestPrimality(t *testing.T) {
	assert.True(t, NewInteger(23).IsProbablyPrime())
	assert.False(t, NewInteger(25).IsProbablyPrime())
	assert.False(t, NewInteger(-23).IsProbablyPrime())
}
