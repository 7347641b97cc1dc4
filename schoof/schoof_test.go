package schoof

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"testing"

	log "github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GottfriedHerold/Schoof/internal/testutils"
	"github.com/GottfriedHerold/Schoof/schoof/algebra"
	"github.com/GottfriedHerold/Schoof/schoof/finiteFields"
	"github.com/GottfriedHerold/Schoof/schoof/integers"
	"github.com/GottfriedHerold/Schoof/schoof/numberTheory"
)

// Curves with known orders: the first two are from section 4.1 of Washington, "Elliptic Curves: Number Theory and Cryptography",
// the third is the curve of the Certicom ECC tutorial.
var knownCurves = []struct {
	p, A, B int64
	order   int64
}{
	{5, 1, 1, 9},
	{7, 0, 2, 9},
	{23, 7, 16, 22},
}

func mustCurve(t *testing.T, p, A, B int64) *Curve {
	t.Helper()
	curve, err := NewCurve(p, A, B)
	require.NoError(t, err)
	return curve
}

// bruteForceOrder counts the points of curve by trying all pairs (x, y), plus 1 for the point at infinity.
func bruteForceOrder(curve *Curve) int64 {
	field := curve.Field().(*finiteFields.FiniteField)
	elements := field.Elements()
	order := int64(1)
	for _, x := range elements {
		for _, y := range elements {
			if curve.Contains(x, y) {
				order++
			}
		}
	}
	return order
}

func TestBruteForceOrder(t *testing.T) {
	for _, known := range knownCurves {
		assert.Equal(t, known.order, bruteForceOrder(mustCurve(t, known.p, known.A, known.B)))
	}
}

func TestCountPoints(t *testing.T) {
	for name, algorithm := range Algorithms {
		for _, known := range knownCurves {
			t.Run(fmt.Sprintf("%v/%v_%v_%v", name, known.p, known.A, known.B), func(t *testing.T) {
				if testing.Short() && name == "naive" && known.p > 20 {
					t.Skip("naive algorithm is slow for p = 23")
				}
				order, err := CountPoints(algorithm, known.p, known.A, known.B, nil)
				require.NoError(t, err)
				assert.Equal(t, known.order, order.Int64())
			})
		}
	}
}

func TestProgressLine(t *testing.T) {
	var buf bytes.Buffer
	order, err := ReducedComputationSchoofAlgorithm(5, 1, 1, &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(9), order.Int64())
	assert.Equal(t, "Counting points on y^2 = x^3 + 1x + 1 over GF<5>: 9\n", buf.String())

	buf.Reset()
	order, err = NaiveSchoofAlgorithm(7, 0, 2, &buf)
	require.NoError(t, err)
	assert.Equal(t, int64(9), order.Int64())
	assert.Equal(t, "Counting points on y^2 = x^3 + 0x + 2 over GF<7>: 9\n", buf.String())

	buf.Reset()
	_, err = NaiveSchoofAlgorithm(5, 0, 0, &buf)
	assert.True(t, errors.Is(err, ErrSingularCurve))
	assert.Equal(t, "", buf.String())
}

func TestInvalidParameters(t *testing.T) {
	testCases := []struct {
		p, A, B int64
		target  error
	}{
		{2, 1, 1, ErrUnsupportedCharacteristic},
		{3, 1, 1, ErrUnsupportedCharacteristic},
		{9, 1, 1, ErrUnsupportedCharacteristic},
		{15, 1, 1, ErrUnsupportedCharacteristic},
		{5, 0, 0, ErrSingularCurve},
		{7, 4, 2, ErrSingularCurve}, // 4 * 64 + 27 * 4 = 364 = 52 * 7
	}
	for _, testCase := range testCases {
		_, err := ReducedComputationSchoofAlgorithm(testCase.p, testCase.A, testCase.B, nil)
		assert.Truef(t, errors.Is(err, testCase.target), "(%v, %v, %v) gave %v", testCase.p, testCase.A, testCase.B, err)
		assert.True(t, algebra.IsArithmeticError(err))
	}
}

func TestLookupAlgorithm(t *testing.T) {
	for _, name := range []string{"naive", "reduced"} {
		algorithm, err := LookupAlgorithm(name)
		require.NoError(t, err)
		assert.NotNil(t, algorithm)
	}
	_, err := LookupAlgorithm("fast")
	assert.True(t, errors.Is(err, ErrUnknownAlgorithm))
	assert.True(t, errors.Is(err, algebra.ErrValue))
}

// On points over the base field, Frobenius is the identity.
func TestFrobeniusOnRationalPoints(t *testing.T) {
	curve := mustCurve(t, 5, 1, 1)
	field := curve.Field().(*finiteFields.FiniteField)
	for _, x := range field.Elements() {
		for _, y := range field.Elements() {
			if !curve.Contains(x, y) {
				continue
			}
			point := curve.MustPoint(x, y)
			image, err := Frobenius(point, 5)
			require.NoError(t, err)
			testutils.FatalUnless(t, image.IsEqual(point), "Frobenius moved %v to %v", point, image)
		}
	}
	image, err := Frobenius(curve.Infinity(), 5)
	require.NoError(t, err)
	assert.True(t, image.IsInfinite())
}

func TestFrobeniusTraceMod2(t *testing.T) {
	for _, p := range []int64{5, 7, 11, 13, 17, 19, 23, 29, 31} {
		for A := int64(0); A < 4; A++ {
			for B := int64(0); B < 4; B++ {
				curve, err := NewCurve(p, A, B)
				if errors.Is(err, ErrSingularCurve) {
					continue
				}
				require.NoError(t, err)
				trace := p + 1 - bruteForceOrder(curve)
				congruence, err := FrobeniusTraceMod2(curve)
				require.NoError(t, err)
				expected := integers.NewInteger(trace).Mod(integers.NewInteger(2))
				testutils.FatalUnless(t, congruence.Remainder().IsEqual(expected), "trace of %v is %v, but computed %v", curve, trace, congruence)
			}
		}
	}
}

func TestTraceModL(t *testing.T) {
	for _, known := range knownCurves[:2] {
		curve := mustCurve(t, known.p, known.A, known.B)
		trace := integers.NewInteger(known.p + 1 - known.order)
		family := FamilyOf(curve)
		for _, l := range []int{3, 5, 7} {
			if int64(l) == known.p {
				continue
			}
			group, err := family.Group(l)
			require.NoError(t, err)
			expected := trace.Mod(integers.NewInteger(int64(l)))

			reduced, err := ReducedFrobeniusTraceModL(group)
			require.NoError(t, err)
			assert.Truef(t, reduced.Remainder().IsEqual(expected), "reduced: trace of %v modulo %v is %v, got %v", curve, l, expected, reduced)

			naive, err := NaiveFrobeniusTraceModL(group)
			require.NoError(t, err)
			assert.Truef(t, naive.Remainder().IsEqual(expected), "naive: trace of %v modulo %v is %v, got %v", curve, l, expected, naive)
		}
	}
}

func TestTraceRanges(t *testing.T) {
	testCases := []struct {
		p                      int64
		naiveLower, naiveUpper int64
		hasseLower, hasseUpper int64
	}{
		{5, -5, 6, -6, 7},
		{7, -7, 8, -6, 7},
		{23, -23, 24, -10, 11},
		{29, -29, 30, -12, 13},
	}
	for _, testCase := range testCases {
		field := finiteFields.MustFiniteField(testCase.p)
		assert.Equal(t, numberTheory.NewRange(testCase.naiveLower, testCase.naiveUpper).String(), NaiveTraceRange(field).String())
		assert.Equal(t, numberTheory.NewRange(testCase.hasseLower, testCase.hasseUpper).String(), HasseTraceRange(field).String())
	}
}

func TestTorsionPrimes(t *testing.T) {
	testCases := []struct {
		p       int64
		naive   []int
		reduced []int
	}{
		{5, []int{3, 7}, []int{2, 7}},
		{7, []int{3, 5}, []int{3, 5}},
		{23, []int{3, 5, 7}, []int{2, 3, 5}},
	}
	for _, testCase := range testCases {
		field := finiteFields.MustFiniteField(testCase.p)
		naive, err := NaiveTorsionPrimes(field)
		require.NoError(t, err)
		assert.Equal(t, testCase.naive, naive)
		reduced, err := ReducedTorsionPrimes(field)
		require.NoError(t, err)
		assert.Equal(t, testCase.reduced, reduced)
	}
}

func TestFamilyCache(t *testing.T) {
	FlushFamilyCache()
	family1 := FamilyOf(mustCurve(t, 7, 0, 2))
	family2 := FamilyOf(mustCurve(t, 7, 0, 2))
	family3 := FamilyOf(mustCurve(t, 7, 1, 2))
	assert.True(t, family1 == family2)
	assert.False(t, family1 == family3)
	FlushFamilyCache()
	assert.False(t, family1 == FamilyOf(mustCurve(t, 7, 0, 2)))
}

func TestOrderFromTrace(t *testing.T) {
	assert.Equal(t, int64(9), OrderFromTrace(integers.NewInteger(5), big.NewInt(-3)).Int64())
	assert.Equal(t, int64(22), OrderFromTrace(integers.NewInteger(23), big.NewInt(2)).Int64())
}

// Library code only logs at debug level or below; reporting results is up to the caller.
func TestTraceLogsAtDebugLevel(t *testing.T) {
	hook := logtest.NewGlobal()
	defer hook.Reset()
	level := log.GetLevel()
	log.SetLevel(log.TraceLevel)
	defer log.SetLevel(level)

	_, err := ReducedFrobeniusTrace(mustCurve(t, 5, 1, 1))
	require.NoError(t, err)
	_, err = NaiveFrobeniusTrace(mustCurve(t, 7, 0, 2))
	require.NoError(t, err)
	entries := hook.AllEntries()
	require.NotEmpty(t, entries)
	for _, entry := range entries {
		assert.GreaterOrEqualf(t, uint32(entry.Level), uint32(log.DebugLevel), "%q logged at %v", entry.Message, entry.Level)
	}
}
