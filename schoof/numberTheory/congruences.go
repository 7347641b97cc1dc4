// Package numberTheory collects the elementary number theory used to assemble the result of Schoof's algorithm:
// small primes, the extended Euclidean algorithm, the Chinese Remainder Theorem and
// the extraction of the unique representative of a congruence class in an interval.
//
// The algorithms are kept simple; they are meant for the small numbers occurring as torsion primes and moduli.
package numberTheory

import (
	"fmt"

	"github.com/GottfriedHerold/Schoof/schoof/algebra"
	"github.com/GottfriedHerold/Schoof/schoof/errorsWithData"
	"github.com/GottfriedHerold/Schoof/schoof/integers"
	"github.com/GottfriedHerold/Schoof/schoof/quotients"
)

// ErrorPrefix is the prefix used by all error message strings originating from this package.
const ErrorPrefix = "schoof / number theory: "

var (
	ErrEmptyCongruenceSystem   = fmt.Errorf(ErrorPrefix+"no congruences given: %w", algebra.ErrValue)
	ErrModuliNotCoprime        = fmt.Errorf(ErrorPrefix+"the Chinese Remainder Theorem requires pairwise coprime moduli: %w", algebra.ErrValue)
	ErrNotCoprime              = fmt.Errorf(ErrorPrefix+"no inverse modulo a non-coprime modulus: %w", algebra.ErrValue)
	ErrRepresentativeNotUnique = fmt.Errorf(ErrorPrefix+"range is longer than the modulus, the representative is not unique: %w", algebra.ErrValue)
	ErrNoRepresentative        = fmt.Errorf(ErrorPrefix+"range contains no representative: %w", algebra.ErrValue)
	ErrEmptyRange              = fmt.Errorf(ErrorPrefix+"range is empty: %w", algebra.ErrValue)
)

// RangeErrorData is the data attached to errors returned by [RepresentativeInRange].
type RangeErrorData struct {
	Modulus     integers.Integer
	RangeLength integers.Integer
}

// Congruence is a congruence class of integers.
type Congruence = quotients.QuotientClass[integers.Integer]

// NewCongruence returns the class of remainder modulo modulus. The returned class is reduced.
func NewCongruence(remainder, modulus int64) (Congruence, error) {
	ring, err := quotients.NewQuotientRing[integers.Integer](integers.Integers, integers.NewInteger(modulus))
	if err != nil {
		return Congruence{}, err
	}
	return ring.Class(integers.NewInteger(remainder)), nil
}

// InverseModulo returns n with n * a == 1 modulo m. The result is not reduced.
//
// If a and m are not coprime, returns an error wrapping [ErrNotCoprime].
func InverseModulo(a, m integers.Integer) (integers.Integer, error) {
	inverse, _, d, err := ExtendedEuclideanAlgorithm[integers.Integer](integers.Integers, a, m)
	if err != nil {
		return integers.Integer{}, fmt.Errorf("%w: %v modulo %v: %v", ErrNotCoprime, a, m, err)
	}
	switch {
	case d.IsOne():
		return inverse, nil
	case d.Neg().IsOne():
		return inverse.Neg(), nil
	default:
		return integers.Integer{}, fmt.Errorf("%w: gcd of %v and %v is %v", ErrNotCoprime, a, m, d)
	}
}

// SolveCongruenceEquations returns the congruence z modulo m_1 * ... * m_k with z == r_i modulo m_i for each given class r_i modulo m_i.
//
// The moduli must be pairwise coprime; otherwise, returns an error wrapping [ErrModuliNotCoprime].
// An empty list gives an error wrapping [ErrEmptyCongruenceSystem].
func SolveCongruenceEquations(congruences []Congruence) (Congruence, error) {
	if len(congruences) == 0 {
		return Congruence{}, ErrEmptyCongruenceSystem
	}
	for i := range congruences {
		for j := i + 1; j < len(congruences); j++ {
			d, err := GCD[integers.Integer](integers.Integers, congruences[i].Modulus(), congruences[j].Modulus())
			if err != nil || !d.Abs().IsOne() {
				return Congruence{}, fmt.Errorf("%w: %v and %v", ErrModuliNotCoprime, congruences[i].Modulus(), congruences[j].Modulus())
			}
		}
	}

	commonModulus := integers.NewInteger(1)
	for _, c := range congruences {
		commonModulus = commonModulus.Mul(c.Modulus())
	}
	commonRepresentative := integers.NewInteger(0)
	for _, c := range congruences {
		neutralizer, _, err := commonModulus.DivMod(c.Modulus())
		if err != nil {
			return Congruence{}, err
		}
		inverse, err := InverseModulo(neutralizer, c.Modulus())
		if err != nil {
			return Congruence{}, err
		}
		commonRepresentative = commonRepresentative.Add(c.Remainder().Mul(neutralizer).Mul(inverse))
	}
	ring, err := quotients.NewQuotientRing[integers.Integer](integers.Integers, commonModulus)
	if err != nil {
		return Congruence{}, err
	}
	return ring.Class(commonRepresentative), nil
}

// Range is the half-open interval [Lower, Upper) of integers.
type Range struct {
	Lower integers.Integer
	Upper integers.Integer
}

// NewRange returns the range [lower, upper).
func NewRange(lower, upper int64) Range {
	return Range{Lower: integers.NewInteger(lower), Upper: integers.NewInteger(upper)}
}

// Len returns the number of integers in the range (0 for empty ranges).
func (r Range) Len() integers.Integer {
	length := algebra.Sub(r.Upper, r.Lower)
	if length.Sign() < 0 {
		return integers.NewInteger(0)
	}
	return length
}

// Contains checks whether Lower <= x < Upper.
func (r Range) Contains(x integers.Integer) bool {
	return r.Lower.Cmp(x) <= 0 && x.Cmp(r.Upper) < 0
}

func (r Range) String() string {
	return fmt.Sprintf("[%v, %v)", r.Lower, r.Upper)
}

// RepresentativeInRange returns the unique integer in validRange that is congruent to c.
//
// If the range is longer than the modulus, returns an error wrapping [ErrRepresentativeNotUnique];
// if there is no representative in the range, returns an error wrapping [ErrNoRepresentative].
// In both cases, [RangeErrorData] is attached.
func RepresentativeInRange(c Congruence, validRange Range) (integers.Integer, error) {
	modulus := c.Modulus().Abs()
	length := validRange.Len()
	data := &RangeErrorData{Modulus: modulus, RangeLength: length}
	if length.IsZero() {
		return integers.Integer{}, errorsWithData.NewErrorWithData_struct(ErrEmptyRange, "", data)
	}
	if length.Cmp(modulus) > 0 {
		return integers.Integer{}, errorsWithData.NewErrorWithData_struct(ErrRepresentativeNotUnique, ErrorPrefix+"range of length %v{RangeLength} is longer than modulus %v{Modulus}", data)
	}
	quotient, remainder, err := validRange.Lower.DivMod(modulus)
	if err != nil {
		return integers.Integer{}, err
	}
	// The representative r of c satisfies 0 <= r < modulus, so one of r and r + modulus lies in the shifted range [remainder, remainder + length).
	shiftedRange := Range{Lower: remainder, Upper: remainder.Add(length)}
	representative := c.Remainder().Mod(modulus)
	switch {
	case shiftedRange.Contains(representative):
		return quotient.Mul(modulus).Add(representative), nil
	case shiftedRange.Contains(representative.Add(modulus)):
		return quotient.Add(integers.Integers.One()).Mul(modulus).Add(representative), nil
	default:
		return integers.Integer{}, errorsWithData.NewErrorWithData_struct(ErrNoRepresentative, ErrorPrefix+"no representative of "+c.String()+" in range "+validRange.String(), data)
	}
}
