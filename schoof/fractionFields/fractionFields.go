// Package fractionFields implements formal quotients n/d over an integral domain.
//
// Fractions are stored as given, without cancellation: the domain need not have a gcd.
// Equality, addition and multiplication only use the ring operations of the domain (cross-multiplication),
// so the construction works over the integers, over polynomials and over quotient rings of curve polynomials alike.
//
// If the domain has zero divisors (e.g. a quotient ring modulo a reducible element), a product of non-zero denominators may be zero.
// Since Add and Mul have an infallible signature, they panic with an error wrapping [algebra.ErrDivisionByZero] in that case.
package fractionFields

import (
	"fmt"

	"github.com/GottfriedHerold/Schoof/internal/callcounters"
	"github.com/GottfriedHerold/Schoof/schoof/algebra"
)

// ErrorPrefix is the prefix used by all error message strings originating from this package.
const ErrorPrefix = "schoof / fraction fields: "

var (
	ErrZeroDenominator         = fmt.Errorf(ErrorPrefix+"denominator is zero: %w", algebra.ErrDivisionByZero)
	ErrIncompatibleFractions   = fmt.Errorf(ErrorPrefix+"fractions over different domains: %w", algebra.ErrIncompatibleOperand)
	ErrCannotConvertToFraction = fmt.Errorf(ErrorPrefix+"cannot convert to fraction: %w", algebra.ErrIncompatibleOperand)
)

const (
	callCounterMul     callcounters.Id = "FractionMul"
	callCounterAdd     callcounters.Id = "FractionAdd"
	callCounterInverse callcounters.Id = "FractionInverse"
)

var _ = callcounters.CreateHierarchicalCallCounter(callCounterAdd, "Addition of fractions", algebra.CallCounterArithmetic)
var _ = callcounters.CreateHierarchicalCallCounter(callCounterMul, "Multiplication of fractions", algebra.CallCounterArithmetic)
var _ = callcounters.CreateHierarchicalCallCounter(callCounterInverse, "Inversion of fractions", algebra.CallCounterArithmetic)

// FractionField is the field of formal quotients over a domain with elements of type D.
type FractionField[D algebra.Element[D]] struct {
	domain algebra.Ring[D]
}

// Fraction is an element numerator / denominator of a [FractionField]. The denominator is never zero.
type Fraction[D algebra.Element[D]] struct {
	field       *FractionField[D]
	numerator   D
	denominator D
}

// NewFractionField creates the field of fractions over domain.
func NewFractionField[D algebra.Element[D]](domain algebra.Ring[D]) *FractionField[D] {
	return &FractionField[D]{domain: domain}
}

// Domain returns the ring numerators and denominators are taken from.
func (field *FractionField[D]) Domain() algebra.Ring[D] {
	return field.domain
}

func (field *FractionField[D]) String() string {
	return fmt.Sprintf("Q<%v>", field.domain)
}

// IsCompatible checks whether fractions of field and other can be combined.
// This is the case if both have the same domain (as given by its String() representation).
func (field *FractionField[D]) IsCompatible(other *FractionField[D]) bool {
	return field == other || (other != nil && field.domain.String() == other.domain.String())
}

// newFraction is the internal constructor used by the arithmetic. It panics on a zero denominator.
func (field *FractionField[D]) newFraction(numerator, denominator D) Fraction[D] {
	if denominator.IsZero() {
		panic(fmt.Errorf("%w: %v / %v in %v", ErrZeroDenominator, numerator, denominator, field))
	}
	return Fraction[D]{field: field, numerator: numerator, denominator: denominator}
}

// Fraction returns numerator / denominator, where both arguments are first converted into the domain.
// A zero denominator gives an error wrapping [algebra.ErrDivisionByZero].
func (field *FractionField[D]) Fraction(numerator, denominator any) (Fraction[D], error) {
	n, err := algebra.Coerce(field.domain, numerator)
	if err != nil {
		return Fraction[D]{}, fmt.Errorf("%w: numerator: %v", ErrCannotConvertToFraction, err)
	}
	d, err := algebra.Coerce(field.domain, denominator)
	if err != nil {
		return Fraction[D]{}, fmt.Errorf("%w: denominator: %v", ErrCannotConvertToFraction, err)
	}
	if d.IsZero() {
		return Fraction[D]{}, fmt.Errorf("%w: %v / %v", ErrZeroDenominator, n, d)
	}
	return Fraction[D]{field: field, numerator: n, denominator: d}, nil
}

// Embed returns x / 1.
func (field *FractionField[D]) Embed(x D) Fraction[D] {
	return Fraction[D]{field: field, numerator: x, denominator: field.domain.One()}
}

func (field *FractionField[D]) Zero() Fraction[D] {
	return field.Embed(field.domain.Zero())
}

func (field *FractionField[D]) One() Fraction[D] {
	return field.Embed(field.domain.One())
}

// Element converts value into a fraction. Accepted are fractions over a compatible domain and
// anything the domain accepts, which is embedded as value / 1.
func (field *FractionField[D]) Element(value any) (Fraction[D], error) {
	if fraction, ok := value.(Fraction[D]); ok {
		if !field.IsCompatible(fraction.field) {
			return Fraction[D]{}, fmt.Errorf("%w: %v is not in %v", ErrIncompatibleFractions, fraction, field)
		}
		return Fraction[D]{field: field, numerator: fraction.numerator, denominator: fraction.denominator}, nil
	}
	x, err := field.domain.Element(value)
	if err != nil {
		return Fraction[D]{}, fmt.Errorf("%w: %v", ErrCannotConvertToFraction, err)
	}
	return field.Embed(x), nil
}

// Field returns the fraction field f belongs to.
func (f Fraction[D]) Field() *FractionField[D] {
	return f.field
}

func (f Fraction[D]) Numerator() D {
	return f.numerator
}

func (f Fraction[D]) Denominator() D {
	return f.denominator
}

func (f Fraction[D]) checkCompatible(other Fraction[D]) {
	if f.field == nil || !f.field.IsCompatible(other.field) {
		panic(fmt.Errorf("%w: %v and %v", ErrIncompatibleFractions, f, other))
	}
}

func (f Fraction[D]) IsZero() bool {
	return f.numerator.IsZero()
}

// IsEqual compares by cross-multiplication, so 2/4 and 1/2 are equal.
func (f Fraction[D]) IsEqual(other Fraction[D]) bool {
	if f.field == nil || !f.field.IsCompatible(other.field) {
		return false
	}
	return f.numerator.Mul(other.denominator).IsEqual(other.numerator.Mul(f.denominator))
}

func (f Fraction[D]) Add(other Fraction[D]) Fraction[D] {
	f.checkCompatible(other)
	callCounterAdd.Increment()
	numerator := f.numerator.Mul(other.denominator).Add(f.denominator.Mul(other.numerator))
	return f.field.newFraction(numerator, f.denominator.Mul(other.denominator))
}

func (f Fraction[D]) Neg() Fraction[D] {
	return Fraction[D]{field: f.field, numerator: f.numerator.Neg(), denominator: f.denominator}
}

func (f Fraction[D]) Mul(other Fraction[D]) Fraction[D] {
	f.checkCompatible(other)
	callCounterMul.Increment()
	return f.field.newFraction(f.numerator.Mul(other.numerator), f.denominator.Mul(other.denominator))
}

// Inv swaps numerator and denominator. For a zero numerator, returns an error wrapping [algebra.ErrDivisionByZero].
func (f Fraction[D]) Inv() (Fraction[D], error) {
	if f.numerator.IsZero() {
		return Fraction[D]{}, fmt.Errorf("%w: inverse of %v", ErrZeroDenominator, f)
	}
	callCounterInverse.Increment()
	return Fraction[D]{field: f.field, numerator: f.denominator, denominator: f.numerator}, nil
}

// String returns "n" for fractions with denominator one and "(n / d)" otherwise.
func (f Fraction[D]) String() string {
	if f.field != nil && f.denominator.IsEqual(f.field.domain.One()) {
		return f.numerator.String()
	}
	return fmt.Sprintf("(%v / %v)", f.numerator, f.denominator)
}
