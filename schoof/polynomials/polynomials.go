// Package polynomials implements univariate polynomials over a field.
//
// A [PolynomialRing] is created over a coefficient field and creates [Polynomial] elements.
// Polynomials are stored as coefficient lists ordered from low to high degree without trailing zeros,
// so the representation is canonical.
package polynomials

import (
	"fmt"
	"math"
	"strings"

	"github.com/GottfriedHerold/Schoof/internal/callcounters"
	"github.com/GottfriedHerold/Schoof/schoof/algebra"
)

// ErrorPrefix is the prefix used by all error message strings originating from this package.
const ErrorPrefix = "schoof / polynomials: "

var (
	ErrDivisionByZeroPolynomial  = fmt.Errorf(ErrorPrefix+"division by the zero polynomial: %w", algebra.ErrDivisionByZero)
	ErrLeadingCoefficient        = fmt.Errorf(ErrorPrefix+"leading coefficient of the divisor is not invertible: %w", algebra.ErrNotInvertible)
	ErrInverseUnsupported        = fmt.Errorf(ErrorPrefix+"multiplicative inverse of non-constant polynomials is unsupported: %w", algebra.ErrIncompatibleOperand)
	ErrIncompatiblePolynomials   = fmt.Errorf(ErrorPrefix+"polynomials from different rings: %w", algebra.ErrIncompatibleOperand)
	ErrCannotConvertToPolynomial = fmt.Errorf(ErrorPrefix+"cannot convert to polynomial: %w", algebra.ErrIncompatibleOperand)
)

// MinusInfinity is the degree of the zero polynomial. It is smaller than any actual degree and
// far enough from the minimal int that adding degrees of zero polynomials does not overflow.
const MinusInfinity = math.MinInt32

const (
	callCounterMul    callcounters.Id = "PolynomialMul"
	callCounterDivMod callcounters.Id = "PolynomialDivMod"
)

var _ = callcounters.CreateHierarchicalCallCounter(callCounterMul, "Multiplication of polynomials", algebra.CallCounterArithmetic)
var _ = callcounters.CreateHierarchicalCallCounter(callCounterDivMod, "Division with remainder of polynomials", algebra.CallCounterArithmetic)

// PolynomialRing is the ring of polynomials in one variable x over a field with elements of type C.
type PolynomialRing[C algebra.FieldElement[C]] struct {
	field algebra.Ring[C]
}

// Polynomial is an element of a [PolynomialRing].
type Polynomial[C algebra.FieldElement[C]] struct {
	ring         *PolynomialRing[C]
	coefficients []C // coefficients[i] is the coefficient of x^i. The last entry is never zero. Never modified after creation.
}

// NewPolynomialRing creates the ring of polynomials over field.
func NewPolynomialRing[C algebra.FieldElement[C]](field algebra.Ring[C]) *PolynomialRing[C] {
	return &PolynomialRing[C]{field: field}
}

// Field returns the coefficient field.
func (ring *PolynomialRing[C]) Field() algebra.Ring[C] {
	return ring.field
}

func (ring *PolynomialRing[C]) String() string {
	return ring.field.String() + "[x]"
}

// IsCompatible checks whether polynomials of ring and other can be combined.
// This is the case if both have the same coefficient field (as given by its String() representation).
func (ring *PolynomialRing[C]) IsCompatible(other *PolynomialRing[C]) bool {
	return ring == other || ring.field.String() == other.field.String()
}

// FromCoefficients creates a polynomial from coefficients ordered from low to high degree. Trailing zeros are stripped.
// The slice is copied.
func (ring *PolynomialRing[C]) FromCoefficients(coefficients []C) Polynomial[C] {
	length := len(coefficients)
	for length > 0 && coefficients[length-1].IsZero() {
		length--
	}
	copied := make([]C, length)
	copy(copied, coefficients[:length])
	return Polynomial[C]{ring: ring, coefficients: copied}
}

// fromOwnedCoefficients is like FromCoefficients, but takes ownership of the slice.
func (ring *PolynomialRing[C]) fromOwnedCoefficients(coefficients []C) Polynomial[C] {
	length := len(coefficients)
	for length > 0 && coefficients[length-1].IsZero() {
		length--
	}
	return Polynomial[C]{ring: ring, coefficients: coefficients[:length]}
}

// Polynomial creates a polynomial from coefficients ordered from low to high degree, e.g.
// ring.Polynomial(1, 0, 2) is 2x^2 + 1. Each coefficient is converted with the field's Element method.
func (ring *PolynomialRing[C]) Polynomial(coefficients ...any) (Polynomial[C], error) {
	converted := make([]C, len(coefficients))
	for i, coefficient := range coefficients {
		c, err := algebra.Coerce(ring.field, coefficient)
		if err != nil {
			return Polynomial[C]{}, fmt.Errorf("%w: coefficient %v: %v", ErrCannotConvertToPolynomial, i, err)
		}
		converted[i] = c
	}
	return ring.fromOwnedCoefficients(converted), nil
}

// MustPolynomial is like Polynomial, but panics on error.
func (ring *PolynomialRing[C]) MustPolynomial(coefficients ...any) Polynomial[C] {
	p, err := ring.Polynomial(coefficients...)
	if err != nil {
		panic(err)
	}
	return p
}

func (ring *PolynomialRing[C]) Zero() Polynomial[C] {
	return Polynomial[C]{ring: ring}
}

func (ring *PolynomialRing[C]) One() Polynomial[C] {
	return ring.Constant(ring.field.One())
}

// X returns the polynomial x.
func (ring *PolynomialRing[C]) X() Polynomial[C] {
	return Polynomial[C]{ring: ring, coefficients: []C{ring.field.Zero(), ring.field.One()}}
}

// Constant returns the constant polynomial c.
func (ring *PolynomialRing[C]) Constant(c C) Polynomial[C] {
	return ring.fromOwnedCoefficients([]C{c})
}

// Element converts value into a polynomial. Accepted are polynomials over a compatible ring, coefficient slices []C (low to high)
// and anything the coefficient field accepts, which gives a constant polynomial.
func (ring *PolynomialRing[C]) Element(value any) (Polynomial[C], error) {
	switch value := value.(type) {
	case Polynomial[C]:
		if value.ring == nil || !ring.IsCompatible(value.ring) {
			return Polynomial[C]{}, fmt.Errorf("%w: %v is not in %v", ErrIncompatiblePolynomials, value, ring)
		}
		return Polynomial[C]{ring: ring, coefficients: value.coefficients}, nil
	case []C:
		return ring.FromCoefficients(value), nil
	default:
		c, err := ring.field.Element(value)
		if err != nil {
			return Polynomial[C]{}, fmt.Errorf("%w: %v", ErrCannotConvertToPolynomial, err)
		}
		return ring.Constant(c), nil
	}
}

// Ring returns the polynomial ring p belongs to.
func (p Polynomial[C]) Ring() *PolynomialRing[C] {
	return p.ring
}

// Degree returns the degree of p; the zero polynomial has degree MinusInfinity.
func (p Polynomial[C]) Degree() int {
	if len(p.coefficients) == 0 {
		return MinusInfinity
	}
	return len(p.coefficients) - 1
}

// Coefficient returns the coefficient of x^i. This is zero for i > Degree() or i < 0.
func (p Polynomial[C]) Coefficient(i int) C {
	if i < 0 || i >= len(p.coefficients) {
		return p.ring.field.Zero()
	}
	return p.coefficients[i]
}

// Coefficients returns a copy of the coefficients, ordered from low to high degree. For the zero polynomial, the slice is empty.
func (p Polynomial[C]) Coefficients() []C {
	ret := make([]C, len(p.coefficients))
	copy(ret, p.coefficients)
	return ret
}

// LeadingCoefficient returns the coefficient of the highest power of x. This is zero for the zero polynomial.
func (p Polynomial[C]) LeadingCoefficient() C {
	return p.Coefficient(len(p.coefficients) - 1)
}

func (p Polynomial[C]) IsZero() bool {
	return len(p.coefficients) == 0
}

func (p Polynomial[C]) IsEqual(other Polynomial[C]) bool {
	if len(p.coefficients) != len(other.coefficients) {
		return false
	}
	for i := range p.coefficients {
		if !p.coefficients[i].IsEqual(other.coefficients[i]) {
			return false
		}
	}
	return true
}

func (p Polynomial[C]) checkCompatible(other Polynomial[C]) {
	if p.ring != other.ring && (p.ring == nil || other.ring == nil || !p.ring.IsCompatible(other.ring)) {
		panic(fmt.Errorf("%w: %v and %v", ErrIncompatiblePolynomials, p.ring, other.ring))
	}
}

func (p Polynomial[C]) Add(other Polynomial[C]) Polynomial[C] {
	p.checkCompatible(other)
	long, short := p.coefficients, other.coefficients
	if len(long) < len(short) {
		long, short = short, long
	}
	sum := make([]C, len(long))
	for i := range long {
		if i < len(short) {
			sum[i] = long[i].Add(short[i])
		} else {
			sum[i] = long[i]
		}
	}
	return p.ring.fromOwnedCoefficients(sum)
}

func (p Polynomial[C]) Neg() Polynomial[C] {
	negated := make([]C, len(p.coefficients))
	for i, c := range p.coefficients {
		negated[i] = c.Neg()
	}
	return Polynomial[C]{ring: p.ring, coefficients: negated}
}

// Mul returns p * other, using schoolbook multiplication.
func (p Polynomial[C]) Mul(other Polynomial[C]) Polynomial[C] {
	p.checkCompatible(other)
	callCounterMul.Increment()
	if p.IsZero() || other.IsZero() {
		return p.ring.Zero()
	}
	product := make([]C, len(p.coefficients)+len(other.coefficients)-1)
	for i := range product {
		product[i] = p.ring.field.Zero()
	}
	for i, a := range p.coefficients {
		if a.IsZero() {
			continue
		}
		for j, b := range other.coefficients {
			product[i+j] = product[i+j].Add(a.Mul(b))
		}
	}
	return p.ring.fromOwnedCoefficients(product)
}

// Scale returns c * p for a coefficient c.
func (p Polynomial[C]) Scale(c C) Polynomial[C] {
	scaled := make([]C, len(p.coefficients))
	for i, a := range p.coefficients {
		scaled[i] = a.Mul(c)
	}
	return p.ring.fromOwnedCoefficients(scaled)
}

// DivMod performs division with remainder: p == quotient * divisor + remainder with remainder.Degree() < divisor.Degree().
//
// The leading coefficient of divisor must be invertible; for divisor == 0, we return an error wrapping [ErrDivisionByZeroPolynomial].
func (p Polynomial[C]) DivMod(divisor Polynomial[C]) (quotient Polynomial[C], remainder Polynomial[C], err error) {
	p.checkCompatible(divisor)
	if divisor.IsZero() {
		err = fmt.Errorf("%w: dividing %v", ErrDivisionByZeroPolynomial, p)
		return
	}
	callCounterDivMod.Increment()
	leadingInverse, err := divisor.LeadingCoefficient().Inv()
	if err != nil {
		err = fmt.Errorf("%w: %v (%v)", ErrLeadingCoefficient, divisor, err)
		return
	}
	divisorDegree := divisor.Degree()
	if p.Degree() < divisorDegree {
		return p.ring.Zero(), p, nil
	}

	rest := p.Coefficients()
	quotientCoefficients := make([]C, p.Degree()-divisorDegree+1)
	for i := p.Degree(); i >= divisorDegree; i-- {
		factor := rest[i].Mul(leadingInverse)
		quotientCoefficients[i-divisorDegree] = factor
		if factor.IsZero() {
			continue
		}
		for j, d := range divisor.coefficients {
			rest[i-divisorDegree+j] = algebra.Sub(rest[i-divisorDegree+j], factor.Mul(d))
		}
	}
	quotient = p.ring.fromOwnedCoefficients(quotientCoefficients)
	remainder = p.ring.fromOwnedCoefficients(rest[:divisorDegree])
	return
}

// Inv returns the multiplicative inverse of a constant non-zero polynomial.
// For non-constant polynomials, this is unsupported and we return an error wrapping [ErrInverseUnsupported].
func (p Polynomial[C]) Inv() (Polynomial[C], error) {
	switch p.Degree() {
	case MinusInfinity:
		return Polynomial[C]{}, fmt.Errorf(ErrorPrefix+"inverse of the zero polynomial: %w", algebra.ErrDivisionByZero)
	case 0:
		inverse, err := p.coefficients[0].Inv()
		if err != nil {
			return Polynomial[C]{}, err
		}
		return p.ring.Constant(inverse), nil
	default:
		return Polynomial[C]{}, fmt.Errorf("%w: %v", ErrInverseUnsupported, p)
	}
}

// Evaluate substitutes point for x, using Horner's method.
func (p Polynomial[C]) Evaluate(point C) C {
	result := p.ring.field.Zero()
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		result = result.Mul(point).Add(p.coefficients[i])
	}
	return result
}

// String returns a representation such as "3x^2 + 1" with terms of decreasing degree.
func (p Polynomial[C]) String() string {
	if p.IsZero() {
		return "0"
	}
	terms := make([]string, 0, len(p.coefficients))
	for i := len(p.coefficients) - 1; i >= 0; i-- {
		c := p.coefficients[i]
		if c.IsZero() {
			continue
		}
		switch i {
		case 0:
			terms = append(terms, c.String())
		case 1:
			terms = append(terms, c.String()+"x")
		default:
			terms = append(terms, fmt.Sprintf("%vx^%d", c, i))
		}
	}
	return strings.Join(terms, " + ")
}
