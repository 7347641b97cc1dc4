// Package curvePolynomials implements the ring F[x, y] / (y^2 - x^3 - Ax - B) of polynomial functions on an elliptic curve.
//
// Every element has a unique representation a(x) + y * b(x) with univariate polynomials a and b,
// obtained by substituting x^3 + Ax + B for y^2.
//
// Division with remainder is only supported in the two cases that Schoof's algorithm needs:
// divisors without y-part (divide a and b separately) and dividend and divisor both without x-part
// (divide the y-parts). Everything else is true bivariate division, which is not implemented.
package curvePolynomials

import (
	"fmt"

	"github.com/GottfriedHerold/Schoof/internal/callcounters"
	"github.com/GottfriedHerold/Schoof/schoof/algebra"
	"github.com/GottfriedHerold/Schoof/schoof/ellipticCurves"
	"github.com/GottfriedHerold/Schoof/schoof/polynomials"
)

// ErrorPrefix is the prefix used by all error message strings originating from this package.
const ErrorPrefix = "schoof / curve polynomials: "

var (
	ErrMultivariateDivision           = fmt.Errorf(ErrorPrefix+"bivariate division is not implemented: %w", algebra.ErrConstruction)
	ErrDivisionByZeroCurvePolynomial  = fmt.Errorf(ErrorPrefix+"division by the zero curve polynomial: %w", algebra.ErrDivisionByZero)
	ErrIncompatibleCurvePolynomials   = fmt.Errorf(ErrorPrefix+"curve polynomials on different curves: %w", algebra.ErrIncompatibleOperand)
	ErrCannotConvertToCurvePolynomial = fmt.Errorf(ErrorPrefix+"cannot convert to curve polynomial: %w", algebra.ErrIncompatibleOperand)
)

const callCounterMul callcounters.Id = "CurvePolynomialMul"

var _ = callcounters.CreateHierarchicalCallCounter(callCounterMul, "Multiplication of curve polynomials", algebra.CallCounterArithmetic)

// CurvePolynomialRing is the ring of polynomial functions on curve.
type CurvePolynomialRing[F algebra.FieldElement[F]] struct {
	curve       *ellipticCurves.EllipticCurve[F]
	polynomials *polynomials.PolynomialRing[F]
	ySquared    polynomials.Polynomial[F] // x^3 + Ax + B
}

// CurvePolynomial is an element xFactor(x) + y * yFactor(x) of a [CurvePolynomialRing].
type CurvePolynomial[F algebra.FieldElement[F]] struct {
	ring    *CurvePolynomialRing[F]
	xFactor polynomials.Polynomial[F]
	yFactor polynomials.Polynomial[F]
}

// NewCurvePolynomialRing creates the ring of polynomial functions on curve.
func NewCurvePolynomialRing[F algebra.FieldElement[F]](curve *ellipticCurves.EllipticCurve[F]) *CurvePolynomialRing[F] {
	polys := polynomials.NewPolynomialRing(curve.Field())
	field := curve.Field()
	ySquared := polys.FromCoefficients([]F{curve.B(), curve.A(), field.Zero(), field.One()})
	return &CurvePolynomialRing[F]{curve: curve, polynomials: polys, ySquared: ySquared}
}

// Curve returns the curve the ring is defined on.
func (ring *CurvePolynomialRing[F]) Curve() *ellipticCurves.EllipticCurve[F] {
	return ring.curve
}

// Polynomials returns the univariate polynomial ring in x the factors are taken from.
func (ring *CurvePolynomialRing[F]) Polynomials() *polynomials.PolynomialRing[F] {
	return ring.polynomials
}

// YSquared returns x^3 + Ax + B, which is substituted for y^2.
func (ring *CurvePolynomialRing[F]) YSquared() polynomials.Polynomial[F] {
	return ring.ySquared
}

func (ring *CurvePolynomialRing[F]) String() string {
	return fmt.Sprintf("%v[x, y] / (y^2 - (%v))", ring.curve.Field(), ring.ySquared)
}

// IsCompatible checks whether elements of ring and other can be combined, which is the case if the curves are compatible.
func (ring *CurvePolynomialRing[F]) IsCompatible(other *CurvePolynomialRing[F]) bool {
	return ring == other || (other != nil && ring.curve.IsCompatible(other.curve))
}

// FromFactors returns xFactor + y * yFactor.
func (ring *CurvePolynomialRing[F]) FromFactors(xFactor, yFactor polynomials.Polynomial[F]) CurvePolynomial[F] {
	return CurvePolynomial[F]{ring: ring, xFactor: xFactor, yFactor: yFactor}
}

// CurvePolynomial returns xFactor + y * yFactor, where both factors are converted with the univariate polynomial ring.
func (ring *CurvePolynomialRing[F]) CurvePolynomial(xFactor, yFactor any) (CurvePolynomial[F], error) {
	a, err := ring.polynomials.Element(xFactor)
	if err != nil {
		return CurvePolynomial[F]{}, fmt.Errorf("%w: x-factor: %v", ErrCannotConvertToCurvePolynomial, err)
	}
	b, err := ring.polynomials.Element(yFactor)
	if err != nil {
		return CurvePolynomial[F]{}, fmt.Errorf("%w: y-factor: %v", ErrCannotConvertToCurvePolynomial, err)
	}
	return ring.FromFactors(a, b), nil
}

func (ring *CurvePolynomialRing[F]) Zero() CurvePolynomial[F] {
	return ring.FromFactors(ring.polynomials.Zero(), ring.polynomials.Zero())
}

func (ring *CurvePolynomialRing[F]) One() CurvePolynomial[F] {
	return ring.FromFactors(ring.polynomials.One(), ring.polynomials.Zero())
}

// X returns the coordinate function x.
func (ring *CurvePolynomialRing[F]) X() CurvePolynomial[F] {
	return ring.FromFactors(ring.polynomials.X(), ring.polynomials.Zero())
}

// Y returns the coordinate function y.
func (ring *CurvePolynomialRing[F]) Y() CurvePolynomial[F] {
	return ring.FromFactors(ring.polynomials.Zero(), ring.polynomials.One())
}

// Element converts value into a curve polynomial.
// Accepted are curve polynomials on a compatible curve and everything the univariate polynomial ring accepts, which gives an element without y-part.
func (ring *CurvePolynomialRing[F]) Element(value any) (CurvePolynomial[F], error) {
	if element, ok := value.(CurvePolynomial[F]); ok {
		if !ring.IsCompatible(element.ring) {
			return CurvePolynomial[F]{}, fmt.Errorf("%w: %v is not in %v", ErrIncompatibleCurvePolynomials, element, ring)
		}
		return ring.FromFactors(element.xFactor, element.yFactor), nil
	}
	a, err := ring.polynomials.Element(value)
	if err != nil {
		return CurvePolynomial[F]{}, fmt.Errorf("%w: %v", ErrCannotConvertToCurvePolynomial, err)
	}
	return ring.FromFactors(a, ring.polynomials.Zero()), nil
}

// Ring returns the ring s belongs to.
func (s CurvePolynomial[F]) Ring() *CurvePolynomialRing[F] {
	return s.ring
}

// XFactor returns a for s = a(x) + y * b(x).
func (s CurvePolynomial[F]) XFactor() polynomials.Polynomial[F] {
	return s.xFactor
}

// YFactor returns b for s = a(x) + y * b(x).
func (s CurvePolynomial[F]) YFactor() polynomials.Polynomial[F] {
	return s.yFactor
}

func (s CurvePolynomial[F]) checkCompatible(other CurvePolynomial[F]) {
	if s.ring == nil || !s.ring.IsCompatible(other.ring) {
		panic(fmt.Errorf("%w: %v and %v", ErrIncompatibleCurvePolynomials, s, other))
	}
}

func (s CurvePolynomial[F]) IsZero() bool {
	return s.xFactor.IsZero() && s.yFactor.IsZero()
}

func (s CurvePolynomial[F]) IsEqual(other CurvePolynomial[F]) bool {
	if s.ring == nil || !s.ring.IsCompatible(other.ring) {
		return false
	}
	return s.xFactor.IsEqual(other.xFactor) && s.yFactor.IsEqual(other.yFactor)
}

func (s CurvePolynomial[F]) Add(other CurvePolynomial[F]) CurvePolynomial[F] {
	s.checkCompatible(other)
	return s.ring.FromFactors(s.xFactor.Add(other.xFactor), s.yFactor.Add(other.yFactor))
}

func (s CurvePolynomial[F]) Neg() CurvePolynomial[F] {
	return CurvePolynomial[F]{ring: s.ring, xFactor: s.xFactor.Neg(), yFactor: s.yFactor.Neg()}
}

// Mul returns the product, where y^2 is replaced by x^3 + Ax + B:
//
//	(a1 + y b1)(a2 + y b2) = (a1 a2 + b1 b2 (x^3 + Ax + B)) + y (a1 b2 + b1 a2)
func (s CurvePolynomial[F]) Mul(other CurvePolynomial[F]) CurvePolynomial[F] {
	s.checkCompatible(other)
	callCounterMul.Increment()
	xFactor := s.xFactor.Mul(other.xFactor)
	if !s.yFactor.IsZero() && !other.yFactor.IsZero() {
		xFactor = xFactor.Add(s.yFactor.Mul(other.yFactor).Mul(s.ring.ySquared))
	}
	yFactor := s.xFactor.Mul(other.yFactor).Add(s.yFactor.Mul(other.xFactor))
	return s.ring.FromFactors(xFactor, yFactor)
}

// DivMod divides s by divisor in one of the two supported cases:
//
//   - divisor = a(x): both factors of s are divided by a; the remainders form the remainder.
//   - s = y b(x) and divisor = y d(x): the quotient of b by d is returned as (x-only) quotient and y times their remainder as remainder.
//
// Other cases give an error wrapping [ErrMultivariateDivision]. A zero divisor gives an error wrapping [algebra.ErrDivisionByZero].
func (s CurvePolynomial[F]) DivMod(divisor CurvePolynomial[F]) (quotient CurvePolynomial[F], remainder CurvePolynomial[F], err error) {
	s.checkCompatible(divisor)
	ring := s.ring
	if divisor.IsZero() {
		err = fmt.Errorf("%w: %v / 0", ErrDivisionByZeroCurvePolynomial, s)
		return
	}
	if s.IsZero() {
		return ring.Zero(), ring.Zero(), nil
	}
	if !divisor.yFactor.IsZero() && (!s.xFactor.IsZero() || !divisor.xFactor.IsZero()) {
		err = fmt.Errorf("%w: (%v) / (%v)", ErrMultivariateDivision, s, divisor)
		return
	}

	if !divisor.xFactor.IsZero() {
		quotientX, remainderX, errX := s.xFactor.DivMod(divisor.xFactor)
		if errX != nil {
			err = errX
			return
		}
		quotientY, remainderY, errY := s.yFactor.DivMod(divisor.xFactor)
		if errY != nil {
			err = errY
			return
		}
		return ring.FromFactors(quotientX, quotientY), ring.FromFactors(remainderX, remainderY), nil
	}

	// y b = (b div d) * (y d) + y (b mod d)
	quotientY, remainderY, errY := s.yFactor.DivMod(divisor.yFactor)
	if errY != nil {
		err = errY
		return
	}
	zero := ring.polynomials.Zero()
	return ring.FromFactors(quotientY, zero), ring.FromFactors(zero, remainderY), nil
}

// String returns a representation of the form (a) + y * (b), omitting vanishing parts.
func (s CurvePolynomial[F]) String() string {
	switch {
	case s.yFactor.IsZero():
		return s.xFactor.String()
	case s.xFactor.IsZero():
		return fmt.Sprintf("y * (%v)", s.yFactor)
	default:
		return fmt.Sprintf("(%v) + y * (%v)", s.xFactor, s.yFactor)
	}
}
