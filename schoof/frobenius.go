package schoof

import (
	"fmt"

	"github.com/GottfriedHerold/Schoof/internal/callcounters"
	"github.com/GottfriedHerold/Schoof/schoof/algebra"
	"github.com/GottfriedHerold/Schoof/schoof/ellipticCurves"
	"github.com/GottfriedHerold/Schoof/schoof/finiteFields"
	"github.com/GottfriedHerold/Schoof/schoof/numberTheory"
	"github.com/GottfriedHerold/Schoof/schoof/polynomials"
	"github.com/GottfriedHerold/Schoof/schoof/quotients"
)

const callCounterFrobenius callcounters.Id = "Frobenius"

var _ = callcounters.CreateHierarchicalCallCounter(callCounterFrobenius, "Frobenius evaluations", algebra.CallCounterCurve)

// Frobenius returns (x^q, y^q) for the finite point (x, y); the point at infinity is mapped to itself.
//
// For the generic torsion point, q must be the size of the base field, in which case this is the Frobenius endomorphism.
// The result is checked to lie on the curve of point.
func Frobenius[F algebra.FieldElement[F]](point ellipticCurves.Point[F], q int) (ellipticCurves.Point[F], error) {
	if point.IsInfinite() {
		return point, nil
	}
	callCounterFrobenius.Increment()
	field := point.Curve().Field()
	x, err := algebra.Pow(field, point.X(), q)
	if err != nil {
		return ellipticCurves.Point[F]{}, err
	}
	y, err := algebra.Pow(field, point.Y(), q)
	if err != nil {
		return ellipticCurves.Point[F]{}, err
	}
	return point.Curve().Point(x, y)
}

// FrobeniusTraceMod2 returns the trace of Frobenius of curve modulo 2.
//
// The trace is even if and only if the curve has a point of order 2, i.e. x^3 + Ax + B has a root in GF(q).
// This is the case if and only if gcd(x^q - x, x^3 + Ax + B) is non-constant.
func FrobeniusTraceMod2(curve *Curve) (trace numberTheory.Congruence, err error) {
	defer algebra.RecoverArithmeticPanic(&err)
	field, err := fieldOf(curve)
	if err != nil {
		return
	}
	q, err := fieldSize(field)
	if err != nil {
		return
	}
	polys := polynomials.NewPolynomialRing[finiteFields.Element](field)
	A, B := curve.Parameters()
	rightHandSide := polys.FromCoefficients([]finiteFields.Element{B, A, field.Zero(), field.One()})
	// x^q is computed modulo the right hand side, so the degrees stay bounded.
	quotientRing, err := quotients.NewQuotientRing[polynomials.Polynomial[finiteFields.Element]](polys, rightHandSide)
	if err != nil {
		return
	}
	x := quotientRing.Class(polys.X())
	xq, err := algebra.Pow[quotients.QuotientClass[polynomials.Polynomial[finiteFields.Element]]](quotientRing, x, q)
	if err != nil {
		return
	}
	difference := algebra.Sub(xq, x).Remainder()

	var remainder int64
	if difference.IsZero() {
		// all roots of the right hand side are in GF(q)
		remainder = 0
	} else {
		var gcd polynomials.Polynomial[finiteFields.Element]
		gcd, err = numberTheory.GCD[polynomials.Polynomial[finiteFields.Element]](polys, difference, rightHandSide)
		if err != nil {
			return
		}
		if gcd.Degree() == 0 {
			remainder = 1
		}
	}
	trace, err = numberTheory.NewCongruence(remainder, 2)
	if err != nil {
		err = fmt.Errorf(ErrorPrefix+"%v: %w", err, algebra.ErrInternal)
	}
	return
}
