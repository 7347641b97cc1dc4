// Package torsionGroups provides the l-torsion subgroup E[l] of an elliptic curve E in the implicit representation used by Schoof's algorithm.
//
// Instead of enumerating the l^2 torsion points (which live in extension fields), we work with a single generic point:
// the coordinate functions (x, y) regarded as elements of T = Frac(R / (psi_l)), where R is the ring of curve polynomials
// and psi_l is the l-th division polynomial. Any identity between rational maps that holds for this point holds for all
// finite l-torsion points simultaneously.
//
// The torsion must be an odd prime l > 2 not divisible by the characteristic. The torsion 2 would need genuine bivariate arithmetic,
// since psi_2 = 2y.
package torsionGroups

import (
	"fmt"
	"sync"

	"github.com/GottfriedHerold/Schoof/schoof/algebra"
	"github.com/GottfriedHerold/Schoof/schoof/curvePolynomials"
	"github.com/GottfriedHerold/Schoof/schoof/divisionPolynomials"
	"github.com/GottfriedHerold/Schoof/schoof/ellipticCurves"
	"github.com/GottfriedHerold/Schoof/schoof/errorsWithData"
	"github.com/GottfriedHerold/Schoof/schoof/fractionFields"
	"github.com/GottfriedHerold/Schoof/schoof/quotients"
)

// ErrorPrefix is the prefix used by all error message strings originating from this package.
const ErrorPrefix = "schoof / torsion groups: "

var ErrInvalidTorsion = fmt.Errorf(ErrorPrefix+"torsion must be odd, larger than 2 and not divisible by the characteristic: %w", algebra.ErrValue)

// TorsionErrorData is the data attached to errors wrapping [ErrInvalidTorsion].
type TorsionErrorData struct {
	Torsion int
}

// Family holds everything that is shared by the torsion groups of one curve: the ring of curve polynomials and
// the list of division polynomials. Groups are created once per torsion and then reused.
//
// A Family is safe for concurrent use.
type Family[F algebra.FieldElement[F]] struct {
	curve    *ellipticCurves.EllipticCurve[F]
	ring     *curvePolynomials.CurvePolynomialRing[F]
	division *divisionPolynomials.List[F]

	mutex  sync.Mutex
	groups map[int]*LTorsionGroup[F]
}

// LTorsionGroup is the l-torsion subgroup of a curve in its implicit representation.
type LTorsionGroup[F algebra.FieldElement[F]] struct {
	family  *Family[F]
	torsion int

	once     sync.Once
	elements []ellipticCurves.Point[fractionFields.Fraction[quotients.QuotientClass[curvePolynomials.CurvePolynomial[F]]]]
	err      error
}

// NewFamily creates the family of torsion groups of curve. The curve must be defined over a field of characteristic other than 2.
func NewFamily[F algebra.FieldElement[F]](curve *ellipticCurves.EllipticCurve[F]) *Family[F] {
	ring := curvePolynomials.NewCurvePolynomialRing(curve)
	return &Family[F]{
		curve:    curve,
		ring:     ring,
		division: divisionPolynomials.NewList(ring),
		groups:   make(map[int]*LTorsionGroup[F]),
	}
}

// Curve returns the curve of the family.
func (family *Family[F]) Curve() *ellipticCurves.EllipticCurve[F] {
	return family.curve
}

// CurvePolynomials returns the ring of curve polynomials over which the torsion groups are built.
func (family *Family[F]) CurvePolynomials() *curvePolynomials.CurvePolynomialRing[F] {
	return family.ring
}

// DivisionPolynomials returns the shared list of division polynomials.
func (family *Family[F]) DivisionPolynomials() *divisionPolynomials.List[F] {
	return family.division
}

// Group returns the torsion-subgroup of the given torsion.
// On invalid torsions, returns an error wrapping [ErrInvalidTorsion] with [TorsionErrorData] attached.
func (family *Family[F]) Group(torsion int) (*LTorsionGroup[F], error) {
	if torsion < 3 || torsion%2 == 0 || algebra.MustCoerce(family.curve.Field(), torsion).IsZero() {
		return nil, errorsWithData.NewErrorWithData_struct(ErrInvalidTorsion, ErrorPrefix+"invalid torsion %v{Torsion} for "+family.curve.String(), &TorsionErrorData{Torsion: torsion})
	}
	family.mutex.Lock()
	defer family.mutex.Unlock()
	group, ok := family.groups[torsion]
	if !ok {
		group = &LTorsionGroup[F]{family: family, torsion: torsion}
		family.groups[torsion] = group
	}
	return group, nil
}

// Torsion returns l.
func (group *LTorsionGroup[F]) Torsion() int {
	return group.torsion
}

// Curve returns the curve (over the base field) this is a subgroup of.
func (group *LTorsionGroup[F]) Curve() *ellipticCurves.EllipticCurve[F] {
	return group.family.curve
}

// Elements returns a one-element slice holding the generic l-torsion point (x, y) over Frac(R / (psi_l)).
// The point and the structures it lives in are constructed on the first call.
//
// The returned slice must not be modified.
func (group *LTorsionGroup[F]) Elements() ([]ellipticCurves.Point[fractionFields.Fraction[quotients.QuotientClass[curvePolynomials.CurvePolynomial[F]]]], error) {
	group.once.Do(group.construct)
	return group.elements, group.err
}

func (group *LTorsionGroup[F]) construct() {
	family := group.family
	psi, err := family.division.Get(group.torsion)
	if err != nil {
		group.err = err
		return
	}
	torsionRing, err := quotients.NewQuotientRing[curvePolynomials.CurvePolynomial[F]](family.ring, psi)
	if err != nil {
		group.err = fmt.Errorf(ErrorPrefix+"cannot reduce modulo psi_%v: %w", group.torsion, err)
		return
	}
	torsionField := fractionFields.NewFractionField[quotients.QuotientClass[curvePolynomials.CurvePolynomial[F]]](torsionRing)
	A, B := family.curve.Parameters()
	torsionCurve, err := ellipticCurves.NewEllipticCurve[fractionFields.Fraction[quotients.QuotientClass[curvePolynomials.CurvePolynomial[F]]]](torsionField, A, B)
	if err != nil {
		group.err = fmt.Errorf(ErrorPrefix+"cannot lift %v: %w", family.curve, err)
		return
	}
	x := torsionField.Embed(torsionRing.Class(family.ring.X()))
	y := torsionField.Embed(torsionRing.Class(family.ring.Y()))
	point, err := torsionCurve.Point(x, y)
	if err != nil {
		group.err = fmt.Errorf(ErrorPrefix+"generic torsion point is not on the lifted curve: %v: %w", err, algebra.ErrInternal)
		return
	}
	group.elements = []ellipticCurves.Point[fractionFields.Fraction[quotients.QuotientClass[curvePolynomials.CurvePolynomial[F]]]]{point}
}
