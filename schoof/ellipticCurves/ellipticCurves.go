// Package ellipticCurves implements elliptic curves y^2 = x^3 + Ax + B in short Weierstrass form over an arbitrary field
// and the group law on their points.
//
// Points are a sum type: a [Point] is either finite with affine coordinates (x, y) or the point at infinity, which is the
// neutral element. Every operation branches on both variants. The zero value of Point is the point at infinity of no particular curve.
package ellipticCurves

import (
	"fmt"

	"github.com/GottfriedHerold/Schoof/internal/callcounters"
	"github.com/GottfriedHerold/Schoof/schoof/algebra"
	"github.com/GottfriedHerold/Schoof/schoof/errorsWithData"
)

// ErrorPrefix is the prefix used by all error message strings originating from this package.
const ErrorPrefix = "schoof / elliptic curves: "

var (
	ErrNotOnCurve          = fmt.Errorf(ErrorPrefix+"point does not satisfy the curve equation: %w", algebra.ErrConstruction)
	ErrInvalidParameter    = fmt.Errorf(ErrorPrefix+"curve parameter not in the field: %w", algebra.ErrIncompatibleOperand)
	ErrIncompatiblePoints  = fmt.Errorf(ErrorPrefix+"points on different curves: %w", algebra.ErrIncompatibleOperand)
	ErrInfinityCoordinates = fmt.Errorf(ErrorPrefix+"the point at infinity has no affine coordinates: %w", algebra.ErrValue)
	ErrNegativeScalar      = fmt.Errorf(ErrorPrefix+"scalar multiplication by a negative integer: %w", algebra.ErrValue)
)

// PointErrorData is the data attached to errors wrapping [ErrNotOnCurve].
type PointErrorData struct {
	X string
	Y string
}

const (
	callCounterAddition callcounters.Id = "PointAddition"
	callCounterDoubling callcounters.Id = "PointDoubling"
)

var _ = callcounters.CreateHierarchicalCallCounter(callCounterAddition, "Point additions", algebra.CallCounterCurve)
var _ = callcounters.CreateHierarchicalCallCounter(callCounterDoubling, "Point doublings", algebra.CallCounterCurve)

// EllipticCurve is the curve y^2 = x^3 + Ax + B over a field with elements of type F.
//
// Singular curves can be constructed; callers that need a non-singular curve check [EllipticCurve.IsSingular].
type EllipticCurve[F algebra.FieldElement[F]] struct {
	field algebra.Ring[F]
	a     F
	b     F

	// small constants of the field, used by the group law and the discriminant
	two, three, four, twentySeven F
}

// NewEllipticCurve creates the curve y^2 = x^3 + Ax + B over field. A and B can be anything the field accepts.
func NewEllipticCurve[F algebra.FieldElement[F]](field algebra.Ring[F], A, B any) (*EllipticCurve[F], error) {
	a, err := algebra.Coerce(field, A)
	if err != nil {
		return nil, fmt.Errorf("%w: A = %v: %v", ErrInvalidParameter, A, err)
	}
	b, err := algebra.Coerce(field, B)
	if err != nil {
		return nil, fmt.Errorf("%w: B = %v: %v", ErrInvalidParameter, B, err)
	}
	one := field.One()
	two := one.Add(one)
	three := two.Add(one)
	four := two.Add(two)
	twentySeven := three.Mul(three).Mul(three)
	return &EllipticCurve[F]{field: field, a: a, b: b, two: two, three: three, four: four, twentySeven: twentySeven}, nil
}

// Field returns the field the curve is defined over.
func (curve *EllipticCurve[F]) Field() algebra.Ring[F] {
	return curve.field
}

// Parameters returns (A, B).
func (curve *EllipticCurve[F]) Parameters() (A F, B F) {
	return curve.a, curve.b
}

func (curve *EllipticCurve[F]) A() F {
	return curve.a
}

func (curve *EllipticCurve[F]) B() F {
	return curve.b
}

// IsSingular checks whether the discriminant 4A^3 + 27B^2 vanishes.
func (curve *EllipticCurve[F]) IsSingular() bool {
	a, b := curve.a, curve.b
	return curve.four.Mul(a).Mul(a).Mul(a).Add(curve.twentySeven.Mul(b).Mul(b)).IsZero()
}

// IsCompatible checks whether points on curve and other can be combined, i.e. whether the fields and parameters agree.
func (curve *EllipticCurve[F]) IsCompatible(other *EllipticCurve[F]) bool {
	if curve == other {
		return true
	}
	if curve == nil || other == nil {
		return false
	}
	return curve.field.String() == other.field.String() && curve.a.IsEqual(other.a) && curve.b.IsEqual(other.b)
}

// RightHandSide evaluates x^3 + Ax + B.
func (curve *EllipticCurve[F]) RightHandSide(x F) F {
	return x.Mul(x).Mul(x).Add(curve.a.Mul(x)).Add(curve.b)
}

// Contains checks whether (x, y) satisfies the curve equation.
func (curve *EllipticCurve[F]) Contains(x, y F) bool {
	return y.Mul(y).IsEqual(curve.RightHandSide(x))
}

// Point creates the finite point (x, y), where x and y can be anything the field accepts.
//
// If the coordinates do not satisfy the curve equation, returns an error wrapping [ErrNotOnCurve]
// with [PointErrorData] attached.
func (curve *EllipticCurve[F]) Point(x, y any) (Point[F], error) {
	xCoo, err := algebra.Coerce(curve.field, x)
	if err != nil {
		return Point[F]{}, err
	}
	yCoo, err := algebra.Coerce(curve.field, y)
	if err != nil {
		return Point[F]{}, err
	}
	if !curve.Contains(xCoo, yCoo) {
		return Point[F]{}, errorsWithData.NewErrorWithData_struct(ErrNotOnCurve, ErrorPrefix+"(%v{X}, %v{Y}) is not on the curve", &PointErrorData{X: xCoo.String(), Y: yCoo.String()})
	}
	return curve.finite(xCoo, yCoo), nil
}

// MustPoint is like Point, but panics on error.
func (curve *EllipticCurve[F]) MustPoint(x, y any) Point[F] {
	point, err := curve.Point(x, y)
	if err != nil {
		panic(err)
	}
	return point
}

// finite creates a finite point without checking the curve equation.
func (curve *EllipticCurve[F]) finite(x, y F) Point[F] {
	return Point[F]{curve: curve, kind: kindFinite, x: x, y: y}
}

// Infinity returns the neutral element of the group of points.
func (curve *EllipticCurve[F]) Infinity() Point[F] {
	return Point[F]{curve: curve, kind: kindInfinity}
}

func (curve *EllipticCurve[F]) String() string {
	return fmt.Sprintf("y^2 = x^3 + %vx + %v over %v", curve.a, curve.b, curve.field)
}

type pointKind int

const (
	kindInfinity pointKind = iota // zero value
	kindFinite
)

// Point is a point on an [EllipticCurve], either finite or the point at infinity.
type Point[F algebra.FieldElement[F]] struct {
	curve *EllipticCurve[F]
	kind  pointKind
	x, y  F // only meaningful for kind == kindFinite
}

// Curve returns the curve the point is on.
func (p Point[F]) Curve() *EllipticCurve[F] {
	return p.curve
}

func (p Point[F]) IsInfinite() bool {
	return p.kind == kindInfinity
}

// X returns the affine x-coordinate. It panics for the point at infinity.
func (p Point[F]) X() F {
	if p.kind == kindInfinity {
		panic(ErrInfinityCoordinates)
	}
	return p.x
}

// Y returns the affine y-coordinate. It panics for the point at infinity.
func (p Point[F]) Y() F {
	if p.kind == kindInfinity {
		panic(ErrInfinityCoordinates)
	}
	return p.y
}

func (p Point[F]) checkCompatible(other Point[F]) {
	if p.curve == nil || !p.curve.IsCompatible(other.curve) {
		panic(fmt.Errorf("%w: %v and %v", ErrIncompatiblePoints, p, other))
	}
}

// IsEqual checks whether p and other are the same point. The point at infinity only equals itself.
func (p Point[F]) IsEqual(other Point[F]) bool {
	switch {
	case p.kind == kindInfinity && other.kind == kindInfinity:
		return true
	case p.kind == kindInfinity || other.kind == kindInfinity:
		return false
	default:
		return p.x.IsEqual(other.x) && p.y.IsEqual(other.y)
	}
}

// Neg returns -p, which is (x, -y) for finite points.
func (p Point[F]) Neg() Point[F] {
	if p.kind == kindInfinity {
		return p
	}
	return Point[F]{curve: p.curve, kind: kindFinite, x: p.x, y: p.y.Neg()}
}

// Add returns p + other.
//
// The cases are handled in the order: neutral element, P + (-P), doubling, generic chord.
// An error is returned if the slope cannot be computed because its denominator is not invertible.
func (p Point[F]) Add(other Point[F]) (Point[F], error) {
	switch {
	case other.kind == kindInfinity:
		return p, nil
	case p.kind == kindInfinity:
		return other, nil
	}
	p.checkCompatible(other)
	if p.IsEqual(other.Neg()) {
		return p.curve.Infinity(), nil
	}

	var slope F
	var err error
	if p.x.IsEqual(other.x) {
		callCounterDoubling.Increment()
		// (3x^2 + A) / 2y
		slope, err = algebra.Div(p.curve.three.Mul(p.x).Mul(p.x).Add(p.curve.a), p.curve.two.Mul(p.y))
	} else {
		callCounterAddition.Increment()
		slope, err = algebra.Div(algebra.Sub(other.y, p.y), algebra.Sub(other.x, p.x))
	}
	if err != nil {
		return Point[F]{}, fmt.Errorf(ErrorPrefix+"cannot add %v and %v: %w", p, other, err)
	}
	x := algebra.Sub(p.x.Neg(), other.x).Add(slope.Mul(slope))
	y := algebra.Sub(p.y.Neg(), slope.Mul(algebra.Sub(x, p.x)))
	return p.curve.finite(x, y), nil
}

// Sub returns p - other.
func (p Point[F]) Sub(other Point[F]) (Point[F], error) {
	return p.Add(other.Neg())
}

// ScalarMul returns n * p by repeated addition, so it takes n-1 additions.
// 0 * p is the point at infinity; negative n give an error wrapping [ErrNegativeScalar].
func (p Point[F]) ScalarMul(n int) (Point[F], error) {
	if n < 0 {
		return Point[F]{}, fmt.Errorf("%w: %v * %v", ErrNegativeScalar, n, p)
	}
	if n == 0 {
		return p.curve.Infinity(), nil
	}
	result := p
	for i := 1; i < n; i++ {
		var err error
		result, err = result.Add(p)
		if err != nil {
			return Point[F]{}, err
		}
	}
	return result, nil
}

// MulPoint returns n * p. It is the same as p.ScalarMul(n).
func MulPoint[F algebra.FieldElement[F]](n int, p Point[F]) (Point[F], error) {
	return p.ScalarMul(n)
}

// String returns "(x, y)" for finite points and "(infinity)" for the point at infinity.
func (p Point[F]) String() string {
	if p.kind == kindInfinity {
		return "(infinity)"
	}
	return fmt.Sprintf("(%v, %v)", p.x, p.y)
}
