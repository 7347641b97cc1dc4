// Package divisionPolynomials provides the division polynomials psi_0, psi_1, ... of an elliptic curve as curve polynomials.
//
// The l-th division polynomial vanishes exactly at the (finite) l-torsion points of the curve.
// A [List] computes them lazily with the usual recurrence and remembers all entries computed so far.
package divisionPolynomials

import (
	"fmt"
	"sync"

	"github.com/GottfriedHerold/Schoof/internal/callcounters"
	"github.com/GottfriedHerold/Schoof/schoof/algebra"
	"github.com/GottfriedHerold/Schoof/schoof/curvePolynomials"
	"github.com/GottfriedHerold/Schoof/schoof/polynomials"
)

// ErrorPrefix is the prefix used by all error message strings originating from this package.
const ErrorPrefix = "schoof / division polynomials: "

var ErrIndexOutOfRange = fmt.Errorf(ErrorPrefix+"division polynomials are indexed by non-negative integers: %w", algebra.ErrValue)

const callCounterGenerated callcounters.Id = "DivisionPolynomials"

var _ = callcounters.CreateHierarchicalCallCounter(callCounterGenerated, "Generated division polynomials", algebra.CallCounterCurve)

// List is the sequence of division polynomials of one curve. Entries are computed on demand and never recomputed.
//
// A List is safe for concurrent use.
type List[F algebra.FieldElement[F]] struct {
	ring *curvePolynomials.CurvePolynomialRing[F]
	// inverse of 2 in the base field, used for the halving in the recurrence for even indices
	half F

	mutex sync.Mutex
	psi   []curvePolynomials.CurvePolynomial[F] // psi[j] is the j-th division polynomial. Only appended to.
}

// NewList creates the list of division polynomials for the curve of ring. This computes psi_0 to psi_4.
//
// The base field must have characteristic other than 2.
func NewList[F algebra.FieldElement[F]](ring *curvePolynomials.CurvePolynomialRing[F]) *List[F] {
	curve := ring.Curve()
	field := curve.Field()
	half, err := algebra.MustCoerce(field, 2).Inv()
	if err != nil {
		panic(fmt.Errorf(ErrorPrefix+"division polynomials need 2 to be invertible in %v: %w", field, err))
	}
	a, b := curve.Parameters()
	polys := ring.Polynomials()
	constant := func(n int) F { return algebra.MustCoerce(field, n) }
	zero := polys.Zero()

	// 3x^4 + 6Ax^2 + 12Bx - A^2
	psi3 := polys.FromCoefficients([]F{a.Mul(a).Neg(), constant(12).Mul(b), constant(6).Mul(a), field.Zero(), constant(3)})
	// 4(x^6 + 5Ax^4 + 20Bx^3 - 5A^2x^2 - 4ABx - 8B^2 - A^3), which is the y-part of psi_4
	psi4 := polys.FromCoefficients([]F{
		constant(8).Mul(b).Mul(b).Add(a.Mul(a).Mul(a)).Mul(constant(-4)),
		constant(-16).Mul(a).Mul(b),
		constant(-20).Mul(a).Mul(a),
		constant(80).Mul(b),
		constant(20).Mul(a),
		field.Zero(),
		constant(4),
	})

	psi := []curvePolynomials.CurvePolynomial[F]{
		ring.Zero(),
		ring.One(),
		ring.FromFactors(zero, polys.Constant(constant(2))),
		ring.FromFactors(psi3, zero),
		ring.FromFactors(zero, psi4),
	}
	return &List[F]{ring: ring, half: half, psi: psi}
}

// Ring returns the curve polynomial ring the entries belong to.
func (list *List[F]) Ring() *curvePolynomials.CurvePolynomialRing[F] {
	return list.ring
}

// Len returns the number of entries computed so far.
func (list *List[F]) Len() int {
	list.mutex.Lock()
	defer list.mutex.Unlock()
	return len(list.psi)
}

// Get returns the division polynomial psi_index, extending the list up to index if needed.
// For negative index, returns an error wrapping [ErrIndexOutOfRange].
func (list *List[F]) Get(index int) (curvePolynomials.CurvePolynomial[F], error) {
	if index < 0 {
		return curvePolynomials.CurvePolynomial[F]{}, fmt.Errorf("%w: got %v", ErrIndexOutOfRange, index)
	}
	list.mutex.Lock()
	defer list.mutex.Unlock()
	for len(list.psi) <= index {
		list.psi = append(list.psi, list.next())
	}
	return list.psi[index], nil
}

// next computes psi_j for j = len(list.psi). The caller must hold the mutex; j must be at least 5.
func (list *List[F]) next() curvePolynomials.CurvePolynomial[F] {
	callCounterGenerated.Increment()
	psi := list.psi
	j := len(psi)
	k := j / 2
	cube := func(s curvePolynomials.CurvePolynomial[F]) curvePolynomials.CurvePolynomial[F] { return s.Mul(s).Mul(s) }

	if j%2 == 1 {
		// psi_{k+2} psi_k^3 - psi_{k+1}^3 psi_{k-1}
		return algebra.Sub(psi[k+2].Mul(cube(psi[k])), cube(psi[k+1]).Mul(psi[k-1]))
	}

	ring := list.ring
	zero := ring.Polynomials().Zero()
	if k%2 == 0 {
		// psi_k = y b(x), so psi_k / 2y = b / 2
		factor := ring.FromFactors(psi[k].YFactor().Scale(list.half), zero)
		difference := algebra.Sub(psi[k+2].Mul(algebra.Square(psi[k-1])), psi[k-2].Mul(algebra.Square(psi[k+1])))
		return factor.Mul(difference)
	}
	// psi_k = a(x) and psi_{k +- 1} = y b_{k +- 1}(x), so the y^2 from the squares cancels against 1/y.
	factor := ring.FromFactors(zero, psi[k].XFactor().Scale(list.half))
	difference := algebra.Sub(psi[k+2].Mul(list.asCurvePolynomial(algebra.Square(psi[k-1].YFactor()))), psi[k-2].Mul(list.asCurvePolynomial(algebra.Square(psi[k+1].YFactor()))))
	return factor.Mul(difference)
}

func (list *List[F]) asCurvePolynomial(p polynomials.Polynomial[F]) curvePolynomials.CurvePolynomial[F] {
	return list.ring.FromFactors(p, list.ring.Polynomials().Zero())
}
