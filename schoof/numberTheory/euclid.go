package numberTheory

import (
	"fmt"

	"github.com/GottfriedHerold/Schoof/schoof/algebra"
)

// ExtendedEuclideanAlgorithm returns (m, n, d) with u*m + v*n == d, where d is a greatest common divisor of u and v.
//
// This works in any Euclidean ring. Note that d is only determined up to a unit; e.g. for polynomials, d need not be monic,
// so coprimality of polynomials is checked by d having degree 0.
// If u or v is zero, returns an error wrapping [algebra.ErrDivisionByZero].
func ExtendedEuclideanAlgorithm[E algebra.EuclideanElement[E]](ring algebra.Ring[E], u, v E) (m E, n E, d E, err error) {
	if u.IsZero() || v.IsZero() {
		err = fmt.Errorf(ErrorPrefix+"extended Euclidean algorithm for %v and %v: %w", u, v, algebra.ErrDivisionByZero)
		return
	}
	largerRemainder, lesserRemainder := u, v
	largerScalar, lesserScalar := ring.One(), ring.Zero()
	for !lesserRemainder.IsZero() {
		quotient, nextRemainder, errDiv := largerRemainder.DivMod(lesserRemainder)
		if errDiv != nil {
			err = errDiv
			return
		}
		nextScalar := algebra.Sub(largerScalar, quotient.Mul(lesserScalar))
		largerRemainder, largerScalar = lesserRemainder, lesserScalar
		lesserRemainder, lesserScalar = nextRemainder, nextScalar
	}
	// the division is exact
	otherScalar, _, errDiv := algebra.Sub(largerRemainder, u.Mul(largerScalar)).DivMod(v)
	if errDiv != nil {
		err = errDiv
		return
	}
	return largerScalar, otherScalar, largerRemainder, nil
}

// GCD returns a greatest common divisor of u and v, i.e. the third component of [ExtendedEuclideanAlgorithm].
func GCD[E algebra.EuclideanElement[E]](ring algebra.Ring[E], u, v E) (E, error) {
	_, _, d, err := ExtendedEuclideanAlgorithm(ring, u, v)
	return d, err
}
