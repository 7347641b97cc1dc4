package algebra

import (
	"fmt"
)

// This file contains the operations that are derived from the primitive ones of the contracts,
// so that element implementations only provide the primitives.

// Sub returns a - b, computed as a + (-b).
func Sub[E Element[E]](a, b E) E {
	return a.Add(b.Neg())
}

// Div returns a / b, computed as a * b^-1. If b is not invertible, returns the error of b.Inv().
func Div[E FieldElement[E]](a, b E) (E, error) {
	inverse, err := b.Inv()
	if err != nil {
		var zero E
		return zero, err
	}
	return a.Mul(inverse), nil
}

// Pow returns base^exponent by repeated multiplication.
// base^0 is ring.One() (including 0^0). Negative exponents are not supported and give an error wrapping [ErrValue].
//
// NOTE: This takes exponent-1 multiplications. This is intended; exponents occurring in this module are small.
func Pow[E Element[E]](ring Ring[E], base E, exponent int) (E, error) {
	if exponent < 0 {
		var zero E
		return zero, fmt.Errorf(ErrorPrefix+"negative exponent %v: %w", exponent, ErrValue)
	}
	if exponent == 0 {
		return ring.One(), nil
	}
	result := base
	for i := 1; i < exponent; i++ {
		result = result.Mul(base)
	}
	return result, nil
}

// Double returns a + a.
func Double[E Element[E]](a E) E {
	return a.Add(a)
}

// Square returns a * a.
func Square[E Element[E]](a E) E {
	return a.Mul(a)
}

// MustPow is Pow for exponents known to be non-negative. It panics on errors.
func MustPow[E Element[E]](ring Ring[E], base E, exponent int) E {
	result, err := Pow(ring, base, exponent)
	if err != nil {
		panic(err)
	}
	return result
}
