package algebra

import (
	"errors"
	"fmt"
)

// This file contains the coercion layer: binary operations with an operand of arbitrary type.
// The operand is converted into the ring via Ring.Element; if that fails, we return an error wrapping ErrIncompatibleOperand.

// Coerce converts value into an element of ring.
func Coerce[E any](ring Ring[E], value any) (E, error) {
	element, err := ring.Element(value)
	if err != nil {
		var zero E
		if errors.Is(err, ErrIncompatibleOperand) {
			return zero, err
		}
		return zero, fmt.Errorf(ErrorPrefix+"cannot convert %v to element of %v: %w (%v)", value, ring, ErrIncompatibleOperand, err)
	}
	return element, nil
}

// MustCoerce is Coerce for conversions that are known to succeed, such as small integers into a ring. It panics on failure.
func MustCoerce[E any](ring Ring[E], value any) E {
	element, err := Coerce(ring, value)
	if err != nil {
		panic(err)
	}
	return element
}

// AddAny returns a + value, where value is first coerced into ring.
func AddAny[E Element[E]](ring Ring[E], a E, value any) (E, error) {
	b, err := Coerce(ring, value)
	if err != nil {
		return b, err
	}
	return a.Add(b), nil
}

// SubAny returns a - value, where value is first coerced into ring.
func SubAny[E Element[E]](ring Ring[E], a E, value any) (E, error) {
	b, err := Coerce(ring, value)
	if err != nil {
		return b, err
	}
	return Sub(a, b), nil
}

// MulAny returns a * value, where value is first coerced into ring.
func MulAny[E Element[E]](ring Ring[E], a E, value any) (E, error) {
	b, err := Coerce(ring, value)
	if err != nil {
		return b, err
	}
	return a.Mul(b), nil
}

// DivAny returns a / value, where value is first coerced into ring.
func DivAny[E FieldElement[E]](ring Ring[E], a E, value any) (E, error) {
	b, err := Coerce(ring, value)
	if err != nil {
		return b, err
	}
	return Div(a, b)
}

// IsEqualAny compares a with value. Values that cannot be coerced into ring are unequal to a.
func IsEqualAny[E Element[E]](ring Ring[E], a E, value any) bool {
	b, err := Coerce(ring, value)
	if err != nil {
		return false
	}
	return a.IsEqual(b)
}
