package algebra

import (
	"errors"
	"fmt"
)

// This file collects the error classes shared by all packages of this module.
//
// Errors returned by this module always wrap (potentially indirectly) one of the errors defined here.
// IMPORTANT: Never compare errors for equality. Use [errors.Is]

// ErrorPrefix is the prefix used by all error message strings originating from this package.
const ErrorPrefix = "schoof / algebra: "

var (
	// ErrDivisionByZero is the zero-division class: zero modulus, zero denominator, inverse of zero.
	ErrDivisionByZero = errors.New(ErrorPrefix + "division by zero")

	// ErrNotInvertible signals an inverse of a non-unit. It is part of the zero-division class.
	ErrNotInvertible = fmt.Errorf(ErrorPrefix+"element is not invertible: %w", ErrDivisionByZero)

	// ErrIncompatibleOperand is the incompatible-operand / type class: operands that cannot be reconciled by coercion,
	// elements of mismatched parent structures, or operations a structure does not support.
	ErrIncompatibleOperand = errors.New(ErrorPrefix + "incompatible operand")

	// ErrValue is the value / range class: invalid arguments in the domain of an operation.
	ErrValue = errors.New(ErrorPrefix + "invalid value")

	// ErrConstruction is the construction class: points not on the curve, unsupported moduli or divisions.
	ErrConstruction = errors.New(ErrorPrefix + "invalid construction")

	// ErrInternal is the internal-invariant class: situations that are impossible for mathematically valid inputs.
	ErrInternal = errors.New(ErrorPrefix + "internal invariant violated")
)

var errorClasses = []error{ErrDivisionByZero, ErrIncompatibleOperand, ErrValue, ErrConstruction, ErrInternal}

// IsArithmeticError checks whether err belongs to one of the error classes of this module.
func IsArithmeticError(err error) bool {
	for _, class := range errorClasses {
		if errors.Is(err, class) {
			return true
		}
	}
	return false
}

// RecoverArithmeticPanic is intended to be deferred by functions at an API boundary.
// It recovers panics whose value is an error belonging to one of the error classes of this module and stores it in *err.
// Any other panic is re-raised.
//
// Usage:
//
//	func Compute() (result T, err error) {
//		defer algebra.RecoverArithmeticPanic(&err)
//		...
//	}
func RecoverArithmeticPanic(err *error) {
	panicValue := recover()
	if panicValue == nil {
		return
	}
	if asError, ok := panicValue.(error); ok && IsArithmeticError(asError) {
		*err = asError
		return
	}
	panic(panicValue)
}
