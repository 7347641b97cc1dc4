package testutils

import (
	"errors"
	"testing"
)

// CheckPanic runs fun, captures any panic and returns whether a panic occurred together with the panic value.
//
// This function is only used in testing.
func CheckPanic(fun func()) (didPanic bool, panicValue any) {
	didPanic = true
	defer func() {
		panicValue = recover()
	}()
	fun()
	didPanic = false
	return
}

// FatalUnlessPanicsWith fails the test unless fun panics with an error wrapping target.
func FatalUnlessPanicsWith(t *testing.T, target error, fun func()) {
	t.Helper()
	didPanic, panicValue := CheckPanic(fun)
	FatalUnless(t, didPanic, "expected panic wrapping %v, but nothing happened", target)
	err, isError := panicValue.(error)
	FatalUnless(t, isError, "expected panic wrapping %v, got non-error panic value %v", target, panicValue)
	FatalUnless(t, errors.Is(err, target), "expected panic wrapping %v, got %v", target, err)
}
