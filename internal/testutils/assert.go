package testutils

import (
	"runtime/debug"
	"testing"
)

// This contains cross-package functions that are used in tests for multiple packages.
// We don't want to export those to users, so they are in an internal package.
// NOTE: We only put functions here that don't import anything from this module to avoid cyclic dependencies.

// FatalUnless prints a stack trace and fails the test if condition is false.
func FatalUnless(t *testing.T, condition bool, formatstring string, args ...any) {
	t.Helper()
	if !condition {
		debug.PrintStack()
		t.Fatalf(formatstring, args...)
	}
}
