//go:build !nocallcounters

package callcounters

// This file is compiled unless tags=nocallcounters is set, otherwise
// callcounters_inactive.go is used and Increment becomes a no-op.

const CallCountersActive = true
