//go:build nocallcounters

package callcounters

const CallCountersActive = false
