package algebra

import "github.com/GottfriedHerold/Schoof/internal/callcounters"

// Root nodes for the call counters used throughout the module.
// Packages register their counters as children of these.
const (
	CallCounterArithmetic callcounters.Id = "Arithmetic"
	CallCounterCurve      callcounters.Id = "CurveOperations"
)

var _ = callcounters.CreateHierarchicalCallCounter(CallCounterArithmetic, "Arithmetic operations", "")
var _ = callcounters.CreateHierarchicalCallCounter(CallCounterCurve, "Elliptic curve operations", "")
