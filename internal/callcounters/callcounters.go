package callcounters

// This package contains code for call counters.
// Call counters are just benchmarking counters that are intended to be used
// to count how often certain arithmetic operations are performed and display the output
// in an organized fashion.

/*
Usage example:

	var _ = callcounters.CreateHierarchicalCallCounter("Arithmetic", "", "")
	var _ = callcounters.CreateHierarchicalCallCounter("PolynomialMul", "Multiplication of polynomials", "Arithmetic")

	func (p Polynomial) Mul(...) {
		callcounters.Id("PolynomialMul").Increment()
		...
	}

The calls to CreateHierarchicalCallCounter can be in any order; a parent that is only referred to
gets created with default settings.
*/

// Call counters are referred to by their Id, which is a string.
// They are organized in a tree structure for displaying and grouping: the value reported for a counter
// is the number of direct increments plus the reported values of all its children.

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
)

type Id string

type CallCounter struct {
	id          Id             // string id used to refer to this CallCounter. Never ""
	displayName string         // Display name of this CallCounter. Defaults to id if set to the empty string.
	parent      *CallCounter   // nil for root nodes.
	children    []*CallCounter // children in the display tree, in order of creation
	countDirect atomic.Int64   // number of direct increments
	initialized bool           // false for counters that were only referred to as parent, but never created.
}

// CCReport is the type used as output of queries to read out call counters.
type CCReport struct {
	Tag   string // id or display name of the counter
	Calls int64  // value of the counter, including all children
	Depth int    // depth in the display tree
}

var (
	// The mutex protects the map and the tree structure. The counts themselves are atomic.
	registryMutex sync.RWMutex
	callCounters  = make(map[Id]*CallCounter)
)

// getCounter returns the counter with the given id, creating an uninitialized dummy if needed.
// The caller must hold the write lock.
func getCounter(id Id) *CallCounter {
	if id == "" {
		panic("callcounters: counter id is empty")
	}
	cc, ok := callCounters[id]
	if !ok {
		cc = &CallCounter{id: id}
		callCounters[id] = cc
	}
	return cc
}

// CreateHierarchicalCallCounter creates a new call counter with the given id and display name as a child of parentId.
// parentId may be "" for a root node. Creating the same counter twice panics.
func CreateHierarchicalCallCounter(id Id, displayName string, parentId Id) *CallCounter {
	registryMutex.Lock()
	defer registryMutex.Unlock()
	cc := getCounter(id)
	if cc.initialized {
		panic(fmt.Sprintf("callcounters: counter %v created twice", id))
	}
	cc.initialized = true
	if displayName == "" {
		cc.displayName = string(id)
	} else {
		cc.displayName = displayName
	}
	if parentId != "" {
		parent := getCounter(parentId)
		if !parent.initialized {
			parent.displayName = string(parentId)
		}
		for ancestor := parent; ancestor != nil; ancestor = ancestor.parent {
			if ancestor == cc {
				panic(fmt.Sprintf("callcounters: making %v a child of %v would create a cycle", id, parentId))
			}
		}
		cc.parent = parent
		parent.children = append(parent.children, cc)
	}
	return cc
}

// Exists checks whether a call counter with the given id was created.
func (id Id) Exists() bool {
	registryMutex.RLock()
	defer registryMutex.RUnlock()
	cc, ok := callCounters[id]
	return ok && cc.initialized
}

// Increment increments the counter by one. It is a no-op if call counters are disabled by the nocallcounters build tag.
func (id Id) Increment() {
	if !CallCountersActive {
		return
	}
	registryMutex.RLock()
	cc := callCounters[id]
	registryMutex.RUnlock()
	if cc == nil || !cc.initialized {
		panic(fmt.Sprintf("callcounters: trying to increment non-existent call counter %v", id))
	}
	cc.countDirect.Add(1)
}

// Get returns the value of the counter, including all children. ok is false if the counter does not exist.
func (id Id) Get() (ret int64, ok bool) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()
	cc, ok := callCounters[id]
	if !ok {
		return 0, false
	}
	return cc.total(), true
}

// Reset resets the counter (but not its children) to 0
func (id Id) Reset() {
	registryMutex.RLock()
	defer registryMutex.RUnlock()
	if cc, ok := callCounters[id]; ok {
		cc.countDirect.Store(0)
	}
}

// ResetAllCounters resets all call counters to 0
func ResetAllCounters() {
	registryMutex.RLock()
	defer registryMutex.RUnlock()
	for _, cc := range callCounters {
		cc.countDirect.Store(0)
	}
}

// total requires the read lock to be held.
func (cc *CallCounter) total() (ret int64) {
	ret = cc.countDirect.Load()
	for _, child := range cc.children {
		ret += child.total()
	}
	return
}

func (cc *CallCounter) report(onlyPositive bool, useDisplayName bool, depth int) (ret []CCReport) {
	calls := cc.total()
	if calls == 0 && onlyPositive {
		return nil
	}
	tag := string(cc.id)
	if useDisplayName {
		tag = cc.displayName
	}
	ret = append(ret, CCReport{Tag: tag, Calls: calls, Depth: depth})
	for _, child := range cc.children {
		ret = append(ret, child.report(onlyPositive, useDisplayName, depth+1)...)
	}
	return
}

// ReportCallCounters returns a depth-first listing of all counters, with root nodes sorted by id.
func ReportCallCounters(onlyPositive bool, useDisplayName bool) (ret []CCReport) {
	registryMutex.RLock()
	defer registryMutex.RUnlock()
	roots := make([]*CallCounter, 0)
	for _, cc := range callCounters {
		if cc.parent == nil {
			roots = append(roots, cc)
		}
	}
	sort.Slice(roots, func(i, j int) bool { return roots[i].id < roots[j].id })
	ret = make([]CCReport, 0)
	for _, root := range roots {
		ret = append(ret, root.report(onlyPositive, useDisplayName, 0)...)
	}
	return
}

// WriteReport writes an indented human-readable report of all non-zero counters to w.
func WriteReport(w io.Writer, indent string) error {
	for _, item := range ReportCallCounters(true, true) {
		_, err := fmt.Fprintf(w, "%s%d x %s\n", strings.Repeat(indent, item.Depth), item.Calls, item.Tag)
		if err != nil {
			return err
		}
	}
	return nil
}
