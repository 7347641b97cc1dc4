package callcounters

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ = CreateHierarchicalCallCounter("TestChild", "child counter", "TestRoot")
var _ = CreateHierarchicalCallCounter("TestRoot", "root counter", "")
var _ = CreateHierarchicalCallCounter("TestGrandChild", "", "TestChild")

func TestCallCounterHierarchy(t *testing.T) {
	if !CallCountersActive {
		t.Skip("call counters disabled")
	}
	ResetAllCounters()
	Id("TestRoot").Increment()
	Id("TestChild").Increment()
	Id("TestGrandChild").Increment()
	Id("TestGrandChild").Increment()

	calls, ok := Id("TestRoot").Get()
	require.True(t, ok)
	assert.EqualValues(t, 4, calls)
	calls, _ = Id("TestChild").Get()
	assert.EqualValues(t, 3, calls)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, "  "))
	assert.Contains(t, buf.String(), "4 x root counter")
	assert.Contains(t, buf.String(), "    2 x TestGrandChild")

	Id("TestGrandChild").Reset()
	calls, _ = Id("TestRoot").Get()
	assert.EqualValues(t, 2, calls)
}

func TestCallCounterConcurrentIncrement(t *testing.T) {
	if !CallCountersActive {
		t.Skip("call counters disabled")
	}
	ResetAllCounters()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				Id("TestChild").Increment()
			}
		}()
	}
	wg.Wait()
	calls, _ := Id("TestChild").Get()
	assert.EqualValues(t, 8000, calls)
}

func TestCallCounterMisuse(t *testing.T) {
	assert.True(t, Id("TestRoot").Exists())
	assert.False(t, Id("DoesNotExist").Exists())
	_, ok := Id("DoesNotExist").Get()
	assert.False(t, ok)
	if CallCountersActive {
		assert.Panics(t, func() { Id("DoesNotExist").Increment() })
	}
	assert.Panics(t, func() { CreateHierarchicalCallCounter("TestRoot", "", "") })
	assert.Panics(t, func() { CreateHierarchicalCallCounter("", "", "") })
}
