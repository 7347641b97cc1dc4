package testutils

import (
	"math/rand"
	"sync"
)

// SampleCache hands out deterministic pseudorandom samples keyed by a seed.
//
// Requesting n samples for a seed always returns the same first n values; requesting more
// extends the cached list. This allows tests in different packages to share (and cheaply re-obtain)
// the same random inputs. A SampleCache is safe for concurrent use.
type SampleCache[ElementType any] struct {
	mutex    sync.Mutex
	pages    map[int64]*samplePage[ElementType]
	creation func(*rand.Rand) ElementType
}

type samplePage[ElementType any] struct {
	rng      *rand.Rand
	elements []ElementType
}

// NewSampleCache creates a SampleCache that uses creation to generate new samples.
func NewSampleCache[ElementType any](creation func(*rand.Rand) ElementType) *SampleCache[ElementType] {
	return &SampleCache[ElementType]{pages: make(map[int64]*samplePage[ElementType]), creation: creation}
}

// GetElements returns (a copy of the slice of) the first amount samples for the given seed.
func (cache *SampleCache[ElementType]) GetElements(seed int64, amount int) []ElementType {
	cache.mutex.Lock()
	defer cache.mutex.Unlock()
	page, ok := cache.pages[seed]
	if !ok {
		page = &samplePage[ElementType]{rng: rand.New(rand.NewSource(seed))}
		cache.pages[seed] = page
	}
	for len(page.elements) < amount {
		page.elements = append(page.elements, cache.creation(page.rng))
	}
	ret := make([]ElementType, amount)
	copy(ret, page.elements)
	return ret
}

// SmallPrimes are the odd primes used for finite fields throughout the tests.
var SmallPrimes = []int64{3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 97, 101}
