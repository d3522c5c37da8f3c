package rationals

import (
	"fmt"
	"sort"
	"sync"
)

// Registry keys of the built-in counters.
const (
	AlgoBruteForce = "brute"
	AlgoSieve      = "sieve"
	AlgoTotient    = "totient"
)

// CounterFactory creates and looks up Counter instances by name.
type CounterFactory interface {
	// Create returns a fresh Counter. It fails if name is not registered.
	Create(name string) (Counter, error)

	// Get returns a cached Counter, creating it on first use.
	Get(name string) (Counter, error)

	// List returns the registered names, sorted.
	List() []string

	// Register adds or replaces a counter type.
	Register(name string, creator func() coreCounter) error

	// GetAll returns every registered counter, keyed by name.
	GetAll() map[string]Counter
}

// DefaultFactory is a thread-safe CounterFactory that caches the counters it
// creates.
type DefaultFactory struct {
	mu       sync.RWMutex
	creators map[string]func() coreCounter
	counters map[string]Counter
}

// NewDefaultFactory returns a factory with the built-in counters registered:
//   - "brute": BruteForce (O(n² log n), reference oracle)
//   - "sieve": Sieve (O(n log n), correction-table sieve)
//   - "totient": TotientSum (O(n log log n), Σφ)
func NewDefaultFactory() *DefaultFactory {
	f := &DefaultFactory{
		creators: make(map[string]func() coreCounter),
		counters: make(map[string]Counter),
	}

	_ = f.Register(AlgoBruteForce, func() coreCounter { return BruteForce{} })
	_ = f.Register(AlgoSieve, func() coreCounter { return Sieve{} })
	_ = f.Register(AlgoTotient, func() coreCounter { return TotientSum{} })

	return f
}

// Register adds a counter type. An existing registration under the same name
// is replaced and its cached instance dropped.
func (f *DefaultFactory) Register(name string, creator func() coreCounter) error {
	if creator == nil {
		return fmt.Errorf("nil creator for counter: %s", name)
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	f.creators[name] = creator
	delete(f.counters, name)
	return nil
}

// Create always builds a new, uncached Counter.
func (f *DefaultFactory) Create(name string) (Counter, error) {
	f.mu.RLock()
	creator, ok := f.creators[name]
	f.mu.RUnlock()

	if !ok {
		return nil, &UnknownCounterError{Name: name}
	}
	return NewCounter(creator()), nil
}

// Get returns the cached Counter for name, creating it on first use.
func (f *DefaultFactory) Get(name string) (Counter, error) {
	f.mu.RLock()
	if c, exists := f.counters[name]; exists {
		f.mu.RUnlock()
		return c, nil
	}
	f.mu.RUnlock()

	f.mu.Lock()
	defer f.mu.Unlock()

	// Another goroutine may have created it while we waited for the lock.
	if c, exists := f.counters[name]; exists {
		return c, nil
	}

	creator, ok := f.creators[name]
	if !ok {
		return nil, &UnknownCounterError{Name: name}
	}

	c := NewCounter(creator())
	f.counters[name] = c
	return c, nil
}

// List returns all registered names in alphabetical order.
func (f *DefaultFactory) List() []string {
	f.mu.RLock()
	defer f.mu.RUnlock()

	names := make([]string, 0, len(f.creators))
	for name := range f.creators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// GetAll returns a copy of the counter map, creating missing instances.
func (f *DefaultFactory) GetAll() map[string]Counter {
	f.mu.Lock()
	defer f.mu.Unlock()

	for name, creator := range f.creators {
		if _, exists := f.counters[name]; !exists {
			f.counters[name] = NewCounter(creator())
		}
	}

	result := make(map[string]Counter, len(f.counters))
	for name, c := range f.counters {
		result[name] = c
	}
	return result
}

// MustGet is like Get but panics when name is not registered.
func (f *DefaultFactory) MustGet(name string) Counter {
	c, err := f.Get(name)
	if err != nil {
		panic(fmt.Sprintf("rationals: required counter not found: %s", name))
	}
	return c
}

// Has reports whether name is registered.
func (f *DefaultFactory) Has(name string) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	_, exists := f.creators[name]
	return exists
}

var globalFactory = NewDefaultFactory()

// GlobalFactory returns the process-wide factory.
func GlobalFactory() *DefaultFactory {
	return globalFactory
}

// UnknownCounterError is returned when a counter name is not registered.
type UnknownCounterError struct {
	Name string
}

func (e *UnknownCounterError) Error() string {
	return "unknown counter: " + e.Name
}
