package rationals

import (
	"context"
	"sort"
)

// MockCounter is a Counter test double, exported so other packages
// (orchestration, server, app) can use it.
type MockCounter struct {
	Result   uint64
	Err      error
	NameText string
	Fn       func(ctx context.Context, n int64) (uint64, error)
}

// Name returns NameText, or "mock" when unset.
func (m *MockCounter) Name() string {
	if m.NameText != "" {
		return m.NameText
	}
	return "mock"
}

// Count returns the pre-configured Result and Err, or calls Fn if provided.
func (m *MockCounter) Count(ctx context.Context, progressChan chan<- ProgressUpdate, calcIndex int, n int64) (uint64, error) {
	if m.Fn != nil {
		return m.Fn(ctx, n)
	}
	if progressChan != nil {
		progressChan <- ProgressUpdate{CalculatorIndex: calcIndex, Value: 1.0}
	}
	return m.Result, m.Err
}

// TestFactory is a CounterFactory backed by a fixed map of counters.
type TestFactory struct {
	counters map[string]Counter
}

// NewTestFactory creates a factory pre-populated with counters.
func NewTestFactory(counters map[string]Counter) *TestFactory {
	if counters == nil {
		counters = make(map[string]Counter)
	}
	return &TestFactory{counters: counters}
}

// Create returns the counter by name.
func (f *TestFactory) Create(name string) (Counter, error) {
	return f.Get(name)
}

// Get returns the counter by name.
func (f *TestFactory) Get(name string) (Counter, error) {
	c, ok := f.counters[name]
	if !ok {
		return nil, &UnknownCounterError{Name: name}
	}
	return c, nil
}

// List returns all registered names, sorted.
func (f *TestFactory) List() []string {
	names := make([]string, 0, len(f.counters))
	for name := range f.counters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Register is a no-op; counters are fixed at construction.
func (f *TestFactory) Register(name string, creator func() coreCounter) error {
	return nil
}

// GetAll returns a copy of all counters.
func (f *TestFactory) GetAll() map[string]Counter {
	result := make(map[string]Counter, len(f.counters))
	for k, v := range f.counters {
		result[k] = v
	}
	return result
}
