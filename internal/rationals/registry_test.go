package rationals

import (
	"context"
	"errors"
	"reflect"
	"sync"
	"testing"
)

type fixedCore struct {
	name  string
	count uint64
}

func (f fixedCore) Name() string { return f.name }

func (f fixedCore) CountCore(ctx context.Context, reporter ProgressReporter, n int64) (uint64, error) {
	return f.count, nil
}

func TestDefaultFactoryList(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	want := []string{AlgoBruteForce, AlgoSieve, AlgoTotient}
	if got := f.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
}

func TestDefaultFactoryGetCaches(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	a, err := f.Get(AlgoSieve)
	if err != nil {
		t.Fatal(err)
	}
	b, err := f.Get(AlgoSieve)
	if err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Error("Get should return the cached instance")
	}
	c, err := f.Create(AlgoSieve)
	if err != nil {
		t.Fatal(err)
	}
	if a == c {
		t.Error("Create should return a fresh instance")
	}
}

func TestDefaultFactoryUnknown(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	_, err := f.Get("nope")
	var unknown *UnknownCounterError
	if !errors.As(err, &unknown) || unknown.Name != "nope" {
		t.Errorf("expected UnknownCounterError, got %v", err)
	}
	if _, err := f.Create("nope"); err == nil {
		t.Error("Create should fail for unknown names")
	}
	if f.Has("nope") {
		t.Error("Has should be false for unknown names")
	}
}

func TestDefaultFactoryRegisterReplaces(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	before := f.MustGet(AlgoSieve)

	if err := f.Register(AlgoSieve, func() coreCounter { return fixedCore{name: "fixed", count: 42} }); err != nil {
		t.Fatal(err)
	}
	after := f.MustGet(AlgoSieve)
	if before == after {
		t.Error("Register should drop the cached instance")
	}
	got, err := after.Count(context.Background(), nil, 0, 5)
	if err != nil {
		t.Fatal(err)
	}
	if got != 42 {
		t.Errorf("got %d, want 42", got)
	}

	if err := f.Register("bad", nil); err == nil {
		t.Error("Register should reject a nil creator")
	}
}

func TestDefaultFactoryMustGetPanics(t *testing.T) {
	t.Parallel()
	defer func() {
		if recover() == nil {
			t.Error("expected panic")
		}
	}()
	NewDefaultFactory().MustGet("missing")
}

func TestDefaultFactoryGetAll(t *testing.T) {
	t.Parallel()
	all := NewDefaultFactory().GetAll()
	if len(all) != 3 {
		t.Fatalf("expected 3 counters, got %d", len(all))
	}
	for _, name := range []string{AlgoBruteForce, AlgoSieve, AlgoTotient} {
		if _, ok := all[name]; !ok {
			t.Errorf("missing %q", name)
		}
	}
}

func TestDefaultFactoryConcurrentGet(t *testing.T) {
	t.Parallel()
	f := NewDefaultFactory()
	var wg sync.WaitGroup
	results := make([]Counter, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = f.MustGet(AlgoTotient)
		}(i)
	}
	wg.Wait()
	for _, c := range results[1:] {
		if c != results[0] {
			t.Fatal("concurrent Get returned different instances")
		}
	}
}

func TestGlobalFactory(t *testing.T) {
	t.Parallel()
	if GlobalFactory() == nil || !GlobalFactory().Has(AlgoSieve) {
		t.Error("global factory should have the sieve registered")
	}
}

func TestTestFactory(t *testing.T) {
	t.Parallel()
	mock := &MockCounter{Result: 7}
	f := NewTestFactory(map[string]Counter{"b": mock, "a": mock})
	if got := f.List(); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("List() = %v", got)
	}
	c, err := f.Create("a")
	if err != nil || c != mock {
		t.Errorf("Create(a) = %v, %v", c, err)
	}
	if _, err := f.Get("zzz"); err == nil {
		t.Error("expected error for unknown counter")
	}
	if len(NewTestFactory(nil).GetAll()) != 0 {
		t.Error("nil map should produce an empty factory")
	}
}
