package adapter

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"sync"
)

var (
	// ErrNoTarget is returned by Invocation.Proceed when the adapter was
	// activated without a target to forward to.
	ErrNoTarget = errors.New("adapter: no target to proceed to")
	// ErrNilInterceptor is returned when an interception adapter is activated
	// without an interceptor.
	ErrNilInterceptor = errors.New("adapter: nil interceptor")
	// ErrArgCount is returned when an adapter constructor receives the wrong
	// number of arguments.
	ErrArgCount = errors.New("adapter: wrong number of constructor arguments")
	// ErrArgType is returned when a constructor argument has the wrong type.
	ErrArgType = errors.New("adapter: wrong constructor argument type")
	// ErrDuplicateKey is returned when a Table already holds the request key.
	ErrDuplicateKey = errors.New("adapter: duplicate request key")
)

// Type is the loadable form of one generation request: a constructor for the
// synthesized adapter plus the request key it was produced for.
type Type struct {
	// Name is the adapter's Go type name (e.g., "greeterFromImpl").
	Name string
	// Key is the structural request hash the adapter was generated for.
	Key string
	// Contract is the interface the adapter satisfies. It may be nil for
	// entries produced by a loader that cannot see the contract type.
	Contract reflect.Type
	// Mode is the adaptation mode.
	Mode Mode
	// Path is the persisted binary this type was loaded from, if any.
	Path string
	// New constructs an adapter instance. Duck adapters take the target;
	// interception adapters take the interceptor and an optional target.
	New func(args ...any) (any, error)
}

// String returns a human-readable representation of the Type.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}

	return fmt.Sprintf("%s(%s, %s)", t.Name, t.Mode, shortKey(t.Key))
}

// Activate constructs a new adapter instance.
func (t *Type) Activate(args ...any) (any, error) {
	if t == nil || t.New == nil {
		return nil, errors.New("adapter: type has no constructor")
	}

	v, err := t.New(args...)
	if err != nil {
		return nil, fmt.Errorf("activating %s: %w", t.Name, err)
	}

	return v, nil
}

func shortKey(key string) string {
	if len(key) > 12 {
		return key[:12]
	}

	return key
}

// Table is a concurrency-safe registry of adapter types keyed by request key.
// Generated standalone units expose one as their Adapters variable.
type Table struct {
	mu    sync.RWMutex
	types map[string]*Type
}

// NewTable creates a Table holding the given types.
// It panics on a duplicate key; generated code relies on that to surface
// inconsistent units at init time.
func NewTable(types ...*Type) *Table {
	t := &Table{types: make(map[string]*Type, len(types))}
	for _, typ := range types {
		if err := t.Register(typ); err != nil {
			panic(err)
		}
	}

	return t
}

// Register adds typ to the table.
func (t *Table) Register(typ *Type) error {
	if typ == nil || typ.Key == "" {
		return errors.New("adapter: cannot register a type without a key")
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if t.types == nil {
		t.types = make(map[string]*Type)
	}

	if existing, ok := t.types[typ.Key]; ok {
		return fmt.Errorf("%w: %s already registered as %s", ErrDuplicateKey, typ.Key, existing.Name)
	}

	t.types[typ.Key] = typ

	return nil
}

// Lookup returns the type registered for key.
func (t *Table) Lookup(key string) (*Type, bool) {
	if t == nil {
		return nil, false
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	typ, ok := t.types[key]

	return typ, ok
}

// Keys returns the registered keys in sorted order.
func (t *Table) Keys() []string {
	if t == nil {
		return nil
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	keys := make([]string, 0, len(t.types))
	for k := range t.types {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// Len returns the number of registered types.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}

	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.types)
}

// Merge registers every type of other into t. Keys already present in t
// are reported together.
func (t *Table) Merge(other *Table) error {
	var errs []error

	for _, key := range other.Keys() {
		typ, _ := other.Lookup(key)
		if err := t.Register(typ); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}
