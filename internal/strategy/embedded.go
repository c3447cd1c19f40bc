package strategy

import (
	"context"
	"fmt"

	"adapter-generator/adapter"
	"adapter-generator/internal/plan"
)

// Embedded serves adapters generated ahead of time.
type Embedded struct {
	table *adapter.Table
}

var _ Strategy = (*Embedded)(nil)

// NewEmbedded merges tables, typically the Adapters variables of generated
// packages. Two tables providing one key are an error.
func NewEmbedded(tables ...*adapter.Table) (*Embedded, error) {
	merged := adapter.NewTable()

	for _, t := range tables {
		if err := merged.Merge(t); err != nil {
			return nil, fmt.Errorf("embedding adapter table: %w", err)
		}
	}

	return &Embedded{table: merged}, nil
}

// Name implements Strategy.
func (e *Embedded) Name() string { return "embedded" }

// Table returns the merged table.
func (e *Embedded) Table() *adapter.Table { return e.table }

// Has reports whether key was generated ahead of time.
func (e *Embedded) Has(key string) bool {
	_, ok := e.table.Lookup(key)
	return ok
}

// ShouldUse implements Strategy.
func (e *Embedded) ShouldUse(_ context.Context, req *plan.Request) bool {
	return e.Has(req.Key())
}

// Resolve implements Strategy.
func (e *Embedded) Resolve(_ context.Context, req *plan.Request) (*adapter.Type, error) {
	typ, ok := e.table.Lookup(req.Key())
	if !ok {
		return nil, fmt.Errorf("%s: not embedded", req)
	}

	return typ, nil
}
