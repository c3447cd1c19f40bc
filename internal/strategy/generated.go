package strategy

import (
	"context"
	"fmt"

	"adapter-generator/adapter"
	"adapter-generator/internal/cache"
	"adapter-generator/internal/plan"
)

// Generated serves adapters compiled and loaded earlier in this process.
type Generated struct {
	memory *cache.Memory
}

var _ Strategy = (*Generated)(nil)

// NewGenerated serves types from memory.
func NewGenerated(memory *cache.Memory) *Generated {
	return &Generated{memory: memory}
}

// Name implements Strategy.
func (g *Generated) Name() string { return "generated" }

// ShouldUse implements Strategy.
func (g *Generated) ShouldUse(_ context.Context, req *plan.Request) bool {
	_, ok := g.memory.Get(req.Key())
	return ok
}

// Resolve implements Strategy.
func (g *Generated) Resolve(_ context.Context, req *plan.Request) (*adapter.Type, error) {
	typ, ok := g.memory.Get(req.Key())
	if !ok {
		return nil, fmt.Errorf("%s: not generated yet", req)
	}

	return typ, nil
}
