package strategy

import (
	"context"
	"fmt"
	"strings"

	"adapter-generator/adapter"
	"adapter-generator/internal/diagnostic"
	"adapter-generator/internal/plan"
)

// Strategy resolves requests it claims through ShouldUse.
type Strategy interface {
	Name() string
	ShouldUse(ctx context.Context, req *plan.Request) bool
	Resolve(ctx context.Context, req *plan.Request) (*adapter.Type, error)
}

// Registry is the fixed set of strategies of a generator.
type Registry struct {
	strategies []Strategy
}

// NewRegistry creates a registry. Strategy names must be unique.
func NewRegistry(strategies ...Strategy) (*Registry, error) {
	seen := make(map[string]bool, len(strategies))

	for _, s := range strategies {
		if s == nil {
			return nil, diagnostic.Single(diagnostic.CodeInvalidConfig, "nil strategy", "", "")
		}

		if seen[s.Name()] {
			return nil, diagnostic.Single(diagnostic.CodeInvalidConfig,
				fmt.Sprintf("strategy %s registered twice", s.Name()), "", "")
		}

		seen[s.Name()] = true
	}

	return &Registry{strategies: strategies}, nil
}

// Names lists the registered strategies in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.strategies))
	for i, s := range r.strategies {
		names[i] = s.Name()
	}

	return names
}

// Select returns the one strategy claiming req. No claimant, or more than
// one, is a configuration error.
func (r *Registry) Select(ctx context.Context, req *plan.Request) (Strategy, error) {
	var matched []Strategy

	for _, s := range r.strategies {
		if s.ShouldUse(ctx, req) {
			matched = append(matched, s)
		}
	}

	switch len(matched) {
	case 1:
		return matched[0], nil
	case 0:
		return nil, diagnostic.Single(diagnostic.CodeInvalidConfig,
			fmt.Sprintf("no strategy applies (registered: %s)", strings.Join(r.Names(), ", ")), req.String(), "")
	default:
		names := make([]string, len(matched))
		for i, s := range matched {
			names[i] = s.Name()
		}

		return nil, diagnostic.Single(diagnostic.CodeInvalidConfig,
			fmt.Sprintf("strategies %s all apply", strings.Join(names, ", ")), req.String(), "")
	}
}
