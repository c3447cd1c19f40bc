package strategy

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"adapter-generator/adapter"
	"adapter-generator/internal/logging"
	"adapter-generator/internal/plan"
)

// Pipeline resolves requests through a Registry. Concurrent requests for
// one key share a single resolution.
type Pipeline struct {
	registry *Registry
	flight   singleflight.Group
	logger   *slog.Logger
}

// NewPipeline creates a pipeline over registry.
func NewPipeline(registry *Registry, logger *slog.Logger) *Pipeline {
	return &Pipeline{registry: registry, logger: logging.For(logger, "pipeline")}
}

// Resolve returns the adapter type for req. Callers arriving while the key
// is in flight wait for the running resolution and share its result. A
// caller whose context ends stops waiting; when the resolution itself was
// abandoned because its leader's context ended, the remaining callers start
// over.
func (p *Pipeline) Resolve(ctx context.Context, req *plan.Request) (*adapter.Type, error) {
	key := req.Key()

	for {
		ch := p.flight.DoChan(key, func() (any, error) {
			s, err := p.registry.Select(ctx, req)
			if err != nil {
				return nil, err
			}

			p.logger.DebugContext(ctx, "strategy selected", "request", req.String(), "strategy", s.Name())

			return s.Resolve(ctx, req)
		})

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case res := <-ch:
			if res.Err != nil && isContextErr(res.Err) && ctx.Err() == nil {
				continue
			}

			if res.Err != nil {
				return nil, res.Err
			}

			return res.Val.(*adapter.Type), nil
		}
	}
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
