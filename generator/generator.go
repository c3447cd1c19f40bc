package generator

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"golang.org/x/sync/errgroup"

	"adapter-generator/adapter"
	"adapter-generator/internal/cache"
	"adapter-generator/internal/compile"
	"adapter-generator/internal/logging"
	"adapter-generator/internal/meta"
	"adapter-generator/internal/plan"
	"adapter-generator/internal/reflected"
	"adapter-generator/internal/strategy"
)

// Generator resolves and activates adapters. It is safe for concurrent
// use; every distinct request is resolved at most once.
type Generator struct {
	universe *reflected.Universe
	pipeline *strategy.Pipeline
	registry *strategy.Registry
	logger   *slog.Logger
}

// New creates a Generator.
func New(opts ...Option) (*Generator, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	if o.logger == nil {
		o.logger = logging.Discard()
	}

	if o.universe == nil {
		o.universe = reflected.NewUniverse("")
	}

	embedded, err := strategy.NewEmbedded(o.tables...)
	if err != nil {
		return nil, err
	}

	memory := cache.NewMemory()
	strategies := []strategy.Strategy{embedded, strategy.NewGenerated(memory)}

	service := o.service
	if service == nil && o.goBuild != nil {
		cfg := *o.goBuild
		if cfg.Logger == nil {
			cfg.Logger = o.logger
		}

		if service, err = compile.NewGoBuild(cfg); err != nil {
			return nil, err
		}
	}

	if service != nil {
		loader := o.loader
		if loader == nil {
			loader = compile.PluginLoader{}
		}

		c, err := strategy.NewCompile(strategy.CompileConfig{
			Planner:  plan.NewPlanner(logging.For(o.logger, "plan")),
			Service:  service,
			Loader:   loader,
			Disk:     cache.NewDisk(o.cacheDir, o.logger),
			Memory:   memory,
			Embedded: embedded,
			DebugDir: o.debugDir,
			Logger:   o.logger,
		})
		if err != nil {
			return nil, err
		}

		strategies = append(strategies, c)
	}

	registry, err := strategy.NewRegistry(strategies...)
	if err != nil {
		return nil, err
	}

	o.logger.Debug("generator ready", "strategies", registry.Names(), "embedded", embedded.Table().Len())

	return &Generator{
		universe: o.universe,
		pipeline: strategy.NewPipeline(registry, o.logger),
		registry: registry,
		logger:   o.logger,
	}, nil
}

// Universe returns the loaded universe requests are described with.
func (g *Generator) Universe() *reflected.Universe {
	return g.universe
}

// Request builds the request Resolve serves for a contract and source.
// A nil source asks for a target-less interception adapter.
func (g *Generator) Request(contract, source reflect.Type, mode adapter.Mode) *plan.Request {
	g.universe.Add(contract)
	if source != nil {
		g.universe.Add(source)
	}

	return plan.NewRequest(g.universe.Of(contract), g.universe.Of(source), mode,
		plan.WithPackage(compile.PluginPackage, "main"))
}

// Resolve returns the adapter type for contract and source.
func (g *Generator) Resolve(ctx context.Context, contract, source meta.Type, mode adapter.Mode) (*adapter.Type, error) {
	return g.resolve(ctx, plan.NewRequest(contract, source, mode, plan.WithPackage(compile.PluginPackage, "main")))
}

// ResolveType is Resolve for reflect types.
func (g *Generator) ResolveType(ctx context.Context, contract, source reflect.Type, mode adapter.Mode) (*adapter.Type, error) {
	return g.resolve(ctx, g.Request(contract, source, mode))
}

func (g *Generator) resolve(ctx context.Context, req *plan.Request) (*adapter.Type, error) {
	typ, err := g.pipeline.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	g.logger.DebugContext(ctx, "adapter resolved", "request", req.String(), "type", typ.String())

	return typ, nil
}

// Pair names one contract/source pair for ResolveAll.
type Pair struct {
	Contract reflect.Type
	Source   reflect.Type
	Mode     adapter.Mode
}

// ResolveAll resolves pairs concurrently. Results are in pair order; the
// first failure cancels the rest.
func (g *Generator) ResolveAll(ctx context.Context, pairs ...Pair) ([]*adapter.Type, error) {
	types := make([]*adapter.Type, len(pairs))

	eg, ctx := errgroup.WithContext(ctx)
	for i, p := range pairs {
		eg.Go(func() error {
			typ, err := g.ResolveType(ctx, p.Contract, p.Source, p.Mode)
			if err != nil {
				return fmt.Errorf("resolving %v<-%v: %w", p.Contract, p.Source, err)
			}

			types[i] = typ

			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return types, nil
}

// Activate constructs an instance of typ.
func (g *Generator) Activate(ctx context.Context, typ *adapter.Type, args ...any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return typ.Activate(args...)
}

// Result is the outcome of an asynchronous activation.
type Result struct {
	Value any
	Err   error
}

// ActivateAsync constructs an instance of typ in the background. The
// channel receives exactly one Result.
func (g *Generator) ActivateAsync(ctx context.Context, typ *adapter.Type, args ...any) <-chan Result {
	ch := make(chan Result, 1)

	go func() {
		v, err := g.Activate(ctx, typ, args...)
		ch <- Result{Value: v, Err: err}
	}()

	return ch
}
