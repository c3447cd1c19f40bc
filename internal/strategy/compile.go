package strategy

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"slices"

	"adapter-generator/adapter"
	"adapter-generator/internal/cache"
	"adapter-generator/internal/compile"
	"adapter-generator/internal/diagnostic"
	"adapter-generator/internal/gen"
	"adapter-generator/internal/logging"
	"adapter-generator/internal/plan"
)

// adapterPkg is referenced by every compiled unit.
const adapterPkg = "adapter-generator/adapter"

// CompileConfig wires the Compile strategy.
type CompileConfig struct {
	Planner  *plan.Planner
	Service  compile.Service
	Loader   compile.Loader
	Disk     *cache.Disk
	Memory   *cache.Memory
	Embedded *Embedded
	// DebugDir receives unformatted sources when formatting fails.
	DebugDir string
	Logger   *slog.Logger
}

// Compile plans, synthesizes and compiles requests nothing else serves.
// Binaries are persisted in Disk when it is enabled and reused by key.
type Compile struct {
	config CompileConfig
	logger *slog.Logger
}

var _ Strategy = (*Compile)(nil)

// NewCompile creates the Compile strategy. Service and Loader are
// required.
func NewCompile(config CompileConfig) (*Compile, error) {
	if config.Service == nil || config.Loader == nil {
		return nil, diagnostic.Single(diagnostic.CodeInvalidConfig, "compile strategy needs a compile service and a loader", "", "")
	}

	if config.Memory == nil {
		config.Memory = cache.NewMemory()
	}

	if config.Planner == nil {
		config.Planner = plan.NewPlanner(config.Logger)
	}

	return &Compile{config: config, logger: logging.For(config.Logger, "strategy")}, nil
}

// Name implements Strategy.
func (c *Compile) Name() string { return "compile" }

// ShouldUse claims requests that are neither embedded nor loaded yet.
func (c *Compile) ShouldUse(_ context.Context, req *plan.Request) bool {
	key := req.Key()

	if c.config.Embedded != nil && c.config.Embedded.Has(key) {
		return false
	}

	_, loaded := c.config.Memory.Get(key)

	return !loaded
}

// Resolve plans req, reuses or compiles its binary, loads it and remembers
// the loaded type. Planning always runs so a request fails the same way
// whether or not a binary was persisted for it.
func (c *Compile) Resolve(ctx context.Context, req *plan.Request) (*adapter.Type, error) {
	if req.Output() != plan.OutputStandalone {
		return nil, diagnostic.Single(diagnostic.CodeInvalidConfig,
			"only standalone units can be compiled", req.String(), "")
	}

	req = plan.NewRequest(req.Contract(), req.Source(), req.Mode(),
		plan.WithPackage(compile.PluginPackage, "main"),
		plan.WithName(req.Name()),
		plan.WithCollector(req.Collector()),
	)

	p, err := c.config.Planner.Plan(ctx, req)
	if err != nil {
		return nil, err
	}

	log := c.logger.With("request", req.String(), "key", p.Key)

	path := ""
	if e, ok := c.config.Disk.Lookup(p.Key); ok {
		log.DebugContext(ctx, "persisted binary found", "path", e.Path)
		path = e.Path
	} else {
		art, err := c.build(ctx, p)
		if err != nil {
			return nil, err
		}

		defer func() { _ = art.Release() }()

		path = art.Path

		if c.config.Disk.Enabled() {
			path, err = c.config.Disk.Store(art.Path, cache.Manifest{
				Name:      p.Name,
				Key:       p.Key,
				Request:   req.String(),
				Mode:      req.Mode().String(),
				GoVersion: runtime.Version(),
			})
			if err != nil {
				return nil, fmt.Errorf("persisting %s: %w", p.Name, err)
			}
		}
	}

	table, err := c.config.Loader.Load(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", p.Name, err)
	}

	typ, ok := table.Lookup(p.Key)
	if !ok {
		return nil, fmt.Errorf("loading %s: %s does not provide key %s", p.Name, path, p.Key)
	}

	log.InfoContext(ctx, "adapter loaded", "name", typ.Name, "path", path)

	return c.config.Memory.Put(p.Key, typ), nil
}

// build synthesizes the plan into a standalone unit and compiles it.
func (c *Compile) build(ctx context.Context, p *plan.AdapterPlan) (*compile.Artifact, error) {
	g := gen.NewGenerator(gen.GeneratorConfig{
		Package:     compile.PluginPackage,
		PackageName: "main",
		DebugDir:    c.config.DebugDir,
		Logger:      c.config.Logger,
	})

	s, err := g.Synthesize(p)
	if err != nil {
		return nil, err
	}

	f, err := g.Assemble(ctx, gen.DefaultFilename, s)
	if err != nil {
		return nil, err
	}

	refs := slices.Clone(p.References.Packages)
	if !slices.Contains(refs, adapterPkg) {
		refs = append(refs, adapterPkg)
	}

	return c.config.Service.Compile(ctx, compile.Unit{
		Name:       p.Name,
		Key:        p.Key,
		Filename:   f.Filename,
		Source:     f.Content,
		References: refs,
	})
}
