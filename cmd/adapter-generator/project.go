package main

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"

	"golang.org/x/sync/errgroup"

	"adapter-generator/internal/analyze"
	"adapter-generator/internal/config"
	"adapter-generator/internal/diagnostic"
	"adapter-generator/internal/gen"
	"adapter-generator/internal/logging"
	"adapter-generator/internal/plan"
)

// project is a loaded configuration with its requests resolved against the
// configured packages.
type project struct {
	dir     string
	file    *config.File
	targets []config.Target
	logger  *slog.Logger
}

// loadProject reads the configuration at path. Package patterns and the
// output directory are relative to the directory holding it.
func loadProject(ctx context.Context, path string, logger *slog.Logger) (*project, error) {
	f, err := config.LoadFile(path)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)

	logger.Debug("loading packages", "dir", dir, "patterns", f.Packages)

	u, err := analyze.LoadDir(ctx, dir, f.Packages...)
	if err != nil {
		return nil, err
	}

	targets, err := config.Requests(f, u)
	if err != nil {
		return nil, err
	}

	return &project{dir: dir, file: f, targets: targets, logger: logger}, nil
}

// outputDir resolves the configured output directory.
func (p *project) outputDir() string {
	if filepath.IsAbs(p.file.Output.Dir) {
		return p.file.Output.Dir
	}

	return filepath.Join(p.dir, p.file.Output.Dir)
}

// plan plans every request concurrently. The diagnostics of all failed
// requests are merged into one *diagnostic.Error.
func (p *project) plan(ctx context.Context) ([]*plan.AdapterPlan, error) {
	planner := plan.NewPlanner(logging.For(p.logger, "plan"))

	plans := make([]*plan.AdapterPlan, len(p.targets))
	errs := make([]error, len(p.targets))

	var g errgroup.Group
	g.SetLimit(runtime.GOMAXPROCS(0))

	// Failures stay in errs so one request never cancels the others.
	for i, t := range p.targets {
		g.Go(func() error {
			plans[i], errs[i] = planner.Plan(ctx, t.Request)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if err := mergeErrors(errs); err != nil {
		return nil, err
	}

	return plans, nil
}

// generate synthesizes plans and assembles them into files. plans are
// parallel to the project's targets.
func (p *project) generate(ctx context.Context, plans []*plan.AdapterPlan, debugDir string) ([]gen.GeneratedFile, error) {
	g := gen.NewGenerator(gen.GeneratorConfig{
		Package:     p.file.Output.Package,
		PackageName: p.file.Output.Name,
		DebugDir:    debugDir,
		Logger:      p.logger,
	})

	var order []string

	byFile := make(map[string][]*gen.Synthesized)

	for i, pl := range plans {
		s, err := g.Synthesize(pl)
		if err != nil {
			return nil, fmt.Errorf("synthesize %s: %w", pl.Name, err)
		}

		name := p.targets[i].File
		if _, ok := byFile[name]; !ok {
			order = append(order, name)
		}

		byFile[name] = append(byFile[name], s)
	}

	files := make([]gen.GeneratedFile, 0, len(order))

	for _, name := range order {
		f, err := g.Assemble(ctx, name, byFile[name]...)
		if err != nil {
			return nil, err
		}

		files = append(files, *f)
	}

	return files, nil
}

// mergeErrors folds diagnostic errors together. Any other error wins.
func mergeErrors(errs []error) error {
	var merged diagnostic.Error

	for _, err := range errs {
		if err == nil {
			continue
		}

		de, ok := diagnostic.AsError(err)
		if !ok {
			return err
		}

		merged.Diagnostics = append(merged.Diagnostics, de.Diagnostics...)
	}

	if len(merged.Diagnostics) == 0 {
		return nil
	}

	return &merged
}

// warnings collects the non-fatal diagnostics of successful plans.
func warnings(plans []*plan.AdapterPlan) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic

	for _, pl := range plans {
		out = append(out, pl.Diagnostics.Warnings...)
		out = append(out, pl.Diagnostics.Infos...)
	}

	return out
}
