package plan

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"adapter-generator/internal/diagnostic"
	"adapter-generator/internal/match"
	"adapter-generator/internal/meta"
)

// CodeExplicitImplementation marks informational diagnostics about
// members bound to explicit implementations.
const CodeExplicitImplementation = "explicit_implementation"

// Names of the generated adapter's own fields. Contract members must not
// use them.
const (
	TargetField      = "target"
	InterceptorField = "interceptor"
)

// AdapterPlan is everything code synthesis needs for one adapter.
type AdapterPlan struct {
	Request    *Request
	Key        string
	Name       string
	Binding    *match.Binding
	References *References
	// Diagnostics holds the warnings and infos of a successful plan.
	Diagnostics diagnostic.Diagnostics
}

// Generic reports whether the adapter has type parameters of its own.
func (p *AdapterPlan) Generic() bool {
	return meta.IsGeneric(p.Request.Contract())
}

// Planner plans requests. It is safe for concurrent use.
type Planner struct {
	logger *slog.Logger
}

// NewPlanner returns a planner logging to logger, or to slog.Default when
// logger is nil.
func NewPlanner(logger *slog.Logger) *Planner {
	if logger == nil {
		logger = slog.Default()
	}

	return &Planner{logger: logger}
}

// Plan validates req, resolves its members and collects references. All
// problems found are returned together as a *diagnostic.Error; a type that
// cannot be resolved aborts planning with *meta.TypeNotFoundError.
func (p *Planner) Plan(ctx context.Context, req *Request) (*AdapterPlan, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log := p.logger.With("request", req.String(), "mode", req.Mode().String())
	log.Debug("planning adapter", "name", req.Name(), "key", req.Key())

	var diags diagnostic.Diagnostics

	Validate(req, &diags)

	if diags.HasErrors() {
		return nil, p.fail(log, diags)
	}

	binding, err := match.Collect(req.Contract(), req.Source(), match.Options{
		Package: req.Package(),
		Request: req.String(),
	}, &diags)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", req, err)
	}

	if binding != nil {
		dedupe(req, binding, &diags)
		explain(req, binding, &diags)
	}

	if diags.HasErrors() {
		return nil, p.fail(log, diags)
	}

	refs, err := collectReferences(ctx, req)
	if err != nil {
		return nil, err
	}

	log.Debug("adapter planned", "members", binding.Len(), "packages", refs.Packages)

	return &AdapterPlan{
		Request:     req,
		Key:         req.Key(),
		Name:        req.Name(),
		Binding:     binding,
		References:  refs,
		Diagnostics: diags,
	}, nil
}

func (p *Planner) fail(log *slog.Logger, diags diagnostic.Diagnostics) error {
	err := diags.Err()
	log.Debug("planning failed", "errors", len(diags.Errors))

	return err
}

// dedupe requires exactly one adapter method per contract method.
func dedupe(req *Request, b *match.Binding, diags *diagnostic.Diagnostics) {
	byName := make(map[string]string)

	for _, m := range b.ContractMethods() {
		key := meta.SignatureKey(m)

		if prev, ok := byName[m.Name()]; ok {
			diags.AddError(diagnostic.CodeDuplicateMember,
				fmt.Sprintf("adapter would declare %s twice (%s and %s)", m.Name(), prev, key),
				req.String(), m.Name())

			continue
		}

		byName[m.Name()] = key

		if slices.Contains([]string{TargetField, InterceptorField}, m.Name()) {
			diags.AddError(diagnostic.CodeDuplicateMember,
				fmt.Sprintf("method %s collides with the adapter's %s field", m.Name(), m.Name()),
				req.String(), m.Name())
		}
	}
}

// explain records which members were bound to explicit implementations.
func explain(req *Request, b *match.Binding, diags *diagnostic.Diagnostics) {
	note := func(member string, c *match.Candidate) {
		if c != nil && c.Explicit {
			diags.AddInfo(CodeExplicitImplementation,
				fmt.Sprintf("bound to explicit implementation %s", c), req.String(), member)
		}
	}

	for _, m := range b.Methods {
		note(m.Contract.Name(), m.Target)
	}

	for _, p := range b.Properties {
		note(p.Contract.Name, p.Get)
		note(p.Contract.Name, p.Set)
	}

	for _, ix := range b.Indexers {
		note(ix.Contract.Getter.Name(), ix.Get)
		note(ix.Contract.Getter.Name(), ix.Set)
	}

	for _, ev := range b.Events {
		note(ev.Contract.Name, ev.Add)
		note(ev.Contract.Name, ev.Remove)
	}
}
