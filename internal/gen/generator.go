package gen

import (
	"bytes"
	"fmt"
	"log/slog"
	"unicode"
	"unicode/utf8"

	"adapter-generator/adapter"
	"adapter-generator/internal/logging"
	"adapter-generator/internal/meta"
	"adapter-generator/internal/plan"
)

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// Package is the import path of the generated package.
	Package string
	// PackageName is the name of the generated package.
	PackageName string
	// DebugDir receives unformatted sources when formatting fails.
	DebugDir string
	// Logger receives debug output, including synthesized sources.
	Logger *slog.Logger
}

// Generator synthesizes adapters for one generated package. Import aliases
// are shared by everything a Generator emits, so its units can be
// assembled into one file.
type Generator struct {
	config  GeneratorConfig
	imports *importSet
	logger  *slog.Logger
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	if config.PackageName == "" {
		config.PackageName = plan.DefaultPackageName
	}

	return &Generator{
		config:  config,
		imports: newImportSet(config.Package, config.PackageName),
		logger:  logging.For(config.Logger, "gen"),
	}
}

// Synthesized holds the declarations of one adapter.
type Synthesized struct {
	Name    string
	Key     string
	Output  plan.Output
	Generic bool
	// Decls holds the adapter type, its constructor and its methods.
	Decls []byte
	// Entry is the adapter.Type literal registered in the unit's table. It
	// is empty for generic adapters, which only exist once instantiated.
	Entry []byte

	imports      usedImports
	entryImports usedImports
}

// Imports lists the import paths the declarations refer to.
func (s *Synthesized) Imports() []string {
	return s.imports.paths()
}

// Synthesize renders the adapter described by p.
func (g *Generator) Synthesize(p *plan.AdapterPlan) (*Synthesized, error) {
	req := p.Request
	if req.Package() != g.config.Package {
		return nil, fmt.Errorf("%s targets package %q, generator emits %q", req, req.Package(), g.config.Package)
	}

	if req.Mode() == adapter.ModeDuck && !p.Binding.HasTarget() {
		return nil, fmt.Errorf("%s: duck adapter without a source", req)
	}

	s := newSynth(g, p)

	data := s.adapterData()

	var decls bytes.Buffer
	if err := adapterTemplate.Execute(&decls, data); err != nil {
		return nil, fmt.Errorf("executing adapter template for %s: %w", p.Name, err)
	}

	out := &Synthesized{
		Name:    p.Name,
		Key:     p.Key,
		Output:  req.Output(),
		Generic: data.Generic,
		Decls:   decls.Bytes(),
		imports: s.f.used,
	}

	if !data.Generic {
		s.f.used = make(usedImports)

		var entry bytes.Buffer
		if err := entryTemplate.Execute(&entry, s.entryData(data)); err != nil {
			return nil, fmt.Errorf("executing table entry template for %s: %w", p.Name, err)
		}

		out.Entry = entry.Bytes()
		out.entryImports = s.f.used
	}

	g.logger.Debug("adapter synthesized", "adapter", p.Name, "mode", req.Mode().String(), "members", p.Binding.Len())

	return out, nil
}

// ConstructorName is the typed constructor of an adapter type.
func ConstructorName(adapterName string) string {
	r, n := utf8.DecodeRuneInString(adapterName)
	return "New" + string(unicode.ToUpper(r)) + adapterName[n:]
}

// synth carries the per-adapter rendering state.
type synth struct {
	plan      *plan.AdapterPlan
	f         *typeFormatter
	intercept bool
	source    meta.Type
	nilable   bool
}

func newSynth(g *Generator, p *plan.AdapterPlan) *synth {
	f := &typeFormatter{imports: g.imports, used: make(usedImports)}

	if p.Generic() {
		for _, tp := range p.Request.Contract().TypeParams() {
			f.params = append(f.params, tp.Name())
		}
	}

	return &synth{
		plan:      p,
		f:         f,
		intercept: p.Request.Mode() == adapter.ModeIntercept,
		source:    p.Request.Source(),
		nilable:   nilable(p.Request.Source()),
	}
}

// nilable reports whether a value of t can be compared to nil.
func nilable(t meta.Type) bool {
	if t == nil {
		return false
	}

	under := t
	if meta.IsNamed(t) {
		under = t.Underlying()
	}

	if under == nil {
		return false
	}

	switch under.Ref() {
	case meta.RefPointer, meta.RefSlice, meta.RefMap, meta.RefChan:
		return true
	}

	return under.Kind() == meta.KindInterface || under.Kind() == meta.KindSignature
}
