package plan

import (
	"context"
	"slices"

	"adapter-generator/internal/meta"
)

// Collector receives the import path of every package an adapter references.
type Collector interface {
	Add(pkgPath string)
}

// References lists what an adapter touches. Both lists are sorted.
type References struct {
	// Packages are import paths, the target package excluded.
	Packages []string
	// Types are qualified names of named types.
	Types []string
}

// Add implements Collector so one plan's references can feed another's.
func (r *References) Add(pkgPath string) {
	if _, found := slices.BinarySearch(r.Packages, pkgPath); !found {
		r.Packages = append(r.Packages, pkgPath)
		slices.Sort(r.Packages)
	}
}

type referenceWalker struct {
	ctx   context.Context
	self  string
	pkgs  map[string]bool
	types map[string]bool
	seen  map[string]bool
}

// collectReferences walks contract, source and every contract signature.
func collectReferences(ctx context.Context, req *Request) (*References, error) {
	w := &referenceWalker{
		ctx:   ctx,
		self:  req.Package(),
		pkgs:  make(map[string]bool),
		types: make(map[string]bool),
		seen:  make(map[string]bool),
	}

	if err := w.typ(req.Contract()); err != nil {
		return nil, err
	}

	if err := w.typ(req.Source()); err != nil {
		return nil, err
	}

	refs := &References{}
	for p := range w.pkgs {
		refs.Packages = append(refs.Packages, p)
	}

	for t := range w.types {
		refs.Types = append(refs.Types, t)
	}

	slices.Sort(refs.Packages)
	slices.Sort(refs.Types)

	if sink := req.Collector(); sink != nil {
		for _, p := range refs.Packages {
			sink.Add(p)
		}
	}

	return refs, nil
}

func (w *referenceWalker) typ(t meta.Type) error {
	if t == nil {
		return nil
	}

	if err := w.ctx.Err(); err != nil {
		return err
	}

	// Descriptors are built on demand, so recursion through named
	// interfaces is cut by canonical name, not identity.
	key := meta.Canonical(t)
	if w.seen[key] {
		return nil
	}

	w.seen[key] = true

	if meta.IsNamed(t) {
		w.types[t.QualifiedName()] = true

		if pkg := t.PkgPath(); pkg != "" && pkg != w.self {
			w.pkgs[pkg] = true
		}

		for _, a := range t.TypeArgs() {
			if err := w.typ(a); err != nil {
				return err
			}
		}

		// Interface members appear in the adapter's method signatures.
		if !meta.IsInterface(t) {
			return nil
		}
	}

	for _, inner := range []meta.Type{t.Elem(), t.Key(), t.Constraint()} {
		if err := w.typ(inner); err != nil {
			return err
		}
	}

	if !meta.IsNamed(t) {
		for _, f := range t.Fields() {
			if err := w.typ(f.Type()); err != nil {
				return err
			}
		}
	}

	for _, m := range t.Methods() {
		if err := w.signature(m); err != nil {
			return err
		}
	}

	if s := t.Signature(); s != nil {
		return w.signature(s)
	}

	return nil
}

func (w *referenceWalker) signature(s meta.Signature) error {
	for _, p := range slices.Concat(s.Params(), s.Results()) {
		if err := w.typ(p.Type()); err != nil {
			return err
		}
	}

	return nil
}
