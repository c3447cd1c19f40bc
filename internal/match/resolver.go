package match

import (
	"fmt"
	"slices"
	"strings"

	"adapter-generator/internal/common"
	"adapter-generator/internal/diagnostic"
	"adapter-generator/internal/meta"
)

// Options configures resolution.
type Options struct {
	// Package is the import path of the package the adapter is generated
	// into. Unexported source members are only usable from their own package.
	Package string
	// Request labels diagnostics, e.g. "store.Greeter<-warehouse.Greeting".
	Request string
}

// Resolve binds every member of contract to exactly one member of source.
// A nil source produces a binding without targets. Resolution failures are
// collected and returned together as a *diagnostic.Error; a type that
// cannot be resolved aborts with *meta.TypeNotFoundError.
func Resolve(contract, source meta.Type, opts Options) (*Binding, error) {
	var diags diagnostic.Diagnostics

	b, err := Collect(contract, source, opts, &diags)
	if err != nil {
		return nil, err
	}

	if err := diags.Err(); err != nil {
		return nil, err
	}

	return b, nil
}

// Collect is Resolve reporting into diags. The returned error is only set
// for failures that abort resolution.
func Collect(contract, source meta.Type, opts Options, diags *diagnostic.Diagnostics) (*Binding, error) {
	if err := unresolved(contract); err != nil {
		return nil, err
	}

	if err := unresolved(source); err != nil {
		return nil, err
	}

	if !meta.IsInterface(contract) {
		diags.AddError(diagnostic.CodeInvalidContract,
			fmt.Sprintf("%s is not an interface", meta.TypeString(contract)), opts.Request, "")

		return nil, nil
	}

	for _, m := range contract.Methods() {
		if err := unresolvedSignature(m); err != nil {
			return nil, err
		}
	}

	groups := meta.GroupAccessors(contract.Methods())
	b := &Binding{Contract: contract, Source: source}

	r := &resolver{opts: opts, contract: contract, diags: diags}
	if source != nil {
		r.set = meta.MemberSet(source)
		_, r.addressable = meta.Deref(source)
	}

	for _, m := range groups.Methods {
		b.Methods = append(b.Methods, MethodBinding{Contract: m, Target: r.method(m)})
	}

	for _, p := range groups.Properties {
		b.Properties = append(b.Properties, r.property(p))
	}

	for _, ix := range groups.Indexers {
		b.Indexers = append(b.Indexers, r.indexer(ix))
	}

	for _, ev := range groups.Events {
		b.Events = append(b.Events, r.event(ev))
	}

	return b, nil
}

type resolver struct {
	opts        Options
	contract    meta.Type
	set         *meta.Members
	addressable bool
	diags       *diagnostic.Diagnostics
}

// check scores a source member for a contract accessor.
type check func(m meta.Member) (Via, Result)

// search collects candidates for the accessor called name, considering the
// explicit name Contract_name first. Members rejected by check or by
// visibility are remembered for the report.
type search struct {
	name      string
	found     CandidateList
	rejected  []string
	invisible []string
}

func (r *resolver) search(name string, fn check) *search {
	s := &search{name: name}

	lookups := []struct {
		name     string
		explicit bool
	}{
		{meta.ExplicitName(r.contract.Name(), name), true},
		{name, false},
	}

	for _, l := range lookups {
		for _, m := range r.set.Visible(l.name) {
			if !m.Visibility().Candidate() {
				continue
			}

			via, res := fn(m)
			if !res.OK() {
				s.rejected = append(s.rejected, fmt.Sprintf("%s: %s", m.Selector(), res.Reason))
				continue
			}

			if !m.Visibility().Accessible(m.DeclPkg(), r.opts.Package) {
				s.invisible = append(s.invisible, m.Selector())
				continue
			}

			s.found = append(s.found, Candidate{Member: m, Via: via, Explicit: l.explicit, Compat: res})
		}
	}

	return s
}

// pick applies precedence and reports failures.
func (r *resolver) pick(s *search) *Candidate {
	s.found.Sort()

	winners := s.found.Winners()

	switch {
	case common.IsSingle(winners):
		c, _ := common.First(winners)
		return &c
	case common.IsMultiple(winners):
		r.diags.AddAmbiguity(r.opts.Request, s.name, winners.Names())
		return nil
	case !common.IsEmpty(s.invisible):
		r.diags.AddError(diagnostic.CodeVisibilityViolation,
			fmt.Sprintf("%s not visible from package %q", strings.Join(s.invisible, ", "), r.opts.Package),
			r.opts.Request, s.name)

		return nil
	}

	msg := "no matching member on " + meta.TypeString(r.set.Root())
	if len(s.rejected) > 0 {
		msg += " (" + strings.Join(s.rejected, "; ") + ")"
	}

	if sug := Suggest(s.name, r.set.Names()); len(sug) > 0 {
		msg += "; did you mean " + strings.Join(sug, ", ") + "?"
	}

	r.diags.AddError(diagnostic.CodeMissingImplementation, msg, r.opts.Request, s.name)

	return nil
}

func (r *resolver) method(m meta.Method) *Candidate {
	if r.set == nil {
		return nil
	}

	return r.pick(r.search(m.Name(), methodCheck(m)))
}

func (r *resolver) property(p meta.Property) PropertyBinding {
	pb := PropertyBinding{Contract: p}
	if r.set == nil {
		return pb
	}

	get := r.search(p.Name, func(m meta.Member) (Via, Result) {
		if m.Field != nil {
			return ViaField, ScoreTypes(m.Field.Type(), p.Type)
		}

		return methodCheck(p.Getter)(m)
	})
	pb.Get = r.pick(get)

	if p.Setter == nil {
		return pb
	}

	set := r.search(p.Setter.Name(), methodCheck(p.Setter))

	// A field with the property's name backs the setter too.
	fields := r.search(p.Name, func(m meta.Member) (Via, Result) {
		if m.Field == nil {
			return ViaMethod, incompatible("%s is a method", m.Selector())
		}

		if !m.Addressable {
			return ViaField, incompatible("field %s is not addressable; use a pointer source", m.Selector())
		}

		return ViaField, ScoreTypes(p.Type, m.Field.Type())
	})
	set.found = append(set.found, fields.found...)
	set.invisible = append(set.invisible, fields.invisible...)
	set.rejected = append(set.rejected, fields.rejected...)

	pb.Set = r.pick(set)
	r.sameOwner(p.Name, pb.Get, pb.Set, "getter", "setter")

	return pb
}

func (r *resolver) indexer(ix meta.Indexer) IndexerBinding {
	ib := IndexerBinding{Contract: ix}
	if r.set == nil {
		return ib
	}

	get := r.search(ix.Getter.Name(), methodCheck(ix.Getter))
	r.indexCandidate(get, func(key, elem meta.Type, _ bool) Result {
		if res := indexKey(key, ix.Key); !res.OK() {
			return res
		}

		return ScoreTypes(elem, ix.Value)
	})
	ib.Get = r.pick(get)

	if ix.Setter == nil {
		return ib
	}

	set := r.search(ix.Setter.Name(), methodCheck(ix.Setter))
	r.indexCandidate(set, func(key, elem meta.Type, array bool) Result {
		if array && !r.addressable {
			return incompatible("array elements are not addressable; use a pointer source")
		}

		if res := indexKey(key, ix.Key); !res.OK() {
			return res
		}

		return ScoreTypes(ix.Value, elem)
	})
	ib.Set = r.pick(set)
	r.sameOwner(ix.Getter.Name(), ib.Get, ib.Set, ix.Getter.Name(), ix.Setter.Name())

	return ib
}

// indexCandidate adds the source's own map, slice or array as a candidate.
// key is nil for slices and arrays.
func (r *resolver) indexCandidate(s *search, fn func(key, elem meta.Type, array bool) Result) {
	root, _ := meta.Deref(r.set.Root())
	if root == nil {
		return
	}

	under := root.Underlying()
	if under == nil {
		return
	}

	var res Result

	switch under.Ref() {
	case meta.RefMap:
		res = fn(under.Key(), under.Elem(), false)
	case meta.RefSlice:
		res = fn(nil, under.Elem(), false)
	case meta.RefArray:
		res = fn(nil, under.Elem(), true)
	default:
		return
	}

	if !res.OK() {
		s.rejected = append(s.rejected, "[]: "+res.Reason)
		return
	}

	s.found = append(s.found, Candidate{
		Member: meta.Member{Name: "[]", Owner: root, Addressable: r.addressable},
		Via:    ViaIndex,
		Compat: res,
	})
}

// indexKey checks the contract key against a map key, or an integer key for
// slices and arrays (key == nil).
func indexKey(key, want meta.Type) Result {
	if key != nil {
		if !meta.Equal(key, want) {
			return incompatible("map key %s, want %s", meta.TypeString(key), meta.TypeString(want))
		}

		return Result{Compatibility: Identical}
	}

	if !isInteger(want) {
		return incompatible("index %s is not an integer", meta.TypeString(want))
	}

	return Result{Compatibility: Identical}
}

func isInteger(t meta.Type) bool {
	if t == nil || t.Kind() != meta.KindBasic {
		return false
	}

	switch t.Underlying().QualifiedName() {
	case "int", "int8", "int16", "int32", "int64",
		"uint", "uint8", "uint16", "uint32", "uint64", "uintptr":
		return true
	default:
		return false
	}
}

func (r *resolver) event(ev meta.Event) EventBinding {
	eb := EventBinding{Contract: ev}
	if r.set == nil {
		return eb
	}

	eb.Add = r.pick(r.search(ev.Add.Name(), methodCheck(ev.Add)))
	eb.Remove = r.pick(r.search(ev.Remove.Name(), methodCheck(ev.Remove)))
	r.sameOwner(ev.Add.Name(), eb.Add, eb.Remove, ev.Add.Name(), ev.Remove.Name())

	return eb
}

// sameOwner requires two resolved accessors to belong to one source member.
func (r *resolver) sameOwner(member string, a, b *Candidate, aRole, bRole string) {
	if a == nil || b == nil || a.owner() == b.owner() {
		return
	}

	r.diags.AddError(diagnostic.CodeMissingImplementation,
		fmt.Sprintf("%s %s and %s %s belong to different source members", aRole, a, bRole, b),
		r.opts.Request, member)
}

func methodCheck(want meta.Method) check {
	return func(m meta.Member) (Via, Result) {
		if m.Method == nil {
			return ViaField, incompatible("%s is a field", m.Selector())
		}

		if !m.Callable() {
			return ViaMethod, incompatible("%s has a pointer receiver; use a pointer source", m.Selector())
		}

		return ViaMethod, ScoreMethod(want, m.Method)
	}
}

// unresolved reports a named type whose declaration is not available in its
// universe, e.g. a type argument that was never registered.
func unresolved(t meta.Type) error {
	if t == nil {
		return nil
	}

	if t.Kind() == meta.KindInvalid && meta.IsNamed(t) {
		nf := &meta.TypeNotFoundError{Name: meta.TypeString(t)}
		if u := t.Universe(); u != nil {
			nf.Universe, nf.Searched = u.Name(), u.References()
		}

		return nf
	}

	if err := unresolved(t.Elem()); err != nil {
		return err
	}

	if err := unresolved(t.Key()); err != nil {
		return err
	}

	for _, a := range t.TypeArgs() {
		if err := unresolved(a); err != nil {
			return err
		}
	}

	return nil
}

func unresolvedSignature(s meta.Signature) error {
	for _, p := range slices.Concat(s.Params(), s.Results()) {
		if err := unresolved(p.Type()); err != nil {
			return err
		}
	}

	return nil
}
