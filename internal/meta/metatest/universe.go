package metatest

import (
	"slices"

	"adapter-generator/internal/meta"
)

// Universe is a map-backed meta.Universe.
type Universe struct {
	name  string
	types map[string]*Type
}

var _ meta.Universe = (*Universe)(nil)

// NewUniverse registers named types by qualified name.
func NewUniverse(name string, types ...*Type) *Universe {
	u := &Universe{name: name, types: make(map[string]*Type)}
	for _, t := range types {
		u.Add(t)
	}

	return u
}

// Add registers t.
func (u *Universe) Add(t *Type) {
	t.universe = u
	u.types[t.QualifiedName()] = t
}

func (u *Universe) Name() string { return u.name }

func (u *Universe) References() []string {
	refs := make([]string, 0, len(u.types))
	for k := range u.types {
		refs = append(refs, k)
	}

	slices.Sort(refs)

	return refs
}

func (u *Universe) Lookup(name string) (meta.Type, error) {
	expr, err := meta.ParseTypeName(name)
	if err != nil {
		return nil, err
	}

	t, ok := u.resolve(expr)
	if !ok {
		return nil, meta.NotFound(u, name)
	}

	return t, nil
}

func (u *Universe) resolve(e *meta.TypeExpr) (meta.Type, bool) {
	if e.Ref != meta.RefNone {
		elem, ok := u.resolve(e.Elem)
		if !ok {
			return nil, false
		}

		switch e.Ref {
		case meta.RefPointer:
			return Ptr(elem), true
		case meta.RefSlice:
			return Slice(elem), true
		case meta.RefArray:
			return Array(e.Len, elem), true
		case meta.RefChan:
			return Chan(e.Dir, elem), true
		default:
			key, ok := u.resolve(e.Key)
			if !ok {
				return nil, false
			}

			return Map(key, elem), true
		}
	}

	t, ok := u.types[e.Name]
	if !ok {
		switch e.Name {
		case "int", "string", "bool", "uint8", "int64", "float64":
			return Basic(e.Name), true
		case "error":
			return Error, true
		case "any":
			return Any, true
		}

		return nil, false
	}

	if len(e.Args) == 0 {
		return t, true
	}

	args := make([]meta.Type, len(e.Args))

	for i, a := range e.Args {
		at, ok := u.resolve(a)
		if !ok {
			return nil, false
		}

		args[i] = at
	}

	return t.Instantiate(args...), true
}
