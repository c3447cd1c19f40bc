package reflected

import (
	"reflect"

	"adapter-generator/internal/meta"
)

type signature struct {
	params   []meta.Param
	results  []meta.Param
	variadic bool
}

func (s *signature) Params() []meta.Param  { return s.params }
func (s *signature) Results() []meta.Param { return s.results }
func (s *signature) Variadic() bool        { return s.variadic }

// methodDesc is a meta.Method over a reflect method signature.
type methodDesc struct {
	signature

	name     string
	decl     meta.Type
	exported bool
	abstract bool
	ptr      bool
}

var _ meta.Method = (*methodDesc)(nil)

// method builds a descriptor from a func type whose first offset inputs are
// the receiver.
func (u *Universe) method(decl meta.Type, name string, fn reflect.Type, offset int, exported, abstract, ptr bool) *methodDesc {
	var kinds map[int]meta.ParamKind
	if q := decl.QualifiedName(); q != "" {
		kinds = u.annotationsFor(q + "." + name)
	}

	return &methodDesc{
		signature: signature{
			params:   u.params(fn, offset, kinds),
			results:  u.results(fn),
			variadic: fn.IsVariadic(),
		},
		name:     name,
		decl:     decl,
		exported: exported,
		abstract: abstract,
		ptr:      ptr,
	}
}

func (u *Universe) params(fn reflect.Type, offset int, kinds map[int]meta.ParamKind) []meta.Param {
	n := fn.NumIn() - offset
	if n <= 0 {
		return nil
	}

	out := make([]meta.Param, n)

	for i := range out {
		p := &paramDesc{index: i, typ: u.Of(fn.In(i + offset))}

		if fn.IsVariadic() && i == n-1 {
			p.kind = meta.ParamVariadic
		} else {
			k, annotated := kinds[i]
			p.kind, p.typ = meta.PointerParam(p.typ, k, annotated)
		}

		out[i] = p
	}

	return out
}

func (u *Universe) results(fn reflect.Type) []meta.Param {
	if fn.NumOut() == 0 {
		return nil
	}

	out := make([]meta.Param, fn.NumOut())
	for i := range out {
		out[i] = &paramDesc{index: i, typ: u.Of(fn.Out(i))}
	}

	return out
}

func (m *methodDesc) Name() string         { return m.name }
func (m *methodDesc) Declaring() meta.Type { return m.decl }
func (m *methodDesc) Static() bool         { return false }
func (m *methodDesc) Abstract() bool       { return m.abstract }
func (m *methodDesc) Virtual() bool        { return m.abstract }
func (m *methodDesc) Final() bool          { return !m.abstract }
func (m *methodDesc) PointerReceiver() bool {
	return m.ptr
}

// TypeParams is empty: Go methods cannot declare type parameters.
func (m *methodDesc) TypeParams() []meta.Type { return nil }

func (m *methodDesc) Visibility() meta.Visibility {
	v := meta.VisInternal
	if m.exported {
		v = meta.VisPublic
	}

	if _, _, ok := meta.ParseExplicitName(m.name); ok {
		v |= meta.VisExplicit
	}

	return v
}

func (m *methodDesc) Return() meta.Param {
	if len(m.results) == 0 {
		return meta.VoidParam
	}

	return m.results[0]
}

func (m *methodDesc) ExplicitFor() string {
	c, _, ok := meta.ParseExplicitName(m.name)
	if !ok {
		return ""
	}

	return c
}

// paramDesc is a meta.Param; reflect does not know parameter names.
type paramDesc struct {
	index int
	kind  meta.ParamKind
	typ   meta.Type
}

func (p *paramDesc) Name() string         { return "" }
func (p *paramDesc) Index() int           { return p.index }
func (p *paramDesc) Kind() meta.ParamKind { return p.kind }
func (p *paramDesc) Type() meta.Type      { return p.typ }

// fieldDesc is a meta.Field over a reflect.StructField.
type fieldDesc struct {
	u     *Universe
	f     reflect.StructField
	index int
	decl  meta.Type
}

func (f *fieldDesc) Name() string         { return f.f.Name }
func (f *fieldDesc) Index() int           { return f.index }
func (f *fieldDesc) Type() meta.Type      { return f.u.Of(f.f.Type) }
func (f *fieldDesc) Embedded() bool       { return f.f.Anonymous }
func (f *fieldDesc) Declaring() meta.Type { return f.decl }

func (f *fieldDesc) Visibility() meta.Visibility {
	if f.f.IsExported() {
		return meta.VisPublic
	}

	return meta.VisInternal
}
