package metatest

import (
	"adapter-generator/internal/meta"
)

// Method is a builder-backed meta.Method.
type Method struct {
	name     string
	decl     meta.Type
	params   []meta.Param
	results  []meta.Param
	variadic bool
	vis      meta.Visibility
	abstract bool
	ptr      bool
	tparams  []meta.Type
}

var _ meta.Method = (*Method)(nil)

// M starts a method with the given results.
func M(name string, results ...meta.Type) *Method {
	m := &Method{name: name, vis: meta.VisibilityOf(name)}
	if _, _, ok := meta.ParseExplicitName(name); ok {
		m.vis |= meta.VisExplicit
	}

	for i, r := range results {
		m.results = append(m.results, &Param{index: i, typ: r})
	}

	return m
}

// P appends a plain parameter.
func (m *Method) P(name string, t meta.Type) *Method {
	return m.PK(name, meta.ParamNone, t)
}

// PK appends a parameter with a passing kind. For by-ref kinds t is the
// referenced type.
func (m *Method) PK(name string, kind meta.ParamKind, t meta.Type) *Method {
	m.params = append(m.params, &Param{name: name, index: len(m.params), kind: kind, typ: t})
	return m
}

// Rest appends a variadic parameter of element type elem.
func (m *Method) Rest(name string, elem meta.Type) *Method {
	m.variadic = true
	return m.PK(name, meta.ParamVariadic, Slice(elem))
}

// OnPointer marks the method as having a pointer receiver.
func (m *Method) OnPointer() *Method {
	m.ptr = true
	return m
}

// Vis overrides the visibility.
func (m *Method) Vis(v meta.Visibility) *Method {
	m.vis = v
	return m
}

// Generic adds method-level type parameters.
func (m *Method) Generic(params ...*Type) *Method {
	for _, p := range params {
		m.tparams = append(m.tparams, p)
	}

	return m
}

func (m *Method) Name() string                { return m.name }
func (m *Method) Declaring() meta.Type        { return m.decl }
func (m *Method) Static() bool                { return false }
func (m *Method) Abstract() bool              { return m.abstract }
func (m *Method) Virtual() bool               { return m.abstract }
func (m *Method) Final() bool                 { return !m.abstract }
func (m *Method) Visibility() meta.Visibility { return m.vis }
func (m *Method) Params() []meta.Param        { return m.params }
func (m *Method) Results() []meta.Param       { return m.results }
func (m *Method) Variadic() bool              { return m.variadic }
func (m *Method) TypeParams() []meta.Type     { return m.tparams }
func (m *Method) PointerReceiver() bool       { return m.ptr }

func (m *Method) Return() meta.Param {
	if len(m.results) == 0 {
		return &Param{typ: Void()}
	}

	return m.results[0]
}

func (m *Method) ExplicitFor() string {
	if !m.vis.Has(meta.VisExplicit) {
		return ""
	}

	c, _, _ := meta.ParseExplicitName(m.name)

	return c
}

// Param is a builder-backed meta.Param.
type Param struct {
	name  string
	index int
	kind  meta.ParamKind
	typ   meta.Type
}

func (p *Param) Name() string         { return p.name }
func (p *Param) Index() int           { return p.index }
func (p *Param) Kind() meta.ParamKind { return p.kind }
func (p *Param) Type() meta.Type      { return p.typ }

// Field is a builder-backed meta.Field.
type Field struct {
	name     string
	index    int
	typ      meta.Type
	embedded bool
	vis      meta.Visibility
	decl     meta.Type
}

// F returns a named field.
func F(name string, t meta.Type) *Field {
	return &Field{name: name, typ: t, vis: meta.VisibilityOf(name)}
}

// Embed returns an embedded field named after its (dereferenced) type.
func Embed(t meta.Type) *Field {
	base, _ := meta.Deref(t)
	return &Field{name: base.Name(), typ: t, embedded: true, vis: meta.VisibilityOf(base.Name())}
}

func (f *Field) Name() string                { return f.name }
func (f *Field) Index() int                  { return f.index }
func (f *Field) Type() meta.Type             { return f.typ }
func (f *Field) Embedded() bool              { return f.embedded }
func (f *Field) Visibility() meta.Visibility { return f.vis }
func (f *Field) Declaring() meta.Type        { return f.decl }
