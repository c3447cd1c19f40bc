// Package metatest builds in-memory meta descriptors for tests.
//
//	greeter := metatest.Named("example.com/p", "Greeter", metatest.Iface(
//		metatest.M("Greet", metatest.String).P("name", metatest.String),
//	))
package metatest

import (
	"slices"
	"strings"

	"adapter-generator/internal/common"
	"adapter-generator/internal/meta"
)

// Predeclared types.
var (
	Int    = Basic("int")
	String = Basic("string")
	Bool   = Basic("bool")
	Byte   = Basic("uint8")
	Error  = Named("", "error", Iface(M("Error", Basic("string"))))
	Any    = Iface()
)

// Type is a builder-backed meta.Type.
type Type struct {
	name       string
	pkg        string
	kind       meta.TypeKind
	ref        meta.RefKind
	elem       meta.Type
	key        meta.Type
	length     int64
	dir        meta.ChanDir
	args       []meta.Type
	params     []meta.Type
	ordinal    int
	constraint meta.Type
	under      *Type
	origin     *Type
	methods    []meta.Method
	fields     []meta.Field
	sig        *Method
	universe   meta.Universe
}

var _ meta.Type = (*Type)(nil)

// Basic returns a predeclared type.
func Basic(name string) *Type {
	return &Type{name: name, kind: meta.KindBasic, ordinal: -1}
}

// Void returns the void descriptor.
func Void() *Type {
	return &Type{kind: meta.KindVoid, ordinal: -1}
}

// Unresolved returns a named type whose declaration is unavailable, the
// way a provider describes a reference it cannot resolve.
func Unresolved(pkg, name string) *Type {
	return &Type{name: name, pkg: pkg, kind: meta.KindInvalid, ordinal: -1}
}

// TypeParam returns a generic parameter.
func TypeParam(name string, ordinal int) *Type {
	return &Type{name: name, kind: meta.KindGenericParam, ordinal: ordinal, constraint: Any}
}

// Ptr returns *elem.
func Ptr(elem meta.Type) *Type {
	return &Type{kind: meta.KindComposite, ref: meta.RefPointer, elem: elem, ordinal: -1}
}

// Slice returns []elem.
func Slice(elem meta.Type) *Type {
	return &Type{kind: meta.KindComposite, ref: meta.RefSlice, elem: elem, ordinal: -1}
}

// Array returns [n]elem.
func Array(n int64, elem meta.Type) *Type {
	return &Type{kind: meta.KindComposite, ref: meta.RefArray, elem: elem, length: n, ordinal: -1}
}

// Map returns map[key]elem.
func Map(key, elem meta.Type) *Type {
	return &Type{kind: meta.KindComposite, ref: meta.RefMap, key: key, elem: elem, ordinal: -1}
}

// Chan returns a channel type.
func Chan(dir meta.ChanDir, elem meta.Type) *Type {
	return &Type{kind: meta.KindComposite, ref: meta.RefChan, dir: dir, elem: elem, ordinal: -1}
}

// Struct returns an unnamed struct type.
func Struct(fields ...*Field) *Type {
	t := &Type{kind: meta.KindStruct, ordinal: -1}
	for i, f := range fields {
		f.index = i
		f.decl = t
		t.fields = append(t.fields, f)
	}

	return t
}

// Iface returns an unnamed interface type. Methods are sorted by name.
func Iface(methods ...*Method) *Type {
	t := &Type{kind: meta.KindInterface, ordinal: -1}
	for _, m := range methods {
		m.abstract = true
		m.decl = t
		t.methods = append(t.methods, m)
	}

	slices.SortFunc(t.methods, func(a, b meta.Method) int { return strings.Compare(a.Name(), b.Name()) })

	return t
}

// Func returns a function type with the signature of m.
func Func(m *Method) *Type {
	return &Type{kind: meta.KindSignature, sig: m, ordinal: -1}
}

// Named declares a named type with the given underlying type. Methods and
// fields of an interface or struct underlying report the named type as
// their declaring type.
func Named(pkg, name string, under *Type) *Type {
	t := &Type{name: name, pkg: pkg, kind: under.kind, under: under, ordinal: -1}

	for _, m := range under.methods {
		m.(*Method).decl = t
	}

	for _, f := range under.fields {
		f.(*Field).decl = t
	}

	return t
}

// WithMethods attaches concrete methods to a named type.
func (t *Type) WithMethods(methods ...*Method) *Type {
	for _, m := range methods {
		m.decl = t
		t.methods = append(t.methods, m)
	}

	return t
}

// WithTypeParams makes t a generic declaration.
func (t *Type) WithTypeParams(params ...*Type) *Type {
	for _, p := range params {
		t.params = append(t.params, p)
	}

	return t
}

// Instantiate returns t with its type parameters substituted by args.
func (t *Type) Instantiate(args ...meta.Type) *Type {
	s := substitution(args)
	inst := &Type{
		name:     t.name,
		pkg:      t.pkg,
		kind:     t.kind,
		args:     args,
		ordinal:  -1,
		origin:   t,
		universe: t.universe,
	}

	if t.under != nil {
		inst.under = s.typ(t.under).(*Type)
		for _, m := range inst.under.methods {
			m.(*Method).decl = inst
		}

		for _, f := range inst.under.fields {
			f.(*Field).decl = inst
		}
	}

	for _, m := range t.methods {
		c := s.method(m.(*Method))
		c.decl = inst
		inst.methods = append(inst.methods, c)
	}

	return inst
}

// In registers t with a universe.
func (t *Type) In(u meta.Universe) *Type {
	t.universe = u
	return t
}

func (t *Type) Name() string { return t.name }

func (t *Type) QualifiedName() string {
	if t.name == "" || t.kind == meta.KindGenericParam {
		return ""
	}

	return common.Qualify(t.pkg, t.name)
}

func (t *Type) PkgPath() string        { return t.pkg }
func (t *Type) Kind() meta.TypeKind    { return t.kind }
func (t *Type) Ref() meta.RefKind      { return t.ref }
func (t *Type) Elem() meta.Type        { return t.elem }
func (t *Type) Key() meta.Type         { return t.key }
func (t *Type) Len() int64             { return t.length }
func (t *Type) ChanDir() meta.ChanDir  { return t.dir }
func (t *Type) TypeArgs() []meta.Type  { return t.args }
func (t *Type) Ordinal() int           { return t.ordinal }
func (t *Type) Constraint() meta.Type  { return t.constraint }
func (t *Type) Universe() meta.Universe { return t.universe }
func (t *Type) String() string         { return meta.TypeString(t) }

func (t *Type) TypeParams() []meta.Type {
	if t.origin != nil {
		return t.origin.params
	}

	return t.params
}

func (t *Type) Underlying() meta.Type {
	if t.under != nil {
		return t.under
	}

	return t
}

func (t *Type) Methods() []meta.Method {
	if t.under != nil && t.kind == meta.KindInterface {
		return t.under.methods
	}

	return t.methods
}

func (t *Type) Fields() []meta.Field {
	if t.under != nil {
		return t.under.fields
	}

	return t.fields
}

func (t *Type) Signature() meta.Signature {
	if t.under != nil {
		return t.under.Signature()
	}

	if t.sig == nil {
		return nil
	}

	return t.sig
}
