package analyze

import (
	"go/types"
	"slices"
	"strings"

	"adapter-generator/internal/common"
	"adapter-generator/internal/meta"
)

// typeDesc is a meta.Type over a go/types type (aliases removed).
type typeDesc struct {
	u *Universe
	t types.Type
}

var _ meta.Type = (*typeDesc)(nil)

// GoType returns the described go/types type.
func (d *typeDesc) GoType() types.Type { return d.t }

func (d *typeDesc) Name() string {
	switch t := d.t.(type) {
	case *types.Named:
		return t.Obj().Name()
	case *types.TypeParam:
		return t.Obj().Name()
	case *types.Basic:
		return basicName(t)
	default:
		return ""
	}
}

func (d *typeDesc) QualifiedName() string {
	switch t := d.t.(type) {
	case *types.Named:
		return common.Qualify(d.PkgPath(), t.Obj().Name())
	case *types.Basic:
		return common.Qualify(d.PkgPath(), basicName(t))
	default:
		return ""
	}
}

func (d *typeDesc) PkgPath() string {
	switch t := d.t.(type) {
	case *types.Named:
		if t.Obj().Pkg() == nil {
			return ""
		}

		return t.Obj().Pkg().Path()
	case *types.Basic:
		if t.Kind() == types.UnsafePointer {
			return "unsafe"
		}
	}

	return ""
}

func (d *typeDesc) Kind() meta.TypeKind {
	return kindOf(d.t)
}

func kindOf(t types.Type) meta.TypeKind {
	switch t := t.(type) {
	case *types.Named:
		return kindOf(t.Underlying())
	case *types.Basic:
		return meta.KindBasic
	case *types.Struct:
		return meta.KindStruct
	case *types.Interface:
		return meta.KindInterface
	case *types.TypeParam:
		return meta.KindGenericParam
	case *types.Signature:
		return meta.KindSignature
	case *types.Pointer, *types.Slice, *types.Array, *types.Map, *types.Chan:
		return meta.KindComposite
	default:
		return meta.KindInvalid
	}
}

func (d *typeDesc) Ref() meta.RefKind {
	switch d.t.(type) {
	case *types.Pointer:
		return meta.RefPointer
	case *types.Slice:
		return meta.RefSlice
	case *types.Array:
		return meta.RefArray
	case *types.Map:
		return meta.RefMap
	case *types.Chan:
		return meta.RefChan
	default:
		return meta.RefNone
	}
}

func (d *typeDesc) Elem() meta.Type {
	switch t := d.t.(type) {
	case *types.Pointer:
		return d.u.Of(t.Elem())
	case *types.Slice:
		return d.u.Of(t.Elem())
	case *types.Array:
		return d.u.Of(t.Elem())
	case *types.Map:
		return d.u.Of(t.Elem())
	case *types.Chan:
		return d.u.Of(t.Elem())
	default:
		return nil
	}
}

func (d *typeDesc) Key() meta.Type {
	if m, ok := d.t.(*types.Map); ok {
		return d.u.Of(m.Key())
	}

	return nil
}

func (d *typeDesc) Len() int64 {
	if a, ok := d.t.(*types.Array); ok {
		return a.Len()
	}

	return 0
}

func (d *typeDesc) ChanDir() meta.ChanDir {
	c, ok := d.t.(*types.Chan)
	if !ok {
		return meta.ChanBoth
	}

	switch c.Dir() {
	case types.SendOnly:
		return meta.ChanSend
	case types.RecvOnly:
		return meta.ChanRecv
	default:
		return meta.ChanBoth
	}
}

func (d *typeDesc) TypeArgs() []meta.Type {
	n, ok := d.t.(*types.Named)
	if !ok || n.TypeArgs().Len() == 0 {
		return nil
	}

	args := make([]meta.Type, n.TypeArgs().Len())
	for i := range args {
		args[i] = d.u.Of(n.TypeArgs().At(i))
	}

	return args
}

func (d *typeDesc) TypeParams() []meta.Type {
	n, ok := d.t.(*types.Named)
	if !ok {
		return nil
	}

	return d.u.typeParams(n.TypeParams())
}

func (u *Universe) typeParams(list *types.TypeParamList) []meta.Type {
	if list.Len() == 0 {
		return nil
	}

	out := make([]meta.Type, list.Len())
	for i := range out {
		out[i] = u.Of(list.At(i))
	}

	return out
}

func (d *typeDesc) Ordinal() int {
	if tp, ok := d.t.(*types.TypeParam); ok {
		return tp.Index()
	}

	return -1
}

func (d *typeDesc) Constraint() meta.Type {
	if tp, ok := d.t.(*types.TypeParam); ok {
		return d.u.Of(tp.Constraint())
	}

	return nil
}

// IsConstraint reports interfaces with a type set.
func (d *typeDesc) IsConstraint() bool {
	iface, ok := d.t.Underlying().(*types.Interface)

	return ok && !iface.IsMethodSet()
}

func (d *typeDesc) Underlying() meta.Type {
	if n, ok := d.t.(*types.Named); ok {
		return d.u.Of(n.Underlying())
	}

	return d
}

func (d *typeDesc) Methods() []meta.Method {
	if iface, ok := d.t.Underlying().(*types.Interface); ok && kindOf(d.t) == meta.KindInterface {
		methods := make([]meta.Method, iface.NumMethods())
		for i := range methods {
			methods[i] = d.u.method(iface.Method(i), d, true)
		}

		slices.SortFunc(methods, func(a, b meta.Method) int { return strings.Compare(a.Name(), b.Name()) })

		return methods
	}

	n, ok := d.t.(*types.Named)
	if !ok {
		return nil
	}

	methods := make([]meta.Method, n.NumMethods())
	for i := range methods {
		methods[i] = d.u.method(n.Method(i), d, false)
	}

	slices.SortFunc(methods, func(a, b meta.Method) int { return strings.Compare(a.Name(), b.Name()) })

	return methods
}

func (d *typeDesc) Fields() []meta.Field {
	s, ok := d.t.Underlying().(*types.Struct)
	if !ok {
		return nil
	}

	fields := make([]meta.Field, s.NumFields())
	for i := range fields {
		fields[i] = &fieldDesc{u: d.u, v: s.Field(i), index: i, decl: d}
	}

	return fields
}

func (d *typeDesc) Signature() meta.Signature {
	sig, ok := d.t.Underlying().(*types.Signature)
	if !ok {
		return nil
	}

	return &signature{
		params:   d.u.params(sig.Params(), sig.Variadic(), nil),
		results:  d.u.params(sig.Results(), false, nil),
		variadic: sig.Variadic(),
	}
}

func (d *typeDesc) Universe() meta.Universe { return d.u }

func (d *typeDesc) String() string { return meta.TypeString(d) }

func basicName(b *types.Basic) string {
	// byte and rune are aliases of uint8 and int32.
	return types.Typ[b.Kind()].Name()
}

// signature is a materialized parameter list.
type signature struct {
	params   []meta.Param
	results  []meta.Param
	variadic bool
}

func (s *signature) Params() []meta.Param  { return s.params }
func (s *signature) Results() []meta.Param { return s.results }
func (s *signature) Variadic() bool        { return s.variadic }

func (u *Universe) params(tuple *types.Tuple, variadic bool, kinds map[string]meta.ParamKind) []meta.Param {
	if tuple.Len() == 0 {
		return nil
	}

	out := make([]meta.Param, tuple.Len())

	for i := range out {
		v := tuple.At(i)
		p := &paramDesc{name: v.Name(), index: i, typ: u.Of(v.Type())}

		if variadic && i == tuple.Len()-1 {
			p.kind = meta.ParamVariadic
		} else {
			k, annotated := kinds[v.Name()]
			p.kind, p.typ = meta.PointerParam(p.typ, k, annotated)
		}

		out[i] = p
	}

	return out
}

// methodDesc is a meta.Method over a *types.Func.
type methodDesc struct {
	signature

	u        *Universe
	fn       *types.Func
	decl     meta.Type
	abstract bool
}

var _ meta.Method = (*methodDesc)(nil)

func (u *Universe) method(fn *types.Func, decl meta.Type, abstract bool) *methodDesc {
	sig := fn.Type().(*types.Signature)
	kinds := u.directives[fn.Origin().Pos()]

	return &methodDesc{
		signature: signature{
			params:   u.params(sig.Params(), sig.Variadic(), kinds),
			results:  u.params(sig.Results(), false, nil),
			variadic: sig.Variadic(),
		},
		u:        u,
		fn:       fn,
		decl:     decl,
		abstract: abstract,
	}
}

func (m *methodDesc) Name() string         { return m.fn.Name() }
func (m *methodDesc) Declaring() meta.Type { return m.decl }
func (m *methodDesc) Static() bool         { return false }
func (m *methodDesc) Abstract() bool       { return m.abstract }
func (m *methodDesc) Virtual() bool        { return m.abstract }
func (m *methodDesc) Final() bool          { return !m.abstract }

func (m *methodDesc) Visibility() meta.Visibility {
	v := meta.VisibilityOf(m.fn.Name())
	if _, _, ok := meta.ParseExplicitName(m.fn.Name()); ok {
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

func (m *methodDesc) TypeParams() []meta.Type {
	return m.u.typeParams(m.fn.Type().(*types.Signature).TypeParams())
}

func (m *methodDesc) PointerReceiver() bool {
	recv := m.fn.Type().(*types.Signature).Recv()
	if recv == nil || m.abstract {
		return false
	}

	_, ok := types.Unalias(recv.Type()).(*types.Pointer)

	return ok
}

func (m *methodDesc) ExplicitFor() string {
	c, _, ok := meta.ParseExplicitName(m.fn.Name())
	if !ok {
		return ""
	}

	return c
}

// paramDesc is a meta.Param.
type paramDesc struct {
	name  string
	index int
	kind  meta.ParamKind
	typ   meta.Type
}

func (p *paramDesc) Name() string         { return p.name }
func (p *paramDesc) Index() int           { return p.index }
func (p *paramDesc) Kind() meta.ParamKind { return p.kind }
func (p *paramDesc) Type() meta.Type      { return p.typ }

// fieldDesc is a meta.Field over a struct field.
type fieldDesc struct {
	u     *Universe
	v     *types.Var
	index int
	decl  meta.Type
}

func (f *fieldDesc) Name() string         { return f.v.Name() }
func (f *fieldDesc) Index() int           { return f.index }
func (f *fieldDesc) Type() meta.Type      { return f.u.Of(f.v.Type()) }
func (f *fieldDesc) Embedded() bool       { return f.v.Embedded() }
func (f *fieldDesc) Declaring() meta.Type { return f.decl }

func (f *fieldDesc) Visibility() meta.Visibility {
	return meta.VisibilityOf(f.v.Name())
}
