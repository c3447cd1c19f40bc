package reflected

import (
	"reflect"
	"runtime"
	"slices"
	"strings"

	"adapter-generator/internal/common"
	"adapter-generator/internal/meta"
)

// typeDesc is a meta.Type over a reflect.Type. With under set it describes
// the underlying type of a named type.
type typeDesc struct {
	u     *Universe
	t     reflect.Type
	under bool
}

var _ meta.Type = (*typeDesc)(nil)

// ReflectType returns the described type.
func (d *typeDesc) ReflectType() reflect.Type { return d.t }

func (d *typeDesc) Name() string {
	if d.under {
		return ""
	}

	if d.t.Kind() == reflect.UnsafePointer {
		return "Pointer"
	}

	name, _, _ := strings.Cut(d.t.Name(), "[")

	return name
}

func (d *typeDesc) QualifiedName() string {
	name := d.Name()
	if name == "" {
		return ""
	}

	return common.Qualify(d.PkgPath(), name)
}

func (d *typeDesc) PkgPath() string {
	switch {
	case d.under:
		return ""
	case d.t.Kind() == reflect.UnsafePointer:
		return "unsafe"
	default:
		return d.t.PkgPath()
	}
}

func (d *typeDesc) Kind() meta.TypeKind {
	switch d.t.Kind() {
	case reflect.Interface:
		return meta.KindInterface
	case reflect.Struct:
		return meta.KindStruct
	case reflect.Func:
		return meta.KindSignature
	case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Map, reflect.Chan:
		return meta.KindComposite
	case reflect.Invalid:
		return meta.KindInvalid
	default:
		return meta.KindBasic
	}
}

func (d *typeDesc) Ref() meta.RefKind {
	if d.QualifiedName() != "" {
		return meta.RefNone
	}

	switch d.t.Kind() {
	case reflect.Pointer:
		return meta.RefPointer
	case reflect.Slice:
		return meta.RefSlice
	case reflect.Array:
		return meta.RefArray
	case reflect.Map:
		return meta.RefMap
	case reflect.Chan:
		return meta.RefChan
	default:
		return meta.RefNone
	}
}

func (d *typeDesc) Elem() meta.Type {
	if d.Ref() == meta.RefNone {
		return nil
	}

	return d.u.Of(d.t.Elem())
}

func (d *typeDesc) Key() meta.Type {
	if d.Ref() != meta.RefMap {
		return nil
	}

	return d.u.Of(d.t.Key())
}

func (d *typeDesc) Len() int64 {
	if d.Ref() != meta.RefArray {
		return 0
	}

	return int64(d.t.Len())
}

func (d *typeDesc) ChanDir() meta.ChanDir {
	if d.Ref() != meta.RefChan {
		return meta.ChanBoth
	}

	switch d.t.ChanDir() {
	case reflect.SendDir:
		return meta.ChanSend
	case reflect.RecvDir:
		return meta.ChanRecv
	default:
		return meta.ChanBoth
	}
}

// TypeArgs parses the argument list out of the instance name and resolves
// every argument it can; unknown names are described by their expression.
func (d *typeDesc) TypeArgs() []meta.Type {
	if d.under {
		return nil
	}

	_, list, found := strings.Cut(d.t.Name(), "[")
	if !found {
		return nil
	}

	expr, err := meta.ParseTypeName("_[" + list)
	if err != nil {
		return []meta.Type{&exprType{e: &meta.TypeExpr{Name: "[" + list}}}
	}

	args := make([]meta.Type, len(expr.Args))

	for i, a := range expr.Args {
		if t, err := d.u.resolve(a); err == nil {
			args[i] = d.u.Of(t)
		} else {
			args[i] = &exprType{e: a}
		}
	}

	return args
}

// TypeParams is always empty: reflect only sees instantiated types.
func (d *typeDesc) TypeParams() []meta.Type { return nil }
func (d *typeDesc) Ordinal() int            { return -1 }
func (d *typeDesc) Constraint() meta.Type   { return nil }

func (d *typeDesc) Underlying() meta.Type {
	if d.under || d.QualifiedName() == "" {
		return d
	}

	if d.Kind() == meta.KindBasic {
		return d.u.Of(basicOf(d.t.Kind()))
	}

	return &typeDesc{u: d.u, t: d.t, under: true}
}

func (d *typeDesc) Methods() []meta.Method {
	if d.t.Kind() == reflect.Interface {
		methods := make([]meta.Method, d.t.NumMethod())

		for i := range methods {
			m := d.t.Method(i)
			methods[i] = d.u.method(d, m.Name, m.Type, 0, m.PkgPath == "", true, false)
		}

		slices.SortFunc(methods, func(a, b meta.Method) int { return strings.Compare(a.Name(), b.Name()) })

		return methods
	}

	if d.under || d.QualifiedName() == "" || d.t.Kind() == reflect.Pointer {
		return nil
	}

	return d.declaredMethods()
}

// declaredMethods lists the methods declared on the named type itself.
// reflect reports promoted methods too; a method whose name an embedded
// field provides is kept only if it is not a compiler-generated wrapper.
func (d *typeDesc) declaredMethods() []meta.Method {
	pt := reflect.PointerTo(d.t)
	promoted := d.promotedNames()

	var methods []meta.Method

	for i := range pt.NumMethod() {
		pm := pt.Method(i)
		vm, inValueSet := d.t.MethodByName(pm.Name)

		if promoted[pm.Name] {
			fn := pm.Func
			if inValueSet {
				fn = vm.Func
			}

			if isWrapper(fn) {
				continue
			}
		}

		methods = append(methods, d.u.method(d, pm.Name, pm.Type, 1, true, false, !inValueSet))
	}

	return methods
}

func (d *typeDesc) promotedNames() map[string]bool {
	names := make(map[string]bool)
	if d.t.Kind() != reflect.Struct {
		return names
	}

	for i := range d.t.NumField() {
		f := d.t.Field(i)
		if !f.Anonymous {
			continue
		}

		ft := f.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}

		set := ft
		if ft.Kind() != reflect.Interface {
			set = reflect.PointerTo(ft)
		}

		for j := range set.NumMethod() {
			names[set.Method(j).Name] = true
		}
	}

	return names
}

func isWrapper(fn reflect.Value) bool {
	if !fn.IsValid() {
		return false
	}

	pc := fn.Pointer()

	f := runtime.FuncForPC(pc)
	if f == nil {
		return false
	}

	file, _ := f.FileLine(pc)

	return file == "<autogenerated>"
}

func (d *typeDesc) Fields() []meta.Field {
	if d.t.Kind() != reflect.Struct {
		return nil
	}

	fields := make([]meta.Field, d.t.NumField())
	for i := range fields {
		fields[i] = &fieldDesc{u: d.u, f: d.t.Field(i), index: i, decl: d}
	}

	return fields
}

func (d *typeDesc) Signature() meta.Signature {
	if d.t.Kind() != reflect.Func {
		return nil
	}

	return &signature{
		params:   d.u.params(d.t, 0, nil),
		results:  d.u.results(d.t),
		variadic: d.t.IsVariadic(),
	}
}

func (d *typeDesc) Universe() meta.Universe { return d.u }

func (d *typeDesc) String() string { return meta.TypeString(d) }

func basicOf(k reflect.Kind) reflect.Type {
	switch k {
	case reflect.UnsafePointer:
		return builtins["unsafe.Pointer"]
	case reflect.Invalid:
		return nil
	}

	// Kind names of basic kinds are the predeclared type names.
	return builtins[k.String()]
}
