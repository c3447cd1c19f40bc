package reflected

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"sync"
	"unsafe"

	"adapter-generator/internal/common"
	"adapter-generator/internal/meta"
)

var errNotFound = errors.New("not found")

var builtins = map[string]reflect.Type{
	"bool":           reflect.TypeFor[bool](),
	"int":            reflect.TypeFor[int](),
	"int8":           reflect.TypeFor[int8](),
	"int16":          reflect.TypeFor[int16](),
	"int32":          reflect.TypeFor[int32](),
	"int64":          reflect.TypeFor[int64](),
	"uint":           reflect.TypeFor[uint](),
	"uint8":          reflect.TypeFor[uint8](),
	"uint16":         reflect.TypeFor[uint16](),
	"uint32":         reflect.TypeFor[uint32](),
	"uint64":         reflect.TypeFor[uint64](),
	"uintptr":        reflect.TypeFor[uintptr](),
	"float32":        reflect.TypeFor[float32](),
	"float64":        reflect.TypeFor[float64](),
	"complex64":      reflect.TypeFor[complex64](),
	"complex128":     reflect.TypeFor[complex128](),
	"string":         reflect.TypeFor[string](),
	"error":          reflect.TypeFor[error](),
	"any":            reflect.TypeFor[any](),
	"byte":           reflect.TypeFor[byte](),
	"rune":           reflect.TypeFor[rune](),
	"unsafe.Pointer": reflect.TypeFor[unsafe.Pointer](),
}

// Universe is the loaded meta.Universe. Named types must be registered
// before they can be looked up by name; Of works for any reflect.Type.
type Universe struct {
	name string

	mu          sync.RWMutex
	types       map[string]reflect.Type
	annotations map[string]map[int]meta.ParamKind
}

var _ meta.Universe = (*Universe)(nil)

// NewUniverse returns an empty universe.
func NewUniverse(name string) *Universe {
	if name == "" {
		name = "reflect"
	}

	return &Universe{
		name:        name,
		types:       make(map[string]reflect.Type),
		annotations: make(map[string]map[int]meta.ParamKind),
	}
}

// Name implements meta.Universe.
func (u *Universe) Name() string { return u.name }

// References lists the registered named types.
func (u *Universe) References() []string {
	u.mu.RLock()
	defer u.mu.RUnlock()

	refs := make([]string, 0, len(u.types))
	for k := range u.types {
		refs = append(refs, k)
	}

	slices.Sort(refs)

	return refs
}

// Add registers named types together with every named type reachable from
// their fields and method signatures.
func (u *Universe) Add(types ...reflect.Type) {
	u.mu.Lock()
	defer u.mu.Unlock()

	seen := make(map[reflect.Type]bool)
	for _, t := range types {
		u.register(t, seen)
	}
}

// AddValue registers the dynamic types of values.
func (u *Universe) AddValue(values ...any) {
	types := make([]reflect.Type, 0, len(values))

	for _, v := range values {
		if v != nil {
			types = append(types, reflect.TypeOf(v))
		}
	}

	u.Add(types...)
}

func (u *Universe) register(t reflect.Type, seen map[reflect.Type]bool) {
	if t == nil || seen[t] {
		return
	}

	seen[t] = true

	// Instance names already carry qualified arguments: "Cell[int]".
	if t.Name() != "" && t.PkgPath() != "" {
		u.types[common.Qualify(t.PkgPath(), t.Name())] = t
	}

	switch t.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Array, reflect.Chan:
		u.register(t.Elem(), seen)
	case reflect.Map:
		u.register(t.Key(), seen)
		u.register(t.Elem(), seen)
	case reflect.Struct:
		for i := range t.NumField() {
			u.register(t.Field(i).Type, seen)
		}
	case reflect.Func:
		for i := range t.NumIn() {
			u.register(t.In(i), seen)
		}

		for i := range t.NumOut() {
			u.register(t.Out(i), seen)
		}
	}

	methods := t
	if t.Kind() != reflect.Interface && t.Kind() != reflect.Pointer {
		methods = reflect.PointerTo(t)
	}

	for i := range methods.NumMethod() {
		u.register(methods.Method(i).Type, seen)
	}
}

// Annotate sets the passing kind of parameter index of a method, given as
// "pkg/path.Type.Method". It is the loaded-universe counterpart of the
// //adapt: directives.
func (u *Universe) Annotate(method string, index int, kind meta.ParamKind) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.annotations[method] == nil {
		u.annotations[method] = make(map[int]meta.ParamKind)
	}

	u.annotations[method][index] = kind
}

func (u *Universe) annotationsFor(method string) map[int]meta.ParamKind {
	u.mu.RLock()
	defer u.mu.RUnlock()

	return u.annotations[method]
}

// Of wraps t in a descriptor.
func (u *Universe) Of(t reflect.Type) meta.Type {
	if t == nil {
		return nil
	}

	return &typeDesc{u: u, t: t}
}

// Lookup resolves a qualified name against registered types and builtins.
// Composite names are constructed with reflect; generic instances must have
// been registered.
func (u *Universe) Lookup(name string) (meta.Type, error) {
	expr, err := meta.ParseTypeName(name)
	if err != nil {
		return nil, err
	}

	t, err := u.resolve(expr)
	if errors.Is(err, errNotFound) {
		return nil, meta.NotFound(u, name)
	}

	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", name, err)
	}

	return u.Of(t), nil
}

func (u *Universe) resolve(e *meta.TypeExpr) (reflect.Type, error) {
	if e.Ref == meta.RefNone {
		if t, ok := builtins[e.Name]; ok && len(e.Args) == 0 {
			return t, nil
		}

		key := canonicalExpr(u, e)

		u.mu.RLock()
		t, ok := u.types[key]
		u.mu.RUnlock()

		if !ok {
			return nil, fmt.Errorf("%s: %w", e, errNotFound)
		}

		return t, nil
	}

	elem, err := u.resolve(e.Elem)
	if err != nil {
		return nil, err
	}

	switch e.Ref {
	case meta.RefPointer:
		return reflect.PointerTo(elem), nil
	case meta.RefSlice:
		return reflect.SliceOf(elem), nil
	case meta.RefArray:
		return reflect.ArrayOf(int(e.Len), elem), nil
	case meta.RefChan:
		return reflect.ChanOf(chanDir(e.Dir), elem), nil
	default:
		key, err := u.resolve(e.Key)
		if err != nil {
			return nil, err
		}

		if !key.Comparable() {
			return nil, fmt.Errorf("invalid map key type %s", key)
		}

		return reflect.MapOf(key, elem), nil
	}
}

// canonicalExpr renders a named expression the way register keys it, so
// that aliases such as byte resolve to the same entry as uint8.
func canonicalExpr(u *Universe, e *meta.TypeExpr) string {
	if len(e.Args) == 0 {
		return e.Name
	}

	c := *e
	c.Args = make([]*meta.TypeExpr, len(e.Args))

	for i, a := range e.Args {
		if t, err := u.resolve(a); err == nil {
			if parsed, err := meta.ParseTypeName(meta.TypeString(u.Of(t))); err == nil {
				c.Args[i] = parsed
				continue
			}
		}

		c.Args[i] = a
	}

	return c.String()
}

func chanDir(d meta.ChanDir) reflect.ChanDir {
	switch d {
	case meta.ChanSend:
		return reflect.SendDir
	case meta.ChanRecv:
		return reflect.RecvDir
	default:
		return reflect.BothDir
	}
}
