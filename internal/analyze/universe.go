package analyze

import (
	"errors"
	"fmt"
	"go/types"
	"slices"
	"sync"

	"adapter-generator/internal/common"
	"adapter-generator/internal/meta"
)

var errNotFound = errors.New("not found")

// Universe is the symbol-only meta.Universe over type-checked packages.
type Universe struct {
	mu         sync.Mutex
	roots      []string
	pkgs       map[string]*types.Package
	directives directives
}

var _ meta.Universe = (*Universe)(nil)

func newUniverse() *Universe {
	return &Universe{
		pkgs:       make(map[string]*types.Package),
		directives: make(directives),
	}
}

func (u *Universe) addRoot(pkg *types.Package) {
	if pkg == nil {
		return
	}

	if !slices.Contains(u.roots, pkg.Path()) {
		u.roots = append(u.roots, pkg.Path())
	}

	u.addPkg(pkg)
}

func (u *Universe) addPkg(pkg *types.Package) {
	if _, ok := u.pkgs[pkg.Path()]; ok {
		return
	}

	u.pkgs[pkg.Path()] = pkg

	for _, imp := range pkg.Imports() {
		u.addPkg(imp)
	}
}

// Name implements meta.Universe.
func (u *Universe) Name() string { return "packages" }

// References returns the loaded root packages.
func (u *Universe) References() []string {
	refs := slices.Clone(u.roots)
	slices.Sort(refs)

	return refs
}

// Package returns a loaded or imported package.
func (u *Universe) Package(path string) *types.Package {
	return u.pkgs[path]
}

// Lookup resolves a qualified type name. Generic types given with type
// arguments are instantiated.
func (u *Universe) Lookup(name string) (meta.Type, error) {
	expr, err := meta.ParseTypeName(name)
	if err != nil {
		return nil, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	t, err := u.resolve(expr)
	if errors.Is(err, errNotFound) {
		return nil, meta.NotFound(u, name)
	}

	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", name, err)
	}

	return u.Of(t), nil
}

// Of wraps a go/types type in a descriptor.
func (u *Universe) Of(t types.Type) meta.Type {
	if t == nil {
		return nil
	}

	return &typeDesc{u: u, t: types.Unalias(t)}
}

// LookupObject returns the type name object for a qualified name.
func (u *Universe) LookupObject(qualified string) (*types.TypeName, bool) {
	pkgPath, base := common.SplitQualified(qualified)

	var obj types.Object

	if pkgPath == "" {
		obj = types.Universe.Lookup(base)
	} else if pkg, ok := u.pkgs[pkgPath]; ok {
		obj = pkg.Scope().Lookup(base)
	}

	tn, ok := obj.(*types.TypeName)

	return tn, ok
}

func (u *Universe) resolve(e *meta.TypeExpr) (types.Type, error) {
	if e.Ref != meta.RefNone {
		elem, err := u.resolve(e.Elem)
		if err != nil {
			return nil, err
		}

		switch e.Ref {
		case meta.RefPointer:
			return types.NewPointer(elem), nil
		case meta.RefSlice:
			return types.NewSlice(elem), nil
		case meta.RefArray:
			return types.NewArray(elem, e.Len), nil
		case meta.RefChan:
			return types.NewChan(chanDir(e.Dir), elem), nil
		default:
			key, err := u.resolve(e.Key)
			if err != nil {
				return nil, err
			}

			return types.NewMap(key, elem), nil
		}
	}

	if e.Name == "unsafe.Pointer" {
		return types.Typ[types.UnsafePointer], nil
	}

	tn, ok := u.LookupObject(e.Name)
	if !ok {
		return nil, fmt.Errorf("%s: %w", e.Name, errNotFound)
	}

	if len(e.Args) == 0 {
		return tn.Type(), nil
	}

	args := make([]types.Type, len(e.Args))

	for i, a := range e.Args {
		t, err := u.resolve(a)
		if err != nil {
			return nil, err
		}

		args[i] = t
	}

	inst, err := types.Instantiate(nil, tn.Type(), args, true)
	if err != nil {
		return nil, fmt.Errorf("instantiating %s: %w", e.Name, err)
	}

	return inst, nil
}

func chanDir(d meta.ChanDir) types.ChanDir {
	switch d {
	case meta.ChanSend:
		return types.SendOnly
	case meta.ChanRecv:
		return types.RecvOnly
	default:
		return types.SendRecv
	}
}
