package analyze

import (
	"context"
	"errors"
	"fmt"
	"go/ast"
	"go/importer"
	"go/parser"
	"go/token"
	"go/types"

	"golang.org/x/tools/go/packages"
)

// LoadMode specifies what information to load from packages.
const LoadMode = packages.NeedName |
	packages.NeedFiles |
	packages.NeedSyntax |
	packages.NeedTypes |
	packages.NeedTypesInfo |
	packages.NeedImports

// Load loads the packages matching patterns from the current directory.
func Load(ctx context.Context, patterns ...string) (*Universe, error) {
	return LoadDir(ctx, "", patterns...)
}

// LoadDir loads the packages matching patterns relative to dir.
// Errors of every package are collected before failing.
func LoadDir(ctx context.Context, dir string, patterns ...string) (*Universe, error) {
	if len(patterns) == 0 {
		return nil, errors.New("no packages specified")
	}

	cfg := &packages.Config{
		Context: ctx,
		Dir:     dir,
		Mode:    LoadMode,
	}

	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("failed to load packages: %w", err)
	}

	var errs []error

	packages.Visit(pkgs, nil, func(pkg *packages.Package) {
		for _, e := range pkg.Errors {
			errs = append(errs, fmt.Errorf("%s: %w", pkg.PkgPath, e))
		}
	})

	if len(errs) > 0 {
		return nil, fmt.Errorf("package errors: %w", errors.Join(errs...))
	}

	if len(pkgs) == 0 {
		return nil, errors.New("no packages found")
	}

	return FromPackages(pkgs), nil
}

// FromPackages builds a universe over already loaded packages.
func FromPackages(pkgs []*packages.Package) *Universe {
	u := newUniverse()

	for _, pkg := range pkgs {
		u.addRoot(pkg.Types)
		u.directives.index(pkg.Syntax)
	}

	return u
}

// FromSource type-checks a single package from source text. Imports are
// resolved from source, so only the standard library is available.
func FromSource(pkgPath string, sources ...string) (*Universe, error) {
	fset := token.NewFileSet()
	files := make([]*ast.File, 0, len(sources))

	for i, src := range sources {
		f, err := parser.ParseFile(fset, fmt.Sprintf("src%d.go", i), src, parser.ParseComments)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", pkgPath, err)
		}

		files = append(files, f)
	}

	conf := types.Config{Importer: importer.ForCompiler(fset, "source", nil)}

	pkg, err := conf.Check(pkgPath, fset, files, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to type-check %s: %w", pkgPath, err)
	}

	u := newUniverse()
	u.addRoot(pkg)
	u.directives.index(files)

	return u, nil
}
