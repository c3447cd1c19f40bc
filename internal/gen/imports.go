package gen

import (
	"path"
	"slices"
	"strconv"
	"strings"
	"sync"

	"adapter-generator/internal/common"
)

// Packages referenced by the scaffolding around every adapter.
const (
	adapterPkg = "adapter-generator/adapter"
	reflectPkg = "reflect"
)

// importSpec represents an import statement.
type importSpec struct {
	Alias string
	Path  string
}

// importSet assigns one alias per import path for everything a Generator
// emits, so units synthesized separately can share a file.
type importSet struct {
	mu      sync.Mutex
	self    string
	byPath  map[string]string
	byAlias map[string]string
}

func newImportSet(self, selfName string) *importSet {
	s := &importSet{
		self:    self,
		byPath:  make(map[string]string),
		byAlias: make(map[string]string),
	}

	s.byAlias[selfName] = self

	return s
}

// alias returns the qualifier for pkgPath, "" for the generated package.
func (s *importSet) alias(pkgPath string) string {
	if pkgPath == "" || pkgPath == s.self {
		return ""
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if a, ok := s.byPath[pkgPath]; ok {
		return a
	}

	base := common.PkgAlias(pkgPath)
	alias := base

	for n := 2; ; n++ {
		if _, taken := s.byAlias[alias]; !taken {
			break
		}

		alias = base + strconv.Itoa(n)
	}

	s.byPath[pkgPath] = alias
	s.byAlias[alias] = pkgPath

	return alias
}

// specs returns import statements for paths, sorted by path. Aliases equal
// to the path's base name are left implicit.
func (s *importSet) specs(paths []string) []importSpec {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []importSpec

	for _, p := range paths {
		a, ok := s.byPath[p]
		if !ok || p == s.self {
			continue
		}

		spec := importSpec{Path: p}
		if a != path.Base(p) {
			spec.Alias = a
		}

		out = append(out, spec)
	}

	slices.SortFunc(out, func(a, b importSpec) int { return strings.Compare(a.Path, b.Path) })

	return slices.Compact(out)
}

// usedImports records the paths one unit refers to.
type usedImports map[string]bool

func (u usedImports) paths() []string {
	out := make([]string, 0, len(u))
	for p := range u {
		out = append(out, p)
	}

	slices.Sort(out)

	return out
}
