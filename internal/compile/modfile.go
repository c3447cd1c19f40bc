package compile

import (
	"errors"
	"fmt"
	"runtime/debug"
	"sort"
	"strings"

	"golang.org/x/mod/modfile"
	"golang.org/x/mod/module"
)

// fallbackGoVersion is used when the binary's Go version cannot be written
// into a go directive, e.g. for development toolchains.
const fallbackGoVersion = "1.24"

// develVersion stands in for modules without a version. Such modules need a
// replace directory.
const develVersion = "v0.0.0-00010101000000-000000000000"

// requirements is the build list a plugin must share with the host binary.
type requirements struct {
	goVersion string
	modules   []*debug.Module
	replace   map[string]string
}

func newRequirements(bi *debug.BuildInfo, replace map[string]string) (*requirements, error) {
	if bi == nil {
		return nil, errors.New("build information is not available; the host binary must be built in module mode")
	}

	r := &requirements{goVersion: goDirective(bi.GoVersion), replace: replace}

	if bi.Main.Path != "" {
		main := bi.Main
		r.modules = append(r.modules, &main)
	}

	for _, m := range bi.Deps {
		if m != nil {
			r.modules = append(r.modules, m)
		}
	}

	for path := range replace {
		if err := module.CheckImportPath(path); err != nil {
			return nil, fmt.Errorf("replace %s: %w", path, err)
		}
	}

	return r, nil
}

// goDirective turns runtime versions like "go1.24.3" into "1.24.3".
func goDirective(v string) string {
	v = strings.TrimPrefix(v, "go")
	if v == "" || strings.ContainsAny(v, " +-") {
		return fallbackGoVersion
	}

	return v
}

// owner returns the module providing pkgPath, the longest matching module
// path. Standard library packages have no owner.
func (r *requirements) owner(pkgPath string) (*debug.Module, bool) {
	var best *debug.Module

	for _, m := range r.modules {
		if pkgPath != m.Path && !strings.HasPrefix(pkgPath, m.Path+"/") {
			continue
		}

		if best == nil || len(m.Path) > len(best.Path) {
			best = m
		}
	}

	return best, best != nil
}

// check reports referenced packages no module of the build list provides.
func (r *requirements) check(refs []string) []string {
	var missing []string

	for _, ref := range refs {
		if _, ok := r.owner(ref); ok || isStd(ref) {
			continue
		}

		missing = append(missing, ref)
	}

	sort.Strings(missing)

	return missing
}

// isStd reports paths without a domain in their first element. Only
// consulted for paths no module of the build list provides.
func isStd(pkgPath string) bool {
	first, _, _ := strings.Cut(pkgPath, "/")
	return !strings.Contains(first, ".")
}

// render produces the go.mod of a build module. Every module of the host
// build list is required at the host's version so the plugin links the
// same package versions.
func (r *requirements) render() ([]byte, error) {
	f := new(modfile.File)
	if err := f.AddModuleStmt(PluginPackage); err != nil {
		return nil, err
	}

	if err := f.AddGoStmt(r.goVersion); err != nil {
		return nil, err
	}

	versions := make([]module.Version, 0, len(r.modules))

	for _, m := range r.modules {
		v := module.Version{Path: m.Path, Version: m.Version}

		if dir, ok := r.replace[m.Path]; ok {
			v.Version = develVersion
			if err := f.AddReplace(m.Path, "", dir, ""); err != nil {
				return nil, err
			}
		} else if rep := m.Replace; rep != nil {
			if err := f.AddReplace(m.Path, "", rep.Path, rep.Version); err != nil {
				return nil, err
			}
		}

		if v.Version == "" || v.Version == "(devel)" {
			return nil, fmt.Errorf("module %s has no version; configure a replace directory for it", m.Path)
		}

		versions = append(versions, v)
	}

	module.Sort(versions)

	for _, v := range versions {
		f.AddNewRequire(v.Path, v.Version, false)
	}

	f.Cleanup()

	return f.Format()
}
