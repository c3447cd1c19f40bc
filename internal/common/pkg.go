package common

import (
	"path"
	"strings"
)

// UnknownStr is the String() form of out-of-range enum values.
const UnknownStr = "unknown"

// PkgAlias returns the package alias (last element of path) for a given package path.
// Returns empty string if pkgPath is empty.
func PkgAlias(pkgPath string) string {
	if pkgPath == "" {
		return ""
	}

	alias := path.Base(pkgPath)

	// Major version suffixes ("example.com/m/v2") are not package names.
	if len(alias) > 1 && alias[0] == 'v' && strings.Trim(alias[1:], "0123456789") == "" {
		if parent := path.Base(path.Dir(pkgPath)); parent != "." && parent != "/" {
			alias = parent
		}
	}

	return strings.NewReplacer("-", "_", ".", "_").Replace(alias)
}

// SplitQualified splits "pkg/path.Name" at the last dot that follows the
// last slash. Names without a package return an empty path.
func SplitQualified(qualified string) (pkgPath, name string) {
	slash := strings.LastIndex(qualified, "/")

	dot := strings.LastIndex(qualified[slash+1:], ".")
	if dot < 0 {
		return "", qualified
	}

	dot += slash + 1

	return qualified[:dot], qualified[dot+1:]
}

// Qualify joins a package path and a name.
func Qualify(pkgPath, name string) string {
	if pkgPath == "" {
		return name
	}

	return pkgPath + "." + name
}
