package meta

import "strings"

// Visibility is a set of access flags. Flags compose: Protected|Internal is
// "protected internal".
type Visibility uint8

const (
	VisPrivate Visibility = 1 << iota
	VisExplicit
	VisProtected
	VisInternal
	VisPublic
)

var visibilityNames = []struct {
	flag Visibility
	name string
}{
	{VisPublic, "public"},
	{VisInternal, "internal"},
	{VisProtected, "protected"},
	{VisExplicit, "explicit"},
	{VisPrivate, "private"},
}

// Has reports whether all flags in f are set.
func (v Visibility) Has(f Visibility) bool {
	return v&f == f
}

func (v Visibility) String() string {
	if v == 0 {
		return "none"
	}

	var parts []string

	for _, n := range visibilityNames {
		if v&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}

	return strings.Join(parts, "|")
}

// VisibilityOf returns the visibility of a Go identifier.
func VisibilityOf(name string) Visibility {
	if name != "" && name[0] >= 'A' && name[0] <= 'Z' {
		return VisPublic
	}

	return VisInternal
}

// Candidate reports whether a member with this visibility may take part in
// matching at all. Private members qualify only as explicit implementations.
func (v Visibility) Candidate() bool {
	if v&(VisPublic|VisInternal|VisProtected) != 0 {
		return true
	}

	return v.Has(VisPrivate | VisExplicit)
}

// Accessible reports whether code in package from can reference a member
// with this visibility declared in package declPkg.
func (v Visibility) Accessible(declPkg, from string) bool {
	switch {
	case v.Has(VisPublic):
		return true
	case v.Has(VisInternal), v.Has(VisPrivate | VisExplicit):
		return declPkg == from
	default:
		return false
	}
}
