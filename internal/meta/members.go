package meta

import (
	"slices"
	"strings"
)

// Member is one entry of a type's member set: a method or a field, declared
// on the type itself or promoted from an embedded field.
type Member struct {
	Name   string
	Method Method
	Field  Field
	// Depth is the embedding depth; 0 for members declared on the root.
	Depth int
	// Path lists the embedded fields walked from the root to the declaring type.
	Path []Field
	// Addressable is true when the declaring value is reached through a
	// pointer, so pointer-receiver methods can be called and fields assigned.
	Addressable bool
	// Owner is the type whose walk contributed the member.
	Owner Type
}

// Kind returns MemberMethod or MemberField.
func (m Member) Kind() MemberKind {
	if m.Field != nil {
		return MemberField
	}

	return MemberMethod
}

// Callable reports whether a method member can be called on the root value.
func (m Member) Callable() bool {
	if m.Method == nil {
		return false
	}

	return !m.Method.PointerReceiver() || m.Addressable
}

// Selector returns the Go selector path from the root, e.g. "Base.Greet".
func (m Member) Selector() string {
	parts := make([]string, 0, len(m.Path)+1)
	for _, f := range m.Path {
		parts = append(parts, f.Name())
	}

	return strings.Join(append(parts, m.Name), ".")
}

// Visibility of the underlying method or field.
func (m Member) Visibility() Visibility {
	if m.Method != nil {
		return m.Method.Visibility()
	}

	return m.Field.Visibility()
}

// DeclPkg is the package that declares the member.
func (m Member) DeclPkg() string {
	if m.Method != nil && m.Method.Declaring() != nil {
		if pkg := m.Method.Declaring().PkgPath(); pkg != "" {
			return pkg
		}
	}

	if m.Owner == nil {
		return ""
	}

	return m.Owner.PkgPath()
}

// Members is the member set of a type.
type Members struct {
	root   Type
	all    []Member
	byName map[string][]Member
}

// MemberSet walks t and its embedded fields breadth-first. A pointer root (or
// an embedded pointer) makes the reached values addressable. Types already
// expanded at a shallower depth are not expanded again; the same type reached
// twice at one depth contributes its members twice, which makes them
// ambiguous as in Go selector resolution.
func MemberSet(t Type) *Members {
	s := &Members{root: t, byName: make(map[string][]Member)}
	if t == nil {
		return s
	}

	root, addressable := Deref(t)

	type node struct {
		typ         Type
		path        []Field
		addressable bool
	}

	expanded := make(map[string]bool)
	level := []node{{typ: root, addressable: addressable}}

	for depth := 0; len(level) > 0; depth++ {
		var (
			next []node
			here = make(map[string]bool)
		)

		for _, n := range level {
			key := Canonical(n.typ)
			if expanded[key] {
				continue
			}

			here[key] = true

			if IsInterface(n.typ) {
				for _, m := range n.typ.Methods() {
					s.add(Member{Name: m.Name(), Method: m, Depth: depth, Path: n.path, Addressable: true, Owner: n.typ})
				}

				continue
			}

			for _, m := range n.typ.Methods() {
				s.add(Member{Name: m.Name(), Method: m, Depth: depth, Path: n.path, Addressable: n.addressable, Owner: n.typ})
			}

			u := n.typ.Underlying()
			if u == nil || u.Kind() != KindStruct || u.Ref() != RefNone {
				continue
			}

			for _, f := range u.Fields() {
				s.add(Member{Name: f.Name(), Field: f, Depth: depth, Path: n.path, Addressable: n.addressable, Owner: n.typ})

				if !f.Embedded() {
					continue
				}

				ft, ptr := Deref(f.Type())
				next = append(next, node{
					typ:         ft,
					path:        append(slices.Clip(n.path), f),
					addressable: n.addressable || ptr,
				})
			}
		}

		for k := range here {
			expanded[k] = true
		}

		level = next
	}

	return s
}

func (s *Members) add(m Member) {
	s.all = append(s.all, m)
	s.byName[m.Name] = append(s.byName[m.Name], m)
}

// Root returns the type the set was computed for.
func (s *Members) Root() Type {
	return s.root
}

// All returns every member in walk order.
func (s *Members) All() []Member {
	return s.all
}

// Named returns every member called name, at any depth.
func (s *Members) Named(name string) []Member {
	return s.byName[name]
}

// Visible returns the members called name at the shallowest depth at which
// the name occurs. Deeper members are shadowed. More than one result means
// the name is ambiguous at that depth.
func (s *Members) Visible(name string) []Member {
	all := s.byName[name]
	if len(all) == 0 {
		return nil
	}

	minDepth := all[0].Depth
	for _, m := range all[1:] {
		minDepth = min(minDepth, m.Depth)
	}

	var out []Member

	for _, m := range all {
		if m.Depth == minDepth {
			out = append(out, m)
		}
	}

	return out
}

// Names returns the distinct member names, sorted.
func (s *Members) Names() []string {
	names := make([]string, 0, len(s.byName))
	for n := range s.byName {
		names = append(names, n)
	}

	slices.Sort(names)

	return names
}

// Methods returns the callable, visible methods of the set, one per name,
// skipping ambiguous names.
func (s *Members) Methods() []Member {
	var out []Member

	for _, name := range s.Names() {
		vis := s.Visible(name)
		if len(vis) == 1 && vis[0].Method != nil {
			out = append(out, vis[0])
		}
	}

	return out
}
