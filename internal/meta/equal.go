package meta

import (
	"strconv"
	"strings"
)

// Equal reports whether a and b are structurally equal: both are generic
// parameters at the same ordinal, or both carry the same qualified name and
// pairwise equal type arguments, or both are unnamed with the same shape and
// equal components. Descriptor identity is never consulted.
func Equal(a, b Type) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if a.Kind() == KindGenericParam || b.Kind() == KindGenericParam {
		return a.Kind() == b.Kind() && a.Ordinal() == b.Ordinal()
	}

	if a.Kind() == KindVoid || b.Kind() == KindVoid {
		return a.Kind() == b.Kind()
	}

	if IsNamed(a) || IsNamed(b) {
		if a.QualifiedName() != b.QualifiedName() {
			return false
		}

		return equalTypes(EffectiveArgs(a), EffectiveArgs(b))
	}

	if a.Ref() != b.Ref() {
		return false
	}

	switch a.Ref() {
	case RefPointer, RefSlice:
		return Equal(a.Elem(), b.Elem())
	case RefArray:
		return a.Len() == b.Len() && Equal(a.Elem(), b.Elem())
	case RefMap:
		return Equal(a.Key(), b.Key()) && Equal(a.Elem(), b.Elem())
	case RefChan:
		return a.ChanDir() == b.ChanDir() && Equal(a.Elem(), b.Elem())
	}

	if a.Kind() != b.Kind() {
		return false
	}

	switch a.Kind() {
	case KindStruct:
		return equalFields(a.Fields(), b.Fields())
	case KindInterface:
		return equalMethodSets(a.Methods(), b.Methods())
	case KindSignature:
		return SameSignature(a.Signature(), b.Signature())
	default:
		// Unnamed basic types do not exist; two invalid descriptors never match.
		return false
	}
}

func equalTypes(a, b []Type) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}

	return true
}

func equalFields(a, b []Field) bool {
	if len(a) != len(b) {
		return false
	}

	for i := range a {
		if a[i].Name() != b[i].Name() || a[i].Embedded() != b[i].Embedded() {
			return false
		}

		if !Equal(a[i].Type(), b[i].Type()) {
			return false
		}
	}

	return true
}

func equalMethodSets(a, b []Method) bool {
	if len(a) != len(b) {
		return false
	}

	bm := make(map[string]Method, len(b))
	for _, m := range b {
		bm[m.Name()] = m
	}

	for _, m := range a {
		other, ok := bm[m.Name()]
		if !ok || !SameSignature(m, other) {
			return false
		}
	}

	return true
}

// SameSignature reports whether two signatures have the same parameter
// count, passing kinds, parameter types and result types.
func SameSignature(a, b Signature) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}

	if !SameParams(a, b) {
		return false
	}

	ar, br := a.Results(), b.Results()
	if len(ar) != len(br) {
		return false
	}

	for i := range ar {
		if !Equal(ar[i].Type(), br[i].Type()) {
			return false
		}
	}

	return sameArity(a, b)
}

// SameParams compares parameter lists only.
func SameParams(a, b Signature) bool {
	if a.Variadic() != b.Variadic() {
		return false
	}

	ap, bp := a.Params(), b.Params()
	if len(ap) != len(bp) {
		return false
	}

	for i := range ap {
		if ap[i].Kind() != bp[i].Kind() || !Equal(ap[i].Type(), bp[i].Type()) {
			return false
		}
	}

	return true
}

func sameArity(a, b Signature) bool {
	am, aok := a.(Method)
	bm, bok := b.(Method)

	if !aok || !bok {
		return true
	}

	return len(am.TypeParams()) == len(bm.TypeParams())
}

// SignatureKey identifies a method overload for duplicate detection. It
// covers the name, parameter types, passing kinds and generic arity, and
// ignores parameter names and results.
func SignatureKey(m Method) string {
	var sb strings.Builder

	sb.WriteString(m.Name())

	if n := len(m.TypeParams()); n > 0 {
		sb.WriteString("`" + strconv.Itoa(n))
	}

	sb.WriteByte('(')

	for i, p := range m.Params() {
		if i > 0 {
			sb.WriteString(", ")
		}

		writeParam(&sb, p, true, true)
	}

	sb.WriteByte(')')

	return sb.String()
}

// AssignableTo reports whether a value of type src can be used where dst is
// expected: the types are Equal, dst is an interface implemented by src, or
// both share an underlying type and at least one of them is unnamed.
func AssignableTo(src, dst Type) bool {
	if Equal(src, dst) {
		return true
	}

	if src == nil || dst == nil {
		return false
	}

	if IsInterface(dst) {
		return Implements(src, dst)
	}

	if IsNamed(src) && IsNamed(dst) {
		return false
	}

	return Equal(src.Underlying(), dst.Underlying())
}

// Implements reports whether t's method set covers every method of iface.
// Pointer types include pointer-receiver methods of their element.
func Implements(t, iface Type) bool {
	if !IsInterface(iface) || t == nil {
		return false
	}

	required := iface.Methods()
	if len(required) == 0 {
		return true
	}

	set := MemberSet(t)

	for _, want := range required {
		found := false

		for _, m := range set.Visible(want.Name()) {
			if m.Method != nil && m.Callable() && SameSignature(m.Method, want) {
				found = true
				break
			}
		}

		if !found {
			return false
		}
	}

	return true
}
