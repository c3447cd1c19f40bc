package meta

import (
	"hash/fnv"
	"strconv"
	"strings"
)

// TypeString renders t in the qualified form accepted by ParseTypeName,
// e.g. "*example.com/p.Box[int]". Generic parameters render by name.
func TypeString(t Type) string {
	var sb strings.Builder
	writeType(&sb, t, false)

	return sb.String()
}

// Canonical renders t in the form hashed by Hash. It differs from TypeString
// in that generic parameters render by ordinal ("$0"), which makes two
// independently declared parameter lists compare equal.
func Canonical(t Type) string {
	var sb strings.Builder
	writeType(&sb, t, true)

	return sb.String()
}

// Hash returns a hash consistent with Equal: Equal(a, b) implies
// Hash(a) == Hash(b).
func Hash(t Type) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(Canonical(t)))

	return h.Sum64()
}

// CanonicalSignature renders a signature with passing kinds, used by request
// keys and SignatureKey.
func CanonicalSignature(s Signature) string {
	var sb strings.Builder
	writeSignature(&sb, s, true, true)

	return sb.String()
}

// EffectiveArgs returns the type arguments of t, treating an uninstantiated
// generic declaration as instantiated with its own parameters.
func EffectiveArgs(t Type) []Type {
	if args := t.TypeArgs(); len(args) > 0 {
		return args
	}

	return t.TypeParams()
}

func writeType(sb *strings.Builder, t Type, canonical bool) {
	if t == nil {
		sb.WriteString("<nil>")
		return
	}

	switch {
	case t.Kind() == KindVoid:
		sb.WriteString("void")
		return
	case t.Kind() == KindGenericParam:
		if canonical {
			sb.WriteString("$" + strconv.Itoa(t.Ordinal()))
		} else {
			sb.WriteString(t.Name())
		}

		return
	case IsNamed(t):
		sb.WriteString(t.QualifiedName())

		if args := EffectiveArgs(t); len(args) > 0 {
			sb.WriteByte('[')

			for i, a := range args {
				if i > 0 {
					sb.WriteByte(',')
				}

				writeType(sb, a, canonical)
			}

			sb.WriteByte(']')
		}

		return
	}

	switch t.Ref() {
	case RefPointer:
		sb.WriteByte('*')
		writeType(sb, t.Elem(), canonical)
	case RefSlice:
		sb.WriteString("[]")
		writeType(sb, t.Elem(), canonical)
	case RefArray:
		sb.WriteString("[" + strconv.FormatInt(t.Len(), 10) + "]")
		writeType(sb, t.Elem(), canonical)
	case RefMap:
		sb.WriteString("map[")
		writeType(sb, t.Key(), canonical)
		sb.WriteByte(']')
		writeType(sb, t.Elem(), canonical)
	case RefChan:
		sb.WriteString(t.ChanDir().String() + " ")
		writeType(sb, t.Elem(), canonical)
	case RefNone:
		writeUnnamed(sb, t, canonical)
	}
}

func writeUnnamed(sb *strings.Builder, t Type, canonical bool) {
	switch t.Kind() {
	case KindStruct:
		sb.WriteString("struct{")

		for i, f := range t.Fields() {
			if i > 0 {
				sb.WriteString("; ")
			}

			if !f.Embedded() {
				sb.WriteString(f.Name() + " ")
			}

			writeType(sb, f.Type(), canonical)
		}

		sb.WriteByte('}')
	case KindInterface:
		sb.WriteString("interface{")

		for i, m := range t.Methods() {
			if i > 0 {
				sb.WriteString("; ")
			}

			sb.WriteString(m.Name())
			writeSignature(sb, m, canonical, false)
		}

		sb.WriteByte('}')
	case KindSignature:
		sb.WriteString("func")
		writeSignature(sb, t.Signature(), canonical, false)
	default:
		sb.WriteString(t.Kind().String())
	}
}

func writeSignature(sb *strings.Builder, s Signature, canonical, kinds bool) {
	if s == nil {
		sb.WriteString("()")
		return
	}

	sb.WriteByte('(')

	for i, p := range s.Params() {
		if i > 0 {
			sb.WriteString(", ")
		}

		writeParam(sb, p, canonical, kinds)
	}

	sb.WriteByte(')')

	results := s.Results()

	switch len(results) {
	case 0:
	case 1:
		sb.WriteByte(' ')
		writeType(sb, results[0].Type(), canonical)
	default:
		sb.WriteString(" (")

		for i, r := range results {
			if i > 0 {
				sb.WriteString(", ")
			}

			writeType(sb, r.Type(), canonical)
		}

		sb.WriteByte(')')
	}
}

func writeParam(sb *strings.Builder, p Param, canonical, kinds bool) {
	switch k := p.Kind(); {
	case k == ParamVariadic:
		sb.WriteString("...")

		if elem := p.Type(); elem != nil && elem.Ref() == RefSlice {
			writeType(sb, elem.Elem(), canonical)
			return
		}
	case k.IsByRef():
		if kinds {
			sb.WriteString(k.String() + " ")
		}

		sb.WriteByte('*')
	}

	writeType(sb, p.Type(), canonical)
}
