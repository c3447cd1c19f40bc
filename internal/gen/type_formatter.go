package gen

import (
	"strconv"
	"strings"

	"adapter-generator/internal/meta"
)

// typeFormatter renders meta types as Go source for one unit, recording the
// imports it needs. Generic parameters render by ordinal through params, so
// contract and source declarations share the adapter's parameter names.
type typeFormatter struct {
	imports *importSet
	used    usedImports
	params  []string
}

func (f *typeFormatter) qualifier(pkgPath string) string {
	alias := f.imports.alias(pkgPath)
	if alias != "" {
		f.used[pkgPath] = true
		return alias + "."
	}

	return ""
}

// adapterRef qualifies a name from the runtime support package.
func (f *typeFormatter) adapterRef(name string) string {
	return f.qualifier(adapterPkg) + name
}

func (f *typeFormatter) typ(t meta.Type) string {
	var sb strings.Builder
	f.write(&sb, t)

	return sb.String()
}

func (f *typeFormatter) write(sb *strings.Builder, t meta.Type) {
	if meta.IsVoid(t) {
		sb.WriteString("struct{}")
		return
	}

	if t.Kind() == meta.KindGenericParam {
		if o := t.Ordinal(); o >= 0 && o < len(f.params) {
			sb.WriteString(f.params[o])
		} else {
			sb.WriteString(t.Name())
		}

		return
	}

	if meta.IsNamed(t) {
		sb.WriteString(f.qualifier(t.PkgPath()))
		sb.WriteString(t.Name())

		if args := meta.EffectiveArgs(t); len(args) > 0 {
			sb.WriteByte('[')

			for i, a := range args {
				if i > 0 {
					sb.WriteString(", ")
				}

				f.write(sb, a)
			}

			sb.WriteByte(']')
		}

		return
	}

	switch t.Ref() {
	case meta.RefPointer:
		sb.WriteByte('*')
		f.write(sb, t.Elem())
	case meta.RefSlice:
		sb.WriteString("[]")
		f.write(sb, t.Elem())
	case meta.RefArray:
		sb.WriteString("[" + strconv.FormatInt(t.Len(), 10) + "]")
		f.write(sb, t.Elem())
	case meta.RefMap:
		sb.WriteString("map[")
		f.write(sb, t.Key())
		sb.WriteByte(']')
		f.write(sb, t.Elem())
	case meta.RefChan:
		sb.WriteString(t.ChanDir().String() + " ")
		// chan (<-chan T) needs parentheses to stay a send-recv channel.
		if t.ChanDir() == meta.ChanBoth && t.Elem() != nil && t.Elem().Ref() == meta.RefChan && t.Elem().ChanDir() == meta.ChanRecv {
			sb.WriteByte('(')
			f.write(sb, t.Elem())
			sb.WriteByte(')')

			return
		}

		f.write(sb, t.Elem())
	default:
		f.unnamed(sb, t)
	}
}

func (f *typeFormatter) unnamed(sb *strings.Builder, t meta.Type) {
	switch t.Kind() {
	case meta.KindStruct:
		sb.WriteString("struct{")

		for i, fd := range t.Fields() {
			if i > 0 {
				sb.WriteString("; ")
			}

			if !fd.Embedded() {
				sb.WriteString(fd.Name() + " ")
			}

			f.write(sb, fd.Type())
		}

		sb.WriteByte('}')
	case meta.KindInterface:
		if len(t.Methods()) == 0 {
			sb.WriteString("any")
			return
		}

		sb.WriteString("interface{ ")

		for i, m := range t.Methods() {
			if i > 0 {
				sb.WriteString("; ")
			}

			sb.WriteString(m.Name())
			sb.WriteString(f.signature(m, nil))
		}

		sb.WriteString(" }")
	case meta.KindSignature:
		sb.WriteString("func")
		sb.WriteString(f.signature(t.Signature(), nil))
	default:
		sb.WriteString(t.Kind().String())
	}
}

// param renders a parameter type the way it is declared: by-ref kinds as
// pointers, the variadic parameter as ...elem.
func (f *typeFormatter) param(p meta.Param) string {
	switch k := p.Kind(); {
	case k == meta.ParamVariadic:
		if t := p.Type(); t != nil && t.Ref() == meta.RefSlice {
			return "..." + f.typ(t.Elem())
		}

		return "..." + f.typ(p.Type())
	case k.IsByRef():
		return "*" + f.typ(p.Type())
	default:
		return f.typ(p.Type())
	}
}

// value renders the type an invocation slot holds for p: the referenced
// type for by-ref kinds, the slice for the variadic parameter.
func (f *typeFormatter) value(p meta.Param) string {
	return f.typ(p.Type())
}

// signature renders "(p0 T0, p1 T1) (R0, R1)". names may be nil.
func (f *typeFormatter) signature(s meta.Signature, names []string) string {
	if s == nil {
		return "()"
	}

	var sb strings.Builder

	sb.WriteByte('(')

	for i, p := range s.Params() {
		if i > 0 {
			sb.WriteString(", ")
		}

		if names != nil {
			sb.WriteString(names[i] + " ")
		}

		sb.WriteString(f.param(p))
	}

	sb.WriteByte(')')
	sb.WriteString(f.results(s))

	return sb.String()
}

func (f *typeFormatter) results(s meta.Signature) string {
	rs := s.Results()

	switch len(rs) {
	case 0:
		return ""
	case 1:
		return " " + f.typ(rs[0].Type())
	}

	parts := make([]string, len(rs))
	for i, r := range rs {
		parts[i] = f.typ(r.Type())
	}

	return " (" + strings.Join(parts, ", ") + ")"
}

// typeParams renders "[T any, U comparable]" for a generic declaration.
func (f *typeFormatter) typeParams(params []meta.Type) string {
	if len(params) == 0 {
		return ""
	}

	parts := make([]string, len(params))
	for i, p := range params {
		constraint := "any"
		if c := p.Constraint(); c != nil {
			constraint = f.typ(c)
		}

		parts[i] = f.params[i] + " " + constraint
	}

	return "[" + strings.Join(parts, ", ") + "]"
}

// typeArgs renders "[T, U]".
func (f *typeFormatter) typeArgs() string {
	if len(f.params) == 0 {
		return ""
	}

	return "[" + strings.Join(f.params, ", ") + "]"
}
