package meta

import "strings"

// DirectivePrefix starts a parameter passing directive in a doc comment.
const DirectivePrefix = "//adapt:"

// ParseDirective parses "//adapt:<kind> name..." into a kind and parameter
// names. ok is false for other comments and unknown kinds.
func ParseDirective(line string) (kind ParamKind, names []string, ok bool) {
	rest, found := strings.CutPrefix(strings.TrimSpace(line), DirectivePrefix)
	if !found {
		return ParamNone, nil, false
	}

	fields := strings.Fields(rest)
	if len(fields) < 2 {
		return ParamNone, nil, false
	}

	kind, ok = ParseParamKind(fields[0])
	if !ok {
		return ParamNone, nil, false
	}

	return kind, fields[1:], true
}

// PointerParam decides the passing kind of a parameter of type t. Only
// unnamed pointer types can be passed by reference; without a directive the
// PassesByRef default applies. By-reference parameters are described by
// their element type.
func PointerParam(t Type, kind ParamKind, annotated bool) (ParamKind, Type) {
	elem, ok := Deref(t)
	if !ok {
		return ParamNone, t
	}

	if !annotated {
		if !PassesByRef(t) {
			return ParamNone, t
		}

		kind = ParamRef
	}

	if !kind.IsByRef() {
		return ParamNone, t
	}

	return kind, elem
}
