package meta

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"adapter-generator/internal/common"
)

var errBadTypeName = errors.New("malformed type name")

// TypeExpr is a parsed type name.
type TypeExpr struct {
	// Ref is RefNone for named types.
	Ref RefKind
	// Name is the qualified name of a named type ("example.com/p.Box").
	Name string
	Args []*TypeExpr
	Elem *TypeExpr
	Key  *TypeExpr
	Len  int64
	Dir  ChanDir
}

// PkgPath returns the package part of a named expression.
func (e *TypeExpr) PkgPath() string {
	p, _ := common.SplitQualified(e.Name)
	return p
}

// Base returns the unqualified name of a named expression.
func (e *TypeExpr) Base() string {
	_, n := common.SplitQualified(e.Name)
	return n
}

func (e *TypeExpr) String() string {
	switch e.Ref {
	case RefPointer:
		return "*" + e.Elem.String()
	case RefSlice:
		return "[]" + e.Elem.String()
	case RefArray:
		return "[" + strconv.FormatInt(e.Len, 10) + "]" + e.Elem.String()
	case RefMap:
		return "map[" + e.Key.String() + "]" + e.Elem.String()
	case RefChan:
		return e.Dir.String() + " " + e.Elem.String()
	}

	if len(e.Args) == 0 {
		return e.Name
	}

	args := make([]string, len(e.Args))
	for i, a := range e.Args {
		args[i] = a.String()
	}

	return e.Name + "[" + strings.Join(args, ",") + "]"
}

// ParseTypeName parses the qualified syntax produced by TypeString:
// "int", "example.com/p.T", "*p.T", "[]p.T", "[4]p.T", "map[K]V",
// "chan T", "<-chan T", "chan<- T" and "p.Box[A,B]". reflect.Type names of
// generic instances ("Box[example.com/q.T]") parse the same way.
func ParseTypeName(s string) (*TypeExpr, error) {
	e, rest, err := parseExpr(strings.TrimSpace(s))
	if err != nil {
		return nil, fmt.Errorf("%w %q: %w", errBadTypeName, s, err)
	}

	if rest != "" {
		return nil, fmt.Errorf("%w %q: trailing %q", errBadTypeName, s, rest)
	}

	return e, nil
}

func parseExpr(s string) (*TypeExpr, string, error) {
	s = strings.TrimLeft(s, " ")

	switch {
	case s == "":
		return nil, "", errors.New("empty type")
	case strings.HasPrefix(s, "*"):
		return parseWrapped(&TypeExpr{Ref: RefPointer}, s[1:])
	case strings.HasPrefix(s, "[]"):
		return parseWrapped(&TypeExpr{Ref: RefSlice}, s[2:])
	case strings.HasPrefix(s, "["):
		end := strings.IndexByte(s, ']')
		if end < 0 {
			return nil, "", errors.New("unterminated array length")
		}

		n, err := strconv.ParseInt(s[1:end], 10, 64)
		if err != nil {
			return nil, "", fmt.Errorf("array length: %w", err)
		}

		return parseWrapped(&TypeExpr{Ref: RefArray, Len: n}, s[end+1:])
	case strings.HasPrefix(s, "map["):
		key, rest, err := parseExpr(s[4:])
		if err != nil {
			return nil, "", err
		}

		if !strings.HasPrefix(rest, "]") {
			return nil, "", errors.New("unterminated map key")
		}

		return parseWrapped(&TypeExpr{Ref: RefMap, Key: key}, rest[1:])
	case strings.HasPrefix(s, "<-chan "):
		return parseWrapped(&TypeExpr{Ref: RefChan, Dir: ChanRecv}, s[7:])
	case strings.HasPrefix(s, "chan<- "):
		return parseWrapped(&TypeExpr{Ref: RefChan, Dir: ChanSend}, s[7:])
	case strings.HasPrefix(s, "chan "):
		return parseWrapped(&TypeExpr{Ref: RefChan, Dir: ChanBoth}, s[5:])
	}

	return parseNamed(s)
}

func parseWrapped(e *TypeExpr, s string) (*TypeExpr, string, error) {
	elem, rest, err := parseExpr(s)
	if err != nil {
		return nil, "", err
	}

	e.Elem = elem

	return e, rest, nil
}

// parseNamed reads a qualified name up to a delimiter. Package paths never
// contain brackets or commas, so the first '[' opens the argument list.
func parseNamed(s string) (*TypeExpr, string, error) {
	end := strings.IndexAny(s, "[],")
	if end < 0 {
		end = len(s)
	}

	name := strings.TrimSpace(s[:end])
	if name == "" {
		return nil, "", errors.New("missing type name")
	}

	e := &TypeExpr{Name: name}
	rest := s[end:]

	if !strings.HasPrefix(rest, "[") {
		return e, rest, nil
	}

	rest = rest[1:]

	for {
		arg, r, err := parseExpr(rest)
		if err != nil {
			return nil, "", err
		}

		e.Args = append(e.Args, arg)
		r = strings.TrimLeft(r, " ")

		switch {
		case strings.HasPrefix(r, ","):
			rest = r[1:]
		case strings.HasPrefix(r, "]"):
			return e, r[1:], nil
		default:
			return nil, "", errors.New("unterminated type argument list")
		}
	}
}
