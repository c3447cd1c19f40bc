package gen

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"adapter-generator/adapter"
	"adapter-generator/internal/match"
	"adapter-generator/internal/meta"
	"adapter-generator/internal/plan"
)

// adapterData holds everything the adapter template renders.
type adapterData struct {
	Name       string
	Ctor       string
	Doc        string
	TypeParams string
	TypeArgs   string
	Contract   string
	Source     string
	Intercept  bool
	Generic    bool
	// A qualifies names from the runtime support package ("adapter.").
	A       string
	Methods []methodData
}

type methodData struct {
	Name      string
	Signature string
	Body      string
}

// member is one generated method: a plain contract method or one accessor.
type member struct {
	method meta.Method
	kind   adapter.MemberKind
	target *match.Candidate
}

var memberKindNames = map[adapter.MemberKind]string{
	adapter.MemberMethod:      "MemberMethod",
	adapter.MemberGetter:      "MemberGetter",
	adapter.MemberSetter:      "MemberSetter",
	adapter.MemberIndexGet:    "MemberIndexGet",
	adapter.MemberIndexSet:    "MemberIndexSet",
	adapter.MemberEventAdd:    "MemberEventAdd",
	adapter.MemberEventRemove: "MemberEventRemove",
}

func (s *synth) adapterData() *adapterData {
	p := s.plan
	contract := p.Request.Contract()

	d := &adapterData{
		Name:      p.Name,
		Ctor:      ConstructorName(p.Name),
		Contract:  s.f.typ(contract),
		Intercept: s.intercept,
		Generic:   p.Generic(),
	}

	if s.intercept {
		d.A = s.f.adapterRef("")
	}

	if s.source != nil {
		d.Source = s.f.typ(s.source)
	}

	if d.Generic {
		d.TypeParams = s.f.typeParams(contract.TypeParams())
		d.TypeArgs = s.f.typeArgs()
	}

	switch {
	case !s.intercept:
		d.Doc = fmt.Sprintf("adapts %s to %s.", d.Source, d.Contract)
	case d.Source != "":
		d.Doc = fmt.Sprintf("routes %s calls through an interceptor to %s.", d.Contract, d.Source)
	default:
		d.Doc = fmt.Sprintf("routes %s calls through an interceptor.", d.Contract)
	}

	for _, m := range s.members() {
		d.Methods = append(d.Methods, s.method(m))
	}

	return d
}

// members flattens the binding into generated methods, sorted by name.
func (s *synth) members() []member {
	b := s.plan.Binding

	var out []member

	add := func(m meta.Method, kind adapter.MemberKind, c *match.Candidate) {
		if m != nil {
			out = append(out, member{method: m, kind: kind, target: c})
		}
	}

	for _, m := range b.Methods {
		add(m.Contract, adapter.MemberMethod, m.Target)
	}

	for _, p := range b.Properties {
		add(p.Contract.Getter, adapter.MemberGetter, p.Get)
		add(p.Contract.Setter, adapter.MemberSetter, p.Set)
	}

	for _, ix := range b.Indexers {
		add(ix.Contract.Getter, adapter.MemberIndexGet, ix.Get)
		add(ix.Contract.Setter, adapter.MemberIndexSet, ix.Set)
	}

	for _, ev := range b.Events {
		add(ev.Contract.Add, adapter.MemberEventAdd, ev.Add)
		add(ev.Contract.Remove, adapter.MemberEventRemove, ev.Remove)
	}

	slices.SortFunc(out, func(a, b member) int { return strings.Compare(a.method.Name(), b.method.Name()) })

	return out
}

func (s *synth) method(m member) methodData {
	names := make([]string, len(m.method.Params()))
	for i := range names {
		names[i] = "p" + strconv.Itoa(i)
	}

	d := methodData{
		Name:      m.method.Name(),
		Signature: s.f.signature(m.method, names),
	}

	if s.intercept {
		d.Body = s.interceptBody(m, names)
	} else {
		d.Body = s.duckBody(m, names)
	}

	return d
}

func (s *synth) duckBody(m member, names []string) string {
	args := slices.Clone(names)
	if m.method.Variadic() && len(args) > 0 {
		args[len(args)-1] += "..."
	}

	call := s.forward(m, args)
	if len(m.method.Results()) > 0 {
		return "\treturn " + call + "\n"
	}

	return "\t" + call + "\n"
}

// forward renders the access to the target: a call, a field selector or an
// index expression, or an assignment for setters.
func (s *synth) forward(m member, args []string) string {
	c := m.target
	recv := "a." + plan.TargetField

	switch c.Via {
	case match.ViaField:
		sel := recv + "." + c.Member.Name
		if m.kind == adapter.MemberSetter {
			return sel + " = " + args[0]
		}

		return sel
	case match.ViaIndex:
		if _, ptr := meta.Deref(s.source); ptr {
			recv = "(*" + recv + ")"
		}

		idx := recv + "[" + args[0] + "]"
		if m.kind == adapter.MemberIndexSet {
			return idx + " = " + args[1]
		}

		return idx
	default:
		return recv + "." + c.Member.Name + "(" + strings.Join(args, ", ") + ")"
	}
}

func (s *synth) interceptBody(m member, names []string) string {
	var b strings.Builder

	a := s.f.adapterRef
	params := m.method.Params()

	boxes := make([]string, len(params))
	for i, p := range params {
		switch {
		case p.Kind() == meta.ParamOut:
			boxes[i] = "nil"
		case p.Kind().IsByRef():
			boxes[i] = "*" + names[i]
		default:
			boxes[i] = names[i]
		}
	}

	args := "nil"
	if len(boxes) > 0 {
		args = "[]any{" + strings.Join(boxes, ", ") + "}"
	}

	dispatch := "nil"

	if m.target != nil {
		fn := "func(inv *" + a("Invocation") + ") {\n" + s.dispatchBody(m) + "}"

		if s.nilable {
			fmt.Fprintf(&b, "\tvar dispatch func(*%s)\n", a("Invocation"))
			fmt.Fprintf(&b, "\tif a.%s != nil {\n\t\tdispatch = %s\n\t}\n\n", plan.TargetField, fn)

			dispatch = "dispatch"
		} else {
			dispatch = fn
		}
	}

	fmt.Fprintf(&b, "\tinv := %s(%s{Contract: %q, Name: %q, Kind: %s}, %s, %s)\n",
		a("NewInvocation"), a("Member"), meta.TypeString(s.plan.Request.Contract()), m.method.Name(),
		a(memberKindNames[m.kind]), args, dispatch)
	fmt.Fprintf(&b, "\ta.%s.Intercept(inv)\n", plan.InterceptorField)

	for i, p := range params {
		if p.Kind().WritesBack() {
			fmt.Fprintf(&b, "\t*%s = %s[%s](inv, %d)\n", names[i], a("ArgAt"), s.f.typ(p.Type()), i)
		}
	}

	if results := m.method.Results(); len(results) > 0 {
		outs := make([]string, len(results))
		for i, r := range results {
			outs[i] = fmt.Sprintf("%s[%s](inv, %d)", a("ResultAt"), s.f.typ(r.Type()), i)
		}

		b.WriteString("\n\treturn " + strings.Join(outs, ", ") + "\n")
	}

	return b.String()
}

// dispatchBody forwards the invocation's current arguments to the target
// and stores by-ref slots and results back into the invocation.
func (s *synth) dispatchBody(m member) string {
	var b strings.Builder

	a := s.f.adapterRef
	params := m.method.Params()

	args := make([]string, len(params))
	for i, p := range params {
		v := "v" + strconv.Itoa(i)
		fmt.Fprintf(&b, "\t\t%s := %s[%s](inv, %d)\n", v, a("ArgAt"), s.f.typ(p.Type()), i)

		switch {
		case p.Kind() == meta.ParamVariadic:
			args[i] = v + "..."
		case p.Kind().IsByRef():
			args[i] = "&" + v
		default:
			args[i] = v
		}
	}

	call := s.forward(m, args)
	results := m.method.Results()

	if len(results) == 0 {
		b.WriteString("\t\t" + call + "\n")
	} else {
		rs := make([]string, len(results))
		for i := range rs {
			rs[i] = "r" + strconv.Itoa(i)
		}

		b.WriteString("\t\t" + strings.Join(rs, ", ") + " := " + call + "\n")
	}

	for i, p := range params {
		if p.Kind().WritesBack() {
			fmt.Fprintf(&b, "\t\tinv.Args[%d] = v%d\n", i, i)
		}
	}

	if len(results) > 0 {
		src := s.sourceResults(m)
		boxed := make([]string, len(results))

		for i, r := range results {
			boxed[i] = "r" + strconv.Itoa(i)
			if i < len(src) && src[i] != nil && !meta.Equal(r.Type(), src[i]) {
				boxed[i] = "(" + s.f.typ(r.Type()) + ")(" + boxed[i] + ")"
			}
		}

		b.WriteString("\t\tinv.Results = []any{" + strings.Join(boxed, ", ") + "}\n")
	}

	return b.String()
}

// sourceResults lists the types the target produces for m.
func (s *synth) sourceResults(m member) []meta.Type {
	c := m.target

	switch c.Via {
	case match.ViaField:
		return []meta.Type{c.Member.Field.Type()}
	case match.ViaIndex:
		root, _ := meta.Deref(s.source)
		if u := root.Underlying(); u != nil {
			return []meta.Type{u.Elem()}
		}

		return nil
	default:
		var out []meta.Type
		for _, r := range c.Member.Method.Results() {
			out = append(out, r.Type())
		}

		return out
	}
}

// entryData holds the adapter.Type literal of a table entry.
type entryData struct {
	Name      string
	Key       string
	Ctor      string
	Contract  string
	Source    string
	Mode      string
	Intercept bool
	A         string
	Reflect   string
}

func (s *synth) entryData(d *adapterData) *entryData {
	mode := "ModeDuck"
	if s.intercept {
		mode = "ModeIntercept"
	}

	// The entry names the contract and source again, so record their
	// imports for the entry too.
	contract := s.f.typ(s.plan.Request.Contract())
	source := ""

	if s.source != nil {
		source = s.f.typ(s.source)
	}

	return &entryData{
		Name:      d.Name,
		Key:       s.plan.Key,
		Ctor:      d.Ctor,
		Contract:  contract,
		Source:    source,
		Mode:      mode,
		Intercept: d.Intercept,
		A:         s.f.adapterRef(""),
		Reflect:   s.f.qualifier(reflectPkg),
	}
}
