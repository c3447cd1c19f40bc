package plan

import (
	"fmt"

	"adapter-generator/adapter"
	"adapter-generator/internal/diagnostic"
	"adapter-generator/internal/meta"
)

// Validate checks the request before any member is resolved and reports
// every problem into diags.
func Validate(req *Request, diags *diagnostic.Diagnostics) {
	v := &validator{req: req, diags: diags, label: req.String()}
	v.contract()
	v.source()
	v.visibility()
}

type validator struct {
	req   *Request
	diags *diagnostic.Diagnostics
	label string
}

func (v *validator) invalid(member, format string, args ...any) {
	v.diags.AddError(diagnostic.CodeInvalidContract, fmt.Sprintf(format, args...), v.label, member)
}

func (v *validator) contract() {
	c := v.req.Contract()

	switch {
	case c == nil:
		v.invalid("", "no contract type")
		return
	case !meta.IsInterface(c):
		v.invalid("", "%s is not an interface", meta.TypeString(c))
		return
	case meta.IsConstraint(c):
		v.invalid("", "%s is a type constraint and cannot be implemented", meta.TypeString(c))
		return
	}

	if len(c.Methods()) == 0 {
		v.diags.AddWarning(diagnostic.CodeInvalidContract,
			fmt.Sprintf("%s has no methods", meta.TypeString(c)), v.label, "")
	}

	for _, m := range c.Methods() {
		if len(m.TypeParams()) > 0 {
			v.invalid(m.Name(), "method type parameters cannot be implemented by a generated method")
		}

		for _, p := range m.Params() {
			if p.Kind().IsByRef() && meta.IsVoid(p.Type()) {
				v.invalid(m.Name(), "parameter %d is passed as %s without a type", p.Index(), p.Kind())
			}
		}

		if m.Variadic() && !lastIsVariadic(m) {
			v.invalid(m.Name(), "variadic parameter must be last")
		}
	}
}

func lastIsVariadic(m meta.Method) bool {
	ps := m.Params()

	return len(ps) > 0 && ps[len(ps)-1].Kind() == meta.ParamVariadic
}

func (v *validator) source() {
	src := v.req.Source()

	if src == nil {
		if v.req.Mode() == adapter.ModeDuck {
			v.diags.AddError(diagnostic.CodeInvalidConfig,
				"duck adaptation needs a source type", v.label, "")
		}

		return
	}

	// A generic contract declaration yields a generic adapter whose type
	// parameters instantiate the source declaration one to one.
	base, _ := meta.Deref(src)
	c := v.req.Contract()

	switch {
	case meta.IsGeneric(c) && !meta.IsGeneric(base):
		v.invalid("", "generic contract %s needs a generic source, got %s", meta.TypeString(c), meta.TypeString(src))
	case meta.IsGeneric(c) && len(base.TypeParams()) != len(c.TypeParams()):
		v.invalid("", "%s has %d type parameters, %s has %d",
			meta.TypeString(c), len(c.TypeParams()), meta.TypeString(src), len(base.TypeParams()))
	case !meta.IsGeneric(c) && meta.IsGeneric(base):
		v.invalid("", "source %s is an uninstantiated generic type", meta.TypeString(src))
	}
}

// visibility requires every type the adapter spells out to be nameable
// from the target package.
func (v *validator) visibility() {
	target := v.req.Package()
	c := v.req.Contract()

	if c == nil || !meta.IsInterface(c) {
		return
	}

	v.typeVisible(c, "")

	if src := v.req.Source(); src != nil {
		v.typeVisible(src, "")
	}

	for _, m := range c.Methods() {
		if !m.Visibility().Accessible(c.PkgPath(), target) {
			v.diags.AddError(diagnostic.CodeVisibilityViolation,
				fmt.Sprintf("unexported method %s of %s cannot be implemented outside %q",
					m.Name(), meta.TypeString(c), c.PkgPath()),
				v.label, m.Name())

			continue
		}

		for _, p := range m.Params() {
			v.typeVisible(p.Type(), m.Name())
		}

		for _, p := range m.Results() {
			v.typeVisible(p.Type(), m.Name())
		}
	}
}

func (v *validator) typeVisible(t meta.Type, member string) {
	if name, ok := hidden(t, v.req.Package()); ok {
		v.diags.AddError(diagnostic.CodeVisibilityViolation,
			fmt.Sprintf("%s is not visible from package %q", name, v.req.Package()),
			v.label, member)
	}
}

// hidden returns the first unexported named type reachable from t that
// lives outside package from.
func hidden(t meta.Type, from string) (string, bool) {
	if t == nil {
		return "", false
	}

	if meta.IsNamed(t) {
		if t.PkgPath() != "" && t.PkgPath() != from && !meta.VisibilityOf(t.Name()).Has(meta.VisPublic) {
			return meta.TypeString(t), true
		}

		for _, a := range t.TypeArgs() {
			if name, ok := hidden(a, from); ok {
				return name, true
			}
		}

		return "", false
	}

	for _, inner := range []meta.Type{t.Elem(), t.Key()} {
		if name, ok := hidden(inner, from); ok {
			return name, true
		}
	}

	return "", false
}
