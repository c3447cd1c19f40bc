package metatest

import "adapter-generator/internal/meta"

// substitution replaces generic parameters by ordinal.
type substitution []meta.Type

func (s substitution) typ(t meta.Type) meta.Type {
	mt, ok := t.(*Type)
	if !ok || mt == nil {
		return t
	}

	switch {
	case mt.kind == meta.KindGenericParam:
		if mt.ordinal >= 0 && mt.ordinal < len(s) {
			return s[mt.ordinal]
		}

		return mt
	case meta.IsNamed(mt):
		if len(mt.args) == 0 {
			return mt
		}

		args := make([]meta.Type, len(mt.args))
		for i, a := range mt.args {
			args[i] = s.typ(a)
		}

		if mt.origin != nil {
			return mt.origin.Instantiate(args...)
		}

		return mt
	}

	c := *mt
	c.elem = s.typ(mt.elem)
	c.key = s.typ(mt.key)
	c.fields = nil
	c.methods = nil

	for _, f := range mt.fields {
		ff := *f.(*Field)
		ff.typ = s.typ(ff.typ)
		ff.decl = &c
		c.fields = append(c.fields, &ff)
	}

	for _, m := range mt.methods {
		cm := s.method(m.(*Method))
		cm.decl = &c
		c.methods = append(c.methods, cm)
	}

	if mt.sig != nil {
		c.sig = s.method(mt.sig)
	}

	return &c
}

func (s substitution) method(m *Method) *Method {
	c := *m
	c.params = s.params(m.params)
	c.results = s.params(m.results)

	return &c
}

func (s substitution) params(ps []meta.Param) []meta.Param {
	out := make([]meta.Param, len(ps))

	for i, p := range ps {
		cp := *p.(*Param)
		cp.typ = s.typ(cp.typ)
		out[i] = &cp
	}

	return out
}
