package match

import (
	"fmt"

	"adapter-generator/internal/meta"
)

// Compatibility is the level of compatibility between a contract member and
// a source member.
type Compatibility int

const (
	// Incompatible means the source member cannot serve the contract member.
	Incompatible Compatibility = iota
	// Assignable means results (or field values) need an implicit conversion
	// to an interface type.
	Assignable
	// Identical means the signatures are the same.
	Identical
)

const (
	VerdictIdentical    = "identical"
	VerdictAssignable   = "assignable"
	VerdictIncompatible = "incompatible"
)

// String returns a human-readable name for the compatibility level.
func (c Compatibility) String() string {
	switch c {
	case Identical:
		return VerdictIdentical
	case Assignable:
		return VerdictAssignable
	case Incompatible:
		return VerdictIncompatible
	default:
		return "unknown"
	}
}

// Result contains detailed information about compatibility.
type Result struct {
	Compatibility Compatibility
	Reason        string // Human-readable explanation
}

// OK reports whether the source can serve the contract.
func (r Result) OK() bool {
	return r.Compatibility > Incompatible
}

func incompatible(format string, args ...any) Result {
	return Result{Compatibility: Incompatible, Reason: fmt.Sprintf(format, args...)}
}

// ScoreTypes determines whether a value of type source can be used where
// target is expected.
func ScoreTypes(source, target meta.Type) Result {
	switch {
	case meta.Equal(source, target):
		return Result{Compatibility: Identical, Reason: "types are identical"}
	case meta.AssignableTo(source, target):
		return Result{Compatibility: Assignable, Reason: "source is assignable to target"}
	default:
		return incompatible("%s is not assignable to %s", meta.TypeString(source), meta.TypeString(target))
	}
}

// ScoreMethod compares a source method with a contract method. Parameters
// must match exactly (kinds, types and generic arity); results may be
// assignable.
func ScoreMethod(contract, source meta.Method) Result {
	cp, sp := contract.Params(), source.Params()

	switch {
	case len(cp) != len(sp):
		return incompatible("takes %d parameters, want %d", len(sp), len(cp))
	case contract.Variadic() != source.Variadic():
		return incompatible("variadic mismatch")
	case len(contract.TypeParams()) != len(source.TypeParams()):
		return incompatible("has %d type parameters, want %d", len(source.TypeParams()), len(contract.TypeParams()))
	}

	for i := range cp {
		if cp[i].Kind() != sp[i].Kind() {
			return incompatible("parameter %d is passed as %s, want %s", i, sp[i].Kind(), cp[i].Kind())
		}

		if !meta.Equal(cp[i].Type(), sp[i].Type()) {
			return incompatible("parameter %d has type %s, want %s",
				i, meta.TypeString(sp[i].Type()), meta.TypeString(cp[i].Type()))
		}
	}

	cr, sr := contract.Results(), source.Results()
	if len(cr) != len(sr) {
		return incompatible("returns %d results, want %d", len(sr), len(cr))
	}

	level := Identical

	for i := range cr {
		r := ScoreTypes(sr[i].Type(), cr[i].Type())
		if !r.OK() {
			return incompatible("result %d: %s", i, r.Reason)
		}

		level = min(level, r.Compatibility)
	}

	if level == Identical {
		return Result{Compatibility: Identical, Reason: "signatures are identical"}
	}

	return Result{Compatibility: Assignable, Reason: "results are assignable"}
}
