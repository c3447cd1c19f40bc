package meta

// Type describes a type independently of the universe it comes from.
//
// Descriptors are created on demand from an immutable source and are never
// mutated. Two descriptors of the same declaration obtained from different
// universes are not identical values but are Equal.
type Type interface {
	// Name is the declared name without type arguments ("Box"), or "" for
	// unnamed types. Generic parameters report their parameter name.
	Name() string
	// QualifiedName is the package-qualified name without type arguments
	// ("example.com/p.Box"). It is stable across generic instantiations.
	QualifiedName() string
	// PkgPath is the declaring package, "" for predeclared and unnamed types.
	PkgPath() string
	Kind() TypeKind
	// Ref is the composite kind of an unnamed type; named types report RefNone.
	Ref() RefKind
	// Elem is the element of pointers, arrays, slices, maps and channels.
	Elem() Type
	// Key is the key type of maps.
	Key() Type
	// Len is the length of arrays.
	Len() int64
	ChanDir() ChanDir
	// TypeArgs are the arguments of an instantiated generic type.
	TypeArgs() []Type
	// TypeParams are the parameters of a generic declaration.
	TypeParams() []Type
	// Ordinal is the position of a generic parameter, -1 for other types.
	Ordinal() int
	// Constraint is the constraint of a generic parameter.
	Constraint() Type
	// Underlying is the type's underlying (unnamed) type; unnamed types return
	// themselves.
	Underlying() Type
	// Methods lists declared methods for concrete types and the complete
	// method set for interfaces, sorted by name. Promoted methods are not
	// listed.
	Methods() []Method
	// Fields lists struct fields in declaration order, embedded ones included.
	Fields() []Field
	// Signature describes function types.
	Signature() Signature
	// Universe is the provider the descriptor belongs to.
	Universe() Universe
	String() string
}

// Signature is a parameter list with results.
type Signature interface {
	Params() []Param
	Results() []Param
	Variadic() bool
}

// Method describes a method of a concrete type or an interface.
type Method interface {
	Signature

	Name() string
	Declaring() Type
	// Static is always false for Go methods and kept for descriptor parity.
	Static() bool
	// Abstract is true for interface methods.
	Abstract() bool
	// Virtual is true when calls dispatch dynamically (interface methods).
	Virtual() bool
	// Final is true for concrete methods.
	Final() bool
	Visibility() Visibility
	// Return is the first result or a void parameter.
	Return() Param
	// TypeParams are method-level type parameters.
	TypeParams() []Type
	PointerReceiver() bool
	// ExplicitFor is the contract name of a name-mangled explicit
	// implementation ("Greeter" for Greeter_Baz), or "".
	ExplicitFor() string
}

// Param describes a parameter or result.
type Param interface {
	Name() string
	Index() int
	Kind() ParamKind
	// Type is the declared type; for by-reference parameters it is the type
	// of the referenced variable, not the pointer.
	Type() Type
}

// Field describes a struct field.
type Field interface {
	Name() string
	Index() int
	Type() Type
	Embedded() bool
	Visibility() Visibility
	Declaring() Type
}

// IsNamed reports whether t has a declared name.
func IsNamed(t Type) bool {
	return t != nil && t.QualifiedName() != ""
}

// IsInterface reports whether t's underlying type is an interface.
func IsInterface(t Type) bool {
	return t != nil && t.Kind() == KindInterface
}

// IsError reports whether t is the predeclared error type.
func IsError(t Type) bool {
	return t != nil && t.QualifiedName() == "error"
}

// IsVoid reports whether t is the void type.
func IsVoid(t Type) bool {
	return t == nil || t.Kind() == KindVoid
}

// IsGeneric reports whether t is an uninstantiated generic declaration.
func IsGeneric(t Type) bool {
	return t != nil && len(t.TypeParams()) > 0 && len(t.TypeArgs()) == 0
}

// Deref strips one pointer level from an unnamed pointer type.
func Deref(t Type) (Type, bool) {
	if t != nil && !IsNamed(t) && t.Ref() == RefPointer {
		return t.Elem(), true
	}

	return t, false
}

// PassesByRef reports whether a pointer parameter of type t is treated as a
// by-reference parameter when no directive says otherwise: pointers to
// structs and interfaces are plain values, everything else is a reference.
func PassesByRef(t Type) bool {
	elem, ok := Deref(t)
	if !ok || elem == nil {
		return false
	}

	switch elem.Kind() {
	case KindStruct, KindInterface, KindInvalid:
		return false
	default:
		return true
	}
}

// IsConstraint reports whether t is an interface that can only be used as a
// type constraint (it has a type set, e.g. interface{ ~int }). Providers
// that cannot describe type sets never report constraints.
func IsConstraint(t Type) bool {
	c, ok := t.(interface{ IsConstraint() bool })

	return ok && c.IsConstraint()
}
