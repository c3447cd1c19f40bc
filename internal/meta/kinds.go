package meta

//go:generate go tool stringer -type=TypeKind,RefKind,ParamKind,MemberKind,ChanDir -linecomment -output=kinds_string.go

// TypeKind classifies the shape of a type. Named types report the kind of
// their underlying type.
type TypeKind int

const (
	KindInvalid      TypeKind = iota // invalid
	KindBasic                        // basic
	KindStruct                       // struct
	KindInterface                    // interface
	KindGenericParam                 // generic-param
	KindVoid                         // void
	KindSignature                    // signature
	KindComposite                    // composite
)

// RefKind tells how an unnamed composite type refers to its element.
type RefKind int

const (
	RefNone    RefKind = iota // none
	RefPointer                // pointer
	RefArray                  // array
	RefSlice                  // slice
	RefMap                    // map
	RefChan                   // chan
)

// ParamKind is the passing mode of a parameter.
type ParamKind int

const (
	ParamNone        ParamKind = iota // none
	ParamVariadic                     // params
	ParamIn                           // in
	ParamOut                          // out
	ParamRef                          // ref
	ParamRefReadonly                  // ref-readonly
)

// IsByRef reports whether the parameter is passed through a pointer to the
// caller's variable.
func (k ParamKind) IsByRef() bool {
	switch k {
	case ParamIn, ParamOut, ParamRef, ParamRefReadonly:
		return true
	default:
		return false
	}
}

// WritesBack reports whether the callee's writes must reach the caller.
func (k ParamKind) WritesBack() bool {
	return k == ParamOut || k == ParamRef
}

// ParseParamKind maps a directive word to a ParamKind.
func ParseParamKind(s string) (ParamKind, bool) {
	switch s {
	case "out":
		return ParamOut, true
	case "in":
		return ParamIn, true
	case "ref":
		return ParamRef, true
	case "readonly", "ref-readonly":
		return ParamRefReadonly, true
	case "ptr", "none":
		return ParamNone, true
	default:
		return ParamNone, false
	}
}

// MemberKind classifies contract members after accessor grouping.
type MemberKind int

const (
	MemberMethod   MemberKind = iota // method
	MemberProperty                   // property
	MemberIndexer                    // indexer
	MemberEvent                      // event
	MemberField                      // field
)

// ChanDir is the direction of a channel type.
type ChanDir int

const (
	ChanBoth ChanDir = iota // chan
	ChanSend                // chan<-
	ChanRecv                // <-chan
)
