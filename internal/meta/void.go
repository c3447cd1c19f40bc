package meta

// Void describes an absent result.
var Void Type = voidType{}

// VoidParam is the Return of a method without results.
var VoidParam Param = voidParam{}

type voidType struct{}

func (voidType) Name() string          { return "" }
func (voidType) QualifiedName() string { return "" }
func (voidType) PkgPath() string       { return "" }
func (voidType) Kind() TypeKind        { return KindVoid }
func (voidType) Ref() RefKind          { return RefNone }
func (voidType) Elem() Type            { return nil }
func (voidType) Key() Type             { return nil }
func (voidType) Len() int64            { return 0 }
func (voidType) ChanDir() ChanDir      { return ChanBoth }
func (voidType) TypeArgs() []Type      { return nil }
func (voidType) TypeParams() []Type    { return nil }
func (voidType) Ordinal() int          { return -1 }
func (voidType) Constraint() Type      { return nil }
func (v voidType) Underlying() Type    { return v }
func (voidType) Methods() []Method     { return nil }
func (voidType) Fields() []Field       { return nil }
func (voidType) Signature() Signature  { return nil }
func (voidType) Universe() Universe    { return nil }
func (voidType) String() string        { return "void" }

type voidParam struct{}

func (voidParam) Name() string    { return "" }
func (voidParam) Index() int      { return 0 }
func (voidParam) Kind() ParamKind { return ParamNone }
func (voidParam) Type() Type      { return Void }
