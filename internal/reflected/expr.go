package reflected

import (
	"adapter-generator/internal/common"
	"adapter-generator/internal/meta"
)

// exprType describes a type argument that is named in a reflect instance
// name but not registered. It carries enough structure for Equal and Hash.
type exprType struct {
	e *meta.TypeExpr
}

var _ meta.Type = (*exprType)(nil)

func (x *exprType) Name() string {
	if x.e.Ref != meta.RefNone {
		return ""
	}

	_, n := common.SplitQualified(x.e.Name)

	return n
}

func (x *exprType) QualifiedName() string {
	if x.e.Ref != meta.RefNone {
		return ""
	}

	return x.e.Name
}

func (x *exprType) PkgPath() string {
	if x.e.Ref != meta.RefNone {
		return ""
	}

	return x.e.PkgPath()
}

func (x *exprType) Kind() meta.TypeKind {
	if x.e.Ref != meta.RefNone {
		return meta.KindComposite
	}

	return meta.KindInvalid
}

func (x *exprType) Ref() meta.RefKind { return x.e.Ref }

func (x *exprType) Elem() meta.Type { return wrapExpr(x.e.Elem) }
func (x *exprType) Key() meta.Type  { return wrapExpr(x.e.Key) }
func (x *exprType) Len() int64      { return x.e.Len }

func (x *exprType) ChanDir() meta.ChanDir { return x.e.Dir }

func (x *exprType) TypeArgs() []meta.Type {
	if len(x.e.Args) == 0 {
		return nil
	}

	args := make([]meta.Type, len(x.e.Args))
	for i, a := range x.e.Args {
		args[i] = wrapExpr(a)
	}

	return args
}

func (x *exprType) TypeParams() []meta.Type  { return nil }
func (x *exprType) Ordinal() int             { return -1 }
func (x *exprType) Constraint() meta.Type    { return nil }
func (x *exprType) Underlying() meta.Type    { return x }
func (x *exprType) Methods() []meta.Method   { return nil }
func (x *exprType) Fields() []meta.Field     { return nil }
func (x *exprType) Signature() meta.Signature { return nil }
func (x *exprType) Universe() meta.Universe  { return nil }
func (x *exprType) String() string           { return x.e.String() }

func wrapExpr(e *meta.TypeExpr) meta.Type {
	if e == nil {
		return nil
	}

	return &exprType{e: e}
}
