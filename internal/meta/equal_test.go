package meta_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"adapter-generator/internal/meta"
	mt "adapter-generator/internal/meta/metatest"
)

// recipe describes a type; building a recipe twice yields two independent
// descriptors of the same type.
type recipe struct {
	op   int
	n    int
	kids []recipe
}

var basicNames = []string{"int", "string", "bool", "uint8"}

func (r recipe) build() meta.Type {
	switch r.op {
	case 0:
		return mt.Basic(basicNames[r.n%len(basicNames)])
	case 1:
		return mt.TypeParam("T", r.n%3)
	case 2:
		return mt.Ptr(r.kids[0].build())
	case 3:
		return mt.Slice(r.kids[0].build())
	case 4:
		return mt.Array(int64(r.n%4), r.kids[0].build())
	case 5:
		return mt.Map(r.kids[0].build(), r.kids[1].build())
	case 6:
		t := mt.TypeParam("T", 0)
		box := mt.Named("example.com/p", "Box", mt.Struct(mt.F("V", t))).WithTypeParams(t)

		return box.Instantiate(r.kids[0].build())
	case 7:
		return mt.Named("example.com/p", fmt.Sprintf("T%d", r.n%3), mt.Struct())
	default:
		fields := make([]*mt.Field, len(r.kids))
		for i, k := range r.kids {
			fields[i] = mt.F(fmt.Sprintf("F%d", i), k.build())
		}

		return mt.Struct(fields...)
	}
}

func genRecipe(depth int) *rapid.Generator[recipe] {
	return rapid.Custom(func(t *rapid.T) recipe {
		maxOp := 8
		if depth == 0 {
			maxOp = 1
		}

		r := recipe{
			op: rapid.IntRange(0, maxOp).Draw(t, "op"),
			n:  rapid.IntRange(0, 5).Draw(t, "n"),
		}

		kids := 0

		switch r.op {
		case 2, 3, 4, 6:
			kids = 1
		case 5:
			kids = 2
		case 8:
			kids = rapid.IntRange(0, 2).Draw(t, "fields")
		}

		if kids > 0 {
			sub := genRecipe(depth - 1)

			for range kids {
				r.kids = append(r.kids, sub.Draw(t, "kid"))
			}
		}

		return r
	})
}

func TestEqual_ReflexiveAcrossInstances(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := genRecipe(3).Draw(t, "type")
		a, b := r.build(), r.build()

		if !meta.Equal(a, b) {
			t.Fatalf("independent descriptors of %s differ", meta.TypeString(a))
		}

		if meta.Hash(a) != meta.Hash(b) {
			t.Fatalf("hash differs for %s", meta.TypeString(a))
		}
	})
}

func TestEqual_SymmetricAndHashConsistent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := genRecipe(2).Draw(t, "a").build()
		b := genRecipe(2).Draw(t, "b").build()

		ab, ba := meta.Equal(a, b), meta.Equal(b, a)
		if ab != ba {
			t.Fatalf("Equal(%s, %s) = %v but reverse = %v", a, b, ab, ba)
		}

		if ab != (meta.Canonical(a) == meta.Canonical(b)) {
			t.Fatalf("Equal(%s, %s) = %v disagrees with canonical form", a, b, ab)
		}

		if ab && meta.Hash(a) != meta.Hash(b) {
			t.Fatalf("equal types %s and %s hash differently", a, b)
		}
	})
}

func TestEqual_Transitive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		r := genRecipe(2).Draw(t, "a")
		a, b := r.build(), r.build()
		c := genRecipe(2).Draw(t, "c").build()

		if meta.Equal(a, b) && meta.Equal(b, c) && !meta.Equal(a, c) {
			t.Fatalf("transitivity violated for %s, %s", a, c)
		}
	})
}

func TestEqual_Cases(t *testing.T) {
	tp0 := mt.TypeParam("T", 0)
	u0 := mt.TypeParam("U", 0)
	tp1 := mt.TypeParam("T", 1)

	box := mt.Named("example.com/p", "Box", mt.Struct(mt.F("V", tp0))).WithTypeParams(tp0)

	tests := []struct {
		name string
		a, b meta.Type
		want bool
	}{
		{"generic params by ordinal", tp0, u0, true},
		{"generic params differ", tp0, tp1, false},
		{"pointer elems", mt.Ptr(mt.Int), mt.Ptr(mt.Int), true},
		{"pointer vs slice", mt.Ptr(mt.Int), mt.Slice(mt.Int), false},
		{"array length", mt.Array(2, mt.Int), mt.Array(3, mt.Int), false},
		{"map keys", mt.Map(mt.String, mt.Int), mt.Map(mt.Int, mt.Int), false},
		{"chan dir", mt.Chan(meta.ChanRecv, mt.Int), mt.Chan(meta.ChanBoth, mt.Int), false},
		{"instance args", box.Instantiate(mt.Int), box.Instantiate(mt.Int), true},
		{"instance args differ", box.Instantiate(mt.Int), box.Instantiate(mt.String), false},
		{"declaration equals self-instantiation", box, box.Instantiate(u0), true},
		{"named vs unnamed", mt.Named("p", "S", mt.Struct()), mt.Struct(), false},
		{"anonymous interfaces", mt.Iface(mt.M("A", mt.Int)), mt.Iface(mt.M("A", mt.Int)), true},
		{"anonymous interfaces differ", mt.Iface(mt.M("A", mt.Int)), mt.Iface(mt.M("A", mt.String)), false},
		{"void", mt.Void(), mt.Void(), true},
		{"nil", nil, mt.Int, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, meta.Equal(tt.a, tt.b))
			assert.Equal(t, tt.want, meta.Equal(tt.b, tt.a))
		})
	}
}

func TestSignatureKey_IgnoresNamesAndResults(t *testing.T) {
	a := mt.M("Foo", mt.Int).P("x", mt.Int).PK("y", meta.ParamRef, mt.String)
	b := mt.M("Foo", mt.String, mt.Error).P("other", mt.Int).PK("z", meta.ParamRef, mt.String)
	c := mt.M("Foo", mt.Int).P("x", mt.Int).PK("y", meta.ParamOut, mt.String)
	d := mt.M("Foo", mt.Int).P("x", mt.Int).PK("y", meta.ParamRef, mt.String).Generic(mt.TypeParam("T", 0))

	assert.Equal(t, meta.SignatureKey(a), meta.SignatureKey(b))
	assert.NotEqual(t, meta.SignatureKey(a), meta.SignatureKey(c), "passing kind distinguishes overloads")
	assert.NotEqual(t, meta.SignatureKey(a), meta.SignatureKey(d), "generic arity distinguishes overloads")
	assert.Equal(t, "Foo(int, ref *string)", meta.SignatureKey(a))
}

func TestSameSignature(t *testing.T) {
	a := mt.M("Foo", mt.Int).Rest("xs", mt.String)
	b := mt.M("Bar", mt.Int).Rest("ys", mt.String)
	c := mt.M("Foo", mt.Int).P("xs", mt.Slice(mt.String))

	assert.True(t, meta.SameSignature(a, b), "names are not part of the signature")
	assert.False(t, meta.SameSignature(a, c), "variadic differs from slice")
}

func TestAssignableTo(t *testing.T) {
	stringer := mt.Named("fmt", "Stringer", mt.Iface(mt.M("String", mt.String)))
	impl := mt.Named("example.com/p", "Name", mt.Basic("string")).WithMethods(mt.M("String", mt.String))
	ptrImpl := mt.Named("example.com/p", "Ref", mt.Struct()).WithMethods(mt.M("String", mt.String).OnPointer())

	assert.True(t, meta.AssignableTo(impl, stringer))
	assert.True(t, meta.AssignableTo(mt.Ptr(ptrImpl), stringer))
	assert.False(t, meta.AssignableTo(ptrImpl, stringer), "pointer-receiver methods are not in the value method set")
	assert.True(t, meta.AssignableTo(impl, mt.Any))
	assert.False(t, meta.AssignableTo(mt.Int, stringer))
}

func TestAssignableTo_SharedUnderlying(t *testing.T) {
	ids := mt.Named("example.com/contracts", "IDs", mt.Slice(mt.Int))
	refs := mt.Named("example.com/sources", "Refs", mt.Slice(mt.Int))
	count := mt.Named("example.com/contracts", "Count", mt.Int)

	assert.True(t, meta.AssignableTo(mt.Slice(mt.Int), ids), "unnamed to named")
	assert.True(t, meta.AssignableTo(ids, mt.Slice(mt.Int)), "named to unnamed")
	assert.False(t, meta.AssignableTo(refs, ids), "two named types never convert implicitly")
	assert.False(t, meta.AssignableTo(mt.Int, count), "int is a named type")
	assert.False(t, meta.AssignableTo(mt.Slice(mt.String), ids))
}

func TestCanonical(t *testing.T) {
	tp := mt.TypeParam("T", 0)
	box := mt.Named("example.com/p", "Box", mt.Struct(mt.F("V", tp))).WithTypeParams(tp)

	assert.Equal(t, "example.com/p.Box[T]", meta.TypeString(box))
	assert.Equal(t, "example.com/p.Box[$0]", meta.Canonical(box))
	assert.Equal(t, "map[string][]*example.com/p.Box[int]", meta.TypeString(mt.Map(mt.String, mt.Slice(mt.Ptr(box.Instantiate(mt.Int))))))
	assert.Equal(t, "<-chan int", meta.TypeString(mt.Chan(meta.ChanRecv, mt.Int)))

	sig := mt.M("Foo", mt.Int, mt.Error).PK("x", meta.ParamOut, mt.Int).Rest("rest", mt.String)
	require.Equal(t, "(out *int, ...string) (int, error)", meta.CanonicalSignature(sig))
}
