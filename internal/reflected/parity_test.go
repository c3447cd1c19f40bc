package reflected_test

import (
	"context"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adapter-generator/adapter"
	"adapter-generator/internal/analyze"
	"adapter-generator/internal/meta"
	"adapter-generator/internal/plan"
	"adapter-generator/internal/reflected"
	"adapter-generator/store"
	"adapter-generator/warehouse"
)

// Both universes must agree on every structural predicate for the same
// declarations, otherwise adapters planned ahead of time would never be
// found again at runtime.
func TestParity_WithSymbolUniverse(t *testing.T) {
	symbols, err := analyze.Load(context.Background(), storePkg, warehousePkg)
	require.NoError(t, err)

	loaded := fixtures()

	names := []string{
		storePkg + ".Greeter",
		storePkg + ".Inventory",
		storePkg + ".Ledger",
		storePkg + ".Swapper[int]",
		storePkg + ".Shelf",
		storePkg + ".Labeled",
		storePkg + ".Tracker",
		storePkg + ".OrderStatus",
		"*" + warehousePkg + ".Depot",
		"*" + warehousePkg + ".Account",
		"*" + warehousePkg + ".Cell[int]",
		warehousePkg + ".Bins",
		warehousePkg + ".Greeting",
		warehousePkg + ".Tagged",
		warehousePkg + ".Shadowed",
		"[]" + storePkg + ".OrderStatus",
		"map[string]" + warehousePkg + ".Bins",
	}

	for _, name := range names {
		t.Run(name, func(t *testing.T) {
			a := lookup(t, symbols, name)
			b := lookup(t, loaded, name)

			assert.True(t, meta.Equal(a, b))
			assert.True(t, meta.Equal(b, a))
			assert.Equal(t, meta.Canonical(a), meta.Canonical(b))
			assert.Equal(t, meta.Hash(a), meta.Hash(b))
			assert.Equal(t, a.Kind(), b.Kind())
			assert.Equal(t, a.Ref(), b.Ref())

			assertSameMethods(t, exported(a), exported(b))
			assertSameFields(t, a, b)
		})
	}
}

func TestParity_Implements(t *testing.T) {
	symbols, err := analyze.Load(context.Background(), storePkg, warehousePkg)
	require.NoError(t, err)

	loaded := fixtures()

	pairs := []struct {
		source, contract string
		want             bool
	}{
		{"*" + warehousePkg + ".Depot", storePkg + ".Inventory", false},
		{"*" + warehousePkg + ".Account", storePkg + ".Ledger", true},
		{"*" + warehousePkg + ".Cell[int]", storePkg + ".Swapper[int]", true},
		{warehousePkg + ".Cell[int]", storePkg + ".Swapper[int]", false},
		{"*" + warehousePkg + ".Tagged", storePkg + ".Labeled", true},
		{warehousePkg + ".Greeting", storePkg + ".Greeter", true},
	}

	for _, p := range pairs {
		for _, u := range []meta.Universe{symbols, loaded} {
			src := lookup(t, u, p.source)
			contract := lookup(t, u, p.contract)
			assert.Equal(t, p.want, meta.Implements(src, contract), "%s %s implements %s", u.Name(), p.source, p.contract)
		}
	}
}

// Tables written ahead of time are keyed with the symbol universe and
// looked up at runtime with the loaded one.
func TestParity_RequestKeys(t *testing.T) {
	symbols, err := analyze.Load(context.Background(), storePkg, warehousePkg)
	require.NoError(t, err)

	loaded := fixtures()

	requests := []struct {
		contract, source string
		mode             adapter.Mode
	}{
		{storePkg + ".Greeter", warehousePkg + ".Greeting", adapter.ModeDuck},
		{storePkg + ".Ledger", "*" + warehousePkg + ".Account", adapter.ModeIntercept},
		{storePkg + ".Shelf", warehousePkg + ".Bins", adapter.ModeDuck},
		{storePkg + ".Labeled", "*" + warehousePkg + ".Tagged", adapter.ModeDuck},
		{storePkg + ".Tracker", "*" + warehousePkg + ".Orders", adapter.ModeDuck},
		{storePkg + ".Inventory", "*" + warehousePkg + ".Depot", adapter.ModeDuck},
		{storePkg + ".Inventory", "*" + warehousePkg + ".Depot", adapter.ModeIntercept},
		{storePkg + ".Swapper[int]", "*" + warehousePkg + ".Cell[int]", adapter.ModeDuck},
		{storePkg + ".Tracker", "", adapter.ModeIntercept},
	}

	key := func(t *testing.T, u meta.Universe, contract, source string, mode adapter.Mode) string {
		t.Helper()

		var src meta.Type
		if source != "" {
			src = lookup(t, u, source)
		}

		return plan.NewRequest(lookup(t, u, contract), src, mode).Key()
	}

	seen := make(map[string]bool)

	for _, r := range requests {
		t.Run(r.contract+"<-"+r.source, func(t *testing.T) {
			want := key(t, symbols, r.contract, r.source, r.mode)
			assert.Equal(t, want, key(t, loaded, r.contract, r.source, r.mode))
			assert.False(t, seen[want], "distinct requests share a key")

			seen[want] = true
		})
	}
}

// Without the out annotation the loaded universe describes a different
// request, so its key must not match the one planned from source.
func TestParity_RequestKeysNeedAnnotations(t *testing.T) {
	symbols, err := analyze.Load(context.Background(), storePkg, warehousePkg)
	require.NoError(t, err)

	bare := reflected.NewUniverse("")
	bare.Add(reflect.TypeFor[store.Inventory]())
	bare.AddValue(&warehouse.Depot{})

	contract, source := storePkg+".Inventory", "*"+warehousePkg+".Depot"

	annotated := plan.NewRequest(lookup(t, symbols, contract), lookup(t, symbols, source), adapter.ModeDuck).Key()
	unannotated := plan.NewRequest(lookup(t, bare, contract), lookup(t, bare, source), adapter.ModeDuck).Key()

	assert.NotEqual(t, annotated, unannotated)
}

func exported(t meta.Type) []meta.Method {
	if elem, ok := meta.Deref(t); ok {
		t = elem
	}

	var out []meta.Method

	for _, m := range t.Methods() {
		if m.Visibility().Has(meta.VisPublic) {
			out = append(out, m)
		}
	}

	return out
}

func assertSameMethods(t *testing.T, a, b []meta.Method) {
	t.Helper()

	require.Equal(t, methodNames(a), methodNames(b))

	for i := range a {
		assert.Equal(t, meta.SignatureKey(a[i]), meta.SignatureKey(b[i]), a[i].Name())
		assert.True(t, meta.SameSignature(a[i], b[i]), a[i].Name())
		assert.Equal(t, a[i].PointerReceiver(), b[i].PointerReceiver(), a[i].Name())
		assert.Equal(t, a[i].ExplicitFor(), b[i].ExplicitFor(), a[i].Name())

		for j, p := range a[i].Params() {
			assert.Equal(t, p.Kind(), b[i].Params()[j].Kind(), "%s param %d", a[i].Name(), j)
		}
	}
}

func assertSameFields(t *testing.T, a, b meta.Type) {
	t.Helper()

	fa, fb := underFields(a), underFields(b)
	require.Len(t, fb, len(fa))

	for i := range fa {
		assert.Equal(t, fa[i].Name(), fb[i].Name())
		assert.Equal(t, fa[i].Embedded(), fb[i].Embedded())
		assert.True(t, meta.Equal(fa[i].Type(), fb[i].Type()), fa[i].Name())
	}
}

func underFields(t meta.Type) []meta.Field {
	if elem, ok := meta.Deref(t); ok {
		t = elem
	}

	if u := t.Underlying(); u != nil {
		return u.Fields()
	}

	return nil
}
