package match_test

import (
	"errors"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adapter-generator/internal/diagnostic"
	"adapter-generator/internal/match"
	"adapter-generator/internal/meta"
	mt "adapter-generator/internal/meta/metatest"
)

const (
	contractPkg = "example.com/contracts"
	sourcePkg   = "example.com/sources"
	genPkg      = "example.com/gen"
)

var opts = match.Options{Package: genPkg, Request: "test"}

func collect(t *testing.T, contract, source meta.Type, o match.Options) (*match.Binding, diagnostic.Diagnostics) {
	t.Helper()

	var diags diagnostic.Diagnostics

	b, err := match.Collect(contract, source, o, &diags)
	require.NoError(t, err)

	return b, diags
}

func members(ds []diagnostic.Diagnostic) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Member
	}

	return out
}

func greeter() *mt.Type {
	return mt.Named(contractPkg, "Greeter", mt.Iface(
		mt.M("Baz", mt.Int),
		mt.M("Foo", mt.String),
	))
}

func TestResolve_ExplicitOutranksImplicit(t *testing.T) {
	greeting := mt.Named(sourcePkg, "Greeting", mt.Struct()).WithMethods(
		mt.M("Baz", mt.Int),
		mt.M("Foo", mt.String),
		mt.M("Greeter_Baz", mt.Int),
		mt.M("Greeter_Foo", mt.String),
	)

	b, err := match.Resolve(greeter(), greeting, opts)
	require.NoError(t, err)
	require.Len(t, b.Properties, 2, "zero-argument methods with one result are getters")

	for _, p := range b.Properties {
		require.NotNil(t, p.Get, p.Contract.Name)
		assert.True(t, p.Get.Explicit)
		assert.Equal(t, "Greeter_"+p.Contract.Name, p.Get.String())
		assert.Nil(t, p.Set)
	}
}

func TestResolve_MissingImplementationsAreAggregated(t *testing.T) {
	contract := mt.Named(contractPkg, "Store", mt.Iface(
		mt.M("Get", mt.String).P("key", mt.String),
		mt.M("Put").P("key", mt.String).P("value", mt.String),
		mt.M("Delete", mt.Error).P("key", mt.String),
	))
	source := mt.Named(sourcePkg, "Cache", mt.Struct()).WithMethods(
		mt.M("Get", mt.String).P("k", mt.String),
		mt.M("Deleet", mt.Error).P("key", mt.String),
	)

	_, diags := collect(t, contract, source, opts)
	assert.Equal(t, []string{"Delete", "Put"}, members(diags.ByCode(diagnostic.CodeMissingImplementation)))
	assert.Contains(t, diags.Errors[0].Message, "did you mean Deleet?")

	_, err := match.Resolve(contract, source, opts)
	require.Error(t, err)
	assert.ErrorIs(t, err, diagnostic.ErrMissingImplementation)

	agg, ok := diagnostic.AsError(err)
	require.True(t, ok)
	assert.Len(t, agg.Diagnostics, 2, "every unmet member is reported in one pass")
}

func TestResolve_SignatureMismatchIsMissing(t *testing.T) {
	contract := mt.Named(contractPkg, "Counter", mt.Iface(
		mt.M("Add", mt.Bool).P("delta", mt.Int).PK("total", meta.ParamOut, mt.Int),
	))
	source := mt.Named(sourcePkg, "C", mt.Struct()).WithMethods(
		mt.M("Add", mt.Bool).P("delta", mt.Int).PK("total", meta.ParamRef, mt.Int),
	)

	_, diags := collect(t, contract, source, opts)
	require.Len(t, diags.Errors, 1)
	assert.Contains(t, diags.Errors[0].Message, "parameter 1 is passed as ref, want out")
}

func TestResolve_AmbiguousAtEqualDepth(t *testing.T) {
	closer := mt.Named(contractPkg, "Closer", mt.Iface(mt.M("Close", mt.Error)))
	left := mt.Named(sourcePkg, "Left", mt.Struct()).WithMethods(mt.M("Close", mt.Error))
	right := mt.Named(sourcePkg, "Right", mt.Struct()).WithMethods(mt.M("Close", mt.Error))
	twins := mt.Named(sourcePkg, "Twins", mt.Struct(mt.Embed(left), mt.Embed(right)))

	_, diags := collect(t, closer, twins, opts)
	amb := diags.ByCode(diagnostic.CodeAmbiguousMatch)
	require.Len(t, amb, 1, spew.Sdump(diags))
	assert.Equal(t, "Close", amb[0].Member)
	assert.Equal(t, []string{"Left.Close", "Right.Close"}, amb[0].Candidates)
}

func TestResolve_ShallowerDepthWins(t *testing.T) {
	closer := mt.Named(contractPkg, "Closer", mt.Iface(mt.M("Close", mt.Error)))
	inner := mt.Named(sourcePkg, "Inner", mt.Struct()).WithMethods(mt.M("Close", mt.Error))
	outer := mt.Named(sourcePkg, "Outer", mt.Struct(mt.Embed(inner))).WithMethods(mt.M("Close", mt.Error))
	promoted := mt.Named(sourcePkg, "Promoted", mt.Struct(mt.Embed(inner)))

	b, err := match.Resolve(closer, outer, opts)
	require.NoError(t, err)
	assert.Equal(t, "Close", b.Methods[0].Target.String())
	assert.Equal(t, 0, b.Methods[0].Target.Member.Depth)

	b, err = match.Resolve(closer, promoted, opts)
	require.NoError(t, err)
	assert.Equal(t, "Inner.Close", b.Methods[0].Target.String())
}

func TestResolve_Visibility(t *testing.T) {
	ticker := mt.Named(contractPkg, "Ticker", mt.Iface(mt.M("Tick").P("n", mt.Int)))
	clock := mt.Named(sourcePkg, "Clock", mt.Struct()).WithMethods(
		mt.M("Tick").P("n", mt.Int).Vis(meta.VisInternal),
	)

	_, diags := collect(t, ticker, clock, opts)
	require.Len(t, diags.Errors, 1)
	assert.Equal(t, diagnostic.CodeVisibilityViolation, diags.Errors[0].Code)

	_, err := match.Resolve(ticker, clock, match.Options{Package: sourcePkg})
	assert.NoError(t, err, "internal members are visible from their own package")

	private := mt.Named(sourcePkg, "Hidden", mt.Struct()).WithMethods(
		mt.M("Tick").P("n", mt.Int).Vis(meta.VisPrivate),
	)
	_, diags = collect(t, ticker, private, match.Options{Package: sourcePkg})
	assert.Equal(t, []string{"Tick"}, members(diags.ByCode(diagnostic.CodeMissingImplementation)),
		"private members are never candidates")
}

func TestResolve_PointerReceivers(t *testing.T) {
	resetter := mt.Named(contractPkg, "Resetter", mt.Iface(mt.M("Reset")))
	state := mt.Named(sourcePkg, "State", mt.Struct()).WithMethods(mt.M("Reset").OnPointer())

	_, diags := collect(t, resetter, state, opts)
	require.Len(t, diags.Errors, 1)
	assert.Contains(t, diags.Errors[0].Message, "pointer receiver")

	b, err := match.Resolve(resetter, mt.Ptr(state), opts)
	require.NoError(t, err)
	assert.Equal(t, match.ViaMethod, b.Methods[0].Target.Via)
}

func TestResolve_FieldBackedProperty(t *testing.T) {
	named := mt.Named(contractPkg, "Named", mt.Iface(
		mt.M("Name", mt.String),
		mt.M("SetName").P("v", mt.String),
	))
	depot := mt.Named(sourcePkg, "Depot", mt.Struct(mt.F("Name", mt.String)))

	_, diags := collect(t, named, depot, opts)
	assert.Equal(t, []string{"SetName"}, members(diags.Errors))
	assert.Contains(t, diags.Errors[0].Message, "not addressable")

	b, err := match.Resolve(named, mt.Ptr(depot), opts)
	require.NoError(t, err)
	require.Len(t, b.Properties, 1)
	assert.Equal(t, match.ViaField, b.Properties[0].Get.Via)
	assert.Equal(t, match.ViaField, b.Properties[0].Set.Via)
}

func TestResolve_AccessorsMustShareOwner(t *testing.T) {
	labeled := mt.Named(contractPkg, "Labeled", mt.Iface(
		mt.M("Label", mt.String),
		mt.M("SetLabel").P("v", mt.String),
	))
	base := mt.Named(sourcePkg, "Base", mt.Struct()).WithMethods(
		mt.M("Label", mt.String).OnPointer(),
		mt.M("SetLabel").P("v", mt.String).OnPointer(),
	)
	tagged := mt.Named(sourcePkg, "Tagged", mt.Struct(mt.Embed(mt.Ptr(base))))
	shadowed := mt.Named(sourcePkg, "Shadowed", mt.Struct(mt.Embed(mt.Ptr(base)))).WithMethods(
		mt.M("Label", mt.String),
	)

	b, err := match.Resolve(labeled, mt.Ptr(tagged), opts)
	require.NoError(t, err)
	assert.Equal(t, "Base.Label", b.Properties[0].Get.String())
	assert.Equal(t, "Base.SetLabel", b.Properties[0].Set.String())

	_, diags := collect(t, labeled, mt.Ptr(shadowed), opts)
	require.Len(t, diags.Errors, 1)
	assert.Equal(t, "Label", diags.Errors[0].Member)
	assert.Contains(t, diags.Errors[0].Message, "different source members")
}

func TestResolve_Indexers(t *testing.T) {
	shelf := mt.Named(contractPkg, "Shelf", mt.Iface(
		mt.M("At", mt.Int).P("sku", mt.String),
		mt.M("SetAt").P("sku", mt.String).P("n", mt.Int),
	))
	bins := mt.Named(sourcePkg, "Bins", mt.Map(mt.String, mt.Int))

	b, err := match.Resolve(shelf, bins, opts)
	require.NoError(t, err)
	require.Len(t, b.Indexers, 1)
	assert.Equal(t, match.ViaIndex, b.Indexers[0].Get.Via)
	assert.Equal(t, match.ViaIndex, b.Indexers[0].Set.Via)

	slots := mt.Named(contractPkg, "Slots", mt.Iface(
		mt.M("At", mt.String).P("i", mt.Int),
		mt.M("SetAt").P("i", mt.Int).P("v", mt.String),
	))
	ring := mt.Named(sourcePkg, "Ring", mt.Array(8, mt.String))

	_, diags := collect(t, slots, ring, opts)
	assert.Equal(t, []string{"SetAt"}, members(diags.Errors), "array elements need a pointer source")

	_, err = match.Resolve(slots, mt.Ptr(ring), opts)
	assert.NoError(t, err)

	_, diags = collect(t, shelf, ring, opts)
	assert.Equal(t, []string{"At", "SetAt"}, members(diags.Errors), "string keys cannot index an array")
}

func TestResolve_IndexerMethodsOutrankIndexExpression(t *testing.T) {
	shelf := mt.Named(contractPkg, "Shelf", mt.Iface(mt.M("At", mt.Int).P("sku", mt.String)))
	bins := mt.Named(sourcePkg, "Bins", mt.Map(mt.String, mt.Int)).WithMethods(
		mt.M("At", mt.Int).P("sku", mt.String),
	)

	b, err := match.Resolve(shelf, bins, opts)
	require.NoError(t, err)
	assert.Equal(t, match.ViaMethod, b.Indexers[0].Get.Via)
}

func TestResolve_Events(t *testing.T) {
	handler := mt.Named(contractPkg, "Handler", mt.Iface(mt.M("Handle").P("s", mt.String)))
	feed := mt.Named(contractPkg, "Feed", mt.Iface(
		mt.M("AddChangeHandler").P("h", handler),
		mt.M("RemoveChangeHandler").P("h", handler),
	))
	bus := mt.Named(sourcePkg, "Bus", mt.Struct()).WithMethods(
		mt.M("AddChangeHandler").P("h", handler),
		mt.M("RemoveChangeHandler").P("h", handler),
	)

	b, err := match.Resolve(feed, bus, opts)
	require.NoError(t, err)
	require.Len(t, b.Events, 1)
	assert.Equal(t, "Change", b.Events[0].Contract.Name)
	assert.Equal(t, "AddChangeHandler", b.Events[0].Add.String())
	assert.Equal(t, "RemoveChangeHandler", b.Events[0].Remove.String())
}

func TestResolve_GenericsByOrdinal(t *testing.T) {
	ct := mt.TypeParam("T", 0)
	swapper := mt.Named(contractPkg, "Swapper", mt.Iface(
		mt.M("Swap", ct).PK("x", meta.ParamRef, ct),
	)).WithTypeParams(ct)

	st := mt.TypeParam("E", 0)
	cell := mt.Named(sourcePkg, "Cell", mt.Struct(mt.F("V", st))).WithTypeParams(st)
	cell.WithMethods(mt.M("Swap", st).PK("x", meta.ParamRef, st).OnPointer())

	b, err := match.Resolve(swapper, mt.Ptr(cell), opts)
	require.NoError(t, err)
	assert.Equal(t, "Swap", b.Methods[0].Target.String())

	_, err = match.Resolve(swapper.Instantiate(mt.Int), mt.Ptr(cell.Instantiate(mt.String)), opts)
	assert.ErrorIs(t, err, diagnostic.ErrMissingImplementation)
}

func TestResolve_NoSource(t *testing.T) {
	b, err := match.Resolve(greeter(), nil, opts)
	require.NoError(t, err)
	assert.False(t, b.HasTarget())
	assert.Equal(t, 2, b.Len())
	assert.Len(t, b.ContractMethods(), 2)
}

func TestResolve_NotAnInterface(t *testing.T) {
	_, err := match.Resolve(mt.Named(contractPkg, "Box", mt.Struct()), nil, opts)
	assert.ErrorIs(t, err, diagnostic.ErrInvalidContract)
}

func TestResolve_TypeNotFoundPropagates(t *testing.T) {
	ghost := mt.Unresolved("example.com/ghosts", "Ghost")
	contract := mt.Named(contractPkg, "Haunted", mt.Iface(
		mt.M("Summon", ghost),
		mt.M("Missing"),
	))

	_, err := match.Resolve(contract, mt.Named(sourcePkg, "House", mt.Struct()), opts)
	require.Error(t, err)

	var nf *meta.TypeNotFoundError

	require.True(t, errors.As(err, &nf), "must not be folded into a missing implementation")
	assert.Equal(t, "example.com/ghosts.Ghost", nf.Name)
	assert.NotErrorIs(t, err, diagnostic.ErrMissingImplementation)
}
