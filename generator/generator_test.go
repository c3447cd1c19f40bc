package generator_test

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adapter-generator/adapter"
	"adapter-generator/generator"
	"adapter-generator/internal/compile"
	"adapter-generator/internal/diagnostic"
	"adapter-generator/store"
	"adapter-generator/warehouse"
)

// greeterAdapter is what the compiled unit for store.Greeter<-warehouse.Greeting
// contains.
type greeterAdapter struct {
	target warehouse.Greeting
}

func (a *greeterAdapter) Baz() int    { return a.target.Greeter_Baz() }
func (a *greeterAdapter) Foo() string { return a.target.Greeter_Foo() }

// greeterProxy is the interception adapter of store.Greeter without a target.
type greeterProxy struct {
	interceptor adapter.Interceptor
}

func (a *greeterProxy) Baz() int {
	inv := adapter.NewInvocation(adapter.Member{Contract: "adapter-generator/store.Greeter", Name: "Baz", Kind: adapter.MemberGetter}, nil, nil)
	a.interceptor.Intercept(inv)

	return adapter.ResultAt[int](inv, 0)
}

func (a *greeterProxy) Foo() string {
	inv := adapter.NewInvocation(adapter.Member{Contract: "adapter-generator/store.Greeter", Name: "Foo", Kind: adapter.MemberGetter}, nil, nil)
	a.interceptor.Intercept(inv)

	return adapter.ResultAt[string](inv, 0)
}

// fakeToolchain "compiles" units into files holding their key and mode and
// "loads" them into tables with the hand-written adapters above.
type fakeToolchain struct {
	mu       sync.Mutex
	compiles atomic.Int32
	sources  map[string][]byte
}

func (f *fakeToolchain) Compile(_ context.Context, u compile.Unit) (*compile.Artifact, error) {
	f.compiles.Add(1)

	f.mu.Lock()
	if f.sources == nil {
		f.sources = make(map[string][]byte)
	}
	f.sources[u.Name] = u.Source
	f.mu.Unlock()

	dir, err := os.MkdirTemp("", "fake-build-*")
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, u.Name+".so")

	return &compile.Artifact{Name: u.Name, Path: path, Dir: dir}, os.WriteFile(path, []byte(u.Key+"\n"+u.Name), 0o644)
}

func (f *fakeToolchain) Load(_ context.Context, path string) (*adapter.Table, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	key, name, _ := strings.Cut(string(content), "\n")

	typ := &adapter.Type{Name: name, Key: key, Contract: reflect.TypeFor[store.Greeter](), Path: path}

	switch name {
	case "greeterFromGreeting":
		typ.New = func(args ...any) (any, error) {
			target, err := adapter.Arg[warehouse.Greeting](args, 0)
			return &greeterAdapter{target: target}, err
		}
	case "greeterProxy":
		typ.Mode = adapter.ModeIntercept
		typ.New = func(args ...any) (any, error) {
			interceptor, err := adapter.Arg[adapter.Interceptor](args, 0)
			if err != nil {
				return nil, err
			}

			if interceptor == nil {
				return nil, adapter.ErrNilInterceptor
			}

			return &greeterProxy{interceptor: interceptor}, nil
		}
	}

	return adapter.NewTable(typ), nil
}

func newGenerator(t *testing.T, tc *fakeToolchain, opts ...generator.Option) *generator.Generator {
	t.Helper()

	opts = append([]generator.Option{generator.WithCompiler(tc), generator.WithLoader(tc)}, opts...)

	g, err := generator.New(opts...)
	require.NoError(t, err)

	return g
}

func TestDuck_CompilesOnce(t *testing.T) {
	ctx := context.Background()
	tc := &fakeToolchain{}
	g := newGenerator(t, tc)

	greeter, err := generator.Duck[store.Greeter](ctx, g, warehouse.Greeting{})
	require.NoError(t, err)
	assert.Equal(t, "explicit", greeter.Foo())
	assert.Equal(t, 42, greeter.Baz())

	_, err = generator.Duck[store.Greeter](ctx, g, warehouse.Greeting{})
	require.NoError(t, err)
	assert.Equal(t, int32(1), tc.compiles.Load())

	src := string(tc.sources["greeterFromGreeting"])
	assert.Contains(t, src, "package main")
	assert.Contains(t, src, "return a.target.Greeter_Foo()")
	assert.Contains(t, src, "return a.target.Greeter_Baz()")
}

func TestIntercept_WithoutTarget(t *testing.T) {
	ctx := context.Background()
	tc := &fakeToolchain{}
	g := newGenerator(t, tc)

	var seen []string

	greeter, err := generator.Intercept[store.Greeter](ctx, g, adapter.InterceptorFunc(func(inv *adapter.Invocation) {
		seen = append(seen, inv.Member.Name)
		assert.ErrorIs(t, inv.Proceed(), adapter.ErrNoTarget)

		if inv.Member.Name == "Foo" {
			inv.Return("intercepted")
		}
	}), nil)
	require.NoError(t, err)

	assert.Equal(t, "intercepted", greeter.Foo())
	assert.Zero(t, greeter.Baz())
	assert.Equal(t, []string{"Foo", "Baz"}, seen)

	_, err = generator.Intercept[store.Greeter](ctx, g, nil, nil)
	assert.ErrorIs(t, err, adapter.ErrNilInterceptor)

	assert.Contains(t, string(tc.sources["greeterProxy"]), "adapter.ErrNilInterceptor")
}

func TestResolve_Embedded(t *testing.T) {
	ctx := context.Background()

	probe, err := generator.New()
	require.NoError(t, err)

	key := probe.Request(reflect.TypeFor[store.Greeter](), reflect.TypeFor[warehouse.Greeting](), adapter.ModeDuck).Key()

	embedded := &adapter.Type{Name: "embedded", Key: key, New: func(args ...any) (any, error) {
		target, err := adapter.Arg[warehouse.Greeting](args, 0)
		return &greeterAdapter{target: target}, err
	}}

	tc := &fakeToolchain{}
	g := newGenerator(t, tc, generator.WithTables(adapter.NewTable(embedded)))

	typ, err := g.ResolveType(ctx, reflect.TypeFor[store.Greeter](), reflect.TypeFor[warehouse.Greeting](), adapter.ModeDuck)
	require.NoError(t, err)
	assert.Same(t, embedded, typ)

	greeter, err := generator.Duck[store.Greeter](ctx, g, warehouse.Greeting{})
	require.NoError(t, err)
	assert.Equal(t, "explicit", greeter.Foo())
	assert.Zero(t, tc.compiles.Load())
}

func TestResolve_NoStrategy(t *testing.T) {
	g, err := generator.New()
	require.NoError(t, err)

	_, err = generator.Duck[store.Greeter](context.Background(), g, warehouse.Greeting{})
	assert.ErrorIs(t, err, diagnostic.ErrInvalidConfig)
}

func TestResolve_FailuresAreAggregated(t *testing.T) {
	g := newGenerator(t, &fakeToolchain{})

	_, err := generator.Duck[store.Inventory](context.Background(), g, warehouse.Greeting{})
	require.Error(t, err)
	assert.ErrorIs(t, err, diagnostic.ErrMissingImplementation)

	agg, ok := diagnostic.AsError(err)
	require.True(t, ok)

	var members []string
	for _, d := range agg.Diagnostics {
		members = append(members, d.Member)
	}

	assert.Subset(t, members, []string{"Reserve", "Restock", "Name", "At"})
}

func TestResolveAll(t *testing.T) {
	tc := &fakeToolchain{}
	g := newGenerator(t, tc)

	greeter := reflect.TypeFor[store.Greeter]()
	greeting := reflect.TypeFor[warehouse.Greeting]()

	types, err := g.ResolveAll(context.Background(),
		generator.Pair{Contract: greeter, Source: greeting},
		generator.Pair{Contract: greeter, Source: greeting},
		generator.Pair{Contract: greeter, Mode: adapter.ModeIntercept},
	)
	require.NoError(t, err)
	require.Len(t, types, 3)

	assert.Same(t, types[0], types[1])
	assert.Equal(t, "greeterProxy", types[2].Name)
	assert.Equal(t, int32(2), tc.compiles.Load())
}

func TestActivateAsync(t *testing.T) {
	ctx := context.Background()
	g := newGenerator(t, &fakeToolchain{})

	f := generator.For[store.Greeter](g, reflect.TypeFor[warehouse.Greeting](), adapter.ModeDuck)

	typ, err := f.Resolve(ctx)
	require.NoError(t, err)

	res := <-g.ActivateAsync(ctx, typ, warehouse.Greeting{})
	require.NoError(t, res.Err)
	assert.Equal(t, "explicit", res.Value.(store.Greeter).Foo())

	typed := <-f.ActivateAsync(ctx, warehouse.Greeting{})
	require.NoError(t, typed.Err)
	assert.Equal(t, 42, typed.Value.Baz())

	cancelled, cancel := context.WithCancel(ctx)
	cancel()

	res = <-g.ActivateAsync(cancelled, typ, warehouse.Greeting{})
	assert.ErrorIs(t, res.Err, context.Canceled)
}

func TestDuck_NilTarget(t *testing.T) {
	g := newGenerator(t, &fakeToolchain{})

	_, err := generator.Duck[store.Greeter](context.Background(), g, nil)
	assert.Error(t, err)
}
