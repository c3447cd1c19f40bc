package strategy_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"adapter-generator/adapter"
	"adapter-generator/internal/cache"
	"adapter-generator/internal/compile"
	"adapter-generator/internal/diagnostic"
	mt "adapter-generator/internal/meta/metatest"
	"adapter-generator/internal/plan"
	"adapter-generator/internal/strategy"
)

func request() *plan.Request {
	greeter := mt.Named("example.com/contracts", "Greeter", mt.Iface(
		mt.M("Greet", mt.String).P("name", mt.String),
	))
	greeting := mt.Named("example.com/sources", "Greeting", mt.Struct()).WithMethods(
		mt.M("Greet", mt.String).P("who", mt.String),
	)

	return plan.NewRequest(greeter, greeting, adapter.ModeDuck)
}

// fake claims requests according to use and counts resolutions.
type fake struct {
	name  string
	use   bool
	calls atomic.Int32
	fn    func(ctx context.Context) (*adapter.Type, error)
}

func (f *fake) Name() string                                 { return f.name }
func (f *fake) ShouldUse(context.Context, *plan.Request) bool { return f.use }

func (f *fake) Resolve(ctx context.Context, req *plan.Request) (*adapter.Type, error) {
	f.calls.Add(1)

	if f.fn != nil {
		return f.fn(ctx)
	}

	return &adapter.Type{Name: f.name, Key: req.Key()}, nil
}

func TestRegistry_Select(t *testing.T) {
	ctx := context.Background()

	a := &fake{name: "a"}
	b := &fake{name: "b", use: true}

	r, err := strategy.NewRegistry(a, b)
	require.NoError(t, err)

	s, err := r.Select(ctx, request())
	require.NoError(t, err)
	assert.Equal(t, "b", s.Name())

	b.use = false
	_, err = r.Select(ctx, request())
	assert.ErrorIs(t, err, diagnostic.ErrInvalidConfig)
	assert.ErrorContains(t, err, "no strategy applies")

	a.use, b.use = true, true
	_, err = r.Select(ctx, request())
	assert.ErrorIs(t, err, diagnostic.ErrInvalidConfig)
	assert.ErrorContains(t, err, "strategies a, b all apply")
}

func TestRegistry_DuplicateNames(t *testing.T) {
	_, err := strategy.NewRegistry(&fake{name: "a"}, &fake{name: "a"})
	assert.ErrorIs(t, err, diagnostic.ErrInvalidConfig)

	_, err = strategy.NewRegistry(nil)
	assert.ErrorIs(t, err, diagnostic.ErrInvalidConfig)
}

func TestPipeline_Coalesces(t *testing.T) {
	release := make(chan struct{})
	slow := &fake{name: "slow", use: true, fn: func(context.Context) (*adapter.Type, error) {
		<-release
		return &adapter.Type{Name: "x", Key: "k"}, nil
	}}

	r, err := strategy.NewRegistry(slow)
	require.NoError(t, err)

	p := strategy.NewPipeline(r, nil)

	const callers = 8

	var wg sync.WaitGroup

	results := make([]*adapter.Type, callers)
	for i := range callers {
		wg.Add(1)

		go func() {
			defer wg.Done()

			typ, err := p.Resolve(context.Background(), request())
			assert.NoError(t, err)

			results[i] = typ
		}()
	}

	// Give every caller the chance to join the flight before it lands.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), slow.calls.Load())

	for _, typ := range results {
		assert.Same(t, results[0], typ)
	}
}

func TestPipeline_CancelledWaiterLeaves(t *testing.T) {
	release := make(chan struct{})
	defer close(release)

	slow := &fake{name: "slow", use: true, fn: func(context.Context) (*adapter.Type, error) {
		<-release
		return &adapter.Type{Name: "x", Key: "k"}, nil
	}}

	r, err := strategy.NewRegistry(slow)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err = strategy.NewPipeline(r, nil).Resolve(ctx, request())
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestPipeline_AbandonedLeaderIsRetried(t *testing.T) {
	var first atomic.Bool

	s := &fake{name: "s", use: true, fn: func(ctx context.Context) (*adapter.Type, error) {
		if first.CompareAndSwap(false, true) {
			return nil, context.Canceled
		}

		return &adapter.Type{Name: "x", Key: "k"}, nil
	}}

	r, err := strategy.NewRegistry(s)
	require.NoError(t, err)

	typ, err := strategy.NewPipeline(r, nil).Resolve(context.Background(), request())
	require.NoError(t, err)
	assert.Equal(t, "x", typ.Name)
	assert.Equal(t, int32(2), s.calls.Load())
}

func TestPipeline_ErrorsAreShared(t *testing.T) {
	boom := errors.New("boom")
	s := &fake{name: "s", use: true, fn: func(context.Context) (*adapter.Type, error) { return nil, boom }}

	r, err := strategy.NewRegistry(s)
	require.NoError(t, err)

	_, err = strategy.NewPipeline(r, nil).Resolve(context.Background(), request())
	assert.ErrorIs(t, err, boom)
}

func TestEmbedded(t *testing.T) {
	req := request()
	typ := &adapter.Type{Name: "greeterFromGreeting", Key: req.Key()}

	e, err := strategy.NewEmbedded(adapter.NewTable(typ), adapter.NewTable(&adapter.Type{Name: "other", Key: "other"}))
	require.NoError(t, err)

	assert.True(t, e.ShouldUse(context.Background(), req))
	assert.Equal(t, 2, e.Table().Len())

	got, err := e.Resolve(context.Background(), req)
	require.NoError(t, err)
	assert.Same(t, typ, got)

	_, err = strategy.NewEmbedded(adapter.NewTable(typ), adapter.NewTable(&adapter.Type{Name: "again", Key: req.Key()}))
	assert.ErrorIs(t, err, adapter.ErrDuplicateKey)
}

func TestGenerated(t *testing.T) {
	req := request()
	mem := cache.NewMemory()
	g := strategy.NewGenerated(mem)

	assert.False(t, g.ShouldUse(context.Background(), req))

	_, err := g.Resolve(context.Background(), req)
	assert.Error(t, err)

	typ := mem.Put(req.Key(), &adapter.Type{Name: "x", Key: req.Key()})
	assert.True(t, g.ShouldUse(context.Background(), req))

	got, err := g.Resolve(context.Background(), req)
	require.NoError(t, err)
	assert.Same(t, typ, got)
}

// toolchain fakes the compile service and plugin loader: "binaries" are
// files holding the key, and loading one returns a table with that key.
type toolchain struct {
	compiles atomic.Int32
	loads    atomic.Int32
	sources  [][]byte
	mu       sync.Mutex
}

func (tc *toolchain) service(t *testing.T) compile.Service {
	return compile.ServiceFunc(func(_ context.Context, u compile.Unit) (*compile.Artifact, error) {
		tc.compiles.Add(1)

		tc.mu.Lock()
		tc.sources = append(tc.sources, u.Source)
		tc.mu.Unlock()

		assert.Contains(t, u.References, "adapter-generator/adapter")

		dir := t.TempDir()
		path := filepath.Join(dir, u.Name+".so")
		require.NoError(t, os.WriteFile(path, []byte(u.Key), 0o644))

		return &compile.Artifact{Name: u.Name, Path: path, Dir: dir}, nil
	})
}

func (tc *toolchain) loader() compile.Loader {
	return compile.LoaderFunc(func(_ context.Context, path string) (*adapter.Table, error) {
		tc.loads.Add(1)

		key, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}

		return adapter.NewTable(&adapter.Type{Name: "loaded", Key: string(key), Path: path}), nil
	})
}

func TestCompile_CompilesOnceAndPersists(t *testing.T) {
	ctx := context.Background()
	req := request()
	dir := t.TempDir()
	tc := &toolchain{}

	mem := cache.NewMemory()
	c, err := strategy.NewCompile(strategy.CompileConfig{
		Service: tc.service(t),
		Loader:  tc.loader(),
		Disk:    cache.NewDisk(dir, nil),
		Memory:  mem,
	})
	require.NoError(t, err)

	assert.True(t, c.ShouldUse(ctx, req))

	typ, err := c.Resolve(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, req.Key(), typ.Key)
	assert.Equal(t, filepath.Join(dir, "greeterFromGreeting-"+req.Key()+".so"), typ.Path)
	assert.False(t, c.ShouldUse(ctx, req), "loaded types are served by the generated strategy")

	require.Len(t, tc.sources, 1)
	src := string(tc.sources[0])
	assert.Contains(t, src, "package main")
	assert.Contains(t, src, "var Adapters = adapter.NewTable(")

	// A fresh process finds the persisted binary.
	fresh, err := strategy.NewCompile(strategy.CompileConfig{
		Service: tc.service(t),
		Loader:  tc.loader(),
		Disk:    cache.NewDisk(dir, nil),
	})
	require.NoError(t, err)

	_, err = fresh.Resolve(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, int32(1), tc.compiles.Load())
	assert.Equal(t, int32(2), tc.loads.Load())
}

func TestCompile_WithoutDisk(t *testing.T) {
	tc := &toolchain{}

	c, err := strategy.NewCompile(strategy.CompileConfig{Service: tc.service(t), Loader: tc.loader()})
	require.NoError(t, err)

	_, err = c.Resolve(context.Background(), request())
	require.NoError(t, err)
	assert.Equal(t, int32(1), tc.compiles.Load())
}

func TestCompile_PlanningFailsBeforeCompiling(t *testing.T) {
	tc := &toolchain{}

	c, err := strategy.NewCompile(strategy.CompileConfig{Service: tc.service(t), Loader: tc.loader()})
	require.NoError(t, err)

	greeter := mt.Named("example.com/contracts", "Greeter", mt.Iface(mt.M("Greet", mt.String).P("name", mt.String)))
	empty := mt.Named("example.com/sources", "Empty", mt.Struct())

	_, err = c.Resolve(context.Background(), plan.NewRequest(greeter, empty, adapter.ModeDuck))
	assert.ErrorIs(t, err, diagnostic.ErrMissingImplementation)
	assert.Zero(t, tc.compiles.Load())
}

func TestCompile_ExcludesEmbedded(t *testing.T) {
	req := request()

	e, err := strategy.NewEmbedded(adapter.NewTable(&adapter.Type{Name: "x", Key: req.Key()}))
	require.NoError(t, err)

	tc := &toolchain{}
	c, err := strategy.NewCompile(strategy.CompileConfig{Service: tc.service(t), Loader: tc.loader(), Embedded: e})
	require.NoError(t, err)

	r, err := strategy.NewRegistry(e, strategy.NewGenerated(cache.NewMemory()), c)
	require.NoError(t, err)

	s, err := r.Select(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "embedded", s.Name())
}

func TestCompile_NeedsToolchain(t *testing.T) {
	_, err := strategy.NewCompile(strategy.CompileConfig{})
	assert.ErrorIs(t, err, diagnostic.ErrInvalidConfig)
}
