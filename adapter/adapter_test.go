package adapter

import (
	"errors"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInvocation_ProceedWithoutTarget(t *testing.T) {
	inv := NewInvocation(Member{Contract: "example.Greeter", Name: "Greet"}, nil, nil)

	assert.False(t, inv.HasTarget())

	err := inv.Proceed()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoTarget)
	assert.Contains(t, err.Error(), "example.Greeter.Greet")
}

func TestInvocation_ProceedWritesBack(t *testing.T) {
	inv := NewInvocation(Member{Name: "Inc"}, []any{41}, func(inv *Invocation) {
		v := ArgAt[int](inv, 0)
		v++
		inv.Args[0] = v
		inv.Results = []any{v * 2}
	})

	require.NoError(t, inv.Proceed())
	assert.Equal(t, 42, ArgAt[int](inv, 0))
	assert.Equal(t, 84, ResultAt[int](inv, 0))
}

func TestResultAt_ZeroAndMismatch(t *testing.T) {
	inv := NewInvocation(Member{Name: "Get"}, nil, nil)

	assert.Equal(t, 0, ResultAt[int](inv, 0))
	assert.Nil(t, ResultAt[error](inv, 1))

	inv.Return("not an int")
	assert.PanicsWithValue(t, "adapter: Get: result 0 is string, not int", func() {
		_ = ResultAt[int](inv, 0)
	})
}

func TestChain_Order(t *testing.T) {
	var trace []string

	mk := func(name string) Interceptor {
		return InterceptorFunc(func(inv *Invocation) {
			trace = append(trace, name+">")
			_ = inv.Proceed()
			trace = append(trace, "<"+name)
		})
	}

	inv := NewInvocation(Member{Name: "Do"}, nil, func(inv *Invocation) {
		trace = append(trace, "target")
		inv.Return("done")
	})

	Chain(mk("a"), mk("b"), mk("c")).Intercept(inv)

	assert.Equal(t, []string{"a>", "b>", "c>", "target", "<c", "<b", "<a"}, trace)
	assert.Equal(t, "done", ResultAt[string](inv, 0))
	assert.True(t, inv.HasTarget(), "dispatch must be restored after the chain returns")
}

func TestChain_ShortCircuit(t *testing.T) {
	called := false
	inv := NewInvocation(Member{Name: "Do"}, nil, func(*Invocation) { called = true })

	Chain(
		InterceptorFunc(func(inv *Invocation) { inv.Return(7) }),
		Passthrough,
	).Intercept(inv)

	assert.False(t, called)
	assert.Equal(t, 7, ResultAt[int](inv, 0))
}

func TestChain_LastWithoutTarget(t *testing.T) {
	var lastErr error

	inv := NewInvocation(Member{Name: "Do"}, nil, nil)
	Chain(
		Passthrough,
		InterceptorFunc(func(inv *Invocation) { lastErr = inv.Proceed() }),
	).Intercept(inv)

	assert.ErrorIs(t, lastErr, ErrNoTarget)
}

func TestTable_RegisterLookup(t *testing.T) {
	typ := &Type{Name: "greeterFromImpl", Key: "abc", Mode: ModeDuck}
	table := NewTable(typ)

	got, ok := table.Lookup("abc")
	require.True(t, ok)
	assert.Same(t, typ, got)
	assert.Equal(t, 1, table.Len())

	err := table.Register(&Type{Name: "other", Key: "abc"})
	assert.ErrorIs(t, err, ErrDuplicateKey)

	assert.Panics(t, func() { NewTable(typ, typ) })
}

func TestTable_Merge(t *testing.T) {
	a := NewTable(&Type{Name: "a", Key: "1"})
	b := NewTable(&Type{Name: "b", Key: "2"}, &Type{Name: "dup", Key: "1"})

	err := a.Merge(b)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrDuplicateKey))
	assert.Equal(t, []string{"1", "2"}, a.Keys())
}

func TestType_Activate(t *testing.T) {
	typ := &Type{
		Name:     "greeterFromImpl",
		Key:      "k",
		Contract: reflect.TypeFor[error](),
		New: func(args ...any) (any, error) {
			if err := CheckArgs(args, 1, 1); err != nil {
				return nil, err
			}

			return Arg[string](args, 0)
		},
	}

	v, err := typ.Activate("hello")
	require.NoError(t, err)
	assert.Equal(t, "hello", v)

	_, err = typ.Activate()
	assert.ErrorIs(t, err, ErrArgCount)

	_, err = typ.Activate(3)
	assert.ErrorIs(t, err, ErrArgType)
}

func TestParseMode(t *testing.T) {
	m, ok := ParseMode("intercept")
	assert.True(t, ok)
	assert.Equal(t, ModeIntercept, m)
	assert.Equal(t, "intercept", m.String())

	_, ok = ParseMode("proxy")
	assert.False(t, ok)
}
