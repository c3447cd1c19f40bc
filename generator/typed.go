package generator

import (
	"context"
	"fmt"
	"reflect"

	"adapter-generator/adapter"
)

// Factory resolves and activates adapters of contract C for one source
// type.
type Factory[C any] struct {
	g      *Generator
	source reflect.Type
	mode   adapter.Mode
}

// For returns the factory of C adapters for source. A nil source is only
// valid with adapter.ModeIntercept.
func For[C any](g *Generator, source reflect.Type, mode adapter.Mode) *Factory[C] {
	return &Factory[C]{g: g, source: source, mode: mode}
}

// Resolve returns the adapter type.
func (f *Factory[C]) Resolve(ctx context.Context) (*adapter.Type, error) {
	return f.g.ResolveType(ctx, reflect.TypeFor[C](), f.source, f.mode)
}

// Activate resolves the adapter type and constructs an instance. Duck
// adapters take the target; interception adapters take the interceptor
// and, when the factory has a source, the target.
func (f *Factory[C]) Activate(ctx context.Context, args ...any) (C, error) {
	var zero C

	typ, err := f.Resolve(ctx)
	if err != nil {
		return zero, err
	}

	v, err := f.g.Activate(ctx, typ, args...)
	if err != nil {
		return zero, err
	}

	c, ok := v.(C)
	if !ok {
		return zero, fmt.Errorf("%s produced %T, which does not implement %v", typ, v, reflect.TypeFor[C]())
	}

	return c, nil
}

// TypedResult is the outcome of Factory.ActivateAsync.
type TypedResult[C any] struct {
	Value C
	Err   error
}

// ActivateAsync runs Activate in the background.
func (f *Factory[C]) ActivateAsync(ctx context.Context, args ...any) <-chan TypedResult[C] {
	ch := make(chan TypedResult[C], 1)

	go func() {
		v, err := f.Activate(ctx, args...)
		ch <- TypedResult[C]{Value: v, Err: err}
	}()

	return ch
}

// Duck adapts target to C.
func Duck[C any](ctx context.Context, g *Generator, target any) (C, error) {
	if target == nil {
		var zero C
		return zero, fmt.Errorf("duck adaptation to %v needs a target", reflect.TypeFor[C]())
	}

	return For[C](g, reflect.TypeOf(target), adapter.ModeDuck).Activate(ctx, target)
}

// Intercept returns a C whose calls go through interceptor. A nil target
// yields an adapter without a target; Invocation.Proceed then fails with
// adapter.ErrNoTarget.
func Intercept[C any](ctx context.Context, g *Generator, interceptor adapter.Interceptor, target any) (C, error) {
	if target == nil {
		return For[C](g, nil, adapter.ModeIntercept).Activate(ctx, interceptor)
	}

	return For[C](g, reflect.TypeOf(target), adapter.ModeIntercept).Activate(ctx, interceptor, target)
}
