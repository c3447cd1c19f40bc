package adapter

import (
	"fmt"
	"reflect"
)

// Arg unboxes the i-th constructor argument. A missing or nil argument
// yields the zero value of T.
func Arg[T any](args []any, i int) (T, error) {
	var zero T

	if i >= len(args) || args[i] == nil {
		return zero, nil
	}

	v, ok := args[i].(T)
	if !ok {
		return zero, fmt.Errorf("%w: argument %d is %T, want %s", ErrArgType, i, args[i], typeName[T]())
	}

	return v, nil
}

// CheckArgs validates the constructor argument count.
func CheckArgs(args []any, minArgs, maxArgs int) error {
	if len(args) < minArgs || len(args) > maxArgs {
		return fmt.Errorf("%w: got %d, want %d..%d", ErrArgCount, len(args), minArgs, maxArgs)
	}

	return nil
}

// ArgAt unboxes inv.Args[i] as T. Generated adapters use it to read by-ref
// slots back after the interceptor returns.
func ArgAt[T any](inv *Invocation, i int) T {
	var v any
	if i < len(inv.Args) {
		v = inv.Args[i]
	}

	return cast[T](v, inv, "argument", i)
}

// ResultAt unboxes inv.Results[i] as T. A missing result yields the zero
// value, which is what a short-circuiting interceptor that never called
// Return produces.
func ResultAt[T any](inv *Invocation, i int) T {
	var v any
	if i < len(inv.Results) {
		v = inv.Results[i]
	}

	return cast[T](v, inv, "result", i)
}

func cast[T any](v any, inv *Invocation, what string, i int) T {
	if v == nil {
		var zero T
		return zero
	}

	t, ok := v.(T)
	if !ok {
		panic(fmt.Sprintf("adapter: %s: %s %d is %T, not %s", inv.Member, what, i, v, typeName[T]()))
	}

	return t
}

func typeName[T any]() string {
	return reflect.TypeFor[T]().String()
}
