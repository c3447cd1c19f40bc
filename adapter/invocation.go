package adapter

import (
	"fmt"
)

// Member identifies the contract member an Invocation was created for.
type Member struct {
	// Contract is the qualified name of the contract interface.
	Contract string
	// Name is the contract method name (for accessors, the Go method name,
	// e.g. "SetTitle" for a setter).
	Name string
	// Kind tells which accessor is being invoked.
	Kind MemberKind
}

// String returns "Contract.Name".
func (m Member) String() string {
	if m.Contract == "" {
		return m.Name
	}

	return m.Contract + "." + m.Name
}

// Invocation is the call context handed to an Interceptor.
//
// Args holds every argument boxed in declaration order. By-reference
// parameters are stored dereferenced; an interceptor may rewrite any slot and
// the adapter writes out/ref slots back to the caller after Intercept returns.
// Results holds the return values; Proceed fills it from the target and an
// interceptor may replace it with Return.
type Invocation struct {
	Member  Member
	Args    []any
	Results []any

	dispatch func(inv *Invocation)
}

// NewInvocation creates an Invocation. dispatch performs the forwarding call
// to the target; it is nil when the adapter has no target.
func NewInvocation(member Member, args []any, dispatch func(inv *Invocation)) *Invocation {
	return &Invocation{
		Member:   member,
		Args:     args,
		dispatch: dispatch,
	}
}

// HasTarget reports whether Proceed will reach a target or a further interceptor.
func (inv *Invocation) HasTarget() bool {
	return inv.dispatch != nil
}

// Proceed performs the forwarding call with the current Args.
// The call happens only when an interceptor invokes Proceed.
func (inv *Invocation) Proceed() error {
	if inv.dispatch == nil {
		return fmt.Errorf("%w: %s", ErrNoTarget, inv.Member)
	}

	inv.dispatch(inv)

	return nil
}

// Return replaces the invocation results.
func (inv *Invocation) Return(values ...any) {
	inv.Results = values
}

// Interceptor mediates every call made through an interception adapter.
//
// An interceptor can:
//   - call through with inv.Proceed()
//   - short-circuit by setting results with inv.Return without proceeding
//   - rewrite inv.Args before proceeding, including by-ref slots
type Interceptor interface {
	Intercept(inv *Invocation)
}

// InterceptorFunc adapts a function to the Interceptor interface.
type InterceptorFunc func(inv *Invocation)

// Intercept calls f(inv).
func (f InterceptorFunc) Intercept(inv *Invocation) {
	f(inv)
}

// Passthrough is an Interceptor that always proceeds to the target.
var Passthrough Interceptor = InterceptorFunc(func(inv *Invocation) {
	_ = inv.Proceed()
})

// Chain combines interceptors into one. The first interceptor is the
// outer-most: its Proceed runs the second one, and the last one's Proceed
// reaches the target.
func Chain(interceptors ...Interceptor) Interceptor {
	switch len(interceptors) {
	case 0:
		return Passthrough
	case 1:
		return interceptors[0]
	}

	return InterceptorFunc(func(inv *Invocation) {
		target := inv.dispatch
		defer func() { inv.dispatch = target }()

		var step func(i int)

		step = func(i int) {
			if i == len(interceptors)-1 {
				inv.dispatch = target
				interceptors[i].Intercept(inv)

				return
			}

			var next func(*Invocation)

			next = func(*Invocation) {
				step(i + 1)
				// Restore this level so a repeated Proceed re-enters the chain.
				inv.dispatch = next
			}

			inv.dispatch = next
			interceptors[i].Intercept(inv)
		}

		step(0)
	})
}
