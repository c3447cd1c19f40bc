// Package gen synthesizes Go source for adapters and assembles it into
// units.
//
// Generation approach uses text/template for the scaffolding of every
// adapter (type, compile-time assertion, typed constructor, table entry)
// and renders method bodies directly, then formats the unit with
// golang.org/x/tools/imports, falling back to go/format.
//
// Member shapes:
//   - Methods, including variadic and by-reference parameters
//   - Properties backed by methods or by a field of the source
//   - Indexers backed by At/SetAt or by the source's own map, slice or array
//   - Events forwarded as add/remove pairs
//   - Explicit implementations (Contract_Member) called by their own name
//
// Duck adapters forward each call to the target. Interception adapters box
// the arguments into an adapter.Invocation, hand it to the interceptor and
// copy by-reference slots and results back after it returns.
package gen
