// Package meta is the metadata abstraction shared by both type universes.
//
// The matching and synthesis layers never touch go/types or reflect
// directly. They work on the descriptor interfaces declared here (Type,
// Method, Param, Field) and on the free functions that compare them:
//
//   - Equal / Hash: structural type equality and a hash consistent with it
//   - SignatureKey / SameSignature: overload identity of methods
//   - AssignableTo / Implements: result compatibility
//   - MemberSet: the embedding walk (Go's "inheritance")
//   - GroupAccessors: properties, indexers and events over plain methods
//
// Two providers implement the descriptors: internal/analyze over go/types
// (symbol-only, before compilation) and internal/reflected over reflect
// (loaded, executable types). Both must agree on every predicate in this
// package for keys computed ahead of time to match keys computed at runtime.
package meta
