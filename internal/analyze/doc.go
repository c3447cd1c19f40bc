// Package analyze provides the symbol-only type universe.
//
// It uses golang.org/x/tools/go/packages with AST and go/types to describe
// declarations that have not been compiled into the running program, which
// is what ahead-of-time generation works from.
//
// Key types:
//   - Universe: loaded packages, name lookup and generic instantiation
//   - typeDesc / methodDesc / paramDesc / fieldDesc: meta descriptors over
//     go/types values
//
// Parameter passing kinds can be refined with directives in method doc
// comments, on interface methods and concrete methods alike:
//
//	//adapt:out remaining
//	//adapt:readonly key
//	//adapt:in a b
package analyze
