// Package reflected provides the loaded type universe: meta descriptors
// over reflect.Type values of the running program.
//
// reflect sees less than go/types. The gaps and how they are closed:
//   - parameter names are unknown; descriptors report "" and passing kinds
//     beyond the default pointer rule are supplied with Annotate
//   - unexported methods of concrete types are invisible
//   - promoted methods appear in the method set; they are told apart from
//     declared ones by the embedded fields that provide them and by the
//     wrapper functions the compiler generates for promotion
//   - type arguments are only available inside Name(), so they are parsed
//     and resolved against registered types
package reflected
