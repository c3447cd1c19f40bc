// Package adapter is the runtime support imported by generated adapters.
//
// Generated code depends only on this package and on the packages declaring
// the contract and source types. It provides:
//   - Type and Table: the loadable form of one generation request and the
//     key-indexed registry the Embedded resolution strategy consults
//   - Invocation and Interceptor: the call context handed to interceptors
//     in interception mode, with a bound Proceed that forwards to the target
//   - Arg, ArgAt, ResultAt: unboxing helpers used by generated bodies
package adapter
