// Package compile turns assembled adapter units into loadable binaries.
//
// A Service compiles one unit. GoBuild writes the unit into a throw-away
// module whose go.mod pins every module of the running binary, then runs
// `go build -buildmode=plugin`. Compiler output is forwarded verbatim as
// compile_failure diagnostics. A Loader opens the produced binary and
// returns the adapter.Table the unit exports.
package compile
