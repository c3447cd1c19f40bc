// Package strategy decides how a generation request is turned into a
// loadable adapter type.
//
// Three strategies exist, and exactly one of them applies to any request:
//
//   - Embedded: the request key is in a table generated ahead of time
//   - Generated: the request was compiled and loaded earlier in this process
//   - Compile: plan, synthesize, compile (or reuse a persisted binary), load
//
// The Pipeline selects the strategy through a Registry and coalesces
// concurrent requests for one key so that compilation happens at most once.
package strategy
