// Package match resolves contract members against a source type.
//
// Resolution groups the contract's methods into plain methods, properties,
// indexers and events, then looks up every accessor on the source member
// set independently:
//   - Candidates: same name or the explicit name Contract_Member, same
//     parameter kinds and types, assignable results, visible from the
//     adapter's package
//   - Precedence: explicit implementations, then shallower embedding depth,
//     then methods over fields and index expressions
//   - Failures are collected per contract into diagnostic.Diagnostics; an
//     unresolvable type aborts resolution with *meta.TypeNotFoundError
//
// Suggest ranks near-miss names for MissingImplementation reports.
package match
