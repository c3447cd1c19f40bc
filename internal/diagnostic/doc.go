// Package diagnostic provides structured errors and warnings for adapter
// generation.
//
// Key capabilities:
//   - Aggregation: every unmet or ambiguous contract member is collected
//     before anything is reported
//   - Codes for the error taxonomy (type_not_found, missing_implementation,
//     ambiguous_match, invalid_contract, visibility_violation, compile_failure)
//   - A single error value (Error) enumerating all problems that unwraps to
//     the per-code sentinel errors for errors.Is
package diagnostic
