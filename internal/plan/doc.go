// Package plan turns a generation request into an AdapterPlan consumed by
// code synthesis.
//
// Planning pipeline:
//  1. Validate the request: the contract must be a method-set interface
//     without method type parameters, and every type the adapter names
//     must be visible from the target package
//  2. Resolve every contract member against the source (package match)
//  3. Check that the adapter exposes exactly one member per contract member
//  4. Collect every package and named type the adapter references
//
// Problems found in one step are reported together; the plan is only
// returned when there are none.
package plan
