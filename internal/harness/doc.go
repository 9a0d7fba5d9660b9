// Package harness provides conformance testing for query definitions.
//
// A scenario names one expression tree in the compiler's definition
// format and states what it must compile and render to. The harness
// compiles the tree with the default catalog, renders it inline and with
// $n placeholders, and checks every expectation.
//
// # Scenario Format
//
// Scenarios are defined in YAML files with the following structure:
//
//	name: scenario_name
//	description: "What this scenario validates"
//	query:
//	  op: "@@"
//	  left: {call: to_tsvector, args: [{text: "the cat sat"}]}
//	  right: {call: to_tsquery, args: [{text: "cat & sat"}]}
//	expect:
//	  kind: bool
//	  sql: "to_tsvector('the cat sat') @@ to_tsquery('cat & sat')"
//	  param_sql: "to_tsvector($1) @@ to_tsquery($2)"
//	  params: ["the cat sat", "cat & sat"]
//	assertions:
//	  - type: uses_operator
//	    operator: "@@"
//
// A scenario whose query must be rejected sets expect.error to a
// substring of the compile error instead.
//
// # Assertion Types
//
//   - uses_function: a call to the named function appears in the tree
//   - uses_operator: an operator with the given symbol or name appears
//   - call_order: the named functions appear in pre-order, not
//     necessarily adjacent
//   - param_count: parameterized rendering binds exactly N values
//
// # Golden Files
//
// RunWithGolden snapshots the canonical JSON of a result under
// testdata/golden/{name}.golden. Regenerate with:
//
//	go test ./internal/harness -update
package harness
