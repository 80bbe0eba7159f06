// Package harness runs scripted calculation scenarios and compares their
// traces against golden files.
//
// # Scenario Format
//
// Scenarios are YAML files with the following structure:
//
//	name: mortgage_basics
//	description: "Monthly payment and its failure modes"
//	locale: en
//	currency: USD
//	steps:
//	  - operation: mortgage
//	    inputs: ["200000", "5", "30"]
//	    expect:
//	      ok: true
//	      value: 1073.64
//	      tolerance: 0.01
//	  - operation: factorial
//	    inputs:
//	      - {value: "171", min: 0, max: 170}
//	    expect:
//	      ok: false
//	      kind: OUT_OF_RANGE
//	assertions:
//	  - type: failure_count
//	    count: 1
//
// Inputs are raw strings, exactly as a user would type them. A plain
// scalar is unbounded; a mapping adds an inclusive range.
//
// # Assertion Types
//
//   - trace_contains: some step ran operation, optionally with outcome and kind
//   - trace_order: operations first appear in the given order
//   - trace_count: operation ran exactly count times
//   - failure_count: exactly count steps failed
//
// # Deterministic Traces
//
// Steps are numbered by a resettable counter and numbers are recorded as
// strings, so the same scenario always produces byte-identical canonical
// JSON. Golden files live in golden/<scenario-file>.golden for the CLI and
// in testdata/golden/<name>.golden for Go tests.
package harness
