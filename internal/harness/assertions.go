package harness

import (
	"fmt"
	"strings"
)

// AssertionError is returned when an assertion fails.
// It includes detailed context to help debug the failure.
type AssertionError struct {
	Type     string       // Assertion type for categorization
	Expected string       // Human-readable expected outcome
	Actual   string       // Human-readable actual outcome
	Trace    []TraceEvent // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	fmt.Fprintf(&buf, "\nFull trace:\n")
	for _, event := range e.Trace {
		fmt.Fprintf(&buf, "  [%d] %s(%s) %s", event.Seq, event.Operation, strings.Join(event.Inputs, ", "), event.Outcome)
		if event.Failed() {
			fmt.Fprintf(&buf, " %s", event.Kind)
		} else {
			fmt.Fprintf(&buf, " %s", event.Value)
		}
		buf.WriteByte('\n')
	}

	return buf.String()
}

// assertTraceContains checks that some step ran the operation, optionally
// with the given outcome and error kind.
func assertTraceContains(trace []TraceEvent, a Assertion) error {
	for _, event := range trace {
		if event.Operation != a.Operation {
			continue
		}
		if a.Outcome != "" && event.Outcome != a.Outcome {
			continue
		}
		if a.Kind != "" && event.Kind != a.Kind {
			continue
		}
		return nil
	}

	want := a.Operation
	if a.Outcome != "" {
		want += " with outcome " + a.Outcome
	}
	if a.Kind != "" {
		want += " with kind " + a.Kind
	}
	return &AssertionError{
		Type:     AssertTraceContains,
		Expected: want,
		Actual:   "not found in trace",
		Trace:    trace,
	}
}

// assertTraceOrder checks that operations first appear in the given order.
// Other steps may run in between.
func assertTraceOrder(trace []TraceEvent, a Assertion) error {
	positions := make(map[string]int)
	for i, event := range trace {
		if _, seen := positions[event.Operation]; !seen {
			positions[event.Operation] = i + 1
		}
	}

	for _, op := range a.Operations {
		if positions[op] == 0 {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("all operations present: %v", a.Operations),
				Actual:   fmt.Sprintf("missing operation: %s", op),
				Trace:    trace,
			}
		}
	}

	for i := 1; i < len(a.Operations); i++ {
		prev, curr := a.Operations[i-1], a.Operations[i]
		if positions[prev] >= positions[curr] {
			return &AssertionError{
				Type:     AssertTraceOrder,
				Expected: fmt.Sprintf("operations in order: %v", a.Operations),
				Actual: fmt.Sprintf("%s (pos %d) should be before %s (pos %d)",
					prev, positions[prev], curr, positions[curr]),
				Trace: trace,
			}
		}
	}
	return nil
}

// assertTraceCount checks the operation ran exactly Count times.
func assertTraceCount(trace []TraceEvent, a Assertion) error {
	count := 0
	for _, event := range trace {
		if event.Operation == a.Operation {
			count++
		}
	}

	if count != a.Count {
		return &AssertionError{
			Type:     AssertTraceCount,
			Expected: fmt.Sprintf("%d occurrences of %s", a.Count, a.Operation),
			Actual:   fmt.Sprintf("%d occurrences", count),
			Trace:    trace,
		}
	}
	return nil
}

// assertFailureCount checks exactly Count steps failed.
func assertFailureCount(result *Result, a Assertion) error {
	if n := result.Failures(); n != a.Count {
		return &AssertionError{
			Type:     AssertFailureCount,
			Expected: fmt.Sprintf("%d failed steps", a.Count),
			Actual:   fmt.Sprintf("%d failed steps", n),
			Trace:    result.Trace,
		}
	}
	return nil
}

// EvaluateAssertions evaluates all assertions against the result.
// Returns a slice of error messages for failed assertions.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errors []string

	for i, a := range assertions {
		var err error

		switch a.Type {
		case AssertTraceContains:
			err = assertTraceContains(result.Trace, a)
		case AssertTraceOrder:
			err = assertTraceOrder(result.Trace, a)
		case AssertTraceCount:
			err = assertTraceCount(result.Trace, a)
		case AssertFailureCount:
			err = assertFailureCount(result, a)
		default:
			err = fmt.Errorf("assertion[%d]: unknown assertion type %q", i, a.Type)
		}

		if err != nil {
			errors = append(errors, err.Error())
		}
	}

	return errors
}
