package calc

import "github.com/roach88/abacus/internal/operation"

// Result is the outcome of one calculation. Exactly one of the success
// fields or Err is meaningful; use OK to tell them apart.
type Result struct {
	Operation string

	Value     float64
	Hint      operation.Hint
	Formatted string

	Err *Error
}

// OK reports whether the calculation succeeded.
func (r Result) OK() bool {
	return r.Err == nil
}

// Message returns the formatted value on success and the error message on
// failure.
func (r Result) Message() string {
	if r.Err != nil {
		return r.Err.Message
	}
	return r.Formatted
}
