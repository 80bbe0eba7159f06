package harness

// Outcome values recorded in the trace.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)

// TraceEvent records one step as the pipeline saw it.
type TraceEvent struct {
	Seq       int64    `json:"seq"`
	Operation string   `json:"operation"`
	Inputs    []string `json:"inputs"`
	Outcome   string   `json:"outcome"`

	// Success fields. Value is rounded to 6 places without locale.
	Value     string `json:"value,omitempty"`
	Formatted string `json:"formatted,omitempty"`

	// Failure fields. Slot is -1 when the failure is not tied to an input.
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message,omitempty"`
	Slot    int    `json:"slot"`
}

// Failed reports whether the step failed.
func (e TraceEvent) Failed() bool {
	return e.Outcome == OutcomeFailure
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expectation and assertion held.
	Pass bool `json:"pass"`

	// Trace has one event per step, in order.
	Trace []TraceEvent `json:"trace"`

	// Errors holds one message per failed expectation or assertion.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Failures counts failed steps.
func (r *Result) Failures() int {
	n := 0
	for _, e := range r.Trace {
		if e.Failed() {
			n++
		}
	}
	return n
}
