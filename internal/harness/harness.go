package harness

import (
	"fmt"
	"io"
	"log/slog"
	"math"

	"github.com/roach88/abacus/internal/calc"
	"github.com/roach88/abacus/internal/format"
	"github.com/roach88/abacus/internal/operation"
	"github.com/roach88/abacus/internal/testutil"
)

// DefaultLocale is used when a scenario names none.
const DefaultLocale = "pl"

// Harness runs scenario steps through a real Calculator.
type Harness struct {
	calc   *calc.Calculator
	seq    *testutil.Counter
	logger *slog.Logger
}

// Option configures Run.
type Option func(*options)

type options struct {
	registry *operation.Registry
	logger   *slog.Logger
}

// WithRegistry runs scenarios against reg instead of the built-in
// operations.
func WithRegistry(reg *operation.Registry) Option {
	return func(o *options) { o.registry = reg }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Run executes every step of scenario and evaluates its expectations and
// assertions. An error is returned only when the scenario cannot run at
// all, for example because of an invalid locale; failed expectations are
// reported in Result.
func Run(scenario *Scenario, opts ...Option) (*Result, error) {
	o := options{
		registry: operation.Default(),
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(&o)
	}

	tag := scenario.Locale
	if tag == "" {
		tag = DefaultLocale
	}
	loc, err := format.Parse(tag, scenario.Currency)
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}

	h := &Harness{
		calc:   calc.New(o.registry, calc.WithPresenter(loc), calc.WithLogger(o.logger)),
		seq:    testutil.NewCounter(),
		logger: o.logger,
	}

	result := NewResult()
	for i, step := range scenario.Steps {
		event, r := h.execute(step)
		result.Trace = append(result.Trace, event)

		if step.Expect != nil {
			for _, msg := range checkExpect(event, r, step.Expect) {
				result.AddError(fmt.Sprintf("steps[%d] %s: %s", i, step.Operation, msg))
			}
		}
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}

func (h *Harness) execute(step Step) (TraceEvent, calc.Result) {
	inputs := make([]calc.Input, len(step.Inputs))
	raw := make([]string, len(step.Inputs))
	for i, in := range step.Inputs {
		inputs[i] = in.Input()
		raw[i] = in.Value
	}

	r := h.calc.Calculate(step.Operation, inputs)

	event := TraceEvent{
		Seq:       h.seq.Next(),
		Operation: step.Operation,
		Inputs:    raw,
		Slot:      -1,
	}
	if r.OK() {
		event.Outcome = OutcomeSuccess
		event.Value = format.Round(r.Value, 6)
		event.Formatted = r.Formatted
	} else {
		event.Outcome = OutcomeFailure
		event.Kind = string(r.Err.Kind)
		event.Message = r.Err.Message
		event.Slot = r.Err.Slot
	}

	h.logger.Debug("step completed",
		"seq", event.Seq,
		"operation", event.Operation,
		"outcome", event.Outcome,
	)
	return event, r
}

// checkExpect compares a step's outcome with its expectation and returns
// one message per mismatch.
func checkExpect(event TraceEvent, r calc.Result, e *Expect) []string {
	var errs []string

	if *e.OK != r.OK() {
		if r.OK() {
			return []string{fmt.Sprintf("expected failure, got success %q", r.Formatted)}
		}
		return []string{fmt.Sprintf("expected success, got %s", r.Err)}
	}

	if !r.OK() {
		if e.Kind != "" && e.Kind != event.Kind {
			errs = append(errs, fmt.Sprintf("expected kind %s, got %s", e.Kind, event.Kind))
		}
		return errs
	}

	if e.Value != nil && !withinTolerance(r.Value, *e.Value, e.Tolerance) {
		errs = append(errs, fmt.Sprintf("expected value %v (±%v), got %v", *e.Value, e.Tolerance, r.Value))
	}
	if e.Formatted != nil && *e.Formatted != r.Formatted {
		errs = append(errs, fmt.Sprintf("expected formatted %q, got %q", *e.Formatted, r.Formatted))
	}
	return errs
}

func withinTolerance(got, want, tol float64) bool {
	if math.IsInf(want, 0) {
		return got == want
	}
	return math.Abs(got-want) <= tol
}
