package calc

import (
	"errors"
	"log/slog"
	"math"
	"strconv"

	"golang.org/x/text/language"

	"github.com/roach88/abacus/internal/format"
	"github.com/roach88/abacus/internal/operation"
)

// Presenter renders values and messages for the pipeline.
// *format.Locale implements it.
type Presenter interface {
	FormatValue(v float64, hint operation.Hint) string
	FormatBound(v float64) string
	Message(id format.MessageID, args ...string) string
}

// Calculator dispatches named operations through the validate, compute and
// format steps.
type Calculator struct {
	registry  *operation.Registry
	presenter Presenter
	logger    *slog.Logger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithPresenter sets the presenter. The default renders English.
func WithPresenter(p Presenter) Option {
	return func(c *Calculator) { c.presenter = p }
}

// WithLogger sets the logger used for per-call debug records.
func WithLogger(l *slog.Logger) Option {
	return func(c *Calculator) { c.logger = l }
}

// New returns a Calculator dispatching into reg.
func New(reg *operation.Registry, opts ...Option) *Calculator {
	c := &Calculator{
		registry:  reg,
		presenter: format.New(language.English),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Calculate validates inputs, runs the operation and formats the result.
// It never panics on bad input; every failure is reported in Result.Err.
func (c *Calculator) Calculate(name string, inputs []Input) Result {
	op, ok := c.registry.Lookup(name)
	if !ok {
		return c.fail(name, &Error{
			Kind:    KindUnknownOperation,
			Message: c.presenter.Message(format.MsgUnknownOperation, name),
			Slot:    -1,
		})
	}

	args := make([]float64, len(inputs))
	for i, in := range inputs {
		v, ok := ParseNumber(in.Value)
		if !ok {
			return c.fail(name, &Error{
				Kind:    KindInvalidNumber,
				Message: c.presenter.Message(format.MsgInvalidNumber),
				Slot:    i,
			})
		}
		if !in.inRange(v) {
			return c.fail(name, &Error{
				Kind:    KindOutOfRange,
				Message: c.presenter.Message(format.MsgOutOfRange, c.presenter.FormatBound(in.Min), c.presenter.FormatBound(in.Max)),
				Slot:    i,
			})
		}
		args[i] = v
	}

	v, err := op.Call(args...)
	var arity *operation.ArityError
	if errors.As(err, &arity) {
		return c.fail(name, &Error{
			Kind:    KindInvalidArity,
			Message: c.presenter.Message(format.MsgInvalidArity, name, strconv.Itoa(len(args))),
			Slot:    -1,
			Err:     arity,
		})
	}
	if err == nil && math.IsNaN(v) {
		err = &operation.DomainError{Op: name, Reason: "result is not a number"}
	}
	if err != nil {
		if !operation.IsDomainError(err) {
			c.logger.Warn("operation failed outside its domain rules", "operation", name, "error", err)
		}
		return c.fail(name, &Error{
			Kind:    KindDomainError,
			Message: c.presenter.Message(format.MsgDomain),
			Slot:    -1,
			Err:     err,
		})
	}

	c.logger.Debug("calculation completed", "operation", name, "inputs", len(args))
	return Result{
		Operation: name,
		Value:     v,
		Hint:      op.Hint,
		Formatted: c.presenter.FormatValue(v, op.Hint),
	}
}

// Evaluate runs name over unbounded raw values, ignoring any form ranges.
func (c *Calculator) Evaluate(name string, raw ...string) Result {
	return c.Calculate(name, Values(raw...))
}

func (c *Calculator) fail(name string, e *Error) Result {
	attrs := []any{"operation", name, "kind", string(e.Kind)}
	if e.Slot >= 0 {
		attrs = append(attrs, "slot", e.Slot)
	}
	if e.Err != nil {
		attrs = append(attrs, "error", e.Err)
	}
	c.logger.Debug("calculation failed", attrs...)
	return Result{Operation: name, Err: e}
}
