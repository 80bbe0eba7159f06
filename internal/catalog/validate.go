package catalog

import (
	"fmt"

	"github.com/roach88/abacus/internal/operation"
)

// Validation error codes.
const (
	ErrUnknownOperation = "E301" // form names an operation missing from the registry
	ErrInvertedRange    = "E302" // slot min is greater than max
	ErrSlotCount        = "E303" // slot count does not fit the operation's arity
	ErrListNotVariadic  = "E304" // list form bound to a fixed-arity operation
)

// ValidationError is one semantic problem in a catalog.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Field, e.Message)
}

// Validate checks every form against reg. It returns all problems found,
// in form order.
func Validate(c *Catalog, reg *operation.Registry) []ValidationError {
	var errs []ValidationError

	for _, f := range c.forms {
		field := "form." + f.Name

		for i, s := range f.Inputs {
			if s.Min != nil && s.Max != nil && *s.Min > *s.Max {
				errs = append(errs, ValidationError{
					Field:   fmt.Sprintf("%s.inputs[%d]", field, i),
					Message: fmt.Sprintf("min %v is greater than max %v", *s.Min, *s.Max),
					Code:    ErrInvertedRange,
				})
			}
		}

		op, ok := reg.Lookup(f.Operation)
		if !ok {
			errs = append(errs, ValidationError{
				Field:   field + ".operation",
				Message: fmt.Sprintf("unknown operation %q", f.Operation),
				Code:    ErrUnknownOperation,
			})
			continue
		}

		if f.List {
			if op.Arity != operation.Variadic {
				errs = append(errs, ValidationError{
					Field:   field + ".list",
					Message: fmt.Sprintf("operation %q takes a fixed number of values", op.Name),
					Code:    ErrListNotVariadic,
				})
			}
			continue
		}

		if !op.Accepts(len(f.Inputs)) {
			errs = append(errs, ValidationError{
				Field:   field + ".inputs",
				Message: fmt.Sprintf("%d input(s) declared, operation %q is %s", len(f.Inputs), op.Name, op.Arity),
				Code:    ErrSlotCount,
			})
		}
	}

	return errs
}
