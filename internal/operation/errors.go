package operation

import (
	"errors"
	"fmt"
)

// ErrDomain marks a mathematically undefined or disallowed input.
var ErrDomain = errors.New("domain error")

// DomainError describes why an operation rejected its input.
// It matches ErrDomain under errors.Is.
type DomainError struct {
	Op     string
	Reason string
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	return fmt.Sprintf("%s: %s", e.Op, e.Reason)
}

// Is reports whether target is ErrDomain.
func (e *DomainError) Is(target error) bool {
	return target == ErrDomain
}

func domainErr(op, reason string) error {
	return &DomainError{Op: op, Reason: reason}
}

// IsDomainError returns true if err is or wraps a domain error.
func IsDomainError(err error) bool {
	return errors.Is(err, ErrDomain)
}

// ArityError reports a call with the wrong number of arguments.
type ArityError struct {
	Op  string
	Min int
	Max int
	Got int
}

// Error implements the error interface.
func (e *ArityError) Error() string {
	switch {
	case e.Max < 0:
		return fmt.Sprintf("%s: expected at least %d argument(s), got %d", e.Op, e.Min, e.Got)
	case e.Min == e.Max:
		return fmt.Sprintf("%s: expected %d argument(s), got %d", e.Op, e.Min, e.Got)
	default:
		return fmt.Sprintf("%s: expected %d to %d argument(s), got %d", e.Op, e.Min, e.Max, e.Got)
	}
}
