package calc

import (
	"errors"
	"fmt"
)

// ErrorKind categorizes a failed calculation.
type ErrorKind string

const (
	// KindInvalidNumber: a raw value is not a number.
	KindInvalidNumber ErrorKind = "INVALID_NUMBER"

	// KindOutOfRange: a parsed value falls outside its slot's range.
	KindOutOfRange ErrorKind = "OUT_OF_RANGE"

	// KindDomainError: the operation is undefined for the given values.
	KindDomainError ErrorKind = "DOMAIN_ERROR"

	// KindUnknownOperation: the name is not in the registry.
	KindUnknownOperation ErrorKind = "UNKNOWN_OPERATION"

	// KindInvalidArity: the number of inputs does not fit the operation.
	KindInvalidArity ErrorKind = "INVALID_ARITY"
)

// Error describes why a calculation failed. Message is localized by the
// Presenter; Err holds the underlying cause when there is one.
type Error struct {
	Kind    ErrorKind
	Message string

	// Slot is the zero-based input index for InvalidNumber and OutOfRange,
	// -1 otherwise.
	Slot int

	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Slot >= 0 {
		return fmt.Sprintf("%s: %s (input %d)", e.Kind, e.Message, e.Slot+1)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the ErrorKind of err, or "" if err is not a calc error.
// Uses errors.As to handle wrapped errors.
func KindOf(err error) ErrorKind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return ""
}

// IsInputError returns true for InvalidNumber and OutOfRange failures.
func IsInputError(err error) bool {
	k := KindOf(err)
	return k == KindInvalidNumber || k == KindOutOfRange
}
