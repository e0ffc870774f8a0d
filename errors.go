package paging

import (
	"errors"
	"fmt"
)

// Code classifies a PaginationError for client-visible error handling.
type Code string

const (
	// CodeInvalidLimit means the requested page size was not a positive integer.
	CodeInvalidLimit Code = "INVALID_LIMIT"

	// CodeInvalidSort means the sort set was empty or otherwise malformed.
	CodeInvalidSort Code = "INVALID_SORT"

	// CodeInvalidToken means the incoming cursor's shape, encoding, or
	// signature did not check out.
	CodeInvalidToken Code = "INVALID_TOKEN"

	// CodeUnexpected covers everything else: database failures, codec
	// faults, predicate synthesis faults.
	CodeUnexpected Code = "UNEXPECTED_ERROR"
)

// PaginationError is the single error type surfaced by this package.
// It carries a Code for client-visible classification and an optional
// Cause for root-cause inspection.
//
// CodeInvalidLimit, CodeInvalidSort, and CodeInvalidToken are client
// errors (map to 400). CodeUnexpected should be inspected via Cause to
// decide between a 4xx and a 5xx response.
type PaginationError struct {
	Message string
	Code    Code
	Cause   error
}

func (e *PaginationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s", e.Message, e.Cause.Error())
	}
	return e.Message
}

func (e *PaginationError) Unwrap() error {
	return e.Cause
}

// newError builds a PaginationError with no cause.
func newError(code Code, message string) *PaginationError {
	return &PaginationError{Message: message, Code: code}
}

// newErrorf builds a PaginationError with a formatted message and no cause.
func newErrorf(code Code, format string, args ...any) *PaginationError {
	return &PaginationError{Message: fmt.Sprintf(format, args...), Code: code}
}

// wrapUnexpected wraps err as a PaginationError, passing an existing
// PaginationError through unchanged per the propagation policy in §7.
func wrapUnexpected(message string, err error) error {
	if err == nil {
		return nil
	}

	var pe *PaginationError
	if errors.As(err, &pe) {
		return pe
	}

	return &PaginationError{Message: message, Code: CodeUnexpected, Cause: err}
}
