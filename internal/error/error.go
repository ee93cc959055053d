package error

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedExpression = errors.New("malformed expression")
	ErrMalformedField      = errors.New("malformed field")
)

var (
	ErrNoMatch = errors.New("pattern can never match")
)

// New wraps a sentinel error with additional detail.
//
// Parameters:
//   - err: Sentinel error to wrap.
//   - str: Detail appended to the error message.
//
// Returns:
//   - An error that satisfies errors.Is against the sentinel.
func New(err error, str string) error {
	return fmt.Errorf("%w: %s", err, str)
}

// FieldError reports a token that could not be parsed in a specific
// expression column. It unwraps to ErrMalformedField so callers can test for
// the whole class with errors.Is while still reading the column and token.
type FieldError struct {
	Column string // column name, e.g. "minute"
	Index  int    // zero-based column position within its segment
	Token  string // offending source token
	Reason string // short description of what was wrong
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s field (column %d): %s: %q", e.Column, e.Index, e.Reason, e.Token)
}

func (e *FieldError) Unwrap() error {
	return ErrMalformedField
}
