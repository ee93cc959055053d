package cronspan

import (
	errs "github.com/cronspan/cronspan/internal/error"
)

// Sentinel errors surfaced by Parse, Next and Between. Test for them with
// errors.Is.
var (
	// ErrMalformedExpression reports a structurally invalid expression:
	// wrong column count or an empty union segment.
	ErrMalformedExpression = errs.ErrMalformedExpression

	// ErrMalformedField reports an unrecognized token, alias, or
	// out-of-domain value in a specific column.
	ErrMalformedField = errs.ErrMalformedField

	// ErrNoMatch reports a syntactically valid pattern whose columns can
	// never jointly satisfy a real calendar date. It is surfaced only from
	// Next and Between, never from Matches.
	ErrNoMatch = errs.ErrNoMatch
)

// FieldError carries the column name, column index and offending token of a
// malformed field. Retrieve it with errors.As.
type FieldError = errs.FieldError
