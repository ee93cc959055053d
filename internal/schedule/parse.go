package schedule

import (
	"errors"
	"fmt"
	"strings"

	errs "github.com/cronspan/cronspan/internal/error"
	"github.com/cronspan/cronspan/internal/field"
)

// Union separator between alternative sub-expressions.
const unionSeparator = "|"

// descriptors are shorthand segments rewritten to their five-column form.
var descriptors = map[string]string{
	"@yearly":   "0 0 1 1 *",
	"@annually": "0 0 1 1 *",
	"@monthly":  "0 0 1 * *",
	"@weekly":   "0 0 * * 0",
	"@daily":    "0 0 * * *",
	"@midnight": "0 0 * * *",
	"@hourly":   "0 * * * *",
}

// Parse splits a full expression on the union separator and parses each
// segment into a Rule.
//
// Parameters:
//   - expr: The raw expression, e.g. "*/5 * * * *" or "0 9 * * mon | 0 18 * * fri".
//
// Returns:
//   - One Rule per union segment, in source order.
//   - An error wrapping ErrMalformedExpression or ErrMalformedField.
func Parse(expr string) ([]*Rule, error) {
	segments := strings.Split(expr, unionSeparator)
	rules := make([]*Rule, 0, len(segments))
	for _, seg := range segments {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			return nil, errs.New(errs.ErrMalformedExpression, "empty union segment")
		}
		r, err := parseSegment(seg)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

// parseSegment parses one whitespace-separated segment. Column count selects
// the mode: 5 columns run minute through weekday, 6 prepend a seconds
// column, 7 append a year column.
func parseSegment(seg string) (*Rule, error) {
	if rewritten, ok := descriptors[strings.ToLower(seg)]; ok {
		seg = rewritten
	}

	cols := strings.Fields(seg)
	r := &Rule{}
	switch len(cols) {
	case 5:
	case 6:
		r.HasSecond = true
	case 7:
		r.HasSecond = true
		r.HasYear = true
	default:
		return nil, errs.New(errs.ErrMalformedExpression,
			fmt.Sprintf("expected 5, 6 or 7 columns, got %d", len(cols)))
	}

	var err error
	index := 0
	parseColumn := func(dst *field.Spec, b field.Bounds) {
		if err != nil {
			return
		}
		*dst, err = field.Parse(cols[index], b)
		var fe *errs.FieldError
		if errors.As(err, &fe) {
			fe.Index = index
		}
		index++
	}

	if r.HasSecond {
		parseColumn(&r.Second, field.Seconds)
	} else {
		r.Second = field.Wildcard(field.Seconds)
	}
	parseColumn(&r.Minute, field.Minutes)
	parseColumn(&r.Hour, field.Hours)
	parseColumn(&r.Dom, field.Dom)
	parseColumn(&r.Month, field.Months)
	parseColumn(&r.Dow, field.Dow)
	if r.HasYear {
		parseColumn(&r.Year, field.Years)
	} else {
		r.Year = field.Wildcard(field.Years)
	}
	if err != nil {
		return nil, err
	}

	if r.HasSecond {
		r.searchSecond = r.Second
	} else {
		r.searchSecond = field.Single(field.Seconds, 0)
	}
	return r, nil
}
