// Package cronspan parses cron-style schedule expressions and evaluates them
// against the calendar: whether an instant matches, and the earliest instant
// after a reference time that does.
//
// An expression has 5, 6 or 7 whitespace-separated columns:
//
//	minute hour day-of-month month day-of-week          (5 columns)
//	second minute hour day-of-month month day-of-week   (6 columns)
//	second minute hour day-of-month month day-of-week year  (7 columns)
//
// Each column accepts '*', '?' (day columns), lists ('1,15'), ranges
// ('mon-fri'), steps ('*/15', '6/3', '10-40/5'), 'L' (last day of month, or
// '5L' for the last Friday of the month), and case-insensitive three-letter
// month and weekday names. Alternative sub-expressions are joined with '|';
// the pattern matches when any of them does. The shorthand descriptors
// @yearly, @annually, @monthly, @weekly, @daily, @midnight and @hourly are
// rewritten to their five-column equivalents.
//
// When day-of-month and day-of-week are both restricted, a date matches if
// it satisfies either column, per conventional cron semantics.
//
// Patterns are immutable after Parse and safe for concurrent use from any
// number of goroutines without synchronization. Callers are expected to
// cache parsed patterns by source text rather than re-parse per query.
//
// Example usage:
//
//	p, err := cronspan.Parse("*/15 9-17 * * mon-fri")
//	if err != nil {
//		// handle malformed expression
//	}
//	next, err := p.Next(time.Now(), time.Local)
package cronspan

import (
	"time"

	errs "github.com/cronspan/cronspan/internal/error"
	"github.com/cronspan/cronspan/internal/schedule"
)

// Pattern is a parsed schedule expression: the original source text plus one
// rule per union segment. Two Patterns are equal when their source text is
// equal.
type Pattern struct {
	src   string
	rules []*schedule.Rule
}

// Parse parses a schedule expression into a Pattern.
//
// Parameters:
//   - expr: A single-line expression, e.g. "*/5 * * * *" or "0 9 1,15 * * | 0 18 * * fri".
//
// Returns:
//   - An immutable Pattern ready for matching and next-occurrence queries.
//   - An error wrapping ErrMalformedExpression or ErrMalformedField; a
//     malformed expression never yields a usable Pattern.
func Parse(expr string) (*Pattern, error) {
	rules, err := schedule.Parse(expr)
	if err != nil {
		return nil, err
	}
	return &Pattern{src: expr, rules: rules}, nil
}

// MustParse parses a schedule expression and panics on error. Intended for
// package-level variables and tests with known-good expressions.
func MustParse(expr string) *Pattern {
	p, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the original expression text verbatim.
func (p *Pattern) String() string {
	return p.src
}

// Equal reports whether both patterns were parsed from the same source text.
func (p *Pattern) Equal(other *Pattern) bool {
	return other != nil && p.src == other.src
}

// Matches reports whether t, decomposed in loc, satisfies the pattern.
//
// Parameters:
//   - t: Instant to test.
//   - loc: Time zone the calendar fields are read in; nil means t's own zone.
//   - includeSeconds: Whether the seconds column constrains the result.
//     Rules without an explicit seconds column match any second either way.
//
// Returns:
//   - true if any union segment accepts the instant. Matches never searches
//     and never fails; an instant a pattern can never reach is simply false.
func (p *Pattern) Matches(t time.Time, loc *time.Location, includeSeconds bool) bool {
	if loc == nil {
		loc = t.Location()
	}
	t = t.In(loc)
	for _, r := range p.rules {
		if r.Matches(t, includeSeconds) {
			return true
		}
	}
	return false
}

// Next returns the earliest instant strictly after `after` that satisfies
// the pattern, evaluated in loc (nil means after's own zone). The result is
// later than `after` by at least one second even when `after` itself
// matches; callers wanting match-or-now semantics should test Matches first.
//
// Returns:
//   - The minimal next occurrence across all union segments.
//   - An error wrapping ErrNoMatch if no segment can ever be satisfied
//     within its search horizon (e.g. day 31 in a month fixed to February).
func (p *Pattern) Next(after time.Time, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = after.Location()
	}
	var best time.Time
	found := false
	for _, r := range p.rules {
		if candidate, ok := r.Next(after, loc); ok && (!found || candidate.Before(best)) {
			best, found = candidate, true
		}
	}
	if !found {
		return time.Time{}, errs.New(errs.ErrNoMatch, p.src)
	}
	return best, nil
}

// Between returns the occurrences strictly after start and at or before end,
// in ascending order, evaluated in loc. At most limit results are produced;
// limit <= 0 means no cap beyond the window itself. Each call is independent
// and stateless.
//
// Returns:
//   - The occurrences inside the window.
//   - An error wrapping ErrNoMatch if the pattern can never match at all. A
//     pattern that runs out of occurrences mid-window (a bounded year
//     column, say) ends the sequence normally instead.
func (p *Pattern) Between(start, end time.Time, loc *time.Location, limit int) ([]time.Time, error) {
	var out []time.Time
	cursor := start
	for limit <= 0 || len(out) < limit {
		next, err := p.Next(cursor, loc)
		if err != nil {
			if len(out) > 0 {
				break
			}
			return nil, err
		}
		if next.After(end) {
			break
		}
		out = append(out, next)
		cursor = next
	}
	return out, nil
}

// MarshalText implements encoding.TextMarshaler using the source text.
func (p *Pattern) MarshalText() ([]byte, error) {
	return []byte(p.src), nil
}

// UnmarshalText implements encoding.TextUnmarshaler by parsing the text as a
// schedule expression.
func (p *Pattern) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*p = *parsed
	return nil
}
