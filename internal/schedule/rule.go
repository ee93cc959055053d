// Package schedule builds complete trigger rules out of parsed columns and
// answers the two scheduling questions: does an instant match, and what is
// the next instant that does.
package schedule

import (
	"time"

	"github.com/cronspan/cronspan/internal/field"
)

// Rule is the parsed form of one union segment: seven column specs plus the
// mode flags recording which optional columns were present in source text.
// A Rule is built once at parse time and never mutated.
type Rule struct {
	Second field.Spec
	Minute field.Spec
	Hour   field.Spec
	Dom    field.Spec
	Month  field.Spec
	Dow    field.Spec
	Year   field.Spec

	HasSecond bool
	HasYear   bool

	// searchSecond is the seconds spec used by the next-occurrence search.
	// When the segment had no seconds column it pins the search to second
	// zero, so five-column rules fire on minute boundaries; Matches still
	// treats the absent column as a wildcard.
	searchSecond field.Spec
}

// Matches reports whether t satisfies the rule. The seconds column is only
// consulted when includeSeconds is set.
func (r *Rule) Matches(t time.Time, includeSeconds bool) bool {
	if includeSeconds && !r.Second.Matches(t.Second()) {
		return false
	}
	return r.Minute.Matches(t.Minute()) &&
		r.Hour.Matches(t.Hour()) &&
		r.Month.Matches(int(t.Month())) &&
		r.Year.Matches(t.Year()) &&
		r.dayMatches(t.Day(), int(t.Weekday()), daysIn(t.Year(), t.Month()))
}

// dayMatches implements the day-of-month / day-of-week combination rule:
// when both columns are restricted a date matches if it satisfies either;
// when exactly one is restricted only that one constrains the result. The
// 'L' variants are resolved against the month's real length here.
func (r *Rule) dayMatches(day, weekday, lastDay int) bool {
	domOK := r.Dom.Matches(day) || (r.Dom.LastDay() && day == lastDay)
	dowOK := r.Dow.Matches(weekday) || (r.Dow.LastDow(weekday) && day+7 > lastDay)
	switch {
	case r.Dom.Star():
		return dowOK
	case r.Dow.Star():
		return domOK
	default:
		return domOK || dowOK
	}
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 12, 0, 0, 0, time.UTC).Day()
}
