// Package field parses and evaluates a single column of a schedule
// expression. A parsed column is a Spec: a compact predicate over the
// column's integer domain, answering "does value v match" and "what is the
// smallest matching value at or above v".
package field

import "math/bits"

// Bounds describes the value domain of one expression column, including the
// alias table and the column-specific tokens it accepts.
type Bounds struct {
	Min, Max int
	Names    map[string]int // lowercase alias -> numeric value
	Name     string         // column name for diagnostics

	Wrap       bool // inverted ranges wrap around the domain (weekday)
	Mod        int  // values are reduced modulo Mod on insert (weekday: 7 == 0)
	Question   bool // '?' accepted as a wildcard synonym
	LastAlone  bool // bare 'L' accepted (last day of month)
	LastSuffix bool // 'L' suffix on a value accepted (last such weekday)
}

// The bounds for each column.
var (
	Seconds = Bounds{Min: 0, Max: 59, Name: "second"}
	Minutes = Bounds{Min: 0, Max: 59, Name: "minute"}
	Hours   = Bounds{Min: 0, Max: 23, Name: "hour"}
	Dom     = Bounds{Min: 1, Max: 31, Name: "day-of-month", Question: true, LastAlone: true}
	Months  = Bounds{Min: 1, Max: 12, Name: "month", Names: map[string]int{
		"jan": 1, "feb": 2, "mar": 3, "apr": 4, "may": 5, "jun": 6,
		"jul": 7, "aug": 8, "sep": 9, "oct": 10, "nov": 11, "dec": 12,
	}}
	Dow = Bounds{Min: 0, Max: 7, Name: "day-of-week", Wrap: true, Mod: 7,
		Question: true, LastSuffix: true, Names: map[string]int{
			"sun": 0, "mon": 1, "tue": 2, "wed": 3, "thu": 4, "fri": 5, "sat": 6,
		}}
	Years = Bounds{Min: 1970, Max: 2999, Name: "year"}
)

// term is one range-with-step, retained verbatim for wide domains (year)
// where materializing a bitset is not possible.
type term struct {
	from, to, step int
}

func (t term) contains(v int) bool {
	return v >= t.from && v <= t.to && (v-t.from)%t.step == 0
}

func (t term) ceiling(v int) (int, bool) {
	if v <= t.from {
		return t.from, true
	}
	if v > t.to {
		return 0, false
	}
	if r := (v - t.from) % t.step; r != 0 {
		v += t.step - r
	}
	if v > t.to {
		return 0, false
	}
	return v, true
}

// Spec is the parsed, immutable form of one expression column. Values with a
// domain maximum below 64 are stored as a uint64 bitset; the wide year domain
// keeps its range/step terms instead. The zero Spec matches nothing.
type Spec struct {
	bounds  Bounds
	star    bool   // plain '*' or '?': the whole domain
	bits    uint64 // accepted-value bitset for narrow domains
	terms   []term // accepted ranges for wide domains
	lastDay bool   // day-of-month 'L'
	lastDow uint64 // weekdays carrying an 'L' suffix ("last such weekday")
}

// Wildcard returns a Spec accepting every value of the domain.
func Wildcard(b Bounds) Spec {
	return Spec{bounds: b, star: true}
}

// Single returns a Spec accepting exactly one value.
func Single(b Bounds, v int) Spec {
	return Spec{bounds: b, bits: 1 << uint(v)}
}

// Star reports whether the column was a plain wildcard ('*' or '?').
// The day-of-month/day-of-week combination rule keys off this flag.
func (s Spec) Star() bool {
	return s.star
}

// LastDay reports whether the column carried a bare 'L' (last day of month).
func (s Spec) LastDay() bool {
	return s.lastDay
}

// LastDow reports whether weekday v carried an 'L' suffix, meaning the last
// such weekday of the month.
func (s Spec) LastDow(v int) bool {
	return s.lastDow&(1<<uint(v)) != 0
}

// Matches reports whether v is accepted by the spec. The 'L' variants are
// calendar-dependent and are resolved by the caller, not here.
func (s Spec) Matches(v int) bool {
	if v < s.bounds.Min || v > s.bounds.Max {
		return false
	}
	if s.star {
		return true
	}
	if len(s.terms) > 0 {
		for _, t := range s.terms {
			if t.contains(v) {
				return true
			}
		}
		return false
	}
	return s.bits&(1<<uint(v)) != 0
}

// Ceiling returns the smallest accepted value at or above v, and whether one
// exists within the domain. Narrow domains answer via a masked bitset scan,
// wide domains via per-term arithmetic; neither walks the value space.
func (s Spec) Ceiling(v int) (int, bool) {
	if v < s.bounds.Min {
		v = s.bounds.Min
	}
	if v > s.bounds.Max {
		return 0, false
	}
	if s.star {
		return v, true
	}
	if len(s.terms) > 0 {
		best, ok := 0, false
		for _, t := range s.terms {
			if c, within := t.ceiling(v); within && (!ok || c < best) {
				best, ok = c, true
			}
		}
		return best, ok
	}
	if masked := s.bits &^ (1<<uint(v) - 1); masked != 0 {
		return bits.TrailingZeros64(masked), true
	}
	return 0, false
}

// wide reports whether the domain is too large for a bitset.
func (s Spec) wide() bool {
	return s.bounds.Max > 63
}

// add accepts a single value, reducing it modulo the domain where the domain
// folds (weekday 7 and 0 are the same day).
func (s *Spec) add(v int) {
	if s.wide() {
		s.terms = append(s.terms, term{from: v, to: v, step: 1})
		return
	}
	if s.bounds.Mod > 0 {
		v %= s.bounds.Mod
	}
	s.bits |= 1 << uint(v)
}

// addRange accepts every step-th value from `from` through `to` inclusive.
func (s *Spec) addRange(from, to, step int) {
	if s.wide() {
		s.terms = append(s.terms, term{from: from, to: to, step: step})
		return
	}
	for v := from; v <= to; v += step {
		s.add(v)
	}
}

// addWrappedRange accepts a range whose start exceeds its end, walking past
// the top of the domain and folding back to the bottom (e.g. fri-mon).
func (s *Spec) addWrappedRange(from, to, step int) {
	span := s.bounds.Mod
	if span == 0 {
		span = s.bounds.Max - s.bounds.Min + 1
	}
	for v := from; v <= to+span; v += step {
		s.add(v)
	}
}
