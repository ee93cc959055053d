package schedule

import "time"

// maxYearSpan bounds the search for rules whose year column is open. A rule
// that cannot be satisfied within this many years of the reference instant
// (February 31st, say) is reported as having no next occurrence.
const maxYearSpan = 5

// Next returns the earliest instant strictly after `after` that satisfies
// the rule, evaluated in loc, and whether one exists.
//
// The search runs most-significant-field first over
// (year, month, day, hour, minute, second). Each field jumps directly to its
// smallest accepted value at or above the cursor; a jump resets every less
// significant field to its minimum, and a field with no accepted value left
// carries into the field above and restarts validation, so day-of-month and
// day-of-week are always re-checked against the real calendar after any
// month or year change.
func (r *Rule) Next(after time.Time, loc *time.Location) (time.Time, bool) {
	t := after.In(loc)
	// Round up to the next whole second: the result must be strictly later.
	t = t.Add(time.Second - time.Duration(t.Nanosecond())*time.Nanosecond)

	limit := t.Year() + maxYearSpan
	y, mo, d := t.Year(), int(t.Month()), t.Day()
	h, mi, s := t.Hour(), t.Minute(), t.Second()

	for {
		if r.Year.Star() && y > limit {
			return time.Time{}, false
		}

		if ny, ok := r.Year.Ceiling(y); !ok {
			return time.Time{}, false
		} else if ny != y {
			y, mo, d, h, mi, s = ny, 1, 1, 0, 0, 0
		}

		if nmo, ok := r.Month.Ceiling(mo); !ok {
			y, mo, d, h, mi, s = y+1, 1, 1, 0, 0, 0
			continue
		} else if nmo != mo {
			mo, d, h, mi, s = nmo, 1, 0, 0, 0
		}

		if nd, ok := r.nextDay(y, time.Month(mo), d, loc); !ok {
			mo, d, h, mi, s = mo+1, 1, 0, 0, 0
			continue
		} else if nd != d {
			d, h, mi, s = nd, 0, 0, 0
		}

		if nh, ok := r.Hour.Ceiling(h); !ok {
			d, h, mi, s = d+1, 0, 0, 0
			continue
		} else if nh != h {
			h, mi, s = nh, 0, 0
		}

		if nmi, ok := r.Minute.Ceiling(mi); !ok {
			h, mi, s = h+1, 0, 0
			continue
		} else if nmi != mi {
			mi, s = nmi, 0
		}

		if ns, ok := r.searchSecond.Ceiling(s); !ok {
			mi, s = mi+1, 0
			continue
		} else if ns != s {
			s = ns
		}

		out := time.Date(y, time.Month(mo), d, h, mi, s, 0, loc)
		if out.Year() != y || int(out.Month()) != mo || out.Day() != d ||
			out.Hour() != h || out.Minute() != mi || out.Second() != s {
			// The assembled local time does not exist (DST gap). time.Date
			// maps gap times onto the pre-transition offset, i.e. backwards,
			// so its result must never become the cursor; carry into the
			// next hour instead.
			h, mi, s = h+1, 0, 0
			continue
		}
		return out, true
	}
}

// nextDay returns the smallest day at or above d in (year, month) that
// satisfies the day rule, checked against the month's real length and the
// weekday each date actually falls on.
func (r *Rule) nextDay(year int, month time.Month, d int, loc *time.Location) (int, bool) {
	last := daysIn(year, month)
	for ; d <= last; d++ {
		// Noon sidesteps zones where midnight does not exist.
		weekday := int(time.Date(year, month, d, 12, 0, 0, 0, loc).Weekday())
		if r.dayMatches(d, weekday, last) {
			return d, true
		}
	}
	return 0, false
}
