package field

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	errs "github.com/cronspan/cronspan/internal/error"
)

// Parse parses one expression column into a Spec.
//
// Operator precedence, highest first: step ('/') binds tighter than range
// ('-'), which binds tighter than list (','). The text is split on commas
// first; each term is then split on a trailing step; the remaining part is
// resolved as a wildcard, an 'L' marker, a range, or a single value. A bare
// value with a trailing step extends to the domain maximum ("6/3" in the
// minute column means 6, 9, ..., 57).
//
// Parameters:
//   - text: Source substring of a single column.
//   - b: The column's domain, alias table, and token capabilities.
//
// Returns:
//   - The parsed Spec.
//   - A *errs.FieldError if any token is malformed or out of domain.
func Parse(text string, b Bounds) (Spec, error) {
	s := Spec{bounds: b}
	if text == "" {
		return Spec{}, fail(b, text, "empty field")
	}
	for _, tok := range strings.Split(text, ",") {
		if tok == "" {
			return Spec{}, fail(b, text, "empty list term")
		}
		if err := s.parseTerm(tok, b); err != nil {
			return Spec{}, err
		}
	}
	return s, nil
}

// parseTerm resolves one comma-separated term and folds its values into the
// spec. Tokens are matched case-insensitively; the original spelling is kept
// for diagnostics.
func (s *Spec) parseTerm(tok string, b Bounds) error {
	lower := strings.ToLower(tok)

	base, stepPart, hasStep := strings.Cut(lower, "/")
	step := 1
	if hasStep {
		n, err := strconv.Atoi(stepPart)
		if err != nil || n <= 0 {
			return fail(b, tok, "invalid step")
		}
		step = n
	}

	// Wildcards: '*' everywhere, '?' only where the column allows it.
	if base == "*" || base == "?" {
		if base == "?" && !b.Question {
			return fail(b, tok, "'?' is not valid in this column")
		}
		s.addRange(b.Min, b.Max, step)
		if !hasStep {
			s.star = true
		}
		return nil
	}

	// Last-unit markers take no range or step.
	if base == "l" && b.LastAlone {
		if hasStep {
			return fail(b, tok, "'L' takes no step")
		}
		s.lastDay = true
		return nil
	}
	if b.LastSuffix && len(base) > 1 && strings.HasSuffix(base, "l") {
		if hasStep {
			return fail(b, tok, "'L' takes no step")
		}
		v, err := b.value(strings.TrimSuffix(base, "l"))
		if err != nil {
			return fail(b, tok, err.Error())
		}
		if b.Mod > 0 {
			v %= b.Mod
		}
		s.lastDow |= 1 << uint(v)
		return nil
	}

	if lo, hi, isRange := strings.Cut(base, "-"); isRange {
		from, err := b.value(lo)
		if err != nil {
			return fail(b, tok, err.Error())
		}
		to, err := b.value(hi)
		if err != nil {
			return fail(b, tok, err.Error())
		}
		if from > to {
			if !b.Wrap {
				return fail(b, tok, "inverted range")
			}
			s.addWrappedRange(from, to, step)
			return nil
		}
		s.addRange(from, to, step)
		return nil
	}

	v, err := b.value(base)
	if err != nil {
		return fail(b, tok, err.Error())
	}
	if hasStep {
		// A bare value with a step runs to the top of the domain.
		s.addRange(v, b.Max, step)
		return nil
	}
	s.add(v)
	return nil
}

// value resolves a number or alias against the domain.
func (b Bounds) value(text string) (int, error) {
	if v, ok := b.Names[text]; ok {
		return v, nil
	}
	v, err := strconv.Atoi(text)
	if err != nil {
		return 0, errors.New("unrecognized token")
	}
	if v < b.Min || v > b.Max {
		return 0, fmt.Errorf("value %d out of range [%d,%d]", v, b.Min, b.Max)
	}
	return v, nil
}

func fail(b Bounds, token, reason string) error {
	return &errs.FieldError{Column: b.Name, Token: token, Reason: reason}
}
