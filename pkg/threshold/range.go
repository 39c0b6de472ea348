// Package threshold parses monitoring-plugin range thresholds such as "10",
// "10:", ":10", "10:20" and "@10:20".
package threshold

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidFormat is returned by Parse when a threshold does not match the
// range grammar.
var ErrInvalidFormat = errors.New("invalid threshold format")

// Range is a closed numeric interval with an inversion flag.
//
// With Invert unset a value alerts when it falls outside [Low, High]; with
// Invert set it alerts when it falls inside.
type Range struct {
	Low  float64
	High float64 // +Inf when the range is unbounded above
	// LowDefaulted is set when the threshold omitted the low bound. It only
	// affects how the bound is rendered.
	LowDefaulted bool
	Invert       bool
}

// Parse parses a threshold spec. The grammar is
//
//	["@"] (N | N ":" | ":" N | N ":" M)
//
// where an omitted low bound defaults to 0 and an omitted high bound is +Inf.
func Parse(spec string) (Range, error) {
	var r Range

	s := spec
	if strings.HasPrefix(s, "@") {
		r.Invert = true
		s = s[1:]
	}
	if s == "" {
		return Range{}, fmt.Errorf("%w: %q", ErrInvalidFormat, spec)
	}

	low, high, hasColon := strings.Cut(s, ":")
	if !hasColon {
		// "N" means [0, N]
		low, high = "", s
	}
	if strings.Contains(high, ":") {
		return Range{}, fmt.Errorf("%w: %q has more than one colon", ErrInvalidFormat, spec)
	}
	if low == "" && high == "" {
		return Range{}, fmt.Errorf("%w: %q has no bounds", ErrInvalidFormat, spec)
	}

	if low == "" {
		r.LowDefaulted = true
	} else {
		v, err := parseBound(low)
		if err != nil {
			return Range{}, fmt.Errorf("%w: %q: %v", ErrInvalidFormat, spec, err)
		}
		r.Low = v
	}

	if high == "" {
		r.High = math.Inf(1)
	} else {
		v, err := parseBound(high)
		if err != nil {
			return Range{}, fmt.Errorf("%w: %q: %v", ErrInvalidFormat, spec, err)
		}
		r.High = v
	}

	if r.Low > r.High {
		return Range{}, fmt.Errorf("%w: %q has low bound above high bound", ErrInvalidFormat, spec)
	}

	return r, nil
}

// parseBound accepts an optionally signed decimal. strconv.ParseFloat alone is
// too permissive ("Inf", "1e3", "0x10", "1_000").
func parseBound(s string) (float64, error) {
	digits := strings.TrimPrefix(strings.TrimPrefix(s, "-"), "+")
	if digits == "" || digits == "." {
		return 0, fmt.Errorf("bound %q is not a number", s)
	}
	dot := false
	for _, c := range digits {
		switch {
		case c >= '0' && c <= '9':
		case c == '.' && !dot:
			dot = true
		default:
			return 0, fmt.Errorf("bound %q is not a number", s)
		}
	}
	return strconv.ParseFloat(s, 64)
}

// Contains reports whether v lies in [Low, High].
func (r Range) Contains(v float64) bool {
	return v >= r.Low && v <= r.High
}

// Alerts reports whether v should raise an alert under this range.
func (r Range) Alerts(v float64) bool {
	if r.Invert {
		return r.Contains(v)
	}
	return !r.Contains(v)
}

// Relation is the word used in messages for an alerting value: "inside" for
// inverted ranges, "outside" otherwise.
func (r Range) Relation() string {
	if r.Invert {
		return "inside"
	}
	return "outside"
}

// String renders the bounds as "[low, high]". Parsed bounds print as floats
// ("50.0"), a defaulted low bound prints as "0" and an unbounded high prints
// as "Inf".
func (r Range) String() string {
	low := "0"
	if !r.LowDefaulted {
		low = FormatBound(r.Low)
	}
	return fmt.Sprintf("[%s, %s]", low, FormatBound(r.High))
}

// FormatBound renders a bound the way thresholds are echoed back to operators.
func FormatBound(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "Inf"
	case math.IsInf(v, -1):
		return "-Inf"
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
