package probe

import (
	"github.com/usestring/xmlprobe/pkg/evaluate"
)

// Result is the outcome of one check, ready for a reporter.
type Result struct {
	CheckID   string
	Name      string
	URL       string
	XPath     string
	Mode      Mode
	Status    evaluate.Status
	Message   string
	Offending []int
	// Values holds the extracted node values; nil when extraction did not
	// happen or failed.
	Values []string
	// Kind is set when the check ended in an error instead of a verdict.
	Kind       evaluate.Kind
	DurationMs int64
}

// statusForError maps an error kind onto the status reported for it. Invalid
// usage is UNKNOWN, every other failure is CRITICAL.
func statusForError(kind evaluate.Kind) evaluate.Status {
	if kind == evaluate.KindInvalidInput {
		return evaluate.StatusUnknown
	}
	return evaluate.StatusCritical
}

// prefixed reports whether messages of this kind are reported behind the
// XPath they were evaluated for.
func prefixed(kind evaluate.Kind) bool {
	switch kind {
	case evaluate.KindInvalidRangeFormat, evaluate.KindNotNumeric, evaluate.KindNotATimestamp:
		return true
	}
	return false
}
