package evaluate

import (
	"errors"
	"fmt"
)

// Kind classifies why a check could not produce a verdict.
type Kind string

// Error kinds. Every kind is terminal for the check that raised it.
const (
	KindTransportFailure   Kind = "TRANSPORT_FAILURE"
	KindMalformedDocument  Kind = "MALFORMED_DOCUMENT"
	KindNoMatchingNode     Kind = "NO_MATCHING_NODE"
	KindInvalidPath        Kind = "INVALID_PATH"
	KindInvalidRangeFormat Kind = "INVALID_RANGE_FORMAT"
	KindNotNumeric         Kind = "NOT_NUMERIC"
	KindNotATimestamp      Kind = "NOT_A_TIMESTAMP"
	KindInvalidInput       Kind = "INVALID_INPUT"
)

// Sentinels for errors.Is. An *Error matches the sentinel of its kind.
var (
	ErrTransportFailure   = &Error{Kind: KindTransportFailure}
	ErrMalformedDocument  = &Error{Kind: KindMalformedDocument}
	ErrNoMatchingNode     = &Error{Kind: KindNoMatchingNode}
	ErrInvalidPath        = &Error{Kind: KindInvalidPath}
	ErrInvalidRangeFormat = &Error{Kind: KindInvalidRangeFormat}
	ErrNotNumeric         = &Error{Kind: KindNotNumeric}
	ErrNotATimestamp      = &Error{Kind: KindNotATimestamp}
	ErrInvalidInput       = &Error{Kind: KindInvalidInput}
)

// Error is a check failure with an operator-facing message. Message is what
// gets reported; Cause keeps the underlying error for logs and errors.As.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Message == "" {
		return string(e.Kind)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches any *Error with the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// Errorf creates an *Error of the given kind.
func Errorf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an *Error of the given kind that keeps cause in the chain.
func Wrap(kind Kind, cause error, message string) *Error {
	return &Error{Kind: kind, Message: message, Cause: cause}
}

// KindOf returns the kind of the first *Error in err's chain, or "" when there
// is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}
