package tools

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/usestring/xmlprobe/pkg/client"
	"github.com/usestring/xmlprobe/pkg/evaluate"
)

// Error codes for MCP tool responses.
const (
	ErrCodeNotFound          = "NOT_FOUND"
	ErrCodeFetchFailed       = "FETCH_FAILED"
	ErrCodeMalformedDocument = "MALFORMED_DOCUMENT"
	ErrCodeInvalidInput      = "INVALID_INPUT"
	ErrCodeTimeout           = "TIMEOUT"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapProbeError converts a fetch or extraction error to a coded error.
func WrapProbeError(err error) error {
	if err == nil {
		return nil
	}

	coded := &CodedError{Message: err.Error()}

	switch evaluate.KindOf(err) {
	case evaluate.KindNoMatchingNode:
		coded.Code = ErrCodeNotFound
	case evaluate.KindMalformedDocument:
		coded.Code = ErrCodeMalformedDocument
	case evaluate.KindInvalidPath, evaluate.KindInvalidInput:
		coded.Code = ErrCodeInvalidInput
	default:
		var se *client.StatusError
		switch {
		case client.IsTimeout(err):
			coded.Code = ErrCodeTimeout
		case errors.As(err, &se) && se.StatusCode == 404:
			coded.Code = ErrCodeNotFound
		default:
			coded.Code = ErrCodeFetchFailed
		}
	}

	slog.Warn("xml tool error",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
	)

	return coded
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}
