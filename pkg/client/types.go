package client

import (
	"errors"
	"fmt"
	"time"
)

// ErrBodyTooLarge is returned when a response exceeds the configured body cap.
var ErrBodyTooLarge = errors.New("response body too large")

// Document is a fetched response body with the metadata the parsers need.
type Document struct {
	URL         string
	Body        []byte
	ContentType string
	StatusCode  int
	FetchedAt   time.Time
}

// StatusError is returned for responses outside the 2xx range.
type StatusError struct {
	URL        string
	StatusCode int
	Status     string // e.g. "500 Internal Server Error"
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s for url: %s", e.Status, e.URL)
}
