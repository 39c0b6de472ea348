// Package contenttype classifies response Content-Type headers for the
// document parsers.
package contenttype

import (
	"mime"
	"strings"
)

// Category represents a broad content-type classification.
type Category string

const (
	XML     Category = "xml"
	HTML    Category = "html"
	JSON    Category = "json"
	Text    Category = "text"
	Binary  Category = "binary"
	Unknown Category = "unknown"
)

// Classify returns the broad content category for a content-type header value.
// Uses mime.ParseMediaType to strip parameters (charset etc.) before matching.
// Returns Unknown for empty values, since many status endpoints omit the header.
func Classify(contentType string) Category {
	if strings.TrimSpace(contentType) == "" {
		return Unknown
	}

	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = strings.ToLower(strings.TrimSpace(contentType))
	}

	// HTML: text/html, application/xhtml+xml
	if mediaType == "text/html" || mediaType == "application/xhtml+xml" {
		return HTML
	}

	// XML: application/xml, text/xml, application/vnd.*+xml, application/rss+xml
	if strings.Contains(mediaType, "xml") {
		return XML
	}

	if strings.Contains(mediaType, "json") {
		return JSON
	}

	if strings.HasPrefix(mediaType, "text/") {
		return Text
	}

	return Binary
}

// Parseable reports whether a document of this category can be handed to the
// XML or HTML parser. Unknown and plain text are tried as XML.
func (c Category) Parseable() bool {
	switch c {
	case XML, HTML, Text, Unknown:
		return true
	default:
		return false
	}
}
