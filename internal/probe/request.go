package probe

import (
	"time"

	"github.com/usestring/xmlprobe/pkg/evaluate"
)

// Mode is the evaluation a request selects.
type Mode string

const (
	// ModeExists checks that the document parses and, when an XPath is
	// given, that the node exists and has a value.
	ModeExists Mode = "exists"
	// ModeEqual compares node values with Request.OK.
	ModeEqual Mode = "equal"
	// ModeThreshold checks node values against the warning and critical ranges.
	ModeThreshold Mode = "threshold"
	// ModeAge checks that timestamp values are no older than Request.AgeHours.
	ModeAge Mode = "age"
)

// Request describes one check.
type Request struct {
	Name    string        `yaml:"name"`
	URL     string        `yaml:"url"`
	Timeout time.Duration `yaml:"timeout"`
	XPath   string        `yaml:"xpath"`

	OK       string `yaml:"ok"`
	Warning  string `yaml:"warning"`
	Critical string `yaml:"critical"`

	AgeHours   float64 `yaml:"age_hours"`
	TimeFormat string  `yaml:"time_format"`
}

// Mode validates the request and returns the evaluation it selects.
func (r Request) Mode() (Mode, error) {
	if r.URL == "" {
		return "", evaluate.Errorf(evaluate.KindInvalidInput, "URL is required")
	}

	threshold := r.Warning != "" || r.Critical != ""
	age := r.AgeHours != 0

	var modes []Mode
	if r.OK != "" {
		modes = append(modes, ModeEqual)
	}
	if threshold {
		modes = append(modes, ModeThreshold)
	}
	if age {
		modes = append(modes, ModeAge)
	}

	switch len(modes) {
	case 0:
		return ModeExists, nil
	case 1:
	default:
		return "", evaluate.Errorf(evaluate.KindInvalidInput,
			"Options for %s and %s checks cannot be combined", modes[0], modes[1])
	}

	if r.XPath == "" {
		return "", evaluate.Errorf(evaluate.KindInvalidInput, "XPath is required for %s checks", modes[0])
	}
	if age && r.AgeHours < 0 {
		return "", evaluate.Errorf(evaluate.KindInvalidInput, "Age must be a positive number of hours")
	}
	return modes[0], nil
}

func (r Request) timeFormat() string {
	if r.TimeFormat == "" {
		return evaluate.TimeFormatUnix
	}
	return r.TimeFormat
}
