package evaluate

import "fmt"

// Status is the health state a check reports. The numeric values are the
// monitoring-plugin exit codes.
type Status int

const (
	// StatusOK means every value passed.
	StatusOK Status = 0
	// StatusWarning means the check is degraded: some values failed, or a
	// warning threshold was crossed.
	StatusWarning Status = 1
	// StatusCritical means the check failed.
	StatusCritical Status = 2
	// StatusUnknown means no verdict could be formed, e.g. invalid usage.
	StatusUnknown Status = 3
)

// String returns the plugin status label.
func (s Status) String() string {
	switch s {
	case StatusOK:
		return "OK"
	case StatusWarning:
		return "WARNING"
	case StatusCritical:
		return "CRITICAL"
	case StatusUnknown:
		return "UNKNOWN"
	default:
		return fmt.Sprintf("Status(%d)", int(s))
	}
}

// ExitCode returns the process exit code for s.
func (s Status) ExitCode() int {
	if s < StatusOK || s > StatusUnknown {
		return int(StatusUnknown)
	}
	return int(s)
}

// MarshalText renders the status label, so JSON and YAML carry "WARNING"
// rather than 1.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText parses a status label.
func (s *Status) UnmarshalText(b []byte) error {
	st, err := ParseStatus(string(b))
	if err != nil {
		return err
	}
	*s = st
	return nil
}

// ParseStatus parses a status label as produced by String.
func ParseStatus(v string) (Status, error) {
	switch v {
	case "OK":
		return StatusOK, nil
	case "WARNING":
		return StatusWarning, nil
	case "CRITICAL":
		return StatusCritical, nil
	case "UNKNOWN":
		return StatusUnknown, nil
	}
	return StatusUnknown, fmt.Errorf("unknown status %q", v)
}

// Worse returns the more severe of a and b. UNKNOWN ranks between WARNING
// and CRITICAL, as monitoring frameworks order them.
func Worse(a, b Status) Status {
	if rank(b) > rank(a) {
		return b
	}
	return a
}

func rank(s Status) int {
	switch s {
	case StatusOK:
		return 0
	case StatusWarning:
		return 1
	case StatusUnknown:
		return 2
	default:
		return 3
	}
}

// Severity names the threshold a range check runs for.
type Severity string

const (
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Status returns the status an alerting value produces under this severity.
func (s Severity) Status() Status {
	if s == SeverityWarning {
		return StatusWarning
	}
	return StatusCritical
}
