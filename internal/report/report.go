// Package report renders check outcomes the way monitoring frameworks expect
// plugin output: one status line on stdout and the status as the exit code.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/usestring/xmlprobe/internal/probe"
	"github.com/usestring/xmlprobe/pkg/evaluate"
)

// Reporter collects the status of a plugin run. The zero value is not usable;
// create one with New.
type Reporter struct {
	status  evaluate.Status
	message string
	details []string
}

// New returns a Reporter in the UNKNOWN state, so a run that never reports
// still exits as UNKNOWN.
func New() *Reporter {
	return &Reporter{
		status:  evaluate.StatusUnknown,
		message: "No status reported",
	}
}

// Report sets the status and message. The last call wins.
func (r *Reporter) Report(status evaluate.Status, message string) {
	r.status = status
	r.message = message
}

// OK reports message with status OK.
func (r *Reporter) OK(message string) { r.Report(evaluate.StatusOK, message) }

// Warning reports message with status WARNING.
func (r *Reporter) Warning(message string) { r.Report(evaluate.StatusWarning, message) }

// Critical reports message with status CRITICAL.
func (r *Reporter) Critical(message string) { r.Report(evaluate.StatusCritical, message) }

// Unknown reports message with status UNKNOWN.
func (r *Reporter) Unknown(message string) { r.Report(evaluate.StatusUnknown, message) }

// Detail appends a line printed after the status line.
func (r *Reporter) Detail(line string) {
	r.details = append(r.details, line)
}

// Status returns the reported status.
func (r *Reporter) Status() evaluate.Status { return r.status }

// Line renders the status line, "<STATUS> - <message>".
func (r *Reporter) Line() string {
	return fmt.Sprintf("%s - %s", r.status, r.message)
}

// ExitCode returns the process exit code for the reported status.
func (r *Reporter) ExitCode() int {
	return r.status.ExitCode()
}

// WriteTo writes the status line followed by any detail lines.
func (r *Reporter) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	b.WriteString(r.Line())
	b.WriteByte('\n')
	for _, d := range r.details {
		b.WriteString(d)
		b.WriteByte('\n')
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// FromResult reports a single check.
func FromResult(res probe.Result) *Reporter {
	r := New()
	r.Report(res.Status, res.Message)
	return r
}

// FromBatch reports a batch: the worst status with a summary line, then one
// detail line per check.
func FromBatch(b probe.BatchResult) *Reporter {
	r := New()
	r.Report(b.Status, b.Summary())
	for _, res := range b.Results {
		r.Detail(fmt.Sprintf("[%s] %s - %s", res.Name, res.Status, res.Message))
	}
	return r
}
