package tools

import (
	"context"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/xmlprobe/internal/probe"
)

// CheckInput is the input for xml_check.
type CheckInput struct {
	URL        string  `json:"url" jsonschema:"URL of the XML document"`
	XPath      string  `json:"xpath,omitempty" jsonschema:"XPath selecting the nodes to check"`
	OK         string  `json:"ok,omitempty" jsonschema:"Value every selected node must equal"`
	Warning    string  `json:"warning,omitempty" jsonschema:"Warning threshold range, e.g. 50 or 10:20 or @10:20"`
	Critical   string  `json:"critical,omitempty" jsonschema:"Critical threshold range"`
	AgeHours   float64 `json:"age_hours,omitempty" jsonschema:"Maximum age in hours of timestamp values"`
	TimeFormat string  `json:"time_format,omitempty" jsonschema:"strftime format of timestamp values (default: UNIX)"`
	TimeoutMs  int     `json:"timeout_ms,omitempty" jsonschema:"Fetch timeout in milliseconds (default: PROBE_TIMEOUT_MS)"`
}

// CheckOutput is the output of xml_check. Status is the label, not the code,
// so the output schema stays a plain string.
type CheckOutput struct {
	CheckID    string   `json:"check_id"`
	URL        string   `json:"url"`
	XPath      string   `json:"xpath,omitempty"`
	Mode       string   `json:"mode,omitempty"`
	Status     string   `json:"status"`
	ExitCode   int      `json:"exit_code"`
	Message    string   `json:"message"`
	Line       string   `json:"line"`
	Offending  []int    `json:"offending,omitzero"`
	Values     []string `json:"values,omitzero"`
	ErrorKind  string   `json:"error_kind,omitempty"`
	DurationMs int64    `json:"duration_ms"`
}

// ToolCheck runs one check. Check failures are part of the output, not tool
// errors: a CRITICAL document is a successful call.
func ToolCheck(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input CheckInput) (*sdkmcp.CallToolResult, CheckOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input CheckInput) (*sdkmcp.CallToolResult, CheckOutput, error) {
		if input.URL == "" {
			return nil, CheckOutput{}, ErrInvalidInput("url is required")
		}

		res := d.Probe.Check(ctx, probe.Request{
			Name:       "xml_check",
			URL:        input.URL,
			Timeout:    timeoutOrDefault(input.TimeoutMs, d.defaultTimeout()),
			XPath:      input.XPath,
			OK:         input.OK,
			Warning:    input.Warning,
			Critical:   input.Critical,
			AgeHours:   input.AgeHours,
			TimeFormat: input.TimeFormat,
		})

		return nil, NewCheckOutput(res), nil
	}
}

// NewCheckOutput converts a probe result to tool output.
func NewCheckOutput(res probe.Result) CheckOutput {
	return CheckOutput{
		CheckID:    res.CheckID,
		URL:        res.URL,
		XPath:      res.XPath,
		Mode:       string(res.Mode),
		Status:     res.Status.String(),
		ExitCode:   res.Status.ExitCode(),
		Message:    res.Message,
		Line:       res.Status.String() + " - " + res.Message,
		Offending:  res.Offending,
		Values:     res.Values,
		ErrorKind:  string(res.Kind),
		DurationMs: res.DurationMs,
	}
}

func (d *Deps) defaultTimeout() time.Duration {
	if d.Config == nil {
		return 0
	}
	return d.Config.Timeout
}
