package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/xmlprobe/pkg/evaluate"
	"github.com/usestring/xmlprobe/pkg/shape"
)

// OutlineInput is the input for xml_outline.
type OutlineInput struct {
	URL       string `json:"url" jsonschema:"URL of the XML document"`
	MaxDepth  int    `json:"max_depth,omitempty" jsonschema:"Deepest element level to report (default: 8)"`
	MaxPaths  int    `json:"max_paths,omitempty" jsonschema:"Max distinct element paths to report (default: 200)"`
	TimeoutMs int    `json:"timeout_ms,omitempty" jsonschema:"Fetch timeout in milliseconds (default: PROBE_TIMEOUT_MS)"`
}

// OutlineOutput is the output of xml_outline.
type OutlineOutput struct {
	URL       string           `json:"url"`
	Paths     []shape.PathInfo `json:"paths,omitzero"`
	MaxDepth  int              `json:"max_depth"`
	Truncated bool             `json:"truncated,omitempty"`
}

// ToolOutline lists the element paths of a document with counts and sample
// values, each usable as an XPath for xml_check.
func ToolOutline(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input OutlineInput) (*sdkmcp.CallToolResult, OutlineOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input OutlineInput) (*sdkmcp.CallToolResult, OutlineOutput, error) {
		if input.URL == "" {
			return nil, OutlineOutput{}, ErrInvalidInput("url is required")
		}

		doc, err := d.Probe.Document(ctx, input.URL, timeoutOrDefault(input.TimeoutMs, d.defaultTimeout()))
		if err != nil {
			return nil, OutlineOutput{}, WrapProbeError(err)
		}

		outline, err := shape.ExtractOutline(doc.Body, input.MaxDepth, input.MaxPaths)
		if err != nil {
			return nil, OutlineOutput{}, WrapProbeError(evaluate.Wrap(evaluate.KindMalformedDocument, err, err.Error()))
		}

		return nil, OutlineOutput{
			URL:       doc.URL,
			Paths:     outline.Paths,
			MaxDepth:  outline.MaxDepth,
			Truncated: outline.Truncated,
		}, nil
	}
}
