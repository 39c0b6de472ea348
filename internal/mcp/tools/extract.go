package tools

import (
	"context"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/xmlprobe/pkg/contenttype"
	"github.com/usestring/xmlprobe/pkg/xpathquery"
)

// ExtractInput is the input for xml_extract.
type ExtractInput struct {
	URL       string `json:"url" jsonschema:"URL of the document"`
	XPath     string `json:"xpath" jsonschema:"XPath selecting the nodes to return"`
	TimeoutMs int    `json:"timeout_ms,omitempty" jsonschema:"Fetch timeout in milliseconds (default: PROBE_TIMEOUT_MS)"`
	MaxValues int    `json:"max_values,omitempty" jsonschema:"Max values to return (default: 100)"`
}

// ExtractOutput is the output of xml_extract.
type ExtractOutput struct {
	URL             string   `json:"url"`
	ContentType     string   `json:"content_type,omitempty"`
	ContentCategory string   `json:"content_category"`
	Count           int      `json:"count"`
	Defined         bool     `json:"defined"`
	Values          []string `json:"values,omitzero"`
	Truncated       bool     `json:"truncated,omitempty"`
}

const defaultMaxValues = 100

// ToolExtract returns the values an XPath selects.
func ToolExtract(d *Deps) func(ctx context.Context, req *sdkmcp.CallToolRequest, input ExtractInput) (*sdkmcp.CallToolResult, ExtractOutput, error) {
	return func(ctx context.Context, req *sdkmcp.CallToolRequest, input ExtractInput) (*sdkmcp.CallToolResult, ExtractOutput, error) {
		if input.URL == "" {
			return nil, ExtractOutput{}, ErrInvalidInput("url is required")
		}
		if input.XPath == "" {
			return nil, ExtractOutput{}, ErrInvalidInput("xpath is required")
		}

		doc, err := d.Probe.Document(ctx, input.URL, timeoutOrDefault(input.TimeoutMs, d.defaultTimeout()))
		if err != nil {
			return nil, ExtractOutput{}, WrapProbeError(err)
		}

		values, err := xpathquery.Extract(doc.Body, doc.ContentType, input.XPath)
		if err != nil {
			return nil, ExtractOutput{}, WrapProbeError(err)
		}

		maxValues := input.MaxValues
		if maxValues <= 0 {
			maxValues = defaultMaxValues
		}

		output := ExtractOutput{
			URL:             doc.URL,
			ContentType:     doc.ContentType,
			ContentCategory: string(contenttype.Classify(doc.ContentType)),
			Count:           len(values),
			Defined:         values.Defined(),
			Values:          values,
		}
		if len(values) > maxValues {
			output.Values = values[:maxValues]
			output.Truncated = true
		}

		return nil, output, nil
	}
}
