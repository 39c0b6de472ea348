// Package tools contains MCP tool implementations for xmlprobe.
package tools

import (
	"encoding/json"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// MIME type constant.
const MimeJSON = "application/json"

// MakeJSONToolResult creates a CallToolResult with JSON text content.
func MakeJSONToolResult(v any) (*sdkmcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	return &sdkmcp.CallToolResult{
		Content: []sdkmcp.Content{
			&sdkmcp.TextContent{Text: string(b)},
		},
	}, nil
}

// timeoutOrDefault converts a millisecond input into a timeout, falling back
// to the configured default when the input is not positive.
func timeoutOrDefault(ms int, def time.Duration) time.Duration {
	if ms <= 0 {
		return def
	}
	return time.Duration(ms) * time.Millisecond
}
