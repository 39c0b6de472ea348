// Package mcpsrv provides an extensible MCP server for XML monitoring checks.
//
// The server exposes the builtin xml_check and xml_extract tools, the
// write_xml_check prompt and JSON Schema resources under xmlprobe://schema/.
// Custom tools, prompts and resources are added with functional options.
//
// # Basic Usage
//
//	server, err := mcpsrv.NewServer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer server.Close()
//	server.Run(ctx)
//
// # Extension
//
// Tools that need the probe get it through Deps:
//
//	type StaleInput struct {
//	    URL string `json:"url"`
//	}
//
//	type StaleOutput struct {
//	    Status string `json:"status"`
//	}
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithDepsTool(
//	        &mcp.Tool{Name: "feed_stale", Description: "Check feed freshness"},
//	        func(d *mcpsrv.Deps) func(context.Context, *mcp.CallToolRequest, StaleInput) (*mcp.CallToolResult, StaleOutput, error) {
//	            return func(ctx context.Context, req *mcp.CallToolRequest, in StaleInput) (*mcp.CallToolResult, StaleOutput, error) {
//	                res := d.Probe.Check(ctx, probe.Request{URL: in.URL, XPath: "/feed/updated", AgeHours: 2})
//	                return nil, StaleOutput{Status: res.Status.String()}, nil
//	            }
//	        },
//	    ),
//	)
//
// # Configuration
//
// Configuration is read from the environment (see internal/config). Logging
// can be overridden per server:
//
//	server, err := mcpsrv.NewServer(
//	    mcpsrv.WithLogLevel("debug"),
//	    mcpsrv.WithLogFile("/var/log/xmlprobe-mcp.log"),
//	)
package mcpsrv
