package tools

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all tools with the MCP server.
func Register(srv *sdkmcp.Server, d *Deps) {
	AddTool(srv, &sdkmcp.Tool{
		Name:        "xml_check",
		Description: "Fetch an XML document and check the nodes selected by an XPath. Without ok/warning/critical/age_hours the check only verifies the node exists and has a value (or, without xpath, that the document is well-formed). With ok, every value must equal it. With warning and/or critical, values are checked against Nagios ranges such as '10', '10:', '10:20' and '@10:20'. With age_hours, values are timestamps (time_format, default UNIX) that must be younger than the given hours. Returns status (OK, WARNING, CRITICAL, UNKNOWN), the monitoring message, and the indices of offending nodes.",
		Annotations: &sdkmcp.ToolAnnotations{Title: "XML Check", ReadOnlyHint: true},
	}, ToolCheck(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "xml_extract",
		Description: "Fetch an XML (or HTML) document and return the trimmed text of every node an XPath selects, in document order. Use this to explore a document before writing an xml_check.",
		Annotations: &sdkmcp.ToolAnnotations{Title: "XML Extract", ReadOnlyHint: true},
	}, ToolExtract(d))

	AddTool(srv, &sdkmcp.Tool{
		Name:        "xml_outline",
		Description: "Fetch an XML document and list its distinct element paths in document order, with occurrence counts, attribute names and a sample value for leaf elements. Every path is a valid XPath for xml_extract and xml_check. Start here when the document structure is unknown.",
		Annotations: &sdkmcp.ToolAnnotations{Title: "XML Outline", ReadOnlyHint: true},
	}, ToolOutline(d))
}
