package prompts

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// Register registers all prompts with the MCP server.
func Register(srv *sdkmcp.Server, cfg *Config) {
	srv.AddPrompt(&sdkmcp.Prompt{
		Name:        "write_xml_check",
		Description: "RECOMMENDED: Turn a monitoring goal for an XML status page into a working check. Walks through exploring the document with xml_outline and xml_extract, choosing a check mode, trying it with xml_check and writing the result as a checks file entry.",
		Arguments: []*sdkmcp.PromptArgument{
			{
				Name:        "url",
				Description: "URL of the XML document to monitor",
				Required:    true,
			},
			{
				Name:        "goal",
				Description: "What should raise an alert (e.g., 'any partition down', 'more than 50 running jobs', 'feed older than 2 hours')",
				Required:    false,
			},
		},
	}, HandleWriteCheck(cfg))
}
