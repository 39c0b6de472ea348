package prompts

import (
	"context"
	"fmt"
	"strings"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// HandleWriteCheck implements the check authoring workflow.
func HandleWriteCheck(cfg *Config) func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
	return func(ctx context.Context, req *sdkmcp.GetPromptRequest) (*sdkmcp.GetPromptResult, error) {
		args := req.Params.Arguments

		url := ""
		goal := ""
		if args != nil {
			if v, ok := args["url"]; ok {
				url = v
			}
			if v, ok := args["goal"]; ok {
				goal = v
			}
		}
		if url == "" {
			return nil, fmt.Errorf("url argument is required")
		}

		var sb strings.Builder

		sb.WriteString("# Write an XML Check\n\n")
		sb.WriteString("You are a monitoring engineer writing a Nagios-style check for an XML status document.\n\n")

		sb.WriteString("## Target\n\n")
		fmt.Fprintf(&sb, "- **Document**: `%s`\n", url)
		if goal != "" {
			fmt.Fprintf(&sb, "- **Alert when**: %s\n", goal)
		}
		fmt.Fprintf(&sb, "- **Fetch timeout**: %s unless you pass `timeout_ms`\n\n", cfg.DefaultTimeout)

		sb.WriteString("## Workflow Steps\n\n")
		sb.WriteString("1. **Explore** - Call `xml_outline` to list the element paths, then `xml_extract` on the candidates\n")
		sb.WriteString("   - Values come back trimmed and in document order; the index of a value is its partition number in messages\n")
		sb.WriteString("   - `defined: false` means every matched node is empty\n\n")
		sb.WriteString("2. **Pick a mode** - Exactly one of these per check:\n")
		sb.WriteString("   - existence: only `xpath` (WARNING when the nodes are empty)\n")
		sb.WriteString("   - equality: `ok` (WARNING when some values differ, CRITICAL when all do)\n")
		sb.WriteString("   - threshold: `warning` and/or `critical` ranges (critical is evaluated first)\n")
		sb.WriteString("   - age: `age_hours` with `time_format` (UNIX or a strftime pattern)\n\n")
		sb.WriteString("3. **Try it** - Call `xml_check` and read `status`, `message` and `offending`\n\n")
		sb.WriteString("4. **Write it down** - Emit the check as an entry of a checks file\n\n")

		sb.WriteString("## Range Syntax\n\n")
		sb.WriteString("| Range | Alerts when value is |\n")
		sb.WriteString("|-------|----------------------|\n")
		sb.WriteString("| `10` | < 0 or > 10 |\n")
		sb.WriteString("| `10:` | < 10 |\n")
		sb.WriteString("| `:10` | < 0 or > 10 |\n")
		sb.WriteString("| `10:20` | < 10 or > 20 |\n")
		sb.WriteString("| `@10:20` | >= 10 and <= 20 |\n\n")

		sb.WriteString("## Checks File Entry\n\n")
		sb.WriteString("```yaml\n")
		sb.WriteString("checks:\n")
		sb.WriteString("  - name: <short-name>\n")
		fmt.Fprintf(&sb, "    url: %s\n", url)
		sb.WriteString("    xpath: <xpath>\n")
		sb.WriteString("    # one of: ok / warning + critical / age_hours + time_format\n")
		sb.WriteString("```\n")
		if cfg.BatchWorkers > 0 {
			fmt.Fprintf(&sb, "\nBatches run up to %d checks at a time; the worst status wins.\n", cfg.BatchWorkers)
		}

		return &sdkmcp.GetPromptResult{
			Description: "Workflow for writing an XML check",
			Messages: []*sdkmcp.PromptMessage{
				{
					Role:    "user",
					Content: &sdkmcp.TextContent{Text: sb.String()},
				},
			},
		}, nil
	}
}
