package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/invopop/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/usestring/xmlprobe/internal/mcp/tools"
	"github.com/usestring/xmlprobe/internal/probe"
)

// Resource URI scheme: xmlprobe://
// Supported URIs:
//   xmlprobe://schema/result   output of xml_check
//   xmlprobe://schema/request  input of xml_check
//   xmlprobe://schema/checks   batch checks file

const uriScheme = "xmlprobe://"

// schemaSources maps schema resource names to the values reflected for them.
var schemaSources = map[string]any{
	"result":  tools.CheckOutput{},
	"request": tools.CheckInput{},
	"checks":  probe.ChecksFile{},
}

// registerResources registers the schema resources.
func (s *Server) registerResources() {
	s.mcpServer.AddResource(&sdkmcp.Resource{
		URI:         uriScheme + "schema/result",
		Name:        "Check Result Schema",
		Description: "JSON Schema of an xml_check result. Tool output already carries the same fields; fetch this only to validate stored results.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.4,
		},
	}, s.handleResourceSchema)

	s.mcpServer.AddResource(&sdkmcp.Resource{
		URI:         uriScheme + "schema/request",
		Name:        "Check Request Schema",
		Description: "JSON Schema of an xml_check request.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.3,
		},
	}, s.handleResourceSchema)

	s.mcpServer.AddResource(&sdkmcp.Resource{
		URI:         uriScheme + "schema/checks",
		Name:        "Checks File Schema",
		Description: "JSON Schema of a batch checks file (YAML) as read by check-xml --checks.",
		MIMEType:    tools.MimeJSON,
		Annotations: &sdkmcp.Annotations{
			Audience: []sdkmcp.Role{"assistant"},
			Priority: 0.5,
		},
	}, s.handleResourceSchema)
}

func (s *Server) handleResourceSchema(ctx context.Context, req *sdkmcp.ReadResourceRequest) (*sdkmcp.ReadResourceResult, error) {
	params, err := parseResourceURI(req.Params.URI)
	if err != nil {
		return nil, err
	}

	schema, err := reflectSchema(params["name"])
	if err != nil {
		return nil, err
	}
	return toResourceResult(req.Params.URI, schema)
}

// reflectSchema builds the JSON Schema for a named schema resource.
func reflectSchema(name string) (*jsonschema.Schema, error) {
	v, ok := schemaSources[name]
	if !ok {
		return nil, tools.ErrInvalidInput(fmt.Sprintf("unknown schema: %s", name))
	}

	// Tool arguments and results omit empty fields, so nothing is required.
	r := &jsonschema.Reflector{
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
		FieldNameTag:               fieldNameTag(name),
	}
	return r.Reflect(v), nil
}

// fieldNameTag returns the struct tag that names fields in the serialized
// form: checks files are YAML, everything else is JSON.
func fieldNameTag(name string) string {
	if name == "checks" {
		return "yaml"
	}
	return ""
}

// Helper functions

// parseResourceURI extracts parameters from an xmlprobe:// URI.
func parseResourceURI(uri string) (map[string]string, error) {
	if !strings.HasPrefix(uri, uriScheme) {
		return nil, tools.ErrInvalidInput("invalid URI scheme: expected " + uriScheme)
	}

	path := strings.TrimPrefix(uri, uriScheme)
	parts := strings.Split(path, "/")

	if len(parts) == 0 || parts[0] == "" {
		return nil, tools.ErrInvalidInput("empty resource path")
	}

	params := make(map[string]string)
	resourceType := parts[0]

	switch resourceType {
	case "schema":
		if len(parts) < 2 || parts[1] == "" {
			return nil, tools.ErrInvalidInput("schema URI requires a schema name")
		}
		params["name"] = parts[1]

	default:
		return nil, tools.ErrInvalidInput(fmt.Sprintf("unknown resource type: %s", resourceType))
	}

	return params, nil
}

// toResourceResult serializes content to a ReadResourceResult.
func toResourceResult(uri string, content any) (*sdkmcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("serializing resource: %w", err)
	}

	return &sdkmcp.ReadResourceResult{
		Contents: []*sdkmcp.ResourceContents{
			{
				URI:      uri,
				MIMEType: tools.MimeJSON,
				Text:     string(data),
			},
		},
	}, nil
}
