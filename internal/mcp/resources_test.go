package mcp

import (
	"context"
	"encoding/json"
	"testing"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	validator "github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/xmlprobe/internal/mcp/tools"
	"github.com/usestring/xmlprobe/internal/probe"
	"github.com/usestring/xmlprobe/pkg/client"
	"github.com/usestring/xmlprobe/pkg/evaluate"
)

func TestParseResourceURI(t *testing.T) {
	params, err := parseResourceURI("xmlprobe://schema/result")
	require.NoError(t, err)
	assert.Equal(t, "result", params["name"])

	for _, uri := range []string{
		"http://schema/result",
		"xmlprobe://",
		"xmlprobe://schema",
		"xmlprobe://schema/",
		"xmlprobe://entry/1",
	} {
		_, err := parseResourceURI(uri)
		assert.Error(t, err, uri)
	}
}

func TestReflectSchema(t *testing.T) {
	schema, err := reflectSchema("result")
	require.NoError(t, err)

	data, err := json.Marshal(schema)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	props, ok := doc["properties"].(map[string]any)
	require.True(t, ok, "schema has properties: %s", data)
	for _, field := range []string{"check_id", "status", "message", "offending"} {
		assert.Contains(t, props, field)
	}

	checks, err := reflectSchema("checks")
	require.NoError(t, err)
	data, err = json.Marshal(checks)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"defaults"`)
	assert.Contains(t, string(data), `"age_hours"`)

	_, err = reflectSchema("nope")
	assert.Error(t, err)
}

func TestHandleResourceSchema(t *testing.T) {
	s, err := NewServer(&tools.Deps{Probe: probe.New(client.New())}, WithBuiltinTools())
	require.NoError(t, err)

	res, err := s.handleResourceSchema(context.Background(), &sdkmcp.ReadResourceRequest{
		Params: &sdkmcp.ReadResourceParams{URI: "xmlprobe://schema/request"},
	})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	assert.Equal(t, tools.MimeJSON, res.Contents[0].MIMEType)
	assert.Contains(t, res.Contents[0].Text, `"xpath"`)
}

func TestNewServer_RequiresDeps(t *testing.T) {
	_, err := NewServer(nil)
	assert.Error(t, err)

	_, err = NewServer(&tools.Deps{})
	assert.Error(t, err)
}

// compileServed compiles the schema served for name so documents can be
// checked against it.
func compileServed(t *testing.T, name string) *validator.Schema {
	t.Helper()
	schema, err := reflectSchema(name)
	require.NoError(t, err)

	data, err := json.Marshal(schema)
	require.NoError(t, err)
	var doc any
	require.NoError(t, json.Unmarshal(data, &doc))

	c := validator.NewCompiler()
	require.NoError(t, c.AddResource("schema.json", doc))
	compiled, err := c.Compile("schema.json")
	require.NoError(t, err)
	return compiled
}

func TestResultSchema_ValidatesToolOutput(t *testing.T) {
	sch := compileServed(t, "result")

	outputs := []tools.CheckOutput{
		tools.NewCheckOutput(probe.Result{
			CheckID:   "3f2a",
			URL:       "http://status.local/slurm.xml",
			XPath:     "/aris/partition/running_jobs",
			Mode:      probe.ModeThreshold,
			Status:    evaluate.StatusWarning,
			Message:   "/aris/partition/running_jobs: Partition 2 value outside range [0, 50.0]",
			Offending: []int{2},
			Values:    []string{"5", "4", "59"},
		}),
		tools.NewCheckOutput(probe.Result{
			CheckID: "9c1d",
			URL:     "http://status.local/slurm.xml",
			Status:  evaluate.StatusCritical,
			Message: "Unable to fetch xml: dial tcp: connection refused",
			Kind:    evaluate.KindTransportFailure,
		}),
	}

	for _, out := range outputs {
		data, err := json.Marshal(out)
		require.NoError(t, err)
		var v any
		require.NoError(t, json.Unmarshal(data, &v))
		assert.NoError(t, sch.Validate(v), "%s", data)
	}

	assert.Error(t, sch.Validate(map[string]any{"status": 2}), "status must be a string")
}
