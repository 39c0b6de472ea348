package tools

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/xmlprobe/internal/config"
	"github.com/usestring/xmlprobe/internal/probe"
	"github.com/usestring/xmlprobe/pkg/client"
)

const statusXML = `<aris>
	<partition><running_jobs>5</running_jobs><state_up>up</state_up></partition>
	<partition><running_jobs>59</running_jobs><state_up>down</state_up></partition>
	<partition><running_jobs>3</running_jobs><state_up>up</state_up></partition>
</aris>`

func newTestDeps(t *testing.T) (*Deps, string) {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/status.xml" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/xml")
		_, _ = w.Write([]byte(statusXML))
	}))
	t.Cleanup(srv.Close)

	c := client.New(client.WithHTTPClient(srv.Client()))
	return &Deps{
		Client: c,
		Probe:  probe.New(c),
		Config: &config.Config{Timeout: 5 * time.Second},
	}, srv.URL
}

func TestToolCheck(t *testing.T) {
	d, base := newTestDeps(t)
	handler := ToolCheck(d)

	tests := []struct {
		name    string
		input   CheckInput
		status  string
		code    int
		message string
	}{
		{
			name:    "well-formed",
			input:   CheckInput{URL: base + "/status.xml"},
			status:  "OK",
			message: "XML document is well-formed",
		},
		{
			name:    "equality warning",
			input:   CheckInput{URL: base + "/status.xml", XPath: "/aris/partition/state_up", OK: "up"},
			status:  "WARNING",
			code:    1,
			message: "/aris/partition/state_up: Not all nodes' values equal to 'up'",
		},
		{
			name:    "critical threshold",
			input:   CheckInput{URL: base + "/status.xml", XPath: "/aris/partition/running_jobs", Critical: "50"},
			status:  "CRITICAL",
			code:    2,
			message: "/aris/partition/running_jobs: Partition 1 value outside range [0, 50.0]",
		},
		{
			name:    "conflicting modes",
			input:   CheckInput{URL: base + "/status.xml", XPath: "/aris/partition/running_jobs", OK: "5", Critical: "50"},
			status:  "UNKNOWN",
			code:    3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, out, err := handler(context.Background(), nil, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.status, out.Status)
			assert.Equal(t, tt.code, out.ExitCode)
			assert.NotEmpty(t, out.CheckID)
			if tt.message != "" {
				assert.Equal(t, tt.message, out.Message)
				assert.Equal(t, tt.status+" - "+tt.message, out.Line)
			}
		})
	}
}

func TestToolCheck_MissingURL(t *testing.T) {
	d, _ := newTestDeps(t)

	_, _, err := ToolCheck(d)(context.Background(), nil, CheckInput{XPath: "/a"})
	var coded *CodedError
	require.True(t, errors.As(err, &coded))
	assert.Equal(t, ErrCodeInvalidInput, coded.Code)
}

func TestToolExtract(t *testing.T) {
	d, base := newTestDeps(t)
	handler := ToolExtract(d)

	_, out, err := handler(context.Background(), nil, ExtractInput{URL: base + "/status.xml", XPath: "/aris/partition/running_jobs"})
	require.NoError(t, err)
	assert.Equal(t, []string{"5", "59", "3"}, out.Values)
	assert.Equal(t, 3, out.Count)
	assert.True(t, out.Defined)
	assert.Equal(t, "xml", out.ContentCategory)

	_, out, err = handler(context.Background(), nil, ExtractInput{URL: base + "/status.xml", XPath: "/aris/partition/running_jobs", MaxValues: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"5", "59"}, out.Values)
	assert.Equal(t, 3, out.Count)
	assert.True(t, out.Truncated)
}

func TestToolExtract_Errors(t *testing.T) {
	d, base := newTestDeps(t)
	handler := ToolExtract(d)

	tests := []struct {
		name  string
		input ExtractInput
		code  string
	}{
		{"missing xpath", ExtractInput{URL: base + "/status.xml"}, ErrCodeInvalidInput},
		{"no match", ExtractInput{URL: base + "/status.xml", XPath: "/aris/missing"}, ErrCodeNotFound},
		{"bad xpath", ExtractInput{URL: base + "/status.xml", XPath: "/aris/["}, ErrCodeInvalidInput},
		{"http 404", ExtractInput{URL: base + "/gone.xml", XPath: "/aris"}, ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := handler(context.Background(), nil, tt.input)
			var coded *CodedError
			require.True(t, errors.As(err, &coded), "got %v", err)
			assert.Equal(t, tt.code, coded.Code)
		})
	}
}

func TestOutputSchemas(t *testing.T) {
	assert.NotPanics(t, func() {
		CheckOutputSchema[CheckOutput]("xml_check")
		CheckOutputSchema[ExtractOutput]("xml_extract")
	})
}

func TestToolOutline(t *testing.T) {
	d, base := newTestDeps(t)

	_, out, err := ToolOutline(d)(context.Background(), nil, OutlineInput{URL: base + "/status.xml"})
	require.NoError(t, err)
	require.Len(t, out.Paths, 4)
	assert.Equal(t, "/aris/partition/running_jobs", out.Paths[2].XPath)
	assert.Equal(t, 3, out.Paths[2].Count)
	assert.Equal(t, "5", out.Paths[2].Sample)
	assert.Equal(t, 3, out.MaxDepth)

	_, _, err = ToolOutline(d)(context.Background(), nil, OutlineInput{})
	var coded *CodedError
	require.True(t, errors.As(err, &coded))
	assert.Equal(t, ErrCodeInvalidInput, coded.Code)
}
