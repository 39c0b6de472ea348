package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/xmlprobe/internal/config"
)

const slurmXML = `<aris>
	<partition><running_jobs>5</running_jobs><state_up>up</state_up></partition>
	<partition><running_jobs>4</running_jobs><state_up>up</state_up></partition>
	<partition><running_jobs>59</running_jobs><state_up>up</state_up></partition>
	<partition><running_jobs>15</running_jobs><state_up>up</state_up></partition>
</aris>`

func testConfig() *config.Config {
	return &config.Config{
		Timeout:      30 * time.Second,
		UserAgent:    "check-xml-test",
		MaxBodyBytes: 1 << 20,
		BatchWorkers: 2,
		LogLevel:     "error",
	}
}

func newSlurmServer(t *testing.T) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/xml")
		_, _ = w.Write([]byte(slurmXML))
	}))
	t.Cleanup(srv.Close)
	return srv.URL
}

func runCLI(t *testing.T, args ...string) (string, int) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr, testConfig())
	return stdout.String(), code
}

func TestRun_SingleCheck(t *testing.T) {
	url := newSlurmServer(t)

	tests := []struct {
		name string
		args []string
		out  string
		code int
	}{
		{
			name: "equality ok",
			args: []string{"-u", url, "-t", "5", "-x", "/aris/partition/state_up", "--ok", "up"},
			out:  "OK - All the node(s) values equal to 'up'\n",
			code: 0,
		},
		{
			name: "warning threshold",
			args: []string{"--url", url, "--xpath", "/aris/partition/running_jobs", "-w", "50", "-c", "100"},
			out:  "WARNING - /aris/partition/running_jobs: Partition 2 value outside range [0, 50.0]\n",
			code: 1,
		},
		{
			name: "critical threshold",
			args: []string{"-u", url, "-x", "/aris/partition/running_jobs", "-w", "5", "-c", "10:"},
			out:  "CRITICAL - /aris/partition/running_jobs: Partitions 0, 1 values outside range [10.0, Inf]\n",
			code: 2,
		},
		{
			name: "missing node",
			args: []string{"-u", url, "-x", "/aris/partition/nonexisting"},
			out:  "CRITICAL - Unable to find element with XPath /aris/partition/nonexisting\n",
			code: 2,
		},
		{
			name: "conflicting modes",
			args: []string{"-u", url, "-x", "/aris/partition/state_up", "--ok", "up", "--age", "2"},
			out:  "UNKNOWN - Options for equal and age checks cannot be combined\n",
			code: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, code := runCLI(t, tt.args...)
			assert.Equal(t, tt.out, out)
			assert.Equal(t, tt.code, code)
		})
	}
}

func TestRun_InvocationErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"no url", []string{"-x", "/a"}, "UNKNOWN - --url is required\n"},
		{"bad timeout", []string{"-u", "http://x", "-t", "0"}, "UNKNOWN - timeout must be positive, got 0\n"},
		{"unknown flag", []string{"-u", "http://x", "--bogus"}, "UNKNOWN - flag provided but not defined: -bogus\n"},
		{"positional", []string{"-u", "http://x", "extra"}, "UNKNOWN - unexpected positional arguments: \"extra\"\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, code := runCLI(t, tt.args...)
			assert.Equal(t, tt.want, out)
			assert.Equal(t, 3, code)
		})
	}
}

func TestRun_Help(t *testing.T) {
	out, code := runCLI(t, "--help")
	assert.Equal(t, 3, code)
	assert.Contains(t, out, usageHeader)
	assert.Contains(t, out, "-xpath")
}

func TestRun_Batch(t *testing.T) {
	url := newSlurmServer(t)
	dir := t.TempDir()

	checks := filepath.Join(dir, "checks.yaml")
	require.NoError(t, os.WriteFile(checks, []byte(`
checks:
  - name: up
    xpath: /aris/partition/state_up
    ok: up
  - name: jobs
    xpath: /aris/partition/running_jobs
    critical: "50"
`), 0o644))
	textfile := filepath.Join(dir, "xmlprobe.prom")

	out, code := runCLI(t, "-u", url, "--checks", checks, "--metrics-textfile", textfile)
	assert.Equal(t, 2, code)
	assert.Equal(t,
		"CRITICAL - 1 of 2 checks not OK: jobs CRITICAL\n"+
			"[up] OK - All the node(s) values equal to 'up'\n"+
			"[jobs] CRITICAL - /aris/partition/running_jobs: Partition 2 value outside range [0, 50.0]\n",
		out)

	data, err := os.ReadFile(textfile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `xmlprobe_check_status{name="jobs"`)
}

func TestRun_BatchMissingFile(t *testing.T) {
	out, code := runCLI(t, "--checks", filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Equal(t, 3, code)
	assert.Contains(t, out, "UNKNOWN - opening checks file: ")
}
