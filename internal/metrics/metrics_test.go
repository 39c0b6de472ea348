package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/xmlprobe/internal/probe"
	"github.com/usestring/xmlprobe/pkg/evaluate"
)

func TestObserve(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.Observe(probe.Result{
		Name:       "jobs",
		URL:        "http://status.local/slurm.xml",
		XPath:      "/aris/partition/running_jobs",
		Status:     evaluate.StatusWarning,
		Offending:  []int{2, 3},
		DurationMs: 250,
	})

	lv := []string{"jobs", "http://status.local/slurm.xml", "/aris/partition/running_jobs"}
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CheckStatus.WithLabelValues(lv...)))
	assert.Equal(t, 0.25, testutil.ToFloat64(m.CheckDuration.WithLabelValues(lv...)))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.OffendingNodes.WithLabelValues(lv...)))
}

func TestWriteTextfile(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.ObserveBatch(probe.BatchResult{Results: []probe.Result{
		{Name: "up", URL: "http://mock", XPath: "/a", Status: evaluate.StatusOK},
		{Name: "age", URL: "http://mock", XPath: "/b", Status: evaluate.StatusCritical},
	}})

	path := filepath.Join(t.TempDir(), "xmlprobe.prom")
	require.NoError(t, m.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, "# TYPE xmlprobe_check_status gauge")
	assert.Contains(t, text, `xmlprobe_check_status{name="age",url="http://mock",xpath="/b"} 2`)
	assert.Contains(t, text, `xmlprobe_check_status{name="up",url="http://mock",xpath="/a"} 0`)
}

func TestWriteTextfile_MissingDir(t *testing.T) {
	m := New(prometheus.NewRegistry())
	err := m.WriteTextfile(filepath.Join(t.TempDir(), "missing", "x.prom"))
	assert.Error(t, err)
}
