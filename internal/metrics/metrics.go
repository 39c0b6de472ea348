// Package metrics exports check outcomes as Prometheus gauges, written to a
// node-exporter textfile after each run.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/usestring/xmlprobe/internal/probe"
)

// Metrics bundles the gauges describing the last run of each check.
type Metrics struct {
	registry *prometheus.Registry

	CheckStatus    *prometheus.GaugeVec
	CheckDuration  *prometheus.GaugeVec
	OffendingNodes *prometheus.GaugeVec
}

var labels = []string{"name", "url", "xpath"}

// New creates the gauges and registers them with registry.
func New(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		registry: registry,
		CheckStatus: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "xmlprobe_check_status",
			Help: "Status of the last check run: 0 OK, 1 WARNING, 2 CRITICAL, 3 UNKNOWN.",
		}, labels),
		CheckDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "xmlprobe_check_duration_seconds",
			Help: "Duration of the last check run in seconds.",
		}, labels),
		OffendingNodes: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "xmlprobe_check_offending_nodes",
			Help: "Number of nodes whose value failed the last check run.",
		}, labels),
	}

	registry.MustRegister(
		m.CheckStatus,
		m.CheckDuration,
		m.OffendingNodes,
	)

	return m
}

// Observe records res.
func (m *Metrics) Observe(res probe.Result) {
	lv := []string{res.Name, res.URL, res.XPath}
	m.CheckStatus.WithLabelValues(lv...).Set(float64(res.Status))
	m.CheckDuration.WithLabelValues(lv...).Set(float64(res.DurationMs) / 1000)
	m.OffendingNodes.WithLabelValues(lv...).Set(float64(len(res.Offending)))
}

// ObserveBatch records every result of b.
func (m *Metrics) ObserveBatch(b probe.BatchResult) {
	for _, res := range b.Results {
		m.Observe(res)
	}
}

// WriteTextfile writes the registry to path in the text exposition format.
// The file is replaced atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("writing metrics textfile: %w", err)
	}
	return nil
}
