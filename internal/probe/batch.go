package probe

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/usestring/xmlprobe/pkg/evaluate"
)

// ChecksFile is the YAML layout of a batch of checks. Defaults fill in url,
// timeout and time_format for checks that leave them empty.
//
//	defaults:
//	  url: https://status.example.org/slurm.xml
//	  timeout: 20s
//	checks:
//	  - name: partitions-up
//	    xpath: /aris/partition/state_up
//	    ok: up
//	  - name: running-jobs
//	    xpath: /aris/partition/running_jobs
//	    warning: "50"
//	    critical: "100"
type ChecksFile struct {
	Defaults Request   `yaml:"defaults"`
	Checks   []Request `yaml:"checks"`
}

// LoadChecks decodes a checks file and applies its defaults.
func LoadChecks(r io.Reader) ([]Request, error) {
	var f ChecksFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("checks file is empty")
		}
		return nil, fmt.Errorf("decoding checks file: %w", err)
	}
	if len(f.Checks) == 0 {
		return nil, fmt.Errorf("checks file defines no checks")
	}

	seen := make(map[string]bool, len(f.Checks))
	reqs := make([]Request, len(f.Checks))
	for i, c := range f.Checks {
		if c.Name == "" {
			c.Name = fmt.Sprintf("check-%d", i+1)
		}
		if seen[c.Name] {
			return nil, fmt.Errorf("duplicate check name %q", c.Name)
		}
		seen[c.Name] = true

		if c.URL == "" {
			c.URL = f.Defaults.URL
		}
		if c.Timeout == 0 {
			c.Timeout = f.Defaults.Timeout
		}
		if c.TimeFormat == "" {
			c.TimeFormat = f.Defaults.TimeFormat
		}
		reqs[i] = c
	}
	return reqs, nil
}

// BatchResult aggregates several checks. Status is the worst of the results.
type BatchResult struct {
	Status     evaluate.Status
	Results    []Result
	DurationMs int64
}

// Summary renders a one-line description of the batch.
func (b BatchResult) Summary() string {
	var failing []string
	for _, r := range b.Results {
		if r.Status != evaluate.StatusOK {
			failing = append(failing, fmt.Sprintf("%s %s", r.Name, r.Status))
		}
	}
	if len(failing) == 0 {
		return fmt.Sprintf("All %d checks OK", len(b.Results))
	}
	return fmt.Sprintf("%d of %d checks not OK: %s", len(failing), len(b.Results), strings.Join(failing, ", "))
}

// RunBatch runs reqs with at most workers checks in flight. Results keep the
// order of reqs.
func (p *Probe) RunBatch(ctx context.Context, reqs []Request, workers int) BatchResult {
	start := time.Now()
	results := make([]Result, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, req := range reqs {
		g.Go(func() error {
			results[i] = p.Check(gctx, req)
			return nil
		})
	}
	_ = g.Wait() // checks never return errors

	status := evaluate.StatusOK
	for _, r := range results {
		status = evaluate.Worse(status, r.Status)
	}
	return BatchResult{
		Status:     status,
		Results:    results,
		DurationMs: time.Since(start).Milliseconds(),
	}
}
