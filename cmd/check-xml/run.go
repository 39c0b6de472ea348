package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/usestring/xmlprobe/internal/cache"
	"github.com/usestring/xmlprobe/internal/config"
	"github.com/usestring/xmlprobe/internal/logging"
	"github.com/usestring/xmlprobe/internal/metrics"
	"github.com/usestring/xmlprobe/internal/probe"
	"github.com/usestring/xmlprobe/internal/report"
	"github.com/usestring/xmlprobe/pkg/client"
	"github.com/usestring/xmlprobe/pkg/evaluate"
)

// run executes one plugin invocation and returns the exit code. The status
// line goes to stdout; logs go to stderr or LOG_FILE.
func run(ctx context.Context, args []string, stdout, stderr io.Writer, cfg *config.Config) int {
	inv, err := parseInvocation(args, cfg, stdout)
	if errors.Is(err, errHelp) {
		return evaluate.StatusUnknown.ExitCode()
	}
	if err != nil {
		return fail(stdout, err)
	}

	closeLog, err := setupLogging(cfg, stderr)
	if err != nil {
		return fail(stdout, fmt.Errorf("setting up logging: %w", err))
	}
	defer closeLog()

	p, err := newProbe(cfg)
	if err != nil {
		return fail(stdout, err)
	}

	var m *metrics.Metrics
	if inv.MetricsTextfile != "" {
		m = metrics.New(prometheus.NewRegistry())
	}

	var r *report.Reporter
	if inv.ChecksFile != "" {
		reqs, err := loadChecks(inv.ChecksFile, inv.Request)
		if err != nil {
			return fail(stdout, err)
		}
		b := p.RunBatch(ctx, reqs, inv.Workers)
		r = report.FromBatch(b)
		if m != nil {
			m.ObserveBatch(b)
		}
	} else {
		req := inv.Request
		req.Name = "check_xml"
		res := p.Check(ctx, req)
		r = report.FromResult(res)
		if m != nil {
			m.Observe(res)
		}
	}

	if m != nil {
		if err := m.WriteTextfile(inv.MetricsTextfile); err != nil {
			slog.Warn("failed to write metrics", slog.String("error", err.Error()))
		}
	}

	if _, err := r.WriteTo(stdout); err != nil {
		slog.Error("failed to write status", slog.String("error", err.Error()))
	}
	return r.ExitCode()
}

// fail reports an invocation problem as UNKNOWN.
func fail(stdout io.Writer, err error) int {
	r := report.New()
	r.Unknown(err.Error())
	_, _ = r.WriteTo(stdout)
	return r.ExitCode()
}

func setupLogging(cfg *config.Config, stderr io.Writer) (func() error, error) {
	logCfg := logging.Config{
		Level:      cfg.LogLevel,
		Format:     cfg.LogFormat,
		FilePath:   cfg.LogFile,
		MaxSizeMB:  cfg.LogMaxSizeMB,
		MaxBackups: cfg.LogMaxBackups,
		MaxAgeDays: cfg.LogMaxAgeDays,
		Compress:   cfg.LogCompress,
	}
	if logCfg.FilePath != "" {
		return logging.Setup(logCfg)
	}
	slog.SetDefault(logging.New(stderr, logCfg))
	return func() error { return nil }, nil
}

func newProbe(cfg *config.Config) (*probe.Probe, error) {
	c := client.New(
		client.WithUserAgent(cfg.UserAgent),
		client.WithMaxBodyBytes(int64(cfg.MaxBodyBytes)),
	)

	opts := []probe.Option{probe.WithMaxFetchTime(cfg.MaxFetchTime)}
	if cfg.CacheTTL > 0 {
		dc, err := cache.NewDocumentCache(cfg.CacheMaxItems, cfg.CacheTTL)
		if err != nil {
			return nil, err
		}
		opts = append(opts, probe.WithCache(dc))
	}
	return probe.New(c, opts...), nil
}

// loadChecks reads a checks file. Checks without a timeout or time format
// take the ones given on the command line.
func loadChecks(path string, flags probe.Request) ([]probe.Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening checks file: %w", err)
	}
	defer f.Close()

	reqs, err := probe.LoadChecks(f)
	if err != nil {
		return nil, err
	}
	for i := range reqs {
		if reqs[i].Timeout == 0 {
			reqs[i].Timeout = flags.Timeout
		}
		if reqs[i].TimeFormat == "" {
			reqs[i].TimeFormat = flags.TimeFormat
		}
		if reqs[i].URL == "" {
			reqs[i].URL = flags.URL
		}
	}
	return reqs, nil
}
