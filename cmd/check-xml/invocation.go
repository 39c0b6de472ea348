package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/usestring/xmlprobe/internal/config"
	"github.com/usestring/xmlprobe/internal/probe"
	"github.com/usestring/xmlprobe/pkg/evaluate"
)

const usageHeader = "Probe that checks the value of elements in given xml using XPath"

// invocation is a parsed command line.
type invocation struct {
	Request         probe.Request
	ChecksFile      string
	MetricsTextfile string
	Workers         int
}

// errHelp is returned when -h or --help was given.
var errHelp = errors.New("help requested")

// parseInvocation parses args. Defaults not given on the command line come
// from cfg. Usage text for --help is written to usage.
func parseInvocation(args []string, cfg *config.Config, usage io.Writer) (invocation, error) {
	fs := flag.NewFlagSet("check-xml", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var inv invocation
	var timeoutSec float64

	stringFlag(fs, &inv.Request.URL, "", "url with XML", "u", "url")
	floatFlag(fs, &timeoutSec, cfg.Timeout.Seconds(), "timeout in seconds", "t", "timeout")
	stringFlag(fs, &inv.Request.XPath, "", "XPath of the required child node(s)", "x", "xpath")
	stringFlag(fs, &inv.Request.OK, "", "value to result in OK status; other values result in WARNING or CRITICAL", "ok")
	stringFlag(fs, &inv.Request.Warning, "", "warning threshold range", "w", "warning")
	stringFlag(fs, &inv.Request.Critical, "", "critical threshold range", "c", "critical")
	floatFlag(fs, &inv.Request.AgeHours, 0, "maximum age in hours of timestamp node values", "age")
	stringFlag(fs, &inv.Request.TimeFormat, evaluate.TimeFormatUnix, "strftime format of timestamp node values, or UNIX", "time-format")
	stringFlag(fs, &inv.ChecksFile, "", "YAML file with a batch of checks; replaces the single check flags", "checks")
	stringFlag(fs, &inv.MetricsTextfile, cfg.MetricsTextfile, "write Prometheus metrics for the run to this textfile", "metrics-textfile")
	fs.IntVar(&inv.Workers, "workers", cfg.BatchWorkers, "checks run concurrently in batch mode")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(fs, usage)
			return invocation{}, errHelp
		}
		return invocation{}, err
	}
	if fs.NArg() != 0 {
		return invocation{}, fmt.Errorf("unexpected positional arguments: %q", strings.Join(fs.Args(), " "))
	}
	if timeoutSec <= 0 {
		return invocation{}, fmt.Errorf("timeout must be positive, got %v", timeoutSec)
	}
	inv.Request.Timeout = time.Duration(timeoutSec * float64(time.Second))

	if inv.ChecksFile == "" && inv.Request.URL == "" {
		return invocation{}, fmt.Errorf("--url is required")
	}
	return inv, nil
}

func stringFlag(fs *flag.FlagSet, p *string, value, usage string, names ...string) {
	for _, name := range names {
		fs.StringVar(p, name, value, usage)
	}
}

func floatFlag(fs *flag.FlagSet, p *float64, value float64, usage string, names ...string) {
	for _, name := range names {
		fs.Float64Var(p, name, value, usage)
	}
}

func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, "%s\n\nUsage of check-xml:\n", usageHeader)
	fs.SetOutput(w)
	fs.PrintDefaults()
}
