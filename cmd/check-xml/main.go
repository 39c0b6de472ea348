// Command check-xml is a monitoring plugin that fetches an XML document and
// checks the values of the nodes an XPath selects.
//
// It prints one status line and exits 0 (OK), 1 (WARNING), 2 (CRITICAL) or
// 3 (UNKNOWN).
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/usestring/xmlprobe/internal/config"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr, config.Load())
	cancel()
	os.Exit(code)
}
