// Package prompts contains MCP prompt implementations for xmlprobe.
package prompts

import "time"

// Config holds configuration needed by prompts.
type Config struct {
	DefaultTimeout time.Duration
	BatchWorkers   int
}
