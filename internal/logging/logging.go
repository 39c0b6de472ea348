// Package logging provides structured logging with file rotation.
//
// Probe output owns stdout, so log records only ever go to stderr or a file.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Config holds logging configuration.
type Config struct {
	Level      string // Log level: debug, info, warn, error
	Format     string // Record format: text or json
	FilePath   string // Path to log file (empty = stderr only)
	MaxSizeMB  int    // Max size in MB before rotation
	MaxBackups int    // Max number of old log files to retain
	MaxAgeDays int    // Max age in days to retain old log files
	Compress   bool   // Whether to compress rotated files
}

// DefaultConfig returns sensible defaults for logging.
func DefaultConfig() Config {
	return Config{
		Level:      "info",
		Format:     "text",
		MaxSizeMB:  10,
		MaxBackups: 5,
		MaxAgeDays: 28,
		Compress:   true,
	}
}

// Setup installs the default slog logger for cfg and returns a function that
// releases its output.
func Setup(cfg Config) (func() error, error) {
	w, closeFn, err := output(cfg)
	if err != nil {
		return nil, err
	}
	slog.SetDefault(New(w, cfg))
	return closeFn, nil
}

// output picks stderr, or a lumberjack-rotated file when cfg.FilePath is set.
func output(cfg Config) (io.Writer, func() error, error) {
	if cfg.FilePath == "" {
		return os.Stderr, func() error { return nil }, nil
	}
	if err := os.MkdirAll(filepath.Dir(cfg.FilePath), 0o755); err != nil {
		return nil, nil, fmt.Errorf("creating log directory: %w", err)
	}
	rotator := &lumberjack.Logger{
		Filename:   cfg.FilePath,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}
	return rotator, rotator.Close, nil
}

// New builds a logger writing to w with cfg's level and format.
func New(w io.Writer, cfg Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: ParseLevel(cfg.Level),
	}

	var handler slog.Handler
	if strings.EqualFold(cfg.Format, "json") {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// ParseLevel maps a level name to a slog level. Unknown names yield info.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
