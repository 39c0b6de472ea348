// Package config provides configuration loading from environment variables.
package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults
const (
	DefaultTimeoutMs      = 30000
	DefaultMaxFetchMs     = 120000
	DefaultMaxBodyBytes   = 10 << 20
	DefaultCacheMaxItems  = 64
	DefaultBatchWorkers   = 4
	DefaultUserAgentValue = "xmlprobe/1.0"
)

// Config holds all configuration for the probe binaries.
type Config struct {
	Timeout         time.Duration // PROBE_TIMEOUT_MS, default 30000ms (30s)
	MaxFetchTime    time.Duration // PROBE_MAX_FETCH_MS, default 120000ms; bounds a fetch shared by concurrent checks
	UserAgent       string        // PROBE_USER_AGENT, default "xmlprobe/1.0"
	MaxBodyBytes    int           // PROBE_MAX_BODY_BYTES, default 10 MiB
	CacheMaxItems   int           // PROBE_CACHE_MAX_ITEMS, default 64
	CacheTTL        time.Duration // PROBE_CACHE_TTL_MS, default 0 (cache disabled)
	BatchWorkers    int           // PROBE_BATCH_WORKERS, default 4
	MetricsTextfile string        // PROBE_METRICS_TEXTFILE, default "" (no metrics)

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFormat     string // LOG_FORMAT, "text" or "json", default "text"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
// When PROBE_ENV_FILE names a dotenv file it is loaded first; variables already
// set in the environment win.
func Load() *Config {
	if path := os.Getenv("PROBE_ENV_FILE"); path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("failed to load env file",
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
		}
	}

	return &Config{
		Timeout:         getEnvDurationMs("PROBE_TIMEOUT_MS", DefaultTimeoutMs),
		MaxFetchTime:    getEnvDurationMs("PROBE_MAX_FETCH_MS", DefaultMaxFetchMs),
		UserAgent:       getEnvString("PROBE_USER_AGENT", DefaultUserAgentValue),
		MaxBodyBytes:    getEnvInt("PROBE_MAX_BODY_BYTES", DefaultMaxBodyBytes),
		CacheMaxItems:   getEnvInt("PROBE_CACHE_MAX_ITEMS", DefaultCacheMaxItems),
		CacheTTL:        getEnvDurationMs("PROBE_CACHE_TTL_MS", 0),
		BatchWorkers:    getEnvInt("PROBE_BATCH_WORKERS", DefaultBatchWorkers),
		MetricsTextfile: getEnvString("PROBE_METRICS_TEXTFILE", ""),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFormat:     getEnvString("LOG_FORMAT", "text"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvDurationMs(key string, defaultMs int) time.Duration {
	ms := getEnvInt(key, defaultMs)
	return time.Duration(ms) * time.Millisecond
}
