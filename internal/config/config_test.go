package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 2*time.Minute, cfg.MaxFetchTime)
	assert.Equal(t, DefaultUserAgentValue, cfg.UserAgent)
	assert.Equal(t, DefaultMaxBodyBytes, cfg.MaxBodyBytes)
	assert.Equal(t, time.Duration(0), cfg.CacheTTL)
	assert.Equal(t, DefaultBatchWorkers, cfg.BatchWorkers)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.LogCompress)
}

func TestLoad_Env(t *testing.T) {
	t.Setenv("PROBE_TIMEOUT_MS", "1500")
	t.Setenv("PROBE_CACHE_TTL_MS", "60000")
	t.Setenv("PROBE_BATCH_WORKERS", "not-a-number")
	t.Setenv("LOG_COMPRESS", "off")

	cfg := Load()

	assert.Equal(t, 1500*time.Millisecond, cfg.Timeout)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, DefaultBatchWorkers, cfg.BatchWorkers)
	assert.False(t, cfg.LogCompress)
}

func TestLoad_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "probe.env")
	require.NoError(t, os.WriteFile(path, []byte("PROBE_USER_AGENT=from-file\nLOG_LEVEL=debug\n"), 0o600))

	t.Setenv("PROBE_ENV_FILE", path)
	t.Setenv("LOG_LEVEL", "warn")
	// godotenv sets variables directly; register it so the test restores it
	t.Setenv("PROBE_USER_AGENT", "")
	require.NoError(t, os.Unsetenv("PROBE_USER_AGENT"))

	cfg := Load()

	assert.Equal(t, "from-file", cfg.UserAgent)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoad_MissingEnvFile(t *testing.T) {
	t.Setenv("PROBE_ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))

	cfg := Load()
	assert.Equal(t, DefaultUserAgentValue, cfg.UserAgent)
}
