package config

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("RATE_LIMIT", "")
	t.Setenv("CATALOG_MODE", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, 20, cfg.CatalogPageSize)
	assert.Equal(t, CatalogLocal, cfg.CatalogMode)
	assert.Equal(t, RateLimitConfig{Requests: 20, Interval: time.Second}, cfg.RateLimit)
	assert.Equal(t, time.Minute, cfg.CacheTTL)
	assert.Equal(t, 5*time.Minute, cfg.ReloadInterval)
}

func TestLoadEnvFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(file, []byte("COUNTRY=de\nCATALOG_PAGE_SIZE=12\n"), 0o600))
	t.Setenv("COUNTRY", "")
	t.Setenv("CATALOG_PAGE_SIZE", "")
	// godotenv does not override variables that are already set
	require.NoError(t, os.Unsetenv("COUNTRY"))
	require.NoError(t, os.Unsetenv("CATALOG_PAGE_SIZE"))

	cfg, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "de", cfg.Country)
	assert.Equal(t, 12, cfg.CatalogPageSize)
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("CACHE_TTL", "soon")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestLoadCatalogMode(t *testing.T) {
	t.Setenv("CATALOG_MODE", "Remote")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, CatalogRemote, cfg.CatalogMode)

	t.Setenv("CATALOG_MODE", "hybrid")
	_, err = Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}

func TestParseRateLimit(t *testing.T) {
	cfg, err := parseRateLimit("5/min")
	require.NoError(t, err)
	assert.Equal(t, RateLimitConfig{Requests: 5, Interval: time.Minute}, cfg)

	cfg, err = parseRateLimit("off")
	require.NoError(t, err)
	assert.Zero(t, cfg.Requests)

	for _, bad := range []string{"bad-format", "0/s", "5/fortnight"} {
		_, err = parseRateLimit(bad)
		assert.Error(t, err, bad)
	}
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{LogLevel: "warn", LogFormat: "json"}
	logger := cfg.NewLogger(&buf)
	logger.Info("hidden")
	logger.Warn("shown", "listings", 3)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"listings":3`)

	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}
