package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnv_Defaults(t *testing.T) {
	t.Setenv("SERVER_URL", "http://localhost:5000/")
	t.Setenv("HTTP_TIMEOUT", "")
	t.Setenv("SCAN_FRAMES_DIR", "")

	cfg := LoadEnv()

	assert.Equal(t, "http://localhost:5000", cfg.Server.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Server.HTTPTimeout)
	assert.Equal(t, "static", cfg.Catalog.Source)
	assert.Nil(t, cfg.Scan.FramesDir)
}

func TestLoadEnv_Overrides(t *testing.T) {
	t.Setenv("HTTP_TIMEOUT", "3")
	t.Setenv("CATALOG_SOURCE", "sqlite")
	t.Setenv("SCAN_FRAMES_DIR", "/tmp/a,/tmp/b")
	t.Setenv("LOGGER_DISABLE_CALLER", "true")

	cfg := LoadEnv()

	assert.Equal(t, 3*time.Second, cfg.Server.HTTPTimeout)
	assert.Equal(t, "sqlite", cfg.Catalog.Source)
	assert.Equal(t, []string{"/tmp/a", "/tmp/b"}, cfg.Scan.FramesDir)
	assert.True(t, cfg.Logger.DisableCaller)
}

func TestGetEnvDuration_ParsesUnits(t *testing.T) {
	t.Setenv("X_TIMEOUT", "1500ms")
	assert.Equal(t, 1500*time.Millisecond, getEnvDuration("X_TIMEOUT", time.Second))

	t.Setenv("X_TIMEOUT", "bogus")
	assert.Equal(t, time.Second, getEnvDuration("X_TIMEOUT", time.Second))
}
