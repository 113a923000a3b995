package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  read_timeout: 10s
  write_timeout: 60s

gemini:
  default_model: gemini-flash-latest
  fallbacks:
    gemini-3-pro-preview: gemini-3-flash-preview
    gemini-3-flash-preview: gemini-2.0-flash

retry:
  max_attempts: 3
  base_delay: 1500ms

logger:
  url: https://example.com/exec
  auth_token: token
  app_name: 6min
  queue_size: 32

redis:
  addr: localhost:6379
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "gemini-flash-latest", cfg.Gemini.DefaultModel)
	assert.Equal(t, "gemini-2.0-flash", cfg.Gemini.Fallbacks["gemini-3-flash-preview"])
	assert.Equal(t, 3, cfg.Retry.MaxAttempts)
	assert.Equal(t, 1500*time.Millisecond, cfg.Retry.BaseDelay)
	assert.Equal(t, "https://example.com/exec", cfg.Logger.URL)
	assert.Equal(t, 32, cfg.Logger.QueueSize)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
gemini:
  default_model: gemini-flash-latest
`)

	t.Setenv("ROKUFUN_SERVER_PORT", "3000")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoadRejectsSelfFallback(t *testing.T) {
	path := writeConfig(t, `
gemini:
  default_model: gemini-flash-latest
  fallbacks:
    gemini-2.0-flash: gemini-2.0-flash
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "falls back to itself")
}

func TestLoadRequiresDefaultModel(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 8080
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default_model")
}
