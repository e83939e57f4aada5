package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Addr)
	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.Model)
	assert.Equal(t, 30*time.Second, cfg.LLMTimeout)
	assert.Equal(t, 5*time.Minute, cfg.WeatherTTL)
	assert.Equal(t, "http://localhost:3000", cfg.ServerURL)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".sentry"), 0o755))
	file := []byte("addr: \":8080\"\nmodel: from-file\nweather_api_key: filekey\n")
	require.NoError(t, os.WriteFile(filepath.Join(home, ".sentry", "config.yaml"), file, 0o644))

	t.Setenv("SENTRY_MODEL", "from-env")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr, "file value applies")
	assert.Equal(t, "from-env", cfg.Model, "env wins over file")
	assert.Equal(t, "filekey", cfg.WeatherAPIKey)
}

func TestLoadGeminiKeyFallback(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GEMINI_API_KEY", "gk-123")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "gk-123", cfg.APIKey)

	t.Setenv("SENTRY_API_KEY", "sk-456")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "sk-456", cfg.APIKey, "explicit key wins over SDK fallback")
}
