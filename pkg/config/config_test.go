package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "development", c.Environment)
	assert.Equal(t, 8000, c.Server.Port)
	assert.Equal(t, 15*time.Second, c.Server.ReadTimeout)
	assert.Equal(t, "memory", c.Cache.Backend)
	assert.Equal(t, "KR", c.Storage.DefaultRegion)
	assert.Equal(t, 29, c.Scheduler.DigestTerm)
	assert.NoError(t, c.Validate())
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
environment: production
server:
  port: 9090
cache:
  backend: redis
  redis:
    host: cache.internal
`)
	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "production", c.Environment)
	assert.Equal(t, 9090, c.Server.Port)
	assert.Equal(t, 30*time.Second, c.Server.WriteTimeout, "unset keys keep their defaults")
	assert.Equal(t, "cache.internal", c.Cache.Redis.Host)
	assert.Equal(t, 6379, c.Cache.Redis.Port)
}

func TestLoadRejectsInvalid(t *testing.T) {
	path := writeConfig(t, `
cache:
  backend: memcached
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cache.backend")
}

func TestLoadWithEnvFallsBackToDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("PORT", "7070")
	t.Setenv("WATCH_SYMBOLS", "005930,AAPL")

	c, err := LoadWithEnv(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 7070, c.Server.Port)
	assert.Equal(t, []string{"005930", "AAPL"}, c.Scheduler.WatchSymbols)
}

func TestValidateTelegramRequiresCredentials(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	c.Telegram.Enabled = true
	assert.Error(t, c.Validate())

	c.Telegram.BotToken = "token"
	c.Telegram.ChatID = 42
	assert.NoError(t, c.Validate())
}
