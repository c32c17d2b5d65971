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
	t.Setenv("PORT", "")
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "peds-aftercare", cfg.AppName)
	assert.True(t, cfg.NotifyConsole)
	assert.Equal(t, 5*time.Second, cfg.NotifyTimeout)
	assert.Empty(t, cfg.APIToken)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("API_TOKEN", "secret")
	t.Setenv("NOTIFY_CONSOLE", "false")
	t.Setenv("NOTIFY_WEBHOOK_URL", "https://hooks.example.org/alarms")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, "secret", cfg.APIToken)
	assert.False(t, cfg.NotifyConsole)
	assert.Equal(t, "https://hooks.example.org/alarms", cfg.NotifyWebhookURL)
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	body := "log_level: debug\nnotify_timeout: 2s\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "aftercare.yaml"), []byte(body), 0o600))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.NotifyTimeout)
}

func TestLoad_RejectsBadWebhookURL(t *testing.T) {
	t.Setenv("NOTIFY_WEBHOOK_URL", "ftp://nope")

	_, err := Load(t.TempDir())
	require.Error(t, err)
}
