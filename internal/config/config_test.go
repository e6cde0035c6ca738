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
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "sqlite", c.Storage.Driver)
	assert.Equal(t, "127.0.0.1:8080", c.HTTP.Addr)
	assert.False(t, c.HTTP.Exports)
	assert.True(t, c.Metrics.Enabled)
	assert.Equal(t, "fs", c.Transfer.Driver)
	assert.Equal(t, 30, c.Telegram.TimeoutSec)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := writeConfig(t, `
app:
  env: dev
  timezone: UTC
storage:
  driver: memory
telegram:
  token: abc
  admin_chat_id: 42
transfer:
  driver: s3
  s3:
    bucket: hornet
    path_style: true
`)
	t.Setenv("HORNET_HTTP_ADDR", ":9090")
	t.Setenv("HORNET_HTTP_EXPORTS", "true")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dev", c.App.Env)
	assert.Equal(t, "memory", c.Storage.Driver)
	assert.Equal(t, int64(42), c.Telegram.AdminChatID)
	assert.Equal(t, ":9090", c.HTTP.Addr)
	assert.True(t, c.HTTP.Exports)
	assert.Equal(t, "hornet", c.Transfer.S3.Bucket)
	assert.True(t, c.Transfer.S3.PathStyle)
	assert.Equal(t, time.UTC, c.Location())
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"unknown driver":  "storage:\n  driver: mongo\n",
		"postgres no dsn": "storage:\n  driver: postgres\n",
		"s3 no bucket":    "transfer:\n  driver: s3\n",
		"bad env":         "app:\n  env: staging\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeConfig(t, body))
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
