package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("TEST_BOT_TOKEN", "123456:secret")
	t.Setenv("TEST_ADMIN_ID", "42")

	path := writeConfig(t, `
app:
  name: storebot
  environment: test
telegram:
  bot_token: "${TEST_BOT_TOKEN}"
  admin_id: ${TEST_ADMIN_ID}
  channel: "@mystore"
  seller_contact: "seller"
storage:
  path: data/items.json
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "123456:secret", cfg.Telegram.BotToken)
	assert.Equal(t, int64(42), cfg.Telegram.AdminID)
	assert.Equal(t, "@mystore", cfg.Telegram.Channel)
	assert.Equal(t, "seller", cfg.Telegram.SellerContact)
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
telegram:
  bot_token: "123456:secret"
monitoring:
  prometheus_enabled: true
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "data/items.json", cfg.Storage.Path)
	assert.Equal(t, "exports", cfg.Exports.Path)
	assert.Equal(t, 9090, cfg.Monitoring.PrometheusPort)
	assert.Equal(t, 20, cfg.Bot.RateLimitMessages)
	assert.Equal(t, 60, cfg.Bot.RateLimitWindow)
}

func TestLoadRejectsMissingToken(t *testing.T) {
	path := writeConfig(t, `
telegram:
  channel: "@mystore"
storage:
  path: data/items.json
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bot token")
}

func TestLoadRejectsPlaceholderToken(t *testing.T) {
	path := writeConfig(t, `
telegram:
  bot_token: "YOUR_BOT_TOKEN_HERE"
`)

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
