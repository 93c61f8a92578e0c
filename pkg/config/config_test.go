package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(tmp))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return tmp
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "ENVIRONMENT", "LOG_LEVEL", "STATIC_DIR", "CORS_ALLOWED_ORIGINS",
		"TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID", "TELEGRAM_API_URL",
		"STEAM_API_URL", "STEAM_USER_AGENT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "public", cfg.StaticDir)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "https://api.telegram.org", cfg.Telegram.APIURL)
	assert.Equal(t, "https://store.steampowered.com", cfg.Steam.APIURL)
	assert.NotEmpty(t, cfg.Steam.UserAgent)
	assert.False(t, cfg.IsProduction())
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	chdirTemp(t)
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	t.Setenv("TELEGRAM_CHAT_ID", "-100200")
	t.Setenv("TELEGRAM_API_URL", "http://telegram.local/")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "123:abc", cfg.Telegram.BotToken)
	assert.Equal(t, "-100200", cfg.Telegram.ChatID)
	assert.Equal(t, "http://telegram.local", cfg.Telegram.APIURL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.NoError(t, cfg.Telegram.Validate())
}

func TestLoadConfig_ConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	clearEnv(t)
	content := []byte("STATIC_DIR: dist\nLOG_LEVEL: debug\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "site.config.yml"), content, 0o644))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "dist", cfg.StaticDir)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestTelegramConfig_Validate(t *testing.T) {
	err := TelegramConfig{}.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingSecret))
	assert.Contains(t, err.Error(), "TELEGRAM_BOT_TOKEN")
	assert.Contains(t, err.Error(), "TELEGRAM_CHAT_ID")

	err = TelegramConfig{BotToken: "x"}.Validate()
	require.Error(t, err)
	assert.NotContains(t, err.Error(), "TELEGRAM_BOT_TOKEN")
}

func TestConfig_Masked(t *testing.T) {
	cfg := Config{Telegram: TelegramConfig{BotToken: "123456:secret", ChatID: ""}}
	masked := cfg.Masked()

	assert.Equal(t, "12*********et", masked.Telegram.BotToken)
	assert.Equal(t, "<unset>", masked.Telegram.ChatID)
	assert.Equal(t, "123456:secret", cfg.Telegram.BotToken)
}

func TestConfig_DeploymentMode(t *testing.T) {
	cfg := &Config{}
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "")
	assert.Equal(t, "server", cfg.DeploymentMode())

	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "contact")
	assert.Equal(t, "serverless", cfg.DeploymentMode())
}
