package main

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/questline-studio/agency-site/pkg/config"
)

func withTempDir(t *testing.T) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestConfigCommand_MasksSecrets(t *testing.T) {
	withTempDir(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "123456:very-secret")
	t.Setenv("TELEGRAM_CHAT_ID", "-1001234")

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out

	err := app.Run([]string{"site", "config"})

	require.NoError(t, err)
	assert.NotContains(t, out.String(), "very-secret")
	assert.Contains(t, out.String(), "Telegram")
}

func TestConfigCommand_FailsWithoutSecrets(t *testing.T) {
	withTempDir(t)
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("TELEGRAM_CHAT_ID", "")

	app := newApp()
	app.Writer = &bytes.Buffer{}

	err := app.Run([]string{"site", "config"})

	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrMissingSecret)
}

func TestApp_Commands(t *testing.T) {
	app := newApp()

	var names []string
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
	}
	assert.ElementsMatch(t, []string{"serve", "config"}, names)
	assert.NotNil(t, app.Action)
}
