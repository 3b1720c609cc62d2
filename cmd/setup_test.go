package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/theirongolddev/costdash/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplySetup(t *testing.T) {
	cfg := applySetup(config.DefaultConfig(), setupValues{
		baseURL: " https://costs.example.com/ ",
		timeout: "30",
		theme:   "tokyo-night",
	})

	assert.Equal(t, "https://costs.example.com", cfg.Backend.BaseURL)
	assert.Equal(t, 30, cfg.Backend.TimeoutSec)
	assert.Equal(t, "tokyo-night", cfg.Appearance.Theme)
}

func TestApplySetupUnknownTheme(t *testing.T) {
	cfg := applySetup(config.DefaultConfig(), setupValues{baseURL: "http://x", timeout: "bad", theme: "neon"})
	assert.Equal(t, "flexoki-dark", cfg.Appearance.Theme)
	assert.Equal(t, 0, cfg.Backend.TimeoutSec)
}

func TestValidateTimeout(t *testing.T) {
	assert.NoError(t, validateTimeout("0"))
	assert.NoError(t, validateTimeout(" 15 "))
	assert.Error(t, validateTimeout("-1"))
	assert.Error(t, validateTimeout("soon"))
}

func TestSetupRefusesMalformedConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	broken := "[backend\nbase_url = "
	require.NoError(t, os.MkdirAll(config.Dir(), 0o700))
	require.NoError(t, os.WriteFile(config.Path(), []byte(broken), 0o600))

	err := runSetup(setupCmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.Path())

	raw, err := os.ReadFile(filepath.Clean(config.Path()))
	require.NoError(t, err)
	assert.Equal(t, broken, string(raw), "config left untouched")
}
