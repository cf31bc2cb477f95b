package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abeckett/ferry/internal/config"
)

func writeConfig(t *testing.T, content string) {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	configDir := filepath.Join(dir, "ferry")
	require.NoError(t, os.MkdirAll(configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.toml"), []byte(content), 0o644))
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Nil(t, cfg.Defaults.Verify)
	assert.Nil(t, cfg.Defaults.Overwrite)
	assert.Empty(t, cfg.Defaults.Exclude)
}

func TestLoad_FullConfig(t *testing.T) {
	writeConfig(t, `
[defaults]
overwrite = "smart"
verify = true
hash = "sha256"
bwlimit = "100M"
exclude = ["*.tmp", ".git/"]
min-size = "1K"
max-size = "2G"
no-progress = true
no-color = false
`)

	cfg, err := config.Load()
	require.NoError(t, err)

	require.NotNil(t, cfg.Defaults.Overwrite)
	assert.Equal(t, "smart", *cfg.Defaults.Overwrite)

	require.NotNil(t, cfg.Defaults.Verify)
	assert.True(t, *cfg.Defaults.Verify)

	require.NotNil(t, cfg.Defaults.Hash)
	assert.Equal(t, "sha256", *cfg.Defaults.Hash)

	require.NotNil(t, cfg.Defaults.BWLimit)
	assert.Equal(t, "100M", *cfg.Defaults.BWLimit)

	assert.Equal(t, []string{"*.tmp", ".git/"}, cfg.Defaults.Exclude)

	require.NotNil(t, cfg.Defaults.MinSize)
	assert.Equal(t, "1K", *cfg.Defaults.MinSize)

	require.NotNil(t, cfg.Defaults.MaxSize)
	assert.Equal(t, "2G", *cfg.Defaults.MaxSize)

	require.NotNil(t, cfg.Defaults.NoProgress)
	assert.True(t, *cfg.Defaults.NoProgress)

	require.NotNil(t, cfg.Defaults.NoColor)
	assert.False(t, *cfg.Defaults.NoColor)
}

func TestLoad_PartialConfig(t *testing.T) {
	writeConfig(t, `
[defaults]
verify = true
`)

	cfg, err := config.Load()
	require.NoError(t, err)

	require.NotNil(t, cfg.Defaults.Verify)
	assert.True(t, *cfg.Defaults.Verify)

	// Unset fields stay nil.
	assert.Nil(t, cfg.Defaults.Overwrite)
	assert.Nil(t, cfg.Defaults.Hash)
	assert.Nil(t, cfg.Defaults.BWLimit)
}

func TestLoad_InvalidTOML(t *testing.T) {
	writeConfig(t, "invalid [[[")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	assert.Equal(t, filepath.Join("/custom/config", "ferry", "config.toml"), config.Path())
}
