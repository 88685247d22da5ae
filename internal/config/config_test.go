package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "config.toml"))
	require.NoError(t, err)
	assert.Nil(t, cfg.Select.MinRecall)
	assert.Nil(t, cfg.Select.Table)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := "[select]\nmin-recall = 0.85\nformat = \"yaml\"\ntable = true\njobs = 2\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.NotNil(t, cfg.Select.MinRecall)
	assert.Equal(t, 0.85, *cfg.Select.MinRecall)
	require.NotNil(t, cfg.Select.Format)
	assert.Equal(t, "yaml", *cfg.Select.Format)
	require.NotNil(t, cfg.Select.Table)
	assert.True(t, *cfg.Select.Table)
	assert.Nil(t, cfg.Select.Plot)
	require.NotNil(t, cfg.Select.Jobs)
	assert.Equal(t, 2, *cfg.Select.Jobs)
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[select]\nrecall = 0.9\n"), 0o644))

	_, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "select.recall")
}

func TestLoadConfigEmptyPath(t *testing.T) {
	_, err := LoadConfig("")
	require.Error(t, err)
}

func TestDefaultConfigPathUsesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", "threshpick", "config.toml"), DefaultConfigPath())
}
