package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/symbridge/symbridge/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.RepairJSON)
	assert.Empty(t, cfg.HistoryFile)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "addr: \"127.0.0.1:9090\"\nlog_level: debug\nrepair_json: true\nhistory_file: /tmp/hist\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9090", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.RepairJSON)
	assert.Equal(t, "/tmp/hist", cfg.HistoryFile)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoad_UnknownKeyRejected(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("adress: \":9090\"\n"), 0o600))

	_, err := config.Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("addr: \":9090\"\n"), 0o600))

	t.Setenv("SYMBRIDGE_ADDR", ":7070")
	t.Setenv("SYMBRIDGE_LOG_LEVEL", "warn")
	t.Setenv("SYMBRIDGE_REPAIR_JSON", "true")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Addr)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.True(t, cfg.RepairJSON)
}

func TestLoad_BadBoolEnv(t *testing.T) {
	t.Setenv("SYMBRIDGE_REPAIR_JSON", "not-a-bool")
	_, err := config.Load("")
	assert.Error(t, err)
}
