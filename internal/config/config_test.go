package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// No config file in a fresh directory.
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.TimeoutSeconds)
	assert.Equal(t, int64(1), cfg.MaxConcurrent)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxOutputBytes)
	assert.Equal(t, ".blendmcp", cfg.StateDir)
	assert.Empty(t, cfg.BlenderPath)
	assert.False(t, cfg.Logging.DebugMode)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blendmcp.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"blender_path": "/opt/blender/blender",
		"timeout_seconds": 60,
		"logging": {"debug_mode": true, "level": "debug"}
	}`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/opt/blender/blender", cfg.BlenderPath)
	assert.Equal(t, 60, cfg.TimeoutSeconds)
	assert.True(t, cfg.Logging.DebugMode)
	// Fields the file omits keep their defaults.
	assert.Equal(t, int64(1), cfg.MaxConcurrent)
}

func TestLoadExplicitMissingFileIsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	require.Error(t, err)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestEnvOverrides(t *testing.T) {
	t.Run("blender path", func(t *testing.T) {
		t.Setenv("BLENDMCP_BLENDER_PATH", "/env/blender")
		cfg := Default()
		cfg.applyEnvOverrides()
		assert.Equal(t, "/env/blender", cfg.BlenderPath)
	})

	t.Run("timeout wins over file value", func(t *testing.T) {
		t.Setenv("BLENDMCP_TIMEOUT_SECONDS", "90")
		cfg := Default()
		cfg.TimeoutSeconds = 45
		cfg.applyEnvOverrides()
		assert.Equal(t, 90, cfg.TimeoutSeconds)
	})

	t.Run("invalid timeout ignored", func(t *testing.T) {
		t.Setenv("BLENDMCP_TIMEOUT_SECONDS", "not-a-number")
		cfg := Default()
		cfg.applyEnvOverrides()
		assert.Equal(t, 30, cfg.TimeoutSeconds)
	})

	t.Run("debug flag", func(t *testing.T) {
		t.Setenv("BLENDMCP_DEBUG", "true")
		cfg := Default()
		cfg.applyEnvOverrides()
		assert.True(t, cfg.Logging.DebugMode)
	})
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.TimeoutSeconds = -1
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.MaxConcurrent = 0
	assert.Error(t, cfg.Validate())
}
