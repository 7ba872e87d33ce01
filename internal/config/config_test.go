package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "default", cfg.MarkerStyle)
	assert.Equal(t, "realistic", cfg.Lighting)
	assert.True(t, cfg.Clouds)
	assert.Equal(t, 30, cfg.FPS)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 5, cfg.Geolocate.TimeoutSeconds)
}

func TestLoadYAMLOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"marker_style: pins\nfps: 15\nlog:\n  level: debug\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "pins", cfg.MarkerStyle)
	assert.Equal(t, 15, cfg.FPS)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Clouds, "untouched keys keep their defaults")
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.MarkerStyle)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("marker_style: pins\n"), 0o644))

	t.Setenv("ATOMVIEW_MARKER_STYLE", "dots")
	t.Setenv("ATOMVIEW_LOG__LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dots", cfg.MarkerStyle)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadStatusFilter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"statuses:\n  - operational\n  - shutdown\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"operational", "shutdown"}, cfg.Statuses)

	require.NoError(t, os.WriteFile(path, []byte("statuses:\n  - glowing\n"), 0o644))
	_, err = Load(path)
	assert.Error(t, err, "unknown status names are rejected")
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("marker_style: holographic\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)

	require.NoError(t, os.WriteFile(path, []byte("fps: 500\n"), 0o644))
	_, err = Load(path)
	assert.Error(t, err)
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("fps: [\n"), 0o644))
	_, err := Load(path)
	assert.Error(t, err)
}
