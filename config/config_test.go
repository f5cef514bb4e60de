package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "floornav", cfg.Env.ServiceName)
	assert.InDelta(t, 0.5, cfg.Detection.ConfidenceThreshold, 1e-9)
	assert.Equal(t, 50, cfg.Detection.GridSpacing)
	assert.InDelta(t, 1.0, cfg.Routing.UnitScale, 1e-9)
	assert.Equal(t, 3, cfg.Routing.MaxAlternatives)
}

func TestLoadWithEnv(t *testing.T) {
	dir := t.TempDir()
	doc := `
env:
  serviceName: floornav-test
  log:
    level: debug
    pretty: true
detection:
  confidenceThreshold: 0.7
  gridSpacing: 25
routing:
  unitScale: 0.05
  maxAlternatives: 5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), []byte(doc), 0o644))
	t.Chdir(dir)

	cfg, err := LoadWithEnv("test")
	require.NoError(t, err)
	assert.Equal(t, "floornav-test", cfg.Env.ServiceName)
	assert.Equal(t, "debug", cfg.Env.Log.Level)
	assert.True(t, cfg.Env.Log.Pretty)
	assert.InDelta(t, 0.7, cfg.Detection.ConfidenceThreshold, 1e-9)
	assert.Equal(t, 25, cfg.Detection.GridSpacing)
	assert.InDelta(t, 0.05, cfg.Routing.UnitScale, 1e-9)
	assert.Equal(t, 5, cfg.Routing.MaxAlternatives)
}

func TestLoadWithEnvMissingFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := LoadWithEnv("nonexistent")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestNewLoadsDefaultDocument(t *testing.T) {
	dir := t.TempDir()
	doc := `
detection:
  gridSpacing: 25
`
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "config.yaml"), []byte(doc), 0o644))
	t.Chdir(dir)

	cfg, err := New()
	require.NoError(t, err)
	assert.Equal(t, 25, cfg.Detection.GridSpacing)

	// Fields the document omits are filled with fallbacks.
	assert.InDelta(t, 0.5, cfg.Detection.ConfidenceThreshold, 1e-9)
	assert.Equal(t, 3, cfg.Routing.MaxAlternatives)
}

func TestNewWithoutDocument(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := New()
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClampAlternatives(t *testing.T) {
	r := Routing{MaxAlternatives: 3}
	assert.Equal(t, 1, r.ClampAlternatives(0))
	assert.Equal(t, 2, r.ClampAlternatives(2))
	assert.Equal(t, 3, r.ClampAlternatives(9))

	// An unset maximum leaves the request alone.
	assert.Equal(t, 9, Routing{}.ClampAlternatives(9))
}

func TestLoadWithEnvRejectsInvalidValues(t *testing.T) {
	dir := t.TempDir()
	doc := `
detection:
  confidenceThreshold: 1.5
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.yaml"), []byte(doc), 0o644))
	t.Chdir(dir)

	_, err := LoadWithEnv("bad")
	assert.Error(t, err)
}

func TestEnvOverride(t *testing.T) {
	dir := t.TempDir()
	doc := `
detection:
  gridSpacing: 25
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), []byte(doc), 0o644))
	t.Chdir(dir)
	t.Setenv("FLOORNAV_DETECTION_GRIDSPACING", "40")

	cfg, err := LoadWithEnv("test")
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Detection.GridSpacing)
}
