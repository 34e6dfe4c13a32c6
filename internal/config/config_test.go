package config_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 1<<16, cfg.Engine.HibernationThresholdNodes)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.False(t, cfg.Metrics.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	content := `
engine:
  hibernation_threshold_nodes: 1024

logging:
  level: debug
  format: json

metrics:
  enabled: true
`

	tmpFile, err := os.CreateTemp(t.TempDir(), "test-config-*.yaml")
	require.NoError(t, err)

	_, writeErr := tmpFile.WriteString(content)
	require.NoError(t, writeErr)
	require.NoError(t, tmpFile.Close())

	cfg, loadErr := config.Load(tmpFile.Name())
	require.NoError(t, loadErr)

	assert.Equal(t, 1024, cfg.Engine.HibernationThresholdNodes)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadMissingFileErrors(t *testing.T) {
	t.Parallel()

	_, err := config.Load("/nonexistent/path/config.yaml")
	require.Error(t, err)
}

func TestLoadRejectsNonPositiveHibernationThreshold(t *testing.T) {
	t.Parallel()

	content := "engine:\n  hibernation_threshold_nodes: 0\n"

	tmpFile, err := os.CreateTemp(t.TempDir(), "test-config-*.yaml")
	require.NoError(t, err)

	_, writeErr := tmpFile.WriteString(content)
	require.NoError(t, writeErr)
	require.NoError(t, tmpFile.Close())

	_, loadErr := config.Load(tmpFile.Name())
	require.ErrorIs(t, loadErr, config.ErrInvalidHibernationThreshold)
}

func TestLoadRejectsInvalidLogLevel(t *testing.T) {
	t.Parallel()

	content := "logging:\n  level: verbose\n"

	tmpFile, err := os.CreateTemp(t.TempDir(), "test-config-*.yaml")
	require.NoError(t, err)

	_, writeErr := tmpFile.WriteString(content)
	require.NoError(t, writeErr)
	require.NoError(t, tmpFile.Close())

	_, loadErr := config.Load(tmpFile.Name())
	require.ErrorIs(t, loadErr, config.ErrInvalidLogLevel)
}
