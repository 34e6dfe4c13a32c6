package observability_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/internal/config"
	"github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/internal/observability"
)

func TestInitMetricsDisabledYieldsUsableNoopMeter(t *testing.T) {
	t.Parallel()

	cfg := config.Config{Logging: config.LoggingConfig{Level: "info", Format: "text"}}

	providers, err := observability.Init(cfg)
	require.NoError(t, err)
	require.NotNil(t, providers.Logger)
	require.NotNil(t, providers.Meter)

	metrics, err := observability.NewMetrics(providers.Meter)
	require.NoError(t, err)

	assert.NotPanics(t, func() { metrics.NodeVisited(context.Background()) })
	require.NoError(t, providers.Shutdown(context.Background()))
}

func TestInitMetricsEnabledBuildsPrometheusExporter(t *testing.T) {
	cfg := config.Config{
		Logging: config.LoggingConfig{Level: "debug", Format: "json"},
		Metrics: config.MetricsConfig{Enabled: true},
	}

	providers, err := observability.Init(cfg)
	require.NoError(t, err)
	require.NotNil(t, providers.Meter)

	metrics, err := observability.NewMetrics(providers.Meter)
	require.NoError(t, err)
	assert.NotPanics(t, func() { metrics.EdgeSwept(context.Background()) })

	require.NoError(t, providers.Shutdown(context.Background()))
}
