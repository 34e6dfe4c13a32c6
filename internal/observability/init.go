package observability

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/AmeerAbdelhadi/Polygonal-Layout-Layer-Arithmetics/internal/config"
)

const meterName = "layerarithmetics"

// Providers holds the initialized observability providers for one run.
type Providers struct {
	// Meter is the named meter instruments are created against.
	Meter metric.Meter

	// Logger is the structured logger every package logs through.
	Logger *slog.Logger

	// Shutdown flushes pending metrics and releases exporter resources.
	// Must be called before process exit.
	Shutdown func(ctx context.Context) error
}

// Init builds the engine's Providers from cfg. When cfg.Metrics.Enabled is
// false, Meter is a no-op meter provider's meter: instruments still
// construct and record without error, they simply go nowhere.
func Init(cfg config.Config) (Providers, error) {
	logger := buildLogger(cfg.Logging)

	if !cfg.Metrics.Enabled {
		return Providers{
			Meter:    noopmetric.NewMeterProvider().Meter(meterName),
			Logger:   logger,
			Shutdown: noopShutdown,
		}, nil
	}

	exporter, err := prometheus.New()
	if err != nil {
		return Providers{}, fmt.Errorf("create prometheus exporter: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))

	return Providers{
		Meter:    mp.Meter(meterName),
		Logger:   logger,
		Shutdown: mp.Shutdown,
	}, nil
}

func noopShutdown(_ context.Context) error { return nil }

func buildLogger(cfg config.LoggingConfig) *slog.Logger {
	level := parseLevel(cfg.Level)

	var handler slog.Handler

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}

	return slog.New(handler)
}

func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
