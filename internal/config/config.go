// Package config loads the engine's optional tuning knobs. Every field has a
// zero-config default, so the engine runs the same with or without a
// -config file: nothing here is required, and no value is ever written
// back to disk or read from the environment.
package config

import (
	"errors"
	"fmt"

	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrInvalidHibernationThreshold = errors.New("segment-tree hibernation threshold must be positive")
	ErrInvalidLogLevel             = errors.New("invalid log level")
)

const (
	defaultHibernationThresholdNodes = 1 << 16
	defaultLogLevel                  = "info"
	defaultLogFormat                 = "text"
	defaultMetricsEnabled            = false
)

// Config holds the engine's tuning knobs.
type Config struct {
	Engine  EngineConfig  `mapstructure:"engine"`
	Logging LoggingConfig `mapstructure:"logging"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// EngineConfig controls the segment tree and sweep engine.
type EngineConfig struct {
	// HibernationThresholdNodes is the node count above which
	// internal/segtree.Tree.Snapshot lz4-compresses its output rather than
	// writing it raw. It does not gate any correctness behavior, only the
	// size/CPU tradeoff of the -ps visualization dump.
	HibernationThresholdNodes int `mapstructure:"hibernation_threshold_nodes"`
}

// LoggingConfig controls the slog output built by internal/observability.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// MetricsConfig controls whether internal/observability wires a live
// Prometheus exporter or a no-op meter.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load reads configPath (if non-empty) and returns a Config with every
// unset field defaulted. A missing configPath is not an error: the engine
// runs on defaults alone.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)

		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("engine.hibernation_threshold_nodes", defaultHibernationThresholdNodes)
	v.SetDefault("logging.level", defaultLogLevel)
	v.SetDefault("logging.format", defaultLogFormat)
	v.SetDefault("metrics.enabled", defaultMetricsEnabled)
}

func validate(cfg *Config) error {
	if cfg.Engine.HibernationThresholdNodes <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidHibernationThreshold, cfg.Engine.HibernationThresholdNodes)
	}

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.Logging.Level)
	}

	return nil
}
