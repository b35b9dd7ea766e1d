// Package config defines the configuration of the molsim tools.  No I/O or
// parsing logic lives here, only plain data types and validation.
package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/turtacn/molsim/internal/domain/bondhunt"
	"github.com/turtacn/molsim/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/molsim/internal/infrastructure/monitoring/prometheus"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// InputConfig controls how structure files become molecules.
type InputConfig struct {
	// ChunkSize is the number of consecutive atoms per cut group.
	ChunkSize int `mapstructure:"chunk_size"`

	// Format forces "xyz" or "sdf".  Empty selects by file extension.
	Format string `mapstructure:"format"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root configuration
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration.
type Config struct {
	Hunter  bondhunt.Config            `mapstructure:"hunter"`
	Input   InputConfig                `mapstructure:"input"`
	Log     logging.LogConfig          `mapstructure:"log"`
	Metrics prometheus.CollectorConfig `mapstructure:"metrics"`
}

// Validate checks cross-field constraints.  It expects ApplyDefaults to have
// run already.
func (c *Config) Validate() error {
	if c == nil {
		return fmt.Errorf("config: nil config")
	}

	// Hunter
	t := c.Hunter.Tolerance
	if !(t > 0) || math.IsInf(t, 0) {
		return fmt.Errorf("config: hunter.tolerance must be positive and finite, got %g", t)
	}
	if c.Hunter.Workers < 1 {
		return fmt.Errorf("config: hunter.workers must be ≥ 1, got %d", c.Hunter.Workers)
	}
	if c.Hunter.Coordinates != "" && c.Hunter.Coordinates == c.Hunter.Element {
		return fmt.Errorf("config: hunter.coordinates_key and hunter.element_key must differ, both are %q", c.Hunter.Element)
	}

	// Input
	if c.Input.ChunkSize < 1 {
		return fmt.Errorf("config: input.chunk_size must be ≥ 1, got %d", c.Input.ChunkSize)
	}
	switch c.Input.Format {
	case "", "xyz", "sdf":
	default:
		return fmt.Errorf("config: input.format %q is invalid; expected xyz|sdf", c.Input.Format)
	}

	// Log
	switch strings.ToLower(c.Log.Level) {
	case logging.LevelDebug, logging.LevelInfo, logging.LevelWarn, logging.LevelError:
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case logging.FormatJSON, logging.FormatConsole:
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	// Metrics
	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return fmt.Errorf("config: metrics.namespace is required when metrics are enabled")
	}

	return nil
}
