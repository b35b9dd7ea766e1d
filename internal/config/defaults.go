package config

import (
	"github.com/spf13/viper"

	"github.com/turtacn/molsim/internal/domain/bondhunt"
	"github.com/turtacn/molsim/internal/domain/molecule"
	"github.com/turtacn/molsim/internal/infrastructure/monitoring/logging"
)

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultTolerance = bondhunt.DefaultTolerance
	DefaultWorkers   = 1

	DefaultChunkSize = 32

	DefaultLogLevel  = logging.LevelInfo
	DefaultLogFormat = logging.FormatConsole

	DefaultMetricsNamespace = "molsim"
)

// ApplyDefaults fills every zero-value field in cfg with its default.  Fields
// that have already been set are left unchanged so that explicit
// configuration always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	// ── Hunter ────────────────────────────────────────────────────────────────
	if cfg.Hunter.Tolerance == 0 {
		cfg.Hunter.Tolerance = DefaultTolerance
	}
	if cfg.Hunter.Workers == 0 {
		cfg.Hunter.Workers = DefaultWorkers
	}
	if cfg.Hunter.Coordinates == "" {
		cfg.Hunter.Coordinates = molecule.KeyCoordinates
	}
	if cfg.Hunter.Element == "" {
		cfg.Hunter.Element = molecule.KeyElement
	}

	// ── Input ─────────────────────────────────────────────────────────────────
	if cfg.Input.ChunkSize == 0 {
		cfg.Input.ChunkSize = DefaultChunkSize
	}

	// ── Log ───────────────────────────────────────────────────────────────────
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	// ── Metrics ───────────────────────────────────────────────────────────────
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
}

// registerDefaults declares every key to v.  Environment variables are only
// consulted by Unmarshal for keys viper already knows.
func registerDefaults(v *viper.Viper) {
	v.SetDefault("hunter.tolerance", DefaultTolerance)
	v.SetDefault("hunter.enforce_valence", false)
	v.SetDefault("hunter.workers", DefaultWorkers)
	v.SetDefault("hunter.coordinates_key", molecule.KeyCoordinates)
	v.SetDefault("hunter.element_key", molecule.KeyElement)

	v.SetDefault("input.chunk_size", DefaultChunkSize)
	v.SetDefault("input.format", "")

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.format", DefaultLogFormat)
	v.SetDefault("log.output_paths", []string{})

	v.SetDefault("metrics.enabled", false)
	v.SetDefault("metrics.namespace", DefaultMetricsNamespace)
	v.SetDefault("metrics.subsystem", "")
}
