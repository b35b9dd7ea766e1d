package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfigYAML = `
hunter:
  tolerance: 1.2
  enforce_valence: true
  workers: 4
  coordinates_key: "xyz"
input:
  chunk_size: 16
log:
  level: "debug"
  format: "json"
metrics:
  enabled: true
  namespace: "bonds"
`

func createTempConfigFile(t *testing.T, content string) string {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	err := os.WriteFile(path, []byte(content), 0644)
	require.NoError(t, err)
	return path
}

func TestLoad_FromFile_ValidConfig(t *testing.T) {
	path := createTempConfigFile(t, validConfigYAML)
	cfg, err := Load(WithConfigPath(path))
	require.NoError(t, err)

	assert.Equal(t, 1.2, cfg.Hunter.Tolerance)
	assert.True(t, cfg.Hunter.EnforceValence)
	assert.Equal(t, 4, cfg.Hunter.Workers)
	assert.Equal(t, "xyz", cfg.Hunter.CoordinatesKey())
	assert.Equal(t, "element", cfg.Hunter.ElementKey())
	assert.Equal(t, 16, cfg.Input.ChunkSize)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "bonds", cfg.Metrics.Namespace)
}

func TestLoad_FromFile_FileNotFound(t *testing.T) {
	_, err := Load(WithConfigPath("non_existent_config.yaml"))
	assert.ErrorIs(t, err, ErrConfigFileNotFound)
}

func TestLoad_FromFile_InvalidYAML(t *testing.T) {
	path := createTempConfigFile(t, "invalid_yaml: [")
	_, err := Load(WithConfigPath(path))
	assert.ErrorIs(t, err, ErrConfigParseError)
}

func TestLoad_FromFile_ValidationFailure(t *testing.T) {
	path := createTempConfigFile(t, "hunter:\n  tolerance: -0.5\n")
	_, err := Load(WithConfigPath(path))
	assert.ErrorIs(t, err, ErrConfigValidation)
	assert.Contains(t, err.Error(), "hunter.tolerance")
}

func TestLoad_EnvOverride(t *testing.T) {
	path := createTempConfigFile(t, validConfigYAML)
	t.Setenv("MOLSIM_HUNTER_TOLERANCE", "0.9")
	t.Setenv("MOLSIM_LOG_LEVEL", "warn")

	cfg, err := Load(WithConfigPath(path))
	require.NoError(t, err)
	assert.Equal(t, 0.9, cfg.Hunter.Tolerance)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_DefaultValues(t *testing.T) {
	path := createTempConfigFile(t, "log:\n  format: json\n")
	cfg, err := Load(WithConfigPath(path))
	require.NoError(t, err)

	assert.Equal(t, DefaultTolerance, cfg.Hunter.Tolerance)
	assert.Equal(t, DefaultWorkers, cfg.Hunter.Workers)
	assert.Equal(t, DefaultChunkSize, cfg.Input.ChunkSize)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, DefaultMetricsNamespace, cfg.Metrics.Namespace)
}

func TestLoad_WithSearchPaths(t *testing.T) {
	empty := t.TempDir()
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "molsim.yaml"), []byte(validConfigYAML), 0644)
	require.NoError(t, err)

	cfg, err := Load(WithSearchPaths(empty, dir))
	require.NoError(t, err)
	assert.Equal(t, 1.2, cfg.Hunter.Tolerance)

	cfg, err = Load(WithSearchPaths(empty))
	require.NoError(t, err)
	assert.Equal(t, DefaultTolerance, cfg.Hunter.Tolerance)
}

func TestLoad_WithOverrides(t *testing.T) {
	path := createTempConfigFile(t, validConfigYAML)
	t.Setenv("MOLSIM_HUNTER_WORKERS", "2")
	cfg, err := Load(WithConfigPath(path), WithOverrides(map[string]interface{}{
		"hunter.workers":   7,
		"input.chunk_size": 3,
	}))
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Hunter.Workers)
	assert.Equal(t, 3, cfg.Input.ChunkSize)
}

func TestLoadFromFile_Convenience(t *testing.T) {
	path := createTempConfigFile(t, validConfigYAML)
	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.NotNil(t, cfg)
}

func TestLoadFromEnv_NoFile(t *testing.T) {
	t.Setenv("MOLSIM_HUNTER_ENFORCE_VALENCE", "true")
	t.Setenv("MOLSIM_INPUT_CHUNK_SIZE", "12")
	t.Setenv("MOLSIM_HUNTER_ELEMENT_KEY", "species")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.True(t, cfg.Hunter.EnforceValence)
	assert.Equal(t, 12, cfg.Input.ChunkSize)
	assert.Equal(t, "species", cfg.Hunter.ElementKey())
}

func TestMustLoad_Success(t *testing.T) {
	path := createTempConfigFile(t, validConfigYAML)
	assert.NotPanics(t, func() {
		MustLoad(WithConfigPath(path))
	})
}

func TestMustLoad_Panic(t *testing.T) {
	assert.Panics(t, func() {
		MustLoad(WithConfigPath("non_existent.yaml"))
	})
}

func TestLoad_SetsGlobalConfig(t *testing.T) {
	path := createTempConfigFile(t, validConfigYAML)
	cfg, err := Load(WithConfigPath(path))
	require.NoError(t, err)
	assert.Equal(t, cfg, Get())
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	path := createTempConfigFile(t, validConfigYAML)

	changed := make(chan *Config, 16)
	require.NoError(t, Watch(path, func(c *Config) {
		select {
		case changed <- c:
		default:
		}
	}, nil))

	require.NoError(t, os.WriteFile(path, []byte("hunter:\n  tolerance: 1.05\n"), 0644))

	// A truncate can be observed before the write lands.
	deadline := time.After(5 * time.Second)
	for {
		select {
		case c := <-changed:
			if c.Hunter.Tolerance == 1.05 {
				return
			}
		case <-deadline:
			t.Fatal("no reload observed")
		}
	}
}

func TestWatch_MissingFile(t *testing.T) {
	err := Watch(filepath.Join(t.TempDir(), "none.yaml"), func(*Config) {}, nil)
	assert.ErrorIs(t, err, ErrConfigParseError)
}
