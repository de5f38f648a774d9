package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir moves the test into an empty directory so no stray .env is read.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	dir := chdir(t)

	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoad_File(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "gowall.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
defaults:
  height: 3.0
  width: 3.0
  depth: 2.5
batch:
  workers: 8
logging:
  level: debug
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, WallConfig{Height: 3.0, Width: 3.0, Depth: 2.5}, cfg.Defaults)
	assert.Equal(t, 8, cfg.Batch.Workers)
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched sections keep their defaults.
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoad_BadYAML(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("defaults: [1, 2"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config")
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t)
	t.Setenv("GOWALL_ADDR", ":9090")
	t.Setenv("GOWALL_WORKERS", "2")
	t.Setenv("GOWALL_RATE_LIMIT", "0.5")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, 2, cfg.Batch.Workers)
	assert.Equal(t, 0.5, cfg.Server.RateLimit)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GOWALL_OUTPUT_DIR=plans\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("GOWALL_OUTPUT_DIR") })

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "plans", cfg.Output.Dir)
}

func TestLoad_BadEnv(t *testing.T) {
	chdir(t)
	t.Setenv("GOWALL_WORKERS", "many")

	_, err := Load("")
	assert.ErrorContains(t, err, "GOWALL_WORKERS")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{"defaults", func(*Config) {}, ""},
		{"no workers", func(c *Config) { c.Batch.Workers = 0 }, "batch.workers"},
		{"zero rate", func(c *Config) { c.Server.RateLimit = 0 }, "server.rate_limit"},
		{"zero burst", func(c *Config) { c.Server.Burst = 0 }, "server.burst"},
		{"bad level", func(c *Config) { c.Logging.Level = "trace" }, "logging.level"},
		{"bad report format", func(c *Config) { c.Output.ReportFormat = "docx" }, "output.report_format"},
		{"bad image format", func(c *Config) { c.Output.ImageFormat = "gif" }, "output.image_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.errMsg)
			}
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "out.yaml")

	cfg := DefaultConfig()
	cfg.Defaults.Width = 3.2
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
