package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds gowall settings.
type Config struct {
	// Wall used when no dimensions are given on the command line
	Defaults WallConfig `yaml:"defaults"`

	Output  OutputConfig  `yaml:"output"`
	Batch   BatchConfig   `yaml:"batch"`
	Server  ServerConfig  `yaml:"server"`
	Logging LoggingConfig `yaml:"logging"`
}

// WallConfig holds wall dimensions in meters.
type WallConfig struct {
	Height float64 `yaml:"height"`
	Width  float64 `yaml:"width"`
	Depth  float64 `yaml:"depth"`
}

// OutputConfig controls where generated files go.
type OutputConfig struct {
	Dir          string `yaml:"dir"`
	ReportFormat string `yaml:"report_format"` // used when --report has no extension
	ImageFormat  string `yaml:"image_format"`  // used when --output has no extension
}

// BatchConfig tunes batch evaluation.
type BatchConfig struct {
	Workers int `yaml:"workers"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr      string  `yaml:"addr"`
	RateLimit float64 `yaml:"rate_limit"` // requests per second per client
	Burst     int     `yaml:"burst"`
}

// LoggingConfig configures the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// Formats accepted for output.report_format and output.image_format.
var (
	ReportFormats = []string{"txt", "pdf", "xlsx", "yaml", "yml", "json"}
	ImageFormats  = []string{"png", "svg", "pdf", "jpg", "jpeg", "eps", "tif", "tiff"}
)

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Defaults: WallConfig{Height: 2.4, Width: 2.4, Depth: 2.0},
		Output: OutputConfig{
			Dir:          ".",
			ReportFormat: "txt",
			ImageFormat:  "png",
		},
		Batch: BatchConfig{Workers: 4},
		Server: ServerConfig{
			Addr:      ":8080",
			RateLimit: 5,
			Burst:     10,
		},
		Logging: LoggingConfig{Level: "info"},
	}
}

// Load reads a YAML config from path on top of the defaults. A missing
// file is not an error. Variables from a .env file in the working
// directory and the environment override file values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv("GOWALL_ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("GOWALL_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("GOWALL_OUTPUT_DIR"); v != "" {
		c.Output.Dir = v
	}
	if v := os.Getenv("GOWALL_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("GOWALL_WORKERS: %w", err)
		}
		c.Batch.Workers = n
	}
	if v := os.Getenv("GOWALL_RATE_LIMIT"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("GOWALL_RATE_LIMIT: %w", err)
		}
		c.Server.RateLimit = r
	}
	return nil
}

// Validate checks settings that would otherwise fail later at runtime.
// Wall dimensions are checked by the wall package when used.
func (c *Config) Validate() error {
	if c.Batch.Workers < 1 {
		return fmt.Errorf("batch.workers must be at least 1, got %d", c.Batch.Workers)
	}
	if c.Server.RateLimit <= 0 {
		return fmt.Errorf("server.rate_limit must be positive, got %g", c.Server.RateLimit)
	}
	if c.Server.Burst < 1 {
		return fmt.Errorf("server.burst must be at least 1, got %d", c.Server.Burst)
	}
	if !slices.Contains(ReportFormats, c.Output.ReportFormat) {
		return fmt.Errorf("output.report_format %q is not one of %v", c.Output.ReportFormat, ReportFormats)
	}
	if !slices.Contains(ImageFormats, c.Output.ImageFormat) {
		return fmt.Errorf("output.image_format %q is not one of %v", c.Output.ImageFormat, ImageFormats)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level %q is not one of debug, info, warn, error", c.Logging.Level)
	}
	return nil
}

// Save writes the config to path as YAML.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
