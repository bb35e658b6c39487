// Package config handles TOML configuration for awsls.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// EnvConfig names the environment variable holding a config file path.
const EnvConfig = "AWSLS_CONFIG"

// Config is the root configuration structure.
type Config struct {
	AWS     AWSConfig     `toml:"aws"`
	OTEL    OTELConfig    `toml:"otel"`
	Log     LogConfig     `toml:"log"`
	S3      S3Config      `toml:"s3"`
	Output  OutputConfig  `toml:"output"`
	Metrics MetricsExport `toml:"metrics"`
}

// AWSConfig holds AWS provider settings.
type AWSConfig struct {
	Profile string `toml:"profile"`
	Region  string `toml:"region"`
}

// OTELConfig holds OpenTelemetry settings.
type OTELConfig struct {
	Endpoint    string        `toml:"endpoint"`
	Insecure    bool          `toml:"insecure"`
	ServiceName string        `toml:"service_name"`
	Traces      TracesConfig  `toml:"traces"`
	Metrics     MetricsConfig `toml:"metrics"`
}

// TracesConfig holds tracing settings.
type TracesConfig struct {
	Enabled    bool    `toml:"enabled"`
	SampleRate float64 `toml:"sample_rate"`
}

// MetricsConfig holds OTLP metrics settings.
type MetricsConfig struct {
	Enabled bool `toml:"enabled"`
}

// LogConfig holds logging settings. File is used when debug logging is on.
type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// S3Config sets the CloudWatch lookback windows, in days.
type S3Config struct {
	SizeDays    int `toml:"size_days"`
	ObjectsDays int `toml:"objects_days"`
}

// OutputConfig holds terminal output settings.
type OutputConfig struct {
	NoColor bool `toml:"no_color"`
}

// MetricsExport configures the Prometheus textfile written after each run.
type MetricsExport struct {
	Textfile string `toml:"textfile"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads and parses a TOML config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := &Config{}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Resolve loads the config named by path, then $AWSLS_CONFIG, then the
// user config file. Only an explicitly named file must exist; otherwise
// defaults are returned.
func Resolve(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}
	if env := os.Getenv(EnvConfig); env != "" {
		return Load(env)
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return Default(), nil
	}
	cfg, err := Load(filepath.Join(dir, "awsls", "config.toml"))
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func applyDefaults(cfg *Config) {
	if cfg.OTEL.ServiceName == "" {
		cfg.OTEL.ServiceName = "awsls"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "warn"
	}
	if cfg.Log.File == "" {
		cfg.Log.File = "awsls.log"
	}
	if cfg.S3.SizeDays == 0 {
		cfg.S3.SizeDays = 1
	}
	if cfg.S3.ObjectsDays == 0 {
		cfg.S3.ObjectsDays = 4
	}
}

// Validate checks the configuration is valid.
func (c *Config) Validate() error {
	if c.OTEL.Traces.SampleRate < 0.0 || c.OTEL.Traces.SampleRate > 1.0 {
		return fmt.Errorf("otel: traces.sample_rate must be between 0.0 and 1.0 (got %v)", c.OTEL.Traces.SampleRate)
	}
	if c.S3.SizeDays < 0 || c.S3.ObjectsDays < 0 {
		return fmt.Errorf("s3: day windows must be positive (got size_days=%d, objects_days=%d)", c.S3.SizeDays, c.S3.ObjectsDays)
	}
	switch c.Log.Level {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("log: unknown level %q", c.Log.Level)
	}
	return nil
}
