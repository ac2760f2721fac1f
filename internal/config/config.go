// Package config loads retailgen settings from a YAML file, an optional
// .env file and the environment, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"pkg.jsn.cam/retailgen/internal/landing"
	"pkg.jsn.cam/retailgen/internal/logging"
	"pkg.jsn.cam/retailgen/pkg/retail"
)

// Environment variables that override the file.
const (
	EnvSeed      = "RETAILGEN_SEED"
	EnvLogLevel  = "RETAILGEN_LOG_LEVEL"
	EnvLogFormat = "RETAILGEN_LOG_FORMAT"
	EnvDBPath    = "RETAILGEN_DB_PATH"
	EnvDSN       = "DATABASE_URL"
)

type Config struct {
	Generator retail.GeneratorConfig `yaml:"generator"`
	Landing   LandingConfig          `yaml:"landing"`
	Postgres  PostgresConfig         `yaml:"postgres"`
	Log       LogConfig              `yaml:"log"`
}

type LandingConfig struct {
	DBPath string `yaml:"db_path"`
	Source string `yaml:"source"`
	Mode   string `yaml:"mode"`
}

type PostgresConfig struct {
	DSN string `yaml:"dsn"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Generator: retail.DefaultConfig(),
		Landing: LandingConfig{
			DBPath: "retailgen.db",
			Source: "mock_retail",
			Mode:   string(landing.ModeMerge),
		},
		Log: LogConfig{Level: "info", Format: logging.FormatText},
	}
}

// Load reads path (skipped when empty) over the defaults, applies the
// environment and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := cfg.parse(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse decodes YAML over the defaults and validates it. The environment
// is not consulted.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := cfg.parse(data); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) parse(data []byte) error {
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("%w: %v", retail.ErrInvalidConfiguration, err)
	}
	return nil
}

// LoadDotEnv exports the variables of a .env file without overriding
// variables already set. A missing file is not an error.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup(EnvSeed); ok && v != "" {
		seed, err := retail.ParseSeed(v)
		if err != nil {
			return fmt.Errorf("%s: %w", EnvSeed, err)
		}
		c.Generator.Seed = seed
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.Log.Level = v
	}
	if v, ok := lookup(EnvLogFormat); ok && v != "" {
		c.Log.Format = v
	}
	if v, ok := lookup(EnvDBPath); ok && v != "" {
		c.Landing.DBPath = v
	}
	if v, ok := lookup(EnvDSN); ok && v != "" {
		c.Postgres.DSN = v
	}
	return nil
}

// Validate reports every invalid setting at once, wrapped in
// retail.ErrInvalidConfiguration.
func (c *Config) Validate() error {
	var errs []error
	if err := c.Generator.Validate(); err != nil {
		errs = append(errs, err)
	}
	if _, err := landing.ParseWriteMode(c.Landing.Mode); err != nil {
		errs = append(errs, fmt.Errorf("landing.mode: %w", err))
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch c.Log.Format {
	case logging.FormatJSON, logging.FormatText:
	default:
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", retail.ErrInvalidConfiguration, errors.Join(errs...))
	}
	return nil
}
