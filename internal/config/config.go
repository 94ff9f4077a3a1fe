// Package config loads runtime settings. Sources are applied in order:
// built-in defaults, an optional YAML file, an optional .env file, and the
// process environment (COUNTER_* variables). Later sources win.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds the settings shared by every surface.
type Config struct {
	Addr            string        `yaml:"addr" env:"COUNTER_ADDR"`
	LogLevel        string        `yaml:"log_level" env:"COUNTER_LOG_LEVEL"`
	LogFormat       string        `yaml:"log_format" env:"COUNTER_LOG_FORMAT"`
	StartPath       string        `yaml:"start_path" env:"COUNTER_START_PATH"`
	InitialCount    int           `yaml:"initial_count" env:"COUNTER_INITIAL_COUNT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"COUNTER_SHUTDOWN_TIMEOUT"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Addr:            "127.0.0.1:8080",
		LogLevel:        "info",
		LogFormat:       "text",
		StartPath:       "/",
		ShutdownTimeout: 5 * time.Second,
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty), the dotenv file at envFile (skipped when empty or
// missing) and the environment.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if envFile != "" {
		// godotenv never overrides variables already set in the environment.
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("failed to decode environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr is required", ErrInvalid)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level: %v", ErrInvalid, err)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format must be text or json, got %q", ErrInvalid, c.LogFormat)
	}
	if !strings.HasPrefix(c.StartPath, "/") {
		return fmt.Errorf("%w: start_path must begin with /, got %q", ErrInvalid, c.StartPath)
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("%w: shutdown_timeout must be positive", ErrInvalid)
	}
	return nil
}
