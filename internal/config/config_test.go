package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("", "")

	require.NoError(t, err)
	assert.Equal(t, Default(), *cfg)
}

func TestLoad_Precedence(t *testing.T) {
	// Arrange: the file sets everything, .env overrides two keys, the
	// environment overrides one of those again.
	file := writeFile(t, "counter.yaml", `
addr: ":9000"
log_level: debug
log_format: json
start_path: /shared
initial_count: 3
shutdown_timeout: 2s
`)
	dotenv := writeFile(t, ".env", "COUNTER_INITIAL_COUNT=7\nCOUNTER_START_PATH=/debug\n")
	t.Setenv("COUNTER_INITIAL_COUNT", "-4")
	t.Cleanup(func() { os.Unsetenv("COUNTER_START_PATH") })

	// Act
	cfg, err := Load(file, dotenv)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "/debug", cfg.StartPath, ".env beats the file")
	assert.Equal(t, -4, cfg.InitialCount, "environment beats .env")
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_MissingDotenvIgnored(t *testing.T) {
	_, err := Load("", filepath.Join(t.TempDir(), ".env"))

	assert.NoError(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"), "")

	assert.Error(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeFile(t, "bad.yaml", "addr: [unterminated"), "")

	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(*Config){
		"empty addr":    func(c *Config) { c.Addr = " " },
		"bad level":     func(c *Config) { c.LogLevel = "loud" },
		"bad format":    func(c *Config) { c.LogFormat = "xml" },
		"relative path": func(c *Config) { c.StartPath = "shared" },
		"zero timeout":  func(c *Config) { c.ShutdownTimeout = 0 },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := Default()
			mutate(&cfg)

			err := cfg.Validate()

			assert.True(t, errors.Is(err, ErrInvalid), "got %v", err)
		})
	}
}

func TestLoad_InvalidEnvironment(t *testing.T) {
	t.Setenv("COUNTER_LOG_FORMAT", "xml")

	_, err := Load("", "")

	assert.True(t, errors.Is(err, ErrInvalid))
}
