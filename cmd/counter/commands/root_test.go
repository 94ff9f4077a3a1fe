package commands

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vcrobe/nojs-counter/internal/config"
)

func run(t *testing.T, args ...string) error {
	t.Helper()
	configPath, envFile, addr, startPath, cfg = "", ".env", "", "", nil
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.Execute()
}

func TestRoot_InvalidPathFlagStopsBeforeSubcommand(t *testing.T) {
	err := run(t, "serve", "--path", "shared", "--env-file", "")

	assert.True(t, errors.Is(err, config.ErrInvalid))
	assert.Nil(t, cfg)
}

func TestRoot_MissingConfigFile(t *testing.T) {
	err := run(t, "tui", "--config", filepath.Join(t.TempDir(), "missing.yaml"))

	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestRoot_Subcommands(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}

	assert.Subset(t, names, []string{"serve", "tui", "both"})
}
