package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vcrobe/nojs-counter/console"
	"github.com/vcrobe/nojs-counter/internal/config"
)

var (
	configPath string
	envFile    string
	addr       string
	startPath  string
	cfg        *config.Config
)

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "counter",
		Short:         "Shared counter rendered on the web and in the terminal",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(configPath, envFile)
			if err != nil {
				return err
			}
			if addr != "" {
				loaded.Addr = addr
			}
			if startPath != "" {
				loaded.StartPath = startPath
			}
			if err := loaded.Validate(); err != nil {
				return err
			}
			if err := console.Configure(loaded.LogLevel, loaded.LogFormat); err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}

	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML config file")
	root.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the environment")
	root.PersistentFlags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	root.PersistentFlags().StringVar(&startPath, "path", "", "page shown first (overrides config)")

	root.AddCommand(serveCmd(), tuiCmd(), bothCmd())
	return root
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}
