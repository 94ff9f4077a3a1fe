package commands

import (
	"github.com/spf13/cobra"

	"github.com/vcrobe/nojs-counter/internal/app"
	"github.com/vcrobe/nojs-counter/internal/server"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the counter pages, the JSON API and metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext(cmd.Context())
			defer stop()

			a := app.New(*cfg)
			defer a.Close()

			return server.New(a).Run(ctx, cfg.Addr, cfg.ShutdownTimeout)
		},
	}
}
