package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/vcrobe/nojs-counter/internal/app"
	"github.com/vcrobe/nojs-counter/internal/server"
	"github.com/vcrobe/nojs-counter/internal/tui"
)

func tuiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Drive the counter from the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext(cmd.Context())
			defer stop()

			a := app.New(*cfg)
			defer a.Close()

			return tui.Run(ctx, a, cfg.StartPath)
		},
	}
}

func bothCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "both",
		Short: "Serve the web surface and run the terminal UI on one counter",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signalContext(cmd.Context())
			defer stop()

			a := app.New(*cfg)
			defer a.Close()

			g, ctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				return server.New(a).Run(ctx, cfg.Addr, cfg.ShutdownTimeout)
			})
			g.Go(func() error {
				// Quitting the terminal stops the server as well.
				defer stop()
				if err := tui.Run(ctx, a, cfg.StartPath); err != nil {
					return fmt.Errorf("tui: %w", err)
				}
				return nil
			})
			return g.Wait()
		},
	}
}
