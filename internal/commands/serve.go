package commands

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/statements/internal/api"
)

func newServeCommand(opts *options) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the statement parser over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ws, logger, err := opts.open(cmd)
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("addr") {
				addr = ws.Config.Server.Addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			app := api.NewApp(api.NewHandler(ws.Engine, logger))
			errCh := make(chan error, 1)
			go func() { errCh <- app.Listen(addr) }()
			logger.Info("listening", "addr", addr)

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
				logger.Info("shutting down")
				return app.ShutdownWithContext(context.Background())
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config server.addr)")

	return cmd
}
