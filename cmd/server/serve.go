package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/alexpaden/fartcaster/internal/api"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return runServer(ctx, api.NewService(a.conf, a.users, a.compositor, a.assets))
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address, overrides http_addr")
	rootCmd.AddCommand(serveCmd)
}

// runServer serves until ctx is done, then shuts down within shutdownTimeout.
func runServer(ctx context.Context, svc *api.Service) error {
	errCh := make(chan error, 1)
	go func() { errCh <- svc.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		log.Info().Msg("shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := svc.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
