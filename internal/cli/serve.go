package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/biograph-io/biograph/internal/api"
)

// shutdownTimeout bounds graceful server shutdown.
const shutdownTimeout = 5 * time.Second

// newServeCmd creates the serve command, which runs the HTTP API until
// the process is interrupted.
func newServeCmd(configPath *string) *cobra.Command {
	var (
		addr     string
		preCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the cache and query HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			a, err := setup(cmd, *configPath)
			if err != nil {
				return err
			}
			defer a.close(context.Background())

			if addr == "" {
				addr = a.cfg.ListenAddr
			}

			if preCache {
				prog := newProgress(logger)
				if err := a.cache.CacheAll(cmd.Context(), false); err != nil {
					return err
				}
				prog.done("Warmed cache")
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           api.New(a.cache, logger).Handler(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				logger.Info("Listening", "addr", addr)
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				return err
			case <-cmd.Context().Done():
			}

			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			logger.Info("Shut down")
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&preCache, "warm", false, "cache every network before serving")
	return cmd
}
