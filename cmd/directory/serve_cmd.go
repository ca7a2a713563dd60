package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/spec-kit/employee-directory/internal/config"
	"github.com/spec-kit/employee-directory/internal/observability"
	"github.com/spec-kit/employee-directory/internal/worker"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the web server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			logger, err := observability.NewLogger(cfg.Logger, cfg.App)
			if err != nil {
				return fmt.Errorf("failed to init logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck

			srv, err := newServer(cfg, logger)
			if err != nil {
				return err
			}
			defer srv.registry.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			g, gctx := errgroup.WithContext(ctx)
			g.Go(func() error {
				logger.Info("listening", zap.String("addr", cfg.App.Addr()))
				return srv.app.Listen(cfg.App.Addr())
			})
			g.Go(func() error {
				return worker.RunSessionSweeper(gctx, srv.registry, cfg.Session.SweepInterval(), logger)
			})
			g.Go(func() error {
				<-gctx.Done()
				logger.Info("shutting down")
				return srv.app.ShutdownWithTimeout(shutdownTimeout)
			})
			return g.Wait()
		},
	}
}

