package main

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aretw0/tablefsm/internal/config"
	"github.com/aretw0/tablefsm/internal/input"
	httpAdapter "github.com/aretw0/tablefsm/pkg/adapters/http"
	"github.com/aretw0/tablefsm/pkg/fsm"
	"github.com/aretw0/tablefsm/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 5 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves RPN evaluator sessions over a JSON API, plus /graph and /metrics.
Configuration comes from TABLEFSM_* environment variables (a .env file is honoured).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
			cfg.Addr = addr
		}
		if redisAddr, _ := cmd.Flags().GetString("redis"); redisAddr != "" {
			cfg.RedisAddr = redisAddr
		}
		logger, err := serverLogger(cmd, cfg)
		if err != nil {
			return err
		}

		reg := prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
		metrics := observability.NewMetrics(reg)

		sessions, closeStore, err := newSessions(cfg, logger, fsm.WithLifecycleHooks(metrics.Hooks()))
		if err != nil {
			return err
		}
		defer closeStore()

		srv := &http.Server{
			Addr: cfg.Addr,
			Handler: httpAdapter.NewHandler(sessions,
				httpAdapter.WithLogger(logger),
				httpAdapter.WithGatherer(reg),
				httpAdapter.WithSanitizer(input.New(cfg.MaxInputSize)),
			),
			ReadHeaderTimeout: 10 * time.Second,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)
		go func() {
			logger.Info("Starting tablefsm server", "addr", srv.Addr)
			serverErrors <- srv.ListenAndServe()
		}()

		// Blocking main and waiting for shutdown.
		select {
		case err := <-serverErrors:
			if errors.Is(err, http.ErrServerClosed) {
				return nil
			}
			return err

		case <-cmd.Context().Done():
			logger.Info("Start shutdown...")

			// Give outstanding requests a deadline for completion.
			ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()

			// Asking listener to shut down and shed load.
			if err := srv.Shutdown(ctx); err != nil {
				logger.Warn("Graceful shutdown did not complete", "timeout", shutdownTimeout, "err", err)
				return srv.Close()
			}
			logger.Info("tablefsm server stopped gracefully")
			return nil
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", "", "Address to listen on (overrides TABLEFSM_ADDR)")
	serveCmd.Flags().String("redis", "", "Redis address for sessions (overrides TABLEFSM_REDIS_ADDR)")
}
