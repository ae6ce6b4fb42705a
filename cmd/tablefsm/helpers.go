package main

import (
	"log/slog"
	"os"

	"github.com/aretw0/tablefsm"
	"github.com/aretw0/tablefsm/internal/cli"
	"github.com/aretw0/tablefsm/internal/config"
	"github.com/aretw0/tablefsm/internal/input"
	"github.com/aretw0/tablefsm/internal/logging"
	"github.com/aretw0/tablefsm/pkg/adapters/memory"
	"github.com/aretw0/tablefsm/pkg/adapters/redis"
	"github.com/aretw0/tablefsm/pkg/fsm"
	"github.com/aretw0/tablefsm/pkg/observability"
	"github.com/aretw0/tablefsm/pkg/persistence/middleware"
	"github.com/aretw0/tablefsm/pkg/ports"
	"github.com/aretw0/tablefsm/pkg/rpn"
	"github.com/aretw0/tablefsm/pkg/session"
	"github.com/spf13/cobra"
)

// newLogger logs to stderr: debug with --verbose, otherwise nothing.
func newLogger(cmd *cobra.Command) *slog.Logger {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		return logging.New(slog.LevelDebug)
	}
	return logging.NewNop()
}

// serverLogger honours TABLEFSM_LOG_LEVEL, raised to debug by --verbose.
func serverLogger(cmd *cobra.Command, cfg config.Server) (*slog.Logger, error) {
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		return logging.New(slog.LevelDebug), nil
	}
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	return logging.New(level), nil
}

// newConsole builds a console on the process streams and prints the banner.
func newConsole(cmd *cobra.Command, logger *slog.Logger, maxInput int) *cli.Console {
	c := cli.NewConsole(os.Stdin, os.Stdout, os.Stderr,
		cli.WithLogger(logger),
		cli.WithSanitizer(input.New(maxInput)),
	)
	if noBanner, _ := cmd.Flags().GetBool("no-banner"); !noBanner {
		c.Banner(tablefsm.Version)
	}
	return c
}

// machineOptions wires logs into every machine when debugging.
func machineOptions(logger *slog.Logger) []fsm.Option {
	return []fsm.Option{
		fsm.WithLogger(logger),
		fsm.WithLifecycleHooks(observability.LogHooks(logger)),
	}
}

// newSessions builds the RPN session manager on Redis when configured, in
// memory otherwise. Contexts are masked and encrypted when configured.
func newSessions(cfg config.Server, logger *slog.Logger, extra ...fsm.Option) (*session.Manager[rpn.State, rune, *rpn.Calculator], func() error, error) {
	opts := append(machineOptions(logger), extra...)
	factory := func() *rpn.Machine { return rpn.New(opts...) }

	var store ports.SnapshotStore = memory.NewStore()
	closer := func() error { return nil }
	mgrOpts := []session.Option{session.WithLogger(logger)}

	if cfg.UsesRedis() {
		rs := redis.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			redis.WithPrefix(cfg.KeyPrefix),
			redis.WithTTL(cfg.SessionTTL),
		)
		store, closer = rs, rs.Close
		mgrOpts = append(mgrOpts, session.WithLocker(redis.NewLocker(rs.Client(), rs.Prefix())))
		logger.Info("using redis session store", "addr", cfg.RedisAddr, "prefix", rs.Prefix())
	}

	var mws []middleware.Middleware
	if len(cfg.MaskKeys) > 0 {
		pii, err := middleware.NewPIIMiddleware(cfg.MaskKeys)
		if err != nil {
			_ = closer()
			return nil, nil, err
		}
		mws = append(mws, pii)
	}
	active, fallback, err := cfg.Keys()
	if err != nil {
		_ = closer()
		return nil, nil, err
	}
	if active != nil {
		mws = append(mws, middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{
			ActiveKey:    active,
			FallbackKeys: fallback,
		}))
		logger.Info("session contexts are encrypted at rest", "fallback_keys", len(fallback))
	}

	return session.NewManager(middleware.Chain(store, mws...), factory, mgrOpts...), closer, nil
}
