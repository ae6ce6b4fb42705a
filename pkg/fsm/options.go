package fsm

import (
	"context"
	"log/slog"

	"github.com/aretw0/tablefsm/internal/logging"
	"github.com/aretw0/tablefsm/pkg/domain"
)

type config struct {
	logger *slog.Logger
	hooks  domain.LifecycleHooks
	ctx    context.Context
}

// Option configures a Machine.
type Option func(*config)

// WithLogger sets a structured logger. Each dispatch is traced at debug level.
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithLifecycleHooks registers observability hooks.
// Calling it more than once chains the hooks in registration order.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(c *config) {
		c.hooks = c.hooks.Merge(hooks)
	}
}

// WithHookContext sets the context handed to lifecycle hooks (default: context.Background()).
func WithHookContext(ctx context.Context) Option {
	return func(c *config) {
		if ctx != nil {
			c.ctx = ctx
		}
	}
}

func newConfig(opts []Option) config {
	c := config{
		logger: logging.NewNop(),
		ctx:    context.Background(),
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
