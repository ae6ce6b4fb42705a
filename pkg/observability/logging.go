package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/tablefsm/pkg/domain"
)

// LogHooks logs every lifecycle event. Transitions go to debug,
// failures to warn.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.DebugContext(ctx, "transition",
				"from", e.From,
				"to", e.To,
				"symbol", e.Symbol,
				"kind", e.Kind,
			)
		},
		OnUndefined: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.WarnContext(ctx, "undefined transition",
				"state", e.From,
				"symbol", e.Symbol,
			)
		},
		OnActionError: func(ctx context.Context, e *domain.TransitionEvent) {
			logger.WarnContext(ctx, "action failed",
				"state", e.From,
				"symbol", e.Symbol,
				"kind", e.Kind,
				"err", e.Err,
			)
		},
	}
}
