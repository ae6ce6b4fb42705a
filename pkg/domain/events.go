package domain

import (
	"context"
	"time"
)

// RuleKind tells which registry tier produced a rule.
type RuleKind string

const (
	RuleExact    RuleKind = "exact"
	RuleAny      RuleKind = "any"
	RuleDefault  RuleKind = "default"
	RuleNotFound RuleKind = "none"
)

// TransitionEvent describes one dispatch.
// States and symbols are rendered with Label so that hooks stay non-generic.
type TransitionEvent struct {
	Timestamp time.Time `json:"timestamp"`
	Kind      RuleKind  `json:"kind"`
	Symbol    string    `json:"symbol"`
	From      string    `json:"from"`
	To        string    `json:"to,omitempty"`
	HasAction bool      `json:"has_action"`
	Err       error     `json:"-"`
}

// LifecycleHooks defines callbacks for engine observability.
// Hooks run synchronously inside Process; nil hooks are skipped.
type LifecycleHooks struct {
	// OnTransition fires after a transition has been committed.
	OnTransition func(context.Context, *TransitionEvent)
	// OnUndefined fires when resolution fails.
	OnUndefined func(context.Context, *TransitionEvent)
	// OnActionError fires when an action returns an error.
	OnActionError func(context.Context, *TransitionEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnTransition:  chain(h.OnTransition, other.OnTransition),
		OnUndefined:   chain(h.OnUndefined, other.OnUndefined),
		OnActionError: chain(h.OnActionError, other.OnActionError),
	}
}

func chain(a, b func(context.Context, *TransitionEvent)) func(context.Context, *TransitionEvent) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e *TransitionEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}
