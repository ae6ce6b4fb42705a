package observability

import (
	"context"

	"github.com/aretw0/tablefsm/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus collectors fed by engine hooks.
type Metrics struct {
	Transitions *prometheus.CounterVec
	Undefined   *prometheus.CounterVec
	ActionErrs  *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered, which is handy in tests.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Transitions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tablefsm_transitions_total",
				Help: "Total number of committed transitions",
			},
			[]string{"from", "to", "kind"},
		),
		Undefined: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tablefsm_undefined_transitions_total",
				Help: "Total number of symbols with no matching rule",
			},
			[]string{"state"},
		),
		ActionErrs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tablefsm_action_errors_total",
				Help: "Total number of actions that returned an error",
			},
			[]string{"state"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.Transitions, m.Undefined, m.ActionErrs)
	}
	return m
}

// Hooks returns lifecycle hooks that record into m.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTransition: func(_ context.Context, e *domain.TransitionEvent) {
			m.Transitions.WithLabelValues(e.From, e.To, string(e.Kind)).Inc()
		},
		OnUndefined: func(_ context.Context, e *domain.TransitionEvent) {
			m.Undefined.WithLabelValues(e.From).Inc()
		},
		OnActionError: func(_ context.Context, e *domain.TransitionEvent) {
			m.ActionErrs.WithLabelValues(e.From).Inc()
		},
	}
}
