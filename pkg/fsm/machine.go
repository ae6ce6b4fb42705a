package fsm

import (
	"context"
	"log/slog"
	"time"

	"github.com/aretw0/tablefsm/pkg/domain"
)

// Machine is the dispatcher. It embeds its own Registry, so rules can be
// added directly on the machine, before or between Process calls.
type Machine[S, Y comparable, C any] struct {
	*Registry[S, Y, C]

	initial S
	current S
	last    Y
	hasLast bool
	next    S
	pending bool
	context C

	cfg config
}

// New creates a machine in the initial state with an empty registry.
// The context is borrowed by actions; the machine never replaces it except on Restore.
func New[S, Y comparable, C any](initial S, ctx C, opts ...Option) *Machine[S, Y, C] {
	return &Machine[S, Y, C]{
		Registry: NewRegistry[S, Y, C](),
		initial:  initial,
		current:  initial,
		context:  ctx,
		cfg:      newConfig(opts),
	}
}

// InitialState returns the state configured at construction.
func (m *Machine[S, Y, C]) InitialState() S { return m.initial }

// CurrentState returns the active state. Inside an action this is still the
// source state of the transition being processed.
func (m *Machine[S, Y, C]) CurrentState() S { return m.current }

// LastSymbol returns the most recently processed symbol, if any.
func (m *Machine[S, Y, C]) LastSymbol() (Y, bool) { return m.last, m.hasLast }

// NextState returns the target of the rule being processed.
// It only reports ok while an action is running.
func (m *Machine[S, Y, C]) NextState() (S, bool) { return m.next, m.pending }

// Context returns the shared context.
func (m *Machine[S, Y, C]) Context() C { return m.context }

// Reset returns to the initial state and forgets the last symbol.
// The context is left as is.
func (m *Machine[S, Y, C]) Reset() {
	var zeroY Y
	var zeroS S
	m.current = m.initial
	m.last = zeroY
	m.hasLast = false
	m.next = zeroS
	m.pending = false
}

// Process feeds one symbol to the machine.
//
// The rule for (symbol, current state) is resolved; if none exists the
// returned error matches domain.ErrTransitionUndefined and nothing but the last
// symbol changes. Otherwise the rule's action runs and, if it succeeds, the
// machine moves to the rule's next state. A failing action leaves the state
// untouched and its error is returned wrapped in a *domain.ActionError.
func (m *Machine[S, Y, C]) Process(symbol Y) error {
	m.last = symbol
	m.hasLast = true

	rule, kind, err := m.Registry.resolve(symbol, m.current)
	if err != nil {
		m.cfg.logger.Debug("transition undefined", "symbol", domain.Label(symbol), "state", domain.Label(m.current))
		m.fire(m.cfg.hooks.OnUndefined, kind, symbol, false, err)
		return err
	}

	if rule.Action != nil {
		m.next = rule.Next
		m.pending = true
		err = rule.Action(m)
		var zero S
		m.next = zero
		m.pending = false
		if err != nil {
			m.cfg.logger.Debug("action failed", "symbol", domain.Label(symbol), "state", domain.Label(m.current), "error", err)
			m.fire(m.cfg.hooks.OnActionError, kind, symbol, true, err)
			return &domain.ActionError{Symbol: symbol, State: m.current, Err: err}
		}
	}

	from := m.current
	m.current = rule.Next
	if m.cfg.logger.Enabled(m.cfg.ctx, slog.LevelDebug) {
		m.cfg.logger.Debug("transition", "symbol", domain.Label(symbol), "from", domain.Label(from), "to", domain.Label(m.current), "kind", kind)
	}
	if h := m.cfg.hooks.OnTransition; h != nil {
		h(m.cfg.ctx, &domain.TransitionEvent{
			Timestamp: time.Now(),
			Kind:      kind,
			Symbol:    domain.Label(symbol),
			From:      domain.Label(from),
			To:        domain.Label(m.current),
			HasAction: rule.Action != nil,
		})
	}
	return nil
}

// ProcessSequence feeds symbols in order and stops at the first error.
// Effects of the symbols processed before the failure are kept.
func (m *Machine[S, Y, C]) ProcessSequence(symbols []Y) error {
	for _, s := range symbols {
		if err := m.Process(s); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine[S, Y, C]) fire(hook func(context.Context, *domain.TransitionEvent), kind domain.RuleKind, symbol Y, hasAction bool, err error) {
	if hook == nil {
		return
	}
	hook(m.cfg.ctx, &domain.TransitionEvent{
		Timestamp: time.Now(),
		Kind:      kind,
		Symbol:    domain.Label(symbol),
		From:      domain.Label(m.current),
		HasAction: hasAction,
		Err:       err,
	})
}
