package fsm

import (
	"cmp"
	"slices"

	"github.com/aretw0/tablefsm/pkg/domain"
)

// Action is the side effect attached to a rule.
// It runs before the transition commits, so m.CurrentState() still reports the
// source state; the target is available from m.NextState().
// Returning an error aborts the transition.
type Action[S, Y comparable, C any] func(m *Machine[S, Y, C]) error

// Rule pairs an optional action with the state to move to.
type Rule[S, Y comparable, C any] struct {
	Action Action[S, Y, C]
	Next   S
}

type ruleKey[S, Y comparable] struct {
	symbol Y
	state  S
}

// Registry stores exact, wildcard and default rules.
// The zero value is not usable; call NewRegistry.
type Registry[S, Y comparable, C any] struct {
	exact    map[ruleKey[S, Y]]Rule[S, Y, C]
	wildcard map[S]Rule[S, Y, C]
	fallback *Rule[S, Y, C]
}

// NewRegistry creates an empty registry.
func NewRegistry[S, Y comparable, C any]() *Registry[S, Y, C] {
	return &Registry[S, Y, C]{
		exact:    make(map[ruleKey[S, Y]]Rule[S, Y, C]),
		wildcard: make(map[S]Rule[S, Y, C]),
	}
}

// AddTransition registers an exact rule for (symbol, state).
// If next is omitted the rule is a self-loop. A previous rule for the same
// pair is silently replaced.
func (r *Registry[S, Y, C]) AddTransition(symbol Y, state S, action Action[S, Y, C], next ...S) {
	r.exact[ruleKey[S, Y]{symbol: symbol, state: state}] = Rule[S, Y, C]{
		Action: action,
		Next:   target(state, next),
	}
}

// AddTransitionList registers the same rule for every symbol in symbols.
func (r *Registry[S, Y, C]) AddTransitionList(symbols []Y, state S, action Action[S, Y, C], next ...S) {
	to := target(state, next)
	for _, s := range symbols {
		r.AddTransition(s, state, action, to)
	}
}

// AddTransitionAny registers the wildcard rule for state. It matches any
// symbol that has no exact rule in that state.
func (r *Registry[S, Y, C]) AddTransitionAny(state S, action Action[S, Y, C], next ...S) {
	r.wildcard[state] = Rule[S, Y, C]{
		Action: action,
		Next:   target(state, next),
	}
}

// SetDefaultTransition installs or replaces the global fallback rule.
func (r *Registry[S, Y, C]) SetDefaultTransition(action Action[S, Y, C], next S) {
	r.fallback = &Rule[S, Y, C]{Action: action, Next: next}
}

// Resolve returns the rule that applies to (symbol, state).
func (r *Registry[S, Y, C]) Resolve(symbol Y, state S) (Rule[S, Y, C], error) {
	rule, _, err := r.resolve(symbol, state)
	return rule, err
}

func (r *Registry[S, Y, C]) resolve(symbol Y, state S) (Rule[S, Y, C], domain.RuleKind, error) {
	if rule, ok := r.exact[ruleKey[S, Y]{symbol: symbol, state: state}]; ok {
		return rule, domain.RuleExact, nil
	}
	if rule, ok := r.wildcard[state]; ok {
		return rule, domain.RuleAny, nil
	}
	if r.fallback != nil {
		return *r.fallback, domain.RuleDefault, nil
	}
	return Rule[S, Y, C]{}, domain.RuleNotFound, &domain.UndefinedTransitionError{Symbol: symbol, State: state}
}

// Describe lists every registered rule, sorted by kind, state and symbol.
func (r *Registry[S, Y, C]) Describe() []domain.TransitionInfo {
	infos := make([]domain.TransitionInfo, 0, len(r.exact)+len(r.wildcard)+1)
	for k, rule := range r.exact {
		infos = append(infos, domain.TransitionInfo{
			Kind:      domain.RuleExact,
			Symbol:    domain.Label(k.symbol),
			State:     domain.Label(k.state),
			Next:      domain.Label(rule.Next),
			HasAction: rule.Action != nil,
		})
	}
	for state, rule := range r.wildcard {
		infos = append(infos, domain.TransitionInfo{
			Kind:      domain.RuleAny,
			State:     domain.Label(state),
			Next:      domain.Label(rule.Next),
			HasAction: rule.Action != nil,
		})
	}
	if r.fallback != nil {
		infos = append(infos, domain.TransitionInfo{
			Kind:      domain.RuleDefault,
			Next:      domain.Label(r.fallback.Next),
			HasAction: r.fallback.Action != nil,
		})
	}

	order := map[domain.RuleKind]int{domain.RuleExact: 0, domain.RuleAny: 1, domain.RuleDefault: 2}
	slices.SortFunc(infos, func(a, b domain.TransitionInfo) int {
		return cmp.Or(
			cmp.Compare(order[a.Kind], order[b.Kind]),
			cmp.Compare(a.State, b.State),
			cmp.Compare(a.Symbol, b.Symbol),
		)
	})
	return infos
}

func target[S comparable](state S, next []S) S {
	if len(next) > 0 {
		return next[0]
	}
	return state
}
