package dsl

import "github.com/aretw0/tablefsm/pkg/table"

// StateBuilder adds rules for one source state.
type StateBuilder struct {
	builder *Builder
	state   string
}

// On adds an exact rule for each symbol. Without Go the rule loops on the state.
func (s *StateBuilder) On(symbols ...string) *RuleBuilder {
	s.builder.def.Transitions = append(s.builder.def.Transitions, table.TransitionSpec{
		Symbols: symbols,
		State:   s.state,
	})
	return &RuleBuilder{spec: &ruleRef{builder: s.builder, index: len(s.builder.def.Transitions) - 1}}
}

// OnChars adds an exact rule for each character of chars.
func (s *StateBuilder) OnChars(chars string) *RuleBuilder {
	s.builder.def.Transitions = append(s.builder.def.Transitions, table.TransitionSpec{
		Chars: chars,
		State: s.state,
	})
	return &RuleBuilder{spec: &ruleRef{builder: s.builder, index: len(s.builder.def.Transitions) - 1}}
}

// Any adds the wildcard rule for the state.
func (s *StateBuilder) Any() *RuleBuilder {
	s.builder.def.Any = append(s.builder.def.Any, table.AnySpec{State: s.state})
	return &RuleBuilder{spec: &ruleRef{builder: s.builder, index: len(s.builder.def.Any) - 1, wildcard: true}}
}

// ruleRef points into the builder's slices, which may grow after the rule is created.
type ruleRef struct {
	builder  *Builder
	index    int
	wildcard bool
}

func (r *ruleRef) set(action, next *string) {
	if r.wildcard {
		spec := &r.builder.def.Any[r.index]
		if action != nil {
			spec.Action = *action
		}
		if next != nil {
			spec.Next = *next
		}
		return
	}
	spec := &r.builder.def.Transitions[r.index]
	if action != nil {
		spec.Action = *action
	}
	if next != nil {
		spec.Next = *next
	}
}

// RuleBuilder provides a fluent API for configuring a rule.
type RuleBuilder struct {
	spec *ruleRef
}

// Do names the action run by the rule.
func (r *RuleBuilder) Do(action string) *RuleBuilder {
	r.spec.set(&action, nil)
	return r
}

// Go sets the rule's next state.
func (r *RuleBuilder) Go(next string) *RuleBuilder {
	r.spec.set(nil, &next)
	return r
}
