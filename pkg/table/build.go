package table

import (
	"errors"
	"fmt"

	"github.com/aretw0/tablefsm/pkg/fsm"
	"github.com/aretw0/tablefsm/pkg/registry"
)

// ErrUnknownAction is returned when a table names an action that is not registered.
var ErrUnknownAction = errors.New("unknown action")

// Build creates a machine with fresh memory from the definition.
// A nil actions registry means Builtins().
func (d *Definition) Build(actions *registry.Registry[Action], opts ...fsm.Option) (*Machine, error) {
	m := fsm.New[string, string](d.Initial, NewMemory(), opts...)
	if err := d.Install(m.Registry, actions); err != nil {
		return nil, err
	}
	return m, nil
}

// Install registers the definition's rules on reg.
func (d *Definition) Install(reg *fsm.Registry[string, string, *Memory], actions *registry.Registry[Action]) error {
	if actions == nil {
		actions = Builtins()
	}

	lookup := func(name string) (Action, error) {
		if name == "" {
			return nil, nil
		}
		act, err := actions.Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrUnknownAction, err)
		}
		return act, nil
	}

	if d.Default != nil {
		act, err := lookup(d.Default.Action)
		if err != nil {
			return fmt.Errorf("default: %w", err)
		}
		reg.SetDefaultTransition(act, d.Default.Next)
	}

	for i, a := range d.Any {
		act, err := lookup(a.Action)
		if err != nil {
			return fmt.Errorf("any[%d]: %w", i, err)
		}
		reg.AddTransitionAny(a.State, act, nextOf(a.State, a.Next))
	}

	for i, t := range d.Transitions {
		act, err := lookup(t.Action)
		if err != nil {
			return fmt.Errorf("transitions[%d]: %w", i, err)
		}
		reg.AddTransitionList(t.AllSymbols(), t.State, act, nextOf(t.State, t.Next))
	}
	return nil
}

func nextOf(state, next string) string {
	if next == "" {
		return state
	}
	return next
}
