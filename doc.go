/*
Package tablefsm is a table-driven finite state machine engine.

A machine is a registry of transitions plus a dispatcher. Given the current
state and an input symbol, the dispatcher looks up the applicable rule, runs
its action against a caller-owned context and moves to the rule's next state.

# Resolution

Rules are resolved in a fixed priority order:

  - an exact rule registered for the (symbol, state) pair;
  - a wildcard rule registered for the state, matching any symbol;
  - the machine's default rule, matching any pair.

When nothing matches, Process returns an error that satisfies
errors.Is(err, domain.ErrTransitionUndefined) and the state is left unchanged.

# Usage

States, symbols and the context are type parameters:

	type Turnstile struct{ Coins int }

	m := fsm.New[string, string]("LOCKED", &Turnstile{})
	m.AddTransition("coin", "LOCKED", func(m *fsm.Machine[string, string, *Turnstile]) error {
		m.Context().Coins++
		return nil
	}, "UNLOCKED")
	m.AddTransition("push", "UNLOCKED", nil, "LOCKED")

	if err := m.ProcessSequence([]string{"coin", "push"}); err != nil {
		log.Fatal(err)
	}

# Packages

  - pkg/fsm: the registry and dispatcher, plus snapshot and restore.
  - pkg/rpn and pkg/dialog: two machines built on the engine.
  - pkg/table: machines loaded from YAML or JSON transition tables.
  - pkg/session: many persisted machines behind session IDs, backed by
    pkg/adapters/memory or pkg/adapters/redis.
  - pkg/adapters/http and pkg/adapters/mcp: network surfaces for the evaluator.
  - pkg/observability: Prometheus metrics and logs from lifecycle hooks.

The tablefsm command (cmd/tablefsm) wires all of them together.
*/
package tablefsm
