/*
Package fsm implements a generic, table-driven finite state machine.

A Machine owns a Registry of rules and a caller-supplied context. Each call to
Process looks up the rule for (symbol, current state), runs its optional action
and then moves to the rule's next state.

Rules are resolved in priority order:

 1. an exact rule registered for (symbol, state),
 2. a wildcard rule registered for state (AddTransitionAny),
 3. the global default rule (SetDefaultTransition).

When nothing matches, Process returns an error matching
domain.ErrTransitionUndefined and the state is left unchanged.

# Usage

	m := fsm.New[string, rune]("INIT", &Counter{})
	m.AddTransitionList([]rune("0123456789"), "INIT", countDigit)
	m.AddTransitionAny("INIT", nil)
	if err := m.ProcessSequence([]rune("a1b2")); err != nil {
		log.Fatal(err)
	}

A Machine is not safe for concurrent use. Hosts that share machines between
goroutines serialise access themselves (see package session).
*/
package fsm
