package fsm

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/aretw0/tablefsm/pkg/domain"
)

// Snapshot encodes the current state, the last symbol and the context as JSON.
// The registry is not part of the snapshot: it is code, rebuilt by the caller.
func (m *Machine[S, Y, C]) Snapshot() (*domain.Snapshot, error) {
	state, err := json.Marshal(m.current)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state: %w", err)
	}

	snap := &domain.Snapshot{
		State:     state,
		UpdatedAt: time.Now().UTC(),
	}

	if m.hasLast {
		if snap.LastSymbol, err = json.Marshal(m.last); err != nil {
			return nil, fmt.Errorf("failed to marshal last symbol: %w", err)
		}
	}

	if snap.Context, err = json.Marshal(m.context); err != nil {
		return nil, fmt.Errorf("failed to marshal context: %w", err)
	}
	return snap, nil
}

// Restore loads a snapshot produced by Snapshot.
// The context is decoded into the machine's existing context value, so a
// pointer context keeps its identity and any unexported fields.
func (m *Machine[S, Y, C]) Restore(snap *domain.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("cannot restore from nil snapshot")
	}

	var state S
	if err := json.Unmarshal(snap.State, &state); err != nil {
		return fmt.Errorf("failed to unmarshal state: %w", err)
	}

	var last Y
	hasLast := len(snap.LastSymbol) > 0
	if hasLast {
		if err := json.Unmarshal(snap.LastSymbol, &last); err != nil {
			return fmt.Errorf("failed to unmarshal last symbol: %w", err)
		}
	}

	if len(snap.Context) > 0 {
		if err := json.Unmarshal(snap.Context, &m.context); err != nil {
			return fmt.Errorf("failed to unmarshal context: %w", err)
		}
	}

	m.current = state
	m.last = last
	m.hasLast = hasLast
	return nil
}
