package domain

import (
	"encoding/json"
	"time"
)

// Snapshot captures the mutable fields of a machine so it can be persisted
// and restored later ("Stop & Resume").
type Snapshot struct {
	// State is the JSON encoding of the current state.
	State json.RawMessage `json:"state"`

	// LastSymbol is the JSON encoding of the last processed symbol, absent after a reset.
	LastSymbol json.RawMessage `json:"last_symbol,omitempty"`

	// Context is the JSON encoding of the caller-owned context.
	Context json.RawMessage `json:"context,omitempty"`

	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a deep copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	if s == nil {
		return nil
	}
	return &Snapshot{
		State:      cloneRaw(s.State),
		LastSymbol: cloneRaw(s.LastSymbol),
		Context:    cloneRaw(s.Context),
		UpdatedAt:  s.UpdatedAt,
	}
}

func cloneRaw(b json.RawMessage) json.RawMessage {
	if b == nil {
		return nil
	}
	out := make(json.RawMessage, len(b))
	copy(out, b)
	return out
}
