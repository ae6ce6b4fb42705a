package middleware

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"

	"github.com/aretw0/tablefsm/pkg/domain"
	"github.com/aretw0/tablefsm/pkg/ports"
)

// Mask replaces the values of masked keys.
const Mask = "***"

type piiMiddleware struct {
	next     ports.SnapshotStore
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that masks the values of context keys
// matching any of the patterns before they reach storage. String values are
// replaced by Mask, other values by null. Masking is one way: restored
// sessions see the masked value.
func NewPIIMiddleware(patternStrings []string) (Middleware, error) {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid mask pattern %q: %w", p, err)
		}
		patterns[i] = re
	}
	return func(next ports.SnapshotStore) ports.SnapshotStore {
		return &piiMiddleware{next: next, patterns: patterns}
	}, nil
}

func (m *piiMiddleware) Save(ctx context.Context, sessionID string, snap *domain.Snapshot) error {
	if len(snap.Context) == 0 || len(m.patterns) == 0 {
		return m.next.Save(ctx, sessionID, snap)
	}

	var doc any
	if err := json.Unmarshal(snap.Context, &doc); err != nil {
		return fmt.Errorf("failed to decode context for masking: %w", err)
	}
	masked, err := json.Marshal(mask(doc, m.patterns))
	if err != nil {
		return fmt.Errorf("failed to encode masked context: %w", err)
	}

	out := snap.Clone()
	out.Context = masked
	return m.next.Save(ctx, sessionID, out)
}

func (m *piiMiddleware) Load(ctx context.Context, sessionID string) (*domain.Snapshot, error) {
	return m.next.Load(ctx, sessionID)
}

func (m *piiMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

// mask walks a decoded JSON document. The document is freshly decoded, so it
// is modified in place.
func mask(v any, patterns []*regexp.Regexp) any {
	switch node := v.(type) {
	case map[string]any:
		for k, child := range node {
			if matchAny(k, patterns) {
				node[k] = redact(child)
				continue
			}
			node[k] = mask(child, patterns)
		}
	case []any:
		for i, child := range node {
			node[i] = mask(child, patterns)
		}
	}
	return v
}

// redact keeps the JSON type restorable: strings become Mask, anything else
// becomes null so typed contexts still decode.
func redact(v any) any {
	if _, ok := v.(string); ok {
		return Mask
	}
	return nil
}

func matchAny(key string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(key) {
			return true
		}
	}
	return false
}
