package domain

// TransitionInfo is a flat description of one registered rule.
// Symbol is empty for wildcard and default rules; State is empty for the default rule.
type TransitionInfo struct {
	Kind      RuleKind `json:"kind"`
	Symbol    string   `json:"symbol,omitempty"`
	State     string   `json:"state,omitempty"`
	Next      string   `json:"next"`
	HasAction bool     `json:"has_action"`
}
