package fsm_test

import (
	"errors"
	"testing"

	"github.com/aretw0/tablefsm/pkg/domain"
	"github.com/aretw0/tablefsm/pkg/fsm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noCtx struct{}

type registry = fsm.Registry[string, string, *noCtx]

func TestRegistry_ResolvePriority(t *testing.T) {
	r := fsm.NewRegistry[string, string, *noCtx]()
	r.AddTransition("a", "S", nil, "EXACT")
	r.AddTransitionAny("S", nil, "ANY")
	r.SetDefaultTransition(nil, "DEFAULT")

	tests := []struct {
		name   string
		symbol string
		state  string
		want   string
	}{
		{"exact wins over wildcard", "a", "S", "EXACT"},
		{"wildcard when no exact rule", "b", "S", "ANY"},
		{"default when neither matches", "a", "OTHER", "DEFAULT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rule, err := r.Resolve(tt.symbol, tt.state)
			require.NoError(t, err)
			assert.Equal(t, tt.want, rule.Next)
		})
	}
}

func TestRegistry_ResolveUndefined(t *testing.T) {
	r := fsm.NewRegistry[string, string, *noCtx]()
	r.AddTransition("a", "S", nil, "T")

	_, err := r.Resolve("x", "START")
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrTransitionUndefined))

	var undefined *domain.UndefinedTransitionError
	require.True(t, errors.As(err, &undefined))
	assert.Equal(t, "x", undefined.Symbol)
	assert.Equal(t, "START", undefined.State)
	assert.Equal(t, "transition is undefined: (x, START)", err.Error())
}

func TestRegistry_LastWriteWins(t *testing.T) {
	r := fsm.NewRegistry[string, string, *noCtx]()
	r.AddTransition("a", "S", nil, "FIRST")
	r.AddTransition("a", "S", nil, "SECOND")

	rule, err := r.Resolve("a", "S")
	require.NoError(t, err)
	assert.Equal(t, "SECOND", rule.Next)

	r.AddTransitionAny("S", nil, "ANY1")
	r.AddTransitionAny("S", nil, "ANY2")
	rule, err = r.Resolve("zz", "S")
	require.NoError(t, err)
	assert.Equal(t, "ANY2", rule.Next)

	r.SetDefaultTransition(nil, "D1")
	r.SetDefaultTransition(nil, "D2")
	rule, err = r.Resolve("zz", "Q")
	require.NoError(t, err)
	assert.Equal(t, "D2", rule.Next)
}

func TestRegistry_OmittedNextIsSelfLoop(t *testing.T) {
	r := fsm.NewRegistry[string, string, *noCtx]()
	r.AddTransition("a", "S", nil)
	r.AddTransitionList([]string{"b", "c"}, "L", nil)
	r.AddTransitionAny("W", nil)

	for _, tc := range []struct{ symbol, state string }{{"a", "S"}, {"b", "L"}, {"c", "L"}, {"q", "W"}} {
		rule, err := r.Resolve(tc.symbol, tc.state)
		require.NoError(t, err)
		assert.Equal(t, tc.state, rule.Next)
	}
}

func TestRegistry_AddTransitionList(t *testing.T) {
	r := fsm.NewRegistry[string, string, *noCtx]()
	r.AddTransitionList([]string{"x", "y", "z"}, "S", nil, "T")

	for _, s := range []string{"x", "y", "z"} {
		rule, err := r.Resolve(s, "S")
		require.NoError(t, err)
		assert.Equal(t, "T", rule.Next)
	}
	_, err := r.Resolve("w", "S")
	assert.ErrorIs(t, err, domain.ErrTransitionUndefined)
}

func TestRegistry_Describe(t *testing.T) {
	var r *registry = fsm.NewRegistry[string, string, *noCtx]()
	act := func(*fsm.Machine[string, string, *noCtx]) error { return nil }
	r.SetDefaultTransition(act, "ERR")
	r.AddTransitionAny("B", nil)
	r.AddTransition("y", "A", nil, "B")
	r.AddTransition("x", "A", act, "B")

	got := r.Describe()
	want := []domain.TransitionInfo{
		{Kind: domain.RuleExact, Symbol: "x", State: "A", Next: "B", HasAction: true},
		{Kind: domain.RuleExact, Symbol: "y", State: "A", Next: "B"},
		{Kind: domain.RuleAny, State: "B", Next: "B"},
		{Kind: domain.RuleDefault, Next: "ERR", HasAction: true},
	}
	assert.Equal(t, want, got)
}
