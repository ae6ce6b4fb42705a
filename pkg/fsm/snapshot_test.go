package fsm_test

import (
	"testing"

	"github.com/aretw0/tablefsm/pkg/fsm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type counter struct {
	Hits   int    `json:"hits"`
	secret string // not persisted
}

func TestMachine_SnapshotRestore(t *testing.T) {
	build := func(c *counter) *fsm.Machine[string, rune, *counter] {
		m := fsm.New[string, rune]("IDLE", c)
		m.AddTransitionAny("IDLE", func(m *fsm.Machine[string, rune, *counter]) error {
			m.Context().Hits++
			return nil
		}, "BUSY")
		m.AddTransitionAny("BUSY", func(m *fsm.Machine[string, rune, *counter]) error {
			m.Context().Hits++
			return nil
		}, "IDLE")
		return m
	}

	src := build(&counter{})
	require.NoError(t, src.ProcessSequence([]rune("abc")))

	snap, err := src.Snapshot()
	require.NoError(t, err)
	assert.JSONEq(t, `"BUSY"`, string(snap.State))
	assert.JSONEq(t, `99`, string(snap.LastSymbol))
	assert.JSONEq(t, `{"hits":3}`, string(snap.Context))

	ctx := &counter{secret: "kept"}
	dst := build(ctx)
	require.NoError(t, dst.Restore(snap))

	assert.Equal(t, "BUSY", dst.CurrentState())
	last, ok := dst.LastSymbol()
	assert.True(t, ok)
	assert.Equal(t, 'c', last)
	assert.Same(t, ctx, dst.Context())
	assert.Equal(t, 3, ctx.Hits)
	assert.Equal(t, "kept", ctx.secret)

	require.NoError(t, dst.Process('d'))
	assert.Equal(t, "IDLE", dst.CurrentState())
	assert.Equal(t, 4, ctx.Hits)
}

func TestMachine_SnapshotAfterReset(t *testing.T) {
	m := fsm.New[string, string]("A", &counter{})
	m.AddTransitionAny("A", nil, "B")
	require.NoError(t, m.Process("x"))
	m.Reset()

	snap, err := m.Snapshot()
	require.NoError(t, err)
	assert.Empty(t, snap.LastSymbol)

	other := fsm.New[string, string]("Z", &counter{})
	require.NoError(t, other.Restore(snap))
	assert.Equal(t, "A", other.CurrentState())
	_, ok := other.LastSymbol()
	assert.False(t, ok)
}

func TestMachine_RestoreRejectsGarbage(t *testing.T) {
	m := fsm.New[string, string]("A", &counter{})
	assert.Error(t, m.Restore(nil))

	snap, err := m.Snapshot()
	require.NoError(t, err)
	snap.State = []byte(`42`)
	assert.Error(t, m.Restore(snap))
	assert.Equal(t, "A", m.CurrentState())
}
