package middleware_test

import (
	"context"
	"testing"

	"github.com/aretw0/tablefsm/pkg/adapters/memory"
	"github.com/aretw0/tablefsm/pkg/persistence/middleware"
	"github.com/aretw0/tablefsm/pkg/rpn"
	"github.com/aretw0/tablefsm/pkg/session"
	"github.com/aretw0/tablefsm/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPIIMiddleware_Masking(t *testing.T) {
	underlying := memory.NewStore()
	mw, err := middleware.NewPIIMiddleware([]string{"password", "ssn"})
	require.NoError(t, err)
	store := mw(underlying)

	ctx := context.Background()
	snap := newSnapshot(`{"username":"jdoe","user_password":"secret123","details":{"address":"123 St","ssn_number":"999"},"list":[{"ssn":"1"}]}`)
	require.NoError(t, store.Save(ctx, "pii", snap))

	stored, err := store.Load(ctx, "pii")
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"username":"jdoe","user_password":"***","details":{"address":"123 St","ssn_number":"***"},"list":[{"ssn":"***"}]}`,
		string(stored.Context))
	assert.Contains(t, string(snap.Context), "secret123", "caller's snapshot is untouched")
}

func TestPIIMiddleware_NonStringValuesBecomeNull(t *testing.T) {
	underlying := memory.NewStore()
	mw, err := middleware.NewPIIMiddleware([]string{"^pin$", "^cards$"})
	require.NoError(t, err)
	store := mw(underlying)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "n", newSnapshot(`{"pin":1234,"cards":["a","b"],"name":"x"}`)))

	stored, err := store.Load(ctx, "n")
	require.NoError(t, err)
	assert.JSONEq(t, `{"pin":null,"cards":null,"name":"x"}`, string(stored.Context))
}

func TestPIIMiddleware_MaskedSessionStillLoads(t *testing.T) {
	mw, err := middleware.NewPIIMiddleware([]string{"^stack$", "^diagnostics$"})
	require.NoError(t, err)
	mgr := session.NewManager(mw(memory.NewStore()), func() *rpn.Machine { return rpn.New() })
	ctx := context.Background()

	require.NoError(t, mgr.Do(ctx, "s", func(m *rpn.Machine) error {
		return m.ProcessSequence(rpn.Symbols("5 10"))
	}))

	var out []int64
	err = mgr.Do(ctx, "s", func(m *rpn.Machine) error {
		err := m.ProcessSequence(rpn.Symbols("7 ="))
		out, _ = m.Context().TakeOutput()
		return err
	})
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, out, "the masked stack comes back empty")
}

func TestPIIMiddleware_InvalidPattern(t *testing.T) {
	_, err := middleware.NewPIIMiddleware([]string{"("})
	assert.Error(t, err)
}

func TestChain_MaskThenEncrypt(t *testing.T) {
	underlying := memory.NewStore()
	pii, err := middleware.NewPIIMiddleware([]string{"^PASSWORD$"})
	require.NoError(t, err)
	store := middleware.Chain(underlying,
		pii,
		middleware.NewEncryptionMiddleware(middleware.EncryptionConfig{ActiveKey: generateKey(t)}),
	)

	// A table machine storing symbols per state in its vars.
	def, err := table.Parse([]byte(`
initial: USER
transitions:
  - {chars: "abcdefghijklmnopqrstuvwxyz", state: USER, action: store, next: PASSWORD}
  - {chars: "abcdefghijklmnopqrstuvwxyz", state: PASSWORD, action: store, next: USER}
tokenize: chars
`), table.FormatYAML)
	require.NoError(t, err)
	m, err := def.Build(nil)
	require.NoError(t, err)
	require.NoError(t, m.ProcessSequence([]string{"u", "p"}))

	snap, err := m.Snapshot()
	require.NoError(t, err)
	ctx := context.Background()
	require.NoError(t, store.Save(ctx, "t", snap))

	raw, err := underlying.Load(ctx, "t")
	require.NoError(t, err)
	assert.NotContains(t, string(raw.Context), `"USER"`)

	loaded, err := store.Load(ctx, "t")
	require.NoError(t, err)
	assert.JSONEq(t, `{"stack":null,"vars":{"USER":"u","PASSWORD":"***"}}`, string(loaded.Context))
}
