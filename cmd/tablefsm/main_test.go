package main

import (
	"bytes"
	"context"
	"os"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/aretw0/tablefsm"
	"github.com/aretw0/tablefsm/internal/config"
	"github.com/aretw0/tablefsm/internal/logging"
	"github.com/aretw0/tablefsm/pkg/domain"
	"github.com/aretw0/tablefsm/pkg/rpn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	err := rootCmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "tablefsm version "+tablefsm.Version+"\n", out)
}

func TestGraphCommand(t *testing.T) {
	t.Run("rpn by default", func(t *testing.T) {
		out, err := execute(t, "graph")
		require.NoError(t, err)
		assert.Contains(t, out, "INIT((\"INIT\"))")
	})

	t.Run("table file", func(t *testing.T) {
		out, err := execute(t, "graph", "--table", "../../examples/tables/turnstile.json")
		require.NoError(t, err)
		assert.Contains(t, out, "LOCKED((\"LOCKED\"))")
		assert.Contains(t, out, "LOCKED -- \"coin\" --> UNLOCKED")
	})

	t.Run("missing table", func(t *testing.T) {
		_, err := execute(t, "graph", "--table", "nope.yaml")
		assert.Error(t, err)
	})
}

func TestValidateCommand(t *testing.T) {
	for _, path := range []string{"../../examples/tables/rpn.yaml", "../../examples/tables/turnstile.json"} {
		out, err := execute(t, "validate", "--table", path)
		require.NoError(t, err)
		assert.Equal(t, path+": ok\n", out)
	}

	_, err := execute(t, "validate", "--table", "nope.yaml")
	assert.Error(t, err)
}

func TestSessionCommands(t *testing.T) {
	mr := miniredis.RunT(t)
	t.Chdir(t.TempDir())
	t.Setenv("TABLEFSM_REDIS_ADDR", mr.Addr())

	cfg, err := config.Load()
	require.NoError(t, err)
	mgr, closeStore, err := newSessions(cfg, logging.NewNop())
	require.NoError(t, err)
	defer closeStore()
	require.NoError(t, mgr.Do(context.Background(), "calc", func(m *rpn.Machine) error {
		return m.ProcessSequence(rpn.Symbols("40 2"))
	}))

	out, err := execute(t, "session", "ls")
	require.NoError(t, err)
	assert.Equal(t, "- calc\n", out)

	out, err = execute(t, "session", "inspect", "calc")
	require.NoError(t, err)
	assert.Contains(t, out, `"state": "INIT"`)

	out, err = execute(t, "session", "rm", "calc")
	require.NoError(t, err)
	assert.Equal(t, "Removed session 'calc'\n", out)

	out, err = execute(t, "session", "ls")
	require.NoError(t, err)
	assert.Equal(t, "No sessions found.\n", out)

	_, err = execute(t, "session", "inspect", "calc")
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
}

func TestRPNCommand_LocalIgnoresServerConfig(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TABLEFSM_ENCRYPTION_KEY", "not-a-key")

	stdin, err := os.CreateTemp(t.TempDir(), "stdin")
	require.NoError(t, err)
	_, err = stdin.WriteString("quit\n")
	require.NoError(t, err)
	_, err = stdin.Seek(0, 0)
	require.NoError(t, err)
	saved := os.Stdin
	os.Stdin = stdin
	t.Cleanup(func() {
		os.Stdin = saved
		_ = stdin.Close()
		_ = rpnCmd.Flags().Set("session", "")
	})

	_, err = execute(t, "rpn", "--no-banner")
	require.NoError(t, err)

	_, err = execute(t, "rpn", "--no-banner", "--session", "s1")
	assert.ErrorIs(t, err, config.ErrParsingConfig)
}
