package validator

import (
	"testing"

	"github.com/aretw0/tablefsm/pkg/dialog"
	"github.com/aretw0/tablefsm/pkg/dsl"
	"github.com/aretw0/tablefsm/pkg/rpn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateGraph(t *testing.T) {
	t.Run("valid chain", func(t *testing.T) {
		b := dsl.New("chain", "START")
		b.State("START").On("a").Go("A")
		b.State("A").On("b").Go("B")

		def, err := b.Build()
		require.NoError(t, err)
		m, err := def.Build(nil)
		require.NoError(t, err)

		assert.NoError(t, ValidateGraph(m.Describe(), def.Initial))
	})

	t.Run("unreachable island", func(t *testing.T) {
		b := dsl.New("island", "START")
		b.State("START").On("a").Go("A")
		b.State("GHOST").On("x").Go("HAUNT")

		def, err := b.Build()
		require.NoError(t, err)
		m, err := def.Build(nil)
		require.NoError(t, err)

		err = ValidateGraph(m.Describe(), def.Initial)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "found 2 errors")
		assert.Contains(t, err.Error(), "unreachable state: 'GHOST'")
		assert.Contains(t, err.Error(), "unreachable state: 'HAUNT'")
	})

	t.Run("default target is reachable", func(t *testing.T) {
		b := dsl.New("reset", "START")
		b.State("START").On("a").Go("A")
		b.State("RESET").On("go").Go("START")
		b.Default("noop", "RESET")

		def, err := b.Build()
		require.NoError(t, err)
		m, err := def.Build(nil)
		require.NoError(t, err)

		assert.NoError(t, ValidateGraph(m.Describe(), def.Initial))
	})

	t.Run("dead initial state", func(t *testing.T) {
		err := ValidateGraph(nil, "START")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "initial state 'START' has no transitions")
	})
}

func TestValidateGraph_BuiltinMachines(t *testing.T) {
	calc := rpn.New()
	assert.NoError(t, ValidateGraph(calc.Describe(), string(calc.InitialState())))

	d := dialog.New(nil, dialog.DefaultVocabulary())
	assert.NoError(t, ValidateGraph(d.Describe(), string(d.InitialState())))
}
