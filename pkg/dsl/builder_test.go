package dsl_test

import (
	"testing"

	"github.com/aretw0/tablefsm/pkg/dsl"
	"github.com/aretw0/tablefsm/pkg/table"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func turnstile() *dsl.Builder {
	b := dsl.New("turnstile", "LOCKED").Describe("Coin-operated turnstile.")
	b.State("LOCKED").On("coin").Do("emit_symbol").Go("UNLOCKED")
	b.State("UNLOCKED").On("push").Do("emit_symbol").Go("LOCKED")
	b.State("UNLOCKED").On("coin")
	b.Default("error", "LOCKED")
	return b
}

func TestBuilder_Turnstile(t *testing.T) {
	def, err := turnstile().Build()
	require.NoError(t, err)

	assert.Equal(t, table.TokenizeWords, def.Tokenize)
	require.Len(t, def.Transitions, 3)
	assert.Equal(t, table.TransitionSpec{Symbols: []string{"coin"}, State: "UNLOCKED"}, def.Transitions[2])

	m, err := def.Build(nil)
	require.NoError(t, err)

	require.NoError(t, m.ProcessSequence(def.TokenizeLine("coin coin push push")))
	assert.Equal(t, []string{"coin", "push", `undefined input: "push" in LOCKED`}, m.Context().TakeOutput())
	assert.Equal(t, "LOCKED", m.CurrentState())
}

func TestBuilder_CharsAndWildcard(t *testing.T) {
	b := dsl.New("digits", "IDLE").Chars()
	b.State("IDLE").OnChars("0123456789").Do("push").Go("NUM")
	b.State("NUM").OnChars("0123456789").Do("append")
	b.State("NUM").Any().Do("emit").Go("IDLE")
	b.State("IDLE").Any()

	def, err := b.Build()
	require.NoError(t, err)
	m, err := def.Build(nil)
	require.NoError(t, err)

	require.NoError(t, m.ProcessSequence(def.TokenizeLine("ab12c 7")))
	assert.Equal(t, []string{"12", "7"}, m.Context().TakeOutput())
}

func TestBuilder_BuildCopies(t *testing.T) {
	b := turnstile()
	first, err := b.Build()
	require.NoError(t, err)

	b.State("BROKEN").Any()
	b.Default("noop", "BROKEN")

	assert.Empty(t, first.Any)
	assert.Equal(t, "LOCKED", first.Default.Next)
}

func TestBuilder_Invalid(t *testing.T) {
	_, err := dsl.New("broken", "").Build()
	assert.ErrorIs(t, err, table.ErrInvalidTable)
}

func TestBuilder_EncodeRoundTrip(t *testing.T) {
	def, err := turnstile().Build()
	require.NoError(t, err)

	for _, format := range []table.Format{table.FormatYAML, table.FormatJSON} {
		t.Run(string(format), func(t *testing.T) {
			data, err := def.Encode(format)
			require.NoError(t, err)

			parsed, err := table.Parse(data, format)
			require.NoError(t, err)
			assert.Equal(t, def.Transitions, parsed.Transitions)
			assert.Equal(t, def.Default, parsed.Default)
			assert.Equal(t, def.Initial, parsed.Initial)
		})
	}
}
