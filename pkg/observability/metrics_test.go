package observability_test

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"

	"github.com/aretw0/tablefsm/internal/logging"
	"github.com/aretw0/tablefsm/pkg/fsm"
	"github.com/aretw0/tablefsm/pkg/observability"
	"github.com/aretw0/tablefsm/pkg/rpn"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_CountsTransitions(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	m := rpn.New(fsm.WithLifecycleHooks(metrics.Hooks()))
	err := m.ProcessSequence(rpn.Symbols("12 +"))
	require.ErrorIs(t, err, rpn.ErrStackUnderflow)

	// '1' opens a number, '2' extends it, ' ' closes it, '+' underflows.
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Transitions.WithLabelValues("INIT", "BUILDING_NUMBER", "exact")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Transitions.WithLabelValues("BUILDING_NUMBER", "BUILDING_NUMBER", "exact")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Transitions.WithLabelValues("BUILDING_NUMBER", "INIT", "exact")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ActionErrs.WithLabelValues("INIT")))

	var count int
	count, err = testutil.GatherAndCount(reg, "tablefsm_action_errors_total")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestMetrics_CountsUndefined(t *testing.T) {
	metrics := observability.NewMetrics(nil)

	m := fsm.New[string, string]("A", struct{}{}, fsm.WithLifecycleHooks(metrics.Hooks()))
	m.AddTransition("go", "A", nil, "B")

	assert.Error(t, m.Process("stop"))
	require.NoError(t, m.Process("go"))
	assert.Error(t, m.Process("go"))

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Undefined.WithLabelValues("A")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Undefined.WithLabelValues("B")))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.Transitions.WithLabelValues("A", "B", "exact")))
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, slog.LevelDebug)

	m := fsm.New[string, string]("A", struct{}{}, fsm.WithLifecycleHooks(observability.LogHooks(logger)))
	m.AddTransition("go", "A", nil, "B")

	require.NoError(t, m.Process("go"))
	assert.Error(t, m.Process("go"))

	out := buf.String()
	assert.Contains(t, out, "transition")
	assert.Contains(t, out, "undefined transition")
	assert.Equal(t, 2, strings.Count(strings.TrimSpace(out), "\n")+1)
}
