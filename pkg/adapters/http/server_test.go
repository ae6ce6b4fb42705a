package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/aretw0/tablefsm/internal/input"
	"github.com/aretw0/tablefsm/pkg/adapters/memory"
	"github.com/aretw0/tablefsm/pkg/domain"
	"github.com/aretw0/tablefsm/pkg/fsm"
	"github.com/aretw0/tablefsm/pkg/observability"
	"github.com/aretw0/tablefsm/pkg/rpn"
	"github.com/aretw0/tablefsm/pkg/session"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	factory := func() *rpn.Machine {
		return rpn.New(fsm.WithLifecycleHooks(metrics.Hooks()))
	}
	mgr := session.NewManager(memory.NewStore(), factory)
	opts = append([]Option{WithGatherer(reg)}, opts...)
	return NewHandler(mgr, opts...)
}

func do(h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestInput_Evaluates(t *testing.T) {
	h := newTestHandler(t)

	w := do(h, http.MethodPost, "/sessions/s1/input", `{"input": "5 10 * ="}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	resp := decode[InputResponse](t, w)
	assert.Equal(t, "s1", resp.SessionID)
	assert.Equal(t, "INIT", resp.State)
	assert.Equal(t, []int64{50}, resp.Output)
	assert.Empty(t, resp.Diagnostics)
}

func TestInput_StackPersists(t *testing.T) {
	h := newTestHandler(t)

	require.Equal(t, http.StatusOK, do(h, http.MethodPost, "/sessions/s1/input", `{"input": "2 3"}`).Code)
	w := do(h, http.MethodPost, "/sessions/s1/input", `{"input": "+ ="}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []int64{5}, decode[InputResponse](t, w).Output)
}

func TestInput_Diagnostics(t *testing.T) {
	h := newTestHandler(t)

	w := do(h, http.MethodPost, "/sessions/s1/input", `{"input": "5x"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{rpn.DoesNotCompute + " 'x'"}, decode[InputResponse](t, w).Diagnostics)
}

func TestInput_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		opts   []Option
		status int
	}{
		{"Engine Error", `{"input": "+"}`, nil, http.StatusUnprocessableEntity},
		{"Division By Zero", `{"input": "1 0 /"}`, nil, http.StatusUnprocessableEntity},
		{"Bad JSON", `{"input":`, nil, http.StatusBadRequest},
		{"Too Large", `{"input": "1 2 3 4 5"}`, []Option{WithSanitizer(input.New(4))}, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t, tt.opts...)
			w := do(h, http.MethodPost, "/sessions/s1/input", tt.body)
			assert.Equal(t, tt.status, w.Code)
			assert.NotEmpty(t, decode[ErrorResponse](t, w).Error)
		})
	}
}

func TestSessions_Lifecycle(t *testing.T) {
	h := newTestHandler(t)

	w := do(h, http.MethodGet, "/sessions/ghost", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	require.Equal(t, http.StatusOK, do(h, http.MethodPost, "/sessions/a/input", `{"input": "7"}`).Code)
	require.Equal(t, http.StatusOK, do(h, http.MethodPost, "/sessions/b/input", `{"input": "8"}`).Code)

	w = do(h, http.MethodGet, "/sessions", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"a", "b"}, decode[map[string][]string](t, w)["sessions"])

	w = do(h, http.MethodGet, "/sessions/a", "")
	require.Equal(t, http.StatusOK, w.Code)
	snap := decode[domain.Snapshot](t, w)
	assert.JSONEq(t, `"INIT"`, string(snap.State))
	assert.JSONEq(t, `{"stack":[7]}`, string(snap.Context))

	assert.Equal(t, http.StatusNoContent, do(h, http.MethodDelete, "/sessions/a", "").Code)
	assert.Equal(t, http.StatusNotFound, do(h, http.MethodGet, "/sessions/a", "").Code)
}

func TestGraph(t *testing.T) {
	w := do(newTestHandler(t), http.MethodGet, "/graph", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, strings.HasPrefix(w.Body.String(), "graph TD\n"))
	assert.Contains(t, w.Body.String(), "INIT((\"INIT\"))")
}

func TestMetrics(t *testing.T) {
	h := newTestHandler(t)
	require.Equal(t, http.StatusOK, do(h, http.MethodPost, "/sessions/s1/input", `{"input": "1 ="}`).Code)

	w := do(h, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `tablefsm_transitions_total{from="INIT",kind="exact",to="BUILDING_NUMBER"} 1`)
}
