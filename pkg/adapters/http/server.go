// Package http exposes RPN evaluator sessions over a JSON API.
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aretw0/tablefsm/internal/input"
	"github.com/aretw0/tablefsm/internal/logging"
	"github.com/aretw0/tablefsm/internal/presentation/graph"
	"github.com/aretw0/tablefsm/pkg/domain"
	"github.com/aretw0/tablefsm/pkg/rpn"
	"github.com/aretw0/tablefsm/pkg/session"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Sessions is the session manager the API serves.
type Sessions = session.Manager[rpn.State, rune, *rpn.Calculator]

// InputRequest is the body of POST /sessions/{id}/input.
type InputRequest struct {
	Input string `json:"input"`
}

// InputResponse reports what one input line produced.
type InputResponse struct {
	SessionID   string   `json:"session_id"`
	State       string   `json:"state"`
	Output      []int64  `json:"output"`
	Diagnostics []string `json:"diagnostics"`
}

// ErrorResponse is returned with every non-2xx status.
type ErrorResponse struct {
	Error     string `json:"error"`
	SessionID string `json:"session_id,omitempty"`
	State     string `json:"state,omitempty"`
}

type options struct {
	logger    *slog.Logger
	gatherer  prometheus.Gatherer
	sanitizer input.Sanitizer
}

// Option configures the handler.
type Option func(*options)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithGatherer mounts GET /metrics for g.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(o *options) {
		o.gatherer = g
	}
}

// WithSanitizer sets the input limits.
func WithSanitizer(s input.Sanitizer) Option {
	return func(o *options) {
		o.sanitizer = s
	}
}

// Server handles the API routes.
type Server struct {
	sessions *Sessions
	opts     options
}

// NewHandler creates a new HTTP handler for the sessions.
func NewHandler(sessions *Sessions, opts ...Option) http.Handler {
	o := options{
		logger:    logging.NewNop(),
		sanitizer: input.New(input.DefaultMaxSize),
	}
	for _, opt := range opts {
		opt(&o)
	}
	s := &Server{sessions: sessions, opts: o}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Route("/sessions", func(r chi.Router) {
		r.Get("/", s.ListSessions)
		r.Get("/{id}", s.GetSession)
		r.Delete("/{id}", s.DeleteSession)
		r.Post("/{id}/input", s.Input)
	})
	r.Get("/graph", s.Graph)
	if o.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(o.gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

// Input handles POST /sessions/{id}/input.
func (s *Server) Input(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var body InputRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.opts.logger.Warn("Input: invalid request body", "session_id", id, "err", err)
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body", SessionID: id})
		return
	}

	line, err := s.opts.sanitizer.Clean(body.Input)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error(), SessionID: id})
		return
	}

	resp := InputResponse{SessionID: id, Output: []int64{}, Diagnostics: []string{}}
	err = s.sessions.Do(r.Context(), id, func(m *rpn.Machine) error {
		runErr := m.ProcessSequence(rpn.Symbols(line))
		out, diags := m.Context().TakeOutput()
		resp.Output = append(resp.Output, out...)
		resp.Diagnostics = append(resp.Diagnostics, diags...)
		resp.State = string(m.CurrentState())
		return runErr
	})
	if err != nil {
		status := http.StatusUnprocessableEntity
		if !domain.IsActionFailure(err) && !domain.IsUndefinedTransition(err) {
			status = http.StatusInternalServerError
		}
		s.opts.logger.Warn("Input failed", "session_id", id, "status", status, "err", err)
		writeJSON(w, status, ErrorResponse{Error: err.Error(), SessionID: id, State: resp.State})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// ListSessions handles GET /sessions.
func (s *Server) ListSessions(w http.ResponseWriter, r *http.Request) {
	ids, err := s.sessions.List(r.Context())
	if err != nil {
		s.opts.logger.Error("ListSessions failed", "err", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error()})
		return
	}
	if ids == nil {
		ids = []string{}
	}
	writeJSON(w, http.StatusOK, map[string][]string{"sessions": ids})
}

// GetSession handles GET /sessions/{id}.
func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	snap, err := s.sessions.Store().Load(r.Context(), id)
	if errors.Is(err, domain.ErrSessionNotFound) {
		writeJSON(w, http.StatusNotFound, ErrorResponse{Error: err.Error(), SessionID: id})
		return
	}
	if err != nil {
		s.opts.logger.Error("GetSession failed", "session_id", id, "err", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error(), SessionID: id})
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// DeleteSession handles DELETE /sessions/{id}.
func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.sessions.Delete(r.Context(), id); err != nil {
		s.opts.logger.Error("DeleteSession failed", "session_id", id, "err", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{Error: err.Error(), SessionID: id})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Graph handles GET /graph.
func (s *Server) Graph(w http.ResponseWriter, r *http.Request) {
	m := rpn.New()
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte(graph.GenerateMermaid(m.Describe(), &graph.Overlay{Initial: string(m.InitialState())})))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response encode failed", "err", err)
	}
}
