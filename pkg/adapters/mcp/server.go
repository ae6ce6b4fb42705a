// Package mcp exposes the RPN evaluator as Model Context Protocol tools.
package mcp

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/aretw0/tablefsm/internal/input"
	"github.com/aretw0/tablefsm/internal/logging"
	"github.com/aretw0/tablefsm/internal/presentation/graph"
	"github.com/aretw0/tablefsm/pkg/domain"
	"github.com/aretw0/tablefsm/pkg/rpn"
	"github.com/aretw0/tablefsm/pkg/session"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// GraphURI is the resource holding the evaluator's Mermaid graph.
const GraphURI = "tablefsm://rpn/graph"

// Sessions is the session manager behind rpn_session_input.
type Sessions = session.Manager[rpn.State, rune, *rpn.Calculator]

// EvaluateArgs are the arguments of evaluate_rpn.
type EvaluateArgs struct {
	Expression string `json:"expression"`
}

// SessionInputArgs are the arguments of rpn_session_input.
type SessionInputArgs struct {
	SessionID string `json:"session_id"`
	Input     string `json:"input"`
}

// EvaluateResult aligns with the HTTP API's input response.
type EvaluateResult struct {
	SessionID   string   `json:"session_id,omitempty" jsonschema_description:"Session the input was applied to"`
	State       string   `json:"state" jsonschema_description:"Evaluator state after the input"`
	Output      []int64  `json:"output" jsonschema_description:"Values emitted by '='"`
	Diagnostics []string `json:"diagnostics" jsonschema_description:"Messages for input that does not compute"`
}

type options struct {
	logger    *slog.Logger
	sanitizer input.Sanitizer
}

// Option configures the Server.
type Option func(*options)

// WithLogger sets the server logger. It must not write to stdout when serving stdio.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithSanitizer sets the input limits.
func WithSanitizer(s input.Sanitizer) Option {
	return func(o *options) {
		o.sanitizer = s
	}
}

// Server wraps the evaluator sessions and exposes them as an MCP Server.
type Server struct {
	sessions  *Sessions
	opts      options
	mcpServer *server.MCPServer
}

// NewServer creates a new MCP Server instance.
func NewServer(sessions *Sessions, version string, opts ...Option) *Server {
	o := options{
		logger:    logging.NewNop(),
		sanitizer: input.New(input.DefaultMaxSize),
	}
	for _, opt := range opts {
		opt(&o)
	}
	s := &Server{
		sessions: sessions,
		opts:     o,
		mcpServer: server.NewMCPServer("tablefsm-mcp", strings.TrimSpace(version),
			server.WithToolCapabilities(false),
			server.WithResourceCapabilities(false, false),
		),
	}
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying protocol server.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func (s *Server) registerTools() {
	evaluateTool := mcp.NewTool("evaluate_rpn",
		mcp.WithDescription("Evaluate an RPN expression on a fresh stack, e.g. '5 10 * ='. Integers only; '=' emits the top of the stack."),
		mcp.WithString("expression", mcp.Required(), mcp.Description("Space separated numbers and operators (+ - * / =)")),
		mcp.WithOutputSchema[EvaluateResult](),
	)
	s.mcpServer.AddTool(evaluateTool, mcp.NewStructuredToolHandler(s.handleEvaluate))

	sessionTool := mcp.NewTool("rpn_session_input",
		mcp.WithDescription("Feed a line to a persistent RPN session. The stack survives between calls with the same session_id."),
		mcp.WithString("session_id", mcp.Required(), mcp.Description("Session identifier")),
		mcp.WithString("input", mcp.Required(), mcp.Description("Line of RPN input")),
		mcp.WithOutputSchema[EvaluateResult](),
	)
	s.mcpServer.AddTool(sessionTool, mcp.NewStructuredToolHandler(s.handleSessionInput))

	s.mcpServer.AddTool(mcp.NewTool("describe_rpn",
		mcp.WithDescription("Describe the evaluator's transition table as a Mermaid graph and a rule list."),
	), func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		rules, mermaid := describe()
		return mcp.NewToolResultStructured(map[string]any{"transitions": rules}, mermaid), nil
	})
}

func (s *Server) handleEvaluate(ctx context.Context, request mcp.CallToolRequest, args EvaluateArgs) (EvaluateResult, error) {
	line, err := s.opts.sanitizer.Clean(args.Expression)
	if err != nil {
		s.opts.logger.Warn("MCP evaluate_rpn: input rejected", "err", err, "size", len(args.Expression))
		return EvaluateResult{}, fmt.Errorf("input rejected: %w", err)
	}

	m := rpn.New()
	if err := m.ProcessSequence(rpn.Symbols(line)); err != nil {
		return EvaluateResult{}, err
	}
	return result("", m), nil
}

func (s *Server) handleSessionInput(ctx context.Context, request mcp.CallToolRequest, args SessionInputArgs) (EvaluateResult, error) {
	if args.SessionID == "" {
		return EvaluateResult{}, fmt.Errorf("session_id is required")
	}
	line, err := s.opts.sanitizer.Clean(args.Input)
	if err != nil {
		s.opts.logger.Warn("MCP rpn_session_input: input rejected", "session_id", args.SessionID, "err", err)
		return EvaluateResult{}, fmt.Errorf("input rejected: %w", err)
	}

	var res EvaluateResult
	err = s.sessions.Do(ctx, args.SessionID, func(m *rpn.Machine) error {
		runErr := m.ProcessSequence(rpn.Symbols(line))
		res = result(args.SessionID, m)
		return runErr
	})
	if err != nil {
		return EvaluateResult{}, err
	}
	return res, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(GraphURI, "RPN evaluator graph",
		mcp.WithMIMEType("text/plain"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		_, mermaid := describe()
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      GraphURI,
				MIMEType: "text/plain",
				Text:     mermaid,
			},
		}, nil
	})
}

func result(sessionID string, m *rpn.Machine) EvaluateResult {
	out, diags := m.Context().TakeOutput()
	res := EvaluateResult{
		SessionID:   sessionID,
		State:       string(m.CurrentState()),
		Output:      out,
		Diagnostics: diags,
	}
	if res.Output == nil {
		res.Output = []int64{}
	}
	if res.Diagnostics == nil {
		res.Diagnostics = []string{}
	}
	return res
}

func describe() ([]domain.TransitionInfo, string) {
	m := rpn.New()
	rules := m.Describe()
	return rules, graph.GenerateMermaid(rules, &graph.Overlay{Initial: string(m.InitialState())})
}
