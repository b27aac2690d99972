// Package server exposes the feedback tools over MCP stdio. All protocol
// handling belongs to mcp-go; this package owns tool registration and the
// invocation orchestration around the collector.
package server

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/server"

	"github.com/yolodolo42/checkback/internal/collector"
	"github.com/yolodolo42/checkback/internal/feedback"
)

const serverName = "checkback"

// CollectFunc is the external human-feedback collector. Exactly one call
// per tool invocation; it either completes with a result or reports
// collector.ErrCancelled.
type CollectFunc func(ctx context.Context, req collector.Request) (*feedback.FeedbackResult, error)

// Server wires the MCP tool surface to the feedback pipeline.
type Server struct {
	mcp       *server.MCPServer
	collect   CollectFunc
	dataDir   string
	choiceLog *feedback.ChoiceLog
}

// Option configures a Server.
type Option func(*Server)

// WithCollector replaces the terminal collector, used by tests.
func WithCollector(fn CollectFunc) Option {
	return func(s *Server) { s.collect = fn }
}

// New builds the MCP server with both tools registered. dataDir holds the
// settings file and the choice decision log.
func New(dataDir, version string, opts ...Option) *Server {
	s := &Server{
		collect: collector.Collect,
		dataDir: dataDir,
	}
	for _, opt := range opts {
		opt(s)
	}

	choiceLog, err := feedback.NewChoiceLog(dataDir)
	if err != nil {
		slog.Warn("choice log unavailable", "error", err)
	} else {
		s.choiceLog = choiceLog
	}

	s.mcp = server.NewMCPServer(serverName, version,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)
	s.mcp.AddTool(interactiveFeedbackTool(), s.handleInteractiveFeedback)
	s.mcp.AddTool(systemInfoTool(), s.handleSystemInfo)

	return s
}

// Serve runs the stdio transport until the client disconnects.
func (s *Server) Serve() error {
	defer s.choiceLog.Close()
	return server.ServeStdio(s.mcp)
}
