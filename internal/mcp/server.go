// Package mcp exposes the context resolution engine over the Model
// Context Protocol: JSON-RPC 2.0, line-delimited over stdio.
package mcp

import (
	"bufio"
	"io"
	"log/slog"
	"os"

	"paneswitch/internal/audit"
	"paneswitch/internal/engine"
	"paneswitch/internal/envelope"
)

// ToolHandler is a function that handles a tool call and returns an
// envelope response.
type ToolHandler func(params map[string]interface{}) (*envelope.Response, error)

// Server represents the MCP server
type Server struct {
	stdin   io.Reader
	stdout  io.Writer
	scanner *bufio.Scanner
	logger  *slog.Logger
	version string
	engine  *engine.Engine
	trail   *audit.Log // optional
	tools   map[string]ToolHandler
}

// NewServer creates an MCP server around the engine. trail may be nil
// when the audit trail is disabled.
func NewServer(version string, eng *engine.Engine, trail *audit.Log, logger *slog.Logger) *Server {
	s := &Server{
		stdin:   os.Stdin,
		stdout:  os.Stdout,
		logger:  logger,
		version: version,
		engine:  eng,
		trail:   trail,
		tools:   make(map[string]ToolHandler),
	}
	s.registerTools()
	return s
}

// Start starts the MCP server and begins processing messages
func (s *Server) Start() error {
	s.logger.Info("MCP server starting", "version", s.version)

	for {
		msg, err := s.readMessage()
		if err != nil {
			if err == io.EOF {
				s.logger.Info("MCP server shutting down (EOF)")
				return nil
			}
			s.logger.Error("error reading message", "error", err.Error())

			if msg != nil && msg.Id != nil {
				_ = s.writeError(msg.Id, ParseError, "failed to parse message: "+err.Error())
			}
			continue
		}

		response := s.handleMessage(msg)

		// Notifications don't generate responses.
		if response != nil {
			if err := s.writeMessage(response); err != nil {
				s.logger.Error("error writing response", "error", err.Error())
			}
		}
	}
}

// SetStdin sets the input stream (for testing)
func (s *Server) SetStdin(r io.Reader) {
	s.stdin = r
	s.scanner = nil
}

// SetStdout sets the output stream (for testing)
func (s *Server) SetStdout(w io.Writer) {
	s.stdout = w
}
