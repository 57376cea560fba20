// ABOUTME: MCP server setup for the nutrition table.
// ABOUTME: Opens a short-lived storage connection for every tool and resource call.
package mcp

import (
	"context"

	"github.com/harperreed/nutrition/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// Opener returns a fresh repository; the caller closes it.
type Opener func() (storage.Repository, error)

// Server wraps the MCP server with storage access.
type Server struct {
	mcpServer *mcp.Server
	open      Opener
}

// NewServer creates a new MCP server backed by open.
func NewServer(open Opener) (*Server, error) {
	mcpServer := mcp.NewServer(
		&mcp.Implementation{
			Name:    "nutrition",
			Version: "1.0.0",
		},
		nil,
	)

	s := &Server{
		mcpServer: mcpServer,
		open:      open,
	}

	s.registerTools()
	s.registerResources()

	return s, nil
}

// Serve starts the MCP server using stdio transport.
func (s *Server) Serve(ctx context.Context) error {
	return s.mcpServer.Run(ctx, &mcp.StdioTransport{})
}

// withRepo runs fn against a repository that is closed afterwards.
func (s *Server) withRepo(fn func(storage.Repository) error) error {
	repo, err := s.open()
	if err != nil {
		return err
	}
	defer repo.Close()
	return fn(repo)
}
