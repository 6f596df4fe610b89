// ABOUTME: MCP server exposing the social engine to AI agents.
// ABOUTME: Provides tools, resources, and prompts for notes and interactions.

package mcp

import (
	"context"

	"github.com/harper/notely/internal/social"
	"github.com/modelcontextprotocol/go-sdk/mcp"
)

type Server struct {
	server *mcp.Server
	engine *social.Engine
}

func NewServer(engine *social.Engine, version string) *Server {
	s := &Server{engine: engine}

	s.server = mcp.NewServer(
		&mcp.Implementation{
			Name:    "notely",
			Version: version,
		},
		&mcp.ServerOptions{
			HasTools:     true,
			HasResources: true,
			HasPrompts:   true,
		},
	)

	s.registerTools()
	s.registerResources()
	s.registerPrompts()

	return s
}

func (s *Server) Serve(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}
