package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/server"

	"github.com/dshills/launchrank/internal/launcher"
)

const (
	// ServerName is the MCP server name
	ServerName = "launchrank"
	// ServerVersion is the current server version
	ServerVersion = "1.0.0"
)

// Server wraps the MCP server with the launcher it exposes
type Server struct {
	mcp      *server.MCPServer
	launcher *launcher.Launcher
}

// NewServer creates a new MCP server instance
func NewServer(l *launcher.Launcher) *Server {
	mcpServer := server.NewMCPServer(
		ServerName,
		ServerVersion,
	)

	s := &Server{
		mcp:      mcpServer,
		launcher: l,
	}
	s.registerTools()
	return s
}

// Serve starts the MCP server on stdio and blocks until shutdown
func (s *Server) Serve(ctx context.Context) error {
	return server.ServeStdio(s.mcp)
}

// registerTools registers all MCP tools
func (s *Server) registerTools() {
	s.mcp.AddTool(searchItemsTool(), s.handleSearchItems)
	s.mcp.AddTool(launchItemTool(), s.handleLaunchItem)
	s.mcp.AddTool(resolveIconTool(), s.handleResolveIcon)
	s.mcp.AddTool(listHistoryTool(), s.handleListHistory)
	s.mcp.AddTool(reloadCatalogTool(), s.handleReloadCatalog)
	s.mcp.AddTool(getStatusTool(), s.handleGetStatus)
}
