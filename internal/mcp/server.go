// ABOUTME: Builds the MCP server with every clinic tool registered
// ABOUTME: Shared by the clinic mcp command and the standalone server binary
package mcp

import (
	"github.com/charmbracelet/log"
	"github.com/harper/usecase-clinic/internal/core"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewServer creates an MCP server over a router
func NewServer(name, version string, router *core.Router, logger *log.Logger) (*mcpserver.MCPServer, *Handlers) {
	server := mcpserver.NewMCPServer(
		name,
		version,
		mcpserver.WithToolCapabilities(false),
	)
	handlers := RegisterTools(server, router, logger)
	return server, handlers
}
