// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Lets LLM agents like Claude play clinic cases via stdio
package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/harper/usecase-clinic/internal/core"
	"github.com/harper/usecase-clinic/internal/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs the clinic as an MCP (Model Context Protocol) server, enabling
LLM agents like Claude to list cases, question agents, submit phases
and read scores via stdio.

Tools: list_cases, start_case, ask_question, select_diagnosis,
select_prescription, submit_phase, get_session, get_progress,
exit_session, reset_progress.

Progress lives in memory for the lifetime of the server.`,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by Claude Desktop)
  clinic mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "clinic": {
  #       "command": "clinic",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	a, err := loadApp(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	progress := core.NewProgress()
	router := core.NewRouter(a.cfg.Title, a.catalog, core.WithLogger(a.logger), core.WithProgress(progress))
	server, _ := mcp.NewServer(a.cfg.MCPName, a.cfg.MCPVersion, router, a.logger)

	// Setup graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.logger.Info("MCP server starting on stdio", "name", a.cfg.MCPName, "catalog", a.source, "cases", a.catalog.Len())

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- mcpserver.ServeStdio(server)
	}()

	// Wait for shutdown signal or server error
	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	}

	summary := progress.Snapshot()
	a.logger.Info("MCP server stopped", "completed", len(summary.Completed), "aggregate", summary.Aggregate)
	return nil
}
