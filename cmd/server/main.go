// ABOUTME: Standalone entry point for the clinic MCP server with stdio transport
// ABOUTME: Loads config and catalog, then serves the quiz tools without the CLI
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/harper/usecase-clinic/internal/catalog"
	"github.com/harper/usecase-clinic/internal/config"
	"github.com/harper/usecase-clinic/internal/core"
	"github.com/harper/usecase-clinic/internal/logging"
	"github.com/harper/usecase-clinic/internal/mcp"
	"github.com/joho/godotenv"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

func main() {
	// Load .env file if it exists
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("invalid configuration", "err", err)
	}

	logger, err := logging.NewStderr(logging.Options{Level: cfg.LogLevel, Format: cfg.LogFormat})
	if err != nil {
		log.Fatal("failed to build logger", "err", err)
	}
	if envErr != nil {
		logger.Debug("no .env file found", "err", envErr)
	}

	cat, source, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		logger.Fatal("failed to load catalog", "err", err)
	}

	progress := core.NewProgress()
	router := core.NewRouter(cfg.Title, cat, core.WithLogger(logger), core.WithProgress(progress))
	server, _ := mcp.NewServer(cfg.MCPName, cfg.MCPVersion, router, logger)

	// Stdout carries the protocol; logs stay on stderr
	logger.Info("clinic MCP server starting on stdio", "catalog", source, "cases", cat.Len())
	err = mcpserver.ServeStdio(server)
	summary := progress.Snapshot()
	logger.Info("clinic MCP server stopped", "completed", len(summary.Completed), "aggregate", summary.Aggregate)
	if err != nil {
		logger.Error("server error", "err", err)
		os.Exit(1)
	}
}
