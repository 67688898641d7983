// ABOUTME: Shared setup and formatting helpers for CLI commands
// ABOUTME: Loads env config, builds the logger, and resolves the case catalog
package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/harper/usecase-clinic/internal/catalog"
	"github.com/harper/usecase-clinic/internal/config"
	"github.com/harper/usecase-clinic/internal/logging"
	"github.com/joho/godotenv"
)

// app bundles what most commands need
type app struct {
	cfg     *config.Config
	logger  *log.Logger
	catalog *catalog.Catalog
	source  string
}

// loadApp reads .env and the environment, then loads the catalog.
// Logs go to logTo, which is stderr for everything but the terminal UI.
func loadApp(logTo io.Writer) (*app, error) {
	// Load .env if present
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	logger, err := logging.New(logTo, logOptions(cfg))
	if err != nil {
		return nil, err
	}

	path := catalogPath
	if path == "" {
		path = cfg.CatalogPath
	}
	cat, source, err := catalog.Load(path)
	if err != nil {
		return nil, err
	}
	logger.Debug("catalog loaded", "source", source, "cases", cat.Len())

	return &app{cfg: cfg, logger: logger, catalog: cat, source: source}, nil
}

func logOptions(cfg *config.Config) logging.Options {
	return logging.Options{
		Level:   cfg.LogLevel,
		Format:  cfg.LogFormat,
		Verbose: verbose,
		Quiet:   quiet,
	}
}

// isJSON reports whether --format asks for JSON
func isJSON() bool {
	return outputFormat == "json"
}

// writeJSON pretty-prints v to w
func writeJSON(w io.Writer, v interface{}) error {
	jsonData, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", jsonData)
	return err
}

// truncate shortens a string to maxLen, adding "..." if truncated
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// formatScore renders a score column, "-" when unscored
func formatScore(score *int) string {
	if score == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *score)
}
