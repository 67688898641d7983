// ABOUTME: Centralized configuration for the clinic CLI and MCP server
// ABOUTME: Loads from environment variables with validation and defaults
package config

import (
	"fmt"
	"os"
	"strings"
)

// DefaultTitle is shown in the header when CLINIC_TITLE is unset
const DefaultTitle = "AI Use-Case Clinic"

var (
	validLevels  = []string{"debug", "info", "warn", "error"}
	validFormats = []string{"text", "json", "logfmt"}
)

// Config holds all configuration for the clinic
type Config struct {
	// Content settings
	CatalogPath string
	Title       string

	// Logging settings
	LogLevel  string
	LogFormat string

	// MCP settings
	MCPName    string
	MCPVersion string

	// Display settings
	ShowVisibility bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		// Defaults
		CatalogPath:    os.Getenv("CLINIC_CATALOG"),
		Title:          getEnv("CLINIC_TITLE", DefaultTitle),
		LogLevel:       strings.ToLower(getEnv("CLINIC_LOG_LEVEL", "info")),
		LogFormat:      strings.ToLower(getEnv("CLINIC_LOG_FORMAT", "text")),
		MCPName:        getEnv("CLINIC_MCP_NAME", DefaultTitle),
		MCPVersion:     getEnv("CLINIC_MCP_VERSION", "0.1.0"),
		ShowVisibility: getEnvBool("CLINIC_SHOW_VISIBILITY", true),
	}

	return cfg, cfg.Validate()
}

func (c *Config) Validate() error {
	if !contains(validLevels, c.LogLevel) {
		return fmt.Errorf("CLINIC_LOG_LEVEL must be one of %s, got %q", strings.Join(validLevels, "|"), c.LogLevel)
	}
	if !contains(validFormats, c.LogFormat) {
		return fmt.Errorf("CLINIC_LOG_FORMAT must be one of %s, got %q", strings.Join(validFormats, "|"), c.LogFormat)
	}
	if strings.TrimSpace(c.Title) == "" {
		return fmt.Errorf("CLINIC_TITLE must not be blank")
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	return v == "true" || v == "1"
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}
