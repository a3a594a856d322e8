package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// DefaultOutput is where the document is written when neither a flag nor
// ISSUEFLOW_OUTPUT names a path. It is relative to the home directory.
const DefaultOutput = "homelab/smartsheets-issue-monitor/smartsheets-issue-monitor-flow.json"

type Config struct {
	DataDir           string
	DBPath            string
	UserCatalogDir    string
	ProjectCatalogDir string
	OutputPath        string
	LogLevel          slog.Level
}

func New() (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	dataDir := getEnv("ISSUEFLOW_DATA_DIR", filepath.Join(homeDir, ".issueflow"))

	level, err := parseLevel(getEnv("ISSUEFLOW_LOG_LEVEL", "warn"))
	if err != nil {
		return nil, err
	}

	c := &Config{
		DataDir:           dataDir,
		DBPath:            filepath.Join(dataDir, "issueflow.db"),
		UserCatalogDir:    filepath.Join(dataDir, "catalogs"),
		ProjectCatalogDir: ".issueflow/catalogs",
		OutputPath:        getEnv("ISSUEFLOW_OUTPUT", filepath.Join(homeDir, DefaultOutput)),
		LogLevel:          level,
	}

	return c, nil
}

func (c *Config) EnsureDataDir() error {
	if err := os.MkdirAll(c.DataDir, 0755); err != nil {
		return err
	}
	if err := os.MkdirAll(c.UserCatalogDir, 0755); err != nil {
		return err
	}
	return nil
}

// CatalogDirs lists the directories searched for catalog overrides, project first.
func (c *Config) CatalogDirs() []string {
	return []string{c.ProjectCatalogDir, c.UserCatalogDir}
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q", s)
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
