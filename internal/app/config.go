package app

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

// Config holds everything an App instance needs to run. CLI flags take
// precedence over the project file; unset fields fall back to defaults.
type Config struct {
	ProjectPath  string // resource files (.hcl, .suite.yaml)
	SnapshotPath string // optional msgpack snapshot written after a run

	LogFormat   string
	LogLevel    string
	WorkerCount int
}

// projectFile mirrors the optional datacheck.toml project settings file.
type projectFile struct {
	ProjectPath  string `toml:"project_path"`
	SnapshotPath string `toml:"snapshot_path"`
	LogFormat    string `toml:"log_format"`
	LogLevel     string `toml:"log_level"`
	Workers      int    `toml:"workers"`
}

// NewConfig merges flag-provided values with an optional TOML project file,
// applies defaults, and validates the result. Flag values win over file
// values; file values win over defaults.
func NewConfig(cfg Config, projectFilePath string) (*Config, error) {
	if projectFilePath != "" {
		var pf projectFile
		if _, err := toml.DecodeFile(projectFilePath, &pf); err != nil {
			return nil, fmt.Errorf("failed to read project file %s: %w", projectFilePath, err)
		}
		if cfg.ProjectPath == "" {
			cfg.ProjectPath = pf.ProjectPath
		}
		if cfg.SnapshotPath == "" {
			cfg.SnapshotPath = pf.SnapshotPath
		}
		if cfg.LogFormat == "" {
			cfg.LogFormat = pf.LogFormat
		}
		if cfg.LogLevel == "" {
			cfg.LogLevel = pf.LogLevel
		}
		if cfg.WorkerCount == 0 {
			cfg.WorkerCount = pf.Workers
		}
	}

	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.WorkerCount == 0 {
		cfg.WorkerCount = 8
	}

	if cfg.ProjectPath == "" {
		return nil, errors.New("a project path is required and cannot be empty")
	}
	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("invalid log format %q: must be 'text' or 'json'", cfg.LogFormat)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}
	if cfg.WorkerCount < 1 {
		return nil, fmt.Errorf("worker count must be positive, got %d", cfg.WorkerCount)
	}

	return &cfg, nil
}
