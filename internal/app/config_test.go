package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProjectFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "datacheck.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig(Config{ProjectPath: "./resources"}, "")
	require.NoError(t, err)

	assert.Equal(t, "./resources", cfg.ProjectPath)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 8, cfg.WorkerCount)
	assert.Empty(t, cfg.SnapshotPath)
}

func TestNewConfig_ProjectFileFillsUnsetFields(t *testing.T) {
	path := writeProjectFile(t, `
project_path = "./resources"
snapshot_path = "out/registry.snapshot"
log_format = "json"
log_level = "debug"
workers = 4
`)

	cfg, err := NewConfig(Config{}, path)
	require.NoError(t, err)

	assert.Equal(t, "./resources", cfg.ProjectPath)
	assert.Equal(t, "out/registry.snapshot", cfg.SnapshotPath)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 4, cfg.WorkerCount)
}

func TestNewConfig_FlagsWinOverProjectFile(t *testing.T) {
	path := writeProjectFile(t, `
project_path = "./from-file"
log_format = "json"
workers = 4
`)

	cfg, err := NewConfig(Config{
		ProjectPath: "./from-flag",
		LogFormat:   "text",
		WorkerCount: 2,
	}, path)
	require.NoError(t, err)

	assert.Equal(t, "./from-flag", cfg.ProjectPath)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 2, cfg.WorkerCount)
}

func TestNewConfig_UnreadableProjectFile(t *testing.T) {
	_, err := NewConfig(Config{}, filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read project file")
}

func TestNewConfig_MalformedProjectFile(t *testing.T) {
	path := writeProjectFile(t, `project_path = [broken`)

	_, err := NewConfig(Config{}, path)
	require.Error(t, err)
}

func TestNewConfig_Validation(t *testing.T) {
	testCases := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{
			name:    "missing project path",
			cfg:     Config{},
			wantErr: "project path is required",
		},
		{
			name:    "invalid log format",
			cfg:     Config{ProjectPath: "./r", LogFormat: "xml"},
			wantErr: "invalid log format",
		},
		{
			name:    "invalid log level",
			cfg:     Config{ProjectPath: "./r", LogLevel: "verbose"},
			wantErr: "invalid log level",
		},
		{
			name:    "negative worker count",
			cfg:     Config{ProjectPath: "./r", WorkerCount: -1},
			wantErr: "worker count must be positive",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewConfig(tc.cfg, "")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}
