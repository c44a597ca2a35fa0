package app

import (
	"io"
	"log/slog"

	"github.com/vk/datacheckgo/internal/model"
	"github.com/vk/datacheckgo/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logW     io.Writer
	logger   *slog.Logger
	config   *Config
	registry *registry.Registry
	model    *model.Model
}

// New constructs a fully initialized App with its own isolated logger and an
// empty registry. Report output goes to outW; structured logs go to logW.
func New(outW, logW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:     outW,
		logW:     logW,
		logger:   logger,
		config:   cfg,
		registry: registry.New(),
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Model returns the loaded resource model; nil until Run has loaded it.
func (a *App) Model() *model.Model {
	return a.model
}
