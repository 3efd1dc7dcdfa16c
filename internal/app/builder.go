package app

import (
	"io"

	"go.trai.ch/tasker/internal/adapters/settings"
	"go.trai.ch/tasker/internal/core/ports"
)

// Components contains all the initialized application components.
// This struct provides controlled access to components needed by the CLI layer.
type Components struct {
	App      *App
	Logger   ports.Logger
	Settings *settings.Settings
}

// NewComponents creates a new Components struct from dependencies.
func NewComponents(app *App, logger ports.Logger, cfg *settings.Settings) *Components {
	return &Components{
		App:      app,
		Logger:   logger,
		Settings: cfg,
	}
}

// Close releases resources held by the components, such as the log file.
func (c *Components) Close() error {
	if closer, ok := c.Logger.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
