package cli

import (
	"timetrack/internal/api"
	"timetrack/internal/config"
)

// App bundles the injected API and effective configuration for the command
// handlers.
type App struct {
	api    api.API
	config *config.Config
}

// NewApp creates a new CLI application instance with dependency injection
func NewApp(apiInstance api.API, cfg *config.Config) *App {
	return &App{
		api:    apiInstance,
		config: cfg,
	}
}
