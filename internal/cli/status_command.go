package cli

import (
	"context"
	"os"
)

// StatusCommand handles the status command
type StatusCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewStatusCommand creates a new status command handler
func NewStatusCommand(app *App) *StatusCommand {
	return &StatusCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute prints the current session state and today's counted time.
func (c *StatusCommand) Execute(ctx context.Context) error {
	status, err := c.app.api.Status(ctx)
	if err != nil {
		return c.errorHandler.Handle("read session status", err)
	}
	renderStatus(os.Stdout, status, c.app.config.Report.TimeFormat)
	return nil
}
