package cli

import (
	"context"
	"fmt"

	"timetrack/internal/report"
)

// EndCommand handles the end command
type EndCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewEndCommand creates a new end command handler
func NewEndCommand(app *App) *EndCommand {
	return &EndCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute seals the current record and returns the session to idle.
func (c *EndCommand) Execute(ctx context.Context) error {
	record, err := c.app.api.End(ctx)
	if err != nil {
		return c.errorHandler.Handle("end session", err)
	}
	fmt.Printf("Stopped: %s (active %s)\n", record.TaskLabel, report.FormatDuration(record.ActiveDuration(*record.EndTime)))
	return nil
}
