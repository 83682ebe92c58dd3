package cli

import (
	"context"
	"fmt"
	"time"

	"timetrack/internal/report"
)

// PauseCommand handles the pause command
type PauseCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewPauseCommand creates a new pause command handler
func NewPauseCommand(app *App) *PauseCommand {
	return &PauseCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute pauses the running record.
func (c *PauseCommand) Execute(ctx context.Context) error {
	record, err := c.app.api.Pause(ctx)
	if err != nil {
		return c.errorHandler.Handle("pause session", err)
	}
	fmt.Printf("Paused: %s (active %s)\n", record.TaskLabel, report.FormatDuration(record.ActiveDuration(time.Now())))
	return nil
}
