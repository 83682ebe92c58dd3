package cli

import (
	"context"
	"fmt"
)

// StartCommand handles the start command
type StartCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewStartCommand creates a new start command handler
func NewStartCommand(app *App) *StartCommand {
	return &StartCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute starts tracking a new task. An empty label falls back to the
// configured default.
func (c *StartCommand) Execute(ctx context.Context, label string) error {
	record, err := c.app.api.Start(ctx, label)
	if err != nil {
		return c.errorHandler.Handle("start session", err)
	}
	fmt.Printf("Started tracking: %s\n", record.TaskLabel)
	return nil
}
