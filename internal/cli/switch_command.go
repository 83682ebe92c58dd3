package cli

import (
	"context"
	"fmt"

	"timetrack/internal/report"
)

// SwitchCommand handles the switch command
type SwitchCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewSwitchCommand creates a new switch command handler
func NewSwitchCommand(app *App) *SwitchCommand {
	return &SwitchCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute seals the current record and starts tracking the new label.
func (c *SwitchCommand) Execute(ctx context.Context, label string) error {
	sealed, opened, err := c.app.api.Switch(ctx, label)
	if err != nil {
		return c.errorHandler.Handle("switch session", err)
	}
	fmt.Printf("Stopped: %s (active %s)\n", sealed.TaskLabel, report.FormatDuration(sealed.ActiveDuration(*sealed.EndTime)))
	fmt.Printf("Started tracking: %s\n", opened.TaskLabel)
	return nil
}
