package cli

import (
	"context"
	"fmt"
)

// ResumeCommand handles the resume command
type ResumeCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewResumeCommand creates a new resume command handler
func NewResumeCommand(app *App) *ResumeCommand {
	return &ResumeCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute resumes the paused record.
func (c *ResumeCommand) Execute(ctx context.Context) error {
	record, err := c.app.api.Resume(ctx)
	if err != nil {
		return c.errorHandler.Handle("resume session", err)
	}
	fmt.Printf("Resumed: %s\n", record.TaskLabel)
	return nil
}
