package cli

import (
	"context"
	"fmt"
	"time"
)

// ArchiveCommand handles the archive command
type ArchiveCommand struct {
	app          *App
	errorHandler *ErrorHandler
}

// NewArchiveCommand creates a new archive command handler
func NewArchiveCommand(app *App) *ArchiveCommand {
	return &ArchiveCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
	}
}

// Execute moves completed records that ended before the cutoff into the
// archive database. Without --before, everything up to the start of the
// current day is archived.
func (c *ArchiveCommand) Execute(ctx context.Context, before string) error {
	var cutoff time.Time
	if before == "" {
		now := time.Now()
		cutoff = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	} else {
		parsed, err := parseDateFlag("before", before, false)
		if err != nil {
			return c.errorHandler.HandleSimple(err)
		}
		cutoff = *parsed
	}

	moved, err := c.app.api.ArchiveBefore(ctx, cutoff)
	if err != nil {
		return c.errorHandler.Handle("archive records", err)
	}
	if moved == 0 {
		fmt.Println("Nothing to archive.")
		return nil
	}
	fmt.Printf("Archived %d records to %s\n", moved, c.app.config.ArchivePath())
	return nil
}
