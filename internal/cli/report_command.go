package cli

import (
	"context"
	"os"
	"time"

	"timetrack/internal/api"
	"timetrack/internal/errors"
	"timetrack/internal/report"
	"timetrack/internal/validation"
)

// ReportFlags carries the parsed report command flags.
type ReportFlags struct {
	Format         string
	Since          string
	Until          string
	PerRecord      bool
	IncludeArchive bool
}

// ReportCommand handles the report command
type ReportCommand struct {
	app          *App
	errorHandler *ErrorHandler
	validator    *validation.Validator
}

// NewReportCommand creates a new report command handler
func NewReportCommand(app *App) *ReportCommand {
	return &ReportCommand{
		app:          app,
		errorHandler: NewErrorHandler(),
		validator:    validation.NewValidator(),
	}
}

// Execute aggregates recorded time and renders it in the requested format.
func (c *ReportCommand) Execute(ctx context.Context, flags ReportFlags) error {
	formatStr := flags.Format
	if formatStr == "" {
		formatStr = c.app.config.Report.DefaultFormat
	}
	format, err := report.ParseFormat(formatStr)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}

	since, err := parseDateFlag("since", flags.Since, false)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	until, err := parseDateFlag("until", flags.Until, true)
	if err != nil {
		return c.errorHandler.HandleSimple(err)
	}
	if !c.validator.IsValidDateRange(since, until) {
		return c.errorHandler.HandleSimple(
			errors.NewInvalidInputError("since/until", flags.Since+".."+flags.Until, "since must precede until"))
	}

	rows, err := c.app.api.Report(ctx, api.ReportOptions{
		Since:          since,
		Until:          until,
		PerRecord:      flags.PerRecord,
		IncludeArchive: flags.IncludeArchive,
	})
	if err != nil {
		return c.errorHandler.Handle("generate report", err)
	}

	if err := report.Render(os.Stdout, format, rows, c.app.config.Report.TimeFormat); err != nil {
		return c.errorHandler.Handle("render report", err)
	}
	return nil
}

// parseDateFlag accepts RFC3339 timestamps or plain dates. A plain date used
// as an upper bound covers the whole day, so the bound is pushed to the next
// midnight.
func parseDateFlag(name, value string, upperBound bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return nil, errors.NewInvalidInputError(name, value, "expected YYYY-MM-DD or RFC3339 timestamp")
	}
	if upperBound {
		// Next midnight, not start+24h: they differ on DST transition days.
		t = time.Date(t.Year(), t.Month(), t.Day()+1, 0, 0, 0, 0, time.Local)
	}
	return &t, nil
}
