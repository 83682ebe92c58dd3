package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"timetrack/internal/api"
	"timetrack/internal/config"
)

// defaultTimeout bounds a single CLI invocation. Every command performs at
// most one state transition or one report, so this is generous.
const defaultTimeout = 30 * time.Second

// APIFactory builds the API once the effective configuration is known, i.e.
// after persistent flags have been applied.
type APIFactory func(cfg *config.Config) api.API

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd     *cobra.Command
	config  *config.Config
	factory APIFactory
	app     *App
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(cfg *config.Config, factory APIFactory) *RootCommand {
	root := &RootCommand{
		config:  cfg,
		factory: factory,
	}

	root.cmd = &cobra.Command{
		Use:   "tmt",
		Short: "A command-line time tracker for work sessions",
		Long: `timetrack (tmt) records start/switch/pause/resume/end events for work
sessions into a hand-editable YAML file and reports on the recorded time.

EXAMPLES:
  tmt start --task "writing"        # Start tracking a task
  tmt switch --task "email"         # Seal the current record, start a new one
  tmt pause                         # Pause the running task
  tmt resume                        # Resume the paused task
  tmt end                           # Stop tracking
  tmt status                        # Show the current session
  tmt report --format csv           # Aggregate recorded time
  tmt archive --before 2026-01-01   # Move old records to the SQLite archive
  tmt config check                  # Validate the configuration

CONFIGURATION:
  Priority order: command-line flags > TMT_* environment variables >
  ~/.timetrack/config.yaml > built-in defaults.

    TMT_STORE_DIR           Data directory (default: ~/.timetrack)
    TMT_STORE_FILENAME      Session file name (default: session.yaml)
    TMT_ARCHIVE_FILENAME    Archive database name (default: archive.db)
    TMT_DEFAULT_LABEL       Task label used when none is given
    TMT_REPORT_FORMAT       Default report format (table, csv, json, html)
    TMT_TIME_FORMAT         Timestamp display format
    TMT_CONFIG              Alternative config file location
    TMT_DEBUG               Enable debug output when non-empty`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := root.applyFlagOverrides(); err != nil {
				return err
			}
			root.app = NewApp(root.factory(root.config), root.config)
			return nil
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("store-dir", "", "Data directory (overrides TMT_STORE_DIR)")
	flags.String("store-file", "", "Session file name (overrides TMT_STORE_FILENAME)")
	flags.String("archive-file", "", "Archive database name (overrides TMT_ARCHIVE_FILENAME)")
	flags.String("default-label", "", "Task label used when none is given (overrides TMT_DEFAULT_LABEL)")
	flags.String("time-format", "", "Timestamp display format (overrides TMT_TIME_FORMAT)")
}

// applyFlagOverrides updates the configuration with values from command-line flags
func (r *RootCommand) applyFlagOverrides() error {
	flags := r.cmd.PersistentFlags()

	if dir, _ := flags.GetString("store-dir"); dir != "" {
		r.config.Store.Dir = dir
	}
	if filename, _ := flags.GetString("store-file"); filename != "" {
		r.config.Store.Filename = filename
	}
	if filename, _ := flags.GetString("archive-file"); filename != "" {
		r.config.Store.ArchiveFilename = filename
	}
	if label, _ := flags.GetString("default-label"); label != "" {
		r.config.Task.DefaultLabel = label
	}
	if format, _ := flags.GetString("time-format"); format != "" {
		r.config.Report.TimeFormat = format
	}

	return r.config.Validate()
}

// commandContext bounds one invocation.
func commandContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), defaultTimeout)
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Start tracking a task",
		Long:  "Start tracking time for a task. Valid only while no session is active.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			label, _ := cmd.Flags().GetString("task")
			return NewStartCommand(r.app).Execute(ctx, label)
		},
	}
	startCmd.Flags().String("task", "", "Task label (defaults to the configured label)")

	switchCmd := &cobra.Command{
		Use:   "switch",
		Short: "Switch to a different task",
		Long:  "Seal the current record and immediately start tracking a new task.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			label, _ := cmd.Flags().GetString("task")
			return NewSwitchCommand(r.app).Execute(ctx, label)
		},
	}
	switchCmd.Flags().String("task", "", "Task label (defaults to the configured label)")

	pauseCmd := &cobra.Command{
		Use:   "pause",
		Short: "Pause the running task",
		Long:  "Pause the running task. Paused time is excluded from reported durations.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			return NewPauseCommand(r.app).Execute(ctx)
		},
	}

	resumeCmd := &cobra.Command{
		Use:   "resume",
		Short: "Resume the paused task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			return NewResumeCommand(r.app).Execute(ctx)
		},
	}

	endCmd := &cobra.Command{
		Use:   "end",
		Short: "Stop tracking",
		Long:  "Seal the current record and return the session to idle.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			return NewEndCommand(r.app).Execute(ctx)
		},
	}

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			return NewStatusCommand(r.app).Execute(ctx)
		},
	}

	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Report recorded time",
		Long: `Aggregate recorded time into one row per task label (or per record with
--per-record) and render it as a table, CSV, JSON or HTML.

Dates accept YYYY-MM-DD or an RFC3339 timestamp. A plain --until date is
inclusive: the whole day is covered.

Examples:
  tmt report
  tmt report --format csv > report.csv
  tmt report --since 2026-08-01 --until 2026-08-31 --format html
  tmt report --per-record --include-archive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			flags := ReportFlags{}
			flags.Format, _ = cmd.Flags().GetString("format")
			flags.Since, _ = cmd.Flags().GetString("since")
			flags.Until, _ = cmd.Flags().GetString("until")
			flags.PerRecord, _ = cmd.Flags().GetBool("per-record")
			flags.IncludeArchive, _ = cmd.Flags().GetBool("include-archive")
			return NewReportCommand(r.app).Execute(ctx, flags)
		},
	}
	reportCmd.Flags().String("format", "", "Output format: table, csv, json, html")
	reportCmd.Flags().String("since", "", "Only include records starting on or after this date")
	reportCmd.Flags().String("until", "", "Only include records starting up to this date")
	reportCmd.Flags().Bool("per-record", false, "One row per record instead of per task label")
	reportCmd.Flags().Bool("include-archive", false, "Fold archived records into the report")

	archiveCmd := &cobra.Command{
		Use:   "archive",
		Short: "Move old records to the archive database",
		Long: `Move completed records out of the session file and into the local SQLite
archive. Without --before, records that ended before today are moved.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			before, _ := cmd.Flags().GetString("before")
			return NewArchiveCommand(r.app).Execute(ctx, before)
		},
	}
	archiveCmd.Flags().String("before", "", "Archive records that ended before this date")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or write the configuration",
	}
	configCheckCmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the configuration without changing anything",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewConfigCommand().Check()
		},
	}
	configWriteCmd := &cobra.Command{
		Use:   "write",
		Short: "Write the effective defaults to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("force")
			return NewConfigCommand().Write(force)
		},
	}
	configWriteCmd.Flags().Bool("force", false, "Overwrite an existing config file")
	configCmd.AddCommand(configCheckCmd, configWriteCmd)

	r.cmd.AddCommand(
		startCmd,
		switchCmd,
		pauseCmd,
		resumeCmd,
		endCmd,
		statusCmd,
		reportCmd,
		archiveCmd,
		configCmd,
	)
}
