package cli

import (
	"fmt"

	"timetrack/internal/config"
)

// ConfigCommand handles the config check and config write subcommands
type ConfigCommand struct {
	errorHandler *ErrorHandler
}

// NewConfigCommand creates a new config command handler
func NewConfigCommand() *ConfigCommand {
	return &ConfigCommand{
		errorHandler: NewErrorHandler(),
	}
}

// Check loads and validates the effective configuration without mutating
// anything, then reports where it came from.
func (c *ConfigCommand) Check() error {
	cfg, fileUsed, err := config.Check()
	if err != nil {
		return c.errorHandler.Handle("check configuration", err)
	}

	if fileUsed != "" {
		fmt.Printf("Configuration OK (loaded %s)\n", fileUsed)
	} else {
		fmt.Println("Configuration OK (built-in defaults, no config file found)")
	}
	fmt.Printf("Session file: %s\n", cfg.StorePath())
	fmt.Printf("Archive database: %s\n", cfg.ArchivePath())
	fmt.Printf("Default task label: %s\n", cfg.Task.DefaultLabel)
	fmt.Printf("Default report format: %s\n", cfg.Report.DefaultFormat)
	return nil
}

// Write materializes the effective defaults into the config file.
func (c *ConfigCommand) Write(force bool) error {
	path := config.DefaultConfigPath()
	if err := config.Write(path, force); err != nil {
		return c.errorHandler.Handle("write configuration", err)
	}
	fmt.Printf("Wrote configuration to %s\n", path)
	return nil
}
