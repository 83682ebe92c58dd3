// Package config supplies the tool's configuration: code defaults, overlaid
// by an optional YAML file in the user's data directory, overlaid by TMT_*
// environment variables, overlaid last by command-line flags.
package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Config holds all configuration options for the time tracker
type Config struct {
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Task   TaskConfig   `yaml:"task" mapstructure:"task"`
	Report ReportConfig `yaml:"report" mapstructure:"report"`
}

// StoreConfig holds the backing file locations
type StoreConfig struct {
	Dir             string `yaml:"dir" mapstructure:"dir"`
	Filename        string `yaml:"filename" mapstructure:"filename"`
	ArchiveFilename string `yaml:"archive_filename" mapstructure:"archive_filename"`
}

// TaskConfig holds task defaults
type TaskConfig struct {
	DefaultLabel string `yaml:"default_label" mapstructure:"default_label"`
}

// ReportConfig holds report formatting defaults
type ReportConfig struct {
	DefaultFormat string `yaml:"default_format" mapstructure:"default_format"`
	TimeFormat    string `yaml:"time_format" mapstructure:"time_format"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Store: StoreConfig{
			Dir:             filepath.Join(homeDir, ".timetrack"),
			Filename:        "session.yaml",
			ArchiveFilename: "archive.db",
		},
		Task: TaskConfig{
			DefaultLabel: "general",
		},
		Report: ReportConfig{
			DefaultFormat: "table",
			TimeFormat:    "2006-01-02 15:04:05",
		},
	}
}

// StorePath returns the full path to the session file
func (c *Config) StorePath() string {
	return filepath.Join(c.Store.Dir, c.Store.Filename)
}

// ArchivePath returns the full path to the archive database
func (c *Config) ArchivePath() string {
	return filepath.Join(c.Store.Dir, c.Store.ArchiveFilename)
}

// LoadFromEnvironment loads configuration overrides from TMT_* environment variables
func (c *Config) LoadFromEnvironment() error {
	if dir := os.Getenv("TMT_STORE_DIR"); dir != "" {
		c.Store.Dir = dir
	}
	if filename := os.Getenv("TMT_STORE_FILENAME"); filename != "" {
		c.Store.Filename = filename
	}
	if filename := os.Getenv("TMT_ARCHIVE_FILENAME"); filename != "" {
		c.Store.ArchiveFilename = filename
	}
	if label := os.Getenv("TMT_DEFAULT_LABEL"); label != "" {
		c.Task.DefaultLabel = label
	}
	if format := os.Getenv("TMT_REPORT_FORMAT"); format != "" {
		c.Report.DefaultFormat = format
	}
	if format := os.Getenv("TMT_TIME_FORMAT"); format != "" {
		c.Report.TimeFormat = format
	}
	return nil
}

// Validate checks the configuration for problems a later command would trip
// over. It never mutates.
func (c *Config) Validate() error {
	if c.Store.Dir == "" {
		return fmt.Errorf("store dir must not be empty")
	}
	if c.Store.Filename == "" {
		return fmt.Errorf("store filename must not be empty")
	}
	if c.Store.ArchiveFilename == "" {
		return fmt.Errorf("archive filename must not be empty")
	}
	if c.Store.Filename == c.Store.ArchiveFilename {
		return fmt.Errorf("store and archive filenames must differ")
	}
	switch c.Report.DefaultFormat {
	case "table", "csv", "json", "html":
	default:
		return fmt.Errorf("report default format %q is not one of table, csv, json, html", c.Report.DefaultFormat)
	}
	if c.Report.TimeFormat == "" {
		return fmt.Errorf("report time format must not be empty")
	}
	return nil
}
