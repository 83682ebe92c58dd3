package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, "session.yaml", cfg.Store.Filename)
	assert.Equal(t, "archive.db", cfg.Store.ArchiveFilename)
	assert.Contains(t, cfg.Store.Dir, ".timetrack")
	assert.Equal(t, "general", cfg.Task.DefaultLabel)
	assert.Equal(t, "table", cfg.Report.DefaultFormat)
	assert.Equal(t, "2006-01-02 15:04:05", cfg.Report.TimeFormat)

	assert.NoError(t, cfg.Validate())
}

func TestConfig_Paths(t *testing.T) {
	cfg := NewConfig()
	cfg.Store.Dir = "/data/tracking"

	assert.Equal(t, filepath.Join("/data/tracking", "session.yaml"), cfg.StorePath())
	assert.Equal(t, filepath.Join("/data/tracking", "archive.db"), cfg.ArchivePath())
}

func TestConfig_LoadFromEnvironment(t *testing.T) {
	t.Setenv("TMT_STORE_DIR", "/custom/dir")
	t.Setenv("TMT_STORE_FILENAME", "current.yaml")
	t.Setenv("TMT_ARCHIVE_FILENAME", "old.db")
	t.Setenv("TMT_DEFAULT_LABEL", "work")
	t.Setenv("TMT_REPORT_FORMAT", "csv")
	t.Setenv("TMT_TIME_FORMAT", "15:04")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, "/custom/dir", cfg.Store.Dir)
	assert.Equal(t, "current.yaml", cfg.Store.Filename)
	assert.Equal(t, "old.db", cfg.Store.ArchiveFilename)
	assert.Equal(t, "work", cfg.Task.DefaultLabel)
	assert.Equal(t, "csv", cfg.Report.DefaultFormat)
	assert.Equal(t, "15:04", cfg.Report.TimeFormat)
}

func TestConfig_LoadFromEnvironment_EmptyValuesIgnored(t *testing.T) {
	t.Setenv("TMT_STORE_DIR", "")
	t.Setenv("TMT_DEFAULT_LABEL", "")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Contains(t, cfg.Store.Dir, ".timetrack")
	assert.Equal(t, "general", cfg.Task.DefaultLabel)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			mutate: func(c *Config) {},
		},
		{
			name:    "empty store dir",
			mutate:  func(c *Config) { c.Store.Dir = "" },
			wantErr: "store dir",
		},
		{
			name:    "empty store filename",
			mutate:  func(c *Config) { c.Store.Filename = "" },
			wantErr: "store filename",
		},
		{
			name:    "empty archive filename",
			mutate:  func(c *Config) { c.Store.ArchiveFilename = "" },
			wantErr: "archive filename",
		},
		{
			name: "colliding filenames",
			mutate: func(c *Config) {
				c.Store.Filename = "data.yaml"
				c.Store.ArchiveFilename = "data.yaml"
			},
			wantErr: "must differ",
		},
		{
			name:    "unknown report format",
			mutate:  func(c *Config) { c.Report.DefaultFormat = "xml" },
			wantErr: "not one of",
		},
		{
			name:    "empty time format",
			mutate:  func(c *Config) { c.Report.TimeFormat = "" },
			wantErr: "time format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
