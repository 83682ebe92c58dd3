package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config

	// FileUsed records which config file was read, empty when none existed.
	FileUsed string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// DefaultConfigPath returns where the global config file is expected. The
// TMT_CONFIG environment variable overrides the default location.
func DefaultConfigPath() string {
	if path := os.Getenv("TMT_CONFIG"); path != "" {
		return path
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".timetrack", "config.yaml")
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the config file, when present
// 3. Override with environment variables
// 4. Validate the result (flag overrides happen later, in the CLI)
func (l *Loader) Load() (*Config, error) {
	path := DefaultConfigPath()
	if err := l.loadFile(path); err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}
	return l.config, nil
}

// loadFile merges the YAML config file at path into the current config. A
// missing file is not an error; the defaults simply stand.
func (l *Loader) loadFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return err
	}
	if err := v.Unmarshal(l.config); err != nil {
		return err
	}

	l.FileUsed = path
	return nil
}

// Check loads and validates the configuration without mutating anything. It
// returns the effective config and the file that contributed to it, if any.
func Check() (*Config, string, error) {
	loader := NewLoader()
	cfg, err := loader.Load()
	if err != nil {
		return nil, loader.FileUsed, err
	}
	return cfg, loader.FileUsed, nil
}

// Write materializes the current effective defaults into the config file at
// path. An existing file is only replaced when force is set.
func Write(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", path)
	}

	cfg := NewConfig()
	if err := cfg.LoadFromEnvironment(); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	header := []byte("# timetrack configuration\n# Values here override built-in defaults; TMT_* environment\n# variables and command-line flags override values here.\n")

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, append(header, data...), 0o644)
}
