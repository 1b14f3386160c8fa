// Package config loads pickat configuration from TOML files and
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// Environment variable overrides.
const (
	envLogLevel   = "PICKAT_LOG_LEVEL"
	envPluginsDir = "PICKAT_PLUGINS_DIR"
)

// Tool configures one external picker executable.
type Tool struct {
	// Command is the executable name or path. Defaults to the tool's
	// own name, resolved on PATH at launch time.
	Command string `toml:"command"`

	// Args are fixed arguments placed before the launch target.
	Args []string `toml:"args"`

	// Disabled prevents the tool from launching without removing it.
	Disabled bool `toml:"disabled"`
}

// Logging configures diagnostics output.
type Logging struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
}

// Plugins configures plugin discovery.
type Plugins struct {
	// Dir is the plugin directory. Empty disables plugin loading.
	Dir string `toml:"dir"`

	// Disabled turns plugin loading off entirely.
	Disabled bool `toml:"disabled"`
}

// Config is the root configuration.
type Config struct {
	Tools   map[string]Tool `toml:"tools"`
	Logging Logging         `toml:"logging"`
	Plugins Plugins         `toml:"plugins"`
}

// Default returns the built-in configuration: the two stock pickers
// mapped to same-named executables on PATH.
func Default() *Config {
	return &Config{
		Tools: map[string]Tool{
			"cpick":     {Command: "cpick"},
			"quickpick": {Command: "quickpick"},
		},
		Logging: Logging{Level: "info"},
	}
}

// DefaultPath returns the user configuration file path
// (~/.config/pickat/pickat.toml), or "" if it cannot be determined.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "pickat", "pickat.toml")
}

// Load reads configuration from path, layered over the defaults.
// A missing file is not an error: defaults plus environment apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// Fall through to defaults.
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overlays PICKAT_* environment variables.
func (c *Config) applyEnv() {
	if v, ok := os.LookupEnv(envLogLevel); ok {
		c.Logging.Level = v
	}
	if v, ok := os.LookupEnv(envPluginsDir); ok {
		c.Plugins.Dir = v
	}
}

// Validate checks the configuration for usability.
// Tools without an explicit command default to their own name.
func (c *Config) Validate() error {
	for name, tool := range c.Tools {
		if name == "" {
			return errors.New("tool with empty name")
		}
		if tool.Command == "" {
			tool.Command = name
			c.Tools[name] = tool
		}
	}
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Logging.Level)
	}
	return nil
}
