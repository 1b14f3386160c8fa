// Package plugin loads Lua plugins that contribute extra picker tools.
package plugin

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

// ManifestName is the manifest file every plugin directory must contain.
const ManifestName = "plugin.toml"

// Manifest describes a plugin's metadata.
type Manifest struct {
	// Name is the unique identifier (e.g. "team-palette").
	Name string `toml:"name"`

	// Version is a semver string.
	Version string `toml:"version"`

	// Main is the relative path to the entry Lua file (default "init.lua").
	Main string `toml:"main"`

	// Description is a short human-readable summary.
	Description string `toml:"description"`

	// Author is the author name or org.
	Author string `toml:"author"`

	// path to the plugin directory, set by the loader.
	path string
}

// Validation errors.
var (
	ErrMissingName    = errors.New("manifest: name is required")
	ErrInvalidName    = errors.New("manifest: name must be lowercase alphanumeric with hyphens")
	ErrMissingVersion = errors.New("manifest: version is required")
	ErrInvalidVersion = errors.New("manifest: version must be valid semver")
	ErrInvalidMain    = errors.New("manifest: main must be a .lua file inside the plugin")
)

// namePattern validates plugin names.
var namePattern = regexp.MustCompile(`^[a-z][a-z0-9-]*[a-z0-9]$|^[a-z]$`)

// semverPattern validates version strings (simplified semver).
var semverPattern = regexp.MustCompile(`^\d+\.\d+\.\d+(-[a-zA-Z0-9.-]+)?$`)

// LoadManifest reads and validates the manifest in a plugin directory.
func LoadManifest(dir string) (*Manifest, error) {
	data, err := os.ReadFile(filepath.Join(dir, ManifestName))
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if m.Main == "" {
		m.Main = "init.lua"
	}
	m.path = dir

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks manifest fields.
func (m *Manifest) Validate() error {
	if m.Name == "" {
		return ErrMissingName
	}
	if !namePattern.MatchString(m.Name) {
		return fmt.Errorf("%w: %q", ErrInvalidName, m.Name)
	}
	if m.Version == "" {
		return ErrMissingVersion
	}
	if !semverPattern.MatchString(m.Version) {
		return fmt.Errorf("%w: %q", ErrInvalidVersion, m.Version)
	}
	if !strings.HasSuffix(m.Main, ".lua") || strings.Contains(m.Main, "..") {
		return fmt.Errorf("%w: %q", ErrInvalidMain, m.Main)
	}
	return nil
}

// MainPath returns the absolute path of the plugin's entry Lua file.
func (m *Manifest) MainPath() string {
	return filepath.Join(m.path, m.Main)
}

// Dir returns the plugin directory.
func (m *Manifest) Dir() string {
	return m.path
}
