package domain

import (
	"fmt"
	"path/filepath"
)

// Default values for settings.
const (
	// DefaultPluginsSubdir is appended to the config directory to form the default plugin root.
	DefaultPluginsSubdir = "plugins/yamlv1"
)

// DefaultPatterns are the file globs scanned in the plugin root.
func DefaultPatterns() []string {
	return []string{"*.yml", "*.yaml"}
}

// Settings holds tutorplug configuration.
type Settings struct {
	// PluginsRoot is the directory scanned for descriptor files.
	PluginsRoot string

	// Patterns are glob patterns matched against file names in PluginsRoot.
	Patterns []string

	// Verbose enables debug logging.
	Verbose bool
}

// DefaultSettings returns the default settings for the given config directory.
func DefaultSettings(configDir string) Settings {
	return Settings{
		PluginsRoot: filepath.Join(configDir, filepath.FromSlash(DefaultPluginsSubdir)),
		Patterns:    DefaultPatterns(),
	}
}

// Validate checks that the settings can be used for discovery.
func (s Settings) Validate() error {
	if s.PluginsRoot == "" {
		return fmt.Errorf("%w: plugins root is empty", ErrInvalidInput)
	}
	if len(s.Patterns) == 0 {
		return fmt.Errorf("%w: at least one plugin pattern is required", ErrInvalidInput)
	}
	for _, p := range s.Patterns {
		if p == "" {
			return fmt.Errorf("%w: empty plugin pattern", ErrInvalidInput)
		}
		if _, err := filepath.Match(p, ""); err != nil {
			return fmt.Errorf("%w: bad plugin pattern %q: %v", ErrInvalidInput, p, err)
		}
	}
	return nil
}
