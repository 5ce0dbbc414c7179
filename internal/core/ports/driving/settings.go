package driving

import "github.com/custodia-labs/tutorplug/internal/core/domain"

// SettingsService manages tutorplug settings.
type SettingsService interface {
	// Get retrieves current settings, with defaults for unset keys.
	Get() (*domain.Settings, error)

	// SetPluginsRoot updates the plugin root directory.
	SetPluginsRoot(root string) error

	// SetPatterns updates the descriptor file patterns.
	SetPatterns(patterns []string) error

	// SetVerbose updates the verbose logging flag.
	SetVerbose(verbose bool) error

	// SetValue parses value for a config key and stores it.
	// Patterns are given comma-separated.
	SetValue(key, value string) error

	// Keys returns the supported config keys.
	Keys() []string

	// ConfigPath returns the configuration file path.
	ConfigPath() string
}
