package services

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/custodia-labs/tutorplug/internal/core/domain"
	"github.com/custodia-labs/tutorplug/internal/core/ports/driven"
	"github.com/custodia-labs/tutorplug/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyPluginsRoot     = "plugins.root"
	KeyPluginsPatterns = "plugins.patterns"
	KeyLogVerbose      = "log.verbose"
)

// SettingsService manages tutorplug settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{
		configStore: configStore,
	}
}

// Get retrieves current settings. Unset keys take their defaults.
func (s *SettingsService) Get() (*domain.Settings, error) {
	if s.configStore == nil {
		return nil, domain.ErrNotImplemented
	}
	defaults := domain.DefaultSettings(s.configDir())

	settings := &domain.Settings{
		PluginsRoot: s.getString(KeyPluginsRoot, defaults.PluginsRoot),
		Patterns:    s.getStringSlice(KeyPluginsPatterns, defaults.Patterns),
		Verbose:     s.getBool(KeyLogVerbose, defaults.Verbose),
	}
	return settings, nil
}

// SetPluginsRoot updates the plugin root directory.
func (s *SettingsService) SetPluginsRoot(root string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if root == "" {
		return fmt.Errorf("%w: plugins root is empty", domain.ErrInvalidInput)
	}
	if err := s.configStore.Set(KeyPluginsRoot, root); err != nil {
		return fmt.Errorf("save plugins root: %w", err)
	}
	return nil
}

// SetPatterns updates the descriptor file patterns.
func (s *SettingsService) SetPatterns(patterns []string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	candidate := domain.Settings{PluginsRoot: ".", Patterns: patterns}
	if err := candidate.Validate(); err != nil {
		return err
	}
	if err := s.configStore.Set(KeyPluginsPatterns, patterns); err != nil {
		return fmt.Errorf("save plugins patterns: %w", err)
	}
	return nil
}

// SetVerbose updates the verbose logging flag.
func (s *SettingsService) SetVerbose(verbose bool) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	if err := s.configStore.Set(KeyLogVerbose, verbose); err != nil {
		return fmt.Errorf("save log verbose: %w", err)
	}
	return nil
}

// SetValue parses value according to key and stores it.
func (s *SettingsService) SetValue(key, value string) error {
	switch key {
	case KeyPluginsRoot:
		return s.SetPluginsRoot(value)
	case KeyPluginsPatterns:
		return s.SetPatterns(splitPatterns(value))
	case KeyLogVerbose:
		v, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		return s.SetVerbose(v)
	default:
		return fmt.Errorf("%w: unknown config key %q", domain.ErrInvalidInput, key)
	}
}

// Keys returns the supported config keys.
func (s *SettingsService) Keys() []string {
	return []string{KeyLogVerbose, KeyPluginsPatterns, KeyPluginsRoot}
}

// ConfigPath returns the configuration file path.
func (s *SettingsService) ConfigPath() string {
	if s.configStore == nil {
		return ""
	}
	return s.configStore.Path()
}

func (s *SettingsService) configDir() string {
	return filepath.Dir(s.configStore.Path())
}

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getStringSlice(key string, defaultVal []string) []string {
	val := s.configStore.GetStringSlice(key)
	if len(val) == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func splitPatterns(value string) []string {
	var patterns []string
	for _, p := range strings.Split(value, ",") {
		patterns = append(patterns, strings.TrimSpace(p))
	}
	return patterns
}
