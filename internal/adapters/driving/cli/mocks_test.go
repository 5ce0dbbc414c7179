package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/custodia-labs/tutorplug/internal/core/domain"
	"github.com/custodia-labs/tutorplug/internal/core/ports/driving"
)

// mockPluginService implements driving.PluginService for testing.
type mockPluginService struct {
	descriptors map[string]*domain.Descriptor
	errs        map[string]error
	plugins     []driving.Plugin
	discoverErr error
	result      *driving.ApplyResult
	applyErr    error
	gotFolders  []string
	events      []driving.WatchEvent
	watchErr    error
}

func (m *mockPluginService) Validate(_ context.Context, path string) (*domain.Descriptor, error) {
	if err := m.errs[path]; err != nil {
		return nil, err
	}
	if d, ok := m.descriptors[path]; ok {
		return d, nil
	}
	return nil, domain.NewLoadError(path, domain.ErrUnreadableFile, "file could not be opened")
}

func (m *mockPluginService) Discover(_ context.Context) ([]driving.Plugin, error) {
	return m.plugins, m.discoverErr
}

func (m *mockPluginService) Apply(_ context.Context, folders []string) (*driving.ApplyResult, error) {
	m.gotFolders = folders
	return m.result, m.applyErr
}

func (m *mockPluginService) Watch(_ context.Context) (<-chan driving.WatchEvent, error) {
	if m.watchErr != nil {
		return nil, m.watchErr
	}
	ch := make(chan driving.WatchEvent, len(m.events))
	for _, ev := range m.events {
		ch <- ev
	}
	close(ch)
	return ch, nil
}

// mockSettingsService implements driving.SettingsService for testing.
type mockSettingsService struct {
	settings *domain.Settings
	values   map[string]string
	setErr   error
}

func (m *mockSettingsService) Get() (*domain.Settings, error) {
	return m.settings, nil
}

func (m *mockSettingsService) SetPluginsRoot(root string) error {
	return m.SetValue("plugins.root", root)
}

func (m *mockSettingsService) SetPatterns(_ []string) error {
	return nil
}

func (m *mockSettingsService) SetVerbose(_ bool) error {
	return nil
}

func (m *mockSettingsService) SetValue(key, value string) error {
	if m.setErr != nil {
		return m.setErr
	}
	if m.values == nil {
		m.values = make(map[string]string)
	}
	m.values[key] = value
	return nil
}

func (m *mockSettingsService) Keys() []string {
	return []string{"log.verbose", "plugins.patterns", "plugins.root"}
}

func (m *mockSettingsService) ConfigPath() string {
	return "/home/user/.config/tutorplug/config.toml"
}

// mockMountResolver implements driving.MountResolver for testing.
type mockMountResolver struct{}

func (m *mockMountResolver) Resolve(folder string) []domain.Mount {
	if folder == "venv-notes" {
		return []domain.Mount{
			{Service: "notes", Path: domain.VenvMountPath},
			{Service: "notes-job", Path: domain.VenvMountPath},
		}
	}
	return nil
}

func strPtr(s string) *string {
	return &s
}

// setupServices swaps in mocks and returns a cleanup func.
func setupServices(plugins *mockPluginService, settings *mockSettingsService) func() {
	oldPlugins, oldSettings, oldMounts := pluginService, settingsService, mountResolver
	if plugins != nil {
		pluginService = plugins
	}
	if settings != nil {
		settingsService = settings
	}
	mountResolver = &mockMountResolver{}
	return func() {
		pluginService, settingsService, mountResolver = oldPlugins, oldSettings, oldMounts
		listJSON, showJSON, applyJSON = false, false, false
		applyMounts = nil
		verbose = false
	}
}

// execute runs rootCmd with args and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}
