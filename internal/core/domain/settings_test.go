package domain

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings("/home/user/.config/tutorplug")

	assert.Equal(t, filepath.Join("/home/user/.config/tutorplug", "plugins", "yamlv1"), s.PluginsRoot)
	assert.Equal(t, []string{"*.yml", "*.yaml"}, s.Patterns)
	assert.False(t, s.Verbose)
	assert.NoError(t, s.Validate())
}

func TestSettings_Validate(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantErr  bool
	}{
		{"valid", Settings{PluginsRoot: "/p", Patterns: []string{"*.yml"}}, false},
		{"empty root", Settings{Patterns: []string{"*.yml"}}, true},
		{"no patterns", Settings{PluginsRoot: "/p"}, true},
		{"empty pattern", Settings{PluginsRoot: "/p", Patterns: []string{""}}, true},
		{"bad pattern", Settings{PluginsRoot: "/p", Patterns: []string{"[a-"}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidInput)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestMount_String(t *testing.T) {
	m := Mount{Service: "lms", Path: VenvMountPath}
	assert.Equal(t, "lms:/openedx/venv", m.String())
}
