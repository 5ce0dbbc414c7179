package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/tutorplug/internal/core/domain"
)

func TestValidateCmd_Use(t *testing.T) {
	assert.Equal(t, "validate <file>...", validateCmd.Use)
}

func TestValidateCmd_AllValid(t *testing.T) {
	plugins := &mockPluginService{descriptors: map[string]*domain.Descriptor{
		"a.yml": {Name: "a", Version: strPtr("1.0"), Filters: []domain.FilterCallback{{Filter: "X", Op: domain.FilterOpAddItem}}},
		"b.yml": {Name: "b"},
	}}
	cleanup := setupServices(plugins, nil)
	defer cleanup()

	out, _, err := execute(t, "validate", "a.yml", "b.yml")

	require.NoError(t, err)
	assert.Contains(t, out, "OK   a.yml (a 1.0, 1 filters)")
	assert.Contains(t, out, "OK   b.yml (b unversioned, 0 filters)")
}

func TestValidateCmd_ReportsEveryFailure(t *testing.T) {
	plugins := &mockPluginService{
		descriptors: map[string]*domain.Descriptor{"ok.yml": {Name: "ok"}},
		errs: map[string]error{
			"bad.yml": domain.NewLoadError("bad.yml", domain.ErrMissingField, "missing top-level 'filters' key"),
		},
	}
	cleanup := setupServices(plugins, nil)
	defer cleanup()

	out, _, err := execute(t, "validate", "bad.yml", "ok.yml", "missing.yml")

	require.Error(t, err)
	assert.Equal(t, "2 of 3 descriptor(s) failed validation", err.Error())
	assert.Contains(t, out, "FAIL error loading YAML v1 plugin at 'bad.yml': missing top-level 'filters' key")
	assert.Contains(t, out, "OK   ok.yml")
	assert.Contains(t, out, "FAIL error loading YAML v1 plugin at 'missing.yml': file could not be opened")
}

func TestValidateCmd_RequiresArgs(t *testing.T) {
	cleanup := setupServices(&mockPluginService{}, nil)
	defer cleanup()

	_, _, err := execute(t, "validate")

	assert.Error(t, err)
}

func TestValidateCmd_NotConfigured(t *testing.T) {
	cleanup := setupServices(nil, nil)
	defer cleanup()
	pluginService = nil

	_, _, err := execute(t, "validate", "a.yml")

	assert.EqualError(t, err, "plugin service not configured")
}
