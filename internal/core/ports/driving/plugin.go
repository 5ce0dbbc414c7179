package driving

import (
	"context"

	"github.com/custodia-labs/tutorplug/internal/core/domain"
)

// PluginService discovers, validates and applies YAML v1 plugin descriptors.
type PluginService interface {
	// Validate loads the descriptor at path.
	// Failures are *domain.LoadError values.
	Validate(ctx context.Context, path string) (*domain.Descriptor, error)

	// Discover loads every descriptor in the configured plugin root.
	// The first broken file (by path order) aborts discovery.
	Discover(ctx context.Context) ([]Plugin, error)

	// Apply discovers all descriptors and applies their filters, in order,
	// to a fresh filter registry. The auto-mounts of folders are added to
	// COMPOSE_MOUNTS before any descriptor is applied.
	Apply(ctx context.Context, folders []string) (*ApplyResult, error)

	// Watch re-runs discovery after every burst of changes in the plugin
	// root. The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan WatchEvent, error)
}

// WatchEvent is the outcome of one discovery triggered by Watch.
type WatchEvent struct {
	// Changed are the file names that triggered discovery.
	Changed []string

	// Plugins are the discovered descriptors when Err is nil.
	Plugins []Plugin

	// Err is the discovery failure, usually a *domain.LoadError.
	Err error
}

// Plugin is a descriptor together with the file it was loaded from.
type Plugin struct {
	// Path is the descriptor file.
	Path string

	// Descriptor is the validated content.
	Descriptor *domain.Descriptor
}

// ApplyResult is the outcome of applying all discovered descriptors.
type ApplyResult struct {
	// Plugins are the descriptors applied, in application order.
	Plugins []Plugin

	// Values maps each touched extension point to its final value.
	Values map[string]any

	// Mounts are the auto-mounts resolved from the folders passed to Apply.
	Mounts []domain.Mount

	// Unknown lists filter names that are not host extension points, sorted.
	Unknown []string
}
