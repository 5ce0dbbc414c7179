package driving

import "github.com/custodia-labs/tutorplug/internal/core/domain"

// FilterRegistry holds the values of named extension points.
type FilterRegistry interface {
	// Apply applies one callback.
	Apply(callback domain.FilterCallback) error

	// ApplyDescriptor applies every callback of d in order.
	// On failure the registry is left unchanged.
	ApplyDescriptor(d *domain.Descriptor) error

	// Get returns a copy of the current value of an extension point.
	Get(name string) (any, bool)

	// Names returns the touched extension points, sorted.
	Names() []string

	// Snapshot returns a deep copy of all extension point values.
	Snapshot() map[string]any
}
