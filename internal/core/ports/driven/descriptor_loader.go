package driven

import "github.com/custodia-labs/tutorplug/internal/core/domain"

// DescriptorLoader reads one descriptor file into a validated Descriptor.
//
// Implementations must:
//   - Return a *domain.LoadError for every failure, naming the path.
//   - Never return a partial Descriptor.
//   - Hold no shared mutable state, so calls may run concurrently.
type DescriptorLoader interface {
	// Load reads and validates the descriptor at path.
	Load(path string) (*domain.Descriptor, error)
}
