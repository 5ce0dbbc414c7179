package driving

import "github.com/custodia-labs/tutorplug/internal/core/domain"

// MountResolver maps host folder names to compose service mounts.
type MountResolver interface {
	// Resolve returns the mounts for a folder. The result is empty when
	// the folder name follows no mount convention.
	Resolve(folder string) []domain.Mount
}
