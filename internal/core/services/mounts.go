package services

import (
	"path/filepath"
	"strings"

	"github.com/custodia-labs/tutorplug/internal/core/domain"
	"github.com/custodia-labs/tutorplug/internal/core/ports/driving"
)

// Ensure MountResolver implements the interface.
var _ driving.MountResolver = (*MountResolver)(nil)

// venvOpenedx is the folder mounted as the shared lms/cms virtualenv.
const venvOpenedx = domain.VenvPrefix + "openedx"

// MountResolver applies the folder naming conventions for auto-mounts.
type MountResolver struct{}

// NewMountResolver creates a new mount resolver.
func NewMountResolver() *MountResolver {
	return &MountResolver{}
}

// Resolve returns the mounts for a host folder.
// Paths are accepted; only the base name is considered.
func (r *MountResolver) Resolve(folder string) []domain.Mount {
	name := filepath.Base(filepath.Clean(folder))
	if name == "." || name == string(filepath.Separator) {
		return nil
	}

	var mounts []domain.Mount
	mounts = append(mounts, resolveVenv(name)...)
	mounts = append(mounts, resolvePackage(name)...)
	return mounts
}

// ComposeMounts resolves every folder and renders the result as
// COMPOSE_MOUNTS values, one [service, path] pair per mount.
func (r *MountResolver) ComposeMounts(folders []string) []any {
	values := []any{}
	for _, folder := range folders {
		for _, m := range r.Resolve(folder) {
			values = append(values, []any{m.Service, m.Path})
		}
	}
	return values
}

func resolveVenv(name string) []domain.Mount {
	if name == venvOpenedx {
		services := domain.OpenedxServices()
		mounts := make([]domain.Mount, 0, len(services))
		for _, svc := range services {
			mounts = append(mounts, domain.Mount{Service: svc, Path: domain.VenvMountPath})
		}
		return mounts
	}

	if !strings.HasPrefix(name, domain.VenvPrefix) {
		return nil
	}
	// The service name stops at any later occurrence of the prefix.
	service := strings.Split(name, domain.VenvPrefix)[1]
	if service == "" {
		return nil
	}
	return []domain.Mount{
		{Service: service, Path: domain.VenvMountPath},
		{Service: service + "-job", Path: domain.VenvMountPath},
	}
}

func resolvePackage(name string) []domain.Mount {
	matched := false
	for _, prefix := range domain.PackagePrefixes() {
		if strings.HasPrefix(name, prefix) {
			matched = true
			break
		}
	}
	if !matched {
		return nil
	}

	path := domain.PackagesMountRoot + "/" + name
	services := []string{"lms", "cms", "lms-worker", "cms-worker", "lms-job", "cms-job"}
	mounts := make([]domain.Mount, 0, len(services))
	for _, svc := range services {
		mounts = append(mounts, domain.Mount{Service: svc, Path: path})
	}
	return mounts
}
