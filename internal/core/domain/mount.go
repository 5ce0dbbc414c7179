package domain

import "fmt"

// Mount is a host folder bind-mounted into one compose service.
type Mount struct {
	// Service is the compose service name (e.g. "lms-worker").
	Service string `yaml:"service" json:"service"`

	// Path is the target path inside the container.
	Path string `yaml:"path" json:"path"`
}

// String renders the mount as "service:path".
func (m Mount) String() string {
	return fmt.Sprintf("%s:%s", m.Service, m.Path)
}

// Container paths used by the mount conventions.
const (
	// VenvMountPath is where a "venv-*" folder is mounted.
	VenvMountPath = "/openedx/venv"

	// PackagesMountRoot is where package folders ("xblock-*" and friends) are mounted.
	PackagesMountRoot = "/openedx/mounted-packages"
)

// Folder name prefixes recognised by the mount conventions.
const (
	VenvPrefix           = "venv-"
	XBlockPrefix         = "xblock-"
	PlatformPluginPrefix = "platform-plugin-"
	PlatformLibPrefix    = "platform-lib-"
)

// PackagePrefixes returns the folder prefixes mounted under PackagesMountRoot.
func PackagePrefixes() []string {
	return []string{XBlockPrefix, PlatformPluginPrefix, PlatformLibPrefix}
}

// OpenedxServices are the lms and cms services plus their worker and job variants.
func OpenedxServices() []string {
	return []string{"lms", "lms-job", "lms-worker", "cms", "cms-job", "cms-worker"}
}
