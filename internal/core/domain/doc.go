// Package domain defines the core types for tutorplug.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Descriptor: A validated YAML v1 plugin descriptor
//   - FilterCallback: One contribution to a named extension point
//   - Mount: A host folder mounted into a compose service
//   - Settings: Tool configuration
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
