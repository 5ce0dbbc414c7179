// Package services implements the driving port interfaces.
// Services contain the core business logic and orchestrate
// calls to driven ports (adapters).
//
// PluginService discovers descriptors and feeds them through a
// FilterRegistry; MountResolver and SettingsService support it.
package services
