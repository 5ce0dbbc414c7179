// Package cli provides the tutorplug command-line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/tutorplug/internal/core/ports/driving"
	"github.com/custodia-labs/tutorplug/internal/logger"
)

var (
	version = "dev"

	verbose   bool
	configDir string
)

// Services bundles the driving ports the commands use.
type Services struct {
	Plugins  driving.PluginService
	Settings driving.SettingsService
	Mounts   driving.MountResolver
}

var (
	pluginService   driving.PluginService
	settingsService driving.SettingsService
	mountResolver   driving.MountResolver

	bootstrap func(configDir string) (*Services, error)
)

var rootCmd = &cobra.Command{
	Use:   "tutorplug",
	Short: "Load and validate YAML v1 plugin descriptors",
	Long: `tutorplug loads declarative YAML v1 plugin descriptors, checks them
against the descriptor schema and applies their filters.

Descriptors are discovered in the plugin root (see "tutorplug config show").`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug logs to stderr")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "configuration directory (default: user config dir/tutorplug)")
}

// setup builds the services once flags are parsed, then applies the
// verbose setting from the flag or the config file.
func setup(_ *cobra.Command, _ []string) error {
	if bootstrap != nil {
		svc, err := bootstrap(configDir)
		if err != nil {
			return fmt.Errorf("initialise: %w", err)
		}
		SetServices(svc)
	}

	v := verbose
	if !v && settingsService != nil {
		if s, err := settingsService.Get(); err == nil && s != nil {
			v = s.Verbose
		}
	}
	logger.SetVerbose(v)
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx, which commands use for
// cancellation.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version reported by "tutorplug version".
func SetVersion(v string) {
	version = v
}

// SetServices injects the driving ports used by commands.
func SetServices(svc *Services) {
	if svc == nil {
		return
	}
	pluginService = svc.Plugins
	settingsService = svc.Settings
	mountResolver = svc.Mounts
}

// SetBootstrap registers the function that builds services from the
// --config-dir flag. It runs before every command.
func SetBootstrap(fn func(configDir string) (*Services, error)) {
	bootstrap = fn
}
