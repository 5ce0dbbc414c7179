// Command tutorplug loads, validates and applies YAML v1 plugin descriptors.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/tutorplug/internal/adapters/driven/config/file"
	"github.com/custodia-labs/tutorplug/internal/adapters/driven/descriptor/yamlv1"
	"github.com/custodia-labs/tutorplug/internal/adapters/driven/fswatch"
	"github.com/custodia-labs/tutorplug/internal/adapters/driving/cli"
	"github.com/custodia-labs/tutorplug/internal/core/services"
	"github.com/custodia-labs/tutorplug/internal/logger"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.SetBootstrap(newServices)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cli.ExecuteContext(ctx); err != nil {
		logger.Error("%v", err)
		stop()
		os.Exit(1)
	}
}

// newServices wires adapters into the core services.
func newServices(configDir string) (*cli.Services, error) {
	store, err := file.NewConfigStore(configDir)
	if err != nil {
		return nil, err
	}

	settings := services.NewSettingsService(store)
	mounts := services.NewMountResolver()
	plugins := services.NewPluginService(yamlv1.NewLoader(), settings, mounts)
	plugins.SetWatcher(fswatch.New(fswatch.DefaultDebounce))

	return &cli.Services{
		Plugins:  plugins,
		Settings: settings,
		Mounts:   mounts,
	}, nil
}
