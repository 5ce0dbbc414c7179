package services

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/tutorplug/internal/core/domain"
	"github.com/custodia-labs/tutorplug/internal/core/ports/driven"
	"github.com/custodia-labs/tutorplug/internal/core/ports/driving"
	"github.com/custodia-labs/tutorplug/internal/logger"
)

// Ensure PluginService implements the interface.
var _ driving.PluginService = (*PluginService)(nil)

// maxConcurrentLoads bounds the number of descriptors read at once.
const maxConcurrentLoads = 8

// composeMountsFilter receives the resolved auto-mounts.
const composeMountsFilter = "COMPOSE_MOUNTS"

// PluginService discovers, validates and applies plugin descriptors.
type PluginService struct {
	loader   driven.DescriptorLoader
	settings driving.SettingsService
	mounts   *MountResolver
	watcher  driven.DirectoryWatcher
}

// NewPluginService creates a new plugin service.
func NewPluginService(
	loader driven.DescriptorLoader,
	settings driving.SettingsService,
	mounts *MountResolver,
) *PluginService {
	return &PluginService{
		loader:   loader,
		settings: settings,
		mounts:   mounts,
	}
}

// SetWatcher sets the directory watcher used by Watch.
func (s *PluginService) SetWatcher(watcher driven.DirectoryWatcher) {
	s.watcher = watcher
}

// Validate loads and checks a single descriptor file.
func (s *PluginService) Validate(ctx context.Context, path string) (*domain.Descriptor, error) {
	if s.loader == nil {
		return nil, domain.ErrNotImplemented
	}
	if path == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	d, err := s.loader.Load(path)
	if err != nil {
		logger.Debug("validate %s: %v", path, err)
		return nil, err
	}
	logger.Debug("validate %s: plugin %s (%s), %d filter(s)", path, d.Name, d.VersionString(), len(d.Filters))
	return d, nil
}

// Discover loads every descriptor in the plugin root, in path order.
// If any file fails to load, the failure of the first such path is
// returned and no plugins are.
func (s *PluginService) Discover(ctx context.Context) ([]driving.Plugin, error) {
	if s.loader == nil || s.settings == nil {
		return nil, domain.ErrNotImplemented
	}

	settings, err := s.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	logger.Section("Discovery")
	paths, err := findDescriptors(settings.PluginsRoot, settings.Patterns)
	if err != nil {
		return nil, err
	}
	logger.Debug("found %d descriptor file(s) in %s", len(paths), settings.PluginsRoot)

	descriptors := make([]*domain.Descriptor, len(paths))
	loadErrs := make([]error, len(paths))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(maxConcurrentLoads)
	for i, path := range paths {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			descriptors[i], loadErrs[i] = s.loader.Load(path)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	plugins := make([]driving.Plugin, 0, len(paths))
	for i, path := range paths {
		if loadErrs[i] != nil {
			logger.Debug("discovery halted at %s", path)
			return nil, loadErrs[i]
		}
		plugins = append(plugins, driving.Plugin{Path: path, Descriptor: descriptors[i]})
		logger.Debug("loaded plugin %s from %s", descriptors[i].Name, path)
	}
	return plugins, nil
}

// Apply discovers all plugins and applies their filters to a fresh registry.
func (s *PluginService) Apply(ctx context.Context, folders []string) (*driving.ApplyResult, error) {
	plugins, err := s.Discover(ctx)
	if err != nil {
		return nil, err
	}

	logger.Section("Apply")
	registry := NewFilterRegistry()
	result := &driving.ApplyResult{Plugins: plugins}

	if s.mounts != nil && len(folders) > 0 {
		for _, folder := range folders {
			result.Mounts = append(result.Mounts, s.mounts.Resolve(folder)...)
		}
		err := registry.Apply(domain.FilterCallback{
			Filter: composeMountsFilter,
			Op:     domain.FilterOpAddItems,
			Value:  s.mounts.ComposeMounts(folders),
		})
		if err != nil {
			return nil, fmt.Errorf("apply auto-mounts: %w", err)
		}
	}

	unknown := make(map[string]struct{})
	for _, p := range plugins {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		for _, cb := range p.Descriptor.Filters {
			if !domain.IsKnownFilter(cb.Filter) {
				unknown[cb.Filter] = struct{}{}
			}
		}
		if err := registry.ApplyDescriptor(p.Descriptor); err != nil {
			return nil, fmt.Errorf("%s: %w", p.Path, err)
		}
	}

	result.Values = registry.Snapshot()
	for name := range unknown {
		result.Unknown = append(result.Unknown, name)
	}
	sort.Strings(result.Unknown)
	return result, nil
}

// Watch re-runs discovery whenever the plugin root changes.
func (s *PluginService) Watch(ctx context.Context) (<-chan driving.WatchEvent, error) {
	if s.watcher == nil || s.settings == nil {
		return nil, domain.ErrNotImplemented
	}

	settings, err := s.settings.Get()
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}
	changes, err := s.watcher.Watch(ctx, settings.PluginsRoot)
	if err != nil {
		return nil, err
	}
	logger.Info("watching %s", settings.PluginsRoot)

	events := make(chan driving.WatchEvent)
	go func() {
		defer close(events)
		for changed := range changes {
			if !anyMatches(changed, settings.Patterns) {
				logger.Debug("ignoring changes to %v", changed)
				continue
			}
			plugins, err := s.Discover(ctx)
			if ctx.Err() != nil {
				return
			}
			select {
			case events <- driving.WatchEvent{Changed: changed, Plugins: plugins, Err: err}:
			case <-ctx.Done():
				return
			}
		}
	}()
	return events, nil
}

// findDescriptors lists the regular files in root whose names match any
// pattern. A missing root is not an error.
func findDescriptors(root string, patterns []string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if errors.Is(err, fs.ErrNotExist) {
		logger.Debug("plugin root %s does not exist", root)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read plugin root: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if matchesAny(entry.Name(), patterns) {
			paths = append(paths, filepath.Join(root, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func anyMatches(names, patterns []string) bool {
	for _, name := range names {
		if matchesAny(name, patterns) {
			return true
		}
	}
	return false
}

func matchesAny(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}
