// Package fswatch provides a driven.DirectoryWatcher backed by fsnotify.
package fswatch

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/tutorplug/internal/core/ports/driven"
	"github.com/custodia-labs/tutorplug/internal/logger"
)

// Ensure Watcher implements the interface.
var _ driven.DirectoryWatcher = (*Watcher)(nil)

// DefaultDebounce is how long a directory must stay quiet before a burst
// of events is reported.
const DefaultDebounce = 250 * time.Millisecond

// Watcher reports batches of changed file names in a directory.
type Watcher struct {
	debounce time.Duration
}

// New creates a watcher. A non-positive debounce uses DefaultDebounce.
func New(debounce time.Duration) *Watcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{debounce: debounce}
}

// Watch starts watching dir (not recursively). Each value sent is the
// sorted base names of the files touched during one burst. The channel is
// closed when ctx is done or fsnotify shuts down.
func (w *Watcher) Watch(ctx context.Context, dir string) (<-chan []string, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("watch %s: %w", dir, err)
	}

	out := make(chan []string)
	go func() {
		defer fw.Close()
		w.run(ctx, dir, fw.Events, fw.Errors, out)
	}()
	return out, nil
}

// run debounces events into batches until ctx is done or either fsnotify
// channel closes. Watcher errors are logged and do not stop the loop.
func (w *Watcher) run(ctx context.Context, dir string, events <-chan fsnotify.Event, errs <-chan error, out chan<- []string) {
	defer close(out)

	pending := make(map[string]struct{})
	timer := time.NewTimer(w.debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	// fire is nil while nothing is pending.
	var fire <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-events:
			if !ok {
				return
			}
			if !relevant(event) {
				continue
			}
			pending[filepath.Base(event.Name)] = struct{}{}
			timer.Reset(w.debounce)
			fire = timer.C

		case err, ok := <-errs:
			if !ok {
				return
			}
			logger.Warn("watch %s: %v", dir, err)

		case <-fire:
			fire = nil
			batch := drain(pending)
			select {
			case out <- batch:
			case <-ctx.Done():
				return
			}
		}
	}
}

// relevant ignores permission-only changes.
func relevant(event fsnotify.Event) bool {
	return event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0
}

func drain(pending map[string]struct{}) []string {
	names := make([]string, 0, len(pending))
	for name := range pending {
		names = append(names, name)
		delete(pending, name)
	}
	sort.Strings(names)
	return names
}
