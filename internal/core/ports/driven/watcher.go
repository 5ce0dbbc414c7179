package driven

import "context"

// DirectoryWatcher reports changes to files in a directory.
type DirectoryWatcher interface {
	// Watch starts watching dir. One value is sent per burst of changes,
	// carrying the names of the files that changed. The channel is closed
	// when ctx is cancelled or the watcher fails.
	Watch(ctx context.Context, dir string) (<-chan []string, error)
}
