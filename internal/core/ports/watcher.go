package ports

// WatchOp represents the type of file system operation.
type WatchOp uint8

const (
	// OpCreate indicates a file was created.
	OpCreate WatchOp = iota
	// OpWrite indicates a file was modified.
	OpWrite
	// OpRemove indicates a file was removed.
	OpRemove
	// OpRename indicates a file was renamed.
	OpRename
)

// IsChange reports whether the operation leaves new content at the path.
func (op WatchOp) IsChange() bool {
	return op == OpCreate || op == OpWrite
}

// WatchEvent represents a file system event from the watcher.
type WatchEvent struct {
	// Path is the path of the watched file that changed.
	Path string
	// Operation is the type of change that occurred.
	Operation WatchOp
}

// Watcher delivers change events for a set of files.
//
//go:generate mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Add registers a file. It fails if the file does not exist or cannot be watched.
	Add(path string) error
	// Events returns the channel of events. It is closed when the watcher stops.
	Events() <-chan WatchEvent
	// Errors returns the channel of watcher failures.
	Errors() <-chan error
	// Close stops the watcher and releases all resources.
	Close() error
}

// WatcherFactory creates watchers.
type WatcherFactory interface {
	NewWatcher() (Watcher, error)
}
