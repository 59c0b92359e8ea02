// Package watcher implements change notification for env files.
package watcher

import (
	"os"
	"path/filepath"
	"sync"
	"unique"

	"github.com/fsnotify/fsnotify"
	"go.trai.ch/wenv/internal/core/domain"
	"go.trai.ch/wenv/internal/core/ports"
	"go.trai.ch/zerr"
)

var (
	_ ports.Watcher        = (*Watcher)(nil)
	_ ports.WatcherFactory = Factory{}
)

const eventChannelBuffer = 100

// Watcher implements ports.Watcher using fsnotify.
//
// Files are watched through their parent directory so that editors which
// replace a file by renaming over it keep producing events. A symlinked file
// is also watched through its target's directory; events on the target are
// reported under the registered path.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	events    chan ports.WatchEvent
	errors    chan error
	done      chan struct{}
	closeOnce sync.Once

	mu sync.RWMutex
	// files maps every watched path to the path it was registered as.
	files map[unique.Handle[string]]string
	dirs  map[unique.Handle[string]]struct{}
}

// NewWatcher creates a watcher with no registered files.
func NewWatcher() (*Watcher, error) {
	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, zerr.Wrap(err, domain.ErrWatcherCreateFailed.Error())
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		events:    make(chan ports.WatchEvent, eventChannelBuffer),
		errors:    make(chan error, 1),
		done:      make(chan struct{}),
		files:     make(map[unique.Handle[string]]string),
		dirs:      make(map[unique.Handle[string]]struct{}),
	}
	go w.processEvents()

	return w, nil
}

// Add registers path for change notification.
func (w *Watcher) Add(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return w.registerError(err, path)
	}
	if _, err := os.Stat(abs); err != nil {
		return w.registerError(err, path)
	}
	target, err := symlinkTarget(abs)
	if err != nil {
		return w.registerError(err, path)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if err := w.watchDir(filepath.Dir(abs)); err != nil {
		return w.registerError(err, path)
	}
	w.files[unique.Make(abs)] = abs

	if target != "" {
		if err := w.watchDir(filepath.Dir(target)); err != nil {
			return w.registerError(err, path)
		}
		w.track(target, abs)
	}

	return nil
}

// symlinkTarget returns the path under which changes to the file behind the
// symlink abs are reported, or "" if abs is not a symlink. A target in the
// link's own directory is spelled through that directory, which is already watched.
func symlinkTarget(abs string) (string, error) {
	info, err := os.Lstat(abs)
	if err != nil {
		return "", err
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return "", nil
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return "", err
	}
	linkDir, err := filepath.EvalSymlinks(filepath.Dir(abs))
	if err != nil {
		return "", err
	}
	if filepath.Dir(resolved) == linkDir {
		return filepath.Join(filepath.Dir(abs), filepath.Base(resolved)), nil
	}
	return resolved, nil
}

// watchDir adds dir to the fsnotify watcher once. Callers hold w.mu.
func (w *Watcher) watchDir(dir string) error {
	h := unique.Make(dir)
	if _, watched := w.dirs[h]; watched {
		return nil
	}
	if err := w.fsWatcher.Add(dir); err != nil {
		return err
	}
	w.dirs[h] = struct{}{}
	return nil
}

// track records that events on a symlink target belong to registered, unless
// path is already watched in its own right. Callers hold w.mu.
func (w *Watcher) track(path, registered string) {
	h := unique.Make(path)
	if _, ok := w.files[h]; !ok {
		w.files[h] = registered
	}
}

// Events returns the channel of change events. It is closed once the watcher stops.
func (w *Watcher) Events() <-chan ports.WatchEvent {
	return w.events
}

// Errors returns the channel of watcher failures.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and releases all resources.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsWatcher.Close()
	})
	return err
}

func (w *Watcher) registerError(err error, path string) error {
	return zerr.With(zerr.Wrap(err, domain.ErrWatchRegisterFailed.Error()), "path", path)
}

// registeredPath maps a raw event path to the path it was registered as.
func (w *Watcher) registeredPath(path string) (string, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	registered, ok := w.files[unique.Make(filepath.Clean(path))]
	return registered, ok
}

// processEvents converts raw fsnotify events for registered files into ports.WatchEvent.
//
//nolint:cyclop // one select arm per source channel
func (w *Watcher) processEvents() {
	defer close(w.events)

	for {
		select {
		case <-w.done:
			return
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			registered, ok := w.registeredPath(event.Name)
			if !ok {
				continue
			}
			event.Name = registered

			watchEvent := convertEvent(event)
			if watchEvent == nil {
				continue
			}

			select {
			case w.events <- *watchEvent:
			case <-w.done:
				return
			}
		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			select {
			case w.errors <- err:
			default:
				// A failure is already pending.
			}
		}
	}
}

// convertEvent converts an fsnotify event to a ports.WatchEvent. Chmod-only events are dropped.
func convertEvent(event fsnotify.Event) *ports.WatchEvent {
	path := event.Name

	switch {
	case event.Has(fsnotify.Write):
		return &ports.WatchEvent{Path: path, Operation: ports.OpWrite}
	case event.Has(fsnotify.Create):
		return &ports.WatchEvent{Path: path, Operation: ports.OpCreate}
	case event.Has(fsnotify.Remove):
		return &ports.WatchEvent{Path: path, Operation: ports.OpRemove}
	case event.Has(fsnotify.Rename):
		return &ports.WatchEvent{Path: path, Operation: ports.OpRename}
	default:
		return nil
	}
}

// Factory creates fsnotify-backed watchers.
type Factory struct{}

// NewWatcher implements ports.WatcherFactory.
func (Factory) NewWatcher() (ports.Watcher, error) {
	return NewWatcher()
}
