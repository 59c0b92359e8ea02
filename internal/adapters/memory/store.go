// Package memory implements the per-directory env file memory.
package memory

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/wenv/internal/core/domain"
	"go.trai.ch/wenv/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.MemoryStore = (*Store)(nil)

// document is the on-disk layout of the memory file.
type document struct {
	Entries map[string][]string `toml:"entries"`
}

// Store implements ports.MemoryStore using a TOML file.
type Store struct {
	path    string
	once    sync.Once
	mu      sync.RWMutex
	entries map[string][]string
}

// NewStore creates a Store backed by the file at path.
// The file is read on first access. An empty path yields a store that is never persisted.
func NewStore(path string) *Store {
	if path != "" {
		path = filepath.Clean(path)
	}
	return &Store{
		path:    path,
		entries: make(map[string][]string),
	}
}

// Path returns the location of the memory file.
func (s *Store) Path() string {
	return s.path
}

// ensureLoaded reads the snapshot once. A missing or corrupt file leaves the store empty.
func (s *Store) ensureLoaded() {
	s.once.Do(func() {
		_ = s.load() // unreadable memory degrades to an empty store
	})
}

func (s *Store) load() error {
	if s.path == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	//nolint:gosec // Path is cleaned and provided by trusted caller
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return zerr.With(zerr.Wrap(err, domain.ErrMemoryReadFailed.Error()), "path", s.path)
	}

	var doc document
	if err := toml.Unmarshal(data, &doc); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMemoryParseFailed.Error()), "path", s.path)
	}

	if doc.Entries != nil {
		s.entries = doc.Entries
	}
	return nil
}

// Get returns the remembered files for dir, most recent first.
// A directory that cannot be canonicalized is never found.
func (s *Store) Get(dir string) ([]string, bool) {
	s.ensureLoaded()

	key, err := canonicalize(dir)
	if err != nil {
		return nil, false
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	files, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	return slices.Clone(files), true
}

// Record moves files to the front of the list for dir and keeps at most maxEntries.
// Directories that cannot be canonicalized are recorded under their absolute path.
func (s *Store) Record(dir string, files []string, maxEntries int) {
	s.ensureLoaded()

	key, err := canonicalize(dir)
	if err != nil {
		key = fallbackKey(dir)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = domain.Promote(s.entries[key], files, maxEntries)
}

// Save writes the whole store to disk.
// The snapshot is written to a temporary file and renamed into place.
func (s *Store) Save() error {
	if s.path == "" {
		return nil
	}
	s.ensureLoaded()

	s.mu.RLock()
	data, err := toml.Marshal(document{Entries: s.entries})
	s.mu.RUnlock()
	if err != nil {
		return zerr.Wrap(err, domain.ErrMemorySaveFailed.Error())
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMemorySaveFailed.Error()), "path", dir)
	}

	tmp, err := os.CreateTemp(dir, "."+domain.MemoryFileName+".*")
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMemorySaveFailed.Error()), "path", s.path)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return zerr.With(zerr.Wrap(err, domain.ErrMemorySaveFailed.Error()), "path", s.path)
	}
	if err := tmp.Close(); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMemorySaveFailed.Error()), "path", s.path)
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMemorySaveFailed.Error()), "path", s.path)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrMemorySaveFailed.Error()), "path", s.path)
	}
	return nil
}

// canonicalize resolves dir to an absolute path with symlinks evaluated.
func canonicalize(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

func fallbackKey(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}
