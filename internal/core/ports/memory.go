package ports

// MemoryStore remembers, per directory, the env files that were last used there.
//
//go:generate mockgen -source=memory.go -destination=mocks/mock_memory.go -package=mocks
type MemoryStore interface {
	// Get returns the remembered files for dir, most recent first.
	Get(dir string) ([]string, bool)

	// Record moves files to the front of the list for dir and keeps at most maxEntries.
	Record(dir string, files []string, maxEntries int)

	// Save persists the whole store.
	Save() error
}
