package memory

import (
	"context"
	"path/filepath"

	"github.com/grindlemire/graft"
	"go.trai.ch/wenv/internal/core/domain"
	"go.trai.ch/wenv/internal/core/ports"
)

// NodeID is the unique identifier for the memory store Graft node.
const NodeID graft.ID = "adapter.memory_store"

func init() {
	graft.Register(graft.Node[ports.MemoryStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.MemoryStore, error) {
			dir, err := domain.ResolveConfigDir()
			if err != nil {
				// Without a config directory nothing is remembered.
				return NewStore(""), nil //nolint:nilerr // memory is best-effort
			}
			return NewStore(filepath.Join(dir, domain.MemoryFileName)), nil
		},
	})
}
