package watcher

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/wenv/internal/core/ports"
)

// NodeID is the unique identifier for the watcher factory Graft node.
const NodeID graft.ID = "adapter.watcher_factory"

func init() {
	graft.Register(graft.Node[ports.WatcherFactory]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{},
		Run: func(_ context.Context) (ports.WatcherFactory, error) {
			return Factory{}, nil
		},
	})
}
