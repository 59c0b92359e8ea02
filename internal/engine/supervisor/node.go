package supervisor

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/wenv/internal/adapters/envfile"
	"go.trai.ch/wenv/internal/adapters/logger"
	"go.trai.ch/wenv/internal/adapters/shell"
	"go.trai.ch/wenv/internal/adapters/watcher"
	"go.trai.ch/wenv/internal/core/ports"
)

// NodeID is the unique identifier for the supervisor Graft node.
const NodeID graft.ID = "engine.supervisor"

func init() {
	graft.Register(graft.Node[*Supervisor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			envfile.NodeID,
			shell.NodeID,
			watcher.NodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Supervisor, error) {
			envLoader, err := graft.Dep[ports.EnvLoader](ctx)
			if err != nil {
				return nil, err
			}
			executor, err := graft.Dep[ports.Executor](ctx)
			if err != nil {
				return nil, err
			}
			watchers, err := graft.Dep[ports.WatcherFactory](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(envLoader, executor, watchers, log), nil
		},
	})
}
