package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/wenv/internal/adapters/config"  //nolint:depguard // Wired in app layer
	"go.trai.ch/wenv/internal/adapters/envfile" //nolint:depguard // Wired in app layer
	"go.trai.ch/wenv/internal/adapters/logger"  //nolint:depguard // Wired in app layer
	"go.trai.ch/wenv/internal/adapters/memory"  //nolint:depguard // Wired in app layer
	"go.trai.ch/wenv/internal/adapters/shell"   //nolint:depguard // Wired in app layer
	"go.trai.ch/wenv/internal/core/ports"
	"go.trai.ch/wenv/internal/engine/supervisor"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			memory.NodeID,
			envfile.NodeID,
			shell.NodeID,
			supervisor.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: app, Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.MemoryStore](ctx)
	if err != nil {
		return nil, err
	}

	envLoader, err := graft.Dep[ports.EnvLoader](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	sup, err := graft.Dep[*supervisor.Supervisor](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, store, envLoader, executor, sup, log), nil
}
