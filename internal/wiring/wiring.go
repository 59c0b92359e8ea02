// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/wenv/internal/adapters/config"
	_ "go.trai.ch/wenv/internal/adapters/envfile"
	_ "go.trai.ch/wenv/internal/adapters/logger"
	_ "go.trai.ch/wenv/internal/adapters/memory"
	_ "go.trai.ch/wenv/internal/adapters/shell"
	_ "go.trai.ch/wenv/internal/adapters/watcher"
	// Register app and engine nodes.
	_ "go.trai.ch/wenv/internal/app"
	_ "go.trai.ch/wenv/internal/engine/supervisor"
)
