package app

import "go.trai.ch/wenv/internal/core/ports"

// Components contains the initialized application components.
type Components struct {
	App    *App
	Logger ports.Logger
}
