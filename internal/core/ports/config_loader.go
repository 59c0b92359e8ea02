package ports

import "go.trai.ch/wenv/internal/core/domain"

// ConfigLoader defines the interface for loading configuration.
//
// Both methods degrade to defaults: a missing or malformed file is never an error for the caller.
//
//go:generate mockgen -source=config_loader.go -destination=mocks/mock_config_loader.go -package=mocks
type ConfigLoader interface {
	// LoadGlobal reads the user-wide configuration.
	LoadGlobal() domain.Config

	// LoadLocal reads the project-local configuration in dir. It returns nil if there is none.
	LoadLocal(dir string) *domain.LocalConfig
}
