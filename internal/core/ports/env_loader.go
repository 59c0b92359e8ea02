package ports

import "go.trai.ch/wenv/internal/core/domain"

// EnvLoader reads env files into an environment.
//
//go:generate mockgen -source=env_loader.go -destination=mocks/mock_env_loader.go -package=mocks
type EnvLoader interface {
	// Load reads files in order; later files override earlier ones.
	Load(files []string) (domain.Environment, error)
	// Existing returns the subset of files present on disk, in order.
	Existing(files []string) []string
}
