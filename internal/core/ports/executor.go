// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/wenv/internal/core/domain"
)

// Process is a running child process.
type Process interface {
	// Wait blocks until the process exits and reaps it.
	// It returns the exit code, which is 1 when the process was terminated by a signal.
	Wait() (int, error)
	// Kill terminates the process. Killing an already finished process is not an error.
	Kill() error
}

// Executor defines the interface for spawning commands.
//
//go:generate mockgen -source=executor.go -destination=mocks/mock_executor.go -package=mocks
type Executor interface {
	// Start spawns command with env applied on top of the inherited environment.
	Start(ctx context.Context, command []string, env domain.Environment) (Process, error)

	// Run spawns command and waits for it, returning its exit code.
	Run(ctx context.Context, command []string, env domain.Environment) (int, error)
}
