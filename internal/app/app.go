// Package app implements the application layer for wenv.
package app

import (
	"context"
	"fmt"
	"io"

	"go.trai.ch/wenv/internal/core/domain"
	"go.trai.ch/wenv/internal/core/ports"
	"go.trai.ch/zerr"
)

// noMemoryMessage is printed by List when nothing is remembered for the directory.
const noMemoryMessage = "no env files remembered for this directory"

// Supervisor runs a command under the env file watch loop.
type Supervisor interface {
	Watch(ctx context.Context, files, command []string) error
}

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	memory       ports.MemoryStore
	envLoader    ports.EnvLoader
	executor     ports.Executor
	supervisor   Supervisor
	logger       ports.Logger
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	memory ports.MemoryStore,
	envLoader ports.EnvLoader,
	executor ports.Executor,
	supervisor Supervisor,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		memory:       memory,
		envLoader:    envLoader,
		executor:     executor,
		supervisor:   supervisor,
		logger:       log,
	}
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// Dir is the directory the memory is keyed by and local config is read from.
	Dir string
	// EnvFiles are the files given on the command line. Tokens starting with "@" name aliases.
	EnvFiles []string
	// Command is the program and its arguments.
	Command []string
	// Watch restarts the command whenever an env file changes.
	Watch bool
	// NoMemory disables reading and recording the directory memory.
	NoMemory bool
}

// Run resolves the env files, loads them and runs the command.
//
// A command that exits non-zero yields a *domain.ExitError carrying its code.
func (a *App) Run(ctx context.Context, opts RunOptions) error {
	cfg := a.configLoader.LoadGlobal()
	local := a.configLoader.LoadLocal(opts.Dir)
	remember := !opts.NoMemory && domain.MemoryEnabled(cfg, local)

	explicit := local.ExpandAliases(opts.EnvFiles)
	files := explicit
	if len(files) == 0 && remember {
		if remembered, ok := a.memory.Get(opts.Dir); ok {
			files = a.envLoader.Existing(remembered)
		}
	}

	if len(files) == 0 {
		return domain.ErrNoEnvFiles
	}
	if len(opts.Command) == 0 {
		return domain.ErrNoCommand
	}

	env, err := a.envLoader.Load(files)
	if err != nil {
		return err
	}

	if remember && len(explicit) > 0 {
		a.record(opts.Dir, explicit, cfg.Memory.MaxEntries)
	}

	if opts.Watch {
		return a.supervisor.Watch(ctx, files, opts.Command)
	}

	code, err := a.executor.Run(ctx, opts.Command, env)
	if err != nil {
		return err
	}
	if code != 0 {
		return &domain.ExitError{Code: code}
	}
	return nil
}

// record remembers files for dir. Persistence failures are reported as warnings only.
func (a *App) record(dir string, files []string, maxEntries int) {
	a.memory.Record(dir, files, maxEntries)
	if err := a.memory.Save(); err != nil {
		a.logger.Warn("could not remember env files", "error", err)
	}
}

// List writes the remembered env files for dir to w, one per line.
func (a *App) List(dir string, w io.Writer) error {
	files, ok := a.memory.Get(dir)
	if !ok || len(files) == 0 {
		_, err := fmt.Fprintln(w, noMemoryMessage)
		return err
	}

	for _, f := range files {
		if _, err := fmt.Fprintln(w, f); err != nil {
			return zerr.Wrap(err, "failed to write remembered files")
		}
	}
	return nil
}
