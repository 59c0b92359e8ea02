// Package supervisor restarts a command whenever one of its env files changes.
package supervisor

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.trai.ch/wenv/internal/core/domain"
	"go.trai.ch/wenv/internal/core/ports"
	"go.trai.ch/zerr"
)

var errWatcherStopped = errors.New("watcher stopped delivering events")

// Supervisor runs a command and restarts it with a freshly loaded
// environment each time a watched env file changes.
type Supervisor struct {
	envLoader ports.EnvLoader
	executor  ports.Executor
	watchers  ports.WatcherFactory
	logger    ports.Logger
	window    time.Duration
}

// New creates a Supervisor using the default debounce window.
func New(
	envLoader ports.EnvLoader,
	executor ports.Executor,
	watchers ports.WatcherFactory,
	logger ports.Logger,
) *Supervisor {
	return &Supervisor{
		envLoader: envLoader,
		executor:  executor,
		watchers:  watchers,
		logger:    logger,
		window:    domain.DebounceWindow,
	}
}

// Watch loads files, starts command and restarts it on every accepted change
// until ctx is cancelled or the watcher fails.
//
// Watch only returns with an error. On cancellation it returns ctx.Err();
// on watcher failure an error wrapping domain.ErrWatchFailed.
// In both cases the running child has been killed and reaped.
//
//nolint:cyclop // the event loop has one arm per source
func (s *Supervisor) Watch(ctx context.Context, files, command []string) error {
	env, err := s.envLoader.Load(files)
	if err != nil {
		return err
	}

	w, err := s.watchers.NewWatcher()
	if err != nil {
		return zerr.Wrap(err, domain.ErrWatchFailed.Error())
	}
	defer func() { _ = w.Close() }()

	for _, file := range files {
		if err := w.Add(file); err != nil {
			s.logger.Warn("cannot watch env file", "path", file, "error", err)
		}
	}

	s.logger.Info("[watching] " + strings.Join(files, ", "))

	proc := s.spawn(ctx, command, env)
	fingerprint := env.Fingerprint()
	debounce := NewDebouncer(s.window, time.Now())

	for {
		select {
		case <-ctx.Done():
			s.stop(proc)
			return ctx.Err()

		case event, ok := <-w.Events():
			if !ok {
				s.stop(proc)
				return zerr.Wrap(errWatcherStopped, domain.ErrWatchFailed.Error())
			}
			if !event.Operation.IsChange() || !debounce.Allow(time.Now()) {
				continue
			}

			s.logger.Info("[restarting] env file changed", "path", event.Path)
			s.stop(proc)
			proc = nil

			next, err := s.envLoader.Load(files)
			if err != nil {
				s.logger.Error(err)
				continue
			}

			if next.Fingerprint() == fingerprint {
				s.logger.Info("environment unchanged")
			} else {
				s.logger.Info("environment changed", "keys", len(next))
				fingerprint = next.Fingerprint()
			}

			proc = s.spawn(ctx, command, next)

		case err, ok := <-w.Errors():
			s.stop(proc)
			if !ok {
				err = errWatcherStopped
			}
			return zerr.Wrap(err, domain.ErrWatchFailed.Error())
		}
	}
}

func (s *Supervisor) spawn(ctx context.Context, command []string, env domain.Environment) ports.Process {
	proc, err := s.executor.Start(ctx, command, env)
	if err != nil {
		s.logger.Error(err)
		return nil
	}
	return proc
}

// stop kills proc and waits for it to be reaped.
func (s *Supervisor) stop(proc ports.Process) {
	if proc == nil {
		return
	}
	if err := proc.Kill(); err != nil {
		s.logger.Warn("failed to kill command", "error", err)
	}
	if _, err := proc.Wait(); err != nil {
		s.logger.Warn("failed to reap command", "error", err)
	}
}
