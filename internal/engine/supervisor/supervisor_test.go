package supervisor_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"testing/synctest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wenv/internal/core/domain"
	"go.trai.ch/wenv/internal/core/ports"
	"go.trai.ch/wenv/internal/core/ports/mocks"
	"go.trai.ch/wenv/internal/engine/supervisor"
	"go.uber.org/mock/gomock"
)

var (
	envFiles = []string{".env"}
	command  = []string{"server", "--port", "8080"}
)

type fixture struct {
	ctrl     *gomock.Controller
	loader   *mocks.MockEnvLoader
	executor *mocks.MockExecutor
	factory  *mocks.MockWatcherFactory
	watcher  *mocks.MockWatcher
	logger   *mocks.MockLogger
	events   chan ports.WatchEvent
	errs     chan error

	mu    sync.Mutex
	infos []logEntry
}

type logEntry struct {
	msg  string
	args []any
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		ctrl:     ctrl,
		loader:   mocks.NewMockEnvLoader(ctrl),
		executor: mocks.NewMockExecutor(ctrl),
		factory:  mocks.NewMockWatcherFactory(ctrl),
		watcher:  mocks.NewMockWatcher(ctrl),
		logger:   mocks.NewMockLogger(ctrl),
		events:   make(chan ports.WatchEvent),
		errs:     make(chan error),
	}

	f.logger.EXPECT().Info(gomock.Any(), gomock.Any()).Do(func(msg string, args ...any) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.infos = append(f.infos, logEntry{msg: msg, args: args})
	}).AnyTimes()

	return f
}

// expectWatcher wires the factory to hand out the fixture's watcher.
func (f *fixture) expectWatcher() {
	f.factory.EXPECT().NewWatcher().Return(f.watcher, nil)
	f.watcher.EXPECT().Events().Return((<-chan ports.WatchEvent)(f.events)).AnyTimes()
	f.watcher.EXPECT().Errors().Return((<-chan error)(f.errs)).AnyTimes()
	f.watcher.EXPECT().Close().Return(nil)
}

// expectProcess returns a process that expects to be killed and reaped once.
func (f *fixture) expectProcess() *mocks.MockProcess {
	proc := mocks.NewMockProcess(f.ctrl)
	kill := proc.EXPECT().Kill().Return(nil)
	proc.EXPECT().Wait().Return(domain.ExitFailure, nil).After(kill)
	return proc
}

func (f *fixture) supervisor() *supervisor.Supervisor {
	return supervisor.New(f.loader, f.executor, f.factory, f.logger)
}

func (f *fixture) messages() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	msgs := make([]string, 0, len(f.infos))
	for _, e := range f.infos {
		msgs = append(msgs, e.msg)
	}
	return msgs
}

// attrs returns the attributes of the first info message equal to msg.
func (f *fixture) attrs(msg string) []any {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, e := range f.infos {
		if e.msg == msg {
			return e.args
		}
	}
	return nil
}

func (f *fixture) write(path string) {
	f.events <- ports.WatchEvent{Path: path, Operation: ports.OpWrite}
}

func startWatch(ctx context.Context, sup *supervisor.Supervisor, files []string) <-chan error {
	done := make(chan error, 1)
	go func() {
		done <- sup.Watch(ctx, files, command)
	}()
	return done
}

func TestSupervisor_Watch_BurstRestartsOnce(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.expectWatcher()

		env := domain.Environment{"PORT": "8080"}
		f.loader.EXPECT().Load(envFiles).Return(env, nil).Times(2)
		f.watcher.EXPECT().Add(".env").Return(nil)

		first := f.expectProcess()
		second := f.expectProcess()
		gomock.InOrder(
			f.executor.EXPECT().Start(gomock.Any(), command, env).Return(first, nil),
			f.executor.EXPECT().Start(gomock.Any(), command, env).Return(second, nil),
		)

		done := startWatch(t.Context(), f.supervisor(), envFiles)

		time.Sleep(300 * time.Millisecond)
		for range 5 {
			f.write(".env")
			time.Sleep(20 * time.Millisecond)
		}
		close(f.events)

		err := <-done
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrWatchFailed.Error())
		assert.Contains(t, f.messages(), "environment unchanged")
	})
}

func TestSupervisor_Watch_SeparatedChangesRestartEach(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.expectWatcher()

		before := domain.Environment{"PORT": "8080"}
		after := domain.Environment{"PORT": "9090"}
		gomock.InOrder(
			f.loader.EXPECT().Load(envFiles).Return(before, nil),
			f.loader.EXPECT().Load(envFiles).Return(after, nil).Times(2),
		)
		f.watcher.EXPECT().Add(".env").Return(nil)

		gomock.InOrder(
			f.executor.EXPECT().Start(gomock.Any(), command, before).Return(f.expectProcess(), nil),
			f.executor.EXPECT().Start(gomock.Any(), command, after).Return(f.expectProcess(), nil),
			f.executor.EXPECT().Start(gomock.Any(), command, after).Return(f.expectProcess(), nil),
		)

		done := startWatch(t.Context(), f.supervisor(), envFiles)

		time.Sleep(300 * time.Millisecond)
		f.write(".env")
		time.Sleep(300 * time.Millisecond)
		f.write(".env")
		close(f.events)

		require.Error(t, <-done)
		msgs := f.messages()
		assert.Contains(t, msgs, "environment changed")
		assert.Contains(t, msgs, "environment unchanged")
		assert.Contains(t, msgs, "[restarting] env file changed")
		assert.Equal(t, []any{"path", ".env"}, f.attrs("[restarting] env file changed"))
		assert.Equal(t, []any{"keys", 1}, f.attrs("environment changed"))
	})
}

func TestSupervisor_Watch_IgnoresChangesRightAfterStart(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.expectWatcher()

		env := domain.Environment{"A": "1"}
		f.loader.EXPECT().Load(envFiles).Return(env, nil)
		f.watcher.EXPECT().Add(".env").Return(nil)
		f.executor.EXPECT().Start(gomock.Any(), command, env).Return(f.expectProcess(), nil)

		done := startWatch(t.Context(), f.supervisor(), envFiles)

		time.Sleep(100 * time.Millisecond)
		f.write(".env")
		close(f.events)

		require.Error(t, <-done)
	})
}

func TestSupervisor_Watch_IgnoresNonContentOperations(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.expectWatcher()

		env := domain.Environment{"A": "1"}
		f.loader.EXPECT().Load(envFiles).Return(env, nil)
		f.watcher.EXPECT().Add(".env").Return(nil)
		f.executor.EXPECT().Start(gomock.Any(), command, env).Return(f.expectProcess(), nil)

		done := startWatch(t.Context(), f.supervisor(), envFiles)

		time.Sleep(300 * time.Millisecond)
		f.events <- ports.WatchEvent{Path: ".env", Operation: ports.OpRemove}
		time.Sleep(300 * time.Millisecond)
		f.events <- ports.WatchEvent{Path: ".env", Operation: ports.OpRename}
		close(f.events)

		require.Error(t, <-done)
	})
}

func TestSupervisor_Watch_CreateTriggersRestart(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.expectWatcher()

		env := domain.Environment{"A": "1"}
		f.loader.EXPECT().Load(envFiles).Return(env, nil).Times(2)
		f.watcher.EXPECT().Add(".env").Return(nil)
		f.executor.EXPECT().Start(gomock.Any(), command, env).Return(f.expectProcess(), nil)
		f.executor.EXPECT().Start(gomock.Any(), command, env).Return(f.expectProcess(), nil)

		done := startWatch(t.Context(), f.supervisor(), envFiles)

		time.Sleep(300 * time.Millisecond)
		f.events <- ports.WatchEvent{Path: ".env", Operation: ports.OpCreate}
		close(f.events)

		require.Error(t, <-done)
	})
}

func TestSupervisor_Watch_InitialLoadFailure(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)

		f.loader.EXPECT().Load(envFiles).Return(nil, domain.ErrEnvFileReadFailed)

		err := f.supervisor().Watch(t.Context(), envFiles, command)
		require.ErrorIs(t, err, domain.ErrEnvFileReadFailed)
	})
}

func TestSupervisor_Watch_WatcherCreateFailure(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)

		f.loader.EXPECT().Load(envFiles).Return(domain.Environment{}, nil)
		f.factory.EXPECT().NewWatcher().Return(nil, domain.ErrWatcherCreateFailed)

		err := f.supervisor().Watch(t.Context(), envFiles, command)
		require.Error(t, err)
		assert.ErrorContains(t, err, domain.ErrWatchFailed.Error())
	})
}

func TestSupervisor_Watch_RegistrationFailureContinues(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.expectWatcher()

		files := []string{".env.gone", ".env"}
		env := domain.Environment{"A": "1"}
		f.loader.EXPECT().Load(files).Return(env, nil).Times(2)
		f.watcher.EXPECT().Add(".env.gone").Return(domain.ErrWatchRegisterFailed)
		f.watcher.EXPECT().Add(".env").Return(nil)
		f.logger.EXPECT().Warn("cannot watch env file", "path", ".env.gone", "error", domain.ErrWatchRegisterFailed)

		f.executor.EXPECT().Start(gomock.Any(), command, env).Return(f.expectProcess(), nil)
		f.executor.EXPECT().Start(gomock.Any(), command, env).Return(f.expectProcess(), nil)

		done := startWatch(t.Context(), f.supervisor(), files)

		time.Sleep(300 * time.Millisecond)
		f.write(".env")
		close(f.events)

		require.Error(t, <-done)
	})
}

func TestSupervisor_Watch_ReloadFailureSkipsSpawn(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.expectWatcher()

		env := domain.Environment{"A": "1"}
		gomock.InOrder(
			f.loader.EXPECT().Load(envFiles).Return(env, nil),
			f.loader.EXPECT().Load(envFiles).Return(nil, domain.ErrEnvFileReadFailed),
			f.loader.EXPECT().Load(envFiles).Return(env, nil),
		)
		f.watcher.EXPECT().Add(".env").Return(nil)
		f.logger.EXPECT().Error(gomock.Any())

		// Only the initial child and the one after the recovered reload.
		f.executor.EXPECT().Start(gomock.Any(), command, env).Return(f.expectProcess(), nil)
		f.executor.EXPECT().Start(gomock.Any(), command, env).Return(f.expectProcess(), nil)

		done := startWatch(t.Context(), f.supervisor(), envFiles)

		time.Sleep(300 * time.Millisecond)
		f.write(".env")
		time.Sleep(300 * time.Millisecond)
		f.write(".env")
		close(f.events)

		require.Error(t, <-done)
	})
}

func TestSupervisor_Watch_SpawnFailureRetriesOnNextChange(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.expectWatcher()

		env := domain.Environment{"A": "1"}
		f.loader.EXPECT().Load(envFiles).Return(env, nil).Times(2)
		f.watcher.EXPECT().Add(".env").Return(nil)
		f.logger.EXPECT().Error(gomock.Any())

		gomock.InOrder(
			f.executor.EXPECT().Start(gomock.Any(), command, env).Return(nil, domain.ErrCommandStartFailed),
			f.executor.EXPECT().Start(gomock.Any(), command, env).Return(f.expectProcess(), nil),
		)

		done := startWatch(t.Context(), f.supervisor(), envFiles)

		time.Sleep(300 * time.Millisecond)
		f.write(".env")
		close(f.events)

		require.Error(t, <-done)
	})
}

func TestSupervisor_Watch_ContextCancel(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.expectWatcher()

		env := domain.Environment{"A": "1"}
		f.loader.EXPECT().Load(envFiles).Return(env, nil)
		f.watcher.EXPECT().Add(".env").Return(nil)
		f.executor.EXPECT().Start(gomock.Any(), command, env).Return(f.expectProcess(), nil)

		ctx, cancel := context.WithCancel(t.Context())
		done := startWatch(ctx, f.supervisor(), envFiles)

		time.Sleep(time.Second)
		cancel()

		require.ErrorIs(t, <-done, context.Canceled)
	})
}

func TestSupervisor_Watch_WatcherError(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.expectWatcher()

		env := domain.Environment{"A": "1"}
		f.loader.EXPECT().Load(envFiles).Return(env, nil)
		f.watcher.EXPECT().Add(".env").Return(nil)
		f.executor.EXPECT().Start(gomock.Any(), command, env).Return(f.expectProcess(), nil)

		done := startWatch(t.Context(), f.supervisor(), envFiles)

		overflow := errors.New("inotify queue overflow")
		time.Sleep(300 * time.Millisecond)
		f.errs <- overflow

		err := <-done
		require.ErrorIs(t, err, overflow)
		assert.ErrorContains(t, err, domain.ErrWatchFailed.Error())
	})
}

func TestSupervisor_Watch_EmptyFileList(t *testing.T) {
	synctest.Test(t, func(t *testing.T) {
		f := newFixture(t)
		f.expectWatcher()

		files := []string{}
		f.loader.EXPECT().Load(files).Return(domain.Environment{}, nil)
		f.executor.EXPECT().Start(gomock.Any(), command, domain.Environment{}).Return(f.expectProcess(), nil)

		ctx, cancel := context.WithCancel(t.Context())
		done := startWatch(ctx, f.supervisor(), files)

		time.Sleep(time.Minute)
		cancel()

		require.ErrorIs(t, <-done, context.Canceled)
	})
}
