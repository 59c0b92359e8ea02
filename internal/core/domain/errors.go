package domain

import (
	"strconv"

	"go.trai.ch/zerr"
)

var (
	// ErrNoEnvFiles is returned when no env files were given and none are remembered.
	ErrNoEnvFiles = zerr.New("no env files specified and none in memory")

	// ErrNoCommand is returned when no command follows the "--" separator.
	ErrNoCommand = zerr.New("no command specified")

	// ErrEnvFileReadFailed is returned when an env file cannot be read or parsed.
	ErrEnvFileReadFailed = zerr.New("failed to read env file")

	// ErrCommandStartFailed is returned when the child process cannot be spawned.
	ErrCommandStartFailed = zerr.New("failed to start command")

	// ErrCommandWaitFailed is returned when waiting on the child process fails for a reason
	// other than a non-zero exit.
	ErrCommandWaitFailed = zerr.New("failed to wait for command")

	// ErrWatchFailed is returned when the file watcher stops delivering events.
	ErrWatchFailed = zerr.New("file watcher failed")

	// ErrWatcherCreateFailed is returned when the file watcher cannot be created.
	ErrWatcherCreateFailed = zerr.New("failed to create file watcher")

	// ErrWatchRegisterFailed is returned when a single file cannot be watched.
	ErrWatchRegisterFailed = zerr.New("failed to watch file")

	// ErrMemoryReadFailed is returned when the memory file cannot be read.
	ErrMemoryReadFailed = zerr.New("failed to read memory file")

	// ErrMemoryParseFailed is returned when the memory file cannot be decoded.
	ErrMemoryParseFailed = zerr.New("failed to parse memory file")

	// ErrMemorySaveFailed is returned when the memory file cannot be written.
	ErrMemorySaveFailed = zerr.New("failed to save memory file")

	// ErrConfigReadFailed is returned when a config file cannot be read.
	ErrConfigReadFailed = zerr.New("failed to read config file")

	// ErrConfigParseFailed is returned when a config file cannot be decoded.
	ErrConfigParseFailed = zerr.New("failed to parse config file")

	// ErrWorkDirUnavailable is returned when the working directory cannot be determined.
	ErrWorkDirUnavailable = zerr.New("couldn't get current directory")
)

// ExitError reports a child process that finished with a non-zero exit code.
// The entry point mirrors Code as the process exit status.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return "command exited with status " + strconv.Itoa(e.Code)
}
