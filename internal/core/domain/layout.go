package domain

import (
	"os"
	"path/filepath"
	"time"
)

const (
	// AppName is the directory name used under the user configuration directory.
	AppName = "wenv"

	// ConfigDirEnvVar overrides the configuration directory when set.
	ConfigDirEnvVar = "WENV_CONFIG_DIR"

	// ConfigFileName is the name of the global configuration file.
	ConfigFileName = "config.toml"

	// MemoryFileName is the name of the persisted directory memory.
	MemoryFileName = "memory.toml"

	// LocalConfigFileName is the name of the project-local configuration file.
	LocalConfigFileName = ".wenv.toml"

	// LocalConfigYAMLFileName is the YAML spelling of the project-local configuration file.
	LocalConfigYAMLFileName = ".wenv.yaml"

	// DefaultMaxEntries is the default number of env files remembered per directory.
	DefaultMaxEntries = 10

	// DebounceWindow is the minimum time between two restarts in watch mode.
	DebounceWindow = 200 * time.Millisecond

	// ExitFailure is the exit code used for internal errors.
	ExitFailure = 1

	// ExitInterrupted is the exit code used when a watch session is stopped by a signal.
	ExitInterrupted = 130

	// DirPerm is the default permission for directories (rwxr-x---).
	DirPerm = 0o750

	// FilePerm is the default permission for files (rw-r--r--).
	FilePerm = 0o644
)

// ResolveConfigDir returns the directory holding config.toml and memory.toml.
// ConfigDirEnvVar takes precedence over the platform configuration directory.
func ResolveConfigDir() (string, error) {
	if dir := os.Getenv(ConfigDirEnvVar); dir != "" {
		return dir, nil
	}
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, AppName), nil
}
