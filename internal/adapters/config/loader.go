// Package config provides the configuration loader for wenv.
package config

import (
	"errors"
	"io/fs"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
	"go.trai.ch/wenv/internal/core/domain"
	"go.trai.ch/wenv/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

var _ ports.ConfigLoader = (*Loader)(nil)

// Loader implements ports.ConfigLoader.
// Global configuration lives in dir; project configuration lives in the working directory.
type Loader struct {
	dir    string
	fs     FileSystem
	logger ports.Logger
}

// NewLoader creates a Loader reading config.toml from dir.
// An empty dir means there is no global configuration.
func NewLoader(dir string, logger ports.Logger) *Loader {
	return NewLoaderWithFS(dir, NewOSFS(), logger)
}

// NewLoaderWithFS creates a Loader reading through the given FileSystem.
func NewLoaderWithFS(dir string, fsys FileSystem, logger ports.Logger) *Loader {
	return &Loader{dir: dir, fs: fsys, logger: logger}
}

// LoadGlobal reads config.toml. Missing keys keep their defaults;
// a missing or malformed file yields the default configuration.
func (l *Loader) LoadGlobal() domain.Config {
	cfg := domain.DefaultConfig()
	if l.dir == "" {
		return cfg
	}

	var file GlobalFile
	found, err := l.decode(filepath.Join(l.dir, domain.ConfigFileName), &file)
	if err != nil {
		l.warn(err)
		return cfg
	}
	if !found {
		return cfg
	}

	if file.Memory.Enabled != nil {
		cfg.Memory.Enabled = *file.Memory.Enabled
	}
	if file.Memory.MaxEntries != nil {
		cfg.Memory.MaxEntries = *file.Memory.MaxEntries
	}
	return cfg
}

// LoadLocal reads .wenv.toml, or .wenv.yaml when there is no TOML file, from dir.
// It returns nil when neither exists or the file cannot be parsed.
func (l *Loader) LoadLocal(dir string) *domain.LocalConfig {
	for _, name := range []string{domain.LocalConfigFileName, domain.LocalConfigYAMLFileName} {
		var file LocalFile
		found, err := l.decode(filepath.Join(dir, name), &file)
		if err != nil {
			l.warn(err)
			return nil
		}
		if !found {
			continue
		}
		return &domain.LocalConfig{
			MemoryEnabled: file.Memory.Enabled,
			Aliases:       file.Aliases,
		}
	}
	return nil
}

// decode reads path and unmarshals it according to its extension.
// found is false when the file does not exist.
func (l *Loader) decode(path string, v any) (found bool, err error) {
	data, err := l.fs.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, zerr.With(zerr.Wrap(err, domain.ErrConfigReadFailed.Error()), "path", path)
	}

	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, v)
	default:
		err = toml.Unmarshal(data, v)
	}
	if err != nil {
		return false, zerr.With(zerr.Wrap(err, domain.ErrConfigParseFailed.Error()), "path", path)
	}
	return true, nil
}

// warn reports a recovered configuration problem. Configuration errors never abort a run.
func (l *Loader) warn(err error) {
	if l.logger == nil {
		return
	}
	l.logger.Warn("ignoring config; using defaults", "error", err)
}
