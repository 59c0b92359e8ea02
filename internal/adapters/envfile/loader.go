// Package envfile reads dotenv-style files into an environment.
package envfile

import (
	"os"
	"slices"

	"github.com/joho/godotenv"
	"go.trai.ch/wenv/internal/core/domain"
	"go.trai.ch/wenv/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.EnvLoader = (*Loader)(nil)

// Loader implements ports.EnvLoader using godotenv.
type Loader struct{}

// NewLoader creates a new Loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads every file in order. Later files override earlier ones.
// Any unreadable file aborts the load so a command never runs with a partial environment.
func (l *Loader) Load(files []string) (domain.Environment, error) {
	env := make(domain.Environment)
	for _, file := range files {
		vars, err := readFile(file)
		if err != nil {
			return nil, err
		}
		env.Merge(vars)
	}
	return env, nil
}

// Existing returns the files that currently exist, preserving order.
func (l *Loader) Existing(files []string) []string {
	return slices.DeleteFunc(slices.Clone(files), func(f string) bool {
		_, err := os.Stat(f)
		return err != nil
	})
}

func readFile(file string) (domain.Environment, error) {
	//nolint:gosec // env files are chosen by the user
	f, err := os.Open(file)
	if err != nil {
		return nil, wrapReadError(err, file)
	}
	defer func() { _ = f.Close() }()

	vars, err := godotenv.Parse(f)
	if err != nil {
		return nil, wrapReadError(err, file)
	}
	return domain.Environment(vars), nil
}

func wrapReadError(err error, file string) error {
	return zerr.With(zerr.Wrap(err, domain.ErrEnvFileReadFailed.Error()+" "+file), "file", file)
}
