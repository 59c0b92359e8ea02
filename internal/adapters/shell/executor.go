// Package shell provides the process runner that spawns commands.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.trai.ch/wenv/internal/core/domain"
	"go.trai.ch/wenv/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// interruptGrace is how long a cancelled child gets to exit after an interrupt before it is killed.
const interruptGrace = 5 * time.Second

type process struct {
	cmd *exec.Cmd
}

// Wait reaps the process and translates its status into an exit code.
func (p *process) Wait() (int, error) {
	err := p.cmd.Wait()
	if err == nil {
		return 0, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// Terminated by a signal.
			return domain.ExitFailure, nil
		}
		return code, nil
	}
	return domain.ExitFailure, zerr.Wrap(err, domain.ErrCommandWaitFailed.Error())
}

// Kill terminates the process. A process that already finished is not an error.
func (p *process) Kill() error {
	if err := p.cmd.Process.Kill(); err != nil && !errors.Is(err, os.ErrProcessDone) {
		return err
	}
	return nil
}

// Executor implements ports.Executor using os/exec.
// Children share the executor's standard streams.
type Executor struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

// NewExecutor creates an Executor whose children inherit the given streams.
func NewExecutor(stdin io.Reader, stdout, stderr io.Writer) *Executor {
	return &Executor{
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
	}
}

// Start spawns command with env applied on top of the current environment.
func (e *Executor) Start(ctx context.Context, command []string, env domain.Environment) (ports.Process, error) {
	if len(command) == 0 {
		return nil, domain.ErrNoCommand
	}

	name := command[0]
	args := command[1:]

	cmdEnv := resolveEnvironment(os.Environ(), env)

	// Resolve the executable against the merged PATH so env files can change it.
	executable := name
	if !filepath.IsAbs(name) && !strings.ContainsRune(name, filepath.Separator) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, args...) //nolint:gosec // user provided command
	cmd.Args[0] = name
	cmd.Env = cmdEnv
	cmd.Stdin = e.stdin
	cmd.Stdout = e.stdout
	cmd.Stderr = e.stderr
	cmd.Cancel = func() error {
		return cmd.Process.Signal(os.Interrupt)
	}
	cmd.WaitDelay = interruptGrace

	if err := cmd.Start(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrCommandStartFailed.Error()), "command", name)
	}

	return &process{cmd: cmd}, nil
}

// Run spawns command, waits for it and returns its exit code.
func (e *Executor) Run(ctx context.Context, command []string, env domain.Environment) (int, error) {
	proc, err := e.Start(ctx, command, env)
	if err != nil {
		return domain.ExitFailure, err
	}
	return proc.Wait()
}

// resolveEnvironment applies overrides on top of the system environment.
// The result is sorted to keep the child environment deterministic.
func resolveEnvironment(sysEnv []string, overrides domain.Environment) []string {
	envMap := make(map[string]string, len(sysEnv)+len(overrides))
	for _, entry := range sysEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}
	for k, v := range overrides {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	slices.Sort(result)
	return result
}

// lookPath searches for an executable in the directories named by the PATH entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if p, ok := strings.CutPrefix(e, "PATH="); ok {
			path = p
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		path := filepath.Join(dir, file)
		if err := findExecutable(path); err == nil {
			return path, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
