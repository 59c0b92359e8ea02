package shell_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/wenv/internal/adapters/shell"
	"go.trai.ch/wenv/internal/core/domain"
)

func TestExecutor_Run_MultiLineOutput(t *testing.T) {
	var stdout bytes.Buffer
	executor := shell.NewExecutor(nil, &stdout, io.Discard)

	code, err := executor.Run(context.Background(), []string{"sh", "-c", "echo line1; echo line2"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, code)

	output := stdout.String()
	assert.Contains(t, output, "line1")
	assert.Contains(t, output, "line2")
}

func TestExecutor_Run_EnvironmentVariables(t *testing.T) {
	var stdout bytes.Buffer
	executor := shell.NewExecutor(nil, &stdout, io.Discard)

	env := domain.Environment{"MY_TEST_VAR": "test-value-123"}
	code, err := executor.Run(context.Background(), []string{"sh", "-c", "echo $MY_TEST_VAR"}, env)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "test-value-123")
}

func TestExecutor_Run_OverridesInheritedVariable(t *testing.T) {
	t.Setenv("WENV_INHERITED", "from-parent")

	var stdout bytes.Buffer
	executor := shell.NewExecutor(nil, &stdout, io.Discard)

	code, err := executor.Run(context.Background(), []string{"sh", "-c", "echo $WENV_INHERITED"}, domain.Environment{
		"WENV_INHERITED": "from-file",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Equal(t, "from-file\n", stdout.String())
}

func TestExecutor_Run_InheritsParentEnvironment(t *testing.T) {
	t.Setenv("WENV_PARENT_ONLY", "kept")

	var stdout bytes.Buffer
	executor := shell.NewExecutor(nil, &stdout, io.Discard)

	_, err := executor.Run(context.Background(), []string{"sh", "-c", "echo $WENV_PARENT_ONLY"}, domain.Environment{"OTHER": "x"})
	require.NoError(t, err)
	assert.Equal(t, "kept\n", stdout.String())
}

func TestExecutor_Run_ExitCode(t *testing.T) {
	executor := shell.NewExecutor(nil, io.Discard, io.Discard)

	code, err := executor.Run(context.Background(), []string{"sh", "-c", "exit 42"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 42, code)
}

func TestExecutor_Run_KilledBySignal(t *testing.T) {
	executor := shell.NewExecutor(nil, io.Discard, io.Discard)

	code, err := executor.Run(context.Background(), []string{"sh", "-c", "kill -TERM $$"}, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ExitFailure, code)
}

func TestExecutor_Run_InvalidCommand(t *testing.T) {
	executor := shell.NewExecutor(nil, io.Discard, io.Discard)

	code, err := executor.Run(context.Background(), []string{"nonexistent-command-wenv-12345"}, nil)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrCommandStartFailed.Error())
	assert.Equal(t, domain.ExitFailure, code)
}

func TestExecutor_Start_EmptyCommand(t *testing.T) {
	executor := shell.NewExecutor(nil, io.Discard, io.Discard)

	_, err := executor.Start(context.Background(), nil, nil)
	require.ErrorIs(t, err, domain.ErrNoCommand)
}

func TestExecutor_Run_AbsolutePath(t *testing.T) {
	shPath, err := filepath.Abs("/bin/sh")
	require.NoError(t, err)

	executor := shell.NewExecutor(nil, io.Discard, io.Discard)
	code, err := executor.Run(context.Background(), []string{shPath, "-c", "exit 0"}, nil)
	require.NoError(t, err)
	assert.Equal(t, 0, code)
}

func TestExecutor_Run_StdinForwarded(t *testing.T) {
	var stdout bytes.Buffer
	executor := shell.NewExecutor(strings.NewReader("piped input\n"), &stdout, io.Discard)

	_, err := executor.Run(context.Background(), []string{"cat"}, nil)
	require.NoError(t, err)
	assert.Equal(t, "piped input\n", stdout.String())
}

func TestExecutor_Start_PathFromEnvFile(t *testing.T) {
	binDir := t.TempDir()

	cmdName := "wenv-hermetic-tool"
	//nolint:gosec // Test requires executable file
	err := os.WriteFile(filepath.Join(binDir, cmdName), []byte("#!/bin/sh\necho success\n"), 0o700)
	require.NoError(t, err)

	var stdout bytes.Buffer
	executor := shell.NewExecutor(nil, &stdout, io.Discard)

	code, err := executor.Run(context.Background(), []string{cmdName}, domain.Environment{
		"PATH": binDir + string(os.PathListSeparator) + os.Getenv("PATH"),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout.String(), "success")
}

func TestProcess_Kill(t *testing.T) {
	executor := shell.NewExecutor(nil, io.Discard, io.Discard)

	proc, err := executor.Start(context.Background(), []string{"sleep", "30"}, nil)
	require.NoError(t, err)

	require.NoError(t, proc.Kill())

	code, err := proc.Wait()
	require.NoError(t, err)
	assert.Equal(t, domain.ExitFailure, code)

	// Killing a reaped process is a no-op.
	require.NoError(t, proc.Kill())
}

func TestExecutor_Run_ContextCancel(t *testing.T) {
	executor := shell.NewExecutor(nil, io.Discard, io.Discard)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	code, err := executor.Run(ctx, []string{"sleep", "30"}, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.ExitFailure, code)
	assert.Less(t, time.Since(start), 10*time.Second)
}
