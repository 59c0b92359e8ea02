// Package main is the entry point for wenv.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/grindlemire/graft"
	"go.trai.ch/wenv/cmd/wenv/commands"
	"go.trai.ch/wenv/internal/app"
	"go.trai.ch/wenv/internal/core/domain"
	"go.trai.ch/wenv/internal/core/ports"
	_ "go.trai.ch/wenv/internal/wiring"
)

// ComponentProvider is a function that returns the application components.
type ComponentProvider func(context.Context) (*app.Components, func(), error)

// jsonSwitcher is implemented by loggers that support JSON output.
type jsonSwitcher interface {
	SetJSON(enable bool)
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr, func(ctx context.Context) (*app.Components, func(), error) {
		c, _, err := graft.ExecuteFor[*app.Components](ctx)
		return c, func() {}, err
	}))
}

func run(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	provider ComponentProvider,
) int {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, cleanup, err := provider(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return domain.ExitFailure
	}
	defer cleanup()

	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)
	if js, ok := components.Logger.(jsonSwitcher); ok {
		cli.SetJSONHook(js.SetJSON)
	}

	return exitCode(cli.Execute(ctx), components.Logger)
}

// exitCode maps the outcome of a command to the process exit status.
// A child's own status is mirrored without printing anything.
func exitCode(err error, log ports.Logger) int {
	if err == nil {
		return 0
	}

	var exitErr *domain.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	if errors.Is(err, context.Canceled) {
		return domain.ExitInterrupted
	}

	log.Error(err)
	return domain.ExitFailure
}
