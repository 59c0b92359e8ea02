// Package commands implements the CLI commands for wenv.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.trai.ch/wenv/internal/app"
	"go.trai.ch/wenv/internal/build"
	"go.trai.ch/wenv/internal/core/domain"
	"go.trai.ch/zerr"
)

// CLI represents the command line interface for wenv.
type CLI struct {
	app     Application
	rootCmd *cobra.Command
	getwd   func() (string, error)
}

// Application represents the application logic interface.
type Application interface {
	Run(ctx context.Context, opts app.RunOptions) error
	List(dir string, w io.Writer) error
}

// New creates a new CLI instance with the given app.
func New(a Application) *CLI {
	c := &CLI{
		app:   a,
		getwd: os.Getwd,
	}

	rootCmd := &cobra.Command{
		Use:   "wenv [flags] [env-files...] -- <command> [args...]",
		Short: "Run a command with variables from env files",
		Long: `Run a command with variables from env files.

Files are loaded in order; later files override earlier ones. Arguments
starting with "@" refer to aliases from .wenv.toml. When no files are given,
the files last used in the current directory are loaded.`,
		Example: `  wenv .env -- npm start
  wenv .env .env.local --watch -- go run ./cmd/server
  wenv @dev -- make test
  wenv -- ./script.sh`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		RunE:          c.runRoot,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.Flags().BoolP("watch", "w", false, "Restart the command whenever an env file changes")
	rootCmd.Flags().Bool("no-memory", false, "Neither use nor update the remembered env files")
	rootCmd.PersistentFlags().Bool("json", false, "Write log output as JSON")

	c.rootCmd = rootCmd

	rootCmd.AddCommand(c.newLsCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

func (c *CLI) runRoot(cmd *cobra.Command, args []string) error {
	envFiles, command := splitAtDash(args, cmd.ArgsLenAtDash())

	dir, err := c.workDir()
	if err != nil {
		return err
	}

	watch, _ := cmd.Flags().GetBool("watch")
	noMemory, _ := cmd.Flags().GetBool("no-memory")

	return c.app.Run(cmd.Context(), app.RunOptions{
		Dir:      dir,
		EnvFiles: envFiles,
		Command:  command,
		Watch:    watch,
		NoMemory: noMemory,
	})
}

// splitAtDash separates env files from the command. Without "--" every argument is an env file.
func splitAtDash(args []string, dash int) (envFiles, command []string) {
	if dash < 0 {
		return args, nil
	}
	return args[:dash], args[dash:]
}

func (c *CLI) workDir() (string, error) {
	dir, err := c.getwd()
	if err != nil {
		return "", zerr.Wrap(err, domain.ErrWorkDirUnavailable.Error())
	}
	return dir, nil
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetJSONHook sets up a PersistentPreRun function that reads the json flag
// and calls fn with its value before any command runs.
func (c *CLI) SetJSONHook(fn func(bool)) {
	c.rootCmd.PersistentPreRunE = func(cmd *cobra.Command, _ []string) error {
		enabled, err := cmd.Flags().GetBool("json")
		if err != nil {
			return err
		}
		fn(enabled)
		return nil
	}
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}

// SetWorkDirFunc replaces the working directory lookup. Used for testing.
func (c *CLI) SetWorkDirFunc(fn func() (string, error)) {
	c.getwd = fn
}
