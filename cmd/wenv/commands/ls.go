package commands

import "github.com/spf13/cobra"

func (c *CLI) newLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List the env files remembered for the current directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			dir, err := c.workDir()
			if err != nil {
				return err
			}
			return c.app.List(dir, cmd.OutOrStdout())
		},
	}
}
