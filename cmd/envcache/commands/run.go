package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/envcache/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [flags] [--] command [args...]",
		Short: "Run a command inside the project environment",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			cwd, err := workingDir()
			if err != nil {
				return err
			}
			with, _ := cmd.Flags().GetStringArray("with")
			isolated, _ := cmd.Flags().GetBool("isolated")
			return c.app.Run(cmd.Context(), cwd, args, app.RunOptions{
				EnvOptions: envOptions(cmd),
				With:       with,
				Isolated:   isolated,
			}, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}
	// Flags after the command belong to the command.
	cmd.Flags().SetInterspersed(false)
	addEnvFlags(cmd)
	cmd.Flags().StringArrayP("with", "w", nil, "Extra requirement available for this run only (repeatable)")
	cmd.Flags().Bool("isolated", false, "Ignore the project's dependencies")
	return cmd
}
