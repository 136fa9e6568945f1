package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newDigestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "digest",
		Short: "Print the cache key of the project environment without building it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cwd, err := workingDir()
			if err != nil {
				return err
			}
			report, err := c.app.Digest(cmd.Context(), cwd, envOptions(cmd))
			if err != nil {
				return err
			}
			cached := "no"
			if report.Cached {
				cached = "yes"
			}
			out := cmd.OutOrStdout()
			_, _ = fmt.Fprintf(out, "interpreter: %s\n", report.Interpreter)
			_, _ = fmt.Fprintf(out, "resolution:  %s\n", report.Resolution)
			_, _ = fmt.Fprintf(out, "entry:       %s\n", report.Entry)
			_, _ = fmt.Fprintf(out, "cached:      %s\n", cached)
			return nil
		},
	}
	addEnvFlags(cmd)
	return cmd
}
