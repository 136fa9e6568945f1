package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

const defaultMaxAge = 24 * time.Hour

func (c *CLI) newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the environment cache",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(c.newCacheDirCmd())
	cmd.AddCommand(c.newCacheCleanCmd())
	cmd.AddCommand(c.newCachePruneCmd())
	return cmd
}

func (c *CLI) newCacheDirCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dir",
		Short: "Print the cache directory",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), c.app.CacheDir())
		},
	}
}

func (c *CLI) newCacheCleanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clean",
		Short: "Remove every cached environment",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Clean(cmd.Context())
		},
	}
}

func (c *CLI) newCachePruneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "prune",
		Short: "Remove unreachable environments and abandoned builds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			maxAge, _ := cmd.Flags().GetDuration("max-age")
			_, err := c.app.Prune(cmd.Context(), maxAge)
			return err
		},
	}
	cmd.Flags().Duration("max-age", defaultMaxAge, "Keep scratch builds and unlinked archives younger than this")
	return cmd
}
