// Package commands implements the CLI commands for envcache.
package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.trai.ch/envcache/internal/app"
	"go.trai.ch/envcache/internal/build"
	"go.trai.ch/envcache/internal/core/ports"
	"go.trai.ch/envcache/internal/engine/environment"
)

// CLI represents the command line interface for envcache.
type CLI struct {
	app     Application
	logs    []LogConfigurer
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Env(ctx context.Context, cwd string, opts app.EnvOptions) (*environment.CachedEnvironment, error)
	Run(ctx context.Context, cwd string, command []string, opts app.RunOptions, stdout, stderr io.Writer) error
	Digest(ctx context.Context, cwd string, opts app.EnvOptions) (*app.DigestReport, error)
	CacheDir() string
	Clean(ctx context.Context) error
	Prune(ctx context.Context, maxAge time.Duration) (ports.PruneStats, error)
}

// LogConfigurer is implemented by loggers whose level and format can change after construction.
type LogConfigurer interface {
	SetVerbose(verbose bool)
	SetJSON(json bool)
}

// Option configures the CLI.
type Option func(*CLI)

// WithLogConfigurer lets the --verbose and --json flags reconfigure l. It may be given more than once.
func WithLogConfigurer(l LogConfigurer) Option {
	return func(c *CLI) {
		c.logs = append(c.logs, l)
	}
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "envcache",
		Short:         "A content-addressed cache for Python environments",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
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

	rootCmd.PersistentFlags().Bool("verbose", false, "Show debug output")
	rootCmd.PersistentFlags().Bool("json", false, "Write logs as JSON")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	for _, opt := range opts {
		opt(c)
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		jsonLogs, _ := cmd.Flags().GetBool("json")
		for _, l := range c.logs {
			l.SetVerbose(verbose)
			l.SetJSON(jsonLogs)
		}
	}

	rootCmd.AddCommand(c.newEnvCmd())
	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newDigestCmd())
	rootCmd.AddCommand(c.newCacheCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
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

func addEnvFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("python", "p", "", "Interpreter to build the environment on")
	cmd.Flags().BoolP("refresh", "r", false, "Ignore cached environments and rebuild")
	cmd.Flags().BoolP("quiet", "q", false, "Do not report resolution and installation progress")
}

func envOptions(cmd *cobra.Command) app.EnvOptions {
	python, _ := cmd.Flags().GetString("python")
	refresh, _ := cmd.Flags().GetBool("refresh")
	quiet, _ := cmd.Flags().GetBool("quiet")
	return app.EnvOptions{
		Python:  python,
		Refresh: refresh,
		Quiet:   quiet,
	}
}

func workingDir() (string, error) {
	return os.Getwd()
}
