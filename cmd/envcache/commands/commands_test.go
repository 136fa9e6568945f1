package commands_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/envcache/cmd/envcache/commands"
	"go.trai.ch/envcache/internal/app"
	"go.trai.ch/envcache/internal/build"
	"go.trai.ch/envcache/internal/core/domain"
	"go.trai.ch/envcache/internal/core/ports"
	"go.trai.ch/envcache/internal/engine/environment"
)

type mockApp struct {
	envFunc    func(ctx context.Context, cwd string, opts app.EnvOptions) (*environment.CachedEnvironment, error)
	runFunc    func(ctx context.Context, cwd string, command []string, opts app.RunOptions) error
	digestFunc func(ctx context.Context, cwd string, opts app.EnvOptions) (*app.DigestReport, error)
	cleanFunc  func(ctx context.Context) error
	pruneFunc  func(ctx context.Context, maxAge time.Duration) (ports.PruneStats, error)
}

func (m *mockApp) Env(ctx context.Context, cwd string, opts app.EnvOptions) (*environment.CachedEnvironment, error) {
	return m.envFunc(ctx, cwd, opts)
}

func (m *mockApp) Run(ctx context.Context, cwd string, command []string, opts app.RunOptions, _, _ io.Writer) error {
	if m.runFunc != nil {
		return m.runFunc(ctx, cwd, command, opts)
	}
	return nil
}

func (m *mockApp) Digest(ctx context.Context, cwd string, opts app.EnvOptions) (*app.DigestReport, error) {
	return m.digestFunc(ctx, cwd, opts)
}

func (m *mockApp) CacheDir() string {
	return "/home/user/.cache/envcache"
}

func (m *mockApp) Clean(ctx context.Context) error {
	if m.cleanFunc != nil {
		return m.cleanFunc(ctx)
	}
	return nil
}

func (m *mockApp) Prune(ctx context.Context, maxAge time.Duration) (ports.PruneStats, error) {
	if m.pruneFunc != nil {
		return m.pruneFunc(ctx, maxAge)
	}
	return ports.PruneStats{}, nil
}

type logConfig struct {
	verbose bool
	json    bool
}

func (l *logConfig) SetVerbose(v bool) { l.verbose = v }
func (l *logConfig) SetJSON(v bool)    { l.json = v }

func execute(t *testing.T, a commands.Application, args ...string) (string, error) {
	t.Helper()
	cli := commands.New(a)
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs(args)
	err := cli.Execute(context.Background())
	return buf.String(), err
}

func TestCommands_Env(t *testing.T) {
	t.Run("prints the environment root", func(t *testing.T) {
		var captured app.EnvOptions
		mock := &mockApp{
			envFunc: func(_ context.Context, cwd string, opts app.EnvOptions) (*environment.CachedEnvironment, error) {
				assert.NotEmpty(t, cwd)
				captured = opts
				return environment.NewCachedEnvironment(&domain.Environment{Root: "/cache/archive-v0/abc"}), nil
			},
		}

		out, err := execute(t, mock, "env", "--python", "/opt/py/bin/python3", "--refresh", "-q")
		require.NoError(t, err)
		assert.Equal(t, "/cache/archive-v0/abc\n", out)
		assert.Equal(t, app.EnvOptions{Python: "/opt/py/bin/python3", Refresh: true, Quiet: true}, captured)
	})

	t.Run("returns error on failure", func(t *testing.T) {
		mock := &mockApp{
			envFunc: func(context.Context, string, app.EnvOptions) (*environment.CachedEnvironment, error) {
				return nil, errors.New("simulated error")
			},
		}

		_, err := execute(t, mock, "env")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})
}

func TestCommands_Run(t *testing.T) {
	t.Run("wires flags correctly", func(t *testing.T) {
		var capturedOpts app.RunOptions
		var capturedCommand []string

		mock := &mockApp{
			runFunc: func(_ context.Context, _ string, command []string, opts app.RunOptions) error {
				capturedOpts = opts
				capturedCommand = command
				return nil
			},
		}

		_, err := execute(t, mock, "run", "--with", "rich==13.7.1", "-w", "idna==3.7", "--isolated", "--",
			"python", "-c", "print(1)")
		require.NoError(t, err)
		assert.Equal(t, []string{"rich==13.7.1", "idna==3.7"}, capturedOpts.With)
		assert.True(t, capturedOpts.Isolated)
		assert.False(t, capturedOpts.Refresh)
		assert.Equal(t, []string{"python", "-c", "print(1)"}, capturedCommand)
	})

	t.Run("leaves flags after the command to the command", func(t *testing.T) {
		var capturedCommand []string
		var capturedOpts app.RunOptions
		mock := &mockApp{
			runFunc: func(_ context.Context, _ string, command []string, opts app.RunOptions) error {
				capturedCommand = command
				capturedOpts = opts
				return nil
			},
		}

		_, err := execute(t, mock, "run", "pytest", "-q", "--refresh")
		require.NoError(t, err)
		assert.Equal(t, []string{"pytest", "-q", "--refresh"}, capturedCommand)
		assert.False(t, capturedOpts.Quiet)
		assert.False(t, capturedOpts.Refresh)
	})

	t.Run("returns error on run failure", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(context.Context, string, []string, app.RunOptions) error {
				return errors.New("simulated error")
			},
		}

		_, err := execute(t, mock, "run", "pytest")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "simulated error")
	})

	t.Run("shows usage when no command provided", func(t *testing.T) {
		mock := &mockApp{
			runFunc: func(context.Context, string, []string, app.RunOptions) error {
				panic("should not be called")
			},
		}

		out, err := execute(t, mock, "run")
		require.NoError(t, err)
		assert.Contains(t, out, "Usage:")
	})
}

func TestCommands_Digest(t *testing.T) {
	mock := &mockApp{
		digestFunc: func(_ context.Context, _ string, opts app.EnvOptions) (*app.DigestReport, error) {
			assert.Equal(t, "python3.12", opts.Python)
			return &app.DigestReport{
				Interpreter: "aaaa",
				Resolution:  "bbbb",
				Entry:       "/cache/environments-v1/aaaa/bbbb",
				Cached:      true,
			}, nil
		},
	}

	out, err := execute(t, mock, "digest", "-p", "python3.12")
	require.NoError(t, err)
	assert.Equal(t, "interpreter: aaaa\n"+
		"resolution:  bbbb\n"+
		"entry:       /cache/environments-v1/aaaa/bbbb\n"+
		"cached:      yes\n", out)
}

func TestCommands_Cache(t *testing.T) {
	t.Run("dir", func(t *testing.T) {
		out, err := execute(t, &mockApp{}, "cache", "dir")
		require.NoError(t, err)
		assert.Equal(t, "/home/user/.cache/envcache\n", out)
	})

	t.Run("clean", func(t *testing.T) {
		called := false
		mock := &mockApp{
			cleanFunc: func(context.Context) error {
				called = true
				return nil
			},
		}

		_, err := execute(t, mock, "cache", "clean")
		require.NoError(t, err)
		assert.True(t, called)
	})

	t.Run("prune uses the default age", func(t *testing.T) {
		var captured time.Duration
		mock := &mockApp{
			pruneFunc: func(_ context.Context, maxAge time.Duration) (ports.PruneStats, error) {
				captured = maxAge
				return ports.PruneStats{}, nil
			},
		}

		_, err := execute(t, mock, "cache", "prune")
		require.NoError(t, err)
		assert.Equal(t, 24*time.Hour, captured)
	})

	t.Run("prune with max age", func(t *testing.T) {
		var captured time.Duration
		mock := &mockApp{
			pruneFunc: func(_ context.Context, maxAge time.Duration) (ports.PruneStats, error) {
				captured = maxAge
				return ports.PruneStats{}, errors.New("simulated error")
			},
		}

		_, err := execute(t, mock, "cache", "prune", "--max-age", "90m")
		require.Error(t, err)
		assert.Equal(t, 90*time.Minute, captured)
	})
}

func TestCommands_LogFlags(t *testing.T) {
	logs := &logConfig{}
	cli := commands.New(&mockApp{}, commands.WithLogConfigurer(logs))
	cli.SetOutput(new(bytes.Buffer), new(bytes.Buffer))
	cli.SetArgs([]string{"--verbose", "--json", "cache", "dir"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, logs.verbose)
	assert.True(t, logs.json)
}

func TestCommands_Version(t *testing.T) {
	out, err := execute(t, &mockApp{}, "version")
	require.NoError(t, err)
	assert.Contains(t, out, build.Version)
	assert.Contains(t, out, build.Commit)
}

func TestCommands_VersionFlag(t *testing.T) {
	for _, flag := range []string{"--version", "-v"} {
		t.Run(flag, func(t *testing.T) {
			out, err := execute(t, &mockApp{}, flag)
			require.NoError(t, err)
			assert.Contains(t, out, "envcache version "+build.Version)
		})
	}
}

func TestCommands_VerboseWithSubcommand(t *testing.T) {
	logs := &logConfig{}
	cli := commands.New(&mockApp{}, commands.WithLogConfigurer(logs))
	buf := new(bytes.Buffer)
	cli.SetOutput(buf, buf)
	cli.SetArgs([]string{"version", "--verbose"})

	require.NoError(t, cli.Execute(context.Background()))
	assert.True(t, logs.verbose)
	assert.False(t, logs.json)
	assert.Contains(t, buf.String(), "envcache version")
}
