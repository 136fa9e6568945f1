// Package app implements the application layer for envcache.
package app

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.trai.ch/envcache/internal/core/domain"
	"go.trai.ch/envcache/internal/core/ports"
	"go.trai.ch/envcache/internal/engine/environment"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	builder      *environment.Builder
	querier      ports.InterpreterQuerier
	executor     ports.Executor
	cache        ports.Cache
	maintainer   ports.CacheMaintainer
	reporter     ports.Reporter
	logger       ports.Logger
	getenv       func(string) string
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	builder *environment.Builder,
	querier ports.InterpreterQuerier,
	executor ports.Executor,
	cache ports.Cache,
	maintainer ports.CacheMaintainer,
	reporter ports.Reporter,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		builder:      builder,
		querier:      querier,
		executor:     executor,
		cache:        cache,
		maintainer:   maintainer,
		reporter:     reporter,
		logger:       log,
		getenv:       os.Getenv,
	}
}

// WithGetenv replaces the environment lookup. Used for testing.
func (a *App) WithGetenv(getenv func(string) string) *App {
	a.getenv = getenv
	return a
}

// EnvOptions configures how the project environment is acquired.
type EnvOptions struct {
	// Python overrides the interpreter named by the project file.
	Python string
	// Refresh ignores existing cache entries.
	Refresh bool
	// Quiet suppresses progress output.
	Quiet bool
}

// Env returns the cached environment for the project found from cwd, building it on a miss.
func (a *App) Env(ctx context.Context, cwd string, opts EnvOptions) (*environment.CachedEnvironment, error) {
	project, interp, err := a.load(ctx, cwd, opts)
	if err != nil {
		return nil, err
	}
	return a.builder.FromSpec(ctx, a.request(project, interp, project.Spec, opts))
}

// DigestReport describes where the project environment lives in the cache.
type DigestReport struct {
	Interpreter domain.CacheDigest
	Resolution  domain.CacheDigest
	Entry       string
	Cached      bool
}

// Digest computes the cache key of the project environment without building it.
func (a *App) Digest(ctx context.Context, cwd string, opts EnvOptions) (*DigestReport, error) {
	project, interp, err := a.load(ctx, cwd, opts)
	if err != nil {
		return nil, err
	}
	opts.Quiet = true
	resolved, err := a.builder.Resolve(ctx, a.request(project, interp, project.Spec, opts))
	if err != nil {
		return nil, err
	}
	return &DigestReport{
		Interpreter: resolved.Key.Interpreter,
		Resolution:  resolved.Key.Resolution,
		Entry:       resolved.Key.Entry.Path(),
		Cached:      a.builder.Lookup(resolved.Key.Entry, domain.RefreshNone).Found(),
	}, nil
}

// CacheDir returns the cache root.
func (a *App) CacheDir() string {
	return a.cache.Root()
}

// Clean removes every cached environment, archive, scratch build and interpreter query.
func (a *App) Clean(ctx context.Context) error {
	a.logger.Info("removing cache at " + a.cache.Root())
	if err := a.maintainer.Clean(ctx); err != nil {
		return zerr.Wrap(err, "failed to clean cache")
	}
	return nil
}

// Prune removes unreferenced archives, dangling entries and scratch builds older than maxAge.
func (a *App) Prune(ctx context.Context, maxAge time.Duration) (ports.PruneStats, error) {
	stats, err := a.maintainer.Prune(ctx, maxAge)
	if err != nil {
		return stats, zerr.Wrap(err, "failed to prune cache")
	}
	a.logger.Info(fmt.Sprintf("removed %d entries, %d archives and %d builds", stats.Links, stats.Archives, stats.Builds))
	return stats, nil
}

func (a *App) load(ctx context.Context, cwd string, opts EnvOptions) (*domain.Project, *domain.Interpreter, error) {
	project, err := a.configLoader.Load(cwd)
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to load configuration")
	}

	python := project.Python
	if opts.Python != "" {
		python = opts.Python
	}
	interp, err := a.querier.Query(ctx, python)
	if err != nil {
		return nil, nil, err
	}
	return project, interp, nil
}

func (a *App) request(project *domain.Project, interp *domain.Interpreter, spec domain.EnvironmentSpec, opts EnvOptions) environment.Request {
	req := environment.Request{
		Spec:             spec,
		Interpreter:      interp,
		BuildConstraints: project.BuildConstraints,
		Settings:         project.Settings,
		Concurrency:      project.Concurrency,
		Refresh:          domain.RefreshNone,
	}
	if opts.Refresh || a.getenv(domain.NoCacheEnv) != "" {
		req.Refresh = domain.RefreshAll
	}
	if !opts.Quiet {
		req.ResolveLogger = a.reporter
		req.InstallLogger = a.reporter
	}
	return req
}
