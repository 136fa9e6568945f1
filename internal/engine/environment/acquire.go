package environment

import (
	"context"

	"go.trai.ch/envcache/internal/core/domain"
	"go.trai.ch/envcache/internal/core/ports"
)

// FromSpec returns the cached environment for the request, building and publishing it
// when no usable entry exists.
//
// Concurrent callers for the same key may build in parallel; each builds in its own scratch
// space and the last publish wins. No lock is taken.
func (b *Builder) FromSpec(ctx context.Context, req Request) (*CachedEnvironment, error) {
	resolved, err := b.Resolve(ctx, req)
	if err != nil {
		return nil, err
	}

	if hit := b.Lookup(resolved.Key.Entry, req.Refresh); hit.Found() {
		return hit.Environment(), nil
	}

	scratch, err := b.build(ctx, resolved.Base, resolved.Resolution, req)
	if err != nil {
		return nil, err
	}

	return b.publish(ctx, scratch, resolved.Key.Entry)
}

// build creates a fresh environment in private scratch space and installs the resolution into it.
// On failure the scratch space is left behind for cache pruning.
func (b *Builder) build(
	ctx context.Context,
	base *domain.Interpreter,
	resolution *domain.Resolution,
	req Request,
) (*domain.ScratchDir, error) {
	scratch, err := b.cache.ScratchDir()
	if err != nil {
		return nil, err
	}

	env, err := b.venv.Create(scratch.Path(), base, ports.CreateOptions{
		Prompt:             "",
		RemoveExisting:     true,
		SystemSitePackages: false,
		Relocatable:        true,
	})
	if err != nil {
		return nil, err
	}

	err = b.installer.Sync(ctx, ports.SyncRequest{
		Environment:       env,
		Base:              base,
		Resolution:        resolution,
		Modifications:     domain.ModificationsExact,
		BuildConstraints:  req.BuildConstraints,
		Settings:          req.Settings,
		Concurrency:       req.Concurrency,
		Logger:            req.InstallLogger,
		InstallerMetadata: req.InstallerMetadata,
	})
	if err != nil {
		return nil, err
	}

	return scratch, nil
}

// publish moves a completed scratch environment to its content-addressed location
// and loads it from there.
func (b *Builder) publish(ctx context.Context, scratch *domain.ScratchDir, entry domain.CacheEntry) (*CachedEnvironment, error) {
	id, err := b.cache.Persist(ctx, scratch, entry.Path())
	if err != nil {
		return nil, err
	}

	env, err := b.venv.Load(b.cache.Archive(id))
	if err != nil {
		return nil, err
	}
	b.logger.Debug("published environment " + env.Root)
	return NewCachedEnvironment(env), nil
}
