package environment

import (
	"context"
	"fmt"
	"strings"

	"go.trai.ch/envcache/internal/core/domain"
	"go.trai.ch/envcache/internal/core/ports"
	"go.trai.ch/zerr"
)

// Key is the content address of a cached environment.
type Key struct {
	Interpreter domain.CacheDigest
	Resolution  domain.CacheDigest
	Entry       domain.CacheEntry
}

// Resolved is a resolution together with the base interpreter it was produced for.
type Resolved struct {
	Base       *domain.Interpreter
	Resolution *domain.Resolution
	Key        Key
}

// Resolve resolves the request against its base interpreter and derives the cache key,
// without touching the cache.
func (b *Builder) Resolve(ctx context.Context, req Request) (*Resolved, error) {
	base, err := b.BaseInterpreter(ctx, req.Interpreter)
	if err != nil {
		return nil, err
	}

	resolution, err := b.resolver.Resolve(ctx, ports.ResolveRequest{
		Spec:             req.Spec,
		Interpreter:      base,
		BuildConstraints: req.BuildConstraints,
		Settings:         req.Settings,
		Concurrency:      req.Concurrency,
		Logger:           req.ResolveLogger,
	})
	if err != nil {
		return nil, err
	}

	key, err := b.KeyFor(base, resolution)
	if err != nil {
		return nil, err
	}
	return &Resolved{Base: base, Resolution: resolution, Key: key}, nil
}

// KeyFor derives the cache key for a resolution produced with the given base interpreter.
// The interpreter level uses the canonicalized executable path, so every spelling of the
// same installation maps to the same key.
func (b *Builder) KeyFor(base *domain.Interpreter, resolution *domain.Resolution) (Key, error) {
	if mutable := resolution.MutableReferences(); len(mutable) > 0 {
		refs := make([]string, 0, len(mutable))
		for _, d := range mutable {
			refs = append(refs, d.String())
		}
		b.logger.Debug("caching by reference only, local changes will not invalidate the environment: " +
			strings.Join(refs, ", "))
	}

	resolutionDigest, err := domain.ResolutionDigest(resolution)
	if err != nil {
		return Key{}, err
	}

	canonical, err := b.locator.Canonicalize(base.SysExecutable)
	if err != nil {
		return Key{}, zerr.With(zerr.Wrap(err, "failed to canonicalize interpreter"), "executable", base.SysExecutable)
	}
	interpreterDigest, err := domain.InterpreterDigest(canonical)
	if err != nil {
		return Key{}, err
	}

	entry := b.cache.Entry(domain.EnvironmentsBucket, interpreterDigest.String(), resolutionDigest.String())
	b.logger.Debug(fmt.Sprintf("environment key %s/%s", interpreterDigest, resolutionDigest))

	return Key{
		Interpreter: interpreterDigest,
		Resolution:  resolutionDigest,
		Entry:       entry,
	}, nil
}
