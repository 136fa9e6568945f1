package environment_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/envcache/internal/core/domain"
	"go.trai.ch/envcache/internal/core/ports"
	"go.trai.ch/envcache/internal/core/ports/mocks"
	"go.trai.ch/envcache/internal/engine/environment"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	resolver  *mocks.MockResolver
	installer *mocks.MockInstaller
	venv      *mocks.MockVirtualenv
	cache     *mocks.MockCache
	locator   *mocks.MockBaseLocator
	querier   *mocks.MockInterpreterQuerier
	logger    *mocks.MockLogger
	builder   *environment.Builder
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	f := &fixture{
		resolver:  mocks.NewMockResolver(ctrl),
		installer: mocks.NewMockInstaller(ctrl),
		venv:      mocks.NewMockVirtualenv(ctrl),
		cache:     mocks.NewMockCache(ctrl),
		locator:   mocks.NewMockBaseLocator(ctrl),
		querier:   mocks.NewMockInterpreterQuerier(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}
	f.logger.EXPECT().Debug(gomock.Any()).AnyTimes()
	f.builder = environment.NewBuilder(f.resolver, f.installer, f.venv, f.cache, f.locator, f.querier, f.logger)
	return f
}

func baseInterpreter() *domain.Interpreter {
	return &domain.Interpreter{
		SysExecutable: "/usr/bin/python3.12",
		SysPrefix:     "/usr",
		SysBasePrefix: "/usr",
		Version:       "3.12.4",
	}
}

func venvInterpreter() *domain.Interpreter {
	return &domain.Interpreter{
		SysExecutable: "/home/u/project/.venv/bin/python",
		SysPrefix:     "/home/u/project/.venv",
		SysBasePrefix: "/usr",
		Version:       "3.12.4",
	}
}

func TestBaseInterpreter_AlreadyBase(t *testing.T) {
	f := newFixture(t)
	interp := baseInterpreter()

	f.locator.EXPECT().Base(interp).Return(interp.SysExecutable, nil)
	// No querier expectation: any Query call fails the test.

	got, err := f.builder.BaseInterpreter(context.Background(), interp)
	require.NoError(t, err)
	assert.Same(t, interp, got)
}

func TestBaseInterpreter_FromVirtualEnv(t *testing.T) {
	f := newFixture(t)
	interp := venvInterpreter()
	base := baseInterpreter()

	f.locator.EXPECT().Base(interp).Return(base.SysExecutable, nil)
	f.querier.EXPECT().Query(gomock.Any(), base.SysExecutable).Return(base, nil)

	got, err := f.builder.BaseInterpreter(context.Background(), interp)
	require.NoError(t, err)
	assert.Same(t, base, got)
}

func TestBaseInterpreter_Errors(t *testing.T) {
	t.Run("locator fails", func(t *testing.T) {
		f := newFixture(t)
		interp := venvInterpreter()
		f.locator.EXPECT().Base(interp).Return("", errors.New("too many symlinks"))

		_, err := f.builder.BaseInterpreter(context.Background(), interp)
		require.ErrorIs(t, err, domain.ErrInterpreterResolution)
	})

	t.Run("query fails", func(t *testing.T) {
		f := newFixture(t)
		interp := venvInterpreter()
		f.locator.EXPECT().Base(interp).Return("/usr/bin/python3.12", nil)
		f.querier.EXPECT().Query(gomock.Any(), "/usr/bin/python3.12").
			Return(nil, domain.ErrInterpreterQueryFailed)

		_, err := f.builder.BaseInterpreter(context.Background(), interp)
		require.ErrorIs(t, err, domain.ErrInterpreterResolution)
		assert.ErrorIs(t, err, domain.ErrInterpreterQueryFailed)
	})
}

func dist(name, version string) domain.Distribution {
	return domain.Distribution{Name: domain.PackageName(name), Version: version, Source: domain.Source{Kind: domain.SourceRegistry}}
}

func TestKeyFor_OrderInvariant(t *testing.T) {
	f := newFixture(t)
	base := baseInterpreter()
	root := t.TempDir()

	f.locator.EXPECT().Canonicalize(base.SysExecutable).Return(base.SysExecutable, nil).Times(2)
	f.cache.EXPECT().Entry(domain.EnvironmentsBucket, gomock.Any(), gomock.Any()).
		DoAndReturn(func(bucket domain.Bucket, dir, file string) domain.CacheEntry {
			return domain.NewCacheEntry(root, bucket, dir, file)
		}).Times(2)

	k1, err := f.builder.KeyFor(base, domain.NewResolution(dist("b", "1.0"), dist("a", "2.0")))
	require.NoError(t, err)
	k2, err := f.builder.KeyFor(base, domain.NewResolution(dist("a", "2.0"), dist("b", "1.0")))
	require.NoError(t, err)

	assert.Equal(t, k1, k2)
	assert.Equal(t,
		filepath.Join(root, "environments-v1", k1.Interpreter.String(), k1.Resolution.String()),
		k1.Entry.Path())
}

func TestKeyFor_CanonicalizeFails(t *testing.T) {
	f := newFixture(t)
	base := baseInterpreter()
	f.locator.EXPECT().Canonicalize(base.SysExecutable).Return("", errors.New("no such file"))

	_, err := f.builder.KeyFor(base, domain.NewResolution(dist("a", "1.0")))
	require.Error(t, err)
}

func TestLookup(t *testing.T) {
	root := t.TempDir()
	entry := domain.NewCacheEntry(root, domain.EnvironmentsBucket, "interp", "res")

	t.Run("refresh misses without touching the cache", func(t *testing.T) {
		f := newFixture(t)
		result := f.builder.Lookup(entry, domain.RefreshAll)
		assert.False(t, result.Found())
		assert.Nil(t, result.Environment())
	})

	t.Run("absent entry misses", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().ResolveLink(entry.Path()).Return("", domain.ErrCacheMiss)

		assert.False(t, f.builder.Lookup(entry, domain.RefreshNone).Found())
	})

	t.Run("unloadable environment misses", func(t *testing.T) {
		f := newFixture(t)
		f.cache.EXPECT().ResolveLink(entry.Path()).Return("/cache/archive-v0/x", nil)
		f.venv.EXPECT().Load("/cache/archive-v0/x").Return(nil, domain.ErrInvalidEnvironment)

		assert.False(t, f.builder.Lookup(entry, domain.RefreshNone).Found())
	})

	t.Run("hit", func(t *testing.T) {
		f := newFixture(t)
		env := &domain.Environment{Root: "/cache/archive-v0/x"}
		f.cache.EXPECT().ResolveLink(entry.Path()).Return(env.Root, nil)
		f.venv.EXPECT().Load(env.Root).Return(env, nil)

		result := f.builder.Lookup(entry, domain.RefreshNone)
		require.True(t, result.Found())
		assert.Same(t, env, result.Environment().Environment())
		assert.Equal(t, env.Root, result.Environment().Root())
	})
}

type acquireSetup struct {
	f          *fixture
	req        environment.Request
	resolution *domain.Resolution
}

func setupAcquire(t *testing.T) acquireSetup {
	t.Helper()
	f := newFixture(t)
	base := baseInterpreter()
	root := t.TempDir()
	resolution := domain.NewResolution(dist("a", "2.0"), dist("b", "1.0"))

	f.locator.EXPECT().Base(base).Return(base.SysExecutable, nil)
	f.locator.EXPECT().Canonicalize(base.SysExecutable).Return(base.SysExecutable, nil)
	f.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req ports.ResolveRequest) (*domain.Resolution, error) {
			assert.Same(t, base, req.Interpreter)
			return resolution, nil
		})

	f.cache.EXPECT().Entry(domain.EnvironmentsBucket, gomock.Any(), gomock.Any()).
		DoAndReturn(func(bucket domain.Bucket, dir, file string) domain.CacheEntry {
			return domain.NewCacheEntry(root, bucket, dir, file)
		})

	return acquireSetup{
		f:          f,
		resolution: resolution,
		req: environment.Request{
			Spec:        domain.EnvironmentSpec{Requirements: []domain.Requirement{{Name: "a"}, {Name: "b"}}},
			Interpreter: base,
			Concurrency: domain.DefaultConcurrency(),
		},
	}
}

func TestFromSpec_Hit(t *testing.T) {
	s := setupAcquire(t)
	cached := &domain.Environment{Root: "/cache/archive-v0/abc"}

	s.f.cache.EXPECT().ResolveLink(gomock.Any()).Return(cached.Root, nil)
	s.f.venv.EXPECT().Load(cached.Root).Return(cached, nil)
	// No ScratchDir, Create, Sync or Persist expectations: a hit must not build.

	env, err := s.f.builder.FromSpec(context.Background(), s.req)
	require.NoError(t, err)
	assert.Same(t, cached, env.Environment())
}

func TestFromSpec_MissBuildsAndPublishes(t *testing.T) {
	s := setupAcquire(t)
	scratch := domain.NewScratchDir("/cache/builds-v0/tmp1")
	created := &domain.Environment{Root: scratch.Path()}
	published := &domain.Environment{Root: "/cache/archive-v0/id1"}

	gomock.InOrder(
		s.f.cache.EXPECT().ResolveLink(gomock.Any()).Return("", domain.ErrCacheMiss),
		s.f.cache.EXPECT().ScratchDir().Return(scratch, nil),
		s.f.venv.EXPECT().Create(scratch.Path(), s.req.Interpreter, ports.CreateOptions{
			Prompt:             "",
			RemoveExisting:     true,
			SystemSitePackages: false,
			Relocatable:        true,
		}).Return(created, nil),
		s.f.installer.EXPECT().Sync(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req ports.SyncRequest) error {
				assert.Same(t, created, req.Environment)
				assert.Same(t, s.req.Interpreter, req.Base)
				assert.Same(t, s.resolution, req.Resolution)
				assert.Equal(t, domain.ModificationsExact, req.Modifications)
				return nil
			}),
		s.f.cache.EXPECT().Persist(gomock.Any(), scratch, gomock.Any()).Return(domain.ArchiveID("id1"), nil),
		s.f.cache.EXPECT().Archive(domain.ArchiveID("id1")).Return(published.Root),
		s.f.venv.EXPECT().Load(published.Root).Return(published, nil),
	)

	env, err := s.f.builder.FromSpec(context.Background(), s.req)
	require.NoError(t, err)
	assert.Same(t, published, env.Environment())
}

func TestFromSpec_RefreshRebuilds(t *testing.T) {
	s := setupAcquire(t)
	s.req.Refresh = domain.RefreshAll
	scratch := domain.NewScratchDir("/cache/builds-v0/tmp2")
	published := &domain.Environment{Root: "/cache/archive-v0/id2"}

	s.f.cache.EXPECT().ScratchDir().Return(scratch, nil)
	s.f.venv.EXPECT().Create(scratch.Path(), gomock.Any(), gomock.Any()).Return(&domain.Environment{}, nil)
	s.f.installer.EXPECT().Sync(gomock.Any(), gomock.Any()).Return(nil)
	s.f.cache.EXPECT().Persist(gomock.Any(), scratch, gomock.Any()).Return(domain.ArchiveID("id2"), nil)
	s.f.cache.EXPECT().Archive(domain.ArchiveID("id2")).Return(published.Root)
	s.f.venv.EXPECT().Load(published.Root).Return(published, nil)

	env, err := s.f.builder.FromSpec(context.Background(), s.req)
	require.NoError(t, err)
	assert.Equal(t, published.Root, env.Root())
}

func TestFromSpec_InstallFailureDoesNotPublish(t *testing.T) {
	s := setupAcquire(t)
	scratch := domain.NewScratchDir("/cache/builds-v0/tmp3")
	installErr := errors.New("no matching distribution")

	s.f.cache.EXPECT().ResolveLink(gomock.Any()).Return("", domain.ErrCacheMiss)
	s.f.cache.EXPECT().ScratchDir().Return(scratch, nil)
	s.f.venv.EXPECT().Create(gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.Environment{}, nil)
	s.f.installer.EXPECT().Sync(gomock.Any(), gomock.Any()).Return(installErr)

	_, err := s.f.builder.FromSpec(context.Background(), s.req)
	require.ErrorIs(t, err, installErr)
}

func TestFromSpec_ResolverErrorUnchanged(t *testing.T) {
	f := newFixture(t)
	base := baseInterpreter()
	resolveErr := errors.New("no solution")

	f.locator.EXPECT().Base(base).Return(base.SysExecutable, nil)
	f.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(nil, resolveErr)

	_, err := f.builder.FromSpec(context.Background(), environment.Request{Interpreter: base})
	assert.Same(t, resolveErr, err)
}

func TestFromSpec_ScratchFailure(t *testing.T) {
	s := setupAcquire(t)
	s.f.cache.EXPECT().ResolveLink(gomock.Any()).Return("", domain.ErrCacheMiss)
	s.f.cache.EXPECT().ScratchDir().Return(nil, domain.ErrScratchCreateFailed)

	_, err := s.f.builder.FromSpec(context.Background(), s.req)
	require.ErrorIs(t, err, domain.ErrScratchCreateFailed)
}
