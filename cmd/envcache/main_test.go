package main

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/envcache/internal/adapters/progress"
	"go.trai.ch/envcache/internal/app"
	"go.trai.ch/envcache/internal/core/domain"
	"go.trai.ch/envcache/internal/core/ports/mocks"
	"go.trai.ch/envcache/internal/engine/environment"
	"go.uber.org/mock/gomock"
)

type appMocks struct {
	loader *mocks.MockConfigLoader
	logger *mocks.MockLogger
	app    *app.App
}

func newApp(t *testing.T) *appMocks {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := &appMocks{
		loader: mocks.NewMockConfigLoader(ctrl),
		logger: mocks.NewMockLogger(ctrl),
	}
	cache := mocks.NewMockCache(ctrl)
	querier := mocks.NewMockInterpreterQuerier(ctrl)
	builder := environment.NewBuilder(
		mocks.NewMockResolver(ctrl),
		mocks.NewMockInstaller(ctrl),
		mocks.NewMockVirtualenv(ctrl),
		cache,
		mocks.NewMockBaseLocator(ctrl),
		querier,
		m.logger,
	)
	m.app = app.New(
		m.loader,
		builder,
		querier,
		mocks.NewMockExecutor(ctrl),
		cache,
		mocks.NewMockCacheMaintainer(ctrl),
		mocks.NewMockReporter(ctrl),
		m.logger,
	)
	return m
}

func (m *appMocks) provider(_ context.Context) (*app.Components, func(), error) {
	return &app.Components{App: m.app, Logger: m.logger}, func() {}, nil
}

// TestRun_Success verifies that the run function returns 0 when the command succeeds.
func TestRun_Success(t *testing.T) {
	m := newApp(t)

	stdout := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, stdout, new(bytes.Buffer), m.provider)
	assert.Equal(t, 0, exitCode)
	assert.Contains(t, stdout.String(), "envcache version")
}

// TestRun_InitializationError verifies that run returns 1 when component initialization fails.
func TestRun_InitializationError(t *testing.T) {
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return nil, nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

// TestRun_ExecutionError verifies that run logs the error and returns 1 when a command fails.
func TestRun_ExecutionError(t *testing.T) {
	m := newApp(t)
	loadErr := errors.New("load failed")
	m.loader.EXPECT().Load(gomock.Any()).Return(nil, loadErr)
	m.logger.EXPECT().Error(gomock.Any()).Do(func(err error) {
		assert.ErrorIs(t, err, loadErr)
	})

	exitCode := run(context.Background(), []string{"env"}, new(bytes.Buffer), new(bytes.Buffer), m.provider)
	assert.Equal(t, 1, exitCode)
}

// TestRun_AppliesOptions verifies that options see the constructed app.
func TestRun_AppliesOptions(t *testing.T) {
	m := newApp(t)
	var seen *app.App

	exitCode := run(context.Background(), []string{"version"}, new(bytes.Buffer), new(bytes.Buffer), m.provider,
		func(a *app.App) { seen = a })
	assert.Equal(t, 0, exitCode)
	assert.Same(t, m.app, seen)
}

// TestRun_RendersReporterTimeline verifies that --verbose reaches the reporter and that it is closed.
func TestRun_RendersReporterTimeline(t *testing.T) {
	m := newApp(t)
	trace := new(bytes.Buffer)
	reporter := progress.NewTapeRecorder(trace, nil)
	reporter.OnAudit(1, 5*time.Millisecond)
	provider := func(_ context.Context) (*app.Components, func(), error) {
		return &app.Components{App: m.app, Logger: m.logger, Reporter: reporter}, func() {}, nil
	}

	exitCode := run(context.Background(), []string{"version", "--verbose"}, new(bytes.Buffer), new(bytes.Buffer), provider)
	assert.Equal(t, 0, exitCode)
	assert.Contains(t, trace.String(), "Phases (1):")
	assert.Contains(t, trace.String(), "1. Audited 1 package in 5ms [done]")
}

func TestExitCode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("requires a POSIX shell")
	}
	ctrl := gomock.NewController(t)

	t.Run("passes the command status through", func(t *testing.T) {
		log := mocks.NewMockLogger(ctrl)
		err := exec.Command("sh", "-c", "exit 3").Run()
		require.Error(t, err)

		wrapped := errors.Join(domain.ErrCommandFailed, err)
		assert.Equal(t, 3, exitCode(wrapped, log))
	})

	t.Run("logs other errors", func(t *testing.T) {
		log := mocks.NewMockLogger(ctrl)
		log.EXPECT().Error(domain.ErrNoCommand)
		assert.Equal(t, 1, exitCode(domain.ErrNoCommand, log))
	})
}
