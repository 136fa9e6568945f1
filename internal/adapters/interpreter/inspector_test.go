package interpreter_test

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/envcache/internal/adapters/interpreter"
	"go.trai.ch/envcache/internal/core/domain"
)

// TestHelperProcess stands in for an interpreter. It is not a real test.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	switch os.Getenv("HELPER_MODE") {
	case "fail":
		fmt.Fprint(os.Stderr, "boom")
		os.Exit(1)
	case "garbage":
		fmt.Print("not json")
	default:
		fmt.Printf(`{"sys_executable":%q,"sys_prefix":"/usr","sys_base_prefix":"/usr","version":"3.12.4",`+
			`"implementation":"cpython","platform":"linux"}`, os.Getenv("HELPER_EXECUTABLE"))
	}
	os.Exit(0)
}

type helper struct {
	calls atomic.Int32
	mode  string
}

func (h *helper) command(ctx context.Context, name string, _ ...string) *exec.Cmd {
	h.calls.Add(1)
	//nolint:gosec // Re-executing the test binary
	cmd := exec.CommandContext(ctx, os.Args[0], "-test.run=TestHelperProcess")
	cmd.Env = append(os.Environ(),
		"GO_WANT_HELPER_PROCESS=1",
		"HELPER_MODE="+h.mode,
		"HELPER_EXECUTABLE="+name,
	)
	return cmd
}

func fakeExecutable(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bin", "python3")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o600))
	return path
}

func TestInspector_Query(t *testing.T) {
	h := &helper{}
	exe := fakeExecutable(t)
	inspector := interpreter.NewInspector(t.TempDir(), interpreter.WithCommand(h.command))

	interp, err := inspector.Query(context.Background(), exe)
	require.NoError(t, err)

	assert.Equal(t, exe, interp.SysExecutable)
	assert.Equal(t, "3.12.4", interp.Version)
	assert.Equal(t, "cpython", interp.Implementation)
	assert.False(t, interp.IsVirtualEnv())
}

func TestInspector_DiskCache(t *testing.T) {
	h := &helper{}
	exe := fakeExecutable(t)
	cacheDir := t.TempDir()

	_, err := interpreter.NewInspector(cacheDir, interpreter.WithCommand(h.command)).Query(context.Background(), exe)
	require.NoError(t, err)
	_, err = interpreter.NewInspector(cacheDir, interpreter.WithCommand(h.command)).Query(context.Background(), exe)
	require.NoError(t, err)
	assert.Equal(t, int32(1), h.calls.Load(), "second inspector must reuse the cached query")

	entries, err := os.ReadDir(cacheDir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Regexp(t, `^[0-9a-f]{16}\.json$`, entries[0].Name())

	later := time.Now().Add(time.Hour)
	require.NoError(t, os.Chtimes(exe, later, later))
	_, err = interpreter.NewInspector(cacheDir, interpreter.WithCommand(h.command)).Query(context.Background(), exe)
	require.NoError(t, err)
	assert.Equal(t, int32(2), h.calls.Load(), "a modified executable must be queried again")
}

func TestInspector_ConcurrentQueriesShareWork(t *testing.T) {
	h := &helper{}
	exe := fakeExecutable(t)
	inspector := interpreter.NewInspector(t.TempDir(), interpreter.WithCommand(h.command))

	var wg sync.WaitGroup
	for range 4 {
		wg.Go(func() {
			_, err := inspector.Query(context.Background(), exe)
			assert.NoError(t, err)
		})
	}
	wg.Wait()
	assert.LessOrEqual(t, h.calls.Load(), int32(4))
	assert.GreaterOrEqual(t, h.calls.Load(), int32(1))
}

func TestInspector_Failures(t *testing.T) {
	tests := []struct {
		name string
		mode string
	}{
		{name: "process fails", mode: "fail"},
		{name: "invalid output", mode: "garbage"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &helper{mode: tt.mode}
			inspector := interpreter.NewInspector(t.TempDir(), interpreter.WithCommand(h.command))

			_, err := inspector.Query(context.Background(), fakeExecutable(t))
			require.ErrorIs(t, err, domain.ErrInterpreterQueryFailed)
		})
	}

	t.Run("missing executable", func(t *testing.T) {
		inspector := interpreter.NewInspector(t.TempDir())
		_, err := inspector.Query(context.Background(), filepath.Join(t.TempDir(), "python3"))
		require.ErrorIs(t, err, domain.ErrInterpreterQueryFailed)
	})

	t.Run("not on path", func(t *testing.T) {
		t.Setenv("PATH", t.TempDir())
		inspector := interpreter.NewInspector(t.TempDir())
		_, err := inspector.Query(context.Background(), "python-does-not-exist")
		require.ErrorIs(t, err, domain.ErrInterpreterQueryFailed)
	})
}
