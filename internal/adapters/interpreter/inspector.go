// Package interpreter queries interpreter executables and locates their base installations.
package interpreter

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"go.trai.ch/envcache/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

// queryScript prints the interpreter identity as a single JSON object.
const queryScript = `import json, platform, sys
print(json.dumps({
    "sys_executable": sys.executable,
    "sys_base_executable": getattr(sys, "_base_executable", "") or "",
    "sys_prefix": sys.prefix,
    "sys_base_prefix": sys.base_prefix,
    "version": platform.python_version(),
    "implementation": sys.implementation.name,
    "platform": sys.platform,
}))`

// CommandFunc builds the command used to run an interpreter.
type CommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// Inspector implements ports.InterpreterQuerier by running the interpreter.
// Results are cached on disk keyed by executable path and invalidated when the
// executable's modification time changes.
type Inspector struct {
	cacheDir string
	command  CommandFunc
	group    singleflight.Group
}

// InspectorOption configures an Inspector.
type InspectorOption func(*Inspector)

// WithCommand overrides how the interpreter process is created.
func WithCommand(fn CommandFunc) InspectorOption {
	return func(i *Inspector) {
		i.command = fn
	}
}

// NewInspector creates an Inspector caching results below cacheDir.
func NewInspector(cacheDir string, opts ...InspectorOption) *Inspector {
	i := &Inspector{
		cacheDir: cacheDir,
		command:  exec.CommandContext,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// cachedQuery is the on-disk form of a query result.
type cachedQuery struct {
	Executable  string              `json:"executable"`
	ModTime     int64               `json:"mtime"`
	Interpreter *domain.Interpreter `json:"interpreter"`
}

// Query returns the identity reported by the interpreter at executable.
// A bare name is looked up on PATH first.
func (i *Inspector) Query(ctx context.Context, executable string) (*domain.Interpreter, error) {
	path, err := lookPath(executable)
	if err != nil {
		return nil, err
	}

	result, err, _ := i.group.Do(path, func() (any, error) {
		return i.query(ctx, path)
	})
	if err != nil {
		return nil, err
	}
	return result.(*domain.Interpreter), nil
}

func (i *Inspector) query(ctx context.Context, path string) (*domain.Interpreter, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, zerr.With(errors.Join(domain.ErrInterpreterQueryFailed, err), "executable", path)
	}

	cachePath := i.cachePath(path)
	if cached, err := loadQuery(cachePath); err == nil &&
		cached.Executable == path && cached.ModTime == info.ModTime().UnixNano() && cached.Interpreter != nil {
		return cached.Interpreter, nil
	}

	interp, err := i.run(ctx, path)
	if err != nil {
		return nil, err
	}

	// A failed write only costs a re-query next time.
	_ = saveQuery(cachePath, cachedQuery{
		Executable:  path,
		ModTime:     info.ModTime().UnixNano(),
		Interpreter: interp,
	})
	return interp, nil
}

func (i *Inspector) run(ctx context.Context, path string) (*domain.Interpreter, error) {
	cmd := i.command(ctx, path, "-I", "-c", queryScript)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	output, err := cmd.Output()
	if err != nil {
		return nil, zerr.With(zerr.With(errors.Join(domain.ErrInterpreterQueryFailed, err),
			"executable", path), "stderr", stderr.String())
	}

	var interp domain.Interpreter
	if err := json.Unmarshal(bytes.TrimSpace(output), &interp); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrInterpreterQueryFailed, err), "executable", path)
	}
	if err := interp.Validate(); err != nil {
		return nil, zerr.With(err, "executable", path)
	}
	return &interp, nil
}

func (i *Inspector) cachePath(executable string) string {
	return filepath.Join(i.cacheDir, fmt.Sprintf("%016x.json", xxhash.Sum64String(executable)))
}

func lookPath(executable string) (string, error) {
	if filepath.IsAbs(executable) {
		return filepath.Clean(executable), nil
	}
	path, err := exec.LookPath(executable)
	if err != nil {
		return "", zerr.With(errors.Join(domain.ErrInterpreterQueryFailed, err), "executable", executable)
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", zerr.With(errors.Join(domain.ErrInterpreterQueryFailed, err), "executable", path)
	}
	return abs, nil
}

func loadQuery(path string) (*cachedQuery, error) {
	//nolint:gosec // Path is constructed from trusted cache directory
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrCacheMiss
		}
		return nil, zerr.Wrap(err, "failed to read interpreter cache")
	}

	var cached cachedQuery
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, zerr.Wrap(err, "failed to unmarshal interpreter cache")
	}
	return &cached, nil
}

func saveQuery(path string, cached cachedQuery) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.Wrap(err, "failed to create interpreter cache directory")
	}

	data, err := json.MarshalIndent(cached, "", "  ")
	if err != nil {
		return zerr.Wrap(err, "failed to marshal interpreter cache")
	}

	tmpFile, err := os.CreateTemp(dir, "query-*.json")
	if err != nil {
		return zerr.Wrap(err, "failed to create temp cache file")
	}
	tmpName := tmpFile.Name()

	defer func() {
		if _, err := os.Stat(tmpName); err == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		return zerr.Wrap(err, "failed to write cache file")
	}
	if err := tmpFile.Close(); err != nil {
		return zerr.Wrap(err, "failed to close temp cache file")
	}
	if err := os.Chmod(tmpName, domain.FilePerm); err != nil {
		return zerr.Wrap(err, "failed to chmod cache file")
	}
	if err := os.Rename(tmpName, path); err != nil {
		return zerr.Wrap(err, "failed to rename temp cache file")
	}
	return nil
}
