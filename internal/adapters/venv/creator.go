// Package venv creates and loads virtual environments laid out around a pyvenv.cfg file.
package venv

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"go.trai.ch/envcache/internal/core/domain"
	"go.trai.ch/envcache/internal/core/ports"
	"go.trai.ch/zerr"
)

// Configuration keys written at creation.
const (
	HomeKey               = "home"
	ImplementationKey     = "implementation"
	VersionInfoKey        = "version_info"
	VersionKey            = "version"
	SystemSitePackagesKey = "include-system-site-packages"
	PromptKey             = "prompt"
	RelocatableKey        = "relocatable"
)

// Creator implements ports.Virtualenv.
type Creator struct {
	goos string
}

// NewCreator creates a Creator for the running platform.
func NewCreator() *Creator {
	return &Creator{goos: runtime.GOOS}
}

// NewCreatorFor creates a Creator that uses the directory layout of goos.
func NewCreatorFor(goos string) *Creator {
	return &Creator{goos: goos}
}

// RenderConfig renders the pyvenv.cfg written for a new environment.
func RenderConfig(interp *domain.Interpreter, opts ports.CreateOptions) []byte {
	c := &Config{}
	c.Set(HomeKey, filepath.Dir(interp.SysExecutable))
	c.Set(ImplementationKey, implementationName(interp.Implementation))
	c.Set(VersionInfoKey, interp.Version)
	c.Set(SystemSitePackagesKey, strconv.FormatBool(opts.SystemSitePackages))
	if opts.Prompt != "" {
		c.Set(PromptKey, opts.Prompt)
	}
	if opts.Relocatable {
		c.Set(RelocatableKey, "true")
	}
	return c.Bytes()
}

// Create lays out a new environment in dir backed by interp.
func (c *Creator) Create(dir string, interp *domain.Interpreter, opts ports.CreateOptions) (*domain.Environment, error) {
	if err := c.prepare(dir, opts.RemoveExisting); err != nil {
		return nil, err
	}

	layout, err := c.layout(dir, interp.Version)
	if err != nil {
		return nil, err
	}

	for _, d := range append([]string{layout.scripts}, layout.sitePackages...) {
		if err := os.MkdirAll(d, domain.DirPerm); err != nil {
			return nil, zerr.With(errors.Join(domain.ErrEnvironmentCreateFailed, err), "path", d)
		}
	}

	if err := c.linkInterpreter(layout, interp); err != nil {
		return nil, err
	}

	configPath := filepath.Join(dir, domain.EnvConfigFileName)
	if err := os.WriteFile(configPath, RenderConfig(interp, opts), domain.FilePerm); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrEnvironmentCreateFailed, err), "path", configPath)
	}

	gitignore := filepath.Join(dir, ".gitignore")
	if err := os.WriteFile(gitignore, []byte("*\n"), domain.FilePerm); err != nil {
		return nil, zerr.With(errors.Join(domain.ErrEnvironmentCreateFailed, err), "path", gitignore)
	}

	return c.Load(dir)
}

// prepare makes sure dir exists and is empty.
func (c *Creator) prepare(dir string, removeExisting bool) error {
	entries, err := os.ReadDir(dir)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return zerr.With(errors.Join(domain.ErrEnvironmentCreateFailed, err), "path", dir)
	case len(entries) > 0 && !removeExisting:
		return zerr.With(zerr.Wrap(domain.ErrEnvironmentCreateFailed, "directory is not empty"), "path", dir)
	case len(entries) > 0:
		if err := os.RemoveAll(dir); err != nil {
			return zerr.With(errors.Join(domain.ErrEnvironmentCreateFailed, err), "path", dir)
		}
	}

	if err := os.MkdirAll(dir, domain.DirPerm); err != nil {
		return zerr.With(errors.Join(domain.ErrEnvironmentCreateFailed, err), "path", dir)
	}
	return nil
}

// linkInterpreter links the base executable into the scripts directory. Windows gets a copy.
func (c *Creator) linkInterpreter(l layout, interp *domain.Interpreter) error {
	if c.goos == "windows" {
		return copyFile(interp.SysExecutable, l.executable)
	}

	if err := os.Symlink(interp.SysExecutable, l.executable); err != nil {
		return zerr.With(errors.Join(domain.ErrEnvironmentCreateFailed, err), "path", l.executable)
	}
	mm, err := interp.MajorMinor()
	if err != nil {
		return errors.Join(domain.ErrEnvironmentCreateFailed, err)
	}
	major, _, _ := strings.Cut(mm, ".")
	for _, alias := range []string{"python" + major, "python" + mm} {
		path := filepath.Join(l.scripts, alias)
		if err := os.Symlink("python", path); err != nil {
			return zerr.With(errors.Join(domain.ErrEnvironmentCreateFailed, err), "path", path)
		}
	}
	return nil
}

func copyFile(src, dst string) error {
	//nolint:gosec // Source is the interpreter executable reported by the interpreter
	in, err := os.Open(src)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrEnvironmentCreateFailed, err), "path", src)
	}
	defer func() { _ = in.Close() }()

	//nolint:gosec // Destination is inside the environment being created
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o755)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrEnvironmentCreateFailed, err), "path", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return zerr.With(errors.Join(domain.ErrEnvironmentCreateFailed, err), "path", dst)
	}
	if err := out.Close(); err != nil {
		return zerr.With(errors.Join(domain.ErrEnvironmentCreateFailed, err), "path", dst)
	}
	return nil
}

func implementationName(impl string) string {
	switch strings.ToLower(impl) {
	case "", "cpython":
		return "CPython"
	case "pypy":
		return "PyPy"
	case "graalpy":
		return "GraalPy"
	default:
		return impl
	}
}
