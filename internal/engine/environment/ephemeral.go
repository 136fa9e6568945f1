package environment

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"go.trai.ch/envcache/internal/core/domain"
	"go.trai.ch/envcache/internal/core/ports"
	"go.trai.ch/zerr"
)

// Configuration keys written to ephemeral environments.
const (
	SystemSitePackagesKey = "include-system-site-packages"
	ExtendsEnvironmentKey = "extends-environment"
)

// EphemeralEnvironment is a short-lived environment layered on top of other environments.
// It is never published to the cache, so it may be modified freely.
type EphemeralEnvironment struct {
	env     *domain.Environment
	venv    ports.Virtualenv
	scratch *domain.ScratchDir
}

// NewEphemeralEnvironment wraps an existing environment.
func NewEphemeralEnvironment(env *domain.Environment, venv ports.Virtualenv) *EphemeralEnvironment {
	return &EphemeralEnvironment{env: env, venv: venv}
}

// Ephemeral creates an empty environment for interp in private scratch space.
// The caller removes it with Remove once done.
func (b *Builder) Ephemeral(_ context.Context, interp *domain.Interpreter) (*EphemeralEnvironment, error) {
	scratch, err := b.cache.EphemeralDir()
	if err != nil {
		return nil, err
	}

	env, err := b.venv.Create(scratch.Path(), interp, ports.CreateOptions{RemoveExisting: true})
	if err != nil {
		return nil, err
	}

	return &EphemeralEnvironment{env: env, venv: b.venv, scratch: scratch}, nil
}

// SetOverlay writes contents to the overlay file in the first site-packages directory,
// replacing any previous overlay.
func (e *EphemeralEnvironment) SetOverlay(contents []byte) error {
	if len(e.env.SitePackages) == 0 {
		return zerr.With(zerr.Wrap(domain.ErrNoSitePackages, "cannot write overlay"), "root", e.env.Root)
	}

	path := filepath.Join(e.env.SitePackages[0], domain.OverlayFileName)
	if err := os.WriteFile(path, contents, domain.FilePerm); err != nil {
		return zerr.With(errors.Join(domain.ErrOverlayWriteFailed, err), "path", path)
	}
	return nil
}

// SetSystemSitePackages makes the base installation's packages visible to the environment.
func (e *EphemeralEnvironment) SetSystemSitePackages() error {
	return e.venv.SetConfig(e.env, SystemSitePackagesKey, "true")
}

// SetParentEnvironment records the prefix of the environment this one extends,
// so static tools can follow the relationship the overlay creates at runtime.
func (e *EphemeralEnvironment) SetParentEnvironment(prefix string) error {
	return e.venv.SetConfig(e.env, ExtendsEnvironmentKey, domain.EscapeForPython(prefix))
}

// Environment returns the underlying environment.
func (e *EphemeralEnvironment) Environment() *domain.Environment {
	return e.env
}

// Root returns the environment directory.
func (e *EphemeralEnvironment) Root() string {
	return e.env.Root
}

// Scripts returns the directory holding the environment's executables.
func (e *EphemeralEnvironment) Scripts() string {
	return e.env.Scripts
}

// SysExecutable returns the environment's interpreter executable.
func (e *EphemeralEnvironment) SysExecutable() string {
	return e.env.Interpreter.SysExecutable
}

// SysPrefix returns the environment's prefix.
func (e *EphemeralEnvironment) SysPrefix() string {
	return e.env.Interpreter.SysPrefix
}

// Remove deletes the environment if it was created in scratch space.
func (e *EphemeralEnvironment) Remove() error {
	if e.scratch == nil {
		return nil
	}
	path, err := e.scratch.Take()
	if err != nil {
		return nil //nolint:nilerr // already removed
	}
	return os.RemoveAll(path)
}

// OverlayScript renders overlay contents that add each directory to the import path, in order.
func OverlayScript(sitePackages ...string) []byte {
	var sb strings.Builder
	for _, dir := range sitePackages {
		sb.WriteString(`import site; site.addsitedir("`)
		sb.WriteString(domain.EscapeForPython(dir))
		sb.WriteString("\")\n")
	}
	return []byte(sb.String())
}

// Parent opens an existing environment that an ephemeral environment layers on, reporting
// whether that environment also sees its base installation's packages.
func (b *Builder) Parent(root string) (*domain.Environment, bool, error) {
	env, err := b.venv.Load(root)
	if err != nil {
		return nil, false, err
	}
	cfg, err := b.venv.Config(env)
	if err != nil {
		return nil, false, err
	}
	return env, strings.EqualFold(cfg[SystemSitePackagesKey], "true"), nil
}
