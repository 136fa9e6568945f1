package interpreter

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"go.trai.ch/envcache/internal/core/domain"
	"go.trai.ch/zerr"
)

// maxLinkHops bounds how many symbolic links are followed out of a virtual environment.
const maxLinkHops = 32

var errOutsidePrefix = zerr.New("executable is not inside its prefix")

// Locator implements ports.BaseLocator.
type Locator struct {
	goos string
}

// NewLocator creates a Locator for the running platform.
func NewLocator() *Locator {
	return &Locator{goos: runtime.GOOS}
}

// NewLocatorFor creates a Locator that follows the conventions of goos.
func NewLocatorFor(goos string) *Locator {
	return &Locator{goos: goos}
}

// Base returns the executable of the base installation underlying interp.
//
// On Windows, virtual environments hold launcher copies rather than links, so the base is
// taken from what the interpreter reports. Elsewhere the executable's symlinks are followed
// until it no longer sits inside a virtual environment.
func (l *Locator) Base(interp *domain.Interpreter) (string, error) {
	if l.goos == "windows" {
		return toBase(interp)
	}
	return findBase(interp)
}

// Canonicalize resolves symbolic links in the executable's directory but keeps the
// executable's own name, so versioned links like python3 -> python3.12 stay distinct
// while every route to the same directory maps to one path.
func (l *Locator) Canonicalize(executable string) (string, error) {
	dir, name := filepath.Split(executable)
	if name == "" {
		return executable, nil
	}
	resolved, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to canonicalize interpreter directory"), "path", dir)
	}
	abs, err := filepath.Abs(resolved)
	if err != nil {
		return "", zerr.With(zerr.Wrap(err, "failed to canonicalize interpreter directory"), "path", dir)
	}
	return filepath.Join(abs, name), nil
}

func findBase(interp *domain.Interpreter) (string, error) {
	executable := interp.SysExecutable
	for range maxLinkHops {
		if !inVirtualEnv(executable) {
			return executable, nil
		}

		target, err := os.Readlink(executable)
		if err != nil {
			// Environments created with copies carry no link to follow.
			return toBase(interp)
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(executable), target)
		}
		executable = filepath.Clean(target)
	}
	return "", zerr.With(zerr.New("too many levels of symbolic links"), "executable", interp.SysExecutable)
}

// inVirtualEnv reports whether executable lives in <env>/bin of an environment with a pyvenv.cfg.
func inVirtualEnv(executable string) bool {
	root := filepath.Dir(filepath.Dir(executable))
	_, err := os.Stat(filepath.Join(root, domain.EnvConfigFileName))
	return err == nil
}

func toBase(interp *domain.Interpreter) (string, error) {
	if interp.SysBaseExecutable != "" {
		return interp.SysBaseExecutable, nil
	}
	if !interp.IsVirtualEnv() {
		return interp.SysExecutable, nil
	}

	rel, err := filepath.Rel(interp.SysPrefix, interp.SysExecutable)
	if err != nil {
		return "", zerr.With(errors.Join(errOutsidePrefix, err), "executable", interp.SysExecutable)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", zerr.With(zerr.Wrap(errOutsidePrefix, "cannot map to base prefix"), "executable", interp.SysExecutable)
	}
	return filepath.Join(interp.SysBasePrefix, rel), nil
}
