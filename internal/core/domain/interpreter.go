// Package domain contains the core types for environment caching.
package domain

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"go.trai.ch/zerr"
)

// Interpreter is the identity of an executable runtime as reported by the runtime itself.
// Values are treated as immutable once queried.
type Interpreter struct {
	// SysExecutable is the path the interpreter was invoked through.
	SysExecutable string `json:"sys_executable"`
	// SysBaseExecutable is the executable of the base installation, when the runtime reports one.
	SysBaseExecutable string `json:"sys_base_executable,omitempty"`
	// SysPrefix is the root of the interpreter's own environment.
	SysPrefix string `json:"sys_prefix"`
	// SysBasePrefix is the root of the base installation.
	SysBasePrefix string `json:"sys_base_prefix"`
	// Version is the full interpreter version, e.g. "3.12.4".
	Version string `json:"version"`
	// Implementation is the runtime implementation name, e.g. "cpython".
	Implementation string `json:"implementation,omitempty"`
	// Platform is the platform tag reported by the runtime.
	Platform string `json:"platform,omitempty"`
}

// IsVirtualEnv reports whether the interpreter runs inside a virtual environment.
func (i *Interpreter) IsVirtualEnv() bool {
	return filepath.Clean(i.SysPrefix) != filepath.Clean(i.SysBasePrefix)
}

// SemVer parses Version leniently.
func (i *Interpreter) SemVer() (*semver.Version, error) {
	v, err := semver.NewVersion(i.Version)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, "invalid interpreter version"), "version", i.Version)
	}
	return v, nil
}

// MajorMinor returns the "X.Y" form of the interpreter version, used for library directory names.
func (i *Interpreter) MajorMinor() (string, error) {
	v, err := i.SemVer()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d.%d", v.Major(), v.Minor()), nil
}

// Validate checks the fields the cache relies on.
func (i *Interpreter) Validate() error {
	if i.SysExecutable == "" || !filepath.IsAbs(i.SysExecutable) {
		return zerr.With(zerr.Wrap(ErrInterpreterQueryFailed, "executable path must be absolute"),
			"executable", i.SysExecutable)
	}
	if i.SysPrefix == "" || i.SysBasePrefix == "" {
		return zerr.With(zerr.Wrap(ErrInterpreterQueryFailed, "interpreter reported no prefix"),
			"executable", i.SysExecutable)
	}
	if _, err := i.SemVer(); err != nil {
		return zerr.With(zerr.Wrap(ErrInterpreterQueryFailed, "interpreter reported an invalid version"),
			"version", i.Version)
	}
	return nil
}

// EscapeForPython escapes a path so it can be embedded in a double-quoted Python string literal.
func EscapeForPython(path string) string {
	return strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(path)
}
