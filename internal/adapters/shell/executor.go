// Package shell provides the command executor adapter.
package shell

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"go.trai.ch/envcache/internal/core/domain"
	"go.trai.ch/envcache/internal/core/ports"
	"go.trai.ch/zerr"
)

// Executor implements ports.Executor using os/exec.
type Executor struct {
	logger  ports.Logger
	environ func() []string
}

var _ ports.Executor = (*Executor)(nil)

// NewExecutor creates a new Executor.
func NewExecutor(logger ports.Logger) *Executor {
	return &Executor{
		logger:  logger,
		environ: os.Environ,
	}
}

// Execute runs command as if env were activated: its scripts directory leads PATH,
// VIRTUAL_ENV names its root and PYTHONHOME is cleared.
func (e *Executor) Execute(ctx context.Context, env *domain.Environment, command []string, stdout, stderr io.Writer) error {
	if len(command) == 0 {
		return domain.ErrNoCommand
	}

	name := command[0]
	cmdEnv := Activate(e.environ(), env)

	executable := name
	if !filepath.IsAbs(name) && !strings.ContainsAny(name, `/\`) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}
	e.logger.Debug("running `" + executable + "` in " + env.Root)

	cmd := exec.CommandContext(ctx, executable, command[1:]...) //nolint:gosec // user provided command
	// exec.CommandContext sets Args[0] to the executable path; keep the name as invoked.
	cmd.Args[0] = name
	cmd.Env = cmdEnv
	cmd.Stdin = os.Stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.With(errors.Join(domain.ErrCommandFailed, err), "command", name), "exit_code", exitCode)
	}
	return nil
}

// Activate returns base with env's activation applied. The order of base is preserved.
func Activate(base []string, env *domain.Environment) []string {
	result := make([]string, 0, len(base)+2)
	var path string
	for _, entry := range base {
		k, v, ok := strings.Cut(entry, "=")
		switch {
		case !ok:
			result = append(result, entry)
		case isPathKey(k):
			path = v
		case k == "VIRTUAL_ENV", k == "PYTHONHOME":
		default:
			result = append(result, entry)
		}
	}

	if path != "" {
		path = env.Scripts + string(os.PathListSeparator) + path
	} else {
		path = env.Scripts
	}
	return append(result, "PATH="+path, "VIRTUAL_ENV="+env.Root)
}

func isPathKey(k string) bool {
	if runtime.GOOS == "windows" {
		return strings.EqualFold(k, "PATH")
	}
	return k == "PATH"
}

// lookPath searches for an executable in the directories named by the PATH entry of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if k, v, ok := strings.Cut(e, "="); ok && isPathKey(k) {
			path = v
		}
	}
	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		for _, candidate := range candidates(filepath.Join(dir, file)) {
			if err := findExecutable(candidate); err == nil {
				return candidate, nil
			}
		}
	}
	return "", exec.ErrNotFound
}

func candidates(path string) []string {
	if runtime.GOOS != "windows" || filepath.Ext(path) != "" {
		return []string{path}
	}
	return []string{path + ".exe", path + ".bat", path + ".cmd"}
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && (runtime.GOOS == "windows" || m&0o111 != 0) {
		return nil
	}
	return os.ErrPermission
}
