package pip

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.trai.ch/envcache/internal/core/domain"
	"go.trai.ch/envcache/internal/core/ports"
	"go.trai.ch/zerr"
)

// CommandFunc builds the command used to run pip.
type CommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// Installer implements ports.Installer by running pip. Pip runs from the base interpreter and
// targets the environment with --python; without a base it runs inside the environment.
type Installer struct {
	command CommandFunc
	goos    string
}

// Option configures an Installer.
type Option func(*Installer)

// WithCommand overrides how pip processes are created.
func WithCommand(fn CommandFunc) Option {
	return func(i *Installer) {
		i.command = fn
	}
}

// NewInstaller creates an Installer.
func NewInstaller(opts ...Option) *Installer {
	i := &Installer{
		command: exec.CommandContext,
		goos:    defaultGOOS,
	}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// Sync brings the environment in line with the resolution.
func (i *Installer) Sync(ctx context.Context, req ports.SyncRequest) error {
	start := time.Now()
	log := req.Logger
	if log == nil {
		log = silent{}
	}
	env := req.Environment
	target := newPipTarget(env, req.Base)

	installed, err := Installed(ctx, env.SitePackages, req.Concurrency.Installs)
	if err != nil {
		return zerr.With(errors.Join(domain.ErrInstallFailed, err), "environment", env.Root)
	}

	plan := domain.PlanSync(installed, req.Resolution, req.Modifications)
	if plan.IsEmpty() {
		log.OnAudit(len(plan.Unchanged), time.Since(start))
		return nil
	}

	if len(plan.Remove) > 0 {
		removeStart := time.Now()
		args := append(target.pipArgs(), "uninstall", "--yes", "--disable-pip-version-check")
		for _, d := range plan.Remove {
			args = append(args, d.Name.String())
		}
		if err := i.run(ctx, target, nil, args); err != nil {
			return err
		}
		log.OnUninstall(plan.Remove, time.Since(removeStart))
	}

	if len(plan.Install) > 0 {
		installStart := time.Now()
		extraEnv, cleanup, err := buildConstraintEnv(req.BuildConstraints)
		if err != nil {
			return zerr.With(errors.Join(domain.ErrInstallFailed, err), "environment", env.Root)
		}
		defer cleanup()

		args := append(target.pipArgs(), installArgs(plan.Install, req.Settings)...)
		if err := i.run(ctx, target, extraEnv, args); err != nil {
			return err
		}

		if !req.InstallerMetadata {
			if err := stripInstallerMetadata(ctx, env.SitePackages, plan.Install, req.Concurrency.Installs); err != nil {
				return zerr.With(errors.Join(domain.ErrInstallFailed, err), "environment", env.Root)
			}
		}
		log.OnInstall(plan.Install, time.Since(installStart))
	}

	if i.goos != "windows" {
		if err := MakeRelocatable(env.Scripts); err != nil {
			return zerr.With(errors.Join(domain.ErrInstallFailed, err), "environment", env.Root)
		}
	}
	return nil
}

func installArgs(dists []domain.Distribution, settings domain.Settings) []string {
	args := []string{"install", "--no-deps", "--disable-pip-version-check", "--no-input"}
	if settings.IndexURL != "" {
		args = append(args, "--index-url", settings.IndexURL)
	}
	if settings.Offline {
		args = append(args, "--no-index")
	}
	if settings.Timeout > 0 {
		args = append(args, "--timeout", strconv.Itoa(int(settings.Timeout.Seconds())))
	}
	for _, d := range dists {
		switch {
		case d.Source.Editable && d.Source.Path != "":
			args = append(args, "--editable", d.Source.Path)
		case d.Source.Kind == domain.SourceDirectory || d.Source.Kind == domain.SourcePath:
			args = append(args, d.Source.Path)
		default:
			args = append(args, d.String())
		}
	}
	return args
}

// buildConstraintEnv writes build constraints to a file pip applies to isolated build environments.
func buildConstraintEnv(constraints []domain.Requirement) ([]string, func(), error) {
	if len(constraints) == 0 {
		return nil, func() {}, nil
	}

	f, err := os.CreateTemp("", "envcache-build-constraints-*.txt")
	if err != nil {
		return nil, nil, zerr.Wrap(err, "failed to create build constraints file")
	}
	cleanup := func() { _ = os.Remove(f.Name()) }

	var sb strings.Builder
	for _, c := range constraints {
		sb.WriteString(c.Raw)
		sb.WriteByte('\n')
	}
	if _, err := f.WriteString(sb.String()); err != nil {
		_ = f.Close()
		cleanup()
		return nil, nil, zerr.Wrap(err, "failed to write build constraints file")
	}
	if err := f.Close(); err != nil {
		cleanup()
		return nil, nil, zerr.Wrap(err, "failed to close build constraints file")
	}
	return []string{"PIP_CONSTRAINT=" + f.Name()}, cleanup, nil
}

// pipTarget is the interpreter pip runs under and the environment it installs into.
type pipTarget struct {
	host string
	env  *domain.Environment
}

func newPipTarget(env *domain.Environment, base *domain.Interpreter) pipTarget {
	if base != nil && base.SysExecutable != "" {
		return pipTarget{host: base.SysExecutable, env: env}
	}
	return pipTarget{host: env.Interpreter.SysExecutable, env: env}
}

// pipArgs returns the leading arguments of every pip invocation.
func (t pipTarget) pipArgs() []string {
	if t.host == t.env.Interpreter.SysExecutable {
		return []string{"-m", "pip"}
	}
	return []string{"-m", "pip", "--python", t.env.Interpreter.SysExecutable}
}

func (i *Installer) run(ctx context.Context, target pipTarget, extraEnv, args []string) error {
	cmd := i.command(ctx, target.host, args...)
	cmd.Env = append(os.Environ(),
		"VIRTUAL_ENV="+target.env.Root,
		"PIP_REQUIRE_VIRTUALENV=0",
		"PYTHONNOUSERSITE=1",
	)
	cmd.Env = append(cmd.Env, extraEnv...)

	var output bytes.Buffer
	cmd.Stdout = &output
	cmd.Stderr = &output

	if err := cmd.Run(); err != nil {
		return zerr.With(zerr.With(errors.Join(domain.ErrInstallFailed, err),
			"command", strings.Join(args, " ")), "output", strings.TrimSpace(output.String()))
	}
	return nil
}

// stripInstallerMetadata removes the INSTALLER and REQUESTED markers of freshly installed distributions.
func stripInstallerMetadata(ctx context.Context, sitePackages []string, dists []domain.Distribution, limit int) error {
	installed, err := Installed(ctx, sitePackages, limit)
	if err != nil {
		return err
	}
	wanted := make(map[domain.PackageName]bool, len(dists))
	for _, d := range dists {
		wanted[d.Name] = true
	}
	for _, d := range installed {
		if !wanted[d.Name] {
			continue
		}
		for _, name := range []string{"INSTALLER", "REQUESTED"} {
			if err := os.Remove(filepath.Join(d.MetadataDir, name)); err != nil && !errors.Is(err, os.ErrNotExist) {
				return zerr.With(zerr.Wrap(err, "failed to remove installer metadata"), "path", d.MetadataDir)
			}
		}
	}
	return nil
}

type silent struct{}

func (silent) OnAudit(int, time.Duration)                                  {}
func (silent) OnUninstall([]domain.InstalledDistribution, time.Duration) {}
func (silent) OnInstall([]domain.Distribution, time.Duration)             {}
