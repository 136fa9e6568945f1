package app

import (
	"context"
	"io"
	"slices"

	"go.trai.ch/envcache/internal/core/domain"
	"go.trai.ch/envcache/internal/engine/environment"
	"go.trai.ch/zerr"
)

// RunOptions configures Run.
type RunOptions struct {
	EnvOptions
	// With lists extra requirements layered over the project environment for this run only.
	With []string
	// Isolated ignores the project's requirements.
	Isolated bool
}

// Run executes command inside the project environment. With extra requirements, the command
// runs in a throwaway environment that sees the cached extras first and the project environment
// after them; the throwaway environment is removed afterwards.
func (a *App) Run(ctx context.Context, cwd string, command []string, opts RunOptions, stdout, stderr io.Writer) error {
	if len(command) == 0 {
		return domain.ErrNoCommand
	}
	with, err := domain.ParseRequirements(opts.With)
	if err != nil {
		return err
	}

	project, interp, err := a.load(ctx, cwd, opts.EnvOptions)
	if err != nil {
		return err
	}
	if opts.Isolated {
		project.Spec.Requirements = nil
	}

	if len(with) == 0 {
		env, err := a.builder.FromSpec(ctx, a.request(project, interp, project.Spec, opts.EnvOptions))
		if err != nil {
			return err
		}
		return a.executor.Execute(ctx, env.Environment(), command, stdout, stderr)
	}

	ephemeral, err := a.layer(ctx, project, interp, with, opts.EnvOptions)
	if err != nil {
		return err
	}
	defer func() {
		if err := ephemeral.Remove(); err != nil {
			a.logger.Warn("failed to remove ephemeral environment " + ephemeral.Root())
		}
	}()

	return a.executor.Execute(ctx, ephemeral.Environment(), command, stdout, stderr)
}

// overlayParent is what an ephemeral environment layers on besides the extras.
type overlayParent struct {
	prefix       string
	sitePackages []string
	// system makes the base installation's packages visible as well.
	system bool
}

// layer builds the ephemeral environment for a run with extra requirements.
func (a *App) layer(
	ctx context.Context,
	project *domain.Project,
	interp *domain.Interpreter,
	with []domain.Requirement,
	opts EnvOptions,
) (*environment.EphemeralEnvironment, error) {
	layerInterp := interp
	parent := overlayParent{system: true}
	switch {
	case !project.Spec.IsEmpty():
		env, err := a.builder.FromSpec(ctx, a.request(project, interp, project.Spec, opts))
		if err != nil {
			return nil, err
		}
		layerInterp = env.Interpreter()
		parent = overlayParent{prefix: env.Root(), sitePackages: env.SitePackages()}
	case interp.IsVirtualEnv():
		env, system, err := a.builder.Parent(interp.SysPrefix)
		if err != nil {
			return nil, zerr.Wrap(err, "failed to open the active virtual environment")
		}
		parent = overlayParent{prefix: env.Root, sitePackages: env.SitePackages, system: system}
	}

	extras, err := a.builder.FromSpec(ctx, a.request(project, layerInterp, domain.EnvironmentSpec{
		Requirements: with,
		Constraints:  project.Spec.Constraints,
	}, opts))
	if err != nil {
		return nil, err
	}

	base, err := a.builder.BaseInterpreter(ctx, interp)
	if err != nil {
		return nil, err
	}
	ephemeral, err := a.builder.Ephemeral(ctx, base)
	if err != nil {
		return nil, err
	}

	if err := configureOverlay(ephemeral, extras, parent); err != nil {
		_ = ephemeral.Remove()
		return nil, err
	}
	return ephemeral, nil
}

// configureOverlay makes the extras visible first and the parent's packages after them, and
// records the parent in the environment metadata so both views agree.
func configureOverlay(ephemeral *environment.EphemeralEnvironment, extras *environment.CachedEnvironment, parent overlayParent) error {
	sitePackages := slices.Concat(extras.SitePackages(), parent.sitePackages)
	if err := ephemeral.SetOverlay(environment.OverlayScript(sitePackages...)); err != nil {
		return err
	}
	if parent.prefix != "" {
		if err := ephemeral.SetParentEnvironment(parent.prefix); err != nil {
			return err
		}
	}
	if parent.system {
		return ephemeral.SetSystemSitePackages()
	}
	return nil
}
