// Package environment acquires cached runtime environments and layers ephemeral ones on top of them.
package environment

import (
	"go.trai.ch/envcache/internal/core/domain"
	"go.trai.ch/envcache/internal/core/ports"
)

// Request describes an environment to acquire.
type Request struct {
	Spec domain.EnvironmentSpec
	// Interpreter is the interpreter the caller runs with; it may live inside a virtual environment.
	Interpreter      *domain.Interpreter
	BuildConstraints []domain.Requirement
	Settings         domain.Settings
	Concurrency      domain.Concurrency
	Refresh          domain.Refresh
	// InstallerMetadata records installer provenance in installed distributions.
	InstallerMetadata bool
	ResolveLogger     ports.ResolveLogger
	InstallLogger     ports.InstallLogger
}

// Builder acquires environments from the cache, building and publishing them on a miss.
type Builder struct {
	resolver  ports.Resolver
	installer ports.Installer
	venv      ports.Virtualenv
	cache     ports.Cache
	locator   ports.BaseLocator
	querier   ports.InterpreterQuerier
	logger    ports.Logger
}

// NewBuilder creates a Builder.
func NewBuilder(
	resolver ports.Resolver,
	installer ports.Installer,
	venv ports.Virtualenv,
	cache ports.Cache,
	locator ports.BaseLocator,
	querier ports.InterpreterQuerier,
	logger ports.Logger,
) *Builder {
	return &Builder{
		resolver:  resolver,
		installer: installer,
		venv:      venv,
		cache:     cache,
		locator:   locator,
		querier:   querier,
		logger:    logger,
	}
}
