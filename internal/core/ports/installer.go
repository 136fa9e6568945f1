package ports

import (
	"context"

	"go.trai.ch/envcache/internal/core/domain"
)

// SyncRequest describes how to bring an environment in line with a resolution.
type SyncRequest struct {
	Environment *domain.Environment
	// Base is the interpreter the environment was created from. When set, pip runs from the
	// base installation and targets the environment, so the environment needs no pip of its own.
	Base             *domain.Interpreter
	Resolution       *domain.Resolution
	Modifications    domain.Modifications
	BuildConstraints []domain.Requirement
	Settings         domain.Settings
	Concurrency      domain.Concurrency
	Logger           InstallLogger
	// InstallerMetadata records installer provenance in each installed distribution.
	InstallerMetadata bool
}

// Installer materializes a resolution into an environment.
//
//go:generate go run go.uber.org/mock/mockgen -source=installer.go -destination=mocks/mock_installer.go -package=mocks
type Installer interface {
	// Sync installs and, depending on the modifications mode, removes distributions
	// until the environment matches the resolution.
	Sync(ctx context.Context, req SyncRequest) error
}
