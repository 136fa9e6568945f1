package ports

import (
	"time"

	"go.trai.ch/envcache/internal/core/domain"
)

//go:generate go run go.uber.org/mock/mockgen -source=progress.go -destination=mocks/mock_progress.go -package=mocks

// ResolveLogger receives resolution progress events.
type ResolveLogger interface {
	// OnResolveComplete is called once a resolution has been produced.
	OnResolveComplete(count int, elapsed time.Duration)
}

// InstallLogger receives installation progress events.
type InstallLogger interface {
	// OnAudit is called when the environment already satisfies the resolution.
	OnAudit(count int, elapsed time.Duration)
	// OnUninstall is called after distributions have been removed.
	OnUninstall(removed []domain.InstalledDistribution, elapsed time.Duration)
	// OnInstall is called after distributions have been installed.
	OnInstall(installed []domain.Distribution, elapsed time.Duration)
}

// Reporter receives every progress event of an environment acquisition.
type Reporter interface {
	ResolveLogger
	InstallLogger
}
