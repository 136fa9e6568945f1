package progress

import (
	"time"

	"go.trai.ch/envcache/internal/core/domain"
)

// Silent discards every event.
type Silent struct{}

// OnResolveComplete implements ports.ResolveLogger.
func (Silent) OnResolveComplete(int, time.Duration) {}

// OnAudit implements ports.InstallLogger.
func (Silent) OnAudit(int, time.Duration) {}

// OnUninstall implements ports.InstallLogger.
func (Silent) OnUninstall([]domain.InstalledDistribution, time.Duration) {}

// OnInstall implements ports.InstallLogger.
func (Silent) OnInstall([]domain.Distribution, time.Duration) {}
