package pip

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/envcache/internal/core/ports"
)

const (
	// ResolverNodeID is the unique identifier for the resolver Graft node.
	ResolverNodeID graft.ID = "adapter.pip.resolver"
	// InstallerNodeID is the unique identifier for the installer Graft node.
	InstallerNodeID graft.ID = "adapter.pip.installer"
)

func init() {
	graft.Register(graft.Node[ports.Resolver]{
		ID:        ResolverNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Resolver, error) {
			return NewResolver(), nil
		},
	})

	graft.Register(graft.Node[ports.Installer]{
		ID:        InstallerNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Installer, error) {
			return NewInstaller(), nil
		},
	})
}
