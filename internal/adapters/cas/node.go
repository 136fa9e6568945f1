package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/envcache/internal/core/domain"
	"go.trai.ch/envcache/internal/core/ports"
)

const (
	// StoreNodeID is the unique identifier for the filesystem store Graft node.
	StoreNodeID graft.ID = "adapter.cas.store"
	// NodeID is the unique identifier for the environment cache Graft node.
	NodeID graft.ID = "adapter.cas.cache"
	// MaintainerNodeID is the unique identifier for the cache maintenance Graft node.
	MaintainerNodeID graft.ID = "adapter.cas.maintainer"
)

func init() {
	graft.Register(graft.Node[*Store]{
		ID:        StoreNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Store, error) {
			root, err := domain.DefaultCacheDir()
			if err != nil {
				return nil, err
			}
			return NewStore(root)
		},
	})

	graft.Register(graft.Node[ports.Cache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{StoreNodeID},
		Run: func(ctx context.Context) (ports.Cache, error) {
			store, err := graft.Dep[*Store](ctx)
			if err != nil {
				return nil, err
			}
			return store, nil
		},
	})

	graft.Register(graft.Node[ports.CacheMaintainer]{
		ID:        MaintainerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{StoreNodeID},
		Run: func(ctx context.Context) (ports.CacheMaintainer, error) {
			store, err := graft.Dep[*Store](ctx)
			if err != nil {
				return nil, err
			}
			return store, nil
		},
	})
}
