package interpreter

import (
	"context"
	"path/filepath"

	"github.com/grindlemire/graft"
	"go.trai.ch/envcache/internal/adapters/cas"
	"go.trai.ch/envcache/internal/core/domain"
	"go.trai.ch/envcache/internal/core/ports"
)

const (
	// QuerierNodeID is the unique identifier for the interpreter querier Graft node.
	QuerierNodeID graft.ID = "adapter.interpreter.querier"
	// LocatorNodeID is the unique identifier for the base locator Graft node.
	LocatorNodeID graft.ID = "adapter.interpreter.locator"
)

func init() {
	graft.Register(graft.Node[ports.InterpreterQuerier]{
		ID:        QuerierNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{cas.NodeID},
		Run: func(ctx context.Context) (ports.InterpreterQuerier, error) {
			cache, err := graft.Dep[ports.Cache](ctx)
			if err != nil {
				return nil, err
			}
			return NewInspector(filepath.Join(cache.Root(), string(domain.InterpreterBucket))), nil
		},
	})

	graft.Register(graft.Node[ports.BaseLocator]{
		ID:        LocatorNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.BaseLocator, error) {
			return NewLocator(), nil
		},
	})
}
