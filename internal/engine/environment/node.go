package environment

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/envcache/internal/adapters/cas"         //nolint:depguard // Wired in engine wiring
	"go.trai.ch/envcache/internal/adapters/interpreter" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/envcache/internal/adapters/logger"      //nolint:depguard // Wired in engine wiring
	"go.trai.ch/envcache/internal/adapters/pip"         //nolint:depguard // Wired in engine wiring
	"go.trai.ch/envcache/internal/adapters/venv"        //nolint:depguard // Wired in engine wiring
	"go.trai.ch/envcache/internal/core/ports"
)

// NodeID is the unique identifier for the environment builder Graft node.
const NodeID graft.ID = "engine.environment"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			pip.ResolverNodeID,
			pip.InstallerNodeID,
			venv.NodeID,
			cas.NodeID,
			interpreter.LocatorNodeID,
			interpreter.QuerierNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Builder, error) {
			resolver, err := graft.Dep[ports.Resolver](ctx)
			if err != nil {
				return nil, err
			}

			installer, err := graft.Dep[ports.Installer](ctx)
			if err != nil {
				return nil, err
			}

			virtualenv, err := graft.Dep[ports.Virtualenv](ctx)
			if err != nil {
				return nil, err
			}

			cache, err := graft.Dep[ports.Cache](ctx)
			if err != nil {
				return nil, err
			}

			locator, err := graft.Dep[ports.BaseLocator](ctx)
			if err != nil {
				return nil, err
			}

			querier, err := graft.Dep[ports.InterpreterQuerier](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return NewBuilder(resolver, installer, virtualenv, cache, locator, querier, log), nil
		},
	})
}
