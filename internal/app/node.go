package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/envcache/internal/adapters/cas"         //nolint:depguard // Wired in app layer
	"go.trai.ch/envcache/internal/adapters/config"      //nolint:depguard // Wired in app layer
	"go.trai.ch/envcache/internal/adapters/interpreter" //nolint:depguard // Wired in app layer
	"go.trai.ch/envcache/internal/adapters/logger"      //nolint:depguard // Wired in app layer
	"go.trai.ch/envcache/internal/adapters/progress"    //nolint:depguard // Wired in app layer
	"go.trai.ch/envcache/internal/adapters/shell"       //nolint:depguard // Wired in app layer
	"go.trai.ch/envcache/internal/core/ports"
	"go.trai.ch/envcache/internal/engine/environment"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			config.NodeID,
			environment.NodeID,
			interpreter.QuerierNodeID,
			shell.NodeID,
			cas.NodeID,
			cas.MaintainerNodeID,
			progress.NodeID,
			logger.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			progress.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			reporter, err := graft.Dep[ports.Reporter](ctx)
			if err != nil {
				return nil, err
			}

			return &Components{App: app, Logger: log, Reporter: reporter}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	builder, err := graft.Dep[*environment.Builder](ctx)
	if err != nil {
		return nil, err
	}

	querier, err := graft.Dep[ports.InterpreterQuerier](ctx)
	if err != nil {
		return nil, err
	}

	executor, err := graft.Dep[ports.Executor](ctx)
	if err != nil {
		return nil, err
	}

	cache, err := graft.Dep[ports.Cache](ctx)
	if err != nil {
		return nil, err
	}

	maintainer, err := graft.Dep[ports.CacheMaintainer](ctx)
	if err != nil {
		return nil, err
	}

	reporter, err := graft.Dep[ports.Reporter](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, builder, querier, executor, cache, maintainer, reporter, log), nil
}
