package venv

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/envcache/internal/core/ports"
)

// NodeID is the unique identifier for the virtualenv Graft node.
const NodeID graft.ID = "adapter.venv"

func init() {
	graft.Register(graft.Node[ports.Virtualenv]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Virtualenv, error) {
			return NewCreator(), nil
		},
	})
}
