package progress

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/envcache/internal/core/ports"
)

// NodeID is the unique identifier for the progress reporter Graft node.
const NodeID graft.ID = "adapter.progress"

func init() {
	graft.Register(graft.Node[ports.Reporter]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Reporter, error) {
			return NewTapeRecorder(os.Stderr, NewConsole(os.Stderr)), nil
		},
	})
}
