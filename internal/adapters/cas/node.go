package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/sizemap/internal/core/ports"
)

// NodeID is the unique identifier for the baseline store Graft node.
const NodeID graft.ID = "adapter.baseline_store"

func init() {
	graft.Register(graft.Node[ports.BaselineStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.BaselineStore, error) {
			store, err := NewStore()
			if err != nil {
				return nil, err
			}
			return store, nil
		},
	})
}
