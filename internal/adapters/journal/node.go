package journal

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tasker/internal/adapters/settings"
	"go.trai.ch/tasker/internal/core/ports"
)

// NodeID is the unique identifier for the journal Graft node.
const NodeID graft.ID = "adapter.journal"

func init() {
	graft.Register(graft.Node[ports.Journal]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{settings.NodeID},
		Run: func(ctx context.Context) (ports.Journal, error) {
			cfg, err := graft.Dep[*settings.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewStore(cfg.Journal)
		},
	})
}
