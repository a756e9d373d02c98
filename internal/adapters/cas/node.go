package cas

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/coil/internal/adapters/config"
	"go.trai.ch/coil/internal/core/ports"
)

// NodeID is the unique identifier for the cache store Graft node.
const NodeID graft.ID = "adapter.cache_store"

func init() {
	graft.Register(graft.Node[ports.CacheStore]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (ports.CacheStore, error) {
			settings, err := graft.Dep[ports.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewBackend(settings), nil
		},
	})
}
