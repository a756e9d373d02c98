package spawn

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/coil/internal/adapters/config" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/coil/internal/core/ports"
)

// NodeID is the unique identifier for the rewriter Graft node.
const NodeID graft.ID = "engine.spawn"

func init() {
	graft.Register(graft.Node[*Rewriter]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.SettingsNodeID},
		Run: func(ctx context.Context) (*Rewriter, error) {
			settings, err := graft.Dep[ports.Settings](ctx)
			if err != nil {
				return nil, err
			}
			return NewRewriter(settings), nil
		},
	})
}
