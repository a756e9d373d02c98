package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/coil/internal/adapters/logger"
	"go.trai.ch/coil/internal/core/ports"
)

const (
	// SettingsNodeID is the unique identifier for the settings Graft node.
	SettingsNodeID graft.ID = "adapter.settings"
	// NodeID is the unique identifier for the project loader Graft node.
	NodeID graft.ID = "adapter.project_loader"
)

func init() {
	graft.Register(graft.Node[ports.Settings]{
		ID:        SettingsNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.Settings, error) {
			return NewSettings(), nil
		},
	})

	graft.Register(graft.Node[ports.ProjectLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ProjectLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}
