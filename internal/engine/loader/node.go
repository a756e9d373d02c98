package loader

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/coil/internal/adapters/cas"       //nolint:depguard // Wired in engine wiring
	"go.trai.ch/coil/internal/adapters/config"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/coil/internal/adapters/esbuild"   //nolint:depguard // Wired in engine wiring
	"go.trai.ch/coil/internal/adapters/logger"    //nolint:depguard // Wired in engine wiring
	"go.trai.ch/coil/internal/adapters/telemetry" //nolint:depguard // Wired in engine wiring
	"go.trai.ch/coil/internal/core/ports"
)

const (
	// RegistryNodeID is the unique identifier for the registry Graft node.
	RegistryNodeID graft.ID = "engine.loader.registry"
	// NodeID is the unique identifier for the loader Graft node.
	NodeID graft.ID = "engine.loader"
)

func init() {
	graft.Register(graft.Node[*Registry]{
		ID:        RegistryNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (*Registry, error) {
			return NewRegistry(), nil
		},
	})

	graft.Register(graft.Node[*Loader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			RegistryNodeID,
			esbuild.NodeID,
			cas.NodeID,
			config.SettingsNodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Loader, error) {
			registry, err := graft.Dep[*Registry](ctx)
			if err != nil {
				return nil, err
			}

			compiler, err := graft.Dep[ports.Compiler](ctx)
			if err != nil {
				return nil, err
			}

			store, err := graft.Dep[ports.CacheStore](ctx)
			if err != nil {
				return nil, err
			}

			settings, err := graft.Dep[ports.Settings](ctx)
			if err != nil {
				return nil, err
			}

			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}

			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}

			return New(registry, compiler, store, settings, tracer, log), nil
		},
	})
}
