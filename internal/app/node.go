package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/coil/internal/adapters/cas"       //nolint:depguard // Wired in app layer
	"go.trai.ch/coil/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/coil/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/coil/internal/adapters/shell"     //nolint:depguard // Wired in app layer
	"go.trai.ch/coil/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/coil/internal/adapters/watcher"   //nolint:depguard // Wired in app layer
	"go.trai.ch/coil/internal/core/ports"
	"go.trai.ch/coil/internal/engine/loader"
	"go.trai.ch/coil/internal/engine/spawn"
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
			loader.NodeID,
			loader.RegistryNodeID,
			spawn.NodeID,
			shell.NodeID,
			cas.NodeID,
			config.SettingsNodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
			watcher.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	projects, err := graft.Dep[ports.ProjectLoader](ctx)
	if err != nil {
		return nil, err
	}

	primary, err := graft.Dep[*loader.Loader](ctx)
	if err != nil {
		return nil, err
	}

	registry, err := graft.Dep[*loader.Registry](ctx)
	if err != nil {
		return nil, err
	}

	rewriter, err := graft.Dep[*spawn.Rewriter](ctx)
	if err != nil {
		return nil, err
	}

	runner, err := graft.Dep[ports.ProcessRunner](ctx)
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

	w, err := graft.Dep[ports.Watcher](ctx)
	if err != nil {
		return nil, err
	}

	return New(projects, primary, registry, rewriter, runner, store, settings, tracer, log, w), nil
}

func runComponentsNode(ctx context.Context) (*Components, error) {
	app, err := graft.Dep[*App](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	tracer, err := graft.Dep[ports.Tracer](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log, tracer), nil
}
