package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/tasker/internal/adapters/config"   //nolint:depguard // Wired in app layer
	"go.trai.ch/tasker/internal/adapters/journal"  //nolint:depguard // Wired in app layer
	"go.trai.ch/tasker/internal/adapters/logger"   //nolint:depguard // Wired in app layer
	"go.trai.ch/tasker/internal/adapters/settings" //nolint:depguard // Wired in app layer
	"go.trai.ch/tasker/internal/core/ports"
	"go.trai.ch/tasker/internal/engine/runner"
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
			runner.NodeID,
			journal.NodeID,
			logger.NodeID,
			settings.NodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
			settings.NodeID,
		},
		Run: runComponentsNode,
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	loader, err := graft.Dep[ports.ConfigLoader](ctx)
	if err != nil {
		return nil, err
	}

	run, err := graft.Dep[*runner.Runner](ctx)
	if err != nil {
		return nil, err
	}

	store, err := graft.Dep[ports.Journal](ctx)
	if err != nil {
		return nil, err
	}

	log, err := graft.Dep[ports.Logger](ctx)
	if err != nil {
		return nil, err
	}

	cfg, err := graft.Dep[*settings.Settings](ctx)
	if err != nil {
		return nil, err
	}

	return New(loader, run, store, log, WithTaskfile(cfg.Taskfile)), nil
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

	cfg, err := graft.Dep[*settings.Settings](ctx)
	if err != nil {
		return nil, err
	}

	return NewComponents(app, log, cfg), nil
}
