package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/hue/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/hue/internal/adapters/settings"  //nolint:depguard // Wired in app layer
	"go.trai.ch/hue/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/hue/internal/core/ports"
	"go.trai.ch/hue/internal/engine/compiler"
	"go.trai.ch/hue/internal/engine/configcache"
	"go.trai.ch/hue/internal/engine/graph"
	"go.trai.ch/hue/internal/engine/pipecache"
	"go.trai.ch/hue/internal/engine/resolver"
	"go.trai.ch/hue/internal/engine/thumbnail"
	"go.trai.ch/hue/internal/engine/uniforms"
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
			configcache.NodeID,
			resolver.NodeID,
			graph.NodeID,
			compiler.NodeID,
			pipecache.NodeID,
			uniforms.NodeID,
			thumbnail.NodeID,
			settings.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
		},
		Run: runAppNode,
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			a, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: a, Host: NewHost(a), Logger: log}, nil
		},
	})
}

func runAppNode(ctx context.Context) (*App, error) {
	configs, err := graft.Dep[*configcache.Cache](ctx)
	if err != nil {
		return nil, err
	}
	res, err := graft.Dep[*resolver.Resolver](ctx)
	if err != nil {
		return nil, err
	}
	builder, err := graft.Dep[*graph.Builder](ctx)
	if err != nil {
		return nil, err
	}
	comp, err := graft.Dep[*compiler.Compiler](ctx)
	if err != nil {
		return nil, err
	}
	pipes, err := graft.Dep[*pipecache.Cache](ctx)
	if err != nil {
		return nil, err
	}
	updater, err := graft.Dep[*uniforms.Updater](ctx)
	if err != nil {
		return nil, err
	}
	thumbs, err := graft.Dep[*thumbnail.Processor](ctx)
	if err != nil {
		return nil, err
	}
	store, err := graft.Dep[ports.SettingsStore](ctx)
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

	return New(configs, res, builder, comp, pipes, updater, thumbs, store, log, tracer), nil
}
