package resolver

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/hue/internal/adapters/fs"
	"go.trai.ch/hue/internal/adapters/logger"
	"go.trai.ch/hue/internal/adapters/settings"
	"go.trai.ch/hue/internal/core/ports"
	"go.trai.ch/hue/internal/engine/configcache"
)

// NodeID is the unique identifier for the resolver Graft node.
const NodeID graft.ID = "engine.resolver"

func init() {
	graft.Register(graft.Node[*Resolver]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{configcache.NodeID, settings.NodeID, fs.HasherNodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Resolver, error) {
			configs, err := graft.Dep[*configcache.Cache](ctx)
			if err != nil {
				return nil, err
			}
			store, err := graft.Dep[ports.SettingsStore](ctx)
			if err != nil {
				return nil, err
			}
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(configs, store, hasher, log), nil
		},
	})
}
