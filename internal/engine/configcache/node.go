package configcache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/hue/internal/adapters/config"
	"go.trai.ch/hue/internal/adapters/logger"
	"go.trai.ch/hue/internal/core/ports"
)

// NodeID is the unique identifier for the config cache Graft node.
const NodeID graft.ID = "engine.configcache"

func init() {
	graft.Register(graft.Node[*Cache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{config.NodeID, logger.NodeID},
		Run: func(ctx context.Context) (*Cache, error) {
			source, err := graft.Dep[ports.ConfigSource](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return New(source, log), nil
		},
	})
}
