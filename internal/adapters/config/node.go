package config

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/hue/internal/adapters/logger"
	"go.trai.ch/hue/internal/core/domain"
	"go.trai.ch/hue/internal/core/ports"
)

// NodeID is the unique identifier for the config loader Graft node.
const NodeID graft.ID = "adapter.config"

func init() {
	graft.Register(graft.Node[ports.ConfigSource]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ConfigSource, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log, SearchPath(os.Getenv(domain.ConfigPathEnv))), nil
		},
	})
}
