package pipecache

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/hue/internal/adapters/fs"
	"go.trai.ch/hue/internal/core/ports"
)

// NodeID is the unique identifier for the pipeline cache Graft node.
const NodeID graft.ID = "engine.pipecache"

func init() {
	graft.Register(graft.Node[*Cache]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.HasherNodeID},
		Run: func(ctx context.Context) (*Cache, error) {
			hasher, err := graft.Dep[ports.Hasher](ctx)
			if err != nil {
				return nil, err
			}
			return New(hasher), nil
		},
	})
}
