package thumbnail

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/hue/internal/engine/graph"
	"go.trai.ch/hue/internal/engine/resolver"
)

// NodeID is the unique identifier for the thumbnail processor Graft node.
const NodeID graft.ID = "engine.thumbnail"

func init() {
	graft.Register(graft.Node[*Processor]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{resolver.NodeID, graph.NodeID},
		Run: func(ctx context.Context) (*Processor, error) {
			params, err := graft.Dep[*resolver.Resolver](ctx)
			if err != nil {
				return nil, err
			}
			builder, err := graft.Dep[*graph.Builder](ctx)
			if err != nil {
				return nil, err
			}
			return New(params, builder), nil
		},
	})
}
