package graph

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/hue/internal/adapters/cdl"
	"go.trai.ch/hue/internal/core/ports"
)

// NodeID is the unique identifier for the graph builder Graft node.
const NodeID graft.ID = "engine.graph"

func init() {
	graft.Register(graft.Node[*Builder]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{cdl.NodeID},
		Run: func(ctx context.Context) (*Builder, error) {
			reader, err := graft.Dep[ports.GradeListReader](ctx)
			if err != nil {
				return nil, err
			}
			return NewBuilder(reader), nil
		},
	})
}
