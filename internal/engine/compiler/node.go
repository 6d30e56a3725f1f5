package compiler

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/hue/internal/adapters/naga"
	"go.trai.ch/hue/internal/core/ports"
)

// NodeID is the unique identifier for the shader compiler Graft node.
const NodeID graft.ID = "engine.compiler"

func init() {
	graft.Register(graft.Node[*Compiler]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{naga.NodeID},
		Run: func(ctx context.Context) (*Compiler, error) {
			backend, err := graft.Dep[ports.ShaderBackend](ctx)
			if err != nil {
				return nil, err
			}
			return New(backend), nil
		},
	})
}
