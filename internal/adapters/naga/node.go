package naga

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/hue/internal/core/ports"
)

// NodeID is the unique identifier for the shader backend Graft node.
const NodeID graft.ID = "adapter.naga"

func init() {
	graft.Register(graft.Node[ports.ShaderBackend]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.ShaderBackend, error) {
			return NewBackend(), nil
		},
	})
}
