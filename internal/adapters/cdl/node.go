package cdl

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/hue/internal/core/ports"
)

// NodeID is the unique identifier for the grade list reader Graft node.
const NodeID graft.ID = "adapter.cdl"

func init() {
	graft.Register(graft.Node[ports.GradeListReader]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.GradeListReader, error) {
			return NewReader(), nil
		},
	})
}
