package settings

import (
	"context"
	"os"

	"github.com/grindlemire/graft"
	"go.trai.ch/hue/internal/core/domain"
	"go.trai.ch/hue/internal/core/ports"
)

// NodeID is the unique identifier for the settings store Graft node.
const NodeID graft.ID = "adapter.settings_store"

func init() {
	graft.Register(graft.Node[ports.SettingsStore]{
		ID:        NodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SettingsStore, error) {
			root := os.Getenv(domain.StateDirEnv)
			if root == "" {
				root = domain.DefaultStatePath()
			}
			return NewStore(root), nil
		},
	})
}
