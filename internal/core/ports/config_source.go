package ports

import "go.trai.ch/hue/internal/core/domain"

// ConfigSource locates and parses colour configurations by name.
//
//go:generate mockgen -source=config_source.go -destination=mocks/mock_config_source.go -package=mocks
type ConfigSource interface {
	// Load parses the named configuration. It fails with domain.ErrConfigLoad.
	Load(name string) (*domain.Config, error)
	// Available lists the configuration names the source can load.
	Available() []string
	// AddSearchPath puts dirs ahead of the current search path.
	AddSearchPath(dirs ...string)
}
