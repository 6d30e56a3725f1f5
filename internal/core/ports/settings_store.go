package ports

import "go.trai.ch/hue/internal/core/domain"

// SettingsStore persists per-config viewer settings.
//
//go:generate mockgen -source=settings_store.go -destination=mocks/mock_settings_store.go -package=mocks
type SettingsStore interface {
	// Get returns the stored settings for a config, or nil if none exist.
	Get(config string) (*domain.PerConfigSettings, error)
	// Put stores the settings.
	Put(settings domain.PerConfigSettings) error
	// SetRoot moves the store to another state directory.
	SetRoot(root string)
}
