package ports

import "go.trai.ch/hue/internal/core/domain"

// Hasher computes content digests over resolved media params.
//
//go:generate mockgen -source=hasher.go -destination=mocks/mock_hasher.go -package=mocks
type Hasher interface {
	// HashParams digests every value that affects the rendered result.
	HashParams(params domain.MediaParams) string
	// ShaderKey digests the values that affect compiled shader source for a
	// viewer, excluding values carried by dynamic handles.
	ShaderKey(params domain.MediaParams, viewer domain.Viewer) string
}
