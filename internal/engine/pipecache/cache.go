// Package pipecache shares compiled shader artifacts between viewers and sources.
package pipecache

import (
	"go.trai.ch/hue/internal/core/domain"
	"go.trai.ch/hue/internal/core/ports"
	"go.trai.ch/hue/internal/engine/shard"
)

// Cache maps shader keys to compiled artifacts. Entries live for the life of
// the process and are never modified once stored.
type Cache struct {
	hasher  ports.Hasher
	entries *shard.Map[*domain.CompiledShader]
}

// New creates an empty Cache.
func New(hasher ports.Hasher) *Cache {
	return &Cache{
		hasher:  hasher,
		entries: shard.New[*domain.CompiledShader](shard.DefaultShardCount),
	}
}

// FastHash returns the cache key for params and viewer without building
// anything. Values carried by dynamic handles do not contribute.
func (c *Cache) FastHash(params domain.MediaParams, viewer domain.Viewer) string {
	return c.hasher.ShaderKey(params, viewer)
}

// Get returns the artifact stored under key.
func (c *Cache) Get(key string) (*domain.CompiledShader, bool) {
	return c.entries.Get(key)
}

// GetOrBuild returns the artifact under key, running build on a miss.
// Concurrent misses on one key share a single build. Failed builds leave no
// entry. hit reports whether the artifact was already cached.
func (c *Cache) GetOrBuild(key string, build func() (*domain.CompiledShader, error)) (shader *domain.CompiledShader, hit bool, err error) {
	shader, built, err := c.entries.GetOrBuild(key, build)
	if err != nil {
		return nil, false, err
	}
	return shader, !built, nil
}

// Len returns the number of cached artifacts.
func (c *Cache) Len() int {
	return c.entries.Len()
}

// Stats returns the lookup counters.
func (c *Cache) Stats() shard.Stats {
	return c.entries.Stats()
}
