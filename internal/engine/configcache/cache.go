// Package configcache memoizes parsed colour configurations by name.
package configcache

import (
	"errors"

	"go.trai.ch/hue/internal/core/domain"
	"go.trai.ch/hue/internal/core/ports"
	"go.trai.ch/hue/internal/engine/shard"
	"go.trai.ch/zerr"
)

// Cache loads each configuration at most once and shares the immutable result.
// Entries are kept for the life of the process.
type Cache struct {
	source  ports.ConfigSource
	logger  ports.Logger
	entries *shard.Map[*domain.Config]
}

// New creates a Cache backed by source.
func New(source ports.ConfigSource, logger ports.Logger) *Cache {
	return &Cache{
		source:  source,
		logger:  logger,
		entries: shard.New[*domain.Config](shard.DefaultShardCount),
	}
}

// Load returns the configuration with the given name. Concurrent first loads
// of one name share a single parse; failures are returned unchanged and retried
// on the next call.
func (c *Cache) Load(name string) (*domain.Config, error) {
	cfg, built, err := c.entries.GetOrBuild(name, func() (*domain.Config, error) {
		return c.source.Load(name)
	})
	if err != nil {
		if !errors.Is(err, domain.ErrConfigLoad) {
			err = zerr.With(zerr.Wrap(domain.ErrConfigLoad, err.Error()), "config", name)
		}
		return nil, err
	}
	if built {
		c.logger.Debug("loaded colour configuration " + name + " from " + cfg.Path())
	}
	return cfg, nil
}

// Loaded returns the names of every cached configuration.
func (c *Cache) Loaded() []string {
	return c.entries.Keys()
}

// Available lists configurations the source can load.
func (c *Cache) Available() []string {
	return c.source.Available()
}

// AddSearchPath puts directories ahead of the source's search path. Cached
// configurations are not reloaded.
func (c *Cache) AddSearchPath(dirs ...string) {
	c.source.AddSearchPath(dirs...)
}

// Stats returns the cache counters.
func (c *Cache) Stats() shard.Stats {
	return c.entries.Stats()
}
