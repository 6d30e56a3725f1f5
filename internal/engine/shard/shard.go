// Package shard provides a string-keyed map split into independently locked
// shards, with at-most-once construction of missing entries.
package shard

import (
	"sync"
	"sync/atomic"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultShardCount is the number of shards used when New is given n <= 0.
const DefaultShardCount = 16

// Map is a concurrent map. Each key lives in one shard selected by its xxhash;
// operations on keys in different shards never contend. No method holds more
// than one shard lock, and callbacks run outside every lock unless documented.
type Map[V any] struct {
	shards []*bucket[V]
	mask   uint64
	flight singleflight.Group

	hits   atomic.Uint64
	misses atomic.Uint64
	builds atomic.Uint64
}

type bucket[V any] struct {
	mu    sync.RWMutex
	items map[string]V
}

// Stats is a snapshot of a map's lookup counters.
type Stats struct {
	Hits   uint64
	Misses uint64
	Builds uint64
}

// New creates a map with n shards, rounded up to a power of two.
func New[V any](n int) *Map[V] {
	if n <= 0 {
		n = DefaultShardCount
	}
	size := 1
	for size < n {
		size <<= 1
	}

	m := &Map[V]{
		shards: make([]*bucket[V], size),
		mask:   uint64(size - 1),
	}
	for i := range m.shards {
		m.shards[i] = &bucket[V]{items: make(map[string]V)}
	}
	return m
}

func (m *Map[V]) shard(key string) *bucket[V] {
	return m.shards[xxhash.Sum64String(key)&m.mask]
}

// Get returns the value stored under key.
func (m *Map[V]) Get(key string) (V, bool) {
	b := m.shard(key)
	b.mu.RLock()
	v, ok := b.items[key]
	b.mu.RUnlock()
	return v, ok
}

// Set stores v under key, replacing any previous value.
func (m *Map[V]) Set(key string, v V) {
	b := m.shard(key)
	b.mu.Lock()
	b.items[key] = v
	b.mu.Unlock()
}

// Delete removes key.
func (m *Map[V]) Delete(key string) {
	b := m.shard(key)
	b.mu.Lock()
	delete(b.items, key)
	b.mu.Unlock()
}

// Update replaces the value under key with fn's result while holding the key's
// shard lock. fn must not touch any other locked structure.
func (m *Map[V]) Update(key string, fn func(current V, ok bool) V) V {
	b := m.shard(key)
	b.mu.Lock()
	defer b.mu.Unlock()
	cur, ok := b.items[key]
	next := fn(cur, ok)
	b.items[key] = next
	return next
}

// TryUpdate is Update for callbacks that can fail. The value under key is
// replaced only when fn returns a nil error; otherwise the map is unchanged and
// the error is returned.
func (m *Map[V]) TryUpdate(key string, fn func(current V, ok bool) (V, error)) (V, error) {
	b := m.shard(key)
	b.mu.Lock()
	defer b.mu.Unlock()
	cur, ok := b.items[key]
	next, err := fn(cur, ok)
	if err != nil {
		var zero V
		return zero, err
	}
	b.items[key] = next
	return next, nil
}

// Len returns the number of stored entries.
func (m *Map[V]) Len() int {
	n := 0
	for _, b := range m.shards {
		b.mu.RLock()
		n += len(b.items)
		b.mu.RUnlock()
	}
	return n
}

// Keys returns every key, in no particular order.
func (m *Map[V]) Keys() []string {
	var keys []string
	for _, b := range m.shards {
		b.mu.RLock()
		for k := range b.items {
			keys = append(keys, k)
		}
		b.mu.RUnlock()
	}
	return keys
}

// Clear removes every entry.
func (m *Map[V]) Clear() {
	for _, b := range m.shards {
		b.mu.Lock()
		clear(b.items)
		b.mu.Unlock()
	}
}

// GetOrBuild returns the value under key, building it on a miss. Concurrent
// callers for the same key share a single build and all observe its result;
// callers for other keys are not blocked. The build runs outside every shard
// lock. Failed builds are not stored. built reports whether this call ran build.
func (m *Map[V]) GetOrBuild(key string, build func() (V, error)) (v V, built bool, err error) {
	if v, ok := m.Get(key); ok {
		m.hits.Add(1)
		return v, false, nil
	}
	m.misses.Add(1)

	res, err, _ := m.flight.Do(key, func() (any, error) {
		// A build that finished between our Get and Do already stored its value.
		if v, ok := m.Get(key); ok {
			return v, nil
		}
		built = true
		m.builds.Add(1)
		v, err := build()
		if err != nil {
			return nil, err
		}
		m.Set(key, v)
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, built, err
	}
	return res.(V), built, nil
}

// Stats returns the lookup counters.
func (m *Map[V]) Stats() Stats {
	return Stats{
		Hits:   m.hits.Load(),
		Misses: m.misses.Load(),
		Builds: m.builds.Load(),
	}
}
