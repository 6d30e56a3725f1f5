package shard_test

import (
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/hue/internal/engine/shard"
)

func TestMap_GetSetDelete(t *testing.T) {
	m := shard.New[int](0)

	_, ok := m.Get("a")
	assert.False(t, ok)

	m.Set("a", 1)
	m.Set("b", 2)
	v, ok := m.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
	assert.Equal(t, 2, m.Len())
	assert.ElementsMatch(t, []string{"a", "b"}, m.Keys())

	m.Delete("a")
	_, ok = m.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, m.Len())

	m.Clear()
	assert.Equal(t, 0, m.Len())
}

func TestMap_Update(t *testing.T) {
	m := shard.New[int](4)

	got := m.Update("k", func(cur int, ok bool) int {
		assert.False(t, ok)
		return cur + 1
	})
	assert.Equal(t, 1, got)

	got = m.Update("k", func(cur int, ok bool) int {
		assert.True(t, ok)
		return cur + 1
	})
	assert.Equal(t, 2, got)
}

func TestMap_TryUpdate(t *testing.T) {
	m := shard.New[int](4)
	m.Set("k", 1)

	_, err := m.TryUpdate("k", func(cur int, _ bool) (int, error) {
		return cur + 1, errors.New("rejected")
	})
	require.Error(t, err)
	v, _ := m.Get("k")
	assert.Equal(t, 1, v)

	_, err = m.TryUpdate("missing", func(int, bool) (int, error) {
		return 0, errors.New("rejected")
	})
	require.Error(t, err)
	_, ok := m.Get("missing")
	assert.False(t, ok)

	got, err := m.TryUpdate("k", func(cur int, ok bool) (int, error) {
		assert.True(t, ok)
		return cur + 1, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, got)
}

func TestMap_GetOrBuild_BuildsOnceUnderContention(t *testing.T) {
	m := shard.New[*int](0)

	var calls atomic.Int32
	release := make(chan struct{})
	build := func() (*int, error) {
		calls.Add(1)
		<-release
		v := 42
		return &v, nil
	}

	const n = 32
	results := make([]*int, n)
	var wg sync.WaitGroup
	var started sync.WaitGroup
	started.Add(n)
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			started.Done()
			v, _, err := m.GetOrBuild("key", build)
			assert.NoError(t, err)
			results[i] = v
		}()
	}
	started.Wait()
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), calls.Load())
	for _, r := range results {
		assert.Same(t, results[0], r)
	}
	assert.Equal(t, uint64(1), m.Stats().Builds)
}

func TestMap_GetOrBuild_ErrorNotCached(t *testing.T) {
	m := shard.New[string](0)
	boom := errors.New("boom")

	_, built, err := m.GetOrBuild("k", func() (string, error) { return "", boom })
	require.ErrorIs(t, err, boom)
	assert.True(t, built)
	assert.Equal(t, 0, m.Len())

	v, built, err := m.GetOrBuild("k", func() (string, error) { return "ok", nil })
	require.NoError(t, err)
	assert.True(t, built)
	assert.Equal(t, "ok", v)

	v, built, err = m.GetOrBuild("k", func() (string, error) { return "again", nil })
	require.NoError(t, err)
	assert.False(t, built)
	assert.Equal(t, "ok", v)

	stats := m.Stats()
	assert.Equal(t, uint64(1), stats.Hits)
	assert.Equal(t, uint64(2), stats.Misses)
}

func TestMap_GetOrBuild_DifferentKeysDoNotBlock(t *testing.T) {
	m := shard.New[int](0)
	hold := make(chan struct{})
	inSlow := make(chan struct{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		_, _, _ = m.GetOrBuild("slow", func() (int, error) {
			close(inSlow)
			<-hold
			return 1, nil
		})
	}()

	<-inSlow
	for i := range 64 {
		v, _, err := m.GetOrBuild("fast-"+strconv.Itoa(i), func() (int, error) { return i, nil })
		require.NoError(t, err)
		assert.Equal(t, i, v)
	}
	close(hold)
	<-done
}
