// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cache memoizes derived calendar data, such as compiled layouts and
// the bounds of week-based years.
package cache

import (
	"sync"
	"sync/atomic"
)

// DefaultSize is the default size of a cache.
const DefaultSize = 1 << 10

// Cache is a bounded map with random replacement. Entries are computed on
// demand by the fill function passed to Get.
//
// Its zero value is safe to use. It is safe for concurrent use.
type Cache[K comparable, V any] struct {
	// MaxSize is the maximum size of the cache. If it is zero, DefaultSize is used.
	//
	// If V implements Sizer, it is used to estimate size. Otherwise every
	// element is assumed to have size 1.
	//
	// MaxSize is not safe to mutate concurrently with calls to Get.
	MaxSize int64

	mu sync.RWMutex
	m  map[K]V
	n  int64

	hits, misses atomic.Int64
}

// Stats counts lookups served from the cache and lookups that had to fill.
type Stats struct {
	Hits, Misses int64
}

// Get returns the element for k, calling fill to compute it if it is absent.
// fill may be called concurrently for the same key; only one result is kept.
func (c *Cache[K, V]) Get(k K, fill func(K) V) V {
	c.mu.RLock()
	v, ok := c.m[k]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return v
	}
	c.misses.Add(1)

	nv := fill(k)

	c.mu.Lock()
	defer c.mu.Unlock()
	if v, ok := c.m[k]; ok {
		return v
	}
	if c.m == nil {
		c.m = make(map[K]V)
	}
	c.m[k] = nv
	c.n += size(nv)
	// map iteration order is random enough for replacement.
	for old := range c.m {
		if !c.overLocked() {
			break
		}
		if old != k {
			c.evictLocked(old)
		}
	}
	return nv
}

func (c *Cache[K, V]) overLocked() bool {
	m := c.MaxSize
	if m == 0 {
		m = DefaultSize
	}
	return c.n > m
}

// Len returns the number of cached elements.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.m)
}

// Stats returns the hit and miss counters of c.
func (c *Cache[K, V]) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load()}
}

// Evict removes the element for k. If there is none, Evict is a no-op.
func (c *Cache[K, V]) Evict(k K) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictLocked(k)
}

func (c *Cache[K, V]) evictLocked(k K) {
	if v, ok := c.m[k]; ok {
		delete(c.m, k)
		c.n -= size(v)
	}
}

// Flush removes all elements and resets the counters.
func (c *Cache[K, V]) Flush() {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.m)
	c.n = 0
	c.hits.Store(0)
	c.misses.Store(0)
}

// Sizer is an optional interface for a value to report its own size. The
// reported size must be positive and never change for the same receiver.
type Sizer interface {
	Size() int64
}

func size[V any](v V) int64 {
	if s, ok := any(v).(Sizer); ok {
		return s.Size()
	}
	return 1
}
