package cache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// Cache is a size-bounded TTL cache. Entries expire ttl after insertion;
// an expired entry is treated as absent, never as an error. Safe for
// concurrent use. Writers racing on the same key leave the last write.
type Cache[V any] struct {
	lru *expirable.LRU[string, V]
	ttl time.Duration
}

// New creates a cache holding at most size entries, each living for ttl.
func New[V any](size int, ttl time.Duration) *Cache[V] {
	return &Cache[V]{
		lru: expirable.NewLRU[string, V](size, nil, ttl),
		ttl: ttl,
	}
}

// Get returns the unexpired value for key, if any.
func (c *Cache[V]) Get(key string) (V, bool) {
	return c.lru.Get(key)
}

// Put stores value under key, replacing any previous entry.
func (c *Cache[V]) Put(key string, value V) {
	c.lru.Add(key, value)
}

// Invalidate drops the entry for key if present.
func (c *Cache[V]) Invalidate(key string) {
	c.lru.Remove(key)
}

// Len returns the number of resident (possibly expired) entries.
func (c *Cache[V]) Len() int {
	return c.lru.Len()
}

// Purge drops every entry. Used at shutdown.
func (c *Cache[V]) Purge() {
	c.lru.Purge()
}

// TTL reports the configured entry lifetime.
func (c *Cache[V]) TTL() time.Duration {
	return c.ttl
}
