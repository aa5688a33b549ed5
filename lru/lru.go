// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package lru provides fixed-capacity least-recently-used caches.
//
// Every operation on Cache and SizedCache runs in constant time: a map
// indexes keys to slots of a slab-backed doubly-linked recency list, and
// reads, writes, updates and evictions only splice that list.
//
// Cache and SizedCache are not safe for concurrent use. Callers sharing one
// instance between goroutines must serialize access themselves, for example
// by wrapping it with NewSynced. Unsynchronized concurrent access is
// undefined behavior.
package lru

import (
	"fmt"
	"iter"

	"github.com/FROST8ytes/cache"
)

var _ cache.Cacher[struct{}, struct{}] = (*Cache[struct{}, struct{}])(nil)

// Cache is an LRU cache holding at most a fixed number of entries.
//
// When a Put of a new key would exceed the capacity, the least recently used
// entry is evicted and its value dropped. The optional eviction callback is
// the only way to observe it.
type Cache[K comparable, V any] struct {
	capacity int
	onEvict  func(K, V)

	index map[K]handle
	order recencyList[K, V]
}

// NewCache creates an empty LRU cache that holds at most capacity entries.
//
// A capacity of zero is valid: such a cache stores nothing, every Put is a
// no-op and every Get misses. A negative capacity is rejected with
// cache.ErrInvalidCapacity.
func NewCache[K comparable, V any](capacity int) (*Cache[K, V], error) {
	return NewCacheWithOnEvict[K, V](capacity, nil)
}

// NewCacheWithOnEvict creates a cache that calls onEvict with every entry
// dropped to make room for a new key, or removed by RemoveOldest. It is not
// called for Remove or Flush. onEvict must not modify the cache.
func NewCacheWithOnEvict[K comparable, V any](capacity int, onEvict func(K, V)) (*Cache[K, V], error) {
	if err := checkCapacity(capacity); err != nil {
		return nil, err
	}
	return &Cache[K, V]{
		capacity: capacity,
		onEvict:  onEvict,
		index:    make(map[K]handle, min(capacity, preallocSlots)),
		order:    newRecencyList[K, V](capacity),
	}, nil
}

func checkCapacity(capacity int) error {
	if capacity < 0 || uint64(capacity) > MaxCapacity {
		return fmt.Errorf("%w: %d", cache.ErrInvalidCapacity, capacity)
	}
	return nil
}

// Put inserts or replaces an element in the cache and marks it as most
// recently used. If the key was present, its previous value is returned with
// true and nothing is evicted.
func (c *Cache[K, V]) Put(key K, value V) (V, bool) {
	if h, ok := c.index[key]; ok {
		n := c.order.node(h)
		prev := n.value
		n.value = value
		c.order.moveToFront(h)
		return prev, true
	}

	var zero V
	if c.capacity == 0 {
		return zero, false
	}

	// Evict before inserting so the freed slot is reused.
	if c.order.len() >= c.capacity {
		c.evictOldest()
	}
	c.index[key] = c.order.pushFront(key, value)
	return zero, false
}

// Get returns the entry with the key, if it exists, and marks it as most
// recently used. A miss has no side effect.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	h, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.moveToFront(h)
	return c.order.node(h).value, true
}

// Peek returns the entry with the key without changing its recency.
func (c *Cache[K, V]) Peek(key K) (V, bool) {
	h, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return c.order.node(h).value, true
}

// Remove deletes the entry with the key and hands its value back to the
// caller. Removing an absent key is a no-op.
func (c *Cache[K, V]) Remove(key K) (V, bool) {
	h, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	delete(c.index, key)
	_, value := c.order.remove(h)
	return value, true
}

// Contains reports whether the key is present without changing its recency.
func (c *Cache[K, V]) Contains(key K) bool {
	_, ok := c.index[key]
	return ok
}

// Oldest returns the least recently used entry, the next one to be evicted.
func (c *Cache[K, V]) Oldest() (K, V, bool) {
	return c.peekAt(c.order.back())
}

// Newest returns the most recently used entry.
func (c *Cache[K, V]) Newest() (K, V, bool) {
	return c.peekAt(c.order.front())
}

func (c *Cache[K, V]) peekAt(h handle) (K, V, bool) {
	if h == sentinel {
		var (
			key   K
			value V
		)
		return key, value, false
	}
	n := c.order.node(h)
	return n.key, n.value, true
}

// RemoveOldest evicts the least recently used entry and returns it.
func (c *Cache[K, V]) RemoveOldest() (K, V, bool) {
	if c.order.len() == 0 {
		var (
			key   K
			value V
		)
		return key, value, false
	}
	key, value := c.evictOldest()
	return key, value, true
}

func (c *Cache[K, V]) evictOldest() (K, V) {
	key, value := c.order.remove(c.order.back())
	delete(c.index, key)
	if c.onEvict != nil {
		c.onEvict(key, value)
	}
	return key, value
}

// Keys returns the cached keys from most to least recently used.
func (c *Cache[K, V]) Keys() []K {
	keys := make([]K, 0, c.order.len())
	for key := range c.order.all() {
		keys = append(keys, key)
	}
	return keys
}

// All iterates over the entries from most to least recently used without
// changing their recency. The cache must not be modified during iteration.
func (c *Cache[K, V]) All() iter.Seq2[K, V] {
	return c.order.all()
}

// Backward iterates over the entries from least to most recently used, the
// order in which they would be evicted. It does not change their recency.
// The cache must not be modified during iteration.
func (c *Cache[K, V]) Backward() iter.Seq2[K, V] {
	return c.order.backward()
}

// Flush removes all entries from the cache. The capacity is unchanged.
func (c *Cache[K, V]) Flush() {
	clear(c.index)
	c.order.reset()
}

// Len returns the number of elements in the cache.
func (c *Cache[K, V]) Len() int {
	return c.order.len()
}

// Cap returns the maximum number of elements the cache holds.
func (c *Cache[K, V]) Cap() int {
	return c.capacity
}

// PortionFilled returns fraction of cache currently filled.
func (c *Cache[K, V]) PortionFilled() float64 {
	if c.capacity == 0 {
		return 0
	}
	return float64(c.order.len()) / float64(c.capacity)
}
