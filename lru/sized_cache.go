// Copyright (C) 2026, Lux Partners Limited. All rights reserved.
// See the file LICENSE for licensing terms.

package lru

import "github.com/FROST8ytes/cache"

var _ cache.Cacher[struct{}, struct{}] = (*SizedCache[struct{}, struct{}])(nil)

// SizedCache is an LRU cache bounded by total size rather than entry count.
// Like Cache, it is not safe for concurrent use.
type SizedCache[K comparable, V any] struct {
	maxSize     int
	currentSize int
	sizeFn      func(K, V) int
	onEvict     func(K, V)

	index map[K]handle
	order recencyList[K, sizedEntry[V]]
}

type sizedEntry[V any] struct {
	value V
	size  int
}

// NewSizedCache creates a size-bounded LRU cache. sizeFn reports the size of
// an entry; a nil sizeFn counts every entry as 1. A size of 0 is counted as 1,
// so the cache never holds more than maxSize entries.
func NewSizedCache[K comparable, V any](maxSize int, sizeFn func(K, V) int) (*SizedCache[K, V], error) {
	return NewSizedCacheWithOnEvict(maxSize, sizeFn, nil)
}

// NewSizedCacheWithOnEvict creates a size-bounded cache that calls onEvict
// with every entry dropped to make room. onEvict must not modify the cache.
func NewSizedCacheWithOnEvict[K comparable, V any](
	maxSize int,
	sizeFn func(K, V) int,
	onEvict func(K, V),
) (*SizedCache[K, V], error) {
	if err := checkCapacity(maxSize); err != nil {
		return nil, err
	}
	if sizeFn == nil {
		sizeFn = func(K, V) int { return 1 }
	}
	return &SizedCache[K, V]{
		maxSize: maxSize,
		sizeFn:  sizeFn,
		onEvict: onEvict,
		index:   make(map[K]handle),
		order:   newRecencyList[K, sizedEntry[V]](0),
	}, nil
}

// Put inserts or replaces a value and marks it as most recently used.
//
// A value larger than the cache (or with a negative size) is not stored. If
// the key held a value before, that value is dropped too and returned, so a
// stale value is never served.
func (c *SizedCache[K, V]) Put(key K, value V) (V, bool) {
	entrySize := c.sizeFn(key, value)
	if entrySize == 0 {
		// Every entry weighs at least 1 so the entry count stays bounded by
		// maxSize.
		entrySize = 1
	}
	fits := c.maxSize > 0 && entrySize >= 0 && entrySize <= c.maxSize

	h, ok := c.index[key]
	switch {
	case ok && !fits:
		return c.removeHandle(key, h), true
	case ok:
		e := &c.order.node(h).value
		prev := e.value
		c.currentSize += entrySize - e.size
		e.value = value
		e.size = entrySize
		c.order.moveToFront(h)

		// The updated entry is at the head and fits on its own, so this stops
		// before reaching it.
		for c.currentSize > c.maxSize {
			c.evictOldest()
		}
		return prev, true
	case !fits:
		var zero V
		return zero, false
	}

	for c.currentSize > c.maxSize-entrySize {
		c.evictOldest()
	}
	c.index[key] = c.order.pushFront(key, sizedEntry[V]{value: value, size: entrySize})
	c.currentSize += entrySize

	var zero V
	return zero, false
}

// Get retrieves a value and marks it as most recently used.
func (c *SizedCache[K, V]) Get(key K) (V, bool) {
	h, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.moveToFront(h)
	return c.order.node(h).value.value, true
}

// Peek retrieves a value without changing its recency.
func (c *SizedCache[K, V]) Peek(key K) (V, bool) {
	h, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return c.order.node(h).value.value, true
}

// Remove deletes a key from the cache and returns its value.
func (c *SizedCache[K, V]) Remove(key K) (V, bool) {
	h, ok := c.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return c.removeHandle(key, h), true
}

func (c *SizedCache[K, V]) removeHandle(key K, h handle) V {
	delete(c.index, key)
	_, e := c.order.remove(h)
	c.currentSize -= e.size
	return e.value
}

func (c *SizedCache[K, V]) evictOldest() {
	key, e := c.order.remove(c.order.back())
	delete(c.index, key)
	c.currentSize -= e.size
	if c.onEvict != nil {
		c.onEvict(key, e.value)
	}
}

// Contains reports whether the key is present without changing its recency.
func (c *SizedCache[K, V]) Contains(key K) bool {
	_, ok := c.index[key]
	return ok
}

// Flush removes all entries.
func (c *SizedCache[K, V]) Flush() {
	clear(c.index)
	c.order.reset()
	c.currentSize = 0
}

// Len returns number of entries.
func (c *SizedCache[K, V]) Len() int {
	return c.order.len()
}

// Cap returns the maximum total size.
func (c *SizedCache[K, V]) Cap() int {
	return c.maxSize
}

// Size returns the total size of the cached entries.
func (c *SizedCache[K, V]) Size() int {
	return c.currentSize
}

// PortionFilled returns the ratio of size used to max size.
func (c *SizedCache[K, V]) PortionFilled() float64 {
	if c.maxSize == 0 {
		return 0
	}
	return float64(c.currentSize) / float64(c.maxSize)
}
