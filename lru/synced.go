// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package lru

import (
	"sync"

	"github.com/FROST8ytes/cache"
)

var _ cache.Cacher[struct{}, struct{}] = (*Synced[struct{}, struct{}])(nil)

// Synced serializes every call to the wrapped cache behind a mutex, making it
// safe to share between goroutines. Get moves entries in the recency list, so
// reads take the same exclusive lock as writes.
type Synced[K comparable, V any] struct {
	mu    sync.Mutex
	inner cache.Cacher[K, V]
}

// NewSynced wraps c. c must not be used directly afterwards.
func NewSynced[K comparable, V any](c cache.Cacher[K, V]) *Synced[K, V] {
	return &Synced[K, V]{inner: c}
}

// NewSyncedCache creates a count-bounded LRU cache that is safe for
// concurrent use.
func NewSyncedCache[K comparable, V any](capacity int) (*Synced[K, V], error) {
	c, err := NewCache[K, V](capacity)
	if err != nil {
		return nil, err
	}
	return NewSynced[K, V](c), nil
}

// Put inserts or replaces an element in the wrapped cache.
func (s *Synced[K, V]) Put(key K, value V) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Put(key, value)
}

// Get returns the entry with the key and marks it as most recently used.
func (s *Synced[K, V]) Get(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Get(key)
}

// Peek returns the entry with the key without changing its recency.
func (s *Synced[K, V]) Peek(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Peek(key)
}

// Remove deletes the entry with the key and returns its value.
func (s *Synced[K, V]) Remove(key K) (V, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Remove(key)
}

// Contains reports whether the key is present.
func (s *Synced[K, V]) Contains(key K) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Contains(key)
}

// Flush removes all entries from the wrapped cache.
func (s *Synced[K, V]) Flush() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inner.Flush()
}

// Len returns the number of elements in the wrapped cache.
func (s *Synced[K, V]) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Len()
}

// Cap returns the wrapped cache's capacity.
func (s *Synced[K, V]) Cap() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.Cap()
}

// PortionFilled returns fraction of the wrapped cache currently filled.
func (s *Synced[K, V]) PortionFilled() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inner.PortionFilled()
}
