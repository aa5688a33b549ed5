// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package cache provides bounded caching interfaces and implementations.
package cache

import "errors"

// ErrInvalidCapacity is returned when a cache is constructed with a negative
// capacity.
var ErrInvalidCapacity = errors.New("invalid cache capacity")

// Cacher acts as a bounded key value store.
//
// Absence of a key is reported through the boolean result, never as an error.
type Cacher[K comparable, V any] interface {
	// Put inserts or replaces an element in the cache. If the key was
	// already present, the previous value is returned with true.
	Put(key K, value V) (V, bool)

	// Get returns the entry with the key, if it exists, and marks it as
	// most recently used.
	Get(key K) (V, bool)

	// Peek returns the entry with the key, if it exists, without changing
	// its recency.
	Peek(key K) (V, bool)

	// Remove deletes the entry with the key and returns its value, if it
	// existed.
	Remove(key K) (V, bool)

	// Contains reports whether the key is present without changing its
	// recency.
	Contains(key K) bool

	// Flush removes all entries from the cache.
	Flush()

	// Len returns the number of elements in the cache.
	Len() int

	// Cap returns the configured capacity of the cache.
	Cap() int

	// PortionFilled returns fraction of cache currently filled (0 --> 1).
	PortionFilled() float64
}
