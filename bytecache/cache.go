// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package bytecache provides a sharded, concurrency-safe LRU cache for byte
// slices with an API close to fastcache.
package bytecache

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/spaolacci/murmur3"

	"github.com/FROST8ytes/cache"
	"github.com/FROST8ytes/cache/lru"
)

const (
	numShards = 256
	shardMask = numShards - 1
)

// Stats contains cache performance metrics.
type Stats struct {
	EntriesCount uint64
	BytesSize    uint64
	GetCalls     uint64
	SetCalls     uint64
	Misses       uint64
	Evictions    uint64
}

// Cache is a sharded LRU byte cache. Each shard is an independent
// size-bounded LRU guarded by its own lock, so lookups are O(1) and
// contention is spread across shards.
type Cache struct {
	shards   [numShards]*byteShard
	maxBytes int

	getCalls  atomic.Uint64
	setCalls  atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type byteShard struct {
	mu  sync.Mutex
	lru *lru.SizedCache[string, []byte]
}

func entrySize(key string, value []byte) int {
	return len(key) + len(value)
}

// New creates a new byte cache holding at most maxBytes of keys and values.
// The budget is split evenly across shards; a non-zero budget gives every
// shard at least one byte. A negative maxBytes is rejected.
func New(maxBytes int) (*Cache, error) {
	if maxBytes < 0 {
		return nil, fmt.Errorf("%w: %d bytes", cache.ErrInvalidCapacity, maxBytes)
	}

	c := &Cache{maxBytes: maxBytes}
	perShard := maxBytes / numShards
	if maxBytes > 0 && perShard < 1 {
		perShard = 1
	}
	onEvict := func(string, []byte) {
		c.evictions.Add(1)
	}
	for i := range c.shards {
		sc, err := lru.NewSizedCacheWithOnEvict(perShard, entrySize, onEvict)
		if err != nil {
			return nil, err
		}
		c.shards[i] = &byteShard{lru: sc}
	}
	return c, nil
}

func (c *Cache) shard(key []byte) *byteShard {
	return c.shards[murmur3.Sum64(key)&shardMask]
}

// Reset clears all cached entries.
func (c *Cache) Reset() {
	for _, s := range c.shards {
		s.mu.Lock()
		s.lru.Flush()
		s.mu.Unlock()
	}
}

// Del removes a key from the cache.
func (c *Cache) Del(key []byte) {
	s := c.shard(key)
	s.mu.Lock()
	s.lru.Remove(string(key))
	s.mu.Unlock()
}

// Has reports whether a key exists. It does not refresh the key's recency.
func (c *Cache) Has(key []byte) bool {
	s := c.shard(key)
	s.mu.Lock()
	ok := s.lru.Contains(string(key))
	s.mu.Unlock()
	return ok
}

// HasGet appends the value to dst and reports whether the key exists.
func (c *Cache) HasGet(dst, key []byte) ([]byte, bool) {
	c.getCalls.Add(1)
	s := c.shard(key)

	s.mu.Lock()
	val, ok := s.lru.Get(string(key))
	if ok {
		dst = append(dst, val...)
	}
	s.mu.Unlock()

	if !ok {
		c.misses.Add(1)
	}
	return dst, ok
}

// Get appends the value for key to dst and returns the result. On a miss dst
// is returned unchanged.
func (c *Cache) Get(dst, key []byte) []byte {
	dst, _ = c.HasGet(dst, key)
	return dst
}

// Set stores a copy of the key/value pair. Pairs larger than a shard's budget
// are not stored, and any previous value for the key is dropped.
func (c *Cache) Set(key, value []byte) {
	c.setCalls.Add(1)
	s := c.shard(key)
	v := append([]byte(nil), value...)

	s.mu.Lock()
	s.lru.Put(string(key), v)
	s.mu.Unlock()
}

// MaxBytes returns the configured byte budget.
func (c *Cache) MaxBytes() int {
	return c.maxBytes
}

// UpdateStats adds the cache's current counters to s.
func (c *Cache) UpdateStats(s *Stats) {
	if s == nil {
		return
	}
	for _, sh := range c.shards {
		sh.mu.Lock()
		s.EntriesCount += uint64(sh.lru.Len())
		s.BytesSize += uint64(sh.lru.Size())
		sh.mu.Unlock()
	}
	s.GetCalls += c.getCalls.Load()
	s.SetCalls += c.setCalls.Load()
	s.Misses += c.misses.Load()
	s.Evictions += c.evictions.Load()
}
